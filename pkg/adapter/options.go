package adapter

import (
	"fmt"
	"strconv"
	"strings"
)

// Theme selects the widget's color scheme. Themes are a fixed enumerated set
// passed at construction; there is no process-wide mutable theme registry.
type Theme string

const (
	ThemeLight        Theme = "light"
	ThemeDark         Theme = "dark"
	ThemeHighContrast Theme = "high-contrast"
)

// Valid reports whether t is one of the recognized themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeHighContrast:
		return true
	}
	return false
}

// Default layout values. A widget embedded without an explicit non-zero size
// collapses to nothing, so the minimums are enforced at every call site.
const (
	DefaultMinWidth  float32 = 400
	DefaultMinHeight float32 = 300
	DefaultFontSize          = 14
)

// Options is the per-instantiation widget configuration. It is constructed fresh
// for every widget and not retained after the widget is destroyed.
type Options struct {
	// Height and Width accept a CSS-style length ("480", "480px") or a
	// percentage ("100%"). Percentages mean "fill the container"; the enforced
	// minimum size still applies.
	Height string
	Width  string

	FontSize        int
	Theme           Theme
	AutomaticLayout bool
}

// withDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Height == "" {
		o.Height = "100%"
	}
	if o.Width == "" {
		o.Width = "100%"
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if !o.Theme.Valid() {
		o.Theme = ThemeDark
	}
	return o
}

// Validate reports configuration errors that should be caught at binding
// construction time.
func (o Options) Validate() error {
	if o.Theme != "" && !o.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", o.Theme)
	}
	if o.FontSize < 0 {
		return fmt.Errorf("font size must be positive, got %d", o.FontSize)
	}
	if _, err := parseDimension(o.Width); err != nil {
		return fmt.Errorf("invalid width: %v", err)
	}
	if _, err := parseDimension(o.Height); err != nil {
		return fmt.Errorf("invalid height: %v", err)
	}
	return nil
}

// resolvedSize returns the concrete pixel size the widget must be laid out at.
// Percentage dimensions resolve to the enforced minimum; the host's container
// layout is responsible for growing the widget beyond that.
func (o Options) resolvedSize() (width, height float32) {
	width = resolveDimension(o.Width, DefaultMinWidth)
	height = resolveDimension(o.Height, DefaultMinHeight)
	return width, height
}

func resolveDimension(value string, min float32) float32 {
	px, err := parseDimension(value)
	if err != nil || px <= 0 {
		return min
	}
	if px < min {
		return min
	}
	return px
}

// parseDimension parses a CSS-style length. Percentages and empty strings yield
// zero, meaning "no fixed size".
func parseDimension(value string) (float32, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasSuffix(value, "%") {
		return 0, nil
	}
	value = strings.TrimSuffix(value, "px")
	px, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("cannot parse dimension %q", value)
	}
	if px < 0 {
		return 0, fmt.Errorf("dimension must not be negative, got %q", value)
	}
	return float32(px), nil
}
