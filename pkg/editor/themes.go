package editor

import (
	"image/color"

	"github.com/egarim/editorhost/pkg/adapter"
)

// Palette holds the color set backing one of the enumerated themes.
type Palette struct {
	Name        string
	Background  color.Color
	Foreground  color.Color
	LineNumber  color.Color
	Comment     color.Color
	Keyword     color.Color
	String      color.Color
	Number      color.Color
	Function    color.Color
	ChromaStyle string
}

var (
	lightPalette = &Palette{
		Name:        "Light",
		Background:  color.RGBA{255, 255, 255, 255},
		Foreground:  color.RGBA{0, 0, 0, 255},
		LineNumber:  color.RGBA{149, 149, 149, 255},
		Comment:     color.RGBA{0, 128, 0, 255},
		Keyword:     color.RGBA{0, 0, 255, 255},
		String:      color.RGBA{163, 21, 21, 255},
		Number:      color.RGBA{9, 134, 88, 255},
		Function:    color.RGBA{121, 94, 38, 255},
		ChromaStyle: "github",
	}

	darkPalette = &Palette{
		Name:        "Dark",
		Background:  color.RGBA{30, 30, 30, 255},
		Foreground:  color.RGBA{212, 212, 212, 255},
		LineNumber:  color.RGBA{133, 133, 133, 255},
		Comment:     color.RGBA{106, 153, 85, 255},
		Keyword:     color.RGBA{86, 156, 214, 255},
		String:      color.RGBA{206, 145, 120, 255},
		Number:      color.RGBA{181, 206, 168, 255},
		Function:    color.RGBA{220, 220, 170, 255},
		ChromaStyle: "monokai",
	}

	highContrastPalette = &Palette{
		Name:        "High Contrast",
		Background:  color.RGBA{0, 0, 0, 255},
		Foreground:  color.RGBA{255, 255, 255, 255},
		LineNumber:  color.RGBA{255, 255, 255, 255},
		Comment:     color.RGBA{117, 113, 94, 255},
		Keyword:     color.RGBA{0, 255, 255, 255},
		String:      color.RGBA{255, 255, 0, 255},
		Number:      color.RGBA{0, 255, 0, 255},
		Function:    color.RGBA{255, 215, 0, 255},
		ChromaStyle: "monokai",
	}
)

// PaletteFor maps an enumerated theme to its palette. Unknown themes fall back
// to the dark palette.
func PaletteFor(theme adapter.Theme) *Palette {
	switch theme {
	case adapter.ThemeLight:
		return lightPalette
	case adapter.ThemeHighContrast:
		return highContrastPalette
	default:
		return darkPalette
	}
}
