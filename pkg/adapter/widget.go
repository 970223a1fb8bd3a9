package adapter

// Widget is the externally supplied editing widget, narrowed to the surface the
// adapter needs. The bundled Fyne editor implements it; hosts may supply any
// other implementation.
type Widget interface {
	// SetText replaces the widget's content.
	SetText(text string)

	// Text returns the widget's current content.
	Text() string

	// SetLanguage changes the syntax support language.
	SetLanguage(language string)

	// SetOnChanged registers the content-change callback. Passing nil detaches
	// the current callback.
	SetOnChanged(callback func(text string))

	// SetReadOnly toggles editability without re-creating the widget.
	SetReadOnly(readonly bool)

	// ApplySize sets the widget's rendered size.
	ApplySize(width, height float32)

	// RefreshLayout triggers a widget-native re-measure.
	RefreshLayout()
}

// WidgetFactory constructs a widget for the given configuration. It returns an
// error when the widget runtime is unavailable, for example when its assets
// never loaded.
type WidgetFactory func(opts Options) (Widget, error)
