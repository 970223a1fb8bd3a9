// Package editor provides the bundled code-editing widget for Fyne hosts.
//
// The widget wraps a multiline Entry for editing and a RichText view with
// chroma-based syntax highlighting for read-only display. It implements the
// adapter.Widget contract, so hosts normally drive it through a
// adapter.Adapter rather than directly.
//
// Basic usage:
//
//	ed, err := editor.Create(adapter.Options{Theme: adapter.ThemeDark, FontSize: 14})
//	if err != nil {
//	    // widget runtime unavailable, degrade to a placeholder
//	}
//	ed.SetLanguage("go")
//	ed.SetText("package main")
//
// Themes are the fixed enumerated set defined by the adapter package; there is
// no mutable process-wide theme registry.
package editor
