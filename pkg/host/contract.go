// Package host binds the editor widget into a hosting environment and exposes
// a uniform read/write contract over the document being edited.
//
// Two variants exist: the in-process binding in this package renders the
// widget directly inside the application's Fyne render tree; the embedded
// variant in pkg/embedded delegates rendering to an isolated runtime surface.
package host

import "github.com/egarim/editorhost/pkg/adapter"

// Binding is the part of the contract both hosting variants share.
type Binding interface {
	// State returns the binding's lifecycle state.
	State() adapter.State

	// ApplyReadOnlyState forwards editability to the widget.
	ApplyReadOnlyState(isEditable bool)

	// Dispose tears the binding down. Must be idempotent.
	Dispose()
}
