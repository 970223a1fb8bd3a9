package host

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/egarim/editorhost/pkg/adapter"
	"github.com/egarim/editorhost/pkg/document"
	"github.com/egarim/editorhost/pkg/editor"
)

// InProcessBinding integrates the widget into a host that renders it directly
// within the application's render tree. Value changes propagate synchronously
// on the same event dispatch the widget used to report them.
type InProcessBinding struct {
	factory  adapter.WidgetFactory
	opts     adapter.Options
	dispatch func(func())
}

// NewInProcess creates a binding that builds the bundled Fyne editor widget.
// Deferred layout work is marshalled back onto the Fyne event goroutine, so
// the widget is never touched from a timer goroutine.
func NewInProcess(opts adapter.Options) *InProcessBinding {
	return &InProcessBinding{factory: editor.Factory, opts: opts, dispatch: fyne.Do}
}

// NewInProcessWithFactory creates a binding around a custom widget factory.
// The factory's widget is assumed to handle its own threading; no dispatch is
// installed.
func NewInProcessWithFactory(factory adapter.WidgetFactory, opts adapter.Options) *InProcessBinding {
	return &InProcessBinding{factory: factory, opts: opts}
}

// BoundView is the result of binding a document: the canvas object to place in
// the surrounding layout, a data binding mirroring the document text for the
// application's value-changed notification path, and a dirty flag telling the
// containing form it has something to persist.
type BoundView struct {
	Content fyne.CanvasObject
	Value   binding.String

	adapter  *adapter.Adapter
	doc      *document.Document
	degraded bool
	dirty    bool
}

// Bind creates a widget adapter around doc and wires its change notifications
// into the view. Widget construction failure is reported through the log and a
// disabled placeholder; the enclosing application keeps running.
func (b *InProcessBinding) Bind(doc *document.Document) *BoundView {
	if doc == nil {
		doc = document.New("", "")
	}

	view := &BoundView{
		Value: binding.NewString(),
		doc:   doc,
	}
	if err := view.Value.Set(doc.Text()); err != nil {
		log.Printf("Failed to seed value binding: %v", err)
	}

	a := adapter.New(b.factory, b.opts)
	if b.dispatch != nil {
		a.SetDispatcher(b.dispatch)
	}
	if err := a.Initialize(doc); err != nil {
		log.Printf("Editor binding degraded: %v", err)
		placeholder := widget.NewLabel("Editor unavailable")
		placeholder.Alignment = fyne.TextAlignCenter
		view.Content = placeholder
		view.adapter = a
		view.degraded = true
		return view
	}

	a.SetOnDocumentChanged(func(d *document.Document) {
		if err := view.Value.Set(d.Text()); err != nil {
			log.Printf("Failed to propagate value change: %v", err)
		}
		view.dirty = true
	})

	view.adapter = a
	// The bundled editor is a canvas object; custom factories may produce
	// widgets that render elsewhere, in which case Content stays nil.
	if co, ok := a.Widget().(fyne.CanvasObject); ok {
		view.Content = co
	}
	return view
}

// State returns the binding's lifecycle state.
func (v *BoundView) State() adapter.State {
	return v.adapter.State()
}

// Degraded reports whether the widget runtime was unavailable at bind time.
func (v *BoundView) Degraded() bool {
	return v.degraded
}

// Document returns the bound document.
func (v *BoundView) Document() *document.Document {
	return v.doc
}

// Dirty reports whether the user edited the document since the last ClearDirty.
func (v *BoundView) Dirty() bool {
	return v.dirty
}

// ClearDirty resets the dirty flag, typically after a save.
func (v *BoundView) ClearDirty() {
	v.dirty = false
}

// PushValue forwards a host-side document change to the widget and refreshes
// the Value mirror. Host-originated pushes are not user edits, so the dirty
// flag is left alone.
func (v *BoundView) PushValue(doc *document.Document) {
	v.adapter.PushValue(doc)
	if err := v.Value.Set(v.doc.Text()); err != nil {
		log.Printf("Failed to mirror pushed value: %v", err)
	}
}

// RequestLayout schedules the deferred post-paint re-measure.
func (v *BoundView) RequestLayout() {
	v.adapter.RequestLayout()
}

// ApplyReadOnlyState forwards editability to the widget.
func (v *BoundView) ApplyReadOnlyState(isEditable bool) {
	v.adapter.SetReadOnly(!isEditable)
}

// Dispose tears down the adapter. Idempotent.
func (v *BoundView) Dispose() {
	v.adapter.Dispose()
}
