package adapter

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/egarim/editorhost/pkg/document"
)

// State tracks a binding's lifecycle. There is no transition back from Bound to
// Initializing; a changed document is pushed to the live widget instead of
// rebinding.
type State int

const (
	StateUnbound State = iota
	StateInitializing
	StateBound
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateInitializing:
		return "initializing"
	case StateBound:
		return "bound"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrWidgetUnavailable wraps factory failures: the widget runtime could not be
// constructed. The condition is recoverable; the host reports it and degrades to
// a placeholder instead of crashing.
var ErrWidgetUnavailable = errors.New("editor widget unavailable")

// layoutDelay is the deferred-layout wait. The widget does not expose a
// reliable ready-for-layout signal, so the re-measure runs after its paint
// cycle has had time to complete.
const layoutDelay = 50 * time.Millisecond

// Adapter bridges the widget's native API and the document contract: it pushes
// document state into the widget, turns widget change events into document
// mutations, and owns the widget's lifecycle.
//
// Widget callbacks fire synchronously on the host's dispatch goroutine, so the
// adapter never holds its lock while calling into the widget.
type Adapter struct {
	mu       sync.Mutex
	factory  WidgetFactory
	opts     Options
	widget   Widget
	doc      *document.Document
	state    State
	disposed bool

	// lastKnown mirrors the text most recently pushed to or read from the
	// widget. Writes originating from PushValue are recognized by string
	// equality and do not echo back as changes. lastLanguage does the same
	// for the widget's syntax language.
	lastKnown    string
	lastLanguage string

	// dispatcher marshals adapter-originated widget calls (the deferred
	// layout pass) onto the host's UI dispatch. Host-originated calls
	// already arrive on that dispatch and go to the widget directly.
	dispatcher func(func())

	onDocumentChanged func(*document.Document)
}

// New creates an adapter that builds its widget through factory.
func New(factory WidgetFactory, opts Options) *Adapter {
	return &Adapter{
		factory: factory,
		opts:    opts.withDefaults(),
		state:   StateUnbound,
	}
}

// State returns the adapter's lifecycle state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Widget returns the live widget handle, or nil before Initialize succeeds or
// after Dispose.
func (a *Adapter) Widget() Widget {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.widget
}

// Options returns the effective widget configuration, with defaults applied.
func (a *Adapter) Options() Options {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.opts
}

// SetDispatcher registers the host's UI dispatch. Deferred layout work fires
// from a timer goroutine and is routed through it; without a dispatcher the
// work runs on the timer goroutine, which is only safe for widgets that do
// their own locking.
func (a *Adapter) SetDispatcher(dispatcher func(func())) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatcher = dispatcher
}

// SetOnDocumentChanged registers the host's change notification. It is raised
// exactly once per effective user edit, after the document has been mutated.
func (a *Adapter) SetOnDocumentChanged(callback func(*document.Document)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onDocumentChanged = callback
}

// Initialize constructs the widget, registers the change listener and pushes
// the document's text as the widget's starting content. A nil document is
// treated as an empty one. Factory failure is logged and returned wrapped in
// ErrWidgetUnavailable; the adapter stays unbound and remains safe to dispose.
func (a *Adapter) Initialize(doc *document.Document) error {
	a.mu.Lock()
	if a.state != StateUnbound {
		defer a.mu.Unlock()
		return fmt.Errorf("initialize in state %s", a.state)
	}
	if doc == nil {
		doc = document.New("", "")
	}
	a.state = StateInitializing
	a.doc = doc
	factory, opts := a.factory, a.opts
	a.mu.Unlock()

	w, err := factory(opts)
	if err != nil {
		a.mu.Lock()
		a.state = StateUnbound
		a.doc = nil
		a.mu.Unlock()
		log.Printf("Editor widget construction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrWidgetUnavailable, err)
	}

	text := doc.Text()
	a.mu.Lock()
	a.widget = w
	a.lastKnown = text
	a.lastLanguage = doc.Language()
	a.mu.Unlock()

	w.SetLanguage(doc.Language())
	w.SetOnChanged(a.handleWidgetChange)
	w.SetText(text)

	width, height := opts.resolvedSize()
	w.ApplySize(width, height)

	a.mu.Lock()
	a.state = StateBound
	a.mu.Unlock()

	if opts.AutomaticLayout {
		a.RequestLayout()
	}
	return nil
}

// PushValue sets the widget content to the document's text. It is a logged
// no-op before the widget is bound or after disposal; it never fails.
// Concurrent pushes against an in-flight edit resolve as last-write-wins.
func (a *Adapter) PushValue(doc *document.Document) {
	a.mu.Lock()
	if a.state != StateBound || a.widget == nil {
		state := a.state
		a.mu.Unlock()
		log.Printf("Dropping value push in state %s", state)
		return
	}

	text, language := "", ""
	if doc != nil {
		text = doc.Text()
		language = doc.Language()
	}

	w := a.widget
	target := a.doc
	languageChanged := language != "" && language != a.lastLanguage
	textChanged := text != a.lastKnown
	if textChanged {
		a.lastKnown = text
	}
	if languageChanged {
		a.lastLanguage = language
	}
	a.mu.Unlock()

	if languageChanged {
		target.SetLanguage(language)
		w.SetLanguage(language)
	}
	if textChanged {
		target.SetText(text)
		w.SetText(text)
	}
}

// RequestLayout schedules a deferred widget re-measure. It must run after the
// widget's first paint and after any programmatic resize; without it an
// embedded widget collapses to a minimal size.
func (a *Adapter) RequestLayout() {
	a.mu.Lock()
	if a.state != StateBound || a.widget == nil {
		a.mu.Unlock()
		return
	}
	w := a.widget
	width, height := a.opts.resolvedSize()
	a.mu.Unlock()

	time.AfterFunc(layoutDelay, func() {
		a.mu.Lock()
		disposed := a.disposed
		dispatcher := a.dispatcher
		a.mu.Unlock()
		if disposed {
			return
		}

		apply := func() {
			a.mu.Lock()
			stale := a.disposed
			a.mu.Unlock()
			if stale {
				return
			}
			w.ApplySize(width, height)
			w.RefreshLayout()
		}
		if dispatcher != nil {
			dispatcher(apply)
		} else {
			apply()
		}
	})
}

// SetReadOnly toggles widget editability.
func (a *Adapter) SetReadOnly(readonly bool) {
	a.mu.Lock()
	w := a.widget
	a.mu.Unlock()
	if w == nil {
		return
	}
	w.SetReadOnly(readonly)
}

// Dispose detaches the change listener and releases the widget handle. It is
// idempotent; change notifications arriving afterwards are dropped without
// touching the document.
func (a *Adapter) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	a.state = StateDisposed
	w := a.widget
	a.widget = nil
	a.onDocumentChanged = nil
	a.doc = nil
	a.mu.Unlock()

	if w != nil {
		w.SetOnChanged(nil)
	}
}

// handleWidgetChange is the widget's content-change callback. The disposed flag
// is checked first so that late events from a torn-down widget cannot mutate
// document state.
func (a *Adapter) handleWidgetChange(text string) {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	if text == a.lastKnown {
		a.mu.Unlock()
		return
	}
	a.lastKnown = text
	doc := a.doc
	notify := a.onDocumentChanged
	a.mu.Unlock()

	doc.SetText(text)
	if notify != nil {
		notify(doc)
	}
}
