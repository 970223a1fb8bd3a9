// Package embedded integrates the editor widget into hosts that cannot render
// it in-process and must delegate to an isolated runtime surface.
//
// The surface owns a dispatch goroutine standing in for the runtime's own
// event loop: every widget access crosses that boundary as a message. The
// document is shared with the runtime by construction parameter, never by
// serialization, which is what makes ReadBack a plain read of the shared
// instance. Writing the other way goes through WriteForward, which copies into
// the shared instance instead of replacing it; replacing it would break the
// widget's existing binding.
package embedded

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/egarim/editorhost/pkg/adapter"
	"github.com/egarim/editorhost/pkg/document"
)

// ErrNoDocument reports a surface constructed without the shared document.
// This is a programming defect and is caught at construction time, not at
// read-back time.
var ErrNoDocument = errors.New("embedded surface requires a document")

// ErrNotReady reports a surface whose widget never signalled readiness within
// the wait deadline, typically because the runtime's assets failed to load.
var ErrNotReady = errors.New("embedded surface did not become ready")

// Params are the root component's initial parameters inside the runtime.
type Params struct {
	Value  *document.Document
	Height string
	Width  string
}

// Surface hosts the editing component on an isolated runtime.
type Surface struct {
	mu       sync.Mutex
	state    adapter.State
	disposed bool

	doc     *document.Document
	scope   *Scope
	adapter *adapter.Adapter
	widget  *runtimeWidget

	ops   chan func()
	done  chan struct{}
	ready chan struct{}
	fail  chan struct{}

	onValueChanged func(*document.Document)

	log *zap.Logger
}

// CreateSurface instantiates a runtime surface around the shared document.
func CreateSurface(doc *document.Document, opts adapter.Options) (*Surface, error) {
	return CreateSurfaceWithFactory(doc, opts, newRuntimeWidget)
}

// CreateSurfaceWithFactory instantiates a surface whose widget comes from a
// custom factory. A nil document or an invalid configuration fails here, never
// later: these are setup defects, fatal to the binding instance.
func CreateSurfaceWithFactory(doc *document.Document, opts adapter.Options, factory adapter.WidgetFactory) (*Surface, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("surface configuration: %w", err)
	}

	s := &Surface{
		state: adapter.StateInitializing,
		doc:   doc,
		scope: NewScope(),
		ops:   make(chan func(), 16),
		done:  make(chan struct{}),
		ready: make(chan struct{}),
		fail:  make(chan struct{}),
		log:   Logger(),
	}

	// The root component receives the document by shared ownership plus
	// fill-the-surface sizing; the enforced minimum keeps the widget from
	// collapsing when the runtime does not inherit container size.
	if err := s.scope.Register("root", Params{Value: doc, Height: "100%", Width: "100%"}); err != nil {
		return nil, err
	}

	go s.loop()
	s.dispatch(func() { s.initialize(opts, factory) })
	return s, nil
}

// loop is the runtime's event dispatch. All widget access happens here.
func (s *Surface) loop() {
	for {
		select {
		case fn := <-s.ops:
			fn()
		case <-s.done:
			return
		}
	}
}

// dispatch sends fn across the runtime boundary. Messages arriving after
// disposal are silently dropped.
func (s *Surface) dispatch(fn func()) {
	select {
	case s.ops <- fn:
	case <-s.done:
		s.log.Debug("dropping message after surface disposal")
	}
}

// initialize runs on the loop goroutine.
func (s *Surface) initialize(opts adapter.Options, factory adapter.WidgetFactory) {
	a := adapter.New(factory, opts)
	// Deferred layout work re-enters the loop like every other widget access.
	a.SetDispatcher(s.dispatch)
	if err := a.Initialize(s.doc); err != nil {
		s.log.Warn("embedded widget failed to initialize", zap.Error(err))
		close(s.fail)
		return
	}

	a.SetOnDocumentChanged(func(d *document.Document) {
		s.mu.Lock()
		callback := s.onValueChanged
		s.mu.Unlock()
		if callback != nil {
			callback(d)
		}
	})

	s.mu.Lock()
	s.adapter = a
	if w, ok := a.Widget().(*runtimeWidget); ok {
		s.widget = w
	}
	s.state = adapter.StateBound
	s.mu.Unlock()

	a.RequestLayout()
	close(s.ready)
}

// WaitReady blocks until the widget reports ready or the timeout elapses.
// A surface that never becomes ready reports instead of hanging; callers
// degrade the editing session and keep the application running.
func (s *Surface) WaitReady(timeout time.Duration) error {
	select {
	case <-s.ready:
		return nil
	case <-s.fail:
		return ErrNotReady
	case <-s.done:
		return ErrNotReady
	case <-time.After(timeout):
		return fmt.Errorf("%w after %s", ErrNotReady, timeout)
	}
}

// State returns the binding's lifecycle state.
func (s *Surface) State() adapter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Scope returns the surface's service scope.
func (s *Surface) Scope() *Scope {
	return s.scope
}

// SetOnValueChanged registers the native host's change notification for edits
// made inside the runtime.
func (s *Surface) SetOnValueChanged(callback func(*document.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onValueChanged = callback
}

// ReadBack returns the shared document's current state. No cross-boundary
// request is needed: the instance was passed by shared ownership at
// construction, so its current state is authoritative.
func (s *Surface) ReadBack() *document.Document {
	return s.doc
}

// WriteForward copies text and language from src into the shared document and
// pushes the result to the widget. The shared instance is never replaced. The
// copy completes before the call returns, so an immediate ReadBack observes
// it; the widget push crosses the runtime boundary as a message. WriteForward
// never blocks on the loop, which makes it safe to call from inside a
// value-changed callback.
func (s *Surface) WriteForward(src *document.Document) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.doc.CopyFrom(src)
	s.dispatch(func() {
		s.mu.Lock()
		a := s.adapter
		s.mu.Unlock()
		if a != nil {
			a.PushValue(s.doc)
		}
	})
}

// ApplyReadOnlyState forwards editability to the widget inside the runtime.
func (s *Surface) ApplyReadOnlyState(isEditable bool) {
	s.dispatch(func() {
		s.mu.Lock()
		a := s.adapter
		s.mu.Unlock()
		if a != nil {
			a.SetReadOnly(!isEditable)
		}
	})
}

// RequestLayout schedules the deferred re-measure inside the runtime.
func (s *Surface) RequestLayout() {
	s.dispatch(func() {
		s.mu.Lock()
		a := s.adapter
		s.mu.Unlock()
		if a != nil {
			a.RequestLayout()
		}
	})
}

// Dispose tears down the surface and releases the runtime's service scope.
// Idempotent; messages still in flight are dropped.
func (s *Surface) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.state = adapter.StateDisposed
	a := s.adapter
	s.adapter = nil
	s.onValueChanged = nil
	s.mu.Unlock()

	close(s.done)
	if a != nil {
		a.Dispose()
	}
	if err := s.scope.Close(); err != nil {
		s.log.Warn("closing surface scope", zap.Error(err))
	}
}
