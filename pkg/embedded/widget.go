package embedded

import (
	"sync"

	"github.com/egarim/editorhost/pkg/adapter"
)

// runtimeWidget is the editing component living inside the isolated runtime.
// The surface's dispatch loop owns it; the native host never touches it
// directly. Its state is mutex-guarded only because the adapter's deferred
// layout pass arrives from a timer goroutine.
type runtimeWidget struct {
	mu        sync.Mutex
	text      string
	language  string
	readonly  bool
	width     float32
	height    float32
	onChanged func(string)
}

func newRuntimeWidget(adapter.Options) (adapter.Widget, error) {
	return &runtimeWidget{}, nil
}

func (w *runtimeWidget) SetText(text string) {
	w.mu.Lock()
	w.text = text
	callback := w.onChanged
	w.mu.Unlock()

	// The runtime's component reports every content mutation, including ones
	// the host itself pushed; the adapter filters the echo.
	if callback != nil {
		callback(text)
	}
}

func (w *runtimeWidget) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.text
}

func (w *runtimeWidget) SetLanguage(language string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.language = language
}

func (w *runtimeWidget) SetOnChanged(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChanged = callback
}

func (w *runtimeWidget) SetReadOnly(readonly bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.readonly = readonly
}

func (w *runtimeWidget) ApplySize(width, height float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width = width
	w.height = height
}

func (w *runtimeWidget) RefreshLayout() {}

func (w *runtimeWidget) size() (float32, float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}
