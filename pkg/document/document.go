package document

import "sync"

// DefaultLanguage is used when a document is created without an explicit language tag.
const DefaultLanguage = "markdown"

// ChangeListener receives the document's current state after every effective mutation.
type ChangeListener func(text, language string)

// Document is the unit of state being edited: a piece of text plus a language tag
// used to select syntax support in the widget. The text is never nil from the
// consumer's perspective; absent values are stored as the empty string.
type Document struct {
	mu        sync.Mutex
	text      string
	language  string
	listeners map[int]ChangeListener
	nextID    int
}

// New creates a document with the given text and language tag.
// An empty language falls back to DefaultLanguage.
func New(text, language string) *Document {
	if language == "" {
		language = DefaultLanguage
	}
	return &Document{
		text:      text,
		language:  language,
		listeners: make(map[int]ChangeListener),
	}
}

// Text returns the current content.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Language returns the current language tag.
func (d *Document) Language() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.language
}

// SetText updates the content and notifies listeners. Setting the same text again
// is a no-op so that round-tripped writes do not echo back as changes.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	if text == d.text {
		d.mu.Unlock()
		return
	}
	d.text = text
	listeners, text, language := d.snapshotLocked()
	d.mu.Unlock()

	for _, l := range listeners {
		l(text, language)
	}
}

// SetLanguage updates the language tag and notifies listeners.
func (d *Document) SetLanguage(language string) {
	if language == "" {
		language = DefaultLanguage
	}
	d.mu.Lock()
	if language == d.language {
		d.mu.Unlock()
		return
	}
	d.language = language
	listeners, text, language := d.snapshotLocked()
	d.mu.Unlock()

	for _, l := range listeners {
		l(text, language)
	}
}

// CopyFrom copies text and language from src into this document without replacing
// the instance. Existing listeners stay attached and are notified if anything
// actually changed.
func (d *Document) CopyFrom(src *Document) {
	if src == nil {
		return
	}
	text, language := src.Text(), src.Language()

	d.mu.Lock()
	if text == d.text && language == d.language {
		d.mu.Unlock()
		return
	}
	d.text = text
	d.language = language
	listeners, text, language := d.snapshotLocked()
	d.mu.Unlock()

	for _, l := range listeners {
		l(text, language)
	}
}

// Subscribe registers a change listener and returns an unsubscribe function.
// Unsubscribing twice is harmless.
func (d *Document) Subscribe(listener ChangeListener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners[id] = listener

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

// snapshotLocked returns the listener set and current values. Caller must hold mu.
func (d *Document) snapshotLocked() ([]ChangeListener, string, string) {
	listeners := make([]ChangeListener, 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	return listeners, d.text, d.language
}
