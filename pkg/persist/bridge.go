// Package persist defines the contract between the editing layer and the
// business-object persistence it lives inside. The bridge owns document
// lifetimes: it constructs documents around create/load and serializes them
// back on save. Persisting the serialized text is the caller's responsibility.
package persist

import "github.com/egarim/editorhost/pkg/document"

// Bridge is the persistence collaborator consumed by the hosting layer.
type Bridge interface {
	// OnCreate returns a fresh document seeded with empty text and the
	// default language.
	OnCreate() *document.Document

	// OnLoad re-hydrates a document from previously serialized text.
	OnLoad(serialized string) *document.Document

	// OnSave serializes a document for storage.
	OnSave(doc *document.Document) string
}

// StandardBridge is the plain-text Bridge implementation: the serialized form
// is the document text itself.
type StandardBridge struct {
	defaultLanguage string
}

// NewStandardBridge creates a bridge seeding new documents with language. An
// empty language falls back to the document package default.
func NewStandardBridge(language string) *StandardBridge {
	if language == "" {
		language = document.DefaultLanguage
	}
	return &StandardBridge{defaultLanguage: language}
}

// OnCreate returns an empty document with the bridge's default language.
func (b *StandardBridge) OnCreate() *document.Document {
	return document.New("", b.defaultLanguage)
}

// OnLoad builds a document holding the serialized text verbatim.
func (b *StandardBridge) OnLoad(serialized string) *document.Document {
	return document.New(serialized, b.defaultLanguage)
}

// OnSave returns the document's text. A nil document serializes to the empty
// string rather than failing.
func (b *StandardBridge) OnSave(doc *document.Document) string {
	if doc == nil {
		return ""
	}
	return doc.Text()
}
