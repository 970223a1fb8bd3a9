package persist

import (
	"testing"
)

func TestOnCreateInitialState(t *testing.T) {
	bridge := NewStandardBridge("")

	doc := bridge.OnCreate()
	if doc.Text() != "" {
		t.Errorf("Expected empty text, got '%s'", doc.Text())
	}
	if doc.Language() != "markdown" {
		t.Errorf("Expected default language 'markdown', got '%s'", doc.Language())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	bridge := NewStandardBridge("markdown")

	doc := bridge.OnLoad("# Title\n\nBody")
	if doc.Text() != "# Title\n\nBody" {
		t.Fatalf("OnLoad lost content: '%s'", doc.Text())
	}

	// Simulate a user edit, then serialize.
	doc.SetText("# Title\n\nBody!")

	serialized := bridge.OnSave(doc)
	if serialized != "# Title\n\nBody!" {
		t.Errorf("OnSave returned '%s', expected exact edited text", serialized)
	}
}

func TestOnSaveNilDocument(t *testing.T) {
	bridge := NewStandardBridge("go")

	if got := bridge.OnSave(nil); got != "" {
		t.Errorf("Expected empty serialization for nil document, got '%s'", got)
	}
}

func TestCustomDefaultLanguage(t *testing.T) {
	bridge := NewStandardBridge("json")

	doc := bridge.OnCreate()
	if doc.Language() != "json" {
		t.Errorf("Expected language 'json', got '%s'", doc.Language())
	}
}
