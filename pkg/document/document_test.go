package document

import "testing"

func TestNewDefaults(t *testing.T) {
	doc := New("", "")

	if doc.Text() != "" {
		t.Errorf("Expected empty text, got '%s'", doc.Text())
	}

	if doc.Language() != DefaultLanguage {
		t.Errorf("Expected default language '%s', got '%s'", DefaultLanguage, doc.Language())
	}
}

func TestSetTextNotifiesOnce(t *testing.T) {
	doc := New("hello", "go")

	var calls int
	unsubscribe := doc.Subscribe(func(text, language string) {
		calls++
		if text != "world" {
			t.Errorf("Expected text 'world' in notification, got '%s'", text)
		}
	})
	defer unsubscribe()

	doc.SetText("world")
	if calls != 1 {
		t.Errorf("Expected 1 notification, got %d", calls)
	}
}

func TestSetSameTextIsNoOp(t *testing.T) {
	doc := New("same", "go")

	calls := 0
	doc.Subscribe(func(string, string) { calls++ })

	doc.SetText("same")
	if calls != 0 {
		t.Errorf("Setting identical text should not notify, got %d notifications", calls)
	}
}

func TestSetLanguageFallback(t *testing.T) {
	doc := New("x", "json")

	doc.SetLanguage("")
	if doc.Language() != DefaultLanguage {
		t.Errorf("Expected fallback to '%s', got '%s'", DefaultLanguage, doc.Language())
	}
}

func TestCopyFromKeepsInstanceAndListeners(t *testing.T) {
	dst := New("old", "go")
	src := New("# Title\n\nBody", "markdown")

	var gotText, gotLanguage string
	calls := 0
	dst.Subscribe(func(text, language string) {
		calls++
		gotText = text
		gotLanguage = language
	})

	dst.CopyFrom(src)

	if dst.Text() != "# Title\n\nBody" || dst.Language() != "markdown" {
		t.Errorf("CopyFrom did not copy values: text='%s' language='%s'", dst.Text(), dst.Language())
	}
	if calls != 1 {
		t.Errorf("Expected 1 notification from CopyFrom, got %d", calls)
	}
	if gotText != "# Title\n\nBody" || gotLanguage != "markdown" {
		t.Errorf("Notification carried wrong values: '%s'/'%s'", gotText, gotLanguage)
	}

	// Copying identical values again must stay silent.
	dst.CopyFrom(src)
	if calls != 1 {
		t.Errorf("CopyFrom with identical values should not notify, got %d", calls)
	}
}

func TestCopyFromNil(t *testing.T) {
	doc := New("keep", "go")
	doc.CopyFrom(nil)

	if doc.Text() != "keep" {
		t.Errorf("CopyFrom(nil) must not change text, got '%s'", doc.Text())
	}
}

func TestUnsubscribe(t *testing.T) {
	doc := New("", "go")

	calls := 0
	unsubscribe := doc.Subscribe(func(string, string) { calls++ })

	doc.SetText("a")
	unsubscribe()
	doc.SetText("b")
	unsubscribe() // second call must be harmless

	if calls != 1 {
		t.Errorf("Expected 1 notification before unsubscribe, got %d", calls)
	}
}
