package embedded

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egarim/editorhost/pkg/adapter"
	"github.com/egarim/editorhost/pkg/document"
)

const readyTimeout = 2 * time.Second

func newReadySurface(t *testing.T, doc *document.Document, opts adapter.Options) *Surface {
	t.Helper()

	s, err := CreateSurface(doc, opts)
	require.NoError(t, err)
	require.NoError(t, s.WaitReady(readyTimeout))
	return s
}

func TestCreateSurfaceRequiresDocument(t *testing.T) {
	s, err := CreateSurface(nil, adapter.Options{})
	require.ErrorIs(t, err, ErrNoDocument)
	assert.Nil(t, s)
}

func TestCreateSurfaceRejectsBadConfiguration(t *testing.T) {
	_, err := CreateSurface(document.New("", ""), adapter.Options{Theme: "sepia"})
	require.Error(t, err)
}

func TestSurfaceBecomesBound(t *testing.T) {
	doc := document.New("", "markdown")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	assert.Equal(t, adapter.StateBound, s.State())
}

func TestRootParamsSharedByConstruction(t *testing.T) {
	doc := document.New("shared", "go")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	raw, ok := s.Scope().Resolve("root")
	require.True(t, ok)

	params, ok := raw.(Params)
	require.True(t, ok)
	assert.Same(t, doc, params.Value)
	assert.Equal(t, "100%", params.Height)
	assert.Equal(t, "100%", params.Width)
}

func TestWriteForwardReadBackRoundTrip(t *testing.T) {
	cases := []struct {
		text     string
		language string
	}{
		{"# Title\n\nBody", "markdown"},
		{`{"a": 1}`, "json"},
		{"", "markdown"},
	}

	doc := document.New("initial", "go")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	for _, tc := range cases {
		s.WriteForward(document.New(tc.text, tc.language))

		got := s.ReadBack()
		assert.Equal(t, tc.text, got.Text())
		assert.Equal(t, tc.language, got.Language())
	}
}

func TestReadBackReturnsSharedInstance(t *testing.T) {
	doc := document.New("x", "go")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	assert.Same(t, doc, s.ReadBack())

	// WriteForward must mutate that instance, not swap it out.
	s.WriteForward(document.New("y", "go"))
	assert.Same(t, doc, s.ReadBack())
	assert.Equal(t, "y", doc.Text())
}

func TestRuntimeEditNotifiesHost(t *testing.T) {
	doc := document.New("", "go")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	changed := make(chan string, 1)
	s.SetOnValueChanged(func(d *document.Document) {
		changed <- d.Text()
	})

	// An edit originating inside the runtime's component tree.
	s.dispatch(func() { s.widget.SetText("typed in runtime") })

	select {
	case text := <-changed:
		assert.Equal(t, "typed in runtime", text)
	case <-time.After(readyTimeout):
		t.Fatal("host never notified of runtime edit")
	}
	assert.Equal(t, "typed in runtime", doc.Text())
}

func TestWriteForwardDoesNotEcho(t *testing.T) {
	doc := document.New("start", "go")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	notified := make(chan struct{}, 4)
	s.SetOnValueChanged(func(*document.Document) {
		notified <- struct{}{}
	})

	s.WriteForward(document.New("host write", "go"))

	select {
	case <-notified:
		t.Fatal("host-originated write echoed back as a change notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWriteForwardFromValueChangedCallback(t *testing.T) {
	doc := document.New("", "go")
	s := newReadySurface(t, doc, adapter.Options{})
	defer s.Dispose()

	// The callback runs on the surface's loop goroutine. Writing back from it
	// must not wedge the loop.
	replied := make(chan struct{})
	s.SetOnValueChanged(func(d *document.Document) {
		if d.Text() == "ping" {
			s.WriteForward(document.New("pong", "go"))
			close(replied)
		}
	})

	s.dispatch(func() { s.widget.SetText("ping") })

	select {
	case <-replied:
	case <-time.After(readyTimeout):
		t.Fatal("WriteForward from the change callback never returned")
	}
	assert.Equal(t, "pong", s.ReadBack().Text())
}

func TestWaitReadyReportsFailure(t *testing.T) {
	failing := func(adapter.Options) (adapter.Widget, error) {
		return nil, errors.New("runtime assets missing")
	}

	s, err := CreateSurfaceWithFactory(document.New("", ""), adapter.Options{}, failing)
	require.NoError(t, err)
	defer s.Dispose()

	err = s.WaitReady(readyTimeout)
	require.ErrorIs(t, err, ErrNotReady)
	assert.NotEqual(t, adapter.StateBound, s.State())
}

func TestSizingNeverCollapses(t *testing.T) {
	doc := document.New("", "go")
	s := newReadySurface(t, doc, adapter.Options{Width: "640", Height: "480"})
	defer s.Dispose()

	width, height := s.widget.size()
	assert.Equal(t, float32(640), width)
	assert.Equal(t, float32(480), height)
}

func TestSizingEnforcesMinimum(t *testing.T) {
	doc := document.New("", "go")
	s := newReadySurface(t, doc, adapter.Options{Width: "100%", Height: "100%"})
	defer s.Dispose()

	width, height := s.widget.size()
	assert.NotZero(t, width)
	assert.NotZero(t, height)
	assert.GreaterOrEqual(t, width, adapter.DefaultMinWidth)
	assert.GreaterOrEqual(t, height, adapter.DefaultMinHeight)
}

func TestDisposeIdempotent(t *testing.T) {
	doc := document.New("keep", "go")
	s := newReadySurface(t, doc, adapter.Options{})

	s.Dispose()
	s.Dispose()

	assert.Equal(t, adapter.StateDisposed, s.State())
	assert.True(t, s.Scope().Closed())

	// Late traffic is dropped silently.
	s.WriteForward(document.New("late", "go"))
	s.ApplyReadOnlyState(false)
	s.RequestLayout()
	assert.Equal(t, "keep", doc.Text())
}
