package editor

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/egarim/editorhost/pkg/adapter"
)

// ErrNoRuntime is returned when the widget is created before a Fyne app exists.
var ErrNoRuntime = errors.New("no fyne application is running")

// Editor is the bundled code-editing widget. Editing happens in a multiline
// Entry; read-only mode swaps in a RichText view with chroma-based syntax
// highlighting.
type Editor struct {
	widget.BaseWidget

	content     *widget.Entry
	richContent *widget.RichText
	lineNumbers *widget.Label
	background  *canvas.Rectangle
	scroll      *container.Scroll
	box         *fyne.Container

	palette  *Palette
	language string
	lexer    chroma.Lexer
	fontSize int

	readonly        bool
	showLineNumbers bool
	lastHighlighted string

	onChanged func(string)
}

// Create builds an editor for the given configuration. It fails when no Fyne
// application is running, which is the desktop analog of the widget's script
// assets never loading.
func Create(opts adapter.Options) (*Editor, error) {
	if fyne.CurrentApp() == nil {
		return nil, ErrNoRuntime
	}

	e := &Editor{
		palette:         PaletteFor(opts.Theme),
		language:        "plaintext",
		fontSize:        opts.FontSize,
		showLineNumbers: true,
	}
	if e.fontSize <= 0 {
		e.fontSize = adapter.DefaultFontSize
	}

	e.ExtendBaseWidget(e)
	e.setupLexer()
	e.buildUI()
	return e, nil
}

// Factory adapts Create to the adapter.WidgetFactory contract.
func Factory(opts adapter.Options) (adapter.Widget, error) {
	return Create(opts)
}

// SetText replaces the editor content.
func (e *Editor) SetText(text string) {
	e.content.SetText(text)
	e.updateLineNumbers()
	e.lastHighlighted = ""
	if e.readonly {
		e.updateHighlightedView()
	}
}

// Text returns the current editor content.
func (e *Editor) Text() string {
	return e.content.Text
}

// SetLanguage changes the syntax highlighting language.
func (e *Editor) SetLanguage(language string) {
	if language == "" {
		return
	}
	e.language = language
	e.setupLexer()
	e.lastHighlighted = ""
	if e.readonly {
		e.updateHighlightedView()
	}
}

// Language returns the current syntax language.
func (e *Editor) Language() string {
	return e.language
}

// SetOnChanged registers the content change callback.
func (e *Editor) SetOnChanged(callback func(string)) {
	e.onChanged = callback
}

// SetReadOnly toggles between the editable Entry and the highlighted RichText
// view without re-creating the widget.
func (e *Editor) SetReadOnly(readonly bool) {
	if e.readonly == readonly {
		return
	}
	e.readonly = readonly
	if readonly {
		e.updateHighlightedView()
	}
	e.updateMainContainer()
}

// IsReadOnly reports whether the editor is in the highlighted view mode.
func (e *Editor) IsReadOnly() bool {
	return e.readonly
}

// ApplySize resizes the widget to an explicit pixel size.
func (e *Editor) ApplySize(width, height float32) {
	e.Resize(fyne.NewSize(width, height))
}

// RefreshLayout triggers a re-measure of the widget tree.
func (e *Editor) RefreshLayout() {
	e.Refresh()
}

// SetShowLineNumbers toggles the line number gutter.
func (e *Editor) SetShowLineNumbers(show bool) {
	e.showLineNumbers = show
	e.updateMainContainer()
}

// CreateRenderer creates the widget renderer.
func (e *Editor) CreateRenderer() fyne.WidgetRenderer {
	return &editorRenderer{editor: e}
}

// setupLexer resolves the chroma lexer for the current language.
func (e *Editor) setupLexer() {
	e.lexer = lexers.Get(e.language)
	if e.lexer == nil {
		e.lexer = lexers.Fallback
	}
	e.lexer = chroma.Coalesce(e.lexer)
}

// buildUI assembles the entry, gutter and scroll containers.
func (e *Editor) buildUI() {
	e.content = widget.NewMultiLineEntry()
	e.content.Wrapping = fyne.TextWrapOff
	e.content.TextStyle = fyne.TextStyle{Monospace: true}
	e.content.OnChanged = func(text string) {
		e.updateLineNumbers()
		e.lastHighlighted = ""
		if e.onChanged != nil {
			e.onChanged(text)
		}
	}

	e.richContent = widget.NewRichText()

	e.lineNumbers = widget.NewLabel("1")
	e.lineNumbers.TextStyle = fyne.TextStyle{Monospace: true}
	e.lineNumbers.Alignment = fyne.TextAlignTrailing

	e.background = canvas.NewRectangle(e.palette.Background)

	e.scroll = container.NewScroll(e.content)
	e.box = container.NewStack(
		e.background,
		container.NewBorder(nil, nil, e.lineNumbers, nil, e.scroll),
	)

	e.updateLineNumbers()
}

// updateLineNumbers refreshes the gutter to match the line count.
func (e *Editor) updateLineNumbers() {
	if !e.showLineNumbers {
		return
	}

	lineCount := strings.Count(e.content.Text, "\n") + 1
	var numbers []string
	for i := 1; i <= lineCount; i++ {
		numbers = append(numbers, fmt.Sprintf("%4d", i))
	}
	e.lineNumbers.SetText(strings.Join(numbers, "\n"))
}

// updateMainContainer swaps the center widget according to the current mode.
func (e *Editor) updateMainContainer() {
	if e.box == nil {
		return
	}

	var center fyne.CanvasObject
	if e.readonly {
		center = container.NewScroll(e.richContent)
	} else {
		center = e.scroll
	}

	inner := center
	if e.showLineNumbers {
		inner = container.NewBorder(nil, nil, e.lineNumbers, nil, center)
	}
	e.box.Objects = []fyne.CanvasObject{e.background, inner}
	e.box.Refresh()
}

// updateHighlightedView regenerates the RichText segments, skipping content
// that is already highlighted.
func (e *Editor) updateHighlightedView() {
	text := e.content.Text
	if text == e.lastHighlighted {
		return
	}
	e.richContent.Segments = e.highlightedSegments(text)
	e.richContent.Refresh()
	e.lastHighlighted = text
}

// editorRenderer renders the editor's container tree. The minimum size is
// non-zero on purpose: an editor embedded without explicit dimensions must not
// collapse.
type editorRenderer struct {
	editor *Editor
}

func (r *editorRenderer) Layout(size fyne.Size) {
	r.editor.box.Resize(size)
}

func (r *editorRenderer) MinSize() fyne.Size {
	return fyne.NewSize(adapter.DefaultMinWidth, adapter.DefaultMinHeight)
}

func (r *editorRenderer) Refresh() {
	r.editor.box.Refresh()
}

func (r *editorRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.editor.box}
}

func (r *editorRenderer) Destroy() {}
