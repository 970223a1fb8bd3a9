package editor

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/alecthomas/chroma/v2"
)

// highlightedSegments tokenizes text with the current lexer and converts the
// tokens into RichText segments colored through Fyne theme color names.
func (e *Editor) highlightedSegments(text string) []widget.RichTextSegment {
	plain := []widget.RichTextSegment{
		&widget.TextSegment{
			Text:  text,
			Style: widget.RichTextStyle{TextStyle: fyne.TextStyle{Monospace: true}},
		},
	}

	if text == "" || e.lexer == nil {
		return plain
	}

	iterator, err := e.lexer.Tokenise(nil, text)
	if err != nil {
		log.Printf("Error tokenizing text: %v", err)
		return plain
	}

	var segments []widget.RichTextSegment
	for token := iterator(); token != chroma.EOF; token = iterator() {
		segment := &widget.TextSegment{
			Text: token.Value,
			Style: widget.RichTextStyle{
				TextStyle: fyne.TextStyle{Monospace: true},
			},
		}
		if name := tokenColor(token.Type); name != "" {
			segment.Style.ColorName = fyne.ThemeColorName(name)
		}
		segments = append(segments, segment)
	}
	return segments
}

// tokenColor maps chroma token categories to Fyne theme color names.
func tokenColor(tokenType chroma.TokenType) string {
	switch {
	case tokenType.InCategory(chroma.Keyword):
		return "primary"
	case tokenType.InCategory(chroma.String):
		return "success"
	case tokenType.InCategory(chroma.Comment):
		return "disabled"
	case tokenType.InCategory(chroma.Number):
		return "warning"
	case tokenType.InCategory(chroma.Name):
		if tokenType == chroma.NameFunction {
			return "primary"
		}
		return ""
	case tokenType.InCategory(chroma.Error):
		return "error"
	default:
		return ""
	}
}
