package layout

import (
	"image"
	"math"

	"github.com/ByLCY/textbox/parser"
)

// measureHandler computes the width of a line and the number of spaces in it.
type measureHandler struct {
	style    CharacterStyle
	trailing bool

	cursor int
	right  int
	// spaces counts the spaces followed by printed text, partial the ones
	// seen since the last printed text.
	spaces  int
	partial int
}

func (h *measureHandler) Measure(text string) int { return h.style.Measure(text) }

func (h *measureHandler) Whitespace(_ string, count, width int) error {
	h.cursor += width
	h.partial += count
	if h.trailing {
		h.right = max(h.right, h.cursor)
		h.spaces += h.partial
		h.partial = 0
	}
	return nil
}

func (h *measureHandler) PrintedCharacters(_ string, width int) error {
	h.cursor += width
	h.right = max(h.right, h.cursor)
	h.spaces += h.partial
	h.partial = 0
	return nil
}

func (h *measureHandler) MoveCursor(delta int) error {
	h.cursor += delta
	return nil
}

func (h *measureHandler) ChangeStyle(parser.StyleChange) error { return nil }

// LineMeasurement is the result of measuring a single line.
type LineMeasurement struct {
	Width  int
	Spaces int
	End    LineEnd
}

// MeasureLine measures the first line of text in a box of the given width.
// The plugins are cloned before use.
func (s TextBoxStyle) MeasureLine(style CharacterStyle, text string, width int, plugins ...Plugin) LineMeasurement {
	src := parser.Parse(text)
	chain := NewChain(plugins...).Clone()
	chain.NewLine()
	cursor := NewLineCursor(image.Point{}, width, s.TabSize.Width(style))
	return s.measureLine(style, cursor, chain, &src)
}

func (s TextBoxStyle) measureLine(style CharacterStyle, cursor LineCursor, chain *Chain, src *parser.Parser) LineMeasurement {
	h := &measureHandler{style: style, trailing: s.TrailingSpaces}
	opts := lineOptions{
		leading:  s.LeadingSpaces,
		trailing: s.TrailingSpaces,
		spaces:   UniformSpaces(style.Measure(" ")),
	}
	// The measure handler never fails.
	end, _ := processLine(cursor, opts, chain, src, h)
	return LineMeasurement{Width: h.right, Spaces: h.spaces, End: end}
}

// MeasureTextHeight returns the height of text laid out in a box of the given width.
func (s TextBoxStyle) MeasureTextHeight(style CharacterStyle, text string, width int) int {
	return s.measureTextHeight(NewChain(), style, text, width)
}

func (s TextBoxStyle) measureTextHeight(chain *Chain, style CharacterStyle, text string, width int) int {
	base := style.LineHeight()
	chain.setMode(Measuring)
	src := parser.Parse(text)
	cursor := NewCursor(image.Rect(0, 0, width, math.MaxInt32), base, s.LineHeight.Resolve(base), s.TabSize.Width(style))

	height := 0
	afterNewLine := false
	for {
		chain.NewLine()
		if _, ok := chain.peek(&src); !ok {
			if afterNewLine {
				// An empty last line still takes space.
				height = cursor.Y + base
			}
			return height
		}
		m := s.measureLine(style, cursor.Line(), chain, &src)
		height = cursor.Y + base
		switch m.End {
		case EndOfText:
			return height
		case CarriageReturn:
			afterNewLine = false
		case NewLine:
			cursor.NewLine()
			cursor.Y += s.ParagraphSpacing
			afterNewLine = true
		default:
			cursor.NewLine()
			afterNewLine = false
		}
	}
}
