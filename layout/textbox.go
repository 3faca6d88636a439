package layout

import (
	"fmt"
	"image"
	"strings"

	"github.com/ByLCY/textbox/parser"
)

// TextBox lays out text inside a rectangle.
type TextBox struct {
	Text  string
	Style TextBoxStyle

	box            image.Rectangle
	bounds         image.Rectangle
	characterStyle CharacterStyle
	plugins        []Plugin
}

// NewTextBox returns a text box. The height mode of style is applied immediately,
// see Bounds.
func NewTextBox(text string, bounds image.Rectangle, characterStyle CharacterStyle, style TextBoxStyle) *TextBox {
	tb := &TextBox{
		Text:           text,
		Style:          style,
		box:            bounds.Canon(),
		characterStyle: characterStyle,
	}
	tb.fit()
	return tb
}

// AddPlugin appends a plugin to the chain. The first plugin added is the
// outermost one.
func (tb *TextBox) AddPlugin(p Plugin) *TextBox {
	tb.plugins = append(tb.plugins, p)
	tb.fit()
	return tb
}

// Bounds returns the box after applying the height mode.
func (tb *TextBox) Bounds() image.Rectangle { return tb.bounds }

func (tb *TextBox) fit() {
	tb.bounds = tb.box
	if tb.Style.HeightMode.Kind == HeightExact {
		return
	}
	h := tb.Style.measureTextHeight(tb.newChain(), tb.characterStyle, tb.Text, tb.box.Dx())
	tb.bounds.Max.Y = tb.box.Min.Y + tb.Style.HeightMode.apply(tb.box.Dy(), h)
}

func (tb *TextBox) newChain() *Chain {
	plugins := make([]Plugin, len(tb.plugins))
	for i, p := range tb.plugins {
		plugins[i] = p.Clone()
	}
	return NewChain(plugins...)
}

// Draw renders the text box and returns the text that did not fit.
func (tb *TextBox) Draw(target DrawTarget) (string, error) {
	return tb.draw(target, nil)
}

// DrawLayout renders the text box and reports every line it drew.
func (tb *TextBox) DrawLayout(target DrawTarget) (*BoxResult, error) {
	res := &BoxResult{Bounds: rectOf(tb.bounds)}
	remaining, err := tb.draw(target, res)
	if err != nil {
		return nil, err
	}
	res.Remaining = remaining
	return res, nil
}

// Layout runs the rendering pass without drawing and reports every line.
func (tb *TextBox) Layout() (*BoxResult, error) {
	return tb.DrawLayout(Discard)
}

// draw renders the box. If res is not nil, the text height and the lines are
// recorded in it.
func (tb *TextBox) draw(target DrawTarget, res *BoxResult) (string, error) {
	style := tb.Style
	cs := tb.characterStyle.Clone()
	styles := &styleState{initial: cs.Clone(), current: cs}
	chain := tb.newChain()

	base := cs.LineHeight()
	textHeight := style.measureTextHeight(chain.Clone(), cs, tb.Text, tb.bounds.Dx())
	if res != nil {
		res.TextHeight = textHeight
	}
	cursor := NewCursor(tb.bounds, base, style.LineHeight.Resolve(base), style.TabSize.Width(cs))
	cursor.Y += verticalOffset(style.VerticalAlignment, textHeight, tb.bounds.Dy())

	chain.setMode(Rendering)
	chain.OnStartRender(&cursor, Properties{TextHeight: textHeight, Bounds: tb.bounds, Style: style})

	src := parser.Parse(tb.Text)
	for {
		chain.NewLine()
		if _, ok := chain.peek(&src); !ok {
			chain.OnRenderingFinished()
			return src.Remaining(), nil
		}
		if style.pastBottom(&cursor) {
			return src.Remaining(), nil
		}

		measureChain := chain.Clone()
		measureChain.setMode(Measuring)
		measureSrc := src
		m := style.measureLine(styles.current, cursor.Line(), measureChain, &measureSrc)

		spaceWidth := styles.current.Measure(" ")
		left, spaces := style.Alignment.place(m, cursor.LineWidth(), spaceWidth)
		line := cursor.Line()
		line.indent(left)

		from, to := style.HeightMode.rows(&cursor)
		h := &renderHandler{
			style:  styles,
			target: &rowClip{target: target, minY: cursor.Y + from, maxY: cursor.Y + to},
			chain:  chain,
			pos:    line.Pos(),
			height: base,
		}
		var text strings.Builder
		if res != nil {
			h.observer = func(s string, _ int) { text.WriteString(s) }
		}

		opts := lineOptions{leading: style.LeadingSpaces, trailing: style.TrailingSpaces, spaces: spaces}
		end, err := processLine(line, opts, chain, &src, h)
		if err != nil {
			return src.Remaining(), fmt.Errorf("draw line at y=%d: %w", cursor.Y, err)
		}
		if res != nil {
			res.Lines = append(res.Lines, LineResult{
				X:       line.Pos().X,
				Y:       cursor.Y,
				Width:   m.Width,
				Spaces:  m.Spaces,
				Rows:    to - from,
				End:     end.String(),
				Content: text.String(),
			})
		}

		switch end {
		case EndOfText:
			chain.OnRenderingFinished()
			return src.Remaining(), nil
		case CarriageReturn:
			cursor.CarriageReturn()
		case NewLine:
			cursor.NewLine()
			cursor.Y += style.ParagraphSpacing
		default:
			cursor.NewLine()
		}
	}
}

// pastBottom reports whether no row of the current line or any line below it can be drawn.
func (s TextBoxStyle) pastBottom(c *Cursor) bool {
	overdraw := s.HeightMode.Overdraw
	if s.HeightMode.Kind == HeightFitToText {
		overdraw = FullRowsOnly
	}
	switch overdraw {
	case FullRowsOnly:
		return c.Y+c.BaseLineHeight() > c.bounds.Max.Y
	case Hidden:
		return c.Y >= c.bounds.Max.Y
	default:
		return false
	}
}

// verticalOffset returns the offset of the first line from the top of the box.
func verticalOffset(a VerticalAlignment, textHeight, boxHeight int) int {
	switch a {
	case AlignMiddle:
		return (boxHeight - textHeight) / 2
	case AlignBottom:
		return boxHeight - textHeight
	case AlignScrolling:
		if textHeight <= boxHeight {
			return 0
		}
		return boxHeight - textHeight
	default:
		return 0
	}
}

// place returns the horizontal offset of a line and the widths of its spaces.
func (a HorizontalAlignment) place(m LineMeasurement, boxWidth, spaceWidth int) (int, SpaceConfig) {
	uniform := UniformSpaces(spaceWidth)
	switch a {
	case AlignCenter:
		return max((boxWidth-m.Width)/2, 0), uniform
	case AlignRight:
		return max(boxWidth-m.Width, 0), uniform
	case AlignJustified:
		if m.Spaces == 0 || m.End.endsParagraph() {
			return 0, uniform
		}
		total := boxWidth - m.Width + m.Spaces*spaceWidth
		return 0, SpaceConfig{Width: total / m.Spaces, Extra: total % m.Spaces}
	default:
		return 0, uniform
	}
}
