package layout

import (
	"image"
	"image/color"

	"github.com/ByLCY/textbox/parser"
)

// DrawTarget receives the pixels of a rendered text box.
type DrawTarget interface {
	SetPixel(x, y int, c color.Color) error
}

// CharacterStyle measures and draws text. Positions are the top left corner
// of the glyph row.
type CharacterStyle interface {
	Measure(text string) int
	LineHeight() int
	DrawText(target DrawTarget, text string, pos image.Point) (image.Point, error)
	DrawWhitespace(target DrawTarget, width int, pos image.Point) (image.Point, error)

	// A nil color means transparent.
	SetTextColor(c color.Color)
	SetBackgroundColor(c color.Color)
	SetUnderline(d parser.Decoration)
	SetStrikethrough(d parser.Decoration)

	Clone() CharacterStyle
}

// applyStyleChange updates style and returns the style to use from now on.
// A reset replaces it with a copy of initial.
func applyStyleChange(style, initial CharacterStyle, change parser.StyleChange) CharacterStyle {
	switch change.Kind {
	case parser.ResetStyle:
		return initial.Clone()
	case parser.TextColor:
		style.SetTextColor(change.Color)
	case parser.BackgroundColor:
		style.SetBackgroundColor(change.Color)
	case parser.Underline:
		style.SetUnderline(change.Decoration)
	case parser.Strikethrough:
		style.SetStrikethrough(change.Decoration)
	}
	return style
}

// Discard is a DrawTarget that drops every pixel.
var Discard DrawTarget = discard{}

type discard struct{}

func (discard) SetPixel(int, int, color.Color) error { return nil }

// rowClip forwards pixels whose row lies in [minY, maxY).
type rowClip struct {
	target     DrawTarget
	minY, maxY int
}

func (c *rowClip) SetPixel(x, y int, col color.Color) error {
	if y < c.minY || y >= c.maxY {
		return nil
	}
	return c.target.SetPixel(x, y, col)
}
