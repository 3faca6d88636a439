package fonts

import (
	"image"
	"image/color"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
)

// Style draws text with a font.Face. It implements layout.CharacterStyle.
//
// Monospace faces measure text in cells: wide runes take two cells and
// combining marks none. Other faces use the glyph advances.
type Style struct {
	Face font.Face

	TextColor       color.Color
	BackgroundColor color.Color
	// Underlined and Strikethrough are static decorations that apply unless a
	// style change overrides them.
	Underlined    parser.Decoration
	Strikethrough parser.Decoration

	ascent int
	height int
	cell   int
}

var _ layout.CharacterStyle = (*Style)(nil)

// NewStyle returns a style drawing text in textColor with no background.
func NewStyle(face font.Face, textColor color.Color) *Style {
	m := face.Metrics()
	s := &Style{
		Face:      face,
		TextColor: textColor,
		ascent:    m.Ascent.Ceil(),
		height:    m.Ascent.Ceil() + m.Descent.Ceil(),
	}
	if s.height <= 0 {
		s.height = m.Height.Ceil()
	}
	narrow, _ := face.GlyphAdvance('i')
	wide, _ := face.GlyphAdvance('M')
	if narrow == wide && narrow > 0 {
		s.cell = narrow.Round()
	}
	return s
}

// Monospace reports whether the face measures text in cells.
func (s *Style) Monospace() bool { return s.cell > 0 }

// Ascent is the distance from the top of a row to the baseline.
func (s *Style) Ascent() int { return s.ascent }

func (s *Style) advance(r rune) int {
	if r == '\u00A0' {
		r = ' '
	}
	if s.cell > 0 {
		return runewidth.RuneWidth(r) * s.cell
	}
	adv, ok := s.Face.GlyphAdvance(r)
	if !ok {
		adv, _ = s.Face.GlyphAdvance('\uFFFD')
	}
	return adv.Round()
}

func (s *Style) Measure(text string) int {
	w := 0
	for _, r := range text {
		w += s.advance(r)
	}
	return w
}

func (s *Style) LineHeight() int { return s.height }

func (s *Style) DrawText(target layout.DrawTarget, text string, pos image.Point) (image.Point, error) {
	x := pos.X
	for _, r := range text {
		adv := s.advance(r)
		if s.BackgroundColor != nil {
			if err := s.fill(target, image.Rect(x, pos.Y, x+adv, pos.Y+s.height), s.BackgroundColor); err != nil {
				return pos, err
			}
		}
		if s.TextColor != nil && adv > 0 {
			if err := s.glyph(target, r, x, pos.Y); err != nil {
				return pos, err
			}
		}
		x += adv
	}
	end := image.Pt(x, pos.Y)
	if err := s.decorate(target, pos, x-pos.X); err != nil {
		return pos, err
	}
	return end, nil
}

func (s *Style) DrawWhitespace(target layout.DrawTarget, width int, pos image.Point) (image.Point, error) {
	if s.BackgroundColor != nil {
		if err := s.fill(target, image.Rect(pos.X, pos.Y, pos.X+width, pos.Y+s.height), s.BackgroundColor); err != nil {
			return pos, err
		}
	}
	if err := s.decorate(target, pos, width); err != nil {
		return pos, err
	}
	return pos.Add(image.Pt(width, 0)), nil
}

// glyph copies the coverage mask of r, thresholded at half intensity.
func (s *Style) glyph(target layout.DrawTarget, r rune, x, y int) error {
	if r == '\u00A0' {
		r = ' '
	}
	dot := fixed.P(x, y+s.ascent)
	dr, mask, mp, _, ok := s.Face.Glyph(dot, r)
	if !ok {
		if dr, mask, mp, _, ok = s.Face.Glyph(dot, '\uFFFD'); !ok {
			return nil
		}
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			_, _, _, a := mask.At(mp.X+px-dr.Min.X, mp.Y+py-dr.Min.Y).RGBA()
			if a < 0x8000 {
				continue
			}
			if err := target.SetPixel(px, py, s.TextColor); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Style) decorate(target layout.DrawTarget, pos image.Point, width int) error {
	if c := s.decorationColor(s.Underlined); c != nil {
		y := pos.Y + min(s.ascent+1, s.height-1)
		if err := s.fill(target, image.Rect(pos.X, y, pos.X+width, y+1), c); err != nil {
			return err
		}
	}
	if c := s.decorationColor(s.Strikethrough); c != nil {
		y := pos.Y + s.ascent/2 + 1
		if err := s.fill(target, image.Rect(pos.X, y, pos.X+width, y+1), c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Style) decorationColor(d parser.Decoration) color.Color {
	switch d.Mode {
	case parser.DecorationTextColor:
		return s.TextColor
	case parser.DecorationCustom:
		return d.Color
	}
	return nil
}

func (s *Style) fill(target layout.DrawTarget, r image.Rectangle, c color.Color) error {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if err := target.SetPixel(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Style) SetTextColor(c color.Color)           { s.TextColor = c }
func (s *Style) SetBackgroundColor(c color.Color)     { s.BackgroundColor = c }
func (s *Style) SetUnderline(d parser.Decoration)     { s.Underlined = d }
func (s *Style) SetStrikethrough(d parser.Decoration) { s.Strikethrough = d }

func (s *Style) Clone() layout.CharacterStyle {
	c := *s
	return &c
}
