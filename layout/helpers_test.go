package layout

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/textbox/parser"
)

// 测试用的等宽字体：每个字符 6px 宽、8px 高。

type drawCall struct {
	Whitespace bool
	Text       string
	Pos        image.Point
	Width      int
	Color      color.Color
	Background color.Color
	Underline  parser.Decoration
}

type recorder struct {
	calls []drawCall
}

func (r *recorder) texts() []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if !c.Whitespace {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) spaceWidths() []int {
	var out []int
	for _, c := range r.calls {
		if c.Whitespace {
			out = append(out, c.Width)
		}
	}
	return out
}

type testStyle struct {
	rec        *recorder
	text       color.Color
	background color.Color
	underline  parser.Decoration
	strike     parser.Decoration
}

func newTestStyle() *testStyle {
	return &testStyle{rec: &recorder{}, text: color.RGBA{255, 255, 255, 255}}
}

func (s *testStyle) Measure(text string) int { return utf8.RuneCountInString(text) * 6 }

func (s *testStyle) LineHeight() int { return 8 }

// DrawText 为每个字符画一条 8px 高的竖线，便于检查裁剪。
func (s *testStyle) DrawText(target DrawTarget, text string, pos image.Point) (image.Point, error) {
	width := s.Measure(text)
	s.rec.calls = append(s.rec.calls, drawCall{
		Text: text, Pos: pos, Width: width, Color: s.text, Background: s.background, Underline: s.underline,
	})
	if s.text != nil {
		for i := 0; i < utf8.RuneCountInString(text); i++ {
			for row := 0; row < 8; row++ {
				if err := target.SetPixel(pos.X+i*6, pos.Y+row, s.text); err != nil {
					return pos, err
				}
			}
		}
	}
	return pos.Add(image.Pt(width, 0)), nil
}

func (s *testStyle) DrawWhitespace(target DrawTarget, width int, pos image.Point) (image.Point, error) {
	s.rec.calls = append(s.rec.calls, drawCall{
		Whitespace: true, Pos: pos, Width: width, Color: s.text, Background: s.background, Underline: s.underline,
	})
	if s.background != nil {
		for x := 0; x < width; x++ {
			if err := target.SetPixel(pos.X+x, pos.Y, s.background); err != nil {
				return pos, err
			}
		}
	}
	return pos.Add(image.Pt(width, 0)), nil
}

func (s *testStyle) SetTextColor(c color.Color)           { s.text = c }
func (s *testStyle) SetBackgroundColor(c color.Color)     { s.background = c }
func (s *testStyle) SetUnderline(d parser.Decoration)     { s.underline = d }
func (s *testStyle) SetStrikethrough(d parser.Decoration) { s.strike = d }

func (s *testStyle) Clone() CharacterStyle {
	c := *s
	return &c
}

// pixelTarget 记录所有写入的像素。
type pixelTarget struct {
	pixels map[image.Point]color.Color
}

func newPixelTarget() *pixelTarget {
	return &pixelTarget{pixels: map[image.Point]color.Color{}}
}

func (t *pixelTarget) SetPixel(x, y int, c color.Color) error {
	t.pixels[image.Pt(x, y)] = c
	return nil
}

// rows 返回被写入像素的最小与最大行号。
func (t *pixelTarget) rows() (int, int) {
	minY, maxY := 1<<30, -(1 << 30)
	for p := range t.pixels {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return minY, maxY
}

var errSink = errors.New("sink failed")

type failingTarget struct{}

func (failingTarget) SetPixel(int, int, color.Color) error { return errSink }

func layoutLines(t *testing.T, text string, width int, style TextBoxStyle, plugins ...Plugin) []LineResult {
	t.Helper()
	tb := NewTextBox(text, image.Rect(0, 0, width, 1000), newTestStyle(), style)
	for _, p := range plugins {
		tb.AddPlugin(p)
	}
	res, err := tb.Layout()
	if err != nil {
		t.Fatalf("Layout 失败: %v", err)
	}
	return res.Lines
}

func contents(lines []LineResult) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content
	}
	return out
}
