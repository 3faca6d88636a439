package underline

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"

	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
)

func underline(mode parser.DecorationMode) parser.Token {
	return parser.NewStyleChange(parser.StyleChange{
		Kind:       parser.Underline,
		Decoration: parser.Decoration{Mode: mode},
	})
}

func TestTokens(t *testing.T) {
	src := parser.Parse("a _b c_, snake__case")
	p := New()
	var got []parser.Token
	for {
		tok, ok := p.NextToken(src.Next)
		if !ok {
			break
		}
		got = append(got, tok)
	}
	want := []parser.Token{
		parser.NewWord("a"),
		parser.NewWhitespace(1, " "),
		underline(parser.DecorationTextColor),
		parser.NewWord("b"),
		parser.NewWhitespace(1, " "),
		parser.NewWord("c"),
		underline(parser.DecorationNone),
		parser.NewWord(","),
		parser.NewWhitespace(1, " "),
		parser.NewWord("snake"),
		parser.NewWord("_"),
		parser.NewWord("case"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCustomDecoration(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	p := New()
	p.Decoration = parser.Decoration{Mode: parser.DecorationCustom, Color: red}
	src := parser.Parse("_x")
	tok, _ := p.NextToken(src.Next)
	if tok.Style.Decoration.Color != red {
		t.Fatalf("期望自定义下划线颜色，实际 %v", tok.Style)
	}
}

type pixels map[image.Point]color.Color

func (p pixels) SetPixel(x, y int, c color.Color) error {
	p[image.Pt(x, y)] = c
	return nil
}

func TestUnderlinedWordKeepsWidth(t *testing.T) {
	cs := fonts.NewStyle(basicfont.Face7x13, color.White)
	tb := layout.NewTextBox("a _bc_ d", image.Rect(0, 0, 200, 13), cs, layout.DefaultStyle())
	tb.AddPlugin(New())
	res, err := tb.Layout()
	if err != nil {
		t.Fatalf("Layout 失败: %v", err)
	}
	if len(res.Lines) != 1 || res.Lines[0].Content != "a bc d" || res.Lines[0].Width != 6*7 {
		t.Fatalf("期望一行 \"a bc d\" 宽 42，实际 %+v", res.Lines)
	}

	target := pixels{}
	if _, err := tb.Draw(target); err != nil {
		t.Fatalf("Draw 失败: %v", err)
	}
	// 下划线位于第 12 行，只覆盖 "bc"。
	for x := 0; x < 42; x++ {
		_, ok := target[image.Pt(x, 12)]
		if want := x >= 14 && x < 28; ok != want {
			t.Fatalf("x=%d 下划线状态期望 %v，实际 %v", x, want, ok)
		}
	}
}
