package ansi

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

var white = color.RGBA{255, 255, 255, 255}

func tokens(text string) []parser.Token {
	src := parser.Parse(text)
	p := New()
	var out []parser.Token
	for {
		tok, ok := p.NextToken(src.Next)
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func textColor(c color.Color) parser.Token {
	return parser.NewStyleChange(parser.StyleChange{Kind: parser.TextColor, Color: c})
}

func TestTokens(t *testing.T) {
	cases := []struct {
		text string
		want []parser.Token
	}{
		{
			text: "Lorem \x1b[92mIpsum",
			want: []parser.Token{
				parser.NewWord("Lorem"),
				parser.NewWhitespace(1, " "),
				textColor(color.RGBA{22, 198, 12, 255}),
				parser.NewWord("Ipsum"),
			},
		},
		{
			text: "a\x1b[3Cb\x1b[D",
			want: []parser.Token{
				parser.NewWord("a"),
				parser.NewMoveCursor(3, true),
				parser.NewWord("b"),
				parser.NewMoveCursor(-1, true),
			},
		},
		{
			text: "\x1b[?25hvisible",
			want: []parser.Token{parser.NewWord("visible")},
		},
		{
			text: "x\x1b[12",
			want: []parser.Token{
				parser.NewWord("x"),
				parser.NewWord("\x1b"),
				parser.NewWord("[12"),
			},
		},
		{
			text: "\x1b[1;31;4mred",
			want: []parser.Token{
				textColor(color.RGBA{197, 15, 31, 255}),
				parser.NewStyleChange(parser.StyleChange{
					Kind:       parser.Underline,
					Decoration: parser.Decoration{Mode: parser.DecorationTextColor},
				}),
				parser.NewWord("red"),
			},
		},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, tokens(c.text)); diff != "" {
			t.Fatalf("%q (-want +got):\n%s", c.text, diff)
		}
	}
}

func TestParseSGR(t *testing.T) {
	cases := []struct {
		params string
		want   []parser.StyleChange
	}{
		{"", []parser.StyleChange{{Kind: parser.ResetStyle}}},
		{"0", []parser.StyleChange{{Kind: parser.ResetStyle}}},
		{"39;49", []parser.StyleChange{{Kind: parser.TextColor}, {Kind: parser.BackgroundColor}}},
		{"38;2;1;2;3", []parser.StyleChange{{Kind: parser.TextColor, Color: color.RGBA{1, 2, 3, 255}}}},
		{"48;5;10", []parser.StyleChange{{Kind: parser.BackgroundColor, Color: color.RGBA{22, 198, 12, 255}}}},
		{"107", []parser.StyleChange{{Kind: parser.BackgroundColor, Color: color.RGBA{242, 242, 242, 255}}}},
		{"9;29", []parser.StyleChange{
			{Kind: parser.Strikethrough, Decoration: parser.Decoration{Mode: parser.DecorationTextColor}},
			{Kind: parser.Strikethrough, Decoration: parser.Decoration{Mode: parser.DecorationNone}},
		}},
		{"1;2;3", nil},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, parseSGR(c.params)); diff != "" {
			t.Fatalf("SGR %q (-want +got):\n%s", c.params, diff)
		}
	}
}

func TestColor256(t *testing.T) {
	cases := map[uint8]color.RGBA{
		1:   {197, 15, 31, 255},
		16:  {0, 0, 0, 255},
		196: {255, 0, 0, 255},
		231: {255, 255, 255, 255},
		232: {0, 0, 0, 255},
		244: {132, 132, 132, 255},
		255: {255, 255, 255, 255},
	}
	for n, want := range cases {
		if got := Color256(n); got != want {
			t.Fatalf("Color256(%d) 期望 %v，实际 %v", n, want, got)
		}
	}
}

func TestEscapeDoesNotBreakWord(t *testing.T) {
	// 每个字符 7px，盒子宽 8 个字符。
	cases := []struct {
		text string
		want []string
	}{
		{"Lorem foo\x1b[92mbarum", []string{"Lorem", "foobarum"}},
		// 被转义序列分开的单词放不下时，在前面的空格处换行。
		{"ab foo\x1b[92mbarum", []string{"ab", "foobarum"}},
		{"ab foo\x1b[4mba\x1b[24mrum", []string{"ab", "foobarum"}},
	}
	for _, c := range cases {
		cs := fonts.NewStyle(basicfont.Face7x13, white)
		tb := layout.NewTextBox(c.text, image.Rect(0, 0, 56, 100), cs, layout.DefaultStyle())
		tb.AddPlugin(New())
		res, err := tb.Layout()
		if err != nil {
			t.Fatalf("Layout 失败: %v", err)
		}
		var got []string
		for _, l := range res.Lines {
			got = append(got, l.Content)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%q (-want +got):\n%s", c.text, diff)
		}
	}
}

func TestCursorBackMeasurement(t *testing.T) {
	cs := fonts.NewStyle(basicfont.Face7x13, white)
	style := layout.NewStyleBuilder().Alignment(layout.AlignCenter).Build()

	if m := style.MeasureLine(cs, "123\x1b[2D", 5*7, New()); m.Width != 3*7 {
		t.Fatalf("回退后宽度期望 21，实际 %d", m.Width)
	}
	if m := style.MeasureLine(cs, "123\x1b[2D456", 5*7, New()); m.Width != 4*7 {
		t.Fatalf("回退后继续输出，宽度期望 28，实际 %d", m.Width)
	}
}

func TestCursorBackOverwrites(t *testing.T) {
	cs := fonts.NewStyle(basicfont.Face7x13, white)
	cs.SetBackgroundColor(color.Black)
	tb := layout.NewTextBox("foo\x1b[2Dsample", image.Rect(0, 0, 7*7, 13), cs, layout.DefaultStyle())
	tb.AddPlugin(New())
	res, err := tb.Layout()
	if err != nil {
		t.Fatalf("Layout 失败: %v", err)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("期望 1 行，实际 %+v", res.Lines)
	}
	if l := res.Lines[0]; l.Content != "foosample" || l.Width != 49 {
		t.Fatalf("期望 foosample / 49，实际 %q / %d", l.Content, l.Width)
	}
	if res.Remaining != "" {
		t.Fatalf("不应有剩余文本，实际 %q", res.Remaining)
	}
}

func TestCloneKeepsState(t *testing.T) {
	src := parser.Parse("ab\x1b[31mcd")
	p := New()
	if tok, _ := p.NextToken(src.Next); tok != parser.NewWord("ab") {
		t.Fatalf("期望 Word(ab)，实际 %v", tok)
	}
	clone := p.Clone().(*Plugin)
	want := textColor(color.RGBA{197, 15, 31, 255})
	for _, pl := range []*Plugin{p, clone} {
		tok, _ := pl.NextToken(src.Next)
		if diff := cmp.Diff(want, tok); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	}
}
