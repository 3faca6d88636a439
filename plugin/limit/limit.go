// Package limit shows only the first characters of a text, for typing effects.
package limit

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
)

// Plugin stops the text after Limit characters. Printed characters, spaces
// and tabs count, line breaks and style changes do not.
//
// If Caret is set it is printed after the last character once the limit is
// reached. A non-nil Block paints the caret cell before the caret is drawn
// over it.
type Plugin struct {
	layout.NopPlugin

	Limit int
	Caret string
	Block color.Color

	used      int
	// cut is set once a token has been shortened to fit the budget.
	cut       bool
	caretSent bool
	blockDone bool
}

// New returns a plugin that shows at most n characters.
func New(n int) *Plugin { return &Plugin{Limit: n} }

// WithCaret sets the caret printed at the cut.
func (p *Plugin) WithCaret(caret string, block color.Color) *Plugin {
	p.Caret = caret
	p.Block = block
	return p
}

func (p *Plugin) Clone() layout.Plugin {
	c := *p
	return &c
}

func (p *Plugin) NextToken(next func() (parser.Token, bool)) (parser.Token, bool) {
	budget := p.Limit - p.used
	if budget <= 0 {
		return p.caret(next)
	}
	tok, ok := next()
	if !ok {
		return tok, false
	}
	switch tok.Kind {
	case parser.Word:
		n := utf8.RuneCountInString(tok.Text)
		if n > budget {
			tok = parser.NewWord(prefix(tok.Text, budget))
			n = budget
			p.cut = true
		}
		p.used += n
	case parser.Whitespace:
		if tok.Count > budget {
			tok = parser.NewWhitespace(budget, prefix(tok.Text, budget))
			p.cut = true
		}
		p.used += tok.Count
	case parser.Tab:
		p.used++
	}
	return tok, true
}

// caret emits the caret once, and only if some text is left out.
func (p *Plugin) caret(next func() (parser.Token, bool)) (parser.Token, bool) {
	if p.Caret == "" || p.caretSent {
		return parser.Token{}, false
	}
	if !p.cut {
		if _, more := next(); !more {
			return parser.Token{}, false
		}
	}
	p.caretSent = true
	return parser.NewWord(p.Caret), true
}

// Reached reports whether the limit has been reached.
func (p *Plugin) Reached() bool { return p.used >= p.Limit }

// PostRender paints the block and draws the caret again on top of it.
func (p *Plugin) PostRender(target layout.DrawTarget, style layout.CharacterStyle, text string, bounds image.Rectangle) error {
	if p.Block == nil || !p.caretSent || p.blockDone || text != p.Caret {
		return nil
	}
	p.blockDone = true
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := target.SetPixel(x, y, p.Block); err != nil {
				return err
			}
		}
	}
	_, err := style.DrawText(target, text, bounds.Min)
	return err
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
