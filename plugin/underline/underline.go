// Package underline turns _underscore_ markup into underlined text.
package underline

import (
	"strings"

	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
)

// Plugin toggles underlining at every "_". A doubled "__" prints a literal
// underscore.
type Plugin struct {
	layout.NopPlugin

	// Decoration is used while underlining is on. The zero value follows
	// the text color.
	Decoration parser.Decoration

	on    bool
	carry string
}

// New returns an underline markup plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Clone() layout.Plugin {
	c := *p
	return &c
}

func (p *Plugin) NextToken(next func() (parser.Token, bool)) (parser.Token, bool) {
	var tok parser.Token
	if p.carry != "" {
		tok, p.carry = parser.NewWord(p.carry), ""
	} else {
		var ok bool
		if tok, ok = next(); !ok {
			return tok, false
		}
	}
	if tok.Kind != parser.Word {
		return tok, true
	}

	switch i := strings.IndexByte(tok.Text, '_'); {
	case i < 0:
		return tok, true
	case i > 0:
		p.carry = tok.Text[i:]
		return parser.NewWord(tok.Text[:i]), true
	case strings.HasPrefix(tok.Text, "__"):
		p.carry = tok.Text[2:]
		return parser.NewWord("_"), true
	}

	p.carry = tok.Text[1:]
	p.on = !p.on
	return parser.NewStyleChange(p.change()), true
}

func (p *Plugin) change() parser.StyleChange {
	d := parser.Decoration{Mode: parser.DecorationNone}
	if p.on {
		d = p.Decoration
		if d.Mode == parser.DecorationNone {
			d.Mode = parser.DecorationTextColor
		}
	}
	return parser.StyleChange{Kind: parser.Underline, Decoration: d}
}
