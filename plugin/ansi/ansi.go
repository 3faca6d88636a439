// Package ansi interprets ANSI escape sequences embedded in the text of a box.
//
// Supported sequences are SGR (colors, underline, strikethrough, reset) and
// cursor forward/backward. Other well formed sequences are dropped and a lone
// escape character is printed as is.
package ansi

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
)

const esc = 0x1b

var escapeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "CSI", Pattern: `\x1b\[[0-?]*[ -/]*[@-~]`},
	{Name: "Esc", Pattern: `\x1b`},
	{Name: "Text", Pattern: `[^\x1b]+`},
})

var csiType = escapeLexer.Symbols()["CSI"]

// Plugin turns escape sequences into style change and cursor move tokens.
type Plugin struct {
	layout.NopPlugin

	// carry is the unprocessed rest of the last word.
	carry   string
	pending []parser.Token
}

// New returns an ANSI plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Clone() layout.Plugin {
	return &Plugin{carry: p.carry, pending: append([]parser.Token(nil), p.pending...)}
}

func (p *Plugin) NextToken(next func() (parser.Token, bool)) (parser.Token, bool) {
	for {
		if len(p.pending) > 0 {
			tok := p.pending[0]
			p.pending = p.pending[1:]
			return tok, true
		}

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

		switch i := strings.IndexByte(tok.Text, esc); {
		case i < 0:
			return tok, true
		case i > 0:
			p.carry = tok.Text[i:]
			return parser.NewWord(tok.Text[:i]), true
		}

		seq, rest := splitEscape(tok.Text)
		p.carry = rest
		if seq.Type != csiType {
			// Not a complete sequence: print the escape character.
			return parser.NewWord(seq.Value), true
		}
		p.pending = decode(seq.Value)
	}
}

// splitEscape returns the leading escape token of text and the rest.
func splitEscape(text string) (lexer.Token, string) {
	lex, err := escapeLexer.LexString("", text)
	if err != nil {
		return lexer.Token{Value: text[:1]}, text[1:]
	}
	tok, err := lex.Next()
	if err != nil || tok.EOF() || tok.Value == "" {
		return lexer.Token{Value: text[:1]}, text[1:]
	}
	return tok, text[len(tok.Value):]
}

// decode converts a CSI sequence to tokens. Unsupported sequences yield none.
func decode(seq string) []parser.Token {
	body := seq[2 : len(seq)-1]
	switch seq[len(seq)-1] {
	case 'm':
		var out []parser.Token
		for _, change := range parseSGR(body) {
			out = append(out, parser.NewStyleChange(change))
		}
		return out
	case 'C', 'D':
		n := 1
		if body != "" {
			v, err := strconv.Atoi(body)
			if err != nil {
				return nil
			}
			n = max(v, 1)
		}
		if seq[len(seq)-1] == 'D' {
			n = -n
		}
		return []parser.Token{parser.NewMoveCursor(n, true)}
	}
	return nil
}
