package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// sceneLexer splits scene files into tokens. Color must precede the hash
// comment so that "#fff" is a color and "# note" a comment.
var sceneLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n+`},
	{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
	{Name: "HashComment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|mm|cm|in|%|x)?`},
	{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
	{Name: "LBrace", Pattern: `{`},
	{Name: "RBrace", Pattern: `}`},
})

// kinds maps token types back to their rule names.
var kinds = func() map[lexer.TokenType]string {
	out := map[lexer.TokenType]string{}
	for name, tt := range sceneLexer.Symbols() {
		out[tt] = name
	}
	return out
}()

func kindOf(tok *lexer.Token) string { return kinds[tok.Type] }

// Lexeme is one raw token of a command argument list or an expression.
// Strings are unquoted into Value; Raw keeps the source text.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

func newLexeme(tok *lexer.Token) (*Lexeme, error) {
	l := &Lexeme{Type: kindOf(tok), Value: tok.Value, Raw: tok.Value, Pos: tok.Pos}
	if l.Type == "String" {
		v, err := strconv.Unquote(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: bad string %s: %w", tok.Pos, tok.Value, err)
		}
		l.Value = v
	}
	return l, nil
}

// Parse reads one argument. Arguments end at a brace, a new line or ';'.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() || endsArgs(tok) {
		return participle.NextMatch
	}
	lexeme, err := newLexeme(lex.Next())
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

func endsArgs(tok *lexer.Token) bool {
	switch kindOf(tok) {
	case "Newline", "LBrace", "RBrace":
		return true
	case "Symbol":
		return tok.Value == ";"
	}
	return false
}

// Expression is an unevaluated run of tokens, such as "exact hidden" or
// "150%". It ends at the end of the line or at a separator outside brackets.
type Expression struct {
	Parts []*Lexeme
}

func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	var parts []*Lexeme
	parens, brackets := 0, 0
	for {
		tok := lex.Peek()
		if tok.EOF() {
			break
		}
		nested := parens > 0 || brackets > 0
		kind := kindOf(tok)
		if !nested && (kind == "Newline" || kind == "LBrace" || kind == "RBrace") {
			break
		}
		if kind == "Symbol" {
			if (tok.Value == ";" || tok.Value == ",") && !nested {
				break
			}
			if tok.Value == "]" && brackets == 0 {
				break
			}
		}

		lexeme, err := newLexeme(lex.Next())
		if err != nil {
			return err
		}
		switch lexeme.Raw {
		case "(":
			parens++
		case ")":
			parens = max(parens-1, 0)
		case "[":
			brackets++
		case "]":
			brackets--
		}
		parts = append(parts, lexeme)
	}
	if len(parts) == 0 {
		return participle.NextMatch
	}
	e.Parts = parts
	return nil
}

// StringLiteral is a quoted string, unquoted on capture.
type StringLiteral string

func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("empty string capture")
	}
	v, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(v)
	return nil
}
