package parser

import (
	"fmt"
	"image/color"
)

// Kind identifies the variant held by a Token.
type Kind int

const (
	NewLine Kind = iota
	CarriageReturn
	Tab
	Whitespace
	Word
	Break
	ChangeStyle
	MoveCursor
)

var kindNames = [...]string{
	NewLine:        "NewLine",
	CarriageReturn: "CarriageReturn",
	Tab:            "Tab",
	Whitespace:     "Whitespace",
	Word:           "Word",
	Break:          "Break",
	ChangeStyle:    "ChangeStyle",
	MoveCursor:     "MoveCursor",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is a unit of text produced by the Parser or injected by a plugin.
//
// Text holds the source slice for NewLine, CarriageReturn, Tab, Whitespace
// (raw), Word and Break (original). Synthetic tokens carry an empty or
// made-up Text.
type Token struct {
	Kind Kind
	Text string

	// Count is the number of counted space characters of a Whitespace token.
	Count int

	// Replacement is drawn in place of a Break when the line is broken there.
	Replacement string

	Style StyleChange

	// Chars and DrawBackground describe a MoveCursor token.
	Chars          int
	DrawBackground bool
}

// NewWord returns a Word token.
func NewWord(text string) Token { return Token{Kind: Word, Text: text} }

// NewWhitespace returns a Whitespace token of count spaces backed by raw.
func NewWhitespace(count int, raw string) Token {
	return Token{Kind: Whitespace, Count: count, Text: raw}
}

// NewBreak returns a Break token.
func NewBreak(replacement, original string) Token {
	return Token{Kind: Break, Replacement: replacement, Text: original}
}

// NewStyleChange returns a ChangeStyle token.
func NewStyleChange(change StyleChange) Token {
	return Token{Kind: ChangeStyle, Style: change}
}

// NewMoveCursor returns a MoveCursor token moving the pen by chars space widths.
func NewMoveCursor(chars int, drawBackground bool) Token {
	return Token{Kind: MoveCursor, Chars: chars, DrawBackground: drawBackground}
}

// Source returns the part of the input text covered by the token.
func (t Token) Source() string {
	switch t.Kind {
	case NewLine, CarriageReturn, Tab, Whitespace, Word, Break:
		return t.Text
	default:
		return ""
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Whitespace:
		return fmt.Sprintf("Whitespace(%d, %q)", t.Count, t.Text)
	case Word:
		return fmt.Sprintf("Word(%q)", t.Text)
	case Break:
		return fmt.Sprintf("Break(%q, %q)", t.Replacement, t.Text)
	case ChangeStyle:
		return fmt.Sprintf("ChangeStyle(%v)", t.Style)
	case MoveCursor:
		return fmt.Sprintf("MoveCursor(%d, %t)", t.Chars, t.DrawBackground)
	default:
		return t.Kind.String()
	}
}

// StyleKind selects which property a StyleChange modifies.
type StyleKind int

const (
	// ResetStyle restores the character style the box started with.
	ResetStyle StyleKind = iota
	TextColor
	BackgroundColor
	Underline
	Strikethrough
)

// DecorationMode tells how an underline or strikethrough line is colored.
type DecorationMode int

const (
	DecorationNone DecorationMode = iota
	DecorationTextColor
	DecorationCustom
)

// Decoration describes an underline or strikethrough.
type Decoration struct {
	Mode  DecorationMode
	Color color.Color
}

// StyleChange is the payload of a ChangeStyle token. A nil Color on
// TextColor or BackgroundColor means transparent.
type StyleChange struct {
	Kind       StyleKind
	Color      color.Color
	Decoration Decoration
}

func (s StyleChange) String() string {
	switch s.Kind {
	case ResetStyle:
		return "Reset"
	case TextColor:
		return fmt.Sprintf("TextColor(%v)", s.Color)
	case BackgroundColor:
		return fmt.Sprintf("BackgroundColor(%v)", s.Color)
	case Underline:
		return fmt.Sprintf("Underline(%d, %v)", s.Decoration.Mode, s.Decoration.Color)
	case Strikethrough:
		return fmt.Sprintf("Strikethrough(%d, %v)", s.Decoration.Mode, s.Decoration.Color)
	default:
		return fmt.Sprintf("StyleKind(%d)", int(s.Kind))
	}
}
