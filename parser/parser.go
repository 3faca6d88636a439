// Package parser splits text into the tokens consumed by the layout engine.
package parser

import (
	"unicode"
	"unicode/utf8"
)

const (
	nbsp = '\u00A0'
	zwsp = '\u200B'
	shy  = '\u00AD'
)

// Parser lazily tokenizes a string. It is a plain value: copying a Parser
// takes a snapshot that can be advanced independently.
type Parser struct {
	text string
}

// Parse returns a Parser positioned at the start of text.
func Parse(text string) Parser {
	return Parser{text: text}
}

// Remaining returns the text that has not been tokenized yet.
func (p *Parser) Remaining() string { return p.text }

// IsEmpty reports whether all input has been consumed.
func (p *Parser) IsEmpty() bool { return p.text == "" }

// Peek returns the next token without advancing.
func (p *Parser) Peek() (Token, bool) {
	clone := *p
	return clone.Next()
}

// Consume skips n bytes of input. n is clamped to the remaining length and
// must fall on a rune boundary.
func (p *Parser) Consume(n int) {
	if n > len(p.text) {
		n = len(p.text)
	}
	p.text = p.text[n:]
}

// Next returns the next token, or false at the end of the input.
func (p *Parser) Next() (Token, bool) {
	if p.text == "" {
		return Token{}, false
	}
	r, size := utf8.DecodeRuneInString(p.text)

	if isWordChar(r) {
		end := size
		for end < len(p.text) {
			c, n := utf8.DecodeRuneInString(p.text[end:])
			if !isWordChar(c) {
				break
			}
			end += n
		}
		return NewWord(p.take(end)), true
	}

	switch r {
	case '\n':
		return Token{Kind: NewLine, Text: p.take(size)}, true
	case '\r':
		return Token{Kind: CarriageReturn, Text: p.take(size)}, true
	case '\t':
		return Token{Kind: Tab, Text: p.take(size)}, true
	case zwsp:
		return NewBreak("", p.take(size)), true
	case shy:
		return NewBreak("-", p.take(size)), true
	}

	count, end := 1, size
	for end < len(p.text) {
		c, n := utf8.DecodeRuneInString(p.text[end:])
		if !isSpaceChar(c) {
			break
		}
		if c != zwsp {
			count++
		}
		end += n
	}
	return NewWhitespace(count, p.take(end)), true
}

func (p *Parser) take(n int) string {
	s := p.text[:n]
	p.text = p.text[n:]
	return s
}

func isWordChar(r rune) bool {
	return (!unicode.IsSpace(r) || r == nbsp) && r != zwsp && r != shy
}

func isSpaceChar(r rune) bool {
	switch r {
	case '\n', '\r', '\t', nbsp:
		return false
	case zwsp:
		return true
	}
	return unicode.IsSpace(r)
}
