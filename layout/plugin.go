package layout

import (
	"image"
	"unicode/utf8"

	"github.com/ByLCY/textbox/parser"
)

// Plugin intercepts the token stream and the rendering of a text box.
//
// Embed NopPlugin to get no-op defaults for everything except Clone.
type Plugin interface {
	// Clone returns an independent copy of the plugin and its state.
	Clone() Plugin

	// NewLine is called before every line.
	NewLine()

	// NextToken returns the next token. next pulls from the plugins
	// further down the chain and finally from the parser.
	NextToken(next func() (parser.Token, bool)) (parser.Token, bool)

	// RenderToken may modify a token right before it is drawn. Returning
	// false strips the token. A token of a different kind is ignored.
	RenderToken(tok parser.Token) (parser.Token, bool)

	// OnStartRender is called once, before the first line is drawn.
	OnStartRender(cursor *Cursor, props Properties)

	// PostRender is called after a piece of text has been drawn.
	PostRender(target DrawTarget, style CharacterStyle, text string, bounds image.Rectangle) error

	// OnRenderingFinished is called after the last token has been drawn.
	OnRenderingFinished()
}

// Properties describe the box being rendered.
type Properties struct {
	TextHeight int
	Bounds     image.Rectangle
	Style      TextBoxStyle
}

// NopPlugin implements every Plugin hook except Clone as a no-op.
type NopPlugin struct{}

func (NopPlugin) NewLine() {}

func (NopPlugin) NextToken(next func() (parser.Token, bool)) (parser.Token, bool) {
	return next()
}

func (NopPlugin) RenderToken(tok parser.Token) (parser.Token, bool) { return tok, true }

func (NopPlugin) OnStartRender(*Cursor, Properties) {}

func (NopPlugin) PostRender(DrawTarget, CharacterStyle, string, image.Rectangle) error { return nil }

func (NopPlugin) OnRenderingFinished() {}

// Mode tells the chain whether the current pass draws.
type Mode int

const (
	Measuring Mode = iota
	Rendering
)

// Chain runs tokens through an ordered list of plugins. The first plugin
// is the outermost one: it sees tokens already processed by the others.
//
// The chain holds one peeked token and the number of source bytes pulled to
// produce it. A token is requested from the plugins at most once; peek
// returns the same token until it is consumed.
type Chain struct {
	plugins []Plugin
	mode    Mode

	peeked    parser.Token
	hasPeeked bool
	peekedLen int
}

// NewChain returns a chain over the given plugins. The plugins are used as
// is, clone them first if they are shared.
func NewChain(plugins ...Plugin) *Chain {
	return &Chain{plugins: plugins, mode: Measuring}
}

// Clone returns a snapshot of the chain, its plugins and the peeked token.
func (c *Chain) Clone() *Chain {
	clone := *c
	clone.plugins = make([]Plugin, len(c.plugins))
	for i, p := range c.plugins {
		clone.plugins[i] = p.Clone()
	}
	return &clone
}

func (c *Chain) setMode(m Mode) { c.mode = m }

func (c *Chain) next(i int, src *parser.Parser) (parser.Token, bool) {
	if i == len(c.plugins) {
		return src.Next()
	}
	return c.plugins[i].NextToken(func() (parser.Token, bool) {
		return c.next(i+1, src)
	})
}

func (c *Chain) peek(src *parser.Parser) (parser.Token, bool) {
	if !c.hasPeeked {
		cloned := *src
		tok, ok := c.next(0, &cloned)
		if !ok {
			return parser.Token{}, false
		}
		c.peeked = tok
		c.hasPeeked = true
		c.peekedLen = len(src.Remaining()) - len(cloned.Remaining())
	}
	return c.peeked, true
}

// consume drops the peeked token and advances src past its source bytes.
func (c *Chain) consume(src *parser.Parser) {
	if !c.hasPeeked {
		return
	}
	src.Consume(c.peekedLen)
	c.peeked = parser.Token{}
	c.hasPeeked = false
	c.peekedLen = 0
}

// consumePartial consumes the first n characters of the peeked Word or
// Whitespace token. The rest stays peeked.
func (c *Chain) consumePartial(n int, src *parser.Parser) {
	tok := c.peeked
	split := byteOffset(tok.Text, n)
	tok.Text = tok.Text[split:]
	if tok.Kind == parser.Whitespace {
		tok.Count = max(tok.Count-n, 0)
	}
	// Plugins may return only a part of what they pulled from the source.
	consumed := min(split, c.peekedLen)
	src.Consume(consumed)
	c.peekedLen -= consumed
	c.peeked = tok
}

// carry puts a token that is not backed by the source into the peek slot.
func (c *Chain) carry(tok parser.Token) {
	c.peeked = tok
	c.hasPeeked = true
	c.peekedLen = 0
}

func (c *Chain) renderToken(tok parser.Token) (parser.Token, bool) {
	if c.mode != Rendering {
		return tok, true
	}
	for _, p := range c.plugins {
		t, ok := p.RenderToken(tok)
		if !ok {
			return parser.Token{}, false
		}
		if t.Kind == tok.Kind {
			tok = t
		}
	}
	return tok, true
}

// NewLine notifies every plugin that a line starts.
func (c *Chain) NewLine() {
	for _, p := range c.plugins {
		p.NewLine()
	}
}

func (c *Chain) OnStartRender(cursor *Cursor, props Properties) {
	for _, p := range c.plugins {
		p.OnStartRender(cursor, props)
	}
}

func (c *Chain) PostRender(target DrawTarget, style CharacterStyle, text string, bounds image.Rectangle) error {
	for _, p := range c.plugins {
		if err := p.PostRender(target, style, text, bounds); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chain) OnRenderingFinished() {
	for _, p := range c.plugins {
		p.OnRenderingFinished()
	}
}

// byteOffset returns the byte offset of the n-th rune of s.
func byteOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
