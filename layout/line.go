package layout

import (
	"unicode/utf8"

	"github.com/ByLCY/textbox/parser"
)

// LineEnd tells why a line ended.
type LineEnd int

const (
	// LineBreak means the line was wrapped.
	LineBreak LineEnd = iota
	NewLine
	CarriageReturn
	EndOfText
)

func (e LineEnd) String() string {
	switch e {
	case LineBreak:
		return "break"
	case NewLine:
		return "newline"
	case CarriageReturn:
		return "return"
	default:
		return "end"
	}
}

// endsParagraph reports whether the line is the last line of a paragraph.
func (e LineEnd) endsParagraph() bool { return e != LineBreak }

// ElementHandler receives the elements of a line. The measuring and the
// rendering pass drive it with the same sequence of calls.
type ElementHandler interface {
	// Measure returns the width of text.
	Measure(text string) int
	// Whitespace is called for a run of count spaces drawn width pixels wide.
	// Tabs and background painting use count 0, line ends use width 0.
	Whitespace(raw string, count, width int) error
	// PrintedCharacters is called for text that is width pixels wide.
	PrintedCharacters(text string, width int) error
	// MoveCursor moves the pen without drawing.
	MoveCursor(delta int) error
	ChangeStyle(change parser.StyleChange) error
}

// lineOptions configure the processing of a single line.
type lineOptions struct {
	leading  bool
	trailing bool
	spaces   SpaceConfig
}

// lineProcessor lays out one line of text.
type lineProcessor struct {
	cursor  LineCursor
	opts    lineOptions
	chain   *Chain
	src     *parser.Parser
	handler ElementHandler
	// start is the pen offset the line started at.
	start int
	// empty is true until a word is printed.
	empty bool
}

// processLine consumes tokens until the line is full or ends, driving handler.
func processLine(cursor LineCursor, opts lineOptions, chain *Chain, src *parser.Parser, handler ElementHandler) (LineEnd, error) {
	lp := &lineProcessor{
		cursor:  cursor,
		opts:    opts,
		chain:   chain,
		src:     src,
		handler: handler,
		start:   cursor.Offset(),
		empty:   true,
	}
	return lp.run()
}

func (lp *lineProcessor) run() (LineEnd, error) {
	for {
		tok, ok := lp.chain.peek(lp.src)
		if !ok {
			return EndOfText, nil
		}

		var (
			done bool
			err  error
		)
		switch tok.Kind {
		case parser.NewLine, parser.CarriageReturn:
			if err := lp.handler.Whitespace(tok.Text, 0, 0); err != nil {
				return 0, err
			}
			lp.chain.consume(lp.src)
			if tok.Kind == parser.NewLine {
				return NewLine, nil
			}
			return CarriageReturn, nil
		case parser.Word:
			done, err = lp.word(tok)
		case parser.Whitespace:
			done, err = lp.whitespace(tok)
		case parser.Tab:
			done, err = lp.tab(tok)
		case parser.Break:
			done, err = lp.lineBreak(tok)
		case parser.MoveCursor:
			err = lp.moveCursor(tok)
		case parser.ChangeStyle:
			if t, ok := lp.chain.renderToken(tok); ok {
				err = lp.handler.ChangeStyle(t.Style)
			}
			lp.chain.consume(lp.src)
		default:
			lp.chain.consume(lp.src)
		}
		if err != nil {
			return 0, err
		}
		if done {
			return LineBreak, nil
		}
	}
}

func (lp *lineProcessor) word(tok parser.Token) (bool, error) {
	width := lp.handler.Measure(tok.Text)
	if lp.cursor.FitsInLine(width) {
		lp.cursor.Advance(width)
		lp.empty = false
		if err := lp.printWord(tok.Text, width); err != nil {
			return false, err
		}
		lp.chain.consume(lp.src)
		return false, nil
	}
	if !lp.empty {
		return true, nil
	}

	// The word is wider than the line: print the longest prefix that fits.
	prefix, chars, prefixWidth := "", 0, 0
	for end := 0; end < len(tok.Text); {
		_, size := utf8.DecodeRuneInString(tok.Text[end:])
		end += size
		w := lp.handler.Measure(tok.Text[:end])
		if !lp.cursor.FitsInLine(w) {
			break
		}
		prefix, chars, prefixWidth = tok.Text[:end], chars+1, w
	}
	if chars == 0 {
		if lp.cursor.Offset() == lp.start {
			// Not even one character fits an empty line. Drop the word.
			lp.chain.consume(lp.src)
		}
		return true, nil
	}
	lp.cursor.Advance(prefixWidth)
	lp.empty = false
	if err := lp.printWord(prefix, prefixWidth); err != nil {
		return false, err
	}
	lp.chain.consumePartial(chars, lp.src)
	return true, nil
}

func (lp *lineProcessor) printWord(text string, width int) error {
	t, ok := lp.chain.renderToken(parser.NewWord(text))
	if !ok {
		return lp.handler.MoveCursor(width)
	}
	return lp.handler.PrintedCharacters(t.Text, width)
}

// shouldDraw decides whether whitespace of the given width is drawn. wrap is
// true if it is not drawn because the word after it does not fit the line.
func (lp *lineProcessor) shouldDraw(width int, spaces SpaceConfig) (draw, wrap bool) {
	switch {
	case lp.empty:
		return lp.opts.leading, false
	case lp.opts.trailing:
		return true, false
	}
	fits, found := lp.nextWordFits(width, spaces)
	return fits, found && !fits
}

func (lp *lineProcessor) whitespace(tok parser.Token) (bool, error) {
	n := tok.Count
	if n == 0 {
		lp.chain.consume(lp.src)
		return false, nil
	}
	after := lp.opts.spaces
	draw, wrap := lp.shouldDraw(after.Consume(n), after)
	if !draw {
		lp.chain.consume(lp.src)
		return wrap, nil
	}

	fit := 0
	for fit < n && lp.cursor.FitsInLine(lp.opts.spaces.PeekNextWidth(fit+1)) {
		fit++
	}
	if fit == 0 {
		// Nothing fits. Eat one space and end the line.
		if n > 1 {
			lp.chain.consumePartial(1, lp.src)
		} else {
			lp.chain.consume(lp.src)
		}
		return true, nil
	}

	width := lp.opts.spaces.Consume(fit)
	lp.cursor.Advance(width)
	raw := tok.Text
	if fit < n {
		raw = raw[:byteOffset(raw, fit)]
	}
	if err := lp.drawWhitespace(parser.NewWhitespace(fit, raw), width); err != nil {
		return false, err
	}
	if fit < n {
		lp.chain.consumePartial(fit, lp.src)
		return true, nil
	}
	lp.chain.consume(lp.src)
	return false, nil
}

func (lp *lineProcessor) drawWhitespace(tok parser.Token, width int) error {
	t, ok := lp.chain.renderToken(tok)
	if !ok {
		return lp.handler.MoveCursor(width)
	}
	return lp.handler.Whitespace(t.Text, t.Count, width)
}

func (lp *lineProcessor) tab(tok parser.Token) (bool, error) {
	width := lp.cursor.NextTabWidth()
	if !lp.cursor.FitsInLine(width) {
		space := lp.cursor.Space()
		lp.cursor.Advance(space)
		if err := lp.handler.MoveCursor(space); err != nil {
			return false, err
		}
		lp.chain.consume(lp.src)
		return true, nil
	}

	draw, wrap := lp.shouldDraw(width, lp.opts.spaces)
	lp.cursor.Advance(width)
	var err error
	if draw {
		err = lp.drawWhitespace(parser.Token{Kind: parser.Tab, Text: tok.Text}, width)
	} else {
		err = lp.handler.MoveCursor(width)
	}
	if err != nil {
		return false, err
	}
	lp.chain.consume(lp.src)
	return wrap, nil
}

func (lp *lineProcessor) lineBreak(tok parser.Token) (bool, error) {
	if next, ok := lp.nextWordWidth(); !ok || lp.cursor.FitsInLine(next) {
		lp.chain.consume(lp.src)
		return false, nil
	}
	lp.chain.consume(lp.src)
	if tok.Replacement == "" {
		return true, nil
	}
	width := lp.handler.Measure(tok.Replacement)
	if _, ok := lp.cursor.Advance(width); !ok {
		// Start the next line with the replacement.
		lp.chain.carry(parser.NewWord(tok.Replacement))
		return true, nil
	}
	if err := lp.printWord(tok.Replacement, width); err != nil {
		return false, err
	}
	return true, nil
}

func (lp *lineProcessor) moveCursor(tok parser.Token) error {
	delta := lp.cursor.moveBy(tok.Chars * lp.handler.Measure(" "))
	lp.chain.consume(lp.src)
	if delta == 0 {
		return nil
	}
	if !tok.DrawBackground {
		return lp.handler.MoveCursor(delta)
	}
	if delta > 0 {
		return lp.handler.Whitespace("", 0, delta)
	}
	// Paint the area we moved back over, then return to the new position.
	if err := lp.handler.MoveCursor(delta); err != nil {
		return err
	}
	if err := lp.handler.Whitespace("", 0, -delta); err != nil {
		return err
	}
	return lp.handler.MoveCursor(delta)
}

// nextWordWidth returns the width of the words following the current token,
// up to and including the replacement of the next break. ok is false if the
// next printable token is not a word or a break.
func (lp *lineProcessor) nextWordWidth() (int, bool) {
	chain := lp.chain.Clone()
	src := *lp.src
	chain.consume(&src)
	return lp.wordRunWidth(chain, &src)
}

// wordRunWidth sums the words starting at the current token of chain. Style
// changes and cursor moves inside a word do not end it; a break ends it and
// adds its replacement. The chain and src are advanced past the run.
func (lp *lineProcessor) wordRunWidth(chain *Chain, src *parser.Parser) (int, bool) {
	width, found := 0, false
	for {
		tok, ok := chain.peek(src)
		if !ok {
			return width, found
		}
		switch tok.Kind {
		case parser.Word:
			width += lp.handler.Measure(tok.Text)
			found = true
		case parser.Break:
			return width + lp.handler.Measure(tok.Replacement), true
		case parser.ChangeStyle, parser.MoveCursor:
		default:
			return width, found
		}
		chain.consume(src)
	}
}

// nextWordFits reports whether the next word still fits the line after
// width more pixels. Whitespace and tabs in between are taken into account.
// found is false if no word follows on this line.
func (lp *lineProcessor) nextWordFits(width int, spaces SpaceConfig) (fits, found bool) {
	cursor := lp.cursor
	chain := lp.chain.Clone()
	src := *lp.src
	chain.consume(&src)

	if _, ok := cursor.Advance(width); !ok {
		return false, true
	}
	for {
		tok, ok := chain.peek(&src)
		if !ok {
			return false, false
		}
		w := 0
		switch tok.Kind {
		case parser.Word, parser.Break:
			run, _ := lp.wordRunWidth(chain, &src)
			return cursor.FitsInLine(run), true
		case parser.Whitespace:
			w = spaces.Consume(tok.Count)
		case parser.Tab:
			w = cursor.NextTabWidth()
		case parser.ChangeStyle, parser.MoveCursor:
		default:
			return false, false
		}
		if _, ok := cursor.Advance(w); !ok {
			return false, true
		}
		chain.consume(&src)
	}
}
