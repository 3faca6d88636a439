package layout

import (
	"fmt"
	"strings"
)

// HorizontalAlignment places a line inside the width of the box.
type HorizontalAlignment int

const (
	AlignLeft HorizontalAlignment = iota
	AlignCenter
	AlignRight
	AlignJustified
)

// VerticalAlignment places the text inside the height of the box.
type VerticalAlignment int

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
	// AlignScrolling is top aligned while the text fits and bottom aligned otherwise.
	AlignScrolling
)

// VerticalOverdraw selects which pixel rows of a partially visible line are drawn.
type VerticalOverdraw int

const (
	// FullRowsOnly draws a line only if it is completely inside the box.
	FullRowsOnly VerticalOverdraw = iota
	// Hidden draws the rows of a line that are inside the box.
	Hidden
	// Visible draws every row, even outside the box.
	Visible
)

// HeightModeKind selects how the box height relates to the text height.
type HeightModeKind int

const (
	HeightExact HeightModeKind = iota
	HeightShrinkToText
	HeightFitToText
)

// HeightMode decides the final height of the box and the overdraw policy.
type HeightMode struct {
	Kind     HeightModeKind
	Overdraw VerticalOverdraw
}

// Exact keeps the box height.
func Exact(overdraw VerticalOverdraw) HeightMode {
	return HeightMode{Kind: HeightExact, Overdraw: overdraw}
}

// ShrinkToText reduces the box height to the text height if the text is shorter.
func ShrinkToText(overdraw VerticalOverdraw) HeightMode {
	return HeightMode{Kind: HeightShrinkToText, Overdraw: overdraw}
}

// FitToText sets the box height to the text height.
func FitToText() HeightMode {
	return HeightMode{Kind: HeightFitToText, Overdraw: FullRowsOnly}
}

// apply returns the box height for the given text height.
func (m HeightMode) apply(boxHeight, textHeight int) int {
	switch m.Kind {
	case HeightFitToText:
		return textHeight
	case HeightShrinkToText:
		return min(boxHeight, textHeight)
	default:
		return boxHeight
	}
}

// rows returns the range of glyph rows [from, to) of a line that may be drawn.
// The range is relative to the top of the line.
func (m HeightMode) rows(c *Cursor) (int, int) {
	base := c.BaseLineHeight()
	overdraw := m.Overdraw
	if m.Kind == HeightFitToText {
		overdraw = FullRowsOnly
	}
	switch overdraw {
	case Visible:
		return 0, base
	case Hidden:
		from := max(c.bounds.Min.Y-c.Y, 0)
		to := min(c.bounds.Max.Y-c.Y, base)
		if to < from {
			return 0, 0
		}
		return from, to
	default:
		if c.InDisplayArea() {
			return 0, base
		}
		return 0, 0
	}
}

// TextBoxStyle holds the layout options of a text box.
type TextBoxStyle struct {
	Alignment         HorizontalAlignment
	VerticalAlignment VerticalAlignment
	HeightMode        HeightMode
	LineHeight        LineHeight
	// ParagraphSpacing adds extra pixels after every explicit new line.
	ParagraphSpacing int
	TabSize          TabSize
	// LeadingSpaces draws whitespace at the start of a line.
	LeadingSpaces bool
	// TrailingSpaces draws whitespace at the end of a line.
	TrailingSpaces bool
}

// DefaultStyle returns a left and top aligned style with exact height.
func DefaultStyle() TextBoxStyle {
	return NewStyleBuilder().Build()
}

// StyleBuilder builds a TextBoxStyle. Leading and trailing space handling
// follows the horizontal alignment unless set explicitly.
type StyleBuilder struct {
	style    TextBoxStyle
	leading  *bool
	trailing *bool
}

func NewStyleBuilder() *StyleBuilder {
	return &StyleBuilder{style: TextBoxStyle{
		Alignment:         AlignLeft,
		VerticalAlignment: AlignTop,
		HeightMode:        Exact(FullRowsOnly),
		LineHeight:        Percent(100),
		TabSize:           Spaces(4),
	}}
}

func (b *StyleBuilder) Alignment(a HorizontalAlignment) *StyleBuilder {
	b.style.Alignment = a
	return b
}

func (b *StyleBuilder) VerticalAlignment(a VerticalAlignment) *StyleBuilder {
	b.style.VerticalAlignment = a
	return b
}

func (b *StyleBuilder) HeightMode(m HeightMode) *StyleBuilder {
	b.style.HeightMode = m
	return b
}

func (b *StyleBuilder) LineHeight(h LineHeight) *StyleBuilder {
	b.style.LineHeight = h
	return b
}

func (b *StyleBuilder) ParagraphSpacing(px int) *StyleBuilder {
	b.style.ParagraphSpacing = px
	return b
}

func (b *StyleBuilder) TabSize(t TabSize) *StyleBuilder {
	b.style.TabSize = t
	return b
}

func (b *StyleBuilder) LeadingSpaces(on bool) *StyleBuilder {
	b.leading = &on
	return b
}

func (b *StyleBuilder) TrailingSpaces(on bool) *StyleBuilder {
	b.trailing = &on
	return b
}

func (b *StyleBuilder) Build() TextBoxStyle {
	s := b.style
	s.LeadingSpaces = s.Alignment == AlignLeft
	if b.leading != nil {
		s.LeadingSpaces = *b.leading
	}
	s.TrailingSpaces = false
	if b.trailing != nil {
		s.TrailingSpaces = *b.trailing
	}
	return s
}

var (
	horizontalNames = map[string]HorizontalAlignment{
		"left": AlignLeft, "center": AlignCenter, "right": AlignRight, "justified": AlignJustified,
	}
	verticalNames = map[string]VerticalAlignment{
		"top": AlignTop, "middle": AlignMiddle, "bottom": AlignBottom, "scrolling": AlignScrolling,
	}
	overdrawNames = map[string]VerticalOverdraw{
		"full-rows": FullRowsOnly, "hidden": Hidden, "visible": Visible,
	}
)

// ParseHorizontalAlignment parses left, center, right or justified.
func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	if a, ok := horizontalNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

// ParseVerticalAlignment parses top, middle, bottom or scrolling.
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	if a, ok := verticalNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown vertical alignment %q", s)
}

// ParseHeightMode parses "exact", "shrink" or "fit", optionally followed by
// an overdraw policy: "exact hidden", "shrink visible".
func ParseHeightMode(s string) (HeightMode, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 || len(fields) > 2 {
		return HeightMode{}, fmt.Errorf("invalid height mode %q", s)
	}
	overdraw := FullRowsOnly
	if len(fields) == 2 {
		o, ok := overdrawNames[fields[1]]
		if !ok {
			return HeightMode{}, fmt.Errorf("unknown overdraw %q", fields[1])
		}
		overdraw = o
	}
	switch fields[0] {
	case "exact":
		return Exact(overdraw), nil
	case "shrink":
		return ShrinkToText(overdraw), nil
	case "fit":
		if len(fields) == 2 {
			return HeightMode{}, fmt.Errorf("fit does not take an overdraw policy")
		}
		return FitToText(), nil
	}
	return HeightMode{}, fmt.Errorf("unknown height mode %q", fields[0])
}

func (a HorizontalAlignment) String() string { return nameOf(horizontalNames, a) }
func (a VerticalAlignment) String() string   { return nameOf(verticalNames, a) }
func (o VerticalOverdraw) String() string    { return nameOf(overdrawNames, o) }

func nameOf[T comparable](names map[string]T, v T) string {
	for name, x := range names {
		if x == v {
			return name
		}
	}
	return "unknown"
}
