package layout

import "image"

// LineCursor tracks the pen position inside a single line.
type LineCursor struct {
	start image.Point
	width int
	pos   int
	// origin is where the content of the line starts, after the
	// alignment offset. Tab stops and backward moves are relative to it.
	origin   int
	tabWidth int
}

// NewLineCursor returns a cursor for a line starting at start that is width pixels wide.
func NewLineCursor(start image.Point, width, tabWidth int) LineCursor {
	return LineCursor{start: start, width: max(width, 0), tabWidth: max(tabWidth, 1)}
}

// Pos returns the absolute pen position.
func (c *LineCursor) Pos() image.Point { return c.start.Add(image.Pt(c.pos, 0)) }

// Offset returns the pen position relative to the start of the line.
func (c *LineCursor) Offset() int { return c.pos }

// LineWidth returns the total width of the line.
func (c *LineCursor) LineWidth() int { return c.width }

// Space returns the number of pixels left in the line.
func (c *LineCursor) Space() int { return c.width - c.pos }

// FitsInLine reports whether width more pixels fit in the line.
func (c *LineCursor) FitsInLine(width int) bool { return width <= c.Space() }

// Advance moves the pen by width pixels if they fit. On failure the pen does
// not move and the remaining space is returned.
func (c *LineCursor) Advance(width int) (int, bool) {
	if !c.FitsInLine(width) {
		return c.Space(), false
	}
	c.pos += width
	return width, true
}

// Rewind moves the pen back by width pixels if that stays inside the line.
func (c *LineCursor) Rewind(width int) bool {
	if width > c.pos-c.origin {
		return false
	}
	c.pos -= width
	return true
}

// NextTabWidth returns the distance to the next tab stop.
func (c *LineCursor) NextTabWidth() int {
	return c.tabWidth - (c.pos-c.origin)%c.tabWidth
}

// indent moves the start of the content by offset pixels.
func (c *LineCursor) indent(offset int) {
	c.moveBy(offset)
	c.origin = c.pos
}

// moveBy shifts the pen by delta pixels clamped to the line and returns the
// distance actually moved.
func (c *LineCursor) moveBy(delta int) int {
	if delta >= 0 {
		delta = min(delta, c.Space())
	} else {
		delta = -min(-delta, c.pos-c.origin)
	}
	c.pos += delta
	return delta
}

// Cursor tracks the top of the current line inside the text box.
type Cursor struct {
	// Y is the top edge of the current line. Plugins may move it before rendering starts.
	Y int

	x          int
	bounds     image.Rectangle
	baseHeight int
	lineHeight int
	tabWidth   int
}

// NewCursor places a cursor at the top left corner of bounds.
func NewCursor(bounds image.Rectangle, baseHeight, lineHeight, tabWidth int) Cursor {
	return Cursor{
		Y:          bounds.Min.Y,
		x:          bounds.Min.X,
		bounds:     bounds,
		baseHeight: baseHeight,
		lineHeight: lineHeight,
		tabWidth:   max(tabWidth, 1),
	}
}

// NewLine moves the cursor to the start of the next line.
func (c *Cursor) NewLine() {
	c.Y += c.lineHeight
	c.CarriageReturn()
}

// CarriageReturn moves the cursor to the start of the current line.
func (c *Cursor) CarriageReturn() { c.x = c.bounds.Min.X }

// InDisplayArea reports whether every pixel row of the current line lies inside the box.
func (c *Cursor) InDisplayArea() bool {
	return c.bounds.Min.Y <= c.Y && c.Y+c.baseHeight <= c.bounds.Max.Y
}

// Line returns a cursor for the current line.
func (c *Cursor) Line() LineCursor {
	return NewLineCursor(image.Pt(c.x, c.Y), c.bounds.Dx(), c.tabWidth)
}

func (c *Cursor) Bounds() image.Rectangle { return c.bounds }
func (c *Cursor) LineWidth() int          { return c.bounds.Dx() }
func (c *Cursor) LineHeight() int         { return c.lineHeight }
func (c *Cursor) BaseLineHeight() int     { return c.baseHeight }
