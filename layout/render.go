package layout

import (
	"image"

	"github.com/ByLCY/textbox/parser"
)

// styleState is the character style shared by all lines of a box.
type styleState struct {
	initial CharacterStyle
	current CharacterStyle
}

// renderHandler draws the elements of a line.
type renderHandler struct {
	style  *styleState
	target DrawTarget
	chain  *Chain
	pos    image.Point
	height int

	// observer, if set, receives the drawn elements.
	observer func(text string, width int)
}

func (h *renderHandler) Measure(text string) int { return h.style.current.Measure(text) }

func (h *renderHandler) Whitespace(raw string, count, width int) error {
	if width == 0 {
		return nil
	}
	pos := h.pos
	if _, err := h.style.current.DrawWhitespace(h.target, width, pos); err != nil {
		return err
	}
	h.pos.X += width
	if h.observer != nil {
		h.observer(raw, width)
	}
	return h.chain.PostRender(h.target, h.style.current, raw, h.bounds(pos, width))
}

func (h *renderHandler) PrintedCharacters(text string, width int) error {
	pos := h.pos
	if _, err := h.style.current.DrawText(h.target, text, pos); err != nil {
		return err
	}
	h.pos.X += width
	if h.observer != nil {
		h.observer(text, width)
	}
	return h.chain.PostRender(h.target, h.style.current, text, h.bounds(pos, width))
}

func (h *renderHandler) MoveCursor(delta int) error {
	h.pos.X += delta
	return nil
}

func (h *renderHandler) ChangeStyle(change parser.StyleChange) error {
	h.style.current = applyStyleChange(h.style.current, h.style.initial, change)
	return nil
}

func (h *renderHandler) bounds(pos image.Point, width int) image.Rectangle {
	return image.Rectangle{Min: pos, Max: pos.Add(image.Pt(width, h.height))}
}
