package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ByLCY/textbox/layout"
)

// Render 按顺序绘制所有文本框，并返回每个文本框的布局结果。
// from 指向的文本框未能放下的文本会接在当前文本框的文本之前。
func (s *Scene) Render(target layout.DrawTarget) (*layout.Result, error) {
	res := &layout.Result{Width: s.Width, Height: s.Height, Meta: s.Meta}
	if s.Background != nil {
		if err := fill(target, image.Rect(0, 0, s.Width, s.Height), s.Background); err != nil {
			return nil, fmt.Errorf("绘制背景失败: %w", err)
		}
	}

	remaining := map[string]string{}
	for _, box := range s.Boxes {
		text := box.Text
		if box.From != "" {
			text = remaining[box.From] + text
		}
		tb := layout.NewTextBox(text, box.Bounds, box.Character, box.Style)
		for _, p := range box.Plugins {
			tb.AddPlugin(p)
		}

		if box.Fill != nil {
			if err := fill(target, tb.Bounds(), box.Fill); err != nil {
				return nil, fmt.Errorf("box %s: %w", box.Name, err)
			}
		}
		br, err := tb.DrawLayout(target)
		if err != nil {
			return nil, fmt.Errorf("box %s: %w", box.Name, err)
		}
		br.Name = box.Name
		remaining[box.Name] = br.Remaining
		res.Boxes = append(res.Boxes, *br)
	}
	return res, nil
}

// filler is implemented by targets that can paint a rectangle at once.
type filler interface {
	Fill(r image.Rectangle, c color.Color)
}

func fill(target layout.DrawTarget, r image.Rectangle, c color.Color) error {
	if f, ok := target.(filler); ok {
		f.Fill(r, c)
		return nil
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if err := target.SetPixel(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}
