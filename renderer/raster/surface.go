package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ByLCY/textbox/layout"
)

// Surface is a layout.DrawTarget backed by an RGBA image. Pixels outside
// the image are dropped.
type Surface struct {
	img *image.RGBA
}

var _ layout.DrawTarget = (*Surface)(nil)

// NewSurface returns a w x h surface filled with background. A nil
// background leaves it transparent.
func NewSurface(w, h int, background color.Color) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	return &Surface{img: img}
}

func (s *Surface) SetPixel(x, y int, c color.Color) error {
	if !image.Pt(x, y).In(s.img.Rect) {
		return nil
	}
	s.img.Set(x, y, c)
	return nil
}

// Fill paints r with c, clipped to the surface.
func (s *Surface) Fill(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r.Intersect(s.img.Rect), image.NewUniform(c), image.Point{}, draw.Over)
}

// Image returns the underlying image.
func (s *Surface) Image() *image.RGBA { return s.img }

// Bounds returns the surface size.
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }
