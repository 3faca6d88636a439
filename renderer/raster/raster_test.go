package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/tiff"

	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/renderer"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestSurfaceClipsPixels(t *testing.T) {
	s := NewSurface(4, 3, black)
	if err := s.SetPixel(10, 10, white); err != nil {
		t.Fatalf("越界像素不应报错: %v", err)
	}
	if err := s.SetPixel(-1, 0, white); err != nil {
		t.Fatalf("越界像素不应报错: %v", err)
	}
	if err := s.SetPixel(1, 2, white); err != nil {
		t.Fatalf("SetPixel 失败: %v", err)
	}
	if got := s.Image().RGBAAt(1, 2); got != white {
		t.Fatalf("像素 (1,2) 期望白色，实际 %v", got)
	}
	if got := s.Image().RGBAAt(0, 0); got != black {
		t.Fatalf("背景期望黑色，实际 %v", got)
	}
}

func TestSurfaceFill(t *testing.T) {
	s := NewSurface(4, 4, nil)
	s.Fill(image.Rect(2, 2, 10, 10), white)
	if got := s.Image().RGBAAt(3, 3); got != white {
		t.Fatalf("填充区域期望白色，实际 %v", got)
	}
	if got := s.Image().RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("填充区域外应保持透明，实际 %v", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{"out.png": PNG, "a/b.BMP": BMP, "x.tif": TIFF, "x.tiff": TIFF}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Fatalf("FormatFromPath(%q) 期望 %v，实际 %v (%v)", path, want, got, err)
		}
	}
	if _, err := FormatFromPath("out.jpg"); err == nil {
		t.Fatalf("不支持的扩展名应返回错误")
	}
}

func drawText(t *testing.T) *Surface {
	t.Helper()
	s := NewSurface(70, 26, black)
	cs := fonts.NewStyle(basicfont.Face7x13, white)
	tb := layout.NewTextBox("Hello, world!", s.Bounds(), cs, layout.DefaultStyle())
	if _, err := tb.Draw(s); err != nil {
		t.Fatalf("Draw 失败: %v", err)
	}
	return s
}

func TestRenderFormats(t *testing.T) {
	s := drawText(t)
	decoders := map[Format]func([]byte) (image.Image, error){
		PNG:  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		BMP:  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		TIFF: func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	}
	for format, decode := range decoders {
		data, err := New(format, 2).Render(&renderer.Frame{Image: s.Image()})
		if err != nil {
			t.Fatalf("%v 渲染失败: %v", format, err)
		}
		img, err := decode(data)
		if err != nil {
			t.Fatalf("%v 解码失败: %v", format, err)
		}
		if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 52 {
			t.Fatalf("%v 放大后尺寸期望 140x52，实际 %v", format, b)
		}
	}
}

func TestScaleKeepsPixels(t *testing.T) {
	s := NewSurface(2, 1, black)
	s.SetPixel(1, 0, white)
	img := Scale(s.Image(), 3).(*image.RGBA)
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := black
			if x >= 3 {
				want = white
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("像素 (%d,%d) 期望 %v，实际 %v", x, y, want, got)
			}
		}
	}
}

func TestRenderNilFrame(t *testing.T) {
	if _, err := New(PNG, 1).Render(nil); err == nil {
		t.Fatalf("空画面应返回错误")
	}
}
