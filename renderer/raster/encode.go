package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/ByLCY/textbox/renderer"
)

// Format is an image file format.
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("不支持的图像格式 %q", filepath.Ext(path))
}

// Renderer encodes frames as images. Scale > 1 enlarges every pixel to a
// Scale x Scale block.
type Renderer struct {
	Format Format
	Scale  int
}

var _ renderer.Renderer = (*Renderer)(nil)

// New returns an image renderer.
func New(format Format, scale int) *Renderer {
	return &Renderer{Format: format, Scale: scale}
}

func (r *Renderer) Render(frame *renderer.Frame) ([]byte, error) {
	if frame == nil || frame.Image == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	img := Scale(frame.Image, r.Scale)

	var buf bytes.Buffer
	var err error
	switch r.Format {
	case PNG:
		err = png.Encode(&buf, img)
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, fmt.Errorf("不支持的图像格式 %v", r.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("编码 %v 失败: %w", r.Format, err)
	}
	return buf.Bytes(), nil
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}
