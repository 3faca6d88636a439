package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"regexp"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/renderer"
)

// DefaultPitch 是一个像素在输出文件中的默认边长。
var DefaultPitch = layout.Length{Value: 0.25, Unit: layout.UnitMM}

// Format 是矢量输出格式。
type Format int

const (
	PDF Format = iota
	SVG
)

// Renderer draws frames via github.com/tdewolff/canvas. Every pixel becomes
// a square of side Pitch; runs of equal pixels on a row are merged.
type Renderer struct {
	Format Format
	Pitch  layout.Length
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a canvas-based renderer.
func NewRenderer(format Format, pitch layout.Length) *Renderer {
	return &Renderer{Format: format, Pitch: pitch}
}

// Run 是一行中颜色相同的连续像素。
type Run struct {
	X, Y, Len int
	Color     color.RGBA
}

// Runs 按行扫描画面，合并相邻的同色像素。完全透明的像素被跳过。
func Runs(img image.Image) []Run {
	b := img.Bounds()
	var runs []Run
	for y := b.Min.Y; y < b.Max.Y; y++ {
		var cur *Run
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if c.A == 0 {
				cur = nil
				continue
			}
			if cur != nil && cur.Color == c {
				cur.Len++
				continue
			}
			runs = append(runs, Run{X: x - b.Min.X, Y: y - b.Min.Y, Len: 1, Color: c})
			cur = &runs[len(runs)-1]
		}
	}
	return runs
}

// Render renders the frame into a PDF or SVG byte slice.
func (r *Renderer) Render(frame *renderer.Frame) ([]byte, error) {
	if frame == nil || frame.Image == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	b := frame.Image.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("画面尺寸为空")
	}
	pitch := r.Pitch.ToMM()
	if pitch <= 0 {
		pitch = DefaultPitch.ToMM()
	}
	width, height := float64(b.Dx())*pitch, float64(b.Dy())*pitch

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与画面保持左上角为原点
	for _, run := range Runs(frame.Image) {
		ctx.SetFillColor(run.Color)
		ctx.DrawPath(float64(run.X)*pitch, float64(run.Y)*pitch, canvas.Rectangle(float64(run.Len)*pitch, pitch))
	}

	var buf bytes.Buffer
	switch r.Format {
	case PDF:
		writer := pdf.New(&buf, width, height, nil)
		applyMeta(writer, frame.Meta)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case SVG:
		writer := svg.New(&buf, width, height, &svg.Options{})
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
		return svgSizeInMM(buf.Bytes()), nil
	default:
		return nil, fmt.Errorf("不支持的输出格式 %d", r.Format)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// svgSize matches a unitless width or height attribute.
var svgSize = regexp.MustCompile(`(\s(?:width|height)="[0-9.]+)"`)

// svgSizeInMM gives the root element's width and height a mm unit, so that
// the pitch survives in viewers. Attributes that already carry a unit are kept.
func svgSizeInMM(data []byte) []byte {
	end := bytes.IndexByte(data, '>')
	if !bytes.HasPrefix(data, []byte("<svg")) || end < 0 {
		return data
	}
	root := svgSize.ReplaceAll(data[:end], []byte(`${1}mm"`))
	return append(root, data[end:]...)
}
