package renderer

import (
	"image"

	"github.com/ByLCY/textbox/layout"
)

// Frame 是一帧渲染完成的画面及其文档信息。
type Frame struct {
	Image image.Image
	Meta  layout.DocumentMeta
}

// Renderer 将画面输出为最终文件，例如 PNG、PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(frame *Frame) ([]byte, error)
}
