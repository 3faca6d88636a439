package layout

import "image"

// 该文件定义布局结果，供调试 JSON 与测试共用。坐标单位均为像素。

// Result 保存一张画布上所有文本框的布局结果。
type Result struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Boxes  []BoxResult  `json:"boxes"`
	Meta   DocumentMeta `json:"meta"`
}

// BoxResult 记录单个文本框的最终尺寸、逐行排版与未能放下的剩余文本。
type BoxResult struct {
	Name       string       `json:"name,omitempty"`
	Bounds     Rect         `json:"bounds"`
	TextHeight int          `json:"textHeight"`
	Lines      []LineResult `json:"lines"`
	Remaining  string       `json:"remaining,omitempty"`
}

// LineResult 表示排版后的一行：起点、宽度、空格数、可见像素行数与结束原因。
type LineResult struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Spaces  int    `json:"spaces"`
	Rows    int    `json:"rows"`
	End     string `json:"end"`
	Content string `json:"content"`
}

// Rect 是 image.Rectangle 的 JSON 友好形式。
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func rectOf(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// DocumentMeta 保存输出文件的元信息（PDF/SVG 使用）。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
