package scene_test

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/textbox/dsl"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
	"github.com/ByLCY/textbox/plugin/limit"
	"github.com/ByLCY/textbox/renderer/raster"
	"github.com/ByLCY/textbox/scene"
)

const sceneDSL = `
doc Test v1 {
  meta {
    title: "Chained"
    keywords: ["a", "b"]
  }
  resources {
    font Small { src: "7x13" }
    color Ink = #ff0000
    style Base {
      font: Small
      color: Ink
    }
    style Centered extends Base { align: center }
  }
  canvas 100 60 #000000 {
    box first Base x 0 y 0 width 35 height 13 {
      "Hello ${user.name} and more"
    }
    box second Centered x 0 y 20 width 70 height 26 {
      from: first
    }
  }
}
`

func build(t *testing.T, src string, data any) *scene.Scene {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	sc, err := scene.Build(doc, data, scene.Options{})
	if err != nil {
		t.Fatalf("构建场景失败: %v", err)
	}
	return sc
}

func TestBuildAndRenderChainedBoxes(t *testing.T) {
	var data any
	if err := json.Unmarshal([]byte(`{"user":{"name":"Ada"}}`), &data); err != nil {
		t.Fatalf("解析数据失败: %v", err)
	}
	sc := build(t, sceneDSL, data)
	if sc.Width != 100 || sc.Height != 60 {
		t.Fatalf("画布尺寸期望 100x60，实际 %dx%d", sc.Width, sc.Height)
	}
	if diff := cmp.Diff(layout.DocumentMeta{Title: "Chained", Creator: "textbox", Keywords: []string{"a", "b"}}, sc.Meta); diff != "" {
		t.Fatalf("meta (-want +got):\n%s", diff)
	}
	if len(sc.Boxes) != 2 || sc.Boxes[0].Text != "Hello Ada and more" {
		t.Fatalf("文本框构建错误: %+v", sc.Boxes)
	}
	if sc.Boxes[1].Style.Alignment != layout.AlignCenter {
		t.Fatalf("继承的样式应为居中对齐")
	}

	surface := raster.NewSurface(sc.Width, sc.Height, nil)
	res, err := sc.Render(surface)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}

	type line struct {
		X, Y    int
		Content string
	}
	var got [][]line
	for _, b := range res.Boxes {
		var lines []line
		for _, l := range b.Lines {
			lines = append(lines, line{l.X, l.Y, l.Content})
		}
		got = append(got, lines)
	}
	want := [][]line{
		{{0, 0, "Hello"}},
		{{10, 20, "Ada and"}, {21, 33, "more"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if res.Boxes[0].Remaining != "Ada and more" || res.Boxes[1].Remaining != "" {
		t.Fatalf("剩余文本错误: %q / %q", res.Boxes[0].Remaining, res.Boxes[1].Remaining)
	}
	if res.Boxes[0].Name != "first" || res.Boxes[1].Name != "second" {
		t.Fatalf("结果应带有文本框名称")
	}

	img := surface.Image()
	if c := img.RGBAAt(99, 59); c != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("背景期望黑色，实际 %v", c)
	}
	red := 0
	for y := 0; y < 13; y++ {
		for x := 0; x < 35; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{255, 0, 0, 255}) {
				red++
			}
		}
	}
	if red == 0 {
		t.Fatalf("第一个文本框应绘制红色文字")
	}
}

func TestBoxProperties(t *testing.T) {
	src := `
doc Props v1 {
  canvas 50 50 {
    box b x 1 y 2 width 30 height 40 {
      height-mode: shrink hidden
      valign: bottom
      line-height: 150%
      tab-size: 2
      paragraph-spacing: 3
      trailing-spaces: true
      underline: true
      background: #00ff00
      plugins: [ansi, underline, limit, tail]
      limit: 3
      caret: "_"
      "a"
      "b"
    }
  }
}
`
	box := build(t, src, nil).Boxes[0]
	if box.Text != "ab" {
		t.Fatalf("文本应按顺序拼接，实际 %q", box.Text)
	}
	if box.Bounds.Min.X != 1 || box.Bounds.Min.Y != 2 || box.Bounds.Dx() != 30 || box.Bounds.Dy() != 40 {
		t.Fatalf("位置错误: %v", box.Bounds)
	}
	want := layout.NewStyleBuilder().
		HeightMode(layout.ShrinkToText(layout.Hidden)).
		VerticalAlignment(layout.AlignBottom).
		LineHeight(layout.Percent(150)).
		TabSize(layout.Spaces(2)).
		ParagraphSpacing(3).
		TrailingSpaces(true).
		Build()
	if diff := cmp.Diff(want, box.Style); diff != "" {
		t.Fatalf("style (-want +got):\n%s", diff)
	}
	if box.Character.Underlined.Mode != parser.DecorationTextColor || box.Character.BackgroundColor == nil {
		t.Fatalf("字符样式未生效: %+v", box.Character)
	}
	if len(box.Plugins) != 4 {
		t.Fatalf("期望 4 个插件，实际 %d", len(box.Plugins))
	}
	lp, ok := box.Plugins[2].(*limit.Plugin)
	if !ok || lp.Limit != 3 || lp.Caret != "_" {
		t.Fatalf("limit 插件配置错误: %+v", box.Plugins[2])
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"未定义样式":    `doc E v1 { canvas 10 10 { box a Missing x 0 y 0 width 5 height 5 { } } }`,
		"from 在后面": `doc E v1 { canvas 10 10 { box a x 0 y 0 width 5 height 5 { from: b } box b x 0 y 0 width 5 height 5 { } } }`,
		"未知插件":     `doc E v1 { canvas 10 10 { box a x 0 y 0 width 5 height 5 { plugins: [rainbow] } } }`,
		"缺少宽度":     `doc E v1 { canvas 10 10 { box a x 0 y 0 height 5 { } } }`,
		"颜色错误":     `doc E v1 { canvas 10 10 { box a x 0 y 0 width 5 height 5 { color: nope } } }`,
		"未知字体":     `doc E v1 { canvas 10 10 { box a x 0 y 0 width 5 height 5 { font: nope } } }`,
		"缺少画布":     `doc E v1 { meta { title: "x" } }`,
		"重复名称":     `doc E v1 { canvas 10 10 { box a width 5 height 5 { } box a width 5 height 5 { } } }`,
		"样式循环":     `doc E v1 { resources { style A extends B { } style B extends A { } } canvas 10 10 { } }`,
	}
	for name, src := range cases {
		doc, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("%s: 解析失败: %v", name, err)
		}
		if _, err := scene.Build(doc, nil, scene.Options{}); err == nil {
			t.Fatalf("%s: 期望构建失败", name)
		}
	}
}

func TestLimitPluginFromScene(t *testing.T) {
	src := `
doc L v1 {
  canvas 200 20 {
    box typing x 0 y 0 width 200 height 13 {
      plugins: [limit]
      limit: 8
      "typing effect"
    }
  }
}
`
	sc := build(t, src, nil)
	res, err := sc.Render(raster.NewSurface(sc.Width, sc.Height, nil))
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if got := res.Boxes[0].Lines[0].Content; got != "typing e" {
		t.Fatalf("期望显示前 8 个字符，实际 %q", got)
	}
}
