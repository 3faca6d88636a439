// Package scene builds text boxes from a scene file and draws them onto one
// canvas.
package scene

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/ByLCY/textbox/binding"
	"github.com/ByLCY/textbox/dsl"
	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/plugin/ansi"
	"github.com/ByLCY/textbox/plugin/limit"
	"github.com/ByLCY/textbox/plugin/tail"
	"github.com/ByLCY/textbox/plugin/underline"
)

// Options 控制场景构建。
type Options struct {
	// BaseDir 是相对字体路径的根目录。
	BaseDir string
}

// Scene 是一张画布及其上按顺序绘制的文本框。
type Scene struct {
	Width, Height int
	Background    color.Color
	Meta          layout.DocumentMeta
	Boxes         []*Box
}

// Box 是构建完成、可直接绘制的文本框。
type Box struct {
	Name   string
	Bounds image.Rectangle
	// Text 是数据绑定后的文本。From 非空时，文本接在该文本框的剩余文本之后。
	Text      string
	From      string
	Fill      color.Color
	Style     layout.TextBoxStyle
	Character *fonts.Style
	Plugins   []layout.Plugin
}

// Build 根据 DSL AST 生成场景。
func Build(doc *dsl.Document, data any, opts Options) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	section := firstCanvas(doc)
	if section == nil {
		return nil, fmt.Errorf("文档中缺少 canvas 段落")
	}

	sc := &Scene{Meta: collectMeta(doc)}
	if sc.Width, err = parsePixels(section.Width); err != nil {
		return nil, fmt.Errorf("canvas 宽度: %w", err)
	}
	if sc.Height, err = parsePixels(section.Height); err != nil {
		return nil, fmt.Errorf("canvas 高度: %w", err)
	}
	if section.Background != "" {
		if sc.Background, err = res.resolveColor(section.Background); err != nil {
			return nil, fmt.Errorf("canvas 背景: %w", err)
		}
	}

	names := map[string]bool{}
	for _, b := range section.Boxes {
		box, err := buildBox(b, res, data, opts)
		if err != nil {
			return nil, fmt.Errorf("box %s: %w", b.Name, err)
		}
		if names[box.Name] {
			return nil, fmt.Errorf("box %s 重复定义", box.Name)
		}
		if box.From != "" && !names[box.From] {
			return nil, fmt.Errorf("box %s: from 引用的 box %s 需在之前定义", box.Name, box.From)
		}
		names[box.Name] = true
		sc.Boxes = append(sc.Boxes, box)
	}
	return sc, nil
}

func firstCanvas(doc *dsl.Document) *dsl.CanvasSection {
	for _, section := range doc.Sections {
		if section.Canvas != nil {
			return section.Canvas
		}
	}
	return nil
}

func buildBox(b *dsl.BoxSection, res ResourceSet, data any, opts Options) (*Box, error) {
	styleName, attrs := parseArgs(b.Args)
	if styleName != "" {
		if _, ok := res.Styles[styleName]; !ok {
			return nil, fmt.Errorf("style %s 未定义", styleName)
		}
	}

	box := &Box{Name: b.Name}
	var pluginNames []string
	var text strings.Builder
	if b.Block != nil {
		for _, stmt := range b.Block.Statements {
			switch {
			case stmt.Text != nil:
				text.WriteString(string(stmt.Text.Value))
			case stmt.Assignment != nil:
				key, val := stmt.Assignment.Key, stmt.Assignment.Value
				switch key {
				case "plugins":
					pluginNames = valueToStringSlice(val)
				case "from":
					box.From = valueToString(val)
				default:
					attrs[key] = valueToString(val)
				}
			}
		}
	}
	box.Text = binding.Interpolate(text.String(), data)
	attrs = mergeStyleAttributes(styleName, attrs, res.Styles)

	var err error
	if box.Bounds, err = boxBounds(attrs); err != nil {
		return nil, err
	}
	if box.Style, err = textBoxStyle(attrs); err != nil {
		return nil, err
	}
	if box.Character, err = characterStyle(attrs, res, opts); err != nil {
		return nil, err
	}
	if v, ok := attrs["fill"]; ok {
		if box.Fill, err = res.resolveColor(v); err != nil {
			return nil, err
		}
	}
	if box.Plugins, err = buildPlugins(pluginNames, attrs, res); err != nil {
		return nil, err
	}
	return box, nil
}

// parseArgs 解析 box 头部参数：可选的样式名，随后是 key value 对。
func parseArgs(args []*dsl.Lexeme) (string, map[string]string) {
	result := map[string]string{}
	cursor := 0
	var style string
	if len(args)%2 == 1 && args[0].Type == "Ident" {
		style = args[0].Value
		cursor = 1
	}
	for cursor < len(args)-1 {
		result[args[cursor].Value] = args[cursor+1].Value
		cursor += 2
	}
	return style, result
}

func mergeStyleAttributes(style string, inline map[string]string, styles map[string]Style) map[string]string {
	out := make(map[string]string)
	if s, ok := styles[style]; ok {
		for k, v := range s.Props {
			out[k] = v
		}
	}
	for k, v := range inline {
		out[k] = v
	}
	return out
}

func boxBounds(attrs map[string]string) (image.Rectangle, error) {
	var v [4]int
	for i, key := range []string{"x", "y", "width", "height"} {
		raw, ok := attrs[key]
		if !ok {
			if key == "x" || key == "y" {
				continue
			}
			return image.Rectangle{}, fmt.Errorf("缺少 %s", key)
		}
		n, err := parsePixels(raw)
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("%s: %w", key, err)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// textBoxStyle 将样式属性转换为 layout.TextBoxStyle。
func textBoxStyle(attrs map[string]string) (layout.TextBoxStyle, error) {
	b := layout.NewStyleBuilder()
	for key, val := range attrs {
		var err error
		switch key {
		case "align":
			var a layout.HorizontalAlignment
			if a, err = layout.ParseHorizontalAlignment(val); err == nil {
				b.Alignment(a)
			}
		case "valign":
			var a layout.VerticalAlignment
			if a, err = layout.ParseVerticalAlignment(val); err == nil {
				b.VerticalAlignment(a)
			}
		case "height-mode":
			var m layout.HeightMode
			if m, err = layout.ParseHeightMode(val); err == nil {
				b.HeightMode(m)
			}
		case "line-height":
			var lh layout.LineHeight
			if lh, err = layout.ParseLineHeight(val); err == nil {
				b.LineHeight(lh)
			}
		case "paragraph-spacing":
			var n int
			if n, err = parsePixels(val); err == nil {
				b.ParagraphSpacing(n)
			}
		case "tab-size":
			var ts layout.TabSize
			if ts, err = layout.ParseTabSize(val); err == nil {
				b.TabSize(ts)
			}
		case "leading-spaces":
			var on bool
			if on, err = strconv.ParseBool(val); err == nil {
				b.LeadingSpaces(on)
			}
		case "trailing-spaces":
			var on bool
			if on, err = strconv.ParseBool(val); err == nil {
				b.TrailingSpaces(on)
			}
		}
		if err != nil {
			return layout.TextBoxStyle{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return b.Build(), nil
}

func characterStyle(attrs map[string]string, res ResourceSet, opts Options) (*fonts.Style, error) {
	var size float64
	if v, ok := attrs["size"]; ok {
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "pt"), 64)
		if err != nil {
			return nil, fmt.Errorf("字号 %q 无法解析", v)
		}
		size = n
	}
	face, err := res.loadFace(attrs["font"], size, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	text := color.Color(color.White)
	if v, ok := attrs["color"]; ok {
		if text, err = res.resolveColor(v); err != nil {
			return nil, err
		}
	}
	cs := fonts.NewStyle(face, text)
	if v, ok := attrs["background"]; ok {
		if cs.BackgroundColor, err = res.resolveColor(v); err != nil {
			return nil, err
		}
	}
	if v, ok := attrs["underline"]; ok {
		if cs.Underlined, err = res.decoration(v); err != nil {
			return nil, fmt.Errorf("underline: %w", err)
		}
	}
	if v, ok := attrs["strikethrough"]; ok {
		if cs.Strikethrough, err = res.decoration(v); err != nil {
			return nil, fmt.Errorf("strikethrough: %w", err)
		}
	}
	return cs, nil
}

func buildPlugins(names []string, attrs map[string]string, res ResourceSet) ([]layout.Plugin, error) {
	var plugins []layout.Plugin
	for _, name := range names {
		switch strings.ToLower(name) {
		case "ansi":
			plugins = append(plugins, ansi.New())
		case "tail":
			plugins = append(plugins, tail.New())
		case "underline":
			plugins = append(plugins, underline.New())
		case "limit":
			n, err := strconv.Atoi(attrs["limit"])
			if err != nil {
				return nil, fmt.Errorf("limit 插件需要整数 limit 属性，实际 %q", attrs["limit"])
			}
			p := limit.New(n)
			if caret, ok := attrs["caret"]; ok {
				var block color.Color
				if v, ok := attrs["caret-block"]; ok {
					var err error
					if block, err = res.resolveColor(v); err != nil {
						return nil, err
					}
				}
				p.WithCaret(caret, block)
			}
			plugins = append(plugins, p)
		default:
			return nil, fmt.Errorf("未知插件 %s", name)
		}
	}
	return plugins, nil
}
