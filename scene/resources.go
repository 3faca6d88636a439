package scene

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font"

	"github.com/ByLCY/textbox/dsl"
	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/parser"
)

// FontResource 描述 resources 中声明的字体。
type FontResource struct {
	Name string
	Src  string
	Size float64
}

// Style 是一组样式属性，可通过 extends 继承。
type Style struct {
	Name    string
	Extends string
	Props   map[string]string
}

// ResourceSet 汇总文档中声明的资源。
type ResourceSet struct {
	Fonts  map[string]FontResource
	Colors map[string]color.Color
	Styles map[string]Style
}

func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]color.Color{},
		Styles: map[string]Style{},
	}
	rawStyles := map[string]Style{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "font":
				f, err := parseFontResource(stmt.Command)
				if err != nil {
					return res, err
				}
				if f.Name != "" {
					res.Fonts[f.Name] = f
				}
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					continue
				}
				c, err := parseColor(value)
				if err != nil {
					return res, fmt.Errorf("color %s: %w", name, err)
				}
				res.Colors[name] = c
			case "style":
				style := parseStyleResource(stmt.Command)
				if style.Name != "" {
					rawStyles[style.Name] = style
				}
			default:
				return res, fmt.Errorf("未知资源类型 %s", stmt.Command.Name)
			}
		}
	}

	resolved, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = resolved
	return res, nil
}

func collectMeta(doc *dsl.Document) layout.DocumentMeta {
	meta := layout.DocumentMeta{
		Creator: "textbox",
	}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			case "keywords":
				meta.Keywords = valueToStringSlice(stmt.Assignment.Value)
			}
		}
	}
	return meta
}

func parseFontResource(cmd *dsl.Command) (FontResource, error) {
	if len(cmd.Args) == 0 {
		return FontResource{}, nil
	}
	f := FontResource{Name: cmd.Args[0].Value, Src: cmd.Args[0].Value}
	if cmd.Block == nil {
		return f, nil
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		val := valueToString(stmt.Assignment.Value)
		switch stmt.Assignment.Key {
		case "src":
			f.Src = val
		case "size":
			size, err := strconv.ParseFloat(strings.TrimSuffix(val, "pt"), 64)
			if err != nil {
				return f, fmt.Errorf("font %s 字号 %q 无法解析", f.Name, val)
			}
			f.Size = size
		}
	}
	return f, nil
}

func parseStyleResource(cmd *dsl.Command) Style {
	if len(cmd.Args) == 0 {
		return Style{}
	}
	style := Style{
		Name:  cmd.Args[0].Value,
		Props: map[string]string{},
	}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
		style.Extends = cmd.Args[2].Value
	}
	if cmd.Block == nil {
		return style
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		if val := valueToString(stmt.Assignment.Value); val != "" {
			style.Props[stmt.Assignment.Key] = val
		}
	}
	return style
}

func resolveStyles(styles map[string]Style) (map[string]Style, error) {
	resolved := map[string]Style{}
	visiting := map[string]bool{}

	var dfs func(name string) (Style, error)
	dfs = func(name string) (Style, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return Style{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return Style{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := dfs(style.Extends)
			if err != nil {
				return Style{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range style.Props {
			props[k] = v
		}
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

// loadFace 加载字体；相对路径的字体文件以 baseDir 为根。
func (res ResourceSet) loadFace(name string, size float64, baseDir string) (font.Face, error) {
	src := name
	if f, ok := res.Fonts[name]; ok {
		src = f.Src
		if size <= 0 {
			size = f.Size
		}
	}
	if src == "" {
		src = "7x13"
	}
	if isFontPath(src) && !filepath.IsAbs(src) && baseDir != "" {
		src = filepath.Join(baseDir, src)
	}
	return fonts.Load(src, size)
}

func isFontPath(src string) bool {
	ext := strings.ToLower(filepath.Ext(src))
	return ext == ".ttf" || ext == ".otf"
}

// resolveColor 解析颜色值：资源名、#hex 或 none（透明）。
func (res ResourceSet) resolveColor(value string) (color.Color, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "none") {
		return nil, nil
	}
	if c, ok := res.Colors[value]; ok {
		return c, nil
	}
	return parseColor(value)
}

func parseColor(value string) (color.Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(value, "#") {
		return nil, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		var builder strings.Builder
		for i, part := range val.Expr.Parts {
			// Adjacent words keep a separating space: "exact hidden".
			if i > 0 && part.Type != "Symbol" && val.Expr.Parts[i-1].Type != "Symbol" {
				builder.WriteByte(' ')
			}
			builder.WriteString(part.Value)
		}
		return builder.String()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}

// decoration 解析 underline/strikethrough：true 跟随文字颜色，false/none 关闭，其余视为颜色。
func (res ResourceSet) decoration(value string) (parser.Decoration, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on":
		return parser.Decoration{Mode: parser.DecorationTextColor}, nil
	case "false", "off", "none":
		return parser.Decoration{Mode: parser.DecorationNone}, nil
	}
	c, err := res.resolveColor(value)
	if err != nil {
		return parser.Decoration{}, err
	}
	return parser.Decoration{Mode: parser.DecorationCustom, Color: c}, nil
}

// parsePixels 解析像素值，如 "12"、"12px"、"-3"。
func parsePixels(value string) (int, error) {
	v := strings.TrimSuffix(strings.TrimSpace(value), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("像素值 %q 无法解析", value)
	}
	return int(math.Round(f)), nil
}
