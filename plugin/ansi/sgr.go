package ansi

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/ByLCY/textbox/parser"
)

// Standard 16 color palette (Windows 10 console).
var palette = [16]color.RGBA{
	{12, 12, 12, 255},
	{197, 15, 31, 255},
	{19, 161, 14, 255},
	{193, 156, 0, 255},
	{0, 55, 218, 255},
	{136, 23, 152, 255},
	{58, 150, 221, 255},
	{204, 204, 204, 255},
	{118, 118, 118, 255},
	{231, 72, 86, 255},
	{22, 198, 12, 255},
	{249, 241, 165, 255},
	{59, 120, 255, 255},
	{180, 0, 158, 255},
	{97, 214, 214, 255},
	{242, 242, 242, 255},
}

// Color256 returns the color of an entry in the 256 color table.
func Color256(n uint8) color.RGBA {
	switch {
	case n < 16:
		return palette[n]
	case n < 232:
		i := n - 16
		return color.RGBA{R: i / 36 * 51, G: i / 6 % 6 * 51, B: i % 6 * 51, A: 255}
	default:
		i := n - 232
		v := i * 11
		if i == 23 {
			v = 255
		}
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
}

// parseSGR converts the parameters of a Select Graphic Rendition sequence to
// style changes. Unsupported attributes are skipped.
func parseSGR(params string) []parser.StyleChange {
	args := parseParams(params)
	if len(args) == 0 {
		args = []int{0}
	}

	var out []parser.StyleChange
	for i := 0; i < len(args); i++ {
		n := args[i]
		switch {
		case n == 0:
			out = append(out, parser.StyleChange{Kind: parser.ResetStyle})
		case n == 4:
			out = append(out, decoration(parser.Underline, parser.DecorationTextColor))
		case n == 24:
			out = append(out, decoration(parser.Underline, parser.DecorationNone))
		case n == 9:
			out = append(out, decoration(parser.Strikethrough, parser.DecorationTextColor))
		case n == 29:
			out = append(out, decoration(parser.Strikethrough, parser.DecorationNone))
		case n >= 30 && n <= 37:
			out = append(out, colorChange(parser.TextColor, palette[n-30]))
		case n >= 90 && n <= 97:
			out = append(out, colorChange(parser.TextColor, palette[n-90+8]))
		case n >= 40 && n <= 47:
			out = append(out, colorChange(parser.BackgroundColor, palette[n-40]))
		case n >= 100 && n <= 107:
			out = append(out, colorChange(parser.BackgroundColor, palette[n-100+8]))
		case n == 39:
			out = append(out, parser.StyleChange{Kind: parser.TextColor})
		case n == 49:
			out = append(out, parser.StyleChange{Kind: parser.BackgroundColor})
		case n == 38 || n == 48:
			kind := parser.TextColor
			if n == 48 {
				kind = parser.BackgroundColor
			}
			c, used, ok := extendedColor(args[i+1:])
			i += used
			if ok {
				out = append(out, colorChange(kind, c))
			}
		}
	}
	return out
}

// extendedColor parses the arguments following 38 or 48: "5;n" or "2;r;g;b".
// It returns the number of arguments used.
func extendedColor(args []int) (color.RGBA, int, bool) {
	if len(args) == 0 {
		return color.RGBA{}, 0, false
	}
	switch args[0] {
	case 5:
		if len(args) < 2 {
			return color.RGBA{}, len(args), false
		}
		if args[1] < 0 || args[1] > 255 {
			return color.RGBA{}, 2, false
		}
		return Color256(uint8(args[1])), 2, true
	case 2:
		if len(args) < 4 {
			return color.RGBA{}, len(args), false
		}
		return color.RGBA{R: clamp8(args[1]), G: clamp8(args[2]), B: clamp8(args[3]), A: 255}, 4, true
	}
	return color.RGBA{}, 1, false
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		// An empty parameter is 0.
		n, _ := strconv.Atoi(p)
		out[i] = n
	}
	return out
}

func clamp8(n int) uint8 {
	return uint8(min(max(n, 0), 255))
}

func colorChange(kind parser.StyleKind, c color.RGBA) parser.StyleChange {
	return parser.StyleChange{Kind: kind, Color: c}
}

func decoration(kind parser.StyleKind, mode parser.DecorationMode) parser.StyleChange {
	return parser.StyleChange{Kind: kind, Decoration: parser.Decoration{Mode: mode}}
}
