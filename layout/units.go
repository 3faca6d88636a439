package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types for physical lengths, line height and tab size.

// Unit represents the original unit of a length value as specified in DSL.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers
	UnitPX               // device pixels
	UnitMM               // millimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToMM converts an absolute length to millimeters. Pixel and unit-less
// lengths have no physical size and are returned unchanged.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

func (l Length) ToPT() float64 { return l.ToMM() * MmToPt }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ParseLength parses a DSL length such as "0.25mm", "1pt" or "12px".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"mm", UnitMM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// LineHeightKind distinguishes absolute and relative line heights.
type LineHeightKind int

const (
	LineHeightPercent LineHeightKind = iota
	LineHeightPixels
)

// LineHeight is the vertical distance between the tops of two consecutive lines.
type LineHeight struct {
	Kind  LineHeightKind `json:"kind"`
	Value int            `json:"value"`
}

// Pixels returns an absolute line height.
func Pixels(n int) LineHeight { return LineHeight{Kind: LineHeightPixels, Value: n} }

// Percent returns a line height relative to the font's line height.
func Percent(p int) LineHeight { return LineHeight{Kind: LineHeightPercent, Value: p} }

// Resolve returns the line height in pixels for a font whose rows are base pixels tall.
func (h LineHeight) Resolve(base int) int {
	switch h.Kind {
	case LineHeightPixels:
		return h.Value
	default:
		return base * h.Value / 100
	}
}

func (h LineHeight) String() string {
	if h.Kind == LineHeightPixels {
		return strconv.Itoa(h.Value) + "px"
	}
	return strconv.Itoa(h.Value) + "%"
}

// ParseLineHeight accepts "12px", "120%" or a bare factor like "1.5".
func ParseLineHeight(value string) (LineHeight, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasSuffix(v, "px"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "px")))
		if err != nil || n < 0 {
			return LineHeight{}, fmt.Errorf("invalid line height %q", value)
		}
		return Pixels(n), nil
	case strings.HasSuffix(v, "%"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "%")))
		if err != nil || n < 0 {
			return LineHeight{}, fmt.Errorf("invalid line height %q", value)
		}
		return Percent(n), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return LineHeight{}, fmt.Errorf("invalid line height %q", value)
	}
	return Percent(int(f*100 + 0.5)), nil
}

// TabSizeKind distinguishes tab stops given in spaces or pixels.
type TabSizeKind int

const (
	TabSpaces TabSizeKind = iota
	TabPixels
)

// TabSize is the distance between two tab stops.
type TabSize struct {
	Kind  TabSizeKind `json:"kind"`
	Value int         `json:"value"`
}

// Spaces returns a tab size of n space characters.
func Spaces(n int) TabSize { return TabSize{Kind: TabSpaces, Value: n} }

// TabPixelWidth returns a tab size of n pixels.
func TabPixelWidth(n int) TabSize { return TabSize{Kind: TabPixels, Value: n} }

// Width resolves the tab size in pixels. The result is never less than 1.
func (t TabSize) Width(style CharacterStyle) int {
	w := t.Value
	if t.Kind == TabSpaces {
		w = t.Value * style.Measure(" ")
	}
	return max(w, 1)
}

// ParseTabSize accepts "4" (spaces) or "24px".
func ParseTabSize(value string) (TabSize, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if s, ok := strings.CutSuffix(v, "px"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return TabSize{}, fmt.Errorf("invalid tab size %q", value)
		}
		return TabPixelWidth(n), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return TabSize{}, fmt.Errorf("invalid tab size %q", value)
	}
	return Spaces(n), nil
}
