package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestParseLength 覆盖常见单位的解析与毫米换算。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		mm   float64
	}{
		{"0.25mm", Length{Value: 0.25, Unit: UnitMM}, 0.25},
		{"1in", Length{Value: 1, Unit: UnitIN}, 25.4},
		{"12pt", Length{Value: 12, Unit: UnitPT}, 12 * PtToMm},
		{" 3PX ", Length{Value: 3, Unit: UnitPX}, 3},
		{"2", Length{Value: 2, Unit: UnitNone}, 2},
	}
	for _, tc := range cases {
		got, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("解析 %q 期望 %+v，实际 %+v", tc.in, tc.want, got)
		}
		if diff := math.Abs(got.ToMM() - tc.mm); diff > 1e-9 {
			t.Fatalf("%q 转 mm 期望 %g，实际 %g", tc.in, tc.mm, got.ToMM())
		}
	}
	for _, bad := range []string{"", "mm", "abc"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("期望 %q 解析失败", bad)
		}
	}
}

// TestLineHeightResolve 验证像素与百分比两种行高的解析结果。
func TestLineHeightResolve(t *testing.T) {
	cases := []struct {
		in   string
		base int
		want int
	}{
		{"100%", 8, 8},
		{"150%", 8, 12},
		{"1.5", 8, 12},
		{"10px", 8, 10},
		{"0px", 8, 0},
		{"50%", 13, 6},
	}
	for _, tc := range cases {
		lh, err := ParseLineHeight(tc.in)
		if err != nil {
			t.Fatalf("解析行高 %q 失败: %v", tc.in, err)
		}
		if got := lh.Resolve(tc.base); got != tc.want {
			t.Fatalf("行高 %q (base=%d) 期望 %d，实际 %d", tc.in, tc.base, tc.want, got)
		}
	}
	if _, err := ParseLineHeight("-2px"); err == nil {
		t.Fatalf("负数行高应当报错")
	}
}

// TestTabSizeWidth 验证制表位宽度：空格数乘以空格宽度，或直接像素，最小为 1。
func TestTabSizeWidth(t *testing.T) {
	style := newTestStyle()
	if got := Spaces(4).Width(style); got != 24 {
		t.Fatalf("4 个空格的制表位期望 24px，实际 %d", got)
	}
	if got := TabPixelWidth(10).Width(style); got != 10 {
		t.Fatalf("10px 制表位期望 10，实际 %d", got)
	}
	if got := Spaces(0).Width(style); got != 1 {
		t.Fatalf("0 宽度制表位应被限制为 1，实际 %d", got)
	}
	ts, err := ParseTabSize("24px")
	if err != nil || ts != TabPixelWidth(24) {
		t.Fatalf("解析 24px 失败: %v %+v", err, ts)
	}
	ts, err = ParseTabSize("2")
	if err != nil || ts != Spaces(2) {
		t.Fatalf("解析 2 失败: %v %+v", err, ts)
	}
}
