package binding_test

import (
	"encoding/json"
	"testing"

	"github.com/ByLCY/textbox/binding"
)

const sample = `{
  "user": {"name": "Ada", "age": 36, "score": 9.5, "admin": true, "nick": null},
  "tags": ["a", "b", ["c", "d"]]
}`

func decode(t *testing.T) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(sample), &data); err != nil {
		t.Fatalf("解析 JSON 失败: %v", err)
	}
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t)
	cases := map[string]string{
		"Hello, ${user.name}!":       "Hello, Ada!",
		"${ user.age } years":        "36 years",
		"${user.score}":              "9.5",
		"${user.admin}":              "true",
		"[${user.nick}]":             "[]",
		"${tags[1]}${tags[2][0]}":    "bc",
		"${user.missing}":            "${user.missing}",
		"${tags[9]}":                 "${tags[9]}",
		"${tags[x]}":                 "${tags[x]}",
		"${}":                        "${}",
		"costs $$5 for ${user.name}": "costs $5 for Ada",
		"no placeholders":            "no placeholders",
	}
	for in, want := range cases {
		if got := binding.Interpolate(in, data); got != want {
			t.Fatalf("Interpolate(%q) 期望 %q，实际 %q", in, want, got)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	if got := binding.Interpolate("Hello ${user.name}", nil); got != "Hello ${user.name}" {
		t.Fatalf("无数据时应保留占位符，实际 %q", got)
	}
}

func TestLookup(t *testing.T) {
	data := decode(t)
	if v, ok := binding.Lookup(data, "tags[2]"); !ok || len(v.([]any)) != 2 {
		t.Fatalf("期望取到嵌套数组，实际 %v (%v)", v, ok)
	}
	if _, ok := binding.Lookup(data, "user.name.first"); ok {
		t.Fatalf("字符串不能继续取字段")
	}
}
