package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// DefaultSize 是可缩放字体未指定字号时使用的大小（pt，72 dpi 下等于像素）。
const DefaultSize = 12

// 内置位图字体，字号固定。
var bitmapFaces = map[string]font.Face{
	"7x13":             basicfont.Face7x13,
	"basic":            basicfont.Face7x13,
	"8x16":             inconsolata.Regular8x16,
	"inconsolata":      inconsolata.Regular8x16,
	"inconsolata-bold": inconsolata.Bold8x16,
}

// 内置可缩放字体。
var scalableFonts = map[string][]byte{
	"gomono":    gomono.TTF,
	"goregular": goregular.TTF,
}

type faceKey struct {
	name string
	size float64
}

var (
	mu        sync.Mutex
	parsed    = map[string]*sfnt.Font{}
	faceCache = map[faceKey]font.Face{}
)

// Names 返回内置字体的名称。
func Names() []string {
	return []string{"7x13", "8x16", "inconsolata-bold", "gomono", "goregular"}
}

// Load 返回指定名称的字体。name 可以是内置字体名，也可以是 .ttf/.otf 文件路径，
// 也可写为 "file:path/to/font.ttf"。size 仅对可缩放字体生效，0 表示 DefaultSize。
func Load(name string, size float64) (font.Face, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if face, ok := bitmapFaces[key]; ok {
		return face, nil
	}
	if size <= 0 {
		size = DefaultSize
	}

	mu.Lock()
	defer mu.Unlock()

	cacheKey := faceKey{name: name, size: size}
	if face, ok := faceCache[cacheKey]; ok {
		return face, nil
	}

	f, ok := parsed[name]
	if !ok {
		data, builtin := scalableFonts[key]
		if !builtin {
			path := strings.TrimPrefix(name, "file:")
			if !isFontFile(path) {
				return nil, fmt.Errorf("未知字体 %q", name)
			}
			var err error
			if data, err = os.ReadFile(path); err != nil {
				return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
			}
		}
		var err error
		if f, err = opentype.Parse(data); err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
		}
		parsed[name] = f
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体 %s (%.1f) 失败: %w", name, size, err)
	}
	faceCache[cacheKey] = face
	return face, nil
}

func isFontFile(path string) bool {
	ext := strings.ToLower(path)
	return strings.HasSuffix(ext, ".ttf") || strings.HasSuffix(ext, ".otf")
}
