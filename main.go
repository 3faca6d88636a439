package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/textbox/dsl"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/renderer"
	canvasrenderer "github.com/ByLCY/textbox/renderer/canvas"
	"github.com/ByLCY/textbox/renderer/raster"
	"github.com/ByLCY/textbox/scene"
)

func main() {
	input := flag.String("in", "examples/demo.textbox", "DSL 文件路径")
	output := flag.String("out", "output/demo.png", "输出路径，按扩展名选择 png/bmp/tiff/pdf/svg")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	scale := flag.Int("scale", 1, "位图输出的放大倍数")
	pitch := flag.String("pitch", "0.25mm", "PDF/SVG 输出中每个像素的边长")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	r, err := rendererFor(*output, *scale, *pitch)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := run(*input, *output, *debug, inputData, r); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", *output)
}

// rendererFor 根据输出文件的扩展名选择渲染器。
func rendererFor(outputPath string, scale int, pitch string) (renderer.Renderer, error) {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".pdf", ".svg":
		length, err := layout.ParseLength(pitch)
		if err != nil {
			return nil, fmt.Errorf("pitch: %w", err)
		}
		format := canvasrenderer.PDF
		if strings.EqualFold(filepath.Ext(outputPath), ".svg") {
			format = canvasrenderer.SVG
		}
		return canvasrenderer.NewRenderer(format, length), nil
	}
	format, err := raster.FormatFromPath(outputPath)
	if err != nil {
		return nil, err
	}
	return raster.New(format, scale), nil
}

// run 串联解析、场景构建、排版绘制与输出。
func run(inputPath, outputPath, debugPath string, data any, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	doc, err := dsl.ParseFile(inputPath)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	sc, err := scene.Build(doc, data, scene.Options{BaseDir: filepath.Dir(inputPath)})
	if err != nil {
		return fmt.Errorf("构建场景失败: %w", err)
	}

	surface := raster.NewSurface(sc.Width, sc.Height, nil)
	result, err := sc.Render(surface)
	if err != nil {
		return fmt.Errorf("绘制失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	out, err := r.Render(&renderer.Frame{Image: surface.Image(), Meta: result.Meta})
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
