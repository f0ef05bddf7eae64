package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-rect-raytracer/pkg/renderer"
	"github.com/df07/go-rect-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	Scene        string
	Width        int
	Height       int
	MaxLightRays int
	Frame        uint64
	Workers      int
	TileSize     int
	Output       string
}

func main() {
	config, help := parseFlags()

	// Show help if requested
	if help {
		showHelp()
		return
	}

	fmt.Println("Starting Rect Raytracer...")

	selectedScene, err := createScene(config.Scene)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(selectedScene, config)

	fmt.Printf("Rendering %s at %dx%d, max light rays %d\n",
		selectedScene.Name, selectedScene.Width, selectedScene.Height, selectedScene.Env.MaxLightRays)

	renderConfig := renderer.RenderConfig{
		TileSize:   config.TileSize,
		NumWorkers: config.Workers,
	}
	img, stats, err := selectedScene.Render(renderConfig, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Rays: %d total, %d secondary, %.2f per pixel\n",
		stats.TotalRays, stats.SecondaryRays(), stats.RaysPerPixel())

	filename := config.Output
	if filename == "" {
		outputDir := createOutputDir(config.Scene)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := gg.SavePNG(filename, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// parseFlags parses command line flags into a Config
func parseFlags() (Config, bool) {
	defaults := renderer.DefaultRenderConfig()
	config := Config{}

	flag.StringVar(&config.Scene, "scene", "default", "Built-in scene name, scene name under scenes/, or path to a .json scene file")
	flag.IntVar(&config.Width, "width", 0, "Image width (0 uses the scene's width)")
	flag.IntVar(&config.Height, "height", 0, "Image height (0 uses the scene's height)")
	flag.IntVar(&config.MaxLightRays, "max-light-rays", -1, "Recursion budget for reflected and scattered rays (-1 uses the scene's budget)")
	flag.Uint64Var(&config.Frame, "frame", 0, "Frame counter passed to the renderer")
	flag.IntVar(&config.Workers, "workers", defaults.NumWorkers, "Number of worker goroutines (0 = number of CPUs)")
	flag.IntVar(&config.TileSize, "tile-size", defaults.TileSize, "Tile size in pixels")
	flag.StringVar(&config.Output, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	return config, *help
}

func showHelp() {
	fmt.Println("Rect Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltInScenes() {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles(); err == nil {
		for _, info := range files {
			fmt.Printf("  %-16s %s\n", info.FilePath, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene resolves a scene by built-in name, scene file name or file path
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if strings.HasSuffix(sceneType, ".json") {
		return scene.NewScene(sceneType)
	}
	if s, err := scene.NewScene(sceneType); err == nil {
		return s, nil
	}
	if path := findSceneFile(sceneType); path != "" {
		return scene.NewScene(path)
	}
	return nil, fmt.Errorf("unknown scene %q", sceneType)
}

// findSceneFile looks for scenes/<name>.json, returning "" if there is none
func findSceneFile(name string) string {
	for _, dir := range []string{"scenes", "../scenes"} {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyOverrides replaces scene settings with the ones given on the command line
func applyOverrides(s *scene.Scene, config Config) {
	if config.Width > 0 {
		s.Width = config.Width
	}
	if config.Height > 0 {
		s.Height = config.Height
	}
	if config.MaxLightRays >= 0 {
		s.Env.MaxLightRays = config.MaxLightRays
	}
	s.Env.Frame = config.Frame
}

// createOutputDir names the output directory after the scene
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}
