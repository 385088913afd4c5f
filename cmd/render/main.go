package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"animal-rig/internal/batch"
	"animal-rig/internal/config"
	"animal-rig/internal/raster"
	"animal-rig/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	scenesFile := flag.String("scenes", "", "Path to scenes YAML (default: built-in templates)")
	atlasPath := flag.String("atlas", "", "Texture atlas PNG/JPEG/TGA (default: generated)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	only := flag.String("scene", "", "Render only the named scene")
	testN := flag.Int("test", 0, "Render only first N scenes for testing")
	frames := flag.Int("frames", 0, "Frames per scene (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ScenesFile: *scenesFile,
		AtlasPath:  *atlasPath,
		OutputDir:  *outputDir,
		Frames:     *frames,
		Workers:    *workers,
	})

	kind, err := cfg.TrajectoryKind()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Load scenes
	scenes := batch.DefaultScenes()
	if cfg.ScenesFile != "" {
		scenes, err = batch.LoadScenes(cfg.ScenesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scenes: %v\n", err)
			os.Exit(1)
		}
	}

	if *only != "" {
		var filtered []batch.Scene
		for _, s := range scenes {
			if s.Name == *only {
				filtered = append(filtered, s)
			}
		}
		scenes = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(scenes) {
		scenes = scenes[:*testN]
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	atlasName := cfg.AtlasPath
	if atlasName == "" {
		atlasName = "(generated)"
	}

	fmt.Println("Animal rig preview renderer → WebP")
	fmt.Printf("Scenes: %d, Frames: %d, Workers: %d\n", len(scenes), cfg.Frames, cfg.Workers)
	fmt.Printf("Atlas: %s\n", atlasName)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:        cfg.OutputDir,
		Atlas:            texture.NewCache(cfg.BlockSize(), cfg.CellPixels),
		AtlasPath:        cfg.AtlasPath,
		BlockSize:        cfg.BlockSize(),
		Iterations:       cfg.IKIterations,
		Trajectory:       kind,
		TrajectoryParams: cfg.TrajectoryParams(),
		Frames:           cfg.Frames,
		FrameDelta:       cfg.FrameDelta,
		Render: raster.Options{
			Size:        cfg.RenderSize,
			Supersample: cfg.Supersample,
			Margin:      8,
			Pitch:       cfg.Pitch,
			Yaw:         cfg.Yaw,
		},
		FillRatio: cfg.FillRatio,
		Workers:   cfg.Workers,
	}

	results, err := batch.Run(ctx, batchCfg, scenes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else if r.Name != "" {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(scenes))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	werr := os.MkdirAll(cfg.OutputDir, 0755)
	if werr == nil {
		werr = batch.WriteManifest(manifestPath, results)
	}
	if werr != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", werr)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 || ctx.Err() != nil {
		os.Exit(1)
	}
}
