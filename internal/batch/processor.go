// Package batch renders preview animations for a list of scenes on a
// bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/sync/errgroup"

	"animal-rig/internal/mathutil"
	"animal-rig/internal/postprocess"
	"animal-rig/internal/raster"
	"animal-rig/internal/rig"
	"animal-rig/internal/texture"
	"animal-rig/internal/trajectory"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir        string
	Atlas            texture.Resolver
	AtlasPath        string
	BlockSize        mathutil.Vec2
	Iterations       int
	Trajectory       trajectory.Kind
	TrajectoryParams trajectory.Params
	Frames           int
	FrameDelta       float64
	Render           raster.Options
	FillRatio        float64
	Workers          int
}

// Result holds the outcome of processing one scene.
type Result struct {
	Name    string
	Frames  []string // output paths relative to OutputDir
	Bones   int
	Size    mathutil.Vec3
	Reached map[string]bool // last frame
	Success bool
	Error   string
}

// Run renders all scenes. Per-scene failures are recorded in the results;
// only cancellation aborts the run.
func Run(ctx context.Context, cfg Config, scenes []Scene) ([]Result, error) {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					slog.Info("progress", "done", p, "total", total, "scenes_per_sec", rate)
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i := range scenes {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processScene(gctx, cfg, scenes[i])
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}
	return results, nil
}

func processScene(ctx context.Context, cfg Config, s Scene) Result {
	res := Result{Name: s.Name}
	fail := func(err error) Result {
		res.Error = err.Error()
		slog.Debug("scene failed", "scene", s.Name, "err", err)
		return res
	}

	animal, err := s.Animal()
	if err != nil {
		return fail(err)
	}
	r, err := rig.Initialize(rig.Config{
		Animal:           animal,
		TextureBlockSize: cfg.BlockSize,
		Iterations:       cfg.Iterations,
		Trajectory:       cfg.Trajectory,
		TrajectoryParams: cfg.TrajectoryParams,
		Limbs:            s.Limbs,
	})
	if err != nil {
		return fail(err)
	}
	res.Bones = len(r.Skeleton.Bones)
	res.Size = r.Size

	var atlas *image.NRGBA
	if cfg.Atlas != nil {
		if atlas, err = cfg.Atlas.Resolve(cfg.AtlasPath); err != nil {
			return fail(err)
		}
	}

	walking := s.Walk != [2]float64{}
	var gait *rig.Gait
	if walking {
		stride := s.Stride
		if stride <= 0 {
			stride = 0.5
		}
		gait = rig.NewGait(stride, stride)
	}
	fixed := make(map[string]mathutil.Vec2, len(s.Targets))
	for limb, t := range s.Targets {
		fixed[limb] = mathutil.Vec2(t)
	}

	frames := max(cfg.Frames, 1)
	var reached map[string]bool
	for f := 0; f < frames; f++ {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		targets := fixed
		if walking {
			r.Position = r.Position.Add(mathutil.Vec2(s.Walk).Mul(cfg.FrameDelta))
			targets = gait.Plan(r, reached)
		}
		reached = r.Step(cfg.FrameDelta, targets)

		img := renderFrame(cfg, s, r, atlas)
		name := s.Name + ".webp"
		if frames > 1 {
			name = filepath.Join(s.Name, fmt.Sprintf("%03d.webp", f))
		}
		if err := writeWebP(filepath.Join(cfg.OutputDir, name), img); err != nil {
			return fail(err)
		}
		res.Frames = append(res.Frames, filepath.ToSlash(name))
	}

	res.Reached = reached
	res.Success = true
	return res
}

func renderFrame(cfg Config, s Scene, r *rig.Rig, atlas *image.NRGBA) *image.NRGBA {
	img := raster.Render(r.Meshes, r.Skeleton.SkinMatrices(), atlas, cfg.Render)
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Render.Supersample)
	}
	if cfg.FillRatio > 0 {
		img = postprocess.Frame(img, cfg.Render.Size, cfg.FillRatio)
	}
	if s.Flip {
		img = postprocess.FlipHorizontal(img)
	}
	if len(s.Background) >= 3 {
		bg := color.NRGBA{s.Background[0], s.Background[1], s.Background[2], 255}
		if len(s.Background) == 4 {
			bg.A = s.Background[3]
		}
		img = postprocess.Background(img, bg)
	}
	return img
}

func writeWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
