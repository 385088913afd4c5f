package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"animal-rig/internal/body"
	"animal-rig/internal/mathutil"
	"animal-rig/internal/rig"
	"animal-rig/internal/templates"
	"animal-rig/internal/trajectory"
)

func main() {
	template := flag.String("template", "", "Built-in template name (default: turtle/fox hybrid)")
	file := flag.String("file", "", "Load a template YAML file instead")
	target := flag.String("target", "", "Solve one frame toward limb=x,y before printing")
	iterations := flag.Int("iterations", 100, "IK iterations")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if *verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	animal, label, err := load(*template, *file)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	r, err := rig.Initialize(rig.Config{
		Animal:           animal,
		TextureBlockSize: mathutil.Vec2{1.0 / 8, 1.0 / 8},
		Iterations:       *iterations,
		Trajectory:       trajectory.Linear,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *target != "" {
		limb, p, err := parseTarget(*target)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		reached := r.Step(0, map[string]mathutil.Vec2{limb: p})
		fmt.Printf("Target %s → (%.2f, %.2f): reached=%v\n", limb, p[0], p[1], reached[limb])
	}

	sk := r.Skeleton
	fmt.Printf("Animal: %s, Segments: %d, Bones: %d, Meshes: %d\n",
		label, animal.SegmentCount(), len(sk.Bones), len(r.Meshes))

	poses := sk.GlobalPoses()
	for i, b := range sk.Bones {
		rest := sk.RestOffset(i)
		pos := mathutil.Origin(poses[i])
		fmt.Printf("  Bone[%2d] %-12s parent=%2d rest=(%6.2f, %6.2f) pos=(%6.2f, %6.2f, %5.2f) rot=%6.3f\n",
			i, b.Name, b.Parent, rest[0], rest[1], pos[0], pos[1], pos[2], mathutil.AngleZ(b.Pose))
	}

	fmt.Println("  --- Limbs ---")
	for _, name := range sk.Limbs() {
		fmt.Printf("  %-10s chain=%v\n", name, sk.Chain(name))
	}

	fmt.Println("  --- Meshes ---")
	for _, m := range r.Meshes {
		blended := 0
		for i := range m.Verts {
			if m.BlendAlpha(i) < 1 {
				blended++
			}
		}
		fmt.Printf("  %-10s verts=%d tris=%d blended=%d\n", m.Limb, len(m.Verts), len(m.Tris), blended)
	}

	size, corner := sk.Extent()
	fmt.Printf("  Mesh size: (%.2f, %.2f, %.2f) center: (%.2f, %.2f, %.2f)\n",
		r.Size[0], r.Size[1], r.Size[2], r.Center[0], r.Center[1], r.Center[2])
	fmt.Printf("  Skeleton extent: %.2f x %.2f from (%.2f, %.2f)\n", size[0], size[1], corner[0], corner[1])
}

func load(template, file string) (body.Animal, string, error) {
	switch {
	case file != "":
		a, err := templates.Load(file)
		return a, file, err
	case template != "":
		a, err := templates.Get(template)
		return a, template, err
	}
	a, err := templates.DefaultRecipe().Animal()
	return a, "hybrid", err
}

// parseTarget reads "limb=x,y".
func parseTarget(s string) (string, mathutil.Vec2, error) {
	limb, xy, ok := strings.Cut(s, "=")
	if !ok {
		return "", mathutil.Vec2{}, fmt.Errorf("target %q: want limb=x,y", s)
	}
	xs, ys, ok := strings.Cut(xy, ",")
	if !ok {
		return "", mathutil.Vec2{}, fmt.Errorf("target %q: want limb=x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return "", mathutil.Vec2{}, fmt.Errorf("target %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return "", mathutil.Vec2{}, fmt.Errorf("target %q: %w", s, err)
	}
	return limb, mathutil.Vec2{x, y}, nil
}
