package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"animal-rig/internal/mathutil"
	"animal-rig/internal/trajectory"
)

// Config holds all configurable paths, rig and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	ScenesFile string `json:"scenes"`
	AtlasPath  string `json:"atlas"`
	OutputDir  string `json:"output_dir"`

	// Rig settings
	TextureBlock       [2]float64 `json:"texture_block"`
	IKIterations       int        `json:"ik_iterations"`
	Trajectory         string     `json:"trajectory"`
	TrajectoryDuration float64    `json:"trajectory_duration"`
	ArcHeightSlope     float64    `json:"arc_height_slope"`
	Frames             int        `json:"frames"`
	FrameDelta         float64    `json:"frame_delta"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	CellPixels  int     `json:"cell_pixels"`
	FillRatio   float64 `json:"fill_ratio"`
	Pitch       float64 `json:"pitch"`
	Yaw         float64 `json:"yaw"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. BaseDir defaults to the
// file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ScenesFile string
	AtlasPath  string
	OutputDir  string
	Frames     int
	Workers    int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.ScenesFile != "" {
		c.ScenesFile = flags.ScenesFile
	}
	if flags.AtlasPath != "" {
		c.AtlasPath = flags.AtlasPath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.ScenesFile = c.rel(c.ScenesFile)
		c.AtlasPath = c.rel(c.AtlasPath)
		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "renders")
		} else {
			c.OutputDir = c.rel(c.OutputDir)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	// Rig defaults
	if c.TextureBlock[0] <= 0 || c.TextureBlock[1] <= 0 {
		c.TextureBlock = [2]float64{1.0 / 8, 1.0 / 8}
	}
	if c.IKIterations <= 0 {
		c.IKIterations = 100
	}
	if c.Trajectory == "" {
		c.Trajectory = trajectory.Linear.String()
	}
	if c.TrajectoryDuration <= 0 {
		c.TrajectoryDuration = 0.25
	}
	if c.ArcHeightSlope <= 0 {
		c.ArcHeightSlope = 0.5
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.FrameDelta <= 0 {
		c.FrameDelta = 1.0 / 30
	}

	// Render defaults
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.CellPixels <= 0 {
		c.CellPixels = 64
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = 0.9
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c *Config) rel(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// BlockSize returns the UV size of one atlas cell.
func (c *Config) BlockSize() mathutil.Vec2 {
	return mathutil.Vec2{c.TextureBlock[0], c.TextureBlock[1]}
}

// TrajectoryKind parses the configured trajectory policy.
func (c *Config) TrajectoryKind() (trajectory.Kind, error) {
	k, err := trajectory.ParseKind(c.Trajectory)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return k, nil
}

// TrajectoryParams returns the trajectory timing parameters.
func (c *Config) TrajectoryParams() trajectory.Params {
	return trajectory.Params{
		Duration:       c.TrajectoryDuration,
		ArcHeightSlope: c.ArcHeightSlope,
	}
}
