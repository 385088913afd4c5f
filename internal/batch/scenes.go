package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"animal-rig/internal/templates"
)

// Scene is one preview job: an animal recipe plus how to pose it.
type Scene struct {
	Name             string `yaml:"name"`
	templates.Recipe `yaml:",inline"`

	// Targets are fixed world-space IK targets per limb.
	Targets map[string][2]float64 `yaml:"targets,omitempty"`
	// Walk is the body velocity in units per second. When set, feet are
	// planted by a gait planner instead of Targets.
	Walk   [2]float64 `yaml:"walk,omitempty"`
	Stride float64    `yaml:"stride,omitempty"`

	Flip       bool     `yaml:"flip,omitempty"`
	Background []uint8  `yaml:"background,omitempty"` // RGB or RGBA
	Limbs      []string `yaml:"limbs,omitempty"`      // IK limbs, all legs when empty
}

type sceneFile struct {
	Scenes []Scene `yaml:"scenes"`
}

// LoadScenes reads a YAML scene list.
func LoadScenes(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	if err := validateScenes(f.Scenes); err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	return f.Scenes, nil
}

// DefaultScenes renders every built-in template and the default hybrid.
func DefaultScenes() []Scene {
	var scenes []Scene
	for _, name := range templates.Names() {
		scenes = append(scenes, Scene{Name: name, Recipe: templates.Recipe{Template: name}})
	}
	return append(scenes, Scene{Name: "hybrid", Recipe: templates.DefaultRecipe()})
}

func validateScenes(scenes []Scene) error {
	if len(scenes) == 0 {
		return fmt.Errorf("no scenes")
	}
	seen := make(map[string]bool, len(scenes))
	for i, s := range scenes {
		switch {
		case s.Name == "":
			return fmt.Errorf("scene #%d has no name", i)
		case seen[s.Name]:
			return fmt.Errorf("duplicate scene %q", s.Name)
		case len(s.Background) != 0 && len(s.Background) != 3 && len(s.Background) != 4:
			return fmt.Errorf("scene %q: background needs 3 or 4 channels", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
