// Package templates provides the built-in body trees and the recipe format
// used to blend them into hybrids.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"animal-rig/internal/blend"
	"animal-rig/internal/body"
)

//go:embed data/*.yaml
var files embed.FS

// file is the on-disk template layout. Extra top-level keys are allowed so
// templates can hold YAML anchors for shared limbs.
type file struct {
	Name   string           `yaml:"name"`
	Points []body.BodyPoint `yaml:"points"`
}

// Names lists the built-in templates, sorted.
func Names() []string {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of a built-in template.
func Get(name string) (body.Animal, error) {
	data, err := files.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return body.Animal{}, fmt.Errorf("templates: unknown template %q", name)
	}
	return Parse(data)
}

// Load reads a template from disk.
func Load(p string) (body.Animal, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return body.Animal{}, fmt.Errorf("templates: read %s: %w", p, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML template.
func Parse(data []byte) (body.Animal, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return body.Animal{}, fmt.Errorf("templates: parse: %w", err)
	}
	a := body.NewAnimal(f.Points)
	if err := a.Validate(); err != nil {
		return body.Animal{}, fmt.Errorf("templates: %s: %w", f.Name, err)
	}
	return a, nil
}

// Part is one weighted template in a Recipe. Gradient is used when set,
// zero-padded to Length; otherwise Curve ("decreasing", "increasing", "flat")
// generates Length entries, Length defaulting to the template's spine length.
type Part struct {
	Template string    `yaml:"template"`
	Gradient []float64 `yaml:"gradient,omitempty"`
	Curve    string    `yaml:"curve,omitempty"`
	Length   int       `yaml:"length,omitempty"`
}

// Recipe describes an animal as either a single template or a blend.
type Recipe struct {
	Template string `yaml:"template,omitempty"`
	Blend    []Part `yaml:"blend,omitempty"`
}

// DefaultRecipe is the turtle/fox hybrid spawned by default.
func DefaultRecipe() Recipe {
	return Recipe{Blend: []Part{
		{Template: "turtle", Gradient: []float64{1, 1, 0.75, 0.2, 0.6, 0.1, 0, 0}},
		{Template: "fox", Gradient: []float64{0, 0, 0.25, 1, 0.4, 0.9, 1, 1}},
	}}
}

// Animal resolves the recipe into a body tree.
func (r Recipe) Animal() (body.Animal, error) {
	switch {
	case r.Template != "" && len(r.Blend) > 0:
		return body.Animal{}, fmt.Errorf("templates: recipe sets both template and blend")
	case r.Template != "":
		return Get(r.Template)
	case len(r.Blend) == 0:
		return body.Animal{}, fmt.Errorf("templates: empty recipe")
	}

	inputs := make([]blend.Input, 0, len(r.Blend))
	for _, p := range r.Blend {
		a, err := Get(p.Template)
		if err != nil {
			return body.Animal{}, err
		}
		g, err := p.gradient(len(a.Body.Points))
		if err != nil {
			return body.Animal{}, err
		}
		inputs = append(inputs, blend.Input{Animal: a, Gradient: g})
	}
	a, err := blend.Animals(inputs)
	if err != nil {
		return body.Animal{}, fmt.Errorf("templates: %w", err)
	}
	return a, nil
}

func (p Part) gradient(spine int) (body.Gradient, error) {
	if len(p.Gradient) > 0 {
		return body.Gradient(p.Gradient).FillZeroesTill(p.Length), nil
	}
	n := p.Length
	if n <= 0 {
		n = spine
	}
	switch strings.ToLower(p.Curve) {
	case "decreasing":
		return body.DecreasingLinear(n), nil
	case "increasing":
		return body.IncreasingLinear(n), nil
	case "", "flat":
		return body.Flat(n), nil
	}
	return nil, fmt.Errorf("templates: %s: unknown curve %q", p.Template, p.Curve)
}
