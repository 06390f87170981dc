package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caddie-sim/caddie-sim/aim"
	"github.com/caddie-sim/caddie-sim/aim/dispersion"
)

// ShotConfig describes the shot being planned.
type ShotConfig struct {
	Start aim.GeoPoint `yaml:"start"`
	Pin   aim.GeoPoint `yaml:"pin"`
	Skill string       `yaml:"skill"` // "scratch" (default) or "amateur"
}

// Scenario is the YAML shape of one planning request: which course mask
// to sample, the shot, and the search tuning.
type Scenario struct {
	CourseID string             `yaml:"course_id"`
	Mask     aim.MaskDescriptor `yaml:"mask"`
	Shot     ShotConfig         `yaml:"shot"`
	Search   aim.SearchConfig   `yaml:"search"`
}

// LoadScenario reads and validates a scenario file. Unset search fields
// keep their defaults, so a minimal scenario only names mask and shot.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{Search: aim.DefaultSearchConfig()}
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if scenario.CourseID == "" {
		return nil, fmt.Errorf("scenario %s: missing course_id", path)
	}
	if err := scenario.Search.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return scenario, nil
}

// SkillModel resolves the scenario's skill name to a dispersion model.
func (s *Scenario) SkillModel() (dispersion.Model, error) {
	switch s.Shot.Skill {
	case "", "scratch":
		return dispersion.ScratchModel(), nil
	case "amateur":
		return dispersion.AmateurModel(), nil
	default:
		return dispersion.Model{}, fmt.Errorf("unknown skill %q", s.Shot.Skill)
	}
}
