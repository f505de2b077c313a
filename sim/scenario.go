// sim/scenario.go
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named set of overrides on top of a base configuration,
// used to compare policy or technology pathways without editing the base
// config file.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Overrides   map[string]any `yaml:"overrides"`
}

// LoadScenario reads a scenario definition from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	return &s, nil
}

// Apply merges the scenario's overrides onto a deep copy of base. The base
// configuration is never mutated.
func (s *Scenario) Apply(base Config) Config {
	cfg := base.DeepCopy()
	mergeOverrides(cfg, s.Overrides)
	return cfg
}

// mergeOverrides recursively updates target with source: nested mappings
// merge key by key, anything else replaces the target value.
func mergeOverrides(target, source map[string]any) {
	for key, value := range source {
		sv, sourceIsMap := value.(map[string]any)
		tv, targetIsMap := target[key].(map[string]any)
		if sourceIsMap && targetIsMap {
			mergeOverrides(tv, sv)
			continue
		}
		target[key] = deepCopyValue(value)
	}
}
