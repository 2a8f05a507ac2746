package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a scenario definition from a YAML file. Omitted microgrid or
// robot sections fall back to the reference parameters so files only need to
// state what they override.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	sc := Demo()
	sc.Tasks = nil
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return sc, nil
}

// Resolve returns the builtin scenario called name, or loads it from a YAML
// file when name ends in .yaml or .yml.
func Resolve(name string) (Scenario, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return Load(name)
	}
	return Builtin(name)
}
