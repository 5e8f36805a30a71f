// Package seed provides the static roadmap the master plan is seeded from.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planner/internal/storage"
)

//go:embed plan.yaml
var defaultPlan []byte

// Default returns the built-in 22-month roadmap.
func Default() (storage.MasterPlan, error) {
	return Parse(defaultPlan)
}

// Load reads a seed plan from path, or the built-in one when path is empty.
func Load(path string) (storage.MasterPlan, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed plan: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document keyed by month-key and checks every month.
func Parse(data []byte) (storage.MasterPlan, error) {
	var plan storage.MasterPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse seed plan: %w", err)
	}
	if len(plan) == 0 {
		return nil, errors.New("seed plan has no months")
	}
	if errs := plan.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("seed plan: %w", errors.Join(errs...))
	}
	return plan, nil
}
