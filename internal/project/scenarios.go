package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// DefaultScenarioPath returns the default file path for the scenario store.
// This is located at ~/.industrimath/scenarios.json.
func DefaultScenarioPath() string {
	return filepath.Join(DefaultConfigDir(), "scenarios.json")
}

// isYAML reports whether the path's extension selects the YAML encoding.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SaveScenarios writes the scenario store to path, as YAML for .yaml/.yml
// files and as JSON otherwise.
func SaveScenarios(path string, store model.ScenarioStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(store)
	} else {
		data, err = json.MarshalIndent(store, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode scenarios: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScenarios reads a scenario store from path.
// If the file does not exist, returns an empty store.
func LoadScenarios(path string) (model.ScenarioStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewScenarioStore(), nil
		}
		return model.ScenarioStore{}, err
	}
	var store model.ScenarioStore
	if isYAML(path) {
		err = yaml.Unmarshal(data, &store)
	} else {
		err = json.Unmarshal(data, &store)
	}
	if err != nil {
		return model.ScenarioStore{}, fmt.Errorf("failed to parse scenarios %s: %w", path, err)
	}
	if store.Scenarios == nil {
		store.Scenarios = []model.Scenario{}
	}
	return store, nil
}
