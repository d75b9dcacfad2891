package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blang/semver/v4"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// BackupVersion is the format version written by ExportAllData. Imports
// accept any version with the same major number.
var BackupVersion = semver.MustParse("1.1.0")

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Scenarios model.ScenarioStore `json:"scenarios"`
}

// ExportAllData exports the config and the scenario store to a single JSON
// file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, scenarios model.ScenarioStore) error {
	backup := BackupData{
		Version:   BackupVersion.String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Scenarios: scenarios,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and scenarios.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	v, err := semver.Parse(backup.Version)
	if err != nil {
		return BackupData{}, fmt.Errorf("invalid backup version %q: %w", backup.Version, err)
	}
	if v.Major != BackupVersion.Major {
		return BackupData{}, fmt.Errorf("unsupported backup version %s (expected %d.x)", v, BackupVersion.Major)
	}
	// Ensure slices are never nil
	if backup.Config.RecentScenarios == nil {
		backup.Config.RecentScenarios = []string{}
	}
	if backup.Scenarios.Scenarios == nil {
		backup.Scenarios.Scenarios = []model.Scenario{}
	}
	return backup, nil
}
