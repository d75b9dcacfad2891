package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Currency = "USD"
	cfg.Workers = 3

	store := model.NewScenarioStore()
	store.Add(model.NewScenario("Workshop", "tables and chairs", model.DefaultProductionInput()))

	if err := ExportAllData(path, cfg, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion.String() {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.Currency != "USD" {
		t.Errorf("expected Currency=USD, got %s", backup.Config.Currency)
	}
	if backup.Config.Workers != 3 {
		t.Errorf("expected Workers=3, got %d", backup.Config.Workers)
	}
	if len(backup.Scenarios.Scenarios) != 1 || backup.Scenarios.Scenarios[0].Name != "Workshop" {
		t.Errorf("expected the Workshop scenario, got %+v", backup.Scenarios.Names())
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"currency":"Rp"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataVersionCompatibility(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.4.2", false},
		{"2.0.0", true},
		{"0.9.0", true},
		{"one", true},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "backup.json")
		data := []byte(`{"version":"` + tt.version + `","created_at":"2026-01-01T00:00:00Z"}`)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		_, err := ImportAllData(path)
		if (err != nil) != tt.wantErr {
			t.Errorf("version %s: wantErr=%v, got %v", tt.version, tt.wantErr, err)
		}
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.NewScenarioStore()); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_scenarios":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentScenarios == nil {
		t.Error("RecentScenarios should not be nil after import")
	}
	if backup.Scenarios.Scenarios == nil {
		t.Error("Scenarios should not be nil after import")
	}
	if backup.Config.Workers != model.DefaultAppConfig().Workers {
		t.Error("config keys missing from the backup should keep defaults")
	}
}
