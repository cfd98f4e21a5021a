package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HerbHall/kartstats/internal/combination"
	"github.com/HerbHall/kartstats/internal/search"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}

	if s.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", s.Server.Addr())
	}
	if s.Search.Debounce != 300*time.Millisecond {
		t.Errorf("Debounce = %v, want 300ms", s.Search.Debounce)
	}
	if s.Search.HistoryLimit != search.DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", s.Search.HistoryLimit, search.DefaultHistoryLimit)
	}
	if s.Combination.Bonus != combination.DefaultBonus {
		t.Errorf("Bonus = %d, want %d", s.Combination.Bonus, combination.DefaultBonus)
	}
	if s.Recommend.Limit != 10 || s.Recommend.VehicleCap != 3 || s.Recommend.Weights.Speed != 0.4 {
		t.Errorf("Recommend = %+v", s.Recommend)
	}
	if s.Dataset.Fetch.Timeout != 10*time.Second || s.Dataset.Fetch.Attempts != 3 {
		t.Errorf("Fetch = %+v", s.Dataset.Fetch)
	}
	if !s.Dataset.Embedded || !s.Store.Enabled || s.Store.Path != "kartstats.db" {
		t.Errorf("Dataset = %+v, Store = %+v", s.Dataset, s.Store)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := "server:\n  port: \"9000\"\nsearch:\n  debounce: 50ms\ndataset:\n  structured: data.json\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KARTSTATS_SERVER_HOST", "127.0.0.1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Server.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want 127.0.0.1:9000", s.Server.Addr())
	}
	if s.Search.Debounce != 50*time.Millisecond {
		t.Errorf("Debounce = %v", s.Search.Debounce)
	}
	if s.Dataset.Structured != "data.json" {
		t.Errorf("Structured = %q", s.Dataset.Structured)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load with missing explicit file should fail")
	}
}
