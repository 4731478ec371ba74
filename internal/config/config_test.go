// Package config - Configuration tests
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

// TestLoadMissingFileFallsBack proves a missing config file serves the
// documented defaults instead of an error.
func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Rates.DriverDayRate.Equal(decimal.NewFromInt(180)) {
		t.Errorf("default DriverDayRate = %s, want 180", cfg.Rates.DriverDayRate)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("default backend = %s, want sqlite", cfg.Storage.Backend)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Server.Address = ":9090"
	cfg.Rates.FuelPricePerLitre = decimal.NewFromFloat(1.75)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Address != ":9090" {
		t.Errorf("Address = %s, want :9090", loaded.Server.Address)
	}
	if !loaded.Rates.FuelPricePerLitre.Equal(decimal.NewFromFloat(1.75)) {
		t.Errorf("FuelPricePerLitre = %s, want 1.75", loaded.Rates.FuelPricePerLitre)
	}
}

// TestPartialFileKeepsDefaults proves unnamed fields keep their defaults
// when the file only overrides some of them.
func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server": {"address": ":7070"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("Address = %s, want :7070", cfg.Server.Address)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("backend lost its default, got %s", cfg.Storage.Backend)
	}
}
