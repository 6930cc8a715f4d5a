package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataPath != "crimes.csv" {
		t.Errorf("DataPath: expected crimes.csv, got %q", cfg.DataPath)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr: expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.YearColor != "royalblue" || cfg.RegionColor != "indianred" {
		t.Errorf("Colors: got %q / %q", cfg.YearColor, cfg.RegionColor)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CRIMEBOARD_DATA_PATH", "/data/other.csv")
	t.Setenv("CRIMEBOARD_LISTEN_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataPath != "/data/other.csv" {
		t.Errorf("DataPath override: got %q", cfg.DataPath)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr override: got %q", cfg.ListenAddr)
	}
}
