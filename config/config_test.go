package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  address: "127.0.0.1"
  port: 9090
database:
  path: "/tmp/dengueview.db"
climate:
  latitude: 31.5
  longitude: 74.3
  start: "20200101"
  end: "20201231"
  parameters: ["T2M", "PRECTOTCORR", "WS2M"]
  timeout_sec: 10
report:
  min_temperature: -10
  run_at: "@daily"
logging:
  console_level: "DEBUG"
`)

	cnfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if cnfg.Api.Address != "127.0.0.1" {
			t.Errorf("expected address 127.0.0.1, got %q", cnfg.Api.Address)
		}
		if cnfg.Api.GetPort() != 9090 {
			t.Errorf("expected port 9090, got %d", cnfg.Api.GetPort())
		}
	})

	t.Run("Climate", func(t *testing.T) {
		if cnfg.Climate.GetLatitude() != 31.5 {
			t.Errorf("expected latitude 31.5, got %f", cnfg.Climate.GetLatitude())
		}
		if cnfg.Climate.GetLongitude() != 74.3 {
			t.Errorf("expected longitude 74.3, got %f", cnfg.Climate.GetLongitude())
		}
		if cnfg.Climate.GetStart() != "20200101" || cnfg.Climate.GetEnd() != "20201231" {
			t.Errorf("unexpected date range %s-%s", cnfg.Climate.GetStart(), cnfg.Climate.GetEnd())
		}
		if len(cnfg.Climate.GetParameters()) != 3 {
			t.Errorf("expected 3 parameters, got %v", cnfg.Climate.GetParameters())
		}
		if cnfg.Climate.GetTimeout() != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", cnfg.Climate.GetTimeout())
		}
	})

	t.Run("Report", func(t *testing.T) {
		if cnfg.Report.GetMinTemperature() != -10 {
			t.Errorf("expected min temperature -10, got %f", cnfg.Report.GetMinTemperature())
		}
		if cnfg.Report.GetMinPrecipitation() != 0 {
			t.Errorf("expected default min precipitation 0, got %f", cnfg.Report.GetMinPrecipitation())
		}
		if cnfg.Report.GetRunAt() != "@daily" {
			t.Errorf("expected run_at @daily, got %q", cnfg.Report.GetRunAt())
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "api:\n  address: \"\"\n")

	cnfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cnfg.Database.GetPath() != ":memory:" {
		t.Errorf("expected in-memory database by default, got %q", cnfg.Database.GetPath())
	}
	if cnfg.Climate.GetLatitude() != 33.6 || cnfg.Climate.GetLongitude() != 73.0 {
		t.Errorf("expected Rawalpindi coordinates, got (%f, %f)",
			cnfg.Climate.GetLatitude(), cnfg.Climate.GetLongitude())
	}
	if cnfg.Climate.GetStart() != "20130101" || cnfg.Climate.GetEnd() != "20231201" {
		t.Errorf("unexpected default range %s-%s", cnfg.Climate.GetStart(), cnfg.Climate.GetEnd())
	}
	params := cnfg.Climate.GetParameters()
	if len(params) != 2 || params[0] != "T2M" || params[1] != "PRECTOTCORR" {
		t.Errorf("unexpected default parameters %v", params)
	}
	if cnfg.Report.GetMinTemperature() != -5 {
		t.Errorf("expected default temperature floor -5, got %f", cnfg.Report.GetMinTemperature())
	}
	if cnfg.Report.GetRunAt() != "" {
		t.Errorf("expected refresh disabled by default, got %q", cnfg.Report.GetRunAt())
	}
}
