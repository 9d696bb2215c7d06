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
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  port: 9090
elexon:
  timeout: 3s
  workers: 2
  api_key: from-file
gui:
  timezone: UTC
  trigger_mode: immediate
  colors:
    intraday_total: "#00ff00"
mqtt:
  host: broker.local
logging:
  console_level: debug
`)

	t.Setenv("ELEXON_API_KEY", "from-env")

	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Values from file", func(t *testing.T) {
		if config.Api.Port != 9090 {
			t.Errorf("Expected port 9090, got %d", config.Api.Port)
		}
		if config.Elexon.Timeout != 3*time.Second {
			t.Errorf("Expected timeout 3s, got %v", config.Elexon.Timeout)
		}
		if config.Elexon.Workers != 2 {
			t.Errorf("Expected 2 workers, got %d", config.Elexon.Workers)
		}
		if config.Gui.TriggerMode != "immediate" {
			t.Errorf("Expected trigger mode immediate, got %s", config.Gui.TriggerMode)
		}
		if config.Gui.Colors["intraday_total"] != "#00ff00" {
			t.Errorf("Expected intraday_total color, got %v", config.Gui.Colors)
		}
		if !config.Mqtt.Enabled() {
			t.Errorf("Expected mqtt to be enabled")
		}
		if config.Logging.GetConsoleLevel().String() != "DEBUG" {
			t.Errorf("Expected console level DEBUG, got %s", config.Logging.GetConsoleLevel())
		}
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		if config.Elexon.ApiKey != "from-env" {
			t.Errorf("Expected api key from env, got %q", config.Elexon.ApiKey)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		if config.Elexon.BaseURL != "https://data.elexon.co.uk/bmrs/api/v1" {
			t.Errorf("Unexpected base url %s", config.Elexon.BaseURL)
		}
		if config.Database.Path != "forecast.db" {
			t.Errorf("Unexpected database path %s", config.Database.Path)
		}
		if config.Gui.DefaultDaysBack != 3 || config.Gui.DefaultDaysAhead != 3 {
			t.Errorf("Unexpected default window %d/%d", config.Gui.DefaultDaysBack, config.Gui.DefaultDaysAhead)
		}
		if config.Refresh.RunAt != "*/30 * * * *" || !config.Refresh.Enabled {
			t.Errorf("Unexpected refresh %+v", config.Refresh)
		}
		if config.Mqtt.Port != 1883 || config.Mqtt.Topic != "elexon/forecast" {
			t.Errorf("Unexpected mqtt %+v", config.Mqtt)
		}
		if config.Logging.GetDbMaxEntries() != 10000 {
			t.Errorf("Unexpected db max entries %d", config.Logging.GetDbMaxEntries())
		}
	})
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown trigger mode", content: "gui:\n  trigger_mode: hover\n"},
		{name: "too many workers", content: "elexon:\n  workers: 12\n"},
		{name: "unknown timezone", content: "gui:\n  timezone: Mars/Olympus\n"},
		{name: "short session key", content: "api:\n  session_key: short\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestDefault(t *testing.T) {
	config, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Gui.Timezone != "Europe/London" || config.Gui.TriggerMode != "button" {
		t.Errorf("unexpected gui defaults %+v", config.Gui)
	}
	if config.Elexon.Workers != 3 || config.Elexon.Timeout != 10*time.Second {
		t.Errorf("unexpected elexon defaults %+v", config.Elexon)
	}
	if config.Mqtt.Enabled() {
		t.Errorf("expected mqtt to be disabled by default")
	}
}
