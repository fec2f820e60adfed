package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s, _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	if nil != err {
		t.Fatalf("load: %v", err)
	}
	if s.HitWindow != 0.2 || s.EarlyWindow != 0 || s.InterpolationFactor != 0.5 {
		t.Fatalf("timing defaults = %+v", s)
	}
	if s.StartHealth != 10 || s.HealthPolicy != "none" {
		t.Fatalf("health defaults = %+v", s)
	}
	if len(s.Keys.Up) != 2 || s.Keys.Up[0] != "up" || s.Keys.Pause[0] != "space" {
		t.Fatalf("key defaults = %+v", s.Keys)
	}
	if s.Logging.Directory != "logs" || s.Logging.MaxSize != 10 {
		t.Fatalf("logging defaults = %+v", s.Logging)
	}
}

func TestSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runbeat.yaml")
	data := `hit_window: 0.15
early_window: 0.1
health_policy: strict
keys:
  up: [i]
  left: [j]
`
	if err := os.WriteFile(path, []byte(data), 0o644); nil != err {
		t.Fatal(err)
	}

	s, v, err := LoadSettings(path)
	if nil != err {
		t.Fatalf("load: %v", err)
	}
	if s.HitWindow != 0.15 || s.EarlyWindow != 0.1 || s.HealthPolicy != "strict" {
		t.Fatalf("settings = %+v", s)
	}
	if len(s.Keys.Up) != 1 || s.Keys.Up[0] != "i" || s.Keys.Down[0] != "down" {
		t.Fatalf("keys = %+v", s.Keys)
	}
	if v.ConfigFileUsed() != path {
		t.Fatalf("config file = %q", v.ConfigFileUsed())
	}
}

func TestInvalidSettings(t *testing.T) {
	tests := map[string]string{
		"hit window":    "hit_window: 0\n",
		"early window":  "early_window: -1\n",
		"interpolation": "interpolation_factor: -0.5\n",
		"health":        "start_health: 0\n",
		"syntax":        "hit_window: [\n",
	}
	for name, data := range tests {
		path := filepath.Join(t.TempDir(), "runbeat.yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); nil != err {
			t.Fatal(err)
		}
		if _, _, err := LoadSettings(path); nil == err {
			t.Errorf("%s: expected an error", name)
		}
	}
}
