package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	checks := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Engine.Module", cfg.Engine.Module, "openclaw_kokoro_plugin.cli"},
		{"Engine.BridgeRoot", cfg.Engine.BridgeRoot, "."},
		{"Engine.TimeoutSeconds", cfg.Engine.TimeoutSeconds, 120},
		{"Engine.DefaultVoice", cfg.Engine.DefaultVoice, "af_heart"},
		{"Engine.DefaultLang", cfg.Engine.DefaultLang, "a"},
		{"Engine.DefaultSpeed", cfg.Engine.DefaultSpeed, 1.0},
		{"Engine.DefaultDevice", cfg.Engine.DefaultDevice, "auto"},
		{"Engine.DefaultFormat", cfg.Engine.DefaultFormat, "wav"},
		{"Log.Level", cfg.Log.Level, "info"},
	}

	for _, c := range checks {
		switch want := c.want.(type) {
		case int:
			if c.got.(int) != want {
				t.Errorf("%s: got %v, want %v", c.name, c.got, want)
			}
		case float64:
			if c.got.(float64) != want {
				t.Errorf("%s: got %v, want %v", c.name, c.got, want)
			}
		case string:
			if c.got.(string) != want {
				t.Errorf("%s: got %v, want %v", c.name, c.got, want)
			}
		}
	}
}

func TestSetDefaults_DoesNotOverride(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{
			Module:         "custom.engine",
			BridgeRoot:     "/opt/kokoro",
			TimeoutSeconds: 30,
			DefaultVoice:   "bf_alice",
			DefaultFormat:  "ogg_base64",
		},
		Log: LogConfig{Level: "debug"},
	}
	setDefaults(cfg)

	if cfg.Engine.Module != "custom.engine" {
		t.Errorf("Module should not be overridden: got %q", cfg.Engine.Module)
	}
	if cfg.Engine.BridgeRoot != "/opt/kokoro" {
		t.Errorf("BridgeRoot should not be overridden: got %q", cfg.Engine.BridgeRoot)
	}
	if cfg.Engine.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds should not be overridden: got %d", cfg.Engine.TimeoutSeconds)
	}
	if cfg.Engine.DefaultVoice != "bf_alice" {
		t.Errorf("DefaultVoice should not be overridden: got %q", cfg.Engine.DefaultVoice)
	}
	if cfg.Engine.DefaultFormat != "ogg_base64" {
		t.Errorf("DefaultFormat should not be overridden: got %q", cfg.Engine.DefaultFormat)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level should not be overridden: got %q", cfg.Log.Level)
	}
}

func TestLoad_FileWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_KOKORO_ROOT", "/srv/kokoro")

	path := filepath.Join(t.TempDir(), "bridge.yaml")
	content := `
engine:
  bridge_root: "${TEST_KOKORO_ROOT}"
  default_lang: "b"
history:
  data_dir: ""
log:
  level: "warn"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Engine.BridgeRoot != "/srv/kokoro" {
		t.Errorf("env expansion failed: got %q", cfg.Engine.BridgeRoot)
	}
	if cfg.Engine.DefaultLang != "b" {
		t.Errorf("expected lang b, got %q", cfg.Engine.DefaultLang)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Log.Level)
	}
	// 未设置项仍应有默认值
	if cfg.Engine.Module != "openclaw_kokoro_plugin.cli" {
		t.Errorf("expected default module, got %q", cfg.Engine.Module)
	}
	if cfg.Engine.TimeoutSeconds != 120 {
		t.Errorf("expected default timeout, got %d", cfg.Engine.TimeoutSeconds)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Engine.DefaultVoice != "af_heart" {
		t.Errorf("expected af_heart, got %q", cfg.Engine.DefaultVoice)
	}
	if cfg.History.DataDir != "" {
		t.Errorf("history should be disabled by default, got %q", cfg.History.DataDir)
	}
}
