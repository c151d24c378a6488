package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Transcription.Provider != "mock" || cfg.Transcription.TimeoutSeconds != 60 {
		t.Errorf("transcription = %+v", cfg.Transcription)
	}
	if cfg.App.LogLevel != "info" || cfg.App.LogFormat != "text" || cfg.Paths.Outputs != "outputs" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Analysis.FallacyDetection {
		t.Error("fallacy detection should default to off")
	}
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `
transcription:
  provider: http
  url: http://asr:8000
  timeout_seconds: 5
analysis:
  fallacy_detection: true
visualization:
  url: http://viz:8005
`)
	cfg, err := Load(viper.New(), p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Transcription.Provider != "http" || cfg.Transcription.URL != "http://asr:8000" {
		t.Errorf("transcription = %+v", cfg.Transcription)
	}
	if DurSeconds(cfg.Transcription.TimeoutSeconds).Seconds() != 5 {
		t.Errorf("timeout = %d", cfg.Transcription.TimeoutSeconds)
	}
	if !cfg.Analysis.FallacyDetection || cfg.Visualization.URL != "http://viz:8005" {
		t.Errorf("cfg = %+v", cfg)
	}
	// untouched sections keep their defaults
	if cfg.App.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.App.LogLevel)
	}
}

func TestLoadSearchesConfigEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config", "staging"), 0o755); err != nil {
		t.Fatal(err)
	}
	body := []byte("app:\n  log_level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "staging", "config.yaml"), body, 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "staging")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.App.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	p := writeConfig(t, "transcription:\n  provider: mock\n")
	t.Setenv("SPEECH_TRANSCRIPTION_PROVIDER", "http")
	t.Setenv("SPEECH_TRANSCRIPTION_URL", "http://env-asr")
	t.Setenv("SPEECH_ANALYSIS_FALLACY_DETECTION", "true")

	cfg, err := Load(viper.New(), p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Transcription.Provider != "http" || cfg.Transcription.URL != "http://env-asr" || !cfg.Analysis.FallacyDetection {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{name: "unknown provider", body: "transcription:\n  provider: whisper\n", want: "not one of mock, http"},
		{name: "http without url", body: "transcription:\n  provider: http\n", want: "url is required"},
		{name: "bad log format", body: "app:\n  log_format: xml\n", want: "log_format"},
		{name: "negative timeout", body: "transcription:\n  timeout_seconds: -1\n", want: "timeout_seconds"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing explicit config file accepted")
	}
}
