package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.Mining.MinSupport != 0.5 {
		t.Errorf("MinSupport = %v, want 0.5", s.Mining.MinSupport)
	}
	if s.Mining.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %v, want 0.5", s.Mining.MinConfidence)
	}
	if s.Mining.Strategy != "apriori" {
		t.Errorf("Strategy = %q, want apriori", s.Mining.Strategy)
	}
	if s.Dataset.Separator != "," {
		t.Errorf("Separator = %q, want \",\"", s.Dataset.Separator)
	}
	if s.Logging.Level != "info" || s.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", s.Logging)
	}
}

func TestLoad_ConfigFileInConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "basket")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := `mining:
  min_support: 0.3
  min_confidence: 0.8
  strategy: exhaustive
dataset:
  separator: ";"
  lowercase: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Mining.MinSupport != 0.3 {
		t.Errorf("MinSupport = %v, want 0.3", s.Mining.MinSupport)
	}
	if s.Mining.MinConfidence != 0.8 {
		t.Errorf("MinConfidence = %v, want 0.8", s.Mining.MinConfidence)
	}
	if s.Mining.Strategy != "exhaustive" {
		t.Errorf("Strategy = %q, want exhaustive", s.Mining.Strategy)
	}
	if s.Dataset.Separator != ";" || !s.Dataset.Lowercase {
		t.Errorf("Dataset = %+v, want separator ';' and lowercase", s.Dataset)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BASKET_MINING_MIN_SUPPORT", "0.25")
	t.Setenv("BASKET_LOGGING_LEVEL", "debug")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Mining.MinSupport != 0.25 {
		t.Errorf("MinSupport = %v, want 0.25", s.Mining.MinSupport)
	}
	if s.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", s.Logging.Level)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}
}
