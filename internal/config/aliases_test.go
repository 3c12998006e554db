package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDir_RespectsXDGConfigHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() failed: %v", err)
	}
	if want := filepath.Join(base, "basket"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestLoadAliases_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() returned error for missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadAliases() returned nil config")
	}
	if len(cfg.Aliases) != 0 {
		t.Errorf("expected empty Aliases map, got %v", cfg.Aliases)
	}
}

func TestLoadAliases_CommentsAndBlankLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	content := `# this is a comment
# another comment


# inline comment line
soda=cola
`
	if err := os.WriteFile(filepath.Join(dir, "aliases"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 1 {
		t.Errorf("expected 1 alias, got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}
	if got := cfg.Aliases["soda"]; got != "cola" {
		t.Errorf("Aliases[\"soda\"] = %q, want %q", got, "cola")
	}
}

func TestLoadAliases_InvalidLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	content := `noequalssign
=missingalias
nappy=diaper
 =
bread=bread
loaf = bread
`
	if err := os.WriteFile(filepath.Join(dir, "aliases"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 2 {
		t.Errorf("expected 2 aliases (only valid lines), got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}
	if got := cfg.Aliases["nappy"]; got != "diaper" {
		t.Errorf("Aliases[\"nappy\"] = %q, want %q", got, "diaper")
	}
	if got := cfg.Aliases["loaf"]; got != "bread" {
		t.Errorf("Aliases[\"loaf\"] = %q, want %q", got, "bread")
	}
}

func TestAliasConfig_Canonical(t *testing.T) {
	cfg := &AliasConfig{Aliases: map[string]string{"soda": "cola"}}

	tests := []struct {
		item string
		want string
	}{
		{"soda", "cola"},
		{"cola", "cola"},
		{"milk", "milk"},
	}
	for _, tt := range tests {
		if got := cfg.Canonical(tt.item); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.item, got, tt.want)
		}
	}

	var nilCfg *AliasConfig
	if got := nilCfg.Canonical("soda"); got != "soda" {
		t.Errorf("nil Canonical(%q) = %q, want unchanged", "soda", got)
	}
}
