package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const groceryDataset = `bread,milk
bread,diaper,beer,egg
milk,diaper,beer,cola
bread,milk,diaper,beer
bread,milk,diaper,cola
`

// setupTestEnv isolates HOME and the config directory and returns a
// database path inside the temp directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("NO_COLOR", "1")
	return filepath.Join(tmp, "basket.db")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between test executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "basket" {
		t.Errorf("expected Use to be 'basket', got '%s'", RootCmd.Use)
	}

	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	foundCommands := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	expected := []string{"mine", "runs", "show", "explain", "recommend", "watch", "export", "import", "delete", "status"}
	for _, name := range expected {
		if !foundCommands[name] {
			t.Errorf("expected command '%s' to be registered", name)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	for _, name := range []string{"db", "config", "log-level", "log-format"} {
		flag := RootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag to be registered", name)
			continue
		}
		if flag.Usage == "" {
			t.Errorf("expected --%s flag to have usage text", name)
		}
	}
}

func TestGetDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	oldDBPath := dbPath
	defer func() { dbPath = oldDBPath }()

	dbPath = "/tmp/custom.db"
	got, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() error = %v", err)
	}
	if got != "/tmp/custom.db" {
		t.Errorf("getDBPath() = %s, want /tmp/custom.db", got)
	}

	dbPath = ""
	got, err = getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() error = %v", err)
	}
	want := filepath.Join(home, ".basket", "basket.db")
	if got != want {
		t.Errorf("getDBPath() = %s, want %s", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("expected %s to be created: %v", filepath.Dir(want), err)
	}
}

func TestRootCommand_NoArgs(t *testing.T) {
	setupTestEnv(t)

	out, err := executeCommand(t, "")
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	if !strings.Contains(out, "basket mine <file>") {
		t.Errorf("expected getting-started hint, got:\n%s", out)
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	db := setupTestEnv(t)

	if _, err := executeCommand(t, "", "--db", db, "--log-level", "loud", "runs"); err == nil {
		t.Error("expected error for invalid log level")
	}
}
