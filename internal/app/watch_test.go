package app

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/basket/internal/config"
	"github.com/blackwell-systems/basket/internal/store"
)

func useDefaultSettings(t *testing.T) {
	t.Helper()
	old := settings
	v := viper.New()
	config.SetDefaults(v)
	settings = config.FromViper(v)
	t.Cleanup(func() { settings = old })
}

func TestWatchSession_MineAndSave(t *testing.T) {
	setupTestEnv(t)
	useDefaultSettings(t)

	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer st.Close()
	if err := st.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	data := filepath.Join(t.TempDir(), "groceries.txt")
	writeFile(t, data, groceryDataset)

	var out bytes.Buffer
	session := &watchSession{out: &out, st: st}

	res, err := session.mine(data)
	session.sink(data, res, err)

	if err != nil {
		t.Fatalf("mine failed: %v", err)
	}
	if !strings.Contains(out.String(), "Saved as run 1") {
		t.Errorf("expected save confirmation\nGot:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "{beer} => {diaper}") {
		t.Errorf("expected rule table\nGot:\n%s", out.String())
	}

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].DistinctItems != 6 {
		t.Errorf("expected one run with 6 distinct items, got %+v", runs)
	}
}

func TestWatchSession_Error(t *testing.T) {
	var out bytes.Buffer
	session := &watchSession{out: &out}

	session.sink("baskets.txt", nil, errors.New("boom"))

	if !strings.Contains(out.String(), "✗ boom") {
		t.Errorf("expected error line\nGot:\n%s", out.String())
	}
}

func TestWatch_StopWithoutDaemon(t *testing.T) {
	db := setupTestEnv(t)

	out, err := executeCommand(t, "", "--db", db, "watch", "--stop")
	if err != nil {
		t.Fatalf("watch --stop failed: %v", err)
	}
	if !strings.Contains(out, "Daemon is not running") {
		t.Errorf("unexpected output\nGot:\n%s", out)
	}
}
