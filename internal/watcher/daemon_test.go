package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestIsDaemonRunning_NoPIDFile(t *testing.T) {
	running, err := IsDaemonRunning(filepath.Join(t.TempDir(), "watch.pid"))
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if running {
		t.Error("expected daemon not running without PID file")
	}
}

func TestIsDaemonRunning_CurrentProcess(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644); err != nil {
		t.Fatal(err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if !running {
		t.Error("expected current process to be reported running")
	}
}

func TestIsDaemonRunning_InvalidPID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatal(err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if running {
		t.Error("expected invalid PID file to mean not running")
	}
}

func TestStopDaemon_NotRunning(t *testing.T) {
	err := StopDaemon(filepath.Join(t.TempDir(), "watch.pid"))
	if !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("expected ErrDaemonNotRunning, got %v", err)
	}
}
