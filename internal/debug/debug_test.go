package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withLogPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", LogFileName)
	prev := getLogPath
	getLogPath = func() (string, error) { return path, nil }
	t.Cleanup(func() {
		Close()
		getLogPath = prev
	})
	return path
}

func TestInitDisabled(t *testing.T) {
	path := withLogPath(t)

	if err := Init(false); err != nil {
		t.Fatalf("Init(false) error = %v", err)
	}
	Logf("should not appear %d", 1)

	if Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("log file should not be created when disabled")
	}
}

func TestInitEnabledWritesLog(t *testing.T) {
	path := withLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) error = %v", err)
	}
	Logf("state %s -> %s", "checking", "failed")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "rau debug log started") {
		t.Errorf("log missing header: %q", content)
	}
	if !strings.Contains(content, "state checking -> failed") {
		t.Errorf("log missing message: %q", content)
	}
}

func TestInitTruncates(t *testing.T) {
	path := withLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init error = %v", err)
	}
	Logf("first run")
	Close()

	if err := Init(true); err != nil {
		t.Fatalf("Init error = %v", err)
	}
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "first run") {
		t.Error("log should be truncated on each Init")
	}
}
