package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBinary(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("Failed to create test binary: %v", err)
	}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(b)
}

func TestNewBinaryReplacer(t *testing.T) {
	r := NewBinaryReplacer("/usr/local/bin/rau")
	if r.backupPath != "/usr/local/bin/rau.backup" {
		t.Errorf("backupPath = %s", r.backupPath)
	}
	if r.stagedPath != "/usr/local/bin/rau.new" {
		t.Errorf("stagedPath = %s", r.stagedPath)
	}
	if r.Verify == nil {
		t.Error("Verify should default to running --version")
	}
}

func TestReplace_Success(t *testing.T) {
	tmpDir := t.TempDir()
	current := filepath.Join(tmpDir, "rau")
	newBinary := filepath.Join(t.TempDir(), "download")
	writeBinary(t, current, "v1")
	writeBinary(t, newBinary, "v2")

	var verified string
	r := NewBinaryReplacer(current)
	r.Verify = func(ctx context.Context, path string) error {
		verified = path
		return nil
	}

	if err := r.Replace(context.Background(), newBinary); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if got := readString(t, current); got != "v2" {
		t.Errorf("current = %q, want v2", got)
	}
	if verified != current {
		t.Errorf("verified %q, want %q", verified, current)
	}
	for _, leftover := range []string{r.backupPath, r.stagedPath} {
		if _, err := os.Stat(leftover); !os.IsNotExist(err) {
			t.Errorf("%s should be removed", leftover)
		}
	}
	info, err := os.Stat(current)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("permissions = %o, want 0755", info.Mode().Perm())
	}
}

func TestReplace_VerifyFailureRollsBack(t *testing.T) {
	tmpDir := t.TempDir()
	current := filepath.Join(tmpDir, "rau")
	newBinary := filepath.Join(t.TempDir(), "download")
	writeBinary(t, current, "v1")
	writeBinary(t, newBinary, "broken")

	calls := 0
	r := NewBinaryReplacer(current)
	r.Verify = func(ctx context.Context, path string) error {
		calls++
		if readString(t, path) == "broken" {
			return errors.New("exit status 1")
		}
		return nil
	}

	if err := r.Replace(context.Background(), newBinary); err == nil {
		t.Fatal("Replace() should fail when verification fails")
	}
	if got := readString(t, current); got != "v1" {
		t.Errorf("current = %q, want restored v1", got)
	}
	if calls != 2 {
		t.Errorf("Verify called %d times, want 2 (new + restored)", calls)
	}
}

func TestReplace_MissingCurrent(t *testing.T) {
	r := NewBinaryReplacer(filepath.Join(t.TempDir(), "missing"))
	r.Verify = nil
	if err := r.Replace(context.Background(), "/does/not/matter"); err == nil {
		t.Error("Replace() should fail without a current binary")
	}
}

func TestReplace_MissingDownloadKeepsCurrent(t *testing.T) {
	current := filepath.Join(t.TempDir(), "rau")
	writeBinary(t, current, "v1")

	r := NewBinaryReplacer(current)
	r.Verify = nil
	if err := r.Replace(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("Replace() should fail without a download")
	}
	if got := readString(t, current); got != "v1" {
		t.Errorf("current = %q, want v1", got)
	}
	for _, leftover := range []string{r.backupPath, r.stagedPath} {
		if _, err := os.Stat(leftover); !os.IsNotExist(err) {
			t.Errorf("%s should not exist", leftover)
		}
	}
}

func TestRollback_NoBackup(t *testing.T) {
	r := NewBinaryReplacer(filepath.Join(t.TempDir(), "rau"))
	if err := r.Rollback(context.Background()); err == nil {
		t.Error("Rollback() should fail without a backup")
	}
}
