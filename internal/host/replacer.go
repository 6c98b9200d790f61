package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// BinaryReplacer swaps the installed binary for a new one with rollback.
type BinaryReplacer struct {
	currentPath string
	backupPath  string
	stagedPath  string

	// Verify runs the installed binary to check it starts. Defaults to
	// running it with --version.
	Verify func(ctx context.Context, path string) error
}

// NewBinaryReplacer creates a replacer for the binary at currentPath.
func NewBinaryReplacer(currentPath string) *BinaryReplacer {
	return &BinaryReplacer{
		currentPath: currentPath,
		backupPath:  currentPath + ".backup",
		stagedPath:  currentPath + ".new",
		Verify:      verifyBinary,
	}
}

// Replace installs newBinary over the current binary. On any failure after
// the current binary is moved aside it is restored.
func (r *BinaryReplacer) Replace(ctx context.Context, newBinary string) error {
	info, err := os.Stat(r.currentPath)
	if err != nil {
		return fmt.Errorf("failed to stat current binary: %w", err)
	}

	// The download usually lives on another filesystem, so stage a copy
	// next to the target before any rename.
	if err := copyFile(newBinary, r.stagedPath, info.Mode()); err != nil {
		_ = os.Remove(r.stagedPath)
		return fmt.Errorf("failed to stage binary: %w", err)
	}

	// A running binary can be renamed but not always overwritten.
	if err := os.Rename(r.currentPath, r.backupPath); err != nil {
		_ = os.Remove(r.stagedPath)
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := os.Rename(r.stagedPath, r.currentPath); err != nil {
		_ = os.Remove(r.stagedPath)
		_ = r.Rollback(ctx)
		return fmt.Errorf("failed to replace binary: %w", err)
	}

	//nolint:gosec // binary needs to be executable
	if err := os.Chmod(r.currentPath, 0o755); err != nil {
		_ = r.Rollback(ctx)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if r.Verify != nil {
		if err := r.Verify(ctx, r.currentPath); err != nil {
			_ = r.Rollback(ctx)
			return fmt.Errorf("new binary verification failed: %w", err)
		}
	}

	// Windows keeps the old image locked until exit; the backup lingers there.
	_ = os.Remove(r.backupPath)
	return nil
}

// Rollback restores the backup taken by Replace.
func (r *BinaryReplacer) Rollback(ctx context.Context) error {
	if _, err := os.Stat(r.backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", r.backupPath)
	}

	if err := os.Rename(r.backupPath, r.currentPath); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}

	//nolint:gosec // binary needs to be executable
	if err := os.Chmod(r.currentPath, 0o755); err != nil {
		return fmt.Errorf("failed to set permissions on restored binary: %w", err)
	}

	if r.Verify != nil {
		if err := r.Verify(ctx, r.currentPath); err != nil {
			return fmt.Errorf("restored binary verification failed: %w", err)
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}

func verifyBinary(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, path, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("binary verification failed: %w", err)
	}
	return nil
}
