//go:build windows

package host

import (
	"os"
	"os/exec"
)

var exit = os.Exit

// Windows has no exec; start the new binary and leave.
func restart(exe string, args []string) error {
	cmd := exec.Command(exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	exit(0)
	return nil
}
