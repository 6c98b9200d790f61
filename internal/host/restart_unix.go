//go:build !windows

package host

import (
	"os"

	"golang.org/x/sys/unix"
)

func restart(exe string, args []string) error {
	argv := append([]string{exe}, args...)
	return unix.Exec(exe, argv, os.Environ())
}
