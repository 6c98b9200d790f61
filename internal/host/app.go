package host

import (
	"fmt"

	"github.com/pkg/browser"

	"github.com/egoavara/rau/internal/debug"
)

// App restarts the running binary and hands URLs to the browser.
type App struct {
	Executable string
	Args       []string

	exec    func(exe string, args []string) error
	openURL func(url string) error
}

// NewApp creates an App that restarts executable with args.
func NewApp(executable string, args []string) *App {
	return &App{
		Executable: executable,
		Args:       args,
		exec:       restart,
		openURL:    browser.OpenURL,
	}
}

// Restart replaces the current process with a fresh run of the binary.
func (a *App) Restart() error {
	exe := a.Executable
	if exe == "" {
		path, err := ExecutablePath()
		if err != nil {
			return err
		}
		exe = path
	}
	debug.Logf("restarting %s %v", exe, a.Args)
	if err := a.exec(exe, a.Args); err != nil {
		return fmt.Errorf("restart %s: %w", exe, err)
	}
	return nil
}

// OpenURL opens url in the default browser.
func (a *App) OpenURL(url string) error {
	if url == "" {
		return fmt.Errorf("empty redirect url")
	}
	debug.Logf("opening %s", url)
	return a.openURL(url)
}
