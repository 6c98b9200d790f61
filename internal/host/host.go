package host

import (
	"time"

	"github.com/egoavara/rau/internal/rau"
)

// Settings configures a terminal host.
type Settings struct {
	Server      string
	Channel     string
	Version     string
	Platform    string
	Timeout     time.Duration
	Executable  string   // binary to replace and restart; empty means the running one
	RestartArgs []string // arguments for the restarted binary
}

// New assembles a rau.Host for the terminal.
func New(s Settings, dialogs rau.Dialogs, strings rau.Lookup) rau.Host {
	caps := DetectPlatform(s.Platform)
	exe := s.Executable
	if exe == "" {
		if path, err := ExecutablePath(); err == nil {
			exe = path
		}
	}

	svc := NewHTTPService(s.Server, s.Version, caps.OS, s.Channel, s.Timeout,
		WithDownloader(NewHTTPDownloader(exe)))

	return rau.Host{
		Network:     NewConnectivity(s.Server),
		Service:     svc,
		Dialogs:     dialogs,
		Permissions: NewPermissions(exe, dialogs, strings),
		App:         NewApp(exe, s.RestartArgs),
		Platform:    caps,
	}
}
