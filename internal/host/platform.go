package host

import (
	"runtime"
	"strings"

	"github.com/egoavara/rau/internal/rau"
)

// DetectPlatform returns the capabilities of the given OS, or of the
// running OS when override is empty or "auto".
func DetectPlatform(override string) rau.Capabilities {
	goos := strings.ToLower(strings.TrimSpace(override))
	if goos == "" || goos == "auto" {
		goos = runtime.GOOS
	}

	caps := rau.Capabilities{OS: goos}
	switch goos {
	case "android":
		caps.SupportsCancelableDialogs = true
		caps.RequiresRuntimePermission = true
	case "ios":
	case "linux":
		caps.SupportsCancelableDialogs = true
		caps.RequiresRuntimePermission = true
	default:
		caps.SupportsCancelableDialogs = true
	}
	return caps
}
