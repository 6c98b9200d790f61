package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/jeandeaual/go-locale"

	"github.com/egoavara/rau/cmd"
	"github.com/egoavara/rau/internal/config"
	"github.com/egoavara/rau/internal/i18n"
)

//go:embed locales/*.json
var localeFS embed.FS

func main() {
	if err := config.Initialize(""); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	i18n.Init(localeFS, getLocale())

	cmd.Execute()
}

// getLocale returns the locale based on config
func getLocale() string {
	configLocale := config.GetLocale()

	// If "auto", detect system locale
	if configLocale == "auto" || configLocale == "" {
		userLocale, err := locale.GetLocale()
		if err != nil || userLocale == "" {
			return "en-US"
		}
		return userLocale
	}

	return configLocale
}
