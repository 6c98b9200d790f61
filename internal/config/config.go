package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AutoUpdateMode defines the auto-update behavior
type AutoUpdateMode string

const (
	// AutoUpdateModeNotify asks the user before updating
	AutoUpdateModeNotify AutoUpdateMode = "notify"
	// AutoUpdateModeAuto updates and restarts without asking
	AutoUpdateModeAuto AutoUpdateMode = "auto"
	// AutoUpdateModeDisabled disables update checks
	AutoUpdateModeDisabled AutoUpdateMode = "disabled"
)

// Configuration keys
const (
	KeyLocale                 = "locale"
	KeyServer                 = "update.server"
	KeyChannel                = "update.channel"
	KeyMode                   = "update.mode"
	KeyShowProgressCheck      = "update.showProgressCheck"
	KeyShowProgressErrorAlert = "update.showProgressErrorAlert"
	KeyPermissionRetries      = "update.permissionRetries"
	KeyTimeout                = "update.timeout"
	KeyPlatformOS             = "platform.os"
)

const envPrefix = "RAU"

// Config is a snapshot of the effective configuration
type Config struct {
	Locale   string         `json:"locale" yaml:"locale"`
	Update   UpdateConfig   `json:"update" yaml:"update"`
	Platform PlatformConfig `json:"platform" yaml:"platform"`
}

// UpdateConfig contains update settings
type UpdateConfig struct {
	Server                 string         `json:"server" yaml:"server"`
	Channel                string         `json:"channel" yaml:"channel"`
	Mode                   AutoUpdateMode `json:"mode" yaml:"mode"`
	ShowProgressCheck      bool           `json:"showProgressCheck" yaml:"showProgressCheck"`
	ShowProgressErrorAlert bool           `json:"showProgressErrorAlert" yaml:"showProgressErrorAlert"`
	PermissionRetries      int            `json:"permissionRetries" yaml:"permissionRetries"`
	Timeout                time.Duration  `json:"timeout" yaml:"timeout"`
}

// PlatformConfig overrides platform detection
type PlatformConfig struct {
	OS string `json:"os" yaml:"os"` // "auto" or android, ios, linux, darwin, windows
}

var (
	cfgOnce sync.Once
	cfgMu   sync.RWMutex
	cfgInst *viper.Viper
	cfgPath string
	initErr error
)

// Initialize loads configuration using the precedence:
// defaults < config file < environment variables < overrides.
// An empty path uses ConfigPath().
func Initialize(path string) error {
	cfgOnce.Do(func() {
		if strings.TrimSpace(path) == "" {
			path = ConfigPath()
		}
		initErr = configure(path)
	})
	return initErr
}

func configure(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, path); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgInst = v
	cfgPath = path
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLocale, "auto")
	v.SetDefault(KeyServer, "https://updates.example.com")
	v.SetDefault(KeyChannel, "stable")
	v.SetDefault(KeyMode, string(AutoUpdateModeNotify))
	v.SetDefault(KeyShowProgressCheck, true)
	v.SetDefault(KeyShowProgressErrorAlert, true)
	v.SetDefault(KeyPermissionRetries, 0)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyPlatformOS, "auto")
}

func mergeConfigFile(v *viper.Viper, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(""); err != nil {
		return nil, err
	}
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if cfgInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return cfgInst, nil
}

// Get returns the effective configuration
func Get() *Config {
	v, err := getViper()
	if err != nil {
		v = viper.New()
		setDefaults(v)
	}
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	mode := AutoUpdateMode(v.GetString(KeyMode))
	if !ValidMode(mode) {
		mode = AutoUpdateModeNotify
	}
	return &Config{
		Locale: v.GetString(KeyLocale),
		Update: UpdateConfig{
			Server:                 v.GetString(KeyServer),
			Channel:                v.GetString(KeyChannel),
			Mode:                   mode,
			ShowProgressCheck:      v.GetBool(KeyShowProgressCheck),
			ShowProgressErrorAlert: v.GetBool(KeyShowProgressErrorAlert),
			PermissionRetries:      v.GetInt(KeyPermissionRetries),
			Timeout:                v.GetDuration(KeyTimeout),
		},
		Platform: PlatformConfig{
			OS: v.GetString(KeyPlatformOS),
		},
	}
}

// ApplyOverrides injects values typically coming from CLI flags
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	v, err := getViper()
	if err != nil {
		return err
	}
	cfgMu.Lock()
	defer cfgMu.Unlock()
	for k, val := range overrides {
		v.Set(k, val)
	}
	return nil
}

// Keys returns every known configuration key, sorted
func Keys() []string {
	keys := []string{
		KeyLocale, KeyServer, KeyChannel, KeyMode, KeyShowProgressCheck,
		KeyShowProgressErrorAlert, KeyPermissionRetries, KeyTimeout, KeyPlatformOS,
	}
	sort.Strings(keys)
	return keys
}

// Set validates value for key, stores it and saves the config file
func Set(key, value string) error {
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	v, err := getViper()
	if err != nil {
		return err
	}

	cfgMu.Lock()
	v.Set(key, parsed)
	cfgMu.Unlock()

	return Save(Get())
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeyLocale, KeyServer, KeyChannel:
		return value, nil
	case KeyMode:
		if !ValidMode(AutoUpdateMode(value)) {
			return nil, fmt.Errorf("invalid value '%s' for %s. Valid values: notify, auto, disabled", value, key)
		}
		return value, nil
	case KeyShowProgressCheck, KeyShowProgressErrorAlert:
		switch strings.ToLower(value) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return nil, fmt.Errorf("invalid value '%s' for %s. Valid values: true, false", value, key)
	case KeyPermissionRetries:
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 0 {
			return nil, fmt.Errorf("invalid value '%s' for %s. Expected a non-negative integer", value, key)
		}
		return n, nil
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid value '%s' for %s. Expected a duration such as 30s", value, key)
		}
		return d, nil
	case KeyPlatformOS:
		switch value {
		case "auto", "android", "ios", "linux", "darwin", "windows":
			return value, nil
		}
		return nil, fmt.Errorf("invalid value '%s' for %s. Valid values: auto, android, ios, linux, darwin, windows", value, key)
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// ValidMode reports whether mode is a known auto-update mode
func ValidMode(mode AutoUpdateMode) bool {
	switch mode {
	case AutoUpdateModeNotify, AutoUpdateModeAuto, AutoUpdateModeDisabled:
		return true
	}
	return false
}

// Save writes config to the loaded config file
func Save(config *Config) error {
	cfgMu.RLock()
	path := cfgPath
	cfgMu.RUnlock()
	if path == "" {
		path = ConfigPath()
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := yaml.Marshal(toFile(config))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// fileConfig is the on-disk layout; durations are stored as strings
type fileConfig struct {
	Locale string `yaml:"locale"`
	Update struct {
		Server                 string `yaml:"server"`
		Channel                string `yaml:"channel"`
		Mode                   string `yaml:"mode"`
		ShowProgressCheck      bool   `yaml:"showProgressCheck"`
		ShowProgressErrorAlert bool   `yaml:"showProgressErrorAlert"`
		PermissionRetries      int    `yaml:"permissionRetries"`
		Timeout                string `yaml:"timeout"`
	} `yaml:"update"`
	Platform PlatformConfig `yaml:"platform"`
}

func toFile(c *Config) fileConfig {
	var f fileConfig
	f.Locale = c.Locale
	f.Update.Server = c.Update.Server
	f.Update.Channel = c.Update.Channel
	f.Update.Mode = string(c.Update.Mode)
	f.Update.ShowProgressCheck = c.Update.ShowProgressCheck
	f.Update.ShowProgressErrorAlert = c.Update.ShowProgressErrorAlert
	f.Update.PermissionRetries = c.Update.PermissionRetries
	f.Update.Timeout = c.Update.Timeout.String()
	f.Platform = c.Platform
	return f
}

// GetLocale returns the configured locale
func GetLocale() string {
	return Get().Locale
}

// SetMode sets the auto-update mode and saves
func SetMode(mode AutoUpdateMode) error {
	return Set(KeyMode, string(mode))
}

// reset clears package state for tests
func reset() {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgInst = nil
	cfgPath = ""
	initErr = nil
	cfgOnce = sync.Once{}
}

// ResetForTesting points the configuration at a file in a temp directory.
// Returns the config file path.
func ResetForTesting(t interface {
	TempDir() string
	Cleanup(func())
}) string {
	reset()
	path := filepath.Join(t.TempDir(), "config.yaml")
	_ = Initialize(path)
	t.Cleanup(reset)
	return path
}
