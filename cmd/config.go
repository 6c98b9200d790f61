package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egoavara/rau/internal/config"
	"github.com/egoavara/rau/internal/i18n"
	"github.com/egoavara/rau/internal/output"
	"github.com/egoavara/rau/internal/tui"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rau configuration",
	Long: `Manage rau configuration settings.

Example:
  rau config show
  rau config set update.mode auto
  rau config mode`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  locale                        - Language setting (auto, en-US, ko-KR, ...)
  update.server                 - Update service URL
  update.channel                - Release channel (stable, beta, ...)
  update.mode                   - notify, auto, disabled
  update.showProgressCheck      - true, false
  update.showProgressErrorAlert - true, false
  update.permissionRetries      - Try Again limit, 0 for no limit
  update.timeout                - HTTP timeout such as 30s
  platform.os                   - auto, android, ios, linux, darwin, windows

Example:
  rau config set locale ko-KR
  rau config set update.mode auto`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configModeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Choose the update mode interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfigMode,
}

func init() {
	configShowCmd.Flags().StringVarP(&configOutput, "output", "o", "text", "output format (text, json, yaml)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configModeCmd)
}

// configTable renders a Config as key: value lines.
type configTable struct {
	cfg *config.Config
}

func (t configTable) String() string {
	c := t.cfg
	values := map[string]string{
		config.KeyLocale:                 c.Locale,
		config.KeyServer:                 c.Update.Server,
		config.KeyChannel:                c.Update.Channel,
		config.KeyMode:                   string(c.Update.Mode),
		config.KeyShowProgressCheck:      strconv.FormatBool(c.Update.ShowProgressCheck),
		config.KeyShowProgressErrorAlert: strconv.FormatBool(c.Update.ShowProgressErrorAlert),
		config.KeyPermissionRetries:      strconv.Itoa(c.Update.PermissionRetries),
		config.KeyTimeout:                c.Update.Timeout.String(),
		config.KeyPlatformOS:             c.Platform.OS,
	}

	var b strings.Builder
	b.WriteString(i18n.T("config.header", nil))
	b.WriteString("\n----------------------------------------\n")
	for _, key := range config.Keys() {
		fmt.Fprintf(&b, "  %s: %s\n", key, values[key])
	}
	b.WriteString("\n")
	b.WriteString(i18n.T("config.path", map[string]any{"Path": config.ConfigPath()}))
	return b.String()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(configOutput)
	if err != nil {
		return err
	}
	cfg := config.Get()
	if format == output.FormatText {
		return output.NewWriter(cmd.OutOrStdout(), format).Write(configTable{cfg})
	}
	return output.NewWriter(cmd.OutOrStdout(), format).Write(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := config.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.set", map[string]any{"Key": key, "Value": value}))
	return nil
}

func runConfigMode(cmd *cobra.Command, args []string) error {
	current := config.Get().Update.Mode
	mode, confirmed, err := tui.RunModeSelector(current)
	if err != nil {
		return err
	}
	if !confirmed || mode == current {
		return nil
	}
	if err := config.SetMode(mode); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.set", map[string]any{"Key": config.KeyMode, "Value": string(mode)}))
	return nil
}
