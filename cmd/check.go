package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/egoavara/rau/internal/config"
	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/host"
	"github.com/egoavara/rau/internal/i18n"
	"github.com/egoavara/rau/internal/output"
	"github.com/egoavara/rau/internal/rau"
	"github.com/egoavara/rau/internal/tui"
	"github.com/egoavara/rau/internal/version"
)

var (
	checkProgress   bool
	checkErrorAlert bool
	checkSilent     bool
	checkServer     string
	checkPlatform   string
	checkOutput     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for an update and install it",
	Long: `Query the update service and, when a newer version exists, ask
before downloading it, replace the running binary and restart.

Example:
  rau check
  rau check --silent
  rau check --server http://localhost:8080 --platform android -o json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkProgress, "progress", true, "show an indicator while checking (default from update.showProgressCheck)")
	checkCmd.Flags().BoolVar(&checkErrorAlert, "error-alert", true, "alert when no update is found (default from update.showProgressErrorAlert)")
	checkCmd.Flags().BoolVar(&checkSilent, "silent", false, "install without asking and restart")
	checkCmd.Flags().StringVar(&checkServer, "server", "", "update service URL")
	checkCmd.Flags().StringVar(&checkPlatform, "platform", "", "platform to report (android, ios, linux, darwin, windows)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "text", "outcome format (text, json, yaml)")
}

// checkReport is the printable outcome of a check.
type checkReport struct {
	State string   `json:"state" yaml:"state"`
	Error string   `json:"error,omitempty" yaml:"error,omitempty"`
	Trace []string `json:"trace" yaml:"trace"`
}

func (r checkReport) String() string {
	if r.Error == "" {
		return r.State
	}
	return r.State + ": " + r.Error
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(checkOutput)
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if cmd.Flags().Changed("server") {
		overrides[config.KeyServer] = checkServer
	}
	if cmd.Flags().Changed("platform") {
		overrides[config.KeyPlatformOS] = checkPlatform
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return err
	}
	cfg := config.Get()

	if cfg.Update.Mode == config.AutoUpdateModeDisabled && !cmd.Flags().Changed("silent") {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("check.disabled", nil))
		return nil
	}

	opts := rau.Options{
		ShowProgressCheck:      cfg.Update.ShowProgressCheck,
		ShowProgressErrorAlert: cfg.Update.ShowProgressErrorAlert,
		Silent:                 checkSilent || cfg.Update.Mode == config.AutoUpdateModeAuto,
	}
	if cmd.Flags().Changed("progress") {
		opts.ShowProgressCheck = checkProgress
	}
	if cmd.Flags().Changed("error-alert") {
		opts.ShowProgressErrorAlert = checkErrorAlert
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dialogs := tui.NewHost(os.Stdin, cmd.OutOrStdout(), cancel)
	h := host.New(host.Settings{
		Server:      cfg.Update.Server,
		Channel:     cfg.Update.Channel,
		Version:     version.Version,
		Platform:    cfg.Platform.OS,
		Timeout:     cfg.Update.Timeout,
		RestartArgs: []string{"version"},
	}, dialogs, i18n.Text)

	wf := rau.New(h)
	wf.MaxPermissionRetries = cfg.Update.PermissionRetries
	if verbose {
		wf.Logf = func(format string, a ...any) {
			debug.Logf(format, a...)
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
		}
	}

	out := wf.Run(ctx, opts)
	if ctx.Err() == nil {
		// the no-update alert stays up until acknowledged
		dialogs.Wait()
	}

	report := checkReport{State: out.State.String()}
	if out.Err != nil {
		report.Error = out.Err.Error()
	}
	for _, s := range out.Trace {
		report.Trace = append(report.Trace, s.String())
	}
	if format != output.FormatText || verbose {
		if err := output.NewWriter(cmd.OutOrStdout(), format).Write(report); err != nil {
			return err
		}
	}

	return outcomeError(cmd, out, opts)
}

// outcomeError maps a finished flow onto the command result.
func outcomeError(cmd *cobra.Command, out rau.Outcome, opts rau.Options) error {
	switch out.State {
	case rau.StateOffline:
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("check.offline", nil))
		return nil
	case rau.StateFailed:
		if errors.Is(out.Err, rau.ErrNoUpdate) {
			if !opts.ShowProgressErrorAlert {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.Text("noupdate", rau.Fallback("noupdate")))
			}
			return nil
		}
		return out.Err
	default:
		return nil
	}
}
