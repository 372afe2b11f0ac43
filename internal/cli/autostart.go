package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart [status|on|off]",
	Short: "Show or change whether the tracker launches at login",
	Long: `Without an argument (or with 'status') print the current autostart
setting. 'on' and 'off' change it and report the tracker's answer.

Examples:
  usagedash autostart
  usagedash autostart on
  usagedash autostart off`,
	ValidArgs: []string{"status", "on", "off"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := "status"
		if len(args) == 1 {
			action = args[0]
		}

		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return autostartCommand(cmd.Context(), a, cmd.OutOrStdout(), action)
	},
}

func init() {
	rootCmd.AddCommand(autostartCmd)
}

// autostartCommand reads or sets the autostart flag. A change only counts
// when the tracker acknowledges the requested value.
func autostartCommand(ctx context.Context, a *app, w io.Writer, action string) error {
	l := a.labels

	if action == "status" {
		st, err := a.client.Autostart(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", l.Autostart, autostartLabel(st.Enabled, a))
		return nil
	}

	enable := action == "on"
	label := "Enabling autostart"
	call := a.client.EnableAutostart
	if !enable {
		label = "Disabling autostart"
		call = a.client.DisableAutostart
	}

	spinner := ui.NewSpinner(w, label, stdoutIsTerminal())
	spinner.Start()

	ack, err := call(ctx)
	if err == nil && ((enable && !ack.Enabled) || (!enable && !ack.Disabled)) {
		err = errors.New(errors.ErrToggle,
			"The tracker did not confirm the autostart change",
			"Check the tracker's permissions to register login items.")
	}
	if err != nil {
		spinner.Fail("")
		a.log.Warn("%s failed: %v", label, err)
		return err
	}
	spinner.Success()

	fmt.Fprintf(w, "%s: %s\n", l.Autostart, autostartLabel(enable, a))
	return nil
}

func autostartLabel(on bool, a *app) string {
	if on {
		return ui.SuccessStyle.Render(a.labels.AutostartOn)
	}
	return ui.MutedStyle.Render(a.labels.AutostartOff)
}
