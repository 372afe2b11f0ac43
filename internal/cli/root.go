package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags.
var (
	cfgFile    string
	serverFlag string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "usagedash",
	Short: "Terminal dashboard for the usage tracker",
	Long: `usagedash shows what the usage tracker is recording: session totals,
productivity, hourly activity, top apps, categories and weekly trends.

Run without a subcommand to open the live dashboard.

Examples:
  usagedash
  usagedash status
  usagedash apps --period all --limit 50
  usagedash --server http://10.0.0.5:52847 week`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || !stdoutIsTerminal() {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context(), dashboardOpts)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./.usagedash.yaml, then $XDG_CONFIG_HOME/usagedash/config.yaml)")
	pf.StringVar(&serverFlag, "server", "", "tracker base URL (overrides server.url)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr (one-shot commands)")

	addDashboardFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if err != errReported {
			fmt.Fprintln(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}

// errReported means the command already wrote its failure (e.g. a JSON
// error envelope) and only the exit code is left to set.
var errReported = fmt.Errorf("error already reported")

// formatError renders err for the terminal, adding cobra's usage hint for
// flag and argument mistakes.
func formatError(err error) string {
	msg := err.Error()
	if isUsageError(err) {
		msg += "\nRun 'usagedash --help' for usage."
	}
	return ui.ErrorStyle.Render(ui.SymbolFail) + " " + msg
}

func isUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "invalid argument")
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
