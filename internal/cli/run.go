package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/wallboard/internal/app"
	"github.com/watchfire-io/wallboard/internal/config"
)

var (
	runNoTray   bool
	runHeadless bool
	runPort     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the wallboard",
	Long: `Start the wallboard view, tray icon and control API.

With --no-tray, closing the view exits. With --headless, no view is shown and
the process runs until interrupted or quit from the tray.`,
	Args: cobra.NoArgs,
	RunE: runWallboard,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runNoTray, "no-tray", false, "Run without the system tray icon")
	cmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without the terminal view")
	cmd.Flags().IntVar(&runPort, "port", 0, "Control API port (default: settings, else dynamic)")
}

// stdinIsTerminal reports whether the view can take over the terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resolveView decides whether the terminal view runs. Started without a
// terminal (desktop launcher, autostart), the app runs in the tray only.
func resolveView(headless, noTray, tty bool) (bool, error) {
	if headless && noTray {
		return false, fmt.Errorf("--no-tray and --headless leave nothing to show")
	}
	if headless {
		return false, nil
	}
	if !tty {
		if noTray {
			return false, fmt.Errorf("no terminal for the wallboard view and --no-tray disables the tray")
		}
		return false, nil
	}
	return true, nil
}

func runWallboard(cmd *cobra.Command, args []string) error {
	view, err := resolveView(runHeadless, runNoTray, stdinIsTerminal())
	if err != nil {
		return err
	}

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check instance status: %w", err)
	}
	if running {
		return fmt.Errorf("%w on port %d (PID %d)", app.ErrAlreadyRunning, info.Port, info.PID)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	roster, err := config.LoadRoster()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(settings.LogLevel, view)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)
	if !view && !runHeadless {
		logger.Info("no terminal attached; running in the system tray only")
	}

	a, err := app.New(settings, roster, app.Options{
		Tray:   !runNoTray,
		View:   view,
		Port:   runPort,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if !view {
		fmt.Fprintf(cmd.OutOrStdout(), "%s running (%d agents). Press Ctrl+C to stop.\n",
			styleBrand.Render("Agent Wallboard"), len(roster.Agents))
	}
	return a.Run()
}
