package cli

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/withley/courier/internal/console"
	"github.com/withley/courier/internal/logging"
	"github.com/withley/courier/internal/tui"
)

var runFlags struct {
	plain     bool
	noColor   bool
	textSpeed time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive delivery shift (default)",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	addRunFlags(runCmd.Flags())
}

func addRunFlags(f *pflag.FlagSet) {
	f.BoolVar(&runFlags.plain, "plain", false, "Use the line-mode console instead of the full-screen interface")
	f.BoolVar(&runFlags.noColor, "no-color", false, "Strip colors and text styling")
	f.DurationVar(&runFlags.textSpeed, "text-speed", 20*time.Millisecond, "Delay per typed character in the console; 0 prints instantly")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	tty := isTerminal(in) && isTerminal(out)

	if cfg.Plain || !tty {
		con := console.New(in, out, console.Options{
			TextSpeed: cfg.TextSpeed,
			NoColor:   cfg.Colorless(),
			Clear:     isTerminal(out),
		})
		err = console.Run(ctx, ctrl, con)
	} else {
		if cfg.Colorless() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		err = tui.Run(ctx, ctrl, out)
	}
	if err != nil {
		return err
	}

	s := ctrl.Session()
	logging.New("cli").Info("session finished",
		slog.String("phase", ctrl.Phase().String()),
		slog.Int("turn", s.Turn),
		slog.Int("deliveries", len(s.Deliveries)),
		slog.Int("ripple", s.RippleIndex),
		slog.String("ending", ctrl.Ending()),
	)
	return nil
}
