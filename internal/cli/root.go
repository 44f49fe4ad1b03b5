// Package cli wires configuration, logging and the front ends into the
// courier command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/withley/courier/internal/catalog"
	"github.com/withley/courier/internal/config"
	"github.com/withley/courier/internal/engine"
	"github.com/withley/courier/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	seed     int64
	logFile  string
	logLevel string
}

var rootCmd = &cobra.Command{
	Use:   "courier",
	Short: "Deliver ideas across a very small, extremely polite multiverse",
	Long: "Courier of Possibilities is a cozy narrative puzzle. Deliver idea parcels\n" +
		"to six civilizations, keep the Ripple Index low and earn the finale.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: runRun,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&rootFlags.seed, "seed", 0, "Random seed; 0 picks a fresh one")
	pf.StringVar(&rootFlags.logFile, "log-file", "", "Append logs to this file")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	addRunFlags(rootCmd.Flags())
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.Version = version
}

// Execute runs the command line. SIGINT cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig reads the environment, then applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Seed = rootFlags.seed
	}
	if f.Changed("log-file") {
		cfg.LogFile = rootFlags.logFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}
	if f.Changed("plain") {
		cfg.Plain = runFlags.plain
	}
	if f.Changed("no-color") {
		cfg.NoColor = runFlags.noColor
	}
	if f.Changed("text-speed") {
		if runFlags.textSpeed < 0 {
			return nil, fmt.Errorf("--text-speed must not be negative, got %s", runFlags.textSpeed)
		}
		cfg.TextSpeed = runFlags.textSpeed
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int64N(1<<62) + 1
	}
	return cfg, nil
}

// setup loads configuration and installs the logger. The caller closes
// the returned closer when the command finishes.
func setup(cmd *cobra.Command) (*config.Config, io.Closer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}

func newController(cfg *config.Config) (*engine.Controller, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logging.New("cli").Info("session starting",
		"seed", cfg.Seed,
		"parcels", len(cat.Parcels),
		"civilizations", len(cat.Civilizations),
	)
	return engine.NewController(engine.NewEngine(cat, engine.NewRand(cfg.Seed))), nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
