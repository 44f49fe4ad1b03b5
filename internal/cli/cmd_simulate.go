package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/withley/courier/internal/sim"
)

var simulateFlags struct {
	script string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a scripted session and print the final state as YAML",
	Args:  cobra.NoArgs,
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.script, "script", "", "YAML file with an inputs list (required)")

	_ = simulateCmd.MarkFlagRequired("script")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	script, err := sim.LoadScript(simulateFlags.script)
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	res := sim.Play(ctrl, script)
	res.Seed = cfg.Seed
	data, err := res.YAML()
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
