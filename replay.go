package main

import (
	"github.com/spf13/cobra"

	"github.com/OpticalFlyer/teeforge/design"
	"github.com/OpticalFlyer/teeforge/replay"
)

func newReplayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Run a gesture script without a window and print the placements",
		Long: `Replay plays the [[step]] entries of a TOML script against a fresh design
and prints where every element ended up. Use it to reproduce an interaction
exactly, including container sizes and pointer samples.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			logger.Debug("replaying", "script", args[0], "steps", len(script.Steps))

			p, err := replay.Run(ctx, script, cfg.GridSize, logger)
			if err != nil {
				return err
			}
			if err := p.Render(cmd.OutOrStdout()); err != nil {
				return err
			}
			design.New(cfg.Measurements, cfg.Text, cfg.Image, p.Controller).Log(logger)
			return nil
		},
	}
}
