package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpticalFlyer/teeforge/config"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the command line overrides on top of the config file.
type options struct {
	configPath string
	grid       float64
	verbose    bool

	image     string
	text      string
	fabric    string
	textColor string
	template  string
	theme     int

	height float64
	weight float64
	build  string
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "teeforge",
		Short: "teeforge places an image and text on a garment",
		Long: `teeforge opens a garment designer window. The image and the text can be
dragged, resized and rotated on the garment; every placement snaps to the
design grid and is kept relative to the garment, so it survives resizing
the window.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return runDesigner(cmd.Context(), cfg)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("teeforge %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&opts.configPath, "config", "c", "teeforge.toml", "config file")
	pf.Float64Var(&opts.grid, "grid", 0, "snap grid size in pixels (overrides config)")

	f := root.Flags()
	f.StringVar(&opts.image, "image", "", "image to place on the garment")
	f.StringVar(&opts.text, "text", "", "text to print on the garment")
	f.StringVar(&opts.fabric, "fabric", "", "fabric colour as #rrggbb")
	f.StringVar(&opts.textColor, "text-color", "", "text colour as #rrggbb")
	f.StringVar(&opts.template, "template", "", "garment outline shapefile")
	f.IntVar(&opts.theme, "theme", 0, "initial theme (0 light, 1 dark, 2 pastel)")

	// measurements travel with every export, replays included
	pf.Float64Var(&opts.height, "height", 0, "wearer height in cm")
	pf.Float64Var(&opts.weight, "weight", 0, "wearer weight in kg")
	pf.StringVar(&opts.build, "build", "", "wearer build (lean, regular, athletic, big)")

	root.AddCommand(newReplayCmd(&opts))
	return root
}

// config loads the config file and applies the flags the user set.
func (o *options) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		cfg.GridSize = o.grid
	}
	if flags.Changed("image") {
		cfg.Image = o.image
	}
	if flags.Changed("text") {
		cfg.Text = o.text
	}
	if flags.Changed("fabric") {
		cfg.FabricColor = o.fabric
	}
	if flags.Changed("text-color") {
		cfg.TextColor = o.textColor
	}
	if flags.Changed("template") {
		cfg.GarmentTemplate = o.template
	}
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("height") {
		cfg.Measurements.HeightCM = o.height
	}
	if flags.Changed("weight") {
		cfg.Measurements.WeightKG = o.weight
	}
	if flags.Changed("build") {
		cfg.Measurements.Build = o.build
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
