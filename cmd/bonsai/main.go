package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/bonsai/internal/automation"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
	"github.com/san-kum/bonsai/internal/tui"
	"github.com/san-kum/bonsai/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	dataDir     string
	configFile  string
	preset      string
	life        int
	multiplier  int
	leaves      string
	base        string
	message     string
	seed        uint64
	live        bool
	timeStep    float64
	infinite    bool
	wait        float64
	screensaver bool
	printTree   bool
	verbose     bool
	theme       string
	save        bool
	loadID      string
	width       int
	height      int
)

var logger *log.Logger

// main registers the commands and flags and runs the root command. It exits
// with status 1 when a command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "bonsai",
		Short:         "grow bonsai trees in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: growTree,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".bonsai", "data directory for saved trees")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset configuration")
	pf.IntVarP(&life, "life", "L", config.DefaultLife, "life of the tree; higher is more overgrown")
	pf.IntVarP(&multiplier, "multiplier", "M", config.DefaultMultiplier, "branch multiplier; higher is more branchy")
	pf.StringVarP(&leaves, "leaves", "c", config.DefaultLeaves, "comma separated list of leaf strings")
	pf.StringVarP(&base, "base", "b", config.DefaultBase, "base art: none, small or big")
	pf.StringVarP(&message, "message", "m", "", "message shown next to the tree")
	pf.Uint64VarP(&seed, "seed", "s", 0, "random seed (0 picks one)")
	pf.BoolVarP(&live, "live", "l", false, "show each step of growth")
	pf.Float64VarP(&timeStep, "time", "t", config.DefaultTimeStep, "seconds between steps in live mode")
	pf.BoolVarP(&infinite, "infinite", "i", false, "keep growing trees")
	pf.Float64VarP(&wait, "wait", "w", config.DefaultWait, "seconds between trees in infinite mode")
	pf.BoolVarP(&screensaver, "screensaver", "S", false, "live and infinite; any key quits")
	pf.BoolVarP(&printTree, "print", "p", false, "print the tree to stdout")
	pf.BoolVarP(&verbose, "verbose", "v", false, "show growth details and debug logs")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.BoolVar(&save, "save", false, "save the tree to the data directory")
	pf.StringVar(&loadID, "load", "", "regrow a saved tree by id")
	pf.IntVar(&width, "width", 0, "canvas width (0 = terminal width)")
	pf.IntVar(&height, "height", 0, "canvas height (0 = terminal height)")

	rootCmd.AddCommand(
		liveCmd(),
		listCmd(),
		showCmd(),
		exportCmd(),
		exportSVGCmd(),
		statsCmd(),
		sweepCmd(),
		presetsCmd(),
		batchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = newLogger(false)
		}
		logger.Error("bonsai failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "bonsai",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// quietLogger is used while a full-screen view owns the terminal.
func quietLogger() *log.Logger {
	l := logger.With()
	l.SetLevel(log.ErrorLevel)
	return l
}

// resolveConfig layers defaults, preset, config file and the flags the user
// actually set, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("life") {
		cfg.Life = life
	}
	if flags.Changed("multiplier") {
		cfg.Multiplier = multiplier
	}
	if flags.Changed("leaves") {
		cfg.Leaves = config.ParseLeaves(leaves)
	}
	if flags.Changed("base") {
		cfg.Base = base
	}
	if flags.Changed("message") {
		cfg.Message = message
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("live") {
		cfg.Live = live
	}
	if flags.Changed("time") {
		cfg.TimeStep = timeStep
	}
	if flags.Changed("infinite") {
		cfg.Infinite = infinite
	}
	if flags.Changed("wait") {
		cfg.Wait = wait
	}
	if flags.Changed("screensaver") {
		cfg.Screensaver = screensaver
	}
	if flags.Changed("print") {
		cfg.Print = printTree
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	viz.SetTheme(cfg.Theme)
	return cfg, nil
}

// loadRecord applies a saved tree's growth settings to cfg. The tree's
// shape depends on the canvas it grew on, so the saved size is restored
// unless keepSize is set. Presentation settings stay as given on the
// command line.
func loadRecord(cfg *config.Config, keepSize bool) (*storage.Record, error) {
	if loadID == "" {
		return nil, nil
	}
	rec, err := storage.New(dataDir).Load(loadID)
	if err != nil {
		return nil, err
	}
	cfg.Life = rec.Config.Life
	cfg.Multiplier = rec.Config.Multiplier
	cfg.Leaves = rec.Config.Leaves
	cfg.Base = rec.Config.Base
	cfg.Seed = rec.Seed
	if !keepSize && rec.Config.Width > 0 && rec.Config.Height > 0 {
		cfg.Width, cfg.Height = rec.Config.Width, rec.Config.Height
	}
	logger.Debug("loaded tree", "id", rec.ID, "generation", rec.Generation, "branches", rec.Branches)
	return rec, nil
}

func growTree(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rec, err := loadRecord(cfg, sizeChanged(cmd))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Print {
		generation := 1
		if rec != nil {
			generation = rec.Generation
		}
		fitCanvas(cfg, terminalSize)
		grid, res, err := automation.Grow(ctx, cfg, generation, logger)
		if err != nil {
			return err
		}
		fmt.Println(viz.Compose(grid, cfg.Message, viz.CurrentTheme))
		return saveTree(cfg, res, grid)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	canvas := tui.NewScreen(screen, viz.CurrentTheme, cfg.Base)
	gen, err := sim.New(canvas, sim.Config{Params: cfg.Params(), Seed: cfg.Seed}, sim.WithLogger(quietLogger()))
	if err != nil {
		screen.Fini()
		return err
	}
	for _, m := range metrics.Default() {
		gen.AddMetric(m)
	}
	if rec != nil {
		if err := gen.FastForward(ctx, rec.Generation, rec.Branches); err != nil {
			screen.Fini()
			return err
		}
	}

	res, err := tui.Run(ctx, screen, canvas, gen, tui.Options{
		Message:     cfg.Message,
		Infinite:    cfg.Infinite,
		Screensaver: cfg.Screensaver,
		Wait:        cfg.WaitDuration(),
	})
	cfg.Width, cfg.Height = screen.Size()
	screen.Fini()
	if err != nil {
		return err
	}
	return saveTree(cfg, res, nil)
}

func sizeChanged(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("width") || cmd.Flags().Changed("height")
}

func terminalSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// fitCanvas fills a zero width or height from the terminal. When stdout is
// not a terminal the canvas falls back to 80x24.
func fitCanvas(cfg *config.Config, size func() (int, int, error)) {
	if cfg.Width > 0 && cfg.Height > 0 {
		return
	}
	w, h, err := size()
	if err != nil || w <= 0 || h <= 1 {
		w, h = config.DefaultWidth, config.DefaultHeight
	} else {
		h-- // room for the prompt
	}
	if cfg.Width <= 0 {
		cfg.Width = w
	}
	if cfg.Height <= 0 {
		cfg.Height = h
	}
}

// saveTree stores the tree when --save is set. grid may be nil, in which
// case the art is regrown off screen.
func saveTree(cfg *config.Config, res *sim.Result, grid *viz.Grid) error {
	if !save || res == nil {
		return nil
	}
	if grid == nil {
		g, _, err := automation.Grow(context.Background(), cfg, res.Generation, nil)
		if err != nil {
			return err
		}
		grid = g
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(automation.Record(cfg, res), grid.String())
	if err != nil {
		return err
	}
	logger.Info("saved tree", "id", id, "seed", res.Seed, "generation", res.Generation, "branches", res.Progress())
	return nil
}

// regrow draws a saved tree again.
func regrow(ctx context.Context, id string) (*storage.Record, *viz.Grid, error) {
	rec, err := storage.New(dataDir).Load(id)
	if err != nil {
		return nil, nil, err
	}
	cfg := rec.Config
	cfg.Seed = rec.Seed
	grid, _, err := automation.Grow(ctx, &cfg, rec.Generation, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("regrow %s: %w", id, err)
	}
	return rec, grid, nil
}
