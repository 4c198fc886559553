package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bonsai/internal/automation"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/export"
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
	"github.com/san-kum/bonsai/internal/viz"
	"github.com/spf13/cobra"
)

var (
	plain      bool
	outFile    string
	numRuns    int
	sweepParam string
	sweepMin   int
	sweepMax   int
	sweepTrees int
)

func liveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "watch trees grow with a stats panel",
		RunE:  runLive,
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("live") {
		cfg.Live = true
	}
	rec, err := loadRecord(cfg, sizeChanged(cmd))
	if err != nil {
		return err
	}
	// the stats panel sits beside the tree, so no terminal fitting here
	if cfg.Width == 0 {
		cfg.Width = config.DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = config.DefaultHeight
	}

	grid, region := viz.NewScene(cfg.Width, cfg.Height, cfg.Base)
	gen, err := sim.New(region, sim.Config{Params: cfg.Params(), Seed: cfg.Seed}, sim.WithLogger(quietLogger()))
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		gen.AddMetric(m)
	}
	if rec != nil {
		if err := gen.FastForward(cmd.Context(), rec.Generation, rec.Branches); err != nil {
			return err
		}
	}

	m := viz.NewLive(gen, grid, viz.LiveOptions{
		Base:     cfg.Base,
		Message:  cfg.Message,
		Infinite: cfg.Infinite,
		Wait:     cfg.WaitDuration(),
		Theme:    viz.CurrentTheme,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	res, err := m.Wait()
	if err != nil {
		return err
	}
	return saveTree(cfg, res, nil)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved trees",
		RunE:  listTrees,
	}
}

func listTrees(cmd *cobra.Command, args []string) error {
	recs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no saved trees")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tGEN\tBRANCHES\tLIFE\tMULT\tLEAVES")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Seed,
			r.Generation,
			r.Branches,
			r.Config.Life,
			r.Config.Multiplier,
			strings.Join(r.Config.Leaves, ","),
		)
	}
	return w.Flush()
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [tree_id]",
		Short: "print a saved tree",
		Args:  cobra.ExactArgs(1),
		RunE:  showTree,
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the saved text without regrowing")
	return cmd
}

func showTree(cmd *cobra.Command, args []string) error {
	if plain {
		art, err := storage.New(dataDir).LoadArt(args[0])
		if err != nil {
			return err
		}
		fmt.Print(art)
		return nil
	}

	rec, grid, err := regrow(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	th := viz.GetTheme(rec.Config.Theme)
	if cmd.Flags().Changed("theme") {
		th = viz.GetTheme(theme)
	}
	fmt.Println(viz.Compose(grid, rec.Config.Message, th))
	fmt.Printf("seed %d, generation %d, %d branches\n", rec.Seed, rec.Generation, rec.Counters.Branches)
	return nil
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [tree_id]",
		Short: "export tree metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := storage.New(dataDir).Load(args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(os.Stdout, rec)
		},
	}
}

func exportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [tree_id]",
		Short: "render a saved tree as svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, grid, err := regrow(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			th := viz.GetTheme(rec.Config.Theme)
			if cmd.Flags().Changed("theme") {
				th = viz.GetTheme(theme)
			}
			svg := export.GridToSVG(grid, th)
			if outFile == "" {
				fmt.Println(svg)
				return nil
			}
			if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
				return err
			}
			logger.Info("wrote svg", "path", outFile, "id", rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "grow many trees in parallel and summarize them",
		RunE:  runStats,
	}
	cmd.Flags().IntVar(&numRuns, "runs", 20, "number of trees")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("%w: runs %d", config.ErrInvalid, numRuns)
	}
	w, h := config.DefaultWidth, config.DefaultHeight
	if cfg.Width > 0 && cfg.Height > 0 {
		w, h = cfg.Width, cfg.Height
	}

	ens := sim.NewEnsemble(sim.Config{Params: cfg.Params(), Seed: cfg.Seed}, numRuns, cfg.Seed, func() growth.Canvas {
		_, region := viz.NewScene(w, h, cfg.Base)
		return region
	})
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}

	series := map[string][]float64{}
	branches := make([]float64, len(results))
	for i, r := range results {
		branches[i] = float64(r.Counters.Branches)
		series["branches"] = append(series["branches"], branches[i])
		series["shoots"] = append(series["shoots"], float64(r.Counters.Shoots))
		for k, v := range r.Metrics {
			series[k] = append(series[k], v)
		}
	}

	fmt.Printf("%d trees from seed %d (life %d, multiplier %d)\n\n", len(results), cfg.Seed, cfg.Life, cfg.Multiplier)
	if len(branches) > 1 {
		fmt.Println(asciigraph.Plot(branches,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("branches per seed"),
		))
		fmt.Println()
	}

	names := make([]string, 0, len(series))
	for k := range series {
		names = append(names, k)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMEAN\tMIN\tMAX")
	for _, k := range names {
		mean, lo, hi := summarize(series[k])
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.0f\n", k, mean, lo, hi)
	}
	return tw.Flush()
}

func summarize(xs []float64) (mean, lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		mean += x
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return mean / float64(len(xs)), lo, hi
}

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "average tree size over a range of life or multiplier values",
		RunE:  runSweep,
	}
	cmd.Flags().StringVar(&sweepParam, "param", "multiplier", "parameter to sweep: life or multiplier")
	cmd.Flags().IntVar(&sweepMin, "min", 1, "first value")
	cmd.Flags().IntVar(&sweepMax, "max", 10, "last value")
	cmd.Flags().IntVar(&sweepTrees, "trees", 10, "trees per value")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:  cfg,
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Trees: sweepTrees,
	}, logger)
	if err != nil {
		return err
	}

	avg := make([]float64, len(results))
	for i, r := range results {
		avg[i] = r.Branches
	}
	if len(avg) > 1 {
		fmt.Println(asciigraph.Plot(avg,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("mean branches by %s (%d..%d)", sweepParam, sweepMin, sweepMax)),
		))
		fmt.Println()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tBRANCHES\tSHOOTS\tHEIGHT\tSPREAD\tFOLIAGE\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			r.Value, r.Branches, r.Shoots,
			r.Metrics["height"], r.Metrics["spread"], r.Metrics["foliage"])
	}
	return tw.Flush()
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLIFE\tMULT\tLEAVES\tBASE\tTHEME")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
					name, p.Life, p.Multiplier, strings.Join(p.Leaves, ","), p.Base, p.Theme)
			}
			return tw.Flush()
		},
	}
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "grow and save the trees described in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			recs, err := automation.RunScenario(cmd.Context(), sc, st, logger)
			if err != nil {
				return err
			}
			for _, r := range recs {
				fmt.Printf("%s\tseed %d\tgeneration %d\t%d branches\n", r.ID, r.Seed, r.Generation, r.Counters.Branches)
			}
			return nil
		},
	}
}
