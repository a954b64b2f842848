package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chargesim/internal/automation"
	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/export"
	"github.com/san-kum/chargesim/internal/gui"
	"github.com/san-kum/chargesim/internal/metrics"
	"github.com/san-kum/chargesim/internal/sim"
	"github.com/san-kum/chargesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	k          float64
	friction   float64
	pairing    string
	frames     int
	verbose    bool

	// snapshot
	outFile       string
	svgWidth      int
	svgHeight     int
	showField     bool
	showPotential bool
	trailEvery    int

	// run
	speedLimit float64
	scriptFile string

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// main registers the commands and runs the terminal UI when no subcommand
// is given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "chargesim",
		Short:         "interactive 2D charged particle sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a built-in scenario")
	pf.Float64Var(&k, "k", config.DefaultConfig().K, "coupling constant (negative attracts unlike charges)")
	pf.Float64Var(&friction, "friction", config.DefaultConfig().Friction, "velocity multiplier per frame")
	pf.StringVar(&pairing, "pairing", config.DefaultConfig().Pairing, "pair iteration scheme (legacy, triangular)")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate in headless commands")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the sandbox in the terminal",
		RunE:  runTUI,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the sandbox in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sess, err := sim.NewSession(cfg)
			if err != nil {
				return err
			}
			return gui.Run(sess, cfg.Window)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step a scenario headlessly and report metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&speedLimit, "speed-limit", 50, "speed above which a particle counts as unstable")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "replay scripted input events (yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "rerun a scenario across a range of one coefficient",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "k", "coefficient to sweep (k, friction, min_distance)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -20, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 20, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "print the sampled field of a scenario",
		RunE:  dumpField,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a scenario to SVG after --frames frames",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", 0, "image width (default window width)")
	snapshotCmd.Flags().IntVar(&svgHeight, "height", 0, "image height (default window height)")
	snapshotCmd.Flags().BoolVar(&showField, "field", true, "draw field segments")
	snapshotCmd.Flags().BoolVar(&showPotential, "potential", false, "draw the potential heatmap")
	snapshotCmd.Flags().IntVar(&trailEvery, "trails", 0, "record a trail point every n frames (0 disables)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s %d particles\n", name, len(p.Particles))
			}
		},
	}

	rootCmd.AddCommand(tuiCmd, windowCmd, runCmd, sweepCmd, fieldCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the scenario: a config file wins over a preset, and
// explicitly set flags win over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	source := "defaults"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		source = "preset " + preset
	}

	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		source = configFile
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.K = k
	}
	if flags.Changed("friction") {
		cfg.Friction = friction
	}
	if flags.Changed("pairing") {
		cfg.Pairing = pairing
	}
	if flags.Changed("frames") || cfg.Frames <= 0 {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "source", source, "k", cfg.K, "friction", cfg.Friction,
		"pairing", cfg.Pairing, "particles", len(cfg.Particles))
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := sim.NewSession(cfg)
	if err != nil {
		return err
	}
	return viz.Run(sess)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := sim.NewSession(cfg)
	if err != nil {
		return err
	}

	s := sim.New(sess)
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewMaxSpeed())
	s.AddMetric(metrics.NewMaxMomentum())
	s.AddMetric(metrics.NewStability(speedLimit))

	var player *automation.Player
	if scriptFile != "" {
		scenario, err := automation.LoadScenario(scriptFile)
		if err != nil {
			return fmt.Errorf("failed to load script: %w", err)
		}
		player = automation.NewPlayer(scenario)
		s.AddObserver(player)
		logger.Debug("script loaded", "name", scenario.Name, "events", len(scenario.Events))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d frames with %d particles...\n", cfg.Frames, sess.System.Len())
	start := time.Now()
	result, err := s.Run(ctx, cfg.Frames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		logger.Warn("frame error", "err", e)
	}
	if player != nil {
		for _, e := range player.Errors {
			fmt.Fprintf(os.Stderr, "script: %v\n", e)
		}
		fmt.Printf("script events applied: %d\n", player.Applied)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("protons: %d  electrons: %d\n", result.Protons, result.Electrons)
	if len(result.Errors) > 0 {
		fmt.Printf("frames with invalid state: %d (first: %v)\n", len(result.Errors), result.Errors[0])
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	w.Flush()

	if len(result.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energy, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("Total energy")))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    cfg.Frames,
	}
	results, err := automation.RunSweep(ctx, cfg, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\tmin E\tmax E\tinvalid\tprotons\telectrons\t\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.4g\t%.4g\t%d\t%d\t%d\t\n", r.ParamValue, r.MinEnergy, r.MaxEnergy, r.InvalidFrames, r.Protons, r.Electrons)
	}
	return w.Flush()
}

func dumpField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.NewSystem()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "x\ty\tdx\tdy\t|E|\tpotential\t")
	samples := sys.SampleField(cfg.GetGrid())
	for _, s := range samples {
		if !s.Valid {
			fmt.Fprintf(w, "%.1f\t%.1f\t-\t-\t%g\t%.4g\t\n", s.X, s.Y, s.Magnitude, sys.Potential(s.X, s.Y))
			continue
		}
		fmt.Fprintf(w, "%.1f\t%.1f\t%.3f\t%.3f\t%.4g\t%.4g\t\n", s.X, s.Y, s.DX, s.DY, s.Magnitude, sys.Potential(s.X, s.Y))
	}
	return w.Flush()
}

// trailObserver feeds a trail recorder from the scheduler loop.
type trailObserver struct{ rec *export.Recorder }

func (t trailObserver) OnFrame(s *sim.Session) { t.rec.Record(s.System, s.Frame) }

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := sim.NewSession(cfg)
	if err != nil {
		return err
	}

	s := sim.New(sess)
	var rec *export.Recorder
	if trailEvery > 0 {
		rec = export.NewRecorder(trailEvery)
		s.AddObserver(trailObserver{rec})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := s.Run(ctx, cfg.Frames); err != nil {
		return err
	}

	opts := export.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Field:     showField,
		Potential: showPotential,
	}
	if svgWidth > 0 {
		opts.Width = svgWidth
	}
	if svgHeight > 0 {
		opts.Height = svgHeight
	}
	if rec != nil {
		rec.Record(sess.System, 0)
		opts.Trails = rec.Trails
	}

	svg := export.FrameToSVG(sess.System, sess.Grid, sess.Bounds, opts)
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", outFile, "frame", sess.Frame)
	fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	return nil
}
