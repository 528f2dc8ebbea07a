package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinesim/internal/analysis"
	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/export"
	"github.com/san-kum/kinesim/internal/optim"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/sim"
	"github.com/san-kum/kinesim/internal/storage"
	"github.com/san-kum/kinesim/internal/viz"
)

var (
	dataDir  string
	duration float64
	fps      float64
	seed     int64
	source   string
	scenario string
	// respawn point, 0 for the scene's spawn height
	respawnHeight float64
	poolSize      int
	verbose       bool
	// Config file
	configFile string
	// Preset name
	preset string
	// Phase plot
	phaseMode   string
	phaseHeight float64
	// Sweeps
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	benchRuns  int
	// Tuning
	tuneParams []string
	tuneMetric string
	tuneTarget float64
	tuneMax    bool
	// SVG output
	svgFile string
	svgMode string
)

// main is the entry point for the kinesim CLI; it launches the interactive
// scene picker when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "kinesim",
		Short: "kinematic capsule and sphere playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a headless simulation and store its trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	simFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "drive the player from the keyboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	simFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "vertical phase, ground track or crossing plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&phaseMode, "mode", "vertical", "vertical, track or crossings")
	phaseCmd.Flags().Float64Var(&phaseHeight, "height", 1, "crossing height (crossings mode)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "hops, airtime and bounce frequency",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark frames per second, sequential and concurrent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	simFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "concurrent runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "run one simulation per value of a parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	simFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "jump_speed", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 10, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 20, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "repeat a seeded run with consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	simFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 8, "number of trials")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a phase, track or crossing plot as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgMode, "mode", "track", "vertical, track or crossings")
	exportSVGCmd.Flags().Float64Var(&phaseHeight, "height", 1, "crossing height (crossings mode)")

	tuneCmd := &cobra.Command{
		Use:   "tune [scene]",
		Short: "grid search parameters against a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	simFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", []string{"jump_speed:10:20:5"}, "name:min:max:steps, repeatable")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "airtime", "metric to optimize")
	tuneCmd.Flags().Float64Var(&tuneTarget, "target", 0, "aim for this metric value instead of minimizing")
	tuneCmd.Flags().BoolVar(&tuneMax, "maximize", false, "maximize the metric")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes and control sources",
		Run: func(cmd *cobra.Command, args []string) {
			reg := experiment.NewRegistry()
			fmt.Println("scenes:")
			for _, name := range reg.ListScenes() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("sources:")
			for _, name := range reg.ListSources() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("parameters:")
			for _, name := range config.Params() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [scene|file]",
		Short: "show the objects, bounds and targets of a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectScene,
	}
	inspectCmd.Flags().StringVar(&svgFile, "svg", "", "also write the map to this SVG file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, benchCmd, sweepCmd, monteCarloCmd, tuneCmd, presetsCmd, scenesCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func simFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "control source")
	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario file (source=scenario)")
	cmd.Flags().Float64Var(&respawnHeight, "respawn-height", 0, "respawn height, 0 for the scene spawn")
	cmd.Flags().IntVar(&poolSize, "pool", 25, "number of pooled spheres")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log jumps, throws and respawns")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	sceneName := config.DefaultScene
	if len(args) > 0 {
		sceneName = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Scene = sceneName
	cfg.Seed = seed

	if preset != "" {
		p := config.GetPreset(sceneName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Scene = sceneName
		}
	}

	flags := cmd.Flags()
	if flags.Changed("time") || (preset == "" && configFile == "") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") || (preset == "" && configFile == "") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("source") {
		cfg.Source = source
	}
	if flags.Changed("scenario") {
		cfg.Scenario = scenario
		if !flags.Changed("source") {
			cfg.Source = "scenario"
		}
	}
	if flags.Changed("respawn-height") {
		cfg.Respawn.Height = respawnHeight
	}
	if flags.Changed("pool") {
		cfg.Pool.Size = poolSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simLogger() *log.Logger {
	if !verbose {
		return nil
	}
	return log.New(os.Stderr, "kinesim: ", 0)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry(), simLogger())
	if err != nil {
		return err
	}

	fmt.Printf("running %s with %s...\n", cfg.Scene, cfg.Source)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Scene:    exp.Scene().Name,
		Source:   cfg.Source,
		Seed:     cfg.Seed,
		FPS:      cfg.FPS,
		Duration: cfg.Duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  respawns: %d  throws: %d\n", result.Frames, result.Respawns, result.Throws)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := scene.Open(cfg.Scene)
	if err != nil {
		return err
	}
	m, err := viz.New(cfg, sc)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tSOURCE\tTIME\tDURATION\tFRAMES\tRESPAWNS\tTHROWS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%d\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Frames,
			run.Respawns,
			run.Throws,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(s sim.Sample) float64
	}{
		{"feet height", func(s sim.Sample) float64 { return s.Feet.Y() }},
		{"horizontal speed", func(s sim.Sample) float64 { return math.Hypot(s.Velocity.X(), s.Velocity.Z()) }},
		{"vertical velocity", func(s sim.Sample) float64 { return s.Velocity.Y() }},
		{"mean sphere speed", func(s sim.Sample) float64 { return s.SphereSpeed }},
	}

	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ser.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait, axes, err := portraitFor(samples, phaseMode)
	if err != nil {
		return err
	}

	fmt.Printf("phase plot: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("%s\n\n", axes)

	if len(portrait.Points) == 0 {
		fmt.Println("no points")
		return nil
	}
	fmt.Print(portrait.ToASCII(70, 20))
	fmt.Printf("\nLegend: . = early, o = middle, • = late\n")
	return nil
}

func portraitFor(samples []sim.Sample, mode string) (*analysis.Portrait, string, error) {
	switch mode {
	case "vertical":
		return analysis.VerticalPortrait(samples), "x: feet height, y: vertical velocity", nil
	case "track":
		return analysis.TrackPortrait(samples), "x: east, y: north", nil
	case "crossings":
		return analysis.Crossings(samples, phaseHeight), fmt.Sprintf("ground position rising through y=%.2f", phaseHeight), nil
	}
	return nil, "", fmt.Errorf("unknown mode: %s (vertical, track, crossings)", mode)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	portrait, _, err := portraitFor(samples, svgMode)
	if err != nil {
		return err
	}
	svg := export.PortraitToSVG(portrait, 800, 600, "#00ffff", svgMode == "crossings")
	if svg == "" {
		return fmt.Errorf("not enough points to plot")
	}
	fmt.Println(svg)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	sum := analysis.Summarize(samples)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "duration\t%.2fs\n", sum.Duration)
	fmt.Fprintf(w, "distance\t%.2fm\n", sum.Distance)
	fmt.Fprintf(w, "height\t%.2f .. %.2f\n", sum.MinHeight, sum.MaxHeight)
	fmt.Fprintf(w, "hops\t%d (%d landed)\n", sum.Hops, sum.Landings)
	fmt.Fprintf(w, "airtime\t%.2fs (longest %.2fs)\n", sum.Airtime, sum.LongestHop)
	fmt.Fprintf(w, "respawns\t%d\n", sum.Respawns)
	fmt.Fprintf(w, "throws\t%d\n", sum.Throws)
	if err := w.Flush(); err != nil {
		return err
	}

	heights := analysis.Heights(samples)
	ps := analysis.PowerSpectrum(heights)
	if len(ps) > 8 {
		graph := asciigraph.Plot(ps[1:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (feet height)"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	freq := analysis.DominantFrequency(heights, meta.FPS)
	fmt.Printf("\ndominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	sc, err := reg.GetScene(cfg.Scene)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s (%d triangles, %.0fs at %.0f fps)\n\n", sc.Name, len(sc.Triangles), cfg.Duration, cfg.FPS)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tRUNS\tFRAMES\tTIME\tFRAMES/SEC")

	for _, n := range []int{1, benchRuns} {
		jobs := make([]sim.Job, n)
		for i := range jobs {
			exp, err := experiment.NewWithScene(cfg, reg, sc, nil)
			if err != nil {
				return err
			}
			jobs[i] = exp.Job(fmt.Sprintf("bench%d", i))
		}

		start := time.Now()
		results, err := sim.RunBatch(context.Background(), jobs)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		frames := 0
		for _, r := range results {
			frames += r.Frames
		}
		mode := "sequential"
		if n > 1 {
			mode = "concurrent"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", mode, n, frames, elapsed, float64(frames)/elapsed.Seconds())
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	sweep := experiment.ParameterSweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, err := experiment.RunSweep(context.Background(), cfg, experiment.NewRegistry(), sweep)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	if len(results) > 0 {
		for name := range results[0].Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	fmt.Printf("sweep %s on %s\n\n", sweepParam, cfg.Scene)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRESPAWNS\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		row := []string{fmt.Sprintf("%.4g", r.ParamValue), fmt.Sprintf("%d", r.Respawns)}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[name]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("source") && cfg.Source == config.DefaultSource {
		cfg.Source = "wander"
	}

	results, err := experiment.RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry(),
		experiment.MonteCarloConfig{NumTrials: trials, Seed: cfg.Seed})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tRESPAWNS\tMAX SPEED\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%t\n", r.TrialID, r.Seed, r.Respawns, r.MaxSpeed, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := experiment.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}

func parseSweep(arg string) (experiment.ParameterSweep, error) {
	var sw experiment.ParameterSweep
	parts := strings.Split(arg, ":")
	if len(parts) != 4 {
		return sw, fmt.Errorf("bad --param %q, want name:min:max:steps", arg)
	}
	sw.Param = parts[0]
	if _, err := fmt.Sscanf(parts[1]+" "+parts[2]+" "+parts[3], "%g %g %d", &sw.Min, &sw.Max, &sw.Steps); err != nil {
		return sw, fmt.Errorf("bad --param %q: %w", arg, err)
	}
	return sw, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	sweeps := make([]experiment.ParameterSweep, len(tuneParams))
	for i, arg := range tuneParams {
		if sweeps[i], err = parseSweep(arg); err != nil {
			return err
		}
	}

	goal, goalName := optim.Goal(optim.Minimize), "minimize"
	switch {
	case tuneMax:
		goal, goalName = optim.Maximize, "maximize"
	case cmd.Flags().Changed("target"):
		goal, goalName = optim.Target(tuneTarget), fmt.Sprintf("target %g", tuneTarget)
	}

	gs := optim.NewGridSearch(sweeps...)
	fmt.Printf("tuning %s (%s) over %d points on %s\n\n", tuneMetric, goalName, len(gs.Points()), cfg.Scene)

	results, best, err := gs.Search(context.Background(), cfg, experiment.NewRegistry(), tuneMetric, goal)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(sweeps)+1)
	for _, sw := range sweeps {
		header = append(header, strings.ToUpper(sw.Param))
	}
	fmt.Fprintln(w, strings.Join(append(header, strings.ToUpper(tuneMetric), ""), "\t"))
	for i, r := range results {
		row := make([]string, 0, len(sweeps)+2)
		for _, sw := range sweeps {
			row = append(row, fmt.Sprintf("%.4g", r.Params[sw.Param]))
		}
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintln(w, strings.Join(append(row, fmt.Sprintf("%.4f", r.Value), mark), "\t"))
	}
	return w.Flush()
}

func inspectScene(cmd *cobra.Command, args []string) error {
	sc, err := scene.Open(args[0])
	if err != nil {
		return err
	}

	b := sc.Bounds()
	fmt.Printf("scene: %s\n", sc.Name)
	fmt.Printf("triangles: %d\n", len(sc.Triangles))
	fmt.Printf("bounds: (%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)\n", b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("spawn height: %.2f\n\n", sc.Spawn)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tOBJECT\tTRIANGLES\tTARGET")
	for i, obj := range sc.Objects {
		tris, err := obj.Triangles()
		if err != nil {
			return err
		}
		name := obj.Name
		if name == "" {
			name = "-"
		}
		target, _ := sc.Target(i)
		fmt.Fprintf(w, "%d\t%s\t%d\t(%.2f, %.2f, %.2f)\n", i, name, len(tris), target[0], target[1], target[2])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	snap := viz.Snapshot(sc, 60, 24)
	fmt.Println()
	fmt.Print(snap.String())

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.CanvasToSVG(snap, 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}
