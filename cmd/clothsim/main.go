package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/mesh"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	theme      string
	preset     string

	// cloth overrides
	dimension int
	mass      float64
	stiffness float64
	workers   int
	meshOn    bool

	// run overrides
	dt       float64
	duration float64
	scheme   string

	outFile    string
	view       string
	phase      bool
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	logger *log.Logger
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "mass-spring cloth simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "clothsim"})
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			viz.SetTheme(theme)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", env.Theme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addClothFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addClothFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot center height and sag over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation and settling analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&phase, "phase", false, "print the phase portrait of the center height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportOBJCmd := &cobra.Command{
		Use:   "export-obj [run_id]",
		Short: "export the final surface as Wavefront OBJ",
		Args:  cobra.ExactArgs(1),
		RunE:  exportOBJ,
	}
	exportOBJCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the final shape as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&view, "view", "side", "projection: side, front or top")

	compareCmd := &cobra.Command{
		Use:   "compare [scheme1] [scheme2] ...",
		Short: "compare integration schemes on the same cloth",
		RunE:  compareSchemes,
	}
	addClothFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [preset]",
		Short: "write a preset as an editable YAML config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVarP(&outFile, "out", "o", "clothsim.yaml", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput",
		RunE:  benchSteps,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every entry of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one parameter (" + strings.Join(automation.SweepParams(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addClothFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 3, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportJSONCmd, exportOBJCmd, exportSVGCmd,
		compareCmd, presetsCmd, initCmd, benchCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addClothFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "drape", "preset to start from")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&dimension, "dim", config.DefaultDimension, "particles per side")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().Float64Var(&stiffness, "k", config.DefaultK, "spring constant for every family")
	cmd.Flags().IntVar(&workers, "workers", 0, "goroutines for spring forces")
	cmd.Flags().BoolVar(&meshOn, "mesh", false, "render the solid surface")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&scheme, "scheme", config.DefaultScheme, "integration scheme (euler, midpoint)")
}

// resolveConfig layers the preset, the config file and any changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dim") {
		cfg.Dimension = dimension
		cfg.Pinned = nil
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("k") {
		cfg.Springs.Neighbor.K = stiffness
		cfg.Springs.Shear.K = stiffness
		cfg.Springs.Bending.K = stiffness
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("mesh") {
		cfg.MeshRendered = meshOn
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext cancels on Ctrl+C so long runs stop between steps.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running", "preset", preset, "dim", cfg.Dimension, "scheme", cfg.Scheme, "dt", cfg.Dt, "time", cfg.Duration)
	start := time.Now()

	c, result, err := automation.Execute(ctx, cfg, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(automation.Info(preset, cfg, c), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func printMetrics(w io.Writer, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, values[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(preset, cfg)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tDURATION\tDT\tSCHEME\tSAG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.2fs\t%.4fs\t%s\t%.4f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Duration,
			run.Dt,
			run.Scheme,
			run.Metrics["sag"],
		)
	}

	return w.Flush()
}

func loadSeries(runID string) (*storage.RunInfo, *storage.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(series.Times) == 0 {
		return nil, nil, fmt.Errorf("no data to plot")
	}
	return meta, series, nil
}

func centerHeights(series *storage.Series) []float64 {
	ys := make([]float64, len(series.Centers))
	for i, c := range series.Centers {
		ys[i] = c.Y
	}
	return ys
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	plots := []struct {
		caption string
		data    []float64
	}{
		{"center height", centerHeights(series)},
		{"lowest particle (sag)", series.MinY},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	ys := centerHeights(series)
	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	sum := analysis.Summarize(ys)
	fmt.Println("center height:")
	fmt.Printf("  mean: %.6f  std: %.6f\n", sum.Mean, sum.StdDev)
	fmt.Printf("  min: %.6f  max: %.6f  final: %.6f\n", sum.Min, sum.Max, sum.Final)

	sag := analysis.Summarize(series.MinY)
	fmt.Printf("  deepest sag: %.6f\n\n", sag.Min)

	if len(series.Times) > 1 {
		sampleDt := series.Times[1] - series.Times[0]
		freq, err := analysis.DominantFrequency(ys, sampleDt)
		if err != nil {
			logger.Warn("spectrum skipped", "err", err)
		} else {
			ps := analysis.PowerSpectrum(ys)
			if len(ps) > 1 {
				fmt.Println(asciigraph.Plot(ps[1:],
					asciigraph.Height(12),
					asciigraph.Width(80),
					asciigraph.Caption("power spectrum (center height)"),
				))
				fmt.Println()
			}
			fmt.Printf("dominant frequency: %.4f hz\n", freq)
			if freq > 0 {
				fmt.Printf("period: %.3f s\n", 1.0/freq)
			}
		}
	}

	settle := analysis.SettlingTime(series.Times, ys, 0.01)
	if settle < 0 {
		fmt.Println("settling time: not settled")
	} else {
		fmt.Printf("settling time: %.3f s\n", settle)
	}

	if phase {
		fmt.Println()
		portrait := analysis.NewPhasePortrait(series.Times, ys)
		fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 20))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// output returns stdout or the file named by --out.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeOut(write func(io.Writer) error) error {
	w, err := output()
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", outFile)
	}
	return nil
}

// storedResult rebuilds the parts of a run that are kept on disk: the
// per-step series and the final frame.
func storedResult(st *storage.Store, runID string) (*storage.RunInfo, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	final, err := st.LoadFinal(runID)
	if err != nil {
		return nil, nil, err
	}
	s, err := integrators.ParseScheme(meta.Scheme)
	if err != nil {
		return nil, nil, err
	}
	result := &sim.Result{
		Scheme:     s,
		Dt:         meta.Dt,
		StepsTaken: meta.Steps,
		Times:      series.Times,
		Centers:    series.Centers,
		MinY:       series.MinY,
		Frames:     []sim.Frame{{Step: meta.Steps, Time: meta.Duration, Positions: final}},
		Metrics:    meta.Metrics,
	}
	if n := len(series.Times); n > 0 {
		result.Frames[0].Time = series.Times[n-1]
	}
	return meta, result, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := storedResult(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	return writeOut(func(w io.Writer) error {
		return export.WriteJSON(w, *meta, result)
	})
}

func exportOBJ(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(args[0])
	if err != nil {
		return err
	}
	if len(final) != meta.Width*meta.Height {
		return fmt.Errorf("final frame has %d particles, want %d", len(final), meta.Width*meta.Height)
	}

	surface := mesh.New(meta.Width, meta.Height, final)
	return writeOut(func(w io.Writer) error {
		return export.WriteOBJ(w, meta.ID, surface)
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	proj, err := export.ParseProjection(view)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(args[0])
	if err != nil {
		return err
	}
	if len(final) != meta.Width*meta.Height {
		return fmt.Errorf("final frame has %d particles, want %d", len(final), meta.Width*meta.Height)
	}

	var indices []uint32
	var segments []mesh.Segment
	if meta.MeshRendered {
		indices = mesh.Indices(meta.Width, meta.Height)
	} else {
		colors := cloth.DefaultConfig()
		for _, f := range cloth.Families() {
			if meta.SpringCounts[f.String()] == 0 {
				continue
			}
			color := colors.Family(f).Color
			for _, p := range cloth.Pairs(f, meta.Width, meta.Height) {
				segments = append(segments, mesh.Segment{A: final[p.A], B: final[p.B], Color: color})
			}
		}
	}

	svg := export.MeshToSVG(final, indices, segments, proj, 800, 600)
	return writeOut(func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{integrators.Euler.String(), integrators.Midpoint.String()}
	}

	jobs := make([]sim.Job, 0, len(args))
	for _, name := range args {
		s, err := integrators.ParseScheme(name)
		if err != nil {
			return err
		}
		c, err := cloth.New(cfg.ClothConfig())
		if err != nil {
			return err
		}
		jobs = append(jobs, sim.Job{
			Name:  name,
			Cloth: c,
			Config: sim.RunConfig{
				Dt:            cfg.Dt,
				Duration:      cfg.Duration,
				Scheme:        s,
				ValidateState: true,
			},
		})
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing schemes on %s (%dx%d, dt=%g, %gs)\n\n", preset, cfg.Dimension, cfg.Dimension, cfg.Dt, cfg.Duration)

	ens := sim.NewEnsemble(sim.New(sim.WithLogger(logger)))
	ens.NewMetrics = metrics.Default
	start := time.Now()
	results, err := ens.Run(ctx, jobs)
	if err != nil {
		logger.Warn("comparison incomplete", "err", err)
	}
	logger.Debug("compare finished", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tSAG\tMAX_STRAIN\tENERGY_DRIFT\tFINAL_Y")
	for i, r := range results {
		if r == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\n", jobs[i].Name)
			continue
		}
		finalY := 0.0
		if n := len(r.Centers); n > 0 {
			finalY = r.Centers[n-1].Y
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6f\t%.6f\t%.6f\n",
			jobs[i].Name, r.StepsTaken, r.Metrics["sag"], r.Metrics["max_strain"], r.Metrics["energy_drift"], finalY)
	}
	return w.Flush()
}

var presetInfo = map[string]string{
	"drape":     "10x10 reference scene, all springs at k=1.5",
	"stiff":     "12x12, stiff springs, dt=0.05",
	"loose":     "soft springs, no bending",
	"sheet":     "24x24 solid mesh, 4 workers",
	"wireframe": "springs colored by family",
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, presetInfo[name])
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	name := "drape"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if err := config.Save(outFile, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s preset to %s\n", name, outFile)
	return nil
}

func benchSteps(cmd *cobra.Command, args []string) error {
	dims := []int{10, 24, 48}
	schemes := []integrators.Scheme{integrators.Euler, integrators.Midpoint}
	workerCounts := []int{1, 4}
	const steps = 200

	fmt.Println("benchmarking cloth steps")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIM\tSCHEME\tWORKERS\tSPRINGS\tTIME\tSTEPS/SEC")

	for _, dim := range dims {
		for _, s := range schemes {
			for _, n := range workerCounts {
				cfg := cloth.DefaultConfig()
				cfg.Dimension = dim
				cfg.Workers = n
				c, err := cloth.New(cfg)
				if err != nil {
					return err
				}

				start := time.Now()
				for i := 0; i < steps; i++ {
					if err := c.Step(config.DefaultDt, s); err != nil {
						return err
					}
				}
				elapsed := time.Since(start)

				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%v\t%.0f\n",
					dim, s, n, len(c.Springs()), elapsed, float64(steps)/elapsed.Seconds())
			}
		}
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := &automation.Runner{Store: st, Logger: logger}
	outcomes, err := runner.RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRUN ID\tSTEPS\tSAG\tMAX_STRAIN")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.6f\t%.6f\n",
			o.Name, o.RunID, o.Result.StepsTaken, o.Result.Metrics["sag"], o.Result.Metrics["max_strain"])
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := &automation.Runner{Logger: logger}
	results, err := runner.RunSweep(ctx, &automation.ParameterSweep{
		Base:  cfg,
		Param: args[0],
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSAG\tMAX_STRAIN\tENERGY_DRIFT\tSETTLING\n", strings.ToUpper(args[0]))
	sags := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Diverged {
			fmt.Fprintf(w, "%g\tdiverged\t-\t-\t-\n", r.Value)
			continue
		}
		settle := "-"
		if r.Settling >= 0 {
			settle = fmt.Sprintf("%.3f", r.Settling)
		}
		fmt.Fprintf(w, "%g\t%.6f\t%.6f\t%.6f\t%s\n", r.Value, r.Sag, r.MaxStrain, r.EnergyDrift, settle)
		sags = append(sags, r.Sag)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(sags) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(sags,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("sag vs "+args[0]),
		))
	}
	return nil
}
