package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wheely/internal/analysis"
	"github.com/san-kum/wheely/internal/config"
	"github.com/san-kum/wheely/internal/export"
	"github.com/san-kum/wheely/internal/storage"
	"github.com/san-kum/wheely/internal/viz"
	"github.com/san-kum/wheely/internal/wheel"
)

var (
	dataDir  string
	logLevel string

	nCups         int
	radius        float64
	gravity       float64
	damping       float64
	leakRate      float64
	inflowRate    float64
	inertia       float64
	omega0        float64
	tStart        float64
	tEnd          float64
	nFrames       int
	stepsPerFrame int

	configFile string
	preset     string

	cupIndex  int
	svgFrame  int
	svgSize   int
	svgOutput string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wheely",
		Short: "lorenz water wheel simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				logrus.Fatalf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wheely", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addWheelFlags(runCmd)

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check a configuration without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := wheel.Validate(cfg.Wheel()); err != nil {
				return err
			}
			fmt.Println("configuration ok")
			return nil
		},
	}
	addWheelFlags(validateCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot theta and a cup's mass over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&cupIndex, "cup", 0, "cup index for the mass plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a cup's mass series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&cupIndex, "cup", 0, "cup index to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one frame of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgFrame, "frame", -1, "frame index (default: last)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "image size in pixels")
	exportSVGCmd.Flags().StringVar(&svgOutput, "out", "", "output file (default: stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the wheel live in the terminal",
		RunE:  runLive,
	}
	addWheelFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, validateCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWheelFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nCups, "cups", config.DefaultNCups, "number of cups")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "wheel radius")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational acceleration")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "rotational damping")
	cmd.Flags().Float64Var(&leakRate, "leak", config.DefaultLeakRate, "cup leak rate")
	cmd.Flags().Float64Var(&inflowRate, "inflow", config.DefaultInflowRate, "inflow rate")
	cmd.Flags().Float64Var(&inertia, "inertia", config.DefaultInertia, "rotational inertia")
	cmd.Flags().Float64Var(&omega0, "omega0", config.DefaultOmega0, "initial angular velocity")
	cmd.Flags().Float64Var(&tStart, "t-start", 0, "start time")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time")
	cmd.Flags().IntVar(&nFrames, "frames", config.DefaultNFrames, "output frames")
	cmd.Flags().IntVar(&stepsPerFrame, "steps", config.DefaultStepsPerFrame, "integration sub-steps per frame")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration name")
}

// resolveConfig layers preset, config file, and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cups") {
		cfg.NCups = nCups
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("g") {
		cfg.G = gravity
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("leak") {
		cfg.LeakRate = leakRate
	}
	if flags.Changed("inflow") {
		cfg.InflowRate = inflowRate
	}
	if flags.Changed("inertia") {
		cfg.Inertia = inertia
	}
	if flags.Changed("omega0") {
		cfg.Omega0 = omega0
	}
	if flags.Changed("t-start") {
		cfg.TStart = tStart
	}
	if flags.Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if flags.Changed("frames") {
		cfg.NFrames = nFrames
	}
	if flags.Changed("steps") {
		cfg.StepsPerFrame = stepsPerFrame
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	wcfg := cfg.Wheel()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logrus.Infof("simulating %d cups over [%g, %g]", wcfg.NCups, wcfg.TStart, wcfg.TEnd)
	start := time.Now()

	result, err := wheel.Simulate(wcfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(wcfg, result)
	if err != nil {
		return err
	}
	logrus.Infof("saved run %s", runID)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.NFrames)
	fmt.Printf("final theta: %.4f rad\n", result.Theta[result.NFrames-1])

	total := 0.0
	for cup := 0; cup < result.NCups; cup++ {
		total += result.Mass(cup, result.NFrames-1)
	}
	fmt.Printf("final water: %.4f\n", total)

	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tCUPS\tFRAMES\tINFLOW\tLEAK\tDAMPING")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.NCups,
			run.Config.NFrames,
			run.Config.InflowRate,
			run.Config.LeakRate,
			run.Config.Damping,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if cupIndex < 0 || cupIndex >= result.NCups {
		return fmt.Errorf("cup index %d out of range (run has %d cups)", cupIndex, result.NCups)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", result.NFrames)

	graph := asciigraph.Plot(result.Theta,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("theta (rad)"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(result.CupSeries(cupIndex),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cup %d mass", cupIndex)),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if cupIndex < 0 || cupIndex >= result.NCups {
		return fmt.Errorf("cup index %d out of range (run has %d cups)", cupIndex, result.NCups)
	}

	series := result.CupSeries(cupIndex)
	duration := meta.Config.TEnd - meta.Config.TStart

	fmt.Printf("frequency analysis: %s (cup %d)\n\n", meta.ID, cupIndex)

	ps := analysis.PowerSpectrum(series)
	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(series, duration)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta.ID, meta.Config, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	frame := svgFrame
	if frame < 0 {
		frame = result.NFrames - 1
	}
	svg := export.WheelSVG(result, frame, svgSize)
	if svg == "" {
		return fmt.Errorf("frame %d out of range (run has %d frames)", frame, result.NFrames)
	}

	if svgOutput == "" {
		fmt.Print(svg)
		return nil
	}
	return os.WriteFile(svgOutput, []byte(svg), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Wheel())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
