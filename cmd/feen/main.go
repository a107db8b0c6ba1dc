package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ambientai/feen-go/internal/ailee"
	"github.com/ambientai/feen-go/internal/config"
	"github.com/ambientai/feen-go/internal/node"
	"github.com/ambientai/feen-go/internal/resonator"
	"github.com/ambientai/feen-go/internal/trace"
	"github.com/ambientai/feen-go/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	dt        float64
	duration  float64
	freq      float64
	qFactor   float64
	beta      float64
	amplitude float64
	driveFreq float64
	drivePhi  float64
	initX     float64
	initV     float64

	plot    bool
	jsonOut string
	csvOut  string
	save    bool

	alpha float64
	v0    float64
	isp   float64
	eta   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "feen",
		Short: "FEEN resonator physics and AILEE delta-v metrics",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".feen", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drive a resonator and report its final state and delta-v",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot displacement and energy")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "export trace as JSON to file")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "export trace as CSV to file")
	runCmd.Flags().BoolVar(&save, "save", false, "persist the run under the data directory")

	deltavCmd := &cobra.Command{
		Use:   "deltav [samples-file]",
		Short: "compute the AILEE delta-v metric from a telemetry samples file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeltaV,
	}
	deltavCmd.Flags().Float64Var(&alpha, "alpha", 0.1, "resonance sensitivity")
	deltavCmd.Flags().Float64Var(&v0, "v0", 1.0, "reference velocity")
	deltavCmd.Flags().Float64Var(&isp, "isp", 1.0, "specific efficiency factor")
	deltavCmd.Flags().Float64Var(&eta, "eta", 1.0, "system efficiency coefficient")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of a driven resonator",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(runCmd, deltavCmd, liveCmd, presetsCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "run config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&freq, "freq", config.DefaultFrequencyHz, "natural frequency (Hz)")
	cmd.Flags().Float64Var(&qFactor, "q", config.DefaultQFactor, "quality factor")
	cmd.Flags().Float64Var(&beta, "beta", 0, "cubic nonlinearity coefficient")
	cmd.Flags().Float64Var(&amplitude, "amp", 1.0, "drive amplitude")
	cmd.Flags().Float64Var(&driveFreq, "drive-freq", config.DefaultFrequencyHz, "drive frequency (Hz)")
	cmd.Flags().Float64Var(&drivePhi, "drive-phase", 0, "drive phase offset")
	cmd.Flags().Float64Var(&initX, "x", 1.0, "initial displacement")
	cmd.Flags().Float64Var(&initV, "v", 0, "initial velocity")
}

func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Base(configFile), cfg.Validate()
	}
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, "", fmt.Errorf("unknown preset %q", preset)
		}
		// Copy so later mutation can never reach the shared preset map.
		cfg := *p
		return &cfg, preset, cfg.Validate()
	}

	cfg := &config.Config{
		Resonator:  resonator.Config{FrequencyHz: freq, QFactor: qFactor, Beta: beta},
		Excitation: resonator.Excitation{Amplitude: amplitude, FrequencyHz: driveFreq, Phase: drivePhi},
		InitState:  config.InitStateConfig{X: initX, V: initV},
		Dt:         dt,
		Duration:   duration,
		Metric:     ailee.DefaultParams(),
	}
	return cfg, "custom", cfg.Validate()
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, label, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Sync()

	n := node.New(node.NewLocal(), cfg.Resonator,
		node.WithMetricParams(cfg.Metric),
		node.WithLogger(logger),
	)
	n.SetState(cfg.GetInitState())

	steps := cfg.Steps()
	rec := trace.NewRecorder(steps)
	rec.Record(0, n.State())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for i := 0; i < steps; i++ {
		if err := n.Tick(ctx, cfg.Excitation, cfg.Dt); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		rec.Record(float64(i+1)*cfg.Dt, n.State())
	}

	final := n.State()
	fmt.Printf("run: %s  (%d steps, dt=%g)\n", label, steps, cfg.Dt)
	fmt.Printf("final:  x=%+.6f  v=%+.6f  energy=%.6f  phase=%.4f\n",
		final.X, final.V, final.Energy, final.Phase)
	fmt.Printf("delta-v: %.6f\n", n.DeltaV())

	if plot {
		fmt.Println(viz.Plot(viz.Downsample(rec.Displacements(), 120), "Displacement", 70, 10))
		fmt.Println(viz.Plot(viz.Downsample(rec.Energies(), 120), "Energy", 70, 6))
	}

	meta := trace.RunMetadata{
		Label:      label,
		Dt:         cfg.Dt,
		Resonator:  cfg.Resonator,
		Excitation: cfg.Excitation,
		DeltaV:     n.DeltaV(),
	}
	if jsonOut != "" {
		if err := trace.ExportJSON(jsonOut, meta, rec); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", jsonOut)
	}
	if csvOut != "" {
		if err := trace.ExportCSV(csvOut, rec); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", csvOut)
	}
	if save {
		store := trace.NewStore(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(meta, rec)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", id)
	}
	return nil
}

// samplesFile is the on-disk telemetry layout accepted by `feen deltav`:
// a list of samples plus optional parameter overrides.
type samplesFile struct {
	Samples []ailee.Sample `yaml:"samples" json:"samples"`
	Params  *ailee.Params  `yaml:"params" json:"params"`
}

func runDeltaV(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var file samplesFile
	if filepath.Ext(args[0]) == ".json" {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	p := ailee.Params{Isp: isp, Eta: eta, Alpha: alpha, V0: v0}
	if file.Params != nil {
		p = *file.Params
	}

	result, err := ailee.ComputeDeltaV(file.Samples, p.Alpha, p.V0, p.Isp, p.Eta)
	if err != nil {
		return err
	}
	fmt.Printf("samples: %d\ndelta-v: %.9f\n", len(file.Samples), result)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Resonator, cfg.Excitation, cfg.GetInitState(), cfg.Metric, cfg.Dt)
	_, err = tea.NewProgram(m).Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFREQ\tQ\tBETA\tDRIVE\tDT\tDURATION")
	for _, name := range config.PresetNames() {
		c := config.Presets[name]
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g @ %g Hz\t%g\t%g\n",
			name, c.Resonator.FrequencyHz, c.Resonator.QFactor, c.Resonator.Beta,
			c.Excitation.Amplitude, c.Excitation.FrequencyHz, c.Dt, c.Duration)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := trace.NewStore(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tSTEPS\tDELTA-V")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.6f\n",
			r.ID, r.Label, r.Timestamp.Format("2006-01-02 15:04:05"), r.Steps, r.DeltaV)
	}
	return w.Flush()
}
