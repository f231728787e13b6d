package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/metrics"
	"github.com/san-kum/gassim/internal/storage"
	"github.com/san-kum/gassim/internal/viz"
)

var (
	dataDir    string
	count      int
	radius     float64
	speed      float64
	dt         float64
	width      float64
	height     float64
	steps      int
	seed       int64
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gassim",
		Short: "elastic gas particle simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gassim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the trajectory",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live terminal animation",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a stored run's energy, collisions and speeds",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's frame data to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "particle count")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "particle radius")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial particle speed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "domain width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "domain height")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file and CLI flags, flags winning
// over the file, the file winning over the preset.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("count") {
		cfg.Count = count
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	state, err := gas.NewState(cfg.Params(), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	sp := gas.NewStepper(state)
	sp.AddMetric(metrics.NewKineticEnergy())
	sp.AddMetric(metrics.NewMomentum())
	sp.AddMetric(metrics.NewCollisionRate())

	fmt.Printf("running %d particles for %d steps...\n", cfg.Count, cfg.Steps)
	start := time.Now()

	result, err := sp.Run(context.Background(), cfg.Steps, cfg.Dt)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Count, cfg.Radius, cfg.Speed, cfg.Dt, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, cfg.Seed)
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
	fmt.Fprintln(w, "ID\tTIME\tCOUNT\tRADIUS\tSPEED\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.1f\t%.3f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Radius,
			run.Speed,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, collisions, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d  radius: %.1f  dt: %.3f\n\n", meta.Count, meta.Radius, meta.Dt)

	energy := make([]float64, len(frames))
	for i, frame := range frames {
		energy[i] = metrics.TotalKineticEnergy(frame)
	}
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("total kinetic energy")))
	fmt.Println()

	perTick := make([]float64, len(collisions))
	for i, c := range collisions {
		perTick[i] = float64(c)
	}
	fmt.Println(asciigraph.Plot(perTick,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("resolved collisions per tick")))
	fmt.Println()

	hist := speedHistogram(frames[len(frames)-1], 40)
	fmt.Println(asciigraph.Plot(hist,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("final speed distribution")))

	return nil
}

// speedHistogram buckets particle speeds of one frame into bins. After
// enough collisions the shape relaxes toward the 2D Maxwell-Boltzmann
// distribution.
func speedHistogram(frame []gas.Particle, bins int) []float64 {
	maxSpeed := 0.0
	for _, p := range frame {
		if s := p.Speed(); s > maxSpeed {
			maxSpeed = s
		}
	}
	hist := make([]float64, bins)
	if maxSpeed == 0 {
		return hist
	}
	for _, p := range frame {
		b := int(p.Speed() / maxSpeed * float64(bins-1))
		hist[b]++
	}
	return hist
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
	st := storage.New(dataDir)
	file, err := os.Open(st.FramesPath(args[0]))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(os.Stdout, file)
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tRADIUS\tSPEED\tDT\tDOMAIN\tSTEPS")

	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.3f\t%.0fx%.0f\t%d\n",
			name, p.Count, p.Radius, p.Speed, p.Dt, p.Width, p.Height, p.Steps)
	}

	return w.Flush()
}
