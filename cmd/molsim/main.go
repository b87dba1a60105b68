package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/energy"
	"github.com/san-kum/molsim/internal/output"
	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/store"
	"github.com/san-kum/molsim/internal/tui"
)

var (
	dataDir string
	preset  string
	temp    float64
	dt      float64
	tottime float64
	confs   int
	seed    uint64
	live    bool
	fps     int
	// Plot axes
	column  int
	samples int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "molsim",
		Short: "molecular dynamics and Metropolis Monte-Carlo engine",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".molsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [config.yaml]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemperature, "temperature [K]")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultTimestep, "timestep [ps]")
	runCmd.Flags().Float64Var(&tottime, "time", config.DefaultTotalTime, "total simulation time [ps]")
	runCmd.Flags().IntVar(&confs, "confs", config.DefaultTotalConfs, "total accepted configurations (mc)")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	runCmd.Flags().BoolVar(&live, "live", false, "live terminal view")
	runCmd.Flags().IntVar(&fps, "fps", 30, "live view frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [energy file]",
		Short: "plot an energy record file",
		Args:  cobra.ExactArgs(1),
		RunE:  plotEnergy,
	}
	plotCmd.Flags().IntVar(&column, "col", 1, "data column to plot (0 = time/conf)")
	plotCmd.Flags().IntVar(&samples, "samples", 0, "plot only the last N records")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-10s %s, %d atoms\n", name, cfg.Mode, len(cfg.Atoms))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [config.yaml]",
		Short: "write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetPreset("ar2-md")
			return config.Save(args[0], cfg)
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, listCmd, exportCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case len(args) == 1:
		var err error
		cfg, err = config.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	default:
		return fmt.Errorf("either a config file or --preset is required")
	}

	// CLI flags override the file.
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temp
	}
	if cmd.Flags().Changed("dt") {
		cfg.Timestep = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.TotalTime = tottime
	}
	if cmd.Flags().Changed("confs") {
		cfg.TotalConfs = confs
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}

	st := sim.NewState(sys, cfg.SimConfig())
	model := energy.NewLennardJones(sys)

	db := store.New(dataDir)
	if err := db.Init(); err != nil {
		return err
	}

	statusOut := io.Writer(os.Stdout)
	if live {
		statusOut = io.Discard
	}
	writer, err := output.New(output.Options{
		Mode:        cfg.SimMode(),
		SystemName:  cfg.Name,
		EnergyPath:  cfg.EnergyOut,
		GeomPath:    cfg.GeomOut,
		EnergyEvery: cfg.EnergyTime,
		GeomEvery:   cfg.GeomTime,
		EqTime:      cfg.EqTime,
		EnergyConfs: cfg.EnergyConfs,
		GeomConfs:   cfg.GeomConfs,
		StatusEvery: time.Duration(cfg.StatusEvery * float64(time.Second)),
		Status:      statusOut,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s, %d atoms, %.2f K, seed %d\n",
		titleStyle.Render(cfg.Name), cfg.Mode, sys.NumAtoms(), cfg.Temperature, cfg.Seed)
	start := time.Now()

	if live {
		err = runLive(cfg, st, model, writer)
	} else {
		err = runPlain(context.Background(), cfg, st, model, writer)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := db.Save(st, cfg.Seed, cfg.EnergyOut, cfg.GeomOut)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("%s %s\n", keyStyle.Render("run id:"), runID)
	fmt.Printf("%s %s\n", keyStyle.Render("energy:"), cfg.EnergyOut)
	fmt.Printf("%s %s\n", keyStyle.Render("geometry:"), cfg.GeomOut)
	if st.Mode == sim.MonteCarlo {
		total := st.Accepted + st.Rejected
		if total > 0 {
			fmt.Printf("%s %d/%d (%.1f%%), final dispmag %.4f A\n",
				keyStyle.Render("accepted:"), st.Accepted, total,
				100*float64(st.Accepted)/float64(total), st.DispMag)
		}
	}
	return nil
}

func runPlain(ctx context.Context, cfg *config.Config, st *sim.State, model energy.Model, rep sim.Reporter) error {
	if cfg.SimMode() == sim.MonteCarlo {
		return sim.NewMC(st, model, rep).Run(ctx)
	}
	return sim.NewMD(st, model, rep).Run(ctx)
}

// runLive runs the engine in a goroutine and drives the terminal view from
// the main one, as the tea program owns the terminal. Quitting the view
// cancels the engine's context, so the run stops instead of finishing
// unwatched.
func runLive(cfg *config.Config, st *sim.State, model energy.Model, rep sim.Reporter) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan tui.Sample, 16)
	liveRep := tui.NewReporter(rep, ch, fps)

	errc := make(chan error, 1)
	go func() {
		errc <- runPlain(ctx, cfg, st, model, liveRep)
	}()

	uiErr := tui.Run(cfg.Name, ch)
	cancel()
	if err := <-errc; err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("interrupted")
		} else {
			return err
		}
	}
	return uiErr
}

func plotEnergy(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(args[0], ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}

	var labels []string
	var data []float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if strings.HasPrefix(line, "#") {
			// The second header line carries the column labels.
			if len(fields) > 1 && fields[1] != "energy" {
				labels = fields[1:]
			}
			continue
		}
		if column >= len(fields) {
			return fmt.Errorf("column %d out of range (%d columns)", column, len(fields))
		}
		v, err := strconv.ParseFloat(fields[column], 64)
		if err != nil {
			return fmt.Errorf("bad record %q: %w", line, err)
		}
		data = append(data, v)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no records in %s", args[0])
	}
	if samples > 0 && len(data) > samples {
		data = data[len(data)-samples:]
	}

	caption := fmt.Sprintf("column %d", column)
	if column < len(labels) {
		caption = labels[column]
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s (%d records)", caption, len(data))),
	)
	fmt.Println(graph)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	db := store.New(dataDir)
	runs, err := db.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tTEMP\tSEED\tDETAIL")
	for _, run := range runs {
		detail := fmt.Sprintf("%.4f ps @ %.4f", run.TotalTime, run.Timestep)
		if run.Mode == "mc" {
			detail = fmt.Sprintf("%d confs, %d/%d accepted", run.TotalConfs,
				run.Accepted, run.Accepted+run.Rejected)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fK\t%d\t%s\n",
			run.ID, run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Temperature, run.Seed, detail)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	db := store.New(dataDir)
	meta, err := db.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
