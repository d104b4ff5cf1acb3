package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/autodiff/internal/config"
	"github.com/san-kum/autodiff/internal/experiment"
	"github.com/san-kum/autodiff/internal/logging"
	"github.com/san-kum/autodiff/internal/scalar"
	"github.com/san-kum/autodiff/internal/storage"
	"github.com/san-kum/autodiff/internal/tui"
	"github.com/san-kum/autodiff/internal/viz"
)

var (
	dataDir  string
	logLevel string
	noColor  bool

	vars       []string
	configFile string
	preset     string
	scalarName string
	precision  uint
	save       bool
	jsonOut    bool
	limit      int

	sweep     string
	steps     int
	orders    []int
	svgPath   string
	normalize bool
	width     int
	height    int

	step      float64
	tolerance float64

	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "autodiff",
		Short:         "forward-mode automatic differentiation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			viz.NoColor = noColor
			_, err := logging.Setup(os.Stderr, logLevel, noColor)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive(storage.New(dataDir))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".autodiff", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	problemFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringArrayVar(&vars, "var", nil, "variable binding name=value[:order] (repeatable)")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		cmd.Flags().StringVar(&scalarName, "scalar", "", "coefficient type (float, big)")
		cmd.Flags().UintVar(&precision, "prec", 0, "mantissa bits for the big scalar")
	}

	evalCmd := &cobra.Command{
		Use:   "eval [expr]",
		Short: "evaluate an expression and its derivatives",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEval,
	}
	problemFlags(evalCmd)
	evalCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	evalCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	evalCmd.Flags().IntVar(&limit, "limit", 0, "show at most this many derivatives (0 for all)")

	plotCmd := &cobra.Command{
		Use:   "plot [expr]",
		Short: "plot derivatives over a range of one variable",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	problemFlags(plotCmd)
	plotCmd.Flags().StringVar(&sweep, "sweep", "", "swept variable and range name=from:to")
	plotCmd.Flags().IntVar(&steps, "steps", 0, "number of sample points")
	plotCmd.Flags().IntSliceVar(&orders, "orders", nil, "derivative orders to plot (default all)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the curves to an svg file")
	plotCmd.Flags().BoolVar(&normalize, "normalize", false, "scale each curve to unit magnitude")
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 15, "plot height")

	checkCmd := &cobra.Command{
		Use:   "check [expr]",
		Short: "compare derivatives against finite differences",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	problemFlags(checkCmd)
	checkCmd.Flags().Float64Var(&step, "step", 0, "finite-difference step (0 picks one per order)")
	checkCmd.Flags().Float64Var(&tolerance, "tol", 0, "relative tolerance (0 picks one per order)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&limit, "limit", 0, "show at most this many derivatives (0 for all)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive(storage.New(dataDir))
		},
	}

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list functions usable in expressions",
		Args:  cobra.NoArgs,
		RunE:  listFunctions,
	}

	rootCmd.AddCommand(evalCmd, plotCmd, checkCmd, presetsCmd, listCmd, showCmd, exportCmd, tuiCmd, functionsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			slog.Error("invalid problem", "field", verr.Field, "msg", verr.Msg)
		} else {
			slog.Error(err.Error())
		}
		stop()
		os.Exit(1)
	}
}

// buildConfig assembles a problem from, in increasing priority, the
// defaults, --preset, --config, the expression argument and the remaining
// flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Expression = args[0]
		if preset == "" && configFile == "" {
			cfg.Name = "expr"
		}
	}

	for _, s := range vars {
		v, err := config.ParseVar(s)
		if err != nil {
			return nil, err
		}
		cfg.SetVar(v)
	}

	if cmd.Flags().Changed("scalar") {
		cfg.Scalar = scalarName
	}
	if cmd.Flags().Changed("prec") {
		cfg.Precision = precision
		if !cmd.Flags().Changed("scalar") {
			cfg.Scalar = scalar.KindBig.String()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newExperiment(cmd *cobra.Command, args []string) (*experiment.Experiment, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg, nil)
}

func runEval(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}

	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		slog.Info("saved run", "id", runID, "dir", dataDir)
	}

	if jsonOut {
		return storage.WriteJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(res))
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderTable(res, limit))
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	switch {
	case sweep != "":
		s, err := config.ParseSweep(sweep, steps)
		if err != nil {
			return err
		}
		cfg.Sweep = s
	case cfg.Sweep == nil && len(cfg.Vars) > 0:
		v := cfg.Vars[0]
		cfg.Sweep = &config.Sweep{Var: v.Name, From: v.Value - 1, To: v.Value + 1, Steps: config.DefaultSteps}
		slog.Debug("no sweep given, using a unit range around the point", "var", v.Name)
	}
	if cfg.Sweep != nil && cmd.Flags().Changed("steps") {
		cfg.Sweep.Steps = steps
	}

	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return err
	}
	sw, err := exp.Sweep(cmd.Context())
	if err != nil {
		return err
	}

	graph, err := viz.Plot(sw, orders, viz.PlotOptions{Width: width, Height: height, Normalize: normalize})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)

	if svgPath != "" {
		svg := viz.SweepSVG(sw, orders, 800, 400, normalize)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		slog.Info("wrote svg", "path", svgPath)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("step") || cmd.Flags().Changed("tol") || cfg.Check == nil {
		c := config.Check{}
		if cfg.Check != nil {
			c = *cfg.Check
		}
		if cmd.Flags().Changed("step") {
			c.Step = step
		}
		if cmd.Flags().Changed("tol") {
			c.Tolerance = tolerance
		}
		cfg.Check = &c
	}

	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return err
	}
	rows, err := exp.Check(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderCheck(rows))

	failed := 0
	for _, r := range rows {
		if !r.OK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks outside tolerance", failed, len(rows))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCALAR\tVARS\tEXPRESSION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, p.Scalar, len(p.Vars), p.Expression)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSCALAR\tENTRIES\tELAPSED\tEXPRESSION")

	for _, run := range runs {
		scalarText := run.Scalar
		if run.Precision > 0 {
			scalarText += "/" + strconv.FormatUint(uint64(run.Precision), 10)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			scalarText,
			run.Entries,
			run.Elapsed,
			run.Expression,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	res, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(res))
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderTable(res, limit))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	res, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(outPath, res)
}

func listFunctions(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARGS\tDESCRIPTION")
	for _, f := range experiment.Functions() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", f.Name, f.Arity, f.Doc)
	}
	return w.Flush()
}
