package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/san-kum/veclib/internal/alloc"
	"github.com/san-kum/veclib/internal/config"
	"github.com/san-kum/veclib/internal/tui"
	"github.com/san-kum/veclib/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	preset     string
	// Workload overrides
	element    string
	allocator  string
	limitBytes uint64
	reserve    int
	noPlot     bool
	theme      string
	save       bool
)

// main builds the veclib command tree and exits with status 1 when the
// selected command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "veclib",
		Short:        "resizable array playground",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "trace data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log.level", "info", "log level: debug, info, warn, error")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "walk through the vector api",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}

	growCmd := &cobra.Command{
		Use:   "grow [n]",
		Short: "append n values and show every reallocation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGrow,
	}
	addWorkloadFlags(growCmd)
	growCmd.Flags().BoolVar(&save, "save", false, "save the trace to the data directory")

	metricsCmd := &cobra.Command{
		Use:   "metrics [n]",
		Short: "append n values through an instrumented allocator and dump its metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMetrics,
	}
	addWorkloadFlags(metricsCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [n]",
		Short: "time n appends per allocator, with and without reserve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traces",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export a saved trace to JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available workload presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive vector playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			a, err := alloc.Build[int](alloc.Options{
				Name:       cfg.Allocator.Name,
				LimitBytes: cfg.Allocator.LimitBytes,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			return tui.Run(a)
		},
	}
	addWorkloadFlags(tuiCmd)

	rootCmd.AddCommand(demoCmd, growCmd, metricsCmd, benchCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, tuiCmd)
	return rootCmd
}

func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&element, "element", config.DefaultElement, "element type: int or string")
	cmd.Flags().StringVar(&allocator, "allocator", config.DefaultAllocator, "allocator: heap, pool or limited")
	cmd.Flags().Uint64Var(&limitBytes, "limit-bytes", 0, "byte budget for the limited allocator")
	cmd.Flags().IntVar(&reserve, "reserve", 0, "reserve this many slots before appending")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the capacity plot")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme: default, retro or minimal")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, errors.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("element") {
		cfg.Element = element
	}
	if flags.Changed("allocator") {
		cfg.Allocator.Name = allocator
	}
	if flags.Changed("limit-bytes") {
		cfg.Allocator.LimitBytes = limitBytes
	}
	if flags.Changed("reserve") {
		cfg.Reserve = reserve
	}
	if flags.Changed("no-plot") {
		cfg.Render.Plot = !noPlot
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := viz.UseTheme(cfg.Render.Theme); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(lvl string) (log.Logger, error) {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, errors.Errorf("unknown log level: %s", lvl)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}
