package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/veclib/internal/alloc"
	"github.com/san-kum/veclib/internal/config"
	"github.com/san-kum/veclib/internal/trace"
	"github.com/san-kum/veclib/internal/vector"
	"github.com/san-kum/veclib/internal/viz"
)

// workload is the outcome of appending a configured sequence of values.
type workload struct {
	events    []trace.Event
	size, cap int
	elemBytes uint64
	live      int64
	// err is the failure that stopped the appends early, if any.
	err error
}

// runWorkload seeds a vector with seeds, appends cfg.Appends generated
// values through a recorder, releases the vector and reports what happened.
// An allocation failure part way through ends the run without failing it.
func runWorkload[T any](cfg *config.Config, seeds []T, gen func(int) T, opts alloc.Options) (*workload, error) {
	a, err := alloc.Build[T](opts)
	if err != nil {
		return nil, err
	}
	v, err := vector.New(vector.WithAllocator[T](a))
	if err != nil {
		return nil, err
	}
	defer v.Release()

	w := &workload{elemBytes: alloc.SlotSize[T]()}
	if err := v.Reserve(cfg.Reserve); err != nil {
		w.err = err
	}
	r, err := trace.NewRecorder(v)
	if err != nil {
		return nil, err
	}

	if w.err == nil {
		for _, x := range seeds {
			if w.err = r.Append(x); w.err != nil {
				break
			}
		}
	}
	for i := 0; w.err == nil && i < cfg.Appends; i++ {
		w.err = r.Append(gen(i))
	}
	if w.err != nil && !errors.Is(w.err, alloc.ErrAllocation) {
		return nil, w.err
	}

	w.events = r.Events()
	w.size, w.cap = v.Len(), v.Cap()
	v.Release()
	w.live = a.LiveBlocks()
	return w, nil
}

func runConfigured(cfg *config.Config, opts alloc.Options) (*workload, error) {
	opts.Name = cfg.Allocator.Name
	opts.LimitBytes = cfg.Allocator.LimitBytes
	if cfg.Element == "string" {
		return runWorkload(cfg, cfg.Strings, strconv.Itoa, opts)
	}
	return runWorkload(cfg, cfg.Ints, func(i int) int { return i }, opts)
}

func appendsArg(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return errors.Errorf("invalid append count: %s", args[0])
	}
	cfg.Appends = n
	return nil
}

func runGrow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := appendsArg(cfg, args); err != nil {
		return err
	}
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}

	start := time.Now()
	w, err := runConfigured(cfg, alloc.Options{Logger: logger})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s/%s, %d seeds, %d appends in %v\n\n",
		viz.Title.Render("grow"), cfg.Element, cfg.Allocator.Name, cfg.Seeds(), len(w.events), elapsed)
	fmt.Fprint(out, viz.GrowthTable(w.events, w.elemBytes))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.SlotBar(w.size, w.cap, cfg.Render.Width))
	fmt.Fprintln(out, viz.Summary(w.size, w.cap, w.elemBytes))
	if w.err != nil {
		fmt.Fprintln(out, viz.ErrorText.Render("stopped: "+w.err.Error()))
	}
	if cfg.Render.Plot && len(w.events) > 1 {
		fmt.Fprintln(out, viz.Separator(cfg.Render.Width))
		fmt.Fprintln(out, viz.CapacityPlot(w.events, cfg.Render.Width, cfg.Render.Height))
	} else if len(w.events) > 0 {
		caps := make([]float64, len(w.events))
		for i, e := range w.events {
			caps[i] = float64(e.Cap)
		}
		fmt.Fprintln(out, viz.Label.Render("cap"), viz.Sparkline(caps, cfg.Render.Width))
	}
	if w.live != 0 {
		level.Error(logger).Log("msg", "vector leaked storage", "live_blocks", w.live)
	}

	if !save {
		return nil
	}
	st := trace.NewStore(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(trace.RunMetadata{
		Name:      cfg.Name,
		Element:   cfg.Element,
		ElemBytes: w.elemBytes,
		Allocator: cfg.Allocator.Name,
		Reserve:   cfg.Reserve,
		Appends:   len(w.events),
	}, w.events)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := appendsArg(cfg, args); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	w, err := runConfigured(cfg, alloc.Options{Registerer: reg})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d appends, final len %d cap %d\n\n", len(w.events), w.size, w.cap)
	return writeMetrics(out, reg)
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var val float64
			switch {
			case m.GetCounter() != nil:
				val = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				val = m.GetGauge().GetValue()
			}
			fmt.Fprintf(tw, "%s\t%g\n", mf.GetName(), val)
		}
	}
	return tw.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	n := 1_000_000
	if len(args) == 1 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
			return errors.Errorf("invalid append count: %s", args[0])
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d appends...\n\n", n)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALLOCATOR\tRESERVE\tTIME\tNS/APPEND\tALLOCS")
	for _, name := range alloc.Names() {
		for _, reserved := range []bool{false, true} {
			a, err := alloc.Build[int](alloc.Options{Name: name, LimitBytes: alloc.MaxBlockBytes})
			if err != nil {
				return err
			}
			elapsed, err := timeAppends(a, n, reserved)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%v\t%v\t%.2f\t%d\n",
				name, reserved, elapsed, float64(elapsed.Nanoseconds())/float64(n), a.Allocations())
		}
	}
	return tw.Flush()
}

func timeAppends(a alloc.Allocator[int], n int, reserved bool) (time.Duration, error) {
	start := time.Now()
	v, err := vector.New(vector.WithAllocator[int](a))
	if err != nil {
		return 0, err
	}
	defer v.Release()
	if reserved {
		if err := v.Reserve(n); err != nil {
			return 0, err
		}
	}
	for i := 0; i < n; i++ {
		if err := v.Append(i); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}
