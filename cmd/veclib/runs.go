package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/veclib/internal/config"
	"github.com/san-kum/veclib/internal/trace"
	"github.com/san-kum/veclib/internal/viz"
)

func openStore() (*trace.Store, error) {
	logger, err := newLogger(logLevel)
	if err != nil {
		return nil, err
	}
	return trace.NewStore(dataDir, logger), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIME\tAPPENDS\tLEN/CAP\tGROWTHS\tALLOCATOR")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d/%d\t%d\t%s\n",
			r.ID, r.Name, humanize.Time(r.Timestamp), r.Appends,
			r.FinalSize, r.FinalCap, r.Growths, r.Allocator)
	}
	return tw.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s/%s)\n\n", viz.Title.Render("run"), meta.ID, meta.Element, meta.Allocator)
	fmt.Fprint(out, viz.GrowthTable(events, meta.ElemBytes))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Summary(meta.FinalSize, meta.FinalCap, meta.ElemBytes))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.CapacityPlot(events, config.DefaultWidth, config.DefaultHeight))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runID := args[0]
	path := runID + ".json"
	if len(args) == 2 {
		path = args[1]
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(runID)
	if err != nil {
		return err
	}
	if err := trace.ExportJSON(path, *meta, events); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d events to %s\n", len(events), path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tELEMENT\tALLOCATOR\tRESERVE\tSEEDS\tAPPENDS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			name, p.Element, p.Allocator.Name, p.Reserve, p.Seeds(), p.Appends)
	}
	return tw.Flush()
}
