package viz

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/veclib/internal/trace"
)

// CapacityPlot charts capacity and size against append step.
func CapacityPlot(events []trace.Event, width, height int) string {
	if len(events) == 0 {
		return Subtle.Render("no events")
	}

	caps := make([]float64, len(events))
	sizes := make([]float64, len(events))
	for i, e := range events {
		caps[i] = float64(e.Cap)
		sizes[i] = float64(e.Size)
	}

	return asciigraph.PlotMany([][]float64{caps, sizes},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("capacity (upper) and size vs append"),
	)
}

// GrowthTable lists the appends that reallocated, with the block size each
// one allocated for elements of elemBytes.
func GrowthTable(events []trace.Event, elemBytes uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-10s %-10s %s\n", "STEP", "SIZE", "CAP", "BLOCK")
	for _, e := range events {
		if !e.Grew && e.Step != 1 {
			continue
		}
		fmt.Fprintf(&b, "%-8d %-10s %-10s %s\n",
			e.Step,
			humanize.Comma(int64(e.Size)),
			humanize.Comma(int64(e.Cap)),
			humanize.IBytes(uint64(e.Cap)*elemBytes),
		)
	}
	return b.String()
}

// Summary is a one-line description of a vector's occupancy.
func Summary(size, capacity int, elemBytes uint64) string {
	slack := capacity - size
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		Label.Render("len"), Value.Render(humanize.Comma(int64(size))),
		Label.Render("cap"), Value.Render(humanize.Comma(int64(capacity))),
		Label.Render("slack"), Value.Render(humanize.Comma(int64(slack))),
		Label.Render("block"), Value.Render(humanize.IBytes(uint64(capacity)*elemBytes)),
	)
}
