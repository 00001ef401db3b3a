package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/transitlab/rumbo/pkg/rumbo/analytics"
	"github.com/transitlab/rumbo/pkg/rumbo/explain"
)

// Markdown writes a Markdown rendering of an analysis report: header,
// run summary, extreme routes, then one section per queried pair.
func Markdown(w io.Writer, r analytics.Report) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Route Report: %s\n\n", r.Network))
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Run:** %s\n\n", r.RunID))
	b.WriteString(fmt.Sprintf("**Network:** %d stations\n\n", r.StationCount))
	b.WriteString("---\n\n")

	s := r.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Pairs attempted: %d\n", s.PairsAttempted))
	b.WriteString(fmt.Sprintf("- Routes found: %d (%.1f%%)\n", s.RoutesFound, s.SuccessRate*100))
	if s.RoutesFound > 0 {
		b.WriteString(fmt.Sprintf("- Path length: avg %.1f stations (min %d, max %d)\n", s.AvgStations, s.MinStations, s.MaxStations))
		b.WriteString(fmt.Sprintf("- Transfers: avg %.2f\n", s.AvgTransfers))
		b.WriteString(fmt.Sprintf("- Distance: avg %.2f km\n", s.AvgDistanceKm))
		b.WriteString(fmt.Sprintf("- Time: avg %.1f minutes\n", s.AvgTimeMin))
		b.WriteString(fmt.Sprintf("- Nodes expanded: avg %.1f\n", s.AvgNodesExpanded))
	}
	b.WriteString("\n")

	if s.RoutesFound > 0 {
		x := r.Extremes
		b.WriteString("## Extremes\n\n")
		b.WriteString(fmt.Sprintf("- Longest route: %s to %s (%d stations)\n",
			x.Longest.Origin, x.Longest.Destination, x.Longest.Stations))
		b.WriteString(fmt.Sprintf("- Most transfers: %s to %s (%d)\n",
			x.MostTransfers.Origin, x.MostTransfers.Destination, x.MostTransfers.Transfers))
		b.WriteString(fmt.Sprintf("- Fastest route: %s to %s (%.1f minutes)\n",
			x.Fastest.Origin, x.Fastest.Destination, x.Fastest.TimeMin))
		b.WriteString(fmt.Sprintf("- Most efficient search: %s to %s (%d nodes)\n",
			x.MostEfficient.Origin, x.MostEfficient.Destination, x.MostEfficient.NodesExpanded))
		b.WriteString("\n")
	}

	b.WriteString("## Routes\n\n")
	for _, rec := range r.Records {
		b.WriteString(fmt.Sprintf("### %s to %s\n\n", rec.Origin, rec.Destination))
		if !rec.Found {
			b.WriteString("No route found.\n\n")
			continue
		}
		for i, station := range rec.Path {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, station))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("- Stations: %d\n", rec.Stations))
		b.WriteString(fmt.Sprintf("- Transfers: %d\n", rec.Transfers))
		b.WriteString(fmt.Sprintf("- Distance: %.2f km\n", rec.DistanceKm))
		b.WriteString(fmt.Sprintf("- Time: %.1f minutes\n", rec.TimeMin))
		b.WriteString(fmt.Sprintf("- Nodes expanded: %d\n", rec.NodesExpanded))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ExplanationMarkdown writes a Markdown rendering of one explained route,
// with the station sequence annotated by line and transfer points.
func ExplanationMarkdown(w io.Writer, e explain.Explanation) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("## Route: %s to %s\n\n", e.Origin.Station, e.Destination.Station))

	b.WriteString("### Stations\n\n")
	for _, leg := range e.Legs {
		b.WriteString(fmt.Sprintf("%d. **%s** (line: %s)", leg.Seq, leg.Station, leg.Line))
		if leg.Transfer {
			b.WriteString(fmt.Sprintf(" transfer to %s", leg.TransferToLine))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n### Statistics\n\n")
	b.WriteString(fmt.Sprintf("- Stations: %d\n", e.Stats.Stations))
	b.WriteString(fmt.Sprintf("- Transfers: %d\n", e.Stats.Transfers))
	b.WriteString(fmt.Sprintf("- Distance: %.2f km\n", e.Stats.DistanceKm))
	b.WriteString(fmt.Sprintf("- Time: %.1f minutes\n", e.Stats.TimeMin))
	b.WriteString(fmt.Sprintf("- Total cost: %.2f\n", e.TotalCost))
	b.WriteString(fmt.Sprintf("- Nodes expanded: %d\n", e.Stats.NodesExpanded))

	_, err := io.WriteString(w, b.String())
	return err
}
