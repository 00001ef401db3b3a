package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/transitlab/rumbo/pkg/rumbo/analytics"
	"github.com/transitlab/rumbo/pkg/rumbo/explain"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

const rule = "============================================================"

// RouteText writes a terminal rendering of one explained route: the
// station sequence with transfer markers, then the trip statistics.
func RouteText(w io.Writer, e explain.Explanation) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("OPTIMAL ROUTE\n")
	b.WriteString(rule + "\n\n")

	b.WriteString(fmt.Sprintf("Origin:      %s (line %s)\n", e.Origin.Station, e.Origin.Line))
	b.WriteString(fmt.Sprintf("Destination: %s (line %s)\n\n", e.Destination.Station, e.Destination.Line))

	b.WriteString("Station sequence:\n")
	for _, leg := range e.Legs {
		b.WriteString(fmt.Sprintf("  %d. %s [%s]", leg.Seq, leg.Station, leg.Line))
		if leg.Transfer {
			b.WriteString(fmt.Sprintf(" >> transfer to %s", leg.TransferToLine))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("TRIP STATISTICS\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Stations:       %d\n", e.Stats.Stations))
	b.WriteString(fmt.Sprintf("Transfers:      %d\n", e.Stats.Transfers))
	b.WriteString(fmt.Sprintf("Distance:       %.2f km\n", e.Stats.DistanceKm))
	b.WriteString(fmt.Sprintf("Time:           %.1f minutes\n", e.Stats.TimeMin))
	b.WriteString(fmt.Sprintf("Total cost:     %.2f\n", e.TotalCost))
	b.WriteString(fmt.Sprintf("Nodes expanded: %d\n", e.Stats.NodesExpanded))

	_, err := io.WriteString(w, b.String())
	return err
}

// ComparisonText writes a terminal rendering of an informed-vs-baseline
// comparison, including the search work the heuristic saved.
func ComparisonText(w io.Writer, c analytics.Comparison) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("SEARCH COMPARISON\n")
	b.WriteString(rule + "\n\n")
	b.WriteString(fmt.Sprintf("Problem: route from %s to %s\n\n", c.Origin, c.Destination))

	b.WriteString("Informed search (haversine heuristic):\n")
	writeComparisonSide(&b, c.Informed)
	b.WriteString("\nUniform-cost search (no heuristic):\n")
	writeComparisonSide(&b, c.Baseline)

	b.WriteString("\n")
	if c.CostsMatch {
		b.WriteString("Both searches agree on the optimal cost.\n")
	} else {
		b.WriteString(fmt.Sprintf("WARNING: costs diverge (%.2f vs %.2f); the heuristic overestimates somewhere.\n",
			c.Informed.TotalCost, c.Baseline.TotalCost))
	}
	if c.Baseline.NodesExpanded > 0 {
		saved := float64(c.NodesSaved) / float64(c.Baseline.NodesExpanded) * 100
		b.WriteString(fmt.Sprintf("The heuristic saved %d node expansions (%.1f%% of the baseline's work).\n",
			c.NodesSaved, saved))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeComparisonSide(b *strings.Builder, rec analytics.RouteRecord) {
	b.WriteString(fmt.Sprintf("  Cost:           %.2f\n", rec.TotalCost))
	b.WriteString(fmt.Sprintf("  Stations:       %d\n", rec.Stations))
	b.WriteString(fmt.Sprintf("  Nodes expanded: %d\n", rec.NodesExpanded))
}

// NetworkText writes a terminal overview of a network: size, then the
// stations grouped by line with their coordinates when known.
func NetworkText(w io.Writer, n *network.Network) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s: %d stations, %d connections, %d lines\n",
		n.Name(), n.NumStations(), n.NumConnections(), len(n.Lines())))

	byLine := make(map[string][]network.Station)
	for _, s := range n.Stations() {
		byLine[s.Line] = append(byLine[s.Line], s)
	}
	for _, line := range n.Lines() {
		b.WriteString(fmt.Sprintf("\n%s:\n", line))
		for _, s := range byLine[line] {
			if s.Coord != nil {
				b.WriteString(fmt.Sprintf("  %s (%.4f, %.4f)\n", s.Name, s.Coord.Lat, s.Coord.Lon))
			} else {
				b.WriteString(fmt.Sprintf("  %s\n", s.Name))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
