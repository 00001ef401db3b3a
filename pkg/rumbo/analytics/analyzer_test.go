package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/transitlab/rumbo/internal/transmilenio"
	"github.com/transitlab/rumbo/pkg/rumbo/inference/astar"
	"github.com/transitlab/rumbo/pkg/rumbo/internalerr"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAllPairsSampleAggregates(t *testing.T) {
	net := transmilenio.New()
	a := New(net, astar.New(net))

	report, err := a.AllPairs("Portal Norte", "Virrey", "CAD")
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}

	if len(report.RunID) != 26 {
		t.Errorf("RunID = %q, want 26-char ULID", report.RunID)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
	if report.Network != transmilenio.Name {
		t.Errorf("Network = %q, want %q", report.Network, transmilenio.Name)
	}
	if report.StationCount != 16 {
		t.Errorf("StationCount = %d, want 16", report.StationCount)
	}

	s := report.Summary
	if s.PairsAttempted != 6 || s.RoutesFound != 6 {
		t.Fatalf("attempted/found = %d/%d, want 6/6", s.PairsAttempted, s.RoutesFound)
	}
	if !near(s.SuccessRate, 1.0) {
		t.Errorf("SuccessRate = %v, want 1", s.SuccessRate)
	}
	if !near(s.AvgStations, 34.0/6) {
		t.Errorf("AvgStations = %v, want %v", s.AvgStations, 34.0/6)
	}
	if s.MinStations != 3 || s.MaxStations != 8 {
		t.Errorf("station bounds = %d/%d, want 3/8", s.MinStations, s.MaxStations)
	}
	if !near(s.AvgTransfers, 8.0/6) {
		t.Errorf("AvgTransfers = %v, want %v", s.AvgTransfers, 8.0/6)
	}
	if !near(s.AvgDistanceKm, 56.8/6) {
		t.Errorf("AvgDistanceKm = %v, want %v", s.AvgDistanceKm, 56.8/6)
	}
	if !near(s.AvgTimeMin, 116.0/6) {
		t.Errorf("AvgTimeMin = %v, want %v", s.AvgTimeMin, 116.0/6)
	}
	if !near(s.AvgNodesExpanded, 40.0/6) {
		t.Errorf("AvgNodesExpanded = %v, want %v", s.AvgNodesExpanded, 40.0/6)
	}
	if !near(s.AvgEfficiency, 2.5/6) {
		t.Errorf("AvgEfficiency = %v, want %v", s.AvgEfficiency, 2.5/6)
	}

	x := report.Extremes
	if x.Longest.Origin != "Portal Norte" || x.Longest.Destination != "CAD" || x.Longest.Stations != 8 {
		t.Errorf("Longest = %s to %s (%d stations)", x.Longest.Origin, x.Longest.Destination, x.Longest.Stations)
	}
	if x.MostTransfers.Origin != "Portal Norte" || x.MostTransfers.Destination != "CAD" || x.MostTransfers.Transfers != 2 {
		t.Errorf("MostTransfers = %s to %s (%d)", x.MostTransfers.Origin, x.MostTransfers.Destination, x.MostTransfers.Transfers)
	}
	if x.Fastest.Origin != "Virrey" || x.Fastest.Destination != "CAD" || !near(x.Fastest.TimeMin, 7) {
		t.Errorf("Fastest = %s to %s (%v min)", x.Fastest.Origin, x.Fastest.Destination, x.Fastest.TimeMin)
	}
	if x.MostEfficient.Origin != "Virrey" || x.MostEfficient.Destination != "CAD" || x.MostEfficient.NodesExpanded != 3 {
		t.Errorf("MostEfficient = %s to %s (%d expanded)", x.MostEfficient.Origin, x.MostEfficient.Destination, x.MostEfficient.NodesExpanded)
	}

	if len(report.Records) != 6 {
		t.Fatalf("len(Records) = %d, want 6", len(report.Records))
	}
	for _, rec := range report.Records {
		if !rec.Found {
			t.Errorf("%s to %s not found", rec.Origin, rec.Destination)
		}
	}
}

func TestAllPairsFullNetwork(t *testing.T) {
	net := transmilenio.New()
	a := New(net, astar.New(net))

	report, err := a.AllPairs()
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}

	s := report.Summary
	if s.PairsAttempted != 240 || s.RoutesFound != 240 {
		t.Fatalf("attempted/found = %d/%d, want 240/240", s.PairsAttempted, s.RoutesFound)
	}
	if !near(s.SuccessRate, 1.0) {
		t.Errorf("SuccessRate = %v, want 1", s.SuccessRate)
	}
	if !near(s.AvgStations, 1240.0/240) {
		t.Errorf("AvgStations = %v, want %v", s.AvgStations, 1240.0/240)
	}
	if s.MinStations != 2 || s.MaxStations != 11 {
		t.Errorf("station bounds = %d/%d, want 2/11", s.MinStations, s.MaxStations)
	}
	if !near(s.AvgTransfers, 278.0/240) {
		t.Errorf("AvgTransfers = %v, want %v", s.AvgTransfers, 278.0/240)
	}
	if !near(s.AvgDistanceKm, 2123.8/240) {
		t.Errorf("AvgDistanceKm = %v, want %v", s.AvgDistanceKm, 2123.8/240)
	}
	if !near(s.AvgTimeMin, 4456.0/240) {
		t.Errorf("AvgTimeMin = %v, want %v", s.AvgTimeMin, 4456.0/240)
	}
	if !near(s.AvgNodesExpanded, 5.9) {
		t.Errorf("AvgNodesExpanded = %v, want 5.9", s.AvgNodesExpanded)
	}
	if !near(s.AvgEfficiency, 0.36875) {
		t.Errorf("AvgEfficiency = %v, want 0.36875", s.AvgEfficiency)
	}
	t.Logf("full run: avg %.2f stations, %.2f km, %.1f min, %.2f nodes expanded",
		s.AvgStations, s.AvgDistanceKm, s.AvgTimeMin, s.AvgNodesExpanded)

	x := report.Extremes
	if x.Longest.Origin != "Portal Américas" || x.Longest.Destination != "Portal Norte" || x.Longest.Stations != 11 {
		t.Errorf("Longest = %s to %s (%d stations)", x.Longest.Origin, x.Longest.Destination, x.Longest.Stations)
	}
	if x.MostTransfers.Origin != "Alcalá" || x.MostTransfers.Destination != "CAD" {
		t.Errorf("MostTransfers = %s to %s", x.MostTransfers.Origin, x.MostTransfers.Destination)
	}
	if x.Fastest.Origin != "CAD" || x.Fastest.Destination != "Centro Memoria" || !near(x.Fastest.TimeMin, 2) {
		t.Errorf("Fastest = %s to %s (%v min)", x.Fastest.Origin, x.Fastest.Destination, x.Fastest.TimeMin)
	}
	if x.MostEfficient.Origin != "Alcalá" || x.MostEfficient.Destination != "Calle 100" || x.MostEfficient.NodesExpanded != 2 {
		t.Errorf("MostEfficient = %s to %s (%d expanded)", x.MostEfficient.Origin, x.MostEfficient.Destination, x.MostEfficient.NodesExpanded)
	}
}

func TestAllPairsUnknownSampleStation(t *testing.T) {
	net := transmilenio.New()
	a := New(net, astar.New(net))

	if _, err := a.AllPairs("Portal Norte", "Atlantis"); !errors.Is(err, internalerr.ErrUnknownStation) {
		t.Fatalf("err = %v, want ErrUnknownStation", err)
	}
}

func TestAllPairsUnreachablePairs(t *testing.T) {
	net := network.New("split")
	for _, name := range []string{"A", "B", "C"} {
		if err := net.AddStation(name, "line1"); err != nil {
			t.Fatalf("AddStation(%s): %v", name, err)
		}
	}
	if err := net.AddConnection("A", "B", 1, 2); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}

	report, err := New(net, astar.New(net)).AllPairs()
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}

	s := report.Summary
	if s.PairsAttempted != 6 || s.RoutesFound != 2 {
		t.Fatalf("attempted/found = %d/%d, want 6/2", s.PairsAttempted, s.RoutesFound)
	}
	if !near(s.SuccessRate, 2.0/6) {
		t.Errorf("SuccessRate = %v, want %v", s.SuccessRate, 2.0/6)
	}
	if !near(s.AvgStations, 2) {
		t.Errorf("AvgStations = %v, want 2", s.AvgStations)
	}

	var misses int
	for _, rec := range report.Records {
		if rec.Found {
			continue
		}
		misses++
		if rec.Path != nil || rec.NodesExpanded != 0 {
			t.Errorf("miss %s to %s carries route data", rec.Origin, rec.Destination)
		}
	}
	if misses != 4 {
		t.Errorf("misses = %d, want 4", misses)
	}
}

func TestAllPairsRunIDsUnique(t *testing.T) {
	net := transmilenio.New()
	a := New(net, astar.New(net))

	first, err := a.AllPairs("Virrey", "CAD")
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}
	second, err := a.AllPairs("Virrey", "CAD")
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}
	if first.RunID == second.RunID {
		t.Errorf("runs share ID %s", first.RunID)
	}
}

func TestCompareEngines(t *testing.T) {
	net := transmilenio.New()
	informed := astar.New(net)
	baseline := astar.New(net).WithoutHeuristic()

	tests := []struct {
		origin, destination string
		cost                float64
		informedExpanded    int
		baselineExpanded    int
	}{
		{"Portal Suba", "Portal Américas", 23.0, 11, 15},
		{"Portal Norte", "CAD", 18.2, 8, 10},
	}
	for _, tt := range tests {
		c, err := Compare(tt.origin, tt.destination, informed, baseline)
		if err != nil {
			t.Fatalf("Compare(%s, %s): %v", tt.origin, tt.destination, err)
		}
		if !c.CostsMatch {
			t.Errorf("%s to %s: costs diverge (%v vs %v)", tt.origin, tt.destination, c.Informed.TotalCost, c.Baseline.TotalCost)
		}
		if !near(c.Informed.TotalCost, tt.cost) {
			t.Errorf("%s to %s: cost = %v, want %v", tt.origin, tt.destination, c.Informed.TotalCost, tt.cost)
		}
		if c.Informed.NodesExpanded != tt.informedExpanded {
			t.Errorf("%s to %s: informed expanded %d, want %d", tt.origin, tt.destination, c.Informed.NodesExpanded, tt.informedExpanded)
		}
		if c.Baseline.NodesExpanded != tt.baselineExpanded {
			t.Errorf("%s to %s: baseline expanded %d, want %d", tt.origin, tt.destination, c.Baseline.NodesExpanded, tt.baselineExpanded)
		}
		if want := tt.baselineExpanded - tt.informedExpanded; c.NodesSaved != want {
			t.Errorf("%s to %s: NodesSaved = %d, want %d", tt.origin, tt.destination, c.NodesSaved, want)
		}
	}
}

func TestCompareUnknownStation(t *testing.T) {
	net := transmilenio.New()
	informed := astar.New(net)
	baseline := astar.New(net).WithoutHeuristic()

	if _, err := Compare("Atlantis", "CAD", informed, baseline); !errors.Is(err, internalerr.ErrUnknownStation) {
		t.Fatalf("err = %v, want ErrUnknownStation", err)
	}
}
