package rumbo

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

func TestRouteDefaultEngine(t *testing.T) {
	r := New(Options{Network: transmilenio.New()})

	route, err := r.Route("Virrey", "CAD")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !near(route.TotalCost, 6.6) {
		t.Errorf("TotalCost = %v, want 6.6", route.TotalCost)
	}
	if len(route.Path) != 3 {
		t.Errorf("Path = %v, want 3 stations", route.Path)
	}
}

func TestRouteCustomEngine(t *testing.T) {
	net := transmilenio.New()
	r := New(Options{
		Network: net,
		Engine:  astar.New(net).WithTransferPenalty(0),
	})

	route, err := r.Route("Virrey", "CAD")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !near(route.TotalCost, 2.6) {
		t.Errorf("TotalCost = %v, want 2.6 with free transfers", route.TotalCost)
	}
}

func TestExplainAnnotatesTransfers(t *testing.T) {
	r := New(Options{Network: transmilenio.New()})

	e, err := r.Explain("Virrey", "CAD")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if len(e.ID) != 26 {
		t.Errorf("ID = %q, want 26-char ULID", e.ID)
	}
	if e.Origin.Line != "Troncal Caracas" || e.Destination.Line != "Troncal NQS" {
		t.Errorf("endpoint lines = %q/%q", e.Origin.Line, e.Destination.Line)
	}
	if len(e.Legs) != 3 {
		t.Fatalf("len(Legs) = %d, want 3", len(e.Legs))
	}
	if !e.Legs[0].Transfer || e.Legs[0].TransferToLine != "Transbordo" {
		t.Errorf("Legs[0] = %+v, want transfer to Transbordo", e.Legs[0])
	}
}

func TestExplainPropagatesSearchErrors(t *testing.T) {
	r := New(Options{Network: transmilenio.New()})

	if _, err := r.Explain("Atlantis", "CAD"); !errors.Is(err, internalerr.ErrUnknownStation) {
		t.Errorf("unknown origin err = %v, want ErrUnknownStation", err)
	}

	net := network.New("split")
	for _, name := range []string{"A", "B"} {
		if err := net.AddStation(name, "line1"); err != nil {
			t.Fatalf("AddStation(%s): %v", name, err)
		}
	}
	r = New(Options{Network: net})
	if _, err := r.Explain("A", "B"); !errors.Is(err, internalerr.ErrRouteNotFound) {
		t.Errorf("disconnected err = %v, want ErrRouteNotFound", err)
	}
}

func TestValidateFlagsDanglingConnection(t *testing.T) {
	r := New(Options{Network: transmilenio.New()})
	if v := r.Validate(); len(v) != 0 {
		t.Errorf("demo network violations = %v, want none", v)
	}

	net := network.New("broken")
	if err := net.AddStation("A", "line1"); err != nil {
		t.Fatalf("AddStation: %v", err)
	}
	if err := net.AddConnection("A", "Ghost", 1, 2); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	r = New(Options{Network: net})
	if v := r.Validate(); len(v) == 0 {
		t.Error("dangling connection not reported")
	}
}
