package analytics

import (
	"fmt"
	"math"

	"github.com/transitlab/rumbo/pkg/rumbo/inference"
)

// Comparison contrasts an informed engine against a baseline on the same
// query. Both engines find cost-optimal routes, so CostsMatch should hold
// whenever the informed heuristic never overestimates; NodesSaved is the
// work the heuristic avoided.
type Comparison struct {
	Origin      string
	Destination string
	Informed    RouteRecord
	Baseline    RouteRecord
	CostsMatch  bool
	NodesSaved  int
}

// Compare runs both engines on one query and measures the difference.
func Compare(origin, destination string, informed, baseline inference.Engine) (Comparison, error) {
	a, err := informed.FindRoute(origin, destination)
	if err != nil {
		return Comparison{}, fmt.Errorf("informed route %s to %s: %w", origin, destination, err)
	}
	b, err := baseline.FindRoute(origin, destination)
	if err != nil {
		return Comparison{}, fmt.Errorf("baseline route %s to %s: %w", origin, destination, err)
	}

	return Comparison{
		Origin:      origin,
		Destination: destination,
		Informed:    recordFrom(origin, destination, a),
		Baseline:    recordFrom(origin, destination, b),
		CostsMatch:  math.Abs(a.TotalCost-b.TotalCost) < 1e-9,
		NodesSaved:  b.Stats.NodesExpanded - a.Stats.NodesExpanded,
	}, nil
}
