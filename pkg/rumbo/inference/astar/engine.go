// Package astar implements informed best-first route search over a transit
// network.
//
// The engine minimizes connection distance in kilometers plus a fixed
// surcharge per line change, guided by the network's great-circle estimate.
// Stations without coordinates degrade locally to a zero estimate, which
// keeps the heuristic admissible and the found routes optimal.
package astar

import (
	"fmt"

	"github.com/transitlab/rumbo/pkg/rumbo/inference"
	"github.com/transitlab/rumbo/pkg/rumbo/internalerr"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

// DefaultTransferPenalty is the cost surcharge for changing lines, in the
// same unit as connection distances (kilometers).
const DefaultTransferPenalty = 2.0

// Engine is an A* search over one network. It reads the network live and
// keeps no state between queries, so concurrent FindRoute calls are safe.
// Configure with the WithX methods before handing the engine out.
type Engine struct {
	net     *network.Network
	penalty float64
	uniform bool
}

// New creates an engine over net with the default transfer penalty.
func New(net *network.Network) *Engine {
	return &Engine{net: net, penalty: DefaultTransferPenalty}
}

// WithTransferPenalty sets the per-transfer cost surcharge. Negative values
// clamp to zero. Returns the engine for chaining.
func (e *Engine) WithTransferPenalty(p float64) *Engine {
	if p < 0 {
		p = 0
	}
	e.penalty = p
	return e
}

// WithoutHeuristic disables the distance estimate, degrading the search to
// uniform-cost order. Found costs stay identical to the informed search;
// only the number of expanded nodes grows. Returns the engine for chaining.
func (e *Engine) WithoutHeuristic() *Engine {
	e.uniform = true
	return e
}

// TransferPenalty returns the configured per-transfer surcharge.
func (e *Engine) TransferPenalty() float64 { return e.penalty }

// state carries everything the search knows about the best path found to a
// station so far. A cheaper relaxation replaces the whole state at once.
type state struct {
	g         float64
	distKm    float64
	timeMin   float64
	transfers int
	parent    string
}

// FindRoute implements inference.Engine. It returns ErrUnknownStation when
// either endpoint is unregistered and ErrRouteNotFound when the frontier
// exhausts without reaching the destination. Partial paths are never
// returned.
func (e *Engine) FindRoute(origin, destination string) (inference.Route, error) {
	if _, ok := e.net.Station(origin); !ok {
		return inference.Route{}, fmt.Errorf("origin %q: %w", origin, internalerr.ErrUnknownStation)
	}
	if _, ok := e.net.Station(destination); !ok {
		return inference.Route{}, fmt.Errorf("destination %q: %w", destination, internalerr.ErrUnknownStation)
	}

	best := map[string]state{origin: {}}
	closed := make(map[string]bool)
	fr := newFrontier()
	fr.add(origin, e.estimate(origin, destination))
	expanded := 0

	for fr.Len() > 0 {
		current := fr.next()
		if closed[current] {
			// Stale frontier entry shadowed by a cheaper re-push.
			continue
		}
		closed[current] = true
		expanded++

		if current == destination {
			return e.assemble(origin, destination, best, expanded)
		}

		links, err := e.net.Neighbors(current)
		if err != nil {
			return inference.Route{}, fmt.Errorf("expand %q: %w", current, err)
		}
		cur := best[current]
		for _, link := range links {
			if closed[link.To] {
				continue
			}
			transfer, err := e.net.RequiresTransfer(current, link.To)
			if err != nil {
				// Dangling connection endpoint; not a reachable state.
				continue
			}

			cand := state{
				g:         cur.g + link.DistanceKm,
				distKm:    cur.distKm + link.DistanceKm,
				timeMin:   cur.timeMin + link.TimeMin,
				transfers: cur.transfers,
				parent:    current,
			}
			if transfer {
				cand.g += e.penalty
				cand.transfers++
			}
			if known, ok := best[link.To]; ok && cand.g >= known.g {
				continue
			}
			best[link.To] = cand
			fr.add(link.To, cand.g+e.estimate(link.To, destination))
		}
	}

	return inference.Route{}, fmt.Errorf("no route from %q to %q: %w", origin, destination, internalerr.ErrRouteNotFound)
}

// estimate is the admissible remaining-cost guess. Missing coordinates on
// either side fall back to zero rather than failing the query.
func (e *Engine) estimate(from, to string) float64 {
	if e.uniform {
		return 0
	}
	h, err := e.net.Heuristic(from, to)
	if err != nil {
		return 0
	}
	return h
}

func (e *Engine) assemble(origin, destination string, best map[string]state, expanded int) (inference.Route, error) {
	var path []string
	for at := destination; ; at = best[at].parent {
		path = append(path, at)
		if at == origin {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	final := best[destination]
	stats := inference.Stats{
		Stations:      len(path),
		Transfers:     final.transfers,
		DistanceKm:    final.distKm,
		TimeMin:       final.timeMin,
		NodesExpanded: expanded,
	}
	if n := e.net.NumStations(); n > 0 {
		stats.EfficiencyRatio = float64(expanded) / float64(n)
	}

	return inference.Route{Path: path, TotalCost: final.g, Stats: stats}, nil
}
