// Package rumbo finds optimal routes through transit networks. It wires
// a station network to an informed search engine and turns results into
// explained, annotated routes.
package rumbo

import (
	"github.com/transitlab/rumbo/pkg/rumbo/explain"
	"github.com/transitlab/rumbo/pkg/rumbo/inference"
	"github.com/transitlab/rumbo/pkg/rumbo/inference/astar"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

// Rumbo is the main route-finding facade
type Rumbo struct {
	net     *network.Network
	engine  inference.Engine
	builder *explain.Builder
}

// Options configures a Rumbo instance
type Options struct {
	Network *network.Network
	Engine  inference.Engine
}

// New creates a Rumbo instance with the given dependencies. When no
// engine is given, informed search with the default transfer penalty is
// used.
func New(opts Options) *Rumbo {
	engine := opts.Engine
	if engine == nil {
		engine = astar.New(opts.Network)
	}
	return &Rumbo{
		net:     opts.Network,
		engine:  engine,
		builder: explain.New(opts.Network),
	}
}

// Network returns the underlying station network.
func (r *Rumbo) Network() *network.Network {
	return r.net
}

// Route finds an optimal route between two stations.
func (r *Rumbo) Route(origin, destination string) (inference.Route, error) {
	return r.engine.FindRoute(origin, destination)
}

// Explain finds an optimal route and annotates it with lines and
// transfer points.
func (r *Rumbo) Explain(origin, destination string) (explain.Explanation, error) {
	route, err := r.engine.FindRoute(origin, destination)
	if err != nil {
		return explain.Explanation{}, err
	}
	return r.builder.Build(route)
}

// Validate reports consistency violations in the underlying network.
func (r *Rumbo) Validate() []network.Violation {
	return r.net.Validate()
}
