// Package inference defines the route-finding contract shared by the search
// engines.
package inference

// Engine resolves routes over a transit network.
// This interface allows swapping implementations (informed A* search,
// uniform-cost baseline, future alternatives) without touching callers.
type Engine interface {
	// FindRoute finds the cheapest route between two registered stations.
	// It returns ErrUnknownStation when either endpoint is not registered
	// and ErrRouteNotFound when no sequence of connections joins them.
	FindRoute(origin, destination string) (Route, error)
}

// Route is one resolved route. Path holds the station names from origin to
// destination inclusive; TotalCost is the minimized cost (kilometers plus
// transfer surcharges).
type Route struct {
	Path      []string
	TotalCost float64
	Stats     Stats
}

// Stats describes a resolved route and the search that produced it.
type Stats struct {
	Stations        int     // stations on the path, endpoints included
	Transfers       int     // line changes along the path
	DistanceKm      float64 // summed connection distances
	TimeMin         float64 // summed connection times
	NodesExpanded   int     // stations the search settled
	EfficiencyRatio float64 // NodesExpanded over network station count
}
