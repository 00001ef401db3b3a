// Package explain turns resolved routes into structured, explainable
// itineraries.
package explain

import (
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/transitlab/rumbo/pkg/rumbo/inference"
	"github.com/transitlab/rumbo/pkg/rumbo/internalerr"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

// Builder constructs explainable itineraries over one network.
type Builder struct {
	net     *network.Network
	entropy *ulid.MonotonicEntropy
}

// New creates a new itinerary builder.
func New(net *network.Network) *Builder {
	return &Builder{
		net:     net,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Endpoint identifies one end of an itinerary.
type Endpoint struct {
	Station string
	Line    string
}

// Leg is one station visit along the itinerary. Transfer marks a line
// change on the way to the next leg; TransferToLine names the line boarded
// there. Both stay zero on the final leg.
type Leg struct {
	Seq            int
	Station        string
	Line           string
	Transfer       bool
	TransferToLine string
}

// Explanation is a structured itinerary for one resolved route.
type Explanation struct {
	ID          string
	Origin      Endpoint
	Destination Endpoint
	Legs        []Leg
	TotalCost   float64
	Stats       inference.Stats
}

// Build expands a route into its itinerary. It fails only when a path
// station no longer resolves against the network.
func (b *Builder) Build(route inference.Route) (Explanation, error) {
	if len(route.Path) == 0 {
		return Explanation{}, fmt.Errorf("route has no stations")
	}

	legs := make([]Leg, 0, len(route.Path))
	for i, name := range route.Path {
		s, ok := b.net.Station(name)
		if !ok {
			return Explanation{}, fmt.Errorf("path station %q: %w", name, internalerr.ErrUnknownStation)
		}
		leg := Leg{Seq: i + 1, Station: s.Name, Line: s.Line}
		if i+1 < len(route.Path) {
			next, ok := b.net.Station(route.Path[i+1])
			if !ok {
				return Explanation{}, fmt.Errorf("path station %q: %w", route.Path[i+1], internalerr.ErrUnknownStation)
			}
			if next.Line != s.Line {
				leg.Transfer = true
				leg.TransferToLine = next.Line
			}
		}
		legs = append(legs, leg)
	}

	return Explanation{
		ID:          ulid.MustNew(ulid.Now(), b.entropy).String(),
		Origin:      Endpoint{Station: legs[0].Station, Line: legs[0].Line},
		Destination: Endpoint{Station: legs[len(legs)-1].Station, Line: legs[len(legs)-1].Line},
		Legs:        legs,
		TotalCost:   route.TotalCost,
		Stats:       route.Stats,
	}, nil
}
