// Package analytics measures route-finding behavior across a network.
package analytics

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/transitlab/rumbo/pkg/rumbo/inference"
	"github.com/transitlab/rumbo/pkg/rumbo/internalerr"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

// RouteRecord is the outcome of one origin-destination query. A record
// with Found false carries the endpoints only.
type RouteRecord struct {
	Origin          string
	Destination     string
	Found           bool
	Path            []string
	TotalCost       float64
	Stations        int
	Transfers       int
	DistanceKm      float64
	TimeMin         float64
	NodesExpanded   int
	EfficiencyRatio float64
}

// Summary aggregates the found routes of one run.
type Summary struct {
	PairsAttempted   int
	RoutesFound      int
	SuccessRate      float64
	AvgStations      float64
	MinStations      int
	MaxStations      int
	AvgTransfers     float64
	AvgDistanceKm    float64
	AvgTimeMin       float64
	AvgNodesExpanded float64
	AvgEfficiency    float64
}

// Extremes are the standout routes of one run: most stations, most line
// changes, least travel time, fewest expanded nodes. Ties keep the first
// record encountered. Meaningful only when at least one route was found.
type Extremes struct {
	Longest       RouteRecord
	MostTransfers RouteRecord
	Fastest       RouteRecord
	MostEfficient RouteRecord
}

// Report is the result of one analysis run.
type Report struct {
	RunID        string
	GeneratedAt  time.Time
	Network      string
	StationCount int
	Summary      Summary
	Extremes     Extremes
	Records      []RouteRecord
}

// Analyzer runs an engine over station pairs and aggregates the outcomes.
type Analyzer struct {
	net     *network.Network
	engine  inference.Engine
	entropy *ulid.MonotonicEntropy
}

// New creates an analyzer for net using engine.
func New(net *network.Network, engine inference.Engine) *Analyzer {
	return &Analyzer{
		net:     net,
		engine:  engine,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// AllPairs queries every ordered pair among the given stations, or among
// all registered stations when none are given. Unreachable pairs count as
// unsuccessful records; an unregistered sample station fails the run.
func (a *Analyzer) AllPairs(sample ...string) (Report, error) {
	names := sample
	if len(names) == 0 {
		for _, s := range a.net.Stations() {
			names = append(names, s.Name)
		}
	} else {
		for _, name := range names {
			if _, ok := a.net.Station(name); !ok {
				return Report{}, fmt.Errorf("sample station %q: %w", name, internalerr.ErrUnknownStation)
			}
		}
	}

	report := Report{
		RunID:        ulid.MustNew(ulid.Now(), a.entropy).String(),
		GeneratedAt:  time.Now().UTC(),
		Network:      a.net.Name(),
		StationCount: a.net.NumStations(),
	}

	for _, origin := range names {
		for _, destination := range names {
			if origin == destination {
				continue
			}
			report.Summary.PairsAttempted++
			rec, err := a.query(origin, destination)
			if err != nil {
				return Report{}, err
			}
			report.Records = append(report.Records, rec)
		}
	}

	report.finish()
	return report, nil
}

func (a *Analyzer) query(origin, destination string) (RouteRecord, error) {
	route, err := a.engine.FindRoute(origin, destination)
	if errors.Is(err, internalerr.ErrRouteNotFound) {
		return RouteRecord{Origin: origin, Destination: destination}, nil
	}
	if err != nil {
		return RouteRecord{}, fmt.Errorf("route %s to %s: %w", origin, destination, err)
	}
	return recordFrom(origin, destination, route), nil
}

func recordFrom(origin, destination string, route inference.Route) RouteRecord {
	return RouteRecord{
		Origin:          origin,
		Destination:     destination,
		Found:           true,
		Path:            route.Path,
		TotalCost:       route.TotalCost,
		Stations:        route.Stats.Stations,
		Transfers:       route.Stats.Transfers,
		DistanceKm:      route.Stats.DistanceKm,
		TimeMin:         route.Stats.TimeMin,
		NodesExpanded:   route.Stats.NodesExpanded,
		EfficiencyRatio: route.Stats.EfficiencyRatio,
	}
}

func (r *Report) finish() {
	s := &r.Summary
	var stations, transfers, expanded int
	var distance, timeMin, efficiency float64

	for _, rec := range r.Records {
		if !rec.Found {
			continue
		}
		if s.RoutesFound == 0 {
			s.MinStations, s.MaxStations = rec.Stations, rec.Stations
			r.Extremes = Extremes{Longest: rec, MostTransfers: rec, Fastest: rec, MostEfficient: rec}
		}
		s.RoutesFound++
		stations += rec.Stations
		transfers += rec.Transfers
		expanded += rec.NodesExpanded
		distance += rec.DistanceKm
		timeMin += rec.TimeMin
		efficiency += rec.EfficiencyRatio

		if rec.Stations < s.MinStations {
			s.MinStations = rec.Stations
		}
		if rec.Stations > s.MaxStations {
			s.MaxStations = rec.Stations
		}
		if rec.Stations > r.Extremes.Longest.Stations {
			r.Extremes.Longest = rec
		}
		if rec.Transfers > r.Extremes.MostTransfers.Transfers {
			r.Extremes.MostTransfers = rec
		}
		if rec.TimeMin < r.Extremes.Fastest.TimeMin {
			r.Extremes.Fastest = rec
		}
		if rec.NodesExpanded < r.Extremes.MostEfficient.NodesExpanded {
			r.Extremes.MostEfficient = rec
		}
	}

	if s.PairsAttempted > 0 {
		s.SuccessRate = float64(s.RoutesFound) / float64(s.PairsAttempted)
	}
	if s.RoutesFound > 0 {
		n := float64(s.RoutesFound)
		s.AvgStations = float64(stations) / n
		s.AvgTransfers = float64(transfers) / n
		s.AvgDistanceKm = distance / n
		s.AvgTimeMin = timeMin / n
		s.AvgNodesExpanded = float64(expanded) / n
		s.AvgEfficiency = efficiency / n
	}
}
