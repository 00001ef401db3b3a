// Package network holds the knowledge base of a transit system: the
// registered stations and the weighted connections between them. A Network
// is safe for concurrent use; reads share the lock, writes serialize.
package network

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/transitlab/rumbo/pkg/rumbo/internalerr"
)

// Station is one stop in the network. Coord is nil when the station's
// position is unknown.
type Station struct {
	Name  string
	Line  string
	Coord *Coord
}

// Coord is a geographic position in decimal degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// Link is one direct connection leaving a station.
type Link struct {
	To         string
	DistanceKm float64
	TimeMin    float64
}

type edge struct {
	distanceKm float64
	timeMin    float64
}

// Network is the in-memory knowledge base. Connections are undirected and
// simple: at most one weight pair per unordered station pair, and
// re-registering a pair overwrites the previous weights in both directions.
type Network struct {
	mu        sync.RWMutex
	name      string
	stations  map[string]Station
	adjacency map[string]map[string]edge
}

// New creates an empty network. The name is informational and may be empty.
func New(name string) *Network {
	return &Network{
		name:      name,
		stations:  make(map[string]Station),
		adjacency: make(map[string]map[string]edge),
	}
}

// Name returns the network's informational name.
func (n *Network) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

// AddStation registers a station without coordinates, keyed by name.
// Registering an existing name overwrites the previous entry entirely,
// including any coordinates it had.
func (n *Network) AddStation(name, line string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("station name is blank: %w", internalerr.ErrInvalidStation)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.stations[name] = Station{Name: name, Line: line}
	return nil
}

// AddStationAt registers a station at a geographic position. Overwrite
// semantics match AddStation.
func (n *Network) AddStationAt(name, line string, lat, lon float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("station name is blank: %w", internalerr.ErrInvalidStation)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.stations[name] = Station{Name: name, Line: line, Coord: &Coord{Lat: lat, Lon: lon}}
	return nil
}

// AddConnection records an undirected connection between two stations with
// a distance in kilometers and a travel time in minutes. The endpoints do
// not have to be registered yet; Validate reports connections left dangling.
// Negative weights, blank endpoints and self-loops are rejected, leaving
// the network unchanged.
func (n *Network) AddConnection(a, b string, distanceKm, timeMin float64) error {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return fmt.Errorf("connection endpoint is blank: %w", internalerr.ErrInvalidConnection)
	}
	if a == b {
		return fmt.Errorf("connection %s-%s is a self-loop: %w", a, b, internalerr.ErrInvalidConnection)
	}
	if distanceKm < 0 {
		return fmt.Errorf("connection %s-%s: negative distance %.3f: %w", a, b, distanceKm, internalerr.ErrInvalidConnection)
	}
	if timeMin < 0 {
		return fmt.Errorf("connection %s-%s: negative time %.3f: %w", a, b, timeMin, internalerr.ErrInvalidConnection)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	e := edge{distanceKm: distanceKm, timeMin: timeMin}
	n.setEdge(a, b, e)
	n.setEdge(b, a, e)
	return nil
}

func (n *Network) setEdge(from, to string, e edge) {
	if n.adjacency[from] == nil {
		n.adjacency[from] = make(map[string]edge)
	}
	n.adjacency[from][to] = e
}

// Neighbors returns the direct connections of a station, sorted by
// neighbor name. A registered station with no connections yields an empty
// slice, not an error.
func (n *Network) Neighbors(name string) ([]Link, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, ok := n.stations[name]; !ok {
		return nil, fmt.Errorf("neighbors of %q: %w", name, internalerr.ErrUnknownStation)
	}

	links := make([]Link, 0, len(n.adjacency[name]))
	for to, e := range n.adjacency[name] {
		links = append(links, Link{To: to, DistanceKm: e.distanceKm, TimeMin: e.timeMin})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].To < links[j].To })
	return links, nil
}

// RequiresTransfer reports whether moving between two stations means
// changing lines.
func (n *Network) RequiresTransfer(a, b string) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	sa, ok := n.stations[a]
	if !ok {
		return false, fmt.Errorf("transfer check %q: %w", a, internalerr.ErrUnknownStation)
	}
	sb, ok := n.stations[b]
	if !ok {
		return false, fmt.Errorf("transfer check %q: %w", b, internalerr.ErrUnknownStation)
	}
	return sa.Line != sb.Line, nil
}

// Heuristic estimates the distance in kilometers between two stations as
// the great-circle distance between their coordinates. It returns
// ErrMissingCoordinates when either station has no position.
func (n *Network) Heuristic(a, b string) (float64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	sa, ok := n.stations[a]
	if !ok {
		return 0, fmt.Errorf("heuristic %q: %w", a, internalerr.ErrUnknownStation)
	}
	sb, ok := n.stations[b]
	if !ok {
		return 0, fmt.Errorf("heuristic %q: %w", b, internalerr.ErrUnknownStation)
	}
	if sa.Coord == nil {
		return 0, fmt.Errorf("heuristic: station %q: %w", a, internalerr.ErrMissingCoordinates)
	}
	if sb.Coord == nil {
		return 0, fmt.Errorf("heuristic: station %q: %w", b, internalerr.ErrMissingCoordinates)
	}
	return haversineKm(*sa.Coord, *sb.Coord), nil
}

// Connection returns the direct link between two stations, if one exists.
func (n *Network) Connection(a, b string) (Link, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	e, ok := n.adjacency[a][b]
	if !ok {
		return Link{}, false
	}
	return Link{To: b, DistanceKm: e.distanceKm, TimeMin: e.timeMin}, true
}

// Station returns a registered station by name.
func (n *Network) Station(name string) (Station, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	s, ok := n.stations[name]
	if !ok {
		return Station{}, false
	}
	return copyStation(s), true
}

// Stations returns all registered stations sorted by name.
func (n *Network) Stations() []Station {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Station, 0, len(n.stations))
	for _, s := range n.stations {
		out = append(out, copyStation(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lines returns the distinct line labels in use, sorted.
func (n *Network) Lines() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, s := range n.stations {
		seen[s.Line] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for line := range seen {
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

// NumStations returns the number of registered stations.
func (n *Network) NumStations() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.stations)
}

// NumConnections returns the number of undirected connections.
func (n *Network) NumConnections() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	total := 0
	for _, tos := range n.adjacency {
		total += len(tos)
	}
	return total / 2
}

func copyStation(s Station) Station {
	if s.Coord != nil {
		c := *s.Coord
		s.Coord = &c
	}
	return s
}
