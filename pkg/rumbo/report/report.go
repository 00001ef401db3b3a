// Package report renders analysis results and route explanations for
// people and machines. JSON output is stable snake_case; Markdown and
// plain text are for terminals and docs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/transitlab/rumbo/pkg/rumbo/analytics"
	"github.com/transitlab/rumbo/pkg/rumbo/explain"
	"github.com/transitlab/rumbo/pkg/rumbo/inference"
)

type jsonReport struct {
	RunID        string        `json:"run_id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Network      string        `json:"network"`
	StationCount int           `json:"station_count"`
	TotalRoutes  int           `json:"total_routes"`
	Summary      jsonSummary   `json:"summary"`
	Extremes     *jsonExtremes `json:"extremes,omitempty"`
	Routes       []jsonRoute   `json:"routes"`
}

type jsonSummary struct {
	PairsAttempted   int     `json:"pairs_attempted"`
	RoutesFound      int     `json:"routes_found"`
	SuccessRate      float64 `json:"success_rate"`
	AvgStations      float64 `json:"avg_stations"`
	MinStations      int     `json:"min_stations"`
	MaxStations      int     `json:"max_stations"`
	AvgTransfers     float64 `json:"avg_transfers"`
	AvgDistanceKm    float64 `json:"avg_distance_km"`
	AvgTimeMin       float64 `json:"avg_time_min"`
	AvgNodesExpanded float64 `json:"avg_nodes_expanded"`
	AvgEfficiency    float64 `json:"avg_efficiency"`
}

type jsonExtremes struct {
	Longest       jsonRoute `json:"longest"`
	MostTransfers jsonRoute `json:"most_transfers"`
	Fastest       jsonRoute `json:"fastest"`
	MostEfficient jsonRoute `json:"most_efficient"`
}

type jsonRoute struct {
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	Found           bool     `json:"found"`
	Path            []string `json:"path,omitempty"`
	TotalCost       float64  `json:"total_cost"`
	Stations        int      `json:"stations"`
	Transfers       int      `json:"transfers"`
	DistanceKm      float64  `json:"distance_km"`
	TimeMin         float64  `json:"time_min"`
	NodesExpanded   int      `json:"nodes_expanded"`
	EfficiencyRatio float64  `json:"efficiency_ratio"`
}

type jsonExplanation struct {
	ID          string       `json:"id"`
	Origin      jsonEndpoint `json:"origin"`
	Destination jsonEndpoint `json:"destination"`
	Legs        []jsonLeg    `json:"legs"`
	TotalCost   float64      `json:"total_cost"`
	Stats       jsonStats    `json:"stats"`
}

type jsonEndpoint struct {
	Station string `json:"station"`
	Line    string `json:"line"`
}

type jsonLeg struct {
	Seq            int    `json:"seq"`
	Station        string `json:"station"`
	Line           string `json:"line"`
	Transfer       bool   `json:"transfer"`
	TransferToLine string `json:"transfer_to_line,omitempty"`
}

type jsonStats struct {
	Stations        int     `json:"stations"`
	Transfers       int     `json:"transfers"`
	DistanceKm      float64 `json:"distance_km"`
	TimeMin         float64 `json:"time_min"`
	NodesExpanded   int     `json:"nodes_expanded"`
	EfficiencyRatio float64 `json:"efficiency_ratio"`
}

// JSON writes an indented JSON rendering of an analysis report.
func JSON(w io.Writer, r analytics.Report) error {
	doc := jsonReport{
		RunID:        r.RunID,
		GeneratedAt:  r.GeneratedAt,
		Network:      r.Network,
		StationCount: r.StationCount,
		TotalRoutes:  len(r.Records),
		Summary: jsonSummary{
			PairsAttempted:   r.Summary.PairsAttempted,
			RoutesFound:      r.Summary.RoutesFound,
			SuccessRate:      r.Summary.SuccessRate,
			AvgStations:      r.Summary.AvgStations,
			MinStations:      r.Summary.MinStations,
			MaxStations:      r.Summary.MaxStations,
			AvgTransfers:     r.Summary.AvgTransfers,
			AvgDistanceKm:    r.Summary.AvgDistanceKm,
			AvgTimeMin:       r.Summary.AvgTimeMin,
			AvgNodesExpanded: r.Summary.AvgNodesExpanded,
			AvgEfficiency:    r.Summary.AvgEfficiency,
		},
	}
	if r.Summary.RoutesFound > 0 {
		doc.Extremes = &jsonExtremes{
			Longest:       routeJSON(r.Extremes.Longest),
			MostTransfers: routeJSON(r.Extremes.MostTransfers),
			Fastest:       routeJSON(r.Extremes.Fastest),
			MostEfficient: routeJSON(r.Extremes.MostEfficient),
		}
	}
	for _, rec := range r.Records {
		doc.Routes = append(doc.Routes, routeJSON(rec))
	}
	return writeJSON(w, doc)
}

// ExplanationJSON writes an indented JSON rendering of one explained route.
func ExplanationJSON(w io.Writer, e explain.Explanation) error {
	doc := jsonExplanation{
		ID:          e.ID,
		Origin:      jsonEndpoint{Station: e.Origin.Station, Line: e.Origin.Line},
		Destination: jsonEndpoint{Station: e.Destination.Station, Line: e.Destination.Line},
		TotalCost:   e.TotalCost,
		Stats:       statsJSON(e.Stats),
	}
	for _, leg := range e.Legs {
		doc.Legs = append(doc.Legs, jsonLeg{
			Seq:            leg.Seq,
			Station:        leg.Station,
			Line:           leg.Line,
			Transfer:       leg.Transfer,
			TransferToLine: leg.TransferToLine,
		})
	}
	return writeJSON(w, doc)
}

func routeJSON(rec analytics.RouteRecord) jsonRoute {
	return jsonRoute{
		Origin:          rec.Origin,
		Destination:     rec.Destination,
		Found:           rec.Found,
		Path:            rec.Path,
		TotalCost:       rec.TotalCost,
		Stations:        rec.Stations,
		Transfers:       rec.Transfers,
		DistanceKm:      rec.DistanceKm,
		TimeMin:         rec.TimeMin,
		NodesExpanded:   rec.NodesExpanded,
		EfficiencyRatio: rec.EfficiencyRatio,
	}
}

func statsJSON(s inference.Stats) jsonStats {
	return jsonStats{
		Stations:        s.Stations,
		Transfers:       s.Transfers,
		DistanceKm:      s.DistanceKm,
		TimeMin:         s.TimeMin,
		NodesExpanded:   s.NodesExpanded,
		EfficiencyRatio: s.EfficiencyRatio,
	}
}

func writeJSON(w io.Writer, doc any) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
