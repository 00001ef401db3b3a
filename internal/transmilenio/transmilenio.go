// Package transmilenio builds the demo network used by the command-line
// tools, the examples and the tests: a simplified slice of Bogotá's
// TransMilenio system with three trunk lines joined through a transfer hub.
package transmilenio

import (
	"fmt"

	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

// Name is the informational name of the demo network.
const Name = "TransMilenio Bogotá"

var stations = []struct {
	name, line string
	lat, lon   float64
}{
	{"Portal Norte", "Troncal Caracas", 4.7656, -74.0467},
	{"Toberín", "Troncal Caracas", 4.7532, -74.0464},
	{"Calle 142", "Troncal Caracas", 4.7241, -74.0511},
	{"Alcalá", "Troncal Caracas", 4.7110, -74.0532},
	{"Calle 100", "Troncal Caracas", 4.6858, -74.0549},
	{"Virrey", "Troncal Caracas", 4.6656, -74.0569},

	{"Portal Suba", "Troncal NQS", 4.7462, -74.0832},
	{"Suba Calle 95", "Troncal NQS", 4.7279, -74.0834},
	{"Calle 75", "Troncal NQS", 4.6771, -74.0613},
	{"Heroes", "Troncal NQS", 4.6531, -74.0633},
	{"CAD", "Troncal NQS", 4.6437, -74.0641},

	{"Portal Américas", "Troncal Américas", 4.6172, -74.1413},
	{"Pradera", "Troncal Américas", 4.6294, -74.1291},
	{"Marsella", "Troncal Américas", 4.6376, -74.1156},
	{"Zona Industrial", "Troncal Américas", 4.6445, -74.1069},

	{"Centro Memoria", "Transbordo", 4.6569, -74.0611},
}

var connections = []struct {
	a, b       string
	distanceKm float64
	timeMin    float64
}{
	{"Portal Norte", "Toberín", 1.5, 3},
	{"Toberín", "Calle 142", 3.2, 6},
	{"Calle 142", "Alcalá", 1.8, 4},
	{"Alcalá", "Calle 100", 2.8, 5},
	{"Calle 100", "Virrey", 2.3, 4},

	{"Portal Suba", "Suba Calle 95", 2.1, 4},
	{"Suba Calle 95", "Calle 75", 5.8, 10},
	{"Calle 75", "Heroes", 2.8, 5},
	{"Heroes", "CAD", 1.2, 3},
	{"CAD", "Centro Memoria", 0.8, 2},

	{"Portal Américas", "Pradera", 1.7, 3},
	{"Pradera", "Marsella", 1.9, 4},
	{"Marsella", "Zona Industrial", 1.5, 3},
	{"Zona Industrial", "Centro Memoria", 1.2, 3},

	// Trunk interchanges around the city centre.
	{"Virrey", "Calle 75", 1.5, 8},
	{"Virrey", "Centro Memoria", 1.8, 5},
}

// New builds the demo network. The data is static and valid, so a failure
// here means the registration rules themselves regressed.
func New() *network.Network {
	n := network.New(Name)
	for _, s := range stations {
		if err := n.AddStationAt(s.name, s.line, s.lat, s.lon); err != nil {
			panic(fmt.Sprintf("transmilenio: station %s: %v", s.name, err))
		}
	}
	for _, c := range connections {
		if err := n.AddConnection(c.a, c.b, c.distanceKm, c.timeMin); err != nil {
			panic(fmt.Sprintf("transmilenio: connection %s-%s: %v", c.a, c.b, err))
		}
	}
	return n
}
