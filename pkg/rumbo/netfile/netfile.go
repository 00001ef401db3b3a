// Package netfile loads transit network definitions from YAML files.
//
// A definition file declares the stations and connections of one network.
// Parse checks the schema: required fields, coordinate ranges, non-negative
// weights, and duplicate declarations. Semantic consistency of the built
// network (dangling connection endpoints in particular) stays the job of
// network.Validate, so a file with a typo in a connection endpoint still
// parses and builds, and the consistency scan points at the typo.
package netfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/transitlab/rumbo/pkg/rumbo/internalerr"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

var validate = validator.New()

// File is one parsed network definition.
type File struct {
	Name        string          `yaml:"name"`
	Stations    []StationDef    `yaml:"stations" validate:"dive"`
	Connections []ConnectionDef `yaml:"connections" validate:"dive"`
}

// StationDef declares one station. Lat and Lon are optional but must come
// as a pair.
type StationDef struct {
	Name string   `yaml:"name" validate:"required"`
	Line string   `yaml:"line" validate:"required"`
	Lat  *float64 `yaml:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `yaml:"lon" validate:"omitempty,gte=-180,lte=180"`
}

// ConnectionDef declares one undirected connection.
type ConnectionDef struct {
	From       string  `yaml:"from" validate:"required"`
	To         string  `yaml:"to" validate:"required,nefield=From"`
	DistanceKm float64 `yaml:"distance_km" validate:"gte=0"`
	TimeMin    float64 `yaml:"time_min" validate:"gte=0"`
}

// Load reads and parses a network definition file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network file: %w", err)
	}
	return Parse(data)
}

// Parse parses and schema-checks a network definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse network file: %v: %w", err, internalerr.ErrInvalidNetworkFile)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) check() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%s: %w", formatValidationError(err), internalerr.ErrInvalidNetworkFile)
	}

	seen := make(map[string]bool, len(f.Stations))
	for _, s := range f.Stations {
		if (s.Lat == nil) != (s.Lon == nil) {
			return fmt.Errorf("station %q: lat and lon must come together: %w", s.Name, internalerr.ErrInvalidNetworkFile)
		}
		if seen[s.Name] {
			return fmt.Errorf("station %q defined twice: %w", s.Name, internalerr.ErrInvalidNetworkFile)
		}
		seen[s.Name] = true
	}

	pairs := make(map[string]bool, len(f.Connections))
	for _, c := range f.Connections {
		key := pairKey(c.From, c.To)
		if pairs[key] {
			return fmt.Errorf("connection %s-%s defined twice: %w", c.From, c.To, internalerr.ErrInvalidNetworkFile)
		}
		pairs[key] = true
	}
	return nil
}

// Build constructs the network. Everything goes through the registration
// API, so the knowledge base invariants hold regardless of file content.
func (f *File) Build() (*network.Network, error) {
	n := network.New(f.Name)
	for _, s := range f.Stations {
		var err error
		if s.Lat != nil {
			err = n.AddStationAt(s.Name, s.Line, *s.Lat, *s.Lon)
		} else {
			err = n.AddStation(s.Name, s.Line)
		}
		if err != nil {
			return nil, fmt.Errorf("build station %q: %w", s.Name, err)
		}
	}
	for _, c := range f.Connections {
		if err := n.AddConnection(c.From, c.To, c.DistanceKm, c.TimeMin); err != nil {
			return nil, fmt.Errorf("build connection %s-%s: %w", c.From, c.To, err)
		}
	}
	return n, nil
}

func formatValidationError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var msgs []string
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, strings.ToLower(e.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
