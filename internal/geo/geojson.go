// Package geo handles GeoJSON data structures and their conversion into orb geometries.
package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Geometry types that contribute sections to a .poly document.
const (
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

// ErrNoCoordinates is returned when a geometry has no usable coordinates member.
var ErrNoCoordinates = errors.New("missing coordinates")

// FeatureCollection represents a collection of geographic features.
// Features keep their document order.
type FeatureCollection struct {
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature. Only the geometry is consulted.
type Feature struct {
	Geometry *Geometry `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature.
// Coordinates stay raw until the type is known to be supported.
type Geometry struct {
	Type        string          `json:"type" yaml:"type"`
	Coordinates json.RawMessage `json:"coordinates" yaml:"coordinates"`
}

// UnmarshalJSON decodes a geometry object. A type member that is missing or
// not a string leaves Type empty, so the geometry is treated as unsupported.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        json.RawMessage `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = ""
	if len(raw.Type) > 0 && raw.Type[0] == '"' {
		if err := json.Unmarshal(raw.Type, &g.Type); err != nil {
			return err
		}
	}
	g.Coordinates = raw.Coordinates

	return nil
}

// IsPolygonal reports whether the geometry contributes sections to a .poly document.
func (g *Geometry) IsPolygonal() bool {
	return g != nil && (g.Type == TypePolygon || g.Type == TypeMultiPolygon)
}

// Polygon decodes the coordinates as a Polygon: an array of rings.
func (g *Geometry) Polygon() (orb.Polygon, error) {
	raw, err := g.decodeCoordinates()
	if err != nil {
		return nil, err
	}

	return toPolygon(raw)
}

// MultiPolygon decodes the coordinates as a MultiPolygon: an array of polygons.
func (g *Geometry) MultiPolygon() (orb.MultiPolygon, error) {
	raw, err := g.decodeCoordinates()
	if err != nil {
		return nil, err
	}

	polygons, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("coordinates: expected array of polygons, got %s", kind(raw))
	}

	mp := make(orb.MultiPolygon, 0, len(polygons))
	for i, rp := range polygons {
		p, err := toPolygon(rp)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		mp = append(mp, p)
	}

	return mp, nil
}

func (g *Geometry) decodeCoordinates() (any, error) {
	c := bytes.TrimSpace(g.Coordinates)
	if len(c) == 0 || bytes.Equal(c, []byte("null")) {
		return nil, ErrNoCoordinates
	}

	var raw any
	if err := json.Unmarshal(c, &raw); err != nil {
		return nil, fmt.Errorf("coordinates: %w", err)
	}

	return raw, nil
}

func toPolygon(raw any) (orb.Polygon, error) {
	rings, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array of rings, got %s", kind(raw))
	}

	p := make(orb.Polygon, 0, len(rings))
	for i, rr := range rings {
		positions, ok := rr.([]any)
		if !ok {
			return nil, fmt.Errorf("ring %d: expected array of positions, got %s", i, kind(rr))
		}

		ring := make(orb.Ring, 0, len(positions))
		for j, pos := range positions {
			pt, err := toPoint(pos)
			if err != nil {
				return nil, fmt.Errorf("ring %d position %d: %w", i, j, err)
			}
			ring = append(ring, pt)
		}
		p = append(p, ring)
	}

	return p, nil
}

// toPoint reads lon and lat, elevation and anything after it is ignored.
func toPoint(raw any) (orb.Point, error) {
	pos, ok := raw.([]any)
	if !ok {
		return orb.Point{}, fmt.Errorf("expected array of numbers, got %s", kind(raw))
	}
	if len(pos) < 2 {
		return orb.Point{}, fmt.Errorf("expected at least 2 components, got %d", len(pos))
	}

	lon, ok := pos[0].(float64)
	if !ok {
		return orb.Point{}, fmt.Errorf("longitude: expected number, got %s", kind(pos[0]))
	}
	lat, ok := pos[1].(float64)
	if !ok {
		return orb.Point{}, fmt.Errorf("latitude: expected number, got %s", kind(pos[1]))
	}

	return orb.Point{lon, lat}, nil
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
