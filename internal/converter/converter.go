// Package converter transcodes GeoJSON polygon feature collections into .poly documents.
package converter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/geojson2poly/internal/geo"
	"github.com/woozymasta/geojson2poly/internal/poly"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of the input document.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the input format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is a decoded feature collection reduced to what the .poly output needs.
// Polygons are in numbering order: Polygons[i] is polygon i+1.
type Document struct {
	Polygons []orb.Polygon
	Skipped  int
}

// Summary describes a finished conversion.
type Summary struct {
	Polygons int
	Rings    int
	Points   int
	Skipped  int
}

// Decode parses and validates a complete GeoJSON document.
// Nothing is written, so any error leaves the caller's sink untouched.
func Decode(data []byte, format Format) (*Document, error) {
	if format == FormatYAML {
		var err error
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	}

	fc, err := decodeCollection(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for i, f := range fc.Features {
		g := f.Geometry
		if !g.IsPolygonal() {
			doc.Skipped++
			if g != nil {
				log.Trace().Int("feature", i).Str("type", g.Type).Msg("Skipping non-polygonal geometry")
			} else {
				log.Trace().Int("feature", i).Msg("Skipping feature without geometry")
			}
			continue
		}

		if g.Type == geo.TypePolygon {
			p, err := g.Polygon()
			if err != nil {
				return nil, &GeometryError{Type: g.Type, Feature: i, Cause: err}
			}
			doc.add(i, p)
			continue
		}

		mp, err := g.MultiPolygon()
		if err != nil {
			return nil, &GeometryError{Type: g.Type, Feature: i, Cause: err}
		}
		for _, p := range mp {
			doc.add(i, p)
		}
	}

	return doc, nil
}

func (d *Document) add(feature int, p orb.Polygon) {
	d.Polygons = append(d.Polygons, p)

	ev := log.Debug()
	if ev.Enabled() {
		b := p.Bound()
		ev.Int("polygon", len(d.Polygons)).
			Int("feature", feature).
			Int("rings", len(p)).
			Floats64("min", []float64{b.Min.Lon(), b.Min.Lat()}).
			Floats64("max", []float64{b.Max.Lon(), b.Max.Lat()}).
			Msg("Polygon queued")
	}
}

// Encode writes doc as a .poly document.
func Encode(w io.Writer, doc *Document) (Summary, error) {
	s, err := encode(w, doc)
	if err != nil {
		return s, &IOError{Op: "write", Cause: err}
	}
	return s, nil
}

func encode(w io.Writer, doc *Document) (Summary, error) {
	s := Summary{Skipped: doc.Skipped}
	pw := poly.NewWriter(w)

	for i, p := range doc.Polygons {
		if err := pw.WritePolygon(i+1, p); err != nil {
			return s, err
		}
		s.Polygons++
	}
	if err := pw.Close(); err != nil {
		return s, err
	}

	s.Rings = pw.Sections()
	s.Points = pw.Points()
	return s, nil
}

// Convert reads a whole GeoJSON document from r and writes the .poly document to w.
func Convert(r io.Reader, w io.Writer, format Format) (Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, &IOError{Op: "read", Cause: err}
	}

	doc, err := Decode(data, format)
	if err != nil {
		return Summary{}, err
	}

	return Encode(w, doc)
}

// ConvertFile converts the GeoJSON file at inPath into a .poly file at outPath,
// replacing outPath if it exists. The output is created only once the input
// decoded successfully.
func ConvertFile(inPath, outPath string, format Format) (Summary, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return Summary{}, &IOError{Op: "read", Path: inPath, Cause: err}
	}

	return decodeToFile(data, outPath, format)
}

// ConvertToFile reads a whole GeoJSON document from r and writes the .poly
// document to outPath with the same guarantees as ConvertFile.
func ConvertToFile(r io.Reader, outPath string, format Format) (Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, &IOError{Op: "read", Cause: err}
	}

	return decodeToFile(data, outPath, format)
}

func decodeToFile(data []byte, outPath string, format Format) (s Summary, err error) {
	doc, err := Decode(data, format)
	if err != nil {
		return s, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return s, &IOError{Op: "create", Path: outPath, Cause: err}
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &IOError{Op: "close", Path: outPath, Cause: closeErr}
		}
	}()

	if s, err = encode(f, doc); err != nil {
		return s, &IOError{Op: "write", Path: outPath, Cause: err}
	}

	log.Info().
		Str("output", outPath).
		Int("polygons", s.Polygons).
		Int("rings", s.Rings).
		Int("points", s.Points).
		Int("skipped", s.Skipped).
		Msg("Conversion finished")

	return s, nil
}

func decodeCollection(data []byte) (geo.FeatureCollection, error) {
	var fc geo.FeatureCollection

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fc, &SchemaError{Feature: -1, Message: "document is not a JSON object"}
		}
		return fc, parseError(err)
	}

	rawFeatures, ok := root["features"]
	if !ok || isNull(rawFeatures) {
		return fc, &SchemaError{Feature: -1, Message: `missing "features"`}
	}

	var features []json.RawMessage
	if err := json.Unmarshal(rawFeatures, &features); err != nil {
		return fc, &SchemaError{Feature: -1, Message: `"features" is not an array`}
	}

	fc.Features = make([]geo.Feature, 0, len(features))
	for i, raw := range features {
		// only the geometry is consulted, other members are never decoded
		var f struct {
			Geometry json.RawMessage `json:"geometry"`
		}
		if err := json.Unmarshal(raw, &f); err != nil {
			return fc, &SchemaError{Feature: i, Message: "not a feature object"}
		}

		var feature geo.Feature
		if len(f.Geometry) > 0 && !isNull(f.Geometry) {
			var g geo.Geometry
			if err := json.Unmarshal(f.Geometry, &g); err != nil {
				return fc, &SchemaError{Feature: i, Message: "invalid geometry object"}
			}
			feature.Geometry = &g
		}

		fc.Features = append(fc.Features, feature)
	}

	return fc, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Cause: err}
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("yaml is not representable as json: %w", err)}
	}

	return out, nil
}

func parseError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Offset: syntaxErr.Offset, Cause: err}
	}
	return &ParseError{Cause: err}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
