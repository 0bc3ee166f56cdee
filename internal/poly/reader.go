package poly

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// File is a decoded .poly document.
type File struct {
	Name     string
	Sections []Section
}

// Section is one ring of a .poly document.
type Section struct {
	Name string
	Ring orb.Ring
	Hole bool
}

// SyntaxError describes a malformed line in a .poly document.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("poly: line %d: %s", e.Line, e.Msg)
	}
	return "poly: " + e.Msg
}

// Read parses a complete .poly document from r.
func Read(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0

	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	name, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, &SyntaxError{Msg: "empty document"}
	}
	f := &File{Name: name}

	for {
		line, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, &SyntaxError{Line: lineNo, Msg: "missing closing " + End}
		}
		if line == End {
			break
		}

		sec := Section{Name: line, Hole: line[0] == holePrefix}
		for {
			line, ok = next()
			if !ok {
				if err := sc.Err(); err != nil {
					return nil, err
				}
				return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("section %q is not closed", sec.Name)}
			}
			if line == End {
				break
			}

			p, err := parseCoordLine(line)
			if err != nil {
				return nil, &SyntaxError{Line: lineNo, Msg: err.Error()}
			}
			sec.Ring = append(sec.Ring, p)
		}

		f.Sections = append(f.Sections, sec)
	}

	return f, nil
}

func parseCoordLine(line string) (orb.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return orb.Point{}, fmt.Errorf("expected 2 coordinates, got %d", len(fields))
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude %q", fields[0])
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude %q", fields[1])
	}

	return orb.Point{lon, lat}, nil
}
