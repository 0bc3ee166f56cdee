// Package poly reads and writes the Osmosis .poly polygon filter format.
//
// A document is a header line, a list of sections and a closing END line:
//
//	none
//	1
//	   0.0000000   0.0000000
//	   1.0000000   0.0000000
//	END
//	!1_1
//	   ...
//	END
//	END
//
// Section 1 is the outer ring of polygon 1, section !1_1 its first hole.
package poly

import (
	"strconv"
)

const (
	// Header is the document name written on the first line.
	Header = "none"
	// End closes a section and, once more, the whole document.
	End = "END"

	// Precision is the number of digits written after the decimal point.
	Precision = 7

	holePrefix = '!'
	indent     = "   "
)

// SectionName returns the section label for the ring at position ring of the
// polygon numbered polygon. The outer ring (position 0) is labelled with the
// bare polygon number, holes with !N_i.
func SectionName(polygon, ring int) string {
	name := strconv.Itoa(polygon)
	if ring > 0 {
		return string(holePrefix) + name + "_" + strconv.Itoa(ring)
	}

	return name
}

// FormatCoord formats v in fixed-point notation with Precision digits.
func FormatCoord(v float64) string {
	return string(AppendCoord(nil, v))
}

// AppendCoord appends v formatted as by FormatCoord to buf.
func AppendCoord(buf []byte, v float64) []byte {
	return strconv.AppendFloat(buf, v, 'f', Precision, 64)
}

func appendCoordLine(buf []byte, lon, lat float64) []byte {
	buf = append(buf, indent...)
	buf = AppendCoord(buf, lon)
	buf = append(buf, indent...)
	buf = AppendCoord(buf, lat)
	return append(buf, '\n')
}
