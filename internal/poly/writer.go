package poly

import (
	"bufio"
	"errors"
	"io"

	"github.com/paulmach/orb"
)

// ErrClosed is returned when writing to a Writer after Close.
var ErrClosed = errors.New("poly: writer closed")

// Writer emits a .poly document section by section.
// The header is written before the first section, the closing END on Close.
type Writer struct {
	w       *bufio.Writer
	buf     []byte
	err     error
	started bool
	closed  bool

	sections int
	points   int
}

// NewWriter returns a Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:   bufio.NewWriter(w),
		buf: make([]byte, 0, 64),
	}
}

// WriteRing writes one section named name containing the ring coordinates.
func (pw *Writer) WriteRing(name string, ring orb.Ring) error {
	if err := pw.begin(); err != nil {
		return err
	}

	pw.writeLine(name)
	for _, p := range ring {
		pw.buf = appendCoordLine(pw.buf[:0], p.Lon(), p.Lat())
		pw.write(pw.buf)
	}
	pw.writeLine(End)

	pw.sections++
	pw.points += len(ring)

	return pw.err
}

// WritePolygon writes every ring of p as sections of the polygon numbered index.
func (pw *Writer) WritePolygon(index int, p orb.Polygon) error {
	for i, ring := range p {
		if err := pw.WriteRing(SectionName(index, i), ring); err != nil {
			return err
		}
	}

	return nil
}

// Close writes the closing END line and flushes buffered output.
// It does not close the underlying writer.
func (pw *Writer) Close() error {
	if err := pw.begin(); err != nil {
		return err
	}

	pw.writeLine(End)
	pw.closed = true
	if pw.err != nil {
		return pw.err
	}

	pw.err = pw.w.Flush()
	return pw.err
}

// Sections returns the number of sections written so far.
func (pw *Writer) Sections() int {
	return pw.sections
}

// Points returns the number of coordinate lines written so far.
func (pw *Writer) Points() int {
	return pw.points
}

func (pw *Writer) begin() error {
	if pw.closed {
		return ErrClosed
	}
	if pw.err != nil {
		return pw.err
	}
	if !pw.started {
		pw.started = true
		pw.writeLine(Header)
	}

	return pw.err
}

func (pw *Writer) writeLine(s string) {
	if pw.err != nil {
		return
	}
	if _, err := pw.w.WriteString(s); err != nil {
		pw.err = err
		return
	}
	pw.err = pw.w.WriteByte('\n')
}

func (pw *Writer) write(b []byte) {
	if pw.err != nil {
		return
	}
	_, pw.err = pw.w.Write(b)
}
