/*
 * write.go, part of readcon.
 *
 * Copyright 2026 The readcon Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package readcon

import (
	"io"
	"strconv"
)

//VelocityLayout selects where velocities are written.
type VelocityLayout int

const (
	//LayoutSection writes velocities in a separate section after the coordinates (CONVEL).
	LayoutSection VelocityLayout = iota
	//LayoutInline appends the velocity to each atom record.
	LayoutInline
)

func (V VelocityLayout) String() string {
	if V == LayoutInline {
		return "inline"
	}
	return "section"
}

//ParseVelocityLayout returns the layout named s ("section" or "inline").
func ParseVelocityLayout(s string) (VelocityLayout, error) {
	switch s {
	case "section", "":
		return LayoutSection, nil
	case "inline":
		return LayoutInline, nil
	}
	return LayoutSection, validationErr(-1, "ParseVelocityLayout", "unknown velocity layout %q", s)
}

type writerConfig struct {
	precision int
	layout    VelocityLayout
}

//WriterOption modifies the output of a Writer.
type WriterOption func(*writerConfig)

//WithPrecision sets the number of digits after the decimal point for all floating point fields.
func WithPrecision(p int) WriterOption {
	return func(c *writerConfig) { c.precision = p }
}

//WithVelocityLayout sets where velocities are written.
func WithVelocityLayout(l VelocityLayout) WriterOption {
	return func(c *writerConfig) { c.layout = l }
}

func newWriterConfig(opts []WriterOption) writerConfig {
	c := writerConfig{precision: DefaultPrecision, layout: LayoutSection}
	for _, o := range opts {
		o(&c)
	}
	return c
}

//Writer writes frames to an io.Writer. Each call to WriteFrame or Extend either
//writes all of its frames or nothing.
type Writer struct {
	w      io.Writer
	cfg    writerConfig
	frames int //frames written so far, to locate errors
	buf    []byte
}

//NewWriter returns a Writer on w. Without options it writes 6 decimal digits and
//puts velocities in a separate section.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	return &Writer{w: w, cfg: newWriterConfig(opts)}
}

//Precision returns the number of decimal digits the writer uses.
func (W *Writer) Precision() int {
	return W.cfg.precision
}

//WriteFrame writes one frame.
func (W *Writer) WriteFrame(F *Frame) error {
	return errDecorate(W.Extend([]*Frame{F}), "WriteFrame")
}

//Extend writes the given frames. All frames are checked before anything is written.
func (W *Writer) Extend(frames []*Frame) error {
	var err error
	W.buf, err = appendFrames(W.buf[:0], frames, W.frames, W.cfg)
	if err != nil {
		return errDecorate(err, "Extend")
	}
	if _, err = W.w.Write(W.buf); err != nil {
		return NewIOError("", err, "Extend")
	}
	W.frames += len(frames)
	return nil
}

//Marshal returns the text for the given frames.
func Marshal(frames []*Frame, opts ...WriterOption) ([]byte, error) {
	b, err := appendFrames(nil, frames, 0, newWriterConfig(opts))
	if err != nil {
		return nil, errDecorate(err, "Marshal")
	}
	return b, nil
}

//Serialize returns the text for the given frames, writing floating point fields with
//precision digits after the decimal point.
//Absent masses are written as zero and a zero mass is read back as absent, so a
//mass that rounds to zero at the given precision does not survive a round trip.
func Serialize(frames []*Frame, precision int) (string, error) {
	b, err := appendFrames(nil, frames, 0, newWriterConfig([]WriterOption{WithPrecision(precision)}))
	if err != nil {
		return "", errDecorate(err, "Serialize")
	}
	return string(b), nil
}

//appendFrames appends the text for frames to dst. first is the index of frames[0] in
//the whole document. On error, dst is returned unchanged along with the error.
func appendFrames(dst []byte, frames []*Frame, first int, cfg writerConfig) ([]byte, error) {
	if cfg.precision < 0 {
		return dst, validationErr(-1, "appendFrames", "negative precision %d", cfg.precision)
	}
	orig := len(dst)
	var err error
	for i, F := range frames {
		if F == nil {
			return dst[:orig], validationErr(first+i, "appendFrames", "nil frame")
		}
		dst, err = appendFrame(dst, F, first+i, cfg)
		if err != nil {
			return dst[:orig], err
		}
	}
	return dst, nil
}

func appendFrame(dst []byte, F *Frame, frame int, cfg writerConfig) ([]byte, error) {
	blocks, err := groupTypes(F, frame)
	if err != nil {
		return dst, err
	}
	p := cfg.precision
	pre := headerLines(F.PreboxHeader, DefaultPrebox)
	post := headerLines(F.PostboxHeader, DefaultPostbox)
	dst = appendLine(dst, pre[0])
	dst = appendLine(dst, pre[1])
	dst = appendFloats(dst, F.Cell[:], p)
	dst = appendFloats(dst, F.Angles[:], p)
	dst = appendLine(dst, post[0])
	dst = appendLine(dst, post[1])
	dst = strconv.AppendInt(dst, int64(len(blocks)), 10)
	dst = append(dst, '\n')
	for k, b := range blocks {
		if k > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendInt(dst, int64(len(b.members)), 10)
	}
	dst = append(dst, '\n')
	for k, b := range blocks {
		if k > 0 {
			dst = append(dst, ' ')
		}
		m := 0.0 //absent masses are written as zero
		if b.mass != nil {
			m = *b.mass
		}
		dst = appendFloat(dst, m, p)
	}
	dst = append(dst, '\n')
	vel := F.HasVelocities()
	inline := vel && cfg.layout == LayoutInline
	for k, b := range blocks {
		dst = appendLine(dst, b.symbol)
		dst = appendMarker(dst, coordMarker, k)
		for _, i := range b.members {
			a := F.Atoms[i]
			dst = appendRecord(dst, a.X, a.Y, a.Z, a, p)
			if inline {
				dst = dst[:len(dst)-1]
				dst = append(dst, ' ')
				dst = appendFloats(dst, []float64{a.Vel.X, a.Vel.Y, a.Vel.Z}, p)
			}
		}
	}
	if vel && !inline {
		dst = append(dst, '\n')
		for k, b := range blocks {
			dst = appendLine(dst, b.symbol)
			dst = appendMarker(dst, velocityMarker, k)
			for _, i := range b.members {
				a := F.Atoms[i]
				dst = appendRecord(dst, a.Vel.X, a.Vel.Y, a.Vel.Z, a, p)
			}
		}
	}
	return dst, nil
}

//headerLines returns the two header lines to write, filling in defaults for missing ones.
func headerLines(h []string, def [2]string) [2]string {
	ret := def
	copy(ret[:], h)
	return ret
}

func appendLine(dst []byte, s string) []byte {
	dst = append(dst, s...)
	return append(dst, '\n')
}

func appendMarker(dst []byte, marker string, k int) []byte {
	dst = append(dst, marker...)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(k+1), 10)
	return append(dst, '\n')
}

func appendFloats(dst []byte, v []float64, p int) []byte {
	for i, f := range v {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = appendFloat(dst, f, p)
	}
	return append(dst, '\n')
}

//appendRecord writes "x y z fixed id".
func appendRecord(dst []byte, x, y, z float64, a *Atom, p int) []byte {
	dst = appendFloat(dst, x, p)
	dst = append(dst, ' ')
	dst = appendFloat(dst, y, p)
	dst = append(dst, ' ')
	dst = appendFloat(dst, z, p)
	if a.Fixed {
		dst = append(dst, " 1 "...)
	} else {
		dst = append(dst, " 0 "...)
	}
	dst = strconv.AppendUint(dst, a.ID, 10)
	return append(dst, '\n')
}
