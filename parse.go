/*
 * parse.go, part of readcon.
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
	"fmt"
	"strconv"
	"strings"
)

//Variant selects how the parser treats velocity data.
type Variant int

const (
	VariantAuto   Variant = iota //velocity presence is inferred for each frame
	VariantCon                   //velocity data is a format error
	VariantConvel                //every frame with atoms must carry velocities
)

func (V Variant) String() string {
	switch V {
	case VariantCon:
		return "con"
	case VariantConvel:
		return "convel"
	default:
		return "auto"
	}
}

const (
	coordMarker    = "Coordinates of Component"
	velocityMarker = "Velocities of Component"
	recordFields   = 5 //x y z fixed id
	inlineFields   = 8 //x y z fixed id vx vy vz
)

type parseConfig struct {
	variant Variant
}

//ParseOption modifies the behavior of the parser.
type ParseOption func(*parseConfig)

//WithVariant forces the parser to expect (or reject) velocities.
func WithVariant(v Variant) ParseOption {
	return func(c *parseConfig) { c.variant = v }
}

func newParseConfig(opts []ParseOption) parseConfig {
	var c parseConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}

//Parse reads all the frames in text. It either returns every frame or an error,
//never a partial result.
func Parse(text string, opts ...ParseOption) ([]*Frame, error) {
	cfg := newParseConfig(opts)
	L := newLineReader(text)
	var frames []*Frame
	for i := 0; !L.restBlank(); i++ {
		F, err := parseFrame(L, i, cfg, true)
		if err != nil {
			return nil, errDecorate(err, "Parse")
		}
		frames = append(frames, F)
	}
	return frames, nil
}

//ParseBytes is like Parse, but takes the raw content of a file.
func ParseBytes(data []byte, opts ...ParseOption) ([]*Frame, error) {
	frames, err := Parse(string(data), opts...)
	return frames, errDecorate(err, "ParseBytes")
}

//lineReader walks the lines of a document, keeping track of line numbers.
type lineReader struct {
	lines []string
	pos   int //index of the next line to be read
}

func newLineReader(text string) *lineReader {
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, v := range lines {
		lines[i] = strings.TrimSuffix(v, "\r")
	}
	return &lineReader{lines: lines}
}

//next returns the next line and its 1-based number. ok is false at the end of input.
func (L *lineReader) next() (line string, lno int, ok bool) {
	if L.pos >= len(L.lines) {
		return "", L.pos + 1, false
	}
	L.pos++
	return L.lines[L.pos-1], L.pos, true
}

//peek returns the line k positions after the next one, without consuming anything.
func (L *lineReader) peek(k int) (string, bool) {
	if L.pos+k >= len(L.lines) {
		return "", false
	}
	return L.lines[L.pos+k], true
}

//restBlank is true if nothing but blank lines remains.
func (L *lineReader) restBlank() bool {
	for _, v := range L.lines[L.pos:] {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

//frameParser holds what is needed to read one frame and to report errors in it.
type frameParser struct {
	L     *lineReader
	frame int
}

//need reads the next line, which the grammar says must be what.
func (P *frameParser) need(what string) (string, int, error) {
	s, lno, ok := P.L.next()
	if !ok {
		return "", lno, formatErr(P.frame, lno, "need", "unexpected end of input, expected %s", what)
	}
	return s, lno, nil
}

func (P *frameParser) floats(what string, n int) ([]float64, error) {
	s, lno, err := P.need(what)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, formatErr(P.frame, lno, "floats", "expected %d values in %s, found %d", n, what, len(fields))
	}
	ret := make([]float64, n)
	for i, v := range fields {
		if ret[i], err = parseFloat(v); err != nil {
			return nil, formatErr(P.frame, lno, "floats", "invalid number %q in %s", v, what)
		}
	}
	return ret, nil
}

func (P *frameParser) ints(what string, n int) ([]int, error) {
	s, lno, err := P.need(what)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, formatErr(P.frame, lno, "ints", "expected %d integers in %s, found %d", n, what, len(fields))
	}
	ret := make([]int, n)
	for i, v := range fields {
		u, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, formatErr(P.frame, lno, "ints", "invalid non-negative integer %q in %s", v, what)
		}
		ret[i] = int(u)
	}
	return ret, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

//parseFrame reads one frame from L. If build is false, the frame is read and checked
//but no atoms are allocated and the returned frame is nil.
func parseFrame(L *lineReader, frame int, cfg parseConfig, build bool) (*Frame, error) {
	P := &frameParser{L: L, frame: frame}
	var F *Frame
	if build {
		F = new(Frame)
	}
	pre := make([]string, 2)
	post := make([]string, 2)
	var err error
	for i := range pre {
		if pre[i], _, err = P.need(fmt.Sprintf("prebox header line %d", i+1)); err != nil {
			return nil, err
		}
	}
	cell, err := P.floats("cell lengths", 3)
	if err != nil {
		return nil, err
	}
	angles, err := P.floats("cell angles", 3)
	if err != nil {
		return nil, err
	}
	for i := range post {
		if post[i], _, err = P.need(fmt.Sprintf("postbox header line %d", i+1)); err != nil {
			return nil, err
		}
	}
	ntypes, err := P.ints("number of atom types", 1)
	if err != nil {
		return nil, err
	}
	counts, err := P.ints("atom counts per type", ntypes[0])
	if err != nil {
		return nil, err
	}
	masses, err := P.floats("masses per type", ntypes[0])
	if err != nil {
		return nil, err
	}
	total := 0
	for _, v := range counts {
		total += v
	}
	if build {
		F.PreboxHeader = pre
		copy(F.Cell[:], cell)
		copy(F.Angles[:], angles)
		F.PostboxHeader = post
		F.Atoms = make([]*Atom, 0, min(total, len(L.lines)-L.pos))
	}
	symbols := make([]string, len(counts))
	width := 0 //fields per atom record in this frame, set by the first record
	for k, n := range counts {
		s, lno, err := P.need(fmt.Sprintf("symbol of component %d", k+1))
		if err != nil {
			return nil, err
		}
		symbols[k] = strings.TrimSpace(s)
		if symbols[k] == "" || len(strings.Fields(symbols[k])) != 1 {
			return nil, formatErr(frame, lno, "parseFrame", "invalid symbol %q for component %d", s, k+1)
		}
		if _, _, err = P.need(fmt.Sprintf("%q line of component %d", coordMarker, k+1)); err != nil {
			return nil, err
		}
		for j := 0; j < n; j++ {
			s, lno, ok := L.next()
			if !ok {
				return nil, formatErr(frame, lno, "parseFrame", "unexpected end of input, expected atom record %d of component %d", j+1, k+1)
			}
			fields := strings.Fields(s)
			if width == 0 && (len(fields) == recordFields || len(fields) == inlineFields) {
				width = len(fields)
			}
			if width == 0 {
				return nil, formatErr(frame, lno, "parseFrame", "expected %d (or %d with velocities) values in atom record, found %d", recordFields, inlineFields, len(fields))
			}
			if len(fields) != width {
				return nil, formatErr(frame, lno, "parseFrame", "atom record has %d values, previous records of this frame have %d", len(fields), width)
			}
			a, err := parseRecord(fields)
			if err != nil {
				return nil, formatErr(frame, lno, "parseFrame", "%s in atom record %d of component %d", err.Error(), j+1, k+1)
			}
			if !build {
				continue
			}
			a.Symbol = symbols[k]
			if masses[k] != 0 {
				m := masses[k]
				a.Mass = &m
			}
			F.Atoms = append(F.Atoms, a)
		}
	}
	section := hasVelocitySection(L)
	if section && width == inlineFields {
		lno := L.pos + 1
		return nil, formatErr(frame, lno, "parseFrame", "velocity section follows atom records that already carry velocities")
	}
	if section {
		if err := P.velocitySection(F, symbols, counts); err != nil {
			return nil, err
		}
	}
	hasVel := section || width == inlineFields
	switch {
	case cfg.variant == VariantCon && hasVel:
		return nil, formatErr(frame, 0, "parseFrame", "velocity data found in a CON document")
	case cfg.variant == VariantConvel && !hasVel && total > 0:
		return nil, formatErr(frame, 0, "parseFrame", "no velocity data found in a CONVEL document")
	}
	return F, nil
}

//parseRecord reads x y z fixed id and, if present, vx vy vz.
func parseRecord(fields []string) (*Atom, error) {
	var v [3]float64
	var err error
	for i := range v {
		if v[i], err = parseFloat(fields[i]); err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", fields[i])
		}
	}
	a := &Atom{X: v[0], Y: v[1], Z: v[2]}
	fixed, err := parseFloat(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid fixed flag %q", fields[3])
	}
	a.Fixed = fixed != 0
	if a.ID, err = strconv.ParseUint(fields[4], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid atom id %q", fields[4])
	}
	if len(fields) == inlineFields {
		for i := range v {
			if v[i], err = parseFloat(fields[5+i]); err != nil {
				return nil, fmt.Errorf("invalid velocity component %q", fields[5+i])
			}
		}
		a.Vel = &Velocity{v[0], v[1], v[2]}
	}
	return a, nil
}

//hasVelocitySection reports whether the next lines are a blank separator, a symbol and
//a velocity marker.
func hasVelocitySection(L *lineReader) bool {
	blank, ok := L.peek(0)
	if !ok || strings.TrimSpace(blank) != "" {
		return false
	}
	marker, ok := L.peek(2)
	return ok && strings.Contains(marker, velocityMarker)
}

//velocitySection reads the velocity blocks of a CONVEL frame into F (if not nil).
func (P *frameParser) velocitySection(F *Frame, symbols []string, counts []int) error {
	P.L.next() //the blank separator
	idx := 0
	for k, n := range counts {
		s, lno, err := P.need(fmt.Sprintf("symbol of velocity component %d", k+1))
		if err != nil {
			return err
		}
		if strings.TrimSpace(s) != symbols[k] {
			return formatErr(P.frame, lno, "velocitySection", "velocity component %d has symbol %q, coordinates have %q", k+1, strings.TrimSpace(s), symbols[k])
		}
		s, lno, err = P.need(fmt.Sprintf("%q line of component %d", velocityMarker, k+1))
		if err != nil {
			return err
		}
		if !strings.Contains(s, velocityMarker) {
			return formatErr(P.frame, lno, "velocitySection", "expected %q line of component %d, found %q", velocityMarker, k+1, s)
		}
		for j := 0; j < n; j++ {
			s, lno, ok := P.L.next()
			if !ok {
				return formatErr(P.frame, lno, "velocitySection", "unexpected end of input, expected velocity record %d of component %d", j+1, k+1)
			}
			fields := strings.Fields(s)
			if len(fields) != recordFields {
				return formatErr(P.frame, lno, "velocitySection", "expected %d values in velocity record, found %d", recordFields, len(fields))
			}
			rec, err := parseRecord(fields)
			if err != nil {
				return formatErr(P.frame, lno, "velocitySection", "%s in velocity record %d of component %d", err.Error(), j+1, k+1)
			}
			if F != nil {
				F.Atoms[idx].Vel = &Velocity{rec.X, rec.Y, rec.Z}
			}
			idx++
		}
	}
	return nil
}
