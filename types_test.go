/*
 * types_test.go, part of readcon.
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
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewAtom(Te *testing.T) {
	A := NewAtom("O", 1, 2, 3)
	if A.Fixed || A.ID != 0 || A.HasVelocity() {
		Te.Errorf("wrong defaults %v", A)
	}
	if _, ok := A.MassValue(); ok {
		Te.Error("default atom has a mass")
	}
	B := NewAtom("O", 1, 2, 3, Fixed(true), WithID(7), WithMass(15.999), WithVelocity(0.1, 0.2, 0.3))
	if !B.Fixed || B.ID != 7 || !B.HasVelocity() || *B.Vel != (Velocity{0.1, 0.2, 0.3}) {
		Te.Errorf("options not applied %v", B)
	}
	if m, ok := B.MassValue(); !ok || m != 15.999 {
		Te.Errorf("wrong mass %v %v", m, ok)
	}
	if s := B.String(); !strings.Contains(s, "symbol=O") || !strings.Contains(s, "id=7") {
		Te.Errorf("wrong string %q", s)
	}
}

func TestAtomCopy(Te *testing.T) {
	A := NewAtom("O", 1, 2, 3, WithMass(16), WithVelocity(1, 1, 1))
	B := A.Copy()
	*B.Mass = 17
	B.Vel.X = 5
	B.X = 9
	if *A.Mass != 16 || A.Vel.X != 1 || A.X != 1 {
		Te.Errorf("copy shares data with the original: %v", A)
	}
	var N *Atom
	if N.Copy() != nil {
		Te.Error("copy of a nil atom is not nil")
	}
}

func TestNewFrame(Te *testing.T) {
	atoms := []*Atom{NewAtom("Cu", 0, 0, 0), NewAtom("H", 1, 1, 1), NewAtom("Cu", 2, 2, 2)}
	F, err := NewFrame([3]float64{1, 2, 3}, [3]float64{90, 90, 90}, atoms, WithPrebox("a", "b"), WithPostbox("c"))
	if err != nil {
		Te.Fatal(err)
	}
	if F.Len() != 3 || F.PreboxHeader[1] != "b" || F.PostboxHeader[0] != "c" {
		Te.Errorf("wrong frame %v", F)
	}
	if s := F.Symbols(); len(s) != 2 || s[0] != "Cu" || s[1] != "H" {
		Te.Errorf("wrong symbols %v", s)
	}
	if c := F.TypeCounts(); len(c) != 2 || c[0] != 2 || c[1] != 1 {
		Te.Errorf("wrong type counts %v", c)
	}
	if !strings.Contains(F.String(), "natoms=3") {
		Te.Errorf("wrong string %q", F.String())
	}
}

func TestNewFrameInvalid(Te *testing.T) {
	cell := [3]float64{1, 1, 1}
	cases := map[string]struct {
		atoms []*Atom
		opts  []FrameOption
	}{
		"nil atom":     {[]*Atom{NewAtom("H", 0, 0, 0), nil}, nil},
		"empty symbol": {[]*Atom{NewAtom("", 0, 0, 0)}, nil},
		"space symbol": {[]*Atom{NewAtom("H e", 0, 0, 0)}, nil},
		"vtab symbol":  {[]*Atom{NewAtom("H\ve", 0, 0, 0)}, nil},
		"feed symbol":  {[]*Atom{NewAtom("H\fe", 0, 0, 0)}, nil},
		"nbsp symbol":  {[]*Atom{NewAtom("H\u00a0e", 0, 0, 0)}, nil},
		"velocities":   {[]*Atom{NewAtom("H", 0, 0, 0), NewAtom("H", 0, 0, 0, WithVelocity(0, 0, 0))}, nil},
		"masses":       {[]*Atom{NewAtom("H", 0, 0, 0, WithMass(1)), NewAtom("H", 0, 0, 0)}, nil},
		"prebox":       {nil, []FrameOption{WithPrebox("a", "b", "c")}},
		"postbox":      {nil, []FrameOption{WithPostbox("a", "b", "c")}},
		"line break":   {nil, []FrameOption{WithPostbox("a\r\nb")}},
	}
	for name, c := range cases {
		_, err := NewFrame(cell, cell, c.atoms, c.opts...)
		if !errors.Is(err, ErrValidation) {
			Te.Errorf("%s: expected a validation error, got %v", name, err)
		}
	}
}

func TestSerializeUnicodeSpaceSymbol(Te *testing.T) {
	for _, sym := range []string{"H\ve", "H\fe", "H\u00a0e", "H\u2003e"} {
		F := &Frame{Cell: [3]float64{1, 1, 1}, Angles: [3]float64{90, 90, 90}, Atoms: []*Atom{NewAtom(sym, 0, 0, 0)}}
		if _, err := Serialize([]*Frame{F}, 3); !errors.Is(err, ErrValidation) {
			Te.Errorf("symbol %q accepted by the writer: %v", sym, err)
		}
	}
}

func TestNaNMass(Te *testing.T) {
	nan := math.NaN()
	atoms := []*Atom{NewAtom("X", 0, 0, 0, WithMass(nan)), NewAtom("X", 1, 1, 1, WithMass(nan))}
	if _, err := NewFrame([3]float64{1, 1, 1}, [3]float64{90, 90, 90}, atoms); err != nil {
		Te.Errorf("two NaN masses reported as a conflict: %v", err)
	}
	atoms[1].Mass = nil
	if _, err := NewFrame([3]float64{1, 1, 1}, [3]float64{90, 90, 90}, atoms); !errors.Is(err, ErrValidation) {
		Te.Errorf("NaN and absent mass accepted: %v", err)
	}
}

func TestHasVelocities(Te *testing.T) {
	F := &Frame{}
	if F.HasVelocities() {
		Te.Error("empty frame has velocities")
	}
	F.Atoms = []*Atom{NewAtom("H", 0, 0, 0, WithVelocity(1, 0, 0)), NewAtom("H", 0, 0, 0, WithVelocity(0, 1, 0))}
	if !F.HasVelocities() {
		Te.Error("frame velocities not detected")
	}
	if err := F.Validate(); err != nil {
		Te.Error(err)
	}
}

func TestFrameCopy(Te *testing.T) {
	F := &Frame{PreboxHeader: []string{"a", "b"}, Cell: [3]float64{1, 2, 3}, Atoms: []*Atom{NewAtom("H", 0, 0, 0, WithMass(1))}}
	N := F.Copy()
	N.PreboxHeader[0] = "z"
	N.Atoms[0].X = 4
	*N.Atoms[0].Mass = 2
	N.Cell[0] = 10
	if F.PreboxHeader[0] != "a" || F.Atoms[0].X != 0 || *F.Atoms[0].Mass != 1 || F.Cell[0] != 1 {
		Te.Errorf("copy shares data with the original: %v", F)
	}
}

func TestErrorMessage(Te *testing.T) {
	_, err := Parse(strings.Replace(twoAtoms, "10.0 20.0 30.0", "10.0 20.0", 1))
	var e *Error
	if !errors.As(err, &e) {
		Te.Fatalf("not an *Error: %v", err)
	}
	e.SetFileName("bad.con")
	msg := e.Error()
	if !strings.HasPrefix(msg, "readcon format error in bad.con (frame 0, line 3): ") {
		Te.Errorf("wrong message %q", msg)
	}
	if !strings.Contains(e.Message(), "cell lengths") || e.FileName() != "bad.con" {
		Te.Errorf("wrong error fields %q %q", e.Message(), e.FileName())
	}
	trail := e.Decorate("")
	if len(trail) < 2 || trail[len(trail)-1] != "Parse" {
		Te.Errorf("wrong decoration trail %v", trail)
	}
	cause := errors.New("permission denied")
	ioe := NewIOError("x.con", cause, "Test")
	if !errors.Is(ioe, ErrIO) || !errors.Is(ioe, cause) || errors.Is(ioe, ErrFormat) {
		Te.Errorf("wrong matching for %v", ioe)
	}
	if ioe.Kind().String() != "io" || ioe.Frame() != -1 {
		Te.Errorf("wrong I/O error fields %v", ioe)
	}
}
