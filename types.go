/*
 * types.go, part of readcon.
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
	"math"
	"strings"
	"unicode"
)

//Default header lines, written when a frame does not carry its own.
var (
	DefaultPrebox  = [2]string{"Random Number Seed", "Time"}
	DefaultPostbox = [2]string{"0 0", "218 0 1"}
)

//Velocity is the velocity of an atom. It is always present or absent as a whole.
type Velocity struct {
	X, Y, Z float64
}

//Atom is one particle of a frame.
//Mass is nil when no mass was declared for the atom's type, Vel is nil
//when the atom carries no velocity.
type Atom struct {
	Symbol  string
	X, Y, Z float64
	Fixed   bool
	ID      uint64
	Mass    *float64
	Vel     *Velocity
}

//AtomOption sets one of the optional fields of an Atom.
type AtomOption func(*Atom)

//Fixed marks the atom as fixed (immobile) or not.
func Fixed(fixed bool) AtomOption {
	return func(A *Atom) { A.Fixed = fixed }
}

//WithID sets the atom id.
func WithID(id uint64) AtomOption {
	return func(A *Atom) { A.ID = id }
}

//WithMass sets the atom mass.
func WithMass(mass float64) AtomOption {
	return func(A *Atom) {
		m := mass
		A.Mass = &m
	}
}

//WithVelocity gives the atom a velocity.
func WithVelocity(vx, vy, vz float64) AtomOption {
	return func(A *Atom) { A.Vel = &Velocity{vx, vy, vz} }
}

//NewAtom returns an atom with the given symbol and coordinates. Without options the
//atom is not fixed, has id 0, and carries neither mass nor velocity.
func NewAtom(symbol string, x, y, z float64, opts ...AtomOption) *Atom {
	A := &Atom{Symbol: symbol, X: x, Y: y, Z: z}
	for _, o := range opts {
		o(A)
	}
	return A
}

//HasVelocity returns true if the atom carries a velocity.
func (A *Atom) HasVelocity() bool {
	return A.Vel != nil
}

//MassValue returns the mass of the atom and whether it is present.
func (A *Atom) MassValue() (float64, bool) {
	if A.Mass == nil {
		return 0, false
	}
	return *A.Mass, true
}

//Copy returns a deep copy of the atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		return nil
	}
	N := *A
	if A.Mass != nil {
		m := *A.Mass
		N.Mass = &m
	}
	if A.Vel != nil {
		v := *A.Vel
		N.Vel = &v
	}
	return &N
}

func (A *Atom) String() string {
	return fmt.Sprintf("Atom(symbol=%s, x=%g, y=%g, z=%g, fixed=%t, id=%d)", A.Symbol, A.X, A.Y, A.Z, A.Fixed, A.ID)
}

//Frame is one snapshot of an atomic configuration.
type Frame struct {
	PreboxHeader  []string
	Cell          [3]float64
	Angles        [3]float64
	PostboxHeader []string
	Atoms         []*Atom
}

//FrameOption sets one of the optional fields of a Frame.
type FrameOption func(*Frame)

//WithPrebox sets the free-form lines that precede the cell in the file.
func WithPrebox(lines ...string) FrameOption {
	return func(F *Frame) { F.PreboxHeader = append([]string(nil), lines...) }
}

//WithPostbox sets the reserved lines that follow the cell angles in the file.
func WithPostbox(lines ...string) FrameOption {
	return func(F *Frame) { F.PostboxHeader = append([]string(nil), lines...) }
}

//NewFrame builds a frame from the cell lengths, the cell angles (degrees) and the atoms.
//It returns a validation error if the atoms do not all agree on velocity presence, or if
//atoms with the same symbol carry different masses. Building the struct directly skips
//those checks, which are then performed when the frame is written.
func NewFrame(cell, angles [3]float64, atoms []*Atom, opts ...FrameOption) (*Frame, error) {
	F := &Frame{Cell: cell, Angles: angles, Atoms: atoms}
	for _, o := range opts {
		o(F)
	}
	if err := F.Validate(); err != nil {
		return nil, errDecorate(err, "NewFrame")
	}
	return F, nil
}

//Len returns the number of atoms in the frame.
func (F *Frame) Len() int {
	return len(F.Atoms)
}

//HasVelocities returns true if the frame has atoms and all of them carry a velocity.
func (F *Frame) HasVelocities() bool {
	if len(F.Atoms) == 0 {
		return false
	}
	for _, a := range F.Atoms {
		if !a.HasVelocity() {
			return false
		}
	}
	return true
}

//Validate checks the invariants a frame must satisfy to be written: uniform velocity
//presence, one mass per symbol, and at most two lines in each header.
func (F *Frame) Validate() error {
	_, err := groupTypes(F, -1)
	return err
}

//Symbols returns the distinct symbols of the frame in order of first appearance.
func (F *Frame) Symbols() []string {
	seen := make(map[string]bool)
	var ret []string
	for _, a := range F.Atoms {
		if !seen[a.Symbol] {
			seen[a.Symbol] = true
			ret = append(ret, a.Symbol)
		}
	}
	return ret
}

//TypeCounts returns the number of atoms per symbol, in the order given by Symbols.
func (F *Frame) TypeCounts() []int {
	index := make(map[string]int)
	var ret []int
	for _, a := range F.Atoms {
		i, ok := index[a.Symbol]
		if !ok {
			i = len(ret)
			index[a.Symbol] = i
			ret = append(ret, 0)
		}
		ret[i]++
	}
	return ret
}

//Copy returns a deep copy of the frame.
func (F *Frame) Copy() *Frame {
	N := &Frame{
		PreboxHeader:  append([]string(nil), F.PreboxHeader...),
		Cell:          F.Cell,
		Angles:        F.Angles,
		PostboxHeader: append([]string(nil), F.PostboxHeader...),
		Atoms:         make([]*Atom, len(F.Atoms)),
	}
	for i, a := range F.Atoms {
		N.Atoms[i] = a.Copy()
	}
	return N
}

func (F *Frame) String() string {
	return fmt.Sprintf("Frame(cell=%v, angles=%v, natoms=%d, has_velocities=%t, types=[%s])",
		F.Cell, F.Angles, len(F.Atoms), F.HasVelocities(), strings.Join(F.Symbols(), " "))
}

//typeBlock is the group of atoms sharing one symbol, as stored in the file.
type typeBlock struct {
	symbol  string
	mass    *float64
	members []int //indexes in Frame.Atoms, in their original order
}

//groupTypes groups the atoms of F by symbol in order of first appearance, in a single
//pass, checking the invariants along the way. frame is only used to locate errors.
func groupTypes(F *Frame, frame int) ([]*typeBlock, error) {
	if len(F.PreboxHeader) > 2 {
		return nil, validationErr(frame, "groupTypes", "prebox header has %d lines, at most 2 can be stored", len(F.PreboxHeader))
	}
	if len(F.PostboxHeader) > 2 {
		return nil, validationErr(frame, "groupTypes", "postbox header has %d lines, at most 2 can be stored", len(F.PostboxHeader))
	}
	for _, h := range append(append([]string(nil), F.PreboxHeader...), F.PostboxHeader...) {
		if strings.ContainsAny(h, "\r\n") {
			return nil, validationErr(frame, "groupTypes", "header line %q contains a line break", h)
		}
	}
	index := make(map[string]int)
	var blocks []*typeBlock
	for i, a := range F.Atoms {
		if a == nil {
			return nil, validationErr(frame, "groupTypes", "atom %d is nil", i)
		}
		if a.Symbol == "" || strings.IndexFunc(a.Symbol, unicode.IsSpace) >= 0 {
			return nil, validationErr(frame, "groupTypes", "atom %d has invalid symbol %q", i, a.Symbol)
		}
		if a.HasVelocity() != F.Atoms[0].HasVelocity() {
			return nil, validationErr(frame, "groupTypes", "atom %d (%s) disagrees with atom 0 on velocity presence", i, a.Symbol)
		}
		k, ok := index[a.Symbol]
		if !ok {
			k = len(blocks)
			index[a.Symbol] = k
			blocks = append(blocks, &typeBlock{symbol: a.Symbol, mass: a.Mass})
		}
		b := blocks[k]
		if !sameMass(b.mass, a.Mass) {
			return nil, validationErr(frame, "groupTypes", "atoms of type %s have different masses (%s and %s)", a.Symbol, massString(b.mass), massString(a.Mass))
		}
		b.members = append(b.members, i)
	}
	return blocks, nil
}

func sameMass(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b || (math.IsNaN(*a) && math.IsNaN(*b))
}

func massString(m *float64) string {
	if m == nil {
		return "absent"
	}
	return fmt.Sprintf("%g", *m)
}
