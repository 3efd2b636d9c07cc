/*
 * cell.go, part of readcon.
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
	"math"

	v3 "github.com/rmera/readcon/v3"
	"gonum.org/v1/gonum/mat"
)

//Everything equal or less than this, relative to the cell length, is considered zero
//when building the cell vectors.
const appzero float64 = 1e-12

//CellVectors returns the lattice vectors of the frame cell as the rows of a 3x3 matrix.
//The first vector lies along x and the second one in the xy plane.
func (F *Frame) CellVectors() *mat.Dense {
	a, b, c := F.Cell[0], F.Cell[1], F.Cell[2]
	rad := math.Pi / 180
	cosa := math.Cos(F.Angles[0] * rad)
	cosb := math.Cos(F.Angles[1] * rad)
	sing, cosg := math.Sincos(F.Angles[2] * rad)
	cx := c * cosb
	cy := 0.0
	if sing != 0 {
		cy = c * (cosa - cosb*cosg) / sing
	}
	cz := math.Sqrt(math.Max(c*c-cx*cx-cy*cy, 0))
	data := []float64{
		a, 0, 0,
		b * cosg, b * sing, 0,
		cx, cy, cz,
	}
	for i, v := range data {
		if math.Abs(v) <= appzero*F.Cell[i/3] {
			data[i] = 0
		}
	}
	return mat.NewDense(3, 3, data)
}

//Volume returns the volume of the frame cell.
func (F *Frame) Volume() float64 {
	return math.Abs(mat.Det(F.CellVectors()))
}

//Coords returns the cartesian coordinates of the atoms, one per row.
func (F *Frame) Coords() *v3.Matrix {
	C := v3.Zeros(len(F.Atoms))
	for i, a := range F.Atoms {
		C.Set(i, 0, a.X)
		C.Set(i, 1, a.Y)
		C.Set(i, 2, a.Z)
	}
	return C
}

//WithCoords returns a copy of the frame with the coordinates taken from C, which
//must have one row per atom.
func (F *Frame) WithCoords(C *v3.Matrix) (*Frame, error) {
	if C == nil || C.NVecs() != len(F.Atoms) {
		n := 0
		if C != nil {
			n = C.NVecs()
		}
		return nil, validationErr(-1, "WithCoords", "%d coordinates given, but the frame has %d atoms", n, len(F.Atoms))
	}
	N := F.Copy()
	for i, a := range N.Atoms {
		a.X = C.At(i, 0)
		a.Y = C.At(i, 1)
		a.Z = C.At(i, 2)
	}
	return N, nil
}
