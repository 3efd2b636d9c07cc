/*
 * traj.go, part of readcon.
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

package conio

import (
	"errors"
	"io"

	"github.com/rmera/readcon"
	v3 "github.com/rmera/readcon/v3"
	"go.uber.org/zap"
)

//LastFrameError is returned by Traj.Next once all the frames have been read.
//It is not a failure, just the normal end of the trajectory.
type LastFrameError interface {
	error
	NormalLastFrameTermination() //does nothing, it only sets this interface apart.
}

type lastFrameError struct {
	filename string
	deco     []string
}

func newLastFrameError(filename, caller string) *lastFrameError {
	return &lastFrameError{filename: filename, deco: []string{caller}}
}

func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) Error() string { return "EOF" }

//Is makes the error match io.EOF.
func (E *lastFrameError) Is(target error) bool { return target == io.EOF }

func (E *lastFrameError) FileName() string { return E.filename }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//IsLastFrame returns true if err signals the end of a trajectory.
func IsLastFrame(err error) bool {
	var l LastFrameError
	return errors.As(err, &l)
}

//Traj reads the frames of a multi-frame file one at a time, in the manner of a
//molecular dynamics trajectory.
type Traj struct {
	filename string
	it       *readcon.Iterator
	pending  *readcon.Frame //first frame, read when opening the file
	last     *readcon.Frame
	natoms   int
	readable bool
}

//New opens the named file as a trajectory. The file may be compressed.
func New(name string, opts ...readcon.ParseOption) (*Traj, error) {
	data, err := readAll(name)
	if err != nil {
		return nil, errDecorate(err, name, "New")
	}
	T := &Traj{filename: name, it: readcon.NewIterator(string(data), opts...), readable: true}
	T.pending, err = T.it.Next()
	if err != nil && err != io.EOF {
		return nil, errDecorate(err, name, "New")
	}
	if T.pending != nil {
		T.natoms = T.pending.Len()
	}
	logger().Debug("opened trajectory", zap.String("file", name), zap.Int("atoms", T.natoms))
	return T, nil
}

//Readable returns true if the trajectory can still be read.
func (T *Traj) Readable() bool {
	return T.readable
}

//Len returns the number of atoms in the first frame of the trajectory.
func (T *Traj) Len() int {
	return T.natoms
}

//Next reads the next frame and puts its coordinates in coords, which must have one row
//per atom. If box is given and its first element has room for 9 values, the lattice
//vectors of the frame are copied there, row by row. If coords is nil and no box is
//given, the frame is checked but not kept. After the last frame, Next returns an error
//for which IsLastFrame is true.
func (T *Traj) Next(coords *v3.Matrix, box ...[]float64) error {
	if !T.readable {
		return newLastFrameError(T.filename, "Next")
	}
	var F *readcon.Frame
	var err error
	switch {
	case T.pending != nil:
		F, T.pending = T.pending, nil
	case coords == nil && len(box) == 0:
		err = T.it.Skip()
	default:
		F, err = T.it.Next()
	}
	if err == io.EOF {
		T.Close()
		return newLastFrameError(T.filename, "Next")
	}
	if err != nil {
		T.Close()
		return errDecorate(err, T.filename, "Next")
	}
	T.last = F
	if F == nil {
		return nil
	}
	if coords != nil {
		if coords.NVecs() != F.Len() {
			return readcon.NewError(readcon.KindValidation, T.filename, T.it.Frame()-1, "Next", "matrix has %d rows, frame has %d atoms", coords.NVecs(), F.Len())
		}
		for i, a := range F.Atoms {
			coords.Set(i, 0, a.X)
			coords.Set(i, 1, a.Y)
			coords.Set(i, 2, a.Z)
		}
	}
	if len(box) > 0 {
		if len(box[0]) < 9 {
			logger().Warn("box slice too small, lattice vectors not copied", zap.String("file", T.filename), zap.Int("len", len(box[0])))
			return nil
		}
		C := F.CellVectors()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				box[0][3*i+j] = C.At(i, j)
			}
		}
	}
	return nil
}

//Frame returns the frame read by the last call to Next, or nil if that call
//did not keep it.
func (T *Traj) Frame() *readcon.Frame {
	return T.last
}

//Close marks the trajectory as unreadable and releases its content.
func (T *Traj) Close() {
	if !T.readable {
		return
	}
	T.readable = false
	T.it = nil
	T.pending = nil
}
