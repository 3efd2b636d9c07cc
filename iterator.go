/*
 * iterator.go, part of readcon.
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

import "io"

//Iterator reads the frames of a document one at a time.
//After an error the iterator is exhausted.
type Iterator struct {
	l     *lineReader
	cfg   parseConfig
	frame int
	err   error
}

//NewIterator returns an iterator over the frames in text.
func NewIterator(text string, opts ...ParseOption) *Iterator {
	return &Iterator{l: newLineReader(text), cfg: newParseConfig(opts)}
}

//Next returns the next frame, or io.EOF once all frames have been read.
func (I *Iterator) Next() (*Frame, error) {
	return I.advance(true)
}

//Skip reads the next frame without keeping its atoms. The frame is still checked
//for correctness. It returns io.EOF if there are no frames left.
func (I *Iterator) Skip() error {
	_, err := I.advance(false)
	return err
}

//Frame returns the index of the frame the next call to Next or Skip will read.
func (I *Iterator) Frame() int {
	return I.frame
}

func (I *Iterator) advance(build bool) (*Frame, error) {
	if I.err != nil {
		return nil, I.err
	}
	if I.l.restBlank() {
		I.err = io.EOF
		return nil, io.EOF
	}
	F, err := parseFrame(I.l, I.frame, I.cfg, build)
	if err != nil {
		I.err = errDecorate(err, "Iterator")
		return nil, I.err
	}
	I.frame++
	return F, nil
}
