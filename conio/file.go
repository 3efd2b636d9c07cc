/*
 * file.go, part of readcon.
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

/*
Package conio reads and writes CON and CONVEL files on disk.

Files whose names end in .gz or .zst (.zstd) are transparently decompressed
when read and compressed when written. Any other name is treated as plain text.
*/
package conio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rmera/readcon"
	"go.uber.org/zap"
)

//ReadFile reads every frame in the named file.
func ReadFile(name string, opts ...readcon.ParseOption) ([]*readcon.Frame, error) {
	data, err := readAll(name)
	if err != nil {
		return nil, errDecorate(err, name, "ReadFile")
	}
	frames, err := readcon.ParseBytes(data, opts...)
	if err != nil {
		return nil, errDecorate(err, name, "ReadFile")
	}
	logger().Debug("read file", zap.String("file", name), zap.Int("frames", len(frames)))
	return frames, nil
}

//readAll returns the decompressed content of the named file.
func readAll(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, readcon.NewIOError(name, err, "readAll")
	}
	defer f.Close()
	c := codecFor(name)
	r, err := newReader(c, bufio.NewReader(f))
	if err != nil {
		return nil, readcon.NewIOError(name, err, "readAll")
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readcon.NewIOError(name, err, "readAll")
	}
	logger().Debug("loaded file", zap.String("file", name), zap.Stringer("compression", c), zap.Int("bytes", len(data)))
	return data, nil
}

type writeConfig struct {
	writer []readcon.WriterOption
	level  int
}

//Option modifies how WriteFile writes a file.
type Option func(*writeConfig)

//Precision sets the number of digits after the decimal point.
func Precision(p int) Option {
	return func(c *writeConfig) { c.writer = append(c.writer, readcon.WithPrecision(p)) }
}

//Layout sets where velocities are written.
func Layout(l readcon.VelocityLayout) Option {
	return func(c *writeConfig) { c.writer = append(c.writer, readcon.WithVelocityLayout(l)) }
}

//CompressionLevel sets the compression level for .gz and .zst files. 0 selects the
//default of the compressor. It is ignored for plain files.
func CompressionLevel(level int) Option {
	return func(c *writeConfig) { c.level = level }
}

//WriteFile writes frames to the named file, replacing it if it exists.
//The whole document is produced before the file is touched, and the file is
//only replaced once it has been completely written, so a failed call
//leaves any previous content in place.
func WriteFile(name string, frames []*readcon.Frame, opts ...Option) error {
	var cfg writeConfig
	for _, o := range opts {
		o(&cfg)
	}
	data, err := readcon.Marshal(frames, cfg.writer...)
	if err != nil {
		return errDecorate(err, name, "WriteFile")
	}
	c := codecFor(name)
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return readcon.NewIOError(name, err, "WriteFile")
	}
	if err = writeCompressed(tmp, c, cfg.level, data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errDecorate(err, name, "WriteFile")
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return readcon.NewIOError(name, err, "WriteFile")
	}
	if err = os.Rename(tmp.Name(), name); err != nil {
		os.Remove(tmp.Name())
		return readcon.NewIOError(name, err, "WriteFile")
	}
	logger().Debug("wrote file", zap.String("file", name), zap.Int("frames", len(frames)), zap.Stringer("compression", c))
	return nil
}

func writeCompressed(f *os.File, c codec, level int, data []byte) error {
	if err := f.Chmod(0o644); err != nil {
		return readcon.NewIOError(f.Name(), err, "writeCompressed")
	}
	w, err := newWriter(c, f, level)
	if err != nil {
		return readcon.NewError(readcon.KindValidation, "", -1, "writeCompressed", "invalid %s compression level %d", c, level)
	}
	if _, err = w.Write(data); err != nil {
		w.Close()
		return readcon.NewIOError(f.Name(), err, "writeCompressed")
	}
	if err = w.Close(); err != nil {
		return readcon.NewIOError(f.Name(), err, "writeCompressed")
	}
	return nil
}

//errDecorate attaches the file name to readcon errors that lack one and adds caller
//to their trail.
func errDecorate(err error, name, caller string) error {
	var e *readcon.Error
	if errors.As(err, &e) {
		if e.FileName() == "" || e.Kind() == readcon.KindIO {
			e.SetFileName(name)
		}
		e.Decorate(caller)
	}
	return err
}
