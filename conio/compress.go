/*
 * compress.go, part of readcon.
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
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//codec is the compression applied to a file, chosen from its extension.
type codec int

const (
	plain codec = iota
	gzipped
	zstandard
)

func (c codec) String() string {
	switch c {
	case gzipped:
		return "gzip"
	case zstandard:
		return "zstd"
	default:
		return "none"
	}
}

func codecFor(name string) codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return gzipped
	case ".zst", ".zstd":
		return zstandard
	default:
		return plain
	}
}

//zstdReader makes a zstd decoder an io.ReadCloser.
type zstdReader struct {
	*zstd.Decoder
}

func (z zstdReader) Close() error {
	z.Decoder.Close()
	return nil
}

func newReader(c codec, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case gzipped:
		return gzip.NewReader(r)
	case zstandard:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReader{d}, nil
	default:
		return io.NopCloser(r), nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//newWriter returns a writer that compresses into w. A level of 0 or less selects the
//default level of the codec.
func newWriter(c codec, w io.Writer, level int) (io.WriteCloser, error) {
	switch c {
	case gzipped:
		if level <= 0 {
			level = gzip.DefaultCompression
		}
		return gzip.NewWriterLevel(w, level)
	case zstandard:
		enc := zstd.SpeedDefault
		if level > 0 {
			enc = zstd.EncoderLevelFromZstd(level)
		}
		return zstd.NewWriter(w, zstd.WithEncoderLevel(enc))
	default:
		return nopWriteCloser{w}, nil
	}
}
