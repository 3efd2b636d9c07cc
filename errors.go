/*
 * errors.go, part of readcon.
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
	"fmt"
	"strings"
)

//Kind tells which of the three failure classes an Error belongs to.
type Kind int

const (
	KindIO Kind = iota + 1
	KindFormat
	KindValidation
)

func (K Kind) String() string {
	switch K {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

//Sentinels to be used with errors.Is. Every *Error matches exactly one of them.
var (
	ErrIO         = errors.New("readcon: io error")
	ErrFormat     = errors.New("readcon: format error")
	ErrValidation = errors.New("readcon: validation error")
)

//Error is the error type returned by all functions in readcon and its subpackages.
//The Decorate method allows to add the names of the callers as the error goes up the
//stack, without changing the type of the error.
type Error struct {
	kind     Kind
	message  string
	filename string //the file being read or written, or empty if none.
	frame    int    //0-based frame index, -1 if not relevant.
	line     int    //1-based line number in the document, 0 if not relevant.
	deco     []string
	err      error
}

//NewIOError builds an I/O kind error for the given file, wrapping cause.
func NewIOError(filename string, cause error, caller string) *Error {
	msg := "unable to access file"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{kind: KindIO, message: msg, filename: filename, frame: -1, deco: []string{caller}, err: cause}
}

//NewError builds an error of the given kind, for packages that build on readcon.
//frame is -1 if no frame is involved.
func NewError(kind Kind, filename string, frame int, caller string, format string, a ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, a...), filename: filename, frame: frame, deco: []string{caller}}
}

func formatErr(frame, line int, caller string, format string, a ...interface{}) *Error {
	return &Error{kind: KindFormat, message: fmt.Sprintf(format, a...), frame: frame, line: line, deco: []string{caller}}
}

func validationErr(frame int, caller string, format string, a ...interface{}) *Error {
	return &Error{kind: KindValidation, message: fmt.Sprintf(format, a...), frame: frame, deco: []string{caller}}
}

func (E *Error) Error() string {
	var b strings.Builder
	b.WriteString("readcon ")
	b.WriteString(E.kind.String())
	b.WriteString(" error")
	if E.filename != "" {
		fmt.Fprintf(&b, " in %s", E.filename)
	}
	if E.frame >= 0 {
		fmt.Fprintf(&b, " (frame %d", E.frame)
		if E.line > 0 {
			fmt.Fprintf(&b, ", line %d", E.line)
		}
		b.WriteString(")")
	} else if E.line > 0 {
		fmt.Fprintf(&b, " (line %d)", E.line)
	}
	b.WriteString(": ")
	b.WriteString(E.message)
	return b.String()
}

//Is makes the error match the sentinel of its kind.
func (E *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return E.kind == KindIO
	case ErrFormat:
		return E.kind == KindFormat
	case ErrValidation:
		return E.kind == KindValidation
	}
	return false
}

//Unwrap returns the underlying cause, if any.
func (E *Error) Unwrap() error { return E.err }

//Decorate adds the name of a caller to the error trail and returns the trail.
//An empty string leaves the trail unchanged.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns the class of the error.
func (E *Error) Kind() Kind { return E.kind }

//FileName returns the file associated to the error, if any.
func (E *Error) FileName() string { return E.filename }

//SetFileName attaches a file name to an error produced while processing in-memory content.
func (E *Error) SetFileName(name string) { E.filename = name }

//Frame returns the 0-based index of the offending frame, or -1.
func (E *Error) Frame() int { return E.frame }

//Line returns the 1-based line number of the offending line, or 0.
func (E *Error) Line() int { return E.line }

//Message returns the bare message, without location information.
func (E *Error) Message() string { return E.message }

//errDecorate decorates err with caller if it is an *Error, and returns it.
func errDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
