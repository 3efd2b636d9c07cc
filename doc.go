/*
 * doc.go, part of readcon.
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
Package readcon reads and writes CON and CONVEL files, the plain-text
configuration format of the eOn saddle-search code.

A document holds one or more frames. Each frame is laid out as:

	Random Number Seed               free text, kept verbatim
	Time                             free text, kept verbatim
	15.345600 21.702000 100.000000   cell lengths
	90.000000 90.000000 90.000000    cell angles (degrees)
	0 0                              reserved, kept verbatim
	218 0 1                          reserved, kept verbatim
	2                                number of atom types
	2 1                              atoms per type
	63.546000 1.008000               mass per type
	Cu                               symbol of type 1
	Coordinates of Component 1
	0.639400 0.904500 6.975300 1 0   x y z fixed id
	3.197000 0.904500 6.975300 1 1
	H
	Coordinates of Component 2
	8.682300 9.947000 11.733000 0 2

CONVEL frames add, after the coordinates, a blank line and then the same
blocks with "Velocities of Component N" markers and "vx vy vz fixed id"
records. The parser also accepts velocities appended to each atom record
("x y z fixed id vx vy vz"), and the Writer can produce that layout on request.

In memory, a Frame keeps its atoms in a flat slice. Atoms are grouped by symbol,
in order of first appearance, only when writing. The format stores one mass per
type, so atoms sharing a symbol must share a mass; an absent mass is written as
zero, and a zero mass is read back as absent.

Parsing and writing are pure functions of their input: they do no I/O and keep
no state between calls, so they can be used from several goroutines at once.
Reading and writing files, compressed or not, is done by the conio subpackage.
*/
package readcon
