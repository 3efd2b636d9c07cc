/*
 * format.go, part of readcon.
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
	"strconv"
)

//DefaultPrecision is the number of decimal digits used when none is given.
const DefaultPrecision = 6

//LosslessPrecision gives 17 significant digits for any value of magnitude 1 or more,
//which recovers such a float64 exactly.
const LosslessPrecision = 17

//FormatFloat writes v with exactly precision digits after the decimal point.
//The exact binary value of v is rounded half to even: 0.125 becomes "0.12" at
//precision 2, and 2.5 becomes "2." at precision 0. A precision of 0 still writes
//the decimal point for finite values. Panics if precision is negative.
func FormatFloat(v float64, precision int) string {
	return string(appendFloat(nil, v, precision))
}

func appendFloat(dst []byte, v float64, precision int) []byte {
	if precision < 0 {
		panic("readcon: negative precision")
	}
	dst = strconv.AppendFloat(dst, v, 'f', precision, 64)
	if precision == 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
		dst = append(dst, '.')
	}
	return dst
}
