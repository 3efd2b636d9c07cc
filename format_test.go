/*
 * format_test.go, part of readcon.
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
	"testing"
)

func TestFormatFloat(Te *testing.T) {
	cases := []struct {
		v    float64
		prec int
		want string
	}{
		{1.23456789012345, 6, "1.234568"},
		{1.0, 3, "1.000"},
		{0, 6, "0.000000"},
		{1e-7, 6, "0.000000"},
		{-3.25, 1, "-3.2"},
		{63.546, 6, "63.546000"},
		//exact ties go to the even digit
		{0.5, 0, "0."},
		{1.5, 0, "2."},
		{2.5, 0, "2."},
		{3.5, 0, "4."},
		{-2.5, 0, "-2."},
		{0.125, 2, "0.12"},
		{0.375, 2, "0.38"},
		{123456.5, 0, "123456."},
		//not a tie: 2.675 is slightly below 2.675 in binary
		{2.675, 2, "2.67"},
		{3, 0, "3."},
	}
	for _, c := range cases {
		if got := FormatFloat(c.v, c.prec); got != c.want {
			Te.Errorf("FormatFloat(%v, %d) = %q, want %q", c.v, c.prec, got, c.want)
		}
	}
}

func TestFormatFloatPrecisionZeroParses(Te *testing.T) {
	for _, v := range []float64{0, 1, -7, 42.4, 99.5} {
		s := FormatFloat(v, 0)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			Te.Fatalf("%q does not parse back: %v", s, err)
		}
		if f != math.RoundToEven(v) {
			Te.Errorf("%v written as %q, read back as %v", v, s, f)
		}
	}
}

func TestFormatFloatLossless(Te *testing.T) {
	values := []float64{0.1, 0.639400000000001, 1.23456789012345678, 8.682299999999999, 11.732999999999993,
		-0.5470, 100.0 / 3.0, math.Pi * 1000, 15.345600000000001, 0.30000000000000004}
	for _, v := range values {
		s := FormatFloat(v, LosslessPrecision)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			Te.Fatal(err)
		}
		if f != v {
			Te.Errorf("%v written as %q, read back as %v", v, s, f)
		}
	}
}

func TestFormatFloatBound(Te *testing.T) {
	v := 7.123456789
	for p := 0; p <= 12; p++ {
		f, err := strconv.ParseFloat(FormatFloat(v, p), 64)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(f-v) > math.Pow(10, -float64(p)) {
			Te.Errorf("precision %d: %v differs from %v by more than 1e-%d", p, f, v, p)
		}
	}
}

func TestFormatFloatNegativePrecision(Te *testing.T) {
	defer func() {
		if recover() == nil {
			Te.Error("FormatFloat did not panic with a negative precision")
		}
	}()
	FormatFloat(1, -1)
}
