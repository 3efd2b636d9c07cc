/*
 * info.go, part of readcon.
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

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rmera/readcon"
	"github.com/rmera/readcon/conio"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

type typeInfo struct {
	Symbol string   `yaml:"symbol"`
	Count  int      `yaml:"count"`
	Mass   *float64 `yaml:"mass,omitempty"`
}

type frameInfo struct {
	File       string     `yaml:"file"`
	Frame      int        `yaml:"frame"`
	Atoms      int        `yaml:"atoms"`
	Velocities bool       `yaml:"velocities"`
	Cell       []float64  `yaml:"cell,flow"`
	Angles     []float64  `yaml:"angles,flow"`
	Volume     float64    `yaml:"volume"`
	Centroid   []float64  `yaml:"centroid,flow,omitempty"`
	Types      []typeInfo `yaml:"types"`
}

func summarize(file string, i int, F *readcon.Frame) frameInfo {
	info := frameInfo{
		File:       file,
		Frame:      i,
		Atoms:      F.Len(),
		Velocities: F.HasVelocities(),
		Cell:       F.Cell[:],
		Angles:     F.Angles[:],
		Volume:     F.Volume(),
		Centroid:   F.Coords().Centroid(),
	}
	counts := F.TypeCounts()
	first := make(map[string]*readcon.Atom)
	for _, a := range F.Atoms {
		if _, ok := first[a.Symbol]; !ok {
			first[a.Symbol] = a
		}
	}
	for k, s := range F.Symbols() {
		info.Types = append(info.Types, typeInfo{Symbol: s, Count: counts[k], Mass: first[s].Mass})
	}
	return info
}

func (a *app) infoCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Print a summary of every frame in the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("unknown output format %q", output)
			}
			popts, err := a.parseOptions()
			if err != nil {
				return err
			}
			var infos []frameInfo
			for _, name := range args {
				frames, err := conio.ReadFile(name, popts...)
				if err != nil {
					return err
				}
				for i, F := range frames {
					infos = append(infos, summarize(name, i, F))
				}
			}
			if output == "yaml" {
				b, err := yaml.Marshal(infos)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return writeText(cmd.OutOrStdout(), infos)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	return cmd
}

func floatList(v []float64) string {
	s := make([]string, len(v))
	for i, f := range v {
		s[i] = readcon.FormatFloat(f, 6)
	}
	return strings.Join(s, " ")
}

func writeText(out io.Writer, infos []frameInfo) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		vel := "no"
		if info.Velocities {
			vel = "yes"
		}
		fmt.Fprintf(w, "%s frame %d: %d atoms, velocities: %s\n", info.File, info.Frame, info.Atoms, vel)
		fmt.Fprintf(w, "  cell\t%s\n", floatList(info.Cell))
		fmt.Fprintf(w, "  angles\t%s\n", floatList(info.Angles))
		fmt.Fprintf(w, "  volume\t%s\n", readcon.FormatFloat(info.Volume, 6))
		if info.Centroid != nil {
			fmt.Fprintf(w, "  centroid\t%s\n", floatList(info.Centroid))
		}
		fmt.Fprintf(w, "  TYPE\tCOUNT\tMASS\n")
		for _, t := range info.Types {
			mass := "-"
			if t.Mass != nil {
				mass = readcon.FormatFloat(*t.Mass, 6)
			}
			fmt.Fprintf(w, "  %s\t%d\t%s\n", t.Symbol, t.Count, mass)
		}
	}
	return w.Flush()
}
