/*
 * convert.go, part of readcon.
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

	"github.com/rmera/readcon"
	"github.com/rmera/readcon/conio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//selectFrames returns the frames with the given indexes, in the given order.
//Negative indexes count from the end.
func selectFrames(frames []*readcon.Frame, idx []int) ([]*readcon.Frame, error) {
	if len(idx) == 0 {
		return frames, nil
	}
	ret := make([]*readcon.Frame, 0, len(idx))
	for _, i := range idx {
		j := i
		if j < 0 {
			j += len(frames)
		}
		if j < 0 || j >= len(frames) {
			return nil, fmt.Errorf("frame %d out of range, the input has %d frames", i, len(frames))
		}
		ret = append(ret, frames[j])
	}
	return ret, nil
}

func stripVelocities(frames []*readcon.Frame) []*readcon.Frame {
	ret := make([]*readcon.Frame, len(frames))
	for i, F := range frames {
		ret[i] = F.Copy()
		for _, a := range ret[i].Atoms {
			a.Vel = nil
		}
	}
	return ret
}

func (a *app) convertCmd() *cobra.Command {
	var (
		precision int
		layout    string
		strip     bool
		indexes   []int
	)
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Read a file and write it again with different settings",
		Long: `Read a file and write it again with different settings.
The output is compressed if its name ends in .gz or .zst.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("precision") {
				a.cfg.Precision = precision
			}
			if cmd.Flags().Changed("layout") {
				l, err := readcon.ParseVelocityLayout(layout)
				if err != nil {
					return err
				}
				a.cfg.VelocityLayout = l
			}
			popts, err := a.parseOptions()
			if err != nil {
				return err
			}
			frames, err := conio.ReadFile(args[0], popts...)
			if err != nil {
				return err
			}
			if frames, err = selectFrames(frames, indexes); err != nil {
				return err
			}
			if strip {
				frames = stripVelocities(frames)
			}
			if err = conio.WriteFile(args[1], frames, a.writeOptions()...); err != nil {
				return err
			}
			a.log.Info("converted", zap.String("in", args[0]), zap.String("out", args[1]), zap.Int("frames", len(frames)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&precision, "precision", "p", readcon.DefaultPrecision, "digits after the decimal point")
	cmd.Flags().StringVar(&layout, "layout", "section", "where to write velocities: section or inline")
	cmd.Flags().BoolVar(&strip, "strip-velocities", false, "drop the velocities and write a plain CON file")
	cmd.Flags().IntSliceVar(&indexes, "frames", nil, "comma separated list of frames to keep (0-based, negative counts from the end)")
	return cmd
}

func (a *app) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat OUT IN...",
		Short: "Write every frame of the input files, in order, to a single file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := a.parseOptions()
			if err != nil {
				return err
			}
			var all []*readcon.Frame
			for _, name := range args[1:] {
				frames, err := conio.ReadFile(name, popts...)
				if err != nil {
					return err
				}
				a.log.Debug("appending", zap.String("file", name), zap.Int("frames", len(frames)))
				all = append(all, frames...)
			}
			return conio.WriteFile(args[0], all, a.writeOptions()...)
		},
	}
}
