/*
 * main.go, part of readcon.
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

//Command readcon summarizes CON and CONVEL files and rewrites them with other settings.
package main

import (
	"fmt"
	"os"

	"github.com/rmera/readcon"
	"github.com/rmera/readcon/conio"
	"github.com/rmera/readcon/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//app holds the state shared by all the subcommands.
type app struct {
	cfgFile  string
	logLevel string
	variant  string
	cfg      config
	log      *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "readcon",
		Short:         "Inspect and convert CON/CONVEL atomic configuration files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.readcon.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.variant, "variant", "auto", "expected input variant: auto, con or convel")
	root.AddCommand(a.infoCmd(), a.convertCmd(), a.catCmd())
	return root
}

//setup loads the configuration and builds the logger. Flags given on the command
//line take precedence over the configuration file.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	a.cfg, err = loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	a.log, err = logging.New(logging.WithLevel(a.cfg.LogLevel))
	if err != nil {
		return err
	}
	conio.SetLogger(a.log)
	a.log.Debug("configuration loaded",
		zap.String("file", a.cfgFile),
		zap.Int("precision", a.cfg.Precision),
		zap.Stringer("velocity_layout", a.cfg.VelocityLayout),
		zap.Int("compression_level", a.cfg.CompressionLevel))
	return nil
}

func (a *app) parseOptions() ([]readcon.ParseOption, error) {
	switch a.variant {
	case "auto", "":
		return nil, nil
	case "con":
		return []readcon.ParseOption{readcon.WithVariant(readcon.VariantCon)}, nil
	case "convel":
		return []readcon.ParseOption{readcon.WithVariant(readcon.VariantConvel)}, nil
	}
	return nil, fmt.Errorf("unknown variant %q", a.variant)
}

//writeOptions returns the options for conio.WriteFile given by the configuration.
func (a *app) writeOptions() []conio.Option {
	return []conio.Option{
		conio.Precision(a.cfg.Precision),
		conio.Layout(a.cfg.VelocityLayout),
		conio.CompressionLevel(a.cfg.CompressionLevel),
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
