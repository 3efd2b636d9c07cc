/*
 * config.go, part of readcon.
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
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/rmera/readcon"
	"github.com/rmera/readcon/internal/logging"
)

const defaultConfigFile = "~/.readcon.toml"

//config holds the defaults for the subcommands.
type config struct {
	Precision        int
	VelocityLayout   readcon.VelocityLayout
	LogLevel         string
	CompressionLevel int
}

func defaultConfig() config {
	return config{Precision: readcon.DefaultPrecision, VelocityLayout: readcon.LayoutSection, LogLevel: "warn"}
}

type fileConfig struct {
	Precision        int    `toml:"precision"`
	VelocityLayout   string `toml:"velocity_layout"`
	LogLevel         string `toml:"log_level"`
	CompressionLevel int    `toml:"compression_level"`
}

//loadConfig reads the configuration in path. An empty path means the default file,
//which does not need to exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if meta.IsDefined("precision") {
		if raw.Precision < 0 {
			return cfg, fmt.Errorf("config: negative precision %d", raw.Precision)
		}
		cfg.Precision = raw.Precision
	}
	if meta.IsDefined("velocity_layout") {
		if cfg.VelocityLayout, err = readcon.ParseVelocityLayout(strings.TrimSpace(raw.VelocityLayout)); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}
	if meta.IsDefined("log_level") {
		lvl := strings.TrimSpace(raw.LogLevel)
		if _, err := logging.ParseLevel(lvl); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if meta.IsDefined("compression_level") {
		cfg.CompressionLevel = raw.CompressionLevel
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}
