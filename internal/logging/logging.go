/*
 * logging.go, part of readcon.
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

//Package logging builds the zap loggers used by the readcon command and the conio package.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//EnvLevel is the environment variable that, when set, overrides the requested log level.
const EnvLevel = "READCON_LOG_LEVEL"

type config struct {
	zap   zap.Config
	level string
}

//Option modifies the logger configuration.
type Option func(*config)

//WithLevel sets the minimum level to be logged ("debug", "info", "warn", "error").
func WithLevel(level string) Option {
	return func(c *config) { c.level = level }
}

//WithDevelopment switches to the human-readable development encoder.
func WithDevelopment(dev bool) Option {
	return func(c *config) {
		c.zap.Development = dev
		if dev {
			c.zap.Encoding = "console"
			c.zap.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}
	}
}

//WithOutput sets where log lines go. The default is standard error.
func WithOutput(paths ...string) Option {
	return func(c *config) { c.zap.OutputPaths = paths }
}

//New returns a logger built from the given options. The level in EnvLevel, if
//set, takes precedence over WithLevel.
func New(opts ...Option) (*zap.Logger, error) {
	c := &config{zap: zap.NewProductionConfig(), level: "warn"}
	c.zap.OutputPaths = []string{"stderr"}
	c.zap.ErrorOutputPaths = []string{"stderr"}
	c.zap.Sampling = nil
	for _, o := range opts {
		o(c)
	}
	if env := os.Getenv(EnvLevel); env != "" {
		c.level = env
	}
	lvl, err := ParseLevel(c.level)
	if err != nil {
		return nil, err
	}
	c.zap.Level = zap.NewAtomicLevelAt(lvl)
	return c.zap.Build()
}

//ParseLevel converts a level name to a zap level. The empty string means "warn".
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("logging: invalid level %q", s)
	}
	return lvl, nil
}
