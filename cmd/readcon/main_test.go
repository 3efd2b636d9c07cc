/*
 * main_test.go, part of readcon.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/readcon"
	"github.com/rmera/readcon/conio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const testdata = "../../testdata/"

//execute runs the command with args, using an empty configuration file unless
//args name another one.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	empty := filepath.Join(t.TempDir(), "empty.toml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	b := bytes.NewBufferString("")
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", empty}, args...))
	cmd.SetOut(b)
	cmd.SetErr(b)
	err := cmd.Execute()
	return b.String(), err
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Logf("Command failed: %v\nArgs: %v\nOutput: %s", err, args, out)
		t.FailNow()
	}
	return out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "readcon.toml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestInfoText(t *testing.T) {
	out := runCmd(t, "info", testdata+"tiny_cuh2.convel")
	assert.Contains(t, out, "frame 0: 4 atoms, velocities: yes")
	assert.Contains(t, out, "Cu")
	assert.Contains(t, out, "63.546000")
	assert.Contains(t, out, "90.000000 90.000000 90.000000")
}

func TestInfoYAML(t *testing.T) {
	out := runCmd(t, "info", "-o", "yaml", testdata+"tiny_multi_cuh2.con", testdata+"tiny_cuh2.con")
	var infos []frameInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, 1, infos[1].Frame)
	assert.Equal(t, 4, infos[2].Atoms)
	assert.False(t, infos[0].Velocities)
	require.Len(t, infos[0].Types, 2)
	assert.Equal(t, "H", infos[0].Types[1].Symbol)
	assert.Equal(t, 2, infos[0].Types[1].Count)
	require.NotNil(t, infos[0].Types[1].Mass)
	assert.InDelta(t, 1.00793, *infos[0].Types[1].Mass, 1e-12)
	assert.InDelta(t, 15.3456*21.702*100, infos[0].Volume, 1e-6)
}

func TestInfoErrors(t *testing.T) {
	_, err := execute(t, "info", "-o", "xml", testdata+"tiny_cuh2.con")
	assert.Error(t, err)
	_, err = execute(t, "info", filepath.Join(t.TempDir(), "missing.con"))
	assert.ErrorIs(t, err, readcon.ErrIO)
	_, err = execute(t, "--variant", "con", "info", testdata+"tiny_cuh2.convel")
	assert.ErrorIs(t, err, readcon.ErrFormat)
	_, err = execute(t, "--variant", "xyz", "info", testdata+"tiny_cuh2.con")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.con.gz")
	runCmd(t, "convert", "--precision", "3", testdata+"tiny_multi_cuh2.convel", out)
	frames, err := conio.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.True(t, frames[1].HasVelocities())
	assert.Equal(t, 8.855, frames[1].Atoms[2].X)
}

func TestConvertSelectAndStrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "last.con")
	runCmd(t, "convert", "--strip-velocities", "--frames", "-1", testdata+"tiny_multi_cuh2.convel", out)
	frames, err := conio.ReadFile(out, readcon.WithVariant(readcon.VariantCon))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.InDelta(t, 8.8549, frames[0].Atoms[2].X, 1e-6)

	_, err = execute(t, "convert", "--frames", "2", testdata+"tiny_multi_cuh2.convel", out)
	assert.Error(t, err)
	_, err = execute(t, "convert", "--layout", "sideways", testdata+"tiny_cuh2.convel", out)
	assert.ErrorIs(t, err, readcon.ErrValidation)
}

func TestConvertInline(t *testing.T) {
	out := filepath.Join(t.TempDir(), "inline.con")
	runCmd(t, "convert", "--layout", "inline", testdata+"tiny_cuh2.convel", out)
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Velocities")
	assert.Contains(t, string(raw), "0.639400 0.904500 6.975300 1 0 0.001234 0.002345 -0.003456\n")
}

func TestCat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "all.con.zst")
	runCmd(t, "cat", out, testdata+"tiny_multi_cuh2.con", testdata+"tiny_cuh2.con")
	frames, err := conio.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, frames, 3)
}

func TestConfigFile(t *testing.T) {
	cfg := writeConfig(t, "precision = 2\nvelocity_layout = \"inline\"\nlog_level = \"error\"\ncompression_level = 0\n")
	out := filepath.Join(t.TempDir(), "cfg.con")
	runCmd(t, "--config", cfg, "convert", testdata+"tiny_cuh2.convel", out)
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "Random Number Seed\nTime\n15.35 21.70 100.00\n"), text)
	assert.NotContains(t, text, "Velocities")

	//flags win over the file
	runCmd(t, "--config", cfg, "convert", "-p", "1", "--layout", "section", testdata+"tiny_cuh2.convel", out)
	raw, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n15.3 21.7 100.0\n")
	assert.Contains(t, string(raw), "Velocities of Component 2")
}

func TestConfigErrors(t *testing.T) {
	for _, content := range []string{
		"precision = -1\n",
		"velocity_layout = \"diagonal\"\n",
		"log_level = \"loud\"\n",
		"colour = \"blue\"\n",
		"precision = \n",
	} {
		cfg := writeConfig(t, content)
		_, err := execute(t, "--config", cfg, "info", testdata+"tiny_cuh2.con")
		assert.Error(t, err, content)
	}
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "info", testdata+"tiny_cuh2.con")
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, readcon.DefaultPrecision, cfg.Precision)
}
