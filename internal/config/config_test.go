// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "human", cfg.Output.Format)
	assert.Equal(t, "none", cfg.Output.Compression)
	assert.False(t, cfg.Input.RequireExtension)

	// an explicit path has to exist
	_, err = Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = debug

[output]
format = yaml
compression = zstd

[input]
require_extension = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "zstd", cfg.Output.Compression)
	assert.True(t, cfg.Input.RequireExtension)
}

func TestLoad_Partial(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[output]\nformat = json\n"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "none", cfg.Output.Compression)
}

func TestLoad_Invalid(t *testing.T) {
	for _, contents := range []string{
		"[log]\nlevel = loud\n",
		"[output]\nformat = xml\n",
		"[output]\ncompression = gzip\n",
		"[input]\nrequire_extension = maybe\n",
	} {
		_, err := Load(writeConfig(t, contents))
		assert.Error(t, err, contents)
	}
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	cfg.Output.Compression = "lz4"
	cfg.Input.RequireExtension = true

	path := filepath.Join(t.TempDir(), "nested", "config.ini")
	require.NoError(t, cfg.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	cfg.Path = path
	assert.Equal(t, cfg, back)
}
