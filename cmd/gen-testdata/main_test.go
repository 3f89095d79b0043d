// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/dxvkcache/cachefile"
)

func TestGenerate(t *testing.T) {
	o := genOptions{entries: 50, minSize: 0, maxSize: 100, corrupt: 3, seed: 42}

	h := cachefile.NewHeader(9, 0)
	entries, err := generate(h, o)
	require.NoError(t, err)
	require.Len(t, entries, 50)
	for i, e := range entries {
		require.NoError(t, e.CheckLayout(h))
		assert.Equal(t, i < 47, e.Valid(), "entry %d", i)
		assert.LessOrEqual(t, len(e.Data), 100)
	}

	// reproducible
	again, err := generate(h, o)
	require.NoError(t, err)
	assert.Equal(t, entries, again)

	legacy := cachefile.NewHeader(5, 64)
	o.corrupt = 0
	entries, err = generate(legacy, o)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, e.Check(legacy))
		assert.Len(t, e.Data, 44)
	}
}

func TestHeader(t *testing.T) {
	h, err := genOptions{version: 17, entrySize: 3}.header()
	require.NoError(t, err)
	assert.Equal(t, cachefile.NewHeader(17, 0), h)

	h, err = genOptions{version: 7, entrySize: cachefile.HashSize}.header()
	require.NoError(t, err)
	assert.Equal(t, uint32(cachefile.HashSize), h.EntrySize)

	_, err = genOptions{version: 7, entrySize: 10}.header()
	assert.ErrorContains(t, err, "--entry-size")

	_, err = genOptions{version: 0}.header()
	assert.ErrorIs(t, err, cachefile.ErrInvalidVersion)

	// generate refuses a header that cannot hold the hash
	_, err = generate(cachefile.NewHeader(7, 10), genOptions{entries: 1})
	assert.Error(t, err)
}
