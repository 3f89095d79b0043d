// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitset(t *testing.T) {
	const n = 130
	b := New(n)
	require.Equal(t, n, b.Len())
	require.Zero(t, b.Count())

	for i := 0; i < n; i += 3 {
		b.Set(i)
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, i%3 == 0, b.IsSet(i), "bit %d", i)
	}
	assert.Equal(t, 44, b.Count())

	b.Clear(0)
	b.Clear(129)
	assert.False(t, b.IsSet(0))
	assert.False(t, b.IsSet(129))
	assert.Equal(t, 42, b.Count())

	// out of range positions are ignored
	b.Set(n)
	b.Set(-1)
	assert.False(t, b.IsSet(n))
	assert.False(t, b.IsSet(-1))
	assert.Equal(t, 42, b.Count())
}

func TestBitset_Empty(t *testing.T) {
	b := New(0)
	b.Set(0)
	assert.False(t, b.IsSet(0))
	assert.Zero(t, b.Count())
	assert.Zero(t, New(-5).Len())
}
