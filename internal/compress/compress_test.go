// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package compress

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, alg := range []Algorithm{None, Zstd, LZ4} {
		back, err := Parse(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, back)
	}

	alg, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, None, alg)

	_, err = Parse("gzip")
	assert.Error(t, err)

	assert.Equal(t, "unknown(9)", Algorithm(9).String())
	assert.Equal(t, ".zst", Zstd.Extension())
	assert.Equal(t, ".lz4", LZ4.Extension())
	assert.Equal(t, "", None.Extension())
}

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("DXVK\x08\x00\x00\x00\x00\x00\x00\x00pipeline"), 1000)

	for _, alg := range []Algorithm{None, Zstd, LZ4} {
		t.Run(alg.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, alg)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if alg != None {
				assert.Less(t, buf.Len(), len(payload))
			}

			detected, err := Detect(bufio.NewReader(bytes.NewReader(buf.Bytes())))
			require.NoError(t, err)
			assert.Equal(t, alg, detected)

			r, detected, err := NewReader(&buf)
			require.NoError(t, err)
			assert.Equal(t, alg, detected)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, payload, got)
		})
	}
}

func TestDetect_Short(t *testing.T) {
	for _, input := range [][]byte{nil, {0x28}, {0x28, 0xb5, 0x2f}} {
		alg, err := Detect(bufio.NewReader(bytes.NewReader(input)))
		require.NoError(t, err)
		assert.Equal(t, None, alg)
	}

	// plain input is handed back with its buffer, not wrapped again
	br := bufio.NewReader(bytes.NewReader([]byte("DXVK")))
	plain, alg, err := NewReader(br)
	require.NoError(t, err)
	assert.Equal(t, None, alg)
	assert.Same(t, br, plain.Reader)
	peeked, err := plain.Peek(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("DXVK"), peeked)
	require.NoError(t, plain.Close())

	// short inputs still pass through untouched
	r, _, err := NewReader(bytes.NewReader([]byte("DX")))
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("DX"), got)
}
