// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cachefile

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	origH := NewHeader(8, 1234)
	require.Equal(t, Magic, origH.Magic)

	var buf bytes.Buffer
	n, err := origH.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(HeaderSize), n)
	require.Equal(t, []byte{
		'D', 'X', 'V', 'K',
		0x08, 0x00, 0x00, 0x00,
		0xd2, 0x04, 0x00, 0x00,
	}, buf.Bytes())

	newH, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, origH, newH)
}

func TestHeader_Errors(t *testing.T) {
	// bad magic
	_, err := ReadHeader(bytes.NewReader([]byte("DXVC\x08\x00\x00\x00\x00\x00\x00\x00")))
	assert.True(t, errors.Is(err, ErrMagicMismatch))

	// zero version
	_, err = ReadHeader(bytes.NewReader([]byte("DXVK\x00\x00\x00\x00\x00\x00\x00\x00")))
	assert.True(t, errors.Is(err, ErrInvalidVersion))

	// truncated inside the header
	_, err = ReadHeader(bytes.NewReader([]byte("DXVK\x08\x00")))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	// an empty stream has no header either
	_, err = ReadHeader(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	h := NewHeader(0, 0)
	assert.True(t, errors.Is(h.Validate(), ErrInvalidVersion))
	h = Header{Version: 2}
	assert.True(t, errors.Is(h.Validate(), ErrMagicMismatch))
}

func TestHeader_Edition(t *testing.T) {
	assert.Equal(t, Legacy, NewHeader(1, 0).Edition())
	assert.Equal(t, Legacy, NewHeader(LegacyMaxVersion, 0).Edition())
	assert.Equal(t, Standard, NewHeader(LegacyMaxVersion+1, 0).Edition())
	assert.Equal(t, Standard, NewHeader(17, 0).Edition())

	assert.Equal(t, "legacy", Legacy.String())
	assert.Equal(t, "standard", Standard.String())
	assert.Equal(t, "unknown(9)", Edition(9).String())
}

func TestHeader_LegacyDataLen(t *testing.T) {
	n, err := NewHeader(7, 24).legacyDataLen()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = NewHeader(7, HashSize).legacyDataLen()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = NewHeader(7, HashSize-1).legacyDataLen()
	assert.True(t, errors.Is(err, ErrInvalidEntrySize))
}
