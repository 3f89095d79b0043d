// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ondisk

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU24_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xff, 0x100, 0x123456, MaxU24} {
		var buf bytes.Buffer
		require.NoError(t, WriteU24(&buf, v))
		require.Equal(t, 3, buf.Len())

		got, err := ReadU24(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	// low byte first
	var b [3]byte
	PutU24(b[:], 0x030201)
	assert.Equal(t, [3]byte{0x01, 0x02, 0x03}, b)

	err := WriteU24(io.Discard, MaxU24+1)
	assert.Error(t, err)
}

func TestU32_LittleEndian(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteU32(&buf, 0x04030201))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf.Bytes())

	v, err := ReadU32(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), v)
}

func TestU8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteU8(&buf, 0xff))
	v, err := ReadU8(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), v)
}

func TestReads_EOF(t *testing.T) {
	// nothing to read: clean EOF
	_, err := ReadU32(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)
	_, err = ReadU8(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)

	// partial reads are unexpected
	_, err = ReadU32(bytes.NewReader([]byte{1, 2}))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	_, err = ReadU24(bytes.NewReader([]byte{1}))
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	block := make([]byte, 8)
	err = ReadBlock(bytes.NewReader([]byte{1, 2, 3}), block)
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	// zero-length blocks never fail
	err = ReadBlock(bytes.NewReader(nil), nil)
	assert.NoError(t, err)
}

func TestReadSized(t *testing.T) {
	b, err := ReadSized(bytes.NewReader([]byte("abcdef")), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), b)
	assert.Equal(t, 4, cap(b))

	b, err = ReadSized(bytes.NewReader(nil), 0)
	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.Empty(t, b)

	_, err = ReadSized(bytes.NewReader(nil), 4)
	assert.Equal(t, io.EOF, err)

	_, err = ReadSized(bytes.NewReader([]byte("ab")), 4)
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	_, err = ReadSized(bytes.NewReader(nil), -1)
	assert.Error(t, err)

	big := bytes.Repeat([]byte{0x5a}, 3*readChunk+7)
	b, err = ReadSized(bytes.NewReader(big), int64(len(big)))
	require.NoError(t, err)
	assert.Equal(t, big, b)
}

func TestMidRecord(t *testing.T) {
	assert.Equal(t, io.ErrUnexpectedEOF, MidRecord(io.EOF))
	assert.Equal(t, io.ErrUnexpectedEOF, MidRecord(io.ErrUnexpectedEOF))
	assert.NoError(t, MidRecord(nil))

	other := errors.New("disk on fire")
	assert.Equal(t, other, MidRecord(other))
}
