// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package ondisk reads and writes the little-endian integer fields used
// by DXVK state cache files.
//
// Reads follow io.ReadFull semantics: if nothing at all could be read the
// error is io.EOF, if only part of a value could be read the error is
// io.ErrUnexpectedEOF.  Callers rely on that distinction to tell a clean
// end of stream from a truncated file.
package ondisk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// MaxU24 is the largest value that fits in a 24-bit field.
const MaxU24 = (1 << 24) - 1

// U24 decodes a 24-bit little-endian value from the first 3 bytes of b.
func U24(b []byte) uint32 {
	_ = b[2] // bounds check elimination
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// PutU24 encodes v into the first 3 bytes of b.  The upper 8 bits of v
// are dropped.
func PutU24(b []byte, v uint32) {
	_ = b[2]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func ReadU24(r io.Reader) (uint32, error) {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return U24(buf[:]), nil
}

func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadBlock fills b completely from r.
func ReadBlock(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return err
}

// readChunk bounds the memory ReadSized commits to before data arrives.
const readChunk = 64 * 1024

// ReadSized reads exactly n bytes from r.  The result grows as bytes
// arrive, so a size taken from an untrusted header costs no more memory
// than the stream actually holds.
func ReadSized(r io.Reader, n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	buf.Grow(int(min(n, readChunk)))
	copied, err := io.CopyN(&buf, r, n)
	if err == io.EOF && copied > 0 {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	b := buf.Bytes()
	return b[:len(b):len(b)], nil
}

func WriteU8(w io.Writer, v uint8) error {
	buf := [1]byte{v}
	_, err := w.Write(buf[:])
	return err
}

func WriteU24(w io.Writer, v uint32) error {
	if v > MaxU24 {
		return fmt.Errorf("value (%d) out of range for 24-bit field", v)
	}
	var buf [3]byte
	PutU24(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// MidRecord converts a clean io.EOF into io.ErrUnexpectedEOF.  It is used
// once the first field of a record has been read, where running out of
// input can no longer be a clean end of stream.
func MidRecord(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
