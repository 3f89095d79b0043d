// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package compress wraps state cache streams in zstd or lz4 framing.
// Compressed inputs are recognized by their frame magic, so callers never
// need to be told how a file was written.
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies the framing around a stream.
type Algorithm uint8

const (
	None Algorithm = iota
	Zstd
	LZ4
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

const magicLen = 4

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", a)
	}
}

// Extension is the file name suffix conventionally appended for a.
func (a Algorithm) Extension() string {
	switch a {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Parse is the inverse of Algorithm.String.  The empty string means None.
func Parse(name string) (Algorithm, error) {
	switch name {
	case "", "none":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// Detect peeks at the start of br without consuming anything.  Streams
// shorter than a frame magic are reported as None.
func Detect(br *bufio.Reader) (Algorithm, error) {
	magic, err := br.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return None, fmt.Errorf("Peek: %w", err)
	}
	switch {
	case bytes.Equal(magic, zstdMagic):
		return Zstd, nil
	case bytes.Equal(magic, lz4Magic):
		return LZ4, nil
	default:
		return None, nil
	}
}

// bufferSize is the read buffer in front of the decompressed stream.
const bufferSize = 256 * 1024

// Reader is a buffered, decompressed stream.  Read and Peek come from the
// embedded bufio.Reader.
type Reader struct {
	*bufio.Reader
	dec io.Closer
}

// Close releases the decompressor.  It does not close the underlying
// stream.
func (r *Reader) Close() error {
	if r.dec == nil {
		return nil
	}
	return r.dec.Close()
}

// NewReader returns the decompressed contents of r along with the
// algorithm that was detected.  Uncompressed input is buffered exactly
// once.  The returned reader must be closed; doing so does not close r.
func NewReader(r io.Reader) (*Reader, Algorithm, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, bufferSize)
	}
	alg, err := Detect(br)
	if err != nil {
		return nil, None, err
	}

	switch alg {
	case Zstd:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, alg, fmt.Errorf("zstd.NewReader: %w", err)
		}
		rc := dec.IOReadCloser()
		return &Reader{Reader: bufio.NewReaderSize(rc, bufferSize), dec: rc}, alg, nil
	case LZ4:
		return &Reader{Reader: bufio.NewReaderSize(lz4.NewReader(br), bufferSize)}, alg, nil
	default:
		return &Reader{Reader: br}, alg, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer that frames everything written to it with
// alg before passing it on to w.  Close must be called to flush the final
// frame; it does not close w.
func NewWriter(w io.Writer, alg Algorithm) (io.WriteCloser, error) {
	switch alg {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd.NewWriter: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", alg)
	}
}
