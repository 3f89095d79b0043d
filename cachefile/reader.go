// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cachefile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bpowers/dxvkcache/internal/ondisk"
)

const defaultBufferSize = 1024 * 1024

// BufferedReader is a stream that can look ahead without consuming
// input, such as a *bufio.Reader or a type embedding one.
type BufferedReader interface {
	io.Reader
	Peek(n int) ([]byte, error)
}

// Reader decodes entries from a state cache stream, one at a time.
type Reader struct {
	r     BufferedReader
	h     Header
	off   int64
	count int
}

// NewReader reads and validates the file header.  r is buffered
// internally unless it already is a BufferedReader; entries are read in
// many small pieces.
func NewReader(r io.Reader) (*Reader, error) {
	br, ok := r.(BufferedReader)
	if !ok {
		br = bufio.NewReaderSize(r, defaultBufferSize)
	}

	h, err := ReadHeader(br)
	if err != nil {
		return nil, fmt.Errorf("ReadHeader: %w", err)
	}

	return &Reader{
		r:   br,
		h:   h,
		off: HeaderSize,
	}, nil
}

func (r *Reader) Header() Header {
	return r.h
}

// Count is the number of entries decoded so far, including entries that
// failed their hash check.
func (r *Reader) Count() int {
	return r.count
}

// Offset is the byte offset of the next entry.
func (r *Reader) Offset() int64 {
	return r.off
}

// Next decodes the next entry.  At the clean end of the stream, when no
// byte of a new entry exists, it returns io.EOF.  Running out of input
// inside an entry is an error wrapping io.ErrUnexpectedEOF.
//
// If the entry was read completely but its hash does not match its
// payload, Next returns the entry together with an error wrapping
// ErrHashMismatch; the stream is positioned after the entry so the caller
// may skip it and continue.
func (r *Reader) Next() (Entry, error) {
	var e Entry
	var err error
	switch r.h.Edition() {
	case Legacy:
		e, err = r.nextLegacy()
	default:
		e, err = r.nextStandard()
	}
	if err == io.EOF {
		return Entry{}, io.EOF
	} else if err != nil {
		return Entry{}, fmt.Errorf("entry %d at offset %d: %w", r.count, r.off, err)
	}

	off := r.off
	r.off += e.encodedLen()
	r.count++

	if !e.Valid() {
		return e, fmt.Errorf("entry %d at offset %d (%s): %w", r.count-1, off, e.Hash, ErrHashMismatch)
	}
	return e, nil
}

func (r *Reader) nextLegacy() (Entry, error) {
	dataLen, err := r.h.legacyDataLen()
	if err != nil {
		// a malformed size only matters if there is an entry to read
		if _, peekErr := r.r.Peek(1); peekErr == io.EOF {
			return Entry{}, io.EOF
		}
		return Entry{}, err
	}

	// nothing read at all means a clean end
	data, err := ondisk.ReadSized(r.r, dataLen)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Data: data,
	}
	if err := ondisk.ReadBlock(r.r, e.Hash[:]); err != nil {
		if dataLen > 0 {
			err = ondisk.MidRecord(err)
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *Reader) nextStandard() (Entry, error) {
	h, err := readEntryHeader(r.r)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Header: &h,
	}
	if err := ondisk.ReadBlock(r.r, e.Hash[:]); err != nil {
		return Entry{}, fmt.Errorf("read hash: %w", ondisk.MidRecord(err))
	}
	if e.Data, err = ondisk.ReadSized(r.r, int64(h.EntrySize)); err != nil {
		return Entry{}, fmt.Errorf("read data: %w", ondisk.MidRecord(err))
	}
	return e, nil
}
