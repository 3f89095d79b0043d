// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cachefile

import (
	"bufio"
	"fmt"
	"io"
)

type nopWriter struct{}

func (nopWriter) Write([]byte) (int, error) {
	return 0, io.EOF
}

// Writer encodes a state cache stream: the file header, written by
// NewWriter, followed by entries.
type Writer struct {
	h        Header
	w        *bufio.Writer
	off      int64
	count    int
	finished bool
}

func NewWriter(w io.Writer, h Header) (*Writer, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("Header.Validate: %w", err)
	}

	cw := &Writer{
		h: h,
		w: bufio.NewWriterSize(w, defaultBufferSize),
	}

	if headerLen, err := cw.h.WriteTo(cw.w); err != nil {
		return nil, fmt.Errorf("Header.WriteTo: %w", err)
	} else {
		cw.off = headerLen
	}

	// try to expose errors when writing to the backing file early
	if err := cw.w.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	return cw, nil
}

func (w *Writer) Header() Header {
	return w.h
}

// Count is the number of entries written so far.
func (w *Writer) Count() int {
	return w.count
}

// Offset is the number of bytes written so far, including buffered ones.
func (w *Writer) Offset() int64 {
	return w.off
}

// Write appends an entry.  The entry's layout must match the file's
// edition; its hash is written as-is.
func (w *Writer) Write(e *Entry) error {
	if w.finished {
		return fmt.Errorf("write after Finish")
	}
	if err := e.CheckLayout(w.h); err != nil {
		return err
	}

	n, err := e.WriteTo(w.w)
	if err != nil {
		return fmt.Errorf("Entry.WriteTo: %w", err)
	}
	w.off += n
	w.count++
	return nil
}

// Finish flushes buffered entries.  It is safe to call more than once.
func (w *Writer) Finish() error {
	if w.finished {
		// nothing to do - already flushed
		return nil
	}
	w.finished = true

	defer func() {
		w.w.Reset(nopWriter{})
	}()

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("bufio.Flush: %w", err)
	}
	return nil
}
