// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cachefile

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/bpowers/dxvkcache/internal/ondisk"
)

const entryHeaderSize = 1 + 3 // 8-bit stage mask + 24-bit entry size

// MaxEntrySize is the largest payload a standard entry can describe.
const MaxEntrySize = ondisk.MaxU24

// SHA1Empty is the SHA-1 digest of the empty string.  Legacy entry hashes
// are computed over the payload followed by these 20 bytes.
var SHA1Empty = Hash(sha1.Sum(nil))

// Hash is the SHA-1 content hash identifying an entry.
type Hash [HashSize]byte

// String renders the hash as 40 lowercase hex characters.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash is the inverse of Hash.String.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != 2*HashSize {
		return h, fmt.Errorf("hash %q is %d characters, want %d", s, len(s), 2*HashSize)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("hex.Decode(%q): %w", s, err)
	}
	return h, nil
}

// ComputeHash returns the hash an entry with the given payload has in a
// file of the given edition.
func ComputeHash(edition Edition, data []byte) Hash {
	hasher := sha1.New()
	hasher.Write(data)
	if edition == Legacy {
		hasher.Write(SHA1Empty[:])
	}
	var h Hash
	hasher.Sum(h[:0])
	return h
}

// EntryHeader precedes every entry of a standard file.  The stage mask
// identifies which shader stages the entry covers; its bits are opaque to
// this package.
type EntryHeader struct {
	StageMask uint8
	EntrySize uint32
}

func (h EntryHeader) String() string {
	return fmt.Sprintf("EntryHeader{StageMask: %#b, EntrySize: %d}", h.StageMask, h.EntrySize)
}

func (h EntryHeader) WriteTo(w io.Writer) (n int64, err error) {
	if h.EntrySize > MaxEntrySize {
		return 0, fmt.Errorf("entry size %d does not fit in 24 bits", h.EntrySize)
	}
	if err = ondisk.WriteU8(w, h.StageMask); err != nil {
		return 0, fmt.Errorf("write stage mask: %w", err)
	}
	if err = ondisk.WriteU24(w, h.EntrySize); err != nil {
		return 1, fmt.Errorf("write entry size: %w", err)
	}
	return entryHeaderSize, nil
}

func readEntryHeader(r io.Reader) (EntryHeader, error) {
	var h EntryHeader
	var err error
	if h.StageMask, err = ondisk.ReadU8(r); err != nil {
		// the stage mask is the first byte of an entry, so a clean EOF
		// here is the end of the file
		return EntryHeader{}, err
	}
	if h.EntrySize, err = ondisk.ReadU24(r); err != nil {
		return EntryHeader{}, ondisk.MidRecord(err)
	}
	return h, nil
}

// Entry is a single cache record.  Header is set for entries of standard
// files and nil for entries of legacy files.
type Entry struct {
	Header *EntryHeader
	Hash   Hash
	Data   []byte
}

// NewLegacyEntry returns a legacy entry holding data, with its hash filled in.
func NewLegacyEntry(data []byte) Entry {
	return Entry{
		Hash: ComputeHash(Legacy, data),
		Data: data,
	}
}

// NewStandardEntry returns a standard entry holding data, with its header
// and hash filled in.
func NewStandardEntry(stageMask uint8, data []byte) (Entry, error) {
	if len(data) > MaxEntrySize {
		return Entry{}, fmt.Errorf("entry of %d bytes too large (max %d)", len(data), MaxEntrySize)
	}
	return Entry{
		Header: &EntryHeader{
			StageMask: stageMask,
			EntrySize: uint32(len(data)),
		},
		Hash: ComputeHash(Standard, data),
		Data: data,
	}, nil
}

// Edition reports the layout the entry was built for.
func (e *Entry) Edition() Edition {
	if e.Header != nil {
		return Standard
	}
	return Legacy
}

// Valid reports whether the stored hash matches the payload.
func (e *Entry) Valid() bool {
	return ComputeHash(e.Edition(), e.Data) == e.Hash
}

// CheckLayout verifies that the entry can be stored in a file with the
// given header: the entry header must be present exactly for standard
// files and the payload length must agree with the recorded size.
func (e *Entry) CheckLayout(h Header) error {
	if e.Edition() != h.Edition() {
		return fmt.Errorf("%w: %s entry in a %s cache", ErrEditionMismatch, e.Edition(), h.Edition())
	}
	switch h.Edition() {
	case Legacy:
		dataLen, err := h.legacyDataLen()
		if err != nil {
			return err
		}
		if int64(len(e.Data)) != dataLen {
			return fmt.Errorf("%w: entry %s has %d bytes, file entries have %d", ErrEntrySizeMismatch, e.Hash, len(e.Data), dataLen)
		}
	case Standard:
		if int(e.Header.EntrySize) != len(e.Data) {
			return fmt.Errorf("%w: entry %s header says %d bytes, has %d", ErrEntrySizeMismatch, e.Hash, e.Header.EntrySize, len(e.Data))
		}
		if len(e.Data) > MaxEntrySize {
			return fmt.Errorf("%w: entry %s has %d bytes (max %d)", ErrEntrySizeMismatch, e.Hash, len(e.Data), MaxEntrySize)
		}
	}
	return nil
}

// Check is CheckLayout plus hash verification.
func (e *Entry) Check(h Header) error {
	if err := e.CheckLayout(h); err != nil {
		return err
	}
	if !e.Valid() {
		return fmt.Errorf("%w: entry %s", ErrHashMismatch, e.Hash)
	}
	return nil
}

// encodedLen is the number of bytes the entry occupies on disk.
func (e *Entry) encodedLen() int64 {
	n := int64(HashSize + len(e.Data))
	if e.Header != nil {
		n += entryHeaderSize
	}
	return n
}

// WriteTo encodes the entry in the layout matching its edition.  Callers
// are expected to have checked the layout against the file header.
func (e *Entry) WriteTo(w io.Writer) (n int64, err error) {
	switch e.Edition() {
	case Standard:
		if n, err = e.Header.WriteTo(w); err != nil {
			return n, err
		}
		if _, err = w.Write(e.Hash[:]); err != nil {
			return n, fmt.Errorf("write hash: %w", err)
		}
		if _, err = w.Write(e.Data); err != nil {
			return n, fmt.Errorf("write data: %w", err)
		}
	case Legacy:
		if _, err = w.Write(e.Data); err != nil {
			return 0, fmt.Errorf("write data: %w", err)
		}
		if _, err = w.Write(e.Hash[:]); err != nil {
			return 0, fmt.Errorf("write hash: %w", err)
		}
	}
	return e.encodedLen(), nil
}
