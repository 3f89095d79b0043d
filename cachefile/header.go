// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cachefile

import (
	"fmt"
	"io"

	"github.com/bpowers/dxvkcache/internal/ondisk"
)

const (
	// HeaderSize is the encoded size of a file header.
	HeaderSize = 4 + 4 + 4 // magic + version + entry size
	// HashSize is the size of a SHA-1 entry hash.
	HashSize = 20
	// LegacyMaxVersion is the last version using the legacy layout.
	LegacyMaxVersion = 7
	// Extension is the conventional file extension of state caches.
	Extension = ".dxvk-cache"
)

// Magic is the string every state cache file starts with.
var Magic = [4]byte{'D', 'X', 'V', 'K'}

// Edition is the layout family of a cache file.
type Edition uint8

const (
	Standard Edition = iota
	Legacy
)

// EditionOf returns the edition used by files of the given version.
func EditionOf(version uint32) Edition {
	if version > LegacyMaxVersion {
		return Standard
	}
	return Legacy
}

func (e Edition) String() string {
	switch e {
	case Standard:
		return "standard"
	case Legacy:
		return "legacy"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(e))
	}
}

// Header is the file header.  The decoded header determines the edition
// of every entry that follows it.
type Header struct {
	Magic     [4]byte
	Version   uint32
	EntrySize uint32
}

func NewHeader(version, entrySize uint32) Header {
	return Header{
		Magic:     Magic,
		Version:   version,
		EntrySize: entrySize,
	}
}

func (h Header) Edition() Edition {
	return EditionOf(h.Version)
}

func (h Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: found %q", ErrMagicMismatch, h.Magic[:])
	}
	if h.Version == 0 {
		return ErrInvalidVersion
	}
	return nil
}

// legacyDataLen is the payload length of every entry of a legacy file.
func (h Header) legacyDataLen() (int64, error) {
	if h.EntrySize < HashSize {
		return 0, fmt.Errorf("%w: legacy entry size %d is smaller than a hash", ErrInvalidEntrySize, h.EntrySize)
	}
	return int64(h.EntrySize) - HashSize, nil
}

func (h Header) WriteTo(w io.Writer) (n int64, err error) {
	if _, err = w.Write(h.Magic[:]); err != nil {
		return 0, fmt.Errorf("write magic: %w", err)
	}
	if err = ondisk.WriteU32(w, h.Version); err != nil {
		return 4, fmt.Errorf("write version: %w", err)
	}
	if err = ondisk.WriteU32(w, h.EntrySize); err != nil {
		return 8, fmt.Errorf("write entry size: %w", err)
	}
	return HeaderSize, nil
}

// ReadHeader decodes and validates a file header.  A stream that ends
// before a full header has been read fails with io.ErrUnexpectedEOF.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := ondisk.ReadBlock(r, h.Magic[:]); err != nil {
		return Header{}, fmt.Errorf("read magic: %w", ondisk.MidRecord(err))
	}
	if h.Magic != Magic {
		return Header{}, fmt.Errorf("%w: found %q", ErrMagicMismatch, h.Magic[:])
	}

	var err error
	if h.Version, err = ondisk.ReadU32(r); err != nil {
		return Header{}, fmt.Errorf("read version: %w", ondisk.MidRecord(err))
	}
	if h.Version == 0 {
		return Header{}, ErrInvalidVersion
	}

	if h.EntrySize, err = ondisk.ReadU32(r); err != nil {
		return Header{}, fmt.Errorf("read entry size: %w", ondisk.MidRecord(err))
	}

	return h, nil
}
