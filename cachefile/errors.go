// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cachefile

import (
	"errors"
)

var (
	ErrMagicMismatch  = errors.New("magic string mismatch")
	ErrInvalidVersion = errors.New("header contained invalid zero version")
	ErrHashMismatch   = errors.New("entry invalid due to hash mismatch")

	// ErrInvalidEntrySize is returned for a legacy file whose header entry
	// size cannot even hold a hash.
	ErrInvalidEntrySize = errors.New("invalid entry size")
	// ErrEntrySizeMismatch is returned when an entry's payload length
	// disagrees with the size recorded for it.
	ErrEntrySizeMismatch = errors.New("entry size mismatch")
	// ErrEditionMismatch is returned when an entry header is present in a
	// legacy file or missing in a standard one.
	ErrEditionMismatch = errors.New("entry layout does not match cache edition")
)
