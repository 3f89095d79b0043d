// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bpowers/dxvkcache/cachefile"
)

var (
	ErrDuplicateEntry        = errors.New("duplicate state cache entry")
	ErrVersionMismatch       = errors.New("state cache version mismatch")
	ErrNoEntriesFound        = errors.New("no valid state cache entries found")
	ErrInvalidInputExtension = errors.New("file extension mismatch")
)

// VersionMismatchError is returned when caches of different versions are
// combined.  It matches ErrVersionMismatch with errors.Is.
type VersionMismatchError struct {
	Expected uint32
	Found    uint32
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("state cache version mismatch: expected v%d, found v%d", e.Expected, e.Found)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// InvalidInputExtensionError is returned for inputs not named like state
// cache files when the extension check is enabled.  It matches
// ErrInvalidInputExtension with errors.Is.
type InvalidInputExtensionError struct {
	Found string
}

func (e *InvalidInputExtensionError) Error() string {
	return fmt.Sprintf("file extension mismatch: found %q, expected %s", e.Found, cachefile.Extension)
}

func (e *InvalidInputExtensionError) Is(target error) bool {
	return target == ErrInvalidInputExtension
}
