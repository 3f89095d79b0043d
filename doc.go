// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package dxvkcache manipulates DXVK pipeline state cache files.
//
// A Cache is an ordered set of entries keyed by their SHA-1 hash: entries
// iterate in the order they were first inserted and a hash is never
// present twice.  Caches are decoded from and encoded to the on-disk
// format implemented by package cachefile.
//
// On top of the container, the file-level operations Merge, Inspect,
// Rewrite, ListEntries and DifferenceFiles back the dxvk-cache-tool
// command.  They name the offending file in every error, and outputs are
// written to a temporary file that is renamed into place only once it is
// complete.
package dxvkcache
