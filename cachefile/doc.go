// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package cachefile encodes and decodes DXVK state cache files, the
// on-disk record of compiled shader pipeline state written by DXVK.
//
// A state cache file looks like:
//
//	┌───────────────────┐
//	│ file header       │
//	├───────────────────┤
//	│ repeated entries  │
//	│                   │
//	│                   │
//	│                   │
//	└───────────────────┘
//
// The 12-byte file header is the ASCII magic "DXVK", a 32-bit version and a
// 32-bit entry size, both little-endian.  There is no entry count: entries
// run until the end of the file.
//
// Files with a version of 7 or less use the legacy layout.  Every entry has
// the same size, taken from the file header, and is the payload followed by
// its hash:
//
//	+----+----+----+----+----+----+----+----+
//	| data (entry size - 20 bytes)...       |
//	+----+----+----+----+----+----+----+----+
//	| ...  | hash (20 bytes)...             |
//	+----+----+----+----+----+----+----+----+
//
// Files with a version of 8 or more use the standard layout, where each
// entry carries its own 4-byte header (an opaque 8-bit stage mask and a
// 24-bit payload size) before the hash and payload:
//
//	 0    1    2    3    4 ...          23   24 ...
//	+----+----+----+----+-----------------+----------------+
//	|mask| entry size   | hash (20 bytes) | data...        |
//	+----+----+----+----+-----------------+----------------+
//
// The file-level entry size is still written for standard files but is not
// used to size payloads.
//
// Hashes are SHA-1 digests.  Standard entries hash their payload; legacy
// entries hash their payload followed by the SHA-1 digest of the empty
// string, a quirk that must be kept to stay compatible with caches written
// by old DXVK releases.
package cachefile
