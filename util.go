// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"path/filepath"
	"strings"

	"github.com/bpowers/dxvkcache/cachefile"
	"github.com/bpowers/dxvkcache/internal/compress"
)

// cacheExtension returns the extension of path relevant to state caches:
// ".dxvk-cache" for "foo.dxvk-cache.zst", ".zst" for "foo.zst".
func cacheExtension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	for _, alg := range []compress.Algorithm{compress.Zstd, compress.LZ4} {
		if ext == alg.Extension() {
			if inner := filepath.Ext(strings.TrimSuffix(base, ext)); inner != "" {
				return inner
			}
			return ext
		}
	}
	return ext
}

func checkExtension(path string) error {
	if ext := cacheExtension(path); ext != cachefile.Extension {
		return &InvalidInputExtensionError{Found: ext}
	}
	return nil
}
