// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"github.com/bpowers/dxvkcache/cachefile"
)

// ListEntries decodes each file completely, in order, then calls fn with
// the hash of each of its entries.  A file that fails to decode stops the
// listing before any of its hashes are reported.
func ListEntries(paths []string, fn func(path string, h cachefile.Hash) error, opts ...Option) error {
	o := newOptions(opts)

	for _, path := range paths {
		c, err := decodeFile(path, o)
		if err != nil {
			return err
		}
		err = c.ForEach(func(e *cachefile.Entry) error {
			return fn(path, e.Hash)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
