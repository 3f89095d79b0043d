// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

// Rewrite decodes input and encodes it again to output, keeping the entry
// order.  For an uncompressed, well-formed input with the default options
// the output is byte-identical.  It returns the number of entries
// written.
func Rewrite(input, output string, opts ...Option) (int, error) {
	o := newOptions(opts)

	c, err := decodeFile(input, o)
	if err != nil {
		return 0, err
	}
	if err := writeFile(output, c, o); err != nil {
		return 0, err
	}
	o.logger.Infof("rewrote %s to %s (%d entries)", input, output, c.Len())
	return c.Len(), nil
}
