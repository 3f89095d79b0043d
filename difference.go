// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"github.com/pkg/errors"
)

// DifferenceFiles decodes both files and returns the entries of first
// that second lacks.  If output is not empty the result is also written
// there.
func DifferenceFiles(first, second, output string, opts ...Option) (*Cache, error) {
	o := newOptions(opts)

	a, err := decodeFile(first, o)
	if err != nil {
		return nil, err
	}
	b, err := decodeFile(second, o)
	if err != nil {
		return nil, err
	}

	diff, err := Difference(a, b)
	if err != nil {
		return nil, errors.Wrapf(err, "comparing %s with %s", first, second)
	}
	o.logger.Infof("%d of %d entries of %s are not in %s", diff.Len(), a.Len(), first, second)

	if output != "" {
		if err := writeFile(output, diff, o); err != nil {
			return nil, err
		}
	}
	return diff, nil
}
