// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var outputFormats = []string{"human", "json", "yaml"}

// printer remembers the first write error so human-readable output can
// be produced without checking every line.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// print writes v to stdout in the selected machine-readable format, or
// calls human for the default format.
func (t *tool) print(v interface{}, human func(p *printer)) error {
	switch t.format {
	case "json":
		enc := json.NewEncoder(t.stdout)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "json encode")
	case "yaml":
		enc := yaml.NewEncoder(t.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "yaml encode")
		}
		return errors.Wrap(enc.Close(), "yaml encode")
	default:
		p := &printer{w: t.stdout}
		human(p)
		return p.err
	}
}
