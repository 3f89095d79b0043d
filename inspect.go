// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bpowers/dxvkcache/cachefile"
)

// StageMaskCount is the number of entries sharing a stage mask.
type StageMaskCount struct {
	StageMask uint8 `json:"stage_mask" yaml:"stage_mask"`
	Entries   int   `json:"entries" yaml:"entries"`
}

// Info describes a decoded cache file.
type Info struct {
	Path        string `json:"path" yaml:"path"`
	Version     uint32 `json:"version" yaml:"version"`
	Edition     string `json:"edition" yaml:"edition"`
	EntrySize   uint32 `json:"entry_size" yaml:"entry_size"`
	Entries     int    `json:"entries" yaml:"entries"`
	Compression string `json:"compression" yaml:"compression"`
	// StageMasks is only filled in for standard caches, ordered by mask.
	StageMasks  []StageMaskCount `json:"stage_masks,omitempty" yaml:"stage_masks,omitempty"`
	Fingerprint string           `json:"fingerprint" yaml:"fingerprint"`
}

// Inspect decodes the cache at path, strictly, and describes it.
func Inspect(path string, opts ...Option) (*Info, error) {
	o := newOptions(opts)

	in, err := openInput(path, o)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	c, err := Decode(in)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	info := Describe(c)
	info.Path = path
	info.Compression = in.alg.String()
	return info, nil
}

// Describe summarizes an in-memory cache.
func Describe(c *Cache) *Info {
	h := c.Header()
	info := &Info{
		Version:     h.Version,
		Edition:     h.Edition().String(),
		EntrySize:   h.EntrySize,
		Entries:     c.Len(),
		Compression: CompressionNone.String(),
		Fingerprint: fmt.Sprintf("%016x", c.Fingerprint()),
	}
	if h.Edition() == cachefile.Standard {
		info.StageMasks = stageMaskHistogram(c)
	}
	return info
}

func stageMaskHistogram(c *Cache) []StageMaskCount {
	var counts [256]int
	for _, e := range c.Entries() {
		counts[e.Header.StageMask]++
	}

	var hist []StageMaskCount
	for mask, n := range counts {
		if n > 0 {
			hist = append(hist, StageMaskCount{StageMask: uint8(mask), Entries: n})
		}
	}
	return hist
}
