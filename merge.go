// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bpowers/dxvkcache/cachefile"
)

// InputStats describes what one input contributed to a merge.
type InputStats struct {
	Path    string `json:"path" yaml:"path"`
	Version uint32 `json:"version" yaml:"version"`
	// Entries counts every entry read, including omitted and duplicate ones.
	Entries    int `json:"entries" yaml:"entries"`
	Inserted   int `json:"inserted" yaml:"inserted"`
	Omitted    int `json:"omitted" yaml:"omitted"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
}

// MergeResult summarizes a merge.
type MergeResult struct {
	Output  string           `json:"output" yaml:"output"`
	Header  cachefile.Header `json:"-" yaml:"-"`
	Version uint32           `json:"version" yaml:"version"`
	// Entries is the size of the merged cache.
	Entries    int          `json:"entries" yaml:"entries"`
	Omitted    int          `json:"omitted" yaml:"omitted"`
	Duplicates int          `json:"duplicates" yaml:"duplicates"`
	DryRun     bool         `json:"dry_run" yaml:"dry_run"`
	Inputs     []InputStats `json:"inputs" yaml:"inputs"`
}

// mergeState remembers the header of the first input; every later input
// must agree with it.
type mergeState struct {
	set    bool
	header cachefile.Header
}

func (s *mergeState) check(h cachefile.Header) error {
	if !s.set {
		s.set = true
		s.header = h
		return nil
	}
	if h.Version != s.header.Version {
		return &VersionMismatchError{Expected: s.header.Version, Found: h.Version}
	}
	// legacy payloads have no size of their own
	if h.Edition() == cachefile.Legacy && h.EntrySize != s.header.EntrySize {
		return errors.Wrapf(cachefile.ErrEntrySizeMismatch, "expected entry size %d, found %d", s.header.EntrySize, h.EntrySize)
	}
	return nil
}

// Merge combines the entries of all inputs, in order, into one cache
// written to output.  Every input must have the version of the first.
// Entries failing their hash check are counted and left out; entries
// already merged from an earlier input are dropped.  If nothing is left
// the merge fails with ErrNoEntriesFound and output is not created.
func Merge(inputs []string, output string, opts ...Option) (*MergeResult, error) {
	o := newOptions(opts)

	var state mergeState
	var c *Cache
	result := &MergeResult{
		Output: output,
		DryRun: o.dryRun,
	}

	for _, path := range inputs {
		o.logger.Infof("importing %s", path)
		stats, err := mergeInput(path, &state, &c, o)
		if err != nil {
			return nil, err
		}
		result.Inputs = append(result.Inputs, stats)
		result.Omitted += stats.Omitted
		result.Duplicates += stats.Duplicates
	}

	if c == nil || c.Len() == 0 {
		return nil, ErrNoEntriesFound
	}
	result.Header = c.Header()
	result.Version = c.Header().Version
	result.Entries = c.Len()

	if o.dryRun {
		o.logger.Infof("dry run: merged cache would contain %d entries", c.Len())
		return result, nil
	}
	if err := writeFile(output, c, o); err != nil {
		return nil, err
	}
	o.logger.WithField("omitted", result.Omitted).Infof("merged cache %s contains %d entries", output, c.Len())
	return result, nil
}

func mergeInput(path string, state *mergeState, c **Cache, o *options) (InputStats, error) {
	stats := InputStats{Path: path}

	in, cr, err := readerFor(path, o)
	if err != nil {
		return stats, err
	}
	defer func() { _ = in.Close() }()

	h := cr.Header()
	stats.Version = h.Version
	if err := state.check(h); err != nil {
		return stats, errors.Wrapf(err, "reading %s", path)
	}
	if *c == nil {
		*c = New(h)
	}

	logger := o.logger.WithField("path", path)
	for {
		e, err := cr.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, cachefile.ErrHashMismatch) {
			stats.Entries++
			stats.Omitted++
			logger.Debugf("omitting entry %s: hash mismatch", e.Hash)
			continue
		} else if err != nil {
			return stats, errors.Wrapf(err, "reading %s", path)
		}
		stats.Entries++

		inserted, err := (*c).Insert(e, Silent)
		if err != nil {
			return stats, errors.Wrapf(err, "reading %s", path)
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
	}

	logger.WithFields(logrus.Fields{
		"version":  h.Version,
		"entries":  stats.Entries,
		"inserted": stats.Inserted,
	}).Debug("imported")
	return stats, nil
}
