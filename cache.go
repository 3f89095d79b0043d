// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"fmt"
	"io"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/bpowers/dxvkcache/cachefile"
	"github.com/bpowers/dxvkcache/internal/bitset"
)

// InsertPolicy decides what happens when an entry's hash is already
// present in a Cache.
type InsertPolicy int

const (
	// Strict rejects duplicates with ErrDuplicateEntry.
	Strict InsertPolicy = iota
	// Silent discards duplicates; the first occurrence keeps its position.
	Silent
)

func (p InsertPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Silent:
		return "silent"
	default:
		return fmt.Sprintf("InsertPolicy(%d)", int(p))
	}
}

// Cache is a file header plus a set of entries, iterated in insertion
// order.  Every entry in a Cache has a valid hash and a layout matching
// the header.
type Cache struct {
	header  cachefile.Header
	entries []cachefile.Entry
	index   map[cachefile.Hash]int
}

// New returns an empty cache with the given header.
func New(h cachefile.Header) *Cache {
	return &Cache{
		header: h,
		index:  make(map[cachefile.Hash]int),
	}
}

func (c *Cache) Header() cachefile.Header {
	return c.header
}

func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) Contains(h cachefile.Hash) bool {
	_, ok := c.index[h]
	return ok
}

// Get returns the entry with hash h.
func (c *Cache) Get(h cachefile.Hash) (cachefile.Entry, bool) {
	i, ok := c.index[h]
	if !ok {
		return cachefile.Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns the entries in insertion order.  The slice must not be
// modified.
func (c *Cache) Entries() []cachefile.Entry {
	return c.entries
}

// Hashes returns the entry hashes in insertion order.
func (c *Cache) Hashes() []cachefile.Hash {
	hashes := make([]cachefile.Hash, len(c.entries))
	for i := range c.entries {
		hashes[i] = c.entries[i].Hash
	}
	return hashes
}

// ForEach calls fn for every entry in insertion order, stopping at the
// first error.
func (c *Cache) ForEach(fn func(e *cachefile.Entry) error) error {
	for i := range c.entries {
		if err := fn(&c.entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// Insert adds e to the cache.  The entry must have a valid hash and fit
// the cache's header.  It reports whether e was added: under the Silent
// policy a duplicate is dropped without error.
func (c *Cache) Insert(e cachefile.Entry, policy InsertPolicy) (bool, error) {
	if err := e.Check(c.header); err != nil {
		return false, err
	}
	if c.Contains(e.Hash) {
		if policy == Silent {
			return false, nil
		}
		return false, errors.Wrapf(ErrDuplicateEntry, "entry %s", e.Hash)
	}
	c.add(e)
	return true, nil
}

func (c *Cache) add(e cachefile.Entry) {
	c.index[e.Hash] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Fingerprint summarizes the set of hashes in the cache.  It does not
// depend on entry order, so two caches holding the same entries have the
// same fingerprint.
func (c *Cache) Fingerprint() uint64 {
	var sum uint64
	for i := range c.entries {
		sum += farm.Fingerprint64(c.entries[i].Hash[:])
	}
	return sum
}

// Decode reads a complete state cache from r.  Every entry must be valid
// and unique: hash mismatches and duplicates are errors.
func Decode(r io.Reader) (*Cache, error) {
	cr, err := cachefile.NewReader(r)
	if err != nil {
		return nil, err
	}

	c := New(cr.Header())
	for {
		e, err := cr.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if _, err := c.Insert(e, Strict); err != nil {
			return nil, errors.Wrapf(err, "entry %d", cr.Count()-1)
		}
	}
	return c, nil
}

// WriteTo encodes the cache: its header, then its entries in insertion
// order.  An empty cache cannot be written and fails with
// ErrNoEntriesFound before anything reaches w.
func (c *Cache) WriteTo(w io.Writer) (int64, error) {
	if c.Len() == 0 {
		return 0, ErrNoEntriesFound
	}

	cw, err := cachefile.NewWriter(w, c.header)
	if err != nil {
		return 0, err
	}
	for i := range c.entries {
		if err := cw.Write(&c.entries[i]); err != nil {
			return cw.Offset(), err
		}
	}
	if err := cw.Finish(); err != nil {
		return cw.Offset(), err
	}
	return cw.Offset(), nil
}

// Difference returns the entries of a whose hash is not in b, in a's
// order, under a's header.  Both caches must have the same version.
func Difference(a, b *Cache) (*Cache, error) {
	if a.header.Version != b.header.Version {
		return nil, &VersionMismatchError{Expected: a.header.Version, Found: b.header.Version}
	}

	shared := bitset.New(a.Len())
	for i := range a.entries {
		if b.Contains(a.entries[i].Hash) {
			shared.Set(i)
		}
	}

	result := New(a.header)
	result.entries = make([]cachefile.Entry, 0, a.Len()-shared.Count())
	for i := range a.entries {
		if !shared.IsSet(i) {
			result.add(a.entries[i])
		}
	}
	return result, nil
}
