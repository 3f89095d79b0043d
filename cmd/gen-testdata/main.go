// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata writes a synthetic state cache for manual testing.  The
// same seed always produces the same file.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bpowers/dxvkcache"
	"github.com/bpowers/dxvkcache/cachefile"
)

type genOptions struct {
	version   uint32
	entries   int
	entrySize uint32 // legacy: fixed entry size including the hash
	minSize   int    // standard: payload size range
	maxSize   int
	corrupt   int
	seed      int64
}

// header is the file header for o.  Legacy entries must have room for
// their hash.
func (o genOptions) header() (cachefile.Header, error) {
	h := cachefile.NewHeader(o.version, 0)
	if h.Edition() == cachefile.Legacy {
		if o.entrySize < cachefile.HashSize {
			return cachefile.Header{}, fmt.Errorf("--entry-size (%d) must be at least %d for legacy versions", o.entrySize, cachefile.HashSize)
		}
		h.EntrySize = o.entrySize
	}
	if err := h.Validate(); err != nil {
		return cachefile.Header{}, err
	}
	return h, nil
}

// generate returns the entries of a cache with header h.  The last
// o.corrupt entries get a damaged hash.
func generate(h cachefile.Header, o genOptions) ([]cachefile.Entry, error) {
	rng := rand.New(rand.NewSource(o.seed))
	entries := make([]cachefile.Entry, 0, o.entries)

	for i := 0; i < o.entries; i++ {
		var size int
		if h.Edition() == cachefile.Legacy {
			if size = int(h.EntrySize) - cachefile.HashSize; size < 0 {
				return nil, fmt.Errorf("legacy entry size %d is smaller than a hash", h.EntrySize)
			}
		} else {
			size = o.minSize + rng.Intn(o.maxSize-o.minSize+1)
		}
		data := make([]byte, size)
		if _, err := rng.Read(data); err != nil {
			return nil, err
		}

		var e cachefile.Entry
		if h.Edition() == cachefile.Legacy {
			e = cachefile.NewLegacyEntry(data)
		} else {
			var err error
			if e, err = cachefile.NewStandardEntry(uint8(rng.Intn(256)), data); err != nil {
				return nil, err
			}
		}
		if i >= o.entries-o.corrupt {
			e.Hash[rng.Intn(cachefile.HashSize)] ^= 0xff
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func action(c *cli.Context) error {
	o := genOptions{
		version:   uint32(c.Uint("cache-version")),
		entries:   c.Int("entries"),
		entrySize: uint32(c.Uint("entry-size")),
		minSize:   c.Int("min-size"),
		maxSize:   c.Int("max-size"),
		corrupt:   c.Int("corrupt"),
		seed:      c.Int64("seed"),
	}
	if o.minSize < 0 || o.maxSize < o.minSize || o.maxSize > cachefile.MaxEntrySize {
		return fmt.Errorf("invalid size range [%d, %d]", o.minSize, o.maxSize)
	}
	if o.corrupt > o.entries {
		return fmt.Errorf("--corrupt (%d) exceeds --entries (%d)", o.corrupt, o.entries)
	}

	h, err := o.header()
	if err != nil {
		return err
	}

	entries, err := generate(h, o)
	if err != nil {
		return errors.Wrap(err, "generate")
	}

	comp, err := dxvkcache.ParseCompression(c.String("compress"))
	if err != nil {
		return err
	}
	b, err := dxvkcache.NewBuilder(c.String("output"), h, dxvkcache.WithCompression(comp))
	if err != nil {
		return err
	}
	for i := range entries {
		if err := b.Put(&entries[i]); err != nil {
			b.Abort()
			return err
		}
	}
	if err := b.Finalize(); err != nil {
		return err
	}

	logrus.Infof("wrote %d entries (%d corrupt) to %s", len(entries), o.corrupt, c.String("output"))
	return nil
}

func main() {
	app := &cli.App{
		Name:  "gen-testdata",
		Usage: "Generate a synthetic DXVK state cache",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "testdata" + cachefile.Extension, Usage: "Output path"},
			&cli.UintFlag{Name: "cache-version", Value: 17, Usage: "State cache version (7 and below use the legacy layout)"},
			&cli.IntFlag{Name: "entries", Value: 1000, Usage: "Number of entries"},
			&cli.UintFlag{Name: "entry-size", Value: 1216, Usage: "Legacy entry size, hash included"},
			&cli.IntFlag{Name: "min-size", Value: 64, Usage: "Smallest standard payload"},
			&cli.IntFlag{Name: "max-size", Value: 4096, Usage: "Largest standard payload"},
			&cli.IntFlag{Name: "corrupt", Usage: "Number of trailing entries with a damaged hash"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Random seed"},
			&cli.StringFlag{Name: "compress", Value: "none", Usage: "Compress the output (none, zstd, lz4)"},
		},
		Action: action,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
