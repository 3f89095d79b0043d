// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bpowers/dxvkcache/cachefile"
	"github.com/bpowers/dxvkcache/internal/compress"
)

// Builder writes a state cache file entry by entry.  Nothing appears at
// the destination path until Finalize succeeds.
type Builder struct {
	resultPath string
	tmpFile    *os.File
	cw         io.WriteCloser
	w          *cachefile.Writer
	logger     logrus.FieldLogger
}

// NewBuilder creates a Builder that will produce a cache with header h at
// path.  Building should happen once; call Finalize to commit the file or
// Abort to discard it.
func NewBuilder(path string, h cachefile.Header, opts ...Option) (*Builder, error) {
	return newBuilder(path, h, newOptions(opts))
}

func newBuilder(path string, h cachefile.Header, o *options) (*Builder, error) {
	// we want to write to a new file and do an atomic rename when we're done on disk
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "filepath.Abs")
	}
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".dxvk-cache-builder.*.tmp")
	if err != nil {
		return nil, errors.Wrapf(err, "CreateTemp failed (may need permissions for dir %q containing output)", dir)
	}

	b := &Builder{
		resultPath: path,
		tmpFile:    tmpFile,
		logger:     o.logger,
	}

	if b.cw, err = compress.NewWriter(tmpFile, o.compression); err != nil {
		b.Abort()
		return nil, err
	}
	if b.w, err = cachefile.NewWriter(b.cw, h); err != nil {
		b.Abort()
		return nil, errors.Wrapf(err, "writing %s", path)
	}
	return b, nil
}

// Put appends an entry.  Its layout must match the header; its hash is
// not rechecked.
func (b *Builder) Put(e *cachefile.Entry) error {
	if b.tmpFile == nil {
		return errors.New("Put after Finalize or Abort")
	}
	if err := b.w.Write(e); err != nil {
		return errors.Wrapf(err, "writing %s", b.resultPath)
	}
	return nil
}

// Count is the number of entries written so far.
func (b *Builder) Count() int {
	return b.w.Count()
}

// Finalize flushes the cache to disk and moves it into place.
func (b *Builder) Finalize() error {
	if b.tmpFile == nil {
		return errors.New("Finalize after Finalize or Abort")
	}
	if err := b.finalize(); err != nil {
		b.Abort()
		return errors.Wrapf(err, "writing %s", b.resultPath)
	}
	b.logger.WithFields(logrus.Fields{
		"path":    b.resultPath,
		"entries": b.w.Count(),
	}).Debug("wrote state cache")
	return nil
}

func (b *Builder) finalize() error {
	if err := b.w.Finish(); err != nil {
		return errors.Wrap(err, "Writer.Finish")
	}
	if err := b.cw.Close(); err != nil {
		return errors.Wrap(err, "compressor Close")
	}
	if err := b.tmpFile.Sync(); err != nil {
		return errors.Wrap(err, "Sync")
	}
	if err := b.tmpFile.Close(); err != nil {
		return errors.Wrap(err, "Close")
	}
	// CreateTemp makes the file private; DXVK wants to append to it later
	if err := os.Chmod(b.tmpFile.Name(), 0o644); err != nil {
		return errors.Wrap(err, "os.Chmod(0644)")
	}
	if err := os.Rename(b.tmpFile.Name(), b.resultPath); err != nil {
		return errors.Wrap(err, "os.Rename")
	}
	b.tmpFile = nil
	return nil
}

// Abort discards everything written so far.  It is safe to call more
// than once, and after a successful Finalize it does nothing.
func (b *Builder) Abort() {
	if b.tmpFile == nil {
		return
	}
	if b.cw != nil {
		_ = b.cw.Close()
	}
	_ = b.tmpFile.Close()
	_ = os.Remove(b.tmpFile.Name())
	b.tmpFile = nil
}

// WriteFile writes c to path atomically.  An empty cache fails with
// ErrNoEntriesFound without touching the filesystem.
func WriteFile(path string, c *Cache, opts ...Option) error {
	return writeFile(path, c, newOptions(opts))
}

func writeFile(path string, c *Cache, o *options) error {
	if c.Len() == 0 {
		return errors.Wrapf(ErrNoEntriesFound, "writing %s", path)
	}

	b, err := newBuilder(path, c.Header(), o)
	if err != nil {
		return err
	}
	err = c.ForEach(func(e *cachefile.Entry) error {
		return b.Put(e)
	})
	if err != nil {
		b.Abort()
		return err
	}
	return b.Finalize()
}
