// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bpowers/dxvkcache/cachefile"
	"github.com/bpowers/dxvkcache/internal/compress"
)

// inputFile is an open state cache, decompressed if needed.  It is a
// cachefile.BufferedReader, so entry readers use its buffer directly.
type inputFile struct {
	*compress.Reader
	path string
	f    *os.File
	alg  compress.Algorithm
}

var _ cachefile.BufferedReader = (*inputFile)(nil)

func openInput(path string, o *options) (*inputFile, error) {
	if o.requireExtension {
		if err := checkExtension(path); err != nil {
			return nil, errors.Wrap(err, path)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	// entries are read front to back exactly once
	adviseSequential(f)

	r, alg, err := compress.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if alg != compress.None {
		o.logger.WithField("path", path).Debugf("input is %s compressed", alg)
	}

	return &inputFile{
		Reader: r,
		path:   path,
		f:      f,
		alg:    alg,
	}, nil
}

func (in *inputFile) Close() error {
	err := in.Reader.Close()
	if closeErr := in.f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// readerFor opens path and prepares an entry reader over it.
func readerFor(path string, o *options) (*inputFile, *cachefile.Reader, error) {
	in, err := openInput(path, o)
	if err != nil {
		return nil, nil, err
	}
	cr, err := cachefile.NewReader(in)
	if err != nil {
		_ = in.Close()
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	return in, cr, nil
}

// decodeFile reads the complete cache at path, strictly.
func decodeFile(path string, o *options) (*Cache, error) {
	in, err := openInput(path, o)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	c, err := Decode(in)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	o.logger.WithFields(logrus.Fields{
		"path":    path,
		"version": c.Header().Version,
		"entries": c.Len(),
	}).Debug("decoded")
	return c, nil
}

// DecodeFile reads the complete cache at path.  Compressed files are
// decompressed transparently.
func DecodeFile(path string, opts ...Option) (*Cache, error) {
	return decodeFile(path, newOptions(opts))
}
