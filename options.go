// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dxvkcache

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/bpowers/dxvkcache/internal/compress"
)

// Compression selects the framing of written caches.  Inputs are always
// decompressed transparently, whatever was used to write them.
type Compression = compress.Algorithm

const (
	CompressionNone = compress.None
	CompressionZstd = compress.Zstd
	CompressionLZ4  = compress.LZ4
)

// ParseCompression accepts "none", "zstd" or "lz4".
func ParseCompression(name string) (Compression, error) {
	return compress.Parse(name)
}

// Option configures the file-level operations.
type Option func(*options)

type options struct {
	logger           logrus.FieldLogger
	compression      Compression
	requireExtension bool
	dryRun           bool
}

// WithLogger sets an optional logger for progress updates.  If not
// provided, no logging output will be produced.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithCompression compresses written caches.
func WithCompression(c Compression) Option {
	return func(opts *options) {
		opts.compression = c
	}
}

// WithRequireExtension rejects inputs whose names do not end in
// .dxvk-cache (optionally followed by a compression suffix) with an
// InvalidInputExtensionError.
func WithRequireExtension(require bool) Option {
	return func(opts *options) {
		opts.requireExtension = require
	}
}

// WithDryRun makes Merge do everything except write its output.
func WithDryRun(dryRun bool) Option {
	return func(opts *options) {
		opts.dryRun = dryRun
	}
}

func newOptions(opts []Option) *options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := &options{
		logger: discard,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
