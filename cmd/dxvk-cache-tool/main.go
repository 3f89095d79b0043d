// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// dxvk-cache-tool merges, inspects and rewrites DXVK state cache files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bpowers/dxvkcache"
	"github.com/bpowers/dxvkcache/internal/config"
)

const appName = "dxvk-cache-tool"

var version = "dev"

// tool is the state shared by all subcommands once the global flags and
// the config file have been read.
type tool struct {
	stdout io.Writer
	logger *logrus.Logger
	cfg    *config.Config
	format string
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the process exit
// code.  Failures are reported as a single line on stderr.
func run(args []string, stdout, stderr io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	t := &tool{
		stdout: stdout,
		logger: logger,
	}

	app := t.newApp()
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) && exitErr.ExitCode() != 0 {
			return exitErr.ExitCode()
		}
		return 1
	}
	return 0
}

func (t *tool) newApp() *cli.App {
	return &cli.App{
		Name:    appName,
		Usage:   "merge, inspect and rewrite DXVK state cache files",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Config file path (default $XDG_CONFIG_HOME/dxvk-cache-tool/config.ini)", TakesFile: true},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Set log level (panic, fatal, error, warn, info, debug, trace)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Shortcut for --log-level debug"},
			&cli.StringFlag{Name: "format", Value: "human", Usage: "Output format (human, json, yaml)"},
		},
		Before: t.setup,
		// errors are reported by run, which must not exit the process
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			t.mergeCommand(),
			t.inspectCommand(),
			t.jumbleCommand(),
			t.listEntriesCommand(),
			t.differenceCommand(),
		},
	}
}

// setup loads the config file; flags given on the command line take
// precedence over its values.
func (t *tool) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	t.cfg = cfg

	level := cfg.Log.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	if c.Bool("verbose") {
		level = "debug"
	}
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	t.logger.SetLevel(logLevel)

	t.format = cfg.Output.Format
	if c.IsSet("format") {
		t.format = c.String("format")
	}
	if !isPossibleValue(outputFormats, t.format) {
		return fmt.Errorf("--format should be one of %v", outputFormats)
	}

	if cfg.Path != "" {
		t.logger.Debugf("loaded config %s", cfg.Path)
	}
	return nil
}

// options translates the flags shared by the subcommands into library
// options.
func (t *tool) options(c *cli.Context) ([]dxvkcache.Option, error) {
	opts := []dxvkcache.Option{
		dxvkcache.WithLogger(t.logger),
	}

	requireExtension := t.cfg.Input.RequireExtension
	if c.IsSet("require-extension") {
		requireExtension = c.Bool("require-extension")
	}
	opts = append(opts, dxvkcache.WithRequireExtension(requireExtension))

	compression := t.cfg.Output.Compression
	if c.IsSet("compress") {
		compression = c.String("compress")
	}
	comp, err := dxvkcache.ParseCompression(compression)
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	opts = append(opts, dxvkcache.WithCompression(comp))

	return opts, nil
}

func isPossibleValue(expected []string, value string) bool {
	for _, v := range expected {
		if value == v {
			return true
		}
	}
	return false
}
