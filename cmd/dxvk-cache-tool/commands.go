// Copyright 2026 The dxvkcache Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bpowers/dxvkcache"
	"github.com/bpowers/dxvkcache/cachefile"
)

func compressFlag() cli.Flag {
	return &cli.StringFlag{Name: "compress", Usage: "Compress the output (none, zstd, lz4)"}
}

func requireExtensionFlag() cli.Flag {
	return &cli.BoolFlag{Name: "require-extension", Usage: "Reject inputs not named *" + cachefile.Extension}
}

func (t *tool) mergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Merge state caches of the same version into one",
		ArgsUsage: "INPUT...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "output" + cachefile.Extension, Usage: "Merged cache path", TakesFile: true},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "Read and merge the inputs without writing the output"},
			compressFlag(),
			requireExtensionFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("merge: at least one input is required", 2)
			}
			opts, err := t.options(c)
			if err != nil {
				return err
			}
			opts = append(opts, dxvkcache.WithDryRun(c.Bool("dry-run")))

			result, err := dxvkcache.Merge(c.Args().Slice(), c.String("output"), opts...)
			if err != nil {
				return err
			}
			return t.print(result, func(p *printer) {
				if result.DryRun {
					p.printf("dry run: merged cache would contain %d entries", result.Entries)
				} else {
					p.printf("merged cache %s contains %d entries", result.Output, result.Entries)
				}
				p.printf(" (%d omitted, %d duplicates)\n", result.Omitted, result.Duplicates)
			})
		},
	}
}

func (t *tool) inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the version, entry count and stage masks of state caches",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			requireExtensionFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("inspect: at least one file is required", 2)
			}
			opts, err := t.options(c)
			if err != nil {
				return err
			}

			var infos []*dxvkcache.Info
			for _, path := range c.Args().Slice() {
				info, err := dxvkcache.Inspect(path, opts...)
				if err != nil {
					return err
				}
				infos = append(infos, info)
			}
			return t.print(infos, func(p *printer) {
				for i, info := range infos {
					if i > 0 {
						p.printf("\n")
					}
					printInfo(p, info)
				}
			})
		},
	}
}

func printInfo(p *printer, info *dxvkcache.Info) {
	p.printf("path:        %s\n", info.Path)
	p.printf("version:     %d (%s)\n", info.Version, info.Edition)
	p.printf("entry size:  %d\n", info.EntrySize)
	p.printf("entries:     %d\n", info.Entries)
	p.printf("compression: %s\n", info.Compression)
	p.printf("fingerprint: %s\n", info.Fingerprint)
	if len(info.StageMasks) > 0 {
		p.printf("stage masks:\n")
		for _, m := range info.StageMasks {
			p.printf("  0b%08b %d\n", m.StageMask, m.Entries)
		}
	}
}

func (t *tool) jumbleCommand() *cli.Command {
	return &cli.Command{
		Name:      "jumble",
		Usage:     "Decode a state cache and encode it again",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Rewritten cache path", TakesFile: true},
			compressFlag(),
			requireExtensionFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("jumble: exactly one input is required", 2)
			}
			opts, err := t.options(c)
			if err != nil {
				return err
			}

			output := c.String("output")
			n, err := dxvkcache.Rewrite(c.Args().First(), output, opts...)
			if err != nil {
				return err
			}
			summary := struct {
				Output  string `json:"output" yaml:"output"`
				Entries int    `json:"entries" yaml:"entries"`
			}{output, n}
			return t.print(summary, func(p *printer) {
				p.printf("wrote %d entries to %s\n", n, output)
			})
		},
	}
}

type listedEntry struct {
	Path string `json:"path" yaml:"path"`
	Hash string `json:"hash" yaml:"hash"`
}

func (t *tool) listEntriesCommand() *cli.Command {
	return &cli.Command{
		Name:      "list-entries",
		Usage:     "Print the hash of every entry",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "separator", Aliases: []string{"s"}, Value: "\n", Usage: "Separator printed between hashes"},
			requireExtensionFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("list-entries: at least one file is required", 2)
			}
			opts, err := t.options(c)
			if err != nil {
				return err
			}

			listed := []listedEntry{}
			err = dxvkcache.ListEntries(c.Args().Slice(), func(path string, h cachefile.Hash) error {
				listed = append(listed, listedEntry{Path: path, Hash: h.String()})
				return nil
			}, opts...)
			if err != nil {
				return err
			}

			return t.print(listed, func(p *printer) {
				hashes := make([]string, len(listed))
				for i, e := range listed {
					hashes[i] = e.Hash
				}
				printSeparated(p, hashes, c.String("separator"))
			})
		},
	}
}

func (t *tool) differenceCommand() *cli.Command {
	return &cli.Command{
		Name:      "difference",
		Usage:     "Find the entries of the first cache missing from the second",
		ArgsUsage: "FIRST SECOND",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the missing entries as a cache instead of listing their hashes", TakesFile: true},
			&cli.StringFlag{Name: "separator", Aliases: []string{"s"}, Value: "\n", Usage: "Separator printed between hashes"},
			compressFlag(),
			requireExtensionFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("difference: exactly two inputs are required", 2)
			}
			opts, err := t.options(c)
			if err != nil {
				return err
			}

			first, second := c.Args().Get(0), c.Args().Get(1)
			output := c.String("output")
			diff, err := dxvkcache.DifferenceFiles(first, second, output, opts...)
			if err != nil {
				return err
			}

			hashes := make([]string, 0, diff.Len())
			for _, h := range diff.Hashes() {
				hashes = append(hashes, h.String())
			}
			if output != "" {
				summary := struct {
					Output  string `json:"output" yaml:"output"`
					Entries int    `json:"entries" yaml:"entries"`
				}{output, diff.Len()}
				return t.print(summary, func(p *printer) {
					p.printf("wrote %d entries to %s\n", diff.Len(), output)
				})
			}
			return t.print(hashes, func(p *printer) {
				printSeparated(p, hashes, c.String("separator"))
			})
		},
	}
}

// printSeparated prints items joined by sep, ending with a newline unless
// there is nothing to print.
func printSeparated(p *printer, items []string, sep string) {
	if len(items) == 0 {
		return
	}
	p.printf("%s\n", strings.Join(items, sep))
}
