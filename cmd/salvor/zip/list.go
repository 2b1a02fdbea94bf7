// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zip

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/salvor-project/salvor/cmd/salvor/cli"
	"github.com/salvor-project/salvor/lib/config"
	"github.com/salvor-project/salvor/lib/style"
	"github.com/salvor-project/salvor/lib/zipcrack"
)

type listParams struct {
	cli.JSONOutput
	Input string `json:"input" flag:"in,i"  desc:"ZIP archive to read"`
	Size  int64  `json:"size"  flag:"size"  desc:"only show entries with this uncompressed size (-1 = all)" default:"-1"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List central directory entries without extracting",
		Usage:   "salvor zip list --in <archive> [flags]",
		Description: `Print the central directory metadata of an archive.

Shows name, sizes, stored CRC-32, compression method, and encryption
flag for every entry. This is the reconnaissance step before a recover
run: it tells you which sizes are worth attacking.`,
		Examples: []cli.Example{
			{
				Description: "Show all entries",
				Command:     "salvor zip list --in challenge.zip",
			},
			{
				Description: "Show only the four-byte entries",
				Command:     "salvor zip list --in challenge.zip --size 4",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("zip list", &params)
		},
		Run: func(args []string) error {
			return runList(&params)
		},
	}
}

func runList(params *listParams) error {
	if params.Input == "" {
		return fmt.Errorf("--in is required\n\nUsage: salvor zip list --in <archive> [flags]")
	}

	configuration, err := config.Load()
	if err != nil {
		return err
	}

	entries, err := zipcrack.Inventory(params.Input)
	if err != nil {
		return err
	}

	if params.Size >= 0 {
		filtered := entries[:0]
		for _, entry := range entries {
			if entry.UncompressedSize == uint64(params.Size) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	if done, err := params.EmitJSON(entries); done {
		return err
	}

	renderer := style.NewRenderer(os.Stdout, cli.ColorEnabled(configuration.Report.Color))
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "NAME\tSIZE\tCSIZE\tCRC32\tMETHOD\tENCRYPTED")
	for _, entry := range entries {
		encrypted := ""
		if entry.Encrypted {
			encrypted = renderer.Bad.Render("yes")
		}
		fmt.Fprintf(writer, "%s\t%d\t%d\t%08x\t%s\t%s\n",
			entry.Name, entry.UncompressedSize, entry.CompressedSize,
			entry.Checksum, entry.Method, encrypted)
	}
	writer.Flush()
	return nil
}
