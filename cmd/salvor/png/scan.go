// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/salvor-project/salvor/cmd/salvor/cli"
	"github.com/salvor-project/salvor/lib/config"
	"github.com/salvor-project/salvor/lib/evidence"
	"github.com/salvor-project/salvor/lib/pngfix"
	"github.com/salvor-project/salvor/lib/style"
)

type scanParams struct {
	cli.JSONOutput
	Input string `json:"input" flag:"in,i" desc:"PNG file to audit"`
}

// scanReport is the machine-readable result of a chunk audit.
type scanReport struct {
	Input       string         `json:"input"`
	InputDigest string         `json:"input_digest"`
	Chunks      []pngfix.Chunk `json:"chunks"`
	AllValid    bool           `json:"all_valid"`
}

func scanCommand() *cli.Command {
	var params scanParams

	return &cli.Command{
		Name:    "scan",
		Summary: "Audit every chunk checksum in a PNG",
		Usage:   "salvor png scan --in <file> [flags]",
		Description: `Walk all chunks and recompute each stored CRC-32.

Prints one row per chunk with the stored and recomputed checksum.
Exits 1 when any chunk fails verification, so the scan can gate
scripted pipelines.`,
		Examples: []cli.Example{
			{
				Description: "Audit a suspect file",
				Command:     "salvor png scan --in flag.png",
			},
			{
				Description: "Machine-readable audit",
				Command:     "salvor png scan --in flag.png --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("png scan", &params)
		},
		Run: func(args []string) error {
			return runScan(&params)
		},
	}
}

func runScan(params *scanParams) error {
	if params.Input == "" {
		return fmt.Errorf("--in is required\n\nUsage: salvor png scan --in <file> [flags]")
	}

	configuration, err := config.Load()
	if err != nil {
		return err
	}

	buffer, err := os.ReadFile(params.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", params.Input, err)
	}

	chunks, err := pngfix.ScanChunks(buffer)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", params.Input, err)
	}

	allValid := true
	for _, chunk := range chunks {
		if !chunk.Valid {
			allValid = false
			break
		}
	}

	report := scanReport{
		Input:       params.Input,
		InputDigest: evidence.FormatDigest(evidence.HashBytes(buffer)),
		Chunks:      chunks,
		AllValid:    allValid,
	}

	if done, err := params.EmitJSON(report); done {
		if err != nil {
			return err
		}
		if !allValid {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	renderer := style.NewRenderer(os.Stdout, cli.ColorEnabled(configuration.Report.Color))
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "OFFSET\tTYPE\tLENGTH\tSTORED\tCOMPUTED\tSTATUS")
	for _, chunk := range chunks {
		status := renderer.Good.Render("ok")
		if !chunk.Valid {
			status = renderer.Bad.Render("FAIL")
		}
		fmt.Fprintf(writer, "%d\t%s\t%d\t%08x\t%08x\t%s\n",
			chunk.Offset, chunk.Type, chunk.Length, chunk.Stored, chunk.Computed, status)
	}
	writer.Flush()

	if !allValid {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
