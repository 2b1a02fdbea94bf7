// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/salvor-project/salvor/cmd/salvor/cli"
	"github.com/salvor-project/salvor/lib/config"
	"github.com/salvor-project/salvor/lib/evidence"
	"github.com/salvor-project/salvor/lib/pngfix"
	"github.com/salvor-project/salvor/lib/progress"
	"github.com/salvor-project/salvor/lib/style"
)

type repairParams struct {
	cli.JSONOutput
	Input       string `json:"input"        flag:"in,i"         desc:"PNG file to repair"`
	Output      string `json:"output"       flag:"out,o"        desc:"output path (default: <stem>-fixed.png next to the input)"`
	MaxAttempts uint64 `json:"max_attempts" flag:"max-attempts" desc:"cap candidates per field hypothesis (0 = unbounded)"`
	Quiet       bool   `json:"quiet"        flag:"quiet,q"      desc:"suppress progress output"`
}

// repairReport is the machine-readable result of a repair run.
type repairReport struct {
	Input        string `json:"input"`
	InputDigest  string `json:"input_digest"`
	Checksum     string `json:"checksum"`
	Repaired     bool   `json:"repaired"`
	Field        string `json:"field,omitempty"`
	Value        uint32 `json:"value,omitempty"`
	Attempts     uint64 `json:"attempts"`
	DurationMS   int64  `json:"duration_ms"`
	Output       string `json:"output,omitempty"`
	OutputDigest string `json:"output_digest,omitempty"`
}

func repairCommand() *cli.Command {
	var params repairParams

	return &cli.Command{
		Name:    "repair",
		Summary: "Restore a tampered IHDR dimension from its stored CRC",
		Usage:   "salvor png repair --in <file> [flags]",
		Description: `Verify the IHDR checksum and brute-force the damaged field.

Two workers race: one assumes the width was tampered, the other the
height. The first replacement value that reproduces the stored CRC-32
wins and is patched back into the image. The repaired copy is written
next to the input as <stem>-fixed.png unless --out is given. A file
that already verifies is reported as consistent and copied only when
--out names a destination.

With --max-attempts 0 (the default) the search runs until a candidate
matches, which never terminates if more than one field was tampered.
Set a cap to get a clean failure instead.`,
		Examples: []cli.Example{
			{
				Description: "Repair in place next to the input",
				Command:     "salvor png repair --in flag.png",
			},
			{
				Description: "Choose the output path",
				Command:     "salvor png repair --in flag.png --out restored.png",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("png repair", &params)
		},
		Run: func(args []string) error {
			return runRepair(&params)
		},
	}
}

func runRepair(params *repairParams) error {
	if params.Input == "" {
		return fmt.Errorf("--in is required\n\nUsage: salvor png repair --in <file> [flags]")
	}

	configuration, err := config.Load()
	if err != nil {
		return err
	}
	maxAttempts := params.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = configuration.Png.MaxAttempts
	}

	buffer, err := os.ReadFile(params.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", params.Input, err)
	}
	inputDigest := evidence.FormatDigest(evidence.HashBytes(buffer))

	logger := cli.NewCommandLogger().With(
		"command", "png/repair",
		"input", params.Input,
	)

	counter := &progress.Counter{}
	stopProgress := func() {}
	if !params.Quiet {
		reporter := &progress.Reporter{Counter: counter}
		if term.IsTerminal(int(os.Stderr.Fd())) {
			reporter.Status = os.Stderr
		} else {
			reporter.Logger = logger
		}
		stopProgress = reporter.Start()
	}

	started := time.Now()
	outcome, repairErr := pngfix.Repair(buffer, pngfix.RepairOptions{
		MaxAttempts: maxAttempts,
		Progress:    counter,
		Logger:      logger,
	})
	elapsed := time.Since(started)
	stopProgress()
	if repairErr != nil {
		return fmt.Errorf("repairing %s: %w", params.Input, repairErr)
	}

	report := repairReport{
		Input:       params.Input,
		InputDigest: inputDigest,
		Checksum:    fmt.Sprintf("%08x", outcome.Checksum),
		Repaired:    outcome.Repaired,
		Field:       outcome.FieldName,
		Value:       outcome.Value,
		Attempts:    outcome.Attempts,
		DurationMS:  elapsed.Milliseconds(),
	}

	// A consistent input writes nothing unless an output path was named
	// explicitly; a repaired buffer defaults to <stem>-fixed.png.
	outputPath := params.Output
	if outputPath == "" && outcome.Repaired {
		outputPath = pngfix.DefaultOutputPath(params.Input)
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, buffer, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		report.Output = outputPath
		report.OutputDigest = evidence.FormatDigest(evidence.HashBytes(buffer))
	}

	if done, err := params.EmitJSON(report); done {
		return err
	}

	renderer := style.NewRenderer(os.Stdout, cli.ColorEnabled(configuration.Report.Color))
	fmt.Printf("%s %s %s\n",
		renderer.Label.Render("input:"),
		params.Input,
		renderer.Faint.Render("blake3:"+inputDigest))
	fmt.Printf("%s %08x\n", renderer.Label.Render("stored crc32:"), outcome.Checksum)

	if !outcome.Repaired {
		fmt.Println(renderer.Good.Render("header already consistent, nothing to repair"))
		if report.Output != "" {
			fmt.Printf("%s %s %s\n",
				renderer.Label.Render("wrote:"),
				renderer.Accent.Render(report.Output),
				renderer.Faint.Render("blake3:"+report.OutputDigest))
		}
		return nil
	}

	fmt.Printf("%s %s = %d (0x%08X) after %s candidates in %s\n",
		renderer.Good.Render("recovered"),
		renderer.Accent.Render(outcome.FieldName),
		outcome.Value,
		outcome.Value,
		progress.FormatCount(outcome.Attempts),
		elapsed.Round(time.Millisecond))
	fmt.Printf("%s %s %s\n",
		renderer.Label.Render("wrote:"),
		renderer.Accent.Render(report.Output),
		renderer.Faint.Render("blake3:"+report.OutputDigest))
	return nil
}
