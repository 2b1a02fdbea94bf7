// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package zip

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/salvor-project/salvor/cmd/salvor/cli"
	"github.com/salvor-project/salvor/lib/config"
	"github.com/salvor-project/salvor/lib/evidence"
	"github.com/salvor-project/salvor/lib/progress"
	"github.com/salvor-project/salvor/lib/style"
	"github.com/salvor-project/salvor/lib/wordlist"
	"github.com/salvor-project/salvor/lib/zipcrack"
)

type recoverParams struct {
	cli.JSONOutput
	cli.CBOROutput
	Input    string `json:"input"    flag:"in,i"       desc:"ZIP archive to read"`
	Size     uint64 `json:"size"     flag:"size,s"     desc:"uncompressed size of the entries to recover"`
	Alphabet string `json:"alphabet" flag:"alphabet,a" desc:"explicit candidate characters"`
	Preset   string `json:"preset"   flag:"preset"     desc:"named alphabet preset (classic, lower, alnum, digits, hex)"`
	Wordlist string `json:"wordlist" flag:"wordlist,w" desc:"try newline-separated candidates from this file instead of enumerating"`
	Quiet    bool   `json:"quiet"    flag:"quiet,q"    desc:"suppress progress output"`
}

// bucketReport is one checksum bucket in the JSON report.
type bucketReport struct {
	Label    string   `json:"label"`
	Checksum string   `json:"checksum"`
	Matches  []string `json:"matches"`
}

// recoverReport is the machine-readable result of a recovery run.
type recoverReport struct {
	Archive       string         `json:"archive"`
	ArchiveDigest string         `json:"archive_digest"`
	Size          uint64         `json:"size"`
	Mode          string         `json:"mode"`
	Checked       uint64         `json:"checked"`
	DurationMS    int64          `json:"duration_ms"`
	Buckets       []bucketReport `json:"buckets"`
	Recovered     string         `json:"recovered"`
}

// cborBucket mirrors bucketReport with raw bytes, so recovered content
// that is not valid UTF-8 survives the encoding intact.
type cborBucket struct {
	Label    string   `cbor:"label"`
	Checksum uint32   `cbor:"checksum"`
	Matches  [][]byte `cbor:"matches"`
}

type cborReport struct {
	Archive       string       `cbor:"archive"`
	ArchiveDigest string       `cbor:"archive_digest"`
	Size          uint64       `cbor:"size"`
	Mode          string       `cbor:"mode"`
	Checked       uint64       `cbor:"checked"`
	DurationMS    int64        `cbor:"duration_ms"`
	Buckets       []cborBucket `cbor:"buckets"`
	Recovered     []byte       `cbor:"recovered"`
}

func recoverCommand() *cli.Command {
	var params recoverParams

	return &cli.Command{
		Name:    "recover",
		Summary: "Brute-force entry content against central directory CRCs",
		Usage:   "salvor zip recover --in <archive> --size <n> [flags]",
		Description: `Recover the content of every entry with the given size.

Entries are grouped by stored CRC-32; one search worker per alphabet
character enumerates all candidate strings of the target length and
records every candidate whose checksum lands in a bucket. The search is
exhaustive: it never stops at the first hit, so checksum collisions
surface as multiple matches on one bucket.

Candidates come from an alphabet (--preset or --alphabet, default from
configuration) or from a --wordlist file, which may be plain text or
gzip/zstd/lz4 compressed. An archive with no entries of the given size
is a valid empty result, not an error.`,
		Examples: []cli.Example{
			{
				Description: "Classic 100-character printable alphabet",
				Command:     "salvor zip recover --in challenge.zip --size 4",
			},
			{
				Description: "Restrict to lowercase with a deterministic CBOR report",
				Command:     "salvor zip recover --in challenge.zip --size 4 --preset lower --cbor > report.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("zip recover", &params)
		},
		Run: func(args []string) error {
			return runRecover(&params)
		},
	}
}

func runRecover(params *recoverParams) error {
	if params.Input == "" {
		return fmt.Errorf("--in is required\n\nUsage: salvor zip recover --in <archive> --size <n> [flags]")
	}
	if params.Size == 0 {
		return fmt.Errorf("--size must be at least 1")
	}

	configuration, err := config.Load()
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger().With(
		"command", "zip/recover",
		"archive", params.Input,
	)

	words, alphabet, mode, err := resolveCandidates(params, configuration)
	if err != nil {
		return err
	}
	if words != nil {
		defer words.Close()
		logger.Info("opened wordlist", "format", words.Format().String())
	}

	archiveDigest, err := evidence.HashFile(params.Input)
	if err != nil {
		return err
	}

	index, err := zipcrack.BuildIndex(params.Input, params.Size)
	if err != nil {
		return err
	}

	counter := &progress.Counter{}
	recovered := ""
	var elapsed time.Duration
	if index.Len() > 0 {
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
		recovered, err = zipcrack.Run(index, zipcrack.Options{
			Alphabet: alphabet,
			Length:   int(params.Size),
			Wordlist: wordlistReader(words),
			Progress: counter,
			Logger:   logger,
		})
		elapsed = time.Since(started)
		stopProgress()
		if err != nil {
			return err
		}
	} else {
		logger.Info("no entries of requested size", "size", params.Size)
	}

	report := recoverReport{
		Archive:       params.Input,
		ArchiveDigest: evidence.FormatDigest(archiveDigest),
		Size:          params.Size,
		Mode:          mode,
		Checked:       counter.Load(),
		DurationMS:    elapsed.Milliseconds(),
		Buckets:       []bucketReport{},
		Recovered:     recovered,
	}
	binary := cborReport{
		Archive:       report.Archive,
		ArchiveDigest: report.ArchiveDigest,
		Size:          report.Size,
		Mode:          report.Mode,
		Checked:       report.Checked,
		DurationMS:    report.DurationMS,
		Buckets:       []cborBucket{},
		Recovered:     []byte(recovered),
	}
	for _, bucket := range index.Buckets() {
		matches := bucket.Matches()
		report.Buckets = append(report.Buckets, bucketReport{
			Label:    bucket.Label,
			Checksum: fmt.Sprintf("%08x", bucket.Checksum),
			Matches:  matches,
		})
		raw := make([][]byte, 0, len(matches))
		for _, match := range matches {
			raw = append(raw, []byte(match))
		}
		binary.Buckets = append(binary.Buckets, cborBucket{
			Label:    bucket.Label,
			Checksum: bucket.Checksum,
			Matches:  raw,
		})
	}

	if done, err := params.EmitCBOR(binary); done {
		return err
	}
	if done, err := params.EmitJSON(report); done {
		return err
	}

	renderer := style.NewRenderer(os.Stdout, cli.ColorEnabled(configuration.Report.Color))
	fmt.Printf("%s %s %s\n",
		renderer.Label.Render("archive:"),
		params.Input,
		renderer.Faint.Render("blake3:"+report.ArchiveDigest))
	fmt.Printf("%s %d buckets, %s candidates checked in %s\n",
		renderer.Label.Render("searched:"),
		index.Len(),
		progress.FormatCount(report.Checked),
		elapsed.Round(time.Millisecond))

	for _, bucket := range report.Buckets {
		line := fmt.Sprintf("%s crc32=%s", bucket.Label, bucket.Checksum)
		switch len(bucket.Matches) {
		case 0:
			fmt.Printf("  %s %s\n", renderer.Bad.Render("miss"), line)
		case 1:
			fmt.Printf("  %s %s %s\n", renderer.Good.Render("hit "), line,
				renderer.Accent.Render(fmt.Sprintf("%q", bucket.Matches[0])))
		default:
			fmt.Printf("  %s %s %s\n", renderer.Good.Render("hit "), line,
				renderer.Accent.Render(fmt.Sprintf("%d collisions", len(bucket.Matches))))
			for _, match := range bucket.Matches {
				fmt.Printf("       %s\n", renderer.Accent.Render(fmt.Sprintf("%q", match)))
			}
		}
	}

	if recovered != "" {
		fmt.Printf("%s %s\n",
			renderer.Title.Render("recovered:"),
			renderer.Accent.Render(fmt.Sprintf("%q", recovered)))
	} else {
		fmt.Println(renderer.Label.Render("nothing recovered"))
	}
	return nil
}

// resolveCandidates picks the candidate source for a recovery run: an
// explicit wordlist beats alphabet enumeration, and an explicit
// alphabet beats the configured preset. The returned mode string is
// "wordlist" or "alphabet" for the report. The caller owns closing a
// non-nil reader.
func resolveCandidates(params *recoverParams, configuration *config.Config) (*wordlist.Reader, zipcrack.Alphabet, string, error) {
	if params.Wordlist != "" {
		if params.Alphabet != "" || params.Preset != "" {
			return nil, nil, "", fmt.Errorf("--wordlist cannot be combined with --alphabet or --preset")
		}
		words, err := wordlist.Open(configuration.WordlistPath(params.Wordlist))
		if err != nil {
			return nil, nil, "", err
		}
		return words, nil, "wordlist", nil
	}

	if params.Alphabet != "" && params.Preset != "" {
		return nil, nil, "", fmt.Errorf("--alphabet and --preset are mutually exclusive")
	}

	if params.Alphabet != "" {
		alphabet, err := zipcrack.ParseAlphabet(params.Alphabet)
		if err != nil {
			return nil, nil, "", err
		}
		return nil, alphabet, "alphabet", nil
	}

	name := params.Preset
	if name == "" {
		name = configuration.Zip.Preset
	}
	preset, ok := zipcrack.Preset(name)
	if !ok {
		return nil, nil, "", fmt.Errorf("unknown alphabet preset %q (available: %s)",
			name, strings.Join(zipcrack.PresetNames(), ", "))
	}
	return nil, preset, "alphabet", nil
}

// wordlistReader widens a possibly-nil *wordlist.Reader to the io.Reader
// field of zipcrack.Options without producing a non-nil interface around
// a nil pointer.
func wordlistReader(words *wordlist.Reader) io.Reader {
	if words == nil {
		return nil
	}
	return words
}
