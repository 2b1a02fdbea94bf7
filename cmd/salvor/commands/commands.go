// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete salvor CLI command tree. The
// salvor binary imports this package; keeping tree construction out of
// main makes the full tree reachable from tests.
package commands

import (
	"fmt"

	"github.com/salvor-project/salvor/cmd/salvor/cli"
	pngcmd "github.com/salvor-project/salvor/cmd/salvor/png"
	zipcmd "github.com/salvor-project/salvor/cmd/salvor/zip"
	"github.com/salvor-project/salvor/lib/version"
)

// Root builds and returns the complete salvor CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "salvor",
		Description: `Salvor: checksum-driven recovery for damaged CTF evidence.

Repair tampered PNG headers by racing field hypotheses against the
stored CRC, and recover tiny ZIP archive entries from central
directory metadata without decompressing a single byte.`,
		Subcommands: []*cli.Command{
			pngcmd.Command(),
			zipcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("salvor %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Repair a PNG whose header fails CRC verification",
				Command:     "salvor png repair --in flag.png",
			},
			{
				Description: "Audit every chunk checksum in a PNG",
				Command:     "salvor png scan --in flag.png",
			},
			{
				Description: "Recover a four-byte archive entry over lowercase letters",
				Command:     "salvor zip recover --in challenge.zip --size 4 --preset lower",
			},
			{
				Description: "Recover using a wordlist instead of enumeration",
				Command:     "salvor zip recover --in challenge.zip --size 5 --wordlist rockyou.txt",
			},
			{
				Description: "List central directory entries without extracting",
				Command:     "salvor zip list --in challenge.zip",
			},
		},
	}
}
