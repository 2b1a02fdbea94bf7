// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salvor-project/salvor/lib/pngfix"
)

// pristineFile returns a minimal PNG whose two chunks both verify:
// an IHDR with width 0x135 and height 0x424, followed by IEND.
func pristineFile() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // signature
		0x00, 0x00, 0x00, 0x0D, // IHDR data length
		0x49, 0x48, 0x44, 0x52, // "IHDR"
		0x00, 0x00, 0x01, 0x35, // width
		0x00, 0x00, 0x04, 0x24, // height
		0x08, 0x02, 0x00, 0x00, 0x00, // bit depth, color type, compression, filter, interlace
		0x93, 0xCF, 0x1E, 0xCA, // stored CRC
		0x00, 0x00, 0x00, 0x00, // IEND data length
		0x49, 0x45, 0x4E, 0x44, // "IEND"
		0xAE, 0x42, 0x60, 0x82, // IEND CRC
	}
}

// tamperedFile is pristineFile with the height field overwritten, the
// way a challenge author hides an image.
func tamperedFile() []byte {
	data := pristineFile()
	copy(data[20:24], []byte{0x00, 0x00, 0x04, 0xE8})
	return data
}

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evidence.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunRepairRestoresTamperedHeight(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	input := writeFixture(t, tamperedFile())
	output := filepath.Join(filepath.Dir(input), "restored.png")

	params := &repairParams{
		Input:       input,
		Output:      output,
		MaxAttempts: 2000,
		Quiet:       true,
	}
	if err := runRepair(params); err != nil {
		t.Fatalf("runRepair: %v", err)
	}

	repaired, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading repaired output: %v", err)
	}
	if !bytes.Equal(repaired, pristineFile()) {
		t.Fatalf("repaired bytes differ from the pristine original")
	}

	// The input file itself must be untouched.
	original, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("reading input: %v", err)
	}
	if !bytes.Equal(original, tamperedFile()) {
		t.Fatal("input file was modified")
	}
}

func TestRunRepairConsistentWritesNothing(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	input := writeFixture(t, pristineFile())

	params := &repairParams{Input: input, Quiet: true}
	if err := runRepair(params); err != nil {
		t.Fatalf("runRepair: %v", err)
	}

	if _, err := os.Stat(pngfix.DefaultOutputPath(input)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected no output file for a consistent header, stat err = %v", err)
	}
}

func TestRunRepairConsistentCopiesToExplicitOutput(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	input := writeFixture(t, pristineFile())
	output := filepath.Join(filepath.Dir(input), "copy.png")

	params := &repairParams{Input: input, Output: output, Quiet: true}
	if err := runRepair(params); err != nil {
		t.Fatalf("runRepair: %v", err)
	}

	copied, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading copied output: %v", err)
	}
	if !bytes.Equal(copied, pristineFile()) {
		t.Fatal("explicit output differs from the consistent input")
	}
}

func TestRunRepairBoundedSearchFails(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	input := writeFixture(t, tamperedFile())

	// The true height sits at candidate 1060; a cap of 50 must miss it
	// and surface the sentinel instead of blocking.
	params := &repairParams{Input: input, MaxAttempts: 50, Quiet: true}
	err := runRepair(params)
	if !errors.Is(err, pngfix.ErrNoMatch) {
		t.Fatalf("runRepair error = %v, want ErrNoMatch", err)
	}
}

func TestRunRepairRequiresInput(t *testing.T) {
	err := runRepair(&repairParams{})
	if err == nil || !strings.Contains(err.Error(), "--in is required") {
		t.Fatalf("runRepair error = %v, want --in requirement", err)
	}
}

func TestRunRepairMissingFile(t *testing.T) {
	t.Setenv("SALVOR_CONFIG", "")
	err := runRepair(&repairParams{
		Input: filepath.Join(t.TempDir(), "absent.png"),
		Quiet: true,
	})
	if err == nil {
		t.Fatal("runRepair = nil, want error for missing file")
	}
}
