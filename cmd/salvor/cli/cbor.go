// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/salvor-project/salvor/lib/codec"
)

// CBOROutput is an embeddable struct that adds --cbor output support to
// a command's parameter struct, mirroring [JSONOutput]. CBOR reports
// carry recovered bytes verbatim, so they stay faithful for content
// that is not valid UTF-8.
type CBOROutput struct {
	OutputCBOR bool `json:"-" cbor:"-" flag:"cbor" desc:"output as deterministic CBOR"`
}

// EmitCBOR writes result as deterministic CBOR to stdout if --cbor is
// set. Returns (true, nil) on success, (true, err) on encode or write
// failure, or (false, nil) when --cbor is not set and the caller should
// proceed with other output modes.
func (c *CBOROutput) EmitCBOR(result any) (bool, error) {
	if !c.OutputCBOR {
		return false, nil
	}
	return true, WriteCBOR(result)
}

// WriteCBOR marshals value with the deterministic CBOR encoder and
// writes the raw bytes to stdout. Intended for piping into a file or a
// CBOR-aware consumer, not for terminals.
func WriteCBOR(value any) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding CBOR report: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing CBOR report: %w", err)
	}
	return nil
}
