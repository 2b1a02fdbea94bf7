// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the salvor CLI.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/salvor/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). This is
// implemented in suggest.go.
//
// Parameter structs bind their flags declaratively through struct tags
// via [FlagsFromParams]; see params.go for the tag grammar. Embedding
// [JSONOutput] or [CBOROutput] in a parameter struct adds the --json
// or --cbor report modes, with [JSONOutput.EmitJSON] and
// [CBOROutput.EmitCBOR] handling the conditional output.
package cli
