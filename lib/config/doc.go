// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for salvor.
//
// Configuration is optional: every command works with the built-in
// defaults. When the SALVOR_CONFIG environment variable names a file,
// [Load] reads it; [LoadFile] loads an explicit path. There is no
// ~/.config discovery and no automatic file search, so a run's
// behavior is always traceable to one file or to the defaults.
//
// Variable expansion is performed on string fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values, and the merged result
// is validated before it is returned.
//
// Key exports:
//
//   - [Config] -- master struct with Zip, Png, Report sections
//   - [Default] -- returns the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other salvor packages.
package config
