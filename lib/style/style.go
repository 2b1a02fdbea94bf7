// Copyright 2026 The Salvor Authors
// SPDX-License-Identifier: Apache-2.0

// Package style defines the terminal styles for salvor's human-readable
// reports. All colors use lipgloss ANSI 256-color codes for broad
// terminal compatibility; the renderer degrades to plain text when the
// output is not colored.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Renderer carries the styles used by report output. Commands build
// one per output stream so color capability is detected against the
// stream actually written to.
type Renderer struct {
	// Title styles section headings ("recovered text", "chunk audit").
	Title lipgloss.Style

	// Label styles field labels in key/value listings.
	Label lipgloss.Style

	// Good styles verification passes and found matches.
	Good lipgloss.Style

	// Bad styles checksum mismatches and failed lookups.
	Bad lipgloss.Style

	// Accent styles identifiers the eye should land on first: entry
	// names, recovered values, output paths.
	Accent lipgloss.Style

	// Faint styles secondary detail (digests, attempt counts).
	Faint lipgloss.Style
}

// NewRenderer returns styles bound to w. When colored is false the
// renderer uses the Ascii profile and every style collapses to plain
// text, which keeps piped output clean. When colored is true the
// profile is detected from the environment, so NO_COLOR and TERM are
// still honored.
//
// SetColorProfile is required in addition to WithProfile because
// lipgloss re-detects the profile from the environment unless one is
// set explicitly.
func NewRenderer(w io.Writer, colored bool) *Renderer {
	profile := termenv.Ascii
	if colored {
		profile = termenv.EnvColorProfile()
	}
	base := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	base.SetColorProfile(profile)

	return &Renderer{
		Title:  base.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Label:  base.NewStyle().Foreground(lipgloss.Color("245")),
		Good:   base.NewStyle().Foreground(lipgloss.Color("114")),
		Bad:    base.NewStyle().Foreground(lipgloss.Color("196")),
		Accent: base.NewStyle().Foreground(lipgloss.Color("75")),
		Faint:  base.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
