// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Colorizer paints short status strings. The zero value paints nothing.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only when enabled is true
// and the environment does not opt out through NO_COLOR or a dumb TERM.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForFile is NewColorizer gated on f being a terminal.
func ForFile(f *os.File, enabled bool) Colorizer {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	return NewColorizer(enabled)
}

func (c Colorizer) paint(text string, attrs ...color.Attribute) string {
	if !c.Enabled {
		return text
	}
	p := color.New(attrs...)
	p.EnableColor()
	return p.Sprint(text)
}

func (c Colorizer) Error(text string) string { return c.paint(text, color.FgRed, color.Bold) }
func (c Colorizer) OK(text string) string    { return c.paint(text, color.FgGreen) }
func (c Colorizer) Warn(text string) string  { return c.paint(text, color.FgYellow) }
func (c Colorizer) Dim(text string) string   { return c.paint(text, color.FgHiBlack) }
func (c Colorizer) Bold(text string) string  { return c.paint(text, color.Bold) }
