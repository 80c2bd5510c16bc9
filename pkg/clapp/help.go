// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// helpItem is one row of a help section.
type helpItem struct {
	label       string
	description string
}

// Help renders the usage text: a header, the usage line, then the ARGS,
// FLAGS and OPTIONS sections, each omitted when empty. The text has no
// trailing newline.
func (a *App) Help() string {
	positionals, flags, options := a.reg.partition()

	var b strings.Builder
	b.WriteString(a.info.Name)
	if a.info.Version != "" {
		b.WriteString(" ")
		b.WriteString(a.info.Version)
	}
	b.WriteString("\n")
	if a.info.Description != "" {
		b.WriteString(a.info.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("USAGE:\n")
	b.WriteString(a.info.BinName)
	if len(flags) > 0 || len(options) > 0 {
		b.WriteString(" [OPTIONS]")
	}
	for _, arg := range positionals {
		b.WriteString(" ")
		b.WriteString(positionalLabel(arg))
	}

	writeSection(&b, "ARGS", positionals, positionalLabel)
	writeSection(&b, "FLAGS", flags, flagLabel)
	writeSection(&b, "OPTIONS", options, optionLabel)
	return b.String()
}

func writeSection(b *strings.Builder, title string, args []*Arg, label func(*Arg) string) {
	if len(args) == 0 {
		return
	}
	items := make([]helpItem, 0, len(args))
	width := 0
	for _, arg := range args {
		it := helpItem{label: label(arg), description: arg.description}
		width = max(width, utf8.RuneCountInString(it.label))
		items = append(items, it)
	}

	fmt.Fprintf(b, "\n\n%s:", title)
	for _, it := range items {
		if it.description == "" {
			fmt.Fprintf(b, "\n    %s", it.label)
			continue
		}
		fmt.Fprintf(b, "\n    %-*s%s", width+5, it.label, it.description)
	}
}

func positionalLabel(a *Arg) string {
	return "<" + a.ValueName() + ">"
}

// flagLabel renders "-c, --long", adding " <c>..." for repeatable short
// flags and "..." for repeatable long-only ones.
func flagLabel(a *Arg) string {
	if a.short == 0 {
		s := "--" + a.long
		if a.multiple {
			s += "..."
		}
		return s
	}
	s := "-" + string(a.short)
	if a.long != "" {
		s += ", --" + a.long
	}
	if a.multiple {
		s += " <" + string(a.short) + ">..."
	}
	return s
}

func optionLabel(a *Arg) string {
	return flagLabel(a) + " <" + a.ValueName() + ">"
}
