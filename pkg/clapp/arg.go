// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"fmt"
	"slices"
)

// Kind is the classification of an argument, derived from its flags and
// whether it takes a value.
type Kind int

const (
	// Positional arguments have no flag and are matched by position.
	Positional Kind = iota
	// Flag arguments have a flag and never take a value.
	Flag
	// Option arguments have a flag and take one value per occurrence.
	Option
)

func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Flag:
		return "flag"
	case Option:
		return "option"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arg describes one command-line argument. Configure it with the chaining
// setters, then hand it to App.Arg or Registry.Register, which keep their own
// copy.
type Arg struct {
	name         string
	short        rune
	long         string
	description  string
	valueName    string
	defaultValue string
	multiple     bool
	required     bool
	takesValue   bool
	requires     []string
	conflicts    []string
}

// NewArg returns an argument named name. Without flags it is positional.
func NewArg(name string) *Arg {
	return &Arg{name: name}
}

// Short sets the single-character flag, as in -v. Zero removes it.
func (a *Arg) Short(c rune) *Arg {
	a.short = c
	return a
}

// Long sets the long flag without its leading dashes, as in "verbose".
func (a *Arg) Long(flag string) *Arg {
	a.long = flag
	return a
}

// Help sets the description shown in the help text.
func (a *Arg) Help(description string) *Arg {
	a.description = description
	return a
}

// Value sets the label used for the argument's value in help and in
// validation messages.
func (a *Arg) Value(name string) *Arg {
	a.valueName = name
	return a
}

// Default sets the value injected when the argument is absent. An empty
// string means no default.
func (a *Arg) Default(value string) *Arg {
	a.defaultValue = value
	return a
}

// Multiple lets the argument occur more than once.
func (a *Arg) Multiple(v bool) *Arg {
	a.multiple = v
	return a
}

// Required makes parsing fail when the argument is absent and has no default.
func (a *Arg) Required(v bool) *Arg {
	a.required = v
	return a
}

// TakesValue marks a flagged argument as an option that consumes the next
// token as its value.
func (a *Arg) TakesValue(v bool) *Arg {
	a.takesValue = v
	return a
}

// Requires adds names of arguments that must be present after parsing. The
// check runs whether or not a itself is present.
func (a *Arg) Requires(names ...string) *Arg {
	a.requires = append(a.requires, names...)
	return a
}

// Conflicts adds names of arguments that must be absent after parsing. The
// check runs whether or not a itself is present.
func (a *Arg) Conflicts(names ...string) *Arg {
	a.conflicts = append(a.conflicts, names...)
	return a
}

// ClearRequires drops every name added by Requires.
func (a *Arg) ClearRequires() *Arg {
	a.requires = nil
	return a
}

// ClearConflicts drops every name added by Conflicts.
func (a *Arg) ClearConflicts() *Arg {
	a.conflicts = nil
	return a
}

func (a *Arg) Name() string         { return a.name }
func (a *Arg) ShortFlag() rune      { return a.short }
func (a *Arg) LongFlag() string     { return a.long }
func (a *Arg) Description() string  { return a.description }
func (a *Arg) DefaultValue() string { return a.defaultValue }
func (a *Arg) IsMultiple() bool     { return a.multiple }
func (a *Arg) IsRequired() bool     { return a.required }
func (a *Arg) NeedsValue() bool     { return a.takesValue }

// ValueName returns the value label, falling back to the argument name.
func (a *Arg) ValueName() string {
	if a.valueName == "" {
		return a.name
	}
	return a.valueName
}

// RequiredArgs returns a copy of the names a requires.
func (a *Arg) RequiredArgs() []string { return slices.Clone(a.requires) }

// ConflictingArgs returns a copy of the names a conflicts with.
func (a *Arg) ConflictingArgs() []string { return slices.Clone(a.conflicts) }

func (a *Arg) hasFlag() bool {
	return a.short != 0 || a.long != ""
}

// Kind classifies a as Positional, Flag or Option.
func (a *Arg) Kind() Kind {
	switch {
	case !a.hasFlag():
		return Positional
	case a.takesValue:
		return Option
	default:
		return Flag
	}
}

func (a *Arg) clone() *Arg {
	c := *a
	c.requires = slices.Clone(a.requires)
	c.conflicts = slices.Clone(a.conflicts)
	return &c
}

func (a *Arg) String() string {
	switch {
	case a.long != "":
		return "--" + a.long
	case a.short != 0:
		return "-" + string(a.short)
	}
	return "<" + a.ValueName() + ">"
}
