// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// Registry is the ordered set of arguments belonging to one application.
//
// Lookups return the first match in registration order. Duplicate names or
// flags are not rejected on Register; use Check to find them.
//
// A Registry must not be modified while a parse is using it.
type Registry struct {
	args []*Arg
}

// Register appends a copy of a.
func (r *Registry) Register(a *Arg) {
	r.args = append(r.args, a.clone())
}

// Args returns the registered arguments in registration order. The returned
// arguments are shared with the registry and must not be modified.
func (r *Registry) Args() []*Arg {
	return r.args
}

// Len reports the number of registered arguments.
func (r *Registry) Len() int {
	return len(r.args)
}

// Lookup returns the first argument named name.
func (r *Registry) Lookup(name string) (*Arg, bool) {
	for _, a := range r.args {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

// FindLong returns the first argument whose long flag is flag.
func (r *Registry) FindLong(flag string) (*Arg, bool) {
	if flag == "" {
		return nil, false
	}
	for _, a := range r.args {
		if a.long == flag {
			return a, true
		}
	}
	return nil, false
}

// FindShort returns the first argument whose short flag is c.
func (r *Registry) FindShort(c rune) (*Arg, bool) {
	if c == 0 {
		return nil, false
	}
	for _, a := range r.args {
		if a.short == c {
			return a, true
		}
	}
	return nil, false
}

// FindPosition returns the positional argument at index pos, counting only
// positional arguments in registration order.
func (r *Registry) FindPosition(pos int) (*Arg, bool) {
	if pos < 0 {
		return nil, false
	}
	i := 0
	for _, a := range r.args {
		if a.Kind() != Positional {
			continue
		}
		if i == pos {
			return a, true
		}
		i++
	}
	return nil, false
}

// partition splits the registry into positionals, flags and options,
// preserving registration order within each group.
func (r *Registry) partition() (positionals, flags, options []*Arg) {
	for _, a := range r.args {
		switch a.Kind() {
		case Positional:
			positionals = append(positionals, a)
		case Flag:
			flags = append(flags, a)
		case Option:
			options = append(options, a)
		}
	}
	return positionals, flags, options
}

// Check reports every ambiguity in the registry that Parse silently resolves
// by taking the first match: repeated names, repeated short or long flags,
// malformed flags, and requires/conflicts entries naming unknown arguments.
// The problems are joined into one error; nil means the registry is clean.
func (r *Registry) Check() error {
	var errs []error
	report := func(a *Arg, err error, format string, args ...any) {
		errs = append(errs, &RegistryError{Arg: a.name, Detail: fmt.Sprintf(format, args...), Err: err})
	}

	names := set.Set[string]{}
	var shorts map[rune]string
	var longs map[string]string
	for _, a := range r.args {
		switch {
		case a.name == "":
			report(a, ErrInvalidName, "empty name")
		case strings.IndexFunc(a.name, unicode.IsSpace) >= 0:
			report(a, ErrInvalidName, "name contains whitespace")
		case names.Contains(a.name):
			report(a, ErrDuplicateName, "")
		}
		names.Add(a.name)

		if a.short != 0 {
			if a.short == '-' || unicode.IsSpace(a.short) || !unicode.IsPrint(a.short) {
				report(a, ErrInvalidFlag, "short flag %q", a.short)
			} else if owner, ok := shorts[a.short]; ok {
				report(a, ErrDuplicateFlag, "-%c already used by %q", a.short, owner)
			} else {
				mak.Set(&shorts, a.short, a.name)
			}
		}
		if a.long != "" {
			if strings.HasPrefix(a.long, "-") || strings.ContainsAny(a.long, "= \t\n") {
				report(a, ErrInvalidFlag, "long flag %q", a.long)
			} else if owner, ok := longs[a.long]; ok {
				report(a, ErrDuplicateFlag, "--%s already used by %q", a.long, owner)
			} else {
				mak.Set(&longs, a.long, a.name)
			}
		}
	}

	for _, a := range r.args {
		for _, other := range a.requires {
			if !names.Contains(other) {
				report(a, ErrUnknownReference, "requires %q", other)
			}
		}
		for _, other := range a.conflicts {
			if !names.Contains(other) {
				report(a, ErrUnknownReference, "conflicts with %q", other)
			}
		}
	}
	return errors.Join(errs...)
}
