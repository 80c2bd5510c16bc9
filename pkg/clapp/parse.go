// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import "strings"

// parser holds the scan state for a single parse.
type parser struct {
	reg *Registry
	res *Result

	// position is the ordinal of the next positional argument to fill.
	position int
	// pending is an option that is waiting for its value token.
	pending *Arg
	// onlyValues is set once a bare "--" has been seen.
	onlyValues bool
}

// parse walks args against reg. The first error stops the scan.
func parse(reg *Registry, args []string) *Result {
	p := &parser{reg: reg, res: newResult()}
	for _, tok := range args {
		if err := p.token(tok); err != nil {
			return p.res.fail(err)
		}
	}

	// help and version skip all remaining checks; the caller prints and exits.
	if p.res.IsPresent(HelpArg) || p.res.IsPresent(VersionArg) {
		return p.res
	}
	if p.pending != nil && p.pending.takesValue {
		return p.res.fail(&Error{Kind: MissingOptionValue, Arg: p.pending.name})
	}
	if err := validate(reg, p.res); err != nil {
		return p.res.fail(err)
	}
	return p.res
}

func (p *parser) token(tok string) *Error {
	switch {
	case p.onlyValues:
		return p.value(tok)
	case len(tok) > 2 && strings.HasPrefix(tok, "--"):
		return p.long(tok[2:])
	case len(tok) >= 2 && tok[0] == '-' && tok[1] != '-':
		return p.shorts(tok[1:])
	case tok == "--":
		p.onlyValues = true
		return nil
	default:
		return p.value(tok)
	}
}

func (p *parser) long(flag string) *Error {
	a, ok := p.reg.FindLong(flag)
	if !ok {
		return &Error{Kind: InvalidOption, Token: flag}
	}
	return p.flag(a)
}

// shorts handles a cluster such as "vvo": every character is a short flag
// of its own.
func (p *parser) shorts(cluster string) *Error {
	for _, c := range cluster {
		a, ok := p.reg.FindShort(c)
		if !ok {
			return &Error{Kind: InvalidOption, Token: string(c)}
		}
		if err := p.flag(a); err != nil {
			return err
		}
	}
	return nil
}

// flag records a flag occurrence, or makes an option pending until its value
// arrives.
func (p *parser) flag(a *Arg) *Error {
	if p.pending != nil && p.pending.takesValue {
		return &Error{Kind: MissingOptionValue, Arg: p.pending.name}
	}
	p.pending = nil

	if !a.multiple && p.res.IsPresent(a.name) {
		return &Error{Kind: DuplicateDefinition, Arg: a.name}
	}
	if a.Kind() == Option {
		p.pending = a
		return nil
	}
	p.res.record(a.name, "")
	return nil
}

func (p *parser) value(tok string) *Error {
	if a := p.pending; a != nil {
		p.pending = nil
		if a.takesValue {
			p.res.record(a.name, tok)
		}
		return nil
	}

	a, ok := p.reg.FindPosition(p.position)
	if !ok {
		return &Error{Kind: UnexpectedArgument, Token: tok}
	}
	p.position++
	if !a.multiple && p.res.IsPresent(a.name) {
		return &Error{Kind: DuplicateDefinition, Arg: a.name}
	}
	p.res.record(a.name, tok)
	return nil
}
