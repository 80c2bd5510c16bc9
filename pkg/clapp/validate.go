// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

// validate applies defaults and checks constraints in two passes over the
// registry. Every problem in the first pass is reported before any problem
// in the second.
func validate(reg *Registry, res *Result) *Error {
	for _, a := range reg.args {
		if !res.IsPresent(a.name) && a.defaultValue != "" {
			res.record(a.name, a.defaultValue)
		}
		if res.IsPresent(a.name) {
			continue
		}
		if a.required {
			return &Error{Kind: MissingRequiredArgument, Arg: a.ValueName()}
		}
		if a.takesValue {
			return &Error{Kind: MissingOptionValue, Arg: a.ValueName()}
		}
	}

	for _, a := range reg.args {
		for _, other := range a.conflicts {
			if res.IsPresent(other) {
				return &Error{Kind: ConflictingArguments, Arg: a.name, Other: other}
			}
		}
		for _, other := range a.requires {
			if !res.IsPresent(other) {
				return &Error{Kind: UnsatisfiedDependency, Arg: a.name, Other: other}
			}
		}
	}
	return nil
}
