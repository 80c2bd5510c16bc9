// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// occurrences is the append-only list of values recorded for one argument.
// A flag occurrence records "".
type occurrences struct {
	values []string
}

func (o *occurrences) add(v string) {
	o.values = append(o.values, v)
}

// Result is the outcome of one parse. It is read-only once returned.
type Result struct {
	occ *orderedmap.OrderedMap[string, *occurrences]
	err *Error
}

func newResult() *Result {
	return &Result{occ: orderedmap.New[string, *occurrences]()}
}

func (r *Result) record(name, value string) {
	o, ok := r.occ.Get(name)
	if !ok {
		o = &occurrences{}
		r.occ.Set(name, o)
	}
	o.add(value)
}

func (r *Result) fail(err *Error) *Result {
	r.err = err
	return r
}

// IsPresent reports whether name occurred at least once, counting injected
// defaults.
func (r *Result) IsPresent(name string) bool {
	return r.Count(name) > 0
}

// Count returns the number of occurrences of name.
func (r *Result) Count(name string) int {
	if o, ok := r.occ.Get(name); ok {
		return len(o.values)
	}
	return 0
}

// Value returns the first value recorded for name, or "".
func (r *Result) Value(name string) string {
	return r.ValueOr(name, "")
}

// ValueOr returns the first value recorded for name, or def when name is
// absent.
func (r *Result) ValueOr(name, def string) string {
	if o, ok := r.occ.Get(name); ok && len(o.values) > 0 {
		return o.values[0]
	}
	return def
}

// Values returns every value recorded for name in input order. It returns
// nil when name is absent.
func (r *Result) Values(name string) []string {
	if o, ok := r.occ.Get(name); ok {
		return slices.Clone(o.values)
	}
	return nil
}

// Names returns the present argument names in the order they were first
// recorded.
func (r *Result) Names() []string {
	names := make([]string, 0, r.occ.Len())
	for p := r.occ.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// OK reports whether the parse succeeded.
func (r *Result) OK() bool {
	return r.err == nil
}

// Err returns the parse error as an *Error, or nil.
func (r *Result) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// ErrorMessage returns the parse error message, or "" on success.
func (r *Result) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}
