// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"errors"
	"fmt"
)

// Sentinel errors for parse failures. Every *Error unwraps to exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrInvalidOption is returned for an unknown long or short flag.
	ErrInvalidOption = errors.New("invalid option")

	// ErrMissingOptionValue is returned when an option that needs a value is
	// followed by another flag, by the end of input, or is absent without a
	// default.
	ErrMissingOptionValue = errors.New("missing option value")

	// ErrUnexpectedArgument is returned when a value has no positional slot left.
	ErrUnexpectedArgument = errors.New("unexpected argument")

	// ErrDuplicateDefinition is returned when an argument that is not
	// multiple occurs twice.
	ErrDuplicateDefinition = errors.New("duplicate definition")

	// ErrMissingRequiredArgument is returned when a required argument is
	// absent after defaults have been applied.
	ErrMissingRequiredArgument = errors.New("missing required argument")

	// ErrConflictingArguments is returned when two mutually exclusive
	// arguments are both present.
	ErrConflictingArguments = errors.New("conflicting arguments")

	// ErrUnsatisfiedDependency is returned when an argument is present without
	// an argument it requires.
	ErrUnsatisfiedDependency = errors.New("unsatisfied dependency")
)

// ErrorKind classifies an *Error.
type ErrorKind int

const (
	InvalidOption ErrorKind = iota + 1
	MissingOptionValue
	UnexpectedArgument
	DuplicateDefinition
	MissingRequiredArgument
	ConflictingArguments
	UnsatisfiedDependency
)

var kindSentinels = map[ErrorKind]error{
	InvalidOption:           ErrInvalidOption,
	MissingOptionValue:      ErrMissingOptionValue,
	UnexpectedArgument:      ErrUnexpectedArgument,
	DuplicateDefinition:     ErrDuplicateDefinition,
	MissingRequiredArgument: ErrMissingRequiredArgument,
	ConflictingArguments:    ErrConflictingArguments,
	UnsatisfiedDependency:   ErrUnsatisfiedDependency,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error describes why a parse failed. Only the fields relevant to Kind are set.
type Error struct {
	Kind  ErrorKind
	Arg   string // argument name or value name the error is about
	Other string // the other argument for conflicts and requires
	Token string // offending input: flag text, flag character or value
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidOption:
		return "Invalid option: " + e.Token
	case MissingOptionValue:
		return "Missing value for option: " + e.Arg
	case UnexpectedArgument:
		return "Unexpected argument: " + e.Token
	case DuplicateDefinition:
		return "Multiple definition: " + e.Arg
	case MissingRequiredArgument:
		return "Missing required argument: " + e.Arg
	case ConflictingArguments:
		return e.Arg + " can't be used with " + e.Other
	case UnsatisfiedDependency:
		return e.Arg + " should be used with " + e.Other
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return kindSentinels[e.Kind]
}

// Errors reported by Registry.Check.
var (
	ErrDuplicateName    = errors.New("duplicate argument name")
	ErrDuplicateFlag    = errors.New("duplicate flag")
	ErrUnknownReference = errors.New("reference to unknown argument")
	ErrInvalidFlag      = errors.New("invalid flag")
	ErrInvalidName      = errors.New("invalid argument name")
)

// RegistryError is one problem found by Registry.Check.
type RegistryError struct {
	Arg    string
	Detail string
	Err    error
}

func (e *RegistryError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("argument %q: %v", e.Arg, e.Err)
	}
	return fmt.Sprintf("argument %q: %v: %s", e.Arg, e.Err, e.Detail)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}
