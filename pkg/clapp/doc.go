// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clapp parses command lines against declared argument definitions.
//
// An App owns an ordered registry of arguments. Each argument is one of
// three kinds, derived from how it is configured:
//   - positional: no flag; filled by bare values in registration order
//   - flag: has -c and/or --long; records presence only
//   - option: has a flag and TakesValue(true); consumes the next token
//
// Every App starts with two built-in flags, help (-h, --help) and
// version (-V, --version). When either is present after the scan the
// result is returned without validation, so the caller can print and exit.
//
// # Basic Usage
//
//	app := clapp.New("greet").Version("1.0.0").Describe("Print a greeting")
//	app.Arg(clapp.NewArg("verbose").Short('v').Long("verbose").Multiple(true))
//	app.Arg(clapp.NewArg("output").Short('o').Long("output").TakesValue(true).Default("-"))
//	app.Arg(clapp.NewArg("name").Required(true))
//
//	res := app.ParseArgv(os.Args)
//	if !res.OK() {
//	    fmt.Fprintln(os.Stderr, res.ErrorMessage())
//	    os.Exit(2)
//	}
//	if res.IsPresent("help") {
//	    fmt.Println(app.Help())
//	    return
//	}
//	fmt.Println(res.Count("verbose"), res.Value("output"), res.Value("name"))
//
// # Token Rules
//
//   - "--name" looks up a long flag
//   - "-abc" is the cluster -a -b -c
//   - a bare "--" makes every later token a value
//   - anything else fills the pending option or the next positional
//
// There is no "--name=value" form. An option takes exactly the next value
// token.
//
// # Validation
//
// After the scan, defaults are injected for absent arguments. Then, in
// registration order, a required argument that is still absent fails, and
// so does an option that is still absent, so options without a default
// behave as required. Only when every argument passes are conflicts and
// requires checked, for every argument whether or not it is present itself.
//
// Each positional fills exactly one value token, Multiple or not. A value
// with no slot left fails with "Unexpected argument".
//
// # Errors
//
// The first problem stops the parse. Result.Err returns an *Error whose
// Unwrap gives one of the Err* sentinels:
//
//	if errors.Is(res.Err(), clapp.ErrConflictingArguments) { ... }
//
// # Ambiguity
//
// Registering two arguments with the same flag is allowed; lookups take the
// first one. Registry.Check reports such problems without changing how
// Parse behaves.
package clapp
