// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"fmt"
	"path/filepath"

	"github.com/google/shlex"
)

// Names of the built-in arguments every App starts with.
const (
	HelpArg    = "help"
	VersionArg = "version"
)

// Info is the descriptive metadata of an App.
type Info struct {
	Name        string
	Version     string
	Description string
	Author      string
	License     string
	BinName     string
}

// App is an application descriptor: metadata plus the registry of its
// arguments. Build it once, then parse as often as needed. Parsing does not
// modify the App except for ParseArgv recording the binary name, so an App
// that is no longer being configured may be parsed from several goroutines.
type App struct {
	info Info
	reg  Registry
}

// New returns an App named name with the built-in help (-h, --help) and
// version (-V, --version) flags registered.
func New(name string) *App {
	a := &App{info: Info{Name: name}}
	a.reg.Register(NewArg(HelpArg).Short('h').Long("help").Help("Prints this help"))
	a.reg.Register(NewArg(VersionArg).Short('V').Long("version").Help("Prints version"))
	return a
}

// Describe sets the one-line description printed under the help header.
func (a *App) Describe(description string) *App {
	a.info.Description = description
	return a
}

func (a *App) Version(version string) *App {
	a.info.Version = version
	return a
}

func (a *App) Author(author string) *App {
	a.info.Author = author
	return a
}

func (a *App) License(license string) *App {
	a.info.License = license
	return a
}

// BinName sets the program name used in the usage line.
func (a *App) BinName(name string) *App {
	a.info.BinName = name
	return a
}

// Arg registers a copy of arg. Later changes to arg do not affect the App.
func (a *App) Arg(arg *Arg) *App {
	a.reg.Register(arg)
	return a
}

// Info returns the App's metadata.
func (a *App) Info() Info {
	return a.info
}

// Registry returns the App's argument registry.
func (a *App) Registry() *Registry {
	return &a.reg
}

// Parse parses args, which must not include the program name.
func (a *App) Parse(args []string) *Result {
	return parse(&a.reg, args)
}

// ParseArgv parses a full argument vector such as os.Args. argv[0] becomes
// the binary name unless one was already set.
func (a *App) ParseArgv(argv []string) *Result {
	if len(argv) == 0 {
		return a.Parse(nil)
	}
	if a.info.BinName == "" {
		a.info.BinName = filepath.Base(argv[0])
	}
	return a.Parse(argv[1:])
}

// ParseString splits line with shell quoting rules and parses the words. The
// error is non-nil only when line cannot be split; parse failures are
// reported on the Result.
func (a *App) ParseString(line string) (*Result, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split %q: %w", line, err)
	}
	return a.Parse(args), nil
}

// VersionText returns "<name> <version>", or just the name when no version
// is set.
func (a *App) VersionText() string {
	if a.info.Version == "" {
		return a.info.Name
	}
	return a.info.Name + " " + a.info.Version
}
