// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest describes clapp applications in YAML, TOML or HCL files.
//
// A YAML manifest looks like:
//
//	name: greet
//	version: 1.0.0
//	args:
//	  - name: verbose
//	    short: v
//	    long: verbose
//	    multiple: true
//	  - name: who
//	    required: true
//
// TOML uses [[args]] tables with the same keys. HCL uses one labelled block
// per argument:
//
//	name    = "greet"
//	version = "1.0.0"
//	arg "verbose" {
//	  short    = "v"
//	  long     = "verbose"
//	  multiple = true
//	}
package manifest

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/clapp/pkg/clapp"
)

// Manifest is the file form of a clapp.App.
type Manifest struct {
	Name        string   `yaml:"name" toml:"name" hcl:"name"`
	Version     string   `yaml:"version,omitempty" toml:"version,omitempty" hcl:"version,optional"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty" hcl:"description,optional"`
	Author      string   `yaml:"author,omitempty" toml:"author,omitempty" hcl:"author,optional"`
	License     string   `yaml:"license,omitempty" toml:"license,omitempty" hcl:"license,optional"`
	BinName     string   `yaml:"bin_name,omitempty" toml:"bin_name,omitempty" hcl:"bin_name,optional"`
	Args        []ArgDef `yaml:"args,omitempty" toml:"args,omitempty" hcl:"arg,block"`
}

// ArgDef is the file form of a clapp.Arg.
type ArgDef struct {
	Name       string   `yaml:"name" toml:"name" hcl:"name,label"`
	Short      string   `yaml:"short,omitempty" toml:"short,omitempty" hcl:"short,optional"`
	Long       string   `yaml:"long,omitempty" toml:"long,omitempty" hcl:"long,optional"`
	Help       string   `yaml:"help,omitempty" toml:"help,omitempty" hcl:"help,optional"`
	ValueName  string   `yaml:"value_name,omitempty" toml:"value_name,omitempty" hcl:"value_name,optional"`
	Default    string   `yaml:"default,omitempty" toml:"default,omitempty" hcl:"default,optional"`
	Multiple   bool     `yaml:"multiple,omitempty" toml:"multiple,omitempty" hcl:"multiple,optional"`
	Required   bool     `yaml:"required,omitempty" toml:"required,omitempty" hcl:"required,optional"`
	TakesValue bool     `yaml:"takes_value,omitempty" toml:"takes_value,omitempty" hcl:"takes_value,optional"`
	Requires   []string `yaml:"requires,omitempty" toml:"requires,omitempty" hcl:"requires,optional"`
	Conflicts  []string `yaml:"conflicts,omitempty" toml:"conflicts,omitempty" hcl:"conflicts,optional"`
}

// ErrInvalid wraps every problem reported by Validate.
var ErrInvalid = errors.New("invalid manifest")

// SemVer parses the manifest version. It returns nil, nil when no version
// is set.
func (m *Manifest) SemVer() (*semver.Version, error) {
	if m.Version == "" {
		return nil, nil
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %v", ErrInvalid, m.Version, err)
	}
	return v, nil
}

// Validate reports every problem with m, including the ambiguities found by
// clapp.Registry.Check on the app it describes.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, fmt.Errorf("%w: missing name", ErrInvalid))
	}
	if _, err := m.SemVer(); err != nil {
		errs = append(errs, err)
	}
	for i, a := range m.Args {
		if _, err := shortRune(a.Short); err != nil {
			errs = append(errs, fmt.Errorf("%w: args[%d] %q: %v", ErrInvalid, i, a.Name, err))
		}
		if a.TakesValue && a.Short == "" && a.Long == "" {
			errs = append(errs, fmt.Errorf("%w: args[%d] %q: takes_value needs short or long", ErrInvalid, i, a.Name))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	app, err := m.App()
	if err != nil {
		return err
	}
	if err := app.Registry().Check(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// App builds the clapp.App described by m, registering arguments in file
// order after the built-in help and version flags.
func (m *Manifest) App() (*clapp.App, error) {
	app := clapp.New(m.Name).
		Version(m.Version).
		Describe(m.Description).
		Author(m.Author).
		License(m.License).
		BinName(m.BinName)
	for i, d := range m.Args {
		short, err := shortRune(d.Short)
		if err != nil {
			return nil, fmt.Errorf("%w: args[%d] %q: %v", ErrInvalid, i, d.Name, err)
		}
		app.Arg(clapp.NewArg(d.Name).
			Short(short).
			Long(d.Long).
			Help(d.Help).
			Value(d.ValueName).
			Default(d.Default).
			Multiple(d.Multiple).
			Required(d.Required).
			TakesValue(d.TakesValue).
			Requires(d.Requires...).
			Conflicts(d.Conflicts...))
	}
	return app, nil
}

// FromApp converts app back to a manifest, leaving out the built-in help
// and version flags.
func FromApp(app *clapp.App) *Manifest {
	info := app.Info()
	m := &Manifest{
		Name:        info.Name,
		Version:     info.Version,
		Description: info.Description,
		Author:      info.Author,
		License:     info.License,
		BinName:     info.BinName,
	}
	for _, a := range app.Registry().Args() {
		if a.Name() == clapp.HelpArg || a.Name() == clapp.VersionArg {
			continue
		}
		d := ArgDef{
			Name:       a.Name(),
			Long:       a.LongFlag(),
			Help:       a.Description(),
			Default:    a.DefaultValue(),
			Multiple:   a.IsMultiple(),
			Required:   a.IsRequired(),
			TakesValue: a.NeedsValue(),
			Requires:   a.RequiredArgs(),
			Conflicts:  a.ConflictingArgs(),
		}
		if c := a.ShortFlag(); c != 0 {
			d.Short = string(c)
		}
		if a.ValueName() != a.Name() {
			d.ValueName = a.ValueName()
		}
		m.Args = append(m.Args, d)
	}
	return m
}

func shortRune(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("short flag %q must be a single character", s)
	}
	return r, nil
}
