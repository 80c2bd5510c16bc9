// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/clapp/pkg/clapp"
	"github.com/yeetrun/clapp/pkg/ctxlog"
	"github.com/yeetrun/clapp/pkg/manifest"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentChecks bounds how many manifests check loads at once.
const maxConcurrentChecks = 8

type parseFlagsParsed struct {
	Format string `flag:"format" short:"f" help:"Output format (text|json|yaml)" default:"text"`
	Line   string `flag:"line" help:"Parse this command line instead of the arguments after --"`
}

type convertFlagsParsed struct {
	To    string `flag:"to" short:"t" help:"Target format (yaml|toml|hcl)"`
	Out   string `flag:"out" short:"o" help:"Write to FILE instead of stdout"`
	Force bool   `flag:"force" help:"Overwrite FILE without asking"`
}

// commandArgs drops the subcommand name that yargs leaves at the front.
func commandArgs(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

// resolveManifest picks the manifest path from, in order: the explicit
// argument, $CLAPP_MANIFEST, or the nearest manifest above the working
// directory.
func resolveManifest(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if env := os.Getenv(manifestEnv); env != "" {
		return env, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return manifest.Find(wd)
}

// loadApp resolves, loads and builds the app described by a manifest.
func loadApp(ctx context.Context, arg string) (*clapp.App, string, error) {
	path, err := resolveManifest(arg)
	if err != nil {
		return nil, "", err
	}
	m, err := manifest.Load(ctx, path)
	if err != nil {
		return nil, "", err
	}
	app, err := m.App()
	if err != nil {
		return nil, "", err
	}
	if m.BinName == "" {
		app.BinName(m.Name)
	}
	return app, path, nil
}

func singlePositional(args []string, usage string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("unexpected arguments %q; usage: %s", args[1:], usage)
}

func (c *cli) handleCheck(ctx context.Context, args []string) error {
	parsed, err := yargs.ParseFlags[struct{}](commandArgs(args, "check"))
	if err != nil {
		return err
	}
	paths := parsed.Args
	if len(paths) == 0 {
		path, err := resolveManifest("")
		if err != nil {
			return err
		}
		paths = []string{path}
	}

	log := ctxlog.FromContext(ctx)
	results := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(maxConcurrentChecks)
	for i, path := range paths {
		g.Go(func() error {
			m, err := manifest.Load(ctx, path)
			if err == nil {
				err = m.Validate()
			}
			results[i] = err
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, path := range paths {
		if err := results[i]; err != nil {
			failed++
			log.Debug("manifest check failed", "path", path, "err", err)
			fmt.Fprintf(c.stdout, "%s %s\n", c.color.Error("FAIL"), path)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(c.stdout, "    %s\n", line)
			}
			continue
		}
		fmt.Fprintf(c.stdout, "%s %s\n", c.color.OK("ok"), path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d manifests failed", failed, len(paths))
	}
	return nil
}

func (c *cli) handleUsage(ctx context.Context, args []string) error {
	parsed, err := yargs.ParseFlags[struct{}](commandArgs(args, "usage"))
	if err != nil {
		return err
	}
	arg, err := singlePositional(parsed.Args, "clapp usage [MANIFEST]")
	if err != nil {
		return err
	}
	app, _, err := loadApp(ctx, arg)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, app.Help())
	return nil
}

func (c *cli) handleParse(ctx context.Context, args []string) error {
	parsed, err := yargs.ParseFlags[parseFlagsParsed](commandArgs(args, "parse"))
	if err != nil {
		return err
	}
	flags := parsed.Flags
	format, err := parseOutputFormat(flags.Format)
	if err != nil {
		return err
	}
	arg, err := singlePositional(parsed.Args, "clapp parse [MANIFEST] [-- ARGS...]")
	if err != nil {
		return err
	}
	app, path, err := loadApp(ctx, arg)
	if err != nil {
		return err
	}

	var res *clapp.Result
	if flags.Line != "" {
		if c.hasPassthrough {
			return errors.New("use either --line or arguments after --, not both")
		}
		res, err = app.ParseString(flags.Line)
		if err != nil {
			return err
		}
	} else {
		res = app.Parse(c.passthrough)
	}
	ctxlog.FromContext(ctx).Debug("parsed arguments", "manifest", path, "ok", res.OK(), "names", res.Names())

	if !res.OK() {
		return &codedError{code: exitParse, err: res.Err()}
	}
	switch {
	case res.IsPresent(clapp.HelpArg):
		fmt.Fprintln(c.stdout, app.Help())
		return nil
	case res.IsPresent(clapp.VersionArg):
		fmt.Fprintln(c.stdout, app.VersionText())
		return nil
	}
	return renderResult(c.stdout, app, res, format)
}

func (c *cli) handleConvert(ctx context.Context, args []string) error {
	parsed, err := yargs.ParseFlags[convertFlagsParsed](commandArgs(args, "convert"))
	if err != nil {
		return err
	}
	flags := parsed.Flags
	if len(parsed.Args) != 1 {
		return errors.New("usage: clapp convert MANIFEST [--to yaml|toml|hcl] [--out FILE]")
	}
	src := parsed.Args[0]

	m, err := manifest.Load(ctx, src)
	if err != nil {
		return err
	}
	if flags.Out != "" {
		if flags.To != "" {
			to, err := manifest.ParseFormat(flags.To)
			if err != nil {
				return err
			}
			if got, err := manifest.ParseFormat(filepath.Ext(flags.Out)); err != nil || got != to {
				return fmt.Errorf("--out %s does not match --to %s", flags.Out, to)
			}
		}
		if ok, err := c.mayOverwrite(flags.Out, flags.Force); err != nil || !ok {
			return err
		}
		if err := manifest.Save(flags.Out, m); err != nil {
			return fmt.Errorf("failed to write %s: %w", flags.Out, err)
		}
		ctxlog.FromContext(ctx).Info("converted manifest", "from", src, "to", flags.Out)
		return nil
	}
	if flags.To == "" {
		return errors.New("one of --to or --out is required")
	}
	to, err := manifest.ParseFormat(flags.To)
	if err != nil {
		return err
	}
	return manifest.Encode(c.stdout, m, to)
}

// mayOverwrite reports whether path can be written. An existing file needs
// --force, or a yes on an interactive terminal.
func (c *cli) mayOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return true, nil
	} else if err != nil {
		return false, err
	}
	if !c.interactive {
		return false, fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	ok, err := confirm(c.stdin, c.stderr, fmt.Sprintf("Overwrite %s?", path))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(c.stderr, c.color.Warn("Not overwriting "+path))
	}
	return ok, nil
}

func (c *cli) handleVersion(ctx context.Context, args []string) error {
	fmt.Fprintf(c.stdout, "clapp %s\n", version)
	return nil
}
