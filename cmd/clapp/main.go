// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clapp checks, renders and exercises clapp manifests.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/clapp/pkg/ctxlog"
	"github.com/yeetrun/clapp/pkg/tui"
	"golang.org/x/term"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitParse = 2
)

const manifestEnv = "CLAPP_MANIFEST"

type globalFlagsParsed struct {
	Verbose   bool   `flag:"verbose" short:"v" help:"Log debug output to stderr"`
	NoColor   bool   `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
	LogFormat string `flag:"log-format" help:"Log format (text|json)"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// codedError carries a specific exit code out of a handler.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *codedError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitError
}

// splitPassthrough cuts args at the first "--". Everything after it belongs
// to the described application, not to this tool.
func splitPassthrough(args []string) (head, tail []string, ok bool) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:], true
		}
	}
	return args, nil, false
}

// cli is the state shared by all subcommand handlers.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  tui.Colorizer

	// interactive is set when stdin and stderr are terminals, so the user
	// can be asked before a file is overwritten.
	interactive bool

	// passthrough holds the arguments after "--", if any were given.
	passthrough    []string
	hasPassthrough bool
}

func (c *cli) printError(err error) {
	msg := strings.TrimRight(err.Error(), "\n")
	fmt.Fprintf(c.stderr, "%s %s\n", c.color.Error("Error:"), msg)
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "clapp",
			Description: "Check, render and try out command-line definitions written as YAML, TOML or HCL manifests.",
			Examples: []string{
				"clapp check",
				"clapp check cmd/*/clapp.yaml",
				"clapp usage ./clapp.toml",
				"clapp parse ./clapp.yaml -- -vv --output out.txt input.txt",
				"clapp parse --format json --line='-o out.txt input.txt'",
				"clapp convert ./clapp.yaml --to hcl",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"check": {
				Name:        "check",
				Description: "Validate manifests and report ambiguous or dangling definitions",
				Usage:       "[MANIFEST...]",
				Examples:    []string{"clapp check", "clapp check a.yaml b.hcl"},
			},
			"usage": {
				Name:        "usage",
				Description: "Print the help text of the described application",
				Usage:       "[MANIFEST]",
			},
			"parse": {
				Name:        "parse",
				Description: "Parse arguments against a manifest and print what matched",
				Usage:       "[MANIFEST] [--format text|json|yaml] [--line STRING] [-- ARGS...]",
				Examples:    []string{"clapp parse greet.yaml -- -v world"},
			},
			"convert": {
				Name:        "convert",
				Description: "Re-encode a manifest as YAML, TOML or HCL",
				Usage:       "MANIFEST [--to yaml|toml|hcl] [--out FILE]",
				Examples:    []string{"clapp convert clapp.yaml --to toml --out clapp.toml"},
			},
			"version": {
				Name:        "version",
				Description: "Print the clapp version",
			},
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	head, tail, hasTail := splitPassthrough(args)
	flags, rest, err := parseGlobalFlags(head)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	level := "info"
	if flags.Verbose {
		level = "debug"
	}
	ctx = ctxlog.WithLogger(ctx, ctxlog.New(stderr, level, flags.LogFormat))

	c := &cli{
		stdout:         stdout,
		stderr:         stderr,
		passthrough:    tail,
		hasPassthrough: hasTail,
	}
	if f, ok := stderr.(*os.File); ok {
		c.color = tui.ForFile(f, !flags.NoColor)
		c.stdin = os.Stdin
		c.interactive = term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
	}

	handlers := map[string]yargs.SubcommandHandler{
		"check":   c.handleCheck,
		"usage":   c.handleUsage,
		"parse":   c.handleParse,
		"convert": c.handleConvert,
		"version": c.handleVersion,
	}
	if err := yargs.RunSubcommands(ctx, rest, buildHelpConfig(), globalFlagsParsed{}, handlers); err != nil {
		c.printError(err)
		return exitCode(err)
	}
	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
