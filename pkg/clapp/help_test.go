// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clapp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHelp(t *testing.T) {
	app := New("greet").Version("1.2.0").Describe("Says hello").BinName("greet")
	app.Arg(NewArg("verbose").Short('v').Long("verbose").Multiple(true).Help("More output"))
	app.Arg(NewArg("name").Help("Who to greet"))
	app.Arg(NewArg("output").Short('o').Long("output").TakesValue(true).Value("FILE").Help("Write to FILE"))
	app.Arg(NewArg("dry-run").Long("dry-run"))
	app.Arg(NewArg("tag").Short('t').TakesValue(true).Multiple(true).Help("Tag"))
	app.Arg(NewArg("rest").Multiple(true))
	app.Arg(NewArg("all").Long("all").Multiple(true).Help("Everything"))
	app.Arg(NewArg("label").Long("label").TakesValue(true).Multiple(true))

	want := strings.Join([]string{
		"greet 1.2.0",
		"Says hello",
		"",
		"USAGE:",
		"greet [OPTIONS] <name> <rest>",
		"",
		"ARGS:",
		"    <name>     Who to greet",
		"    <rest>",
		"",
		"FLAGS:",
		"    -h, --help               Prints this help",
		"    -V, --version            Prints version",
		"    -v, --verbose <v>...     More output",
		"    --dry-run",
		"    --all...                 Everything",
		"",
		"OPTIONS:",
		"    -o, --output <FILE>     Write to FILE",
		"    -t <t>... <tag>         Tag",
		"    --label... <label>",
	}, "\n")

	if diff := cmp.Diff(want, app.Help()); diff != "" {
		t.Errorf("Help() mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpMinimal(t *testing.T) {
	app := New("tool")
	app.ParseArgv([]string{"./bin/tool"})

	want := strings.Join([]string{
		"tool",
		"",
		"USAGE:",
		"tool [OPTIONS]",
		"",
		"FLAGS:",
		"    -h, --help        Prints this help",
		"    -V, --version     Prints version",
	}, "\n")

	if diff := cmp.Diff(want, app.Help()); diff != "" {
		t.Errorf("Help() mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpSectionOrder(t *testing.T) {
	app := New("tool")
	app.Arg(NewArg("opt").Long("opt").TakesValue(true))
	app.Arg(NewArg("flag").Long("flag"))
	app.Arg(NewArg("pos"))

	h := app.Help()
	args := strings.Index(h, "\nARGS:")
	flags := strings.Index(h, "\nFLAGS:")
	opts := strings.Index(h, "\nOPTIONS:")
	if args < 0 || flags < 0 || opts < 0 {
		t.Fatalf("missing section in help:\n%s", h)
	}
	if !(args < flags && flags < opts) {
		t.Errorf("sections out of order: ARGS@%d FLAGS@%d OPTIONS@%d", args, flags, opts)
	}
}

func TestVersionText(t *testing.T) {
	if got := New("tool").VersionText(); got != "tool" {
		t.Errorf("VersionText() = %q, want %q", got, "tool")
	}
	if got := New("tool").Version("2.0.1").VersionText(); got != "tool 2.0.1" {
		t.Errorf("VersionText() = %q, want %q", got, "tool 2.0.1")
	}
}
