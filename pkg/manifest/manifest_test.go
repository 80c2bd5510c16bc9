// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/clapp/pkg/clapp"
	"github.com/yeetrun/clapp/pkg/ctxlog"
)

const greetYAML = `name: greet
version: 1.2.0
description: Says hello
bin_name: greet
args:
  - name: verbose
    short: v
    long: verbose
    help: More output
    multiple: true
  - name: output
    short: o
    long: output
    value_name: FILE
    default: "-"
    takes_value: true
    requires: [verbose]
  - name: who
    help: Who to greet
    required: true
`

const greetTOML = `name = "greet"
version = "1.2.0"
description = "Says hello"
bin_name = "greet"

[[args]]
name = "verbose"
short = "v"
long = "verbose"
help = "More output"
multiple = true

[[args]]
name = "output"
short = "o"
long = "output"
value_name = "FILE"
default = "-"
takes_value = true
requires = ["verbose"]

[[args]]
name = "who"
help = "Who to greet"
required = true
`

const greetHCL = `name        = "greet"
version     = "1.2.0"
description = "Says hello"
bin_name    = "greet"

arg "verbose" {
  short    = "v"
  long     = "verbose"
  help     = "More output"
  multiple = true
}

arg "output" {
  short       = "o"
  long        = "output"
  value_name  = "FILE"
  default     = "-"
  takes_value = true
  requires    = ["verbose"]
}

arg "who" {
  help     = "Who to greet"
  required = true
}
`

var greetManifest = &Manifest{
	Name:        "greet",
	Version:     "1.2.0",
	Description: "Says hello",
	BinName:     "greet",
	Args: []ArgDef{
		{Name: "verbose", Short: "v", Long: "verbose", Help: "More output", Multiple: true},
		{Name: "output", Short: "o", Long: "output", ValueName: "FILE", Default: "-", TakesValue: true, Requires: []string{"verbose"}},
		{Name: "who", Help: "Who to greet", Required: true},
	},
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		fileName   string
		contents   string
		wantFormat Format
	}{
		{name: "yaml", fileName: "clapp.yaml", contents: greetYAML, wantFormat: YAML},
		{name: "yml", fileName: "clapp.yml", contents: greetYAML, wantFormat: YAML},
		{name: "toml", fileName: "clapp.toml", contents: greetTOML, wantFormat: TOML},
		{name: "hcl", fileName: "clapp.hcl", contents: greetHCL, wantFormat: HCL},
		{name: "yaml_sniffed", fileName: "greet.args", contents: greetYAML, wantFormat: YAML},
		{name: "toml_sniffed", fileName: "greet.args", contents: greetTOML, wantFormat: TOML},
		{name: "hcl_sniffed", fileName: "greet.args", contents: greetHCL, wantFormat: HCL},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, format, err := Decode(tc.fileName, []byte(tc.contents))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if format != tc.wantFormat {
				t.Errorf("format = %v, want %v", format, tc.wantFormat)
			}
			if diff := cmp.Diff(greetManifest, m); diff != "" {
				t.Errorf("manifest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		fileName string
		contents string
		wantText string
	}{
		{name: "yaml_unknown_field", fileName: "a.yaml", contents: "name: x\ncolour: red\n", wantText: "colour"},
		{name: "yaml_empty", fileName: "a.yaml", contents: "", wantText: "empty document"},
		{name: "toml_unknown_key", fileName: "a.toml", contents: "name = \"x\"\ncolour = \"red\"\n", wantText: "unknown keys colour"},
		{name: "toml_syntax", fileName: "a.toml", contents: "name = \n", wantText: "failed to parse a.toml"},
		{name: "hcl_unknown_attr", fileName: "a.hcl", contents: "name = \"x\"\ncolour = \"red\"\n", wantText: "failed to decode HCL file a.hcl"},
		{name: "hcl_missing_name", fileName: "a.hcl", contents: "version = \"1.0.0\"\n", wantText: "failed to decode HCL file a.hcl"},
		{name: "undetectable", fileName: "a.txt", contents: "just words", wantText: "unable to detect manifest format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Decode(tc.fileName, []byte(tc.contents))
			if err == nil {
				t.Fatalf("Decode() succeeded, want error containing %q", tc.wantText)
			}
			if !strings.Contains(err.Error(), tc.wantText) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tc.wantText)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": YAML, ".yml": YAML, "TOML": TOML, "hcl": HCL} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Errorf("ParseFormat(json) succeeded, want error")
	}
	if got := HCL.Ext(); got != ".hcl" {
		t.Errorf("HCL.Ext() = %q", got)
	}
}

func TestConvertBetweenFormats(t *testing.T) {
	m := greetManifest
	for _, format := range []Format{HCL, TOML, YAML} {
		var buf bytes.Buffer
		if err := Encode(&buf, m, format); err != nil {
			t.Fatalf("Encode(%v) error = %v", format, err)
		}
		got, err := DecodeFormat("converted"+format.Ext(), buf.Bytes(), format)
		if err != nil {
			t.Fatalf("DecodeFormat(%v) error = %v\n%s", format, err, buf.String())
		}
		if diff := cmp.Diff(greetManifest, got); diff != "" {
			t.Fatalf("%v output mismatch (-want +got):\n%s\n%s", format, diff, buf.String())
		}
		m = got
	}
}

func TestEncodeHCLOmitsZeroValues(t *testing.T) {
	var buf bytes.Buffer
	m := &Manifest{Name: "tiny", Args: []ArgDef{{Name: "file"}}}
	if err := Encode(&buf, m, HCL); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, absent := range []string{"version", "multiple", "requires"} {
		if strings.Contains(out, absent) {
			t.Errorf("HCL output mentions %q:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, `arg "file" {`) {
		t.Errorf("HCL output lacks arg block:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		m       Manifest
		wantErr error
		want    string
	}{
		{name: "ok", m: *greetManifest},
		{name: "missing_name", m: Manifest{}, wantErr: ErrInvalid, want: "missing name"},
		{name: "bad_version", m: Manifest{Name: "x", Version: "one"}, wantErr: ErrInvalid, want: `version "one"`},
		{
			name:    "long_short_flag",
			m:       Manifest{Name: "x", Args: []ArgDef{{Name: "v", Short: "vv"}}},
			wantErr: ErrInvalid,
			want:    "single character",
		},
		{
			name:    "value_without_flag",
			m:       Manifest{Name: "x", Args: []ArgDef{{Name: "p", TakesValue: true}}},
			wantErr: ErrInvalid,
			want:    "takes_value needs short or long",
		},
		{
			name:    "shadowed_help",
			m:       Manifest{Name: "x", Args: []ArgDef{{Name: "host", Short: "h"}}},
			wantErr: clapp.ErrDuplicateFlag,
			want:    `-h already used by "help"`,
		},
		{
			name:    "unknown_requires",
			m:       Manifest{Name: "x", Args: []ArgDef{{Name: "a", Long: "a", Requires: []string{"b"}}}},
			wantErr: clapp.ErrUnknownReference,
			want:    `requires "b"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.m.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestSemVer(t *testing.T) {
	m := Manifest{Name: "x", Version: "v1.2"}
	v, err := m.SemVer()
	if err != nil {
		t.Fatalf("SemVer() error = %v", err)
	}
	if got := v.String(); got != "1.2.0" {
		t.Errorf("SemVer().String() = %q, want %q", got, "1.2.0")
	}
	if v, err := (&Manifest{Name: "x"}).SemVer(); v != nil || err != nil {
		t.Errorf("SemVer() without version = %v, %v", v, err)
	}
}

func TestApp(t *testing.T) {
	app, err := greetManifest.App()
	if err != nil {
		t.Fatalf("App() error = %v", err)
	}

	res := app.Parse([]string{"-vo", "out.txt", "gopher"})
	if !res.OK() {
		t.Fatalf("Parse error = %v", res.Err())
	}
	if got := res.Value("output"); got != "out.txt" {
		t.Errorf("Value(output) = %q, want out.txt", got)
	}
	if got := res.Value("who"); got != "gopher" {
		t.Errorf("Value(who) = %q, want gopher", got)
	}

	res = app.Parse([]string{"gopher"})
	if !errors.Is(res.Err(), clapp.ErrUnsatisfiedDependency) {
		t.Errorf("Parse(gopher) error = %v, want unsatisfied dependency from default output", res.Err())
	}

	if !strings.HasPrefix(app.Help(), "greet 1.2.0\nSays hello\n\nUSAGE:\ngreet [OPTIONS] <who>") {
		t.Errorf("Help() header:\n%s", app.Help())
	}
}

func TestFromApp(t *testing.T) {
	app, err := greetManifest.App()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(greetManifest, FromApp(app)); diff != "" {
		t.Errorf("FromApp mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "clapp.toml", greetTOML)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != path {
		t.Errorf("Find() = %q, want %q", got, path)
	}

	// yaml wins over toml in the same directory.
	yamlPath := writeFile(t, root, "clapp.yaml", greetYAML)
	if got, _ := Find(root); got != yamlPath {
		t.Errorf("Find() = %q, want %q", got, yamlPath)
	}
}

func TestFindMissing(t *testing.T) {
	t.Parallel()

	_, err := Find(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Find() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, "debug", "text"))

	dir := t.TempDir()
	src := writeFile(t, dir, "clapp.hcl", greetHCL)
	m, err := Load(ctx, src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(logs.String(), "loaded manifest") {
		t.Errorf("Load() did not log, got %q", logs.String())
	}

	dst := filepath.Join(dir, "out", "clapp.yml")
	if err := Save(dst, m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	again, err := Load(context.Background(), dst)
	if err != nil {
		t.Fatalf("Load(saved) error = %v", err)
	}
	if diff := cmp.Diff(m, again); diff != "" {
		t.Errorf("saved manifest mismatch (-want +got):\n%s", diff)
	}

	if err := Save(filepath.Join(dir, "clapp.json"), m); err == nil {
		t.Errorf("Save(.json) succeeded, want error")
	}
	if _, err := Load(ctx, filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}
