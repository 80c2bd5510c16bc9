// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/yeetrun/clapp/pkg/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// FileNames are the manifest names Find looks for, in order of preference.
var FileNames = []string{"clapp.yaml", "clapp.yml", "clapp.toml", "clapp.hcl"}

// Find walks from startDir up to the filesystem root and returns the first
// manifest found. It returns an error wrapping os.ErrNotExist when there is
// none.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no manifest (%s) in %s or its parents: %w", strings.Join(FileNames, ", "), startDir, os.ErrNotExist)
}

// Load reads and decodes the manifest at path.
func Load(ctx context.Context, path string) (*Manifest, error) {
	log := ctxlog.FromContext(ctx)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, format, err := Decode(path, src)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded manifest", "path", path, "format", format, "name", m.Name, "args", len(m.Args))
	return m, nil
}

// Decode parses src in the format detected from path and src. Unknown keys
// are errors in every format.
func Decode(path string, src []byte) (*Manifest, Format, error) {
	format, err := DetectFormat(path, src)
	if err != nil {
		return nil, Unknown, err
	}
	m, err := DecodeFormat(path, src, format)
	return m, format, err
}

// DecodeFormat parses src as format. path is only used in error messages.
func DecodeFormat(path string, src []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse %s: empty document", path)
			}
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case TOML:
		md, err := toml.Decode(string(src), &m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("failed to parse %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case HCL:
		f, diags := hclparse.NewParser().ParseHCL(src, path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		if diags := gohcl.DecodeBody(f.Body, nil, &m); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}
	default:
		return nil, fmt.Errorf("failed to parse %s: unsupported format %v", path, format)
	}
	return &m, nil
}

// Encode writes m to w in format.
func Encode(w io.Writer, m *Manifest, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(m)
	case HCL:
		_, err := w.Write(encodeHCL(m))
		return err
	}
	return fmt.Errorf("unsupported format %v", format)
}

// Save writes m to path in the format implied by its extension. The file is
// written next to path and renamed into place, so readers never see a
// partial manifest.
func Save(path string, m *Manifest) (err error) {
	format, ok := detectByName(path)
	if !ok {
		return fmt.Errorf("cannot tell manifest format from %s", path)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if err := Encode(f, m, format); err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

func encodeHCL(m *Manifest) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	setString(body, "name", m.Name)
	setString(body, "version", m.Version)
	setString(body, "description", m.Description)
	setString(body, "author", m.Author)
	setString(body, "license", m.License)
	setString(body, "bin_name", m.BinName)

	for _, a := range m.Args {
		body.AppendNewline()
		ab := body.AppendNewBlock("arg", []string{a.Name}).Body()
		setString(ab, "short", a.Short)
		setString(ab, "long", a.Long)
		setString(ab, "help", a.Help)
		setString(ab, "value_name", a.ValueName)
		setString(ab, "default", a.Default)
		setBool(ab, "multiple", a.Multiple)
		setBool(ab, "required", a.Required)
		setBool(ab, "takes_value", a.TakesValue)
		setList(ab, "requires", a.Requires)
		setList(ab, "conflicts", a.Conflicts)
	}
	return hclwrite.Format(f.Bytes())
}

func setString(b *hclwrite.Body, name, v string) {
	if v != "" {
		b.SetAttributeValue(name, cty.StringVal(v))
	}
}

func setBool(b *hclwrite.Body, name string, v bool) {
	if v {
		b.SetAttributeValue(name, cty.True)
	}
}

func setList(b *hclwrite.Body, name string, vs []string) {
	if len(vs) == 0 {
		return
	}
	vals := make([]cty.Value, len(vs))
	for i, v := range vs {
		vals[i] = cty.StringVal(v)
	}
	b.SetAttributeValue(name, cty.ListVal(vals))
}
