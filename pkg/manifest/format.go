// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Format is a manifest file format.
type Format int

const (
	Unknown Format = iota
	YAML
	TOML
	HCL
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case HCL:
		return "hcl"
	}
	return "unknown"
}

// Ext returns the preferred file extension, with its dot.
func (f Format) Ext() string {
	if f == Unknown {
		return ""
	}
	return "." + f.String()
}

// ParseFormat maps a format name such as "yml" or "TOML" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	case "hcl":
		return HCL, nil
	}
	return Unknown, fmt.Errorf("unknown manifest format %q (want yaml, toml or hcl)", s)
}

// DetectFormat picks the format of a manifest from its file name, falling
// back to the contents when the extension says nothing.
func DetectFormat(path string, src []byte) (Format, error) {
	if f, ok := detectByName(path); ok {
		return f, nil
	}
	if f, ok := detectByContent(path, src); ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("unable to detect manifest format of %s", path)
}

func detectByName(path string) (Format, bool) {
	if path == "" {
		return Unknown, false
	}
	f, err := ParseFormat(filepath.Ext(path))
	return f, err == nil
}

// detectByContent tries each decoder in turn and accepts the first one that
// yields a top-level name. TOML goes first because attribute-only HCL is
// also valid TOML and decodes the same way.
func detectByContent(path string, src []byte) (Format, bool) {
	if len(bytes.TrimSpace(src)) == 0 {
		return Unknown, false
	}
	var sniff struct {
		Name string `toml:"name" yaml:"name"`
	}
	if _, err := toml.Decode(string(src), &sniff); err == nil && sniff.Name != "" {
		return TOML, true
	}
	sniff.Name = ""
	if err := yaml.Unmarshal(src, &sniff); err == nil && sniff.Name != "" {
		return YAML, true
	}
	if _, diags := hclparse.NewParser().ParseHCL(src, path); !diags.HasErrors() {
		return HCL, true
	}
	return Unknown, false
}
