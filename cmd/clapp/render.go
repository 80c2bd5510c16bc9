// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/clapp/pkg/clapp"
	"gopkg.in/yaml.v3"
)

type outputFormat int

const (
	outputText outputFormat = iota
	outputJSON
	outputYAML
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return outputText, nil
	case "json":
		return outputJSON, nil
	case "yaml", "yml":
		return outputYAML, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// occurrence is one matched argument in the order it was first seen.
type occurrence struct {
	Name   string   `json:"name" yaml:"name"`
	Kind   string   `json:"kind" yaml:"kind"`
	Count  int      `json:"count" yaml:"count"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
}

func occurrences(app *clapp.App, res *clapp.Result) []occurrence {
	names := res.Names()
	out := make([]occurrence, 0, len(names))
	for _, name := range names {
		o := occurrence{Name: name, Count: res.Count(name)}
		if a, ok := app.Registry().Lookup(name); ok {
			o.Kind = a.Kind().String()
			if a.Kind() != clapp.Flag {
				o.Values = res.Values(name)
			}
		}
		out = append(out, o)
	}
	return out
}

func renderResult(w io.Writer, app *clapp.App, res *clapp.Result, format outputFormat) error {
	occ := occurrences(app, res)
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(occ)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(occ); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tCOUNT\tVALUES")
	for _, o := range occ {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", o.Name, o.Kind, o.Count, strings.Join(o.Values, " "))
	}
	return tw.Flush()
}
