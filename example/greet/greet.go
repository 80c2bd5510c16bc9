// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Greet is a small program built on clapp.
//
//	greet -vv --greeting Hi --times 2 world
//	GREET_ARGS='-g "Good morning" world' greet
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yeetrun/clapp/pkg/clapp"
	"tailscale.com/util/must"
)

func newApp() *clapp.App {
	return clapp.New("greet").
		Version("1.0.0").
		Describe("Says hello.").
		Arg(clapp.NewArg("verbose").Short('v').Long("verbose").Help("Be louder; repeat for more").Multiple(true)).
		Arg(clapp.NewArg("greeting").Short('g').Long("greeting").Help("What to say").Value("WORD").Default("Hello").TakesValue(true)).
		Arg(clapp.NewArg("times").Short('n').Long("times").Help("How many times").Value("N").Default("1").TakesValue(true)).
		Arg(clapp.NewArg("who").Help("Who to greet").Required(true))
}

func main() {
	app := newApp()
	res := app.ParseArgv(os.Args)
	if line := os.Getenv("GREET_ARGS"); line != "" {
		res = must.Get(app.ParseString(line))
	}
	if !res.OK() {
		fmt.Fprintf(os.Stderr, "%s\n\n%s\n", res.ErrorMessage(), app.Help())
		os.Exit(2)
	}
	switch {
	case res.IsPresent(clapp.HelpArg):
		fmt.Println(app.Help())
		return
	case res.IsPresent(clapp.VersionArg):
		fmt.Println(app.VersionText())
		return
	}

	times, err := strconv.Atoi(res.Value("times"))
	if err != nil || times < 1 {
		fmt.Fprintf(os.Stderr, "invalid --times %q\n", res.Value("times"))
		os.Exit(2)
	}
	msg := res.Value("greeting") + ", " + res.Value("who")
	msg += strings.Repeat("!", res.Count("verbose")+1)
	for range times {
		fmt.Println(msg)
	}
}
