// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jcheck/jcheck/internal/cacheutil"
	"github.com/jcheck/jcheck/internal/command"
	"github.com/jcheck/jcheck/internal/config"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/version"
)

// Exit statuses.
const (
	exitEquivalent = 0
	exitDiffer     = 1
	exitError      = 2
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set arguments. completion takes its arguments
// verbatim.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitError
	}

	boolFlags := command.BoolFlagNames(app)
	args = command.StdinArgs(deduplicateFlags(args, boolFlags), boolFlags)

	return exitCode(app.Run(ctx, args))
}

// exitCode maps the result of a command onto the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitEquivalent
	case errors.Is(err, command.ErrDocumentsDiffer):
		log.Debugf("app run: %v", err)
		return exitDiffer
	default:
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return exitError
	}
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return exitEquivalent
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the flags listed under
// <command>.<set> in the config file. Without an explicit @set nothing is
// injected.
func processSetOnly(args []string) []string {
	for i := 2; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") || len(args[i]) == 1 {
			continue
		}
		entries, err := config.GetStringSlice(args[1] + "." + args[i][1:])
		if err != nil {
			log.Warnf("unknown flag set %s: %v", args[i], err)
		}
		rest := append([]string(nil), args[i+1:]...)
		return injectConfigSet(args[:i], entries, rest)
	}
	return args
}

// injectConfigSet splits each entry into fields and places them between head
// and tail.
func injectConfigSet(head, entries, tail []string) []string {
	out := append([]string(nil), head...)
	for _, entry := range entries {
		out = append(out, strings.Fields(entry)...)
	}
	return append(out, tail...)
}

// deduplicateFlags keeps the last occurrence of each flag so values from an
// expanded @set can be overridden on the command line. Flags not listed in
// boolFlags consume the following argument as their value, even one starting
// with a dash such as a descending --sort key, unless written as --flag=value.
func deduplicateFlags(args []string, boolFlags map[string]bool) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		name  string
		parts []string
	}

	var tokens []token
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			tokens = append(tokens, token{parts: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		t := token{name: name, parts: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && args[i+1] != "--" {
			t.parts = append(t.parts, args[i+1])
			i++
		}
		tokens = append(tokens, t)
	}

	last := map[string]int{}
	for i, t := range tokens {
		if t.name != "" {
			last[t.name] = i
		}
	}

	out := append([]string(nil), args[:2]...)
	for i, t := range tokens {
		if t.name != "" && last[t.name] != i {
			continue
		}
		out = append(out, t.parts...)
	}
	return out
}
