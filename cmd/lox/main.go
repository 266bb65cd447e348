package main

import (
	"errors"
	"fmt"
	"os"

	"lox/interpreter-go/pkg/session"
)

const cliToolVersion = "lox-cli 0.1.0"

var errManifestNotFound = errors.New("lox.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, remaining, err := parseRunOptions(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return session.ExitUsage
	}
	if len(remaining) == 0 {
		return runRepl(nil, opts)
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage()
		return session.ExitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return session.ExitOK
	case "run":
		return runEntry(remaining[1:], opts)
	case "repl":
		return runRepl(remaining[1:], opts)
	case "check":
		return runCheck(remaining[1:], opts)
	case "deps":
		return runDeps(remaining[1:])
	case "--":
		return runEntry(remaining[1:], opts)
	default:
		return runEntry(remaining, opts)
	}
}
