package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"lox/interpreter-go/pkg/session"
)

const replPrompt = "> "

func runRepl(args []string, opts runOptions) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "lox repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return session.ExitUsage
	}
	manifest, err := optionalManifest("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return session.ExitFailure
	}
	sess, err := newSession(manifest, opts, os.Stdout)
	if err != nil {
		reportError(err)
		return session.ExitCode(err)
	}
	if err := repl(sess, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return session.ExitFailure
	}
	return session.ExitOK
}

// repl evaluates one line at a time against sess until EOF or an empty line.
// Errors are reported and the prompt continues.
func repl(sess *session.Session, in io.Reader, out, errOut io.Writer) error {
	reader := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, replPrompt)
		if !reader.Scan() {
			fmt.Fprintln(out)
			return reader.Err()
		}
		line := reader.Text()
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if err := sess.Run(line, ""); err != nil {
			fmt.Fprintln(errOut, strings.TrimRight(err.Error(), "\n"))
		}
	}
}
