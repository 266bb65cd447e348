package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lox [--max-call-depth=N]                 start the REPL")
	fmt.Fprintln(os.Stderr, "  lox [--max-call-depth=N] <file.lox> ...  run one or more scripts")
	fmt.Fprintln(os.Stderr, "  lox [--max-call-depth=N] run [file.lox]  run a script or the lox.yml main")
	fmt.Fprintln(os.Stderr, "  lox [--max-call-depth=N] repl")
	fmt.Fprintln(os.Stderr, "  lox check [file.lox ...]")
	fmt.Fprintln(os.Stderr, "  lox deps install")
	fmt.Fprintln(os.Stderr, "  lox deps update [prelude ...]")
	fmt.Fprintln(os.Stderr, "  lox --version")
}
