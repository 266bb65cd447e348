// Package session wires the scanner, parser, resolver and interpreter into
// the run/check pipeline used by the CLI and REPL.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/scanner"
)

// Exit statuses follow the sysexits convention.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 64
	ExitStatic  = 65
	ExitNoInput = 66
	ExitRuntime = 70
)

// Options configures a Session.
type Options struct {
	Stdout       io.Writer
	MaxCallDepth int
	Clock        func() time.Time
}

// Session owns one interpreter; globals persist across Run calls.
type Session struct {
	interp *interpreter.Interpreter
}

// StaticError reports scan, parse or resolve diagnostics. Nothing was executed.
type StaticError struct {
	Diagnostics []driver.Diagnostic
}

func (e *StaticError) Error() string {
	lines := make([]string, 0, len(e.Diagnostics))
	for _, diag := range e.Diagnostics {
		lines = append(lines, driver.DescribeDiagnostic(diag))
	}
	return strings.Join(lines, "\n")
}

// RuntimeFault reports the fault that stopped execution.
type RuntimeFault struct {
	Diagnostic interpreter.RuntimeDiagnostic
	Err        error
}

func (e *RuntimeFault) Error() string {
	return interpreter.DescribeRuntimeDiagnostic(e.Diagnostic)
}

func (e *RuntimeFault) Unwrap() error {
	return e.Err
}

// ExitCode maps a Run result to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var static *StaticError
	if errors.As(err, &static) {
		return ExitStatic
	}
	var fault *RuntimeFault
	if errors.As(err, &fault) {
		return ExitRuntime
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitNoInput
	}
	return ExitFailure
}

// New creates a session.
func New(opts Options) *Session {
	interp := interpreter.New()
	if opts.Stdout != nil {
		interp.SetOutput(opts.Stdout)
	}
	interp.SetMaxCallDepth(opts.MaxCallDepth)
	if opts.Clock != nil {
		interp.SetClock(opts.Clock)
	}
	return &Session{interp: interp}
}

// Interpreter exposes the underlying interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Check runs the static passes only and returns their diagnostics.
func (s *Session) Check(source, path string) []driver.Diagnostic {
	_, _, diags := analyze(source, path)
	return diags
}

// Run analyzes source and, only when no static diagnostic was reported,
// interprets it against the session's globals.
func (s *Session) Run(source, path string) error {
	statements, bindings, diags := analyze(source, path)
	if len(diags) > 0 {
		return &StaticError{Diagnostics: diags}
	}
	s.interp.Resolve(bindings)
	if err := s.interp.Interpret(statements); err != nil {
		return &RuntimeFault{Diagnostic: interpreter.BuildRuntimeDiagnostic(err, path), Err: err}
	}
	return nil
}

// RunFile reads and runs a source file.
func (s *Session) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Run(string(data), path)
}

// CheckFile reads a source file and returns its static diagnostics.
func (s *Session) CheckFile(path string) ([]driver.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Check(string(data), path), nil
}

// LoadPreludes runs each file in order. The first failure stops loading.
func (s *Session) LoadPreludes(paths []string) error {
	for _, path := range paths {
		if err := s.RunFile(path); err != nil {
			return fmt.Errorf("prelude %s: %w", path, err)
		}
	}
	return nil
}

// analyze scans and parses, and resolves only a syntactically clean program.
func analyze(source, path string) ([]ast.Statement, resolver.Bindings, []driver.Diagnostic) {
	var diags []driver.Diagnostic

	tokens, scanErrs := scanner.Scan(source)
	for _, err := range scanErrs {
		diags = append(diags, driver.Diagnostic{
			Severity: driver.SeverityError,
			Stage:    driver.StageScan,
			Message:  err.Message,
			Location: driver.DiagnosticLocation{Path: path, Line: err.Line},
		})
	}

	statements, parseErrs := parser.Parse(tokens)
	for _, err := range parseErrs {
		diags = append(diags, driver.Diagnostic{
			Severity: driver.SeverityError,
			Stage:    driver.StageParse,
			Message:  err.Message,
			Where:    err.Where(),
			Location: driver.DiagnosticLocation{Path: path, Line: err.Line()},
		})
	}
	if len(diags) > 0 {
		return nil, nil, diags
	}

	bindings, resolveErrs := resolver.Resolve(statements)
	for _, err := range resolveErrs {
		diags = append(diags, driver.Diagnostic{
			Severity: driver.SeverityError,
			Stage:    driver.StageResolve,
			Message:  err.Message,
			Where:    fmt.Sprintf(" at '%s'", err.Token.Lexeme),
			Location: driver.DiagnosticLocation{Path: path, Line: err.Token.Line},
		})
	}
	if len(diags) > 0 {
		return nil, nil, diags
	}
	return statements, bindings, nil
}
