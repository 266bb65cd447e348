package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/scanner"
)

// runSource pushes source through the full static pipeline and interprets
// it, returning printed lines and the runtime error, if any.
func runSource(t *testing.T, interp *Interpreter, source string) ([]string, error) {
	t.Helper()
	tokens, scanErrs := scanner.Scan(source)
	if len(scanErrs) != 0 {
		t.Fatalf("scan errors: %v", scanErrs)
	}
	stmts, parseErrs := parser.Parse(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	bindings, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) != 0 {
		t.Fatalf("resolve errors: %v", resolveErrs)
	}
	var out bytes.Buffer
	interp.SetOutput(&out)
	interp.Resolve(bindings)
	err := interp.Interpret(stmts)
	text := strings.TrimSuffix(out.String(), "\n")
	if text == "" {
		return nil, err
	}
	return strings.Split(text, "\n"), err
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	got, err := runSource(t, New(), source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("output mismatch\nexpected: %q\n     got: %q", want, got)
	}
}

func expectRuntimeError(t *testing.T, source string, message string, line int) []string {
	t.Helper()
	got, err := runSource(t, New(), source)
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected runtime error %q, got %v", message, err)
	}
	if rtErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, rtErr.Message)
	}
	if rtErr.Line() != line {
		t.Fatalf("expected fault on line %d, got %d", line, rtErr.Line())
	}
	return got
}
