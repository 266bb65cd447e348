package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

func newTestSession() (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return New(Options{Stdout: &out}), &out
}

func TestRunSuccess(t *testing.T) {
	s, out := newTestSession()
	err := s.Run("class A { method() { return \"A\"; } }\nclass B < A { method() { return super.method() + \"B\"; } }\nprint B().method();", "main.lox")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "AB\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if ExitCode(err) != ExitOK {
		t.Fatalf("expected exit 0")
	}
}

func TestRunStaticErrorsSkipExecution(t *testing.T) {
	s, out := newTestSession()
	err := s.Run("print \"side effect\";\nvar = 1;\nprint 2", "bad.lox")
	var static *StaticError
	if !errors.As(err, &static) {
		t.Fatalf("expected static error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing may run when parsing fails, got %q", out.String())
	}
	if len(static.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %+v", static.Diagnostics)
	}
	want := "bad.lox: [line 2] Error at '=': Expect variable name.\nbad.lox: [line 3] Error at end: Expect ';' after value."
	if static.Error() != want {
		t.Fatalf("unexpected report\nexpected: %q\n     got: %q", want, static.Error())
	}
	if ExitCode(err) != ExitStatic {
		t.Fatalf("expected static exit code, got %d", ExitCode(err))
	}
}

func TestRunResolverErrorsSkipExecution(t *testing.T) {
	s, out := newTestSession()
	err := s.Run("print 1;\nreturn 2;", "")
	var static *StaticError
	if !errors.As(err, &static) || static.Diagnostics[0].Stage != driver.StageResolve {
		t.Fatalf("expected resolver diagnostic, got %v", err)
	}
	if static.Error() != "[line 2] Error at 'return': Can't return from top-level code." {
		t.Fatalf("unexpected report %q", static.Error())
	}
	if out.Len() != 0 {
		t.Fatalf("nothing may run when resolution fails")
	}
}

func TestRunScanErrors(t *testing.T) {
	s, _ := newTestSession()
	err := s.Run("print 1 @ 2;", "")
	var static *StaticError
	if !errors.As(err, &static) {
		t.Fatalf("expected static error, got %v", err)
	}
	if static.Diagnostics[0].Stage != driver.StageScan || static.Diagnostics[0].Message != "Unexpected character." {
		t.Fatalf("unexpected first diagnostic %+v", static.Diagnostics[0])
	}
}

func TestRunRuntimeFault(t *testing.T) {
	s, out := newTestSession()
	err := s.Run("print \"before\";\nprint \"a\" + 1;\nprint \"after\";", "main.lox")
	var fault *RuntimeFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected runtime fault, got %v", err)
	}
	if out.String() != "before\n" {
		t.Fatalf("expected the run to stop at the fault, got %q", out.String())
	}
	if fault.Error() != "Operands must be two numbers or two strings.\nmain.lox: [line 2]" {
		t.Fatalf("unexpected report %q", fault.Error())
	}
	var rtErr *interpreter.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Line() != 2 {
		t.Fatalf("expected wrapped runtime error, got %v", err)
	}
	if ExitCode(err) != ExitRuntime {
		t.Fatalf("expected runtime exit code, got %d", ExitCode(err))
	}
}

func TestSessionKeepsGlobalsAcrossRuns(t *testing.T) {
	s, out := newTestSession()
	for _, line := range []string{"var a = 1;", "fun inc() { a = a + 1; }", "inc();", "print a;"} {
		if err := s.Run(line, ""); err != nil {
			t.Fatalf("Run(%q): %v", line, err)
		}
	}
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunFileAndPreludes(t *testing.T) {
	dir := t.TempDir()
	prelude := filepath.Join(dir, "prelude.lox")
	main := filepath.Join(dir, "main.lox")
	if err := os.WriteFile(prelude, []byte("fun greet(name) { return \"hello \" + name; }"), 0o644); err != nil {
		t.Fatalf("write prelude: %v", err)
	}
	if err := os.WriteFile(main, []byte("print greet(\"lox\");"), 0o644); err != nil {
		t.Fatalf("write main: %v", err)
	}
	s, out := newTestSession()
	if err := s.LoadPreludes([]string{prelude}); err != nil {
		t.Fatalf("LoadPreludes: %v", err)
	}
	if err := s.RunFile(main); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if strings.TrimSpace(out.String()) != "hello lox" {
		t.Fatalf("unexpected output %q", out.String())
	}

	err := s.RunFile(filepath.Join(dir, "missing.lox"))
	if ExitCode(err) != ExitNoInput {
		t.Fatalf("expected no-input exit code, got %d (%v)", ExitCode(err), err)
	}
	err = s.LoadPreludes([]string{filepath.Join(dir, "missing.lox")})
	if err == nil || !strings.Contains(err.Error(), "prelude") {
		t.Fatalf("expected prelude error, got %v", err)
	}
}

func TestCheckDoesNotExecute(t *testing.T) {
	s, out := newTestSession()
	if diags := s.Check("print 1;", ""); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if out.Len() != 0 {
		t.Fatalf("check must not execute")
	}
	diags := s.Check("{ var a = a; }", "")
	if len(diags) != 1 || diags[0].Message != "Can't read local variable in its own initializer." {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestMaxCallDepthOption(t *testing.T) {
	s := New(Options{Stdout: &bytes.Buffer{}, MaxCallDepth: 10})
	err := s.Run("fun r(n) { return r(n + 1); }\nr(0);", "")
	var fault *RuntimeFault
	if !errors.As(err, &fault) || fault.Diagnostic.Message != "Stack overflow." {
		t.Fatalf("expected stack overflow, got %v", err)
	}
}
