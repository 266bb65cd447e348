package interpreter

import (
	"io"
	"os"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested calls before "Stack overflow." is raised.
const DefaultMaxCallDepth = 4096

// Interpreter evaluates statements against a single global environment. It
// may be reused across Interpret calls (the REPL does this); bindings from
// each resolution are merged in with Resolve.
type Interpreter struct {
	global       *runtime.Environment
	locals       resolver.Bindings
	out          io.Writer
	clock        func() time.Time
	maxCallDepth int
	callStack    []callFrame
}

// New returns an interpreter with the builtins installed.
func New() *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		locals:       make(resolver.Bindings),
		out:          os.Stdout,
		clock:        time.Now,
		maxCallDepth: DefaultMaxCallDepth,
	}
	i.initBuiltins()
	return i
}

// SetOutput redirects print statements.
func (i *Interpreter) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	i.out = w
}

// SetMaxCallDepth changes the call depth limit; non-positive restores the default.
func (i *Interpreter) SetMaxCallDepth(depth int) {
	if depth <= 0 {
		depth = DefaultMaxCallDepth
	}
	i.maxCallDepth = depth
}

// SetClock replaces the time source used by the clock builtin.
func (i *Interpreter) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	i.clock = clock
}

// GlobalEnvironment exposes the global scope.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Resolve merges a binding table produced by the resolver.
func (i *Interpreter) Resolve(bindings resolver.Bindings) {
	for id, depth := range bindings {
		i.locals[id] = depth
	}
}

// Interpret executes statements in order. The first runtime fault stops the
// run and is returned as a *RuntimeError; no later statement executes.
func (i *Interpreter) Interpret(statements []ast.Statement) error {
	i.callStack = i.callStack[:0]
	for _, stmt := range statements {
		if err := i.evaluateStatement(stmt, i.global); err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil
			}
			return err
		}
	}
	return nil
}
