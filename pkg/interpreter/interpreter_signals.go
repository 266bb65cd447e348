package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// returnSignal unwinds to the nearest call boundary. It is never reported.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}

type callFrame struct {
	callee string
	paren  token.Token
}

// RuntimeError is a fault raised while evaluating. Token attributes the
// fault to a source line.
type RuntimeError struct {
	Token   token.Token
	Message string

	callStack []callFrame
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// Line reports the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line
}

func (i *Interpreter) runtimeError(tok token.Token, format string, args ...any) *RuntimeError {
	stack := make([]callFrame, len(i.callStack))
	copy(stack, i.callStack)
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...), callStack: stack}
}
