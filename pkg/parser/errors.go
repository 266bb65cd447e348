package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// SyntaxError is a grammar violation tied to the token where it was found.
type SyntaxError struct {
	Token   token.Token
	Message string
}

// Line reports the source line of the offending token.
func (e *SyntaxError) Line() int {
	return e.Token.Line
}

// Where renders the location context: " at end" for EOF, " at 'lexeme'" otherwise.
func (e *SyntaxError) Where() string {
	if e.Token.Kind == token.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", e.Token.Lexeme)
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, e.Where(), e.Message)
}
