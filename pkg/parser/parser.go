package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// maxArguments caps both call arguments and function parameters.
const maxArguments = 255

// Parser builds statements from a token stream. A Parser is single use.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*SyntaxError
}

// New creates a parser over tokens. The stream should end with an EOF token;
// one is appended when missing.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.New(token.EOF, "", nil, line))
	}
	return &Parser{tokens: tokens}
}

// Parse is a convenience wrapper around New(tokens).Parse().
func Parse(tokens []token.Token) ([]ast.Statement, []*SyntaxError) {
	return New(tokens).Parse()
}

// Parse consumes the whole stream. Declarations that fail to parse are
// dropped after their error is recorded, and parsing resumes at the next
// statement boundary. Callers must not execute the result when errors are
// returned.
func (p *Parser) Parse() ([]ast.Statement, []*SyntaxError) {
	statements := make([]ast.Statement, 0)
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errors
}

func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	switch {
	case p.match(token.Class):
		stmt, err = p.classDeclaration()
	case p.match(token.Fun):
		stmt, err = p.function("function")
	case p.match(token.Var):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize discards tokens until a likely statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// errorAt records a diagnostic and returns it so the caller can unwind to
// declaration(). Non-fatal reports ignore the return value.
func (p *Parser) errorAt(tok token.Token, message string) *SyntaxError {
	err := &SyntaxError{Token: tok, Message: message}
	p.errors = append(p.errors, err)
	return err
}
