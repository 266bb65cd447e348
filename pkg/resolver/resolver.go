package resolver

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Bindings maps a variable-referencing node to the number of environment
// hops between its use and its declaration. Globals are absent.
type Bindings map[ast.NodeID]int

// Error is a static scoping fault. Resolution continues past it.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	where := fmt.Sprintf(" at '%s'", e.Token.Lexeme)
	if e.Token.Kind == token.EOF {
		where = " at end"
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, where, e.Message)
}

type functionType int

const (
	functionNone functionType = iota
	functionPlain
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classPlain
	classSubclass
)

// scope tracks declared (false) versus defined (true) names.
type scope map[string]bool

type resolver struct {
	scopes   []scope
	bindings Bindings
	errors   []*Error
	function functionType
	class    classType
}

// Resolve walks the program once and returns the binding table plus any
// diagnostics. The interpreter must not run a program with diagnostics.
func Resolve(statements []ast.Statement) (Bindings, []*Error) {
	r := &resolver{bindings: make(Bindings)}
	r.resolveStatements(statements)
	return r.bindings, r.errors
}

func (r *resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.ClassStatement:
		r.resolveClass(s)
	case *ast.VarStatement:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStatement:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionPlain)
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *ast.PrintStatement:
		r.resolveExpression(s.Expression)
	case *ast.ReturnStatement:
		if r.function == functionNone {
			r.report(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.function == functionInitializer {
				r.report(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	}
}

func (r *resolver) resolveClass(s *ast.ClassStatement) {
	enclosing := r.class
	r.class = classPlain
	defer func() { r.class = enclosing }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.report(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.class = classSubclass
		r.resolveExpression(s.Superclass)
		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStatement, kind functionType) {
	enclosing := r.function
	r.function = kind
	defer func() { r.function = enclosing }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()
}

func (r *resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.VariableExpression:
		if len(r.scopes) > 0 {
			if defined, declared := r.peekScope()[e.Name.Lexeme]; declared && !defined {
				r.report(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.AssignExpression:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.CallExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.GetExpression:
		r.resolveExpression(e.Object)
	case *ast.SetExpression:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.GroupingExpression:
		r.resolveExpression(e.Expression)
	case *ast.UnaryExpression:
		r.resolveExpression(e.Operand)
	case *ast.ThisExpression:
		if r.class == classNone {
			r.report(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.SuperExpression:
		switch r.class {
		case classNone:
			r.report(e.Keyword, "Can't use 'super' outside of a class.")
		case classPlain:
			r.report(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.LiteralExpression:
	}
}

// resolveLocal records the distance to the innermost scope declaring name.
// Names not found in any scope are left to global lookup.
func (r *resolver) resolveLocal(node ast.Node, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.bindings[node.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.peekScope()
	if _, exists := current[name.Lexeme]; exists {
		r.report(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *resolver) report(tok token.Token, message string) {
	r.errors = append(r.errors, &Error{Token: tok, Message: message})
}
