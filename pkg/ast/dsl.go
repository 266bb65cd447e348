package ast

import "lox/interpreter-go/pkg/token"

// Token helpers. Line numbers default to 1.

func Tok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, nil, 1)
}

func Name(name string) token.Token {
	return token.New(token.Identifier, name, nil, 1)
}

func Op(kind token.Kind, lexeme string) token.Token {
	return Tok(kind, lexeme)
}

// Expression helpers.

func Num(value float64) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Str(value string) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Bool(value bool) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Nil() *LiteralExpression {
	return NewLiteralExpression(nil)
}

func Var(name string) *VariableExpression {
	return NewVariableExpression(Name(name))
}

func Assign(name string, value Expression) *AssignExpression {
	return NewAssignExpression(Name(name), value)
}

func Bin(left Expression, kind token.Kind, lexeme string, right Expression) *BinaryExpression {
	return NewBinaryExpression(left, Op(kind, lexeme), right)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, Tok(token.RightParen, ")"), args)
}

func Get(object Expression, name string) *GetExpression {
	return NewGetExpression(object, Name(name))
}

func Set(object Expression, name string, value Expression) *SetExpression {
	return NewSetExpression(object, Name(name), value)
}

func This() *ThisExpression {
	return NewThisExpression(Tok(token.This, "this"))
}

func Super(method string) *SuperExpression {
	return NewSuperExpression(Tok(token.Super, "super"), Name(method))
}

// Statement helpers.

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Let(name string, initializer Expression) *VarStatement {
	return NewVarStatement(Name(name), initializer)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(Tok(token.Return, "return"), value)
}

func Fn(name string, params []string, body ...Statement) *FunctionStatement {
	tokens := make([]token.Token, len(params))
	for i, param := range params {
		tokens[i] = Name(param)
	}
	return NewFunctionStatement(Name(name), tokens, body)
}

func Class(name string, superclass string, methods ...*FunctionStatement) *ClassStatement {
	var super *VariableExpression
	if superclass != "" {
		super = Var(superclass)
	}
	return NewClassStatement(Name(name), super, methods)
}
