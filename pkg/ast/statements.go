package ast

import "lox/interpreter-go/pkg/token"

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Statement
}

func NewBlockStatement(statements []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

// IfStatement has a nil Else when no else branch was written.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      Statement
	Else      Statement
}

func NewIfStatement(condition Expression, then, otherwise Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: otherwise}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      Statement
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

// ReturnStatement has a nil Value for a bare `return;`.
type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword token.Token
	Value   Expression
}

func NewReturnStatement(keyword token.Token, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

type VarStatement struct {
	nodeImpl
	statementMarker

	Name        token.Token
	Initializer Expression
}

func NewVarStatement(name token.Token, initializer Expression) *VarStatement {
	return &VarStatement{nodeImpl: newNodeImpl(NodeVarStatement), Name: name, Initializer: initializer}
}

type FunctionStatement struct {
	nodeImpl
	statementMarker

	Name   token.Token
	Params []token.Token
	Body   []Statement
}

func NewFunctionStatement(name token.Token, params []token.Token, body []Statement) *FunctionStatement {
	return &FunctionStatement{nodeImpl: newNodeImpl(NodeFunctionStatement), Name: name, Params: params, Body: body}
}

// ClassStatement has a nil Superclass when the class does not inherit.
type ClassStatement struct {
	nodeImpl
	statementMarker

	Name       token.Token
	Superclass *VariableExpression
	Methods    []*FunctionStatement
}

func NewClassStatement(name token.Token, superclass *VariableExpression, methods []*FunctionStatement) *ClassStatement {
	return &ClassStatement{nodeImpl: newNodeImpl(NodeClassStatement), Name: name, Superclass: superclass, Methods: methods}
}
