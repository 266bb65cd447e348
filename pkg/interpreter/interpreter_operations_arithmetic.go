package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateUnary(n *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.Minus:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, i.runtimeError(n.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case token.Bang:
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	}
	return nil, i.runtimeError(n.Operator, "Unsupported unary operator %s.", n.Operator.Lexeme)
}

// evaluateBinary evaluates both operands before checking their types.
func (i *Interpreter) evaluateBinary(n *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	case token.Plus:
		return i.evaluatePlus(n.Operator, left, right)
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return i.evaluateComparison(n.Operator, left, right)
	}

	l, r, err := i.numberOperands(n.Operator, left, right)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		return runtime.NumberValue{Val: l / r}, nil
	}
	return nil, i.runtimeError(n.Operator, "Unsupported binary operator %s.", n.Operator.Lexeme)
}

// evaluatePlus adds two numbers or concatenates two strings; mixed operands fault.
func (i *Interpreter) evaluatePlus(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	return nil, i.runtimeError(op, "Operands must be two numbers or two strings.")
}

func (i *Interpreter) numberOperands(op token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, i.runtimeError(op, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}
