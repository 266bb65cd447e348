package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.LiteralExpression:
		return literalValue(n.Value), nil
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Expression, env)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n, env)
	case *ast.VariableExpression:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.AssignExpression:
		return i.evaluateAssignment(n, env)
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.GetExpression:
		return i.evaluateGet(n, env)
	case *ast.SetExpression:
		return i.evaluateSet(n, env)
	case *ast.ThisExpression:
		return i.lookUpVariable(n.Keyword, n, env)
	case *ast.SuperExpression:
		return i.evaluateSuper(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression %T", node)
	}
}

func literalValue(value any) runtime.Value {
	switch v := value.(type) {
	case nil:
		return runtime.Nil
	case bool:
		return runtime.BoolValue{Val: v}
	case float64:
		return runtime.NumberValue{Val: v}
	case string:
		return runtime.StringValue{Val: v}
	default:
		return runtime.Nil
	}
}

// lookUpVariable reads a resolved local at its recorded distance, or a
// global by name when the resolver left the reference unbound.
func (i *Interpreter) lookUpVariable(name token.Token, node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	var (
		value runtime.Value
		err   error
	)
	if distance, ok := i.locals[node.ID()]; ok {
		value, err = env.GetAt(distance, name.Lexeme)
	} else {
		value, err = i.global.Get(name.Lexeme)
	}
	if err != nil {
		return nil, i.runtimeError(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateLogical(n *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(n.Right, env)
}
