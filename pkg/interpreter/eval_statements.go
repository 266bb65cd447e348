package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.PrintStatement:
		value, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.out, stringify(value))
		return err
	case *ast.VarStatement:
		var value runtime.Value = runtime.Nil
		if n.Initializer != nil {
			v, err := i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return err
			}
			value = v
		}
		env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.BlockStatement:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.evaluateStatement(n.Then, env)
		}
		if n.Else != nil {
			return i.evaluateStatement(n.Else, env)
		}
		return nil
	case *ast.WhileStatement:
		for {
			cond, err := i.evaluateExpression(n.Condition, env)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := i.evaluateStatement(n.Body, env); err != nil {
				return err
			}
		}
	case *ast.FunctionStatement:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return nil
	case *ast.ReturnStatement:
		var value runtime.Value = runtime.Nil
		if n.Value != nil {
			v, err := i.evaluateExpression(n.Value, env)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	case *ast.ClassStatement:
		return i.evaluateClassStatement(n, env)
	default:
		return fmt.Errorf("unsupported statement %T", node)
	}
}

// executeBlock runs statements in env, which the caller has already created.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range statements {
		if err := i.evaluateStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}
