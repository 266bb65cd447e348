package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateAssignment(n *ast.AssignExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[n.ID()]; ok {
		env.AssignAt(distance, n.Name.Lexeme, value)
		return value, nil
	}
	if err := i.global.Assign(n.Name.Lexeme, value); err != nil {
		return nil, i.runtimeError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateSet(n *ast.SetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, i.runtimeError(n.Name, "Only instances have fields.")
	}
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name.Lexeme, value)
	return value, nil
}
