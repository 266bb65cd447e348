package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateClassStatement(n *ast.ClassStatement, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if n.Superclass != nil {
		value, err := i.evaluateExpression(n.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := value.(*runtime.ClassValue)
		if !ok {
			return i.runtimeError(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(n.Name.Lexeme, runtime.Nil)

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(n.Methods))
	for _, method := range n.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &runtime.ClassValue{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}
	return env.Assign(n.Name.Lexeme, class)
}

func (i *Interpreter) evaluateGet(n *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, i.runtimeError(n.Name, "Only instances have properties.")
	}
	value, ok := instance.Get(n.Name.Lexeme)
	if !ok {
		return nil, i.runtimeError(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
	}
	return value, nil
}

// evaluateSuper finds the method on the superclass captured when the class
// was declared and binds it to the current `this`, which always lives one
// environment inside the `super` binding.
func (i *Interpreter) evaluateSuper(n *ast.SuperExpression, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[n.ID()]
	if !ok {
		return nil, i.runtimeError(n.Keyword, "Undefined variable 'super'.")
	}
	superValue, err := env.GetAt(distance, "super")
	if err != nil {
		return nil, i.runtimeError(n.Keyword, "Undefined variable 'super'.")
	}
	superclass, ok := superValue.(*runtime.ClassValue)
	if !ok {
		return nil, i.runtimeError(n.Keyword, "Superclass must be a class.")
	}
	thisValue, err := env.GetAt(distance-1, "this")
	if err != nil {
		return nil, i.runtimeError(n.Keyword, "Undefined variable 'this'.")
	}
	instance, ok := thisValue.(*runtime.InstanceValue)
	if !ok {
		return nil, i.runtimeError(n.Keyword, "Only instances have properties.")
	}
	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, i.runtimeError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
