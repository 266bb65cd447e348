package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// evaluateCall evaluates the callee, then every argument left to right, and
// only then checks that the callee is callable with that many arguments.
func (i *Interpreter) evaluateCall(n *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, argExpr := range n.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, i.runtimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, i.runtimeError(n.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return i.callCallableValue(callable, args, n.Paren)
}

func (i *Interpreter) callCallableValue(callee runtime.Callable, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(fn, args, paren)
	case runtime.NativeFunctionValue:
		result, err := fn.Impl(&runtime.NativeCallContext{Env: i.global, State: i}, args)
		if err != nil {
			if _, ok := err.(*RuntimeError); ok {
				return nil, err
			}
			return nil, i.runtimeError(paren, "%s", err.Error())
		}
		if result == nil {
			result = runtime.Nil
		}
		return result, nil
	case *runtime.ClassValue:
		instance := runtime.NewInstance(fn)
		if init, ok := fn.FindMethod("init"); ok {
			if _, err := i.callFunction(init.Bind(instance), args, paren); err != nil {
				return nil, err
			}
		}
		return instance, nil
	default:
		return nil, i.runtimeError(paren, "Can only call functions and classes.")
	}
}

// callFunction runs the body in a fresh environment whose parent is the
// closure, not the caller. Initializers always yield their bound instance.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	if len(i.callStack) >= i.maxCallDepth {
		return nil, i.runtimeError(paren, "Stack overflow.")
	}
	i.callStack = append(i.callStack, callFrame{callee: fn.Name(), paren: paren})
	defer func() { i.callStack = i.callStack[:len(i.callStack)-1] }()

	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(fn.Declaration.Body, env)
	var result runtime.Value = runtime.Nil
	if err != nil {
		ret, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		result = ret.value
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	return result, nil
}
