package interpreter

import (
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateComparison(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := i.numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	var result bool
	switch op.Kind {
	case token.Greater:
		result = l > r
	case token.GreaterEqual:
		result = l >= r
	case token.Less:
		result = l < r
	case token.LessEqual:
		result = l <= r
	}
	return runtime.BoolValue{Val: result}, nil
}

// isTruthy treats nil and false as false and everything else as true.
func isTruthy(value runtime.Value) bool {
	switch v := value.(type) {
	case nil, runtime.NilValue:
		return false
	case runtime.BoolValue:
		return v.Val
	default:
		return true
	}
}

// valuesEqual never coerces: values of different kinds are unequal, and
// functions, classes and instances compare by identity.
func valuesEqual(left, right runtime.Value) bool {
	switch l := left.(type) {
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.NativeFunctionValue:
		r, ok := right.(runtime.NativeFunctionValue)
		return ok && l.Name == r.Name
	case *runtime.FunctionValue:
		r, ok := right.(*runtime.FunctionValue)
		return ok && l == r
	case *runtime.ClassValue:
		r, ok := right.(*runtime.ClassValue)
		return ok && l == r
	case *runtime.InstanceValue:
		r, ok := right.(*runtime.InstanceValue)
		return ok && l == r
	default:
		return false
	}
}
