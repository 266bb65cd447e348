package interpreter

import (
	"math"
	"strconv"

	"lox/interpreter-go/pkg/runtime"
)

// stringify renders a value the way print shows it.
func stringify(value runtime.Value) string {
	switch v := value.(type) {
	case nil, runtime.NilValue:
		return "nil"
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case *runtime.FunctionValue:
		return "<fn " + v.Name() + ">"
	case runtime.NativeFunctionValue:
		return "<native fn>"
	case *runtime.ClassValue:
		return v.Name
	case *runtime.InstanceValue:
		return v.Class.Name + " instance"
	default:
		return "<" + value.Kind().String() + ">"
	}
}

// formatNumber prints integral values without a fractional part.
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

