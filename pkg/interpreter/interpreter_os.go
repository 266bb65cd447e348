package interpreter

import (
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) initBuiltins() {
	clockFn := runtime.NativeFunctionValue{
		Name:   "clock",
		Params: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			now := i.clock()
			return runtime.NumberValue{Val: float64(now.UnixNano()) / 1e9}, nil
		},
	}
	i.global.Define("clock", clockFn)
}
