package runtime

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
)

func TestKindString(t *testing.T) {
	if KindInstance.String() != "instance" || Kind(42).String() != "unknown_kind_42" {
		t.Fatalf("unexpected kind names")
	}
	if (Nil).Kind() != KindNil || (NumberValue{}).Kind() != KindNumber {
		t.Fatalf("unexpected scalar kinds")
	}
}

func TestClassMethodLookupAndArity(t *testing.T) {
	globals := NewEnvironment(nil)
	base := &ClassValue{Name: "A", Methods: map[string]*FunctionValue{
		"init":  {Declaration: ast.Fn("init", []string{"a", "b"}), Closure: globals, IsInitializer: true},
		"greet": {Declaration: ast.Fn("greet", nil), Closure: globals},
	}}
	derived := &ClassValue{Name: "B", Superclass: base, Methods: map[string]*FunctionValue{}}

	if derived.Arity() != 2 {
		t.Fatalf("expected inherited init arity 2, got %d", derived.Arity())
	}
	if _, ok := derived.FindMethod("greet"); !ok {
		t.Fatalf("expected greet to be inherited")
	}
	if _, ok := derived.FindMethod("missing"); ok {
		t.Fatalf("unexpected method")
	}
	empty := &ClassValue{Name: "C", Methods: map[string]*FunctionValue{}}
	if empty.Arity() != 0 {
		t.Fatalf("expected zero arity without init")
	}
}

func TestInstanceFieldsShadowMethods(t *testing.T) {
	globals := NewEnvironment(nil)
	class := &ClassValue{Name: "A", Methods: map[string]*FunctionValue{
		"m": {Declaration: ast.Fn("m", nil), Closure: globals},
	}}
	inst := NewInstance(class)

	method, ok := inst.Get("m")
	if !ok {
		t.Fatalf("expected method lookup to succeed")
	}
	bound, ok := method.(*FunctionValue)
	if !ok {
		t.Fatalf("expected bound function, got %T", method)
	}
	if this, err := bound.Closure.Get("this"); err != nil || this != Value(inst) {
		t.Fatalf("bound method must define this, got %#v (%v)", this, err)
	}
	if bound.Closure.Parent() != globals {
		t.Fatalf("bound closure must wrap the method closure")
	}

	inst.Set("m", StringValue{Val: "field"})
	if got, _ := inst.Get("m"); got != (StringValue{Val: "field"}) {
		t.Fatalf("expected field to shadow method, got %#v", got)
	}
	if _, ok := inst.Get("nope"); ok {
		t.Fatalf("unexpected property")
	}
}
