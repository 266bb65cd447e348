package runtime

import (
	"errors"
	"reflect"
	"testing"
)

func TestEnvironmentDefineShadowAndAssign(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	inner := NewEnvironment(global)
	inner.Define("b", StringValue{Val: "x"})

	if err := inner.Assign("a", NumberValue{Val: 2}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	got, err := global.Get("a")
	if err != nil || got != (NumberValue{Val: 2}) {
		t.Fatalf("expected assignment to reach the global scope, got %#v (%v)", got, err)
	}

	inner.Define("a", BoolValue{Val: true})
	if got, _ := inner.Get("a"); got != (BoolValue{Val: true}) {
		t.Fatalf("expected shadowed binding, got %#v", got)
	}
	if got, _ := global.Get("a"); got != (NumberValue{Val: 2}) {
		t.Fatalf("shadowing must not touch the parent, got %#v", got)
	}
}

func TestEnvironmentUndefined(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))
	_, err := env.Get("missing")
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "missing" {
		t.Fatalf("expected undefined variable error, got %v", err)
	}
	if err.Error() != "Undefined variable 'missing'." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := env.Assign("missing", Nil); err == nil {
		t.Fatalf("expected assign to an unbound name to fail")
	}
}

func TestEnvironmentDistanceAccess(t *testing.T) {
	root := NewEnvironment(nil)
	mid := NewEnvironment(root)
	leaf := NewEnvironment(mid)
	root.Define("x", NumberValue{Val: 1})
	mid.Define("x", NumberValue{Val: 2})

	if leaf.Ancestor(2) != root || leaf.Ancestor(0) != leaf || leaf.Parent() != mid {
		t.Fatalf("ancestor chain is wrong")
	}
	if got, _ := leaf.GetAt(2, "x"); got != (NumberValue{Val: 1}) {
		t.Fatalf("expected root binding, got %#v", got)
	}
	if got, _ := leaf.GetAt(1, "x"); got != (NumberValue{Val: 2}) {
		t.Fatalf("expected mid binding, got %#v", got)
	}
	if _, err := leaf.GetAt(0, "x"); err == nil {
		t.Fatalf("GetAt must not search outward")
	}
	leaf.AssignAt(2, "x", NumberValue{Val: 9})
	if got, _ := root.Get("x"); got != (NumberValue{Val: 9}) {
		t.Fatalf("expected AssignAt to update the root, got %#v", got)
	}
	if !mid.HasInCurrentScope("x") || leaf.HasInCurrentScope("x") {
		t.Fatalf("HasInCurrentScope mismatch")
	}
	if keys := root.Keys(); !reflect.DeepEqual(keys, []string{"x"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
}
