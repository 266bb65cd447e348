package ast

import "testing"

func TestNodeIdentityIsUnique(t *testing.T) {
	a := Var("x")
	b := Var("x")
	if a.ID() == b.ID() {
		t.Fatalf("structurally identical nodes share id %d", a.ID())
	}
	if a.ID() != a.ID() {
		t.Fatalf("node id is not stable")
	}
	if a.NodeType() != NodeVariableExpression {
		t.Fatalf("unexpected node type %s", a.NodeType())
	}
}

func TestMarkersPartitionNodes(t *testing.T) {
	var exprs []Expression = []Expression{Num(1), Var("a"), Assign("a", Nil()), Call(Var("f")), Get(This(), "x"), Set(This(), "x", Num(2)), Super("m")}
	for _, expr := range exprs {
		if _, ok := Node(expr).(Statement); ok {
			t.Fatalf("%s must not be a statement", expr.NodeType())
		}
	}
	var stmts []Statement = []Statement{Block(), Print(Num(1)), Let("a", nil), Ret(nil), Fn("f", nil), Class("A", "")}
	for _, stmt := range stmts {
		if _, ok := Node(stmt).(Expression); ok {
			t.Fatalf("%s must not be an expression", stmt.NodeType())
		}
	}
}

func TestClassHelperSuperclass(t *testing.T) {
	if Class("A", "").Superclass != nil {
		t.Fatalf("expected no superclass")
	}
	cls := Class("B", "A", Fn("init", []string{"x"}))
	if cls.Superclass == nil || cls.Superclass.Name.Lexeme != "A" {
		t.Fatalf("expected superclass A, got %#v", cls.Superclass)
	}
	if len(cls.Methods) != 1 || len(cls.Methods[0].Params) != 1 {
		t.Fatalf("unexpected methods %#v", cls.Methods)
	}
}
