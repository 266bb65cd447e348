package interpreter

import (
	"strings"
	"testing"
	"time"

	"lox/interpreter-go/pkg/runtime"
)

func TestArithmeticAndPrecedence(t *testing.T) {
	expectOutput(t, "print 1 + 2 * 3; print (1 + 2) * 3; print 10 / 4; print -3 - -1; print 8 - 4 - 2;",
		"7", "9", "2.5", "-2", "2")
}

func TestStringConcatenation(t *testing.T) {
	expectOutput(t, `var a = "foo"; var b = "bar"; print a + b;`, "foobar")
}

func TestPlusRejectsMixedOperands(t *testing.T) {
	expectRuntimeError(t, `print "a" + 1;`, "Operands must be two numbers or two strings.", 1)
}

func TestOperandTypeFaults(t *testing.T) {
	expectRuntimeError(t, `print -"x";`, "Operand must be a number.", 1)
	expectRuntimeError(t, "print 1 < \"2\";", "Operands must be numbers.", 1)
	expectRuntimeError(t, "\nprint nil * 2;", "Operands must be numbers.", 2)
}

func TestTruthinessAndEquality(t *testing.T) {
	expectOutput(t, `print !!0; print !nil; print !""; print nil == nil; print 1 == "1"; print "a" == "a"; print 2 != 3;`,
		"true", "true", "false", "true", "false", "true", "true")
}

func TestLogicalShortCircuitReturnsOperand(t *testing.T) {
	expectOutput(t, `print nil or "yes"; print 0 and "second"; print false and undefinedName; print "first" or undefinedName;`,
		"yes", "second", "false", "first")
}

func TestNumberFormatting(t *testing.T) {
	expectOutput(t, "print 3.0; print 0.1 + 0.2; print 1 / 0; print -1 / 0; print 1000000;",
		"3", "0.30000000000000004", "Infinity", "-Infinity", "1000000")
}

func TestControlFlow(t *testing.T) {
	expectOutput(t, `
var total = 0;
for (var i = 0; i < 5; i = i + 1) {
  if (i == 2) total = total + 10; else total = total + i;
}
print total;
var n = 3;
while (n > 0) n = n - 1;
print n;
`, "18", "0")
}

func TestBlockShadowing(t *testing.T) {
	expectOutput(t, `
var a = "global";
{
  var a = "outer";
  {
    var a = "inner";
    print a;
  }
  print a;
}
print a;
`, "inner", "outer", "global")
}

func TestClosuresHaveIndependentState(t *testing.T) {
	expectOutput(t, `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    return i;
  }
  return count;
}
var a = makeCounter();
var b = makeCounter();
print a();
print a();
print b();
print a();
`, "1", "2", "1", "3")
}

func TestClosuresShareCapturedEnvironment(t *testing.T) {
	expectOutput(t, `
var get;
var set;
{
  var value = "before";
  fun g() { return value; }
  fun s(v) { value = v; }
  get = g;
  set = s;
}
set("after");
print get();
`, "after")
}

func TestStaticBindingIgnoresLaterShadow(t *testing.T) {
	expectOutput(t, `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "block";
  show();
}
`, "global", "global")
}

func TestRecursionAndReturn(t *testing.T) {
	expectOutput(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(15);
fun early() {
  while (true) { return "out"; }
}
print early();
fun none() {}
print none();
`, "610", "out", "nil")
}

func TestCallableStringification(t *testing.T) {
	expectOutput(t, `fun f() {} class C {} print f; print clock; print C; print C();`,
		"<fn f>", "<native fn>", "C", "C instance")
}

func TestArityFault(t *testing.T) {
	expectRuntimeError(t, "fun f(a, b) {}\nf(1);", "Expected 2 arguments but got 1.", 2)
	expectRuntimeError(t, "class P { init(x) {} }\nP();", "Expected 1 arguments but got 0.", 2)
	expectRuntimeError(t, "class Q {}\nQ(1);", "Expected 0 arguments but got 1.", 2)
}

func TestCallingNonCallable(t *testing.T) {
	expectRuntimeError(t, `"text"();`, "Can only call functions and classes.", 1)
}

func TestUndefinedVariableHaltsRun(t *testing.T) {
	out := expectRuntimeError(t, "print 1;\nprint missing;\nprint 3;", "Undefined variable 'missing'.", 2)
	if strings.Join(out, ",") != "1" {
		t.Fatalf("expected only output before the fault, got %v", out)
	}
	expectRuntimeError(t, "missing = 1;", "Undefined variable 'missing'.", 1)
}

func TestClassesFieldsAndMethods(t *testing.T) {
	expectOutput(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
  }
  sum() { return this.x + this.y; }
}
var p = Point(1, 2);
print p.sum();
p.x = 10;
print p.sum();
var m = p.sum;
p.y = 5;
print m();
`, "3", "12", "15")
}

func TestFieldsShadowMethods(t *testing.T) {
	expectOutput(t, `
class A { m() { return "method"; } }
var a = A();
print a.m();
a.m = "field";
print a.m;
`, "method", "field")
}

func TestBoundMethodKeepsReceiver(t *testing.T) {
	expectOutput(t, `
class Person {
  init(name) { this.name = name; }
  hello() { return "hi " + this.name; }
}
var jane = Person("jane");
var bill = Person("bill");
bill.hello = jane.hello;
print bill.hello();
`, "hi jane")
}

func TestInitializerReturnsInstance(t *testing.T) {
	expectOutput(t, `
class Foo {
  init() {
    this.ready = true;
    return;
  }
}
var foo = Foo();
print foo.init();
print foo.init() == foo;
print foo.ready;
`, "Foo instance", "true", "true")
}

func TestInheritanceAndSuper(t *testing.T) {
	expectOutput(t, `
class A {
  method() { return "A"; }
  name() { return "A name"; }
}
class B < A {
  method() { return super.method() + "B"; }
}
class C < B {}
print B().method();
print C().method();
print C().name();
`, "AB", "AB", "A name")
}

func TestSuperBindsToDeclaringClass(t *testing.T) {
	expectOutput(t, `
class A { say() { print "A"; } }
class B < A { test() { super.say(); } say() { print "B"; } }
class C < B { say() { print "C"; } }
C().test();
`, "A")
}

func TestInheritedInitializer(t *testing.T) {
	expectOutput(t, `
class Base { init(v) { this.v = v; } }
class Derived < Base {}
print Derived(7).v;
`, "7")
}

func TestPropertyFaults(t *testing.T) {
	expectRuntimeError(t, "var x = 1;\nprint x.y;", "Only instances have properties.", 2)
	expectRuntimeError(t, "var x = 1;\nx.y = 2;", "Only instances have fields.", 2)
	expectRuntimeError(t, "class A {}\nprint A().missing;", "Undefined property 'missing'.", 2)
	expectRuntimeError(t, "class A {}\nclass B < A { m() { return super.nope(); } }\nB().m();", "Undefined property 'nope'.", 2)
}

func TestSuperclassMustBeClass(t *testing.T) {
	expectRuntimeError(t, "var NotClass = 1;\nclass B < NotClass {}", "Superclass must be a class.", 2)
}

func TestStackOverflow(t *testing.T) {
	interp := New()
	interp.SetMaxCallDepth(64)
	_, err := runSource(t, interp, "fun loop() { loop(); }\nloop();")
	rtErr, ok := err.(*RuntimeError)
	if !ok || rtErr.Message != "Stack overflow." {
		t.Fatalf("expected stack overflow, got %v", err)
	}
	if len(rtErr.callStack) != 64 {
		t.Fatalf("expected 64 frames at the fault, got %d", len(rtErr.callStack))
	}
}

func TestInterpreterIsReusable(t *testing.T) {
	interp := New()
	if _, err := runSource(t, interp, "var count = 1; fun bump() { count = count + 1; }"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := runSource(t, interp, "print missing;"); err == nil {
		t.Fatalf("expected fault")
	}
	out, err := runSource(t, interp, "bump(); print count;")
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if strings.Join(out, ",") != "2" {
		t.Fatalf("expected globals to persist, got %v", out)
	}
}

func TestRunningTwiceIsIdempotent(t *testing.T) {
	source := "var a = 1; { var b = a + 1; print b; }"
	first, err := runSource(t, New(), source)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := runSource(t, New(), source)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Fatalf("runs disagree: %v vs %v", first, second)
	}
}

func TestClockBuiltin(t *testing.T) {
	interp := New()
	interp.SetClock(func() time.Time { return time.Unix(1500, 500_000_000) })
	out, err := runSource(t, interp, "print clock();")
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if len(out) != 1 || out[0] != "1500.5" {
		t.Fatalf("unexpected clock output %v", out)
	}
	value, err := interp.GlobalEnvironment().Get("clock")
	if err != nil {
		t.Fatalf("clock lookup: %v", err)
	}
	if fn, ok := value.(runtime.NativeFunctionValue); !ok || fn.Arity() != 0 {
		t.Fatalf("expected zero-arity native, got %#v", value)
	}
}

func TestRuntimeDiagnosticsFormatting(t *testing.T) {
	_, err := runSource(t, New(), "fun inner() {\n  return nil + 1;\n}\nfun outer() {\n  inner();\n}\nouter();")
	diag := BuildRuntimeDiagnostic(err, "main.lox")
	if diag.Message != "Operands must be two numbers or two strings." {
		t.Fatalf("unexpected message %q", diag.Message)
	}
	if diag.Location.Line != 2 || diag.Location.Path != "main.lox" {
		t.Fatalf("unexpected location %+v", diag.Location)
	}
	if len(diag.Notes) != 2 {
		t.Fatalf("expected 2 call notes, got %+v", diag.Notes)
	}
	want := strings.Join([]string{
		"Operands must be two numbers or two strings.",
		"main.lox: [line 2]",
		"note: main.lox: [line 5] in inner() called from here",
		"note: main.lox: [line 7] in outer() called from here",
	}, "\n")
	if got := DescribeRuntimeDiagnostic(diag); got != want {
		t.Fatalf("unexpected description\nexpected: %q\n     got: %q", want, got)
	}
}

func TestRuntimeErrorText(t *testing.T) {
	_, err := runSource(t, New(), "\n\nprint -nil;")
	if err == nil || err.Error() != "Operand must be a number.\n[line 3]" {
		t.Fatalf("unexpected error text %v", err)
	}
}
