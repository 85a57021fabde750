package interpreter

import (
	"math"
	"testing"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func evalModule(t *testing.T, module *ast.Module) runtime.Value {
	t.Helper()
	interp := New()
	val, _, err := interp.EvaluateModule(module)
	if err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	return val
}

func evalModuleErr(t *testing.T, module *ast.Module) error {
	t.Helper()
	interp := New()
	_, _, err := interp.EvaluateModule(module)
	if err == nil {
		t.Fatalf("expected evaluation error")
	}
	return err
}

func expectInteger(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	got, ok := val.(runtime.IntegerValue)
	if !ok {
		t.Fatalf("expected Integer, got %#v", val)
	}
	if got.Val != want {
		t.Fatalf("expected %d, got %d", want, got.Val)
	}
}

func expectString(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	got, ok := val.(runtime.StringValue)
	if !ok {
		t.Fatalf("expected String, got %#v", val)
	}
	if got.Val != want {
		t.Fatalf("expected %q, got %q", want, got.Val)
	}
}

func expectBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	got, ok := val.(runtime.BoolValue)
	if !ok {
		t.Fatalf("expected Bool, got %#v", val)
	}
	if got.Val != want {
		t.Fatalf("expected %t", want)
	}
}

func expectFault(t *testing.T, err error, code runtime.FaultCode) {
	t.Helper()
	if !runtime.IsFault(err, code) {
		t.Fatalf("expected %s fault, got %v", code, err)
	}
}

func TestDeclareThenAdd(t *testing.T) {
	module := ast.Mod(
		ast.Declare("x", ast.Int(5)),
		ast.Bin("+", ast.ID("x"), ast.Int(3)),
	)
	expectInteger(t, evalModule(t, module), 8)
}

func TestModuleResultIsLastStatement(t *testing.T) {
	module := ast.Mod(
		ast.Int(1),
		ast.Str("last"),
	)
	expectString(t, evalModule(t, module), "last")
}

func TestEmptyModuleYieldsNil(t *testing.T) {
	val := evalModule(t, ast.Mod())
	if _, ok := val.(runtime.NilValue); !ok {
		t.Fatalf("expected Nil, got %#v", val)
	}
}

func TestIntegerDivisionByZeroFaults(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Bin("/", ast.Int(1), ast.Int(0))))
	expectFault(t, err, runtime.FaultDivisionByZero)
}

func TestFloatDivisionByZeroIsIEEE(t *testing.T) {
	val := evalModule(t, ast.Mod(ast.Bin("/", ast.Flt(1.0), ast.Flt(0.0))))
	got, ok := val.(runtime.FloatValue)
	if !ok {
		t.Fatalf("expected Float, got %#v", val)
	}
	if !math.IsInf(got.Val, 1) {
		t.Fatalf("expected +Inf, got %g", got.Val)
	}
}

func TestMixedArithmeticPromotesToFloat(t *testing.T) {
	val := evalModule(t, ast.Mod(ast.Bin("+", ast.Int(1), ast.Flt(0.5))))
	got, ok := val.(runtime.FloatValue)
	if !ok {
		t.Fatalf("expected Float, got %#v", val)
	}
	if got.Val != 1.5 {
		t.Fatalf("expected 1.5, got %g", got.Val)
	}
}

func TestModulo(t *testing.T) {
	expectInteger(t, evalModule(t, ast.Mod(ast.Bin("%", ast.Int(7), ast.Int(3)))), 1)
	err := evalModuleErr(t, ast.Mod(ast.Bin("%", ast.Int(7), ast.Int(0))))
	expectFault(t, err, runtime.FaultDivisionByZero)
}

func TestStringConcatenation(t *testing.T) {
	expectString(t, evalModule(t, ast.Mod(ast.Bin("+", ast.Str("foo"), ast.Str("bar")))), "foobar")
}

func TestArithmeticTypeMismatchFaults(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Bin("+", ast.Int(1), ast.Str("x"))))
	expectFault(t, err, runtime.FaultTypeError)
}

func TestIfConditionMustBeBool(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(
		ast.If(ast.Int(1), ast.Block(ast.Str("yes"))),
	))
	expectFault(t, err, runtime.FaultTypeError)
}

func TestIfElseChain(t *testing.T) {
	module := ast.Mod(
		ast.Declare("x", ast.Int(7)),
		ast.If(ast.Bin("<", ast.ID("x"), ast.Int(5)), ast.Block(ast.Str("small")),
			ast.Elif(ast.Bin("<", ast.ID("x"), ast.Int(10)), ast.Block(ast.Str("medium"))),
			ast.Else(ast.Block(ast.Str("large"))),
		),
	)
	expectString(t, evalModule(t, module), "medium")
}

func TestIfWithoutElseYieldsNil(t *testing.T) {
	val := evalModule(t, ast.Mod(ast.If(ast.Bool(false), ast.Block(ast.Int(1)))))
	if _, ok := val.(runtime.NilValue); !ok {
		t.Fatalf("expected Nil, got %#v", val)
	}
}

func TestBlockScopingDoesNotLeak(t *testing.T) {
	module := ast.Mod(
		ast.Declare("x", ast.Int(1)),
		ast.Block(ast.Declare("x", ast.Int(99))),
		ast.ID("x"),
	)
	expectInteger(t, evalModule(t, module), 1)
}

func TestBlockAssignReachesOuter(t *testing.T) {
	module := ast.Mod(
		ast.Declare("x", ast.Int(1)),
		ast.Block(ast.Assign(ast.ID("x"), ast.Int(42))),
		ast.ID("x"),
	)
	expectInteger(t, evalModule(t, module), 42)
}

func TestUndefinedVariableFaults(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.ID("missing")))
	expectFault(t, err, runtime.FaultUndefinedVariable)
}

func TestAssignUndeclaredFaults(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Assign(ast.ID("ghost"), ast.Int(1))))
	expectFault(t, err, runtime.FaultUndefinedVariable)
}

func TestCompoundAssignment(t *testing.T) {
	module := ast.Mod(
		ast.Declare("n", ast.Int(10)),
		ast.AssignOp(ast.AssignmentAdd, ast.ID("n"), ast.Int(5)),
		ast.AssignOp(ast.AssignmentMultiply, ast.ID("n"), ast.Int(2)),
		ast.ID("n"),
	)
	expectInteger(t, evalModule(t, module), 30)
}

func TestShortCircuitAnd(t *testing.T) {
	// The right side would fault if evaluated.
	module := ast.Mod(
		ast.Bin("&&", ast.Bool(false), ast.Bin("/", ast.Int(1), ast.Int(0))),
	)
	expectBool(t, evalModule(t, module), false)
}

func TestShortCircuitOr(t *testing.T) {
	module := ast.Mod(
		ast.Bin("||", ast.Bool(true), ast.ID("missing")),
	)
	expectBool(t, evalModule(t, module), true)
}

func TestLogicalOperatorRequiresBool(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Bin("&&", ast.Int(1), ast.Bool(true))))
	expectFault(t, err, runtime.FaultTypeError)
}

func TestUnaryOperators(t *testing.T) {
	expectInteger(t, evalModule(t, ast.Mod(ast.Un("-", ast.Int(5)))), -5)
	expectBool(t, evalModule(t, ast.Mod(ast.Un("!", ast.Bool(true)))), false)
	err := evalModuleErr(t, ast.Mod(ast.Un("!", ast.Int(1))))
	expectFault(t, err, runtime.FaultTypeError)
}

func TestStringInterpolation(t *testing.T) {
	module := ast.Mod(
		ast.Declare("name", ast.Str("world")),
		ast.Interp(ast.Str("hello "), ast.ID("name"), ast.Str("!")),
	)
	expectString(t, evalModule(t, module), "hello world!")
}

func TestEqualityOperators(t *testing.T) {
	expectBool(t, evalModule(t, ast.Mod(ast.Bin("==", ast.Int(2), ast.Int(2)))), true)
	expectBool(t, evalModule(t, ast.Mod(ast.Bin("!=", ast.Str("a"), ast.Str("b")))), true)
	expectBool(t, evalModule(t, ast.Mod(ast.Bin("==", ast.Arr(ast.Int(1)), ast.Arr(ast.Int(1))))), true)
}

func TestTopLevelBreakIsMisplaced(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Brk(nil)))
	expectFault(t, err, runtime.FaultMisplacedControl)
}

func TestTopLevelContinueIsMisplaced(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Cont()))
	expectFault(t, err, runtime.FaultMisplacedControl)
}

func TestTopLevelReturnIsMisplaced(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Ret(ast.Int(1))))
	expectFault(t, err, runtime.FaultMisplacedControl)
}

func TestIndexing(t *testing.T) {
	module := ast.Mod(
		ast.Declare("xs", ast.Arr(ast.Int(10), ast.Int(20), ast.Int(30))),
		ast.Index(ast.ID("xs"), ast.Int(1)),
	)
	expectInteger(t, evalModule(t, module), 20)
}

func TestIndexOutOfBoundsFaults(t *testing.T) {
	err := evalModuleErr(t, ast.Mod(ast.Index(ast.Arr(ast.Int(1)), ast.Int(5))))
	expectFault(t, err, runtime.FaultIndexOutOfBounds)
	err = evalModuleErr(t, ast.Mod(ast.Index(ast.Arr(ast.Int(1)), ast.Int(-1))))
	expectFault(t, err, runtime.FaultIndexOutOfBounds)
}

func TestArrayElementAssignmentFaults(t *testing.T) {
	module := ast.Mod(
		ast.Declare("xs", ast.Arr(ast.Int(1))),
		ast.Assign(ast.Index(ast.ID("xs"), ast.Int(0)), ast.Int(9)),
	)
	err := evalModuleErr(t, module)
	expectFault(t, err, runtime.FaultImmutableMutation)
}

func TestTuplePositionalAccess(t *testing.T) {
	module := ast.Mod(
		ast.Declare("pair", ast.Tup(ast.Str("a"), ast.Int(2))),
		ast.MemberAt(ast.ID("pair"), 1),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestStringIndexing(t *testing.T) {
	expectString(t, evalModule(t, ast.Mod(ast.Index(ast.Str("héllo"), ast.Int(1)))), "é")
}
