package interpreter

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func TestStringMethods(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want runtime.Value
	}{
		{"len", ast.Method(ast.Str("héllo"), "len"), runtime.IntegerValue{Val: 5}},
		{"upper", ast.Method(ast.Str("abc"), "upper"), runtime.StringValue{Val: "ABC"}},
		{"lower", ast.Method(ast.Str("AbC"), "lower"), runtime.StringValue{Val: "abc"}},
		{"trim", ast.Method(ast.Str("  x  "), "trim"), runtime.StringValue{Val: "x"}},
		{"reverse", ast.Method(ast.Str("abc"), "reverse"), runtime.StringValue{Val: "cba"}},
		{"contains", ast.Method(ast.Str("hello"), "contains", ast.Str("ell")), runtime.BoolValue{Val: true}},
		{"starts_with", ast.Method(ast.Str("hello"), "starts_with", ast.Str("he")), runtime.BoolValue{Val: true}},
		{"ends_with", ast.Method(ast.Str("hello"), "ends_with", ast.Str("lo")), runtime.BoolValue{Val: true}},
		{"to_integer", ast.Method(ast.Str("42"), "to_integer"), runtime.IntegerValue{Val: 42}},
	}
	for _, tc := range cases {
		val := evalModule(t, ast.Mod(tc.expr))
		if !runtime.ValuesEqual(val, tc.want) {
			t.Fatalf("%s: expected %#v, got %#v", tc.name, tc.want, val)
		}
	}
}

func TestStringSplit(t *testing.T) {
	val := evalModule(t, ast.Mod(ast.Method(ast.Str("a,b,c"), "split", ast.Str(","))))
	arr := val.(*runtime.ArrayValue)
	got := make([]string, len(arr.Elements))
	for i, el := range arr.Elements {
		got[i] = el.(runtime.StringValue).Val
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("unexpected split result (-want +got):\n%s", diff)
	}
}

func TestIntegerMethods(t *testing.T) {
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(ast.Int(-7), "abs"))), 7)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(ast.Int(2), "pow", ast.Int(10)))), 1024)
	expectString(t, evalModule(t, ast.Mod(ast.Method(ast.Int(42), "to_string"))), "42")
	val := evalModule(t, ast.Mod(ast.Method(ast.Int(3), "to_float")))
	if f := val.(runtime.FloatValue).Val; f != 3.0 {
		t.Fatalf("expected 3.0, got %g", f)
	}
}

func TestFloatMethods(t *testing.T) {
	val := evalModule(t, ast.Mod(ast.Method(ast.Flt(2.0), "sqrt")))
	if f := val.(runtime.FloatValue).Val; math.Abs(f-math.Sqrt2) > 1e-12 {
		t.Fatalf("unexpected sqrt %g", f)
	}
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(ast.Flt(3.9), "to_integer"))), 3)
	val = evalModule(t, ast.Mod(ast.Method(ast.Flt(3.4), "floor")))
	if f := val.(runtime.FloatValue).Val; f != 3.0 {
		t.Fatalf("expected 3.0, got %g", f)
	}
}

func TestArrayMethods(t *testing.T) {
	xs := ast.Arr(ast.Int(3), ast.Int(1), ast.Int(2))
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "len"))), 3)
	expectBool(t, evalModule(t, ast.Mod(ast.Method(ast.Arr(), "is_empty"))), true)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "first"))), 3)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "last"))), 2)
	expectBool(t, evalModule(t, ast.Mod(ast.Method(xs, "contains", ast.Int(2)))), true)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "sum"))), 6)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "product"))), 6)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "min"))), 1)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(xs, "max"))), 3)
	expectString(t, evalModule(t, ast.Mod(ast.Method(xs, "join", ast.Str("-")))), "3-1-2")
}

func TestArrayPushReturnsNewArray(t *testing.T) {
	module := ast.Mod(
		ast.Declare("xs", ast.Arr(ast.Int(1))),
		ast.Declare("ys", ast.Method(ast.ID("xs"), "push", ast.Int(2))),
		ast.Tup(ast.Method(ast.ID("xs"), "len"), ast.Method(ast.ID("ys"), "len")),
	)
	tuple := evalModule(t, module).(*runtime.TupleValue)
	expectInteger(t, tuple.Elements[0], 1)
	expectInteger(t, tuple.Elements[1], 2)
}

func TestArraySortAndUnique(t *testing.T) {
	val := evalModule(t, ast.Mod(ast.Method(ast.Arr(ast.Int(3), ast.Int(1), ast.Int(3), ast.Int(2)), "unique")))
	if n := len(val.(*runtime.ArrayValue).Elements); n != 3 {
		t.Fatalf("expected 3 unique elements, got %d", n)
	}
	val = evalModule(t, ast.Mod(ast.Method(ast.Arr(ast.Int(3), ast.Int(1), ast.Int(2)), "sort")))
	sorted := val.(*runtime.ArrayValue)
	expectInteger(t, sorted.Elements[0], 1)
	expectInteger(t, sorted.Elements[2], 3)
}

func TestArrayStatisticsUsePopulationDivisor(t *testing.T) {
	xs := ast.Arr(ast.Int(2), ast.Int(4), ast.Int(4), ast.Int(4), ast.Int(5), ast.Int(5), ast.Int(7), ast.Int(9))
	mean := evalModule(t, ast.Mod(ast.Method(xs, "mean"))).(runtime.FloatValue)
	if mean.Val != 5.0 {
		t.Fatalf("expected mean 5, got %g", mean.Val)
	}
	variance := evalModule(t, ast.Mod(ast.Method(xs, "variance"))).(runtime.FloatValue)
	if variance.Val != 4.0 {
		t.Fatalf("expected population variance 4, got %g", variance.Val)
	}
	std := evalModule(t, ast.Mod(ast.Method(xs, "std"))).(runtime.FloatValue)
	if std.Val != 2.0 {
		t.Fatalf("expected population std 2, got %g", std.Val)
	}
}

func TestArrayMap(t *testing.T) {
	module := ast.Mod(
		ast.Method(ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3)), "map",
			ast.Lam(ast.Params("n"), ast.Bin("*", ast.ID("n"), ast.Int(10)))),
	)
	arr := evalModule(t, module).(*runtime.ArrayValue)
	expectInteger(t, arr.Elements[0], 10)
	expectInteger(t, arr.Elements[2], 30)
}

func TestArrayFilter(t *testing.T) {
	module := ast.Mod(
		ast.Method(ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3), ast.Int(4)), "filter",
			ast.Lam(ast.Params("n"), ast.Bin("==", ast.Bin("%", ast.ID("n"), ast.Int(2)), ast.Int(0)))),
	)
	arr := evalModule(t, module).(*runtime.ArrayValue)
	if len(arr.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(arr.Elements))
	}
	expectInteger(t, arr.Elements[0], 2)
	expectInteger(t, arr.Elements[1], 4)
}

func TestArrayReduce(t *testing.T) {
	module := ast.Mod(
		ast.Method(ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3)), "reduce",
			ast.Int(0),
			ast.Lam(ast.Params("acc", "n"), ast.Bin("+", ast.ID("acc"), ast.ID("n")))),
	)
	expectInteger(t, evalModule(t, module), 6)
}

func TestArrayAnyAll(t *testing.T) {
	even := ast.Lam(ast.Params("n"), ast.Bin("==", ast.Bin("%", ast.ID("n"), ast.Int(2)), ast.Int(0)))
	expectBool(t, evalModule(t, ast.Mod(ast.Method(ast.Arr(ast.Int(1), ast.Int(2)), "any", even))), true)
	expectBool(t, evalModule(t, ast.Mod(ast.Method(ast.Arr(ast.Int(2), ast.Int(4)), "all", even))), true)
	even = ast.Lam(ast.Params("n"), ast.Bin("==", ast.Bin("%", ast.ID("n"), ast.Int(2)), ast.Int(0)))
	expectBool(t, evalModule(t, ast.Mod(ast.Method(ast.Arr(ast.Int(1), ast.Int(3)), "any", even))), false)
}

func TestRangeMethods(t *testing.T) {
	rng := ast.Rng(ast.Int(1), ast.Int(4), false)
	arr := evalModule(t, ast.Mod(ast.Method(rng, "to_array"))).(*runtime.ArrayValue)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	expectBool(t, evalModule(t, ast.Mod(ast.Method(rng, "contains", ast.Int(3)))), true)
	expectBool(t, evalModule(t, ast.Mod(ast.Method(rng, "contains", ast.Int(4)))), false)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(rng, "len"))), 3)
}

func TestObjectMethods(t *testing.T) {
	obj := ast.Obj(ast.Field("a", ast.Int(1)), ast.Field("b", ast.Int(2)))
	keys := evalModule(t, ast.Mod(ast.Method(obj, "keys"))).(*runtime.ArrayValue)
	got := make([]string, len(keys.Elements))
	for i, el := range keys.Elements {
		got[i] = el.(runtime.StringValue).Val
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("unexpected keys (-want +got):\n%s", diff)
	}
	expectBool(t, evalModule(t, ast.Mod(ast.Method(obj, "contains_key", ast.Str("a")))), true)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(obj, "get", ast.Str("b")))), 2)
	expectInteger(t, evalModule(t, ast.Mod(ast.Method(obj, "len"))), 2)
}

func TestUndefinedMethodFaults(t *testing.T) {
	expectFault(t, evalModuleErr(t, ast.Mod(ast.Method(ast.Int(1), "frobnicate"))), runtime.FaultUndefinedMethod)
}

func TestBuiltinArityFaults(t *testing.T) {
	expectFault(t, evalModuleErr(t, ast.Mod(ast.Method(ast.Str("x"), "upper", ast.Int(1)))), runtime.FaultArityMismatch)
}

func TestPrintWritesToStdout(t *testing.T) {
	interp := New()
	var buf bytes.Buffer
	interp.Stdout = &buf
	module := ast.Mod(
		ast.CallN("print", ast.Str("hello"), ast.Int(42)),
	)
	if _, _, err := interp.EvaluateModule(module); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	if got := buf.String(); got != "hello 42\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGlobalToStringAndTypeOf(t *testing.T) {
	expectString(t, evalModule(t, ast.Mod(ast.CallN("to_string", ast.Int(7)))), "7")
	expectString(t, evalModule(t, ast.Mod(ast.CallN("type_of", ast.Str("x")))), "String")
	expectInteger(t, evalModule(t, ast.Mod(ast.CallN("len", ast.Arr(ast.Int(1), ast.Int(2))))), 2)
}
