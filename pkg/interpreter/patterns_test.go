package interpreter

import (
	"testing"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func TestMatchLiteral(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Int(2),
			ast.Clause(ast.LitP(ast.Int(1)), ast.Str("one")),
			ast.Clause(ast.LitP(ast.Int(2)), ast.Str("two")),
			ast.Clause(ast.Wc(), ast.Str("other")),
		),
	)
	expectString(t, evalModule(t, module), "two")
}

func TestMatchRangeInside(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Int(7),
			ast.Clause(ast.RngP(ast.Int(1), ast.Int(10), false), ast.Str("in")),
			ast.Clause(ast.Wc(), ast.Str("out")),
		),
	)
	expectString(t, evalModule(t, module), "in")
}

func TestMatchRangeBounds(t *testing.T) {
	halfOpen := func(subject int64) *ast.Module {
		return ast.Mod(
			ast.Match(ast.Int(subject),
				ast.Clause(ast.RngP(ast.Int(1), ast.Int(10), false), ast.Str("in")),
				ast.Clause(ast.Wc(), ast.Str("out")),
			),
		)
	}
	expectString(t, evalModule(t, halfOpen(1)), "in")
	expectString(t, evalModule(t, halfOpen(10)), "out")

	inclusive := ast.Mod(
		ast.Match(ast.Int(10),
			ast.Clause(ast.RngP(ast.Int(1), ast.Int(10), true), ast.Str("in")),
			ast.Clause(ast.Wc(), ast.Str("out")),
		),
	)
	expectString(t, evalModule(t, inclusive), "in")
}

func TestMatchBindsIdentifier(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Int(21),
			ast.Clause(ast.ID("n"), ast.Bin("*", ast.ID("n"), ast.Int(2))),
		),
	)
	expectInteger(t, evalModule(t, module), 42)
}

func TestMatchGuardFallsThrough(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Int(4),
			ast.ClauseG(ast.ID("n"), ast.Bin(">", ast.ID("n"), ast.Int(10)), ast.Str("big")),
			ast.Clause(ast.ID("n"), ast.Str("small")),
		),
	)
	expectString(t, evalModule(t, module), "small")
}

func TestMatchNonExhaustiveFaults(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Int(3),
			ast.Clause(ast.LitP(ast.Int(1)), ast.Str("one")),
		),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultNonExhaustiveMatch)
}

func TestMatchBindingsDoNotLeak(t *testing.T) {
	module := ast.Mod(
		ast.Declare("result", ast.Match(ast.Int(5),
			ast.Clause(ast.ID("bound"), ast.ID("bound")),
		)),
		ast.ID("bound"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedVariable)
}

func TestFailedArmLeavesNoBindings(t *testing.T) {
	// The first arm binds x before its guard rejects; the second arm
	// must not see that binding.
	module := ast.Mod(
		ast.Declare("x", ast.Str("outer")),
		ast.Match(ast.Int(5),
			ast.ClauseG(ast.ID("x"), ast.Bool(false), ast.Str("guarded")),
			ast.Clause(ast.Wc(), ast.ID("x")),
		),
	)
	expectString(t, evalModule(t, module), "outer")
}

func TestMatchTuplePattern(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Tup(ast.Int(1), ast.Str("a")),
			ast.Clause(ast.TupP(ast.LitP(ast.Int(1)), ast.ID("s")), ast.ID("s")),
			ast.Clause(ast.Wc(), ast.Str("no")),
		),
	)
	expectString(t, evalModule(t, module), "a")
}

func TestMatchArrayPatternWithRest(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3), ast.Int(4)),
			ast.Clause(ast.ArrRestP([]ast.Pattern{ast.ID("head")}, "rest"), ast.ID("rest")),
		),
	)
	val := evalModule(t, module)
	rest, ok := val.(*runtime.ArrayValue)
	if !ok {
		t.Fatalf("expected Array, got %#v", val)
	}
	if len(rest.Elements) != 3 {
		t.Fatalf("expected 3 rest elements, got %d", len(rest.Elements))
	}
	expectInteger(t, rest.Elements[0], 2)
}

func TestMatchArrayPatternSuffix(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3)),
			ast.Clause(ast.ArrRestP([]ast.Pattern{ast.ID("first")}, "", ast.ID("last")),
				ast.Tup(ast.ID("first"), ast.ID("last"))),
		),
	)
	tuple := evalModule(t, module).(*runtime.TupleValue)
	expectInteger(t, tuple.Elements[0], 1)
	expectInteger(t, tuple.Elements[1], 3)
}

func TestMatchArrayLengthMismatch(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Arr(ast.Int(1)),
			ast.Clause(ast.ArrP(ast.ID("a"), ast.ID("b")), ast.Str("two")),
			ast.Clause(ast.Wc(), ast.Str("fallback")),
		),
	)
	expectString(t, evalModule(t, module), "fallback")
}

func TestOrPatternFirstAlternativeWins(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Int(2),
			ast.Clause(ast.OrP(ast.LitP(ast.Int(1)), ast.LitP(ast.Int(2)), ast.LitP(ast.Int(3))), ast.Str("low")),
			ast.Clause(ast.Wc(), ast.Str("high")),
		),
	)
	expectString(t, evalModule(t, module), "low")
}

func TestOrPatternBindings(t *testing.T) {
	// The failing tuple alternative must not contribute bindings; the
	// matching identifier alternative binds the whole value.
	module := ast.Mod(
		ast.Match(ast.Int(9),
			ast.Clause(ast.OrP(ast.TupP(ast.ID("n")), ast.ID("n")), ast.ID("n")),
		),
	)
	expectInteger(t, evalModule(t, module), 9)
}

func TestStructPatternOnObject(t *testing.T) {
	module := ast.Mod(
		ast.Declare("point", ast.Obj(ast.Field("x", ast.Int(3)), ast.Field("y", ast.Int(4)))),
		ast.Match(ast.ID("point"),
			ast.Clause(ast.StructP("", ast.FieldP("x", ast.ID("a")), ast.FieldP("y", ast.ID("b"))),
				ast.Bin("+", ast.ID("a"), ast.ID("b"))),
		),
	)
	expectInteger(t, evalModule(t, module), 7)
}

func TestStructPatternClassNameMismatch(t *testing.T) {
	module := ast.Mod(
		ast.Class("Point", []*ast.FieldDefinition{ast.FieldDef("x", nil)}, nil),
		ast.Declare("p", ast.CallN("Point", ast.Int(1))),
		ast.Match(ast.ID("p"),
			ast.Clause(ast.StructP("Circle", ast.FieldP("x", ast.Wc())), ast.Str("circle")),
			ast.Clause(ast.StructP("Point", ast.FieldP("x", ast.ID("x"))), ast.ID("x")),
		),
	)
	expectInteger(t, evalModule(t, module), 1)
}

func TestDestructuringDeclaration(t *testing.T) {
	module := ast.Mod(
		ast.DeclareP(ast.TupP(ast.ID("a"), ast.ID("b")), ast.Tup(ast.Int(1), ast.Int(2))),
		ast.Bin("+", ast.ID("a"), ast.ID("b")),
	)
	expectInteger(t, evalModule(t, module), 3)
}

func TestDestructuringDeclarationMismatchFaults(t *testing.T) {
	module := ast.Mod(
		ast.DeclareP(ast.TupP(ast.ID("a"), ast.ID("b")), ast.Int(1)),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultTypeError)
}

func TestMatchLiteralPatternPropagatesFaults(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Arr(ast.Int(7)),
			ast.Clause(ast.LitP(ast.Arr(ast.ID("missing"))), ast.Str("in")),
			ast.Clause(ast.Wc(), ast.Str("out")),
		),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedVariable)
}

func TestMatchOrPatternPropagatesNestedFaults(t *testing.T) {
	module := ast.Mod(
		ast.Match(ast.Arr(ast.Int(7)),
			ast.Clause(ast.OrP(ast.LitP(ast.Arr(ast.ID("missing"))), ast.Wc()), ast.Str("in")),
			ast.Clause(ast.Wc(), ast.Str("out")),
		),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedVariable)
}
