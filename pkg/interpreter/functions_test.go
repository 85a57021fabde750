package interpreter

import (
	"testing"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func TestFunctionCallAndReturn(t *testing.T) {
	module := ast.Mod(
		ast.Fn("add", ast.Params("a", "b"), ast.Block(
			ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b"))),
		)),
		ast.CallN("add", ast.Int(2), ast.Int(3)),
	)
	expectInteger(t, evalModule(t, module), 5)
}

func TestFunctionImplicitResult(t *testing.T) {
	module := ast.Mod(
		ast.Fn("double", ast.Params("n"), ast.Block(
			ast.Bin("*", ast.ID("n"), ast.Int(2)),
		)),
		ast.CallN("double", ast.Int(21)),
	)
	expectInteger(t, evalModule(t, module), 42)
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	module := ast.Mod(
		ast.Fn("pick", ast.Params("n"), ast.Block(
			ast.If(ast.Bin(">", ast.ID("n"), ast.Int(0)), ast.Block(
				ast.Ret(ast.Str("positive")),
			)),
			ast.Str("non-positive"),
		)),
		ast.CallN("pick", ast.Int(3)),
	)
	expectString(t, evalModule(t, module), "positive")
}

func TestReturnStopsAtCallBoundary(t *testing.T) {
	// The return inside the callee must not unwind the caller's loop.
	module := ast.Mod(
		ast.Fn("noop", ast.Params(), ast.Block(ast.Ret(ast.Nil()))),
		ast.Declare("count", ast.Int(0)),
		ast.For(ast.ID("i"), ast.Rng(ast.Int(0), ast.Int(3), false), ast.Block(
			ast.CallN("noop"),
			ast.AssignOp(ast.AssignmentAdd, ast.ID("count"), ast.Int(1)),
		)),
		ast.ID("count"),
	)
	expectInteger(t, evalModule(t, module), 3)
}

func TestBreakInsideFunctionIsMisplaced(t *testing.T) {
	module := ast.Mod(
		ast.Fn("bad", ast.Params(), ast.Block(ast.Brk(nil))),
		ast.For(ast.ID("i"), ast.Rng(ast.Int(0), ast.Int(3), false), ast.Block(
			ast.CallN("bad"),
		)),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultMisplacedControl)
}

func TestArityMismatchFaults(t *testing.T) {
	module := ast.Mod(
		ast.Fn("one", ast.Params("a"), ast.Block(ast.ID("a"))),
		ast.CallN("one", ast.Int(1), ast.Int(2)),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultArityMismatch)
}

func TestClosureCapturesLexicalEnvironment(t *testing.T) {
	module := ast.Mod(
		ast.Fn("makeCounter", ast.Params(), ast.Block(
			ast.Declare("count", ast.Int(0)),
			ast.Lam(ast.Params(), ast.Block(
				ast.AssignOp(ast.AssignmentAdd, ast.ID("count"), ast.Int(1)),
				ast.ID("count"),
			)),
		)),
		ast.Declare("tick", ast.CallN("makeCounter")),
		ast.Call(ast.ID("tick")),
		ast.Call(ast.ID("tick")),
		ast.Call(ast.ID("tick")),
	)
	expectInteger(t, evalModule(t, module), 3)
}

func TestClosuresShareCapturedState(t *testing.T) {
	module := ast.Mod(
		ast.Declare("shared", ast.Int(0)),
		ast.Declare("bump", ast.Lam(ast.Params(), ast.AssignOp(ast.AssignmentAdd, ast.ID("shared"), ast.Int(10)))),
		ast.Call(ast.ID("bump")),
		ast.Call(ast.ID("bump")),
		ast.ID("shared"),
	)
	expectInteger(t, evalModule(t, module), 20)
}

func TestRecursion(t *testing.T) {
	module := ast.Mod(
		ast.Fn("fib", ast.Params("n"), ast.Block(
			ast.If(ast.Bin("<", ast.ID("n"), ast.Int(2)), ast.Block(
				ast.Ret(ast.ID("n")),
			)),
			ast.Bin("+",
				ast.CallN("fib", ast.Bin("-", ast.ID("n"), ast.Int(1))),
				ast.CallN("fib", ast.Bin("-", ast.ID("n"), ast.Int(2))),
			),
		)),
		ast.CallN("fib", ast.Int(10)),
	)
	expectInteger(t, evalModule(t, module), 55)
}

func TestLambdaAsArgument(t *testing.T) {
	module := ast.Mod(
		ast.Fn("apply", ast.Params("f", "x"), ast.Block(
			ast.Call(ast.ID("f"), ast.ID("x")),
		)),
		ast.CallN("apply", ast.Lam(ast.Params("n"), ast.Bin("*", ast.ID("n"), ast.ID("n"))), ast.Int(6)),
	)
	expectInteger(t, evalModule(t, module), 36)
}

func TestCallingNonCallableFaults(t *testing.T) {
	module := ast.Mod(
		ast.Declare("n", ast.Int(5)),
		ast.Call(ast.ID("n")),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultTypeError)
}

func TestFunctionParameterDestructuring(t *testing.T) {
	module := ast.Mod(
		ast.Fn("sumPair", []*ast.FunctionParameter{
			ast.NewFunctionParameter(ast.TupP(ast.ID("a"), ast.ID("b"))),
		}, ast.Block(
			ast.Bin("+", ast.ID("a"), ast.ID("b")),
		)),
		ast.CallN("sumPair", ast.Tup(ast.Int(3), ast.Int(4))),
	)
	expectInteger(t, evalModule(t, module), 7)
}
