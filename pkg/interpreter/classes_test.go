package interpreter

import (
	"testing"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func counterClass() *ast.ClassDefinition {
	return ast.Class("Counter",
		[]*ast.FieldDefinition{ast.FieldDef("count", ast.Int(0))},
		nil,
		ast.Fn("increment", ast.Params(), ast.Block(
			ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("self"), "count"), ast.Int(1)),
		)),
		ast.Fn("value", ast.Params(), ast.Block(
			ast.Member(ast.ID("self"), "count"),
		)),
	)
}

func TestCounterIncrementsInPlace(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Method(ast.ID("c"), "increment"),
		ast.Method(ast.ID("c"), "increment"),
		ast.Method(ast.ID("c"), "value"),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestClassFieldDefaults(t *testing.T) {
	module := ast.Mod(
		ast.Class("Point", []*ast.FieldDefinition{
			ast.FieldDef("x", ast.Int(0)),
			ast.FieldDef("y", ast.Int(0)),
		}, nil),
		ast.Declare("p", ast.CallN("Point")),
		ast.Member(ast.ID("p"), "y"),
	)
	expectInteger(t, evalModule(t, module), 0)
}

func TestClassPositionalConstruction(t *testing.T) {
	module := ast.Mod(
		ast.Class("Point", []*ast.FieldDefinition{
			ast.FieldDef("x", nil),
			ast.FieldDef("y", nil),
		}, nil),
		ast.Declare("p", ast.CallN("Point", ast.Int(3), ast.Int(4))),
		ast.Bin("+", ast.Member(ast.ID("p"), "x"), ast.Member(ast.ID("p"), "y")),
	)
	expectInteger(t, evalModule(t, module), 7)
}

func TestClassConstructorComputesFields(t *testing.T) {
	module := ast.Mod(
		ast.Class("Square", []*ast.FieldDefinition{
			ast.FieldDef("side", nil),
			ast.FieldDef("area", nil),
		},
			ast.Fn("new", ast.Params("s"), ast.Block(
				ast.Assign(ast.ID("side"), ast.ID("s")),
				ast.Assign(ast.ID("area"), ast.Bin("*", ast.ID("s"), ast.ID("s"))),
			)),
		),
		ast.Declare("sq", ast.CallN("Square", ast.Int(5))),
		ast.Member(ast.ID("sq"), "area"),
	)
	expectInteger(t, evalModule(t, module), 25)
}

func TestClassConstructionViaNewMethod(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.Method(ast.ID("Counter"), "new")),
		ast.Method(ast.ID("c"), "increment"),
		ast.Method(ast.ID("c"), "value"),
	)
	expectInteger(t, evalModule(t, module), 1)
}

func TestClassConstructionArityMismatch(t *testing.T) {
	module := ast.Mod(
		ast.Class("Point", []*ast.FieldDefinition{ast.FieldDef("x", nil)}, nil),
		ast.CallN("Point", ast.Int(1), ast.Int(2)),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultArityMismatch)
}

func TestInstancesShareStateThroughAliases(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("a", ast.CallN("Counter")),
		ast.Declare("b", ast.ID("a")),
		ast.Method(ast.ID("a"), "increment"),
		ast.Method(ast.ID("b"), "increment"),
		ast.Method(ast.ID("a"), "value"),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestDirectFieldAssignment(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Assign(ast.Member(ast.ID("c"), "count"), ast.Int(41)),
		ast.Method(ast.ID("c"), "increment"),
		ast.Member(ast.ID("c"), "count"),
	)
	expectInteger(t, evalModule(t, module), 42)
}

func TestAssigningUndeclaredFieldFaults(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Assign(ast.Member(ast.ID("c"), "total"), ast.Int(1)),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedField)
}

func TestReadingUndefinedFieldFaults(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Member(ast.ID("c"), "missing"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedField)
}

func TestCallingUndefinedMethodFaults(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Method(ast.ID("c"), "reset"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedMethod)
}

func TestMethodsAreBoundValues(t *testing.T) {
	module := ast.Mod(
		counterClass(),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Declare("bump", ast.Member(ast.ID("c"), "increment")),
		ast.Call(ast.ID("bump")),
		ast.Call(ast.ID("bump")),
		ast.Method(ast.ID("c"), "value"),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestAnonymousMutObjectAllowsInsert(t *testing.T) {
	module := ast.Mod(
		ast.Declare("bag", ast.ObjMut(ast.Field("a", ast.Int(1)))),
		ast.Assign(ast.Member(ast.ID("bag"), "b"), ast.Int(2)),
		ast.Member(ast.ID("bag"), "b"),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestImmutableObjectRejectsFieldWrite(t *testing.T) {
	module := ast.Mod(
		ast.Declare("frozen", ast.Obj(ast.Field("a", ast.Int(1)))),
		ast.Assign(ast.Member(ast.ID("frozen"), "a"), ast.Int(2)),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultImmutableMutation)
}

func TestObjectEqualityRespectsMutability(t *testing.T) {
	module := ast.Mod(
		ast.Declare("frozen", ast.Obj(ast.Field("a", ast.Int(1)))),
		ast.Declare("boxed", ast.ObjMut(ast.Field("a", ast.Int(1)))),
		ast.Tup(
			ast.Bin("==", ast.ID("frozen"), ast.Obj(ast.Field("a", ast.Int(1)))),
			ast.Bin("==", ast.ID("frozen"), ast.ID("boxed")),
		),
	)
	tuple := evalModule(t, module).(*runtime.TupleValue)
	expectBool(t, tuple.Elements[0], true)
	expectBool(t, tuple.Elements[1], false)
}

func TestMethodCanCallSiblingMethod(t *testing.T) {
	module := ast.Mod(
		ast.Class("Counter",
			[]*ast.FieldDefinition{ast.FieldDef("count", ast.Int(0))},
			nil,
			ast.Fn("increment", ast.Params(), ast.Block(
				ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("self"), "count"), ast.Int(1)),
			)),
			ast.Fn("incrementTwice", ast.Params(), ast.Block(
				ast.Method(ast.ID("self"), "increment"),
				ast.Method(ast.ID("self"), "increment"),
			)),
		),
		ast.Declare("c", ast.CallN("Counter")),
		ast.Method(ast.ID("c"), "incrementTwice"),
		ast.Member(ast.ID("c"), "count"),
	)
	expectInteger(t, evalModule(t, module), 2)
}
