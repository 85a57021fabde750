package interpreter

import (
	"testing"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func counterActor() *ast.ActorDefinition {
	return ast.Actor("Counter",
		[]*ast.FieldDefinition{ast.FieldDef("count", ast.Int(0))},
		ast.Handler("Increment", ast.Params(), ast.Block(
			ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("self"), "count"), ast.Int(1)),
		)),
		ast.Handler("Add", ast.Params("n"), ast.Block(
			ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("self"), "count"), ast.ID("n")),
		)),
		ast.Handler("Get", ast.Params(), ast.Block(
			ast.Member(ast.ID("self"), "count"),
		)),
	)
}

func TestActorProcessesMessagesThenAnswers(t *testing.T) {
	module := ast.Mod(
		counterActor(),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Increment"),
		ast.Send(ast.ID("c"), "Increment"),
		ast.Ask(ast.ID("c"), "Get"),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestActorMessagePayload(t *testing.T) {
	module := ast.Mod(
		counterActor(),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Add", ast.Int(40)),
		ast.Send(ast.ID("c"), "Add", ast.Int(2)),
		ast.Ask(ast.ID("c"), "Get"),
	)
	expectInteger(t, evalModule(t, module), 42)
}

func TestSendYieldsNil(t *testing.T) {
	module := ast.Mod(
		counterActor(),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Increment"),
	)
	if val := evalModule(t, module); val != (runtime.NilValue{}) {
		t.Fatalf("expected Nil, got %#v", val)
	}
}

func TestActorFieldIsReadableThroughHandle(t *testing.T) {
	module := ast.Mod(
		counterActor(),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Increment"),
		ast.Member(ast.ID("c"), "count"),
	)
	expectInteger(t, evalModule(t, module), 1)
}

func TestSpawnWithArguments(t *testing.T) {
	module := ast.Mod(
		ast.Actor("Cell",
			[]*ast.FieldDefinition{ast.FieldDef("value", nil)},
			ast.Handler("Get", ast.Params(), ast.Block(
				ast.Member(ast.ID("self"), "value"),
			)),
		),
		ast.Declare("cell", ast.Spawn("Cell", ast.Int(99))),
		ast.Ask(ast.ID("cell"), "Get"),
	)
	expectInteger(t, evalModule(t, module), 99)
}

func TestHandlerSelfSendRunsAfterCurrentHandler(t *testing.T) {
	// The Twice handler enqueues two Increments; they must run in FIFO
	// order after Twice returns, not recursively inside it.
	module := ast.Mod(
		ast.Actor("Counter",
			[]*ast.FieldDefinition{ast.FieldDef("count", ast.Int(0))},
			ast.Handler("Increment", ast.Params(), ast.Block(
				ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("self"), "count"), ast.Int(1)),
			)),
			ast.Handler("Twice", ast.Params(), ast.Block(
				ast.Send(ast.ID("self"), "Increment"),
				ast.Send(ast.ID("self"), "Increment"),
				ast.If(ast.Bin("!=", ast.Member(ast.ID("self"), "count"), ast.Int(0)), ast.Block(
					ast.Assign(ast.Member(ast.ID("self"), "count"), ast.Int(-100)),
				)),
			)),
			ast.Handler("Get", ast.Params(), ast.Block(
				ast.Member(ast.ID("self"), "count"),
			)),
		),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Twice"),
		ast.Ask(ast.ID("c"), "Get"),
	)
	expectInteger(t, evalModule(t, module), 2)
}

func TestAskReturnsOwnReplyDespitePendingMessages(t *testing.T) {
	// Sending from inside a handler leaves messages queued without
	// draining. The later ask must answer for its own Get, processing
	// the queued Increment first.
	module := ast.Mod(
		ast.Actor("Counter",
			[]*ast.FieldDefinition{ast.FieldDef("count", ast.Int(0))},
			ast.Handler("Increment", ast.Params(), ast.Block(
				ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("self"), "count"), ast.Int(1)),
			)),
			ast.Handler("Seed", ast.Params(), ast.Block(
				ast.Send(ast.ID("self"), "Increment"),
			)),
			ast.Handler("Get", ast.Params(), ast.Block(
				ast.Member(ast.ID("self"), "count"),
			)),
		),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Seed"),
		ast.Ask(ast.ID("c"), "Get"),
	)
	expectInteger(t, evalModule(t, module), 1)
}

func TestUnknownMessageFaults(t *testing.T) {
	module := ast.Mod(
		counterActor(),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Explode"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultUndefinedMethod)
}

func TestHandlerArityMismatchFaults(t *testing.T) {
	module := ast.Mod(
		counterActor(),
		ast.Declare("c", ast.Spawn("Counter")),
		ast.Send(ast.ID("c"), "Add"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultArityMismatch)
}

func TestAskFromOwnHandlerFaults(t *testing.T) {
	module := ast.Mod(
		ast.Actor("Loopy",
			[]*ast.FieldDefinition{},
			ast.Handler("Get", ast.Params(), ast.Block(ast.Int(1))),
			ast.Handler("Recurse", ast.Params(), ast.Block(
				ast.Ask(ast.ID("self"), "Get"),
			)),
		),
		ast.Declare("a", ast.Spawn("Loopy")),
		ast.Send(ast.ID("a"), "Recurse"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultTypeError)
}

func TestSendToNonActorFaults(t *testing.T) {
	module := ast.Mod(
		ast.Send(ast.Int(5), "Increment"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultTypeError)
}

func TestSpawnRequiresActorDefinition(t *testing.T) {
	module := ast.Mod(
		ast.Declare("NotAnActor", ast.Int(1)),
		ast.Spawn("NotAnActor"),
	)
	expectFault(t, evalModuleErr(t, module), runtime.FaultTypeError)
}
