package interpreter

import (
	"io"
	"os"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

// Interpreter evaluates modules against a persistent global scope. A
// session is single-threaded: callers must never evaluate on the same
// Interpreter from two goroutines at once, though separate sessions may
// run concurrently and values may be handed between goroutines.
type Interpreter struct {
	global *runtime.Environment

	// Stdout receives print output. Tests swap in a buffer.
	Stdout io.Writer
}

// New creates an interpreter with the global builtin functions defined.
func New() *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		Stdout: os.Stdout,
	}
	i.defineGlobalFunctions()
	return i
}

// GlobalEnvironment exposes the session's root scope.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// RegisterGlobal binds a host-supplied value into the global scope.
func (i *Interpreter) RegisterGlobal(name string, value runtime.Value) {
	i.global.Define(name, value)
}

// EvaluateModule evaluates each top-level statement in order and
// returns the value of the last one. A control-flow signal escaping to
// this boundary is a MisplacedControlFlow fault.
func (i *Interpreter) EvaluateModule(module *ast.Module) (runtime.Value, *runtime.Environment, error) {
	env := runtime.NewEnvironment(i.global)
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range module.Body {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, env, reclassifyTopLevelSignal(err)
		}
		if val != nil {
			result = val
		}
	}
	return result, env, nil
}

// EvaluateStatement evaluates a single statement in the given scope,
// reclassifying stray signals. The REPL drives this.
func (i *Interpreter) EvaluateStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateStatement(stmt, env)
	if err != nil {
		return nil, reclassifyTopLevelSignal(err)
	}
	if val == nil {
		val = runtime.NilValue{}
	}
	return val, nil
}

// invokeCallable applies any callable value. Classes construct when
// called; everything else is a TypeError.
func (i *Interpreter) invokeCallable(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.ClosureValue:
		return i.invokeClosure(fn, args, nil)
	case runtime.BoundMethodValue:
		return i.invokeClosure(fn.Method, args, fn.Receiver)
	case runtime.BuiltinFunctionValue:
		return fn.Fn(i.builtinContext(), nil, args)
	case *runtime.ClassDefinitionValue:
		return i.instantiateClass(fn, args)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "value of kind %s is not callable", callee.Kind())
	}
}

// invokeClosure binds parameters in a fresh scope chained to the
// closure's captured environment and runs the body. Return unwinds
// here; break/continue escaping a function body are misplaced.
func (i *Interpreter) invokeClosure(fn *runtime.ClosureValue, args []runtime.Value, self runtime.Value) (runtime.Value, error) {
	params := fn.Params()
	if len(args) != len(params) {
		return nil, runtime.NewFault(runtime.FaultArityMismatch,
			"function %q expects %d arguments, got %d", closureLabel(fn), len(params), len(args))
	}
	local := runtime.NewEnvironment(fn.Env)
	if self != nil {
		local.Define("self", self)
	}
	for idx, param := range params {
		if err := i.assignPattern(param.Name, args[idx], local, true); err != nil {
			return nil, patternBindingFault(err)
		}
	}

	var result runtime.Value = runtime.NilValue{}
	var err error
	switch decl := fn.Declaration.(type) {
	case *ast.FunctionDefinition:
		result, err = i.evaluateStatements(decl.Body.Body, local)
	case *ast.LambdaExpression:
		result, err = i.evaluateExpression(decl.Body, local)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "closure has no callable body")
	}
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		if isSignal(err) {
			return nil, reclassifyTopLevelSignal(err)
		}
		return nil, err
	}
	return result, nil
}

func closureLabel(fn *runtime.ClosureValue) string {
	if name := fn.Name(); name != "" {
		return name
	}
	return "<lambda>"
}

// builtinContext hands builtins the hooks they need without exposing
// the interpreter itself.
func (i *Interpreter) builtinContext() *runtime.BuiltinCallContext {
	return &runtime.BuiltinCallContext{
		Invoke:    i.invokeCallable,
		Stringify: i.stringify,
	}
}
