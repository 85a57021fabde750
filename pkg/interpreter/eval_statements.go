package interpreter

import (
	"math"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch node := stmt.(type) {
	case *ast.FunctionDefinition:
		closure := &runtime.ClosureValue{Declaration: node, Env: env}
		env.Define(node.ID.Name, closure)
		return closure, nil
	case *ast.ClassDefinition:
		return i.evaluateClassDefinition(node, env)
	case *ast.ActorDefinition:
		return i.evaluateActorDefinition(node, env)
	case *ast.BreakStatement:
		var value runtime.Value = runtime.NilValue{}
		if node.Value != nil {
			evaluated, err := i.evaluateExpression(node.Value, env)
			if err != nil {
				return nil, err
			}
			value = evaluated
		}
		label := ""
		if node.Label != nil {
			label = node.Label.Name
		}
		return nil, breakSignal{label: label, value: value}
	case *ast.ContinueStatement:
		label := ""
		if node.Label != nil {
			label = node.Label.Name
		}
		return nil, continueSignal{label: label}
	case *ast.ReturnStatement:
		var value runtime.Value = runtime.NilValue{}
		if node.Argument != nil {
			evaluated, err := i.evaluateExpression(node.Argument, env)
			if err != nil {
				return nil, err
			}
			value = evaluated
		}
		return nil, returnSignal{value: value}
	default:
		if expr, ok := stmt.(ast.Expression); ok {
			return i.evaluateExpression(expr, env)
		}
		return nil, runtime.NewFault(runtime.FaultTypeError, "cannot evaluate statement %s", stmt.NodeType())
	}
}

// evaluateStatements runs statements in the given scope without pushing
// a new one. Function bodies and loop iterations own their scope
// already.
func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range stmts {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		if val != nil {
			result = val
		}
	}
	return result, nil
}

// evaluateBlock pushes a child scope; declarations inside do not leak.
func (i *Interpreter) evaluateBlock(block *ast.BlockExpression, env *runtime.Environment) (runtime.Value, error) {
	return i.evaluateStatements(block.Body, env.Extend())
}

// loopLabel extracts the optional label name.
func loopLabel(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}

// signalTargets reports whether a signal with sigLabel belongs to the
// loop labeled label. Unlabeled signals bind to the nearest loop.
func signalTargets(sigLabel, label string) bool {
	return sigLabel == "" || sigLabel == label
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (runtime.Value, error) {
	label := loopLabel(loop.Label)
	for {
		condition, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		cond, ok := condition.(runtime.BoolValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError,
				"while condition must be Bool, got %s", condition.Kind())
		}
		if !cond.Val {
			return runtime.NilValue{}, nil
		}
		if _, err := i.evaluateStatements(loop.Body.Body, env.Extend()); err != nil {
			done, value, perr := consumeLoopSignal(err, label)
			if done {
				return value, perr
			}
		}
	}
}

func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (runtime.Value, error) {
	iterable, err := i.evaluateExpression(loop.Iterable, env)
	if err != nil {
		return nil, err
	}
	elements, err := iterableElements(iterable)
	if err != nil {
		return nil, err
	}
	label := loopLabel(loop.Label)
	for _, element := range elements {
		iterEnv := env.Extend()
		if err := i.assignPattern(loop.Pattern, element, iterEnv, true); err != nil {
			return nil, patternBindingFault(err)
		}
		if _, err := i.evaluateStatements(loop.Body.Body, iterEnv); err != nil {
			done, value, perr := consumeLoopSignal(err, label)
			if done {
				return value, perr
			}
		}
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateLoopExpression(loop *ast.LoopExpression, env *runtime.Environment) (runtime.Value, error) {
	label := loopLabel(loop.Label)
	for {
		if _, err := i.evaluateStatements(loop.Body.Body, env.Extend()); err != nil {
			done, value, perr := consumeLoopSignal(err, label)
			if done {
				return value, perr
			}
		}
	}
}

// consumeLoopSignal handles a signal that surfaced from a loop body.
// done=true with a nil error means the loop finished with value; done
// with a non-nil error re-propagates a signal aimed at an outer loop.
func consumeLoopSignal(err error, label string) (bool, runtime.Value, error) {
	switch sig := err.(type) {
	case breakSignal:
		if signalTargets(sig.label, label) {
			return true, sig.value, nil
		}
		return true, nil, sig
	case continueSignal:
		if signalTargets(sig.label, label) {
			return false, nil, nil
		}
		return true, nil, sig
	default:
		return true, nil, err
	}
}

// iterableElements materializes a for-loop source. Ranges stream their
// integers, arrays and tuples their elements, strings their characters.
func iterableElements(value runtime.Value) ([]runtime.Value, error) {
	switch v := value.(type) {
	case runtime.RangeValue:
		out := make([]runtime.Value, 0, v.Length())
		// Comparing against End directly avoids overflowing an
		// inclusive bound at the integer maximum.
		for n := v.Start; n <= v.End; n++ {
			if n == v.End && !v.Inclusive {
				break
			}
			out = append(out, runtime.IntegerValue{Val: n})
			if n == math.MaxInt64 {
				break
			}
		}
		return out, nil
	case *runtime.ArrayValue:
		return v.Elements, nil
	case *runtime.TupleValue:
		return v.Elements, nil
	case runtime.StringValue:
		out := make([]runtime.Value, 0, len(v.Val))
		for _, r := range v.Val {
			out = append(out, runtime.StringValue{Val: string(r)})
		}
		return out, nil
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "cannot iterate over %s", value.Kind())
	}
}
