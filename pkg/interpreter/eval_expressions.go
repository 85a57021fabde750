package interpreter

import (
	"strings"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: node.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: node.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: node.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: node.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		return env.Get(node.Name)
	case *ast.ArrayLiteral:
		elements, err := i.evaluateExpressions(node.Elements, env)
		if err != nil {
			return nil, err
		}
		return &runtime.ArrayValue{Elements: elements}, nil
	case *ast.TupleLiteral:
		elements, err := i.evaluateExpressions(node.Elements, env)
		if err != nil {
			return nil, err
		}
		return &runtime.TupleValue{Elements: elements}, nil
	case *ast.ObjectLiteral:
		return i.evaluateObjectLiteral(node, env)
	case *ast.StringInterpolation:
		return i.evaluateStringInterpolation(node, env)
	case *ast.RangeExpression:
		return i.evaluateRangeExpression(node, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(node, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(node, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(node, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(node, env)
	case *ast.MethodCallExpression:
		return i.evaluateMethodCall(node, env)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(node, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(node, env)
	case *ast.LambdaExpression:
		return &runtime.ClosureValue{Declaration: node, Env: env}, nil
	case *ast.BlockExpression:
		return i.evaluateBlock(node, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(node, env)
	case *ast.MatchExpression:
		return i.evaluateMatchExpression(node, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(node, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(node, env)
	case *ast.LoopExpression:
		return i.evaluateLoopExpression(node, env)
	case *ast.SpawnExpression:
		return i.evaluateSpawnExpression(node, env)
	case *ast.SendExpression:
		return i.evaluateSendExpression(node, env)
	case *ast.AskExpression:
		return i.evaluateAskExpression(node, env)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "cannot evaluate expression %s", expr.NodeType())
	}
}

func (i *Interpreter) evaluateExpressions(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	out := make([]runtime.Value, len(exprs))
	for idx, expr := range exprs {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return nil, err
		}
		out[idx] = val
	}
	return out, nil
}

func (i *Interpreter) evaluateObjectLiteral(node *ast.ObjectLiteral, env *runtime.Environment) (runtime.Value, error) {
	names := make([]string, len(node.Fields))
	values := make([]runtime.Value, len(node.Fields))
	for idx, field := range node.Fields {
		val, err := i.evaluateExpression(field.Value, env)
		if err != nil {
			return nil, err
		}
		names[idx] = field.Name.Name
		values[idx] = val
	}
	if node.Mutable {
		return runtime.NewObjectMut("", names, values, nil), nil
	}
	return runtime.NewObject("", names, values), nil
}

func (i *Interpreter) evaluateStringInterpolation(node *ast.StringInterpolation, env *runtime.Environment) (runtime.Value, error) {
	var builder strings.Builder
	for _, part := range node.Parts {
		val, err := i.evaluateExpression(part, env)
		if err != nil {
			return nil, err
		}
		builder.WriteString(i.stringify(val))
	}
	return runtime.StringValue{Val: builder.String()}, nil
}

func (i *Interpreter) evaluateRangeExpression(node *ast.RangeExpression, env *runtime.Environment) (runtime.Value, error) {
	start, err := i.evaluateExpression(node.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := i.evaluateExpression(node.End, env)
	if err != nil {
		return nil, err
	}
	startInt, okStart := start.(runtime.IntegerValue)
	endInt, okEnd := end.(runtime.IntegerValue)
	if !okStart || !okEnd {
		return nil, runtime.NewFault(runtime.FaultTypeError,
			"range bounds must be Integer, got %s..%s", start.Kind(), end.Kind())
	}
	return runtime.RangeValue{Start: startInt.Val, End: endInt.Val, Inclusive: node.Inclusive}, nil
}

func (i *Interpreter) evaluateFunctionCall(node *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(node.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateExpressions(node.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.invokeCallable(callee, args)
}

func (i *Interpreter) evaluateIfExpression(node *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	matched, err := i.conditionHolds(node.IfCondition, env)
	if err != nil {
		return nil, err
	}
	if matched {
		return i.evaluateBlock(node.IfBody, env)
	}
	for _, clause := range node.OrClauses {
		if clause.Condition == nil {
			return i.evaluateBlock(clause.Body, env)
		}
		matched, err := i.conditionHolds(clause.Condition, env)
		if err != nil {
			return nil, err
		}
		if matched {
			return i.evaluateBlock(clause.Body, env)
		}
	}
	return runtime.NilValue{}, nil
}

// conditionHolds evaluates a condition and requires it to be Bool.
func (i *Interpreter) conditionHolds(expr ast.Expression, env *runtime.Environment) (bool, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return false, err
	}
	cond, ok := val.(runtime.BoolValue)
	if !ok {
		return false, runtime.NewFault(runtime.FaultTypeError,
			"condition must be Bool, got %s", val.Kind())
	}
	return cond.Val, nil
}

// evaluateMatchExpression evaluates the subject once, then tries each
// clause top to bottom. A matching clause's bindings live only in the
// clause's scope; the first clause whose pattern and guard both hold
// supplies the result.
func (i *Interpreter) evaluateMatchExpression(node *ast.MatchExpression, env *runtime.Environment) (runtime.Value, error) {
	subject, err := i.evaluateExpression(node.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, clause := range node.Clauses {
		clauseEnv, ok, err := i.matchPattern(clause.Pattern, subject, env)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if clause.Guard != nil {
			holds, err := i.conditionHolds(clause.Guard, clauseEnv)
			if err != nil {
				return nil, err
			}
			if !holds {
				continue
			}
		}
		return i.evaluateExpression(clause.Body, clauseEnv)
	}
	return nil, runtime.NewFault(runtime.FaultNonExhaustiveMatch,
		"no pattern matched value %s", runtime.DebugString(subject))
}
