package interpreter

import (
	"strings"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateAssignment(node *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case ast.AssignmentDeclare:
		switch target := node.Left.(type) {
		case *ast.Identifier:
			env.Define(target.Name, value)
			return value, nil
		default:
			if pattern, ok := node.Left.(ast.Pattern); ok {
				if err := i.assignPattern(pattern, value, env, true); err != nil {
					return nil, patternBindingFault(err)
				}
				return value, nil
			}
		}
		return nil, runtime.NewFault(runtime.FaultTypeError, "invalid declaration target %s", node.Left.NodeType())
	case ast.AssignmentAssign:
		return i.assignTo(node.Left, value, env)
	default:
		// Compound: read the target, apply the operator, write back.
		current, err := i.readAssignmentTarget(node.Left, env)
		if err != nil {
			return nil, err
		}
		op := strings.TrimSuffix(string(node.Operator), "=")
		combined, err := applyBinaryOperator(op, current, value)
		if err != nil {
			return nil, err
		}
		return i.assignTo(node.Left, combined, env)
	}
}

func (i *Interpreter) assignTo(target ast.Node, value runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	switch lhs := target.(type) {
	case *ast.Identifier:
		if err := env.Assign(lhs.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *ast.MemberAccessExpression:
		obj, err := i.evaluateExpression(lhs.Object, env)
		if err != nil {
			return nil, err
		}
		name, ok := memberFieldName(lhs)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError, "invalid member assignment target")
		}
		if err := assignField(obj, name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *ast.IndexExpression:
		obj, err := i.evaluateExpression(lhs.Object, env)
		if err != nil {
			return nil, err
		}
		index, err := i.evaluateExpression(lhs.Index, env)
		if err != nil {
			return nil, err
		}
		return i.assignIndex(obj, index, value)
	default:
		if pattern, ok := target.(ast.Pattern); ok {
			if err := i.assignPattern(pattern, value, env, false); err != nil {
				return nil, patternBindingFault(err)
			}
			return value, nil
		}
		return nil, runtime.NewFault(runtime.FaultTypeError, "invalid assignment target %s", target.NodeType())
	}
}

// readAssignmentTarget fetches the current value of a compound
// assignment's target.
func (i *Interpreter) readAssignmentTarget(target ast.Node, env *runtime.Environment) (runtime.Value, error) {
	switch lhs := target.(type) {
	case *ast.Identifier:
		return env.Get(lhs.Name)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(lhs, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(lhs, env)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "invalid compound assignment target %s", target.NodeType())
	}
}

// assignField writes a field. Class instances only accept writes to
// declared fields; anonymous mutable objects accept new keys. Immutable
// objects accept nothing.
func assignField(obj runtime.Value, name string, value runtime.Value) error {
	switch target := obj.(type) {
	case *runtime.ObjectMutValue:
		if target.ClassName() != "" && !target.Has(name) {
			return runtime.NewFault(runtime.FaultUndefinedField,
				"class %s has no field '%s'", target.ClassName(), name)
		}
		target.Set(name, value)
		return nil
	case *runtime.ActorRefValue:
		return assignField(target.Instance, name, value)
	case *runtime.ObjectValue:
		return target.Set(name, value)
	default:
		return runtime.NewFault(runtime.FaultTypeError, "cannot assign field on %s", obj.Kind())
	}
}

// assignIndex only succeeds for mutable objects keyed by string.
// Arrays, tuples, and strings are immutable sequences.
func (i *Interpreter) assignIndex(obj, index, value runtime.Value) (runtime.Value, error) {
	switch target := obj.(type) {
	case *runtime.ObjectMutValue:
		key, ok := index.(runtime.StringValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError, "object index must be String, got %s", index.Kind())
		}
		if err := assignField(target, key.Val, value); err != nil {
			return nil, err
		}
		return value, nil
	case *runtime.ArrayValue, *runtime.TupleValue:
		return nil, runtime.NewFault(runtime.FaultImmutableMutation, "%s elements cannot be assigned", obj.Kind())
	case runtime.StringValue:
		return nil, runtime.NewFault(runtime.FaultImmutableMutation, "String contents cannot be assigned")
	case *runtime.ObjectValue:
		return nil, runtime.NewFault(runtime.FaultImmutableMutation, "cannot assign into immutable object")
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "cannot index-assign %s", obj.Kind())
	}
}

func memberFieldName(node *ast.MemberAccessExpression) (string, bool) {
	id, ok := node.Member.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}
