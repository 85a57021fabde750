package interpreter

import (
	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

// evaluateMemberAccess reads a field, a tuple position, or a method as
// a bound value.
func (i *Interpreter) evaluateMemberAccess(node *ast.MemberAccessExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(node.Object, env)
	if err != nil {
		return nil, err
	}

	if lit, ok := node.Member.(*ast.IntegerLiteral); ok {
		tuple, ok := obj.(*runtime.TupleValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError,
				"positional access requires Tuple, got %s", obj.Kind())
		}
		idx := lit.Value
		if idx < 0 || idx >= int64(len(tuple.Elements)) {
			return nil, runtime.NewFault(runtime.FaultIndexOutOfBounds,
				"tuple position %d out of bounds for %d elements", idx, len(tuple.Elements))
		}
		return tuple.Elements[idx], nil
	}

	name, ok := memberFieldName(node)
	if !ok {
		return nil, runtime.NewFault(runtime.FaultTypeError, "invalid member access")
	}

	switch target := obj.(type) {
	case *runtime.ObjectValue:
		if val, present := target.Get(name); present {
			return val, nil
		}
		return nil, undefinedField(target.ClassName(), name)
	case *runtime.ObjectMutValue:
		if val, present := target.Get(name); present {
			return val, nil
		}
		if method, present := target.Method(name); present {
			return runtime.BoundMethodValue{Receiver: target, Method: method}, nil
		}
		return nil, undefinedField(target.ClassName(), name)
	case *runtime.ActorRefValue:
		if val, present := target.Instance.Get(name); present {
			return val, nil
		}
		if method, present := target.Instance.Method(name); present {
			return runtime.BoundMethodValue{Receiver: target, Method: method}, nil
		}
		return nil, undefinedField(target.Instance.ClassName(), name)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "%s has no fields", obj.Kind())
	}
}

func undefinedField(class, name string) error {
	if class != "" {
		return runtime.NewFault(runtime.FaultUndefinedField, "class %s has no field '%s'", class, name)
	}
	return runtime.NewFault(runtime.FaultUndefinedField, "object has no field '%s'", name)
}

func (i *Interpreter) evaluateIndexExpression(node *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(node.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(node.Index, env)
	if err != nil {
		return nil, err
	}

	switch target := obj.(type) {
	case *runtime.ArrayValue:
		return indexSequence(target.Elements, index, "array")
	case *runtime.TupleValue:
		return indexSequence(target.Elements, index, "tuple")
	case runtime.StringValue:
		idx, ok := index.(runtime.IntegerValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError, "string index must be Integer, got %s", index.Kind())
		}
		runes := []rune(target.Val)
		if idx.Val < 0 || idx.Val >= int64(len(runes)) {
			return nil, runtime.NewFault(runtime.FaultIndexOutOfBounds,
				"string index %d out of bounds for length %d", idx.Val, len(runes))
		}
		return runtime.StringValue{Val: string(runes[idx.Val])}, nil
	case *runtime.ObjectValue:
		key, ok := index.(runtime.StringValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError, "object index must be String, got %s", index.Kind())
		}
		if val, present := target.Get(key.Val); present {
			return val, nil
		}
		return nil, undefinedField(target.ClassName(), key.Val)
	case *runtime.ObjectMutValue:
		key, ok := index.(runtime.StringValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError, "object index must be String, got %s", index.Kind())
		}
		if val, present := target.Get(key.Val); present {
			return val, nil
		}
		return nil, undefinedField(target.ClassName(), key.Val)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "cannot index %s", obj.Kind())
	}
}

func indexSequence(elements []runtime.Value, index runtime.Value, label string) (runtime.Value, error) {
	idx, ok := index.(runtime.IntegerValue)
	if !ok {
		return nil, runtime.NewFault(runtime.FaultTypeError, "%s index must be Integer, got %s", label, index.Kind())
	}
	if idx.Val < 0 || idx.Val >= int64(len(elements)) {
		return nil, runtime.NewFault(runtime.FaultIndexOutOfBounds,
			"%s index %d out of bounds for %d elements", label, idx.Val, len(elements))
	}
	return elements[idx.Val], nil
}

// evaluateMethodCall dispatches receiver.method(args). Builtins win,
// then user-defined methods, then fields holding callables.
func (i *Interpreter) evaluateMethodCall(node *ast.MethodCallExpression, env *runtime.Environment) (runtime.Value, error) {
	receiver, err := i.evaluateExpression(node.Receiver, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateExpressions(node.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.dispatchMethod(receiver, node.Method.Name, args)
}

func (i *Interpreter) dispatchMethod(receiver runtime.Value, name string, args []runtime.Value) (runtime.Value, error) {
	if builtin, ok := lookupBuiltinMethod(receiver.Kind(), name); ok {
		return builtin(i.builtinContext(), receiver, args)
	}

	switch target := receiver.(type) {
	case *runtime.ClassDefinitionValue:
		if name == "new" {
			return i.instantiateClass(target, args)
		}
	case *runtime.ObjectMutValue:
		if method, ok := target.Method(name); ok {
			return i.invokeClosure(method, args, target)
		}
		if field, ok := target.Get(name); ok {
			if isCallable(field) {
				return i.invokeCallable(field, args)
			}
		}
	case *runtime.ActorRefValue:
		if method, ok := target.Instance.Method(name); ok {
			return i.invokeClosure(method, args, target)
		}
	case *runtime.ObjectValue:
		if field, ok := target.Get(name); ok {
			if isCallable(field) {
				return i.invokeCallable(field, args)
			}
		}
	}
	return nil, runtime.NewFault(runtime.FaultUndefinedMethod,
		"%s has no method '%s'", receiverLabel(receiver), name)
}

func receiverLabel(receiver runtime.Value) string {
	switch target := receiver.(type) {
	case *runtime.ObjectMutValue:
		if target.ClassName() != "" {
			return "class " + target.ClassName()
		}
	case *runtime.ActorRefValue:
		if target.Definition != nil {
			return "actor " + target.Definition.Name
		}
	}
	return receiver.Kind().String()
}

func isCallable(v runtime.Value) bool {
	switch v.(type) {
	case *runtime.ClosureValue, runtime.BoundMethodValue, runtime.BuiltinFunctionValue, *runtime.ClassDefinitionValue:
		return true
	default:
		return false
	}
}
