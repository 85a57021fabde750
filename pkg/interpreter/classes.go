package interpreter

import (
	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateClassDefinition(node *ast.ClassDefinition, env *runtime.Environment) (runtime.Value, error) {
	def := &runtime.ClassDefinitionValue{
		Name:    node.ID.Name,
		Node:    node,
		Methods: make(map[string]*runtime.ClosureValue, len(node.Methods)),
		Env:     env,
	}
	if node.Constructor != nil {
		def.Constructor = &runtime.ClosureValue{Declaration: node.Constructor, Env: env}
	}
	for _, method := range node.Methods {
		def.Methods[method.ID.Name] = &runtime.ClosureValue{Declaration: method, Env: env}
	}
	env.Define(def.Name, def)
	return def, nil
}

// instantiateClass builds the instance field map, then wraps it as a
// mutable object only once construction has finished. The constructor
// runs against plain field bindings, so `self` is not in scope and a
// half-built instance can never escape.
func (i *Interpreter) instantiateClass(def *runtime.ClassDefinitionValue, args []runtime.Value) (runtime.Value, error) {
	names, values, err := i.buildInstanceFields(def.Name, def.Node.Fields, def.Constructor, def.Env, args)
	if err != nil {
		return nil, err
	}
	return runtime.NewObjectMut(def.Name, names, values, def.Methods), nil
}

// buildInstanceFields evaluates field defaults and runs the optional
// constructor. Without a constructor, arguments fill the declared
// fields positionally. With one, each declared field becomes a binding
// in the constructor scope; the bindings' final values become the
// instance fields.
func (i *Interpreter) buildInstanceFields(className string, fields []*ast.FieldDefinition, constructor *runtime.ClosureValue, defEnv *runtime.Environment, args []runtime.Value) ([]string, []runtime.Value, error) {
	names := make([]string, len(fields))
	values := make([]runtime.Value, len(fields))
	for idx, field := range fields {
		names[idx] = field.Name.Name
		if field.Default != nil {
			val, err := i.evaluateExpression(field.Default, defEnv)
			if err != nil {
				return nil, nil, err
			}
			values[idx] = val
		} else {
			values[idx] = runtime.NilValue{}
		}
	}

	if constructor == nil {
		if len(args) > len(fields) {
			return nil, nil, runtime.NewFault(runtime.FaultArityMismatch,
				"%s has %d fields, got %d constructor arguments", className, len(fields), len(args))
		}
		for idx, arg := range args {
			values[idx] = arg
		}
		return names, values, nil
	}

	params := constructor.Params()
	if len(args) != len(params) {
		return nil, nil, runtime.NewFault(runtime.FaultArityMismatch,
			"%s constructor expects %d arguments, got %d", className, len(params), len(args))
	}
	ctorEnv := runtime.NewEnvironment(constructor.Env)
	for idx, name := range names {
		ctorEnv.Define(name, values[idx])
	}
	for idx, param := range params {
		if err := i.assignPattern(param.Name, args[idx], ctorEnv, true); err != nil {
			return nil, nil, patternBindingFault(err)
		}
	}

	body, ok := constructor.Declaration.(*ast.FunctionDefinition)
	if !ok {
		return nil, nil, runtime.NewFault(runtime.FaultTypeError, "%s constructor has no body", className)
	}
	if _, err := i.evaluateStatements(body.Body.Body, ctorEnv); err != nil {
		// An early return just ends construction.
		if _, isReturn := err.(returnSignal); !isReturn {
			if isSignal(err) {
				return nil, nil, reclassifyTopLevelSignal(err)
			}
			return nil, nil, err
		}
	}

	for idx, name := range names {
		final, err := ctorEnv.Get(name)
		if err != nil {
			return nil, nil, err
		}
		values[idx] = final
	}
	return names, values, nil
}
