package interpreter

import (
	"errors"
	"fmt"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

// patternMismatch means the pattern does not fit the value. It stays
// internal to matching; faults raised while evaluating expressions
// inside a pattern are real errors and propagate unchanged.
type patternMismatch struct {
	reason string
}

func (m *patternMismatch) Error() string { return m.reason }

func mismatchf(format string, args ...any) error {
	return &patternMismatch{reason: fmt.Sprintf(format, args...)}
}

// patternBindingFault promotes a mismatch to a TypeError for contexts
// where the pattern must fit: declarations, loop bindings, parameters.
func patternBindingFault(err error) error {
	var mis *patternMismatch
	if errors.As(err, &mis) {
		return runtime.NewFault(runtime.FaultTypeError, "%s", mis.reason)
	}
	return err
}

// matchPattern attempts a match against a scratch child scope. On
// success the scratch scope holds the bindings and becomes the clause's
// evaluation scope; on failure it is discarded, so no partial bindings
// ever leak into base. A mismatch reports ok=false; any other error is
// a genuine fault from evaluating the pattern itself.
func (i *Interpreter) matchPattern(pattern ast.Pattern, value runtime.Value, base *runtime.Environment) (*runtime.Environment, bool, error) {
	matchEnv := runtime.NewEnvironment(base)
	if err := i.assignPattern(pattern, value, matchEnv, true); err != nil {
		var mis *patternMismatch
		if errors.As(err, &mis) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return matchEnv, true, nil
}

// assignPattern destructures value into env. It returns a
// patternMismatch when the pattern does not fit, and any other error
// (faults, signals) unchanged.
func (i *Interpreter) assignPattern(pattern ast.Pattern, value runtime.Value, env *runtime.Environment, declare bool) error {
	switch p := pattern.(type) {
	case *ast.Identifier:
		if declare {
			env.Define(p.Name, value)
			return nil
		}
		return env.Assign(p.Name, value)
	case *ast.WildcardPattern:
		return nil
	case *ast.LiteralPattern:
		expected, err := i.evaluateExpression(p.Literal, env)
		if err != nil {
			return err
		}
		if !runtime.ValuesEqual(expected, value) {
			return mismatchf("literal pattern %s does not match %s",
				runtime.DebugString(expected), runtime.DebugString(value))
		}
		return nil
	case *ast.RangePattern:
		return i.matchRangePattern(p, value, env)
	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			altEnv, ok, err := i.matchPattern(alt, value, env)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			// Copy the winning alternative's bindings into the
			// clause scope.
			for name, bound := range altEnv.Snapshot() {
				env.Define(name, bound)
			}
			return nil
		}
		return mismatchf("no or-pattern alternative matched")
	case *ast.TuplePattern:
		tuple, ok := value.(*runtime.TupleValue)
		if !ok {
			return mismatchf("tuple pattern requires Tuple, got %s", value.Kind())
		}
		if len(tuple.Elements) != len(p.Elements) {
			return mismatchf("tuple pattern expects %d elements, got %d", len(p.Elements), len(tuple.Elements))
		}
		for idx, element := range p.Elements {
			if err := i.assignPattern(element, tuple.Elements[idx], env, declare); err != nil {
				return err
			}
		}
		return nil
	case *ast.ArrayPattern:
		return i.matchArrayPattern(p, value, env, declare)
	case *ast.StructPattern:
		return i.matchStructPattern(p, value, env, declare)
	default:
		return runtime.NewFault(runtime.FaultTypeError, "unsupported pattern %s", pattern.NodeType())
	}
}

// matchRangePattern admits integers and floats inside the bounds:
// start <= v < end, closing the end when inclusive.
func (i *Interpreter) matchRangePattern(p *ast.RangePattern, value runtime.Value, env *runtime.Environment) error {
	startVal, err := i.evaluateExpression(p.Start, env)
	if err != nil {
		return err
	}
	endVal, err := i.evaluateExpression(p.End, env)
	if err != nil {
		return err
	}
	start, okStart := asFloat(startVal)
	end, okEnd := asFloat(endVal)
	if !okStart || !okEnd {
		return runtime.NewFault(runtime.FaultTypeError, "range pattern requires numeric bounds")
	}
	candidate, okCand := asFloat(value)
	if !okCand {
		return mismatchf("range pattern requires a numeric subject, got %s", value.Kind())
	}
	inside := candidate >= start && (candidate < end || (p.Inclusive && candidate == end))
	if !inside {
		return mismatchf("value outside range")
	}
	return nil
}

func (i *Interpreter) matchArrayPattern(p *ast.ArrayPattern, value runtime.Value, env *runtime.Environment, declare bool) error {
	array, ok := value.(*runtime.ArrayValue)
	if !ok {
		return mismatchf("array pattern requires Array, got %s", value.Kind())
	}
	elements := array.Elements
	minLen := len(p.Elements) + len(p.Suffix)
	if p.HasRest {
		if len(elements) < minLen {
			return mismatchf("array pattern expects at least %d elements, got %d", minLen, len(elements))
		}
	} else if len(elements) != len(p.Elements) {
		return mismatchf("array pattern expects %d elements, got %d", len(p.Elements), len(elements))
	}
	for idx, element := range p.Elements {
		if err := i.assignPattern(element, elements[idx], env, declare); err != nil {
			return err
		}
	}
	if !p.HasRest {
		return nil
	}
	restEnd := len(elements) - len(p.Suffix)
	if p.RestName != nil {
		rest := make([]runtime.Value, restEnd-len(p.Elements))
		copy(rest, elements[len(p.Elements):restEnd])
		bindErr := i.assignPattern(p.RestName, &runtime.ArrayValue{Elements: rest}, env, declare)
		if bindErr != nil {
			return bindErr
		}
	}
	for idx, element := range p.Suffix {
		if err := i.assignPattern(element, elements[restEnd+idx], env, declare); err != nil {
			return err
		}
	}
	return nil
}

// matchStructPattern admits objects, class instances, and actor state.
// A class name on the pattern must match the instance's class.
func (i *Interpreter) matchStructPattern(p *ast.StructPattern, value runtime.Value, env *runtime.Environment, declare bool) error {
	get, class, ok := fieldReader(value)
	if !ok {
		return mismatchf("struct pattern requires an object, got %s", value.Kind())
	}
	if p.ClassName != nil && p.ClassName.Name != class {
		return mismatchf("struct pattern expects class %s, got %q", p.ClassName.Name, class)
	}
	for _, field := range p.Fields {
		if field.FieldName == nil {
			return runtime.NewFault(runtime.FaultTypeError, "struct pattern field missing name")
		}
		fieldValue, present := get(field.FieldName.Name)
		if !present {
			return mismatchf("object has no field '%s'", field.FieldName.Name)
		}
		if err := i.assignPattern(field.Pattern, fieldValue, env, declare); err != nil {
			return err
		}
	}
	return nil
}

// fieldReader unifies field access across the object shapes.
func fieldReader(value runtime.Value) (func(string) (runtime.Value, bool), string, bool) {
	switch obj := value.(type) {
	case *runtime.ObjectValue:
		return obj.Get, obj.ClassName(), true
	case *runtime.ObjectMutValue:
		return obj.Get, obj.ClassName(), true
	case *runtime.ActorRefValue:
		return obj.Instance.Get, obj.Instance.ClassName(), true
	default:
		return nil, "", false
	}
}
