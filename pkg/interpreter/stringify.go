package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ruchy/interpreter-go/pkg/runtime"
)

// stringify renders a value for display: interpolation, print, and
// to_string all route through here. Strings render bare, not quoted.
func (i *Interpreter) stringify(value runtime.Value) string {
	switch v := value.(type) {
	case runtime.StringValue:
		return v.Val
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.FloatValue:
		return formatFloat(v.Val)
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NilValue:
		return "nil"
	case *runtime.ArrayValue:
		parts := make([]string, len(v.Elements))
		for idx, el := range v.Elements {
			parts[idx] = i.stringifyQuoted(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *runtime.TupleValue:
		parts := make([]string, len(v.Elements))
		for idx, el := range v.Elements {
			parts[idx] = i.stringifyQuoted(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case runtime.RangeValue:
		op := ".."
		if v.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("%d%s%d", v.Start, op, v.End)
	case *runtime.ObjectValue:
		return i.stringifyFields(v.ClassName(), v.FieldNames(), func(name string) runtime.Value {
			val, _ := v.Get(name)
			return val
		})
	case *runtime.ObjectMutValue:
		names, values := v.Snapshot()
		byName := make(map[string]runtime.Value, len(names))
		for idx, name := range names {
			byName[name] = values[idx]
		}
		return i.stringifyFields(v.ClassName(), names, func(name string) runtime.Value {
			return byName[name]
		})
	case *runtime.ClosureValue:
		if name := v.Name(); name != "" {
			return "<fn " + name + ">"
		}
		return "<lambda>"
	case runtime.BuiltinFunctionValue:
		return "<builtin " + v.Name + ">"
	case runtime.BoundMethodValue:
		return "<method " + v.Method.Name() + ">"
	case *runtime.ClassDefinitionValue:
		return "<class " + v.Name + ">"
	case *runtime.ActorDefinitionValue:
		return "<actor " + v.Name + ">"
	case *runtime.ActorRefValue:
		return "<actor instance " + v.Definition.Name + ">"
	default:
		return value.Kind().String()
	}
}

// stringifyQuoted keeps strings quoted inside aggregates so elements
// stay distinguishable.
func (i *Interpreter) stringifyQuoted(value runtime.Value) string {
	if s, ok := value.(runtime.StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return i.stringify(value)
}

func (i *Interpreter) stringifyFields(class string, names []string, get func(string) runtime.Value) string {
	parts := make([]string, len(names))
	for idx, name := range names {
		parts[idx] = name + ": " + i.stringifyQuoted(get(name))
	}
	body := "{" + strings.Join(parts, ", ") + "}"
	if class != "" {
		return class + " " + body
	}
	return body
}

// formatFloat always keeps a decimal point so floats stay visually
// distinct from integers.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEI") {
		s += ".0"
	}
	return s
}

// Stringify renders a value the way print does. The CLI and REPL use
// it to report results.
func (i *Interpreter) Stringify(v runtime.Value) string { return i.stringify(v) }
