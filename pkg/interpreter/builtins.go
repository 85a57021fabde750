package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"ruchy/interpreter-go/pkg/runtime"
)

// The builtin method table is process-wide: built once, read-only
// afterwards, shared by every session.

type builtinKey struct {
	kind runtime.Kind
	name string
}

var (
	builtinOnce    sync.Once
	builtinMethods map[builtinKey]runtime.BuiltinFunc
)

func lookupBuiltinMethod(kind runtime.Kind, name string) (runtime.BuiltinFunc, bool) {
	builtinOnce.Do(buildBuiltinRegistry)
	fn, ok := builtinMethods[builtinKey{kind: kind, name: name}]
	return fn, ok
}

func registerBuiltin(kind runtime.Kind, name string, fn runtime.BuiltinFunc) {
	builtinMethods[builtinKey{kind: kind, name: name}] = fn
}

func buildBuiltinRegistry() {
	builtinMethods = make(map[builtinKey]runtime.BuiltinFunc)
	registerStringMethods()
	registerIntegerMethods()
	registerFloatMethods()
	registerBoolMethods()
	registerArrayMethods()
	registerRangeMethods()
	registerTupleMethods()
	registerObjectMethods()
}

// defineGlobalFunctions installs the session-scoped builtin functions.
func (i *Interpreter) defineGlobalFunctions() {
	i.global.Define("print", runtime.BuiltinFunctionValue{
		Name: "print",
		Fn: func(_ *runtime.BuiltinCallContext, _ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			parts := make([]string, len(args))
			for idx, arg := range args {
				parts[idx] = i.stringify(arg)
			}
			fmt.Fprintln(i.Stdout, strings.Join(parts, " "))
			return runtime.NilValue{}, nil
		},
	})
	i.global.Define("to_string", runtime.BuiltinFunctionValue{
		Name: "to_string",
		Fn: func(ctx *runtime.BuiltinCallContext, _ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs("to_string", args, 1); err != nil {
				return nil, err
			}
			return runtime.StringValue{Val: ctx.Stringify(args[0])}, nil
		},
	})
	i.global.Define("len", runtime.BuiltinFunctionValue{
		Name: "len",
		Fn: func(ctx *runtime.BuiltinCallContext, _ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs("len", args, 1); err != nil {
				return nil, err
			}
			return valueLength(args[0])
		},
	})
	i.global.Define("type_of", runtime.BuiltinFunctionValue{
		Name: "type_of",
		Fn: func(_ *runtime.BuiltinCallContext, _ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs("type_of", args, 1); err != nil {
				return nil, err
			}
			return runtime.StringValue{Val: args[0].Kind().String()}, nil
		},
	})
}

func expectArgs(name string, args []runtime.Value, want int) error {
	if len(args) != want {
		return runtime.NewFault(runtime.FaultArityMismatch,
			"%s expects %d arguments, got %d", name, want, len(args))
	}
	return nil
}

func valueLength(v runtime.Value) (runtime.Value, error) {
	switch target := v.(type) {
	case runtime.StringValue:
		return runtime.IntegerValue{Val: int64(len([]rune(target.Val)))}, nil
	case *runtime.ArrayValue:
		return runtime.IntegerValue{Val: int64(len(target.Elements))}, nil
	case *runtime.TupleValue:
		return runtime.IntegerValue{Val: int64(len(target.Elements))}, nil
	case runtime.RangeValue:
		return runtime.IntegerValue{Val: target.Length()}, nil
	case *runtime.ObjectValue:
		return runtime.IntegerValue{Val: int64(target.Len())}, nil
	case *runtime.ObjectMutValue:
		return runtime.IntegerValue{Val: int64(target.Len())}, nil
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "len not defined for %s", v.Kind())
	}
}

func registerStringMethods() {
	str := func(receiver runtime.Value) string {
		return receiver.(runtime.StringValue).Val
	}
	registerBuiltin(runtime.KindString, "len", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("len", args, 0); err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: int64(len([]rune(str(recv))))}, nil
	})
	registerBuiltin(runtime.KindString, "upper", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("upper", args, 0); err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: strings.ToUpper(str(recv))}, nil
	})
	registerBuiltin(runtime.KindString, "lower", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("lower", args, 0); err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: strings.ToLower(str(recv))}, nil
	})
	registerBuiltin(runtime.KindString, "trim", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("trim", args, 0); err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: strings.TrimSpace(str(recv))}, nil
	})
	registerBuiltin(runtime.KindString, "reverse", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("reverse", args, 0); err != nil {
			return nil, err
		}
		runes := []rune(str(recv))
		for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
			runes[l], runes[r] = runes[r], runes[l]
		}
		return runtime.StringValue{Val: string(runes)}, nil
	})
	registerBuiltin(runtime.KindString, "contains", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		needle, err := oneStringArg("contains", args)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: strings.Contains(str(recv), needle)}, nil
	})
	registerBuiltin(runtime.KindString, "starts_with", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		prefix, err := oneStringArg("starts_with", args)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: strings.HasPrefix(str(recv), prefix)}, nil
	})
	registerBuiltin(runtime.KindString, "ends_with", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		suffix, err := oneStringArg("ends_with", args)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: strings.HasSuffix(str(recv), suffix)}, nil
	})
	registerBuiltin(runtime.KindString, "split", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		sep, err := oneStringArg("split", args)
		if err != nil {
			return nil, err
		}
		pieces := strings.Split(str(recv), sep)
		elements := make([]runtime.Value, len(pieces))
		for idx, piece := range pieces {
			elements[idx] = runtime.StringValue{Val: piece}
		}
		return &runtime.ArrayValue{Elements: elements}, nil
	})
	registerBuiltin(runtime.KindString, "to_string", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_string", args, 0); err != nil {
			return nil, err
		}
		return recv, nil
	})
	registerBuiltin(runtime.KindString, "to_integer", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_integer", args, 0); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(str(recv)), 10, 64)
		if err != nil {
			return nil, runtime.NewFault(runtime.FaultTypeError, "cannot parse %q as Integer", str(recv))
		}
		return runtime.IntegerValue{Val: n}, nil
	})
}

func oneStringArg(name string, args []runtime.Value) (string, error) {
	if err := expectArgs(name, args, 1); err != nil {
		return "", err
	}
	s, ok := args[0].(runtime.StringValue)
	if !ok {
		return "", runtime.NewFault(runtime.FaultTypeError, "%s expects a String argument, got %s", name, args[0].Kind())
	}
	return s.Val, nil
}

func registerIntegerMethods() {
	intOf := func(receiver runtime.Value) int64 {
		return receiver.(runtime.IntegerValue).Val
	}
	registerBuiltin(runtime.KindInteger, "abs", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("abs", args, 0); err != nil {
			return nil, err
		}
		n := intOf(recv)
		if n < 0 {
			n = -n
		}
		return runtime.IntegerValue{Val: n}, nil
	})
	registerBuiltin(runtime.KindInteger, "pow", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("pow", args, 1); err != nil {
			return nil, err
		}
		exp, ok := args[0].(runtime.IntegerValue)
		if !ok || exp.Val < 0 {
			return nil, runtime.NewFault(runtime.FaultTypeError, "pow expects a non-negative Integer exponent")
		}
		result := int64(1)
		base := intOf(recv)
		for n := int64(0); n < exp.Val; n++ {
			result *= base
		}
		return runtime.IntegerValue{Val: result}, nil
	})
	registerBuiltin(runtime.KindInteger, "to_float", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_float", args, 0); err != nil {
			return nil, err
		}
		return runtime.FloatValue{Val: float64(intOf(recv))}, nil
	})
	registerBuiltin(runtime.KindInteger, "to_string", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_string", args, 0); err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: strconv.FormatInt(intOf(recv), 10)}, nil
	})
}

func registerFloatMethods() {
	floatOf := func(receiver runtime.Value) float64 {
		return receiver.(runtime.FloatValue).Val
	}
	unary := func(name string, fn func(float64) float64) {
		registerBuiltin(runtime.KindFloat, name, func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs(name, args, 0); err != nil {
				return nil, err
			}
			return runtime.FloatValue{Val: fn(floatOf(recv))}, nil
		})
	}
	unary("sqrt", math.Sqrt)
	unary("abs", math.Abs)
	unary("round", math.Round)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	registerBuiltin(runtime.KindFloat, "to_integer", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_integer", args, 0); err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: int64(floatOf(recv))}, nil
	})
	registerBuiltin(runtime.KindFloat, "to_string", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_string", args, 0); err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: formatFloat(floatOf(recv))}, nil
	})
}

func registerBoolMethods() {
	registerBuiltin(runtime.KindBool, "to_string", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_string", args, 0); err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: strconv.FormatBool(recv.(runtime.BoolValue).Val)}, nil
	})
}
