package interpreter

import (
	"math"
	"sort"
	"strings"

	"ruchy/interpreter-go/pkg/runtime"
)

func registerArrayMethods() {
	arr := func(receiver runtime.Value) *runtime.ArrayValue {
		return receiver.(*runtime.ArrayValue)
	}
	simple := func(name string, fn func(*runtime.ArrayValue) (runtime.Value, error)) {
		registerBuiltin(runtime.KindArray, name, func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs(name, args, 0); err != nil {
				return nil, err
			}
			return fn(arr(recv))
		})
	}

	simple("len", func(a *runtime.ArrayValue) (runtime.Value, error) {
		return runtime.IntegerValue{Val: int64(len(a.Elements))}, nil
	})
	simple("is_empty", func(a *runtime.ArrayValue) (runtime.Value, error) {
		return runtime.BoolValue{Val: len(a.Elements) == 0}, nil
	})
	simple("first", func(a *runtime.ArrayValue) (runtime.Value, error) {
		if len(a.Elements) == 0 {
			return runtime.NilValue{}, nil
		}
		return a.Elements[0], nil
	})
	simple("last", func(a *runtime.ArrayValue) (runtime.Value, error) {
		if len(a.Elements) == 0 {
			return runtime.NilValue{}, nil
		}
		return a.Elements[len(a.Elements)-1], nil
	})
	simple("reverse", func(a *runtime.ArrayValue) (runtime.Value, error) {
		out := make([]runtime.Value, len(a.Elements))
		for idx, el := range a.Elements {
			out[len(a.Elements)-1-idx] = el
		}
		return &runtime.ArrayValue{Elements: out}, nil
	})
	simple("unique", func(a *runtime.ArrayValue) (runtime.Value, error) {
		out := make([]runtime.Value, 0, len(a.Elements))
		for _, el := range a.Elements {
			seen := false
			for _, kept := range out {
				if runtime.ValuesEqual(el, kept) {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, el)
			}
		}
		return &runtime.ArrayValue{Elements: out}, nil
	})
	simple("sort", func(a *runtime.ArrayValue) (runtime.Value, error) {
		out := make([]runtime.Value, len(a.Elements))
		copy(out, a.Elements)
		var sortErr error
		sort.SliceStable(out, func(l, r int) bool {
			if sortErr != nil {
				return false
			}
			if ls, lok := out[l].(runtime.StringValue); lok {
				if rs, rok := out[r].(runtime.StringValue); rok {
					return ls.Val < rs.Val
				}
			}
			lf, lok := asFloat(out[l])
			rf, rok := asFloat(out[r])
			if !lok || !rok {
				sortErr = runtime.NewFault(runtime.FaultTypeError,
					"sort requires all-numeric or all-string elements")
				return false
			}
			return lf < rf
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return &runtime.ArrayValue{Elements: out}, nil
	})

	// push returns a new array; the receiver is immutable.
	registerBuiltin(runtime.KindArray, "push", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("push", args, 1); err != nil {
			return nil, err
		}
		src := arr(recv).Elements
		out := make([]runtime.Value, 0, len(src)+1)
		out = append(out, src...)
		out = append(out, args[0])
		return &runtime.ArrayValue{Elements: out}, nil
	})
	registerBuiltin(runtime.KindArray, "contains", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("contains", args, 1); err != nil {
			return nil, err
		}
		for _, el := range arr(recv).Elements {
			if runtime.ValuesEqual(el, args[0]) {
				return runtime.BoolValue{Val: true}, nil
			}
		}
		return runtime.BoolValue{Val: false}, nil
	})
	registerBuiltin(runtime.KindArray, "join", func(ctx *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		sep, err := oneStringArg("join", args)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(arr(recv).Elements))
		for idx, el := range arr(recv).Elements {
			parts[idx] = ctx.Stringify(el)
		}
		return runtime.StringValue{Val: strings.Join(parts, sep)}, nil
	})

	registerArrayAggregates(arr)
	registerArrayHigherOrder(arr)
}

// Numeric aggregates. Variance and std divide by N, treating the array
// as the whole population.
func registerArrayAggregates(arr func(runtime.Value) *runtime.ArrayValue) {
	numbers := func(name string, a *runtime.ArrayValue) ([]float64, bool, error) {
		out := make([]float64, len(a.Elements))
		allInt := true
		for idx, el := range a.Elements {
			switch n := el.(type) {
			case runtime.IntegerValue:
				out[idx] = float64(n.Val)
			case runtime.FloatValue:
				out[idx] = n.Val
				allInt = false
			default:
				return nil, false, runtime.NewFault(runtime.FaultTypeError,
					"%s requires numeric elements, got %s", name, el.Kind())
			}
		}
		return out, allInt, nil
	}

	registerBuiltin(runtime.KindArray, "sum", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("sum", args, 0); err != nil {
			return nil, err
		}
		nums, allInt, err := numbers("sum", arr(recv))
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		if allInt {
			return runtime.IntegerValue{Val: int64(total)}, nil
		}
		return runtime.FloatValue{Val: total}, nil
	})
	registerBuiltin(runtime.KindArray, "product", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("product", args, 0); err != nil {
			return nil, err
		}
		nums, allInt, err := numbers("product", arr(recv))
		if err != nil {
			return nil, err
		}
		total := 1.0
		for _, n := range nums {
			total *= n
		}
		if allInt {
			return runtime.IntegerValue{Val: int64(total)}, nil
		}
		return runtime.FloatValue{Val: total}, nil
	})
	extreme := func(name string, better func(a, b float64) bool) {
		registerBuiltin(runtime.KindArray, name, func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs(name, args, 0); err != nil {
				return nil, err
			}
			a := arr(recv)
			if len(a.Elements) == 0 {
				return runtime.NilValue{}, nil
			}
			nums, _, err := numbers(name, a)
			if err != nil {
				return nil, err
			}
			bestIdx := 0
			for idx := 1; idx < len(nums); idx++ {
				if better(nums[idx], nums[bestIdx]) {
					bestIdx = idx
				}
			}
			return a.Elements[bestIdx], nil
		})
	}
	extreme("min", func(a, b float64) bool { return a < b })
	extreme("max", func(a, b float64) bool { return a > b })

	stat := func(name string, fn func(nums []float64) float64) {
		registerBuiltin(runtime.KindArray, name, func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs(name, args, 0); err != nil {
				return nil, err
			}
			a := arr(recv)
			if len(a.Elements) == 0 {
				return nil, runtime.NewFault(runtime.FaultTypeError, "%s of empty array", name)
			}
			nums, _, err := numbers(name, a)
			if err != nil {
				return nil, err
			}
			return runtime.FloatValue{Val: fn(nums)}, nil
		})
	}
	mean := func(nums []float64) float64 {
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return total / float64(len(nums))
	}
	variance := func(nums []float64) float64 {
		m := mean(nums)
		total := 0.0
		for _, n := range nums {
			d := n - m
			total += d * d
		}
		return total / float64(len(nums))
	}
	stat("mean", mean)
	stat("variance", variance)
	stat("std", func(nums []float64) float64 { return math.Sqrt(variance(nums)) })
}

func registerArrayHigherOrder(arr func(runtime.Value) *runtime.ArrayValue) {
	callableArg := func(name string, args []runtime.Value, want int) error {
		if err := expectArgs(name, args, want); err != nil {
			return err
		}
		if !isCallable(args[0]) {
			return runtime.NewFault(runtime.FaultTypeError, "%s expects a function, got %s", name, args[0].Kind())
		}
		return nil
	}

	registerBuiltin(runtime.KindArray, "map", func(ctx *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := callableArg("map", args, 1); err != nil {
			return nil, err
		}
		src := arr(recv).Elements
		out := make([]runtime.Value, len(src))
		for idx, el := range src {
			mapped, err := ctx.Invoke(args[0], []runtime.Value{el})
			if err != nil {
				return nil, err
			}
			out[idx] = mapped
		}
		return &runtime.ArrayValue{Elements: out}, nil
	})
	registerBuiltin(runtime.KindArray, "filter", func(ctx *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := callableArg("filter", args, 1); err != nil {
			return nil, err
		}
		out := make([]runtime.Value, 0, len(arr(recv).Elements))
		for _, el := range arr(recv).Elements {
			keep, err := ctx.Invoke(args[0], []runtime.Value{el})
			if err != nil {
				return nil, err
			}
			flag, ok := keep.(runtime.BoolValue)
			if !ok {
				return nil, runtime.NewFault(runtime.FaultTypeError,
					"filter predicate must return Bool, got %s", keep.Kind())
			}
			if flag.Val {
				out = append(out, el)
			}
		}
		return &runtime.ArrayValue{Elements: out}, nil
	})
	registerBuiltin(runtime.KindArray, "reduce", func(ctx *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("reduce", args, 2); err != nil {
			return nil, err
		}
		if !isCallable(args[1]) {
			return nil, runtime.NewFault(runtime.FaultTypeError, "reduce expects a function, got %s", args[1].Kind())
		}
		acc := args[0]
		for _, el := range arr(recv).Elements {
			next, err := ctx.Invoke(args[1], []runtime.Value{acc, el})
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	})
	registerBuiltin(runtime.KindArray, "each", func(ctx *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := callableArg("each", args, 1); err != nil {
			return nil, err
		}
		for _, el := range arr(recv).Elements {
			if _, err := ctx.Invoke(args[0], []runtime.Value{el}); err != nil {
				return nil, err
			}
		}
		return runtime.NilValue{}, nil
	})
	quantifier := func(name string, stopOn bool) {
		registerBuiltin(runtime.KindArray, name, func(ctx *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := callableArg(name, args, 1); err != nil {
				return nil, err
			}
			for _, el := range arr(recv).Elements {
				verdict, err := ctx.Invoke(args[0], []runtime.Value{el})
				if err != nil {
					return nil, err
				}
				flag, ok := verdict.(runtime.BoolValue)
				if !ok {
					return nil, runtime.NewFault(runtime.FaultTypeError,
						"%s predicate must return Bool, got %s", name, verdict.Kind())
				}
				if flag.Val == stopOn {
					return runtime.BoolValue{Val: stopOn}, nil
				}
			}
			return runtime.BoolValue{Val: !stopOn}, nil
		})
	}
	quantifier("any", true)
	quantifier("all", false)
}

func registerRangeMethods() {
	rng := func(receiver runtime.Value) runtime.RangeValue {
		return receiver.(runtime.RangeValue)
	}
	registerBuiltin(runtime.KindRange, "to_array", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("to_array", args, 0); err != nil {
			return nil, err
		}
		elements, err := iterableElements(recv)
		if err != nil {
			return nil, err
		}
		return &runtime.ArrayValue{Elements: elements}, nil
	})
	registerBuiltin(runtime.KindRange, "contains", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("contains", args, 1); err != nil {
			return nil, err
		}
		n, ok := args[0].(runtime.IntegerValue)
		if !ok {
			return nil, runtime.NewFault(runtime.FaultTypeError, "contains expects an Integer, got %s", args[0].Kind())
		}
		return runtime.BoolValue{Val: rng(recv).Contains(n.Val)}, nil
	})
	registerBuiltin(runtime.KindRange, "len", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("len", args, 0); err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: rng(recv).Length()}, nil
	})
}

func registerTupleMethods() {
	registerBuiltin(runtime.KindTuple, "len", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if err := expectArgs("len", args, 0); err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: int64(len(recv.(*runtime.TupleValue).Elements))}, nil
	})
}

func registerObjectMethods() {
	// Both object shapes share the same method surface.
	snapshot := func(recv runtime.Value) ([]string, func(string) runtime.Value) {
		switch obj := recv.(type) {
		case *runtime.ObjectValue:
			return obj.FieldNames(), func(name string) runtime.Value {
				val, _ := obj.Get(name)
				return val
			}
		case *runtime.ObjectMutValue:
			names, values := obj.Snapshot()
			byName := make(map[string]runtime.Value, len(names))
			for idx, name := range names {
				byName[name] = values[idx]
			}
			return names, func(name string) runtime.Value { return byName[name] }
		default:
			return nil, nil
		}
	}

	for _, kind := range []runtime.Kind{runtime.KindObject, runtime.KindObjectMut} {
		registerBuiltin(kind, "keys", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs("keys", args, 0); err != nil {
				return nil, err
			}
			names, _ := snapshot(recv)
			elements := make([]runtime.Value, len(names))
			for idx, name := range names {
				elements[idx] = runtime.StringValue{Val: name}
			}
			return &runtime.ArrayValue{Elements: elements}, nil
		})
		registerBuiltin(kind, "values", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs("values", args, 0); err != nil {
				return nil, err
			}
			names, get := snapshot(recv)
			elements := make([]runtime.Value, len(names))
			for idx, name := range names {
				elements[idx] = get(name)
			}
			return &runtime.ArrayValue{Elements: elements}, nil
		})
		registerBuiltin(kind, "contains_key", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			key, err := oneStringArg("contains_key", args)
			if err != nil {
				return nil, err
			}
			names, _ := snapshot(recv)
			for _, name := range names {
				if name == key {
					return runtime.BoolValue{Val: true}, nil
				}
			}
			return runtime.BoolValue{Val: false}, nil
		})
		registerBuiltin(kind, "get", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			key, err := oneStringArg("get", args)
			if err != nil {
				return nil, err
			}
			names, get := snapshot(recv)
			for _, name := range names {
				if name == key {
					return get(name), nil
				}
			}
			return runtime.NilValue{}, nil
		})
		registerBuiltin(kind, "len", func(_ *runtime.BuiltinCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if err := expectArgs("len", args, 0); err != nil {
				return nil, err
			}
			names, _ := snapshot(recv)
			return runtime.IntegerValue{Val: int64(len(names))}, nil
		})
	}
}
