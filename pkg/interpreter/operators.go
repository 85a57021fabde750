package interpreter

import (
	"math"
	"strings"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateUnaryExpression(node *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(node.Operand, env)
	if err != nil {
		return nil, err
	}
	switch node.Operator {
	case "-":
		switch v := operand.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
		return nil, runtime.NewFault(runtime.FaultTypeError, "cannot negate %s", operand.Kind())
	case "!":
		if v, ok := operand.(runtime.BoolValue); ok {
			return runtime.BoolValue{Val: !v.Val}, nil
		}
		return nil, runtime.NewFault(runtime.FaultTypeError, "'!' requires Bool, got %s", operand.Kind())
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "unknown unary operator %q", node.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(node *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	// && and || evaluate their right side lazily.
	if node.Operator == "&&" || node.Operator == "||" {
		left, err := i.conditionHolds(node.Left, env)
		if err != nil {
			return nil, err
		}
		if node.Operator == "&&" && !left {
			return runtime.BoolValue{Val: false}, nil
		}
		if node.Operator == "||" && left {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.conditionHolds(node.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: right}, nil
	}

	left, err := i.evaluateExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(node.Operator, left, right)
}

func applyBinaryOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.BoolValue{Val: runtime.ValuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.ValuesEqual(left, right)}, nil
	case "+", "-", "*", "/", "%":
		return applyArithmetic(op, left, right)
	case "<", "<=", ">", ">=":
		return applyComparison(op, left, right)
	default:
		return nil, runtime.NewFault(runtime.FaultTypeError, "unknown binary operator %q", op)
	}
}

// applyArithmetic implements numeric operators plus string and array
// concatenation with +. Integer pairs stay integral; any float operand
// promotes the operation to float, where division follows IEEE-754 and
// never faults.
func applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.StringValue); ok && op == "+" {
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	if l, ok := left.(*runtime.ArrayValue); ok && op == "+" {
		if r, ok := right.(*runtime.ArrayValue); ok {
			merged := make([]runtime.Value, 0, len(l.Elements)+len(r.Elements))
			merged = append(merged, l.Elements...)
			merged = append(merged, r.Elements...)
			return &runtime.ArrayValue{Elements: merged}, nil
		}
	}

	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return applyIntegerArithmetic(op, l.Val, r.Val)
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		return applyFloatArithmetic(op, lf, rf)
	}
	return nil, runtime.NewFault(runtime.FaultTypeError,
		"operator %q not defined for %s and %s", op, left.Kind(), right.Kind())
}

func applyIntegerArithmetic(op string, l, r int64) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.IntegerValue{Val: l + r}, nil
	case "-":
		return runtime.IntegerValue{Val: l - r}, nil
	case "*":
		return runtime.IntegerValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, runtime.NewFault(runtime.FaultDivisionByZero, "integer division by zero")
		}
		return runtime.IntegerValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, runtime.NewFault(runtime.FaultDivisionByZero, "integer modulo by zero")
		}
		return runtime.IntegerValue{Val: l % r}, nil
	}
	return nil, runtime.NewFault(runtime.FaultTypeError, "unknown arithmetic operator %q", op)
}

func applyFloatArithmetic(op string, l, r float64) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.FloatValue{Val: l + r}, nil
	case "-":
		return runtime.FloatValue{Val: l - r}, nil
	case "*":
		return runtime.FloatValue{Val: l * r}, nil
	case "/":
		return runtime.FloatValue{Val: l / r}, nil
	case "%":
		return runtime.FloatValue{Val: math.Mod(l, r)}, nil
	}
	return nil, runtime.NewFault(runtime.FaultTypeError, "unknown arithmetic operator %q", op)
}

func applyComparison(op string, left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.StringValue); ok {
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.BoolValue{Val: compareOrdered(op, strings.Compare(l.Val, r.Val))}, nil
		}
	}
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return runtime.BoolValue{Val: compareOrdered(op, compareInt(l.Val, r.Val))}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		return runtime.BoolValue{Val: compareFloat(op, lf, rf)}, nil
	}
	return nil, runtime.NewFault(runtime.FaultTypeError,
		"operator %q not defined for %s and %s", op, left.Kind(), right.Kind())
}

func compareInt(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func compareOrdered(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}

// compareFloat keeps IEEE semantics for NaN rather than funneling
// through a three-way comparison.
func compareFloat(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

func asFloat(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return float64(n.Val), true
	case runtime.FloatValue:
		return n.Val, true
	default:
		return 0, false
	}
}
