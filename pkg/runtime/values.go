package runtime

import (
	"fmt"
	"math"
	"strings"

	"ruchy/interpreter-go/pkg/ast"
)

// Kind discriminates runtime values.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindNil
	KindString
	KindArray
	KindTuple
	KindRange
	KindClosure
	KindBuiltinFunction
	KindBoundMethod
	KindObject
	KindObjectMut
	KindClassDefinition
	KindActorDefinition
	KindActorRef
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindNil:
		return "Nil"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindRange:
		return "Range"
	case KindClosure:
		return "Closure"
	case KindBuiltinFunction:
		return "BuiltinFunction"
	case KindBoundMethod:
		return "BoundMethod"
	case KindObject:
		return "Object"
	case KindObjectMut:
		return "ObjectMut"
	case KindClassDefinition:
		return "ClassDefinition"
	case KindActorDefinition:
		return "ActorDefinition"
	case KindActorRef:
		return "ActorRef"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the runtime representation of every value.
type Value interface {
	Kind() Kind
}

// Scalars are value types; aggregates are pointer types so copies of a
// handle alias the same cell.

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (v NilValue) Kind() Kind { return KindNil }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

type TupleValue struct {
	Elements []Value
}

func (v *TupleValue) Kind() Kind { return KindTuple }

// RangeValue's bounds are integers; End is excluded unless Inclusive.
type RangeValue struct {
	Start     int64
	End       int64
	Inclusive bool
}

func (v RangeValue) Kind() Kind { return KindRange }

// Contains reports whether n falls inside the range.
func (v RangeValue) Contains(n int64) bool {
	if v.Inclusive {
		return n >= v.Start && n <= v.End
	}
	return n >= v.Start && n < v.End
}

// Length returns the number of integers the range produces, saturating
// at the integer maximum for an inclusive bound that would overflow.
func (v RangeValue) Length() int64 {
	if v.End < v.Start || (v.End == v.Start && !v.Inclusive) {
		return 0
	}
	n := v.End - v.Start
	if v.Inclusive && n < math.MaxInt64 {
		n++
	}
	return n
}

// ClosureValue pairs a function-shaped node (FunctionDefinition or
// LambdaExpression) with its captured environment.
type ClosureValue struct {
	Declaration ast.Node
	Env         *Environment
}

func (v *ClosureValue) Kind() Kind { return KindClosure }

// Name returns the declared name, or "" for lambdas.
func (v *ClosureValue) Name() string {
	if fn, ok := v.Declaration.(*ast.FunctionDefinition); ok && fn.ID != nil {
		return fn.ID.Name
	}
	return ""
}

// Params returns the parameter list of the underlying declaration.
func (v *ClosureValue) Params() []*ast.FunctionParameter {
	switch decl := v.Declaration.(type) {
	case *ast.FunctionDefinition:
		return decl.Params
	case *ast.LambdaExpression:
		return decl.Params
	default:
		return nil
	}
}

// BuiltinFunc is the implementation contract for builtin methods. The
// receiver is passed explicitly; ctx lets higher-order builtins call
// back into the evaluator.
type BuiltinFunc func(ctx *BuiltinCallContext, receiver Value, args []Value) (Value, error)

// BuiltinCallContext carries the evaluator hooks a builtin may need.
type BuiltinCallContext struct {
	// Invoke applies a closure or bound method to the given arguments.
	Invoke func(callee Value, args []Value) (Value, error)
	// Stringify renders a value using the interpreter's display rules.
	Stringify func(value Value) string
}

type BuiltinFunctionValue struct {
	Name string
	Fn   BuiltinFunc
}

func (v BuiltinFunctionValue) Kind() Kind { return KindBuiltinFunction }

// BoundMethodValue is a user-defined method closed over its receiver.
type BoundMethodValue struct {
	Receiver Value
	Method   *ClosureValue
}

func (v BoundMethodValue) Kind() Kind { return KindBoundMethod }

// ClassDefinitionValue is the evaluated form of a class declaration.
// Methods are shared by every instance and bound at call time.
type ClassDefinitionValue struct {
	Name        string
	Node        *ast.ClassDefinition
	Constructor *ClosureValue
	Methods     map[string]*ClosureValue
	Env         *Environment
}

func (v *ClassDefinitionValue) Kind() Kind { return KindClassDefinition }

// ActorDefinitionValue is the evaluated form of an actor declaration.
type ActorDefinitionValue struct {
	Name        string
	Node        *ast.ActorDefinition
	Constructor *ClosureValue
	Methods     map[string]*ClosureValue
	Handlers    map[string]*ast.ReceiveHandler
	Env         *Environment
}

func (v *ActorDefinitionValue) Kind() Kind { return KindActorDefinition }

// DebugString renders a value for diagnostics without the
// interpreter's display rules.
func DebugString(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return fmt.Sprintf("%d", val.Val)
	case FloatValue:
		return fmt.Sprintf("%g", val.Val)
	case BoolValue:
		return fmt.Sprintf("%t", val.Val)
	case NilValue:
		return "nil"
	case StringValue:
		return fmt.Sprintf("%q", val.Val)
	case *ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = DebugString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *TupleValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = DebugString(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case RangeValue:
		op := ".."
		if val.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("%d%s%d", val.Start, op, val.End)
	default:
		return v.Kind().String()
	}
}
