package runtime

// ValuesEqual implements structural equality. Numbers compare across
// Integer/Float. Objects compare deeply, but only within the same
// mutability: an immutable object never equals a mutable one, even
// with identical fields.
func ValuesEqual(a, b Value) bool {
	switch left := a.(type) {
	case IntegerValue:
		switch right := b.(type) {
		case IntegerValue:
			return left.Val == right.Val
		case FloatValue:
			return float64(left.Val) == right.Val
		}
		return false
	case FloatValue:
		switch right := b.(type) {
		case FloatValue:
			return left.Val == right.Val
		case IntegerValue:
			return left.Val == float64(right.Val)
		}
		return false
	case BoolValue:
		right, ok := b.(BoolValue)
		return ok && left.Val == right.Val
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case StringValue:
		right, ok := b.(StringValue)
		return ok && left.Val == right.Val
	case *ArrayValue:
		right, ok := b.(*ArrayValue)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !ValuesEqual(left.Elements[i], right.Elements[i]) {
				return false
			}
		}
		return true
	case *TupleValue:
		right, ok := b.(*TupleValue)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !ValuesEqual(left.Elements[i], right.Elements[i]) {
				return false
			}
		}
		return true
	case RangeValue:
		right, ok := b.(RangeValue)
		return ok && left == right
	case *ObjectValue:
		right, ok := b.(*ObjectValue)
		if !ok {
			return false
		}
		if left == right {
			return true
		}
		if left.class != right.class || len(left.fields) != len(right.fields) {
			return false
		}
		for name, lv := range left.fields {
			rv, present := right.fields[name]
			if !present || !ValuesEqual(lv, rv) {
				return false
			}
		}
		return true
	case *ObjectMutValue:
		right, ok := b.(*ObjectMutValue)
		if !ok {
			return false
		}
		if left == right {
			return true
		}
		if left.ClassName() != right.ClassName() {
			return false
		}
		leftNames, leftValues := left.Snapshot()
		rightNames, rightValues := right.Snapshot()
		if len(leftNames) != len(rightNames) {
			return false
		}
		rightByName := make(map[string]Value, len(rightNames))
		for i, name := range rightNames {
			rightByName[name] = rightValues[i]
		}
		for i, name := range leftNames {
			rv, present := rightByName[name]
			if !present || !ValuesEqual(leftValues[i], rv) {
				return false
			}
		}
		return true
	case *ClosureValue:
		return a == b
	case BuiltinFunctionValue:
		right, ok := b.(BuiltinFunctionValue)
		return ok && left.Name == right.Name
	case BoundMethodValue:
		right, ok := b.(BoundMethodValue)
		return ok && left.Method == right.Method && ValuesEqual(left.Receiver, right.Receiver)
	case *ClassDefinitionValue, *ActorDefinitionValue, *ActorRefValue:
		return a == b
	default:
		return false
	}
}
