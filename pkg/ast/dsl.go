package ast

// Convenience constructors for building modules by hand, mainly in tests.

func Mod(body ...Statement) *Module { return NewModule(body) }

func ID(name string) *Identifier { return NewIdentifier(name) }

func Str(value string) *StringLiteral { return NewStringLiteral(value) }

func Int(value int64) *IntegerLiteral { return NewIntegerLiteral(value) }

func Flt(value float64) *FloatLiteral { return NewFloatLiteral(value) }

func Bool(value bool) *BooleanLiteral { return NewBooleanLiteral(value) }

func Nil() *NilLiteral { return NewNilLiteral() }

func Arr(elements ...Expression) *ArrayLiteral { return NewArrayLiteral(elements) }

func Tup(elements ...Expression) *TupleLiteral { return NewTupleLiteral(elements) }

func Field(name string, value Expression) *ObjectField {
	return NewObjectField(ID(name), value)
}

func Obj(fields ...*ObjectField) *ObjectLiteral { return NewObjectLiteral(fields, false) }

func ObjMut(fields ...*ObjectField) *ObjectLiteral { return NewObjectLiteral(fields, true) }

func Interp(parts ...Expression) *StringInterpolation { return NewStringInterpolation(parts) }

func Un(op string, operand Expression) *UnaryExpression { return NewUnaryExpression(op, operand) }

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Rng(start, end Expression, inclusive bool) *RangeExpression {
	return NewRangeExpression(start, end, inclusive)
}

func Declare(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentDeclare, ID(name), value)
}

func DeclareP(pattern Pattern, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentDeclare, pattern, value)
}

func Assign(target Node, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentAssign, target, value)
}

func AssignOp(op AssignmentOperator, target Node, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(op, target, value)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func CallN(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Method(receiver Expression, name string, args ...Expression) *MethodCallExpression {
	return NewMethodCallExpression(receiver, ID(name), args)
}

func Member(object Expression, name string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(name))
}

func MemberAt(object Expression, index int64) *MemberAccessExpression {
	return NewMemberAccessExpression(object, Int(index))
}

func Index(object, index Expression) *IndexExpression { return NewIndexExpression(object, index) }

func Param(name string) *FunctionParameter { return NewFunctionParameter(ID(name)) }

func Params(names ...string) []*FunctionParameter {
	params := make([]*FunctionParameter, len(names))
	for i, name := range names {
		params[i] = Param(name)
	}
	return params
}

func Lam(params []*FunctionParameter, body Expression) *LambdaExpression {
	return NewLambdaExpression(params, body)
}

func Block(body ...Statement) *BlockExpression { return NewBlockExpression(body) }

func If(condition Expression, body *BlockExpression, orClauses ...*OrClause) *IfExpression {
	return NewIfExpression(condition, body, orClauses)
}

func Elif(condition Expression, body *BlockExpression) *OrClause {
	return NewOrClause(condition, body)
}

func Else(body *BlockExpression) *OrClause { return NewOrClause(nil, body) }

func Clause(pattern Pattern, body Expression) *MatchClause {
	return NewMatchClause(pattern, nil, body)
}

func ClauseG(pattern Pattern, guard Expression, body Expression) *MatchClause {
	return NewMatchClause(pattern, guard, body)
}

func Match(subject Expression, clauses ...*MatchClause) *MatchExpression {
	return NewMatchExpression(subject, clauses)
}

// Patterns

func Wc() *WildcardPattern { return NewWildcardPattern() }

func LitP(literal Literal) *LiteralPattern { return NewLiteralPattern(literal) }

func TupP(elements ...Pattern) *TuplePattern { return NewTuplePattern(elements) }

func ArrP(elements ...Pattern) *ArrayPattern {
	return NewArrayPattern(elements, false, nil, nil)
}

func ArrRestP(elements []Pattern, restName string, suffix ...Pattern) *ArrayPattern {
	var rest *Identifier
	if restName != "" {
		rest = ID(restName)
	}
	return NewArrayPattern(elements, true, rest, suffix)
}

func RngP(start, end Literal, inclusive bool) *RangePattern {
	return NewRangePattern(start, end, inclusive)
}

func OrP(alternatives ...Pattern) *OrPattern { return NewOrPattern(alternatives) }

func FieldP(name string, pattern Pattern) *StructPatternField {
	return NewStructPatternField(ID(name), pattern)
}

func StructP(className string, fields ...*StructPatternField) *StructPattern {
	var id *Identifier
	if className != "" {
		id = ID(className)
	}
	return NewStructPattern(id, fields)
}

// Statements

func While(condition Expression, body *BlockExpression) *WhileLoop {
	return NewWhileLoop(nil, condition, body)
}

func WhileL(label string, condition Expression, body *BlockExpression) *WhileLoop {
	return NewWhileLoop(ID(label), condition, body)
}

func For(pattern Pattern, iterable Expression, body *BlockExpression) *ForLoop {
	return NewForLoop(nil, pattern, iterable, body)
}

func ForL(label string, pattern Pattern, iterable Expression, body *BlockExpression) *ForLoop {
	return NewForLoop(ID(label), pattern, iterable, body)
}

func Loop(body *BlockExpression) *LoopExpression { return NewLoopExpression(nil, body) }

func LoopL(label string, body *BlockExpression) *LoopExpression {
	return NewLoopExpression(ID(label), body)
}

func Brk(value Expression) *BreakStatement { return NewBreakStatement(nil, value) }

func BrkL(label string, value Expression) *BreakStatement {
	return NewBreakStatement(ID(label), value)
}

func Cont() *ContinueStatement { return NewContinueStatement(nil) }

func ContL(label string) *ContinueStatement { return NewContinueStatement(ID(label)) }

func Ret(argument Expression) *ReturnStatement { return NewReturnStatement(argument) }

func Fn(name string, params []*FunctionParameter, body *BlockExpression) *FunctionDefinition {
	return NewFunctionDefinition(ID(name), params, body)
}

func FieldDef(name string, def Expression) *FieldDefinition {
	return NewFieldDefinition(ID(name), def)
}

func Class(name string, fields []*FieldDefinition, constructor *FunctionDefinition, methods ...*FunctionDefinition) *ClassDefinition {
	return NewClassDefinition(ID(name), fields, constructor, methods)
}

func Handler(messageType string, params []*FunctionParameter, body *BlockExpression) *ReceiveHandler {
	return NewReceiveHandler(ID(messageType), params, body)
}

func Actor(name string, fields []*FieldDefinition, handlers ...*ReceiveHandler) *ActorDefinition {
	return NewActorDefinition(ID(name), fields, nil, nil, handlers)
}

func Spawn(actor string, args ...Expression) *SpawnExpression {
	return NewSpawnExpression(ID(actor), args)
}

func Send(actor Expression, message string, args ...Expression) *SendExpression {
	return NewSendExpression(actor, ID(message), args)
}

func Ask(actor Expression, message string, args ...Expression) *AskExpression {
	return NewAskExpression(actor, ID(message), args)
}
