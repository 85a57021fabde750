package ast

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeFloatLiteral           NodeType = "FloatLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNilLiteral             NodeType = "NilLiteral"
	NodeArrayLiteral           NodeType = "ArrayLiteral"
	NodeTupleLiteral           NodeType = "TupleLiteral"
	NodeObjectField            NodeType = "ObjectField"
	NodeObjectLiteral          NodeType = "ObjectLiteral"
	NodeStringInterpolation    NodeType = "StringInterpolation"
	NodeWildcardPattern        NodeType = "WildcardPattern"
	NodeLiteralPattern         NodeType = "LiteralPattern"
	NodeTuplePattern           NodeType = "TuplePattern"
	NodeArrayPattern           NodeType = "ArrayPattern"
	NodeRangePattern           NodeType = "RangePattern"
	NodeOrPattern              NodeType = "OrPattern"
	NodeStructPatternField     NodeType = "StructPatternField"
	NodeStructPattern          NodeType = "StructPattern"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodeRangeExpression        NodeType = "RangeExpression"
	NodeFunctionCall           NodeType = "FunctionCall"
	NodeMethodCallExpression   NodeType = "MethodCallExpression"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeIndexExpression        NodeType = "IndexExpression"
	NodeLambdaExpression       NodeType = "LambdaExpression"
	NodeBlockExpression        NodeType = "BlockExpression"
	NodeOrClause               NodeType = "OrClause"
	NodeIfExpression           NodeType = "IfExpression"
	NodeMatchClause            NodeType = "MatchClause"
	NodeMatchExpression        NodeType = "MatchExpression"
	NodeSpawnExpression        NodeType = "SpawnExpression"
	NodeSendExpression         NodeType = "SendExpression"
	NodeAskExpression          NodeType = "AskExpression"
	NodeWhileLoop              NodeType = "WhileLoop"
	NodeForLoop                NodeType = "ForLoop"
	NodeLoopExpression         NodeType = "LoopExpression"
	NodeBreakStatement         NodeType = "BreakStatement"
	NodeContinueStatement      NodeType = "ContinueStatement"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeFunctionParameter      NodeType = "FunctionParameter"
	NodeFunctionDefinition     NodeType = "FunctionDefinition"
	NodeFieldDefinition        NodeType = "FieldDefinition"
	NodeClassDefinition        NodeType = "ClassDefinition"
	NodeReceiveHandler         NodeType = "ReceiveHandler"
	NodeActorDefinition        NodeType = "ActorDefinition"
	NodeModule                 NodeType = "Module"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type" yaml:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	patternMarker

	Name string `json:"name" yaml:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value" yaml:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value int64 `json:"value" yaml:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value" yaml:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value" yaml:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements" yaml:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

type TupleLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements" yaml:"elements"`
}

func NewTupleLiteral(elements []Expression) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTupleLiteral), Elements: elements}
}

type ObjectField struct {
	nodeImpl

	Name  *Identifier `json:"name" yaml:"name"`
	Value Expression  `json:"value" yaml:"value"`
}

func NewObjectField(name *Identifier, value Expression) *ObjectField {
	return &ObjectField{nodeImpl: newNodeImpl(NodeObjectField), Name: name, Value: value}
}

// ObjectLiteral produces an immutable object; Mutable requests a
// lock-guarded mutable one instead.
type ObjectLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Fields  []*ObjectField `json:"fields" yaml:"fields"`
	Mutable bool           `json:"mutable,omitempty" yaml:"mutable,omitempty"`
}

func NewObjectLiteral(fields []*ObjectField, mutable bool) *ObjectLiteral {
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Fields: fields, Mutable: mutable}
}

// StringInterpolation concatenates the stringified value of each part.
type StringInterpolation struct {
	nodeImpl
	expressionMarker
	statementMarker

	Parts []Expression `json:"parts" yaml:"parts"`
}

func NewStringInterpolation(parts []Expression) *StringInterpolation {
	return &StringInterpolation{nodeImpl: newNodeImpl(NodeStringInterpolation), Parts: parts}
}

// Patterns

type WildcardPattern struct {
	nodeImpl
	patternMarker
}

func NewWildcardPattern() *WildcardPattern {
	return &WildcardPattern{nodeImpl: newNodeImpl(NodeWildcardPattern)}
}

type LiteralPattern struct {
	nodeImpl
	patternMarker

	Literal Literal `json:"literal" yaml:"literal"`
}

func NewLiteralPattern(literal Literal) *LiteralPattern {
	return &LiteralPattern{nodeImpl: newNodeImpl(NodeLiteralPattern), Literal: literal}
}

type TuplePattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern `json:"elements" yaml:"elements"`
}

func NewTuplePattern(elements []Pattern) *TuplePattern {
	return &TuplePattern{nodeImpl: newNodeImpl(NodeTuplePattern), Elements: elements}
}

// ArrayPattern matches a fixed prefix and optional suffix. When HasRest
// is set the middle elements bind to RestName; a nil RestName discards
// them.
type ArrayPattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern   `json:"elements" yaml:"elements"`
	HasRest  bool        `json:"hasRest,omitempty" yaml:"hasRest,omitempty"`
	RestName *Identifier `json:"restName,omitempty" yaml:"restName,omitempty"`
	Suffix   []Pattern   `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

func NewArrayPattern(elements []Pattern, hasRest bool, restName *Identifier, suffix []Pattern) *ArrayPattern {
	return &ArrayPattern{nodeImpl: newNodeImpl(NodeArrayPattern), Elements: elements, HasRest: hasRest, RestName: restName, Suffix: suffix}
}

// RangePattern matches start <= v < end, or start <= v <= end when
// Inclusive.
type RangePattern struct {
	nodeImpl
	patternMarker

	Start     Literal `json:"start" yaml:"start"`
	End       Literal `json:"end" yaml:"end"`
	Inclusive bool    `json:"inclusive,omitempty" yaml:"inclusive,omitempty"`
}

func NewRangePattern(start, end Literal, inclusive bool) *RangePattern {
	return &RangePattern{nodeImpl: newNodeImpl(NodeRangePattern), Start: start, End: end, Inclusive: inclusive}
}

// OrPattern matches when any alternative matches; the first matching
// alternative supplies the bindings.
type OrPattern struct {
	nodeImpl
	patternMarker

	Alternatives []Pattern `json:"alternatives" yaml:"alternatives"`
}

func NewOrPattern(alternatives []Pattern) *OrPattern {
	return &OrPattern{nodeImpl: newNodeImpl(NodeOrPattern), Alternatives: alternatives}
}

type StructPatternField struct {
	nodeImpl

	FieldName *Identifier `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	Pattern   Pattern     `json:"pattern" yaml:"pattern"`
}

func NewStructPatternField(fieldName *Identifier, pattern Pattern) *StructPatternField {
	return &StructPatternField{nodeImpl: newNodeImpl(NodeStructPatternField), FieldName: fieldName, Pattern: pattern}
}

// StructPattern matches class instances by class name (when given) and
// plain objects field by field.
type StructPattern struct {
	nodeImpl
	patternMarker

	ClassName *Identifier           `json:"className,omitempty" yaml:"className,omitempty"`
	Fields    []*StructPatternField `json:"fields" yaml:"fields"`
}

func NewStructPattern(className *Identifier, fields []*StructPatternField) *StructPattern {
	return &StructPattern{nodeImpl: newNodeImpl(NodeStructPattern), ClassName: className, Fields: fields}
}

// Expressions

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator" yaml:"operator"`
	Operand  Expression `json:"operand" yaml:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator" yaml:"operator"`
	Left     Expression `json:"left" yaml:"left"`
	Right    Expression `json:"right" yaml:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentOperator string

const (
	AssignmentDeclare  AssignmentOperator = ":="
	AssignmentAssign   AssignmentOperator = "="
	AssignmentAdd      AssignmentOperator = "+="
	AssignmentSubtract AssignmentOperator = "-="
	AssignmentMultiply AssignmentOperator = "*="
	AssignmentDivide   AssignmentOperator = "/="
	AssignmentModulo   AssignmentOperator = "%="
)

// AssignmentExpression's Left is an Identifier, MemberAccessExpression,
// IndexExpression, or a destructuring Pattern (declarations only).
type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator AssignmentOperator `json:"operator" yaml:"operator"`
	Left     Node               `json:"left" yaml:"left"`
	Right    Expression         `json:"right" yaml:"right"`
}

func NewAssignmentExpression(operator AssignmentOperator, left Node, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

type RangeExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Start     Expression `json:"start" yaml:"start"`
	End       Expression `json:"end" yaml:"end"`
	Inclusive bool       `json:"inclusive,omitempty" yaml:"inclusive,omitempty"`
}

func NewRangeExpression(start, end Expression, inclusive bool) *RangeExpression {
	return &RangeExpression{nodeImpl: newNodeImpl(NodeRangeExpression), Start: start, End: end, Inclusive: inclusive}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee" yaml:"callee"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewFunctionCall(callee Expression, arguments []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: arguments}
}

type MethodCallExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Receiver  Expression   `json:"receiver" yaml:"receiver"`
	Method    *Identifier  `json:"method" yaml:"method"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewMethodCallExpression(receiver Expression, method *Identifier, arguments []Expression) *MethodCallExpression {
	return &MethodCallExpression{nodeImpl: newNodeImpl(NodeMethodCallExpression), Receiver: receiver, Method: method, Arguments: arguments}
}

// MemberAccessExpression's Member is an Identifier (field name) or an
// IntegerLiteral (tuple position).
type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object" yaml:"object"`
	Member Expression `json:"member" yaml:"member"`
}

func NewMemberAccessExpression(object, member Expression) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Member: member}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object" yaml:"object"`
	Index  Expression `json:"index" yaml:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

type LambdaExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Params []*FunctionParameter `json:"params" yaml:"params"`
	Body   Expression           `json:"body" yaml:"body"`
}

func NewLambdaExpression(params []*FunctionParameter, body Expression) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, Body: body}
}

type BlockExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body []Statement `json:"body" yaml:"body"`
}

func NewBlockExpression(body []Statement) *BlockExpression {
	return &BlockExpression{nodeImpl: newNodeImpl(NodeBlockExpression), Body: body}
}

// OrClause is an `else` / `else if` arm; a nil Condition is the final
// else.
type OrClause struct {
	nodeImpl

	Condition Expression       `json:"condition,omitempty" yaml:"condition,omitempty"`
	Body      *BlockExpression `json:"body" yaml:"body"`
}

func NewOrClause(condition Expression, body *BlockExpression) *OrClause {
	return &OrClause{nodeImpl: newNodeImpl(NodeOrClause), Condition: condition, Body: body}
}

type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	IfCondition Expression       `json:"ifCondition" yaml:"ifCondition"`
	IfBody      *BlockExpression `json:"ifBody" yaml:"ifBody"`
	OrClauses   []*OrClause      `json:"orClauses,omitempty" yaml:"orClauses,omitempty"`
}

func NewIfExpression(condition Expression, body *BlockExpression, orClauses []*OrClause) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), IfCondition: condition, IfBody: body, OrClauses: orClauses}
}

type MatchClause struct {
	nodeImpl

	Pattern Pattern    `json:"pattern" yaml:"pattern"`
	Guard   Expression `json:"guard,omitempty" yaml:"guard,omitempty"`
	Body    Expression `json:"body" yaml:"body"`
}

func NewMatchClause(pattern Pattern, guard Expression, body Expression) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Guard: guard, Body: body}
}

type MatchExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Subject Expression     `json:"subject" yaml:"subject"`
	Clauses []*MatchClause `json:"clauses" yaml:"clauses"`
}

func NewMatchExpression(subject Expression, clauses []*MatchClause) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Clauses: clauses}
}

// Actor expressions

type SpawnExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Actor     *Identifier  `json:"actor" yaml:"actor"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewSpawnExpression(actor *Identifier, arguments []Expression) *SpawnExpression {
	return &SpawnExpression{nodeImpl: newNodeImpl(NodeSpawnExpression), Actor: actor, Arguments: arguments}
}

type SendExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Actor     Expression   `json:"actor" yaml:"actor"`
	Message   *Identifier  `json:"message" yaml:"message"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewSendExpression(actor Expression, message *Identifier, arguments []Expression) *SendExpression {
	return &SendExpression{nodeImpl: newNodeImpl(NodeSendExpression), Actor: actor, Message: message, Arguments: arguments}
}

type AskExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Actor     Expression   `json:"actor" yaml:"actor"`
	Message   *Identifier  `json:"message" yaml:"message"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewAskExpression(actor Expression, message *Identifier, arguments []Expression) *AskExpression {
	return &AskExpression{nodeImpl: newNodeImpl(NodeAskExpression), Actor: actor, Message: message, Arguments: arguments}
}
