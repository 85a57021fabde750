package ast

// Loops and control statements

type WhileLoop struct {
	nodeImpl
	expressionMarker
	statementMarker

	Label     *Identifier      `json:"label,omitempty" yaml:"label,omitempty"`
	Condition Expression       `json:"condition" yaml:"condition"`
	Body      *BlockExpression `json:"body" yaml:"body"`
}

func NewWhileLoop(label *Identifier, condition Expression, body *BlockExpression) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Label: label, Condition: condition, Body: body}
}

type ForLoop struct {
	nodeImpl
	expressionMarker
	statementMarker

	Label    *Identifier      `json:"label,omitempty" yaml:"label,omitempty"`
	Pattern  Pattern          `json:"pattern" yaml:"pattern"`
	Iterable Expression       `json:"iterable" yaml:"iterable"`
	Body     *BlockExpression `json:"body" yaml:"body"`
}

func NewForLoop(label *Identifier, pattern Pattern, iterable Expression, body *BlockExpression) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Label: label, Pattern: pattern, Iterable: iterable, Body: body}
}

// LoopExpression runs until a break unwinds it.
type LoopExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Label *Identifier      `json:"label,omitempty" yaml:"label,omitempty"`
	Body  *BlockExpression `json:"body" yaml:"body"`
}

func NewLoopExpression(label *Identifier, body *BlockExpression) *LoopExpression {
	return &LoopExpression{nodeImpl: newNodeImpl(NodeLoopExpression), Label: label, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty" yaml:"label,omitempty"`
	Value Expression  `json:"value,omitempty" yaml:"value,omitempty"`
}

func NewBreakStatement(label *Identifier, value Expression) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Label: label, Value: value}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty" yaml:"label,omitempty"`
}

func NewContinueStatement(label *Identifier) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Label: label}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty" yaml:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// Functions

type FunctionParameter struct {
	nodeImpl

	Name Pattern `json:"name" yaml:"name"`
}

func NewFunctionParameter(name Pattern) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier          `json:"id" yaml:"id"`
	Params []*FunctionParameter `json:"params" yaml:"params"`
	Body   *BlockExpression     `json:"body" yaml:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*FunctionParameter, body *BlockExpression) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

// Classes

// FieldDefinition declares an instance field; Default (optional) is
// evaluated in the definition environment at construction time.
type FieldDefinition struct {
	nodeImpl

	Name    *Identifier `json:"name" yaml:"name"`
	Default Expression  `json:"default,omitempty" yaml:"default,omitempty"`
}

func NewFieldDefinition(name *Identifier, def Expression) *FieldDefinition {
	return &FieldDefinition{nodeImpl: newNodeImpl(NodeFieldDefinition), Name: name, Default: def}
}

// ClassDefinition's Constructor is the optional `init` function; Methods
// run with `self` bound to the instance.
type ClassDefinition struct {
	nodeImpl
	statementMarker

	ID          *Identifier           `json:"id" yaml:"id"`
	Fields      []*FieldDefinition    `json:"fields" yaml:"fields"`
	Constructor *FunctionDefinition   `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Methods     []*FunctionDefinition `json:"methods,omitempty" yaml:"methods,omitempty"`
}

func NewClassDefinition(id *Identifier, fields []*FieldDefinition, constructor *FunctionDefinition, methods []*FunctionDefinition) *ClassDefinition {
	return &ClassDefinition{nodeImpl: newNodeImpl(NodeClassDefinition), ID: id, Fields: fields, Constructor: constructor, Methods: methods}
}

// Actors

// ReceiveHandler handles one message type; params bind the message
// payload positionally.
type ReceiveHandler struct {
	nodeImpl

	MessageType *Identifier          `json:"messageType" yaml:"messageType"`
	Params      []*FunctionParameter `json:"params" yaml:"params"`
	Body        *BlockExpression     `json:"body" yaml:"body"`
}

func NewReceiveHandler(messageType *Identifier, params []*FunctionParameter, body *BlockExpression) *ReceiveHandler {
	return &ReceiveHandler{nodeImpl: newNodeImpl(NodeReceiveHandler), MessageType: messageType, Params: params, Body: body}
}

type ActorDefinition struct {
	nodeImpl
	statementMarker

	ID          *Identifier           `json:"id" yaml:"id"`
	Fields      []*FieldDefinition    `json:"fields" yaml:"fields"`
	Constructor *FunctionDefinition   `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Methods     []*FunctionDefinition `json:"methods,omitempty" yaml:"methods,omitempty"`
	Handlers    []*ReceiveHandler     `json:"handlers" yaml:"handlers"`
}

func NewActorDefinition(id *Identifier, fields []*FieldDefinition, constructor *FunctionDefinition, methods []*FunctionDefinition, handlers []*ReceiveHandler) *ActorDefinition {
	return &ActorDefinition{nodeImpl: newNodeImpl(NodeActorDefinition), ID: id, Fields: fields, Constructor: constructor, Methods: methods, Handlers: handlers}
}

// Module

type Module struct {
	nodeImpl

	Body []Statement `json:"body" yaml:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}
