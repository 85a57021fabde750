package driver

import (
	"fmt"

	"ruchy/interpreter-go/pkg/ast"
)

func decodeExpressionNode(node map[string]any, typ string) (ast.Node, error) {
	switch typ {
	case "UnaryExpression":
		op, _ := node["operator"].(string)
		operand, err := decodeExpressionField(node, "operand")
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op, operand), nil
	case "BinaryExpression":
		op, _ := node["operator"].(string)
		left, err := decodeExpressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(op, left, right), nil
	case "AssignmentExpression":
		op, _ := node["operator"].(string)
		left, err := decodeChild(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression(ast.AssignmentOperator(op), left, right), nil
	case "RangeExpression":
		start, err := decodeExpressionField(node, "start")
		if err != nil {
			return nil, err
		}
		end, err := decodeExpressionField(node, "end")
		if err != nil {
			return nil, err
		}
		inclusive, _ := node["inclusive"].(bool)
		return ast.NewRangeExpression(start, end, inclusive), nil
	case "FunctionCall":
		callee, err := decodeExpressionField(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(callee, args), nil
	case "MethodCallExpression":
		receiver, err := decodeExpressionField(node, "receiver")
		if err != nil {
			return nil, err
		}
		method, err := decodeIdentifierField(node, "method")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewMethodCallExpression(receiver, method, args), nil
	case "MemberAccessExpression":
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		member, err := decodeExpressionField(node, "member")
		if err != nil {
			return nil, err
		}
		return ast.NewMemberAccessExpression(object, member), nil
	case "IndexExpression":
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		index, err := decodeExpressionField(node, "index")
		if err != nil {
			return nil, err
		}
		return ast.NewIndexExpression(object, index), nil
	case "LambdaExpression":
		params, err := decodeParams(node["params"])
		if err != nil {
			return nil, err
		}
		body, err := decodeExpressionField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewLambdaExpression(params, body), nil
	case "BlockExpression":
		stmts, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewBlockExpression(stmts), nil
	case "OrClause":
		var condition ast.Expression
		if _, ok := node["condition"].(map[string]any); ok {
			decoded, err := decodeExpressionField(node, "condition")
			if err != nil {
				return nil, err
			}
			condition = decoded
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewOrClause(condition, body), nil
	case "IfExpression":
		condition, err := decodeExpressionField(node, "ifCondition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "ifBody")
		if err != nil {
			return nil, err
		}
		rawClauses, _ := node["orClauses"].([]any)
		clauses := make([]*ast.OrClause, 0, len(rawClauses))
		for _, raw := range rawClauses {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			clause, ok := child.(*ast.OrClause)
			if !ok {
				return nil, fmt.Errorf("invalid or clause %T", child)
			}
			clauses = append(clauses, clause)
		}
		return ast.NewIfExpression(condition, body, clauses), nil
	case "MatchClause":
		pattern, err := decodePatternField(node, "pattern")
		if err != nil {
			return nil, err
		}
		var guard ast.Expression
		if _, ok := node["guard"].(map[string]any); ok {
			decoded, err := decodeExpressionField(node, "guard")
			if err != nil {
				return nil, err
			}
			guard = decoded
		}
		body, err := decodeExpressionField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewMatchClause(pattern, guard, body), nil
	case "MatchExpression":
		subject, err := decodeExpressionField(node, "subject")
		if err != nil {
			return nil, err
		}
		rawClauses, _ := node["clauses"].([]any)
		clauses := make([]*ast.MatchClause, 0, len(rawClauses))
		for _, raw := range rawClauses {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			clause, ok := child.(*ast.MatchClause)
			if !ok {
				return nil, fmt.Errorf("invalid match clause %T", child)
			}
			clauses = append(clauses, clause)
		}
		return ast.NewMatchExpression(subject, clauses), nil
	case "SpawnExpression":
		actor, err := decodeIdentifierField(node, "actor")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewSpawnExpression(actor, args), nil
	case "SendExpression":
		actor, err := decodeExpressionField(node, "actor")
		if err != nil {
			return nil, err
		}
		message, err := decodeIdentifierField(node, "message")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewSendExpression(actor, message, args), nil
	case "AskExpression":
		actor, err := decodeExpressionField(node, "actor")
		if err != nil {
			return nil, err
		}
		message, err := decodeIdentifierField(node, "message")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewAskExpression(actor, message, args), nil
	case "WhileLoop":
		label, err := decodeOptionalIdentifier(node, "label")
		if err != nil {
			return nil, err
		}
		condition, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewWhileLoop(label, condition, body), nil
	case "ForLoop":
		label, err := decodeOptionalIdentifier(node, "label")
		if err != nil {
			return nil, err
		}
		pattern, err := decodePatternField(node, "pattern")
		if err != nil {
			return nil, err
		}
		iterable, err := decodeExpressionField(node, "iterable")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewForLoop(label, pattern, iterable, body), nil
	case "LoopExpression":
		label, err := decodeOptionalIdentifier(node, "label")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewLoopExpression(label, body), nil
	case "BreakStatement":
		label, err := decodeOptionalIdentifier(node, "label")
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if _, ok := node["value"].(map[string]any); ok {
			decoded, err := decodeExpressionField(node, "value")
			if err != nil {
				return nil, err
			}
			value = decoded
		}
		return ast.NewBreakStatement(label, value), nil
	case "ContinueStatement":
		label, err := decodeOptionalIdentifier(node, "label")
		if err != nil {
			return nil, err
		}
		return ast.NewContinueStatement(label), nil
	case "ReturnStatement":
		var argument ast.Expression
		if _, ok := node["argument"].(map[string]any); ok {
			decoded, err := decodeExpressionField(node, "argument")
			if err != nil {
				return nil, err
			}
			argument = decoded
		}
		return ast.NewReturnStatement(argument), nil
	case "FunctionParameter":
		pattern, err := decodePatternField(node, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionParameter(pattern), nil
	case "FunctionDefinition":
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		params, err := decodeParams(node["params"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(id, params, body), nil
	case "FieldDefinition":
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		var def ast.Expression
		if _, ok := node["default"].(map[string]any); ok {
			decoded, err := decodeExpressionField(node, "default")
			if err != nil {
				return nil, err
			}
			def = decoded
		}
		return ast.NewFieldDefinition(name, def), nil
	case "ClassDefinition":
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		fields, err := decodeFieldDefinitions(node["fields"])
		if err != nil {
			return nil, err
		}
		constructor, err := decodeOptionalFunction(node, "constructor")
		if err != nil {
			return nil, err
		}
		methods, err := decodeFunctionList(node["methods"])
		if err != nil {
			return nil, err
		}
		return ast.NewClassDefinition(id, fields, constructor, methods), nil
	case "ReceiveHandler":
		messageType, err := decodeIdentifierField(node, "messageType")
		if err != nil {
			return nil, err
		}
		params, err := decodeParams(node["params"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewReceiveHandler(messageType, params, body), nil
	case "ActorDefinition":
		id, err := decodeIdentifierField(node, "id")
		if err != nil {
			return nil, err
		}
		fields, err := decodeFieldDefinitions(node["fields"])
		if err != nil {
			return nil, err
		}
		constructor, err := decodeOptionalFunction(node, "constructor")
		if err != nil {
			return nil, err
		}
		methods, err := decodeFunctionList(node["methods"])
		if err != nil {
			return nil, err
		}
		rawHandlers, _ := node["handlers"].([]any)
		handlers := make([]*ast.ReceiveHandler, 0, len(rawHandlers))
		for _, raw := range rawHandlers {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			handler, ok := child.(*ast.ReceiveHandler)
			if !ok {
				return nil, fmt.Errorf("invalid receive handler %T", child)
			}
			handlers = append(handlers, handler)
		}
		return ast.NewActorDefinition(id, fields, constructor, methods, handlers), nil
	default:
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
}

func decodeParams(raw any) ([]*ast.FunctionParameter, error) {
	items, _ := raw.([]any)
	params := make([]*ast.FunctionParameter, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		param, ok := child.(*ast.FunctionParameter)
		if !ok {
			return nil, fmt.Errorf("invalid function parameter %T", child)
		}
		params = append(params, param)
	}
	return params, nil
}

func decodeFieldDefinitions(raw any) ([]*ast.FieldDefinition, error) {
	items, _ := raw.([]any)
	fields := make([]*ast.FieldDefinition, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		field, ok := child.(*ast.FieldDefinition)
		if !ok {
			return nil, fmt.Errorf("invalid field definition %T", child)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func decodeFunctionList(raw any) ([]*ast.FunctionDefinition, error) {
	items, _ := raw.([]any)
	fns := make([]*ast.FunctionDefinition, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		fn, ok := child.(*ast.FunctionDefinition)
		if !ok {
			return nil, fmt.Errorf("invalid function definition %T", child)
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func decodeOptionalFunction(node map[string]any, key string) (*ast.FunctionDefinition, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, nil
	}
	child, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	fn, ok := child.(*ast.FunctionDefinition)
	if !ok {
		return nil, fmt.Errorf("%s: expected function definition, got %T", key, child)
	}
	return fn, nil
}
