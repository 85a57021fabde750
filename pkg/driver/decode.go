package driver

import (
	"fmt"

	"ruchy/interpreter-go/pkg/ast"
)

// DecodeNode converts a YAML-decoded mapping into an AST node. Module
// files carry the node type under the "type" key; the remaining keys
// match the ast struct tags.
func DecodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	switch typ {
	case "Module":
		stmts, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewModule(stmts), nil
	case "Identifier":
		name, _ := node["name"].(string)
		return ast.NewIdentifier(name), nil
	case "StringLiteral":
		val, _ := node["value"].(string)
		return ast.NewStringLiteral(val), nil
	case "IntegerLiteral":
		val, err := decodeInt(node["value"])
		if err != nil {
			return nil, fmt.Errorf("integer literal: %w", err)
		}
		return ast.NewIntegerLiteral(val), nil
	case "FloatLiteral":
		val, err := decodeFloat(node["value"])
		if err != nil {
			return nil, fmt.Errorf("float literal: %w", err)
		}
		return ast.NewFloatLiteral(val), nil
	case "BooleanLiteral":
		val, _ := node["value"].(bool)
		return ast.NewBooleanLiteral(val), nil
	case "NilLiteral":
		return ast.NewNilLiteral(), nil
	case "ArrayLiteral":
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return ast.NewArrayLiteral(elements), nil
	case "TupleLiteral":
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return ast.NewTupleLiteral(elements), nil
	case "ObjectField":
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewObjectField(name, value), nil
	case "ObjectLiteral":
		rawFields, _ := node["fields"].([]any)
		fields := make([]*ast.ObjectField, 0, len(rawFields))
		for _, raw := range rawFields {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			field, ok := child.(*ast.ObjectField)
			if !ok {
				return nil, fmt.Errorf("invalid object field %T", child)
			}
			fields = append(fields, field)
		}
		mutable, _ := node["mutable"].(bool)
		return ast.NewObjectLiteral(fields, mutable), nil
	case "StringInterpolation":
		parts, err := decodeExpressions(node["parts"])
		if err != nil {
			return nil, err
		}
		return ast.NewStringInterpolation(parts), nil
	case "WildcardPattern":
		return ast.NewWildcardPattern(), nil
	case "LiteralPattern":
		child, err := decodeChild(node["literal"])
		if err != nil {
			return nil, err
		}
		lit, ok := child.(ast.Literal)
		if !ok {
			return nil, fmt.Errorf("invalid pattern literal %T", child)
		}
		return ast.NewLiteralPattern(lit), nil
	case "TuplePattern":
		elements, err := decodePatterns(node["elements"])
		if err != nil {
			return nil, err
		}
		return ast.NewTuplePattern(elements), nil
	case "ArrayPattern":
		elements, err := decodePatterns(node["elements"])
		if err != nil {
			return nil, err
		}
		suffix, err := decodePatterns(node["suffix"])
		if err != nil {
			return nil, err
		}
		hasRest, _ := node["hasRest"].(bool)
		var rest *ast.Identifier
		if raw, ok := node["restName"].(map[string]any); ok {
			rest, err = decodeIdentifier(raw)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewArrayPattern(elements, hasRest, rest, suffix), nil
	case "RangePattern":
		start, err := decodeLiteralField(node, "start")
		if err != nil {
			return nil, err
		}
		end, err := decodeLiteralField(node, "end")
		if err != nil {
			return nil, err
		}
		inclusive, _ := node["inclusive"].(bool)
		return ast.NewRangePattern(start, end, inclusive), nil
	case "OrPattern":
		alternatives, err := decodePatterns(node["alternatives"])
		if err != nil {
			return nil, err
		}
		return ast.NewOrPattern(alternatives), nil
	case "StructPatternField":
		name, err := decodeIdentifierField(node, "fieldName")
		if err != nil {
			return nil, err
		}
		pattern, err := decodePatternField(node, "pattern")
		if err != nil {
			return nil, err
		}
		return ast.NewStructPatternField(name, pattern), nil
	case "StructPattern":
		var class *ast.Identifier
		if raw, ok := node["className"].(map[string]any); ok {
			decoded, err := decodeIdentifier(raw)
			if err != nil {
				return nil, err
			}
			class = decoded
		}
		rawFields, _ := node["fields"].([]any)
		fields := make([]*ast.StructPatternField, 0, len(rawFields))
		for _, raw := range rawFields {
			child, err := decodeChild(raw)
			if err != nil {
				return nil, err
			}
			field, ok := child.(*ast.StructPatternField)
			if !ok {
				return nil, fmt.Errorf("invalid struct pattern field %T", child)
			}
			fields = append(fields, field)
		}
		return ast.NewStructPattern(class, fields), nil
	default:
		return decodeExpressionNode(node, typ)
	}
}

func decodeChild(raw any) (ast.Node, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected node mapping, got %T", raw)
	}
	return DecodeNode(child)
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	items, _ := raw.([]any)
	stmts := make([]ast.Statement, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		stmt, ok := child.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("invalid statement %T", child)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpressions(raw any) ([]ast.Expression, error) {
	items, _ := raw.([]any)
	exprs := make([]ast.Expression, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		expr, ok := child.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("invalid expression %T", child)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodePatterns(raw any) ([]ast.Pattern, error) {
	items, _ := raw.([]any)
	patterns := make([]ast.Pattern, 0, len(items))
	for _, item := range items {
		child, err := decodeChild(item)
		if err != nil {
			return nil, err
		}
		pattern, ok := child.(ast.Pattern)
		if !ok {
			return nil, fmt.Errorf("invalid pattern %T", child)
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func decodeExpressionField(node map[string]any, key string) (ast.Expression, error) {
	child, err := decodeChild(node[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	expr, ok := child.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%s: invalid expression %T", key, child)
	}
	return expr, nil
}

func decodePatternField(node map[string]any, key string) (ast.Pattern, error) {
	child, err := decodeChild(node[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	pattern, ok := child.(ast.Pattern)
	if !ok {
		return nil, fmt.Errorf("%s: invalid pattern %T", key, child)
	}
	return pattern, nil
}

func decodeLiteralField(node map[string]any, key string) (ast.Literal, error) {
	child, err := decodeChild(node[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	lit, ok := child.(ast.Literal)
	if !ok {
		return nil, fmt.Errorf("%s: invalid literal %T", key, child)
	}
	return lit, nil
}

func decodeIdentifier(raw map[string]any) (*ast.Identifier, error) {
	child, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	id, ok := child.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("expected identifier, got %T", child)
	}
	return id, nil
}

func decodeIdentifierField(node map[string]any, key string) (*ast.Identifier, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected identifier mapping, got %T", key, node[key])
	}
	return decodeIdentifier(raw)
}

func decodeOptionalIdentifier(node map[string]any, key string) (*ast.Identifier, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, nil
	}
	return decodeIdentifier(raw)
}

func decodeBlockField(node map[string]any, key string) (*ast.BlockExpression, error) {
	child, err := decodeChild(node[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	block, ok := child.(*ast.BlockExpression)
	if !ok {
		return nil, fmt.Errorf("%s: expected block, got %T", key, child)
	}
	return block, nil
}

// decodeInt accepts the numeric shapes the YAML decoder produces.
func decodeInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func decodeFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", raw)
	}
}
