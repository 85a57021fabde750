package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/driver"
	"ruchy/interpreter-go/pkg/interpreter"
	"ruchy/interpreter-go/pkg/runtime"
)

// runRepl reads a stream of YAML documents, each one a serialized
// statement or module, and evaluates them against a single persistent
// session. Definitions from earlier documents stay visible.
func runRepl(input io.Reader) int {
	interp := interpreter.New()
	env := runtime.NewEnvironment(interp.GlobalEnvironment())
	decoder := yaml.NewDecoder(input)

	for {
		var raw map[string]any
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return 0
			}
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			return 1
		}
		node, err := driver.DecodeNode(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
			continue
		}
		value, err := evalReplNode(interp, env, node)
		if err != nil {
			if fault, ok := runtime.AsFault(err); ok {
				fmt.Fprintf(os.Stderr, "fault %s: %s\n", fault.Code, fault.Message)
			} else {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			continue
		}
		if _, isNil := value.(runtime.NilValue); !isNil {
			fmt.Fprintln(os.Stdout, interp.Stringify(value))
		}
	}
}

func evalReplNode(interp *interpreter.Interpreter, env *runtime.Environment, node ast.Node) (runtime.Value, error) {
	if module, ok := node.(*ast.Module); ok {
		var result runtime.Value = runtime.NilValue{}
		for _, stmt := range module.Body {
			value, err := interp.EvaluateStatement(stmt, env)
			if err != nil {
				return nil, err
			}
			result = value
		}
		return result, nil
	}
	stmt, ok := node.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("document is not a statement: %s", node.NodeType())
	}
	return interp.EvaluateStatement(stmt, env)
}
