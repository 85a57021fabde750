package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ruchy/interpreter-go/pkg/ast"
)

// Module is one loaded program unit: the decoded AST plus where it
// came from.
type Module struct {
	Path string
	AST  *ast.Module
}

// Program is an ordered set of modules evaluated front to back within
// one session. The entry module comes last so its result is the
// program result.
type Program struct {
	Entry   *Module
	Modules []*Module
}

// LoadModule reads a serialized module file. Programs ship as YAML
// documents whose root node is a Module mapping.
func LoadModule(path string) (*Module, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("module: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("module: open %s: %w", absPath, err)
	}
	defer file.Close()

	mod, err := decodeModule(file)
	if err != nil {
		return nil, fmt.Errorf("module: %s: %w", absPath, err)
	}
	return &Module{Path: absPath, AST: mod}, nil
}

// LoadProgram loads setup modules plus a final entry module.
func LoadProgram(paths []string) (*Program, error) {
	if len(paths) == 0 {
		return nil, errors.New("program: no module files given")
	}
	modules := make([]*Module, 0, len(paths))
	for _, path := range paths {
		mod, err := LoadModule(path)
		if err != nil {
			return nil, err
		}
		modules = append(modules, mod)
	}
	return &Program{Entry: modules[len(modules)-1], Modules: modules}, nil
}

func decodeModule(r io.Reader) (*ast.Module, error) {
	var raw map[string]any
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty module document")
		}
		return nil, err
	}
	node, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	mod, ok := node.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("root node is %T, expected module", node)
	}
	return mod, nil
}
