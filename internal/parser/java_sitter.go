package parser

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaSitterParser trích xuất tên phương thức Java bằng tree-sitter.
// Backend thay thế, chính xác hơn regex nhưng cần cgo
type JavaSitterParser struct {
	query *sitter.Query
}

func NewJavaSitterParser() (*JavaSitterParser, error) {
	query, err := sitter.NewQuery(
		[]byte(`(method_declaration name: (identifier) @name)`),
		java.GetLanguage(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile tree-sitter query: %w", err)
	}
	return &JavaSitterParser{query: query}, nil
}

func (p *JavaSitterParser) Extract(path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(java.GetLanguage())

	tree, err := sp.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(p.query, tree.RootNode())

	var names []string
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			names = append(names, capture.Node.Content(source))
		}
	}
	return names, nil
}
