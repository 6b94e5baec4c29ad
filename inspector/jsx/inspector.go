package jsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Inspector scans JavaScript/TypeScript source for the boundary directive and static imports.
// It holds no per-file state and is safe for concurrent use.
type Inspector struct {
	language  *sitter.Language
	directive string
}

// NewInspector creates an inspector for the given tree-sitter grammar and directive literal
func NewInspector(language *sitter.Language, directive string) *Inspector {
	if language == nil {
		language = javascript.GetLanguage()
	}
	if directive == "" {
		directive = info.DefaultDirective
	}
	return &Inspector{language: language, directive: directive}
}

// Directive returns the recognized directive literal
func (i *Inspector) Directive() string {
	return i.directive
}

// InspectSource parses src and extracts the directive flag and import specifiers
func (i *Inspector) InspectSource(ctx context.Context, path string, src []byte) (*graph.File, error) {
	src = bytes.TrimPrefix(src, utf8BOM)
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(i.language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	statements := topLevel(tree.RootNode())
	return &graph.File{
		Path:      path,
		Directive: i.hasDirective(statements, src),
		Imports:   findImports(statements, src),
	}, nil
}

// topLevel returns the named children of root walking a cursor; indexed child access is linear per call
func topLevel(root *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	cursor := sitter.NewTreeCursor(root)
	if !cursor.GoToFirstChild() {
		return result
	}
	for {
		if node := cursor.CurrentNode(); node.IsNamed() {
			result = append(result, node)
		}
		if !cursor.GoToNextSibling() {
			return result
		}
	}
}

// hasDirective checks that the first statement is an expression made of the directive string only
func (i *Inspector) hasDirective(statements []*sitter.Node, src []byte) bool {
	for _, child := range statements {
		switch child.Type() {
		case "comment", "hash_bang_line":
			continue
		case "expression_statement":
			if child.NamedChildCount() != 1 {
				return false
			}
			literal := child.NamedChild(0)
			if literal.Type() != "string" {
				return false
			}
			value, ok := unquote(literal.Content(src))
			return ok && value == i.directive
		default:
			return false
		}
	}
	return false
}

// unquote strips matching single or double quotes
func unquote(literal string) (string, bool) {
	if len(literal) < 2 {
		return "", false
	}
	quote := literal[0]
	if (quote != '\'' && quote != '"') || literal[len(literal)-1] != quote {
		return "", false
	}
	return literal[1 : len(literal)-1], true
}

func stringValue(node *sitter.Node, src []byte) string {
	if value, ok := unquote(node.Content(src)); ok {
		return value
	}
	return strings.Trim(node.Content(src), "'\"`")
}
