package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/boundary/inspector/graph"
)

// findImports returns top level static imports and re-exports in source order
func findImports(statements []*sitter.Node, src []byte) []graph.Import {
	var result []graph.Import
	for _, node := range statements {
		switch node.Type() {
		case "import_statement", "export_statement":
		default:
			continue
		}
		source := node.ChildByFieldName("source")
		if source == nil || source.Type() != "string" || isTypeOnly(node) {
			continue
		}
		specifier := stringValue(source, src)
		if specifier == "" {
			continue
		}
		form := graph.ImportReExport
		if node.Type() == "import_statement" {
			form = importForm(node)
		}
		result = append(result, graph.Import{
			Specifier: specifier,
			Form:      form,
			Line:      int(node.StartPoint().Row) + 1,
		})
	}
	return result
}

// isTypeOnly detects `import type` / `export type` statements, erased at compile time
func isTypeOnly(node *sitter.Node) bool {
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if !child.IsNamed() && child.Type() == "type" {
			return true
		}
	}
	return false
}

func importForm(node *sitter.Node) graph.ImportForm {
	var clause *sitter.Node
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child.Type() == "import_clause" {
			clause = child
			break
		}
	}
	if clause == nil {
		return graph.ImportSideEffect
	}
	form := graph.ImportNamed
	for j := 0; j < int(clause.NamedChildCount()); j++ {
		switch clause.NamedChild(j).Type() {
		case "identifier":
			return graph.ImportDefault
		case "namespace_import":
			form = graph.ImportNamespace
		}
	}
	return form
}
