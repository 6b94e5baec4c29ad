package analyzer

import (
	"fmt"
	"io"

	"github.com/viant/boundary/inspector/graph"
	"gopkg.in/yaml.v3"
)

// IRNode represents a file node in the exported graph.
type IRNode struct {
	ID         string                 `yaml:"id"`
	Type       string                 `yaml:"type"` // classification
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// IREdge represents a resolved import in the exported graph.
type IREdge struct {
	Source string `yaml:"source"` // importer
	Target string `yaml:"target"` // imported file
	Type   string `yaml:"type"`
}

// IRGraph holds the nodes and edges handed to exporters.
type IRGraph struct {
	Nodes []IRNode `yaml:"nodes"`
	Edges []IREdge `yaml:"edges"`
}

// GraphExporter defines an interface to export a classified graph to a storage backend.
type GraphExporter interface {
	Export(graph *IRGraph) error
}

// WithGraphExporter registers a GraphExporter to send the IRGraph after analysis.
func WithGraphExporter(exporter GraphExporter) Option {
	return func(a *Analyzer) {
		a.graphExporter = exporter
	}
}

// BuildIRGraph converts a classified graph into nodes and edges in sorted order.
func BuildIRGraph(g *graph.Graph) *IRGraph {
	ret := &IRGraph{}
	views := g.Nodes()
	for _, id := range g.IDs() {
		view := views[id]
		ret.Nodes = append(ret.Nodes, IRNode{
			ID:   string(id),
			Type: view.Classification.String(),
			Properties: map[string]interface{}{
				"declared":   view.Declared,
				"discovered": view.Discovered,
				"excluded":   view.Excluded,
				"hash":       fmt.Sprintf("%016x", view.Hash),
			},
		})
		for _, target := range view.Imports {
			ret.Edges = append(ret.Edges, IREdge{Source: string(id), Target: string(target), Type: "import"})
		}
	}
	return ret
}

// YAMLExporter writes the graph as a YAML document
type YAMLExporter struct {
	writer io.Writer
}

// NewYAMLExporter creates an exporter writing to w
func NewYAMLExporter(w io.Writer) *YAMLExporter {
	return &YAMLExporter{writer: w}
}

func (e *YAMLExporter) Export(graph *IRGraph) error {
	encoder := yaml.NewEncoder(e.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return encoder.Close()
}
