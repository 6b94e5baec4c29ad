package graph

import (
	"fmt"
	"sort"
)

// Graph represents the import graph of a single analysis run.
// Nodes and edges are created during build; afterwards only Classify mutates node classification.
type Graph struct {
	nodes map[FileID]*Node
}

// New creates an empty graph
func New() *Graph {
	return &Graph{nodes: map[FileID]*Node{}}
}

// AddNode creates a node if absent. A ghost node is upgraded when the same file is later discovered.
func (g *Graph) AddNode(id FileID, discovered bool) *Node {
	if node, ok := g.nodes[id]; ok {
		if discovered {
			node.Discovered = true
			node.Excluded = false
		}
		return node
	}
	node := newNode(id, discovered)
	g.nodes[id] = node
	return node
}

// AddEdge wires importer -> target and its mirror; both nodes must exist
func (g *Graph) AddEdge(from, to FileID) error {
	source, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("unknown importer node: %s", from)
	}
	target, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("unknown target node: %s", to)
	}
	source.edges[to] = struct{}{}
	target.importedBy[from] = struct{}{}
	return nil
}

// Node returns node by id
func (g *Graph) Node(id FileID) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Len returns number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IDs returns all node ids, sorted
func (g *Graph) IDs() []FileID {
	result := make([]FileID, 0, len(g.nodes))
	for id := range g.nodes {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Nodes returns a read-only snapshot of every node
func (g *Graph) Nodes() map[FileID]NodeView {
	result := make(map[FileID]NodeView, len(g.nodes))
	for id, node := range g.nodes {
		result[id] = node.view()
	}
	return result
}

// Roots returns nodes under dir that are not imported by any node from the same subtree, sorted
func (g *Graph) Roots(dir string) []FileID {
	var result []FileID
	for _, id := range g.IDs() {
		if !id.Under(dir) {
			continue
		}
		isRoot := true
		for importer := range g.nodes[id].importedBy {
			if importer.Under(dir) {
				isRoot = false
				break
			}
		}
		if isRoot {
			result = append(result, id)
		}
	}
	return result
}

// Stats summarizes the graph
type Stats struct {
	Nodes    int `json:"nodes" yaml:"nodes"`
	Ghosts   int `json:"ghosts" yaml:"ghosts"`
	Excluded int `json:"excluded" yaml:"excluded"`
	Edges    int `json:"edges" yaml:"edges"`
	Client   int `json:"client" yaml:"client"`
	Server   int `json:"server" yaml:"server"`
}

// Stats counts nodes, ghosts, excluded ghosts, edges and classifications
func (g *Graph) Stats() Stats {
	stats := Stats{Nodes: len(g.nodes)}
	for _, node := range g.nodes {
		if !node.Discovered {
			stats.Ghosts++
		}
		if node.Excluded {
			stats.Excluded++
		}
		stats.Edges += len(node.edges)
		switch node.Classification {
		case Client:
			stats.Client++
		case Server:
			stats.Server++
		}
	}
	return stats
}
