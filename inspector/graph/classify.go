package graph

// Summary reports the outcome of Classify
type Summary struct {
	Client int `json:"client" yaml:"client"`
	Server int `json:"server" yaml:"server"`
}

// Classify computes the least fixed point of client membership.
// Declared nodes are client; a node becomes client when any of its importers is client.
// It reads only edges, importers and declarations, performs no I/O and never demotes a client node,
// so calling it again on the same graph yields the same classification.
func Classify(g *Graph) Summary {
	var queue []*Node
	for _, id := range g.IDs() {
		node := g.nodes[id]
		switch {
		case node.Declared || node.Classification == Client:
			node.Classification = Client
			queue = append(queue, node)
		case node.Classification == Unclassified:
			node.Classification = Server
		}
	}

	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for target := range node.edges {
			imported := g.nodes[target]
			if imported.Classification == Client {
				continue
			}
			imported.Classification = Client
			queue = append(queue, imported)
		}
	}

	summary := Summary{}
	for _, node := range g.nodes {
		if node.Classification == Client {
			summary.Client++
		} else {
			summary.Server++
		}
	}
	return summary
}
