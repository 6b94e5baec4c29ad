package graph_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/boundary/inspector/graph"
)

type fixture struct {
	declared []string
	edges    [][2]string
	ghosts   []string
}

func (f fixture) build(t *testing.T, order []int) *graph.Graph {
	g := graph.New()
	ids := map[string]bool{}
	for _, edge := range f.edges {
		ids[edge[0]] = true
		ids[edge[1]] = true
	}
	for _, id := range f.declared {
		ids[id] = true
	}
	ghosts := map[string]bool{}
	for _, id := range f.ghosts {
		ghosts[id] = true
	}
	for id := range ids {
		g.AddNode(graph.FileID(id), !ghosts[id])
	}
	for _, id := range f.declared {
		node, _ := g.Node(graph.FileID(id))
		node.Declared = true
	}
	edges := f.edges
	if order != nil {
		edges = make([][2]string, len(f.edges))
		for i, j := range order {
			edges[i] = f.edges[j]
		}
	}
	for _, edge := range edges {
		require.NoError(t, g.AddEdge(graph.FileID(edge[0]), graph.FileID(edge[1])))
	}
	return g
}

func classifications(g *graph.Graph) map[graph.FileID]graph.Classification {
	result := map[graph.FileID]graph.Classification{}
	for id, view := range g.Nodes() {
		result[id] = view.Classification
	}
	return result
}

func TestClassify(t *testing.T) {
	var testCases = []struct {
		description string
		fixture     fixture
		expect      map[graph.FileID]graph.Classification
		summary     graph.Summary
	}{
		{
			description: "declared importer promotes imported file",
			fixture:     fixture{declared: []string{"/p/a.js"}, edges: [][2]string{{"/p/a.js", "/p/b.js"}}},
			expect:      map[graph.FileID]graph.Classification{"/p/a.js": graph.Client, "/p/b.js": graph.Client},
			summary:     graph.Summary{Client: 2},
		},
		{
			description: "no directive stays server",
			fixture:     fixture{edges: [][2]string{{"/p/a.js", "/p/b.js"}}},
			expect:      map[graph.FileID]graph.Classification{"/p/a.js": graph.Server, "/p/b.js": graph.Server},
			summary:     graph.Summary{Server: 2},
		},
		{
			description: "shared dependency does not promote sibling importer",
			fixture: fixture{
				declared: []string{"/p/a.js"},
				edges:    [][2]string{{"/p/a.js", "/p/b.js"}, {"/p/c.js", "/p/b.js"}},
			},
			expect:  map[graph.FileID]graph.Classification{"/p/a.js": graph.Client, "/p/b.js": graph.Client, "/p/c.js": graph.Server},
			summary: graph.Summary{Client: 2, Server: 1},
		},
		{
			description: "cycle terminates",
			fixture: fixture{
				declared: []string{"/p/a.js"},
				edges:    [][2]string{{"/p/a.js", "/p/b.js"}, {"/p/b.js", "/p/a.js"}},
			},
			expect:  map[graph.FileID]graph.Classification{"/p/a.js": graph.Client, "/p/b.js": graph.Client},
			summary: graph.Summary{Client: 2},
		},
		{
			description: "transitive chain and ghost",
			fixture: fixture{
				declared: []string{"/p/app/a.js"},
				edges: [][2]string{
					{"/p/app/a.js", "/p/app/b.js"},
					{"/p/app/b.js", "/p/lib/c.js"},
					{"/p/lib/c.js", "/p/lib/d.js"},
					{"/p/app/page.js", "/p/lib/e.js"},
				},
				ghosts: []string{"/p/lib/c.js", "/p/lib/d.js", "/p/lib/e.js"},
			},
			expect: map[graph.FileID]graph.Classification{
				"/p/app/a.js":    graph.Client,
				"/p/app/b.js":    graph.Client,
				"/p/lib/c.js":    graph.Client,
				"/p/lib/d.js":    graph.Client,
				"/p/app/page.js": graph.Server,
				"/p/lib/e.js":    graph.Server,
			},
			summary: graph.Summary{Client: 4, Server: 2},
		},
		{
			description: "declared leaf does not flow to importer",
			fixture: fixture{
				declared: []string{"/p/b.js"},
				edges:    [][2]string{{"/p/a.js", "/p/b.js"}},
			},
			expect:  map[graph.FileID]graph.Classification{"/p/a.js": graph.Server, "/p/b.js": graph.Client},
			summary: graph.Summary{Client: 1, Server: 1},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			g := testCase.fixture.build(t, nil)
			summary := graph.Classify(g)
			assert.Equal(t, testCase.summary, summary)
			assert.Equal(t, testCase.expect, classifications(g))
		})
	}
}

func TestClassify_Unclassified(t *testing.T) {
	g := graph.New()
	node := g.AddNode("/p/a.js", true)
	assert.Equal(t, graph.Unclassified, node.Classification)
	graph.Classify(g)
	assert.Equal(t, graph.Server, node.Classification)
}

func TestClassify_Idempotent(t *testing.T) {
	f := fixture{
		declared: []string{"/p/a.js"},
		edges:    [][2]string{{"/p/a.js", "/p/b.js"}, {"/p/b.js", "/p/c.js"}, {"/p/d.js", "/p/c.js"}},
	}
	g := f.build(t, nil)
	first := graph.Classify(g)
	before := classifications(g)
	second := graph.Classify(g)
	assert.Equal(t, first, second)
	assert.Equal(t, before, classifications(g))
}

func TestClassify_OrderIndependent(t *testing.T) {
	f := fixture{
		declared: []string{"/p/a.js", "/p/x.js"},
		edges: [][2]string{
			{"/p/a.js", "/p/b.js"}, {"/p/b.js", "/p/c.js"}, {"/p/c.js", "/p/a.js"},
			{"/p/d.js", "/p/e.js"}, {"/p/e.js", "/p/f.js"}, {"/p/x.js", "/p/f.js"},
			{"/p/f.js", "/p/g.js"}, {"/p/h.js", "/p/d.js"},
		},
	}
	expect := classifications(func() *graph.Graph {
		g := f.build(t, nil)
		graph.Classify(g)
		return g
	}())

	random := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		g := f.build(t, random.Perm(len(f.edges)))
		graph.Classify(g)
		assert.Equal(t, expect, classifications(g))
	}
	assert.Equal(t, graph.Server, expect["/p/d.js"])
	assert.Equal(t, graph.Client, expect["/p/g.js"])
}

// every client node is declared or imported by a client node
func TestClassify_LeastFixedPoint(t *testing.T) {
	f := fixture{
		declared: []string{"/p/a.js"},
		edges: [][2]string{
			{"/p/a.js", "/p/b.js"}, {"/p/c.js", "/p/b.js"}, {"/p/c.js", "/p/d.js"}, {"/p/b.js", "/p/e.js"},
		},
	}
	g := f.build(t, nil)
	graph.Classify(g)
	views := g.Nodes()
	for id, view := range views {
		if view.Classification != graph.Client {
			for _, importer := range view.ImportedBy {
				assert.NotEqual(t, graph.Client, views[importer].Classification, id)
			}
			continue
		}
		supported := view.Declared
		for _, importer := range view.ImportedBy {
			if views[importer].Classification == graph.Client {
				supported = true
			}
		}
		assert.True(t, supported, id)
	}
}
