package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSimGraph(t *testing.T) {
	for _, test := range []struct {
		Name       string
		Graph      *Graph
		Assertions func(t *testing.T, sg *simGraph)
	}{
		{
			Name: "node dimensions are clamped to at least 1 and rects centered on the position",
			Graph: &Graph{
				Nodes: []*Node{
					{ID: "a", Width: 10, Height: 20, X: 100, Y: 50},
					{ID: "b"},
				},
			},
			Assertions: func(t *testing.T, sg *simGraph) {
				assert := assert.New(t)
				assert.Equal(95.0, sg.nodes[0].left)
				assert.Equal(40.0, sg.nodes[0].top)
				assert.Equal(100.0, sg.nodes[0].centerX())
				assert.Equal(50.0, sg.nodes[0].centerY())
				assert.Equal(1.0, sg.nodes[1].width)
				assert.Equal(1.0, sg.nodes[1].height)
			},
		},
		{
			Name: "self loops and duplicate edges are dropped",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}},
				Edges: []*Edge{
					{Source: "a", Target: "a"},
					{Source: "a", Target: "b"},
					{Source: "b", Target: "a"},
					{Source: "a", Target: "b"},
				},
			},
			Assertions: func(t *testing.T, sg *simGraph) {
				assert := assert.New(t)
				assert.Len(sg.edges, 1)
				assert.Equal([]int{0}, sg.nodes[0].edges)
				assert.Equal([]int{0}, sg.nodes[1].edges)
			},
		},
		{
			Name: "edges with unknown endpoints are ignored",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}},
				Edges: []*Edge{{Source: "a", Target: "nope"}},
			},
			Assertions: func(t *testing.T, sg *simGraph) {
				assert.Empty(t, sg.edges)
			},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			test.Assertions(t, newSimGraph(test.Graph))
		})
	}
}

func TestSimGraph_isConnected(t *testing.T) {
	for _, test := range []struct {
		Name   string
		Graph  *Graph
		Expect bool
	}{
		{
			Name: "path graph is connected",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []*Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
			},
			Expect: true,
		},
		{
			Name: "isolated node disconnects the graph",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []*Edge{{Source: "a", Target: "b"}},
			},
			Expect: false,
		},
		{
			Name:   "empty graph counts as connected",
			Graph:  &Graph{},
			Expect: true,
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expect, newSimGraph(test.Graph).isConnected())
		})
	}
}

func TestSimGraph_estimatedSize(t *testing.T) {
	sg := newSimGraph(&Graph{Nodes: []*Node{
		{ID: "a", Width: 50, Height: 50},
		{ID: "b", Width: 50, Height: 50},
		{ID: "c", Width: 50, Height: 50},
		{ID: "d", Width: 50, Height: 50},
	}})
	// sum of per-node extents 200, divided by sqrt(4)
	assert.InDelta(t, 100.0, sg.estimatedSize(), 1e-9)
}

func TestSimGraph_activeDegree(t *testing.T) {
	sg := newSimGraph(&Graph{
		Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []*Edge{{Source: "a", Target: "b"}, {Source: "a", Target: "c"}},
	})
	assert := assert.New(t)
	assert.Equal(2, sg.activeDegree(0))
	sg.edges[1].active = false
	assert.Equal(1, sg.activeDegree(0))
	assert.Equal(0, sg.activeDegree(2))
	assert.Equal(0, sg.firstActiveEdge(0))
	assert.Equal(-1, sg.firstActiveEdge(2))
}

func TestSimGraph_activeBounds(t *testing.T) {
	sg := newSimGraph(&Graph{Nodes: []*Node{
		{ID: "a", Width: 10, Height: 10, X: 5, Y: 5},
		{ID: "b", Width: 10, Height: 10, X: 105, Y: 55},
	}})
	bounds := sg.activeBounds()
	assert := assert.New(t)
	assert.Equal(0.0, bounds.x)
	assert.Equal(0.0, bounds.y)
	assert.Equal(110.0, bounds.width)
	assert.Equal(60.0, bounds.height)
}
