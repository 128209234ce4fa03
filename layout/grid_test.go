package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGrid(t *testing.T) {
	sg := newSimGraph(&Graph{Nodes: []*Node{
		{ID: "a", Width: 10, Height: 10, X: 5, Y: 5},
		{ID: "b", Width: 10, Height: 10, X: 255, Y: 5},
		{ID: "c", Width: 20, Height: 10, X: 100, Y: 100},
	}})
	g := buildGrid(sg, 100)
	assert := assert.New(t)
	// bounds span 260x110 starting at (0,0), cell size 100
	assert.Len(g.cells, 3)
	assert.Len(g.cells[0], 2)
	assert.Equal(0, sg.nodes[0].startX)
	assert.Equal(0, sg.nodes[0].finishX)
	assert.Equal(2, sg.nodes[1].startX)
	assert.Equal(2, sg.nodes[1].finishX)
	assert.Equal(0, sg.nodes[2].startX)
	assert.Equal(1, sg.nodes[2].finishX)
	assert.Equal(0, sg.nodes[2].startY)
	assert.Equal(1, sg.nodes[2].finishY)
	assert.Contains(g.cells[0][0], 0)
	assert.Contains(g.cells[2][0], 1)
	assert.Contains(g.cells[0][1], 2)
	assert.Contains(g.cells[1][1], 2)
}

func TestBuildGrid_skipsInactiveNodes(t *testing.T) {
	sg := newSimGraph(&Graph{Nodes: []*Node{
		{ID: "a", Width: 10, Height: 10, X: 5, Y: 5},
		{ID: "b", Width: 10, Height: 10, X: 255, Y: 5},
	}})
	sg.nodes[1].active = false
	g := buildGrid(sg, 100)
	assert.Len(t, g.cells, 1)
	assert.NotContains(t, g.cells[0][0], 1)
}

func TestRefreshSurrounding(t *testing.T) {
	for _, test := range []struct {
		Name       string
		Graph      *Graph
		Processed  []bool
		Assertions func(t *testing.T, sg *simGraph)
	}{
		{
			Name: "nodes within repulsion range see each other once",
			Graph: &Graph{Nodes: []*Node{
				{ID: "a", Width: 10, Height: 10, X: 5, Y: 5},
				{ID: "b", Width: 10, Height: 10, X: 60, Y: 5},
				{ID: "far", Width: 10, Height: 10, X: 500, Y: 500},
			}},
			Processed: []bool{false, false, false},
			Assertions: func(t *testing.T, sg *simGraph) {
				assert := assert.New(t)
				assert.Equal([]int{1}, sg.nodes[0].surrounding)
				assert.NotContains(sg.nodes[0].surrounding, 2)
				assert.NotContains(sg.nodes[2].surrounding, 0)
			},
		},
		{
			Name: "processed nodes are excluded",
			Graph: &Graph{Nodes: []*Node{
				{ID: "a", Width: 10, Height: 10, X: 5, Y: 5},
				{ID: "b", Width: 10, Height: 10, X: 60, Y: 5},
			}},
			Processed: []bool{false, true},
			Assertions: func(t *testing.T, sg *simGraph) {
				assert.Empty(t, sg.nodes[0].surrounding)
			},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			sg := newSimGraph(test.Graph)
			g := buildGrid(sg, 100)
			for i := range sg.nodes {
				g.refreshSurrounding(sg, i, test.Processed, 100)
			}
			test.Assertions(t, sg)
		})
	}
}
