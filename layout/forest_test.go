package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatForest(t *testing.T) {
	for _, test := range []struct {
		Name       string
		Graph      *Graph
		ExpectOK   bool
		Assertions func(t *testing.T, forest [][]int)
	}{
		{
			Name: "path graph is a single tree in BFS order",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []*Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
			},
			ExpectOK: true,
			Assertions: func(t *testing.T, forest [][]int) {
				assert.Equal(t, [][]int{{0, 1, 2}}, forest)
			},
		},
		{
			Name: "two components yield two trees",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []*Edge{{Source: "a", Target: "b"}},
			},
			ExpectOK: true,
			Assertions: func(t *testing.T, forest [][]int) {
				assert.Equal(t, [][]int{{0, 1}, {2}}, forest)
			},
		},
		{
			Name: "triangle is rejected",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []*Edge{
					{Source: "a", Target: "b"},
					{Source: "b", Target: "c"},
					{Source: "c", Target: "a"},
				},
			},
			ExpectOK: false,
		},
		{
			Name: "cycle in one component rejects the whole graph",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "x"}, {ID: "y"}, {ID: "z"}},
				Edges: []*Edge{
					{Source: "a", Target: "b"},
					{Source: "x", Target: "y"},
					{Source: "y", Target: "z"},
					{Source: "z", Target: "x"},
				},
			},
			ExpectOK: false,
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			forest, ok := newSimGraph(test.Graph).flatForest()
			assert.Equal(t, test.ExpectOK, ok)
			if test.Assertions != nil {
				test.Assertions(t, forest)
			}
		})
	}
}

func TestFindTreeCenter(t *testing.T) {
	for _, test := range []struct {
		Name   string
		Graph  *Graph
		Expect string
	}{
		{
			Name: "middle of a path of five",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}},
				Edges: []*Edge{
					{Source: "a", Target: "b"},
					{Source: "b", Target: "c"},
					{Source: "c", Target: "d"},
					{Source: "d", Target: "e"},
				},
			},
			Expect: "c",
		},
		{
			Name: "hub of a star",
			Graph: &Graph{
				Nodes: []*Node{{ID: "l1"}, {ID: "hub"}, {ID: "l2"}, {ID: "l3"}},
				Edges: []*Edge{
					{Source: "hub", Target: "l1"},
					{Source: "hub", Target: "l2"},
					{Source: "hub", Target: "l3"},
				},
			},
			Expect: "hub",
		},
		{
			Name: "single node is its own center",
			Graph: &Graph{
				Nodes: []*Node{{ID: "a"}},
			},
			Expect: "a",
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			sg := newSimGraph(test.Graph)
			forest, ok := sg.flatForest()
			assert.True(t, ok)
			center := sg.findTreeCenter(forest[0])
			assert.Equal(t, test.Expect, sg.nodes[center].id)
		})
	}
}

func TestPositionNodesRadially(t *testing.T) {
	t.Run("star leaves are evenly spread around the hub", func(t *testing.T) {
		assert := assert.New(t)
		sg := newSimGraph(&Graph{
			Nodes: []*Node{
				{ID: "hub", Width: 10, Height: 10},
				{ID: "l1", Width: 10, Height: 10},
				{ID: "l2", Width: 10, Height: 10},
				{ID: "l3", Width: 10, Height: 10},
				{ID: "l4", Width: 10, Height: 10},
			},
			Edges: []*Edge{
				{Source: "hub", Target: "l1"},
				{Source: "hub", Target: "l2"},
				{Source: "hub", Target: "l3"},
				{Source: "hub", Target: "l4"},
			},
		})
		r := &embedderRun{conf: DefaultSpringEmbedderConfig, g: sg}
		forest, ok := sg.flatForest()
		assert.True(ok)
		r.positionNodesRadially(forest)

		hub := sg.nodes[0]
		stepAngle := 359.0 / 4
		for i, leaf := range sg.nodes[1:] {
			dx := leaf.centerX() - hub.centerX()
			dy := leaf.centerY() - hub.centerY()
			// all leaves sit one radial separation away from the hub
			assert.InDelta(DefaultSpringEmbedderConfig.MinRadialSeparation, math.Hypot(dx, dy), 1e-9)
			angle := math.Mod(math.Atan2(dy, dx)*180/math.Pi+360, 360)
			expected := math.Mod(float64(i)*stepAngle+(stepAngle+1)/2, 360)
			assert.InDelta(expected, angle, 1e-9)
		}
	})

	t.Run("two trees are tiled with component separation", func(t *testing.T) {
		assert := assert.New(t)
		sg := newSimGraph(&Graph{
			Nodes: []*Node{
				{ID: "a", Width: 10, Height: 10},
				{ID: "b", Width: 10, Height: 10},
			},
		})
		r := &embedderRun{conf: DefaultSpringEmbedderConfig, g: sg}
		forest, ok := sg.flatForest()
		assert.True(ok)
		r.positionNodesRadially(forest)
		// single-node trees are placed side by side, one component
		// separation apart
		assert.InDelta(
			DefaultSpringEmbedderConfig.ComponentSeparation+10,
			sg.nodes[1].left-sg.nodes[0].left,
			1e-9,
		)
		assert.InDelta(sg.nodes[0].top, sg.nodes[1].top, 1e-9)
	})
}
