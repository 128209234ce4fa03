package layout

import (
	"math"

	"github.com/quartercastle/vector"
)

// Graph is the public input to the embedder. Node positions are optional and
// serve as starting positions; edges reference nodes by ID.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

type Node struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Point is a node center in the computed layout.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// simNode is the embedder's working representation of a node: a top-left
// anchored rectangle plus per-iteration force accumulators and the grid span
// assigned by the repulsion grid.
type simNode struct {
	id            string
	width, height float64
	left, top     float64
	// indices into simGraph.edges, in insertion order
	edges  []int
	active bool

	springForce      vector.Vector
	repulsionForce   vector.Vector
	gravitationForce vector.Vector

	// cached list of grid neighbors within repulsion range
	surrounding []int

	// cell span in the repulsion grid
	startX, finishX, startY, finishY int
}

func (n *simNode) centerX() float64 { return n.left + n.width/2 }
func (n *simNode) centerY() float64 { return n.top + n.height/2 }

func (n *simNode) setCenter(x, y float64) {
	n.left = x - n.width/2
	n.top = y - n.height/2
}

func (n *simNode) moveBy(dx, dy float64) {
	n.left += dx
	n.top += dy
}

func (n *simNode) rect() rect {
	return rect{x: n.left, y: n.top, width: n.width, height: n.height}
}

type simEdge struct {
	source, target int
	active         bool
}

// otherEnd returns the endpoint of e that is not node.
func (e *simEdge) otherEnd(node int) int {
	if e.source == node {
		return e.target
	}
	return e.source
}

// simGraph holds the node/edge arena the embedder operates on. Nodes keep
// the index of their position in the input; edges are deduplicated by
// unordered endpoint pair and self-loops are dropped.
type simGraph struct {
	nodes []*simNode
	edges []*simEdge
}

func newSimGraph(g *Graph) *simGraph {
	sg := &simGraph{
		nodes: make([]*simNode, 0, len(g.Nodes)),
		edges: make([]*simEdge, 0, len(g.Edges)),
	}
	index := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		width, height := max(node.Width, 1.0), max(node.Height, 1.0)
		sn := &simNode{
			id:               node.ID,
			width:            width,
			height:           height,
			left:             node.X - width/2,
			top:              node.Y - height/2,
			active:           true,
			springForce:      vector.Vector{0, 0},
			repulsionForce:   vector.Vector{0, 0},
			gravitationForce: vector.Vector{0, 0},
		}
		index[node.ID] = len(sg.nodes)
		sg.nodes = append(sg.nodes, sn)
	}
	seen := make(map[[2]int]bool, len(g.Edges))
	for _, edge := range g.Edges {
		source, ok := index[edge.Source]
		if !ok {
			continue
		}
		target, ok := index[edge.Target]
		if !ok {
			continue
		}
		if source == target {
			continue
		}
		key := [2]int{min(source, target), max(source, target)}
		if seen[key] {
			continue
		}
		seen[key] = true
		e := &simEdge{source: source, target: target, active: true}
		sg.edges = append(sg.edges, e)
		sg.nodes[source].edges = append(sg.nodes[source].edges, len(sg.edges)-1)
		sg.nodes[target].edges = append(sg.nodes[target].edges, len(sg.edges)-1)
	}
	return sg
}

func (sg *simGraph) activeCount() int {
	count := 0
	for _, n := range sg.nodes {
		if n.active {
			count++
		}
	}
	return count
}

// activeDegree counts the active incident edges of node.
func (sg *simGraph) activeDegree(node int) int {
	degree := 0
	for _, e := range sg.nodes[node].edges {
		if sg.edges[e].active {
			degree++
		}
	}
	return degree
}

// firstActiveEdge returns the index of the first active incident edge of
// node, or -1 if there is none.
func (sg *simGraph) firstActiveEdge(node int) int {
	for _, e := range sg.nodes[node].edges {
		if sg.edges[e].active {
			return e
		}
	}
	return -1
}

// activeBounds returns the bounding box of all active node rectangles.
func (sg *simGraph) activeBounds() rect {
	minX, minY := math.Inf(+1), math.Inf(+1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range sg.nodes {
		if !n.active {
			continue
		}
		minX = min(minX, n.left)
		minY = min(minY, n.top)
		maxX = max(maxX, n.left+n.width)
		maxY = max(maxY, n.top+n.height)
	}
	return rect{x: minX, y: minY, width: maxX - minX, height: maxY - minY}
}

// isConnected reports whether the active nodes form a single connected
// component. An empty graph counts as connected.
func (sg *simGraph) isConnected() bool {
	start := -1
	for i, n := range sg.nodes {
		if n.active {
			start = i
			break
		}
	}
	if start == -1 {
		return true
	}
	visited := make(map[int]bool, len(sg.nodes))
	visited[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range sg.nodes[current].edges {
			edge := sg.edges[e]
			if !edge.active {
				continue
			}
			neighbor := edge.otherEnd(current)
			if !sg.nodes[neighbor].active || visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			queue = append(queue, neighbor)
		}
	}
	return len(visited) == sg.activeCount()
}

// estimatedSize is the average node extent of the active graph scaled by
// sqrt(n), used to derive the gravity activation range.
func (sg *simGraph) estimatedSize() float64 {
	sum := 0.0
	count := 0
	for _, n := range sg.nodes {
		if !n.active {
			continue
		}
		sum += (n.width + n.height) / 2
		count++
	}
	if sum == 0 || count == 0 {
		return 40
	}
	return sum / math.Sqrt(float64(count))
}

// translate moves every node (active or not) by the same offset.
func (sg *simGraph) translate(dx, dy float64) {
	for _, n := range sg.nodes {
		n.moveBy(dx, dy)
	}
}
