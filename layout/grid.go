package layout

import "math"

// grid buckets active nodes into square cells of the repulsion range so the
// repulsion pass only has to look at a node's surrounding buckets. The grid
// is rebuilt from scratch on refresh; node spans are stored on the nodes so
// the regrowth placement can score the occupancy around a neighbor.
type grid struct {
	cells     [][][]int
	left, top float64
	cellSize  float64
}

func buildGrid(sg *simGraph, cellSize float64) *grid {
	bounds := sg.activeBounds()
	sizeX := max(int(math.Ceil(bounds.width/cellSize)), 1)
	sizeY := max(int(math.Ceil(bounds.height/cellSize)), 1)
	g := &grid{
		cells:    make([][][]int, sizeX),
		left:     bounds.x,
		top:      bounds.y,
		cellSize: cellSize,
	}
	for x := range g.cells {
		g.cells[x] = make([][]int, sizeY)
	}
	for i, n := range sg.nodes {
		if !n.active {
			continue
		}
		g.insert(i, n)
	}
	return g
}

func (g *grid) insert(index int, n *simNode) {
	n.startX = g.clampX(int(math.Floor((n.left - g.left) / g.cellSize)))
	n.finishX = g.clampX(int(math.Floor((n.left + n.width - g.left) / g.cellSize)))
	n.startY = g.clampY(int(math.Floor((n.top - g.top) / g.cellSize)))
	n.finishY = g.clampY(int(math.Floor((n.top + n.height - g.top) / g.cellSize)))
	for x := n.startX; x <= n.finishX; x++ {
		for y := n.startY; y <= n.finishY; y++ {
			g.cells[x][y] = append(g.cells[x][y], index)
		}
	}
}

func (g *grid) clampX(x int) int { return min(max(x, 0), len(g.cells)-1) }
func (g *grid) clampY(y int) int { return min(max(y, 0), len(g.cells[0])-1) }

// refreshSurrounding recomputes the repulsion candidates of node a: all
// distinct nodes in the buckets of a's span extended by one cell in each
// direction, whose rectangle gap to a is at most repulsionRange on both
// axes. Nodes already fully processed this pass are skipped so each pair is
// handled once.
func (g *grid) refreshSurrounding(sg *simGraph, a int, processed []bool, repulsionRange float64) {
	node := sg.nodes[a]
	node.surrounding = node.surrounding[:0]
	seen := make(map[int]bool)
	for x := node.startX - 1; x <= node.finishX+1; x++ {
		if x < 0 || x >= len(g.cells) {
			continue
		}
		for y := node.startY - 1; y <= node.finishY+1; y++ {
			if y < 0 || y >= len(g.cells[x]) {
				continue
			}
			for _, b := range g.cells[x][y] {
				if b == a || processed[b] || seen[b] {
					continue
				}
				other := sg.nodes[b]
				distX := math.Abs(node.centerX()-other.centerX()) - (node.width/2 + other.width/2)
				distY := math.Abs(node.centerY()-other.centerY()) - (node.height/2 + other.height/2)
				if distX <= repulsionRange && distY <= repulsionRange {
					seen[b] = true
					node.surrounding = append(node.surrounding, b)
				}
			}
		}
	}
}
