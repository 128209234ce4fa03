package layout

import "math"

// flatForest returns the connected components of the active graph in BFS
// order, or ok == false as soon as any component contains a cycle. Only a
// cycle-free graph (a forest) qualifies for radial pre-placement.
func (sg *simGraph) flatForest() ([][]int, bool) {
	processed := make(map[int]bool, len(sg.nodes))
	var forest [][]int
	for start := range sg.nodes {
		if !sg.nodes[start].active || processed[start] {
			continue
		}
		visited := make(map[int]bool)
		parent := map[int]int{start: -1}
		var tree []int
		queue := []int{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			visited[current] = true
			tree = append(tree, current)
			for _, e := range sg.nodes[current].edges {
				edge := sg.edges[e]
				if !edge.active {
					continue
				}
				neighbor := edge.otherEnd(current)
				if parent[current] == neighbor {
					continue
				}
				if visited[neighbor] {
					return nil, false
				}
				queue = append(queue, neighbor)
				parent[neighbor] = current
			}
		}
		for _, n := range tree {
			processed[n] = true
		}
		forest = append(forest, tree)
	}
	return forest, true
}

// findTreeCenter strips leaf waves off the tree until one or two nodes
// remain and returns the first remaining node in tree order.
func (sg *simGraph) findTreeCenter(tree []int) int {
	if len(tree) <= 2 {
		return tree[0]
	}
	remaining := make(map[int]bool, len(tree))
	degrees := make(map[int]int, len(tree))
	removed := make(map[int]bool, len(tree))
	var wave []int
	for _, n := range tree {
		remaining[n] = true
		degrees[n] = sg.activeDegree(n)
		if degrees[n] == 1 {
			removed[n] = true
			wave = append(wave, n)
		}
	}
	count := len(tree)
	for count > 2 {
		var next []int
		for _, n := range wave {
			delete(remaining, n)
			count--
			for _, e := range sg.nodes[n].edges {
				edge := sg.edges[e]
				if !edge.active {
					continue
				}
				neighbor := edge.otherEnd(n)
				if removed[neighbor] {
					continue
				}
				degrees[neighbor]--
				if degrees[neighbor] == 1 {
					next = append(next, neighbor)
				}
			}
		}
		for _, n := range next {
			removed[n] = true
		}
		wave = next
	}
	for _, n := range tree {
		if remaining[n] {
			return n
		}
	}
	return tree[0]
}

// positionNodesRadially lays the trees of the forest out on a square-ish
// grid of tiles, each tree arranged radially around its center, and then
// translates the whole drawing towards the world center.
func (r *embedderRun) positionNodesRadially(forest [][]int) {
	numberOfColumns := int(math.Ceil(math.Sqrt(float64(len(forest)))))
	height, currentX, currentY := 0.0, 0.0, 0.0
	point := Point{}
	for i, tree := range forest {
		if i%numberOfColumns == 0 {
			currentX = 0
			currentY = height
			if i != 0 {
				currentY += r.conf.ComponentSeparation
			}
			height = 0
		}
		center := r.g.findTreeCenter(tree)
		point = r.radialLayout(tree, center, currentX, currentY)
		if point.Y > height {
			height = math.Floor(point.Y)
		}
		currentX = math.Floor(point.X + r.conf.ComponentSeparation)
	}
	bounds := r.g.activeBounds()
	r.g.translate(
		r.conf.WorldCenterX-point.X/2-bounds.x,
		r.conf.WorldCenterY-point.Y/2-bounds.y,
	)
}

// radialLayout arranges a single tree around its center node, moves it so
// its bounding box starts at the tile cursor and returns the translated
// bottom-right corner.
func (r *embedderRun) radialLayout(tree []int, center int, startX, startY float64) Point {
	maxDiagonal := math.Inf(-1)
	for _, n := range tree {
		node := r.g.nodes[n]
		diagonal := math.Sqrt(node.width*node.width + node.height*node.height)
		if diagonal > maxDiagonal {
			maxDiagonal = diagonal
		}
	}
	radialSeparation := max(maxDiagonal, r.conf.MinRadialSeparation)
	// the root's angular window is [0, 359), one degree short of a full
	// circle, so branch spacing for N children is 359/N degrees
	r.branchRadialLayout(center, -1, 0, 359, 0, radialSeparation)

	minX, minY := math.Inf(+1), math.Inf(+1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range tree {
		node := r.g.nodes[n]
		minX = min(minX, node.left)
		minY = min(minY, node.top)
		maxX = max(maxX, node.left+node.width)
		maxY = max(maxY, node.top+node.height)
	}
	dx, dy := startX-minX, startY-minY
	for _, n := range tree {
		r.g.nodes[n].moveBy(dx, dy)
	}
	return Point{X: maxX + dx, Y: maxY + dy}
}

// branchRadialLayout places node at the middle angle of its wedge on a
// circle of the given radius and splits the wedge evenly among its
// children, enumerating them starting right after the parent edge in the
// node's incident edge order.
func (r *embedderRun) branchRadialLayout(node, parent int, startAngle, endAngle, distance, radialSeparation float64) {
	halfInterval := ((endAngle - startAngle) + 1) / 2
	if halfInterval < 0 {
		halfInterval += 180
	}
	nodeAngle := math.Mod(halfInterval+startAngle, 360)
	teta := nodeAngle * math.Pi / 180
	r.g.nodes[node].setCenter(distance*math.Cos(teta), distance*math.Sin(teta))

	neighborEdges := r.g.nodes[node].edges
	incEdgesCount := len(neighborEdges)
	childCount := incEdgesCount
	startIndex := 0
	if parent != -1 {
		childCount--
		for i, e := range neighborEdges {
			if r.g.edges[e].otherEnd(node) == parent {
				startIndex = (i + 1) % incEdgesCount
				break
			}
		}
	}
	if childCount == 0 {
		return
	}
	stepAngle := math.Abs(endAngle-startAngle) / float64(childCount)
	branchCount := 0
	for i := startIndex; branchCount != childCount; i = (i + 1) % incEdgesCount {
		neighbor := r.g.edges[neighborEdges[i]].otherEnd(node)
		if neighbor == parent {
			continue
		}
		childStartAngle := math.Mod(startAngle+float64(branchCount)*stepAngle, 360)
		childEndAngle := math.Mod(childStartAngle+stepAngle, 360)
		r.branchRadialLayout(neighbor, node, childStartAngle, childEndAngle, distance+radialSeparation, radialSeparation)
		branchCount++
	}
}
