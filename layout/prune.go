package layout

// prunedNodeData records one leaf removal: the pruned node, the edge it hung
// on and the neighbor it will be re-attached to during regrowth.
type prunedNodeData struct {
	node, edge, neighbor int
}

// reduceTrees strips tree-like fringes off the graph before the force loop
// starts. Each pass collects all current leaves and deactivates them
// together with their edges; passes stack up in r.prunedSteps so regrowth
// can replay them in reverse order. A leaf whose partner was pruned earlier
// in the same pass is left alone (its degree dropped to zero).
func (r *embedderRun) reduceTrees() {
	for {
		var candidates []int
		for i, n := range r.g.nodes {
			if n.active && r.g.activeDegree(i) == 1 {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			break
		}
		var step []prunedNodeData
		for _, node := range candidates {
			if r.g.activeDegree(node) != 1 {
				continue
			}
			edge := r.g.firstActiveEdge(node)
			neighbor := r.g.edges[edge].otherEnd(node)
			step = append(step, prunedNodeData{node: node, edge: edge, neighbor: neighbor})
			r.g.nodes[node].active = false
			r.g.edges[edge].active = false
		}
		r.prunedSteps = append(r.prunedSteps, step)
	}
}

// growTree replays the most recent pruning pass: each pruned node is placed
// into the least crowded quadrant around its neighbor and reactivated. The
// grid is rebuilt before every placement so nodes regrown earlier in the
// same pass count towards the crowding of later ones.
func (r *embedderRun) growTree() {
	step := r.prunedSteps[len(r.prunedSteps)-1]
	r.prunedSteps = r.prunedSteps[:len(r.prunedSteps)-1]
	for _, data := range step {
		r.updateGrid()
		r.findPlaceForPrunedNode(data)
		r.g.nodes[data.node].active = true
		r.g.edges[data.edge].active = true
	}
	r.updateGrid()
}

// quadrant indices around the neighbor node
const (
	quadrantUp = iota
	quadrantRight
	quadrantDown
	quadrantLeft
)

// findPlaceForPrunedNode scores the four quadrants around the neighbor by
// the occupancy of the grid cells bordering the neighbor's span and centers
// the pruned node one ideal edge length away on the winning side. Fully
// empty ties are broken right, left, up, down in that order; otherwise the
// first minimum in up, right, down, left scan order wins.
func (r *embedderRun) findPlaceForPrunedNode(data prunedNodeData) {
	pruned := r.g.nodes[data.node]
	neighbor := r.g.nodes[data.neighbor]
	cells := r.grid.cells

	var controlRegions [4]int
	if neighbor.startY > 0 {
		for i := neighbor.startX; i <= neighbor.finishX; i++ {
			controlRegions[quadrantUp] += len(cells[i][neighbor.startY-1]) + len(cells[i][neighbor.startY]) - 1
		}
	}
	if neighbor.finishX < len(cells)-1 {
		for i := neighbor.startY; i <= neighbor.finishY; i++ {
			controlRegions[quadrantRight] += len(cells[neighbor.finishX+1][i]) + len(cells[neighbor.finishX][i]) - 1
		}
	}
	if neighbor.finishY < len(cells[0])-1 {
		for i := neighbor.startX; i <= neighbor.finishX; i++ {
			controlRegions[quadrantDown] += len(cells[i][neighbor.finishY+1]) + len(cells[i][neighbor.finishY]) - 1
		}
	}
	if neighbor.startX > 0 {
		for i := neighbor.startY; i <= neighbor.finishY; i++ {
			controlRegions[quadrantLeft] += len(cells[neighbor.startX-1][i]) + len(cells[neighbor.startX][i]) - 1
		}
	}

	minValue, minCount, minIndex := int(^uint(0)>>1), 0, 0
	for j, region := range controlRegions {
		if region < minValue {
			minValue = region
			minCount = 1
			minIndex = j
		} else if region == minValue {
			minCount++
		}
	}

	quadrant := minIndex
	if minValue == 0 {
		switch minCount {
		case 3:
			switch {
			case controlRegions[quadrantUp] == 0 && controlRegions[quadrantRight] == 0 && controlRegions[quadrantDown] == 0:
				quadrant = quadrantRight
			case controlRegions[quadrantUp] == 0 && controlRegions[quadrantRight] == 0 && controlRegions[quadrantLeft] == 0:
				quadrant = quadrantUp
			case controlRegions[quadrantUp] == 0 && controlRegions[quadrantDown] == 0 && controlRegions[quadrantLeft] == 0:
				quadrant = quadrantLeft
			default:
				quadrant = quadrantDown
			}
		case 2, 4:
			for _, q := range [4]int{quadrantRight, quadrantLeft, quadrantUp, quadrantDown} {
				if controlRegions[q] == 0 {
					quadrant = q
					break
				}
			}
		}
	}

	offset := r.conf.IdealEdgeLength
	switch quadrant {
	case quadrantUp:
		pruned.setCenter(neighbor.centerX(), neighbor.centerY()-neighbor.height/2-offset-pruned.height/2)
	case quadrantRight:
		pruned.setCenter(neighbor.centerX()+neighbor.width/2+offset+pruned.width/2, neighbor.centerY())
	case quadrantDown:
		pruned.setCenter(neighbor.centerX(), neighbor.centerY()+neighbor.height/2+offset+pruned.height/2)
	case quadrantLeft:
		pruned.setCenter(neighbor.centerX()-neighbor.width/2-offset-pruned.width/2, neighbor.centerY())
	}
}
