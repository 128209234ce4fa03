// Package layout implements a force-directed ("spring embedder") layout for
// diagram graphs. Nodes are rectangles connected by springs along the edges,
// repelled from each other through a bucket-grid neighborhood and, when the
// graph is disconnected, pulled towards the drawing center. Cycle-free
// graphs are pre-arranged radially around their tree centers; all other
// graphs have their leaf fringes pruned before the force loop and regrown
// in reverse order once it cools down.
package layout

import (
	"context"
	"math"
	"time"

	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"
)

type SpringEmbedderConfig struct {
	// IdealEdgeLength is the rest length of the edge springs; it also
	// derives the repulsion grid cell size (2x), the minimum repulsion
	// distance (1/10) and the per-node convergence threshold (3/100).
	IdealEdgeLength    float64
	SpringStrength     float64
	RepulsionStrength  float64
	GravityStrength    float64
	GravityRangeFactor float64
	// MaxIterations bounds the main loop; the effective bound is
	// max(MaxIterations, 5 * number of nodes).
	MaxIterations          int
	ConvergenceCheckPeriod int
	MaxNodeDisplacement    float64
	// GraphMargin is the distance of the drawing's top-left corner from
	// the origin after finalization.
	GraphMargin         float64
	ComponentSeparation float64
	WorldCenterX        float64
	WorldCenterY        float64
	// cooling schedule, see http://www.btluke.com/simanf1.html schedule 3
	InitialCoolingFactor       float64
	FinalTemperature           float64
	CoolingFactorIncremental   float64
	GridCalculationCheckPeriod int
	MinRadialSeparation        float64
	TreeReduction              TreeReduction
}

// TreeReduction controls whether tree-like fringes are pruned before the
// force loop and regrown afterwards.
type TreeReduction int

const (
	TreeReductionUndefined TreeReduction = iota
	TreeReductionEnabled
	TreeReductionDisabled
)

var DefaultSpringEmbedderConfig = SpringEmbedderConfig{
	IdealEdgeLength:            50,
	SpringStrength:             0.45,
	RepulsionStrength:          4500,
	GravityStrength:            0.25,
	GravityRangeFactor:         3.8,
	MaxIterations:              2500,
	ConvergenceCheckPeriod:     100,
	MaxNodeDisplacement:        300,
	GraphMargin:                15,
	ComponentSeparation:        60,
	WorldCenterX:               1200,
	WorldCenterY:               900,
	InitialCoolingFactor:       1.0,
	FinalTemperature:           0.04,
	CoolingFactorIncremental:   0.3,
	GridCalculationCheckPeriod: 10,
	MinRadialSeparation:        50,
	TreeReduction:              TreeReductionEnabled,
}

// SpringEmbedder computes graph layouts. It is stateless between calls; all
// per-run state lives in an embedderRun.
type SpringEmbedder struct {
	conf SpringEmbedderConfig
}

func NewSpringEmbedder(conf SpringEmbedderConfig) *SpringEmbedder {
	e := &SpringEmbedder{}
	e.ApplyConfig(conf)
	return e
}

func (e *SpringEmbedder) ApplyConfig(conf SpringEmbedderConfig) {
	if conf.IdealEdgeLength == 0.0 {
		conf.IdealEdgeLength = DefaultSpringEmbedderConfig.IdealEdgeLength
	}
	if conf.SpringStrength == 0.0 {
		conf.SpringStrength = DefaultSpringEmbedderConfig.SpringStrength
	}
	if conf.RepulsionStrength == 0.0 {
		conf.RepulsionStrength = DefaultSpringEmbedderConfig.RepulsionStrength
	}
	if conf.GravityStrength == 0.0 {
		conf.GravityStrength = DefaultSpringEmbedderConfig.GravityStrength
	}
	if conf.GravityRangeFactor == 0.0 {
		conf.GravityRangeFactor = DefaultSpringEmbedderConfig.GravityRangeFactor
	}
	if conf.MaxIterations == 0 {
		conf.MaxIterations = DefaultSpringEmbedderConfig.MaxIterations
	}
	if conf.ConvergenceCheckPeriod == 0 {
		conf.ConvergenceCheckPeriod = DefaultSpringEmbedderConfig.ConvergenceCheckPeriod
	}
	if conf.MaxNodeDisplacement == 0.0 {
		conf.MaxNodeDisplacement = DefaultSpringEmbedderConfig.MaxNodeDisplacement
	}
	if conf.GraphMargin == 0.0 {
		conf.GraphMargin = DefaultSpringEmbedderConfig.GraphMargin
	}
	if conf.ComponentSeparation == 0.0 {
		conf.ComponentSeparation = DefaultSpringEmbedderConfig.ComponentSeparation
	}
	if conf.WorldCenterX == 0.0 {
		conf.WorldCenterX = DefaultSpringEmbedderConfig.WorldCenterX
	}
	if conf.WorldCenterY == 0.0 {
		conf.WorldCenterY = DefaultSpringEmbedderConfig.WorldCenterY
	}
	if conf.InitialCoolingFactor == 0.0 {
		conf.InitialCoolingFactor = DefaultSpringEmbedderConfig.InitialCoolingFactor
	}
	if conf.FinalTemperature == 0.0 {
		conf.FinalTemperature = DefaultSpringEmbedderConfig.FinalTemperature
	}
	if conf.CoolingFactorIncremental == 0.0 {
		conf.CoolingFactorIncremental = DefaultSpringEmbedderConfig.CoolingFactorIncremental
	}
	if conf.GridCalculationCheckPeriod == 0 {
		conf.GridCalculationCheckPeriod = DefaultSpringEmbedderConfig.GridCalculationCheckPeriod
	}
	if conf.MinRadialSeparation == 0.0 {
		conf.MinRadialSeparation = DefaultSpringEmbedderConfig.MinRadialSeparation
	}
	if conf.TreeReduction == TreeReductionUndefined {
		conf.TreeReduction = DefaultSpringEmbedderConfig.TreeReduction
	}
	e.conf = conf
}

type Stats struct {
	Iterations int
	TotalTime  time.Duration
}

// ComputeLayout runs the embedder on the graph and returns the final node
// centers keyed by node ID. Supplied node positions are used as starting
// positions when the graph is not a forest. Cancelling the context stops
// the loop at the next iteration and returns the positions reached so far.
func (e *SpringEmbedder) ComputeLayout(ctx context.Context, graph *Graph) (map[string]Point, Stats) {
	startTime := time.Now()
	r := &embedderRun{conf: e.conf, g: newSimGraph(graph)}
	r.run(ctx)
	positions := make(map[string]Point, len(r.g.nodes))
	for _, n := range r.g.nodes {
		positions[n.id] = Point{X: n.centerX(), Y: n.centerY()}
	}
	stats := Stats{Iterations: r.totalIterations, TotalTime: time.Since(startTime)}
	log.Ctx(ctx).Debug().
		Int("nodes", len(r.g.nodes)).
		Int("edges", len(r.g.edges)).
		Int("iterations", stats.Iterations).
		Dur("total_time", stats.TotalTime).
		Msg("layout computed")
	return positions, stats
}

// embedderRun is the per-call state of the embedder.
type embedderRun struct {
	conf SpringEmbedderConfig
	g    *simGraph
	grid *grid

	prunedSteps [][]prunedNodeData
	processed   []bool

	totalIterations int
	maxIterations   int

	coolingFactor   float64
	coolingCycle    int
	maxCoolingCycle int

	totalDisplacement          float64
	oldTotalDisplacement       float64
	totalDisplacementThreshold float64

	treeGrowing           bool
	growthFinished        bool
	growTreeIterations    int
	afterGrowthIterations int

	applyGravitation bool
	repulsionRange   float64
	minRepulsionDist float64
}

func (r *embedderRun) run(ctx context.Context) {
	if len(r.g.nodes) == 0 {
		return
	}
	if forest, ok := r.g.flatForest(); ok {
		r.positionNodesRadially(forest)
	} else if r.conf.TreeReduction == TreeReductionEnabled {
		// non-forest graphs start from the supplied positions; the
		// tree-like fringe is pruned and regrown once the core settles
		r.reduceTrees()
	}
	r.applyGravitation = !r.g.isConnected()
	r.initSpringEmbedder()
embedding:
	for {
		select {
		case <-ctx.Done():
			break embedding
		default:
			// continue looping
		}
		if r.tick() {
			break
		}
	}
	r.finalize()
}

func (r *embedderRun) initSpringEmbedder() {
	active := r.g.activeCount()
	r.maxIterations = max(r.conf.MaxIterations, active*5)
	r.totalDisplacementThreshold = r.conf.IdealEdgeLength * 3 / 100 * float64(active)
	r.coolingFactor = r.conf.InitialCoolingFactor
	r.maxCoolingCycle = r.maxIterations / r.conf.ConvergenceCheckPeriod
	r.repulsionRange = 2 * r.conf.IdealEdgeLength
	r.minRepulsionDist = r.conf.IdealEdgeLength / 10
	r.processed = make([]bool, len(r.g.nodes))
	r.updateGrid()
}

func (r *embedderRun) updateGrid() {
	r.grid = buildGrid(r.g, r.repulsionRange)
}

// tick advances the embedder by one iteration and reports whether the
// layout is done. It drives the three-phase state machine: the normal
// cooling phase, the tree-growing phase regrowing one pruning pass every
// tenth iteration, and the growth-finished phase running at fixed low
// temperature until convergence.
func (r *embedderRun) tick() bool {
	r.totalIterations++
	if r.totalIterations == r.maxIterations && !r.treeGrowing && !r.growthFinished {
		if len(r.prunedSteps) > 0 {
			r.treeGrowing = true
		} else {
			return true
		}
	}
	if r.totalIterations%r.conf.ConvergenceCheckPeriod == 0 && !r.treeGrowing && !r.growthFinished {
		if r.isConverged() {
			if len(r.prunedSteps) > 0 {
				r.treeGrowing = true
			} else {
				return true
			}
		}
		r.updateCoolingFactor()
	}
	if r.treeGrowing {
		if r.growTreeIterations%10 == 0 {
			if len(r.prunedSteps) > 0 {
				r.growTree()
				r.coolingFactor = r.conf.CoolingFactorIncremental
			} else {
				r.treeGrowing = false
				r.growthFinished = true
			}
		}
		r.growTreeIterations++
	}
	if r.growthFinished {
		if r.isConverged() {
			return true
		}
		if r.afterGrowthIterations%10 == 0 {
			r.updateGrid()
			r.coolingFactor = r.conf.CoolingFactorIncremental / max(1, float64(r.afterGrowthIterations)/10)
		}
		r.afterGrowthIterations++
	}

	gridUpdateAllowed := !r.treeGrowing && !r.growthFinished
	forceSurroundingUpdate := (r.treeGrowing && r.growTreeIterations%10 == 1) ||
		(r.growthFinished && r.afterGrowthIterations%10 == 1)

	r.totalDisplacement = 0
	r.calcSpringForces()
	r.calcRepulsionForces(gridUpdateAllowed, forceSurroundingUpdate)
	if r.applyGravitation {
		r.calcGravitationalForces()
	}
	r.moveNodes()
	return false
}

// updateCoolingFactor advances the cooling schedule by one cycle. The
// denominator is clamped so a schedule of a single cooling cycle does not
// divide by log(1) = 0.
func (r *embedderRun) updateCoolingFactor() {
	r.coolingCycle++
	coolingAdjuster := float64(r.coolingCycle) / 3
	power := math.Log(100*(r.conf.InitialCoolingFactor-r.conf.FinalTemperature)) /
		max(math.Log(float64(r.maxCoolingCycle)), 1e-9)
	r.coolingFactor = max(
		r.conf.InitialCoolingFactor-math.Pow(float64(r.coolingCycle), power)/100*coolingAdjuster,
		r.conf.FinalTemperature,
	)
}

// isConverged also detects oscillation: past a third of the iteration
// cap a near-constant total displacement counts as converged.
func (r *embedderRun) isConverged() bool {
	oscillating := false
	if r.totalIterations > r.maxIterations/3 {
		oscillating = math.Abs(r.totalDisplacement-r.oldTotalDisplacement) < 2
	}
	converged := r.totalDisplacement < r.totalDisplacementThreshold
	r.oldTotalDisplacement = r.totalDisplacement
	return converged || oscillating
}

// calcSpringForces pulls each edge's endpoints towards the ideal edge
// length along the line between their border clipping points. Edges whose
// endpoint rectangles overlap exert no force.
func (r *embedderRun) calcSpringForces() {
	for _, edge := range r.g.edges {
		if !edge.active {
			continue
		}
		source, target := r.g.nodes[edge.source], r.g.nodes[edge.target]
		tx, ty, sx, sy, overlap := clippingPoints(target.rect(), source.rect())
		if overlap {
			continue
		}
		lengthX, lengthY := tx-sx, ty-sy
		if math.Abs(lengthX) < 1.0 {
			lengthX = sign(lengthX)
		}
		if math.Abs(lengthY) < 1.0 {
			lengthY = sign(lengthY)
		}
		length := math.Sqrt(lengthX*lengthX + lengthY*lengthY)
		if length == 0 {
			continue
		}
		springForce := r.conf.SpringStrength * (length - r.conf.IdealEdgeLength)
		force := vector.Vector{springForce * lengthX / length, springForce * lengthY / length}
		vector.In(source.springForce).Add(force)
		vector.In(target.springForce).Sub(force)
	}
}

// calcRepulsionForces pushes nearby node pairs apart. Candidate pairs come
// from each node's cached grid surrounding, refreshed on grid rebuild ticks
// or when the growth phases force it; the processed flags make sure every
// pair is handled exactly once per iteration.
func (r *embedderRun) calcRepulsionForces(gridUpdateAllowed, forceSurroundingUpdate bool) {
	refresh := r.totalIterations%r.conf.GridCalculationCheckPeriod == 1 && gridUpdateAllowed
	if refresh {
		r.updateGrid()
	}
	for i := range r.processed {
		r.processed[i] = false
	}
	for i, node := range r.g.nodes {
		if !node.active {
			continue
		}
		if refresh || forceSurroundingUpdate {
			r.grid.refreshSurrounding(r.g, i, r.processed, r.repulsionRange)
		}
		for _, j := range node.surrounding {
			if !r.g.nodes[j].active {
				continue
			}
			r.calcRepulsionForce(i, j)
		}
		r.processed[i] = true
	}
}

func (r *embedderRun) calcRepulsionForce(a, b int) {
	nodeA, nodeB := r.g.nodes[a], r.g.nodes[b]
	rectA, rectB := nodeA.rect(), nodeB.rect()
	if rectsIntersect(rectA, rectB) {
		// overlapping nodes are separated directly instead of through
		// the inverse-square force
		separationX, separationY := separationAmount(rectA, rectB, r.conf.IdealEdgeLength/2)
		const childrenConstant = 0.5
		force := vector.Vector{childrenConstant * 2 * separationX, childrenConstant * 2 * separationY}
		vector.In(nodeA.repulsionForce).Sub(force)
		vector.In(nodeB.repulsionForce).Add(force)
		return
	}
	ax, ay, bx, by, _ := clippingPoints(rectA, rectB)
	distanceX, distanceY := bx-ax, by-ay
	if math.Abs(distanceX) < r.minRepulsionDist {
		distanceX = sign(distanceX) * r.minRepulsionDist
	}
	if math.Abs(distanceY) < r.minRepulsionDist {
		distanceY = sign(distanceY) * r.minRepulsionDist
	}
	distanceSquared := distanceX*distanceX + distanceY*distanceY
	distance := math.Sqrt(distanceSquared)
	repulsionForce := r.conf.RepulsionStrength / distanceSquared
	force := vector.Vector{repulsionForce * distanceX / distance, repulsionForce * distanceY / distance}
	vector.In(nodeA.repulsionForce).Sub(force)
	vector.In(nodeB.repulsionForce).Add(force)
}

// calcGravitationalForces pulls nodes that strayed beyond the gravity range
// back towards the center of the drawing's bounding box. Only applied when
// the graph is disconnected; a connected graph is held together by its
// springs.
func (r *embedderRun) calcGravitationalForces() {
	bounds := r.g.activeBounds()
	centerX := bounds.x + bounds.width/2
	centerY := bounds.y + bounds.height/2
	rangeLimit := r.g.estimatedSize() * r.conf.GravityRangeFactor
	for _, node := range r.g.nodes {
		if !node.active {
			continue
		}
		distanceX := node.centerX() - centerX
		distanceY := node.centerY() - centerY
		absDistanceX := math.Abs(distanceX) + node.width/2
		absDistanceY := math.Abs(distanceY) + node.height/2
		if absDistanceX > rangeLimit || absDistanceY > rangeLimit {
			node.gravitationForce = vector.Vector{
				-r.conf.GravityStrength * distanceX,
				-r.conf.GravityStrength * distanceY,
			}
		}
	}
}

// moveNodes integrates the accumulated forces scaled by the cooling factor,
// clamps the per-axis displacement and resets the accumulators.
func (r *embedderRun) moveNodes() {
	maxDisplacement := r.coolingFactor * r.conf.MaxNodeDisplacement
	for _, node := range r.g.nodes {
		if !node.active {
			continue
		}
		dx := r.coolingFactor * (node.springForce.X() + node.repulsionForce.X() + node.gravitationForce.X())
		dy := r.coolingFactor * (node.springForce.Y() + node.repulsionForce.Y() + node.gravitationForce.Y())
		if math.Abs(dx) > maxDisplacement {
			dx = sign(dx) * maxDisplacement
		}
		if math.Abs(dy) > maxDisplacement {
			dy = sign(dy) * maxDisplacement
		}
		node.moveBy(dx, dy)
		r.totalDisplacement += math.Abs(dx) + math.Abs(dy)
		node.springForce = vector.Vector{0, 0}
		node.repulsionForce = vector.Vector{0, 0}
		node.gravitationForce = vector.Vector{0, 0}
	}
}

// finalize translates the drawing so its top-left corner sits at
// (GraphMargin, GraphMargin). Pruned nodes that were never regrown (the
// context was cancelled mid-growth) keep their relative position.
func (r *embedderRun) finalize() {
	if len(r.g.nodes) == 0 {
		return
	}
	minX, minY := math.Inf(+1), math.Inf(+1)
	for _, n := range r.g.nodes {
		minX = min(minX, n.left)
		minY = min(minY, n.top)
	}
	r.g.translate(r.conf.GraphMargin-minX, r.conf.GraphMargin-minY)
}
