// geometry primitives for the spring embedder: rectangle overlap tests,
// clipping-point computation and overlap separation. Ported from the layout
// geometry used by the CoSE family of algorithms; the branch structure of
// clippingPoints is load-bearing for placement near rectangle corners.
package layout

import (
	"math"

	"golang.org/x/exp/constraints"
)

// rect is a top-left anchored, axis-aligned rectangle.
type rect struct {
	x, y, width, height float64
}

func (r rect) right() float64      { return r.x + r.width }
func (r rect) bottom() float64     { return r.y + r.height }
func (r rect) centerX() float64    { return r.x + r.width/2 }
func (r rect) centerY() float64    { return r.y + r.height/2 }
func (r rect) halfWidth() float64  { return r.width / 2 }
func (r rect) halfHeight() float64 { return r.height / 2 }

// rectsIntersect reports whether the two rectangles overlap; touching
// borders count as an overlap.
func rectsIntersect(a, b rect) bool {
	if a.right() < b.x {
		return false
	}
	if a.bottom() < b.y {
		return false
	}
	if b.right() < a.x {
		return false
	}
	if b.bottom() < a.y {
		return false
	}
	return true
}

// clippingPoints computes the points where the line connecting the centers
// of a and b crosses each rectangle's border. If the rectangles overlap both
// clipping points are the respective centers and overlap is true.
//
// The crossing side is classified into one of four cardinal directions per
// rectangle, with dedicated branches for vertically/horizontally aligned
// centers and for crossings that land exactly on a corner (center line slope
// equal to a rectangle's diagonal slope).
func clippingPoints(a, b rect) (ax, ay, bx, by float64, overlap bool) {
	p1x, p1y := a.centerX(), a.centerY()
	p2x, p2y := b.centerX(), b.centerY()

	if rectsIntersect(a, b) {
		return p1x, p1y, p2x, p2y, true
	}

	topLeftAx, topLeftAy := a.x, a.y
	topRightAx := a.right()
	bottomLeftAx, bottomLeftAy := a.x, a.bottom()
	bottomRightAx := a.right()
	halfWidthA, halfHeightA := a.halfWidth(), a.halfHeight()

	topLeftBx, topLeftBy := b.x, b.y
	topRightBx := b.right()
	bottomLeftBx, bottomLeftBy := b.x, b.bottom()
	bottomRightBx := b.right()
	halfWidthB, halfHeightB := b.halfWidth(), b.halfHeight()

	clipAFound, clipBFound := false, false

	switch {
	case p1x == p2x:
		// centers vertically aligned, clip to the facing edge midpoints
		if p1y > p2y {
			return p1x, topLeftAy, p2x, b.bottom(), false
		}
		return p1x, bottomLeftAy, p2x, topLeftBy, false
	case p1y == p2y:
		// centers horizontally aligned
		if p1x > p2x {
			return topLeftAx, p1y, topRightBx, p2y, false
		}
		return topRightAx, p1y, topLeftBx, p2y, false
	}

	slopeA := a.height / a.width
	slopeB := b.height / b.width
	slopePrime := (p2y - p1y) / (p2x - p1x)

	// a clip point lands exactly on a corner when the center line has the
	// same slope as the rectangle's diagonal
	if -slopeA == slopePrime {
		if p1x > p2x {
			ax, ay = bottomLeftAx, bottomLeftAy
		} else {
			ax, ay = topRightAx, topLeftAy
		}
		clipAFound = true
	} else if slopeA == slopePrime {
		if p1x > p2x {
			ax, ay = topLeftAx, topLeftAy
		} else {
			ax, ay = bottomRightAx, bottomLeftAy
		}
		clipAFound = true
	}
	if -slopeB == slopePrime {
		if p2x > p1x {
			bx, by = bottomLeftBx, bottomLeftBy
		} else {
			bx, by = topRightBx, topLeftBy
		}
		clipBFound = true
	} else if slopeB == slopePrime {
		if p2x > p1x {
			bx, by = topLeftBx, topLeftBy
		} else {
			bx, by = bottomRightBx, bottomLeftBy
		}
		clipBFound = true
	}
	if clipAFound && clipBFound {
		return ax, ay, bx, by, false
	}

	var cardinalA, cardinalB int
	if p1x > p2x {
		if p1y > p2y {
			cardinalA = cardinalDirection(slopeA, slopePrime, 4)
			cardinalB = cardinalDirection(slopeB, slopePrime, 2)
		} else {
			cardinalA = cardinalDirection(-slopeA, slopePrime, 3)
			cardinalB = cardinalDirection(-slopeB, slopePrime, 1)
		}
	} else {
		if p1y > p2y {
			cardinalA = cardinalDirection(-slopeA, slopePrime, 1)
			cardinalB = cardinalDirection(-slopeB, slopePrime, 3)
		} else {
			cardinalA = cardinalDirection(slopeA, slopePrime, 2)
			cardinalB = cardinalDirection(slopeB, slopePrime, 4)
		}
	}

	if !clipAFound {
		switch cardinalA {
		case 1: // north
			ax, ay = p1x+(-halfHeightA)/slopePrime, topLeftAy
		case 2: // east
			ax, ay = bottomRightAx, p1y+halfWidthA*slopePrime
		case 3: // south
			ax, ay = p1x+halfHeightA/slopePrime, bottomLeftAy
		case 4: // west
			ax, ay = bottomLeftAx, p1y+(-halfWidthA)*slopePrime
		}
	}
	if !clipBFound {
		switch cardinalB {
		case 1:
			bx, by = p2x+(-halfHeightB)/slopePrime, topLeftBy
		case 2:
			bx, by = bottomRightBx, p2y+halfWidthB*slopePrime
		case 3:
			bx, by = p2x+halfHeightB/slopePrime, bottomLeftBy
		case 4:
			bx, by = bottomLeftBx, p2y+(-halfWidthB)*slopePrime
		}
	}
	return ax, ay, bx, by, false
}

// cardinalDirection picks the crossing side given the rectangle's diagonal
// slope, the center-line slope and the quadrant base line.
func cardinalDirection(slope, slopePrime float64, line int) int {
	if slope > slopePrime {
		return line
	}
	return 1 + line%4
}

// separationAmount computes per-axis displacements that, applied in opposite
// directions to a and b, resolve their overlap plus the given buffer. The
// raw overlap per axis is extended when one rectangle fully contains the
// other along that axis; the required separation is split between the axes
// proportionally to the slope between the centers (assumed 1 when the
// centers coincide).
func separationAmount(a, b rect, buffer float64) (float64, float64) {
	directionX, directionY := 1.0, 1.0
	if a.centerX() < b.centerX() {
		directionX = -1
	}
	if a.centerY() < b.centerY() {
		directionY = -1
	}

	overlapX := min(a.right(), b.right()) - max(a.x, b.x)
	overlapY := min(a.bottom(), b.bottom()) - max(a.y, b.y)

	if a.x <= b.x && a.right() >= b.right() {
		overlapX += min(b.x-a.x, a.right()-b.right())
	} else if b.x <= a.x && b.right() >= a.right() {
		overlapX += min(a.x-b.x, b.right()-a.right())
	}
	if a.y <= b.y && a.bottom() >= b.bottom() {
		overlapY += min(b.y-a.y, a.bottom()-b.bottom())
	} else if b.y <= a.y && b.bottom() >= a.bottom() {
		overlapY += min(a.y-b.y, b.bottom()-a.bottom())
	}

	slope := math.Abs((b.centerY() - a.centerY()) / (b.centerX() - a.centerX()))
	if b.centerY() == a.centerY() && b.centerX() == a.centerX() {
		slope = 1.0
	}

	moveByY := slope * overlapX
	moveByX := overlapY / slope
	if overlapX < moveByX {
		moveByX = overlapX
	} else {
		moveByY = overlapY
	}
	return -directionX * (moveByX/2 + buffer), -directionY * (moveByY/2 + buffer)
}

// sign is the three-valued sign function: 0 stays 0.
func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
