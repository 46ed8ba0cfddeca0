package testcase

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Defaults for generated cases.
const (
	DefaultMinPoints = 2
	DefaultMaxPoints = 100
	DefaultMinCoord  = -100.0
	DefaultMaxCoord  = 100.0

	// MaxAbsCoord bounds the magnitude of a coordinate. Up to it every
	// hundredth has a float64 that prints back to the same two decimals.
	MaxAbsCoord = 1e12
)

// DefaultBounds returns the [-100, 100] x [-100, 100] bounding box.
func DefaultBounds() r2.Rect {
	return Bounds(DefaultMinCoord, DefaultMaxCoord)
}

// Bounds returns a square box spanning [lo, hi] on both axes.
func Bounds(lo, hi float64) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: lo, Hi: hi},
		Y: r1.Interval{Lo: lo, Hi: hi},
	}
}

// NewRand returns a PCG-backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator produces random test cases.
type Generator struct {
	rng       *rand.Rand
	bounds    r2.Rect
	minPoints int
	maxPoints int
}

// NewGenerator creates a generator drawing from rng.
// The caller guarantees 1 <= minPoints <= maxPoints and that bounds lies within
// [-MaxAbsCoord, MaxAbsCoord] and holds at least one point on the 0.01 grid
// along each axis.
func NewGenerator(rng *rand.Rand, bounds r2.Rect, minPoints, maxPoints int) *Generator {
	return &Generator{
		rng:       rng,
		bounds:    bounds,
		minPoints: minPoints,
		maxPoints: maxPoints,
	}
}

// Generate returns a fresh case with a uniformly chosen point count.
func (g *Generator) Generate() TestCase {
	n := g.minPoints + g.rng.IntN(g.maxPoints-g.minPoints+1)
	points := make([]r2.Point, n)
	for i := range points {
		points[i] = r2.Point{
			X: g.coord(g.bounds.X),
			Y: g.coord(g.bounds.Y),
		}
	}
	return TestCase{Points: points}
}

// coord samples uniformly from the hundredths that lie inside iv, so the
// value survives a round trip through its two-decimal text form unchanged.
func (g *Generator) coord(iv r1.Interval) float64 {
	lo, hi := GridRange(iv)
	k := lo + g.rng.Int64N(hi-lo+1)
	return float64(k) / 100
}

// GridRange returns the smallest and largest multiples of 0.01 within iv,
// expressed in hundredths. lo > hi when the interval holds none.
// The interval is clipped to [-MaxAbsCoord, MaxAbsCoord] first so the result
// always fits in an int64.
func GridRange(iv r1.Interval) (lo, hi int64) {
	iv = iv.Intersection(r1.Interval{Lo: -MaxAbsCoord, Hi: MaxAbsCoord})
	if iv.IsEmpty() {
		return 1, 0
	}
	return int64(math.Ceil(iv.Lo*100 - 1e-9)), int64(math.Floor(iv.Hi*100 + 1e-9))
}

// InRange reports whether v is a finite coordinate no larger in magnitude
// than MaxAbsCoord.
func InRange(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= MaxAbsCoord
}
