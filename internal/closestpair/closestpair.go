// Package closestpair finds the two nearest points of a set. It provides
// the fast divide-and-conquer solver and the quadratic reference it is
// checked against.
package closestpair

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/golang/geo/r2"
)

// ErrTooFewPoints is returned for sets with fewer than two points.
var ErrTooFewPoints = errors.New("closestpair: need at least two points")

// Pair is a closest pair.
type Pair struct {
	P1, P2 r2.Point
}

// Distance returns the Euclidean distance between the two points.
func (p Pair) Distance() float64 {
	return p.P2.Sub(p.P1).Norm()
}

// Solver finds a closest pair.
type Solver func(points []r2.Point) (Pair, error)

// BruteForce compares every pair. It is the reference solver.
func BruteForce(points []r2.Point) (Pair, error) {
	if len(points) < 2 {
		return Pair{}, ErrTooFewPoints
	}
	best, _ := bruteForce(points)
	return best, nil
}

// DivideAndConquer sorts by X, solves both halves and then scans the slab
// around the dividing line in Y order. The input slice is not modified.
func DivideAndConquer(points []r2.Point) (Pair, error) {
	if len(points) < 2 {
		return Pair{}, ErrTooFewPoints
	}
	byX := slices.Clone(points)
	slices.SortFunc(byX, func(a, b r2.Point) int { return cmp.Compare(a.X, b.X) })
	best, _ := divide(byX)
	return best, nil
}

func divide(pts []r2.Point) (Pair, float64) {
	if len(pts) <= 3 {
		return bruteForce(pts)
	}

	mid := len(pts) / 2
	midX := pts[mid].X
	best, bestSq := divide(pts[:mid])
	if p, sq := divide(pts[mid:]); sq < bestSq {
		best, bestSq = p, sq
	}

	delta := math.Sqrt(bestSq)
	var slab []r2.Point
	for _, p := range pts {
		if math.Abs(p.X-midX) < delta {
			slab = append(slab, p)
		}
	}
	slices.SortFunc(slab, func(a, b r2.Point) int { return cmp.Compare(a.Y, b.Y) })

	// Within the slab only points less than delta apart in Y can improve.
	for i := range slab {
		for j := i + 1; j < len(slab) && slab[j].Y-slab[i].Y < delta; j++ {
			if sq := squaredDistance(slab[i], slab[j]); sq < bestSq {
				best, bestSq = Pair{P1: slab[i], P2: slab[j]}, sq
				delta = math.Sqrt(sq)
			}
		}
	}
	return best, bestSq
}

func bruteForce(pts []r2.Point) (Pair, float64) {
	best := Pair{P1: pts[0], P2: pts[1]}
	bestSq := squaredDistance(pts[0], pts[1])
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if sq := squaredDistance(pts[i], pts[j]); sq < bestSq {
				best, bestSq = Pair{P1: pts[i], P2: pts[j]}, sq
			}
		}
	}
	return best, bestSq
}

func squaredDistance(a, b r2.Point) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}
