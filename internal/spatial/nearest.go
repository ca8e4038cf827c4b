// Package spatial picks the entity closest to the robot on the map plane.
package spatial

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoCandidates is returned when there is nothing to choose from.
var ErrNoCandidates = errors.New("no candidates")

// Candidate is a named entity with a planar position.
type Candidate struct {
	Name     string
	Position r2.Vec
}

// SquaredDistance is the squared planar distance between a and b.
func SquaredDistance(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// Nearest returns the candidate closest to origin. On a tie the earliest
// candidate wins.
func Nearest(origin r2.Vec, candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	best := 0
	bestDist := SquaredDistance(origin, candidates[0].Position)
	for i := 1; i < len(candidates); i++ {
		if d := SquaredDistance(origin, candidates[i].Position); d < bestDist {
			best, bestDist = i, d
		}
	}
	return candidates[best], nil
}
