package spatialmath

import (
	"iter"

	"github.com/motionlab/motion/utils"
)

// CartesianPath is an ordered sequence of poses. Every operation returns a new path.
type CartesianPath struct {
	points []Pose
}

// NewCartesianPath returns a path through points.
func NewCartesianPath(points ...Pose) *CartesianPath {
	return &CartesianPath{points: append([]Pose(nil), points...)}
}

// Count returns the number of poses.
func (p *CartesianPath) Count() int {
	return len(p.points)
}

// At returns the pose at index i.
func (p *CartesianPath) At(i int) Pose {
	return p.points[i]
}

// Points returns a copy of the poses.
func (p *CartesianPath) Points() []Pose {
	return append([]Pose(nil), p.points...)
}

// All iterates over the index and pose of every point.
func (p *CartesianPath) All() iter.Seq2[int, Pose] {
	return func(yield func(int, Pose) bool) {
		for i, pose := range p.points {
			if !yield(i, pose) {
				return
			}
		}
	}
}

// Append returns a new path with points added after the existing poses. p is not modified.
func (p *CartesianPath) Append(points ...Pose) *CartesianPath {
	combined := make([]Pose, 0, len(p.points)+len(points))
	combined = append(combined, p.points...)
	return &CartesianPath{points: append(combined, points...)}
}

// Prepend returns a new path with points added before the existing poses. p is not modified.
func (p *CartesianPath) Prepend(points ...Pose) *CartesianPath {
	combined := make([]Pose, 0, len(p.points)+len(points))
	combined = append(combined, points...)
	return &CartesianPath{points: append(combined, p.points...)}
}

// Concat returns a new path holding the poses of p followed by those of other.
func (p *CartesianPath) Concat(other *CartesianPath) *CartesianPath {
	return p.Append(other.points...)
}

// Sub returns the poses in the half-open index range [start, end).
func (p *CartesianPath) Sub(start, end int) (*CartesianPath, error) {
	if start < 0 || end < start || end > len(p.points) {
		return nil, utils.NewIndexRangeError(start, end, len(p.points))
	}
	return NewCartesianPath(p.points[start:end]...), nil
}

// Transform returns a new path holding fn applied to every pose.
func (p *CartesianPath) Transform(fn func(index int, pose Pose) Pose) *CartesianPath {
	transformed := make([]Pose, len(p.points))
	for i, pose := range p.points {
		transformed[i] = fn(i, pose)
	}
	return &CartesianPath{points: transformed}
}

// Equal reports whether both paths hold equal poses in the same order.
func (p *CartesianPath) Equal(other *CartesianPath) bool {
	if len(p.points) != len(other.points) {
		return false
	}
	for i, pose := range p.points {
		if pose != other.points[i] {
			return false
		}
	}
	return true
}
