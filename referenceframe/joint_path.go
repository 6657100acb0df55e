package referenceframe

import (
	"iter"

	"github.com/motionlab/motion/utils"
)

// JointPath is an ordered sequence of joint space waypoints sharing one JointSet. Every operation
// returns a new JointPath; existing paths never change.
type JointPath struct {
	jointSet *JointSet
	points   []JointValues
}

// NewJointPath returns a path over js. Points whose joint set is similar to js but ordered
// differently are reordered; points with any other joint set are rejected.
func NewJointPath(js *JointSet, points ...JointValues) (*JointPath, error) {
	if js == nil {
		return nil, NewNilJointSetError()
	}
	normalized, err := normalizePoints(js, points)
	if err != nil {
		return nil, err
	}
	return &JointPath{jointSet: js, points: normalized}, nil
}

// NewJointPathFromPoints returns a path whose joint set is taken from the first point.
func NewJointPathFromPoints(points ...JointValues) (*JointPath, error) {
	if len(points) == 0 {
		return nil, utils.NewInvariantError("cannot infer the joint set of a path without points")
	}
	return NewJointPath(points[0].JointSet(), points...)
}

func normalizePoints(js *JointSet, points []JointValues) ([]JointValues, error) {
	normalized := make([]JointValues, len(points))
	for i, p := range points {
		if p.IsEmpty() {
			return nil, utils.NewInvariantError("path point %d is empty", i)
		}
		reordered, err := p.Reorder(js)
		if err != nil {
			return nil, err
		}
		normalized[i] = reordered
	}
	return normalized, nil
}

// JointSet returns the joint set shared by every point.
func (p *JointPath) JointSet() *JointSet {
	return p.jointSet
}

// Count returns the number of points.
func (p *JointPath) Count() int {
	return len(p.points)
}

// At returns the point at index i.
func (p *JointPath) At(i int) JointValues {
	return p.points[i]
}

// Points returns a copy of the points.
func (p *JointPath) Points() []JointValues {
	return append([]JointValues(nil), p.points...)
}

// All iterates over the index and value of every point.
func (p *JointPath) All() iter.Seq2[int, JointValues] {
	return func(yield func(int, JointValues) bool) {
		for i, v := range p.points {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Append returns a new path with points added at the end.
func (p *JointPath) Append(points ...JointValues) (*JointPath, error) {
	normalized, err := normalizePoints(p.jointSet, points)
	if err != nil {
		return nil, err
	}
	combined := make([]JointValues, 0, len(p.points)+len(normalized))
	combined = append(combined, p.points...)
	combined = append(combined, normalized...)
	return &JointPath{jointSet: p.jointSet, points: combined}, nil
}

// Prepend returns a new path with points added at the start.
func (p *JointPath) Prepend(points ...JointValues) (*JointPath, error) {
	normalized, err := normalizePoints(p.jointSet, points)
	if err != nil {
		return nil, err
	}
	combined := make([]JointValues, 0, len(p.points)+len(normalized))
	combined = append(combined, normalized...)
	combined = append(combined, p.points...)
	return &JointPath{jointSet: p.jointSet, points: combined}, nil
}

// Concat returns a new path with the points of other appended.
func (p *JointPath) Concat(other *JointPath) (*JointPath, error) {
	return p.Append(other.points...)
}

// Sub returns the points in the half-open index range [start, end).
func (p *JointPath) Sub(start, end int) (*JointPath, error) {
	if start < 0 || end < start || end > len(p.points) {
		return nil, utils.NewIndexRangeError(start, end, len(p.points))
	}
	return &JointPath{jointSet: p.jointSet, points: append([]JointValues(nil), p.points[start:end]...)}, nil
}

// Transform returns a new path holding fn applied to every point. The results must stay on a
// joint set similar to the path's.
func (p *JointPath) Transform(fn func(index int, v JointValues) JointValues) (*JointPath, error) {
	transformed := make([]JointValues, len(p.points))
	for i, v := range p.points {
		transformed[i] = fn(i, v)
	}
	return NewJointPath(p.jointSet, transformed...)
}

// Equal reports whether both paths share a joint set and hold equal points.
func (p *JointPath) Equal(other *JointPath) bool {
	if !p.jointSet.Equal(other.jointSet) || len(p.points) != len(other.points) {
		return false
	}
	for i, v := range p.points {
		if !v.Equal(other.points[i]) {
			return false
		}
	}
	return true
}
