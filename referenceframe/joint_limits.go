package referenceframe

import (
	"fmt"

	"github.com/motionlab/motion/utils"
)

// Bound is an optional limit value. A Bound with Set false means the joint is unconstrained.
type Bound struct {
	Value float64
	Set   bool
}

// NewBound returns a Bound holding v.
func NewBound(v float64) Bound {
	return Bound{Value: v, Set: true}
}

// NoBound is the unset Bound.
var NoBound = Bound{}

func (b Bound) String() string {
	if !b.Set {
		return "none"
	}
	return fmt.Sprintf("%g", b.Value)
}

// JointLimits holds per joint velocity, acceleration and position limits, any of which may be
// absent.
type JointLimits struct {
	jointSet        *JointSet
	maxVelocity     []Bound
	maxAcceleration []Bound
	minPosition     []Bound
	maxPosition     []Bound
}

// NewJointLimits returns JointLimits over js. Each non-nil slice must hold exactly one Bound per
// joint; a nil slice leaves that limit unset for every joint.
func NewJointLimits(js *JointSet, maxVelocity, maxAcceleration, minPosition, maxPosition []Bound) (JointLimits, error) {
	if js == nil {
		return JointLimits{}, NewNilJointSetError()
	}
	fill := func(kind string, bounds []Bound) ([]Bound, error) {
		if bounds == nil {
			return make([]Bound, js.Count()), nil
		}
		if len(bounds) != js.Count() {
			return nil, utils.NewInvariantError("%s has %d entries for %d joints", kind, len(bounds), js.Count())
		}
		return append([]Bound(nil), bounds...), nil
	}
	var err error
	limits := JointLimits{jointSet: js}
	if limits.maxVelocity, err = fill("max velocity", maxVelocity); err != nil {
		return JointLimits{}, err
	}
	if limits.maxAcceleration, err = fill("max acceleration", maxAcceleration); err != nil {
		return JointLimits{}, err
	}
	if limits.minPosition, err = fill("min position", minPosition); err != nil {
		return JointLimits{}, err
	}
	if limits.maxPosition, err = fill("max position", maxPosition); err != nil {
		return JointLimits{}, err
	}
	for i := range js.names {
		lo, hi := limits.minPosition[i], limits.maxPosition[i]
		if lo.Set && hi.Set && lo.Value > hi.Value {
			return JointLimits{}, NewInvalidLimitError(js.names[i], lo.Value, hi.Value)
		}
	}
	return limits, nil
}

// JointSet returns the joints the limits apply to.
func (jl JointLimits) JointSet() *JointSet {
	return jl.jointSet
}

// MaxVelocity returns the velocity limit of joint i.
func (jl JointLimits) MaxVelocity(i int) Bound { return jl.maxVelocity[i] }

// MaxAcceleration returns the acceleration limit of joint i.
func (jl JointLimits) MaxAcceleration(i int) Bound { return jl.maxAcceleration[i] }

// MinPosition returns the lower position limit of joint i.
func (jl JointLimits) MinPosition(i int) Bound { return jl.minPosition[i] }

// MaxPosition returns the upper position limit of joint i.
func (jl JointLimits) MaxPosition(i int) Bound { return jl.maxPosition[i] }

// MaxVelocities returns a copy of every velocity limit.
func (jl JointLimits) MaxVelocities() []Bound { return append([]Bound(nil), jl.maxVelocity...) }

// MaxAccelerations returns a copy of every acceleration limit.
func (jl JointLimits) MaxAccelerations() []Bound {
	return append([]Bound(nil), jl.maxAcceleration...)
}

// MinPositions returns a copy of every lower position limit.
func (jl JointLimits) MinPositions() []Bound { return append([]Bound(nil), jl.minPosition...) }

// MaxPositions returns a copy of every upper position limit.
func (jl JointLimits) MaxPositions() []Bound { return append([]Bound(nil), jl.maxPosition...) }

// Select returns the limits of the joints in subset, ordered like subset.
func (jl JointLimits) Select(subset *JointSet) (JointLimits, error) {
	if subset == nil {
		return JointLimits{}, NewNilJointSetError()
	}
	n := subset.Count()
	vel, acc, lo, hi := make([]Bound, n), make([]Bound, n), make([]Bound, n), make([]Bound, n)
	for i, name := range subset.names {
		j, err := jl.jointSet.GetIndexOf(name)
		if err != nil {
			return JointLimits{}, err
		}
		vel[i], acc[i], lo[i], hi[i] = jl.maxVelocity[j], jl.maxAcceleration[j], jl.minPosition[j], jl.maxPosition[j]
	}
	return JointLimits{jointSet: subset, maxVelocity: vel, maxAcceleration: acc, minPosition: lo, maxPosition: hi}, nil
}

// Reorder returns the limits laid out in the order of js, which must be similar to the current
// joint set.
func (jl JointLimits) Reorder(js *JointSet) (JointLimits, error) {
	if !jl.jointSet.IsSimilar(js) {
		return JointLimits{}, NewJointSetMismatchError(jl.jointSet, js)
	}
	return jl.Select(js)
}

// IsInside reports whether values respects every set position limit. Each joint of the limits
// must be present in values.
func (jl JointLimits) IsInside(values JointValues) (bool, error) {
	for i, name := range jl.jointSet.names {
		v, ok := values.TryGetValue(name)
		if !ok {
			return false, NewMissingJointError(name)
		}
		if lo := jl.minPosition[i]; lo.Set && v < lo.Value {
			return false, nil
		}
		if hi := jl.maxPosition[i]; hi.Set && v > hi.Value {
			return false, nil
		}
	}
	return true, nil
}
