package referenceframe

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// JointValues is a vector of joint space values (positions, velocities, ...) indexed by a
// JointSet. The zero value is the empty JointValues, used to mark an absent channel.
type JointValues struct {
	jointSet *JointSet
	values   []float64
}

// NewJointValues returns JointValues pairing js with values. The number of values must equal the
// number of joints.
func NewJointValues(js *JointSet, values []float64) (JointValues, error) {
	if js == nil {
		return JointValues{}, NewNilJointSetError()
	}
	if len(values) != js.Count() {
		return JointValues{}, NewIncorrectDoFError(len(values), js.Count())
	}
	return JointValues{jointSet: js, values: append([]float64(nil), values...)}, nil
}

// ZeroJointValues returns JointValues over js with every value set to zero.
func ZeroJointValues(js *JointSet) JointValues {
	return JointValues{jointSet: js, values: make([]float64, js.Count())}
}

// JointSet returns the joint set the values are indexed by. It is nil for empty JointValues.
func (jv JointValues) JointSet() *JointSet {
	return jv.jointSet
}

// IsEmpty reports whether jv is the zero value.
func (jv JointValues) IsEmpty() bool {
	return jv.jointSet == nil
}

// Len returns the number of values.
func (jv JointValues) Len() int {
	return len(jv.values)
}

// At returns the value at index i.
func (jv JointValues) At(i int) float64 {
	return jv.values[i]
}

// Values returns a copy of the underlying values.
func (jv JointValues) Values() []float64 {
	return append([]float64(nil), jv.values...)
}

// TryGetValue returns the value of the named joint and whether the joint exists.
func (jv JointValues) TryGetValue(name string) (float64, bool) {
	i, ok := jv.jointSet.TryGetIndexOf(name)
	if !ok {
		return 0, false
	}
	return jv.values[i], true
}

// GetValue returns the value of the named joint, or a not found error.
func (jv JointValues) GetValue(name string) (float64, error) {
	if jv.jointSet == nil {
		return 0, NewMissingJointError(name)
	}
	i, err := jv.jointSet.GetIndexOf(name)
	if err != nil {
		return 0, err
	}
	return jv.values[i], nil
}

// Reorder returns the same per joint values laid out in the order of js, which must be similar
// to the current joint set.
func (jv JointValues) Reorder(js *JointSet) (JointValues, error) {
	if jv.jointSet.Equal(js) {
		return jv, nil
	}
	if !jv.jointSet.IsSimilar(js) {
		return JointValues{}, NewJointSetMismatchError(jv.jointSet, js)
	}
	return jv.Select(js)
}

// Select returns the values of the joints in subset, ordered like subset.
func (jv JointValues) Select(subset *JointSet) (JointValues, error) {
	if subset == nil {
		return JointValues{}, NewNilJointSetError()
	}
	values := make([]float64, subset.Count())
	for i, name := range subset.names {
		v, err := jv.GetValue(name)
		if err != nil {
			return JointValues{}, err
		}
		values[i] = v
	}
	return JointValues{jointSet: subset, values: values}, nil
}

// Transform returns new JointValues with fn applied to every value.
func (jv JointValues) Transform(fn func(value float64, index int) float64) JointValues {
	values := make([]float64, len(jv.values))
	for i, v := range jv.values {
		values[i] = fn(v, i)
	}
	return JointValues{jointSet: jv.jointSet, values: values}
}

// Merge returns JointValues over the union of both joint sets. For joints present in both, the
// value of jv is kept.
func (jv JointValues) Merge(other JointValues) JointValues {
	combined := CombineJointSets(jv.jointSet, other.jointSet)
	if combined == nil {
		return JointValues{}
	}
	values := make([]float64, combined.Count())
	for i, name := range combined.names {
		if v, ok := jv.TryGetValue(name); ok {
			values[i] = v
			continue
		}
		values[i], _ = other.TryGetValue(name)
	}
	return JointValues{jointSet: combined, values: values}
}

func (jv JointValues) elementwise(other JointValues, fn func(a, b float64) float64) (JointValues, error) {
	if !jv.jointSet.Equal(other.jointSet) {
		return JointValues{}, NewJointSetMismatchError(jv.jointSet, other.jointSet)
	}
	values := make([]float64, len(jv.values))
	for i, v := range jv.values {
		values[i] = fn(v, other.values[i])
	}
	return JointValues{jointSet: jv.jointSet, values: values}, nil
}

// Add returns jv + other. Both must share the same joint set.
func (jv JointValues) Add(other JointValues) (JointValues, error) {
	return jv.elementwise(other, func(a, b float64) float64 { return a + b })
}

// Subtract returns jv - other. Both must share the same joint set.
func (jv JointValues) Subtract(other JointValues) (JointValues, error) {
	return jv.elementwise(other, func(a, b float64) float64 { return a - b })
}

// Scale returns every value multiplied by f.
func (jv JointValues) Scale(f float64) JointValues {
	return jv.Transform(func(v float64, _ int) float64 { return v * f })
}

// Negate returns every value negated.
func (jv JointValues) Negate() JointValues {
	return jv.Scale(-1)
}

// Abs returns the absolute value of every value.
func (jv JointValues) Abs() JointValues {
	return jv.Transform(func(v float64, _ int) float64 { return math.Abs(v) })
}

// MaxNorm returns the largest absolute value, 0 when empty.
func (jv JointValues) MaxNorm() float64 {
	if len(jv.values) == 0 {
		return 0
	}
	return floats.Norm(jv.values, math.Inf(1))
}

// L2Norm returns the euclidean norm of the values.
func (jv JointValues) L2Norm() float64 {
	return floats.Norm(jv.values, 2)
}

// Equal reports whether both have equal joint sets and identical values.
func (jv JointValues) Equal(other JointValues) bool {
	return jv.jointSet.Equal(other.jointSet) && floats.Equal(jv.values, other.values)
}

// AlmostEqual reports whether both have equal joint sets and values within tol of each other.
func (jv JointValues) AlmostEqual(other JointValues, tol float64) bool {
	return jv.jointSet.Equal(other.jointSet) && floats.EqualApprox(jv.values, other.values, tol)
}

func (jv JointValues) String() string {
	if jv.jointSet == nil {
		return "{}"
	}
	parts := make([]string, len(jv.values))
	for i, v := range jv.values {
		parts[i] = fmt.Sprintf("%s: %g", jv.jointSet.names[i], v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RandomJointValues draws one value per joint uniformly from its position limits. Every joint
// must have both a min and a max position. A nil rng uses the goroutine safe global source.
func RandomJointValues(limits JointLimits, rng *rand.Rand) (JointValues, error) {
	js := limits.JointSet()
	if js == nil {
		return JointValues{}, NewNilJointSetError()
	}
	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}
	values := make([]float64, js.Count())
	for i, name := range js.names {
		lo, hi := limits.MinPosition(i), limits.MaxPosition(i)
		if !lo.Set || !hi.Set {
			return JointValues{}, NewMissingPositionLimitError(name)
		}
		values[i] = lo.Value + uniform()*(hi.Value-lo.Value)
	}
	return JointValues{jointSet: js, values: values}, nil
}
