package trajectory

import (
	"fmt"
	"strings"
	"time"

	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/utils"
)

// minInterpolationInterval is the shortest interval between two points that is interpolated.
// Shorter intervals jump straight to the later point.
const minInterpolationInterval = time.Microsecond

// JointTrajectoryPoint is one sample of a trajectory: the time since the trajectory start, the
// positions and optional velocity, acceleration and effort channels over the same joint set.
type JointTrajectoryPoint struct {
	timeFromStart time.Duration
	positions     referenceframe.JointValues
	velocities    referenceframe.JointValues
	accelerations referenceframe.JointValues
	efforts       referenceframe.JointValues
}

// PointOption sets an optional channel of a JointTrajectoryPoint.
type PointOption func(*JointTrajectoryPoint)

// WithVelocities sets the velocity channel.
func WithVelocities(v referenceframe.JointValues) PointOption {
	return func(p *JointTrajectoryPoint) {
		p.velocities = v
	}
}

// WithAccelerations sets the acceleration channel.
func WithAccelerations(a referenceframe.JointValues) PointOption {
	return func(p *JointTrajectoryPoint) {
		p.accelerations = a
	}
}

// WithEfforts sets the effort channel.
func WithEfforts(e referenceframe.JointValues) PointOption {
	return func(p *JointTrajectoryPoint) {
		p.efforts = e
	}
}

// NewJointTrajectoryPoint returns a point at timeFromStart. Positions must not be empty and every
// channel that is set must use the joint set of the positions.
func NewJointTrajectoryPoint(
	timeFromStart time.Duration,
	positions referenceframe.JointValues,
	opts ...PointOption,
) (JointTrajectoryPoint, error) {
	if positions.IsEmpty() {
		return JointTrajectoryPoint{}, utils.NewInvariantError("trajectory point at %v has no positions", timeFromStart)
	}
	p := JointTrajectoryPoint{timeFromStart: timeFromStart, positions: positions}
	for _, opt := range opts {
		opt(&p)
	}
	for _, channel := range []struct {
		name   string
		values referenceframe.JointValues
	}{
		{"velocities", p.velocities},
		{"accelerations", p.accelerations},
		{"efforts", p.efforts},
	} {
		if channel.values.IsEmpty() {
			continue
		}
		if !channel.values.JointSet().Equal(positions.JointSet()) {
			return JointTrajectoryPoint{}, utils.NewInvariantError("%s joint set %v does not match positions joint set %v",
				channel.name, channel.values.JointSet(), positions.JointSet())
		}
	}
	return p, nil
}

// TimeFromStart returns the time of the point relative to the trajectory start.
func (p JointTrajectoryPoint) TimeFromStart() time.Duration {
	return p.timeFromStart
}

// JointSet returns the joint set of the positions.
func (p JointTrajectoryPoint) JointSet() *referenceframe.JointSet {
	return p.positions.JointSet()
}

// Positions returns the joint positions.
func (p JointTrajectoryPoint) Positions() referenceframe.JointValues {
	return p.positions
}

// Velocities returns the velocity channel and whether it is present.
func (p JointTrajectoryPoint) Velocities() (referenceframe.JointValues, bool) {
	return p.velocities, !p.velocities.IsEmpty()
}

// Accelerations returns the acceleration channel and whether it is present.
func (p JointTrajectoryPoint) Accelerations() (referenceframe.JointValues, bool) {
	return p.accelerations, !p.accelerations.IsEmpty()
}

// Efforts returns the effort channel and whether it is present.
func (p JointTrajectoryPoint) Efforts() (referenceframe.JointValues, bool) {
	return p.efforts, !p.efforts.IsEmpty()
}

// WithTimeFromStart returns a copy of the point at t.
func (p JointTrajectoryPoint) WithTimeFromStart(t time.Duration) JointTrajectoryPoint {
	p.timeFromStart = t
	return p
}

// AddTimeOffset returns a copy of the point shifted by offset.
func (p JointTrajectoryPoint) AddTimeOffset(offset time.Duration) JointTrajectoryPoint {
	p.timeFromStart += offset
	return p
}

// Reorder returns the point with every channel laid out in the order of js.
func (p JointTrajectoryPoint) Reorder(js *referenceframe.JointSet) (JointTrajectoryPoint, error) {
	out := JointTrajectoryPoint{timeFromStart: p.timeFromStart}
	var err error
	if out.positions, err = p.positions.Reorder(js); err != nil {
		return JointTrajectoryPoint{}, err
	}
	for _, ch := range []struct {
		in  referenceframe.JointValues
		out *referenceframe.JointValues
	}{
		{p.velocities, &out.velocities},
		{p.accelerations, &out.accelerations},
		{p.efforts, &out.efforts},
	} {
		if ch.in.IsEmpty() {
			continue
		}
		if *ch.out, err = ch.in.Reorder(js); err != nil {
			return JointTrajectoryPoint{}, err
		}
	}
	return out, nil
}

// Merge combines two points at the same time into one point over the union of their joint sets.
// Where the joint sets overlap, the values of p win. A derivative channel is kept only when both
// points carry it.
func (p JointTrajectoryPoint) Merge(other JointTrajectoryPoint) (JointTrajectoryPoint, error) {
	if p.timeFromStart != other.timeFromStart {
		return JointTrajectoryPoint{}, utils.NewInvariantError(
			"cannot merge trajectory points at different times %v and %v", p.timeFromStart, other.timeFromStart)
	}
	merged := JointTrajectoryPoint{
		timeFromStart: p.timeFromStart,
		positions:     p.positions.Merge(other.positions),
	}
	mergeChannel := func(a, b referenceframe.JointValues) referenceframe.JointValues {
		if a.IsEmpty() || b.IsEmpty() {
			return referenceframe.JointValues{}
		}
		return a.Merge(b)
	}
	merged.velocities = mergeChannel(p.velocities, other.velocities)
	merged.accelerations = mergeChannel(p.accelerations, other.accelerations)
	merged.efforts = mergeChannel(p.efforts, other.efforts)
	return merged, nil
}

// InterpolateCubic evaluates the cubic Hermite segment from p to other at time t, using the
// positions and velocities at both ends. A missing velocity channel counts as zero. The segment
// time τ = t - p.TimeFromStart() is clamped to [0, dt], so times outside the segment hold an end.
// When the segment is shorter than a microsecond the positions of other are returned with zero
// velocity. The result carries positions and velocities only.
func (p JointTrajectoryPoint) InterpolateCubic(other JointTrajectoryPoint, t time.Duration) (JointTrajectoryPoint, error) {
	js := p.JointSet()
	end, err := other.Reorder(js)
	if err != nil {
		return JointTrajectoryPoint{}, err
	}

	dt := end.timeFromStart - p.timeFromStart
	if dt < minInterpolationInterval {
		return JointTrajectoryPoint{
			timeFromStart: p.timeFromStart + dt,
			positions:     end.positions,
			velocities:    referenceframe.ZeroJointValues(js),
		}, nil
	}
	tau := min(max(t-p.timeFromStart, 0), dt)

	dts := dt.Seconds()
	taus := tau.Seconds()
	v0 := velocitiesOrZero(p)
	v1 := velocitiesOrZero(end)
	pos := make([]float64, js.Count())
	vel := make([]float64, js.Count())
	for i := range pos {
		a := p.positions.At(i)
		b := v0.At(i)
		q1 := end.positions.At(i)
		w1 := v1.At(i)
		c := (-3*a + 3*q1 - 2*dts*b - dts*w1) / (dts * dts)
		d := (2*a - 2*q1 + dts*b + dts*w1) / (dts * dts * dts)
		pos[i] = a + b*taus + c*taus*taus + d*taus*taus*taus
		vel[i] = b + 2*c*taus + 3*d*taus*taus
	}
	positions, err := referenceframe.NewJointValues(js, pos)
	if err != nil {
		return JointTrajectoryPoint{}, err
	}
	velocities, err := referenceframe.NewJointValues(js, vel)
	if err != nil {
		return JointTrajectoryPoint{}, err
	}
	return JointTrajectoryPoint{timeFromStart: p.timeFromStart + tau, positions: positions, velocities: velocities}, nil
}

func velocitiesOrZero(p JointTrajectoryPoint) referenceframe.JointValues {
	if v, ok := p.Velocities(); ok {
		return v
	}
	return referenceframe.ZeroJointValues(p.JointSet())
}

// Equal reports whether both points have the same time and equal channels.
func (p JointTrajectoryPoint) Equal(other JointTrajectoryPoint) bool {
	return p.timeFromStart == other.timeFromStart &&
		p.positions.Equal(other.positions) &&
		p.velocities.Equal(other.velocities) &&
		p.accelerations.Equal(other.accelerations) &&
		p.efforts.Equal(other.efforts)
}

func (p JointTrajectoryPoint) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{t: %v, positions: %v", p.timeFromStart, p.positions)
	if v, ok := p.Velocities(); ok {
		fmt.Fprintf(&sb, ", velocities: %v", v)
	}
	if a, ok := p.Accelerations(); ok {
		fmt.Fprintf(&sb, ", accelerations: %v", a)
	}
	if e, ok := p.Efforts(); ok {
		fmt.Fprintf(&sb, ", efforts: %v", e)
	}
	sb.WriteString("}")
	return sb.String()
}
