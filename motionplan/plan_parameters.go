package motionplan

import (
	"math"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/utils"
)

// default values for plan parameters.
const (
	// Check constraints every this many radians of joint movement.
	defaultSampleResolution = 0.01

	// Allowed deviation from the requested path, in radians for joint moves and meters for
	// cartesian moves. Zero means the path must be followed exactly.
	defaultMaxDeviation = 0.

	// meters per second and meters per second squared.
	defaultMaxXYZVelocity     = 0.1
	defaultMaxXYZAcceleration = 0.5

	// radians per second and radians per second squared.
	defaultMaxAngularVelocity     = 0.5
	defaultMaxAngularAcceleration = 1.

	// Largest joint jump between consecutive IK solutions of a cartesian path, in radians.
	defaultIkJumpThreshold = 0.2
)

// PlanParameters are the validated limits a planner uses for a joint space move. They are
// immutable; use ToBuilder or the With methods to derive changed parameters.
type PlanParameters struct {
	jointSet         *referenceframe.JointSet
	maxVelocity      []float64
	maxAcceleration  []float64
	sampleResolution float64
	collisionCheck   bool
	maxDeviation     float64
}

// PlanParametersBuilder is the mutable form of PlanParameters.
type PlanParametersBuilder struct {
	// JointSet is optional. When set, MaxVelocity and MaxAcceleration hold one entry per joint in
	// its order.
	JointSet         *referenceframe.JointSet
	MaxVelocity      []float64
	MaxAcceleration  []float64
	SampleResolution float64
	CollisionCheck   bool
	MaxDeviation     float64
}

// NewPlanParametersBuilder returns a builder filled with default values and no joint limits.
func NewPlanParametersBuilder() *PlanParametersBuilder {
	return &PlanParametersBuilder{
		SampleResolution: defaultSampleResolution,
		CollisionCheck:   true,
		MaxDeviation:     defaultMaxDeviation,
	}
}

// NewPlanParametersFromLimits returns default parameters whose velocity and acceleration limits
// come from limits. Every joint must have both bounds.
func NewPlanParametersFromLimits(limits referenceframe.JointLimits) (*PlanParameters, error) {
	js := limits.JointSet()
	if js == nil {
		return nil, referenceframe.NewNilJointSetError()
	}
	b := NewPlanParametersBuilder()
	b.JointSet = js
	b.MaxVelocity = make([]float64, js.Count())
	b.MaxAcceleration = make([]float64, js.Count())
	var errs error
	for i, name := range js.Names() {
		vel, acc := limits.MaxVelocity(i), limits.MaxAcceleration(i)
		if !vel.Set {
			errs = multierr.Append(errs, NewMissingVelocityLimitError(name))
		}
		if !acc.Set {
			errs = multierr.Append(errs, NewMissingAccelerationLimitError(name))
		}
		b.MaxVelocity[i], b.MaxAcceleration[i] = vel.Value, acc.Value
	}
	if errs != nil {
		return nil, errs
	}
	return b.Build()
}

// ScaleVelocity multiplies every velocity limit by factor, which must be in (0, 1].
func (b *PlanParametersBuilder) ScaleVelocity(factor float64) error {
	if !validScaleFactor(factor) {
		return NewScaleFactorError("velocity", factor)
	}
	floats.Scale(factor, b.MaxVelocity)
	return nil
}

// ScaleAcceleration multiplies every acceleration limit by factor, which must be in (0, 1].
func (b *PlanParametersBuilder) ScaleAcceleration(factor float64) error {
	if !validScaleFactor(factor) {
		return NewScaleFactorError("acceleration", factor)
	}
	floats.Scale(factor, b.MaxAcceleration)
	return nil
}

// Build validates the builder and returns the frozen parameters. Every violation is reported.
func (b *PlanParametersBuilder) Build() (*PlanParameters, error) {
	var errs error
	if b.JointSet != nil {
		if len(b.MaxVelocity) != b.JointSet.Count() {
			errs = multierr.Append(errs, NewLimitCountError("max velocity", len(b.MaxVelocity), b.JointSet))
		}
		if len(b.MaxAcceleration) != b.JointSet.Count() {
			errs = multierr.Append(errs, NewLimitCountError("max acceleration", len(b.MaxAcceleration), b.JointSet))
		}
	} else if len(b.MaxVelocity) != len(b.MaxAcceleration) {
		errs = multierr.Append(errs, utils.NewInvariantError(
			"%d max velocities do not match %d max accelerations", len(b.MaxVelocity), len(b.MaxAcceleration)))
	}
	errs = multierr.Append(errs, validatePositive("max velocity", b.MaxVelocity...))
	errs = multierr.Append(errs, validatePositive("max acceleration", b.MaxAcceleration...))
	errs = multierr.Append(errs, validatePositive("sample resolution", b.SampleResolution))
	errs = multierr.Append(errs, validateNonNegative("max deviation", b.MaxDeviation))
	if errs != nil {
		return nil, errs
	}
	return &PlanParameters{
		jointSet:         b.JointSet,
		maxVelocity:      append([]float64(nil), b.MaxVelocity...),
		maxAcceleration:  append([]float64(nil), b.MaxAcceleration...),
		sampleResolution: b.SampleResolution,
		collisionCheck:   b.CollisionCheck,
		maxDeviation:     b.MaxDeviation,
	}, nil
}

// ToBuilder returns a builder holding a copy of the parameters.
func (p *PlanParameters) ToBuilder() *PlanParametersBuilder {
	return &PlanParametersBuilder{
		JointSet:         p.jointSet,
		MaxVelocity:      p.MaxVelocity(),
		MaxAcceleration:  p.MaxAcceleration(),
		SampleResolution: p.sampleResolution,
		CollisionCheck:   p.collisionCheck,
		MaxDeviation:     p.maxDeviation,
	}
}

// JointSet returns the joints the limits apply to, or nil when the parameters are not bound to a
// joint set.
func (p *PlanParameters) JointSet() *referenceframe.JointSet { return p.jointSet }

// MaxVelocity returns a copy of the per joint velocity limits.
func (p *PlanParameters) MaxVelocity() []float64 { return append([]float64(nil), p.maxVelocity...) }

// MaxAcceleration returns a copy of the per joint acceleration limits.
func (p *PlanParameters) MaxAcceleration() []float64 {
	return append([]float64(nil), p.maxAcceleration...)
}

// SampleResolution returns the time step, in seconds, at which a planner samples its trajectory.
func (p *PlanParameters) SampleResolution() float64 { return p.sampleResolution }

// CollisionCheck reports whether the planner should check the trajectory for collisions.
func (p *PlanParameters) CollisionCheck() bool { return p.collisionCheck }

// MaxDeviation returns how far the planned trajectory may deviate from the requested path.
func (p *PlanParameters) MaxDeviation() float64 { return p.maxDeviation }

// WithMaxVelocity returns parameters with the given velocity limits.
func (p *PlanParameters) WithMaxVelocity(maxVelocity []float64) (*PlanParameters, error) {
	if floats.Equal(p.maxVelocity, maxVelocity) {
		return p, nil
	}
	b := p.ToBuilder()
	b.MaxVelocity = maxVelocity
	return b.Build()
}

// WithMaxAcceleration returns parameters with the given acceleration limits.
func (p *PlanParameters) WithMaxAcceleration(maxAcceleration []float64) (*PlanParameters, error) {
	if floats.Equal(p.maxAcceleration, maxAcceleration) {
		return p, nil
	}
	b := p.ToBuilder()
	b.MaxAcceleration = maxAcceleration
	return b.Build()
}

// WithSampleResolution returns parameters with the given sample resolution.
func (p *PlanParameters) WithSampleResolution(resolution float64) (*PlanParameters, error) {
	if p.sampleResolution == resolution {
		return p, nil
	}
	b := p.ToBuilder()
	b.SampleResolution = resolution
	return b.Build()
}

// WithCollisionCheck returns parameters with collision checking switched on or off.
func (p *PlanParameters) WithCollisionCheck(check bool) (*PlanParameters, error) {
	if p.collisionCheck == check {
		return p, nil
	}
	b := p.ToBuilder()
	b.CollisionCheck = check
	return b.Build()
}

// WithMaxDeviation returns parameters with the given maximum path deviation.
func (p *PlanParameters) WithMaxDeviation(deviation float64) (*PlanParameters, error) {
	if p.maxDeviation == deviation {
		return p, nil
	}
	b := p.ToBuilder()
	b.MaxDeviation = deviation
	return b.Build()
}

// WithVelocityScale returns parameters with every velocity limit multiplied by factor.
func (p *PlanParameters) WithVelocityScale(factor float64) (*PlanParameters, error) {
	if factor == 1 {
		return p, nil
	}
	b := p.ToBuilder()
	if err := b.ScaleVelocity(factor); err != nil {
		return nil, err
	}
	return b.Build()
}

// WithAccelerationScale returns parameters with every acceleration limit multiplied by factor.
func (p *PlanParameters) WithAccelerationScale(factor float64) (*PlanParameters, error) {
	if factor == 1 {
		return p, nil
	}
	b := p.ToBuilder()
	if err := b.ScaleAcceleration(factor); err != nil {
		return nil, err
	}
	return b.Build()
}

func validScaleFactor(f float64) bool {
	return f > 0 && f <= 1
}

func validatePositive(kind string, values ...float64) error {
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return utils.NewInvariantError("%s must be positive and finite, got %g", kind, v)
		}
	}
	return nil
}

func validateNonNegative(kind string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return utils.NewInvariantError("%s must be non-negative and finite, got %g", kind, v)
	}
	return nil
}
