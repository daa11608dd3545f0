package ephem

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationModel computes a body's orientation over time within its body
// frame. Times are Julian day numbers.
type RotationModel interface {
	OrientationAtTime(jd float64) mgl64.Quat
	// Period returns the rotation period in days; 0 for constant orientation.
	Period() float64
}

// UniformRotation spins a body at a constant rate about an axis given by
// inclination and ascending node, with the prime meridian at MeridianAngle
// at the epoch.
type UniformRotation struct {
	RotationPeriod float64 // days
	Inclination    float64 // radians
	AscendingNode  float64 // radians
	MeridianAngle  float64 // radians
	Epoch          float64 // Julian day
}

// Period returns the rotation period in days.
func (r *UniformRotation) Period() float64 { return r.RotationPeriod }

// OrientationAtTime returns the body orientation at the given Julian day.
func (r *UniformRotation) OrientationAtTime(jd float64) mgl64.Quat {
	spin := r.MeridianAngle
	if r.RotationPeriod != 0 {
		spin += 2 * math.Pi * (jd - r.Epoch) / r.RotationPeriod
	}
	return mgl64.QuatRotate(r.AscendingNode, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(r.Inclination, mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(spin, mgl64.Vec3{0, 0, 1}))
}

// ConstantOrientation holds a body at a fixed orientation. It is the fallback
// rotation model when a timeline phase supplies no parseable rotation.
type ConstantOrientation struct {
	Orientation mgl64.Quat
}

// OrientationAtTime returns the fixed orientation regardless of time.
func (r *ConstantOrientation) OrientationAtTime(float64) mgl64.Quat { return r.Orientation }

// Period returns 0.
func (r *ConstantOrientation) Period() float64 { return 0 }

// PrecessingRotation is a uniform rotation whose ascending node itself
// precesses with the given period.
type PrecessingRotation struct {
	UniformRotation
	PrecessionPeriod float64 // days
}

// OrientationAtTime returns the body orientation with nodal precession
// applied.
func (r *PrecessingRotation) OrientationAtTime(jd float64) mgl64.Quat {
	node := r.AscendingNode
	if r.PrecessionPeriod != 0 {
		node += 2 * math.Pi * (jd - r.Epoch) / r.PrecessionPeriod
	}
	spin := r.MeridianAngle
	if r.RotationPeriod != 0 {
		spin += 2 * math.Pi * (jd - r.Epoch) / r.RotationPeriod
	}
	return mgl64.QuatRotate(node, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(r.Inclination, mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(spin, mgl64.Vec3{0, 0, 1}))
}

// NewSynchronousRotation returns the default rotation model for a body that
// specifies none: a uniform rotation locked to the orbital period, which is
// correct for nearly all natural satellites.
func NewSynchronousRotation(orbit Orbit, epoch float64) *UniformRotation {
	return &UniformRotation{
		RotationPeriod: SyncPeriod(orbit),
		Epoch:          epoch,
	}
}
