// Package ephem defines orbital position and rotation models for catalog
// bodies. Each family is a closed set of variants selected by a tag field in
// the catalog entry; see CreateOrbit and CreateRotationModel.
package ephem

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Orbit computes a body's position over time within its orbit frame.
// Positions are in kilometers, times are Julian day numbers.
type Orbit interface {
	PositionAtTime(jd float64) mgl64.Vec3
	// Period returns the orbital period in days; 0 for aperiodic orbits.
	Period() float64
}

// EllipticalOrbit is a Keplerian two-body orbit.
type EllipticalOrbit struct {
	PericenterDistance float64 // km
	Eccentricity       float64
	Inclination        float64 // radians
	AscendingNode      float64 // radians
	ArgOfPericenter    float64 // radians
	MeanAnomalyAtEpoch float64 // radians
	OrbitalPeriod      float64 // days
	Epoch              float64 // Julian day
}

// Period returns the orbital period in days.
func (o *EllipticalOrbit) Period() float64 { return o.OrbitalPeriod }

// eccentricAnomaly solves Kepler's equation M = E - e sin E by fixed-point
// iteration for small eccentricities and Laguerre-Conway otherwise.
func (o *EllipticalOrbit) eccentricAnomaly(M float64) float64 {
	e := o.Eccentricity
	E := M
	if e < 0.2 {
		for i := 0; i < 5; i++ {
			E = M + e*math.Sin(E)
		}
		return E
	}
	for i := 0; i < 20; i++ {
		s := e * math.Sin(E)
		c := e * math.Cos(E)
		f := E - s - M
		f1 := 1 - c
		f2 := s
		d := -5 * f / (f1 + sign(f1)*math.Sqrt(math.Abs(16*f1*f1-20*f*f2)))
		E += d
		if math.Abs(d) < 1e-12 {
			break
		}
	}
	return E
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// PositionAtTime returns the orbital position at the given Julian day.
func (o *EllipticalOrbit) PositionAtTime(jd float64) mgl64.Vec3 {
	meanMotion := 2 * math.Pi / o.OrbitalPeriod
	M := o.MeanAnomalyAtEpoch + meanMotion*(jd-o.Epoch)
	E := o.eccentricAnomaly(M)

	e := o.Eccentricity
	a := o.PericenterDistance / (1 - e)
	x := a * (math.Cos(E) - e)
	y := a * math.Sqrt(1-e*e) * math.Sin(E)

	// Rotate from the orbital plane into the frame: argument of pericenter,
	// then inclination, then ascending node.
	q := mgl64.QuatRotate(o.AscendingNode, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(o.Inclination, mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(o.ArgOfPericenter, mgl64.Vec3{0, 0, 1}))
	return q.Rotate(mgl64.Vec3{x, y, 0})
}

// FixedPosition is a degenerate orbit pinning a body to a constant offset
// from its frame center. Used for surface features and reference points.
type FixedPosition struct {
	Position mgl64.Vec3 // km
}

// PositionAtTime returns the fixed offset regardless of time.
func (o *FixedPosition) PositionAtTime(float64) mgl64.Vec3 { return o.Position }

// Period returns 0; a fixed position has no meaningful period. Callers that
// synthesize synchronous rotation substitute a default period instead.
func (o *FixedPosition) Period() float64 { return 0 }

// LongLatOrbit fixes a body at planetographic coordinates on its parent,
// expressed in the parent's body-fixed frame.
type LongLatOrbit struct {
	Position mgl64.Vec3 // km, precomputed from long/lat/altitude
}

// PositionAtTime returns the fixed surface offset.
func (o *LongLatOrbit) PositionAtTime(float64) mgl64.Vec3 { return o.Position }

// Period returns 0.
func (o *LongLatOrbit) Period() float64 { return 0 }

// defaultOrbitPeriod is used when a synchronous rotation must be synthesized
// for an aperiodic orbit.
const defaultOrbitPeriod = 1.0

// SyncPeriod returns the period to use for a synthesized synchronous
// rotation: the orbit's period, or one day if the orbit is aperiodic.
func SyncPeriod(o Orbit) float64 {
	if p := o.Period(); p > 0 {
		return p
	}
	return defaultOrbitPeriod
}
