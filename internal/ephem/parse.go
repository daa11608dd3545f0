package ephem

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/astro"
	"github.com/LBV2012-26/Celestia/internal/parser"
)

// ErrNoOrbit is returned by CreateOrbit when the attribute map carries no
// orbit descriptor at all. Callers with a previous orbit to fall back on
// treat it as "nothing new supplied".
var ErrNoOrbit = errors.New("ephem: no orbit specified")

// CreateOrbit builds an orbit from the descriptor fields of an attribute
// map. The variant is selected by which tag is present: EllipticalOrbit,
// FixedPosition, or LongLat. usePlanetUnits selects the unit convention for
// elliptical elements: astronomical units and years when the orbit frame is
// centered on a star, kilometers and days otherwise.
func CreateOrbit(m *parser.Map, usePlanetUnits bool) (Orbit, error) {
	if elems, ok := m.Map("EllipticalOrbit"); ok {
		return createEllipticalOrbit(elems, usePlanetUnits)
	}
	if pos, ok := m.Vector("FixedPosition"); ok {
		return &FixedPosition{Position: pos}, nil
	}
	if v := m.Value("EllipticalOrbit"); v != nil {
		return nil, fmt.Errorf("ephem: EllipticalOrbit must be a property group")
	}
	return nil, ErrNoOrbit
}

func createEllipticalOrbit(m *parser.Map, usePlanetUnits bool) (*EllipticalOrbit, error) {
	o := &EllipticalOrbit{Epoch: astro.J2000}

	// Size: pericenter distance wins over semi-major axis when both appear.
	semiMajor, haveSemiMajor := m.Number("SemiMajorAxis")
	pericenter, havePericenter := m.Number("PericenterDistance")
	if !haveSemiMajor && !havePericenter {
		return nil, fmt.Errorf("ephem: elliptical orbit missing SemiMajorAxis or PericenterDistance")
	}

	period, havePeriod := m.Number("Period")
	if !havePeriod || period <= 0 {
		return nil, fmt.Errorf("ephem: elliptical orbit missing Period")
	}

	if usePlanetUnits {
		semiMajor = astro.AUToKm(semiMajor)
		pericenter = astro.AUToKm(pericenter)
		period = astro.YearsToDays(period)
	}

	if e, ok := m.Number("Eccentricity"); ok {
		if e < 0 || e >= 1 {
			return nil, fmt.Errorf("ephem: eccentricity %v out of range", e)
		}
		o.Eccentricity = e
	}
	if havePericenter {
		o.PericenterDistance = pericenter
	} else {
		o.PericenterDistance = semiMajor * (1 - o.Eccentricity)
	}
	o.OrbitalPeriod = period

	if inc, ok := m.Number("Inclination"); ok {
		o.Inclination = astro.DegToRad(inc)
	}
	if node, ok := m.Number("AscendingNode"); ok {
		o.AscendingNode = astro.DegToRad(node)
	}

	// Argument of pericenter may be given directly or via the longitude of
	// pericenter (which includes the ascending node).
	if arg, ok := m.Number("ArgOfPericenter"); ok {
		o.ArgOfPericenter = astro.DegToRad(arg)
	} else if long, ok := m.Number("LongOfPericenter"); ok {
		o.ArgOfPericenter = astro.DegToRad(long) - o.AscendingNode
	}

	if epoch, ok := m.Date("Epoch"); ok {
		o.Epoch = epoch
	}

	// Mean anomaly may be given directly or via the mean longitude.
	if anom, ok := m.Number("MeanAnomaly"); ok {
		o.MeanAnomalyAtEpoch = astro.DegToRad(anom)
	} else if long, ok := m.Number("MeanLongitude"); ok {
		o.MeanAnomalyAtEpoch = astro.DegToRad(long) - (o.ArgOfPericenter + o.AscendingNode)
	}

	return o, nil
}

// CreateRotationModel builds a rotation model from the descriptor fields of
// an attribute map. Recognized forms, in precedence order: a UniformRotation
// or PrecessingRotation property group, a FixedRotation property group, and
// the legacy inline scalar fields (RotationPeriod, Obliquity, ...). It
// returns nil with no error when the map carries no rotation information;
// the caller decides between a previous model and a synthesized synchronous
// one.
func CreateRotationModel(m *parser.Map, syncPeriod float64) (RotationModel, error) {
	if fields, ok := m.Map("UniformRotation"); ok {
		u, err := createUniformRotation(fields, syncPeriod)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	if fields, ok := m.Map("PrecessingRotation"); ok {
		u, err := createUniformRotation(fields, syncPeriod)
		if err != nil {
			return nil, err
		}
		p := &PrecessingRotation{UniformRotation: *u}
		if pp, ok := fields.Number("PrecessionPeriod"); ok {
			p.PrecessionPeriod = astro.YearsToDays(pp)
		}
		return p, nil
	}
	if fields, ok := m.Map("FixedRotation"); ok {
		return createFixedRotation(fields), nil
	}
	if hasLegacyRotationFields(m) {
		return createLegacyRotation(m, syncPeriod), nil
	}
	return nil, nil
}

func createUniformRotation(m *parser.Map, syncPeriod float64) (*UniformRotation, error) {
	u := &UniformRotation{RotationPeriod: syncPeriod, Epoch: astro.J2000}
	if p, ok := m.Number("Period"); ok {
		if p == 0 {
			return nil, fmt.Errorf("ephem: rotation period must be nonzero")
		}
		u.RotationPeriod = p / 24.0 // hours to days
	}
	if inc, ok := m.Number("Inclination"); ok {
		u.Inclination = astro.DegToRad(inc)
	}
	if node, ok := m.Number("AscendingNode"); ok {
		u.AscendingNode = astro.DegToRad(node)
	}
	if mer, ok := m.Number("MeridianAngle"); ok {
		u.MeridianAngle = astro.DegToRad(mer)
	}
	if epoch, ok := m.Date("Epoch"); ok {
		u.Epoch = epoch
	}
	return u, nil
}

func createFixedRotation(m *parser.Map) *ConstantOrientation {
	c := &ConstantOrientation{Orientation: mgl64.QuatIdent()}
	inclination := 0.0
	node := 0.0
	meridian := 0.0
	if v, ok := m.Number("Inclination"); ok {
		inclination = astro.DegToRad(v)
	}
	if v, ok := m.Number("AscendingNode"); ok {
		node = astro.DegToRad(v)
	}
	if v, ok := m.Number("MeridianAngle"); ok {
		meridian = astro.DegToRad(v)
	}
	u := UniformRotation{Inclination: inclination, AscendingNode: node, MeridianAngle: meridian}
	c.Orientation = u.OrientationAtTime(astro.J2000)
	return c
}

func hasLegacyRotationFields(m *parser.Map) bool {
	for _, name := range []string{
		"RotationPeriod", "RotationOffset", "RotationEpoch",
		"Obliquity", "EquatorAscendingNode",
	} {
		if m.Value(name) != nil {
			return true
		}
	}
	return false
}

// createLegacyRotation handles the pre-timeline inline rotation fields kept
// for backward compatibility with old catalogs.
func createLegacyRotation(m *parser.Map, syncPeriod float64) RotationModel {
	u := &UniformRotation{RotationPeriod: syncPeriod, Epoch: astro.J2000}
	if p, ok := m.Number("RotationPeriod"); ok && p != 0 {
		u.RotationPeriod = p / 24.0
	}
	if off, ok := m.Number("RotationOffset"); ok {
		u.MeridianAngle = astro.DegToRad(off)
	}
	if epoch, ok := m.Date("RotationEpoch"); ok {
		u.Epoch = epoch
	}
	if obl, ok := m.Number("Obliquity"); ok {
		u.Inclination = astro.DegToRad(obl)
	}
	if node, ok := m.Number("EquatorAscendingNode"); ok {
		u.AscendingNode = astro.DegToRad(node)
	}
	if math.IsInf(u.RotationPeriod, 0) || u.RotationPeriod == 0 {
		return &ConstantOrientation{Orientation: u.OrientationAtTime(u.Epoch)}
	}
	return u
}
