package solarsys

import "strings"

// PlanetarySystem is the ordered collection of bodies sharing one immediate
// parent: either a star (the top-level system) or a body (a satellite
// system).
type PlanetarySystem struct {
	star    *Star // non-nil for a top-level system
	primary *Body // non-nil for a satellite system
	bodies  []*Body
}

// NewPlanetarySystem returns the top-level system of a star.
func NewPlanetarySystem(star *Star) *PlanetarySystem {
	return &PlanetarySystem{star: star}
}

// NewSatelliteSystem returns the satellite system of a body.
func NewSatelliteSystem(primary *Body) *PlanetarySystem {
	return &PlanetarySystem{primary: primary}
}

// PrimaryBody returns the body the system's members orbit, or nil for a
// top-level system.
func (s *PlanetarySystem) PrimaryBody() *Body { return s.primary }

// Star returns the star at the root of the system, walking up through
// satellite systems.
func (s *PlanetarySystem) Star() *Star {
	if s.primary != nil {
		return s.primary.System().Star()
	}
	return s.star
}

// Find returns the first body with the given name (case-insensitive), or
// nil.
func (s *PlanetarySystem) Find(name string) *Body {
	for _, b := range s.bodies {
		if strings.EqualFold(b.Name(), name) {
			return b
		}
	}
	return nil
}

// Add appends a body to the system. Duplicate names are permitted; lookup
// returns the first match.
func (s *PlanetarySystem) Add(b *Body) {
	s.bodies = append(s.bodies, b)
}

// Replace substitutes newBody for oldBody in the same collection slot. It
// reports whether oldBody was found.
func (s *PlanetarySystem) Replace(oldBody, newBody *Body) bool {
	for i, b := range s.bodies {
		if b == oldBody {
			s.bodies[i] = newBody
			return true
		}
	}
	return false
}

// Bodies returns the system's members in insertion order. The returned
// slice is the system's own backing store; callers must not mutate it.
func (s *PlanetarySystem) Bodies() []*Body { return s.bodies }

// Count returns the number of bodies in the system.
func (s *PlanetarySystem) Count() int { return len(s.bodies) }

// SolarSystem ties a star to its planetary system and the frame tree rooted
// at the star. It is created lazily, on the first catalog entry that
// references the star.
type SolarSystem struct {
	star      *Star
	planets   *PlanetarySystem
	frameTree *FrameTree
}

// NewSolarSystem returns the solar system of the given star.
func NewSolarSystem(star *Star) *SolarSystem {
	return &SolarSystem{
		star:      star,
		planets:   NewPlanetarySystem(star),
		frameTree: NewFrameTree(Selection{Star: star}),
	}
}

// Star returns the system's star.
func (s *SolarSystem) Star() *Star { return s.star }

// Planets returns the top-level planetary system.
func (s *SolarSystem) Planets() *PlanetarySystem { return s.planets }

// FrameTree returns the frame tree anchored at the star.
func (s *SolarSystem) FrameTree() *FrameTree { return s.frameTree }
