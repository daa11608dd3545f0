package solarsys

import "strings"

// Universe is the process-wide registry of stars and their solar systems.
// Solar systems are created lazily, when a catalog entry first references a
// star as a parent.
//
// The universe is mutated in place by catalog loads and must not be read
// concurrently while a load is in progress.
type Universe struct {
	stars   []*Star
	systems map[*Star]*SolarSystem
}

// NewUniverse returns an empty universe.
func NewUniverse() *Universe {
	return &Universe{systems: make(map[*Star]*SolarSystem)}
}

// AddStar registers a star in the universe.
func (u *Universe) AddStar(st *Star) {
	u.stars = append(u.stars, st)
}

// FindStar returns the star with the given name (case-insensitive), or nil.
func (u *Universe) FindStar(name string) *Star {
	for _, st := range u.stars {
		if strings.EqualFold(st.Name, name) {
			return st
		}
	}
	return nil
}

// Stars returns all registered stars.
func (u *Universe) Stars() []*Star { return u.stars }

// SolarSystem returns the solar system of a star, or nil if none has been
// created yet.
func (u *Universe) SolarSystem(st *Star) *SolarSystem {
	return u.systems[st]
}

// CreateSolarSystem returns the solar system of a star, creating it on
// first use.
func (u *Universe) CreateSolarSystem(st *Star) *SolarSystem {
	if sys, ok := u.systems[st]; ok {
		return sys
	}
	sys := NewSolarSystem(st)
	u.systems[st] = sys
	return sys
}

// FindPath resolves a slash-separated entity path such as "Sol/Earth/Moon":
// the first component names a star, each further component a body in the
// previous component's child system. It returns an empty selection if any
// component fails to resolve.
func (u *Universe) FindPath(path string) Selection {
	parts := strings.Split(path, "/")
	st := u.FindStar(parts[0])
	if st == nil {
		return Selection{}
	}
	if len(parts) == 1 {
		return Selection{Star: st}
	}

	sys := u.SolarSystem(st)
	if sys == nil {
		return Selection{}
	}
	var body *Body
	children := sys.Planets()
	for _, name := range parts[1:] {
		if children == nil {
			return Selection{}
		}
		body = children.Find(name)
		if body == nil {
			return Selection{}
		}
		children = body.Satellites()
	}
	return Selection{Body: body}
}
