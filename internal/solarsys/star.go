// Package solarsys holds the hierarchical model the catalog engine builds:
// a universe of stars, each owning at most one solar system, whose bodies
// carry timelines of orbital phases anchored to a graph of reference frames.
package solarsys

import "github.com/go-gl/mathgl/mgl64"

// Star is a minimal stellar entity: the root of a planetary system and a
// valid center for reference frames. Only the fields the catalog engine
// needs are modeled.
type Star struct {
	Name     string
	Position mgl64.Vec3 // light-years, barycentric
	Radius   float64    // km
}
