package solarsys

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/resource"
)

// Classification categorizes a body. Catalog entries may set it explicitly
// via the Class field; otherwise it is inferred from the body's size and
// parent.
type Classification int

const (
	Unknown Classification = iota
	Planet
	Moon
	Comet
	Asteroid
	Spacecraft
	Invisible
	SurfaceFeature
	Component
)

var classificationNames = map[string]Classification{
	"planet":         Planet,
	"moon":           Moon,
	"comet":          Comet,
	"asteroid":       Asteroid,
	"spacecraft":     Spacecraft,
	"invisible":      Invisible,
	"surfacefeature": SurfaceFeature,
	"component":      Component,
}

// ParseClassification maps a class name to a Classification,
// case-insensitively. Unrecognized names map to Unknown.
func ParseClassification(name string) Classification {
	return classificationNames[strings.ToLower(name)]
}

// String returns the canonical class name.
func (c Classification) String() string {
	switch c {
	case Planet:
		return "Planet"
	case Moon:
		return "Moon"
	case Comet:
		return "Comet"
	case Asteroid:
		return "Asteroid"
	case Spacecraft:
		return "Spacecraft"
	case Invisible:
		return "Invisible"
	case SurfaceFeature:
		return "SurfaceFeature"
	case Component:
		return "Component"
	default:
		return "Unknown"
	}
}

// Body is the central catalog entity: a planet, moon, spacecraft, or other
// object orbiting within a planetary system.
type Body struct {
	name   string
	system *PlanetarySystem // the system containing this body

	timeline   *Timeline
	satellites *PlanetarySystem
	frameTree  *FrameTree

	semiAxes    mgl64.Vec3 // km
	mass        float64
	albedo      float64
	orientation mgl64.Quat
	class       Classification

	visible        bool
	visibleAsPoint bool
	clickable      bool

	surface     Surface
	altSurfaces map[string]*Surface
	atmosphere  *Atmosphere
	rings       *RingSystem

	mesh       resource.Handle
	meshCenter mgl64.Vec3
	infoURL    string

	orbitColor           mgl64.Vec3
	orbitColorOverridden bool

	locations []*Location
}

// NewBody returns a body belonging to the given system, with default
// visibility and appearance.
func NewBody(system *PlanetarySystem) *Body {
	return &Body{
		system:         system,
		semiAxes:       mgl64.Vec3{1, 1, 1},
		albedo:         0.5,
		orientation:    mgl64.QuatIdent(),
		visible:        true,
		visibleAsPoint: true,
		clickable:      true,
		surface:        DefaultSurface(),
	}
}

// Name returns the body's name.
func (b *Body) Name() string { return b.name }

// SetName sets the body's name.
func (b *Body) SetName(name string) { b.name = name }

// System returns the planetary system containing the body.
func (b *Body) System() *PlanetarySystem { return b.system }

// Satellites returns the body's child system, or nil if the body has none.
func (b *Body) Satellites() *PlanetarySystem { return b.satellites }

// GetOrCreateSatellites returns the body's child system, creating it on
// first use.
func (b *Body) GetOrCreateSatellites() *PlanetarySystem {
	if b.satellites == nil {
		b.satellites = NewSatelliteSystem(b)
	}
	return b.satellites
}

// FrameTree returns the body's frame tree, or nil if none has been created.
func (b *Body) FrameTree() *FrameTree { return b.frameTree }

// GetOrCreateFrameTree returns the body's frame tree, creating it on first
// use.
func (b *Body) GetOrCreateFrameTree() *FrameTree {
	if b.frameTree == nil {
		b.frameTree = NewFrameTree(Selection{Body: b})
	}
	return b.frameTree
}

// Timeline returns the body's timeline, or nil before the first successful
// catalog build.
func (b *Body) Timeline() *Timeline { return b.timeline }

// SetTimeline replaces the body's entire timeline.
func (b *Body) SetTimeline(t *Timeline) { b.timeline = t }

// OrbitFrame returns the orbit frame in effect at jd, or nil without a
// timeline.
func (b *Body) OrbitFrame(jd float64) Frame {
	if b.timeline == nil {
		return nil
	}
	if p := b.timeline.PhaseAtTime(jd); p != nil {
		return p.OrbitFrame()
	}
	return nil
}

// BodyFrame returns the body frame in effect at jd, or nil without a
// timeline.
func (b *Body) BodyFrame(jd float64) Frame {
	if b.timeline == nil {
		return nil
	}
	if p := b.timeline.PhaseAtTime(jd); p != nil {
		return p.BodyFrame()
	}
	return nil
}

// SemiAxes returns the body's ellipsoid semi-axes in km.
func (b *Body) SemiAxes() mgl64.Vec3 { return b.semiAxes }

// SetSemiAxes sets the body's ellipsoid semi-axes.
func (b *Body) SetSemiAxes(axes mgl64.Vec3) { b.semiAxes = axes }

// Radius returns the body's bounding radius: the maximum semi-axis.
func (b *Body) Radius() float64 {
	return math.Max(b.semiAxes[0], math.Max(b.semiAxes[1], b.semiAxes[2]))
}

// Mass returns the body's mass in kg.
func (b *Body) Mass() float64 { return b.mass }

// SetMass sets the body's mass.
func (b *Body) SetMass(m float64) { b.mass = m }

// Albedo returns the body's albedo.
func (b *Body) Albedo() float64 { return b.albedo }

// SetAlbedo sets the body's albedo.
func (b *Body) SetAlbedo(a float64) { b.albedo = a }

// Orientation returns the body's fixed orientation offset.
func (b *Body) Orientation() mgl64.Quat { return b.orientation }

// SetOrientation sets the body's fixed orientation offset.
func (b *Body) SetOrientation(q mgl64.Quat) { b.orientation = q }

// Classification returns the body's class.
func (b *Body) Classification() Classification { return b.class }

// SetClassification sets the body's class.
func (b *Body) SetClassification(c Classification) { b.class = c }

// Visible reports whether the body is rendered at all.
func (b *Body) Visible() bool { return b.visible }

// SetVisible sets the body's visibility.
func (b *Body) SetVisible(v bool) { b.visible = v }

// VisibleAsPoint reports whether the body is rendered as a point when too
// distant to resolve.
func (b *Body) VisibleAsPoint() bool { return b.visibleAsPoint }

// SetVisibleAsPoint sets point-rendering visibility.
func (b *Body) SetVisibleAsPoint(v bool) { b.visibleAsPoint = v }

// Clickable reports whether the body can be picked interactively.
func (b *Body) Clickable() bool { return b.clickable }

// SetClickable sets pickability.
func (b *Body) SetClickable(v bool) { b.clickable = v }

// Surface returns the body's primary surface.
func (b *Body) Surface() Surface { return b.surface }

// SetSurface replaces the body's primary surface.
func (b *Body) SetSurface(s Surface) { b.surface = s }

// AddAlternateSurface attaches a named alternate surface, replacing any
// previous surface of the same name.
func (b *Body) AddAlternateSurface(name string, s *Surface) {
	if b.altSurfaces == nil {
		b.altSurfaces = make(map[string]*Surface)
	}
	b.altSurfaces[name] = s
}

// AlternateSurface returns the named alternate surface, or nil.
func (b *Body) AlternateSurface(name string) *Surface {
	return b.altSurfaces[name]
}

// AlternateSurfaceNames returns the names of all attached alternate
// surfaces.
func (b *Body) AlternateSurfaceNames() []string {
	names := make([]string, 0, len(b.altSurfaces))
	for name := range b.altSurfaces {
		names = append(names, name)
	}
	return names
}

// Atmosphere returns the body's atmosphere, or nil.
func (b *Body) Atmosphere() *Atmosphere { return b.atmosphere }

// SetAtmosphere sets the body's atmosphere.
func (b *Body) SetAtmosphere(a *Atmosphere) { b.atmosphere = a }

// Rings returns the body's ring system, or nil.
func (b *Body) Rings() *RingSystem { return b.rings }

// SetRings sets the body's ring system.
func (b *Body) SetRings(r *RingSystem) { b.rings = r }

// Mesh returns the body's mesh handle; the zero handle means the body is an
// ellipsoid.
func (b *Body) Mesh() resource.Handle { return b.mesh }

// SetMesh sets the body's mesh handle.
func (b *Body) SetMesh(h resource.Handle) { b.mesh = h }

// MeshCenter returns the mesh center offset.
func (b *Body) MeshCenter() mgl64.Vec3 { return b.meshCenter }

// SetMeshCenter sets the mesh center offset.
func (b *Body) SetMeshCenter(c mgl64.Vec3) { b.meshCenter = c }

// InfoURL returns the body's documentation URL, or "".
func (b *Body) InfoURL() string { return b.infoURL }

// SetInfoURL sets the body's documentation URL.
func (b *Body) SetInfoURL(u string) { b.infoURL = u }

// OrbitColor returns the overridden orbit-path color and whether an
// override is set.
func (b *Body) OrbitColor() (mgl64.Vec3, bool) {
	return b.orbitColor, b.orbitColorOverridden
}

// SetOrbitColor overrides the orbit-path color.
func (b *Body) SetOrbitColor(c mgl64.Vec3) {
	b.orbitColor = c
	b.orbitColorOverridden = true
}

// AddLocation attaches a surface location to the body.
func (b *Body) AddLocation(l *Location) {
	b.locations = append(b.locations, l)
}

// Locations returns the body's surface locations.
func (b *Body) Locations() []*Location { return b.locations }

// PlanetocentricToCartesian converts planetocentric longitude and latitude
// (degrees) and an altitude above the surface (km) into a fixed Cartesian
// offset from the body center.
func (b *Body) PlanetocentricToCartesian(lon, lat, alt float64) mgl64.Vec3 {
	phi := -lat*math.Pi/180 + math.Pi/2
	theta := lon*math.Pi/180 - math.Pi
	dir := mgl64.Vec3{
		math.Cos(theta) * math.Sin(phi),
		math.Cos(phi),
		-math.Sin(theta) * math.Sin(phi),
	}
	return dir.Mul(b.Radius() + alt)
}
