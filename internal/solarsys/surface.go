package solarsys

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/resource"
)

// AppearanceFlags is a bit set recording which appearance features a surface
// definition supplied. Renderers branch on it instead of re-deriving the
// information from texture handles.
type AppearanceFlags uint32

const (
	BlendTexture AppearanceFlags = 1 << iota
	Emissive
	ApplyBaseTexture
	ApplyBumpMap
	ApplyNightMap
	SeparateSpecularMap
	ApplyOverlay
	SpecularReflection
)

// Surface describes the appearance of a body: colors, lighting parameters,
// and texture references. The zero value is not useful; use DefaultSurface.
type Surface struct {
	Color mgl64.Vec3

	// HazeColor carries a legacy alpha-encoded haze density in its fourth
	// component.
	HazeColor mgl64.Vec4

	SpecularColor mgl64.Vec3
	SpecularPower float64

	// LunarLambert selects the diffuse model: 0 is pure Lambertian, 1 is
	// the Lommel-Seeliger photometric function used for dusty surfaces.
	LunarLambert float64

	BaseTexture     resource.Handle
	BumpTexture     resource.Handle
	NightTexture    resource.Handle
	SpecularTexture resource.Handle
	OverlayTexture  resource.Handle
	BumpHeight      float64

	Appearance AppearanceFlags
}

// DefaultSurface returns a plain white surface with no haze and no textures.
func DefaultSurface() Surface {
	return Surface{
		Color:      mgl64.Vec3{1, 1, 1},
		BumpHeight: 2.5,
	}
}

// Atmosphere describes a body's atmosphere: shell height, the colors used
// at different viewing geometries, scattering coefficients, and an optional
// cloud layer.
type Atmosphere struct {
	Height float64 // km above the surface

	LowerColor  mgl64.Vec3
	UpperColor  mgl64.Vec3
	SkyColor    mgl64.Vec3
	SunsetColor mgl64.Vec3

	MieCoeff          float64
	MieScaleHeight    float64
	MiePhaseAsymmetry float64
	RayleighCoeff     mgl64.Vec3
	AbsorptionCoeff   mgl64.Vec3

	CloudHeight    float64 // km above the surface
	CloudSpeed     float64 // radians per day
	CloudMap       resource.Handle
	CloudNormalMap resource.Handle
}

// RingSystem describes a body's rings.
type RingSystem struct {
	InnerRadius float64 // km from body center
	OuterRadius float64
	Color       mgl64.Vec3
	Texture     resource.Handle
}
