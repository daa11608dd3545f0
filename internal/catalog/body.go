package catalog

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/astro"
	"github.com/LBV2012-26/Celestia/internal/parser"
	"github.com/LBV2012-26/Celestia/internal/resource"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

// buildBody constructs or mutates a body from a catalog entry's attribute
// map. Under Modify it mutates existing in place; otherwise it returns a
// fresh body that the caller inserts into the parent system.
//
// Construction is staged: the timeline draft and all structural validation
// happen before the first mutation, so a rejected entry leaves an existing
// body exactly as it was.
func (ld *Loader) buildBody(disp Disposition, existing *solarsys.Body,
	data *parser.Map, system *solarsys.PlanetarySystem) (*solarsys.Body, error) {

	if err := validateNestedGroups(data); err != nil {
		return nil, err
	}

	body := existing
	if disp != DispositionModify || body == nil {
		body = solarsys.NewBody(system)
		body.SetAlbedo(ld.opts.DefaultAlbedo)
	}

	draft, err := ld.createTimeline(body, system, data, disp)
	if err != nil {
		return nil, err
	}
	if err := ld.commitTimeline(body, draft); err != nil {
		return nil, err
	}

	ld.applyShape(body, data)
	applyClassification(body, data, system)

	if u, ok := data.String("InfoURL"); ok {
		if !strings.Contains(u, ":") && ld.opts.BaseDir != "" {
			// Relative URL: the base directory is the catalog's, not the
			// installation root.
			u = ld.opts.BaseDir + "/" + u
		}
		body.SetInfoURL(u)
	}

	if albedo, ok := data.Number("Albedo"); ok {
		body.SetAlbedo(albedo)
	}
	if mass, ok := data.Number("Mass"); ok {
		body.SetMass(mass)
	}
	if q, ok := data.Rotation("Orientation"); ok {
		body.SetOrientation(q)
	}

	surf := body.Surface()
	ld.fillSurface(data, &surf)
	body.SetSurface(surf)

	if mesh, ok := data.String("Mesh"); ok {
		center := mgl64.Vec3{}
		if c, ok := data.Vector("MeshCenter"); ok {
			center = c
		}
		body.SetMesh(ld.meshes.Handle(resource.Info{Name: mesh, Path: ld.opts.BaseDir, Center: center}))
		body.SetMeshCenter(center)
	}

	if atmosData, ok := data.Map("Atmosphere"); ok {
		applyAtmosphere(ld, body, atmosData)
	}
	if ringsData, ok := data.Map("Rings"); ok {
		applyRings(ld, body, ringsData)
	}

	if clickable, ok := data.Boolean("Clickable"); ok {
		body.SetClickable(clickable)
	}
	if visible, ok := data.Boolean("Visible"); ok {
		body.SetVisible(visible)
	}
	if c, ok := data.Color("OrbitColor"); ok {
		body.SetOrbitColor(c)
	}

	return body, nil
}

// buildReferencePoint is the restricted variant of buildBody for massless
// coordinate anchors: always invisible, non-clickable, unit shape, and
// without surface, atmosphere, or rings.
func (ld *Loader) buildReferencePoint(disp Disposition, existing *solarsys.Body,
	data *parser.Map, system *solarsys.PlanetarySystem) (*solarsys.Body, error) {

	body := existing
	if disp != DispositionModify || body == nil {
		body = solarsys.NewBody(system)
	}

	draft, err := ld.createTimeline(body, system, data, disp)
	if err != nil {
		return nil, err
	}
	if err := ld.commitTimeline(body, draft); err != nil {
		return nil, err
	}

	body.SetSemiAxes(mgl64.Vec3{1, 1, 1})
	body.SetClassification(solarsys.Invisible)
	body.SetVisible(false)
	body.SetVisibleAsPoint(false)
	body.SetClickable(false)

	return body, nil
}

// validateNestedGroups rejects entries whose Atmosphere or Rings fields are
// present but not property groups, before any mutation happens.
func validateNestedGroups(data *parser.Map) error {
	if v := data.Value("Atmosphere"); v != nil && v.Map() == nil {
		return fmt.Errorf("catalog: Atmosphere must be a property group")
	}
	if v := data.Value("Rings"); v != nil && v.Map() == nil {
		return fmt.Errorf("catalog: Rings must be a property group")
	}
	return nil
}

// applyShape resolves the body's ellipsoid from Radius, SemiAxes, and
// Oblateness. Semi-axes override oblateness; semi-axes combined with a
// radius are scaled by it. These precedence rules preserve compatibility
// with old catalogs.
func (ld *Loader) applyShape(body *solarsys.Body, data *parser.Map) {
	radius := body.Radius()
	radiusSpecified := false
	if r, ok := data.Number("Radius"); ok {
		radius = r
		body.SetSemiAxes(mgl64.Vec3{r, r, r})
		radiusSpecified = true
	}

	if axes, ok := data.Vector("SemiAxes"); ok {
		if radiusSpecified {
			axes = axes.Mul(radius)
		}
		body.SetSemiAxes(axes)
	} else if oblateness, ok := data.Number("Oblateness"); ok {
		body.SetSemiAxes(mgl64.Vec3{radius, radius * (1 - oblateness), radius})
	}
}

// applyClassification resolves the body's class, inferring one from size
// and parentage when no explicit Class is given.
func applyClassification(body *solarsys.Body, data *parser.Map, system *solarsys.PlanetarySystem) {
	class := body.Classification()
	if name, ok := data.String("Class"); ok {
		if c := solarsys.ParseClassification(name); c != solarsys.Unknown {
			class = c
		}
	}

	if class == solarsys.Unknown {
		if system.PrimaryBody() != nil {
			if body.Radius() > 0.1 {
				class = solarsys.Moon
			} else {
				class = solarsys.Spacecraft
			}
		} else {
			if body.Radius() < 1000 {
				class = solarsys.Asteroid
			} else {
				class = solarsys.Planet
			}
		}
	}
	body.SetClassification(class)

	if class == solarsys.Invisible {
		body.SetVisible(false)
	}
	// Surface features and components are not rendered as points at a
	// distance.
	if class == solarsys.Invisible || class == solarsys.SurfaceFeature || class == solarsys.Component {
		body.SetVisibleAsPoint(false)
	}
}

// fillSurface applies the surface fields present in data onto surf, leaving
// absent fields untouched, and derives the appearance flag bit set.
func (ld *Loader) fillSurface(data *parser.Map, surf *solarsys.Surface) {
	if c, ok := data.Color("Color"); ok {
		surf.Color = c
	}

	// Haze carries its density in the color's alpha component.
	haze := surf.HazeColor
	density := haze[3]
	gotHazeColor := false
	if c, ok := data.ColorAlpha("HazeColor"); ok {
		haze = c
		gotHazeColor = true
	}
	gotHazeDensity := false
	if d, ok := data.Number("HazeDensity"); ok {
		density = d
		gotHazeDensity = true
	}
	if gotHazeColor || gotHazeDensity {
		surf.HazeColor = mgl64.Vec4{haze[0], haze[1], haze[2], density}
	}

	if c, ok := data.Color("SpecularColor"); ok {
		surf.SpecularColor = c
	}
	if p, ok := data.Number("SpecularPower"); ok {
		surf.SpecularPower = p
	}
	if l, ok := data.Number("LunarLambert"); ok {
		surf.LunarLambert = l
	}

	baseTexture, applyBaseTexture := data.String("Texture")
	bumpTexture, applyBumpMap := data.String("BumpMap")
	nightTexture, applyNightMap := data.String("NightTexture")
	specularTexture, separateSpecular := data.String("SpecularTexture")
	normalTexture, applyNormalMap := data.String("NormalMap")
	overlayTexture, applyOverlay := data.String("OverlayTexture")

	baseFlags := resource.WrapTexture | resource.AllowSplitting
	if compress, ok := data.Boolean("CompressTexture"); ok && compress {
		baseFlags |= resource.CompressTexture
	}
	bumpFlags := resource.WrapTexture | resource.AllowSplitting

	if h, ok := data.Number("BumpHeight"); ok {
		surf.BumpHeight = h
	}

	if blend, ok := data.Boolean("BlendTexture"); ok && blend {
		surf.Appearance |= solarsys.BlendTexture
	}
	if emissive, ok := data.Boolean("Emissive"); ok && emissive {
		surf.Appearance |= solarsys.Emissive
	}
	if applyBaseTexture {
		surf.Appearance |= solarsys.ApplyBaseTexture
	}
	if applyBumpMap || applyNormalMap {
		surf.Appearance |= solarsys.ApplyBumpMap
	}
	if applyNightMap {
		surf.Appearance |= solarsys.ApplyNightMap
	}
	if separateSpecular {
		surf.Appearance |= solarsys.SeparateSpecularMap
	}
	if applyOverlay {
		surf.Appearance |= solarsys.ApplyOverlay
	}
	if surf.SpecularColor != (mgl64.Vec3{}) {
		surf.Appearance |= solarsys.SpecularReflection
	}

	path := ld.opts.BaseDir
	if applyBaseTexture {
		surf.BaseTexture = ld.textures.Handle(resource.Info{Name: baseTexture, Path: path, Flags: baseFlags})
	}
	if applyNightMap {
		surf.NightTexture = ld.textures.Handle(resource.Info{Name: nightTexture, Path: path, Flags: bumpFlags})
	}
	if separateSpecular {
		surf.SpecularTexture = ld.textures.Handle(resource.Info{Name: specularTexture, Path: path, Flags: bumpFlags})
	}
	// When both are present, NormalMap overrides BumpMap.
	if applyNormalMap {
		surf.BumpTexture = ld.textures.Handle(resource.Info{Name: normalTexture, Path: path, Flags: bumpFlags})
	} else if applyBumpMap {
		surf.BumpTexture = ld.textures.Handle(resource.Info{
			Name: bumpTexture, Path: path, Flags: bumpFlags, BumpHeight: surf.BumpHeight,
		})
	}
	if applyOverlay {
		surf.OverlayTexture = ld.textures.Handle(resource.Info{Name: overlayTexture, Path: path, Flags: baseFlags})
	}
}

// applyAtmosphere applies the fields present in atmosData onto the body's
// atmosphere, creating one if the body has none. Absent fields never clear
// previously set values.
func applyAtmosphere(ld *Loader, body *solarsys.Body, atmosData *parser.Map) {
	atm := body.Atmosphere()
	if atm == nil {
		atm = &solarsys.Atmosphere{}
	}

	if h, ok := atmosData.Number("Height"); ok {
		atm.Height = h
	}
	if c, ok := atmosData.Color("Lower"); ok {
		atm.LowerColor = c
	}
	if c, ok := atmosData.Color("Upper"); ok {
		atm.UpperColor = c
	}
	if c, ok := atmosData.Color("Sky"); ok {
		atm.SkyColor = c
	}
	if c, ok := atmosData.Color("Sunset"); ok {
		atm.SunsetColor = c
	}

	if v, ok := atmosData.Number("Mie"); ok {
		atm.MieCoeff = v
	}
	if v, ok := atmosData.Number("MieScaleHeight"); ok {
		atm.MieScaleHeight = v
	}
	if v, ok := atmosData.Number("MieAsymmetry"); ok {
		atm.MiePhaseAsymmetry = v
	}
	if v, ok := atmosData.Vector("Rayleigh"); ok {
		atm.RayleighCoeff = v
	}
	if v, ok := atmosData.Vector("Absorption"); ok {
		atm.AbsorptionCoeff = v
	}

	if h, ok := atmosData.Number("CloudHeight"); ok {
		atm.CloudHeight = h
	}
	if s, ok := atmosData.Number("CloudSpeed"); ok {
		atm.CloudSpeed = astro.DegToRad(s)
	}
	if tex, ok := atmosData.String("CloudMap"); ok {
		atm.CloudMap = ld.textures.Handle(resource.Info{
			Name: tex, Path: ld.opts.BaseDir, Flags: resource.WrapTexture,
		})
	}
	if tex, ok := atmosData.String("CloudNormalMap"); ok {
		atm.CloudNormalMap = ld.textures.Handle(resource.Info{
			Name: tex, Path: ld.opts.BaseDir, Flags: resource.WrapTexture,
		})
	}

	body.SetAtmosphere(atm)
}

// applyRings applies the fields present in ringsData onto the body's ring
// system, creating one if the body has none.
func applyRings(ld *Loader, body *solarsys.Body, ringsData *parser.Map) {
	rings := body.Rings()
	if rings == nil {
		rings = &solarsys.RingSystem{Color: mgl64.Vec3{1, 1, 1}}
	}

	if inner, ok := ringsData.Number("Inner"); ok {
		rings.InnerRadius = inner
	}
	if outer, ok := ringsData.Number("Outer"); ok {
		rings.OuterRadius = outer
	}
	if c, ok := ringsData.Color("Color"); ok {
		rings.Color = c
	}
	if tex, ok := ringsData.String("Texture"); ok {
		rings.Texture = ld.textures.Handle(resource.Info{
			Name: tex, Path: ld.opts.BaseDir, Flags: resource.WrapTexture,
		})
	}

	body.SetRings(rings)
}

// buildLocation constructs a surface location anchored to a body,
// converting the planetocentric LongLat coordinates to a fixed Cartesian
// offset.
func buildLocation(data *parser.Map, body *solarsys.Body) *solarsys.Location {
	longlat := mgl64.Vec3{}
	if v, ok := data.Vector("LongLat"); ok {
		longlat = v
	}
	position := body.PlanetocentricToCartesian(longlat[0], longlat[1], longlat[2])

	size := 1.0
	if s, ok := data.Number("Size"); ok {
		size = s
	}
	importance := -1.0
	if i, ok := data.Number("Importance"); ok {
		importance = i
	}
	feature := solarsys.FeatureOther
	if t, ok := data.String("Type"); ok {
		feature = solarsys.ParseFeatureType(t)
	}

	return solarsys.NewLocation(position, size, importance, feature)
}
