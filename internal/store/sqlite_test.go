package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/ephem"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(context.Background(), filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

// testUniverse builds Sol with Earth (one bounded timeline phase, one
// location) and its satellite Luna.
func testUniverse(t *testing.T) *solarsys.Universe {
	t.Helper()
	u := solarsys.NewUniverse()
	sol := &solarsys.Star{Name: "Sol", Radius: 695700}
	u.AddStar(sol)
	planets := u.CreateSolarSystem(sol).Planets()

	earth := solarsys.NewBody(planets)
	earth.SetName("Earth")
	earth.SetSemiAxes(mgl64.Vec3{6378, 6378, 6378})
	earth.SetAlbedo(0.3)
	earth.SetClassification(solarsys.Planet)
	planets.Add(earth)

	frame := solarsys.NewJ2000EclipticFrame(solarsys.Selection{Star: sol})
	orbit := &ephem.EllipticalOrbit{PericenterDistance: 1, OrbitalPeriod: 365.25}
	rot := &ephem.ConstantOrientation{Orientation: mgl64.QuatIdent()}
	ph, err := solarsys.NewTimelinePhase(earth, 2451545, 2461545, frame, orbit, frame, rot)
	if err != nil {
		t.Fatalf("NewTimelinePhase: %v", err)
	}
	tl := solarsys.NewTimeline()
	if err := tl.AppendPhase(ph); err != nil {
		t.Fatalf("AppendPhase: %v", err)
	}
	earth.SetTimeline(tl)

	loc := solarsys.NewLocation(mgl64.Vec3{0, 6378, 0}, 50, 300, solarsys.FeatureCity)
	loc.SetName("Honolulu")
	earth.AddLocation(loc)

	luna := solarsys.NewBody(earth.GetOrCreateSatellites())
	luna.SetName("Luna")
	luna.SetSemiAxes(mgl64.Vec3{1738, 1738, 1738})
	luna.SetClassification(solarsys.Moon)
	earth.GetOrCreateSatellites().Add(luna)

	return u
}

func TestWriteUniverse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ix := openTestIndex(t)
	u := testUniverse(t)

	n, err := ix.WriteUniverse(ctx, u)
	if err != nil {
		t.Fatalf("WriteUniverse: %v", err)
	}
	if n != 2 {
		t.Fatalf("wrote %d bodies, want 2", n)
	}

	rows, err := ix.Bodies(ctx, "")
	if err != nil {
		t.Fatalf("Bodies: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	earth := rows[0]
	if earth.Path != "Sol/Earth" || earth.Parent != "Sol" {
		t.Errorf("earth path=%q parent=%q", earth.Path, earth.Parent)
	}
	if earth.Class != "Planet" {
		t.Errorf("earth class=%q, want Planet", earth.Class)
	}
	if earth.Radius != 6378 || earth.Albedo != 0.3 {
		t.Errorf("earth radius=%v albedo=%v", earth.Radius, earth.Albedo)
	}
	if earth.BeginTime == nil || *earth.BeginTime != 2451545 {
		t.Errorf("earth begin=%v, want 2451545", earth.BeginTime)
	}
	if earth.EndTime == nil || *earth.EndTime != 2461545 {
		t.Errorf("earth end=%v, want 2461545", earth.EndTime)
	}
	if earth.Phases != 1 {
		t.Errorf("earth phases=%d, want 1", earth.Phases)
	}

	luna := rows[1]
	if luna.Path != "Sol/Earth/Luna" || luna.Parent != "Sol/Earth" {
		t.Errorf("luna path=%q parent=%q", luna.Path, luna.Parent)
	}
	// Luna has no timeline, so both bounds are open.
	if luna.BeginTime != nil || luna.EndTime != nil {
		t.Errorf("luna bounds=%v..%v, want open", luna.BeginTime, luna.EndTime)
	}
}

func TestWriteUniverseReplacesContents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ix := openTestIndex(t)
	u := testUniverse(t)

	if _, err := ix.WriteUniverse(ctx, u); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := ix.WriteUniverse(ctx, u); err != nil {
		t.Fatalf("second write: %v", err)
	}

	rows, err := ix.Bodies(ctx, "")
	if err != nil {
		t.Fatalf("Bodies: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows after rewrite, want 2", len(rows))
	}
	locs, err := ix.Locations(ctx, "Sol/Earth")
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locs) != 1 {
		t.Errorf("got %d locations after rewrite, want 1", len(locs))
	}
}

func TestBodiesClassFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ix := openTestIndex(t)

	if _, err := ix.WriteUniverse(ctx, testUniverse(t)); err != nil {
		t.Fatalf("WriteUniverse: %v", err)
	}

	moons, err := ix.Bodies(ctx, "moon")
	if err != nil {
		t.Fatalf("Bodies(moon): %v", err)
	}
	if len(moons) != 1 || moons[0].Name != "Luna" {
		t.Errorf("moons=%+v, want just Luna", moons)
	}

	none, err := ix.Bodies(ctx, "spacecraft")
	if err != nil {
		t.Fatalf("Bodies(spacecraft): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("spacecraft=%+v, want none", none)
	}
}

func TestLocations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ix := openTestIndex(t)

	if _, err := ix.WriteUniverse(ctx, testUniverse(t)); err != nil {
		t.Fatalf("WriteUniverse: %v", err)
	}

	locs, err := ix.Locations(ctx, "Sol/Earth")
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("got %d locations, want 1", len(locs))
	}
	loc := locs[0]
	if loc.Name != "Honolulu" || loc.Feature != "City" {
		t.Errorf("location=%+v, want Honolulu/City", loc)
	}
	if loc.Size != 50 || loc.Importance != 300 {
		t.Errorf("size=%v importance=%v, want 50/300", loc.Size, loc.Importance)
	}

	empty, err := ix.Locations(ctx, "Sol/Earth/Luna")
	if err != nil {
		t.Fatalf("Locations(Luna): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("luna locations=%+v, want none", empty)
	}
}

func TestOpenBounds(t *testing.T) {
	t.Parallel()
	if !math.IsInf(solarsys.NewTimeline().StartTime(), -1) {
		t.Error("empty timeline must start at -inf")
	}
}
