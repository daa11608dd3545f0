package solarsys

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/ephem"
)

func newTestStarSystem() (*Universe, *Star, *PlanetarySystem) {
	u := NewUniverse()
	st := &Star{Name: "Sol", Radius: 695700}
	u.AddStar(st)
	return u, st, u.CreateSolarSystem(st).Planets()
}

func addNamedBody(system *PlanetarySystem, name string) *Body {
	b := NewBody(system)
	b.SetName(name)
	system.Add(b)
	return b
}

// phaseFor builds a minimal valid phase for timeline tests.
func phaseFor(t *testing.T, b *Body, begin, end float64) *TimelinePhase {
	t.Helper()
	frame := NewJ2000EclipticFrame(Selection{Body: b})
	orbit := &ephem.EllipticalOrbit{PericenterDistance: 1, OrbitalPeriod: 1}
	rot := &ephem.ConstantOrientation{Orientation: mgl64.QuatIdent()}
	ph, err := NewTimelinePhase(b, begin, end, frame, orbit, frame, rot)
	if err != nil {
		t.Fatalf("NewTimelinePhase: %v", err)
	}
	return ph
}

func TestPlanetarySystemLookup(t *testing.T) {
	t.Parallel()
	_, _, planets := newTestStarSystem()
	earth := addNamedBody(planets, "Earth")
	addNamedBody(planets, "Mars")

	if got := planets.Find("earth"); got != earth {
		t.Error("Find must be case-insensitive")
	}
	if got := planets.Find("Venus"); got != nil {
		t.Errorf("Find(Venus) = %v, want nil", got)
	}

	// Duplicate names resolve to the earliest insertion.
	second := addNamedBody(planets, "Earth")
	if got := planets.Find("Earth"); got != earth {
		t.Error("Find must return the first match")
	}

	replacement := NewBody(planets)
	replacement.SetName("Earth")
	if !planets.Replace(earth, replacement) {
		t.Fatal("Replace returned false")
	}
	if got := planets.Find("Earth"); got != replacement {
		t.Error("replacement must occupy the old slot")
	}
	if planets.Count() != 3 {
		t.Errorf("count = %d, want 3", planets.Count())
	}
	_ = second
}

func TestUniverseFindPath(t *testing.T) {
	t.Parallel()
	u, _, planets := newTestStarSystem()
	earth := addNamedBody(planets, "Earth")
	luna := addNamedBody(earth.GetOrCreateSatellites(), "Luna")

	cases := []struct {
		path string
		want Selection
	}{
		{"Sol", Selection{Star: u.FindStar("Sol")}},
		{"Sol/Earth", Selection{Body: earth}},
		{"sol/earth/luna", Selection{Body: luna}},
		{"Sol/Venus", Selection{}},
		{"Proxima/Earth", Selection{}},
	}
	for _, tc := range cases {
		if got := u.FindPath(tc.path); got != tc.want {
			t.Errorf("FindPath(%q) = %+v, want %+v", tc.path, got, tc.want)
		}
	}
}

func TestTimelineContiguity(t *testing.T) {
	t.Parallel()
	_, _, planets := newTestStarSystem()
	b := addNamedBody(planets, "Probe")

	tl := NewTimeline()
	if err := tl.AppendPhase(phaseFor(t, b, math.Inf(-1), 100)); err != nil {
		t.Fatalf("AppendPhase: %v", err)
	}
	if err := tl.AppendPhase(phaseFor(t, b, 100, 200)); err != nil {
		t.Fatalf("AppendPhase: %v", err)
	}
	if err := tl.AppendPhase(phaseFor(t, b, 150, 300)); err == nil {
		t.Fatal("gap or overlap between phases must be rejected")
	}

	if got := tl.PhaseAtTime(150); got != tl.Phase(1) {
		t.Error("PhaseAtTime(150) should hit the second phase")
	}
	if got := tl.PhaseAtTime(-1e9); got != tl.Phase(0) {
		t.Error("times before the first phase clamp to it")
	}
	if got := tl.PhaseAtTime(1e9); got != tl.Phase(1) {
		t.Error("times after the last phase clamp to it")
	}
	if !tl.Includes(100) || tl.Includes(200) {
		t.Error("Includes must treat phase spans as half-open [begin, end)")
	}
}

func TestTimelinePhaseBounds(t *testing.T) {
	t.Parallel()
	_, _, planets := newTestStarSystem()
	b := addNamedBody(planets, "Probe")

	frame := NewJ2000EclipticFrame(Selection{Body: b})
	orbit := &ephem.EllipticalOrbit{PericenterDistance: 1, OrbitalPeriod: 1}
	rot := &ephem.ConstantOrientation{Orientation: mgl64.QuatIdent()}
	if _, err := NewTimelinePhase(b, 200, 100, frame, orbit, frame, rot); err == nil {
		t.Error("end <= begin must be rejected")
	}
	if _, err := NewTimelinePhase(b, 100, 100, frame, orbit, frame, rot); err == nil {
		t.Error("empty span must be rejected")
	}
}

func TestFrameNestingDepth(t *testing.T) {
	t.Parallel()
	u, st, planets := newTestStarSystem()

	// Terminators report their own depth regardless of center.
	ecliptic := NewJ2000EclipticFrame(Selection{Star: st})
	if got := ecliptic.NestingDepth(PositionFrame, 10); got != 0 {
		t.Errorf("ecliptic depth = %d, want 0", got)
	}

	// Chain bodies each orbiting in a frame fixed on the previous one.
	prev := addNamedBody(planets, "B0")
	defaultFrame := u.CreateSolarSystem(st).FrameTree().DefaultFrame()
	setPhase := func(b *Body, f Frame) {
		orbit := &ephem.EllipticalOrbit{PericenterDistance: 1, OrbitalPeriod: 1}
		rot := &ephem.ConstantOrientation{Orientation: mgl64.QuatIdent()}
		ph, err := NewTimelinePhase(b, math.Inf(-1), math.Inf(1), f, orbit, defaultFrame, rot)
		if err != nil {
			t.Fatalf("NewTimelinePhase: %v", err)
		}
		tl := NewTimeline()
		if err := tl.AppendPhase(ph); err != nil {
			t.Fatalf("AppendPhase: %v", err)
		}
		b.SetTimeline(tl)
	}
	setPhase(prev, defaultFrame)

	var frame Frame
	for i := 1; i <= 5; i++ {
		frame = NewBodyFixedFrame(Selection{Body: prev}, Selection{Body: prev})
		next := addNamedBody(planets, "B")
		setPhase(next, frame)
		prev = next
	}
	if got := frame.NestingDepth(PositionFrame, 10); got != 5 {
		t.Errorf("chain depth = %d, want 5", got)
	}

	// A cycle saturates above the limit instead of recursing forever.
	cyclic := NewBodyFixedFrame(Selection{Body: prev}, Selection{Body: prev})
	setPhase(prev, cyclic)
	if got := cyclic.NestingDepth(PositionFrame, 10); got <= 10 {
		t.Errorf("cycle depth = %d, want > limit", got)
	}
}

func TestSelectionSystem(t *testing.T) {
	t.Parallel()
	u, st, planets := newTestStarSystem()
	earth := addNamedBody(planets, "Earth")
	luna := addNamedBody(earth.GetOrCreateSatellites(), "Luna")

	if got := (Selection{Star: st}).System(); got != st {
		t.Errorf("star selection system = %v", got)
	}
	if got := (Selection{Body: luna}).System(); got != st {
		t.Errorf("nested body system = %v, want its star", got)
	}
	if !(Selection{}).Empty() {
		t.Error("zero selection must be empty")
	}
	_ = u
}

func TestPlanetocentricToCartesian(t *testing.T) {
	t.Parallel()
	_, _, planets := newTestStarSystem()
	b := addNamedBody(planets, "Earth")
	b.SetSemiAxes(mgl64.Vec3{1000, 1000, 1000})

	// The north pole lies on +y at radius + altitude.
	got := b.PlanetocentricToCartesian(0, 90, 10)
	if math.Abs(got[1]-1010) > 1e-9 || math.Abs(got[0]) > 1e-9 || math.Abs(got[2]) > 1e-9 {
		t.Errorf("north pole = %v, want (0, 1010, 0)", got)
	}

	// Any point lands at radius + altitude from the center.
	got = b.PlanetocentricToCartesian(31.4, 8.5, 2)
	if math.Abs(got.Len()-1002) > 1e-9 {
		t.Errorf("|position| = %v, want 1002", got.Len())
	}
}

func TestParseClassification(t *testing.T) {
	t.Parallel()
	if got := ParseClassification("MOON"); got != Moon {
		t.Errorf("MOON = %v", got)
	}
	if got := ParseClassification("surfacefeature"); got != SurfaceFeature {
		t.Errorf("surfacefeature = %v", got)
	}
	if got := ParseClassification("dwarfstar"); got != Unknown {
		t.Errorf("unrecognized = %v, want Unknown", got)
	}
}

func TestBodyDefaults(t *testing.T) {
	t.Parallel()
	_, _, planets := newTestStarSystem()
	b := NewBody(planets)

	if !b.Visible() || !b.VisibleAsPoint() || !b.Clickable() {
		t.Error("new bodies default to visible and clickable")
	}
	if got := b.Radius(); got != 1 {
		t.Errorf("default radius = %v, want 1", got)
	}
	if got := b.Surface().Color; got != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("default surface color = %v, want white", got)
	}
	if got := b.Surface().BumpHeight; got != 2.5 {
		t.Errorf("default bump height = %v, want 2.5", got)
	}
	if _, overridden := b.OrbitColor(); overridden {
		t.Error("orbit color must not start overridden")
	}
}
