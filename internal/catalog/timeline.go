package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/astro"
	"github.com/LBV2012-26/Celestia/internal/ephem"
	"github.com/LBV2012-26/Celestia/internal/parser"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

// timelineDraft is the staged result of timeline construction. The new
// timeline is committed to the body only after every validation step has
// passed; a nil timeline means "keep the body's existing timeline". Frames
// created for this entry (as opposed to reused defaults) are recorded for
// the nesting-depth check — frames carried over from a previous successful
// build were already validated then.
type timelineDraft struct {
	timeline       *solarsys.Timeline
	newOrbitFrames []solarsys.Frame
	newBodyFrames  []solarsys.Frame
}

// orbitBarycenter returns the entity a body's legacy-form orbit is defined
// relative to: the system's primary body if one exists, else its star.
func orbitBarycenter(system *solarsys.PlanetarySystem) solarsys.Selection {
	if primary := system.PrimaryBody(); primary != nil {
		return solarsys.Selection{Body: primary}
	}
	return solarsys.Selection{Star: system.Star()}
}

// createTimeline builds a timeline draft for a body from its attribute map,
// handling both the explicit multi-phase Timeline array and the legacy
// single-phase inline form.
func (ld *Loader) createTimeline(body *solarsys.Body, system *solarsys.PlanetarySystem,
	data *parser.Map, disp Disposition) (*timelineDraft, error) {

	barycenter := orbitBarycenter(system)
	if barycenter.System() != system.Star() {
		return nil, ErrBarycenterMismatch
	}

	var parentFrameTree *solarsys.FrameTree
	switch {
	case barycenter.Body != nil:
		parentFrameTree = barycenter.Body.GetOrCreateFrameTree()
	case barycenter.Star != nil:
		parentFrameTree = ld.universe.CreateSolarSystem(barycenter.Star).FrameTree()
	default:
		return nil, ErrBarycenterMismatch
	}
	defaultFrame := parentFrameTree.DefaultFrame()

	if v := data.Value("Timeline"); v != nil {
		arr := v.Array()
		if arr == nil {
			return nil, fmt.Errorf("catalog: Timeline must be an array")
		}
		return ld.createTimelineFromArray(body, arr, defaultFrame)
	}

	return ld.createInlineTimeline(body, data, defaultFrame, disp)
}

// createTimelineFromArray builds a draft from an explicit phase array. The
// produced sequence replaces the body's timeline unconditionally.
func (ld *Loader) createTimelineFromArray(body *solarsys.Body, arr []*parser.Value,
	defaultFrame solarsys.Frame) (*timelineDraft, error) {

	draft := &timelineDraft{timeline: solarsys.NewTimeline()}
	previousEnd := math.Inf(-1)

	for i, elem := range arr {
		phaseData := elem.Map()
		if phaseData == nil {
			return nil, fmt.Errorf("catalog: timeline phase %d is not a property group", i+1)
		}
		phase, err := ld.createTimelinePhase(body, phaseData, defaultFrame, draft,
			i == 0, i == len(arr)-1, previousEnd)
		if err != nil {
			return nil, fmt.Errorf("catalog: timeline phase %d: %w", i+1, err)
		}
		previousEnd = phase.EndTime()
		if err := draft.timeline.AppendPhase(phase); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

// createTimelinePhase builds one phase of an explicit timeline. The begin
// time is forced equal to the previous phase's end; only the first phase
// may supply its own Beginning, and every phase except the last must supply
// an Ending.
func (ld *Loader) createTimelinePhase(body *solarsys.Body, phaseData *parser.Map,
	defaultFrame solarsys.Frame, draft *timelineDraft,
	isFirst, isLast bool, previousEnd float64) (*solarsys.TimelinePhase, error) {

	begin := previousEnd
	if b, ok := phaseData.Date("Beginning"); ok {
		if !isFirst {
			return nil, ErrMisplacedBeginning
		}
		begin = b
	}

	end := math.Inf(1)
	if e, ok := phaseData.Date("Ending"); ok {
		end = e
	} else if !isLast {
		return nil, ErrMissingEnding
	}

	orbitFrame := defaultFrame
	if v := phaseData.Value("OrbitFrame"); v != nil {
		f, err := CreateReferenceFrame(ld.universe, v)
		if err != nil {
			return nil, err
		}
		orbitFrame = f
		draft.newOrbitFrames = append(draft.newOrbitFrames, f)
	}

	bodyFrame := defaultFrame
	if v := phaseData.Value("BodyFrame"); v != nil {
		f, err := CreateReferenceFrame(ld.universe, v)
		if err != nil {
			return nil, err
		}
		bodyFrame = f
		draft.newBodyFrames = append(draft.newBodyFrames, f)
	}

	// Orbital element units are AU and years when the orbit frame is
	// centered on a star, kilometers and days otherwise.
	usePlanetUnits := orbitFrame.Center().Star != nil

	orbit, err := ephem.CreateOrbit(phaseData, usePlanetUnits)
	if err != nil {
		if errors.Is(err, ephem.ErrNoOrbit) {
			return nil, fmt.Errorf("missing orbit: %w", err)
		}
		return nil, err
	}

	rotation, err := ephem.CreateRotationModel(phaseData, ephem.SyncPeriod(orbit))
	if err != nil || rotation == nil {
		// No parseable rotation for this phase: fall back to a fixed
		// identity orientation.
		rotation = &ephem.ConstantOrientation{Orientation: mgl64.QuatIdent()}
	}

	return solarsys.NewTimelinePhase(body, begin, end, orbitFrame, orbit, bodyFrame, rotation)
}

// createInlineTimeline handles the legacy single-phase form, where the
// orbit, rotation, frames, and bounds sit directly in the object definition.
// Under Modify against a single-phase timeline each newly supplied field
// overrides only itself; any override rebuilds the timeline as a single
// phase spanning the resolved bounds.
func (ld *Loader) createInlineTimeline(body *solarsys.Body, data *parser.Map,
	defaultFrame solarsys.Frame, disp Disposition) (*timelineDraft, error) {

	var (
		orbitFrame solarsys.Frame
		bodyFrame  solarsys.Frame
		orbit      ephem.Orbit
		rotation   ephem.RotationModel
		begin      = math.Inf(-1)
		end        = math.Inf(1)
		override   bool
	)
	draft := &timelineDraft{}

	// Under Modify, a single-phase timeline seeds the starting defaults so
	// unmentioned fields carry over. A multi-phase timeline is replaced
	// wholesale by any inline override, for compatibility with catalogs
	// written before phase arrays existed.
	if disp == DispositionModify && body.Timeline() != nil && body.Timeline().PhaseCount() == 1 {
		phase := body.Timeline().Phase(0)
		orbitFrame = phase.OrbitFrame()
		bodyFrame = phase.BodyFrame()
		orbit = phase.Orbit()
		rotation = phase.RotationModel()
		begin = phase.StartTime()
		end = phase.EndTime()
	}

	if v := data.Value("OrbitFrame"); v != nil {
		f, err := CreateReferenceFrame(ld.universe, v)
		if err != nil {
			return nil, err
		}
		orbitFrame = f
		draft.newOrbitFrames = append(draft.newOrbitFrames, f)
		override = true
	}
	if v := data.Value("BodyFrame"); v != nil {
		f, err := CreateReferenceFrame(ld.universe, v)
		if err != nil {
			return nil, err
		}
		bodyFrame = f
		draft.newBodyFrames = append(draft.newBodyFrames, f)
		override = true
	}
	if orbitFrame == nil {
		orbitFrame = defaultFrame
	}
	if bodyFrame == nil {
		bodyFrame = defaultFrame
	}

	usePlanetUnits := orbitFrame.Center().Star != nil

	newOrbit, err := ephem.CreateOrbit(data, usePlanetUnits)
	if err != nil && !errors.Is(err, ephem.ErrNoOrbit) {
		return nil, err
	}
	if newOrbit != nil {
		orbit = newOrbit
		override = true
	}
	if orbit == nil {
		return nil, fmt.Errorf("catalog: no valid orbit specified: %w", ephem.ErrNoOrbit)
	}

	newRotation, err := ephem.CreateRotationModel(data, ephem.SyncPeriod(orbit))
	if err != nil {
		return nil, err
	}
	if newRotation != nil {
		rotation = newRotation
		override = true
	}
	if rotation == nil {
		// Synchronous rotation is the right default for nearly all natural
		// satellites.
		rotation = ephem.NewSynchronousRotation(orbit, astro.J2000)
	}

	if b, ok := data.Date("Beginning"); ok {
		begin = b
		override = true
	}
	if e, ok := data.Date("Ending"); ok {
		end = e
		override = true
	}

	if !override {
		if disp != DispositionModify {
			return nil, ErrNoTimelineData
		}
		// Nothing new supplied: keep the existing timeline untouched.
		return draft, nil
	}

	phase, err := solarsys.NewTimelinePhase(body, begin, end, orbitFrame, orbit, bodyFrame, rotation)
	if err != nil {
		return nil, err
	}
	draft.timeline = solarsys.NewTimeline()
	if err := draft.timeline.AppendPhase(phase); err != nil {
		return nil, err
	}
	return draft, nil
}

// commitTimeline installs a draft timeline on the body and validates the
// nesting depth of every newly supplied frame. On a depth violation the
// previous timeline is restored, leaving the body exactly as it was.
func (ld *Loader) commitTimeline(body *solarsys.Body, draft *timelineDraft) error {
	if draft.timeline == nil {
		return nil
	}
	old := body.Timeline()
	body.SetTimeline(draft.timeline)

	limit := ld.opts.MaxFrameDepth
	for _, f := range draft.newOrbitFrames {
		if f.NestingDepth(solarsys.PositionFrame, limit) > limit {
			body.SetTimeline(old)
			return fmt.Errorf("orbit frame: %w", ErrFrameTooDeep)
		}
	}
	for _, f := range draft.newBodyFrames {
		if f.NestingDepth(solarsys.OrientationFrame, limit) > limit {
			body.SetTimeline(old)
			return fmt.Errorf("body frame: %w", ErrFrameTooDeep)
		}
	}
	return nil
}
