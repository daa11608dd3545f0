package solarsys

import (
	"fmt"
	"math"

	"github.com/LBV2012-26/Celestia/internal/ephem"
)

// TimelinePhase is one immutable span of a body's timeline: a validity
// interval together with the frames and functions that define the body's
// position and orientation during that interval. Frames and functions may
// be shared between phases.
type TimelinePhase struct {
	body       *Body
	begin, end float64
	orbitFrame Frame
	orbit      ephem.Orbit
	bodyFrame  Frame
	rotation   ephem.RotationModel
}

// NewTimelinePhase returns a phase spanning [begin, end). end must be
// strictly greater than begin; either bound may be infinite.
func NewTimelinePhase(body *Body, begin, end float64,
	orbitFrame Frame, orbit ephem.Orbit,
	bodyFrame Frame, rotation ephem.RotationModel) (*TimelinePhase, error) {
	if end <= begin {
		return nil, fmt.Errorf("solarsys: phase interval empty: begin %v, end %v", begin, end)
	}
	return &TimelinePhase{
		body:       body,
		begin:      begin,
		end:        end,
		orbitFrame: orbitFrame,
		orbit:      orbit,
		bodyFrame:  bodyFrame,
		rotation:   rotation,
	}, nil
}

// Body returns the body the phase belongs to.
func (p *TimelinePhase) Body() *Body { return p.body }

// StartTime returns the phase's begin time (possibly -Inf).
func (p *TimelinePhase) StartTime() float64 { return p.begin }

// EndTime returns the phase's end time (possibly +Inf).
func (p *TimelinePhase) EndTime() float64 { return p.end }

// OrbitFrame returns the frame the orbit is expressed in.
func (p *TimelinePhase) OrbitFrame() Frame { return p.orbitFrame }

// Orbit returns the orbit function.
func (p *TimelinePhase) Orbit() ephem.Orbit { return p.orbit }

// BodyFrame returns the frame the orientation is expressed in.
func (p *TimelinePhase) BodyFrame() Frame { return p.bodyFrame }

// RotationModel returns the rotation function.
func (p *TimelinePhase) RotationModel() ephem.RotationModel { return p.rotation }

// Includes reports whether jd falls within the phase's interval.
func (p *TimelinePhase) Includes(jd float64) bool {
	return jd >= p.begin && jd < p.end
}

// Timeline is an ordered, contiguous, non-overlapping sequence of phases
// covering [phases[0].begin, phases[last].end); the first begin and last
// end may be unbounded. The contiguity invariant
// phases[i].end == phases[i+1].begin is enforced on append.
type Timeline struct {
	phases []*TimelinePhase
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline { return &Timeline{} }

// AppendPhase adds a phase at the end of the timeline. The phase's begin
// must equal the previous phase's end.
func (t *Timeline) AppendPhase(p *TimelinePhase) error {
	if n := len(t.phases); n > 0 && t.phases[n-1].end != p.begin {
		return fmt.Errorf("solarsys: timeline not contiguous: previous end %v, next begin %v",
			t.phases[n-1].end, p.begin)
	}
	t.phases = append(t.phases, p)
	return nil
}

// PhaseCount returns the number of phases.
func (t *Timeline) PhaseCount() int { return len(t.phases) }

// Phase returns the i-th phase.
func (t *Timeline) Phase(i int) *TimelinePhase { return t.phases[i] }

// PhaseAtTime returns the phase whose interval contains jd; times before
// the first interval clamp to the first phase, times after the last clamp
// to the last.
func (t *Timeline) PhaseAtTime(jd float64) *TimelinePhase {
	if len(t.phases) == 0 {
		return nil
	}
	for _, p := range t.phases {
		if jd < p.end {
			return p
		}
	}
	return t.phases[len(t.phases)-1]
}

// StartTime returns the begin time of the first phase, or -Inf for an empty
// timeline.
func (t *Timeline) StartTime() float64 {
	if len(t.phases) == 0 {
		return math.Inf(-1)
	}
	return t.phases[0].begin
}

// EndTime returns the end time of the last phase, or +Inf for an empty
// timeline.
func (t *Timeline) EndTime() float64 {
	if len(t.phases) == 0 {
		return math.Inf(1)
	}
	return t.phases[len(t.phases)-1].end
}

// Includes reports whether jd falls within the timeline's overall span.
func (t *Timeline) Includes(jd float64) bool {
	return jd >= t.StartTime() && jd < t.EndTime()
}
