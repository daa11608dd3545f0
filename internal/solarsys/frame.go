package solarsys

// FrameKind distinguishes the two uses of a reference frame: determining a
// body's position (orbit frame) or its orientation (body frame).
type FrameKind int

const (
	PositionFrame FrameKind = iota
	OrientationFrame
)

// Frame is a node in the directed reference-frame graph. Each frame names a
// center entity; non-inertial frames additionally depend on the timelines of
// the entities they are defined by, which is where frame-to-frame
// indirection (and potential cycles) come from.
//
// Frames are freely shared: multiple timeline phases, possibly on different
// bodies, may hold the same Frame instance. Identity is pointer equality.
type Frame interface {
	// Center returns the entity the frame is centered on.
	Center() Selection

	// NestingDepth walks the chain of frame indirections reachable from the
	// frame, taking at most limit steps. An acyclic chain of depth d <= limit
	// yields exactly d; a cycle (or a chain deeper than limit) yields a value
	// greater than limit.
	NestingDepth(kind FrameKind, limit int) int

	nesting(depth, limit int, kind FrameKind) int
}

// selectionDepth continues a nesting-depth walk through an entity: a star
// terminates the chain, a body continues it through the frames of its
// timeline phases.
func selectionDepth(sel Selection, depth, limit int, kind FrameKind) int {
	if depth > limit {
		return depth
	}
	b := sel.Body
	if b == nil || b.timeline == nil {
		return depth
	}
	deepest := depth
	for _, ph := range b.timeline.phases {
		var f Frame
		if kind == PositionFrame {
			f = ph.orbitFrame
		} else {
			f = ph.bodyFrame
		}
		if f == nil {
			continue
		}
		if d := f.nesting(depth+1, limit, kind); d > deepest {
			deepest = d
		}
		if deepest > limit {
			return deepest
		}
	}
	return deepest
}

// J2000EclipticFrame is the inertial root frame: ecliptic plane and equinox
// of J2000. It terminates every frame chain.
type J2000EclipticFrame struct {
	center Selection
}

// NewJ2000EclipticFrame returns an ecliptic inertial frame centered on the
// given entity.
func NewJ2000EclipticFrame(center Selection) *J2000EclipticFrame {
	return &J2000EclipticFrame{center: center}
}

func (f *J2000EclipticFrame) Center() Selection { return f.center }

func (f *J2000EclipticFrame) NestingDepth(kind FrameKind, limit int) int {
	return f.nesting(0, limit, kind)
}

func (f *J2000EclipticFrame) nesting(depth, _ int, _ FrameKind) int {
	return depth
}

// J2000EquatorFrame is the inertial frame aligned with the Earth's mean
// equator at J2000. Like the ecliptic frame it terminates every chain.
type J2000EquatorFrame struct {
	center Selection
}

// NewJ2000EquatorFrame returns an equatorial inertial frame centered on the
// given entity.
func NewJ2000EquatorFrame(center Selection) *J2000EquatorFrame {
	return &J2000EquatorFrame{center: center}
}

func (f *J2000EquatorFrame) Center() Selection { return f.center }

func (f *J2000EquatorFrame) NestingDepth(kind FrameKind, limit int) int {
	return f.nesting(0, limit, kind)
}

func (f *J2000EquatorFrame) nesting(depth, _ int, _ FrameKind) int {
	return depth
}

// BodyFixedFrame rotates with a target entity: its axes track the target's
// orientation over time, so its depth chains through the target's body
// frames as well as the center's orbit frames.
type BodyFixedFrame struct {
	center Selection
	target Selection
}

// NewBodyFixedFrame returns a frame centered on center and rotating with
// target.
func NewBodyFixedFrame(center, target Selection) *BodyFixedFrame {
	return &BodyFixedFrame{center: center, target: target}
}

func (f *BodyFixedFrame) Center() Selection { return f.center }

// Target returns the entity whose rotation the frame tracks.
func (f *BodyFixedFrame) Target() Selection { return f.target }

func (f *BodyFixedFrame) NestingDepth(kind FrameKind, limit int) int {
	return f.nesting(0, limit, kind)
}

func (f *BodyFixedFrame) nesting(depth, limit int, _ FrameKind) int {
	n := selectionDepth(f.center, depth, limit, PositionFrame)
	if n > limit {
		return n
	}
	if m := selectionDepth(f.target, depth, limit, OrientationFrame); m > n {
		n = m
	}
	return n
}

// BodyMeanEquatorFrame is aligned with the mean equatorial plane of a target
// entity; its depth chains through the target's body frames and the
// center's orbit frames.
type BodyMeanEquatorFrame struct {
	center Selection
	target Selection
}

// NewBodyMeanEquatorFrame returns a mean-equator frame centered on center
// and aligned with target's equator.
func NewBodyMeanEquatorFrame(center, target Selection) *BodyMeanEquatorFrame {
	return &BodyMeanEquatorFrame{center: center, target: target}
}

func (f *BodyMeanEquatorFrame) Center() Selection { return f.center }

// Target returns the entity whose equator orients the frame.
func (f *BodyMeanEquatorFrame) Target() Selection { return f.target }

func (f *BodyMeanEquatorFrame) NestingDepth(kind FrameKind, limit int) int {
	return f.nesting(0, limit, kind)
}

func (f *BodyMeanEquatorFrame) nesting(depth, limit int, _ FrameKind) int {
	n := selectionDepth(f.center, depth, limit, PositionFrame)
	if n > limit {
		return n
	}
	if m := selectionDepth(f.target, depth, limit, OrientationFrame); m > n {
		n = m
	}
	return n
}
