package solarsys

// FrameTree is the per-entity holder of the default reference frame used
// when a catalog entry supplies none: the J2000 ecliptic frame centered on
// the entity. Every star with a solar system has one; bodies grow one
// lazily when a satellite's timeline needs it.
type FrameTree struct {
	center       Selection
	defaultFrame Frame
}

// NewFrameTree returns the frame tree anchored at the given entity.
func NewFrameTree(center Selection) *FrameTree {
	return &FrameTree{
		center:       center,
		defaultFrame: NewJ2000EclipticFrame(center),
	}
}

// Center returns the entity the tree is anchored at.
func (t *FrameTree) Center() Selection { return t.center }

// DefaultFrame returns the frame used for phases that specify none. The
// same instance is returned every time, so phases sharing the default can
// be recognized by identity.
func (t *FrameTree) DefaultFrame() Frame { return t.defaultFrame }
