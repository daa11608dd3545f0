package catalog

import "errors"

// Structural errors abort the entire catalog load.
var (
	// ErrParse marks a malformed token sequence: a missing name or parent
	// token, or an entry body that is not a property group.
	ErrParse = errors.New("catalog: structural parse error")
)

// Semantic errors are scoped to a single catalog entry: the entry is
// rejected with a diagnostic and the load continues.
var (
	// ErrMisplacedBeginning is returned when a timeline phase other than
	// the first specifies a Beginning.
	ErrMisplacedBeginning = errors.New("beginning can only be specified for the initial phase of a timeline")

	// ErrMissingEnding is returned when a timeline phase other than the
	// last omits its Ending.
	ErrMissingEnding = errors.New("ending is required for all timeline phases other than the final one")

	// ErrBarycenterMismatch is returned when a body's orbit barycenter lies
	// outside the star system the body is being defined in.
	ErrBarycenterMismatch = errors.New("orbit barycenter must be in the same star system")

	// ErrNoTimelineData is returned when a non-Modify entry defines no
	// timeline at all.
	ErrNoTimelineData = errors.New("no timeline defined")

	// ErrFrameTooDeep is returned when a newly supplied reference frame is
	// nested deeper than the configured maximum, which almost always means
	// the frame graph contains a cycle.
	ErrFrameTooDeep = errors.New("reference frame nested too deep (probably circular)")

	// ErrInvalidFrameDescriptor is returned when a reference-frame
	// descriptor has an unknown tag, a missing required parameter, or a
	// center that cannot be resolved in the universe.
	ErrInvalidFrameDescriptor = errors.New("invalid reference frame descriptor")
)
