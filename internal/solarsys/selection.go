package solarsys

// Selection refers to a star or a body, or to nothing. Exactly one of the
// fields is non-nil in a valid non-empty selection.
type Selection struct {
	Star *Star
	Body *Body
}

// Empty reports whether the selection refers to nothing.
func (s Selection) Empty() bool { return s.Star == nil && s.Body == nil }

// Name returns the name of the selected entity, or "" for an empty
// selection.
func (s Selection) Name() string {
	switch {
	case s.Body != nil:
		return s.Body.Name()
	case s.Star != nil:
		return s.Star.Name
	default:
		return ""
	}
}

// System returns the star whose system the selected entity belongs to, or
// nil for an empty selection.
func (s Selection) System() *Star {
	switch {
	case s.Body != nil:
		return s.Body.System().Star()
	case s.Star != nil:
		return s.Star
	default:
		return nil
	}
}
