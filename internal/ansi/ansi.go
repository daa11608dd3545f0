// Package ansi provides ANSI escape code constants and helpers for terminal
// output. All colored diagnostic output should reference these constants to
// avoid duplication.
package ansi

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

// Wrap surrounds s with the given SGR code and a reset. With an empty code
// it returns s unchanged, so callers can disable color by passing "".
func Wrap(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + Reset
}
