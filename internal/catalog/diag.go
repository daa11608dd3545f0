package catalog

import (
	"fmt"
	"io"

	"github.com/LBV2012-26/Celestia/internal/ansi"
)

// Severity grades a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lowercase severity label.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one human-readable problem report, tagged with the line
// number of the originating catalog entry.
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
}

// Reporter collects diagnostics emitted during a catalog load and streams
// them, optionally colored, to a writer. A nil writer collects quietly.
type Reporter struct {
	w     io.Writer
	color bool
	diags []Diagnostic
}

// NewReporter returns a Reporter streaming to w. Color controls ANSI
// coloring of severity labels.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color}
}

// Warnf records a warning diagnostic for the given line.
func (r *Reporter) Warnf(line int, format string, args ...any) {
	r.emit(Diagnostic{Line: line, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Errorf records an error diagnostic for the given line.
func (r *Reporter) Errorf(line int, format string, args ...any) {
	r.emit(Diagnostic{Line: line, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (r *Reporter) emit(d Diagnostic) {
	r.diags = append(r.diags, d)
	if r.w == nil {
		return
	}
	label := d.Severity.String()
	if r.color {
		code := ansi.Yellow
		if d.Severity == SeverityError {
			code = ansi.Red
		}
		label = ansi.Wrap(code, label)
	}
	fmt.Fprintf(r.w, "%s: line %d: %s\n", label, d.Line, d.Message)
}

// Diagnostics returns all collected diagnostics in emission order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diags }

// ErrorCount returns the number of error-severity diagnostics.
func (r *Reporter) ErrorCount() int {
	n := 0
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity diagnostics.
func (r *Reporter) WarningCount() int {
	return len(r.diags) - r.ErrorCount()
}
