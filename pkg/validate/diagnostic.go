package validate

import (
	"fmt"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding about one asset.
type Diagnostic struct {
	Severity Severity
	// Check names the check that produced the diagnostic, e.g. "missing-stamp".
	Check string
	// Code is the error code the finding corresponds to when it is an error.
	Code    errors.Code
	Asset   asset.ID
	Message string
	Help    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Check, d.Message)
}

// Result collects the diagnostics of one validation run.
type Result struct {
	Diagnostics []Diagnostic
}

func (r *Result) add(sev Severity, check string, code errors.Code, id asset.ID, help, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: sev,
		Check:    check,
		Code:     code,
		Asset:    id,
		Message:  fmt.Sprintf(format, args...),
		Help:     help,
	})
}

func (r *Result) errorf(check string, code errors.Code, id asset.ID, help, format string, args ...any) {
	r.add(SeverityError, check, code, id, help, format, args...)
}

func (r *Result) warnf(check string, id asset.ID, help, format string, args ...any) {
	r.add(SeverityWarning, check, "", id, help, format, args...)
}

// OK reports whether there are no diagnostics at all.
func (r *Result) OK() bool { return len(r.Diagnostics) == 0 }

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool { return r.ErrorCount() > 0 }

// ErrorCount returns the number of error diagnostics.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning diagnostics.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

func (r *Result) count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// ByCheck returns the diagnostics produced by one check.
func (r *Result) ByCheck(check string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Check == check {
			out = append(out, d)
		}
	}
	return out
}

// Err joins every error diagnostic into one error, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, errors.New(d.Code, "%s", d.Message))
		}
	}
	return errors.Join(errs...)
}
