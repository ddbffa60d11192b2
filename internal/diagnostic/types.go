package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"remapper/internal/common"
)

// Diagnostics accumulates the findings of one check, split by severity.
// The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding about a mapping source, a jar entry or an
// output path.
type Diagnostic struct {
	Severity Severity
	// Code classifies the finding, see the Code constants.
	Code    string
	Message string
	// Subject is the file, directory or class name the finding is about.
	Subject string
	// Member narrows Subject: a member name, a missing file, a class
	// listed twice.
	Member string
	// Suggestions are known names close to an unknown one.
	Suggestions []string
}

// Severity orders findings from notes to failures.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Finding codes.
const (
	CodeMissingFile     = "missing_file"
	CodeUnsupportedPath = "unsupported_path"
	CodeUnknownClass    = "unknown_class"
	CodeUnknownMember   = "unknown_member"
	CodeDuplicate       = "duplicate"
	CodeInvalid         = "invalid"
	CodeSkipped         = "skipped"
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func add(list *[]Diagnostic, sev Severity, code, message, subject, member string) {
	*list = append(*list, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Member:   member,
	})
}

// AddError records a finding that makes the checked input unusable.
func (d *Diagnostics) AddError(code, message, subject, member string) {
	add(&d.Errors, SeverityError, code, message, subject, member)
}

// AddErrorWithSuggestions is AddError for an unknown name with the known
// names closest to it.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, subject, member string, suggestions []string) {
	d.AddError(code, message, subject, member)
	d.Errors[len(d.Errors)-1].Suggestions = suggestions
}

// AddWarning records something that was left out or looks wrong but does
// not stop a read or write.
func (d *Diagnostics) AddWarning(code, message, subject, member string) {
	add(&d.Warnings, SeverityWarning, code, message, subject, member)
}

// AddInfo records a note, such as a check that could not run.
func (d *Diagnostics) AddInfo(code, message, subject, member string) {
	add(&d.Infos, SeverityInfo, code, message, subject, member)
}

// HasErrors reports whether any error was recorded. A nil d has none.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error joins the errors into one error value, or returns nil without any.
// Warnings and infos are not included.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[subject] member: [code] message (did you mean ...?)",
// leaving out the parts that are empty.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Subject != "" {
		prefix = append(prefix, "["+d.Subject+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
