package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/driver"
)

// maxDiagnosticNotes caps how many call sites are listed under a fault.
const maxDiagnosticNotes = 8

type RuntimeDiagnosticNote struct {
	Message  string
	Location driver.DiagnosticLocation
}

type RuntimeDiagnostic struct {
	Severity driver.DiagnosticSeverity
	Message  string
	Location driver.DiagnosticLocation
	Notes    []RuntimeDiagnosticNote
}

// BuildRuntimeDiagnostic converts a runtime fault into a diagnostic. The
// innermost active calls are attached as notes, most recent first.
func BuildRuntimeDiagnostic(err error, path string) RuntimeDiagnostic {
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		message := ""
		if err != nil {
			message = err.Error()
		}
		return RuntimeDiagnostic{
			Severity: driver.SeverityError,
			Message:  message,
			Location: driver.DiagnosticLocation{Path: path},
		}
	}
	location := driver.DiagnosticLocation{Path: path, Line: rtErr.Token.Line}
	var notes []RuntimeDiagnosticNote
	for idx := len(rtErr.callStack) - 1; idx >= 0 && len(notes) < maxDiagnosticNotes; idx-- {
		frame := rtErr.callStack[idx]
		noteLocation := driver.DiagnosticLocation{Path: path, Line: frame.paren.Line}
		notes = append(notes, RuntimeDiagnosticNote{
			Message:  fmt.Sprintf("in %s() called from here", frame.callee),
			Location: noteLocation,
		})
	}
	return RuntimeDiagnostic{
		Severity: driver.SeverityError,
		Message:  rtErr.Message,
		Location: location,
		Notes:    notes,
	}
}

// DescribeRuntimeDiagnostic formats a runtime diagnostic for CLI output:
// the message, then the line, then any call-site notes.
func DescribeRuntimeDiagnostic(diag RuntimeDiagnostic) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(diag.Message))
	if location := driver.FormatDiagnosticLocation(diag.Location); location != "" {
		fmt.Fprintf(&b, "\n%s", location)
	}
	for _, note := range diag.Notes {
		if noteLoc := driver.FormatDiagnosticLocation(note.Location); noteLoc != "" {
			fmt.Fprintf(&b, "\nnote: %s %s", noteLoc, note.Message)
		} else {
			fmt.Fprintf(&b, "\nnote: %s", note.Message)
		}
	}
	return b.String()
}
