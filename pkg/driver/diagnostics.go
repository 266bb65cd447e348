package driver

import (
	"fmt"
	"strings"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticStage names the pipeline pass that produced a diagnostic.
type DiagnosticStage string

const (
	StageScan    DiagnosticStage = "scan"
	StageParse   DiagnosticStage = "parse"
	StageResolve DiagnosticStage = "resolve"
	StageRuntime DiagnosticStage = "runtime"
)

// Static reports whether the stage runs before execution.
func (s DiagnosticStage) Static() bool {
	return s != StageRuntime
}

// DiagnosticLocation references a source line for diagnostics.
type DiagnosticLocation struct {
	Path string
	Line int
}

// Diagnostic is a single reported fault. Where carries the near-token
// context (" at 'x'" or " at end") and is empty when there is none.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Stage    DiagnosticStage
	Message  string
	Where    string
	Location DiagnosticLocation
}

// DescribeDiagnostic formats a static diagnostic for CLI output:
//
//	[line 3] Error at 'x': message
//
// prefixed with "path: " when the source path is known.
func DescribeDiagnostic(diag Diagnostic) string {
	label := "Error"
	if diag.Severity == SeverityWarning {
		label = "Warning"
	}
	message := strings.TrimSpace(diag.Message)
	location := FormatDiagnosticLocation(diag.Location)
	if location != "" {
		return fmt.Sprintf("%s %s%s: %s", location, label, diag.Where, message)
	}
	return fmt.Sprintf("%s%s: %s", label, diag.Where, message)
}

// FormatDiagnosticLocation renders "path: [line N]", "[line N]" or "path".
func FormatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0:
		return fmt.Sprintf("%s: [line %d]", path, loc.Line)
	case loc.Line > 0:
		return fmt.Sprintf("[line %d]", loc.Line)
	case path != "":
		return path + ":"
	default:
		return ""
	}
}
