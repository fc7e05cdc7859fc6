package errkinds

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position locates a byte offset within a single line of source text fed
// to internal/sexpr or internal/infix.
type Position struct {
	Line   int
	Column int
}

// Diagnostic is a single reportable failure: a parse error from one of the
// textual front ends, or a domain/overflow error raised while evaluating
// a caller-supplied expression string.
type Diagnostic struct {
	Kind     error // one of the sentinel kinds in kinds.go
	Message  string
	Source   string
	Position Position
	Length   int
}

// Reporter formats Diagnostics the way the teacher's compiler formats
// CompilerErrors: a colorized "kind: message" banner, a "-->" location
// line, the offending source line, and a caret marker underneath it.
type Reporter struct {
	filename string
}

// NewReporter creates a Reporter that attributes diagnostics to filename
// (used only in the "-->" location line; pass "" for REPL input).
func NewReporter(filename string) *Reporter {
	return &Reporter{filename: filename}
}

// Format renders d as a multi-line colorized diagnostic.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	out.WriteString(fmt.Sprintf("%s: %s\n", red(kindLabel(d.Kind)), d.Message))

	loc := r.filename
	if loc == "" {
		loc = "<input>"
	}
	out.WriteString(fmt.Sprintf("  %s %s:%d:%d\n", dim("-->"), loc, d.Position.Line, d.Position.Column))

	lines := strings.Split(d.Source, "\n")
	if d.Position.Line > 0 && d.Position.Line <= len(lines) {
		line := lines[d.Position.Line-1]
		width := len(fmt.Sprintf("%d", d.Position.Line))
		out.WriteString(fmt.Sprintf("%s %s\n", dim(strings.Repeat(" ", width)), dim("│")))
		out.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%d", d.Position.Line)), dim("│"), line))

		length := d.Length
		if length <= 0 {
			length = 1
		}
		marker := strings.Repeat(" ", max(0, d.Position.Column-1)) + red(strings.Repeat("^", length))
		out.WriteString(fmt.Sprintf("%s %s %s\n", dim(strings.Repeat(" ", width)), dim("│"), marker))
	}

	return out.String()
}

func kindLabel(kind error) string {
	switch {
	case kind == DomainError:
		return "domain error"
	case kind == NumericOverflow:
		return "numeric overflow"
	case kind == ParseError:
		return "parse error"
	case kind == ResourceExhausted:
		return "resource exhausted"
	default:
		return "error"
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
