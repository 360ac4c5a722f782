package services

import "fmt"

// DiagKind classifies a non-fatal problem encountered while processing a
// decklist. No kind aborts the batch; every one degrades to "skip and
// continue".
type DiagKind string

const (
	DiagParse          DiagKind = "parse"
	DiagLookupMiss     DiagKind = "lookup"
	DiagAmbiguousToken DiagKind = "ambiguous"
	DiagRenderOverflow DiagKind = "overflow"
	DiagSkipped        DiagKind = "skipped"
)

// Diagnostic is one accumulated warning. Library code never prints; the
// caller decides how to surface the collected list.
type Diagnostic struct {
	Kind    DiagKind
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}
