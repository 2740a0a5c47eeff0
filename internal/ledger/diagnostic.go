package ledger

type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInfo
)

const (
	CodeHeaderMismatch = "header-mismatch"
	CodeUnmappedParty  = "unmapped-party"
)

// Diagnostic is a non-fatal finding. It never changes the computed result.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Pos      Position
}
