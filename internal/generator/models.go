// internal/generator/models.go
package generator

// Job is one generation request: a template plus the requested shape.
type Job struct {
	Template        []byte
	NumTransactions int
	NumBatches      int
	NumCopies       int
}

// GeneratedFile is one finished copy.
type GeneratedFile struct {
	CopyIndex int // 1-based, matches the F{n} filename suffix
	Name      string
	Data      []byte
}

// CopyError records a single copy's failure.
type CopyError struct {
	CopyIndex int
	Err       error
}

// Result is the job-level outcome: every copy lands in either Files or
// Failures, never silently dropped.
type Result struct {
	TypeCode       string
	Recognized     bool
	Classification string
	Files          []GeneratedFile
	Failures       []CopyError
}
