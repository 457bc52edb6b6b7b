package models

// CopyRecord is a successful copy
type CopyRecord struct {
	Source      string
	Destination string
}

// CopyFailure is a file that could not be copied
type CopyFailure struct {
	Path  string
	Error string
}

// CopyResult accumulates the outcome of one copy pass.
// SuccessCount and FailureCount always equal len(Copied) and len(Failed).
type CopyResult struct {
	Copied       []CopyRecord
	Failed       []CopyFailure
	SuccessCount int
	FailureCount int
}

// NewCopyResult creates an empty result
func NewCopyResult() *CopyResult {
	return &CopyResult{}
}

// RecordSuccess records a completed copy
func (r *CopyResult) RecordSuccess(source, destination string) {
	r.Copied = append(r.Copied, CopyRecord{Source: source, Destination: destination})
	r.SuccessCount++
}

// RecordFailure records a failed copy
func (r *CopyResult) RecordFailure(path, message string) {
	r.Failed = append(r.Failed, CopyFailure{Path: path, Error: message})
	r.FailureCount++
}

// HasErrors reports whether any copy failed
func (r *CopyResult) HasErrors() bool {
	return r.FailureCount > 0
}
