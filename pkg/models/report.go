package models

import (
	"time"
)

// RunReport represents the results of a matching run
type RunReport struct {
	// Operation details
	OperationID   string
	ReferencePath string
	RootPath      string
	OutputPath    string
	DryRun        bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Summary Summary

	// Per-file copy outcome
	Result *CopyResult

	// Reference base names that found no RAW file
	Unmatched []string

	// Overall status
	Status RunStatus
}

// Summary holds the counters printed at the end of a run
type Summary struct {
	BaseNamesProcessed int
	RawFilesMatched    int
	FilesCopied        int
	FilesSkipped       int // Reference base names without any RAW match
	Errors             int

	// Scan sizes
	ReferenceFilesScanned int
	RootFilesScanned      int
	RootFilesExcluded     int
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates every matched file was copied
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some copies failed
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run could not complete
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the process exit code for the status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	default:
		return 1
	}
}

// StatusFor derives the run status from a copy result
func StatusFor(result *CopyResult) RunStatus {
	if result == nil {
		return StatusFailed
	}
	if result.HasErrors() {
		return StatusPartial
	}
	return StatusSuccess
}
