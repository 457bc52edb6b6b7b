package models

import (
	"time"
)

// MatchOperation represents the parameters of a single matching run
type MatchOperation struct {
	ID              string
	ReferencePath   string   // Directory holding the kept non-RAW photos
	RootPath        string   // Directory searched recursively for RAW files
	OutputPath      string   // Directory receiving the copies
	Extensions      []string // RAW extension allow-list, without leading dot
	ExcludePatterns []string
	DryRun          bool
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *MatchOperation) Validate() error {
	if op.ReferencePath == "" {
		return &ValidationError{Field: "ReferencePath", Message: "reference path is required"}
	}
	if op.RootPath == "" {
		return &ValidationError{Field: "RootPath", Message: "root path is required"}
	}
	if op.OutputPath == "" {
		return &ValidationError{Field: "OutputPath", Message: "output path is required"}
	}
	if len(op.Extensions) == 0 {
		return &ValidationError{Field: "Extensions", Message: "at least one RAW extension is required"}
	}
	if op.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
