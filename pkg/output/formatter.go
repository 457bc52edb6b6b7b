package output

import (
	"io"

	"github.com/sdejongh/rawpick/pkg/models"
)

// Progress update types
const (
	UpdateFileStart    = "file_start"
	UpdateFileComplete = "file_complete"
	UpdateFileError    = "file_error"
)

// ProgressUpdate represents a progress notification during the copy pass
type ProgressUpdate struct {
	Type         string
	FilePath     string
	Destination  string
	BytesWritten int64
	CurrentFile  int
	TotalFiles   int
	Error        error
}

// Formatter defines the interface for output formatting.
// Implementations include human-readable, progress-bar and JSON formatters.
type Formatter interface {
	// Start initializes the formatter once matching is done and the copy pass begins
	Start(writer io.Writer, operation *models.MatchOperation, totalFiles int) error

	// Progress reports progress during the copy pass
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays summary
	Complete(report *models.RunReport) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
