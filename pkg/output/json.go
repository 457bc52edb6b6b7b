package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/rawpick/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer     io.Writer
	totalFiles int
	startTime  time.Time
	events     []JSONEvent
}

// JSONEvent represents a single event in the JSON output stream
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// JSONFileData represents file-related event data
type JSONFileData struct {
	Path         string `json:"path"`
	Destination  string `json:"destination,omitempty"`
	BytesWritten int64  `json:"bytes_written,omitempty"`
	Error        string `json:"error,omitempty"`
}

// JSONReportData represents the final report document
type JSONReportData struct {
	OperationID string          `json:"operation_id"`
	Reference   string          `json:"reference"`
	Root        string          `json:"root"`
	Output      string          `json:"output"`
	DryRun      bool            `json:"dry_run"`
	Status      string          `json:"status"`
	ExitCode    int             `json:"exit_code"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Summary     JSONSummaryData `json:"summary"`
	Copied      []JSONCopyData  `json:"copied"`
	Failed      []JSONFailData  `json:"failed"`
	Unmatched   []string        `json:"unmatched"`
	Events      []JSONEvent     `json:"events,omitempty"`
}

// JSONSummaryData represents the run counters
type JSONSummaryData struct {
	BaseNamesProcessed int `json:"base_names_processed"`
	RawFilesMatched    int `json:"raw_files_matched"`
	FilesCopied        int `json:"files_copied"`
	FilesSkipped       int `json:"files_skipped"`
	Errors             int `json:"errors"`
	RootFilesExcluded  int `json:"root_files_excluded"`
}

// JSONCopyData is one copied file
type JSONCopyData struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// JSONFailData is one failed file
type JSONFailData struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, operation *models.MatchOperation, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.totalFiles = totalFiles
	f.startTime = time.Now()
	f.events = append(f.events, JSONEvent{
		Timestamp: f.startTime,
		Type:      "start",
		Data:      map[string]int{"total_files": totalFiles},
	})
	return nil
}

// Progress records file events; nothing is written until Complete
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	if update.Type == UpdateFileStart {
		return nil
	}
	data := JSONFileData{
		Path:         update.FilePath,
		Destination:  update.Destination,
		BytesWritten: update.BytesWritten,
	}
	if update.Error != nil {
		data.Error = update.Error.Error()
	}
	f.events = append(f.events, JSONEvent{Timestamp: time.Now(), Type: update.Type, Data: data})
	return nil
}

// Complete writes the report document
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	doc := NewJSONReport(report)
	doc.Events = f.events
	return enc.Encode(doc)
}

// NewJSONReport converts a run report into its JSON document
func NewJSONReport(report *models.RunReport) JSONReportData {
	doc := JSONReportData{
		OperationID: report.OperationID,
		Reference:   report.ReferencePath,
		Root:        report.RootPath,
		Output:      report.OutputPath,
		DryRun:      report.DryRun,
		Status:      string(report.Status),
		ExitCode:    report.Status.ExitCode(),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Summary: JSONSummaryData{
			BaseNamesProcessed: report.Summary.BaseNamesProcessed,
			RawFilesMatched:    report.Summary.RawFilesMatched,
			FilesCopied:        report.Summary.FilesCopied,
			FilesSkipped:       report.Summary.FilesSkipped,
			Errors:             report.Summary.Errors,
			RootFilesExcluded:  report.Summary.RootFilesExcluded,
		},
		Copied:    []JSONCopyData{},
		Failed:    []JSONFailData{},
		Unmatched: []string{},
	}
	if report.Result != nil {
		for _, c := range report.Result.Copied {
			doc.Copied = append(doc.Copied, JSONCopyData{Source: c.Source, Destination: c.Destination})
		}
		for _, e := range report.Result.Failed {
			doc.Failed = append(doc.Failed, JSONFailData{Path: e.Path, Error: e.Error})
		}
	}
	doc.Unmatched = append(doc.Unmatched, report.Unmatched...)
	return doc
}

// Error writes a one-line JSON error object
func (f *JSONFormatter) Error(err error) error {
	w := f.writer
	if w == nil {
		w = os.Stdout
	}
	return json.NewEncoder(w).Encode(map[string]string{
		"type":  "error",
		"kind":  string(models.KindOf(err)),
		"error": err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
