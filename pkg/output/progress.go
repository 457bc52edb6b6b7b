package output

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/sdejongh/rawpick/pkg/models"
)

const barTemplate pb.ProgressBarTemplate = `{{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }} {{string . "file"}}`

// ProgressFormatter draws a progress bar while copying and prints the
// per-file lines afterwards. Without a terminal it behaves like HumanFormatter.
type ProgressFormatter struct {
	*HumanFormatter

	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter(quiet, verbose bool) *ProgressFormatter {
	return &ProgressFormatter{HumanFormatter: NewHumanFormatter(quiet, verbose)}
}

// Start initializes the formatter and the bar
func (f *ProgressFormatter) Start(writer io.Writer, operation *models.MatchOperation, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	if err := f.HumanFormatter.Start(writer, operation, totalFiles); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if isTerminal(writer) && totalFiles > 0 {
		f.bar = barTemplate.New(totalFiles).SetWriter(writer).SetMaxWidth(100).Start()
	}
	return nil
}

// Progress advances the bar, or prints lines when no bar is shown
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return f.HumanFormatter.Progress(update)
	}

	switch update.Type {
	case UpdateFileStart:
		f.bar.Set("file", filepath.Base(update.FilePath))
	case UpdateFileComplete, UpdateFileError:
		f.bar.Increment()
	}
	return nil
}

// Complete stops the bar, prints the per-file lines and the summary
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	f.mu.Lock()
	bar := f.bar
	f.bar = nil
	f.mu.Unlock()

	if bar != nil {
		bar.Set("file", "")
		bar.Finish()
		if !f.quiet && report.Result != nil {
			for _, c := range report.Result.Copied {
				f.writeCopied(c.Source, c.Destination)
			}
			for _, e := range report.Result.Failed {
				f.writeFailed(e.Path, e.Error)
			}
		}
	}

	return f.HumanFormatter.Complete(report)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
