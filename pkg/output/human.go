package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sdejongh/rawpick/pkg/models"
)

// palette holds the colours used for console output
type palette struct {
	ok    *color.Color
	fail  *color.Color
	dim   *color.Color
	title *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		dim:   color.New(color.Faint),
		title: color.New(color.Bold),
	}
	if isTerminal(w) {
		for _, c := range []*color.Color{p.ok, p.fail, p.dim, p.title} {
			c.EnableColor()
		}
	} else {
		for _, c := range []*color.Color{p.ok, p.fail, p.dim, p.title} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	colors     palette
	totalFiles int
	quiet      bool
	verbose    bool
	dryRun     bool
	startTime  time.Time
}

// NewHumanFormatter creates a new human-readable formatter.
// quiet suppresses per-file lines; verbose lists base names without a RAW file.
func NewHumanFormatter(quiet, verbose bool) *HumanFormatter {
	return &HumanFormatter{quiet: quiet, verbose: verbose}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, operation *models.MatchOperation, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.colors = newPalette(writer)
	f.totalFiles = totalFiles
	f.startTime = time.Now()
	if operation != nil {
		f.dryRun = operation.DryRun
	}

	if !f.quiet {
		verb := "Copying"
		if f.dryRun {
			verb = "Planning"
		}
		fmt.Fprintf(writer, "%s %d RAW files\n", verb, totalFiles)
	}

	return nil
}

// Progress prints one line per finished file
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil || f.quiet {
		return nil
	}

	switch update.Type {
	case UpdateFileComplete:
		f.writeCopied(update.FilePath, update.Destination)
	case UpdateFileError:
		f.writeFailed(update.FilePath, errorText(update.Error))
	}

	return nil
}

func (f *HumanFormatter) writeCopied(src, dst string) {
	verb := "copied"
	if f.dryRun {
		verb = "would copy"
	}
	fmt.Fprintf(f.writer, "%s %s %s -> %s\n", f.colors.ok.Sprint("✓"), verb, src, dst)
}

func (f *HumanFormatter) writeFailed(path, msg string) {
	fmt.Fprintf(f.writer, "%s failed %s: %s\n", f.colors.fail.Sprint("✗"), path, msg)
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	f.writeSummary(report)
	return nil
}

func (f *HumanFormatter) writeSummary(report *models.RunReport) {
	w := f.writer
	s := report.Summary

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", f.colors.title.Sprint("Summary:"))
	fmt.Fprintf(w, "  Base names processed: %d\n", s.BaseNamesProcessed)
	fmt.Fprintf(w, "  RAW files matched:    %d\n", s.RawFilesMatched)
	fmt.Fprintf(w, "  Files copied:         %d\n", s.FilesCopied)
	fmt.Fprintf(w, "  Files skipped:        %d\n", s.FilesSkipped)
	fmt.Fprintf(w, "  Errors:               %d\n", s.Errors)
	if s.RootFilesExcluded > 0 {
		fmt.Fprintf(w, "  Excluded by pattern:  %d\n", s.RootFilesExcluded)
	}

	if f.verbose && len(report.Unmatched) > 0 {
		fmt.Fprintf(w, "\n%s\n", f.colors.title.Sprint("No RAW file found for:"))
		for _, name := range report.Unmatched {
			fmt.Fprintf(w, "  %s\n", f.colors.dim.Sprint(name))
		}
	}

	status := string(report.Status)
	if report.Status == models.StatusSuccess {
		status = f.colors.ok.Sprint(status)
	} else {
		status = f.colors.fail.Sprint(status)
	}
	fmt.Fprintf(w, "\n")
	if report.DryRun {
		fmt.Fprintf(w, "Dry run, nothing was written\n")
	}
	fmt.Fprintf(w, "Finished in %s, status: %s\n", report.Duration.Round(time.Millisecond), status)
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	w := f.writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "%s %v\n", newPalette(w).fail.Sprint("Error:"), err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return strings.TrimSpace(err.Error())
}
