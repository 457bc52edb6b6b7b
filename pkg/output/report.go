package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sdejongh/rawpick/pkg/models"
)

// WriteReport writes the run report to a file.
// Format can be "human" or "json"; an empty path writes to stdout.
func WriteReport(report *models.RunReport, path string, format string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewJSONReport(report))
	default:
		return writeReportHuman(report, w)
	}
}

// writeReportHuman writes the report in a plain-text layout suited to files
func writeReportHuman(report *models.RunReport, w io.Writer) error {
	fmt.Fprintf(w, "RAW Match Report\n")
	fmt.Fprintf(w, "================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Run ID: %s\n", report.OperationID)
	fmt.Fprintf(w, "Reference: %s\n", report.ReferencePath)
	fmt.Fprintf(w, "Root: %s\n", report.RootPath)
	fmt.Fprintf(w, "Output: %s\n", report.OutputPath)
	fmt.Fprintf(w, "Dry Run: %v\n", report.DryRun)
	fmt.Fprintf(w, "Status: %s\n\n", report.Status)

	s := report.Summary
	fmt.Fprintf(w, "Base names processed: %d\n", s.BaseNamesProcessed)
	fmt.Fprintf(w, "RAW files matched: %d\n", s.RawFilesMatched)
	fmt.Fprintf(w, "Files copied: %d\n", s.FilesCopied)
	fmt.Fprintf(w, "Files skipped: %d\n", s.FilesSkipped)
	fmt.Fprintf(w, "Errors: %d\n", s.Errors)

	if report.Result != nil && len(report.Result.Copied) > 0 {
		fmt.Fprintf(w, "\nCopied (%d)\n", len(report.Result.Copied))
		fmt.Fprintf(w, "----------\n")
		for _, c := range report.Result.Copied {
			fmt.Fprintf(w, "  %s -> %s\n", c.Source, c.Destination)
		}
	}

	if report.Result != nil && len(report.Result.Failed) > 0 {
		fmt.Fprintf(w, "\nFailed (%d)\n", len(report.Result.Failed))
		fmt.Fprintf(w, "----------\n")
		for _, e := range report.Result.Failed {
			fmt.Fprintf(w, "  %s: %s\n", e.Path, e.Error)
		}
	}

	if len(report.Unmatched) > 0 {
		fmt.Fprintf(w, "\nNo RAW file (%d)\n", len(report.Unmatched))
		fmt.Fprintf(w, "-------------\n")
		for _, name := range report.Unmatched {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}

	return nil
}
