// Package runner wires enumeration, matching and copying into one run.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/rawpick/pkg/copier"
	"github.com/sdejongh/rawpick/pkg/logging"
	"github.com/sdejongh/rawpick/pkg/match"
	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/sdejongh/rawpick/pkg/output"
	"github.com/sdejongh/rawpick/pkg/ratelimit"
	"github.com/sdejongh/rawpick/pkg/storage"
)

// Engine orchestrates a matching run
type Engine struct {
	reference storage.Backend
	root      storage.Backend
	dest      storage.Backend
	formatter output.Formatter
	writer    io.Writer
	logger    logging.Logger
	operation *models.MatchOperation
}

// NewEngine creates a new run engine.
// A nil formatter or logger disables that output.
func NewEngine(
	reference, root, dest storage.Backend,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.MatchOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		reference: reference,
		root:      root,
		dest:      dest,
		formatter: formatter,
		logger:    logger.WithFields(logging.Fields{"run_id": operation.ID}),
		operation: operation,
	}
}

// SetWriter sets where the formatter writes (stdout when unset)
func (e *Engine) SetWriter(w io.Writer) {
	e.writer = w
}

// Run executes the run: scan both trees, match, copy, report.
// Scan failures abort the run; copy failures are only recorded.
func (e *Engine) Run(ctx context.Context) (*models.RunReport, error) {
	op := e.operation
	report := &models.RunReport{
		OperationID:   op.ID,
		ReferencePath: e.reference.Root(),
		RootPath:      e.root.Root(),
		OutputPath:    e.dest.Root(),
		DryRun:        op.DryRun,
		StartTime:     time.Now(),
		Status:        models.StatusFailed,
	}

	refFiles, err := e.reference.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to scan reference directory: %w", err)
	}
	baseNames := match.ExtractBaseNames(storage.Paths(refFiles))
	e.logger.Info(ctx, "reference scanned", logging.Fields{
		"files":      len(refFiles),
		"base_names": len(baseNames),
	})

	rootFiles, err := e.root.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to scan root directory: %w", err)
	}
	candidates, excluded := match.Filter(rootFiles, op.ExcludePatterns)
	e.logger.Info(ctx, "root scanned", logging.Fields{
		"files":    len(rootFiles),
		"excluded": excluded,
	})

	matches := match.FindMatches(baseNames, storage.Paths(candidates), op.Extensions)
	unmatched := match.Unmatched(baseNames, matches)
	e.logger.Info(ctx, "matching complete", logging.Fields{
		"matched_base_names": matches.Len(),
		"raw_files":          matches.FileCount(),
		"unmatched":          len(unmatched),
	})
	for _, name := range unmatched {
		e.logger.Debug(ctx, "no RAW file for base name", logging.Fields{"base_name": name})
	}

	if e.formatter != nil {
		if err := e.formatter.Start(e.writer, op, matches.FileCount()); err != nil {
			return nil, fmt.Errorf("failed to start output: %w", err)
		}
	}

	engine := copier.New(e.root, e.dest,
		copier.WithLogger(e.logger),
		copier.WithDryRun(op.DryRun),
		copier.WithLimiter(ratelimit.NewLimiter(op.BandwidthLimit)),
		copier.WithObserver(&formatterObserver{formatter: e.formatter, total: matches.FileCount()}),
	)
	result := engine.Copy(ctx, matches)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Result = result
	report.Unmatched = unmatched
	report.Summary = models.Summary{
		BaseNamesProcessed:    len(baseNames),
		RawFilesMatched:       matches.FileCount(),
		FilesCopied:           result.SuccessCount,
		FilesSkipped:          len(unmatched),
		Errors:                result.FailureCount,
		ReferenceFilesScanned: len(refFiles),
		RootFilesScanned:      len(rootFiles),
		RootFilesExcluded:     excluded,
	}
	report.Status = models.StatusFor(result)

	e.logger.Info(ctx, "run complete", logging.Fields{
		"copied":   result.SuccessCount,
		"errors":   result.FailureCount,
		"status":   string(report.Status),
		"duration": report.Duration.String(),
	})

	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			return report, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	return report, nil
}

// formatterObserver forwards copy events to the output formatter
type formatterObserver struct {
	formatter output.Formatter
	total     int
}

func (o *formatterObserver) FileStarted(index int, source string) {
	o.send(output.ProgressUpdate{Type: output.UpdateFileStart, FilePath: source, CurrentFile: index})
}

func (o *formatterObserver) FileCopied(index int, source, destination string, n int64) {
	o.send(output.ProgressUpdate{
		Type:         output.UpdateFileComplete,
		FilePath:     source,
		Destination:  destination,
		BytesWritten: n,
		CurrentFile:  index,
	})
}

func (o *formatterObserver) FileFailed(index int, source string, err error) {
	o.send(output.ProgressUpdate{Type: output.UpdateFileError, FilePath: source, CurrentFile: index, Error: err})
}

func (o *formatterObserver) send(update output.ProgressUpdate) {
	if o.formatter == nil {
		return
	}
	update.TotalFiles = o.total
	o.formatter.Progress(update)
}
