package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sdejongh/rawpick/internal/filelock"
	"github.com/sdejongh/rawpick/pkg/config"
	"github.com/sdejongh/rawpick/pkg/logging"
	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/sdejongh/rawpick/pkg/output"
	"github.com/sdejongh/rawpick/pkg/runner"
	"github.com/sdejongh/rawpick/pkg/storage"
	"github.com/spf13/cobra"
)

// MatchFlags holds match command flags
type MatchFlags struct {
	Reference    string
	Root         string
	Output       string
	Extensions   []string
	Exclude      []string
	DryRun       bool
	Bandwidth    string
	Format       string
	NoProgress   bool
	Report       string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var matchFlags MatchFlags

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Copy the RAW files matching a set of reference photos",
		Long: `Scan the reference directory for photos, find the RAW files sharing their
base names anywhere under the search root, and copy them into the output directory.
Existing files in the output directory are never overwritten.`,
		Example: `  rawpick match -r ~/Pictures/keepers -s /mnt/archive/raw -o ~/Pictures/keepers-raw
  rawpick match -r keepers -s raw -o out --ext cr3,dng --exclude '.thumbnails/' --dry-run`,
		Args: cobra.NoArgs,
		RunE: runMatch,
	}

	// Required flags
	cmd.Flags().StringVarP(&matchFlags.Reference, "reference", "r", "", "directory holding the reference photos (required)")
	cmd.Flags().StringVarP(&matchFlags.Root, "root", "s", "", "directory searched recursively for RAW files (required)")
	cmd.Flags().StringVarP(&matchFlags.Output, "output", "o", "", "directory receiving the copies, created if missing (required)")
	cmd.MarkFlagRequired("reference")
	cmd.MarkFlagRequired("root")
	cmd.MarkFlagRequired("output")

	// Optional flags
	cmd.Flags().StringSliceVar(&matchFlags.Extensions, "ext", nil, "RAW extensions to match (default from config)")
	cmd.Flags().StringSliceVar(&matchFlags.Exclude, "exclude", nil, "glob patterns skipped while scanning the root")
	cmd.Flags().BoolVar(&matchFlags.DryRun, "dry-run", false, "show what would be copied without copying")
	cmd.Flags().StringVarP(&matchFlags.Bandwidth, "bandwidth", "b", "", "bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringVar(&matchFlags.Format, "format", "", "output format: human, json")
	cmd.Flags().BoolVar(&matchFlags.NoProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().StringVar(&matchFlags.Report, "report", "", "write the run report to file")
	cmd.Flags().StringVar(&matchFlags.ReportFormat, "report-format", "human", "report format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&matchFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&matchFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&matchFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	// Flags parsed; from here on errors are not usage errors
	cmd.SilenceUsage = true

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	console := logging.NewConsoleLogger(cmd.ErrOrStderr(), consoleLevel())

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		if models.IsKind(err, models.KindConfigInvalid) {
			return fatal(ctx, console, "invalid configuration", err)
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fatal(ctx, console, "invalid configuration", err)
	}

	// Create logger
	fileLogger, err := createLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer fileLogger.Close()
	logger := logging.NewMultiLogger(console, fileLogger)

	// Validate directories
	created, err := validateMatchFlags()
	if err != nil {
		return fatal(ctx, logger, "cannot start run", err)
	}
	if created {
		logger.Info(ctx, "created output directory", logging.Fields{"path": matchFlags.Output})
	}
	warnOnNesting(ctx, logger)

	// Create match operation
	operation, err := createMatchOperation(cfg)
	if err != nil {
		return fatal(ctx, logger, "invalid run parameters", err)
	}

	// Create storage backends
	reference, err := storage.NewLocal(operation.ReferencePath)
	if err != nil {
		return fatal(ctx, logger, "cannot open reference directory", err)
	}
	defer reference.Close()

	root, err := storage.NewLocal(operation.RootPath)
	if err != nil {
		return fatal(ctx, logger, "cannot open search root", err)
	}
	defer root.Close()

	dest, err := storage.NewLocal(operation.OutputPath)
	if err != nil {
		return fatal(ctx, logger, "cannot open output directory", err)
	}
	defer dest.Close()

	// Dry runs leave the output directory untouched, lock file included
	if !operation.DryRun {
		lock := filelock.ForDir(dest.Root())
		if err := lock.TryLock(); err != nil {
			return fatal(ctx, logger, "output directory is busy", err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn(ctx, "failed to release output lock", logging.Fields{"error": err.Error()})
			}
		}()
	}

	// Create output formatter
	formatter := createFormatter(cfg)

	// Run
	engine := runner.NewEngine(reference, root, dest, formatter, fileLogger, operation)
	engine.SetWriter(cmd.OutOrStdout())

	report, err := engine.Run(ctx)
	if err != nil {
		return fatal(ctx, logger, "run aborted", err)
	}

	// Write the report if requested
	if matchFlags.Report != "" || cmd.Flags().Changed("report-format") {
		if err := output.WriteReport(report, matchFlags.Report, matchFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if code := report.Status.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// fatal logs a precondition failure and turns it into exit status 1
func fatal(ctx context.Context, logger logging.Logger, msg string, err error) error {
	fields := logging.Fields{"kind": string(models.KindOf(err))}
	var violations config.ValidationErrors
	if errors.As(err, &violations) {
		for _, v := range violations {
			logger.Error(ctx, msg, nil, logging.Fields{"field": v.Field, "problem": v.Message})
		}
	} else {
		var me *models.Error
		if errors.As(err, &me) && me.Path != "" {
			fields["path"] = me.Path
		}
		logger.Error(ctx, msg, err, fields)
	}
	return &ExitError{Code: 1, Err: err}
}

// createFormatter picks the formatter for the configured output
func createFormatter(cfg *config.Config) output.Formatter {
	switch cfg.Output.Format {
	case "json":
		return output.NewJSONFormatter()
	default:
		if cfg.Output.Progress {
			return output.NewProgressFormatter(cfg.Output.Quiet, globalFlags.Verbose)
		}
		return output.NewHumanFormatter(cfg.Output.Quiet, globalFlags.Verbose)
	}
}

// createLogger creates the run log; without a log file nothing is recorded
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}

// consoleLevel maps the global verbosity flags onto the stderr log level
func consoleLevel() logging.Level {
	switch {
	case globalFlags.Quiet:
		return logging.WarnLevel
	case globalFlags.Verbose:
		return logging.DebugLevel
	default:
		return logging.InfoLevel
	}
}
