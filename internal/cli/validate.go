package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sdejongh/rawpick/internal/platform"
	"github.com/sdejongh/rawpick/pkg/config"
	"github.com/sdejongh/rawpick/pkg/logging"
	"github.com/sdejongh/rawpick/pkg/match"
	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/sdejongh/rawpick/pkg/ratelimit"
	"github.com/spf13/cobra"
)

// validateMatchFlags checks the three directories and creates the output
// directory when it is missing. created reports whether it had to.
func validateMatchFlags() (created bool, err error) {
	for _, p := range []string{matchFlags.Reference, matchFlags.Root, matchFlags.Output} {
		if err := platform.ValidatePath(p); err != nil {
			return false, err
		}
	}

	if err := requireDir(matchFlags.Reference, "reference"); err != nil {
		return false, err
	}
	if err := requireDir(matchFlags.Root, "search root"); err != nil {
		return false, err
	}

	// Check output
	outInfo, err := os.Stat(matchFlags.Output)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(matchFlags.Output, 0755); err != nil {
			return false, fmt.Errorf("failed to create output directory: %w", err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("failed to access output directory: %w", err)
	case !outInfo.IsDir():
		return false, models.NewError(models.KindDirectoryNotFound, matchFlags.Output,
			"output path exists but is not a directory", nil)
	}

	// The output must not be one of the scanned directories
	if samePath(matchFlags.Output, matchFlags.Root) {
		return created, fmt.Errorf("output and search root cannot be the same: %s", platform.NormalizePath(matchFlags.Output))
	}
	if samePath(matchFlags.Output, matchFlags.Reference) {
		return created, fmt.Errorf("output and reference cannot be the same: %s", platform.NormalizePath(matchFlags.Output))
	}

	return created, nil
}

func requireDir(path, role string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.NewError(models.KindDirectoryNotFound, path, role+" directory not found", err)
	}
	if err != nil {
		return fmt.Errorf("failed to access %s directory: %w", role, err)
	}
	if !info.IsDir() {
		return models.NewError(models.KindDirectoryNotFound, path, role+" is not a directory", nil)
	}
	return nil
}

func samePath(a, b string) bool {
	return platform.IsWithin(a, b) && platform.IsWithin(b, a)
}

// warnOnNesting flags an output directory placed under the search root:
// the copies will be found again by the next run.
func warnOnNesting(ctx context.Context, logger logging.Logger) {
	if platform.IsWithin(matchFlags.Root, matchFlags.Output) {
		logger.Warn(ctx, "output directory is inside the search root", logging.Fields{
			"output": platform.NormalizePath(matchFlags.Output),
			"root":   platform.NormalizePath(matchFlags.Root),
		})
	}
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with the flags set on the command line
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("ext") {
		cfg.Match.Extensions = matchFlags.Extensions
	}
	if flags.Changed("exclude") {
		cfg.Match.Exclude = append(cfg.Match.Exclude, matchFlags.Exclude...)
	}
	if flags.Changed("bandwidth") {
		cfg.Copy.Bandwidth = matchFlags.Bandwidth
	}

	// Output
	if flags.Changed("format") {
		cfg.Output.Format = matchFlags.Format
	}
	if matchFlags.NoProgress {
		cfg.Output.Progress = false
	}

	// Logging
	if flags.Changed("log-file") {
		cfg.Logging.File = matchFlags.LogFile
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = matchFlags.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = matchFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// createMatchOperation creates a match operation from configuration
func createMatchOperation(cfg *config.Config) (*models.MatchOperation, error) {
	if err := match.ValidatePatterns(cfg.Match.Exclude); err != nil {
		return nil, err
	}

	bandwidth, err := ratelimit.ParseRate(cfg.Copy.Bandwidth)
	if err != nil {
		return nil, err
	}

	operation := &models.MatchOperation{
		ID:              uuid.New().String(),
		ReferencePath:   platform.NormalizePath(matchFlags.Reference),
		RootPath:        platform.NormalizePath(matchFlags.Root),
		OutputPath:      platform.NormalizePath(matchFlags.Output),
		Extensions:      cfg.Match.Extensions,
		ExcludePatterns: cfg.Match.Exclude,
		DryRun:          matchFlags.DryRun,
		BandwidthLimit:  bandwidth,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
