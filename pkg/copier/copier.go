// Package copier copies matched RAW files into the output directory without
// ever replacing an existing file.
package copier

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/sdejongh/rawpick/internal/platform"
	"github.com/sdejongh/rawpick/pkg/logging"
	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/sdejongh/rawpick/pkg/ratelimit"
	"github.com/sdejongh/rawpick/pkg/storage"
)

// maxSuffix bounds collision probing so a pathological directory cannot loop forever
const maxSuffix = 1 << 20

// Observer receives per-file notifications during a copy pass
type Observer interface {
	FileStarted(index int, source string)
	FileCopied(index int, source, destination string, bytes int64)
	FileFailed(index int, source string, err error)
}

// Engine copies files from a source backend into a destination backend
type Engine struct {
	source   storage.Backend
	dest     storage.Backend
	observer Observer
	logger   logging.Logger
	limiter  *ratelimit.Limiter
	dryRun   bool
}

// Option configures an Engine
type Option func(*Engine)

// WithObserver sets the per-file observer
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithLimiter throttles reads from the source; nil means unlimited
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// WithDryRun plans destinations without writing
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) { e.dryRun = dryRun }
}

// New creates a copy engine reading from source and writing into dest.
// The destination directory must already exist.
func New(source, dest storage.Backend, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		dest:   dest,
		logger: logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Copy copies every file of matches, in map order, into the destination.
// A failure on one file is recorded in the result and never stops the pass.
func (e *Engine) Copy(ctx context.Context, matches *models.MatchMap) *models.CopyResult {
	result := models.NewCopyResult()
	planned := make(map[string]struct{})
	index := 0

	matches.Each(func(baseName string, files []string) {
		for _, src := range files {
			index++
			e.notifyStart(index, src)

			dst, n, err := e.copyOne(ctx, src, planned)
			if err != nil {
				result.RecordFailure(src, err.Error())
				e.logger.Error(ctx, "copy failed", err, logging.Fields{
					"source":    src,
					"base_name": baseName,
				})
				e.notifyFailed(index, src, err)
				continue
			}

			result.RecordSuccess(src, dst)
			e.logger.Debug(ctx, "copied", logging.Fields{
				"source":      src,
				"destination": dst,
				"bytes":       n,
				"dry_run":     e.dryRun,
			})
			e.notifyCopied(index, src, dst, n)
		}
	})

	return result
}

func (e *Engine) copyOne(ctx context.Context, src string, planned map[string]struct{}) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	name, err := e.uniqueName(ctx, filepath.Base(src), planned)
	if err != nil {
		return "", 0, err
	}
	dst := filepath.Join(e.dest.Root(), name)

	if e.dryRun {
		planned[name] = struct{}{}
		return dst, 0, nil
	}

	meta, err := e.source.Stat(ctx, src)
	if err != nil {
		return "", 0, err
	}

	reader, err := e.source.Read(ctx, src)
	if err != nil {
		return "", 0, err
	}
	reader = ratelimit.NewReadCloser(ctx, reader, e.limiter)
	defer reader.Close()

	n, err := e.dest.WriteNew(ctx, name, reader, meta)
	if err != nil {
		if errors.Is(err, storage.ErrExist) {
			return "", n, fmt.Errorf("destination appeared before copy: %w", err)
		}
		return "", n, err
	}

	return dst, n, nil
}

// uniqueName returns name, or name with _1, _2, ... inserted before the
// extension, choosing the first that does not exist in the destination.
// Existence is checked afresh on every probe.
func (e *Engine) uniqueName(ctx context.Context, name string, planned map[string]struct{}) (string, error) {
	stem, ext := platform.SplitName(name)
	if ext != "" {
		ext = "." + ext
	} else if len(name) > len(stem) {
		// Name ends with a bare dot
		ext = name[len(stem):]
	}

	candidate := name
	for i := 1; ; i++ {
		taken, err := e.taken(ctx, candidate, planned)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if i > maxSuffix {
			return "", fmt.Errorf("no free name for %s after %d attempts", name, maxSuffix)
		}
		candidate = stem + "_" + strconv.Itoa(i) + ext
	}
}

func (e *Engine) taken(ctx context.Context, name string, planned map[string]struct{}) (bool, error) {
	if _, ok := planned[name]; ok {
		return true, nil
	}
	exists, err := e.dest.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (e *Engine) notifyStart(index int, src string) {
	if e.observer != nil {
		e.observer.FileStarted(index, src)
	}
}

func (e *Engine) notifyCopied(index int, src, dst string, n int64) {
	if e.observer != nil {
		e.observer.FileCopied(index, src, dst, n)
	}
}

func (e *Engine) notifyFailed(index int, src string, err error) {
	if e.observer != nil {
		e.observer.FileFailed(index, src, err)
	}
}
