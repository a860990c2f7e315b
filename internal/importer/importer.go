// Package importer bulk-loads sleep diary exports into the store.
//
// An export is a JSON array of objects with bedTime, wakeTime and
// morningFeeling, the same shape POST /api/sleep-log accepts.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/claude/sleeplog/internal/api"
	"github.com/claude/sleeplog/internal/service"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	Inserted   int64
	Duplicated int64
	Rejected   int64
}

// Importer reads export files from a directory and records each night.
type Importer struct {
	rec    Recorder
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is read.
func New(rec Recorder, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{rec: rec, state: state, log: log, dryRun: dryRun}
}

// Import processes all .json files directly under dir for userID.
func (imp *Importer) Import(ctx context.Context, dir string, userID int64) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return &imp.stats, err
	}
	sort.Strings(files)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, dir, f, userID); err != nil {
			return &imp.stats, fmt.Errorf("importing %s: %w", filepath.Base(f), err)
		}
	}
	return &imp.stats, nil
}

// importFile returns an error only for failures that should stop the run.
// Unreadable or malformed files are counted and skipped.
func (imp *Importer) importFile(ctx context.Context, dir, path string, userID int64) error {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", rel, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", rel, "error", err)
			imp.stats.FilesErrored++
			return nil
		}
		done, err := imp.state.IsImported(rel, userID, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state: %w", err)
		}
		if done {
			imp.log.Debug("unchanged, skipping", "file", rel)
			imp.stats.FilesSkipped++
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", rel, "error", err)
		imp.stats.FilesErrored++
		return nil
	}
	var entries []api.CreateSleepLogRequest
	if err := json.Unmarshal(data, &entries); err != nil {
		imp.log.Warn("parse failed", "file", rel, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	for i, e := range entries {
		if err := imp.importEntry(ctx, userID, e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	imp.stats.FilesProcessed++

	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(rel, userID, info.Size(), hash); err != nil {
			return fmt.Errorf("recording import state: %w", err)
		}
	}
	imp.log.Info("imported file", "file", rel, "entries", len(entries))
	return nil
}

func (imp *Importer) importEntry(ctx context.Context, userID int64, e api.CreateSleepLogRequest) error {
	bed, wake, err := e.Times()
	if err != nil {
		imp.log.Warn("rejected entry", "error", err)
		imp.stats.Rejected++
		return nil
	}
	req := service.CreateSleepLogRequest{BedTime: bed, WakeTime: wake, MorningFeeling: e.Feeling()}

	if imp.dryRun {
		if _, err := service.Prepare(userID, req); err != nil {
			imp.log.Warn("rejected entry", "error", err)
			imp.stats.Rejected++
			return nil
		}
		imp.stats.Inserted++
		return nil
	}

	_, err = imp.rec.CreateSleepLog(ctx, userID, req)
	switch {
	case err == nil:
		imp.stats.Inserted++
	case errors.Is(err, service.ErrDuplicate):
		imp.stats.Duplicated++
	case errors.Is(err, service.ErrInvalidInput):
		imp.log.Warn("rejected entry", "error", err)
		imp.stats.Rejected++
	default:
		return err
	}
	return nil
}
