// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package gpsimport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmaglio/pitchside/internal/config"
	"github.com/jmaglio/pitchside/internal/consolidate"
	"github.com/jmaglio/pitchside/internal/logging"
	"github.com/jmaglio/pitchside/internal/manufacturer"
	"github.com/jmaglio/pitchside/internal/metrics"
	"github.com/jmaglio/pitchside/internal/models"
	"github.com/jmaglio/pitchside/internal/registry"
)

// SessionWriter persists one consolidated session. The store behind it
// (and its one-session-id-claims-one-document write discipline) is the
// caller's concern.
type SessionWriter interface {
	WriteSession(ctx context.Context, session *models.ConsolidatedSession) error
}

// Importer orchestrates a full file import: parse, normalize,
// consolidate, write. One Importer serves one import at a time;
// concurrent uploads get their own instances.
type Importer struct {
	cfg        config.ImportConfig
	parser     *Parser
	normalizer *Normalizer
	writer     SessionWriter

	mu      sync.RWMutex
	running bool
	stats   *ImportStats
}

// NewImporter builds an importer from the given configuration. A nil
// writer makes every run a dry run: files are parsed and consolidated
// but nothing is persisted.
func NewImporter(cfg config.ImportConfig, writer SessionWriter) (*Importer, error) {
	var extra []manufacturer.Profile
	if cfg.ProfilesPath != "" {
		loaded, err := manufacturer.LoadProfiles(cfg.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("load manufacturer profiles: %w", err)
		}
		extra = loaded
	}
	matcher := manufacturer.NewMatcher(extra...)
	reg := registry.Default()

	return &Importer{
		cfg:        cfg,
		parser:     NewParser(matcher),
		normalizer: NewNormalizer(matcher, reg, cfg.CoreSummableMetrics),
		writer:     writer,
	}, nil
}

// Run imports one uploaded file for the given athlete. It returns the
// run's statistics alongside any error; stats are meaningful even for
// failed runs. Context cancellation is honored at the write boundary
// between sessions; the in-memory transform itself is not cancelable.
func (imp *Importer) Run(ctx context.Context, data []byte, athleteID, coachID string) (*ImportStats, error) {
	imp.mu.Lock()
	if imp.running {
		imp.mu.Unlock()
		return nil, fmt.Errorf("import already in progress")
	}
	imp.running = true
	imp.stats = &ImportStats{
		StartTime: time.Now(),
		DryRun:    imp.writer == nil,
	}
	imp.mu.Unlock()

	defer func() {
		imp.mu.Lock()
		imp.running = false
		imp.stats.EndTime = time.Now()
		imp.mu.Unlock()
	}()

	if max := imp.cfg.MaxFileSizeBytes; max > 0 && int64(len(data)) > max {
		return imp.Stats(), fmt.Errorf("file size %d exceeds limit %d", len(data), max)
	}

	res, err := imp.parser.Parse(data, imp.cfg.Strict)
	imp.mu.Lock()
	imp.stats.Manufacturer = res.Manufacturer
	imp.stats.TotalRows = res.TotalRows
	imp.stats.RowErrors = len(res.RowErrors)
	imp.mu.Unlock()
	if err != nil {
		metrics.RecordImport(res.Manufacturer, "failed", res.TotalRows, len(res.RowErrors), imp.Stats().Duration())
		return imp.Stats(), fmt.Errorf("parse: %w", err)
	}
	if !res.Success {
		logging.Warn().Str("athlete_id", athleteID).Msg("Empty or headerless export file")
		metrics.RecordImport(res.Manufacturer, "failed", 0, 0, imp.Stats().Duration())
		return imp.Stats(), nil
	}

	records := imp.normalizer.Normalize(res, athleteID, coachID)
	imp.mu.Lock()
	imp.stats.Records = len(records)
	imp.stats.Dropped = len(res.Rows) - len(records)
	imp.mu.Unlock()

	sessions := consolidateBySession(records)

	for _, session := range sessions {
		imp.mu.Lock()
		imp.stats.Sessions++
		imp.mu.Unlock()

		if imp.writer == nil {
			metrics.RecordSession(false)
			continue
		}
		select {
		case <-ctx.Done():
			return imp.Stats(), ctx.Err()
		default:
		}
		if err := imp.writer.WriteSession(ctx, session); err != nil {
			return imp.Stats(), fmt.Errorf("write session %s: %w", session.SessionID, err)
		}
		metrics.RecordSession(true)
		imp.mu.Lock()
		imp.stats.Written++
		imp.mu.Unlock()
	}

	stats := imp.Stats()
	status := "ok"
	if stats.RowErrors > 0 {
		status = "partial"
	}
	metrics.RecordImport(stats.Manufacturer, status, stats.TotalRows, stats.RowErrors, stats.Duration())
	logging.Info().
		Str("manufacturer", stats.Manufacturer).
		Int("rows", stats.TotalRows).
		Int("row_errors", stats.RowErrors).
		Int("dropped", stats.Dropped).
		Int("sessions", stats.Sessions).
		Int("written", stats.Written).
		Bool("dry_run", stats.DryRun).
		Dur("duration", stats.Duration()).
		Msg("Import completed")

	return stats, nil
}

// Stats returns a copy of the current run's statistics.
func (imp *Importer) Stats() *ImportStats {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	if imp.stats == nil {
		return &ImportStats{}
	}
	copied := *imp.stats
	return &copied
}

// Running reports whether an import is in progress.
func (imp *Importer) Running() bool {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	return imp.running
}

// Summary returns a serializable snapshot of the current run.
func (imp *Importer) Summary() *ProgressSummary {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	if imp.stats == nil {
		return (&ImportStats{}).ToSummary(false)
	}
	return imp.stats.ToSummary(imp.running)
}

// consolidateBySession groups normalized records by session id,
// preserving first-seen order, and consolidates each group.
func consolidateBySession(records []models.NormalizedRecord) []*models.ConsolidatedSession {
	var order []string
	groups := make(map[string][]models.NormalizedRecord)
	for _, rec := range records {
		if _, ok := groups[rec.SessionID]; !ok {
			order = append(order, rec.SessionID)
		}
		groups[rec.SessionID] = append(groups[rec.SessionID], rec)
	}

	sessions := make([]*models.ConsolidatedSession, 0, len(order))
	for _, id := range order {
		if session := consolidate.Consolidate(groups[id]); session != nil {
			sessions = append(sessions, session)
		}
	}
	return sessions
}
