// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package gpsimport

import (
	"time"
)

// ImportStats holds statistics about one import run.
type ImportStats struct {
	// Manufacturer is the detected vendor of the imported file.
	Manufacturer string

	// TotalRows is the number of data lines in the file.
	TotalRows int

	// RowErrors is the number of row-level parse diagnostics.
	RowErrors int

	// Dropped is the number of normalized rows discarded (empty core
	// metrics or unparseable dates).
	Dropped int

	// Records is the number of normalized records that reached
	// consolidation.
	Records int

	// Sessions is the number of consolidated sessions produced.
	Sessions int

	// Written is the number of sessions written to the store (zero on a
	// dry run).
	Written int

	// StartTime is when the import started.
	StartTime time.Time

	// EndTime is when the import completed (zero if still running).
	EndTime time.Time

	// DryRun indicates no SessionWriter was attached.
	DryRun bool
}

// Duration returns the elapsed time of the import run.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the processing rate.
func (s *ImportStats) RowsPerSecond() float64 {
	d := s.Duration().Seconds()
	if d == 0 {
		return 0
	}
	return float64(s.TotalRows) / d
}

// ProgressSummary is a serializable snapshot of import progress.
type ProgressSummary struct {
	Status         string    `json:"status"`
	Manufacturer   string    `json:"manufacturer"`
	TotalRows      int       `json:"total_rows"`
	RowErrors      int       `json:"row_errors"`
	Dropped        int       `json:"dropped"`
	Records        int       `json:"records"`
	Sessions       int       `json:"sessions"`
	Written        int       `json:"written"`
	RowsPerSec     float64   `json:"rows_per_second"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	StartTime      time.Time `json:"start_time"`
	DryRun         bool      `json:"dry_run"`
}

// ToSummary converts ImportStats to a ProgressSummary.
func (s *ImportStats) ToSummary(running bool) *ProgressSummary {
	summary := &ProgressSummary{
		Manufacturer:   s.Manufacturer,
		TotalRows:      s.TotalRows,
		RowErrors:      s.RowErrors,
		Dropped:        s.Dropped,
		Records:        s.Records,
		Sessions:       s.Sessions,
		Written:        s.Written,
		RowsPerSec:     s.RowsPerSecond(),
		ElapsedSeconds: s.Duration().Seconds(),
		StartTime:      s.StartTime,
		DryRun:         s.DryRun,
	}

	switch {
	case running:
		summary.Status = "running"
	case s.EndTime.IsZero():
		summary.Status = "pending"
	default:
		summary.Status = "completed"
	}

	return summary
}
