// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package consolidate

import (
	"github.com/jmaglio/pitchside/internal/models"
)

// Consolidate reduces the normalized records of one recording session
// into a single authoritative session record. It returns nil for empty
// input and never fails: missing or malformed metric values degrade to
// zero for summation, and HasSessionTotal plus the period count remain
// the auditable signal of how the result was derived.
//
// All records are expected to share one session id; the first record
// supplies the session identity fields.
func Consolidate(records []models.NormalizedRecord) *models.ConsolidatedSession {
	if len(records) == 0 {
		return nil
	}

	first := records[0]
	session := &models.ConsolidatedSession{
		SessionID:    first.SessionID,
		SessionName:  first.SessionName,
		AthleteID:    first.AthleteID,
		CoachID:      first.CoachID,
		Date:         first.Date,
		ActivityType: first.ActivityType,
		Source:       first.Source,
		Device:       first.Device,
	}

	// A lone record is its own session total, whatever its label says.
	if len(records) == 1 {
		session.HasSessionTotal = true
		session.Periods = []models.PeriodEntry{}
		for _, name := range models.SummableMetrics() {
			if v, ok := first.Metric(name); ok {
				session.SetMetric(name, v)
			}
		}
		applyMaxMetrics(session, records)
		return session
	}

	var totalRow *models.NormalizedRecord
	var periodRows []models.NormalizedRecord
	for i := range records {
		if Classify(records[i].PeriodName) == ClassSessionTotal {
			// first total row wins; extras still count toward maxima
			if totalRow == nil {
				totalRow = &records[i]
			}
			continue
		}
		periodRows = append(periodRows, records[i])
	}

	if totalRow != nil {
		session.HasSessionTotal = true
		for _, name := range models.SummableMetrics() {
			if v, ok := totalRow.Metric(name); ok {
				session.SetMetric(name, v)
			}
		}
		session.Periods = periodEntries(periodRows)
	} else {
		session.HasSessionTotal = false
		for _, name := range models.SummableMetrics() {
			sum := 0.0
			present := false
			for i := range periodRows {
				if v, ok := periodRows[i].Metric(name); ok {
					sum += v
					present = true
				}
			}
			if present {
				session.SetMetric(name, sum)
			}
		}
		session.Periods = periodEntries(records)
	}

	applyMaxMetrics(session, records)
	return session
}

// applyMaxMetrics sets every max-type metric to the maximum across all
// contributing rows, total row included. This runs in both reduction
// branches: a session's max speed must never be lower than one of its
// halves'.
func applyMaxMetrics(session *models.ConsolidatedSession, records []models.NormalizedRecord) {
	for _, name := range models.MaxTypeMetrics() {
		best := 0.0
		found := false
		for i := range records {
			v, ok := records[i].Metric(name)
			if !ok {
				continue
			}
			if !found || v > best {
				best = v
				found = true
			}
		}
		if found {
			session.SetMetric(name, best)
		}
	}
}

// periodEntries snapshots the given rows into the embedded breakdown,
// preserving input order.
func periodEntries(rows []models.NormalizedRecord) []models.PeriodEntry {
	entries := make([]models.PeriodEntry, 0, len(rows))
	for i := range rows {
		entry := models.PeriodEntry{Name: rows[i].PeriodName}
		if len(rows[i].Metrics) > 0 {
			entry.Metrics = make(map[string]float64, len(rows[i].Metrics))
			for k, v := range rows[i].Metrics {
				entry.Metrics[k] = v
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
