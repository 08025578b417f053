// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

// Package metrics provides Prometheus instrumentation for the GPS
// export ingestion pipeline: files imported, rows parsed and rejected,
// sessions consolidated, import duration, and peak extractions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Import pipeline metrics
	FilesImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gps_import_files_total",
			Help: "Total number of GPS export files imported",
		},
		[]string{"manufacturer", "status"}, // status: "ok", "partial", "failed"
	)

	RowsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gps_import_rows_parsed_total",
			Help: "Total number of export rows successfully parsed",
		},
		[]string{"manufacturer"},
	)

	RowErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gps_import_row_errors_total",
			Help: "Total number of row-level parse errors",
		},
	)

	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gps_import_records_dropped_total",
			Help: "Total number of normalized records discarded",
		},
		[]string{"reason"}, // "empty_metrics", "bad_date"
	)

	SessionsConsolidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gps_import_sessions_consolidated_total",
			Help: "Total number of consolidated sessions produced",
		},
	)

	SessionsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gps_import_sessions_written_total",
			Help: "Total number of consolidated sessions written to the store",
		},
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gps_import_duration_seconds",
			Help:    "Duration of a full file import in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Peak extraction metrics
	PeakExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gps_peak_extractions_total",
			Help: "Total number of peak value extractions",
		},
		[]string{"activity_type"},
	)

	PeakExtractionSessions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gps_peak_extraction_sessions",
			Help:    "Number of sessions scanned per peak extraction",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)

// RecordImport records the outcome of one file import.
func RecordImport(manufacturer, status string, rows int, rowErrors int, duration time.Duration) {
	FilesImported.WithLabelValues(manufacturer, status).Inc()
	RowsParsed.WithLabelValues(manufacturer).Add(float64(rows))
	if rowErrors > 0 {
		RowErrors.Add(float64(rowErrors))
	}
	ImportDuration.Observe(duration.Seconds())
}

// RecordDrop records a normalized record discarded before consolidation.
func RecordDrop(reason string) {
	RecordsDropped.WithLabelValues(reason).Inc()
}

// RecordSession records a consolidated session and whether it was
// persisted or produced by a dry run.
func RecordSession(written bool) {
	SessionsConsolidated.Inc()
	if written {
		SessionsWritten.Inc()
	}
}

// RecordPeakExtraction records one peak extraction run.
func RecordPeakExtraction(activityType string, sessions int) {
	if activityType == "" {
		activityType = "all"
	}
	PeakExtractions.WithLabelValues(activityType).Inc()
	PeakExtractionSessions.Observe(float64(sessions))
}
