// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

/*
Package models defines the data structures shared across the Pitchside
ingestion pipeline.

This package contains the canonical metric vocabulary and every document
that flows between pipeline stages. It serves as the single source of
truth for data structure definitions.

Key Components:

  - RawRow / ParseResult: Output of the locale-tolerant file parser,
    including per-row diagnostics and the detected file format
  - NormalizedRecord: Canonical per-row document produced by the
    normalizer (one row of one vendor export, mapped to canonical fields)
  - ConsolidatedSession: The authoritative per-session record with its
    embedded period breakdown
  - PeakValueSet: Per-athlete, per-activity-type metric maxima computed
    from stored ConsolidatedSessions

Metric values live in a map keyed by canonical metric name rather than in
struct fields, so that a metric with no resolvable value is genuinely
absent instead of an explicit null. JSON serialization inlines the metric
map into the top level of the document, which keeps the stored shape flat:

	{
	  "session_id": "…",
	  "date": "2026-03-14",
	  "has_session_total": true,
	  "periods": [...],
	  "total_distance": 10230.5,
	  "max_speed": 8.61
	}

All JSON marshaling uses goccy/go-json.
*/
package models
