// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

// Package gpsimport turns raw GPS export files into consolidated
// session documents. The pipeline is a pure, single-pass batch
// transform:
//
//	file bytes -> Parser -> raw rows -> Normalizer -> canonical records
//	-> consolidate.Consolidate -> one session per session id
//
// The Parser auto-detects encoding, delimiter, decimal separator and
// date layout per file; detection decisions are scoped to one parse
// call and travel with the ParseResult rather than being cached
// process-wide. The Importer orchestrates the full run, writes sessions
// through a caller-supplied SessionWriter, and reports ImportStats.
// Multiple imports may run concurrently on separate Importer instances;
// a single Importer rejects overlapping runs.
package gpsimport
