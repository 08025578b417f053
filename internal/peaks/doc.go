// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

// Package peaks computes per-metric maxima across an athlete's
// consolidated sessions. Peaks are recomputed on demand from stored
// sessions rather than maintained incrementally, so retroactive
// corrections to a session are reflected on the next extraction.
//
// Extraction reads only the consolidated session-level values. Period
// breakdowns are never re-aggregated here: the total-vs-periods
// precedence was already resolved per session by the consolidate
// package, and recomputing from periods would undo it.
package peaks
