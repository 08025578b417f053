// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

// Package registry defines the canonical metric registry: the fixed
// vocabulary of recognized GPS metrics, their required/optional status,
// valid numeric ranges, and category grouping.
//
// The registry is immutable once built. Default() constructs the full
// canonical set at process start and panics if the definitions violate
// the startup invariant that every metric belongs to exactly one
// category; that is a programmer error, not a runtime condition.
//
// Validate checks a single value against its metric's declared range and
// returns a typed error (ErrUnknownMetric, or a *RangeError carrying
// BelowMinimum/AboveMaximum) that callers can branch on without string
// matching.
package registry
