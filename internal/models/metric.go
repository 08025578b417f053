// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package models

// Canonical metric names. Every vendor column that survives alias
// resolution maps onto one of these; no other metric key may appear in a
// document. The registry package attaches ranges and categories to them.
const (
	MetricTotalDistance         = "total_distance"
	MetricHighIntensityDistance = "high_intensity_distance"
	MetricHighSpeedRunning      = "high_speed_running"
	MetricSprintDistance        = "sprint_distance"
	MetricNumberOfSprints       = "number_of_sprints"
	MetricNumberOfAccelerations = "number_of_accelerations"
	MetricNumberOfDecelerations = "number_of_decelerations"
	MetricMaxSpeed              = "max_speed"
	MetricMaxAcceleration       = "max_acceleration"
	MetricMaxDeceleration       = "max_deceleration"
)

// Non-metric canonical field names carried on a RawRow's text map.
const (
	FieldSessionDate  = "session_date"
	FieldSessionName  = "session_name"
	FieldPeriodName   = "period_name"
	FieldAthleteName  = "athlete_name"
	FieldActivityType = "activity_type"
)

// summableMetrics lists the metrics whose session-level value is the sum
// of per-period contributions when no session-total row exists. Order is
// the canonical document field order.
var summableMetrics = []string{
	MetricTotalDistance,
	MetricHighIntensityDistance,
	MetricHighSpeedRunning,
	MetricSprintDistance,
	MetricNumberOfSprints,
	MetricNumberOfAccelerations,
	MetricNumberOfDecelerations,
}

// maxTypeMetrics lists the metrics whose session-level value is the
// maximum observed across rows, never a sum.
var maxTypeMetrics = []string{
	MetricMaxSpeed,
	MetricMaxAcceleration,
	MetricMaxDeceleration,
}

// SummableMetrics returns the ordered canonical names of summable metrics.
func SummableMetrics() []string {
	out := make([]string, len(summableMetrics))
	copy(out, summableMetrics)
	return out
}

// MaxTypeMetrics returns the ordered canonical names of max-type metrics.
func MaxTypeMetrics() []string {
	out := make([]string, len(maxTypeMetrics))
	copy(out, maxTypeMetrics)
	return out
}

// MetricNames returns every canonical metric name, summable first, in
// document field order.
func MetricNames() []string {
	out := make([]string, 0, len(summableMetrics)+len(maxTypeMetrics))
	out = append(out, summableMetrics...)
	out = append(out, maxTypeMetrics...)
	return out
}

// IsMetricName reports whether name is part of the canonical vocabulary.
func IsMetricName(name string) bool {
	for _, m := range summableMetrics {
		if m == name {
			return true
		}
	}
	for _, m := range maxTypeMetrics {
		if m == name {
			return true
		}
	}
	return false
}
