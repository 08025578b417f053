// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package models

import (
	"github.com/goccy/go-json"
)

// NormalizedRecord is the canonical per-row document produced by the
// normalizer: one vendor export row mapped onto canonical fields and
// tagged with provenance. Records sharing a SessionID belong to one
// recording session and are reduced by the consolidator.
type NormalizedRecord struct {
	AthleteID    string `json:"athlete_id"`
	CoachID      string `json:"coach_id,omitempty"`
	Date         string `json:"date"` // ISO calendar date, 2006-01-02
	ActivityType string `json:"activity_type,omitempty"`
	SessionID    string `json:"session_id"`
	SessionName  string `json:"session_name,omitempty"`
	PeriodName   string `json:"period_name,omitempty"`

	// Provenance tags.
	Source string `json:"source"`           // e.g. "csv_import_catapult"
	Device string `json:"device,omitempty"` // manufacturer display name

	// Metrics holds the resolved canonical metric values. Fields with no
	// resolvable value are omitted, never stored as zero or null.
	Metrics map[string]float64 `json:"-"`
}

// Metric returns the named metric value and whether it was resolved.
func (r *NormalizedRecord) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// SetMetric records a resolved metric value, allocating the map lazily.
func (r *NormalizedRecord) SetMetric(name string, value float64) {
	if r.Metrics == nil {
		r.Metrics = make(map[string]float64)
	}
	r.Metrics[name] = value
}

// MarshalJSON inlines the metric map into the top level of the document.
func (r NormalizedRecord) MarshalJSON() ([]byte, error) {
	type alias NormalizedRecord
	return marshalInlined(alias(r), r.Metrics)
}

// PeriodEntry is one period's snapshot inside a ConsolidatedSession.
type PeriodEntry struct {
	Name    string             `json:"period_name"`
	Metrics map[string]float64 `json:"-"`
}

// Metric returns the named metric value and whether it was resolved.
func (p *PeriodEntry) Metric(name string) (float64, bool) {
	v, ok := p.Metrics[name]
	return v, ok
}

// MarshalJSON inlines the metric map into the top level of the entry.
func (p PeriodEntry) MarshalJSON() ([]byte, error) {
	type alias PeriodEntry
	return marshalInlined(alias(p), p.Metrics)
}

// UnmarshalJSON restores the inlined metric keys into the metric map.
func (p *PeriodEntry) UnmarshalJSON(data []byte) error {
	type alias PeriodEntry
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	metrics, err := unmarshalInlinedMetrics(data)
	if err != nil {
		return err
	}
	a.Metrics = metrics
	*p = PeriodEntry(a)
	return nil
}

// ConsolidatedSession is the one authoritative record per session id.
//
// Invariants maintained by the consolidator:
//   - summable metrics equal either the session-total row's values (when
//     HasSessionTotal) or the sum over period rows, never both;
//   - max-type metrics equal the maximum across all contributing rows,
//     including the session-total row itself;
//   - Periods never contains the session-total row.
type ConsolidatedSession struct {
	SessionID    string `json:"session_id"`
	SessionName  string `json:"session_name,omitempty"`
	AthleteID    string `json:"athlete_id"`
	CoachID      string `json:"coach_id,omitempty"`
	Date         string `json:"date"`
	ActivityType string `json:"activity_type,omitempty"`
	Source       string `json:"source"`
	Device       string `json:"device,omitempty"`

	// HasSessionTotal is true when a session-total row supplied the
	// summable metrics; together with len(Periods) it is the auditable
	// signal of how the reduction was derived.
	HasSessionTotal bool `json:"has_session_total"`

	// Periods is the embedded per-period breakdown, in input order.
	Periods []PeriodEntry `json:"periods"`

	// Metrics holds the reduced canonical metric values.
	Metrics map[string]float64 `json:"-"`
}

// Metric returns the named metric value and whether it was resolved.
func (s *ConsolidatedSession) Metric(name string) (float64, bool) {
	v, ok := s.Metrics[name]
	return v, ok
}

// SetMetric records a reduced metric value, allocating the map lazily.
func (s *ConsolidatedSession) SetMetric(name string, value float64) {
	if s.Metrics == nil {
		s.Metrics = make(map[string]float64)
	}
	s.Metrics[name] = value
}

// MarshalJSON inlines the metric map into the top level of the document
// so the stored shape stays flat (total_distance, max_speed, … as
// first-class fields).
func (s ConsolidatedSession) MarshalJSON() ([]byte, error) {
	type alias ConsolidatedSession
	return marshalInlined(alias(s), s.Metrics)
}

// UnmarshalJSON restores the inlined metric keys into the metric map.
func (s *ConsolidatedSession) UnmarshalJSON(data []byte) error {
	type alias ConsolidatedSession
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	metrics, err := unmarshalInlinedMetrics(data)
	if err != nil {
		return err
	}
	a.Metrics = metrics
	*s = ConsolidatedSession(a)
	return nil
}

// PeakValueSet is the per-metric maximum across one athlete's
// consolidated sessions for one activity type. It is recomputed on
// demand from stored sessions, never incrementally maintained.
type PeakValueSet struct {
	AthleteID    string             `json:"athlete_id"`
	ActivityType string             `json:"activity_type"`
	Sessions     int                `json:"sessions"`
	Peaks        map[string]float64 `json:"peaks"`
}

// Peak returns the named peak value and whether any session supplied it.
func (p *PeakValueSet) Peak(name string) (float64, bool) {
	v, ok := p.Peaks[name]
	return v, ok
}

// marshalInlined marshals fixed to a JSON object and splices the metric
// key/value pairs into it at the top level.
func marshalInlined(fixed any, metrics map[string]float64) ([]byte, error) {
	data, err := json.Marshal(fixed)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for name, value := range metrics {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		obj[name] = raw
	}
	return json.Marshal(obj)
}

// unmarshalInlinedMetrics extracts canonical metric keys from a flat
// document. Non-numeric values for metric keys are ignored rather than
// rejected; a malformed stored field must not make a whole document
// unreadable.
func unmarshalInlinedMetrics(data []byte) (map[string]float64, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	var metrics map[string]float64
	for key, raw := range obj {
		if !IsMetricName(key) {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if metrics == nil {
			metrics = make(map[string]float64)
		}
		metrics[key] = v
	}
	return metrics, nil
}
