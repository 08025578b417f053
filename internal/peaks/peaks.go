// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package peaks

import (
	"github.com/jmaglio/pitchside/internal/metrics"
	"github.com/jmaglio/pitchside/internal/models"
)

// Extract computes the per-metric maximum across the given consolidated
// sessions, restricted to those matching activityType. An empty
// activityType matches every session. Sessions reports how many sessions
// contributed after filtering; metrics absent from every contributing
// session are absent from Peaks rather than reported as zero.
//
// The athlete id is taken from the first contributing session; callers
// are expected to pass one athlete's sessions.
func Extract(sessions []models.ConsolidatedSession, activityType string) models.PeakValueSet {
	set := models.PeakValueSet{
		ActivityType: activityType,
		Peaks:        make(map[string]float64),
	}

	for i := range sessions {
		s := &sessions[i]
		if activityType != "" && s.ActivityType != activityType {
			continue
		}
		if set.Sessions == 0 {
			set.AthleteID = s.AthleteID
		}
		set.Sessions++
		for _, name := range models.MetricNames() {
			v, ok := s.Metric(name)
			if !ok {
				continue
			}
			if cur, seen := set.Peaks[name]; !seen || v > cur {
				set.Peaks[name] = v
			}
		}
	}

	metrics.RecordPeakExtraction(activityType, set.Sessions)
	return set
}
