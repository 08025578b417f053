// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package peaks

import (
	"testing"

	"github.com/jmaglio/pitchside/internal/consolidate"
	"github.com/jmaglio/pitchside/internal/models"
)

func session(activityType string, metrics map[string]float64) models.ConsolidatedSession {
	s := models.ConsolidatedSession{
		AthleteID:       "ath-1",
		ActivityType:    activityType,
		HasSessionTotal: true,
	}
	for k, v := range metrics {
		s.SetMetric(k, v)
	}
	return s
}

func TestExtract(t *testing.T) {
	t.Run("peak is the max across sessions", func(t *testing.T) {
		set := Extract([]models.ConsolidatedSession{
			session("match", map[string]float64{
				models.MetricTotalDistance: 10000,
				models.MetricMaxSpeed:      8.1,
			}),
			session("match", map[string]float64{
				models.MetricTotalDistance: 12000,
				models.MetricMaxSpeed:      7.8,
			}),
		}, "match")
		if set.Sessions != 2 {
			t.Errorf("Sessions = %d, want 2", set.Sessions)
		}
		if v, _ := set.Peak(models.MetricTotalDistance); v != 12000 {
			t.Errorf("peak total_distance = %g, want 12000", v)
		}
		if v, _ := set.Peak(models.MetricMaxSpeed); v != 8.1 {
			t.Errorf("peak max_speed = %g, want 8.1", v)
		}
		if set.AthleteID != "ath-1" {
			t.Errorf("AthleteID = %q, want ath-1", set.AthleteID)
		}
	})

	t.Run("activity type filter excludes other sessions", func(t *testing.T) {
		set := Extract([]models.ConsolidatedSession{
			session("match", map[string]float64{models.MetricTotalDistance: 10000}),
			session("training", map[string]float64{models.MetricTotalDistance: 14000}),
		}, "match")
		if set.Sessions != 1 {
			t.Errorf("Sessions = %d, want 1", set.Sessions)
		}
		if v, _ := set.Peak(models.MetricTotalDistance); v != 10000 {
			t.Errorf("peak total_distance = %g, want 10000", v)
		}
	})

	t.Run("empty activity type matches everything", func(t *testing.T) {
		set := Extract([]models.ConsolidatedSession{
			session("match", map[string]float64{models.MetricTotalDistance: 10000}),
			session("training", map[string]float64{models.MetricTotalDistance: 14000}),
		}, "")
		if set.Sessions != 2 {
			t.Errorf("Sessions = %d, want 2", set.Sessions)
		}
		if v, _ := set.Peak(models.MetricTotalDistance); v != 14000 {
			t.Errorf("peak total_distance = %g, want 14000", v)
		}
	})

	t.Run("absent metrics stay absent", func(t *testing.T) {
		set := Extract([]models.ConsolidatedSession{
			session("match", map[string]float64{models.MetricTotalDistance: 9000}),
		}, "match")
		if _, ok := set.Peak(models.MetricMaxSpeed); ok {
			t.Error("max_speed peak resolved from no data")
		}
	})

	t.Run("no sessions yields an empty set", func(t *testing.T) {
		set := Extract(nil, "match")
		if set.Sessions != 0 || len(set.Peaks) != 0 {
			t.Errorf("got %d sessions, %d peaks, want 0/0", set.Sessions, len(set.Peaks))
		}
	})
}

// A session whose periods sum above its total row must still contribute
// its consolidated total, because consolidation already resolved the
// total-vs-periods precedence.
func TestExtractUsesConsolidatedValuesOnly(t *testing.T) {
	rec := func(period string, dist float64) models.NormalizedRecord {
		r := models.NormalizedRecord{AthleteID: "ath-1", SessionID: "s1"}
		r.SetMetric(models.MetricTotalDistance, dist)
		r.PeriodName = period
		return r
	}
	// total row says 12000 while its periods sum to 13000
	inflated := consolidate.Consolidate([]models.NormalizedRecord{
		rec("Session", 12000),
		rec("1st Half", 6500),
		rec("2nd Half", 6500),
	})
	inflated.ActivityType = "match"

	set := Extract([]models.ConsolidatedSession{
		session("match", map[string]float64{models.MetricTotalDistance: 10000}),
		*inflated,
	}, "match")
	if v, _ := set.Peak(models.MetricTotalDistance); v != 12000 {
		t.Errorf("peak total_distance = %g, want 12000 (never the 13000 period sum)", v)
	}
}
