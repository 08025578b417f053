// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package consolidate

import (
	"testing"

	"github.com/jmaglio/pitchside/internal/models"
)

// record builds a NormalizedRecord for one session row.
func record(periodName string, metrics map[string]float64) models.NormalizedRecord {
	r := models.NormalizedRecord{
		AthleteID:   "ath-1",
		Date:        "2026-03-14",
		SessionID:   "sess-1",
		SessionName: "Match vs Rovers",
		PeriodName:  periodName,
		Source:      "csv_import_catapult",
		Device:      "Catapult",
	}
	for k, v := range metrics {
		r.SetMetric(k, v)
	}
	return r
}

func TestConsolidateEmptyInput(t *testing.T) {
	if got := Consolidate(nil); got != nil {
		t.Errorf("Consolidate(nil) = %v, want nil", got)
	}
	if got := Consolidate([]models.NormalizedRecord{}); got != nil {
		t.Errorf("Consolidate(empty) = %v, want nil", got)
	}
}

func TestConsolidateSingleRecordIsItsOwnTotal(t *testing.T) {
	// Even with a period-looking label, a lone record is the session.
	s := Consolidate([]models.NormalizedRecord{
		record("1st Half", map[string]float64{
			models.MetricTotalDistance: 5200,
			models.MetricMaxSpeed:      7.9,
		}),
	})
	if s == nil {
		t.Fatal("Consolidate returned nil")
	}
	if !s.HasSessionTotal {
		t.Error("HasSessionTotal = false, want true for a single record")
	}
	if len(s.Periods) != 0 {
		t.Errorf("Periods = %v, want empty", s.Periods)
	}
	if v, _ := s.Metric(models.MetricTotalDistance); v != 5200 {
		t.Errorf("total_distance = %g, want 5200", v)
	}
}

func TestConsolidateTotalRowWins(t *testing.T) {
	t.Run("total row value used even when it equals the period sum", func(t *testing.T) {
		s := Consolidate([]models.NormalizedRecord{
			record("Session", map[string]float64{models.MetricTotalDistance: 10000}),
			record("1st Half", map[string]float64{models.MetricTotalDistance: 5000}),
			record("2nd Half", map[string]float64{models.MetricTotalDistance: 5000}),
		})
		if v, _ := s.Metric(models.MetricTotalDistance); v != 10000 {
			t.Errorf("total_distance = %g, want 10000", v)
		}
		if !s.HasSessionTotal {
			t.Error("HasSessionTotal = false, want true")
		}
		if len(s.Periods) != 2 {
			t.Errorf("Periods = %d entries, want 2 (total row excluded)", len(s.Periods))
		}
	})

	t.Run("total row value used when it differs from the period sum", func(t *testing.T) {
		s := Consolidate([]models.NormalizedRecord{
			record("Total", map[string]float64{models.MetricTotalDistance: 12000}),
			record("1st Half", map[string]float64{models.MetricTotalDistance: 6000}),
			record("2nd Half", map[string]float64{models.MetricTotalDistance: 5000}),
		})
		if v, _ := s.Metric(models.MetricTotalDistance); v != 12000 {
			t.Errorf("total_distance = %g, want 12000 (never the 11000 period sum)", v)
		}
	})

	t.Run("first of several total rows wins", func(t *testing.T) {
		s := Consolidate([]models.NormalizedRecord{
			record("Session", map[string]float64{models.MetricTotalDistance: 9800, models.MetricMaxSpeed: 7.2}),
			record("Summary", map[string]float64{models.MetricTotalDistance: 9900, models.MetricMaxSpeed: 8.4}),
			record("1st Half", map[string]float64{models.MetricTotalDistance: 4900}),
		})
		if v, _ := s.Metric(models.MetricTotalDistance); v != 9800 {
			t.Errorf("total_distance = %g, want 9800 (first total row)", v)
		}
		if len(s.Periods) != 1 {
			t.Errorf("Periods = %d entries, want 1 (neither total row embedded)", len(s.Periods))
		}
		// the losing total row still contributes to maxima
		if v, _ := s.Metric(models.MetricMaxSpeed); v != 8.4 {
			t.Errorf("max_speed = %g, want 8.4", v)
		}
	})
}

func TestConsolidateSumsWithoutTotalRow(t *testing.T) {
	s := Consolidate([]models.NormalizedRecord{
		record("1st Half", map[string]float64{
			models.MetricTotalDistance:   5200,
			models.MetricNumberOfSprints: 11,
		}),
		record("2nd Half", map[string]float64{
			models.MetricTotalDistance:   4800,
			models.MetricNumberOfSprints: 9,
		}),
	})
	if s.HasSessionTotal {
		t.Error("HasSessionTotal = true, want false")
	}
	if v, _ := s.Metric(models.MetricTotalDistance); v != 10000 {
		t.Errorf("total_distance = %g, want 10000", v)
	}
	if v, _ := s.Metric(models.MetricNumberOfSprints); v != 20 {
		t.Errorf("number_of_sprints = %g, want 20", v)
	}
	if len(s.Periods) != 2 {
		t.Errorf("Periods = %d entries, want 2", len(s.Periods))
	}
}

func TestConsolidateTotalHalvesAreSummedNotDeduplicated(t *testing.T) {
	// "Total 1st Half" and "Total 2nd Half" classify as periods, so the
	// session total is their sum, not either value alone.
	s := Consolidate([]models.NormalizedRecord{
		record("Total 1st Half", map[string]float64{models.MetricTotalDistance: 5100}),
		record("Total 2nd Half", map[string]float64{models.MetricTotalDistance: 4700}),
	})
	if s.HasSessionTotal {
		t.Error("HasSessionTotal = true, want false")
	}
	if v, _ := s.Metric(models.MetricTotalDistance); v != 9800 {
		t.Errorf("total_distance = %g, want 9800", v)
	}
}

func TestConsolidateMaxMetricsSpanAllRows(t *testing.T) {
	t.Run("period rows can beat the total row's max", func(t *testing.T) {
		s := Consolidate([]models.NormalizedRecord{
			record("Session", map[string]float64{
				models.MetricTotalDistance: 10000,
				models.MetricMaxSpeed:      8.0,
			}),
			record("1st Half", map[string]float64{models.MetricMaxSpeed: 9.5}),
			record("2nd Half", map[string]float64{models.MetricMaxSpeed: 8.5}),
		})
		if v, _ := s.Metric(models.MetricMaxSpeed); v != 9.5 {
			t.Errorf("max_speed = %g, want 9.5 (max over all rows)", v)
		}
		// summables still came from the total row
		if v, _ := s.Metric(models.MetricTotalDistance); v != 10000 {
			t.Errorf("total_distance = %g, want 10000", v)
		}
	})

	t.Run("total row can hold the max while periods supply sums", func(t *testing.T) {
		s := Consolidate([]models.NormalizedRecord{
			record("1st Half", map[string]float64{
				models.MetricTotalDistance: 5000,
				models.MetricMaxSpeed:      8.2,
			}),
			record("2nd Half", map[string]float64{
				models.MetricTotalDistance: 5000,
				models.MetricMaxSpeed:      7.4,
			}),
		})
		if v, _ := s.Metric(models.MetricMaxSpeed); v != 8.2 {
			t.Errorf("max_speed = %g, want 8.2", v)
		}
	})
}

func TestConsolidateMissingValuesDegradeToZero(t *testing.T) {
	// A period row without the metric contributes nothing; consolidation
	// never fails over absent data.
	s := Consolidate([]models.NormalizedRecord{
		record("1st Half", map[string]float64{models.MetricTotalDistance: 5000}),
		record("2nd Half", nil),
	})
	if v, _ := s.Metric(models.MetricTotalDistance); v != 5000 {
		t.Errorf("total_distance = %g, want 5000", v)
	}
	if _, ok := s.Metric(models.MetricMaxSpeed); ok {
		t.Error("max_speed resolved from no data")
	}
	if len(s.Periods) != 2 {
		t.Errorf("Periods = %d entries, want 2", len(s.Periods))
	}
}

func TestConsolidateIdentityFieldsComeFromFirstRecord(t *testing.T) {
	s := Consolidate([]models.NormalizedRecord{
		record("1st Half", map[string]float64{models.MetricTotalDistance: 1}),
		record("2nd Half", map[string]float64{models.MetricTotalDistance: 2}),
	})
	if s.SessionID != "sess-1" || s.AthleteID != "ath-1" || s.Date != "2026-03-14" {
		t.Errorf("identity fields = %s/%s/%s", s.SessionID, s.AthleteID, s.Date)
	}
	if s.Device != "Catapult" {
		t.Errorf("Device = %s, want Catapult", s.Device)
	}
}
