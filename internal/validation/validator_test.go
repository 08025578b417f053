// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package validation

import (
	"errors"
	"testing"
)

type sampleConfig struct {
	Name    string   `validate:"required"`
	Metrics []string `validate:"min=1,dive,metricname"`
	Date    string   `validate:"omitempty,isodate"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		cfg := sampleConfig{
			Name:    "import",
			Metrics: []string{"total_distance", "number_of_sprints"},
			Date:    "2026-03-14",
		}
		if err := ValidateStruct(&cfg); err != nil {
			t.Fatalf("ValidateStruct = %v, want nil", err)
		}
	})

	t.Run("collects every failed field", func(t *testing.T) {
		cfg := sampleConfig{
			Metrics: []string{"heart_rate"},
			Date:    "14/03/2026",
		}
		err := ValidateStruct(&cfg)
		if err == nil {
			t.Fatal("ValidateStruct = nil, want error")
		}
		var serr *StructError
		if !errors.As(err, &serr) {
			t.Fatalf("error type = %T, want *StructError", err)
		}
		if len(serr.Fields()) != 3 {
			t.Errorf("Fields() = %d failures (%v), want 3", len(serr.Fields()), serr)
		}
	})

	t.Run("metricname rejects non-canonical names", func(t *testing.T) {
		cfg := sampleConfig{Name: "x", Metrics: []string{"player_load"}}
		if err := ValidateStruct(&cfg); err == nil {
			t.Error("ValidateStruct accepted a non-canonical metric name")
		}
	})

	t.Run("isodate rejects impossible dates", func(t *testing.T) {
		cfg := sampleConfig{Name: "x", Metrics: []string{"max_speed"}, Date: "2026-13-01"}
		if err := ValidateStruct(&cfg); err == nil {
			t.Error("ValidateStruct accepted month 13")
		}
	})
}
