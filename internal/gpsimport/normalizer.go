// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package gpsimport

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmaglio/pitchside/internal/logging"
	"github.com/jmaglio/pitchside/internal/manufacturer"
	"github.com/jmaglio/pitchside/internal/metrics"
	"github.com/jmaglio/pitchside/internal/models"
	"github.com/jmaglio/pitchside/internal/registry"
)

// kmhToMS divides km/h speeds down to m/s.
const kmhToMS = 3.6

// Normalizer maps raw parsed rows into canonical per-row documents:
// unit conversion, fallback derivation, date normalization, provenance
// tagging, and discarding of rows that carry no monitoring value.
type Normalizer struct {
	matcher      *manufacturer.Matcher
	registry     *registry.Registry
	coreSummable []string
}

// NewNormalizer creates a normalizer. coreSummable names the metrics
// whose collective absence gets a row discarded; an empty slice falls
// back to total_distance, high_intensity_distance and number_of_sprints.
func NewNormalizer(matcher *manufacturer.Matcher, reg *registry.Registry, coreSummable []string) *Normalizer {
	if len(coreSummable) == 0 {
		coreSummable = []string{
			models.MetricTotalDistance,
			models.MetricHighIntensityDistance,
			models.MetricNumberOfSprints,
		}
	}
	return &Normalizer{
		matcher:      matcher,
		registry:     reg,
		coreSummable: coreSummable,
	}
}

// Normalize converts every parsed row into a NormalizedRecord. Rows
// whose core summable metrics are all zero or absent are dropped, as
// are rows with an unparseable non-empty date. Metric values that fail
// registry range validation are omitted from the record rather than
// failing the row.
func (n *Normalizer) Normalize(res *models.ParseResult, athleteID, coachID string) []models.NormalizedRecord {
	if res == nil || !res.Success {
		return nil
	}

	profile, _ := n.matcher.Profile(manufacturer.ID(res.Manufacturer))
	source := "csv_import"
	device := ""
	speedInMS := false
	if profile != nil && profile.ID != manufacturer.Unknown {
		source = "csv_import_" + string(profile.ID)
		device = profile.DisplayName
		speedInMS = profile.SpeedInMetersPerSecond
	}

	records := make([]models.NormalizedRecord, 0, len(res.Rows))
	for i := range res.Rows {
		row := &res.Rows[i]

		date, ok := n.normalizeDate(row, res.Format.DateLayout)
		if !ok {
			metrics.RecordDrop("bad_date")
			continue
		}

		rec := models.NormalizedRecord{
			AthleteID:    athleteID,
			CoachID:      coachID,
			Date:         date,
			ActivityType: row.Text[models.FieldActivityType],
			SessionName:  row.Text[models.FieldSessionName],
			PeriodName:   row.PeriodName,
			Source:       source,
			Device:       device,
		}
		if rec.AthleteID == "" {
			rec.AthleteID = row.Text[models.FieldAthleteName]
		}

		n.applyMetrics(&rec, row, speedInMS)

		if n.allCoreSummableEmpty(&rec) {
			metrics.RecordDrop("empty_metrics")
			logging.Debug().Int("line", row.Line).Msg("Dropping row with no core metric values")
			continue
		}

		rec.SessionID = sessionID(rec.AthleteID, rec.Date, rec.SessionName)
		records = append(records, rec)
	}
	return records
}

// normalizeDate converts the row's raw date cell to ISO form. An empty
// cell is allowed (empty date); a populated cell that parses under no
// known layout fails the row.
func (n *Normalizer) normalizeDate(row *models.RawRow, layout string) (string, bool) {
	raw := row.Text[models.FieldSessionDate]
	if raw == "" {
		return "", true
	}
	if layout != "" {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	// the detected layout came from a single sample cell; individual
	// rows may still disagree, so fall back to the full candidate list
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	logging.Warn().Int("line", row.Line).Str("date", raw).Msg("Unparseable session date")
	return "", false
}

// applyMetrics copies the row's numeric values onto the record,
// converting max speed from km/h to m/s for vendors that report km/h
// and deriving high_speed_running from high_intensity_distance when the
// dedicated field is absent. Values outside the registry's declared
// range are omitted.
func (n *Normalizer) applyMetrics(rec *models.NormalizedRecord, row *models.RawRow, speedInMS bool) {
	for name, v := range row.Numbers {
		if name == models.MetricMaxSpeed && !speedInMS {
			v = v / kmhToMS
		}
		if err := n.registry.Validate(name, v); err != nil {
			logging.Debug().Int("line", row.Line).Str("metric", name).Float64("value", v).
				Err(err).Msg("Dropping out-of-range metric value")
			continue
		}
		rec.SetMetric(name, v)
	}

	if _, ok := rec.Metric(models.MetricHighSpeedRunning); !ok {
		if v, ok := rec.Metric(models.MetricHighIntensityDistance); ok {
			rec.SetMetric(models.MetricHighSpeedRunning, v)
		}
	}
}

// allCoreSummableEmpty reports whether every configured core summable
// metric is zero or absent.
func (n *Normalizer) allCoreSummableEmpty(rec *models.NormalizedRecord) bool {
	for _, name := range n.coreSummable {
		if v, ok := rec.Metric(name); ok && v != 0 {
			return false
		}
	}
	return true
}

// sessionID derives a deterministic UUID from the session identity so
// re-importing the same file produces the same session document instead
// of a duplicate.
func sessionID(athleteID, date, sessionName string) string {
	input := fmt.Sprintf("gps-import:%s:%s:%s", athleteID, date, sessionName)
	hash := sha256.Sum256([]byte(input))

	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		// cannot happen with 16 bytes of input
		return uuid.New().String()
	}

	// Set version 5 and variant bits
	id[6] = (id[6] & 0x0f) | 0x50
	id[8] = (id[8] & 0x3f) | 0x80

	return id.String()
}
