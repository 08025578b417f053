// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package manufacturer

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/jmaglio/pitchside/internal/models"
	"github.com/jmaglio/pitchside/internal/validation"
)

// ID identifies a supported GPS hardware vendor.
type ID string

// Supported vendor identifiers, in detection precedence order.
const (
	Catapult     ID = "catapult"
	STATSports   ID = "statsports"
	PolarTeamPro ID = "polar_team_pro"
	GPEXE        ID = "gpexe"
	WIMU         ID = "wimu"

	// Unknown is the sentinel profile: empty alias table, never detected,
	// returned when no vendor signature scores above the threshold.
	Unknown ID = "unknown"
)

// Profile declares one vendor: how to recognize its exports and how its
// column names map onto canonical fields. Profiles are data, not code.
type Profile struct {
	ID          ID     `json:"id" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`

	// Signatures are the substrings whose presence in a header row marks
	// this vendor's exports. Distinctive strings (product names, vendor
	// vocabulary) keep false positives out.
	Signatures []string `json:"signatures" validate:"min=1,dive,required"`

	// Aliases maps vendor column names to canonical field names. Keys
	// are matched case- and punctuation-insensitively.
	Aliases map[string]string `json:"aliases" validate:"required"`

	// SpeedInMetersPerSecond marks vendors that already report speeds in
	// m/s; everyone else reports km/h and gets converted downstream.
	SpeedInMetersPerSecond bool `json:"speed_in_mps,omitempty"`

	// normalized caches the alias table under normalized keys.
	normalized map[string]string
}

// buildNormalized caches the alias table under normalized keys. The
// matcher calls this once at construction so lookups stay read-only.
func (p *Profile) buildNormalized() {
	p.normalized = make(map[string]string, len(p.Aliases))
	for key, target := range p.Aliases {
		p.normalized[normalizeKey(key)] = target
	}
}

// aliasFor resolves a raw column name through the alias table.
func (p *Profile) aliasFor(column string) (string, bool) {
	target, ok := p.normalized[normalizeKey(column)]
	return target, ok
}

// builtinProfiles returns the built-in vendor profiles in declaration
// order (more specific first; Unknown is appended by the matcher).
//
// The alias tables reflect the column vocabularies of each vendor's CSV
// export. WIMU exports are Spanish-labelled; Polar mixes sentence-case
// English with unit suffixes.
func builtinProfiles() []Profile {
	return []Profile{
		{
			ID:          Catapult,
			DisplayName: "Catapult",
			Signatures:  []string{"openfield", "player load", "velocity band", "catapult"},
			Aliases: map[string]string{
				"Player Name":                     models.FieldAthleteName,
				"Date":                            models.FieldSessionDate,
				"Session Name":                    models.FieldSessionName,
				"Activity Name":                   models.FieldSessionName,
				"Period Name":                     models.FieldPeriodName,
				"Activity Type":                   models.FieldActivityType,
				"Total Distance (m)":              models.MetricTotalDistance,
				"Velocity Band 4+ Total Distance": models.MetricHighIntensityDistance,
				"Velocity Band 5+ Total Distance": models.MetricHighSpeedRunning,
				"Velocity Band 6+ Total Distance": models.MetricSprintDistance,
				"Sprint Efforts":                  models.MetricNumberOfSprints,
				"Acceleration Efforts":            models.MetricNumberOfAccelerations,
				"Deceleration Efforts":            models.MetricNumberOfDecelerations,
				"Max Velocity (km/h)":             models.MetricMaxSpeed,
				"Max Acceleration":                models.MetricMaxAcceleration,
				"Max Deceleration":                models.MetricMaxDeceleration,
			},
		},
		{
			ID:          STATSports,
			DisplayName: "STATSports",
			Signatures:  []string{"statsports", "sonra", "drill title", "hsr distance"},
			Aliases: map[string]string{
				"Player Display Name":     models.FieldAthleteName,
				"Session Date":            models.FieldSessionDate,
				"Session Title":           models.FieldSessionName,
				"Drill Title":             models.FieldPeriodName,
				"Session Type":            models.FieldActivityType,
				"Total Distance":          models.MetricTotalDistance,
				"High Intensity Distance": models.MetricHighIntensityDistance,
				"HSR Distance":            models.MetricHighSpeedRunning,
				"Sprint Distance":         models.MetricSprintDistance,
				"No of Sprints":           models.MetricNumberOfSprints,
				"Accelerations":           models.MetricNumberOfAccelerations,
				"Decelerations":           models.MetricNumberOfDecelerations,
				"Max Speed (km/h)":        models.MetricMaxSpeed,
				"Max Acceleration":        models.MetricMaxAcceleration,
				"Max Deceleration":        models.MetricMaxDeceleration,
			},
		},
		{
			ID:          PolarTeamPro,
			DisplayName: "Polar Team Pro",
			Signatures:  []string{"polar", "phase name", "speed zone"},
			Aliases: map[string]string{
				"Player name":                  models.FieldAthleteName,
				"Session date":                 models.FieldSessionDate,
				"Session name":                 models.FieldSessionName,
				"Phase name":                   models.FieldPeriodName,
				"Session type":                 models.FieldActivityType,
				"Total distance (m)":           models.MetricTotalDistance,
				"Distance in Speed zone 4 (m)": models.MetricHighIntensityDistance,
				"Distance in Speed zone 5 (m)": models.MetricHighSpeedRunning,
				"Sprint distance (m)":          models.MetricSprintDistance,
				"Sprints":                      models.MetricNumberOfSprints,
				"Number of accelerations":      models.MetricNumberOfAccelerations,
				"Number of decelerations":      models.MetricNumberOfDecelerations,
				"Maximum speed (km/h)":         models.MetricMaxSpeed,
				"Maximum acceleration (m/s2)":  models.MetricMaxAcceleration,
				"Maximum deceleration (m/s2)":  models.MetricMaxDeceleration,
			},
		},
		{
			ID:                     GPEXE,
			DisplayName:            "GPEXE",
			Signatures:             []string{"gpexe", "equivalent distance", "metabolic power"},
			SpeedInMetersPerSecond: true,
			Aliases: map[string]string{
				"athlete":                  models.FieldAthleteName,
				"date":                     models.FieldSessionDate,
				"session":                  models.FieldSessionName,
				"drill":                    models.FieldPeriodName,
				"category":                 models.FieldActivityType,
				"total distance":           models.MetricTotalDistance,
				"equivalent distance":      models.MetricHighIntensityDistance,
				"speed > 5.5 m/s distance": models.MetricHighSpeedRunning,
				"sprint distance":          models.MetricSprintDistance,
				"sprints":                  models.MetricNumberOfSprints,
				"acc events":               models.MetricNumberOfAccelerations,
				"dec events":               models.MetricNumberOfDecelerations,
				"max speed":                models.MetricMaxSpeed,
				"max acc":                  models.MetricMaxAcceleration,
				"max dec":                  models.MetricMaxDeceleration,
			},
		},
		{
			ID:          WIMU,
			DisplayName: "WIMU Pro",
			Signatures:  []string{"wimu", "jugador", "distancia total"},
			Aliases: map[string]string{
				"Jugador":                   models.FieldAthleteName,
				"Fecha":                     models.FieldSessionDate,
				"Sesión":                    models.FieldSessionName,
				"Periodo":                   models.FieldPeriodName,
				"Tipo":                      models.FieldActivityType,
				"Distancia Total":           models.MetricTotalDistance,
				"Distancia Alta Intensidad": models.MetricHighIntensityDistance,
				"Distancia Sprint":          models.MetricSprintDistance,
				"Sprints":                   models.MetricNumberOfSprints,
				"Aceleraciones":             models.MetricNumberOfAccelerations,
				"Deceleraciones":            models.MetricNumberOfDecelerations,
				"Velocidad Máxima (km/h)":   models.MetricMaxSpeed,
				"Aceleración Máxima":        models.MetricMaxAcceleration,
				"Deceleración Máxima":       models.MetricMaxDeceleration,
			},
		},
	}
}

// unknownProfile is the sentinel returned when detection finds nothing.
func unknownProfile() Profile {
	return Profile{
		ID:          Unknown,
		DisplayName: "",
		Aliases:     map[string]string{},
	}
}

// LoadProfiles reads additional vendor profiles from a JSON file. The
// file holds an array of Profile objects; each is validated before use
// so a malformed profile fails loudly at startup instead of silently
// mapping nothing.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles file %s: %w", path, err)
	}

	for i := range profiles {
		if err := validation.ValidateStruct(&profiles[i]); err != nil {
			return nil, fmt.Errorf("profile %q: %w", profiles[i].ID, err)
		}
		for _, target := range profiles[i].Aliases {
			if !models.IsMetricName(target) && !isTextField(target) {
				return nil, fmt.Errorf("profile %q: alias target %q is not a canonical field", profiles[i].ID, target)
			}
		}
	}
	return profiles, nil
}

// isTextField reports whether target is a canonical non-metric field.
func isTextField(target string) bool {
	switch target {
	case models.FieldSessionDate, models.FieldSessionName, models.FieldPeriodName,
		models.FieldAthleteName, models.FieldActivityType:
		return true
	}
	return false
}
