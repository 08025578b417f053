// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package consolidate

import "strings"

// Classification says what kind of session row a period label denotes.
type Classification string

// Row classifications.
const (
	// ClassSessionTotal marks a row carrying whole-session aggregates.
	ClassSessionTotal Classification = "session_total"

	// ClassPeriod marks a row carrying one sub-interval of the session.
	// It is also the default for ambiguous or empty labels.
	ClassPeriod Classification = "period"
)

// periodKeywords mark a label as describing a sub-interval of a
// session: half/quarter ordinals, tempo forms used by Spanish and
// Italian exports, and drill/segment vocabulary. Maintained data, not
// derived — extend here when a new vendor vocabulary shows up.
var periodKeywords = []string{
	"1st", "2nd", "3rd", "4th",
	"first", "second", "third", "fourth",
	"half", "quarter", "period",
	"1er", "2do", "primer", "segundo",
	"tiempo", "periodo", "período", "mitad", "parte",
	"tempo", "halbzeit",
	"drill", "block", "segment", "set", "phase",
	"q1", "q2", "q3", "q4",
	"overtime", "prorroga", "prórroga",
	"warm", "calentamiento",
}

// totalKeywords mark a label as describing the whole session. Kept to
// words long enough that substring matching cannot fire inside an
// unrelated label.
var totalKeywords = []string{
	"session", "total", "full", "complete", "summary",
	"match", "game", "overall", "entire",
	"sesion", "sesión", "completo", "partido", "resumen",
	"totale", "gesamt", "spiel",
}

// Classify decides whether a period label denotes the session-total row
// or a period row.
//
// The precedence rule is explicit: any period keyword forces
// ClassPeriod even when a total keyword is also present, because
// "Total 1st Half" is a cumulative-within-period figure. A bare total
// keyword yields ClassSessionTotal. Anything else — including an empty
// label — defaults to ClassPeriod.
func Classify(periodName string) Classification {
	name := strings.ToLower(strings.TrimSpace(periodName))
	if name == "" {
		return ClassPeriod
	}

	for _, kw := range periodKeywords {
		if strings.Contains(name, kw) {
			return ClassPeriod
		}
	}
	for _, kw := range totalKeywords {
		if strings.Contains(name, kw) {
			return ClassSessionTotal
		}
	}
	return ClassPeriod
}
