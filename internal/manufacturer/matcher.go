// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package manufacturer

import (
	"strings"
	"unicode"
)

// minSignatureScore is the minimum number of signature hits a profile
// needs before it can win detection. Below this everything is Unknown.
const minSignatureScore = 1

// Matcher holds the ordered profile set and answers detection and
// column-mapping queries. It is immutable after construction and safe
// for concurrent use.
type Matcher struct {
	profiles []Profile
	byID     map[ID]int
}

// NewMatcher builds a matcher over the built-in profiles plus any extra
// profiles (loaded from configuration). Extras are consulted after the
// built-ins but before the Unknown sentinel.
func NewMatcher(extra ...Profile) *Matcher {
	profiles := builtinProfiles()
	profiles = append(profiles, extra...)
	profiles = append(profiles, unknownProfile())

	m := &Matcher{
		profiles: profiles,
		byID:     make(map[ID]int, len(profiles)),
	}
	for i := range profiles {
		m.profiles[i].buildNormalized()
		if _, dup := m.byID[profiles[i].ID]; !dup {
			m.byID[profiles[i].ID] = i
		}
	}
	return m
}

// Profile returns the profile for the given vendor id.
func (m *Matcher) Profile(id ID) (*Profile, bool) {
	i, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return &m.profiles[i], true
}

// Detect inspects a file's column headers and returns the best-guess
// vendor identity. Scoring counts how many of a profile's signature
// substrings appear anywhere in the joined, lowercased column list; the
// highest score at or above the threshold wins, ties broken by profile
// declaration order. No match yields Unknown, never an error.
func (m *Matcher) Detect(columns []string) ID {
	if len(columns) == 0 {
		return Unknown
	}
	haystack := strings.ToLower(strings.Join(columns, "\x1f"))

	best := Unknown
	bestScore := 0
	for i := range m.profiles {
		p := &m.profiles[i]
		if p.ID == Unknown {
			continue
		}
		score := 0
		for _, sig := range p.Signatures {
			if strings.Contains(haystack, strings.ToLower(sig)) {
				score++
			}
		}
		// strict > keeps declaration order as the tiebreak
		if score >= minSignatureScore && score > bestScore {
			best = p.ID
			bestScore = score
		}
	}
	return best
}

// BuildMapping resolves each column to its canonical field through the
// alias table of the hinted (or detected) profile. Unmatched columns
// are dropped from the mapping; they are not errors at this layer.
func (m *Matcher) BuildMapping(columns []string, hint ID) map[string]string {
	if hint == "" {
		hint = m.Detect(columns)
	}
	profile, ok := m.Profile(hint)
	if !ok {
		profile, _ = m.Profile(Unknown)
	}

	mapping := make(map[string]string)
	for _, col := range columns {
		if target, ok := profile.aliasFor(col); ok {
			mapping[col] = target
		}
	}
	return mapping
}

// normalizeKey lowercases a column name and strips everything that is
// not a letter or digit, so "Total Distance (m)", "total_distance_m"
// and "TOTAL DISTANCE [M]" all share one alias key.
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
