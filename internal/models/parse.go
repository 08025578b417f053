// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package models

import "fmt"

// FileFormat records the per-file format decisions made by the parser.
// Detection is scoped to a single parse call; the struct is passed along
// to the normalizer instead of being cached anywhere process-wide.
type FileFormat struct {
	// Delimiter is the detected field delimiter (',' or ';').
	Delimiter rune `json:"delimiter"`

	// DecimalComma is true when the file writes decimals as "8200,5".
	DecimalComma bool `json:"decimal_comma"`

	// DateLayout is the Go time layout matched against the file's first
	// populated date cell, e.g. "2006-01-02" or "02/01/2006".
	DateLayout string `json:"date_layout"`

	// Encoding is the detected byte encoding: "utf-8", "utf-16le",
	// "utf-16be" or "windows-1252".
	Encoding string `json:"encoding"`
}

// RawRow is one parsed file row after alias resolution, keyed by
// canonical field name. Values that failed numeric conversion are absent
// from Numbers and reported as a RowError on the enclosing ParseResult.
type RawRow struct {
	// Line is the 1-based line number in the source file.
	Line int `json:"line"`

	// Numbers holds the numeric canonical metric values of the row.
	Numbers map[string]float64 `json:"numbers"`

	// Text holds non-numeric canonical fields (session_date,
	// session_name, activity_type, athlete_name).
	Text map[string]string `json:"text"`

	// PeriodName is the row's raw, unclassified period label.
	PeriodName string `json:"period_name"`

	// SessionKey is the raw session or player identifier from the file,
	// used to group rows belonging to one recording session.
	SessionKey string `json:"session_key"`
}

// Number returns the named numeric value and whether it was present.
func (r *RawRow) Number(name string) (float64, bool) {
	v, ok := r.Numbers[name]
	return v, ok
}

// RowError is a non-fatal, row-scoped parse diagnostic. In lenient mode
// these accumulate on the ParseResult instead of aborting the parse.
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult is the immutable outcome of parsing one uploaded file.
type ParseResult struct {
	// Success is false for empty input (zero bytes or no header row) or
	// for a strict-mode parse aborted by a row error.
	Success bool `json:"success"`

	// Manufacturer is the detected manufacturer identifier, "unknown"
	// when no vendor signature scored above the threshold.
	Manufacturer string `json:"manufacturer"`

	// Format holds the detected per-file format decisions.
	Format FileFormat `json:"format"`

	// Rows are the parsed rows in file order. Rows whose primary metric
	// is zero are included; empty-row filtering belongs to normalization.
	Rows []RawRow `json:"rows"`

	// TotalRows is the number of data lines seen, including lines that
	// produced a RowError instead of a RawRow.
	TotalRows int `json:"total_rows"`

	// RowErrors holds the per-row diagnostics. Never silently dropped;
	// the upload collaborator decides whether a partial parse is usable.
	RowErrors []RowError `json:"row_errors,omitempty"`
}
