// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package gpsimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names recorded on models.FileFormat.
const (
	encodingUTF8        = "utf-8"
	encodingUTF16LE     = "utf-16le"
	encodingUTF16BE     = "utf-16be"
	encodingWindows1252 = "windows-1252"
)

// dateLayouts are tried in order against the file's first populated
// date cell. DD/MM comes before MM/DD: the supported vendors are
// predominantly European, so an ambiguous cell like 03/04/2026 reads as
// 3 April.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02.01.2006",
}

// decodeBytes decodes an export file to a UTF-8 string, detecting the
// source encoding by BOM, then by UTF-8 validity, with Windows-1252 as
// the fallback for legacy single-byte exports.
func decodeBytes(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}):
		return string(data[3:]), encodingUTF8, nil
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", encodingUTF16LE, fmt.Errorf("decode utf-16le: %w", err)
		}
		return string(out), encodingUTF16LE, nil
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", encodingUTF16BE, fmt.Errorf("decode utf-16be: %w", err)
		}
		return string(out), encodingUTF16BE, nil
	case utf8.Valid(data):
		return string(data), encodingUTF8, nil
	default:
		dec := charmap.Windows1252.NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", encodingWindows1252, fmt.Errorf("decode windows-1252: %w", err)
		}
		return string(out), encodingWindows1252, nil
	}
}

// delimiterCandidates in trial order.
var delimiterCandidates = []rune{',', ';'}

// detectDelimiter picks the candidate delimiter that yields a
// consistent multi-column count across the first several lines. When
// both candidates qualify the one producing more columns wins, since a
// file delimited by one character rarely splits consistently on the
// other. Falls back to comma.
func detectDelimiter(text string) rune {
	lines := sampleLines(text, 8)
	best := ','
	bestCols := 0
	for _, cand := range delimiterCandidates {
		cols, consistent := columnCount(lines, cand)
		if consistent && cols > 1 && cols > bestCols {
			best = cand
			bestCols = cols
		}
	}
	return best
}

// sampleLines returns up to n non-empty lines from the start of text.
func sampleLines(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}

// columnCount parses each sample line as CSV with the candidate
// delimiter and reports the shared column count, if consistent.
func columnCount(lines []string, delim rune) (int, bool) {
	count := 0
	for i, line := range lines {
		r := csv.NewReader(strings.NewReader(line))
		r.Comma = delim
		fields, err := r.Read()
		if err != nil {
			return 0, false
		}
		if i == 0 {
			count = len(fields)
			continue
		}
		if len(fields) != count {
			return 0, false
		}
	}
	return count, count > 0
}

// decimalCommaPattern matches a numeric cell written with a decimal
// comma: digits, one comma, one or two fraction digits.
var decimalCommaPattern = regexp.MustCompile(`^-?\d+,\d{1,2}$`)

// detectDecimalComma decides, per file, whether comma is the decimal
// separator. A single dot-decimal cell rules it out; otherwise any cell
// matching the comma pattern rules it in.
func detectDecimalComma(cells []string) bool {
	sawCommaDecimal := false
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if strings.Contains(cell, ".") {
			return false
		}
		if decimalCommaPattern.MatchString(cell) {
			sawCommaDecimal = true
		}
	}
	return sawCommaDecimal
}

// detectDateLayout returns the first layout that parses the cell, or
// empty string when none does.
func detectDateLayout(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return layout
		}
	}
	return ""
}
