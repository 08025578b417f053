// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package gpsimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmaglio/pitchside/internal/logging"
	"github.com/jmaglio/pitchside/internal/manufacturer"
	"github.com/jmaglio/pitchside/internal/models"
)

// Parser turns raw export file bytes into a ParseResult. It holds no
// per-file state; format detection is scoped to each Parse call.
type Parser struct {
	matcher *manufacturer.Matcher
}

// NewParser creates a parser resolving vendors through the given matcher.
func NewParser(matcher *manufacturer.Matcher) *Parser {
	return &Parser{matcher: matcher}
}

// Parse reads one export file. Empty input (zero bytes or no header
// row) yields Success=false with a nil error. In lenient mode row-level
// problems accumulate as RowErrors on the result; in strict mode the
// first row error aborts the parse and is returned as the error.
func (p *Parser) Parse(data []byte, strict bool) (*models.ParseResult, error) {
	res := &models.ParseResult{
		Manufacturer: string(manufacturer.Unknown),
	}
	if len(data) == 0 {
		return res, nil
	}

	text, encName, err := decodeBytes(data)
	if err != nil {
		return res, fmt.Errorf("decode input: %w", err)
	}
	res.Format.Encoding = encName
	if strings.TrimSpace(text) == "" {
		return res, nil
	}

	res.Format.Delimiter = detectDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = res.Format.Delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return res, nil
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := readRecords(r)
	if err != nil {
		return res, fmt.Errorf("read rows: %w", err)
	}
	if len(records) == 0 {
		// header-only files are empty input; no manufacturer is reported
		return res, nil
	}

	id := p.matcher.Detect(header)
	res.Manufacturer = string(id)
	mapping := p.matcher.BuildMapping(header, id)

	res.Format.DecimalComma = detectDecimalComma(metricCells(header, mapping, records))
	res.Format.DateLayout = detectDateLayout(firstDateCell(header, mapping, records))

	for i, record := range records {
		line := i + 2 // header is line 1
		res.TotalRows++
		row, rowErrs := p.mapRow(line, header, mapping, record, res.Format.DecimalComma)
		if len(rowErrs) > 0 {
			if strict {
				res.RowErrors = append(res.RowErrors, rowErrs[0])
				return res, rowErrs[0]
			}
			res.RowErrors = append(res.RowErrors, rowErrs...)
		}
		res.Rows = append(res.Rows, row)
	}

	res.Success = true
	logging.Debug().
		Str("manufacturer", res.Manufacturer).
		Str("encoding", res.Format.Encoding).
		Str("date_layout", res.Format.DateLayout).
		Bool("decimal_comma", res.Format.DecimalComma).
		Int("rows", len(res.Rows)).
		Int("row_errors", len(res.RowErrors)).
		Msg("Parsed export file")
	return res, nil
}

// mapRow resolves one CSV record into a RawRow through the column
// mapping. Cells whose column has no canonical mapping are dropped.
// Rows with a primary metric of zero are kept; empty-row filtering is a
// normalization concern.
func (p *Parser) mapRow(line int, header []string, mapping map[string]string, record []string, decimalComma bool) (models.RawRow, []models.RowError) {
	row := models.RawRow{
		Line:    line,
		Numbers: make(map[string]float64),
		Text:    make(map[string]string),
	}
	var errs []models.RowError

	for i, col := range header {
		if i >= len(record) {
			errs = append(errs, models.RowError{
				Line: line, Column: col, Message: "missing cell",
			})
			continue
		}
		canonical, ok := mapping[col]
		if !ok {
			continue
		}
		cell := strings.TrimSpace(record[i])
		if cell == "" {
			continue
		}
		switch {
		case canonical == models.FieldPeriodName:
			row.PeriodName = cell
		case models.IsMetricName(canonical):
			v, err := parseNumber(cell, decimalComma)
			if err != nil {
				errs = append(errs, models.RowError{
					Line: line, Column: col,
					Message: fmt.Sprintf("invalid number %q", cell),
				})
				continue
			}
			row.Numbers[canonical] = v
		default:
			row.Text[canonical] = cell
		}
	}

	row.SessionKey = sessionKey(row)
	return row, errs
}

// sessionKey groups rows belonging to one recording session: same
// athlete, same date, same session name.
func sessionKey(row models.RawRow) string {
	return strings.Join([]string{
		row.Text[models.FieldAthleteName],
		row.Text[models.FieldSessionDate],
		row.Text[models.FieldSessionName],
	}, "\x1f")
}

// parseNumber converts a numeric cell respecting the detected decimal
// separator.
func parseNumber(cell string, decimalComma bool) (float64, error) {
	if decimalComma {
		cell = strings.ReplaceAll(cell, ",", ".")
	}
	return strconv.ParseFloat(cell, 64)
}

// readRecords drains the CSV reader.
func readRecords(r *csv.Reader) ([][]string, error) {
	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// metricCells collects every cell under a metric-mapped column, the
// population the decimal-separator decision is made from.
func metricCells(header []string, mapping map[string]string, records [][]string) []string {
	var cells []string
	for i, col := range header {
		canonical, ok := mapping[col]
		if !ok || !models.IsMetricName(canonical) {
			continue
		}
		for _, record := range records {
			if i < len(record) {
				cells = append(cells, record[i])
			}
		}
	}
	return cells
}

// firstDateCell returns the first populated cell under a date-mapped
// column, scanning in row order.
func firstDateCell(header []string, mapping map[string]string, records [][]string) string {
	for i, col := range header {
		if mapping[col] != models.FieldSessionDate {
			continue
		}
		for _, record := range records {
			if i < len(record) && strings.TrimSpace(record[i]) != "" {
				return record[i]
			}
		}
	}
	return ""
}
