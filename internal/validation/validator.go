// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

// Package validation provides struct validation using go-playground/validator v10.
// It exposes a thread-safe singleton validator instance with custom validators
// for application-specific rules.
//
// Custom tags:
//   - metricname: the string must be a canonical metric name
//   - isodate:    the string must be an ISO calendar date (2006-01-02)
//
// Example usage:
//
//	type ImportConfig struct {
//	    CoreSummableMetrics []string `validate:"min=1,dive,metricname"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    // err is a *StructError listing every failed field
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmaglio/pitchside/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error returns a human-readable message for the failure.
func (e FieldError) Error() string {
	return e.Message
}

// StructError collects every field failure from one ValidateStruct call.
type StructError struct {
	fields []FieldError
}

// Fields returns the individual field failures.
func (e *StructError) Fields() []FieldError {
	return e.fields
}

// Error implements the error interface.
func (e *StructError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// getValidator returns the singleton, creating it on first use.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// metricname: member of the canonical metric vocabulary.
		_ = validate.RegisterValidation("metricname", func(fl validator.FieldLevel) bool {
			return models.IsMetricName(fl.Field().String())
		})

		// isodate: ISO calendar date, the normalized session_date form.
		_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateStruct validates a struct using its `validate` tags. It
// returns nil on success and a *StructError describing every failed
// field otherwise.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("invalid validation target: %w", err)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &StructError{fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.fields = append(out.fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldMessage builds a readable message for one field failure.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %s is required", fe.Field())
	case "min":
		return fmt.Sprintf("field %s must have at least %s entries or be at least %s", fe.Field(), fe.Param(), fe.Param())
	case "max":
		return fmt.Sprintf("field %s must have at most %s entries or be at most %s", fe.Field(), fe.Param(), fe.Param())
	case "oneof":
		return fmt.Sprintf("field %s must be one of: %s", fe.Field(), fe.Param())
	case "metricname":
		return fmt.Sprintf("field %s must be a canonical metric name, got %q", fe.Field(), fe.Value())
	case "isodate":
		return fmt.Sprintf("field %s must be an ISO date (2006-01-02), got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("field %s failed validation %s", fe.Field(), fe.Tag())
	}
}
