// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package registry

import (
	"errors"
	"fmt"

	"github.com/jmaglio/pitchside/internal/models"
)

// Category groups related metrics for reporting and threshold handling.
type Category string

// Metric categories. Every canonical metric belongs to exactly one.
const (
	CategoryDistance     Category = "distance"
	CategoryCount        Category = "count"
	CategorySpeed        Category = "speed"
	CategoryAcceleration Category = "acceleration"
)

// ErrUnknownMetric is returned when a metric name is not registered.
var ErrUnknownMetric = errors.New("unknown metric")

// RangeReason says which bound a value violated.
type RangeReason string

// Range violation reasons.
const (
	BelowMinimum RangeReason = "below_minimum"
	AboveMaximum RangeReason = "above_maximum"
)

// RangeError reports a value outside a metric's declared range.
type RangeError struct {
	Metric string
	Value  float64
	Bound  float64
	Reason RangeReason
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	switch e.Reason {
	case BelowMinimum:
		return fmt.Sprintf("metric %s: value %g below minimum %g", e.Metric, e.Value, e.Bound)
	default:
		return fmt.Sprintf("metric %s: value %g above maximum %g", e.Metric, e.Value, e.Bound)
	}
}

// CanonicalMetric is one entry of the fixed metric vocabulary.
type CanonicalMetric struct {
	// Name is the unique canonical key, e.g. "total_distance".
	Name string

	// Required marks the minimum fields a row must resolve to count as
	// a usable data point.
	Required bool

	// Min and Max bound the valid numeric range, inclusive.
	Min float64
	Max float64

	// Category is the metric's single category tag.
	Category Category
}

// Registry is the immutable canonical metric registry.
type Registry struct {
	metrics map[string]CanonicalMetric
	order   []string
}

// New builds a registry from the given definitions. It panics when a
// metric is defined twice or carries no category: the vocabulary is
// fixed at process start and such a definition is a programmer error.
func New(defs []CanonicalMetric) *Registry {
	r := &Registry{metrics: make(map[string]CanonicalMetric, len(defs))}
	for _, def := range defs {
		if def.Category == "" {
			panic(fmt.Sprintf("registry: metric %s has no category", def.Name))
		}
		if _, dup := r.metrics[def.Name]; dup {
			panic(fmt.Sprintf("registry: metric %s defined twice", def.Name))
		}
		r.metrics[def.Name] = def
		r.order = append(r.order, def.Name)
	}
	return r
}

// Default returns the registry for the full canonical vocabulary.
//
// Ranges are generous sanity bounds for a single tracked session, not
// physiological targets: they exist to reject corrupted values (negative
// distances, a max speed beyond anything a sprinting human produces),
// not to second-guess real data.
func Default() *Registry {
	return New([]CanonicalMetric{
		{Name: models.MetricTotalDistance, Required: true, Min: 0, Max: 100000, Category: CategoryDistance},
		{Name: models.MetricHighIntensityDistance, Min: 0, Max: 30000, Category: CategoryDistance},
		{Name: models.MetricHighSpeedRunning, Min: 0, Max: 30000, Category: CategoryDistance},
		{Name: models.MetricSprintDistance, Min: 0, Max: 10000, Category: CategoryDistance},
		{Name: models.MetricNumberOfSprints, Min: 0, Max: 500, Category: CategoryCount},
		{Name: models.MetricNumberOfAccelerations, Min: 0, Max: 1000, Category: CategoryCount},
		{Name: models.MetricNumberOfDecelerations, Min: 0, Max: 1000, Category: CategoryCount},
		{Name: models.MetricMaxSpeed, Min: 0, Max: 13, Category: CategorySpeed}, // m/s
		{Name: models.MetricMaxAcceleration, Min: 0, Max: 20, Category: CategoryAcceleration},
		{Name: models.MetricMaxDeceleration, Min: -20, Max: 20, Category: CategoryAcceleration},
	})
}

// Validate checks a value against the named metric's declared range.
func (r *Registry) Validate(name string, value float64) error {
	m, ok := r.metrics[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	if value < m.Min {
		return &RangeError{Metric: name, Value: value, Bound: m.Min, Reason: BelowMinimum}
	}
	if value > m.Max {
		return &RangeError{Metric: name, Value: value, Bound: m.Max, Reason: AboveMaximum}
	}
	return nil
}

// CategoryOf returns the metric's category and whether it is registered.
func (r *Registry) CategoryOf(name string) (Category, bool) {
	m, ok := r.metrics[name]
	if !ok {
		return "", false
	}
	return m.Category, true
}

// Required returns the names of the required metrics in declaration
// order. A row that resolves none of these is not a usable data point.
func (r *Registry) Required() []string {
	var out []string
	for _, name := range r.order {
		if r.metrics[name].Required {
			out = append(out, name)
		}
	}
	return out
}

// Names returns every registered metric name in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the full definition of the named metric.
func (r *Registry) Lookup(name string) (CanonicalMetric, bool) {
	m, ok := r.metrics[name]
	return m, ok
}
