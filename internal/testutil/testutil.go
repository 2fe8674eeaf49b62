// Package testutil provides mock implementations for tests.
package testutil

import (
	"context"

	"github.com/Parsa-ux360/PriceForecastApp/internal/inflation"
)

// MockSource is a mock implementation of the inflation.Source interface
// for testing
type MockSource struct {
	SeriesFunc func(ctx context.Context, countryCode string) ([]inflation.Observation, error)

	// Calls records every country code queried, in order.
	Calls []string
}

// Series implements the inflation.Source interface
func (m *MockSource) Series(ctx context.Context, countryCode string) ([]inflation.Observation, error) {
	m.Calls = append(m.Calls, countryCode)
	if m.SeriesFunc != nil {
		return m.SeriesFunc(ctx, countryCode)
	}
	return nil, nil
}

// NewStaticSource creates a mock source that returns the same series (or
// error) for every country.
func NewStaticSource(series []inflation.Observation, err error) *MockSource {
	return &MockSource{
		SeriesFunc: func(ctx context.Context, countryCode string) ([]inflation.Observation, error) {
			return series, err
		},
	}
}

// FloatPtr returns a pointer to v. Handy for building observations.
func FloatPtr(v float64) *float64 {
	return &v
}
