// Package weather resolves a city or airport code, with an optional target
// time, into a temperature and condition report.
package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ogreowl/flightdesk/schedule"
)

var (
	// ErrNotFound is returned when the provider knows no such place or has no
	// forecast samples for it.
	ErrNotFound = errors.New("weather: no data")

	// ErrUnexpectedPayload is returned when the provider answers with a body
	// missing the fields a report needs.
	ErrUnexpectedPayload = errors.New("weather: unexpected payload")
)

// Report is the weather at a place, now or at the forecast sample nearest to
// a requested time.
type Report struct {
	City               string     `json:"city"`
	TemperatureCelsius float64    `json:"temperature"`
	Description        string     `json:"description"`
	Icon               string     `json:"icon"`
	ForecastTime       *time.Time `json:"forecastTime,omitempty"`
}

// RoundedCelsius rounds the temperature half up to a whole degree.
func (r *Report) RoundedCelsius() int {
	return int(math.Floor(r.TemperatureCelsius + 0.5))
}

// Lookup resolves weather for a city name or airport code. A nil at asks for
// current conditions; otherwise the forecast sample closest to at is used.
// Every failure is reported as an error; callers decide how to degrade.
type Lookup interface {
	Resolve(ctx context.Context, cityOrCode string, at *time.Time) (*Report, error)
}

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather: provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather: provider returned status %d: %s", e.StatusCode, e.Message)
}

// Sample is one forecast data point.
type Sample struct {
	Time               time.Time
	TemperatureCelsius float64
	Description        string
	Icon               string
}

// Closest returns the sample whose time is nearest to target. Ties keep the
// earliest sample in list order. Returns false for an empty list.
func Closest(samples []Sample, target time.Time) (Sample, bool) {
	var (
		best    Sample
		found   bool
		minDiff time.Duration
	)
	for _, s := range samples {
		diff := s.Time.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < minDiff {
			best, minDiff, found = s, diff, true
		}
	}
	return best, found
}

// CityFor maps an airport code to its city using the reference table,
// ignoring case. Anything else is returned unchanged.
func CityFor(airports []schedule.Airport, cityOrCode string) string {
	if a, ok := schedule.FindAirport(airports, cityOrCode); ok {
		return a.City
	}
	return cityOrCode
}
