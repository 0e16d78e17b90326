package flightdesk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeProvider_Now(t *testing.T) {
	tp := NewDefaultTimeProvider()

	before := time.Now()
	result := tp.Now()
	after := time.Now()

	assert.False(t, result.Before(before) || result.After(after), "Now() outside expected range")
	assert.Equal(t, time.UTC, result.Location())
}

func TestMockTimeProvider(t *testing.T) {
	fixed := time.Date(2024, 6, 13, 9, 30, 0, 0, time.UTC)
	tp := NewMockTimeProvider(fixed)

	assert.Equal(t, fixed, tp.Now())

	tp.Advance(90 * time.Minute)
	assert.Equal(t, time.Date(2024, 6, 13, 11, 0, 0, 0, time.UTC), tp.Now())

	later := fixed.Add(48 * time.Hour)
	tp.SetTime(later)
	assert.Equal(t, later, tp.Now())
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "morning",
			input:    time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC),
			expected: "6/13/2024, 10:00:00 AM",
		},
		{
			name:     "evening",
			input:    time.Date(2024, 6, 13, 22, 5, 9, 0, time.UTC),
			expected: "6/13/2024, 10:05:09 PM",
		},
		{
			name:     "midnight",
			input:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			expected: "12/1/2024, 12:00:00 AM",
		},
		{
			name:     "noon",
			input:    time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC),
			expected: "1/9/2025, 12:00:00 PM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDisplay(tc.input))
		})
	}
}
