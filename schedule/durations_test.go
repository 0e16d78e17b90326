package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDurations_Symmetric(t *testing.T) {
	for from, row := range DefaultDurations {
		for to, h := range row {
			assert.Equal(t, h, DefaultDurations.Hours(to, from), "%s<->%s", from, to)
		}
		assert.Zero(t, DefaultDurations.Hours(from, from), "%s to itself", from)
	}
}

func TestDurationTable_Miss(t *testing.T) {
	assert.Zero(t, DefaultDurations.Hours("JFK", "CDG"))
	assert.Zero(t, DefaultDurations.Hours("CDG", "JFK"))
	assert.Equal(t, time.Duration(0), DefaultDurations.Duration("", ""))
}

func TestDurationTable_ArrivalTime(t *testing.T) {
	dep := time.Date(2024, 6, 13, 22, 0, 0, 0, time.UTC)
	arr := DefaultDurations.ArrivalTime(dep, "JFK", "SFO")
	assert.Equal(t, time.Date(2024, 6, 14, 4, 0, 0, 0, time.UTC), arr)
}

func TestDurationTable_CloneIsIndependent(t *testing.T) {
	c := DefaultDurations.clone()
	c["JFK"]["LAX"] = 99
	assert.Equal(t, 6, DefaultDurations.Hours("JFK", "LAX"))
}
