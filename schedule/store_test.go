package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2024, 6, 13, hour, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewSeeded(t *testing.T) {
	s := NewSeeded()

	flights := s.Flights()
	require.Len(t, flights, 5)

	expected := []struct {
		id      string
		dep     string
		arr     string
		ac      string
		depHour int
		arrHour int
	}{
		{"F1", "JFK", "LAX", "A1", 10, 16},
		{"F2", "LAX", "SFO", "A2", 14, 15},
		{"F3", "ORD", "DFW", "A3", 12, 14},
		{"F4", "DFW", "JFK", "A1", 16, 20},
		{"F5", "SFO", "ORD", "A2", 18, 22},
	}
	for i, e := range expected {
		f := flights[i]
		assert.Equal(t, e.id, f.ID)
		assert.Equal(t, e.dep, f.DepartureAirport)
		assert.Equal(t, e.arr, f.ArrivalAirport)
		assert.Equal(t, e.ac, f.AircraftID)
		assert.Equal(t, at(e.depHour), f.DepartureTime)
		assert.Equal(t, at(e.arrHour), f.ArrivalTime)
	}

	assert.Len(t, s.Aircraft(), 3)
	assert.Len(t, s.Airports(), 5)

	next := s.AddFlight(NewFlight{DepartureAirport: "JFK", ArrivalAirport: "ORD", AircraftID: "A3", DepartureTime: at(8)})
	assert.Equal(t, "F6", next.ID)
}

func TestStore_AddFlight_DerivesArrival(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		expected time.Duration
	}{
		{name: "JFK to LAX", from: "JFK", to: "LAX", expected: 6 * time.Hour},
		{name: "LAX to SFO", from: "LAX", to: "SFO", expected: time.Hour},
		{name: "same airport", from: "ORD", to: "ORD", expected: 0},
		{name: "unknown origin", from: "XXX", to: "LAX", expected: 0},
		{name: "unknown destination", from: "JFK", to: "YYY", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			added := s.AddFlight(NewFlight{
				DepartureAirport: tt.from,
				ArrivalAirport:   tt.to,
				AircraftID:       "A1",
				DepartureTime:    at(10),
			})

			got, ok := s.Flight(added.ID)
			require.True(t, ok)
			assert.Equal(t, got.DepartureTime.Add(tt.expected), got.ArrivalTime)
			assert.Equal(t, added, got)
		})
	}
}

func TestStore_AddFlight_SequentialIDs(t *testing.T) {
	s := New()
	a := s.AddFlight(NewFlight{DepartureAirport: "JFK", ArrivalAirport: "LAX", DepartureTime: at(1)})
	b := s.AddFlight(NewFlight{DepartureAirport: "JFK", ArrivalAirport: "LAX", DepartureTime: at(2)})
	require.True(t, s.DeleteFlight(b.ID))
	c := s.AddFlight(NewFlight{DepartureAirport: "JFK", ArrivalAirport: "LAX", DepartureTime: at(3)})

	assert.Equal(t, "F1", a.ID)
	assert.Equal(t, "F2", b.ID)
	assert.Equal(t, "F3", c.ID, "ids are never reused")
}

func TestStore_Flights_ReturnsCopy(t *testing.T) {
	s := NewSeeded()

	snapshot := s.Flights()
	snapshot[0].AircraftID = "HACKED"
	snapshot = append(snapshot[:1], snapshot[2:]...)

	fresh := s.Flights()
	require.Len(t, fresh, 5)
	assert.Equal(t, "A1", fresh[0].AircraftID)
	assert.Equal(t, "F2", fresh[1].ID)

	aircraft := s.Aircraft()
	aircraft[0].Name = "changed"
	assert.Equal(t, "Plane 1", s.Aircraft()[0].Name)

	airports := s.Airports()
	airports[0].City = "changed"
	assert.Equal(t, "New York", s.Airports()[0].City)
}

func TestStore_UpdateFlight_NotFound(t *testing.T) {
	s := NewSeeded()
	before := s.Flights()

	_, ok := s.UpdateFlight("F99", FlightUpdate{AircraftID: ptr("A3")})

	assert.False(t, ok)
	assert.Equal(t, before, s.Flights())
}

func TestStore_UpdateFlight(t *testing.T) {
	tests := []struct {
		name        string
		update      FlightUpdate
		expectDep   string
		expectArr   string
		expectAC    string
		expectStart time.Time
		expectEnd   time.Time
	}{
		{
			name:        "aircraft only keeps arrival",
			update:      FlightUpdate{AircraftID: ptr("A3")},
			expectDep:   "JFK",
			expectArr:   "LAX",
			expectAC:    "A3",
			expectStart: at(10),
			expectEnd:   at(16),
		},
		{
			name:        "departure time uses existing airports",
			update:      FlightUpdate{DepartureTime: ptr(at(12))},
			expectDep:   "JFK",
			expectArr:   "LAX",
			expectAC:    "A1",
			expectStart: at(12),
			expectEnd:   at(18),
		},
		{
			name:        "arrival airport rederives from merged record",
			update:      FlightUpdate{ArrivalAirport: ptr("ORD")},
			expectDep:   "JFK",
			expectArr:   "ORD",
			expectAC:    "A1",
			expectStart: at(10),
			expectEnd:   at(13),
		},
		{
			name:        "departure airport rederives from merged record",
			update:      FlightUpdate{DepartureAirport: ptr("SFO")},
			expectDep:   "SFO",
			expectArr:   "LAX",
			expectAC:    "A1",
			expectStart: at(10),
			expectEnd:   at(11),
		},
		{
			name: "all fields",
			update: FlightUpdate{
				DepartureAirport: ptr("DFW"),
				ArrivalAirport:   ptr("ORD"),
				AircraftID:       ptr("A2"),
				DepartureTime:    ptr(at(5)),
			},
			expectDep:   "DFW",
			expectArr:   "ORD",
			expectAC:    "A2",
			expectStart: at(5),
			expectEnd:   at(7),
		},
		{
			name:        "empty update changes nothing",
			update:      FlightUpdate{},
			expectDep:   "JFK",
			expectArr:   "LAX",
			expectAC:    "A1",
			expectStart: at(10),
			expectEnd:   at(16),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeeded()

			updated, ok := s.UpdateFlight("F1", tt.update)
			require.True(t, ok)

			stored, _ := s.Flight("F1")
			assert.Equal(t, updated, stored)
			assert.Equal(t, "F1", stored.ID)
			assert.Equal(t, tt.expectDep, stored.DepartureAirport)
			assert.Equal(t, tt.expectArr, stored.ArrivalAirport)
			assert.Equal(t, tt.expectAC, stored.AircraftID)
			assert.Equal(t, tt.expectStart, stored.DepartureTime)
			assert.Equal(t, tt.expectEnd, stored.ArrivalTime)
			assert.Equal(t, 5, s.Len())
		})
	}
}

func TestStore_DeleteFlight(t *testing.T) {
	s := NewSeeded()

	assert.True(t, s.DeleteFlight("F3"))
	after := s.Flights()
	require.Len(t, after, 4)
	for _, f := range after {
		assert.NotEqual(t, "F3", f.ID)
	}

	assert.False(t, s.DeleteFlight("F3"), "second delete reports nothing removed")
	assert.Equal(t, after, s.Flights())
}

func TestStore_Airport(t *testing.T) {
	s := New()

	a, ok := s.Airport("jfk")
	require.True(t, ok)
	assert.Equal(t, "New York", a.City)

	_, ok = s.Airport("XYZ")
	assert.False(t, ok)
}

func TestStore_UpdateAircraftLocation(t *testing.T) {
	s := New()

	assert.True(t, s.UpdateAircraftLocation("A2", "DFW"))
	assert.Equal(t, "DFW", s.Aircraft()[1].CurrentLocation)

	assert.False(t, s.UpdateAircraftLocation("A9", "DFW"))
}

func TestStore_WithDurations(t *testing.T) {
	s := New().WithDurations(DurationTable{"AAA": {"BBB": 2}})

	f := s.AddFlight(NewFlight{DepartureAirport: "AAA", ArrivalAirport: "BBB", DepartureTime: at(1)})
	assert.Equal(t, at(3), f.ArrivalTime)
	assert.Equal(t, time.Duration(0), s.Duration("JFK", "LAX"))
}
