package schedule

import "time"

// DefaultAirports is the airport reference table.
func DefaultAirports() []Airport {
	return []Airport{
		{Code: "JFK", Name: "John F. Kennedy International", City: "New York"},
		{Code: "LAX", Name: "Los Angeles International", City: "Los Angeles"},
		{Code: "ORD", Name: "O'Hare International", City: "Chicago"},
		{Code: "DFW", Name: "Dallas/Fort Worth International", City: "Dallas"},
		{Code: "SFO", Name: "San Francisco International", City: "San Francisco"},
	}
}

// DefaultAircraft is the fleet reference table.
func DefaultAircraft() []Aircraft {
	return []Aircraft{
		{ID: "A1", Name: "Plane 1", CurrentLocation: "JFK"},
		{ID: "A2", Name: "Plane 2", CurrentLocation: "LAX"},
		{ID: "A3", Name: "Plane 3", CurrentLocation: "ORD"},
	}
}

// DemoFlights returns the five demonstration flights loaded at start-up.
func DemoFlights() []NewFlight {
	day := func(hour int) time.Time {
		return time.Date(2024, 6, 13, hour, 0, 0, 0, time.UTC)
	}
	return []NewFlight{
		{DepartureAirport: "JFK", ArrivalAirport: "LAX", AircraftID: "A1", DepartureTime: day(10)},
		{DepartureAirport: "LAX", ArrivalAirport: "SFO", AircraftID: "A2", DepartureTime: day(14)},
		{DepartureAirport: "ORD", ArrivalAirport: "DFW", AircraftID: "A3", DepartureTime: day(12)},
		{DepartureAirport: "DFW", ArrivalAirport: "JFK", AircraftID: "A1", DepartureTime: day(16)},
		{DepartureAirport: "SFO", ArrivalAirport: "ORD", AircraftID: "A2", DepartureTime: day(18)},
	}
}

// NewSeeded returns a store holding the reference data and the demonstration
// flights F1 to F5. The next assigned id is F6.
func NewSeeded() *Store {
	s := New()
	for _, f := range DemoFlights() {
		s.AddFlight(f)
	}
	return s
}
