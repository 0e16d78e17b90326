// Package schedule owns the authoritative flight collection together with the
// aircraft and airport reference data.
//
// A Store is an explicit object: create it, operate on it, discard it. It is
// not safe for concurrent use; callers that serve concurrent requests must
// serialize access themselves.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Store holds flights in insertion order plus reference data.
// Every read returns a defensive copy.
type Store struct {
	flights   []Flight
	aircraft  []Aircraft
	airports  []Airport
	durations DurationTable
	nextID    int
}

// New creates an empty store with the default reference data and duration table.
func New() *Store {
	return &Store{
		flights:   make([]Flight, 0),
		aircraft:  DefaultAircraft(),
		airports:  DefaultAirports(),
		durations: DefaultDurations.clone(),
		nextID:    1,
	}
}

// WithDurations replaces the duration table. Returns the store for chaining.
func (s *Store) WithDurations(t DurationTable) *Store {
	s.durations = t.clone()
	return s
}

// WithAircraft replaces the aircraft reference data. Returns the store for chaining.
func (s *Store) WithAircraft(aircraft []Aircraft) *Store {
	s.aircraft = append([]Aircraft(nil), aircraft...)
	return s
}

// WithAirports replaces the airport reference data. Returns the store for chaining.
func (s *Store) WithAirports(airports []Airport) *Store {
	s.airports = append([]Airport(nil), airports...)
	return s
}

// AddFlight assigns the next sequential id, derives the arrival time and
// appends the flight. Airport and aircraft codes are not validated; a pair
// missing from the duration table yields a zero-hour flight.
func (s *Store) AddFlight(nf NewFlight) Flight {
	f := Flight{
		ID:               fmt.Sprintf("F%d", s.nextID),
		DepartureAirport: nf.DepartureAirport,
		ArrivalAirport:   nf.ArrivalAirport,
		AircraftID:       nf.AircraftID,
		DepartureTime:    nf.DepartureTime,
		ArrivalTime:      s.durations.ArrivalTime(nf.DepartureTime, nf.DepartureAirport, nf.ArrivalAirport),
	}
	s.nextID++
	s.flights = append(s.flights, f)
	return f
}

// Flights returns a snapshot of all flights in insertion order.
func (s *Store) Flights() []Flight {
	out := make([]Flight, len(s.flights))
	copy(out, s.flights)
	return out
}

// Len returns the number of scheduled flights.
func (s *Store) Len() int {
	return len(s.flights)
}

// Flight returns the flight with the given id.
func (s *Store) Flight(id string) (Flight, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Flight{}, false
	}
	return s.flights[i], true
}

// UpdateFlight replaces only the supplied fields of a flight. When the
// departure time or either airport is supplied, the arrival time is derived
// again from the merged record.
func (s *Store) UpdateFlight(id string, u FlightUpdate) (Flight, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Flight{}, false
	}

	f := s.flights[i]
	if u.DepartureAirport != nil {
		f.DepartureAirport = *u.DepartureAirport
	}
	if u.ArrivalAirport != nil {
		f.ArrivalAirport = *u.ArrivalAirport
	}
	if u.AircraftID != nil {
		f.AircraftID = *u.AircraftID
	}
	if u.DepartureTime != nil {
		f.DepartureTime = *u.DepartureTime
	}
	if u.rederives() {
		f.ArrivalTime = s.durations.ArrivalTime(f.DepartureTime, f.DepartureAirport, f.ArrivalAirport)
	}

	s.flights[i] = f
	return f, true
}

// DeleteFlight removes the flight with the given id.
// Returns false if no such flight existed.
func (s *Store) DeleteFlight(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.flights = append(s.flights[:i], s.flights[i+1:]...)
	return true
}

// Aircraft returns a snapshot of the aircraft reference data.
func (s *Store) Aircraft() []Aircraft {
	out := make([]Aircraft, len(s.aircraft))
	copy(out, s.aircraft)
	return out
}

// Airports returns a snapshot of the airport reference data.
func (s *Store) Airports() []Airport {
	out := make([]Airport, len(s.airports))
	copy(out, s.airports)
	return out
}

// Airport looks up an airport by code, ignoring case.
func (s *Store) Airport(code string) (Airport, bool) {
	return FindAirport(s.airports, code)
}

// UpdateAircraftLocation moves an aircraft to another airport.
// Returns false if the aircraft is unknown.
func (s *Store) UpdateAircraftLocation(id, location string) bool {
	for i := range s.aircraft {
		if s.aircraft[i].ID == id {
			s.aircraft[i].CurrentLocation = location
			return true
		}
	}
	return false
}

// Duration returns the table flight time between two airports.
func (s *Store) Duration(from, to string) time.Duration {
	return s.durations.Duration(from, to)
}

func (s *Store) indexOf(id string) int {
	for i := range s.flights {
		if s.flights[i].ID == id {
			return i
		}
	}
	return -1
}

// FindAirport looks up an airport by code in a reference table, ignoring case.
func FindAirport(airports []Airport, code string) (Airport, bool) {
	for _, a := range airports {
		if strings.EqualFold(a.Code, code) {
			return a, true
		}
	}
	return Airport{}, false
}
