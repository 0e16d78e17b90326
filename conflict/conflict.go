// Package conflict detects scheduling hazards in a flight snapshot.
//
// Detection is a pure function of its input and is recomputed on every call.
// It is O(n²) over the number of flights, which is fine for the schedule sizes
// this system handles. A larger schedule would index flights by aircraft and
// keep each aircraft's intervals sorted.
package conflict

import (
	"fmt"

	"github.com/ogreowl/flightdesk/schedule"
)

// Kind discriminates the Conflict variants.
type Kind string

const (
	// KindDoubleBooking is one aircraft assigned to two overlapping flights.
	KindDoubleBooking Kind = "double_booking"

	// KindDegenerateRoute is a flight departing and arriving at the same airport.
	KindDegenerateRoute Kind = "degenerate_route"
)

// Conflict is a detected hazard. Which fields are meaningful depends on Kind:
//   - KindDoubleBooking: AircraftID and FlightIDs
//   - KindDegenerateRoute: FlightID and Airport
type Conflict struct {
	Kind       Kind      `json:"kind" yaml:"kind"`
	AircraftID string    `json:"aircraftId,omitempty" yaml:"aircraft_id,omitempty"`
	FlightIDs  [2]string `json:"flightIds,omitempty" yaml:"flight_ids,omitempty,flow"`
	FlightID   string    `json:"flightId,omitempty" yaml:"flight_id,omitempty"`
	Airport    string    `json:"airport,omitempty" yaml:"airport,omitempty"`
}

// DoubleBooking builds a double-booking conflict.
func DoubleBooking(aircraftID, flightA, flightB string) Conflict {
	return Conflict{
		Kind:       KindDoubleBooking,
		AircraftID: aircraftID,
		FlightIDs:  [2]string{flightA, flightB},
	}
}

// DegenerateRoute builds a same-airport conflict.
func DegenerateRoute(flightID, airport string) Conflict {
	return Conflict{
		Kind:     KindDegenerateRoute,
		FlightID: flightID,
		Airport:  airport,
	}
}

// Message renders the conflict for people. An unrecognized kind, such as a
// zero Conflict, renders a generic sentence.
func (c Conflict) Message() string {
	switch c.Kind {
	case KindDoubleBooking:
		return fmt.Sprintf("Aircraft %s is double-booked for flights %s and %s",
			c.AircraftID, c.FlightIDs[0], c.FlightIDs[1])
	case KindDegenerateRoute:
		return fmt.Sprintf("Flight %s departs and arrives at the same airport (%s)",
			c.FlightID, c.Airport)
	default:
		return fmt.Sprintf("Unrecognized schedule conflict %q", string(c.Kind))
	}
}

// Involves reports whether the conflict names the given flight.
func (c Conflict) Involves(flightID string) bool {
	switch c.Kind {
	case KindDoubleBooking:
		return c.FlightIDs[0] == flightID || c.FlightIDs[1] == flightID
	case KindDegenerateRoute:
		return c.FlightID == flightID
	default:
		return false
	}
}

// Overlaps reports whether two flights' [departure, arrival] windows overlap.
// The comparison is inclusive: a flight departing exactly when the other
// arrives counts as overlapping.
func Overlaps(a, b schedule.Flight) bool {
	return !a.DepartureTime.After(b.ArrivalTime) && !a.ArrivalTime.Before(b.DepartureTime)
}

// Detect returns every conflict in flights.
//
// Double-bookings come first, one per overlapping pair (i<j) sharing an
// aircraft, in pair visiting order. Same-airport routes follow in flight order.
// The result is never nil.
func Detect(flights []schedule.Flight) []Conflict {
	conflicts := make([]Conflict, 0)

	for i := 0; i < len(flights); i++ {
		for j := i + 1; j < len(flights); j++ {
			a, b := flights[i], flights[j]
			if a.AircraftID != b.AircraftID {
				continue
			}
			if Overlaps(a, b) {
				conflicts = append(conflicts, DoubleBooking(a.AircraftID, a.ID, b.ID))
			}
		}
	}

	for _, f := range flights {
		if f.DepartureAirport == f.ArrivalAirport {
			conflicts = append(conflicts, DegenerateRoute(f.ID, f.DepartureAirport))
		}
	}

	return conflicts
}

// Messages renders each conflict's message in order.
func Messages(conflicts []Conflict) []string {
	out := make([]string, len(conflicts))
	for i, c := range conflicts {
		out[i] = c.Message()
	}
	return out
}
