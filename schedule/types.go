package schedule

import "time"

// Flight is a scheduled leg flown by one aircraft.
// ArrivalTime is always derived from DepartureTime and the duration table.
type Flight struct {
	ID               string    `json:"id" yaml:"id"`
	DepartureAirport string    `json:"departureAirport" yaml:"departure_airport"`
	ArrivalAirport   string    `json:"arrivalAirport" yaml:"arrival_airport"`
	AircraftID       string    `json:"aircraftId" yaml:"aircraft_id"`
	DepartureTime    time.Time `json:"departureTime" yaml:"departure_time"`
	ArrivalTime      time.Time `json:"arrivalTime" yaml:"arrival_time"`
}

// Aircraft is reference data; schedule operations never create or delete it.
type Aircraft struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	CurrentLocation string `json:"currentLocation" yaml:"current_location"`
}

// Airport is reference data keyed by Code.
type Airport struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	City string `json:"city" yaml:"city"`
}

// NewFlight holds the caller-supplied fields of a flight to add.
type NewFlight struct {
	DepartureAirport string
	ArrivalAirport   string
	AircraftID       string
	DepartureTime    time.Time
}

// FlightUpdate is a partial update. Nil fields are left untouched.
type FlightUpdate struct {
	DepartureAirport *string
	ArrivalAirport   *string
	AircraftID       *string
	DepartureTime    *time.Time
}

// IsEmpty reports whether the update carries no field.
func (u FlightUpdate) IsEmpty() bool {
	return u.DepartureAirport == nil && u.ArrivalAirport == nil &&
		u.AircraftID == nil && u.DepartureTime == nil
}

// rederives reports whether applying u requires recomputing the arrival time.
func (u FlightUpdate) rederives() bool {
	return u.DepartureAirport != nil || u.ArrivalAirport != nil || u.DepartureTime != nil
}
