// Package catalog declares the fixed set of operations the model may request.
//
// Each declaration carries a name, a description and a parameter schema. The
// typed inputs below are what the toolchain decodes the model's arguments
// into; their json tags match the declared parameter names.
package catalog

import (
	"time"

	"github.com/ogreowl/flightdesk/schema"
)

// Tool names. These are the only names the dispatcher routes.
const (
	CheckWarnings = "check_warnings"
	AddFlight     = "add_flight"
	EditFlight    = "edit_flight"
	DeleteFlight  = "delete_flight"
	CheckWeather  = "check_weather"
)

// Declaration describes one tool to the model.
type Declaration struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Declarations returns the tool declarations in their advertised order.
// Each call builds fresh parameter maps.
func Declarations() []Declaration {
	return []Declaration{
		{
			Name:        CheckWarnings,
			Description: "Check for double-booked aircraft (same plane, overlapping times) in the current flight schedule.",
			Parameters:  schema.Object(map[string]*schema.Property{}),
		},
		{
			Name:        AddFlight,
			Description: "Add a new flight to the schedule.",
			Parameters: schema.Object(map[string]*schema.Property{
				"departureAirport": schema.String("Departure airport code (e.g., JFK)"),
				"arrivalAirport":   schema.String("Arrival airport code (e.g., SFO)"),
				"aircraftId":       schema.String("Aircraft ID (e.g., A1, A2, A3)"),
				"departureTime":    schema.DateTime("Departure time as ISO string"),
			}, "departureAirport", "arrivalAirport", "aircraftId", "departureTime"),
		},
		{
			Name:        EditFlight,
			Description: "Edit an existing flight. Provide the flightId and any fields to update.",
			Parameters: schema.Object(map[string]*schema.Property{
				"flightId":         schema.String("ID of the flight to edit"),
				"departureAirport": schema.String("New departure airport code (optional)"),
				"arrivalAirport":   schema.String("New arrival airport code (optional)"),
				"aircraftId":       schema.String("New aircraft ID (optional)"),
				"departureTime":    schema.DateTime("New departure time as ISO string (optional)"),
			}, "flightId"),
		},
		{
			Name:        DeleteFlight,
			Description: "Delete a flight from the schedule. Provide the flightId.",
			Parameters: schema.Object(map[string]*schema.Property{
				"flightId": schema.String("ID of the flight to delete"),
			}, "flightId"),
		},
		{
			Name:        CheckWeather,
			Description: "Check the weather forecast for a flight. Provide the flightId.",
			Parameters: schema.Object(map[string]*schema.Property{
				"flightId": schema.String("ID of the flight to check weather for"),
			}, "flightId"),
		},
	}
}

// Names returns the tool names in advertised order.
func Names() []string {
	decls := Declarations()
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the declaration with the given name.
func Lookup(name string) (Declaration, bool) {
	for _, d := range Declarations() {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

// CheckWarningsInput is empty; check_warnings takes no arguments.
type CheckWarningsInput struct{}

// AddFlightInput are the arguments of add_flight.
type AddFlightInput struct {
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	AircraftID       string    `json:"aircraftId"`
	DepartureTime    time.Time `json:"departureTime"`
}

// EditFlightInput are the arguments of edit_flight. Empty strings and a nil
// DepartureTime mean "leave unchanged".
type EditFlightInput struct {
	FlightID         string     `json:"flightId"`
	DepartureAirport string     `json:"departureAirport"`
	ArrivalAirport   string     `json:"arrivalAirport"`
	AircraftID       string     `json:"aircraftId"`
	DepartureTime    *time.Time `json:"departureTime"`
}

// DeleteFlightInput are the arguments of delete_flight.
type DeleteFlightInput struct {
	FlightID string `json:"flightId"`
}

// CheckWeatherInput are the arguments of check_weather.
type CheckWeatherInput struct {
	FlightID string `json:"flightId"`
}
