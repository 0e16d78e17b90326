package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/catalog"
	"github.com/ogreowl/flightdesk/conflict"
	"github.com/ogreowl/flightdesk/schedule"
)

// ErrMissingDepartureTime is returned by add_flight when the departure time
// is empty.
var ErrMissingDepartureTime = errors.New("dispatch: departure time is required")

// Outcome is what every catalog tool returns.
type Outcome struct {
	Reply       string
	Note        string
	DataChanged bool
}

func (a *Agent) registerTools() {
	for _, d := range catalog.Declarations() {
		var tool any
		switch d.Name {
		case catalog.CheckWarnings:
			tool = flightdesk.NewToolFunc(d.Name, d.Description, d.Parameters, a.checkWarnings)
		case catalog.AddFlight:
			tool = flightdesk.NewToolFunc(d.Name, d.Description, d.Parameters, a.addFlight)
		case catalog.EditFlight:
			tool = flightdesk.NewToolFunc(d.Name, d.Description, d.Parameters, a.editFlight)
		case catalog.DeleteFlight:
			tool = flightdesk.NewToolFunc(d.Name, d.Description, d.Parameters, a.deleteFlight)
		case catalog.CheckWeather:
			tool = flightdesk.NewToolFunc(d.Name, d.Description, d.Parameters, a.checkWeather)
		default:
			panic(fmt.Sprintf("dispatch: no handler for catalog tool %q", d.Name))
		}
		a.chain.MustRegisterTool(tool)
	}
}

func (a *Agent) checkWarnings(_ context.Context, _ catalog.CheckWarningsInput) (Outcome, error) {
	return Outcome{Reply: WarningsReply(conflict.Detect(a.store.Flights()))}, nil
}

// WarningsReply renders the check_warnings answer for a set of conflicts.
func WarningsReply(conflicts []conflict.Conflict) string {
	if len(conflicts) == 0 {
		return NoConflictsReply
	}
	return ConflictsHeader + strings.Join(conflict.Messages(conflicts), "\n")
}

func (a *Agent) addFlight(_ context.Context, in catalog.AddFlightInput) (Outcome, error) {
	if in.DepartureTime.IsZero() {
		return Outcome{}, ErrMissingDepartureTime
	}
	f := a.store.AddFlight(schedule.NewFlight{
		DepartureAirport: in.DepartureAirport,
		ArrivalAirport:   in.ArrivalAirport,
		AircraftID:       in.AircraftID,
		DepartureTime:    in.DepartureTime,
	})
	departs := flightdesk.FormatDisplay(f.DepartureTime)

	return Outcome{
		Reply: fmt.Sprintf("Flight added: %s to %s with aircraft %s departing at %s",
			f.DepartureAirport, f.ArrivalAirport, f.AircraftID, departs),
		Note: fmt.Sprintf("A new flight has been added: %s from %s to %s, departing at %s.",
			f.ID, f.DepartureAirport, f.ArrivalAirport, departs),
		DataChanged: true,
	}, nil
}

func (a *Agent) editFlight(_ context.Context, in catalog.EditFlightInput) (Outcome, error) {
	var (
		u       schedule.FlightUpdate
		changes []string
	)
	if in.DepartureAirport != "" {
		u.DepartureAirport = &in.DepartureAirport
		changes = append(changes, "departure airport to "+in.DepartureAirport)
	}
	if in.ArrivalAirport != "" {
		u.ArrivalAirport = &in.ArrivalAirport
		changes = append(changes, "arrival airport to "+in.ArrivalAirport)
	}
	if in.AircraftID != "" {
		u.AircraftID = &in.AircraftID
		changes = append(changes, "aircraft to "+in.AircraftID)
	}
	if in.DepartureTime != nil && !in.DepartureTime.IsZero() {
		u.DepartureTime = in.DepartureTime
		changes = append(changes, "departure time to "+flightdesk.FormatDisplay(*in.DepartureTime))
	}

	if _, ok := a.store.UpdateFlight(in.FlightID, u); !ok {
		return Outcome{Reply: notFound(in.FlightID), DataChanged: true}, nil
	}

	out := Outcome{
		Reply:       fmt.Sprintf("Flight %s has been updated.", in.FlightID),
		DataChanged: true,
	}
	if len(changes) > 0 {
		out.Note = fmt.Sprintf("Flight %s has been updated: %s.", in.FlightID, strings.Join(changes, ", "))
	}
	return out, nil
}

func (a *Agent) deleteFlight(_ context.Context, in catalog.DeleteFlightInput) (Outcome, error) {
	if !a.store.DeleteFlight(in.FlightID) {
		return Outcome{Reply: notFound(in.FlightID), DataChanged: true}, nil
	}
	return Outcome{
		Reply:       fmt.Sprintf("Flight %s has been successfully deleted from the schedule.", in.FlightID),
		Note:        fmt.Sprintf("Flight %s has been deleted from the schedule.", in.FlightID),
		DataChanged: true,
	}, nil
}

func (a *Agent) checkWeather(ctx context.Context, in catalog.CheckWeatherInput) (Outcome, error) {
	f, ok := a.store.Flight(in.FlightID)
	if !ok {
		return Outcome{Reply: notFound(in.FlightID)}, nil
	}

	unavailable := Outcome{Reply: fmt.Sprintf("Could not fetch weather for flight %s.", in.FlightID)}
	if a.weather == nil {
		return unavailable, nil
	}

	departs := f.DepartureTime
	report, err := a.weather.Resolve(ctx, f.DepartureAirport, &departs)
	if err != nil {
		a.hooks.FireError(ctx, flightdesk.ErrorEvent{Stage: flightdesk.StageWeather, Err: err})
		return unavailable, nil
	}
	if report == nil {
		return unavailable, nil
	}

	return Outcome{
		Reply: fmt.Sprintf("Weather for Flight %s (%s):\nTemperature: %d°C\nConditions: %s",
			in.FlightID, f.DepartureAirport, report.RoundedCelsius(), report.Description),
	}, nil
}

func notFound(id string) string {
	return fmt.Sprintf("Could not find flight with ID %s.", id)
}
