// Package scenarios drives the dispatch loop with a live model through the
// schedule operations a dispatcher performs most.
package scenarios

import (
	"context"
	"fmt"
	"time"

	"github.com/ogreowl/flightdesk/conflict"
	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/integrationtest/testutil"
	"github.com/ogreowl/flightdesk/schedule"
	"github.com/ogreowl/flightdesk/weather"
)

// All returns every scenario in a stable order.
func All() []testutil.Scenario {
	return []testutil.Scenario{
		AddFlight(),
		Reassign(),
		Warnings(),
		Weather(),
	}
}

// AddFlight asks for a new leg and expects F6 with a derived arrival.
func AddFlight() testutil.Scenario {
	return testutil.Scenario{
		Name:        "add-flight",
		Description: "Add a JFK to LAX leg on A3 at 10am today.",
		Utterances: []string{
			"Add a flight from JFK to LAX on aircraft A3 departing 2024-06-13 at 10:00 UTC.",
		},
		Check: func(store *schedule.Store, last *dispatch.TurnResult) error {
			f, ok := store.Flight("F6")
			if !ok {
				return fmt.Errorf("F6 was not added; reply: %q", last.Reply)
			}
			if f.AircraftID != "A3" || f.DepartureAirport != "JFK" || f.ArrivalAirport != "LAX" {
				return fmt.Errorf("unexpected flight: %+v", f)
			}
			if got := f.ArrivalTime.Sub(f.DepartureTime); got != 6*time.Hour {
				return fmt.Errorf("expected a 6h leg, got %s", got)
			}
			return nil
		},
	}
}

// Reassign moves F4 off A1, which clears the seeded double-booking.
func Reassign() testutil.Scenario {
	return testutil.Scenario{
		Name:        "reassign",
		Description: "Move F4 to aircraft A3 and confirm no warnings remain.",
		Utterances: []string{
			"Please move flight F4 to aircraft A3.",
		},
		Check: func(store *schedule.Store, last *dispatch.TurnResult) error {
			f, _ := store.Flight("F4")
			if f.AircraftID != "A3" {
				return fmt.Errorf("F4 still on %s; reply: %q", f.AircraftID, last.Reply)
			}
			if c := conflict.Detect(store.Flights()); len(c) != 0 {
				return fmt.Errorf("expected no conflicts, got %v", conflict.Messages(c))
			}
			return nil
		},
	}
}

// Warnings asks for conflicts on the seeded schedule.
func Warnings() testutil.Scenario {
	return testutil.Scenario{
		Name:        "warnings",
		Description: "Ask for schedule warnings; A1 is double-booked.",
		Utterances:  []string{"Are there any warnings for the schedule?"},
		Check: func(_ *schedule.Store, last *dispatch.TurnResult) error {
			if !testutil.ContainsIgnoreCase(last.Reply, "A1") {
				return fmt.Errorf("reply does not mention A1: %q", last.Reply)
			}
			return nil
		},
	}
}

type fixedWeather struct{}

func (fixedWeather) Resolve(_ context.Context, city string, _ *time.Time) (*weather.Report, error) {
	return &weather.Report{City: city, TemperatureCelsius: 21.6, Description: "clear sky", Icon: "01d"}, nil
}

// Weather asks for the forecast of F3, served by a fixed lookup.
func Weather() testutil.Scenario {
	return testutil.Scenario{
		Name:        "weather",
		Description: "Check the weather for F3 out of ORD.",
		Utterances:  []string{"What's the weather for flight F3?"},
		Weather:     fixedWeather{},
		Check: func(_ *schedule.Store, last *dispatch.TurnResult) error {
			want := "Weather for Flight F3 (ORD):\nTemperature: 22°C\nConditions: clear sky"
			if last.Reply != want {
				return fmt.Errorf("unexpected reply %q", last.Reply)
			}
			return nil
		},
	}
}
