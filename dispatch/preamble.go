package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/schedule"
)

const (
	preambleIntro = "You are an AI assistant for a flight management app. Here is the current flight schedule:"
	preambleOutro = "You can answer user questions about the schedule. You can also use the available tools " +
		"to check for warnings, add a flight, edit a flight, delete a flight, or check the weather forecast " +
		"for a flight. Be VERY concise. Don't use any fancy formatting."
)

// Preamble renders the system message sent ahead of every round: the current
// time, the full schedule, and the behavioral instructions.
func Preamble(now time.Time, flights []schedule.Flight) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Today is %s\n", flightdesk.FormatDisplay(now))
	sb.WriteString(preambleIntro)
	sb.WriteString("\n")
	sb.WriteString(ScheduleSummary(flights))
	sb.WriteString("\n")
	sb.WriteString(preambleOutro)
	return sb.String()
}

// ScheduleSummary renders one line per flight, or a fixed sentence when the
// schedule is empty.
func ScheduleSummary(flights []schedule.Flight) string {
	if len(flights) == 0 {
		return EmptySchedule
	}
	lines := make([]string, len(flights))
	for i, f := range flights {
		lines[i] = fmt.Sprintf("Flight %s: %s to %s, Aircraft %s, Departs %s, Arrives %s",
			f.ID, f.DepartureAirport, f.ArrivalAirport, f.AircraftID,
			flightdesk.FormatDisplay(f.DepartureTime),
			flightdesk.FormatDisplay(f.ArrivalTime),
		)
	}
	return strings.Join(lines, "\n")
}
