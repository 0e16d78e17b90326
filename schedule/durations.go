package schedule

import "time"

// DurationTable maps origin code → destination code → whole flight hours.
// Symmetric by convention; same-airport pairs map to 0.
type DurationTable map[string]map[string]int

// DefaultDurations is the flight time matrix for the five seeded airports.
var DefaultDurations = DurationTable{
	"JFK": {"JFK": 0, "LAX": 6, "ORD": 3, "DFW": 4, "SFO": 6},
	"LAX": {"JFK": 6, "LAX": 0, "ORD": 4, "DFW": 3, "SFO": 1},
	"ORD": {"JFK": 3, "LAX": 4, "ORD": 0, "DFW": 2, "SFO": 4},
	"DFW": {"JFK": 4, "LAX": 3, "ORD": 2, "DFW": 0, "SFO": 3},
	"SFO": {"JFK": 6, "LAX": 1, "ORD": 4, "DFW": 3, "SFO": 0},
}

// Hours returns the flight time between two airports in hours.
// A pair missing from the table yields 0.
func (t DurationTable) Hours(from, to string) int {
	return t[from][to]
}

// Duration returns the flight time between two airports.
func (t DurationTable) Duration(from, to string) time.Duration {
	return time.Duration(t.Hours(from, to)) * time.Hour
}

// ArrivalTime derives the arrival time of a flight leaving from at departure.
func (t DurationTable) ArrivalTime(departure time.Time, from, to string) time.Time {
	return departure.Add(t.Duration(from, to))
}

func (t DurationTable) clone() DurationTable {
	out := make(DurationTable, len(t))
	for from, row := range t {
		r := make(map[string]int, len(row))
		for to, h := range row {
			r[to] = h
		}
		out[from] = r
	}
	return out
}
