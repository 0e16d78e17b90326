package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ogreowl/flightdesk/conflict"
	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/schedule"
)

// Output formats for listing commands.
const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

func newFlightsCmd(_ *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "flights",
		Short: "List the seeded flight schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFlights(cmd.OutOrStdout(), schedule.NewSeeded().Flights(), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, yaml or json")
	return cmd
}

func newWarningsCmd(_ *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "warnings",
		Short: "Report double-booked aircraft and degenerate routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conflicts := conflict.Detect(schedule.NewSeeded().Flights())
			switch output {
			case outputTable:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), dispatch.WarningsReply(conflicts))
				return err
			case outputYAML:
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(conflicts)
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), conflicts)
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, yaml or json")
	return cmd
}

func writeFlights(w io.Writer, flights []schedule.Flight, output string) error {
	switch output {
	case outputTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFROM\tTO\tAIRCRAFT\tDEPARTS\tARRIVES")
		for _, f := range flights {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				f.ID, f.DepartureAirport, f.ArrivalAirport, f.AircraftID,
				f.DepartureTime.Format(time.RFC3339), f.ArrivalTime.Format(time.RFC3339))
		}
		return tw.Flush()
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(flights); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		return writeJSON(w, flights)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
