package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ogreowl/flightdesk/internal/logger"
	"github.com/ogreowl/flightdesk/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.HTTP.Address
			}

			reg := prometheus.NewRegistry()
			agent, lookup, err := a.newAgent(reg)
			if err != nil {
				return err
			}

			srv := server.New(agent).
				WithWeather(lookup).
				WithLogger(logger.Component(a.log, "http")).
				WithGatherer(reg)
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to http.address)")
	return cmd
}
