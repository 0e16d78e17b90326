package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ogreowl/flightdesk/config"
	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/hooks"
	"github.com/ogreowl/flightdesk/internal/logger"
	"github.com/ogreowl/flightdesk/models"
	"github.com/ogreowl/flightdesk/schedule"
	"github.com/ogreowl/flightdesk/weather"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// app holds what the subcommands share once configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "flightdesk",
		Short:         "Flight schedule assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(logger.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Out:    a.stderr,
			})
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (yaml or json)")

	root.AddCommand(
		newChatCmd(a),
		newServeCmd(a),
		newFlightsCmd(a),
		newWarningsCmd(a),
	)
	return root
}

// weatherLookup returns nil when no API key is configured; check_weather
// then reports that weather could not be fetched.
func (a *app) weatherLookup() weather.Lookup {
	if a.cfg.Weather.APIKey == "" {
		a.log.Warn().Msg("weather.api_key is not set; weather lookups will fail")
		return nil
	}
	return weather.NewOpenWeather(a.cfg.Weather.APIKey).
		WithBaseURL(a.cfg.Weather.BaseURL).
		WithTimeout(a.cfg.Weather.Timeout)
}

// newAgent wires the model, weather and hooks around a freshly seeded store.
// Extra hooks are registered after the logger and metrics hooks.
func (a *app) newAgent(reg prometheus.Registerer, extra ...any) (*dispatch.Agent, weather.Lookup, error) {
	model, err := models.New(a.cfg.LLM.ModelOptions())
	if err != nil {
		return nil, nil, err
	}

	registry := hooks.NewRegistry().
		Register(hooks.NewLoggerHook(logger.Component(a.log, "dispatch")))
	if reg != nil {
		metrics, err := hooks.NewMetricsHook(reg)
		if err != nil {
			return nil, nil, fmt.Errorf("register metrics: %w", err)
		}
		registry.Register(metrics)
	}
	for _, h := range extra {
		registry.Register(h)
	}

	lookup := a.weatherLookup()
	agent := dispatch.NewAgent(model, schedule.NewSeeded()).
		WithModelName(model.Name()).
		WithHooks(registry)
	if lookup != nil {
		agent.WithWeather(lookup)
	}
	return agent, lookup, nil
}
