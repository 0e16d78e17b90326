package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ogreowl/flightdesk/schedule"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

const (
	maxBodyBytes   = 4 << 20
	defaultTimeout = 10 * time.Second
)

// OpenWeather is a Lookup backed by the OpenWeatherMap current weather and
// 5 day / 3 hour forecast endpoints, in metric units.
type OpenWeather struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	airports []schedule.Airport
}

// NewOpenWeather creates a client with the default base URL, a 10 second
// HTTP timeout and the default airport table.
func NewOpenWeather(apiKey string) *OpenWeather {
	return &OpenWeather{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		client:   &http.Client{Timeout: defaultTimeout},
		airports: schedule.DefaultAirports(),
	}
}

// WithBaseURL points the client at another API root.
func (o *OpenWeather) WithBaseURL(baseURL string) *OpenWeather {
	o.baseURL = strings.TrimRight(baseURL, "/")
	return o
}

// WithHTTPClient replaces the HTTP client. A nil client restores the
// default one.
func (o *OpenWeather) WithHTTPClient(c *http.Client) *OpenWeather {
	if c == nil {
		c = &http.Client{Timeout: defaultTimeout}
	}
	o.client = c
	return o
}

// WithTimeout sets the request timeout on a copy of the current client, so a
// client shared through WithHTTPClient is left untouched.
func (o *OpenWeather) WithTimeout(d time.Duration) *OpenWeather {
	c := http.Client{}
	if o.client != nil {
		c = *o.client
	}
	c.Timeout = d
	o.client = &c
	return o
}

// WithAirports sets the table used to translate airport codes to cities.
func (o *OpenWeather) WithAirports(airports []schedule.Airport) *OpenWeather {
	o.airports = append([]schedule.Airport(nil), airports...)
	return o
}

// Resolve implements Lookup.
func (o *OpenWeather) Resolve(ctx context.Context, cityOrCode string, at *time.Time) (*Report, error) {
	city := CityFor(o.airports, cityOrCode)
	if at == nil {
		return o.current(ctx, city)
	}
	return o.forecast(ctx, city, *at)
}

type owCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owMain struct {
	Temp *float64 `json:"temp"`
}

type owCurrent struct {
	Name    string        `json:"name"`
	Main    owMain        `json:"main"`
	Weather []owCondition `json:"weather"`
}

type owForecast struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt      int64         `json:"dt"`
		Main    owMain        `json:"main"`
		Weather []owCondition `json:"weather"`
	} `json:"list"`
}

type owError struct {
	Message string `json:"message"`
}

func (o *OpenWeather) current(ctx context.Context, city string) (*Report, error) {
	var body owCurrent
	if err := o.get(ctx, "weather", city, &body); err != nil {
		return nil, err
	}
	if body.Main.Temp == nil || len(body.Weather) == 0 {
		return nil, ErrUnexpectedPayload
	}
	return &Report{
		City:               body.Name,
		TemperatureCelsius: *body.Main.Temp,
		Description:        body.Weather[0].Description,
		Icon:               body.Weather[0].Icon,
	}, nil
}

func (o *OpenWeather) forecast(ctx context.Context, city string, at time.Time) (*Report, error) {
	var body owForecast
	if err := o.get(ctx, "forecast", city, &body); err != nil {
		return nil, err
	}
	if body.List == nil {
		return nil, ErrUnexpectedPayload
	}

	samples := make([]Sample, 0, len(body.List))
	for _, entry := range body.List {
		if entry.Main.Temp == nil || len(entry.Weather) == 0 {
			continue
		}
		samples = append(samples, Sample{
			Time:               time.Unix(entry.Dt, 0).UTC(),
			TemperatureCelsius: *entry.Main.Temp,
			Description:        entry.Weather[0].Description,
			Icon:               entry.Weather[0].Icon,
		})
	}

	if len(body.List) > 0 && len(samples) == 0 {
		return nil, fmt.Errorf("%w: no usable forecast samples for %s", ErrUnexpectedPayload, city)
	}
	closest, ok := Closest(samples, at)
	if !ok {
		return nil, fmt.Errorf("%w: no forecast samples for %s", ErrNotFound, city)
	}

	forecastTime := closest.Time
	return &Report{
		City:               body.City.Name,
		TemperatureCelsius: closest.TemperatureCelsius,
		Description:        closest.Description,
		Icon:               closest.Icon,
		ForecastTime:       &forecastTime,
	}, nil
}

func (o *OpenWeather) get(ctx context.Context, endpoint, city string, out any) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", o.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("weather: build request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("weather: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("weather: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		var e owError
		_ = json.Unmarshal(raw, &e)
		return fmt.Errorf("%w: %w", ErrNotFound, &StatusError{StatusCode: resp.StatusCode, Message: e.Message})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e owError
		_ = json.Unmarshal(raw, &e)
		return &StatusError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	return nil
}

var _ Lookup = (*OpenWeather)(nil)
