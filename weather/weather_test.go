package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogreowl/flightdesk/schedule"
)

func TestClosest(t *testing.T) {
	base := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	samples := []Sample{
		{Time: base.Add(9 * time.Hour), Description: "nine"},
		{Time: base.Add(12 * time.Hour), Description: "twelve"},
		{Time: base.Add(15 * time.Hour), Description: "fifteen"},
	}

	tests := []struct {
		name     string
		target   time.Time
		expected string
	}{
		{name: "exact", target: base.Add(12 * time.Hour), expected: "twelve"},
		{name: "nearest before", target: base.Add(13 * time.Hour), expected: "twelve"},
		{name: "nearest after", target: base.Add(14 * time.Hour), expected: "fifteen"},
		{name: "tie keeps earliest in list", target: base.Add(13*time.Hour + 30*time.Minute), expected: "twelve"},
		{name: "before all", target: base, expected: "nine"},
		{name: "after all", target: base.Add(48 * time.Hour), expected: "fifteen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(samples, tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got.Description)
		})
	}
}

func TestClosest_Empty(t *testing.T) {
	_, ok := Closest(nil, time.Now())
	assert.False(t, ok)
}

func TestCityFor(t *testing.T) {
	airports := schedule.DefaultAirports()

	assert.Equal(t, "New York", CityFor(airports, "JFK"))
	assert.Equal(t, "San Francisco", CityFor(airports, "sfo"))
	assert.Equal(t, "Paris", CityFor(airports, "Paris"))
	assert.Equal(t, "XYZ", CityFor(airports, "XYZ"))
	assert.Equal(t, "", CityFor(airports, ""))
}

func TestReport_RoundedCelsius(t *testing.T) {
	tests := []struct {
		temp     float64
		expected int
	}{
		{temp: 21.4, expected: 21},
		{temp: 21.5, expected: 22},
		{temp: -2.5, expected: -2},
		{temp: -2.6, expected: -3},
		{temp: 0, expected: 0},
	}

	for _, tt := range tests {
		r := &Report{TemperatureCelsius: tt.temp}
		assert.Equal(t, tt.expected, r.RoundedCelsius(), "%v", tt.temp)
	}
}

const forecastBody = `{
  "city": {"name": "New York"},
  "list": [
    {"dt": 1718269200, "main": {"temp": 18.2}, "weather": [{"description": "light rain", "icon": "10d"}]},
    {"dt": 1718280000, "main": {"temp": 22.6}, "weather": [{"description": "clear sky", "icon": "01d"}]},
    {"dt": 1718290800, "main": {"temp": 24.1}, "weather": [{"description": "few clouds", "icon": "02d"}]}
  ]
}`

const currentBody = `{
  "name": "Los Angeles",
  "main": {"temp": 25.3},
  "weather": [{"description": "haze", "icon": "50d"}]
}`

func newServer(t *testing.T, handler http.HandlerFunc) (*OpenWeather, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return NewOpenWeather("test-key").WithBaseURL(srv.URL + "/").WithHTTPClient(srv.Client()), &requests
}

func TestOpenWeather_Forecast(t *testing.T) {
	client, requests := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastBody))
	})

	// 2024-06-13 12:00 UTC; samples are at 09:00, 12:00 and 15:00.
	at := time.Date(2024, 6, 13, 12, 10, 0, 0, time.UTC)
	report, err := client.Resolve(context.Background(), "JFK", &at)
	require.NoError(t, err)

	assert.Equal(t, "New York", report.City)
	assert.Equal(t, 22.6, report.TemperatureCelsius)
	assert.Equal(t, "clear sky", report.Description)
	assert.Equal(t, "01d", report.Icon)
	require.NotNil(t, report.ForecastTime)
	assert.Equal(t, time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC), *report.ForecastTime)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, "/forecast", req.URL.Path)
	assert.Equal(t, "New York", req.URL.Query().Get("q"))
	assert.Equal(t, "test-key", req.URL.Query().Get("appid"))
	assert.Equal(t, "metric", req.URL.Query().Get("units"))
}

func TestOpenWeather_Current(t *testing.T) {
	client, requests := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentBody))
	})

	report, err := client.Resolve(context.Background(), "LAX", nil)
	require.NoError(t, err)

	assert.Equal(t, &Report{
		City:               "Los Angeles",
		TemperatureCelsius: 25.3,
		Description:        "haze",
		Icon:               "50d",
	}, report)

	require.Len(t, *requests, 1)
	assert.Equal(t, "/weather", (*requests)[0].URL.Path)
	assert.Equal(t, "Los Angeles", (*requests)[0].URL.Query().Get("q"))
}

func TestOpenWeather_CityPassThrough(t *testing.T) {
	client, requests := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentBody))
	})

	_, err := client.Resolve(context.Background(), "Lisbon", nil)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", (*requests)[0].URL.Query().Get("q"))
}

func TestOpenWeather_CustomAirports(t *testing.T) {
	client, requests := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentBody))
	})
	client.WithAirports([]schedule.Airport{{Code: "LIS", Name: "Humberto Delgado", City: "Lisbon"}})

	_, err := client.Resolve(context.Background(), "LIS", nil)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", (*requests)[0].URL.Query().Get("q"))
}

func TestOpenWeather_Failures(t *testing.T) {
	at := time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  int
		body    string
		at      *time.Time
		target  error
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "city not found",
			status: http.StatusNotFound,
			body:   `{"cod":"404","message":"city not found"}`,
			at:     &at,
			target: ErrNotFound,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"cod":401,"message":"Invalid API key"}`,
			at:     nil,
			checkFn: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
				assert.Equal(t, "Invalid API key", se.Message)
			},
		},
		{
			name:   "forecast without list",
			status: http.StatusOK,
			body:   `{"cod":"200","city":{"name":"New York"}}`,
			at:     &at,
			target: ErrUnexpectedPayload,
		},
		{
			name:   "forecast with empty list",
			status: http.StatusOK,
			body:   `{"city":{"name":"New York"},"list":[]}`,
			at:     &at,
			target: ErrNotFound,
		},
		{
			name:   "forecast with only malformed entries",
			status: http.StatusOK,
			body:   `{"city":{"name":"New York"},"list":[{"dt":1718280000,"main":{},"weather":[]}]}`,
			at:     &at,
			target: ErrUnexpectedPayload,
		},
		{
			name:   "current without weather entries",
			status: http.StatusOK,
			body:   `{"name":"New York","main":{"temp":20},"weather":[]}`,
			at:     nil,
			target: ErrUnexpectedPayload,
		},
		{
			name:   "current without temperature",
			status: http.StatusOK,
			body:   `{"name":"New York","main":{},"weather":[{"description":"x","icon":"y"}]}`,
			at:     nil,
			target: ErrUnexpectedPayload,
		},
		{
			name:   "not JSON",
			status: http.StatusOK,
			body:   `<html>oops</html>`,
			at:     nil,
			target: ErrUnexpectedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			report, err := client.Resolve(context.Background(), "JFK", tt.at)

			require.Error(t, err)
			assert.Nil(t, report)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.checkFn != nil {
				tt.checkFn(t, err)
			}
		})
	}
}

func TestOpenWeather_ForecastSkipsMalformedEntries(t *testing.T) {
	// 09:00 has no temperature and 12:00 has no conditions; 15:00 is usable.
	body := `{
  "city": {"name": "New York"},
  "list": [
    {"dt": 1718269200, "main": {}, "weather": [{"description": "mist", "icon": "50d"}]},
    {"dt": 1718280000, "main": {"temp": 22.6}, "weather": []},
    {"dt": 1718290800, "main": {"temp": 24.1}, "weather": [{"description": "few clouds", "icon": "02d"}]}
  ]
}`
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	at := time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC)
	report, err := client.Resolve(context.Background(), "JFK", &at)
	require.NoError(t, err)

	assert.Equal(t, 24.1, report.TemperatureCelsius)
	assert.Equal(t, "few clouds", report.Description)
	require.NotNil(t, report.ForecastTime)
	assert.Equal(t, time.Date(2024, 6, 13, 15, 0, 0, 0, time.UTC), *report.ForecastTime)
}

func TestOpenWeather_ClientOptions(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	client := NewOpenWeather("k").WithHTTPClient(shared).WithTimeout(2 * time.Second)
	assert.Equal(t, 2*time.Second, client.client.Timeout)
	assert.Equal(t, time.Minute, shared.Timeout)

	assert.NotPanics(t, func() {
		client = NewOpenWeather("k").WithHTTPClient(nil).WithTimeout(3 * time.Second)
	})
	require.NotNil(t, client.client)
	assert.Equal(t, 3*time.Second, client.client.Timeout)

	client = NewOpenWeather("k").WithHTTPClient(nil)
	require.NotNil(t, client.client)
	assert.Equal(t, defaultTimeout, client.client.Timeout)
}

func TestOpenWeather_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewOpenWeather("k").WithBaseURL(srv.URL)
	_, err := client.Resolve(context.Background(), "JFK", nil)
	assert.Error(t, err)
}

func TestOpenWeather_ContextCancelled(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Resolve(ctx, "JFK", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusError(t *testing.T) {
	assert.Equal(t, "weather: provider returned status 500", (&StatusError{StatusCode: 500}).Error())
	assert.Equal(t, "weather: provider returned status 401: bad key",
		(&StatusError{StatusCode: 401, Message: "bad key"}).Error())
}
