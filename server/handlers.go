package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ogreowl/flightdesk/conflict"
	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/schedule"
	"github.com/ogreowl/flightdesk/toolchain"
)

// WeatherFailure is the body of a 404 from POST /api/weather.
const WeatherFailure = "Failed to fetch weather data"

type chatRequest struct {
	Message     string          `json:"message" binding:"required"`
	ChatHistory []dispatch.Turn `json:"chatHistory"`
}

type addFlightRequest struct {
	DepartureAirport string `json:"departureAirport" binding:"required"`
	ArrivalAirport   string `json:"arrivalAirport" binding:"required"`
	AircraftID       string `json:"aircraftId" binding:"required"`
	DepartureTime    string `json:"departureTime" binding:"required"`
}

type editFlightRequest struct {
	DepartureAirport *string `json:"departureAirport"`
	ArrivalAirport   *string `json:"arrivalAirport"`
	AircraftID       *string `json:"aircraftId"`
	DepartureTime    *string `json:"departureTime"`
}

type weatherRequest struct {
	City string `json:"city" binding:"required"`
	Date string `json:"date"`
}

type warning struct {
	conflict.Conflict
	Message string `json:"message"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func flightNotFound(c *gin.Context, id string) {
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Could not find flight with ID %s.", id)})
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	for i, t := range req.ChatHistory {
		if !t.Role.Valid() {
			badRequest(c, fmt.Errorf("chatHistory[%d]: unknown role %q", i, t.Role))
			return
		}
	}

	result := s.agent.Next(c.Request.Context(), req.ChatHistory, req.Message)
	if result.Err != nil {
		s.log.Error().Err(result.Err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("tool", result.ToolName).
			Msg("chat round degraded")
	}
	if result.Notes == nil {
		result.Notes = []dispatch.Turn{}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listFlights(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Flights())
}

func (s *Server) getFlight(c *gin.Context) {
	id := c.Param("id")
	f, ok := s.store.Flight(id)
	if !ok {
		flightNotFound(c, id)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) addFlight(c *gin.Context) {
	var req addFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	dep, err := toolchain.ParseTime(req.DepartureTime)
	if err != nil {
		badRequest(c, err)
		return
	}

	f := s.store.AddFlight(schedule.NewFlight{
		DepartureAirport: strings.ToUpper(req.DepartureAirport),
		ArrivalAirport:   strings.ToUpper(req.ArrivalAirport),
		AircraftID:       req.AircraftID,
		DepartureTime:    dep,
	})
	c.JSON(http.StatusCreated, f)
}

func (s *Server) editFlight(c *gin.Context) {
	var req editFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var u schedule.FlightUpdate
	if req.DepartureAirport != nil {
		code := strings.ToUpper(*req.DepartureAirport)
		u.DepartureAirport = &code
	}
	if req.ArrivalAirport != nil {
		code := strings.ToUpper(*req.ArrivalAirport)
		u.ArrivalAirport = &code
	}
	u.AircraftID = req.AircraftID
	if req.DepartureTime != nil {
		dep, err := toolchain.ParseTime(*req.DepartureTime)
		if err != nil {
			badRequest(c, err)
			return
		}
		u.DepartureTime = &dep
	}
	if u.IsEmpty() {
		badRequest(c, errors.New("no fields to update"))
		return
	}

	id := c.Param("id")
	f, ok := s.store.UpdateFlight(id, u)
	if !ok {
		flightNotFound(c, id)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) deleteFlight(c *gin.Context) {
	id := c.Param("id")
	if !s.store.DeleteFlight(id) {
		flightNotFound(c, id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAircraft(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Aircraft())
}

func (s *Server) listAirports(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Airports())
}

// warnings lists detected conflicts. A flightId query narrows the list to
// conflicts naming that flight.
func (s *Server) warnings(c *gin.Context) {
	conflicts := conflict.Detect(s.store.Flights())
	if id := c.Query("flightId"); id != "" {
		kept := conflicts[:0]
		for _, cf := range conflicts {
			if cf.Involves(id) {
				kept = append(kept, cf)
			}
		}
		conflicts = kept
	}
	out := make([]warning, len(conflicts))
	for i, cf := range conflicts {
		out[i] = warning{Conflict: cf, Message: cf.Message()}
	}
	c.JSON(http.StatusOK, gin.H{
		"warnings": out,
		"summary":  dispatch.WarningsReply(conflicts),
	})
}

// checkWeather answers the weather form. Any lookup failure is a 404 with a
// fixed message.
func (s *Server) checkWeather(c *gin.Context) {
	var req weatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var at *time.Time
	if strings.TrimSpace(req.Date) != "" {
		t, err := toolchain.ParseTime(req.Date)
		if err != nil {
			badRequest(c, err)
			return
		}
		at = &t
	}

	if s.weather == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": WeatherFailure})
		return
	}
	report, err := s.weather.Resolve(c.Request.Context(), req.City, at)
	if err != nil || report == nil {
		s.log.Warn().Err(err).Str("city", req.City).Msg("weather lookup failed")
		c.JSON(http.StatusNotFound, gin.H{"error": WeatherFailure})
		return
	}
	c.JSON(http.StatusOK, report)
}
