package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/servicedesk/atendimentos/internal/core/domain"
	"github.com/servicedesk/atendimentos/internal/core/ports"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
)

// EventHandler serves the service event log.
type EventHandler struct {
	events ports.EventService
	loc    *time.Location
}

// NewEventHandler creates an EventHandler rendering timestamps in loc.
func NewEventHandler(events ports.EventService, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{events: events, loc: loc}
}

// List handles GET /api/atendimentos: every event, oldest first.
//
// @Summary      List service events
// @Tags         atendimentos
// @Produce      json
// @Success      200  {array}   eventResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/atendimentos [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]eventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, h.toResponse(&events[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/atendimentos. The timestamp is always set by the
// server; an optional Idempotency-Key makes retries safe.
//
// @Summary      Record a service event
// @Tags         atendimentos
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Key to make retries safe"
// @Param        body             body      createEventRequest  true   "Service event"
// @Success      200              {object}  eventCreatedResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/atendimentos [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}

	event, replayed, err := h.events.Create(c.Request().Context(), ports.ServiceEventInput{
		Description:    req.Description,
		Category:       req.Category,
		Duration:       req.Duration,
		Author:         req.Author,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if replayed {
		c.Response().Header().Set(headerReplayed, "true")
	}
	return c.JSON(http.StatusOK, eventCreatedResponse{Msg: "Salvo", ID: event.ID})
}

func (h *EventHandler) toResponse(e *domain.ServiceEvent) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Duration:    e.Duration,
		Author:      e.Author,
		CreatedAt:   e.DisplayTime(h.loc),
	}
}
