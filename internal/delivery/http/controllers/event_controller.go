package controllers

import (
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// Response messages for event operations.
const (
	msgEventCreated      = "Event created successfully"
	msgEventCreateFailed = "Event creation failed"
	msgEventUpdated      = "Event updated successfully"
	msgEventUpdateFailed = "Event update failed"
	msgEventFetchFailed  = "Failed to fetch event"
	msgEventsFetchFailed = "Failed to fetch events"
)

// EventMutationResponse is the body returned by POST /events (201) and PATCH /events/{eventID} (200).
type EventMutationResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// EventResponse is the body returned by the single-event lookups.
type EventResponse struct {
	Event *domain.Event `json:"event"`
}

// ListEventsResponse is the body returned by GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Validates the event, derives its slug from the title, normalizes the date to YYYY-MM-DD and stores it. Fields outside the input set (id, slug, timestamps) are ignored.
// @Tags events
// @Accept json
// @Produce json
// @Param event body domain.EventInput true "Event data"
// @Success 201 {object} controllers.EventMutationResponse
// @Failure 400 {object} helpers.ErrorResponse "malformed body or validation failure; fields lists each invalid field"
// @Failure 409 {object} helpers.ErrorResponse "an event with this slug already exists"
// @Failure 500 {object} helpers.ErrorResponse "storage or connection failure"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		writeFailure(c.Logger, w, r, msgEventCreateFailed, err)
		return
	}
	event, err := c.Service.Create(r.Context(), in)
	if err != nil {
		writeFailure(c.Logger, w, r, msgEventCreateFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, EventMutationResponse{Message: msgEventCreated, Event: event})
}

// ListEvents godoc
// @Summary List events
// @Description Returns events newest first, one page at a time.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		writeFailure(c.Logger, w, r, msgEventsFetchFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetByID(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeFailure(c.Logger, w, r, msgEventFetchFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Event: event})
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /slugs/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeFailure(c.Logger, w, r, msgEventFetchFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Event: event})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies the given fields, re-validates the event and re-derives only what changed: a new title gives a new slug, a new date is normalized again.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body domain.EventPatch true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventMutationResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch domain.EventPatch
	if err := helpers.DecodeJSON(w, r, &patch); err != nil {
		writeFailure(c.Logger, w, r, msgEventUpdateFailed, err)
		return
	}
	event, err := c.Service.Update(r.Context(), r.PathValue("eventID"), patch)
	if err != nil {
		writeFailure(c.Logger, w, r, msgEventUpdateFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventMutationResponse{Message: msgEventUpdated, Event: event})
}
