package controllers

import (
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

const (
	msgBookingCreated      = "Booking created successfully"
	msgBookingCreateFailed = "Booking creation failed"
	msgBookingUpdated      = "Booking updated successfully"
	msgBookingUpdateFailed = "Booking update failed"
	msgBookingFetchFailed  = "Failed to fetch booking"
	msgBookingsFetchFailed = "Failed to fetch bookings"
)

// BookingMutationResponse is the body returned by POST /bookings (201) and PATCH /bookings/{bookingID} (200).
type BookingMutationResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

type BookingResponse struct {
	Booking *domain.Booking `json:"booking"`
}

type ListBookingsResponse struct {
	Bookings []*domain.Booking `json:"bookings"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc}
}

// CreateBooking godoc
// @Summary Book an event
// @Description Stores the email (trimmed, lower-cased) against an existing event and sends a confirmation email.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body domain.BookingInput true "Booking data"
// @Success 201 {object} controllers.BookingMutationResponse
// @Failure 400 {object} helpers.ErrorResponse "validation failure or the event does not exist"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		writeFailure(c.Logger, w, r, msgBookingCreateFailed, err)
		return
	}
	booking, err := c.Service.Create(r.Context(), in)
	if err != nil {
		writeFailure(c.Logger, w, r, msgBookingCreateFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, BookingMutationResponse{Message: msgBookingCreated, Booking: booking})
}

// GetBookingByID godoc
// @Summary Get a booking by ID
// @Tags bookings
// @Produce json
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} controllers.BookingResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /bookings/{bookingID} [get]
func (c *BookingController) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := c.Service.GetByID(r.Context(), r.PathValue("bookingID"))
	if err != nil {
		writeFailure(c.Logger, w, r, msgBookingFetchFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, BookingResponse{Booking: booking})
}

// ListEventBookings godoc
// @Summary List the bookings of an event
// @Tags bookings
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListBookingsResponse
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ListByEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeFailure(c.Logger, w, r, msgBookingsFetchFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListBookingsResponse{Bookings: bookings})
}

// UpdateBooking godoc
// @Summary Update a booking
// @Description Changes the email or moves the booking to another existing event.
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID"
// @Param body body domain.BookingPatch true "Fields to update (all optional)"
// @Success 200 {object} controllers.BookingMutationResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /bookings/{bookingID} [patch]
func (c *BookingController) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var patch domain.BookingPatch
	if err := helpers.DecodeJSON(w, r, &patch); err != nil {
		writeFailure(c.Logger, w, r, msgBookingUpdateFailed, err)
		return
	}
	booking, err := c.Service.Update(r.Context(), r.PathValue("bookingID"), patch)
	if err != nil {
		writeFailure(c.Logger, w, r, msgBookingUpdateFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, BookingMutationResponse{Message: msgBookingUpdated, Booking: booking})
}
