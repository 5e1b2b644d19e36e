package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

type fakeBookingService struct {
	result    *domain.Booking
	list      []*domain.Booking
	err       error
	lastInput domain.BookingInput
	lastID    string
	lastEvent string
	lastPatch domain.BookingPatch
}

func (f *fakeBookingService) Create(_ context.Context, in domain.BookingInput) (*domain.Booking, error) {
	f.lastInput = in
	return f.result, f.err
}

func (f *fakeBookingService) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	f.lastID = id
	return f.result, f.err
}

func (f *fakeBookingService) ListByEvent(_ context.Context, eventID string) ([]*domain.Booking, error) {
	f.lastEvent = eventID
	return f.list, f.err
}

func (f *fakeBookingService) Update(_ context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.result, f.err
}

func TestBookingController_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"created", `{"eventId":"ev-1","email":"A@B.com"}`, nil, http.StatusCreated},
		{"missing event", `{"eventId":"ev-9","email":"a@b.com"}`, domain.ErrReferencedEventMissing, http.StatusBadRequest},
		{"bad email", `{"eventId":"ev-1","email":"nope"}`, domain.NewValidationError("Booking", domain.FieldError{Field: "email", Message: "Please provide a valid email address"}), http.StatusBadRequest},
		{"reference check failed", `{"eventId":"ev-1","email":"a@b.com"}`, fmt.Errorf("%w: %w", domain.ErrEventReferenceCheck, context.DeadlineExceeded), http.StatusInternalServerError},
		{"malformed", `[`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBookingService{
				result: &domain.Booking{ID: "bk-1", EventID: "ev-1", Email: "a@b.com"},
				err:    tt.err,
			}
			ctrl := NewBookingController(testLogger, svc)

			rr := httptest.NewRecorder()
			ctrl.CreateBooking(rr, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var body BookingMutationResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, "Booking created successfully", body.Message)
				assert.Equal(t, "a@b.com", body.Booking.Email)
				assert.Equal(t, "A@B.com", svc.lastInput.Email)
				return
			}
			assert.Equal(t, "Booking creation failed", decodeError(t, rr).Message)
		})
	}
}

func TestBookingController_GetBookingByID(t *testing.T) {
	svc := &fakeBookingService{err: domain.ErrNotFound}
	ctrl := NewBookingController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/bookings/bk-404", nil)
	req.SetPathValue("bookingID", "bk-404")
	rr := httptest.NewRecorder()
	ctrl.GetBookingByID(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "bk-404", svc.lastID)
}

func TestBookingController_ListEventBookings(t *testing.T) {
	svc := &fakeBookingService{list: []*domain.Booking{}}
	ctrl := NewBookingController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events/ev-1/bookings", nil)
	req.SetPathValue("eventID", "ev-1")
	rr := httptest.NewRecorder()
	ctrl.ListEventBookings(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"bookings":[]}`, rr.Body.String())
	assert.Equal(t, "ev-1", svc.lastEvent)
}

func TestBookingController_UpdateBooking(t *testing.T) {
	svc := &fakeBookingService{result: &domain.Booking{ID: "bk-1", EventID: "ev-2", Email: "a@b.com"}}
	ctrl := NewBookingController(testLogger, svc)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/bk-1", strings.NewReader(`{"eventId":"ev-2"}`))
	req.SetPathValue("bookingID", "bk-1")
	rr := httptest.NewRecorder()
	ctrl.UpdateBooking(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, svc.lastPatch.EventID)
	assert.Equal(t, "ev-2", *svc.lastPatch.EventID)
	assert.Nil(t, svc.lastPatch.Email)
}

type fakeChecker struct{ connected bool }

func (f fakeChecker) IsConnected(context.Context) bool { return f.connected }

func TestHealthController(t *testing.T) {
	tests := []struct {
		name      string
		connected bool
		want      string
	}{
		{"connected", true, `{"status":"ok","store":"mongodb","database":"connected"}`},
		{"disconnected", false, `{"status":"degraded","store":"mongodb","database":"disconnected"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewHealthController(fakeChecker{connected: tt.connected}, "mongodb")
			rr := httptest.NewRecorder()
			ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tt.want, rr.Body.String())
		})
	}
}
