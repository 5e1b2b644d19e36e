package domain

import (
	"context"
	"time"
)

// Booking represents an email address booked onto an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBooking creates a new Booking. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingInput is the field set accepted when creating a booking.
type BookingInput struct {
	EventID string `json:"eventId"`
	Email   string `json:"email"`
}

// BookingPatch holds a partial booking update. Nil fields are left unchanged.
type BookingPatch struct {
	EventID *string `json:"eventId"`
	Email   *string `json:"email"`
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error
}

// BookingService defines the booking model operations.
type BookingService interface {
	Create(ctx context.Context, in BookingInput) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Booking, error)
	Update(ctx context.Context, id string, patch BookingPatch) (*Booking, error)
}
