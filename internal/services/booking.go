package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"devevent/internal/domain"
)

// bookingFields is the validated shape of a booking after normalization.
type bookingFields struct {
	EventID string `json:"eventId" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,email_shape"`
}

type bookingService struct {
	logger         *slog.Logger
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	validate       *validator.Validate
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil, in which
// case no confirmation is sent.
func NewBookingService(
	logger *slog.Logger,
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		logger:         logger,
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		validate:       newValidator(),
		contextTimeout: timeout,
	}
}

func (s *bookingService) Create(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fields := normalizeBooking(in.EventID, in.Email)
	if err := validateStruct(s.validate, bookingEntity, fields); err != nil {
		return nil, err
	}

	event, err := s.checkEventReference(ctx, fields.EventID)
	if err != nil {
		return nil, err
	}

	now := timestamp()
	booking := domain.NewBooking(fields.EventID, fields.Email, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, event, booking)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

// Update applies patch to the stored booking. The event reference is checked
// again only when eventId changes.
func (s *bookingService) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	eventID, email := current.EventID, current.Email
	if patch.EventID != nil {
		eventID = *patch.EventID
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	fields := normalizeBooking(eventID, email)
	if fields.EventID == current.EventID && fields.Email == current.Email {
		return current, nil
	}
	if err := validateStruct(s.validate, bookingEntity, fields); err != nil {
		return nil, err
	}
	if fields.EventID != current.EventID {
		if _, err := s.checkEventReference(ctx, fields.EventID); err != nil {
			return nil, err
		}
	}

	updated := &domain.Booking{
		ID:        current.ID,
		EventID:   fields.EventID,
		Email:     fields.Email,
		CreatedAt: current.CreatedAt,
		UpdatedAt: timestamp(),
	}
	if err := s.bookingRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return updated, nil
}

// checkEventReference returns the referenced event, ErrReferencedEventMissing when it
// does not exist, or ErrEventReferenceCheck when the lookup itself fails.
func (s *bookingService) checkEventReference(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrReferencedEventMissing
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrEventReferenceCheck, err)
	}
	return event, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	err := s.emailService.SendBookingConfirmation(ctx, &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	})
	if err != nil {
		// The booking is already stored; a failed mail must not undo it.
		s.logger.WarnContext(ctx, "booking confirmation not sent", "booking_id", booking.ID, "err", err)
	}
}

func normalizeBooking(eventID, email string) bookingFields {
	return bookingFields{
		EventID: strings.TrimSpace(eventID),
		Email:   strings.ToLower(strings.TrimSpace(email)),
	}
}
