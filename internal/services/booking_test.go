package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

func setupBookingService(t *testing.T) (*fakeEventRepo, *fakeBookingRepo, *fakeEmailService, domain.BookingService, *domain.Event) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	event, err := NewEventService(eventRepo, time.Second).Create(context.Background(), validEventInput())
	require.NoError(t, err)

	bookingRepo := newFakeBookingRepo()
	mail := &fakeEmailService{}
	svc := NewBookingService(testLogger, bookingRepo, eventRepo, mail, time.Second)
	return eventRepo, bookingRepo, mail, svc, event
}

func TestBookingService_Create(t *testing.T) {
	t.Run("stores email lower-cased and trimmed", func(t *testing.T) {
		_, bookingRepo, mail, svc, event := setupBookingService(t)

		got, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "  A@B.com "})
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", got.Email)
		assert.Equal(t, event.ID, got.EventID)
		assert.Equal(t, "a@b.com", bookingRepo.byID[got.ID].Email)

		require.Len(t, mail.sent, 1)
		assert.Equal(t, "a@b.com", mail.sent[0].Email)
		assert.Equal(t, event.Title, mail.sent[0].EventTitle)
		assert.Equal(t, got.CreatedAt.Truncate(time.Millisecond), got.CreatedAt)
	})

	t.Run("generated emails are accepted", func(t *testing.T) {
		_, _, _, svc, event := setupBookingService(t)
		faker := gofakeit.New(7)
		for i := 0; i < 25; i++ {
			email := faker.Email()
			got, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: email})
			require.NoError(t, err, email)
			assert.Equal(t, strings.ToLower(email), got.Email)
		}
	})

	t.Run("missing event is a referential error", func(t *testing.T) {
		_, bookingRepo, mail, svc, _ := setupBookingService(t)

		_, err := svc.Create(context.Background(), domain.BookingInput{EventID: "ev-404", Email: "a@b.com"})
		require.ErrorIs(t, err, domain.ErrReferencedEventMissing)
		assert.Empty(t, bookingRepo.byID)
		assert.Empty(t, mail.sent)
	})

	t.Run("lookup failure is a distinct error", func(t *testing.T) {
		eventRepo, _, _, svc, event := setupBookingService(t)
		cause := errors.New("server selection timeout")
		eventRepo.err = cause

		_, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
		require.ErrorIs(t, err, domain.ErrEventReferenceCheck)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, domain.ErrReferencedEventMissing)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, _, _, svc, event := setupBookingService(t)

		for _, email := range []string{"", "   ", "ab.com", "a@b", "a b@c.com", "a@@b.com", "a\u00a0b@c.com", "a@b\u2003c.com", "a\vb@c.com", "a@b.c\ufeffom"} {
			_, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: email})
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve, email)
			assert.Equal(t, "email", ve.Fields[0].Field)
		}
	})

	t.Run("email messages", func(t *testing.T) {
		_, _, _, svc, _ := setupBookingService(t)

		_, err := svc.Create(context.Background(), domain.BookingInput{Email: "nope"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []domain.FieldError{
			{Field: "eventId", Message: "Event ID is required"},
			{Field: "email", Message: "Please provide a valid email address"},
		}, ve.Fields)
	})

	t.Run("mail failure does not fail booking", func(t *testing.T) {
		_, bookingRepo, mail, svc, event := setupBookingService(t)
		mail.err = errors.New("ses throttled")

		got, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
		require.NoError(t, err)
		assert.Contains(t, bookingRepo.byID, got.ID)
	})

	t.Run("repository error", func(t *testing.T) {
		_, bookingRepo, _, svc, event := setupBookingService(t)
		bookingRepo.err = errors.New("not primary")

		_, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
		require.Error(t, err)
		assert.False(t, domain.IsValidationError(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	ptr := func(s string) *string { return &s }

	t.Run("changing event re-checks reference", func(t *testing.T) {
		eventRepo, _, _, svc, event := setupBookingService(t)
		booking, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), booking.ID, domain.BookingPatch{EventID: ptr("ev-404")})
		require.ErrorIs(t, err, domain.ErrReferencedEventMissing)

		other := validEventInput()
		other.Title = "HackMIT 2024"
		otherEvent, err := NewEventService(eventRepo, time.Second).Create(context.Background(), other)
		require.NoError(t, err)

		got, err := svc.Update(context.Background(), booking.ID, domain.BookingPatch{EventID: ptr(otherEvent.ID)})
		require.NoError(t, err)
		assert.Equal(t, otherEvent.ID, got.EventID)
	})

	t.Run("email change skips reference check", func(t *testing.T) {
		eventRepo, _, _, svc, event := setupBookingService(t)
		booking, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
		require.NoError(t, err)

		eventRepo.err = errors.New("event store down")
		got, err := svc.Update(context.Background(), booking.ID, domain.BookingPatch{Email: ptr(" New@Example.org ")})
		require.NoError(t, err)
		assert.Equal(t, "new@example.org", got.Email)
		assert.Equal(t, booking.CreatedAt, got.CreatedAt)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, _, _, svc, event := setupBookingService(t)
		booking, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), booking.ID, domain.BookingPatch{Email: ptr("broken")})
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("not found", func(t *testing.T) {
		_, _, _, svc, _ := setupBookingService(t)
		_, err := svc.Update(context.Background(), "bk-404", domain.BookingPatch{Email: ptr("a@b.com")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_ListByEvent(t *testing.T) {
	_, _, _, svc, event := setupBookingService(t)

	got, err := svc.ListByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	for _, email := range []string{"a@b.com", "c@d.com"} {
		_, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: email})
		require.NoError(t, err)
	}
	got, err = svc.ListByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.ListByEvent(context.Background(), "ev-404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_GetByID(t *testing.T) {
	_, _, _, svc, event := setupBookingService(t)
	created, err := svc.Create(context.Background(), domain.BookingInput{EventID: event.ID, Email: "a@b.com"})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetByID(context.Background(), "bk-404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
