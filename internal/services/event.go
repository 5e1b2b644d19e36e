package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"devevent/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	validate       *validator.Validate
	contextTimeout time.Duration
}

// NewEventService returns the EventService that validates, derives and stores events.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		validate:       newValidator(),
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in = trimEventInput(in)
	if err := validateStruct(s.validate, eventEntity, in); err != nil {
		return nil, err
	}

	now := timestamp()
	event := domain.NewEvent(in, now, now)
	if err := deriveEventFields(event, allEventChanges); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// Update applies patch to the stored event. Only fields that actually change
// re-trigger slug, date or time derivation.
func (s *eventService) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	in := trimEventInput(applyEventPatch(current.Input(), patch))
	old := current.Input()
	changes := eventChanges{
		title: in.Title != old.Title,
		date:  in.Date != old.Date,
		time:  in.Time != old.Time,
	}
	if eventInputEqual(in, old) {
		return current, nil
	}

	if err := validateStruct(s.validate, eventEntity, in); err != nil {
		return nil, err
	}

	updated := domain.NewEvent(in, current.CreatedAt, timestamp())
	updated.ID = current.ID
	updated.Slug = current.Slug
	if err := deriveEventFields(updated, changes); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func trimEventInput(in domain.EventInput) domain.EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Overview = strings.TrimSpace(in.Overview)
	in.Image = strings.TrimSpace(in.Image)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Location = strings.TrimSpace(in.Location)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Mode = strings.TrimSpace(in.Mode)
	in.Audience = strings.TrimSpace(in.Audience)
	in.Organizer = strings.TrimSpace(in.Organizer)
	return in
}

func applyEventPatch(in domain.EventInput, p domain.EventPatch) domain.EventInput {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&in.Title, p.Title)
	set(&in.Description, p.Description)
	set(&in.Overview, p.Overview)
	set(&in.Image, p.Image)
	set(&in.Venue, p.Venue)
	set(&in.Location, p.Location)
	set(&in.Date, p.Date)
	set(&in.Time, p.Time)
	set(&in.Mode, p.Mode)
	set(&in.Audience, p.Audience)
	set(&in.Organizer, p.Organizer)
	if p.Agenda != nil {
		in.Agenda = *p.Agenda
	}
	if p.Tags != nil {
		in.Tags = *p.Tags
	}
	return in
}

func eventInputEqual(a, b domain.EventInput) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.Overview == b.Overview &&
		a.Image == b.Image &&
		a.Venue == b.Venue &&
		a.Location == b.Location &&
		a.Date == b.Date &&
		a.Time == b.Time &&
		a.Mode == b.Mode &&
		a.Audience == b.Audience &&
		a.Organizer == b.Organizer &&
		slices.Equal(a.Agenda, b.Agenda) &&
		slices.Equal(a.Tags, b.Tags)
}
