package domain

import (
	"context"
	"time"
)

// Event represents a developer event listing.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventInput is the full field set accepted when creating an event.
// Slug, ID and timestamps are derived or system-managed and not part of the input.
type EventInput struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Overview    string   `json:"overview" validate:"notblank"`
	Image       string   `json:"image" validate:"notblank"`
	Venue       string   `json:"venue" validate:"notblank"`
	Location    string   `json:"location" validate:"notblank"`
	Date        string   `json:"date" validate:"notblank"`
	Time        string   `json:"time" validate:"notblank"`
	Mode        string   `json:"mode" validate:"notblank"`
	Audience    string   `json:"audience" validate:"notblank"`
	Agenda      []string `json:"agenda" validate:"min=1,dive,notblank"`
	Organizer   string   `json:"organizer" validate:"notblank"`
	Tags        []string `json:"tags" validate:"min=1,dive,notblank"`
}

// NewEvent returns an Event populated from in. ID and Slug are set later by the
// service and repository.
func NewEvent(in EventInput, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       in.Title,
		Description: in.Description,
		Overview:    in.Overview,
		Image:       in.Image,
		Venue:       in.Venue,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		Mode:        in.Mode,
		Audience:    in.Audience,
		Agenda:      in.Agenda,
		Organizer:   in.Organizer,
		Tags:        in.Tags,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Input returns the user-editable fields of e.
func (e *Event) Input() EventInput {
	return EventInput{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
	}
}

// EventPatch holds a partial event update. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Overview    *string   `json:"overview"`
	Image       *string   `json:"image"`
	Venue       *string   `json:"venue"`
	Location    *string   `json:"location"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Mode        *string   `json:"mode"`
	Audience    *string   `json:"audience"`
	Agenda      *[]string `json:"agenda"`
	Organizer   *string   `json:"organizer"`
	Tags        *[]string `json:"tags"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create stores e and sets its ID. Returns ErrDuplicateSlug on a slug collision.
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// List returns one page of events ordered by creation time, newest first, and the total count.
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	// Update replaces the stored event with e. Returns ErrNotFound or ErrDuplicateSlug.
	Update(ctx context.Context, e *Event) error
}

// EventService defines the event model operations: validation, derivation and persistence.
type EventService interface {
	Create(ctx context.Context, in EventInput) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
}
