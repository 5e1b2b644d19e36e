package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devevent/internal/domain"
)

type bookingRepository struct {
	source Source
}

func NewBookingRepository(source Source) domain.BookingRepository {
	return &bookingRepository{source: source}
}

func (r *bookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.source.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(BookingsCollection), nil
}

func (r *bookingRepository) toDocument(id primitive.ObjectID, b *domain.Booking) (bookingDocument, error) {
	eventID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return bookingDocument{}, fmt.Errorf("event id %q: %w", b.EventID, err)
	}
	return bookingDocument{
		ID:        id,
		EventID:   eventID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	id := primitive.NewObjectID()
	doc, err := r.toDocument(id, b)
	if err != nil {
		return err
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID = id.Hex()
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc bookingDocument
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return []*domain.Booking{}, nil
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := coll.Find(ctx, bson.D{{Key: "eventId", Value: oid}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	bookings := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toDomain())
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	doc, err := r.toDocument(oid, b)
	if err != nil {
		return err
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	res, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return fmt.Errorf("replace booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
