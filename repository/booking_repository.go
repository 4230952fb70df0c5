package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/devevent/devevent-go/config"
	models "github.com/devevent/devevent-go/models"
)

// EventFinder resolves event references for the write-time integrity check.
type EventFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
}

// BookingRepository owns the bookings collection. Creation enforces the
// system's one cross-entity rule: a booking must reference an event that
// exists at write time. The check is procedural, not a storage-level foreign
// key; since events are never deleted, the check-then-write gap is benign.
type BookingRepository struct {
	cfg    *config.Config
	events EventFinder
}

func NewBookingRepository(cfg *config.Config, events EventFinder) *BookingRepository {
	return &BookingRepository{cfg: cfg, events: events}
}

func (r *BookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.cfg.DB(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("bookings"), nil
}

// Create validates the email, verifies the referenced event exists, and
// persists the booking. The slug is stored alongside event_id, lowercased and
// trimmed, so counts can be served without a join.
func (r *BookingRepository) Create(ctx context.Context, eventID, slug, email string) (*models.Booking, error) {
	normalizedEmail, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	normalizedSlug := strings.ToLower(strings.TrimSpace(slug))
	if normalizedSlug == "" {
		return nil, &models.ValidationError{Field: "slug", Message: "slug is required"}
	}

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(eventID))
	if err != nil {
		return nil, &models.ValidationError{Field: "event_id", Message: "event_id must be a valid object id"}
	}

	if _, err := r.events.FindByID(ctx, oid); err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, models.ErrBookingEventNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:        primitive.NewObjectID(),
		EventID:   oid,
		Slug:      normalizedSlug,
		Email:     normalizedEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}

	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CountBySlug returns how many bookings exist for the given event slug.
func (r *BookingRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{"slug": strings.ToLower(strings.TrimSpace(slug))})
}
