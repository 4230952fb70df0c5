package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/devevent/devevent-go/config"
	models "github.com/devevent/devevent-go/models"
)

// Pagination bounds for ListPaginated.
const (
	MinPageLimit = 1
	MaxPageLimit = 100
)

// EventRepository owns the events collection: creation with canonicalization,
// slug lookups, the paginated feed, and the tag-overlap query behind similar
// events.
type EventRepository struct {
	cfg *config.Config
}

func NewEventRepository(cfg *config.Config) *EventRepository {
	return &EventRepository{cfg: cfg}
}

func (r *EventRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.cfg.DB(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("events"), nil
}

// Create validates and normalizes the input, then inserts the event. A
// duplicate slug surfaces as models.ErrDuplicateSlug via the unique index.
// Validation runs before any connection attempt, so invalid input never
// touches storage.
func (r *EventRepository) Create(ctx context.Context, in models.EventInput) (*models.Event, error) {
	event, err := models.NewEvent(in)
	if err != nil {
		return nil, err
	}

	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicateSlug
		}
		return nil, err
	}
	return event, nil
}

// FindBySlug looks up an event by its slug. Slugs are stored lowercase, so
// the lookup is effectively case-insensitive.
func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var event models.Event
	err = col.FindOne(ctx, bson.M{"slug": strings.ToLower(strings.TrimSpace(slug))}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByID resolves an event by its object id; used by the booking
// referential-integrity check.
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var event models.Event
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListPaginated returns one page of events ordered by creation time
// descending, plus the total event count. Fails with
// models.ErrInvalidPagination when page < 1 or limit is outside [1,100].
func (r *EventRepository) ListPaginated(ctx context.Context, page, limit int) ([]models.Event, int64, error) {
	if page < 1 || limit < MinPageLimit || limit > MaxPageLimit {
		return nil, 0, models.ErrInvalidPagination
	}

	col, err := r.collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// FindByTagsExcluding returns up to max events sharing at least one of the
// given tags, excluding the event with the given id. Ordering beyond "up to
// max matches" is whatever storage returns.
func (r *EventRepository) FindByTagsExcluding(ctx context.Context, excludeID primitive.ObjectID, tags []string, max int) ([]models.Event, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"_id":  bson.M{"$ne": excludeID},
		"tags": bson.M{"$in": tags},
	}
	cursor, err := col.Find(ctx, filter, options.Find().SetLimit(int64(max)))
	if err != nil {
		return nil, err
	}

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
