package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/devevent/devevent-go/models"
)

// maxSimilarEvents caps how many recommendations a similar-events lookup returns.
const maxSimilarEvents = 6

// EventReader is the slice of the event repository the query service needs.
type EventReader interface {
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	FindByTagsExcluding(ctx context.Context, excludeID primitive.ObjectID, tags []string, max int) ([]models.Event, error)
	ListPaginated(ctx context.Context, page, limit int) ([]models.Event, int64, error)
}

// BookingCounter is the slice of the booking repository the query service needs.
type BookingCounter interface {
	CountBySlug(ctx context.Context, slug string) (int64, error)
}

// QueryService composes repository reads into the feed, similar-events, and
// booking-count queries. Best-effort reads degrade to empty/zero instead of
// surfacing errors; the feed propagates validation failures.
type QueryService struct {
	events   EventReader
	bookings BookingCounter
}

func NewQueryService(events EventReader, bookings BookingCounter) *QueryService {
	return &QueryService{events: events, bookings: bookings}
}

// Pagination describes one page of the event feed.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// EventFeed is one page of events plus its pagination metadata.
type EventFeed struct {
	Events     []models.Event `json:"events"`
	Pagination Pagination     `json:"pagination"`
}

// GetSimilarEvents returns up to six events sharing at least one tag with the
// event identified by slug, excluding that event itself. An unknown slug or
// any storage failure yields an empty slice; recommendations are cosmetic.
func (s *QueryService) GetSimilarEvents(ctx context.Context, slug string) []models.Event {
	event, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, models.ErrEventNotFound) {
			log.Printf("similar events lookup failed for %q: %v", slug, err)
		}
		return []models.Event{}
	}

	similar, err := s.events.FindByTagsExcluding(ctx, event.ID, event.Tags, maxSimilarEvents)
	if err != nil {
		log.Printf("similar events query failed for %q: %v", slug, err)
		return []models.Event{}
	}
	return similar
}

// GetBookingCount returns the number of bookings recorded for the slug,
// degrading to zero on any failure.
func (s *QueryService) GetBookingCount(ctx context.Context, slug string) int64 {
	count, err := s.bookings.CountBySlug(ctx, slug)
	if err != nil {
		log.Printf("booking count failed for %q: %v", slug, err)
		return 0
	}
	return count
}

// GetEventFeed returns the requested feed page. Pagination validation errors
// from the repository propagate to the caller.
func (s *QueryService) GetEventFeed(ctx context.Context, page, limit int) (*EventFeed, error) {
	events, total, err := s.events.ListPaginated(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return &EventFeed{
		Events: events,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
