package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/devevent/devevent-go/models"
)

// fakeEventReader is an in-memory EventReader for tests.
type fakeEventReader struct {
	bySlug  map[string]*models.Event
	similar []models.Event
	list    []models.Event // pre-sorted by creation time descending
	err     error

	gotExclude primitive.ObjectID
	gotTags    []string
	gotMax     int
}

func (f *fakeEventReader) FindBySlug(_ context.Context, slug string) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventReader) FindByTagsExcluding(_ context.Context, excludeID primitive.ObjectID, tags []string, max int) ([]models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotExclude = excludeID
	f.gotTags = tags
	f.gotMax = max
	return f.similar, nil
}

func (f *fakeEventReader) ListPaginated(_ context.Context, page, limit int) ([]models.Event, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	if page < 1 || limit < 1 || limit > 100 {
		return nil, 0, models.ErrInvalidPagination
	}
	skip := (page - 1) * limit
	if skip > len(f.list) {
		return []models.Event{}, int64(len(f.list)), nil
	}
	end := skip + limit
	if end > len(f.list) {
		end = len(f.list)
	}
	return f.list[skip:end], int64(len(f.list)), nil
}

// fakeBookingCounter is an in-memory BookingCounter for tests.
type fakeBookingCounter struct {
	count int64
	err   error
}

func (f *fakeBookingCounter) CountBySlug(context.Context, string) (int64, error) {
	return f.count, f.err
}

func newTestEvent(title string, tags []string, createdAt time.Time) models.Event {
	return models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Slug:      models.GenerateSlug(title),
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestGetSimilarEvents(t *testing.T) {
	source := newTestEvent("React Summit", []string{"react", "ai"}, time.Now())
	reader := &fakeEventReader{
		bySlug: map[string]*models.Event{"react-summit": &source},
		similar: []models.Event{
			newTestEvent("AI Conf", []string{"ai"}, time.Now()),
			newTestEvent("React Meetup", []string{"react"}, time.Now()),
		},
	}
	svc := NewQueryService(reader, &fakeBookingCounter{})

	got := svc.GetSimilarEvents(context.Background(), "react-summit")

	assert.Len(t, got, 2)
	assert.Equal(t, source.ID, reader.gotExclude)
	assert.Equal(t, source.Tags, reader.gotTags)
	assert.Equal(t, 6, reader.gotMax)
}

func TestGetSimilarEventsUnknownSlug(t *testing.T) {
	svc := NewQueryService(&fakeEventReader{bySlug: map[string]*models.Event{}}, &fakeBookingCounter{})

	got := svc.GetSimilarEvents(context.Background(), "nope")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetSimilarEventsStorageError(t *testing.T) {
	svc := NewQueryService(&fakeEventReader{err: errors.New("connection refused")}, &fakeBookingCounter{})

	got := svc.GetSimilarEvents(context.Background(), "react-summit")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetBookingCount(t *testing.T) {
	svc := NewQueryService(&fakeEventReader{}, &fakeBookingCounter{count: 4})
	assert.Equal(t, int64(4), svc.GetBookingCount(context.Background(), "devfest-2024"))
}

func TestGetBookingCountDegradesToZero(t *testing.T) {
	svc := NewQueryService(&fakeEventReader{}, &fakeBookingCounter{err: errors.New("connection refused")})
	assert.Equal(t, int64(0), svc.GetBookingCount(context.Background(), "devfest-2024"))
}

func TestGetEventFeed(t *testing.T) {
	now := time.Now()
	reader := &fakeEventReader{}
	for i := 0; i < 12; i++ {
		// Newest first, mirroring the repository sort order.
		reader.list = append(reader.list, newTestEvent(
			fmt.Sprintf("Event %d", i), []string{"go"}, now.Add(-time.Duration(i)*time.Hour),
		))
	}
	svc := NewQueryService(reader, &fakeBookingCounter{})

	feed, err := svc.GetEventFeed(context.Background(), 2, 5)
	require.NoError(t, err)

	assert.Len(t, feed.Events, 5)
	assert.Equal(t, "Event 5", feed.Events[0].Title)
	assert.Equal(t, "Event 9", feed.Events[4].Title)
	assert.Equal(t, Pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3}, feed.Pagination)
}

func TestGetEventFeedInvalidPagination(t *testing.T) {
	svc := NewQueryService(&fakeEventReader{}, &fakeBookingCounter{})

	for _, tc := range []struct{ page, limit int }{{0, 10}, {1, 0}, {1, 101}} {
		_, err := svc.GetEventFeed(context.Background(), tc.page, tc.limit)
		assert.True(t, errors.Is(err, models.ErrInvalidPagination), "page=%d limit=%d", tc.page, tc.limit)
	}
}
