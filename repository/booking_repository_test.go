package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/devevent/devevent-go/config"
	models "github.com/devevent/devevent-go/models"
)

// fakeEventFinder answers FindByID from a fixed set of known ids.
type fakeEventFinder struct {
	known map[primitive.ObjectID]*models.Event
}

func (f *fakeEventFinder) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	if e, ok := f.known[id]; ok {
		return e, nil
	}
	return nil, models.ErrEventNotFound
}

func newTestBookingRepo() *BookingRepository {
	cfg := &config.Config{}
	return NewBookingRepository(cfg, NewEventRepository(cfg))
}

func TestBookingCreateRejectsInvalidEmail(t *testing.T) {
	repo := newTestBookingRepo()

	_, err := repo.Create(context.Background(), "656f1f77bcf86cd799439011", "devfest-2024", "not-an-email")

	assert.True(t, errors.Is(err, models.ErrInvalidEmail))
}

func TestBookingCreateRejectsMissingSlug(t *testing.T) {
	repo := newTestBookingRepo()

	_, err := repo.Create(context.Background(), "656f1f77bcf86cd799439011", "   ", "visitor@example.com")

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "slug", vErr.Field)
}

func TestBookingCreateRejectsUnknownEvent(t *testing.T) {
	repo := NewBookingRepository(&config.Config{}, &fakeEventFinder{})

	_, err := repo.Create(context.Background(), primitive.NewObjectID().Hex(), "devfest-2024", "visitor@example.com")

	assert.True(t, errors.Is(err, models.ErrBookingEventNotFound))
}

func TestBookingCreateRejectsMalformedEventID(t *testing.T) {
	repo := newTestBookingRepo()

	_, err := repo.Create(context.Background(), "not-a-hex-id", "devfest-2024", "visitor@example.com")

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "event_id", vErr.Field)
}
