package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventInput() EventInput {
	return EventInput{
		Title:       "DevFest 2024",
		Description: "A community developer festival",
		Overview:    "Talks, workshops, and networking",
		Image:       "https://res.cloudinary.com/demo/image/upload/devfest.jpg",
		Venue:       "Convention Center",
		Location:    "Nairobi",
		Date:        "2024-03-05",
		Time:        "14:30",
		Mode:        "offline",
		Audience:    "developers",
		Organizer:   "GDG Nairobi",
		Agenda:      []string{"Keynote", "Workshops"},
		Tags:        []string{"gdg", "community"},
	}
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(validEventInput())
	require.NoError(t, err)

	assert.False(t, event.ID.IsZero())
	assert.Equal(t, "devfest-2024", event.Slug)
	assert.Equal(t, "2024-03-05", event.Date)
	assert.Equal(t, "2:30 PM", event.Time)
	assert.Equal(t, ModeOffline, event.Mode)
	assert.Equal(t, event.CreatedAt, event.UpdatedAt)
}

func TestNewEventMissingFields(t *testing.T) {
	mutations := map[string]func(*EventInput){
		"title":       func(in *EventInput) { in.Title = "" },
		"description": func(in *EventInput) { in.Description = "   " },
		"overview":    func(in *EventInput) { in.Overview = "" },
		"image":       func(in *EventInput) { in.Image = "" },
		"venue":       func(in *EventInput) { in.Venue = "" },
		"location":    func(in *EventInput) { in.Location = "" },
		"date":        func(in *EventInput) { in.Date = "" },
		"time":        func(in *EventInput) { in.Time = "" },
		"mode":        func(in *EventInput) { in.Mode = "" },
		"audience":    func(in *EventInput) { in.Audience = "" },
		"organizer":   func(in *EventInput) { in.Organizer = "" },
	}

	for field, mutate := range mutations {
		in := validEventInput()
		mutate(&in)

		_, err := NewEvent(in)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), "field %s", field)
		assert.Equal(t, field, vErr.Field)
	}
}

func TestNewEventInvalidMode(t *testing.T) {
	in := validEventInput()
	in.Mode = "in-person"

	_, err := NewEvent(in)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "mode", vErr.Field)
}

func TestNewEventEmptyAgendaAndTags(t *testing.T) {
	in := validEventInput()
	in.Agenda = nil
	_, err := NewEvent(in)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "agenda", vErr.Field)

	in = validEventInput()
	in.Tags = []string{}
	_, err = NewEvent(in)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "tags", vErr.Field)
}

func TestNewEventRejectsBadDateAndTime(t *testing.T) {
	in := validEventInput()
	in.Date = "soon"
	_, err := NewEvent(in)
	assert.True(t, errors.Is(err, ErrInvalidDate))

	in = validEventInput()
	in.Time = "25:00"
	_, err = NewEvent(in)
	assert.True(t, errors.Is(err, ErrInvalidTime))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Visitor@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "visitor@example.com", got)

	for _, input := range []string{"", "plainstring", "a b@c.de", "a@b", "@example.com"} {
		_, err := NormalizeEmail(input)
		assert.True(t, errors.Is(err, ErrInvalidEmail), "input %q", input)
	}
}
