package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Overview    string             `bson:"overview" json:"overview"`
	Image       string             `bson:"image" json:"image"`
	Venue       string             `bson:"venue" json:"venue"`
	Location    string             `bson:"location" json:"location"`
	Date        string             `bson:"date" json:"date"` // canonical YYYY-MM-DD
	Time        string             `bson:"time" json:"time"` // canonical H:MM AM|PM
	Mode        string             `bson:"mode" json:"mode"` // online, offline, hybrid
	Audience    string             `bson:"audience" json:"audience"`
	Agenda      []string           `bson:"agenda" json:"agenda"`
	Organizer   string             `bson:"organizer" json:"organizer"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// EventInput carries the raw creation fields as submitted by the caller.
// The image URL must already have been produced by the upload collaborator.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      []string
	Tags        []string
}

// NewEvent validates the raw input and builds a canonical Event: required
// fields are checked, the slug is derived from the title, and date/time are
// normalized before anything touches storage. Raw user input is never
// persisted for slug, date, or time.
func NewEvent(in EventInput) (*Event, error) {
	required := []struct {
		field, value string
	}{
		{"title", in.Title},
		{"description", in.Description},
		{"overview", in.Overview},
		{"image", in.Image},
		{"venue", in.Venue},
		{"location", in.Location},
		{"date", in.Date},
		{"time", in.Time},
		{"mode", in.Mode},
		{"audience", in.Audience},
		{"organizer", in.Organizer},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, requiredField(f.field)
		}
	}

	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	if mode != ModeOnline && mode != ModeOffline && mode != ModeHybrid {
		return nil, &ValidationError{Field: "mode", Message: "mode must be one of: online, offline, hybrid"}
	}

	if len(in.Agenda) == 0 {
		return nil, &ValidationError{Field: "agenda", Message: "agenda must contain at least one item"}
	}
	if len(in.Tags) == 0 {
		return nil, &ValidationError{Field: "tags", Message: "tags must contain at least one item"}
	}

	date, err := NormalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	eventTime, err := NormalizeTime(in.Time)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Event{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(in.Title),
		Slug:        GenerateSlug(in.Title),
		Description: strings.TrimSpace(in.Description),
		Overview:    strings.TrimSpace(in.Overview),
		Image:       strings.TrimSpace(in.Image),
		Venue:       strings.TrimSpace(in.Venue),
		Location:    strings.TrimSpace(in.Location),
		Date:        date,
		Time:        eventTime,
		Mode:        mode,
		Audience:    strings.TrimSpace(in.Audience),
		Organizer:   strings.TrimSpace(in.Organizer),
		Agenda:      in.Agenda,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
