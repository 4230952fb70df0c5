package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// emailRe is a deliberately simple shape check: local@domain with a dotted
// domain and no whitespace anywhere.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"event_id"`
	Slug      string             `bson:"slug" json:"slug"` // denormalized event slug, kept for fast counting
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NormalizeEmail validates and canonicalizes a booking email address.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(normalized) {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}
