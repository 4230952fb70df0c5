package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	slugStripRe  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugHyphenRe = regexp.MustCompile(`-+`)
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	time12HourRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s?([AaPp][Mm])$`)
	time24HourRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// dateLayouts are tried in order for inputs that are not plain YYYY-MM-DD.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"01/02/2006",
}

// GenerateSlug converts an event title into a lowercase URL-safe identifier:
// special characters are stripped, whitespace runs and repeated hyphens
// collapse to a single hyphen, leading/trailing hyphens are trimmed. Titles
// made up entirely of special characters fall back to a timestamped synthetic
// slug so the result is never empty. Global uniqueness is enforced by the
// unique index on the events collection, not here.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = slugHyphenRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return fmt.Sprintf("event-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:7])
	}
	return slug
}

// NormalizeDate converts a date string into canonical YYYY-MM-DD form.
// Plain YYYY-MM-DD input is anchored to UTC midnight so the calendar day
// never shifts with the process timezone; anything else goes through the
// fallback layouts. Unparseable input fails with ErrInvalidDate.
func NormalizeDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	if isoDateRe.MatchString(trimmed) {
		t, err := time.ParseInLocation("2006-01-02", trimmed, time.UTC)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidDate, input)
		}
		return t.Format("2006-01-02"), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidDate, input)
}

// NormalizeTime converts a time string into the display format "H:MM AM|PM".
// Input already in 12-hour form is uppercased and returned as-is; 24-hour
// HH:MM input is range-checked and converted, keeping the minutes verbatim.
// Anything else fails with ErrInvalidTime.
func NormalizeTime(input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	if time12HourRe.MatchString(trimmed) {
		return strings.ToUpper(trimmed), nil
	}

	match := time24HourRe.FindStringSubmatch(trimmed)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTime, input)
	}

	hours, _ := strconv.Atoi(match[1])
	minutes := match[2]
	if m, _ := strconv.Atoi(minutes); hours > 23 || m > 59 {
		return "", fmt.Errorf("%w: %s", ErrInvalidTime, input)
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	hours12 := hours
	switch {
	case hours == 0:
		hours12 = 12
	case hours > 12:
		hours12 = hours - 12
	}
	return fmt.Sprintf("%d:%s %s", hours12, minutes, period), nil
}
