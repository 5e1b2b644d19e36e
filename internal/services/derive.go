package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"devevent/internal/domain"
)

// whitespace is the class of characters treated as spaces in titles and emails:
// ASCII whitespace, vertical tab, Unicode space separators and the BOM.
const whitespace = `\s\v\p{Z}\x{FEFF}`

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9` + whitespace + `-]`)
	slugSpaces     = regexp.MustCompile(`[` + whitespace + `]+`)
	slugHyphens    = regexp.MustCompile(`-+`)

	// epochLike matches digit runs dateparse would read as Unix timestamps.
	epochLike = regexp.MustCompile(`^[0-9]{9,}$`)

	// timeRegex matches 24-hour HH:MM; the hour may have one digit.
	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

const isoDate = "2006-01-02"

var errInvalidDate = errors.New("invalid date")

// slugify derives the URL slug for a title.
func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// normalizeDate parses s as a calendar date and returns it as YYYY-MM-DD in UTC.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if epochLike.MatchString(s) {
		return "", errInvalidDate
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", errInvalidDate
	}
	return t.UTC().Format(isoDate), nil
}

// timestamp returns the current UTC time at the millisecond precision the stores keep.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func isValidTime(s string) bool {
	return timeRegex.MatchString(s)
}

// eventChanges marks which triggering fields were set or modified.
type eventChanges struct {
	title bool
	date  bool
	time  bool
}

var allEventChanges = eventChanges{title: true, date: true, time: true}

// deriveEventFields runs slug, date and time derivation in that order and stops at
// the first failure. Each step runs only when its field changed; the slug is also
// derived whenever it is missing.
func deriveEventFields(e *domain.Event, c eventChanges) error {
	if c.title || e.Slug == "" {
		slug := slugify(e.Title)
		if slug == "" {
			return domain.NewValidationError(eventEntity, domain.FieldError{
				Field:   "slug",
				Message: "Title must contain at least one letter or digit",
			})
		}
		e.Slug = slug
	}
	if c.date {
		date, err := normalizeDate(e.Date)
		if err != nil {
			return domain.NewValidationError(eventEntity, domain.FieldError{Field: "date", Message: "Invalid date format"})
		}
		e.Date = date
	}
	if c.time && !isValidTime(e.Time) {
		return domain.NewValidationError(eventEntity, domain.FieldError{Field: "time", Message: "Time must be in HH:MM format"})
	}
	return nil
}
