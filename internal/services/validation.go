package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"devevent/internal/domain"
)

const (
	eventEntity   = "Event"
	bookingEntity = "Booking"
)

// emailRegex matches the local@domain.tld shape accepted for bookings.
var emailRegex = regexp.MustCompile(
	`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`,
)

// fieldMessages maps "field/tag" (or just "field") to the message reported to callers.
var fieldMessages = map[string]string{
	"title":             "Title is required",
	"description":       "Description is required",
	"overview":          "Overview is required",
	"image":             "Image URL is required",
	"venue":             "Venue is required",
	"location":          "Location is required",
	"date":              "Date is required",
	"time":              "Time is required",
	"mode":              "Mode is required",
	"audience":          "Audience is required",
	"organizer":         "Organizer is required",
	"agenda":            "Agenda must contain at least one non-empty item",
	"tags":              "Tags must contain at least one non-empty item",
	"eventId":           "Event ID is required",
	"email":             "Email is required",
	"email/email_shape": "Please provide a valid email address",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs v on s and converts failures into a *domain.ValidationError
// with one entry per field, in declaration order.
func validateStruct(v *validator.Validate, entity string, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", strings.ToLower(entity), err)
	}
	seen := make(map[string]bool, len(verrs))
	var fields []domain.FieldError
	for _, fe := range verrs {
		// Element errors from dive come back as "agenda[2]".
		field, _, _ := strings.Cut(fe.Field(), "[")
		if seen[field] {
			continue
		}
		seen[field] = true
		fields = append(fields, domain.FieldError{Field: field, Message: messageFor(field, fe.Tag())})
	}
	return domain.NewValidationError(entity, fields...)
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field+"/"+tag]; ok {
		return msg
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return field + " is invalid"
}
