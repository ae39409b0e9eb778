package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"

	"github.com/erazemk/lostfound/internal/notify"
)

// DateLayout is the ISO calendar date format items are stored with.
const DateLayout = "2006-01-02"

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid item")

// Fields is the raw user input for a new item.
type Fields struct {
	Type        string `json:"type" validate:"required,oneof=lost found"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

// ValidationError lists the fields that failed validation, keyed by their
// JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Trim returns a copy of f with surrounding whitespace removed from every
// field and the type lowercased.
func (f Fields) Trim() Fields {
	return Fields{
		Type:        strings.ToLower(strings.TrimSpace(f.Type)),
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Contact:     strings.TrimSpace(f.Contact),
		Date:        strings.TrimSpace(f.Date),
		Category:    strings.TrimSpace(f.Category),
	}
}

// Validate trims f, checks the required fields and normalizes the date to
// ISO format. On failure it sends a notification and returns a
// *ValidationError; nothing else happens.
func Validate(ctx context.Context, f Fields) (Fields, error) {
	clean := f.Trim()
	errs := make(map[string]string)

	if err := validate.Struct(&clean); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return clean, fmt.Errorf("validating item: %w", err)
		}
		for _, fe := range ve {
			errs[fe.Field()] = formatFieldError(fe)
		}
	}

	if clean.Date != "" {
		date, err := normalizeDate(clean.Date)
		if err != nil {
			errs["date"] = "Must be a valid date"
		} else {
			clean.Date = date
		}
	}

	if len(errs) == 0 {
		return clean, nil
	}

	if _, onlyDate := errs["date"]; onlyDate && len(errs) == 1 {
		notify.Send(ctx, notify.LevelError, notify.MsgInvalidDate)
	} else {
		notify.Send(ctx, notify.LevelError, notify.MsgFillRequired)
	}
	return clean, &ValidationError{Fields: errs}
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// normalizeDate accepts ISO dates as-is and anything dateparse understands
// otherwise, returning the ISO calendar date.
func normalizeDate(s string) (string, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
