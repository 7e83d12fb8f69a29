package booking

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/thesanatorium/website/models"
)

// DateLayout is the only accepted format for requested_date. Month and
// day must be zero padded.
const DateLayout = "2006-01-02"

// PlanTypes are offered in the form. plan_type itself is free-form and
// any non-empty value is accepted.
var PlanTypes = []string{"hourly", "halfday", "fullday", "weekly"}

// planOptions returns the plans to offer when the form is rendered with
// submitted, which is appended if it is not one of PlanTypes.
func planOptions(submitted string) []string {
	if submitted == "" || slices.Contains(PlanTypes, submitted) {
		return PlanTypes
	}
	return append(slices.Clone(PlanTypes), submitted)
}

// Form is the booking payload as submitted. Every field except Message
// is required; ServiceID and RequestedDate are converted by Validate.
type Form struct {
	FullName      string `mapstructure:"full_name"`
	Email         string `mapstructure:"email"`
	PhoneNumber   string `mapstructure:"phone_number"`
	ServiceID     string `mapstructure:"service_id"`
	PlanType      string `mapstructure:"plan_type"`
	RequestedDate string `mapstructure:"requested_date"`
	Message       string `mapstructure:"message"`
}

// ValidationKind identifies which check rejected a Form.
type ValidationKind string

const (
	KindMissingField   ValidationKind = "missing_field"
	KindInvalidDate    ValidationKind = "invalid_date"
	KindInvalidService ValidationKind = "invalid_service"
)

// ValidationError reports bad user input. Fields lists the offending form
// fields in form order.
type ValidationError struct {
	Kind   ValidationKind
	Fields []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing required field: %s", strings.Join(e.Fields, ", "))
	case KindInvalidDate:
		return "invalid date format"
	case KindInvalidService:
		return "invalid service"
	}
	return string(e.Kind)
}

// Message is the text shown to the visitor.
func (e *ValidationError) Message() string {
	switch e.Kind {
	case KindMissingField:
		return "Please fill out all required fields."
	case KindInvalidDate:
		return "Invalid date format. Please use YYYY-MM-DD."
	case KindInvalidService:
		return "Please choose one of the listed services."
	}
	return "Please check the form and try again."
}

// ParseForm decodes the urlencoded request body into a Form. Values are
// trimmed; unknown keys such as status are ignored.
func ParseForm(r *http.Request) (Form, error) {
	var form Form
	if err := r.ParseForm(); err != nil {
		return form, err
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = strings.TrimSpace(r.PostForm.Get(key))
	}

	if err := mapstructure.Decode(values, &form); err != nil {
		return form, err
	}
	return form, nil
}

// Validate turns a Form into a new pending Booking. Checks run in order:
// required fields, then the date, then the service id.
func Validate(f Form) (*models.Booking, error) {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", f.FullName},
		{"email", f.Email},
		{"phone_number", f.PhoneNumber},
		{"service_id", f.ServiceID},
		{"plan_type", f.PlanType},
		{"requested_date", f.RequestedDate},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: KindMissingField, Fields: missing}
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(f.RequestedDate))
	if err != nil {
		return nil, &ValidationError{Kind: KindInvalidDate, Fields: []string{"requested_date"}}
	}

	serviceID, err := strconv.ParseUint(strings.TrimSpace(f.ServiceID), 10, 32)
	if err != nil || serviceID == 0 {
		return nil, &ValidationError{Kind: KindInvalidService, Fields: []string{"service_id"}}
	}

	return &models.Booking{
		FullName:      strings.TrimSpace(f.FullName),
		Email:         strings.TrimSpace(f.Email),
		PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
		ServiceID:     uint(serviceID),
		PlanType:      strings.TrimSpace(f.PlanType),
		RequestedDate: date,
		Message:       f.Message,
		Status:        models.BookingPending,
	}, nil
}
