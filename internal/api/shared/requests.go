package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// Shared validator instance; validator.Validate is safe for concurrent use.
var validate = validator.New()

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ValidateRequest validates v. Types providing their own Validate method
// are trusted over struct tags.
func ValidateRequest(v interface{}) error {
	if validatable, ok := v.(interface{ Validate() error }); ok {
		return validatable.Validate()
	}

	if err := validate.Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("%w: %s", domain.ErrValidation, describeFieldErrors(validationErrs))
		}
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// describeFieldErrors turns validator failures into a client-safe message
// naming the offending fields, not their submitted values.
func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
