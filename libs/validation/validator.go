// Package validation runs declarative, tag-based validation of request structs
// and converts failures into apperrors field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// validate is safe for concurrent use and caches struct metadata
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

// maxBytes limits the encoded length of a string, e.g. bcrypt input which is capped at 72 bytes
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Normalizer is implemented by requests that clean up their input (e.g. trim whitespace) before validation
type Normalizer interface {
	Normalize()
}

// AtLeastOne is implemented by requests where every field is optional but an empty request is invalid
type AtLeastOne interface {
	IsEmpty() bool
}

// Struct normalizes and validates s and returns an apperrors validation error listing every failing field
func Struct(s any) error {
	if req, ok := s.(Normalizer); ok {
		req.Normalize()
	}

	if req, ok := s.(AtLeastOne); ok && req.IsEmpty() {
		return apperrors.Validation(apperrors.FieldError{
			Field:   "body",
			Message: "At least one field must be provided",
		})
	}

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.Internal(fmt.Errorf("failed to validate request: %w", err))
	}

	fields := make([]apperrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return apperrors.Validation(fields...)
}

// message renders a human readable message for a failed rule
func message(fe validator.FieldError) string {
	label := label(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", label)
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
