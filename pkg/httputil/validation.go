package httputil

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shiftboard/shiftboard-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// isodate accepts an empty value or a calendar date in YYYY-MM-DD form
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})
	return v
}

// Validate validates a struct using go-playground/validator
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.BadRequest(err.Error())
		}
		details := make(map[string]string)

		for _, e := range validationErrors {
			details[fieldName(e)] = formatValidationError(e)
		}

		return errors.Validation(details)
	}
	return nil
}

func fieldName(e validator.FieldError) string {
	return strings.ToLower(e.Field())
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + e.Param()
	case "datetime":
		return "must match layout " + e.Param()
	default:
		return "invalid value"
	}
}
