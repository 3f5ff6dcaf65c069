package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Movies predating 1888 (the year of the first film) or dated more than a
// year into the future are rejected.
const earliestReleaseYear = 1888

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("releaseyear", validateReleaseYear)

	return validator
}

func validateReleaseYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()

	return year >= earliestReleaseYear && year <= int64(time.Now().Year()+1)
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "releaseyear":
		return fmt.Sprintf("must be a year between %d and next year", earliestReleaseYear)
	default:
		return "is invalid"
	}
}
