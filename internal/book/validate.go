package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("book_category", validateCategory)
	validate.RegisterValidation("published_year", validatePublishedYear)
}

func validateCategory(fl validator.FieldLevel) bool {
	return ValidCategory(fl.Field().String())
}

func validatePublishedYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= 1000 && year <= time.Now().Year()
}

// Validate checks every field constraint on b and returns a
// *ValidationError listing all violations, or nil when the record is
// valid. Create and every update path run it on the full record.
func Validate(b Book) error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var violations []FieldViolation
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := fieldErr.Field()
		tag := fieldErr.Tag()

		fieldName := strings.ToLower(field[:1]) + field[1:]

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", fieldName)
		case "book_category":
			message = fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(Categories, ", "))
		case "published_year":
			message = fmt.Sprintf("%s must be between 1000 and %d", fieldName, time.Now().Year())
		case "gte":
			message = fmt.Sprintf("%s must not be negative", fieldName)
		default:
			message = fmt.Sprintf("%s is invalid", fieldName)
		}

		violations = append(violations, FieldViolation{
			Field:   fieldName,
			Message: message,
		})
	}

	return &ValidationError{Violations: violations}
}
