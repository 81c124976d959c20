package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/tournament-bracket/models"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bracket_format", validateBracketFormat)

	return &Validator{validate: v}
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError turns validator errors into a field -> message map.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = "this field is required"
		case "bracket_format":
			errs[field] = "must be one of: single, double"
		case "min":
			if e.Kind() == reflect.Slice {
				errs[field] = fmt.Sprintf("must contain at least %s items", e.Param())
			} else {
				errs[field] = fmt.Sprintf("must be at least %s", e.Param())
			}
		case "max":
			errs[field] = fmt.Sprintf("must be at most %s characters", e.Param())
		case "unique":
			errs[field] = "must not contain duplicates"
		case "gte":
			errs[field] = fmt.Sprintf("must be greater than or equal to %s", e.Param())
		default:
			errs[field] = "invalid value"
		}
	}

	return errs
}

// validateBracketFormat accepts an empty value; pair with required when the
// format must be present.
func validateBracketFormat(fl validator.FieldLevel) bool {
	format := fl.Field().String()
	if format == "" {
		return true
	}
	return models.BracketFormat(format).Valid()
}
