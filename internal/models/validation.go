package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// now is swapped in tests that need a fixed "today".
	now = time.Now
)

// Validator returns the shared validator with the catalogue rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Dates are validated as plain time.Time values.
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(Date); ok {
				return d.Time
			}
			return nil
		}, Date{})

		// Report json field names so messages match the API payload.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("cinema_era", func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			return ok && !t.Before(CinemaBirthday.Time)
		})
		_ = validate.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			return ok && !t.After(DateOf(now()).Time)
		})
		_ = validate.RegisterValidation("no_whitespace", func(fl validator.FieldLevel) bool {
			return strings.IndexFunc(fl.Field().String(), unicode.IsSpace) < 0
		})
	})
	return validate
}

// ValidateFilm checks the film against the catalogue constraints.
func ValidateFilm(f *Film) error {
	return validateStruct(f)
}

// ValidateUser checks the user against the catalogue constraints.
// Defaults are expected to be applied beforehand.
func ValidateUser(u *User) error {
	return validateStruct(u)
}

func validateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewInternalError(err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return NewValidationError(strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "contains":
		return fmt.Sprintf("must contain %q", fe.Param())
	case "cinema_era":
		return "must not be before " + CinemaBirthday.String()
	case "not_future":
		return "must not be in the future"
	case "no_whitespace":
		return "must not contain whitespace"
	default:
		return "is invalid"
	}
}
