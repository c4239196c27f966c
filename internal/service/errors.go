package service

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks input rejected before it reached the store.
var ErrValidation = errors.New("invalid input")

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their label tag ("first name") instead of the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// mapValidationError turns the first validator failure into an ErrValidation.
func mapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrValidation, e.Field())
		case "email":
			return fmt.Errorf("%w: %s is not a valid email address", ErrValidation, e.Field())
		default:
			return fmt.Errorf("%w: %s is invalid", ErrValidation, e.Field())
		}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
