package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hireloop/jobboard-service/internal/utils"
)

// Validator wraps go-playground struct validation and converts the
// failures into field-level ValidationErrors.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules registered
func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerRules()
	return v
}

// Validate validates a request struct. A nil result means the struct
// passed.
func (v *Validator) Validate(s interface{}) utils.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return utils.ValidationErrors{{
			Field:   "request",
			Message: "invalid request body",
			Rule:    "struct",
		}}
	}

	var errors utils.ValidationErrors
	for _, fe := range fieldErrors {
		errors = append(errors, utils.ValidationError{
			Field:   fe.Field(),
			Message: v.getErrorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

func (v *Validator) registerRules() {
	// mark values are whole numbers on a 0-10 scale
	v.validate.RegisterValidation("mark_range", func(fl validator.FieldLevel) bool {
		return fl.Field().Uint() <= 10
	})
}

// getErrorMessage returns user-friendly error messages
func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid uuid"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "mark_range":
		return "must be between 0 and 10"
	case "datetime":
		return fmt.Sprintf("must be a date in format %s", err.Param())
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
