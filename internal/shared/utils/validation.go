package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/tenantdesk/internal/shared/errors"
)

var billingCycles = map[string]bool{"monthly": true, "quarterly": true, "yearly": true}

// RegisterValidators installs JSON field naming and the custom tags used by
// request DTOs on v. Called for gin's binding engine at router setup.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v.RegisterValidation("billing_cycle", func(fl validator.FieldLevel) bool {
		return billingCycles[strings.ToLower(fl.Field().String())]
	})
}

// BindingError converts a gin binding failure into a validation AppError with
// one readable message per failing field.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewValidationError("Invalid request body", err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.NewValidationError("Validation failed", msgs...)
}

func fieldMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "billing_cycle":
		return field + " must be one of [monthly quarterly yearly]"
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
