package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator instances cache struct metadata and are safe
// for concurrent use.
var validate = validator.New()

// accountInput carries the field-shape rules enforced before any store
// access. The tag bounds mirror domain.EmailMaxLen and the password bounds.
type accountInput struct {
	Email    string `validate:"required,email,max=100"`
	Password string `validate:"required,min=6,max=120"`
}

type emailInput struct {
	Email string `validate:"required,email,max=100"`
}

func validateAccountInput(email, password string) error {
	return asValidationError(validate.Struct(accountInput{Email: email, Password: password}))
}

func validateEmail(email string) error {
	return asValidationError(validate.Struct(emailInput{Email: email}))
}

func validatePassword(password string) error {
	return asValidationError(validate.Var(password, "required,min=6,max=120"))
}

// asValidationError converts validator errors into the domain's typed
// ValidationError with human-readable per-field messages.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.NewValidationError(err.Error())
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return domain.NewValidationError(msgs...)
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if field == "" {
		field = "password"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
