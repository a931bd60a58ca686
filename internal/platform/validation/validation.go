// Package validation envuelve go-playground/validator y traduce sus errores a
// apperr.ErrValidation con un detalle legible por campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"vet-clinic-api/internal/platform/apperr"
)

type Validator struct {
	v *validator.Validate
}

// New crea un Validator que reporta los campos por su tag json (snake_case),
// que es como los ve el cliente HTTP.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// notblank: como required, pero "   " tampoco cuenta como presente.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.String {
			return !f.IsZero()
		}
		return strings.TrimSpace(f.String()) != ""
	})
	return &Validator{v: v}
}

// Struct valida s. Si falla, devuelve base con un detalle por campo, de modo
// que errors.Is(err, base) se mantiene.
func (v *Validator) Struct(base *apperr.Error, s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return base.WithDetails(strings.Join(msgs, "; "))
	}
	return base.Wrap(err)
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		// ids: gt=0 equivale a "obligatorio"
		if fe.Param() == "0" {
			return field + " is required"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
