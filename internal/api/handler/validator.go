package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo so handlers can call
// c.Validate(req). Messages name fields as the client sent them.
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator assigned to echo.Echo.Validator.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(wireName)
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// wireName reports the json or query key of a request field.
func wireName(f reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

var tagMessages = map[string]string{
	"required": "%s is required",
	"gte":      "%s must be at least %s",
	"oneof":    "%s must be one of: %s",
}

func describe(fe validator.FieldError) string {
	if fe.Tag() == "max" {
		unit := "characters"
		if fe.Kind() == reflect.Slice {
			unit = "entries"
		}
		return fmt.Sprintf("%s must have at most %s %s", fe.Field(), fe.Param(), unit)
	}
	if format, ok := tagMessages[fe.Tag()]; ok {
		if strings.Count(format, "%s") == 1 {
			return fmt.Sprintf(format, fe.Field())
		}
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
