// Package validation evaluates the declarative input schemas declared on domain types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is returned when input is missing, malformed or collides with a unique field.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

// NewFieldError reports a single offending field.
func NewFieldError(field, message string) *Error {
	return &Error{
		Message: fmt.Sprintf("el campo %s no es válido", field),
		Fields:  map[string]string{field: message},
	}
}

// Duplicate reports a unique field that is already taken.
func Duplicate(field string) *Error {
	return &Error{
		Message: fmt.Sprintf("el valor de %s ya está en uso", field),
		Fields:  map[string]string{field: "unique"},
	}
}

// IsValidationError reports whether err carries an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

type Validator struct {
	validate *validator.Validate
}

// New returns a validator that names fields after their json tags.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s against its tags and returns *Error on failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return &Error{
		Message: "los datos enviados no son válidos",
		Fields:  processValidationErrors(verrs),
	}
}

func processValidationErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, ve := range verrs {
		tag := ve.Tag()
		if ve.Param() != "" {
			tag += "=" + ve.Param()
		}
		out[ve.Field()] = tag
	}
	return out
}
