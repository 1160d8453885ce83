package validator

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"tourpricing/internal/pkg/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string)
	for _, fe := range verrs {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}

// Struct validates v and converts failures into an apperr validation error.
func Struct(v interface{}) error {
	fields := Validate(v)
	if fields == nil {
		return nil
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	e := apperr.New(apperr.TypeValidation, "invalid fields: "+strings.Join(names, ", "))
	for k, tag := range fields {
		e.WithContext(k, tag)
	}
	return e
}
