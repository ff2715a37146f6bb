package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRecipe      = errors.New("invalid recipe")
)

// ValidationError lists the request fields that failed validation, keyed by
// their JSON name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// newValidationError converts validator errors into a ValidationError.
// jsonNames maps struct field names to the names clients sent.
func newValidationError(err error, jsonNames map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name, ok := jsonNames[fe.Field()]
		if !ok {
			name = strings.ToLower(fe.Field())
		}
		fields[name] = append(fields[name], fmt.Sprintf("Field '%s' failed on the '%s' tag", name, fe.Tag()))
	}
	return &ValidationError{Fields: fields}
}
