package models

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance used for models and
// request bodies.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the user's struct tags.
func (u *User) Validate() error {
	return Validator().Struct(u)
}

// Validate checks the recipe's struct tags. The owning user is not checked.
func (r *Recipe) Validate() error {
	return Validator().Struct(r)
}
