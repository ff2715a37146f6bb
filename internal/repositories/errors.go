package repositories

import (
	"errors"
	"fmt"

	"recipebook/internal/database"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConstraintViolation is returned for not-null, check and foreign key failures.
	ErrConstraintViolation = errors.New("constraint violation")
)

// wrapWriteError attaches the matching sentinel to a failed write so callers
// can use errors.Is without knowing the driver.
func wrapWriteError(op string, err error) error {
	switch database.ClassifyError(err) {
	case database.KindDuplicate:
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case database.KindConstraint:
		return fmt.Errorf("%s: %w: %w", op, ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
