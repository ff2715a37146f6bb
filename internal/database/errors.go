package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrorKind classifies a failed database write.
type ErrorKind int

const (
	// KindOther is anything that is not an integrity violation.
	KindOther ErrorKind = iota
	// KindDuplicate is a unique or primary key violation.
	KindDuplicate
	// KindConstraint is a not-null, check or foreign key violation.
	KindConstraint
)

// ClassifyError maps driver errors from postgres or sqlite to an ErrorKind.
// gorm's translated errors are checked first, then the raw driver codes.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindOther
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return KindConstraint
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			return KindDuplicate
		}
		if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return KindConstraint
		}
		return KindOther
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return KindDuplicate
		default:
			return KindConstraint
		}
	}

	return KindOther
}

// IsIntegrityViolation reports whether err is any uniqueness, not-null,
// check or foreign key failure.
func IsIntegrityViolation(err error) bool {
	return ClassifyError(err) != KindOther
}
