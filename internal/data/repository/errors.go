package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInventoryGuard is returned when a booked_count update would leave
// the [0, allotment] range. Callers hold the row lock, so this signals a
// bug or a concurrent writer outside the ledger.
var ErrInventoryGuard = errors.New("inventory update violates allotment bounds")

// ErrNotUpdated is returned when an update matched no row.
var ErrNotUpdated = errors.New("no row updated")

var (
	ErrDuplicate  = errors.New("unique constraint violated")
	ErrReferenced = errors.New("row is still referenced")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintError translates constraint violations into the sentinels above
// and returns any other error unchanged.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return ErrDuplicate
	case pgForeignKeyViolation:
		return ErrReferenced
	}
	return err
}
