// Package store provides database access for all inkpress entities. Each
// store struct wraps a *sql.DB and exposes typed query methods. Multi-statement
// mutations run inside a single transaction so partial failure leaves no
// dangling rows.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors surfaced by the stores. Handlers map these to HTTP statuses.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the requester is authenticated but not the owner.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means a uniqueness violation or an invalid orphan-creation
	// request.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized means the supplied credentials did not verify.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrOrphanSubcategory means a new subcategory was requested without any
	// category context to parent it under. Maps to Conflict at the boundary.
	ErrOrphanSubcategory = errors.New("orphan subcategory")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique-constraint failures.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Duplicate slugs and usernames are detected this way instead of
// pre-checking existence, which would leave a check-then-act race.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
