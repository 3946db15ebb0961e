// Package postgres implements the service repository interfaces against
// PostgreSQL using database/sql and lib/pq. Uniqueness is enforced by unique
// indexes; a violated index is detected via pq error code 23505 and mapped to
// the owning service's sentinel error.
package postgres

import (
	"github.com/lib/pq"
)

// uniqueViolation reports whether err is a violation of the named constraint.
func uniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505" && pqErr.Constraint == constraint
}
