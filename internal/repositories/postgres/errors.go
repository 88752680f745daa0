package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restopos/internal/repositories"
)

// mapNotFound translates pgx's no-rows error into the repository-level
// sentinel so handlers never depend on the driver.
func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505), possibly wrapped.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
