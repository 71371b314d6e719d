// Package pg implements the persistence interfaces on PostgreSQL through
// the pgx stdlib driver.
package pg

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"crestline.dev/internal/cms"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// Store bundles the per-entity stores over one connection pool.
type Store struct {
	Users    *UserStore
	Projects *ProjectStore
	Blogs    *BlogStore
	Leads    *LeadStore
	Careers  *CareerStore
	Activity *ActivityStore
}

func New(db *sql.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Projects: &ProjectStore{db: db},
		Blogs:    &BlogStore{db: db},
		Leads:    &LeadStore{db: db},
		Careers:  &CareerStore{db: db},
		Activity: &ActivityStore{db: db},
	}
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return cms.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return cms.ErrConflict
		case pgErrForeignKeyViolation:
			return cms.ErrInvalidInput
		}
	}
	return err
}
