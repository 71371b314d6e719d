package pg

import (
	"context"
	"database/sql"

	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
)

var _ cms.UserStore = (*UserStore)(nil)

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) Create(ctx context.Context, u *cms.User) error {
	row := s.db.QueryRowContext(ctx, `
		insert into users (id, name, email, password_hash, role, active)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at, updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *UserStore) Find(ctx context.Context, id string) (*cms.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		select id, name, email, password_hash, role, active, created_at, updated_at
		from users where id = $1
	`, id))
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*cms.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		select id, name, email, password_hash, role, active, created_at, updated_at
		from users where email = $1
	`, email))
}

func (s *UserStore) List(ctx context.Context) ([]*cms.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, email, password_hash, role, active, created_at, updated_at
		from users order by created_at asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*cms.User
	for rows.Next() {
		var u cms.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role, _ = auth.ParseRole(role)
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (s *UserStore) Update(ctx context.Context, u *cms.User) error {
	row := s.db.QueryRowContext(ctx, `
		update users
		set name = $2, email = $3, password_hash = $4, role = $5, active = $6, updated_at = now()
		where id = $1
		returning updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active)
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cms.ErrNotFound
	}
	return nil
}

func (s *UserStore) scanOne(row *sql.Row) (*cms.User, error) {
	var u cms.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	u.Role, _ = auth.ParseRole(role)
	return &u, nil
}
