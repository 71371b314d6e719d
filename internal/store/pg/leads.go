package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crestline.dev/internal/cms"
)

var (
	_ cms.LeadStore   = (*LeadStore)(nil)
	_ cms.CareerStore = (*CareerStore)(nil)
)

type LeadStore struct {
	db *sql.DB
}

func (s *LeadStore) Create(ctx context.Context, l *cms.Lead) error {
	var projectID any
	if l.ProjectID != "" {
		projectID = l.ProjectID
	}
	row := s.db.QueryRowContext(ctx, `
		insert into leads (id, name, email, phone, message, project_id, status)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning created_at
	`, l.ID, l.Name, l.Email, l.Phone, l.Message, projectID, l.Status)
	if err := row.Scan(&l.CreatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *LeadStore) Find(ctx context.Context, id string) (*cms.Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, name, email, phone, message, coalesce(project_id, ''), status, created_at
		from leads where id = $1
	`, id)
	var l cms.Lead
	if err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.ProjectID, &l.Status, &l.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &l, nil
}

func (s *LeadStore) List(ctx context.Context, f cms.LeadFilter) ([]*cms.Lead, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, *f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.ProjectID != nil {
		args = append(args, *f.ProjectID)
		where = append(where, fmt.Sprintf("project_id = $%d", len(args)))
	}

	query := `select id, name, email, phone, message, coalesce(project_id, ''), status, created_at from leads`
	if len(where) > 0 {
		query += " where " + strings.Join(where, " and ")
	}
	query += " order by created_at desc"
	query += limitOffset(&args, f.Limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*cms.Lead
	for rows.Next() {
		var l cms.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.ProjectID, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (s *LeadStore) Update(ctx context.Context, l *cms.Lead) error {
	res, err := s.db.ExecContext(ctx, `
		update leads set status = $2 where id = $1
	`, l.ID, l.Status)
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

type CareerStore struct {
	db *sql.DB
}

func (s *CareerStore) Create(ctx context.Context, j *cms.JobOpening) error {
	row := s.db.QueryRowContext(ctx, `
		insert into job_openings (id, title, department, location, description, open)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at, updated_at
	`, j.ID, j.Title, j.Department, j.Location, j.Description, j.Open)
	if err := row.Scan(&j.CreatedAt, &j.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *CareerStore) Find(ctx context.Context, id string) (*cms.JobOpening, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, title, department, location, description, open, created_at, updated_at
		from job_openings where id = $1
	`, id)
	var j cms.JobOpening
	if err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Description, &j.Open, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &j, nil
}

func (s *CareerStore) List(ctx context.Context, openOnly bool) ([]*cms.JobOpening, error) {
	query := `select id, title, department, location, description, open, created_at, updated_at from job_openings`
	if openOnly {
		query += ` where open`
	}
	query += ` order by created_at desc`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*cms.JobOpening
	for rows.Next() {
		var j cms.JobOpening
		if err := rows.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Description, &j.Open, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &j)
	}
	return out, rows.Err()
}

func (s *CareerStore) Update(ctx context.Context, j *cms.JobOpening) error {
	row := s.db.QueryRowContext(ctx, `
		update job_openings
		set title = $2, department = $3, location = $4, description = $5, open = $6, updated_at = now()
		where id = $1
		returning updated_at
	`, j.ID, j.Title, j.Department, j.Location, j.Description, j.Open)
	if err := row.Scan(&j.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *CareerStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from job_openings where id = $1`, id)
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
