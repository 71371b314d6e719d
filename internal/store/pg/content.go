package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"crestline.dev/internal/cms"
)

var (
	_ cms.ProjectStore = (*ProjectStore)(nil)
	_ cms.BlogStore    = (*BlogStore)(nil)
)

type ProjectStore struct {
	db *sql.DB
}

func (s *ProjectStore) Create(ctx context.Context, p *cms.Project) error {
	row := s.db.QueryRowContext(ctx, `
		insert into projects (id, title, slug, summary, location, status, featured, published)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning created_at, updated_at
	`, p.ID, p.Title, p.Slug, p.Summary, p.Location, p.Status, p.Featured, p.Published)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *ProjectStore) Find(ctx context.Context, id string) (*cms.Project, error) {
	var p cms.Project
	row := s.db.QueryRowContext(ctx, `
		select id, title, slug, summary, location, status, featured, published, created_at, updated_at
		from projects where id = $1
	`, id)
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Location, &p.Status, &p.Featured, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &p, nil
}

func (s *ProjectStore) List(ctx context.Context, f cms.ProjectFilter) ([]*cms.Project, error) {
	var (
		where []string
		args  []any
	)
	if f.PublishedOnly {
		where = append(where, "published")
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}

	query := `select id, title, slug, summary, location, status, featured, published, created_at, updated_at from projects`
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

	var out []*cms.Project
	for rows.Next() {
		var p cms.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Location, &p.Status, &p.Featured, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *ProjectStore) Update(ctx context.Context, p *cms.Project) error {
	row := s.db.QueryRowContext(ctx, `
		update projects
		set title = $2, slug = $3, summary = $4, location = $5, status = $6, featured = $7, published = $8, updated_at = now()
		where id = $1
		returning updated_at
	`, p.ID, p.Title, p.Slug, p.Summary, p.Location, p.Status, p.Featured, p.Published)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from projects where id = $1`, id)
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

type BlogStore struct {
	db *sql.DB
}

func (s *BlogStore) Create(ctx context.Context, p *cms.BlogPost) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}
	row := s.db.QueryRowContext(ctx, `
		insert into blog_posts (id, title, slug, body, tags, published, author_id)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning created_at, updated_at
	`, p.ID, p.Title, p.Slug, p.Body, tags, p.Published, p.AuthorID)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *BlogStore) Find(ctx context.Context, id string) (*cms.BlogPost, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, title, slug, body, tags, published, author_id, created_at, updated_at
		from blog_posts where id = $1
	`, id)
	return scanBlogPost(row.Scan)
}

func (s *BlogStore) List(ctx context.Context, f cms.BlogFilter) ([]*cms.BlogPost, error) {
	var (
		where []string
		args  []any
	)
	if f.PublishedOnly {
		where = append(where, "published")
	}
	if f.Tag != nil {
		args = append(args, *f.Tag)
		where = append(where, fmt.Sprintf("tags @> to_jsonb(array[$%d::text])", len(args)))
	}

	query := `select id, title, slug, body, tags, published, author_id, created_at, updated_at from blog_posts`
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

	var out []*cms.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *BlogStore) Update(ctx context.Context, p *cms.BlogPost) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}
	row := s.db.QueryRowContext(ctx, `
		update blog_posts
		set title = $2, slug = $3, body = $4, tags = $5, published = $6, updated_at = now()
		where id = $1
		returning updated_at
	`, p.ID, p.Title, p.Slug, p.Body, tags, p.Published)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *BlogStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from blog_posts where id = $1`, id)
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

func scanBlogPost(scan func(dest ...any) error) (*cms.BlogPost, error) {
	var (
		p    cms.BlogPost
		tags []byte
	)
	if err := scan(&p.ID, &p.Title, &p.Slug, &p.Body, &tags, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if len(tags) > 0 {
		_ = json.Unmarshal(tags, &p.Tags)
	}
	return &p, nil
}

func limitOffset(args *[]any, limit, offset int) string {
	var clause string
	if limit > 0 {
		*args = append(*args, limit)
		clause += fmt.Sprintf(" limit $%d", len(*args))
	}
	if offset > 0 {
		*args = append(*args, offset)
		clause += fmt.Sprintf(" offset $%d", len(*args))
	}
	return clause
}
