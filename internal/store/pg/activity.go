package pg

import (
	"context"
	"database/sql"

	"crestline.dev/internal/activity"
)

var _ activity.Store = (*ActivityStore)(nil)

type ActivityStore struct {
	db *sql.DB
}

func (s *ActivityStore) Insert(ctx context.Context, e *activity.Entry) error {
	var entityID, entityType any
	if e.EntityID != "" {
		entityID = e.EntityID
	}
	if e.EntityType != "" {
		entityType = e.EntityType
	}
	_, err := s.db.ExecContext(ctx, `
		insert into activity_log (id, type, action, title, user_id, user_name, entity_id, entity_type, occurred_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.Type, e.Action, e.Title, e.UserID, e.UserName, entityID, entityType, e.OccurredAt)
	return mapPgError(err)
}

func (s *ActivityStore) List(ctx context.Context, limit, offset int) ([]*activity.Entry, error) {
	var args []any
	query := `
		select id, type, action, title, user_id, user_name, coalesce(entity_id, ''), coalesce(entity_type, ''), occurred_at
		from activity_log order by occurred_at desc`
	query += limitOffset(&args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*activity.Entry
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.Type, &e.Action, &e.Title, &e.UserID, &e.UserName, &e.EntityID, &e.EntityType, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
