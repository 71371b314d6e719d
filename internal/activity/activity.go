// Package activity records the back-office audit trail. Writes are
// best-effort: a failed entry is logged and swallowed, never surfaced to the
// mutation that triggered it.
package activity

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"crestline.dev/internal/ids"
)

// Actions recorded in the trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
	ActionView   = "view"
)

// Entry is one append-only audit record. Entries are never updated or
// deleted by this subsystem.
type Entry struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Action     string    `json:"action"`
	Title      string    `json:"title"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	EntityID   string    `json:"entity_id,omitempty"`
	EntityType string    `json:"entity_type,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Store appends and lists immutable entries.
type Store interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, error)
}

// Emitter writes audit entries without ever failing the caller.
type Emitter struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewEmitter(store Store, log *logrus.Logger) *Emitter {
	return &Emitter{store: store, log: log, now: time.Now}
}

// Record persists the entry. Audit completeness is secondary to
// primary-operation availability: errors are logged server-side only.
func (e *Emitter) Record(ctx context.Context, entry Entry) {
	if e == nil || e.store == nil {
		return
	}
	if strings.TrimSpace(entry.Action) == "" || strings.TrimSpace(entry.Type) == "" {
		return
	}
	if entry.ID == "" {
		entry.ID = ids.New()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = e.now().UTC()
	}
	if err := e.store.Insert(ctx, &entry); err != nil {
		if e.log != nil {
			e.log.WithError(err).WithFields(logrus.Fields{
				"action": entry.Action,
				"type":   entry.Type,
			}).Warn("activity entry dropped")
		}
	}
}

// List returns the most recent entries for the dashboard.
func (e *Emitter) List(ctx context.Context, limit, offset int) ([]*Entry, error) {
	return e.store.List(ctx, limit, offset)
}
