package activity

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureStore struct {
	entries []*Entry
	err     error
}

func (s *captureStore) Insert(_ context.Context, e *Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *captureStore) List(_ context.Context, limit, offset int) ([]*Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	if offset >= len(s.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.entries) {
		end = len(s.entries)
	}
	return s.entries[offset:end], nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	store := &captureStore{}
	emitter := NewEmitter(store, quietLogger())
	fixed := time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)
	emitter.now = func() time.Time { return fixed }

	emitter.Record(context.Background(), Entry{
		Type:     "project",
		Action:   ActionCreate,
		Title:    "created project Harbor View",
		UserID:   "u-1",
		UserName: "ops@crestline.example",
	})

	require.Len(t, store.entries, 1)
	got := store.entries[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, fixed, got.OccurredAt)
	assert.Equal(t, ActionCreate, got.Action)
}

func TestRecordNeverFailsTheCaller(t *testing.T) {
	store := &captureStore{err: errors.New("disk full")}
	emitter := NewEmitter(store, quietLogger())

	// A failing store must neither panic nor surface the error.
	assert.NotPanics(t, func() {
		emitter.Record(context.Background(), Entry{
			Type:   "lead",
			Action: ActionCreate,
			Title:  "new enquiry",
			UserID: "anonymous",
		})
	})
}

func TestRecordSkipsBlankEntries(t *testing.T) {
	store := &captureStore{}
	emitter := NewEmitter(store, quietLogger())

	emitter.Record(context.Background(), Entry{Type: "project"})
	emitter.Record(context.Background(), Entry{Action: ActionCreate})
	assert.Empty(t, store.entries)
}

func TestRecordOnNilEmitter(t *testing.T) {
	var emitter *Emitter
	assert.NotPanics(t, func() {
		emitter.Record(context.Background(), Entry{Type: "x", Action: ActionView})
	})
}

func TestListPassesThrough(t *testing.T) {
	store := &captureStore{}
	emitter := NewEmitter(store, quietLogger())
	for i := 0; i < 5; i++ {
		emitter.Record(context.Background(), Entry{Type: "project", Action: ActionUpdate, Title: "t", UserID: "u"})
	}

	page, err := emitter.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
