package history

import (
	"context"
	"strings"
	"time"

	"scribe/internal/services"
)

// List reconciles transcribed and edited records into the persistent history.
// It owns the in-memory ordered sequence (most recent first) and writes the
// full blob back through the Store after every mutation.
type List struct {
	store   *Store
	records []Record
	now     func() time.Time
}

// Load seeds a List from the store's current blob.
func Load(ctx context.Context, store *Store) (*List, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &List{store: store, records: records, now: time.Now}, nil
}

// WithClock overrides the time source (for testing).
func (l *List) WithClock(now func() time.Time) *List {
	l.now = now
	return l
}

// Upsert merges a record into the history. An existing id keeps its position;
// provided fields win and LastModified advances. A new id is inserted at the
// head, evicting the oldest-inserted record beyond the cap.
//
// The in-memory mutation always stands; a persistence failure is returned so
// the caller can report it, tagged services.ErrPersistence.
func (l *List) Upsert(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return Record{}, services.Wrap(services.ErrValidation, "history", "upsert", "record id is required", nil)
	}

	now := l.now().UTC()
	idx := l.indexOf(rec.ID)
	if idx >= 0 {
		existing := &l.records[idx]
		if rec.Filename != "" {
			existing.Filename = rec.Filename
		}
		if rec.Text != "" {
			existing.Text = rec.Text
		}
		if rec.Size != "" {
			existing.Size = rec.Size
		}
		existing.LastModified = now
		return *existing, l.persist(ctx)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.LastModified.Before(rec.CreatedAt) {
		rec.LastModified = rec.CreatedAt
	}
	l.records = append([]Record{rec}, l.records...)
	if len(l.records) > Cap {
		l.records = l.records[:Cap]
	}
	return rec, l.persist(ctx)
}

// Remove deletes the record with the given id. It reports whether a record
// was present; removing an unknown id is a no-op.
func (l *List) Remove(ctx context.Context, id string) (bool, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	return true, l.persist(ctx)
}

// Clear drops every record.
func (l *List) Clear(ctx context.Context) error {
	l.records = nil
	return l.persist(ctx)
}

// Find returns the record with the given id.
func (l *List) Find(id string) (Record, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return Record{}, false
	}
	return l.records[idx], true
}

// Records returns a copy of the ordered sequence, most recent first.
func (l *List) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records held.
func (l *List) Len() int {
	return len(l.records)
}

func (l *List) indexOf(id string) int {
	for i, rec := range l.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) persist(ctx context.Context) error {
	if err := l.store.Persist(ctx, l.records); err != nil {
		return services.Wrap(services.ErrPersistence, "history", "persist", "write history blob", err)
	}
	return nil
}
