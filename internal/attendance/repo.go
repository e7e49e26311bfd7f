package attendance

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"qrattend/internal/store"
)

// Slot names in the durable store. recordsKey holds a JSON array of
// Record, studentKey a plain student-number string. The names predate
// this service and are kept for data compatibility.
const (
	recordsKey = "attendance_records"
	studentKey = "student_number"
)

// Repository persists attendance records and the remembered student
// number in a two-slot key-value store. There is exactly one logical
// writer per process; the mutex makes each read-modify-write atomic
// against double-submitted forms.
type Repository struct {
	kv store.KV
	mu sync.Mutex
}

// NewRepository creates a repo over the given KV backend.
func NewRepository(kv store.KV) *Repository {
	return &Repository{kv: kv}
}

// LoadAll returns every stored record. A missing slot, an unreachable
// backend or an unparseable payload all yield an empty slice: there is
// nothing a caller could do with the error at this layer, and the
// listing view must keep rendering.
func (r *Repository) LoadAll(ctx context.Context) []Record {
	raw, ok, err := r.kv.Get(ctx, recordsKey)
	if err != nil {
		log.Warn().Err(err).Msg("record slot unreadable, serving empty set")
		return nil
	}
	if !ok {
		return nil
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Warn().Err(err).Msg("record slot corrupt, serving empty set")
		return nil
	}
	return records
}

// Lookup returns the record with the given natural key, if any.
func (r *Repository) Lookup(ctx context.Context, id string) (Record, bool) {
	for _, rec := range r.LoadAll(ctx) {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Upsert inserts rec, or replaces the entry sharing its ID in place.
// Relative order of all other entries is preserved.
func (r *Repository) Upsert(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.LoadAll(ctx)
	replaced := false
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, recordsKey, string(raw))
}

// ClearAll irreversibly drops every record. The remembered student
// number lives in its own slot and is untouched.
func (r *Repository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kv.Del(ctx, recordsKey)
}

// RememberedStudent returns the last student number submitted on this
// device, used only to prefill the check-in form.
func (r *Repository) RememberedStudent(ctx context.Context) (string, bool) {
	val, ok, err := r.kv.Get(ctx, studentKey)
	if err != nil {
		log.Warn().Err(err).Msg("remembered-student slot unreadable")
		return "", false
	}
	return val, ok
}

// SetRememberedStudent overwrites the remembered student number.
func (r *Repository) SetRememberedStudent(ctx context.Context, studentNumber string) error {
	return r.kv.Set(ctx, studentKey, studentNumber)
}
