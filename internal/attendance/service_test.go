package attendance

import (
	"context"
	"testing"
	"time"

	"qrattend/internal/store"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(store.NewMemory())
	return NewService(repo, 0), repo
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestReconcileLifecycle(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	out, err := svc.Reconcile(ctx, "STU12345", "DX-24 01", at(t, "2024-01-02 09:00:00"))
	if err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	if out.Kind != OutcomeCheckedIn {
		t.Fatalf("first reconcile = %s, want %s", out.Kind, OutcomeCheckedIn)
	}
	if out.Record.InTime != "09:00:00" || out.Record.OutTime != "" {
		t.Fatalf("unexpected record after check-in: %+v", out.Record)
	}

	out, err = svc.Reconcile(ctx, "STU12345", "DX-24 01", at(t, "2024-01-02 10:30:00"))
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if out.Kind != OutcomeCheckedOut {
		t.Fatalf("second reconcile = %s, want %s", out.Kind, OutcomeCheckedOut)
	}
	if out.Record.InTime != "09:00:00" || out.Record.OutTime != "10:30:00" {
		t.Fatalf("unexpected record after check-out: %+v", out.Record)
	}

	out, err = svc.Reconcile(ctx, "STU12345", "DX-24 01", at(t, "2024-01-02 11:00:00"))
	if err != nil {
		t.Fatalf("third reconcile: %v", err)
	}
	if out.Kind != OutcomeAlreadyComplete {
		t.Fatalf("third reconcile = %s, want %s", out.Kind, OutcomeAlreadyComplete)
	}
	// The complete record is untouched by further submissions.
	if out.Record.InTime != "09:00:00" || out.Record.OutTime != "10:30:00" {
		t.Fatalf("already-complete mutated the record: %+v", out.Record)
	}

	if got := len(repo.LoadAll(ctx)); got != 1 {
		t.Fatalf("stored records = %d, want 1", got)
	}
}

func TestReconcileNaturalKeyUniqueness(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	// Same student and class across two dates, plus a second class on
	// the first date: three distinct triples, three records.
	moments := []struct {
		student, class, when string
	}{
		{"STU1", "DX-24 01", "2024-01-01 09:00:00"},
		{"STU1", "DX-24 01", "2024-01-01 12:00:00"}, // completes the first
		{"STU1", "DX-24 01", "2024-01-01 13:00:00"}, // already complete
		{"STU1", "DX-24 02", "2024-01-01 14:00:00"},
		{"STU1", "DX-24 01", "2024-01-02 09:00:00"},
	}
	for _, m := range moments {
		if _, err := svc.Reconcile(ctx, m.student, m.class, at(t, m.when)); err != nil {
			t.Fatalf("reconcile(%+v): %v", m, err)
		}
	}

	records := repo.LoadAll(ctx)
	if len(records) != 3 {
		t.Fatalf("stored records = %d, want 3", len(records))
	}
	seen := map[string]bool{}
	for _, rec := range records {
		if seen[rec.ID] {
			t.Fatalf("duplicate natural key %q", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestReconcileTrimsStudentNumber(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, "  STU9  ", "DX-24 03", at(t, "2024-02-01 08:00:00")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	out, err := svc.Reconcile(ctx, "STU9", "DX-24 03", at(t, "2024-02-01 09:00:00"))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if out.Kind != OutcomeCheckedOut {
		t.Fatalf("trimmed resubmit = %s, want %s", out.Kind, OutcomeCheckedOut)
	}
	if got := repo.LoadAll(ctx); len(got) != 1 || got[0].StudentNumber != "STU9" {
		t.Fatalf("unexpected stored records: %+v", got)
	}
}

func TestReconcileRejectsEmptyInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, "   ", "DX-24 01", at(t, "2024-01-01 09:00:00")); err == nil {
		t.Fatal("blank student number accepted")
	}
	if _, err := svc.Reconcile(ctx, "STU1", "", at(t, "2024-01-01 09:00:00")); err == nil {
		t.Fatal("empty class accepted")
	}
}

func TestReconcileHonorsContextDuringDelay(t *testing.T) {
	repo := NewRepository(store.NewMemory())
	svc := NewService(repo, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Reconcile(ctx, "STU1", "DX-24 01", at(t, "2024-01-01 09:00:00")); err == nil {
		t.Fatal("cancelled reconcile returned no error")
	}
	if got := len(repo.LoadAll(context.Background())); got != 0 {
		t.Fatalf("cancelled reconcile wrote %d records", got)
	}
}
