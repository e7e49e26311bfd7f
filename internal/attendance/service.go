package attendance

import (
	"context"
	"errors"
	"strings"
	"time"
)

// OutcomeKind names the three reconciliation results.
type OutcomeKind string

const (
	// OutcomeCheckedIn means a new open record was created.
	OutcomeCheckedIn OutcomeKind = "checked_in"
	// OutcomeCheckedOut means an open record was completed.
	OutcomeCheckedOut OutcomeKind = "checked_out"
	// OutcomeAlreadyComplete means the day's record was already
	// complete and nothing was written.
	OutcomeAlreadyComplete OutcomeKind = "already_complete"
)

// Outcome is the result of a reconciliation.
type Outcome struct {
	Kind   OutcomeKind `json:"outcome"`
	Time   string      `json:"time,omitempty"` // HH:mm:ss of the applied action
	Record Record      `json:"record"`
}

// Service coordinates the check-in/check-out lifecycle.
type Service struct {
	repo         *Repository
	processDelay time.Duration
}

// NewService creates a service backed by a repository. processDelay is
// the fixed pause shown to the user as "processing"; zero disables it.
func NewService(repo *Repository, processDelay time.Duration) *Service {
	return &Service{repo: repo, processDelay: processDelay}
}

// Reconcile applies the correct transition for a student and class at
// the moment now: no record today creates one checked in, an open
// record is checked out, a complete record is left alone. now is a
// parameter rather than an implicit clock read so the decision is
// deterministic given a store state.
func (s *Service) Reconcile(ctx context.Context, studentNumber, className string, now time.Time) (Outcome, error) {
	studentNumber = strings.TrimSpace(studentNumber)
	if studentNumber == "" || className == "" {
		return Outcome{}, errors.New("student number and class required")
	}

	if s.processDelay > 0 {
		select {
		case <-time.After(s.processDelay):
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}

	date := now.Format("2006-01-02")
	clock := now.Format("15:04:05")
	id := RecordID(studentNumber, className, date)

	existing, found := s.repo.Lookup(ctx, id)
	switch {
	case !found:
		rec := Record{
			ID:            id,
			ClassName:     className,
			StudentNumber: studentNumber,
			Date:          date,
			InTime:        clock,
		}
		if err := s.repo.Upsert(ctx, rec); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeCheckedIn, Time: clock, Record: rec}, nil

	case !existing.Complete():
		// InTime and the key fields stay as created; the one and
		// only mutation a record ever sees is gaining an OutTime.
		existing.OutTime = clock
		if err := s.repo.Upsert(ctx, existing); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeCheckedOut, Time: clock, Record: existing}, nil

	default:
		return Outcome{Kind: OutcomeAlreadyComplete, Record: existing}, nil
	}
}
