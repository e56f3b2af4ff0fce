package match

import (
	"context"
	"time"
)

type Repository interface {
	// CreateCharged inserts m and, in the same transaction, charges its owner
	// one credit unless they are pro. It returns ErrUserNotFound or
	// user.ErrInsufficientCredits without writing anything.
	CreateCharged(ctx context.Context, m Match) (charged bool, err error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Match, error)
	// ClaimNextPending moves the oldest PENDING match to PROCESSING. Concurrent
	// callers never receive the same match.
	ClaimNextPending(ctx context.Context, now time.Time) (Match, bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) (bool, error)
	// UpsertResult stores the payload for an existing match, replacing any
	// earlier one. False means the match does not exist.
	UpsertResult(ctx context.Context, r Result) (bool, error)
	GetResult(ctx context.Context, matchID string) (Result, bool, error)
	// RequeueStale resets PROCESSING matches claimed before cutoff that have no
	// result yet, returning how many were reset.
	RequeueStale(ctx context.Context, cutoff time.Time) (int, error)
}

// Notifier announces new pending matches to the analysis worker.
type Notifier interface {
	MatchQueued(ctx context.Context, m Match) error
}
