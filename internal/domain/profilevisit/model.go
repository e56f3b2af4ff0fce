package profilevisit

import (
	"context"
	"time"
)

// Visit records one view of a player profile by a signed-in user.
type Visit struct {
	ID                 string
	VisitedProfileID   string
	VisitorUserID      string
	VisitorProfileID   string
	VisitorProfileType string
	VisitedAt          time.Time
}

// Detailed is a visit joined with the visiting user's contact details.
type Detailed struct {
	Visit
	VisitorName  string
	VisitorEmail string
	VisitorPhone string
}

type Repository interface {
	Record(ctx context.Context, v Visit) error
	ListSince(ctx context.Context, profileID string, since time.Time) ([]Detailed, error)
	ListRecent(ctx context.Context, profileID string, limit int) ([]Detailed, error)
	Count(ctx context.Context, profileID string) (int, error)
}
