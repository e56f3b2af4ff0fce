package clubmembership

import (
	"context"
	"time"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleOwner  Role = "OWNER"
)

type Membership struct {
	ID       string
	ClubID   string
	UserID   string
	Role     Role
	JoinedAt time.Time
}

// Repository keeps clubs.member_count in step with the membership rows.
type Repository interface {
	// Join returns the existing membership and false when the user already belongs.
	Join(ctx context.Context, m Membership) (Membership, bool, error)
	Leave(ctx context.Context, clubID, userID string) (bool, error)
	ListByClub(ctx context.Context, clubID string) ([]Membership, error)
}
