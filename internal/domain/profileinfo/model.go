package profileinfo

import (
	"context"
	"time"
)

type ProfileType string

const (
	TypeFootballPlayer ProfileType = "Football Player"
	TypeScout          ProfileType = "Scout"
)

// Info is the public card shown in the player and scout directories.
type Info struct {
	ID          string
	UserID      string
	ProfileType ProfileType
	FullName    string
	Country     string
	Position    string
	Bio         string
	PhotoURL    string
	CreatedAt   time.Time
}

type Repository interface {
	ListByType(ctx context.Context, profileType ProfileType) ([]Info, error)
	// TypeForUser is the directory type of a user, if they have a card.
	TypeForUser(ctx context.Context, userID string) (ProfileType, bool, error)
}
