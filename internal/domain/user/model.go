package user

import (
	"errors"
	"time"
)

// ErrInsufficientCredits is returned when a non-pro user has no credits left.
var ErrInsufficientCredits = errors.New("insufficient credits")

// User is an account registered through Firebase. ID is the Firebase uid.
type User struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	PhotoURL       string
	LegacyPlayerID *int64
	Credits        int
	IsPro          bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ChargeForAnalysis reports whether requesting one match analysis costs a
// credit. Pro users are never charged; everyone else needs at least one credit.
func (u User) ChargeForAnalysis() (bool, error) {
	if u.IsPro {
		return false, nil
	}
	if u.Credits < 1 {
		return false, ErrInsufficientCredits
	}
	return true, nil
}

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Name   string
}
