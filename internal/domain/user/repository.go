package user

import (
	"context"
	"errors"
)

var ErrAlreadyExists = errors.New("user already exists")

type Repository interface {
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByLegacyPlayerID(ctx context.Context, legacyID int64) (User, bool, error)
	// Create returns ErrAlreadyExists when the id or email is taken.
	Create(ctx context.Context, u User) error
}
