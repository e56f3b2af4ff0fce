package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/user"
)

type RegisterUserInput struct {
	UserID   string
	Name     string
	Email    string
	Phone    string
	PhotoURL string
}

type UserService struct {
	users          user.Repository
	defaultCredits int
	now            func() time.Time
}

func NewUserService(users user.Repository, defaultCredits int) *UserService {
	if defaultCredits < 0 {
		defaultCredits = 0
	}
	return &UserService{
		users:          users,
		defaultCredits: defaultCredits,
		now:            time.Now,
	}
}

// Register creates the account for an authenticated Firebase uid.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	u := user.User{
		ID:       strings.TrimSpace(input.UserID),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    strings.TrimSpace(input.Phone),
		PhotoURL: strings.TrimSpace(input.PhotoURL),
		Credits:  s.defaultCredits,
	}
	switch {
	case u.ID == "":
		return user.User{}, fmt.Errorf("%w: firebase uid is required", ErrUnauthorized)
	case u.Name == "":
		return user.User{}, newError(ErrInvalidInput, "Name is required")
	case u.Email == "":
		return user.User{}, newError(ErrInvalidInput, "Email is required")
	}

	now := s.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return user.User{}, newError(ErrConflict, "User already registered")
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Get")
	defer span.End()

	u, ok, err := s.users.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return user.User{}, newError(ErrNotFound, "User not found")
	}
	return u, nil
}
