package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	usermock "github.com/riskibarqy/scouting-platform/internal/mocks/domain/user"
)

func TestUserService_RegisterUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := usermock.NewRepository(t)
	repo.
		On("Create", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(u user.User) bool {
			return u.ID == "fb-1" && u.Email == "jo@example.com" && u.Credits == 3
		})).
		Return(nil).
		Once()

	got, err := NewUserService(repo, 3).Register(ctx, RegisterUserInput{UserID: "fb-1", Name: "Jo", Email: " JO@example.com "})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.Credits != 3 || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserService_RegisterConflictUsingMockery(t *testing.T) {
	t.Parallel()

	repo := usermock.NewRepository(t)
	repo.On("Create", mock.Anything, mock.AnythingOfType("user.User")).Return(user.ErrAlreadyExists).Once()

	_, err := NewUserService(repo, 1).Register(context.Background(), RegisterUserInput{UserID: "fb-1", Name: "Jo", Email: "jo@example.com"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserService_GetNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	repo := usermock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "missing").Return(user.User{}, false, nil).Once()

	_, err := NewUserService(repo, 1).Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if msg, _ := PublicMessage(err); msg != "User not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	t.Parallel()

	service := NewUserService(usermock.NewRepository(t), 1)
	if _, err := service.Register(context.Background(), RegisterUserInput{UserID: "fb-1", Email: "x@example.com"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing name, got %v", err)
	}
	if _, err := service.Register(context.Background(), RegisterUserInput{Name: "Jo", Email: "x@example.com"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for missing uid, got %v", err)
	}
}
