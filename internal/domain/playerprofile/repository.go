package playerprofile

import "context"

type Repository interface {
	List(ctx context.Context) ([]Profile, error)
	Search(ctx context.Context, filter SearchFilter) ([]Profile, error)
	GetByID(ctx context.Context, id string) (Profile, bool, error)
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	// ListByClubName returns members of a club ordered by first name.
	ListByClubName(ctx context.Context, clubName string) ([]Profile, error)
	Update(ctx context.Context, id string, patch Patch) (Profile, bool, error)
}
