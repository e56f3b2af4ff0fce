package club

import "context"

// ListQuery selects a page of clubs ordered by id. AfterID is exclusive.
type ListQuery struct {
	AfterID string
	Limit   int
}

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Club, error)
	GetByID(ctx context.Context, id string) (Club, bool, error)
	FindByNameAndCountry(ctx context.Context, name, country string) (Club, bool, error)
	ListWithLegacyID(ctx context.Context, limit int) ([]Club, error)
	Create(ctx context.Context, c Club) error
	// Update overwrites every mutable column; false means the club is gone.
	Update(ctx context.Context, c Club) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
