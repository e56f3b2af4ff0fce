package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

var userColumns = qb.Columns(userTableModel{})

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	return r.getOne(ctx, "get user", qb.Eq("id", id))
}

func (r *UserRepository) GetByLegacyPlayerID(ctx context.Context, legacyID int64) (user.User, bool, error) {
	return r.getOne(ctx, "get user by legacy player id", qb.Eq("legacy_player_id", legacyID))
}

func (r *UserRepository) getOne(ctx context.Context, op string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns...).From("users").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	query, args, err := qb.InsertModel("users", userInsertModel{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          optionalString(u.Phone),
		PhotoURL:       optionalString(u.PhotoURL),
		LegacyPlayerID: u.LegacyPlayerID,
		Credits:        u.Credits,
		IsPro:          u.IsPro,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		Phone:          row.Phone.String,
		PhotoURL:       row.PhotoURL.String,
		LegacyPlayerID: nullInt64Ptr(row.LegacyPlayerID),
		Credits:        row.Credits,
		IsPro:          row.IsPro,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
