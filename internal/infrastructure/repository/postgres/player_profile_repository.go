package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

var playerProfileColumns = qb.Columns(playerProfileTableModel{})

type PlayerProfileRepository struct {
	db *sqlx.DB
}

func NewPlayerProfileRepository(db *sqlx.DB) *PlayerProfileRepository {
	return &PlayerProfileRepository{db: db}
}

func (r *PlayerProfileRepository) List(ctx context.Context) ([]playerprofile.Profile, error) {
	query, args, err := qb.Select(playerProfileColumns...).
		From("player_profiles").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player profiles query: %w", err)
	}
	return r.selectProfiles(ctx, "list player profiles", query, args)
}

func (r *PlayerProfileRepository) Search(ctx context.Context, filter playerprofile.SearchFilter) ([]playerprofile.Profile, error) {
	query, args, err := searchProfilesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build search player profiles query: %w", err)
	}
	return r.selectProfiles(ctx, "search player profiles", query, args)
}

func searchProfilesQuery(filter playerprofile.SearchFilter) (string, []any, error) {
	conds := make([]qb.Condition, 0, 4)
	if filter.FirstName != "" {
		conds = append(conds, qb.Contains("first_name", filter.FirstName))
	}
	if filter.LastName != "" {
		conds = append(conds, qb.Contains("last_name", filter.LastName))
	}
	if filter.Country != "" {
		conds = append(conds, qb.Contains("country", filter.Country))
	}
	if dob := optionalDate(filter.DateOfBirth); dob != nil {
		conds = append(conds, qb.Expr("date_of_birth = ?::date", *dob))
	}
	return qb.Select(playerProfileColumns...).
		From("player_profiles").
		Where(conds...).
		OrderBy("created_at", "id").
		ToSQL()
}

func (r *PlayerProfileRepository) GetByID(ctx context.Context, id string) (playerprofile.Profile, bool, error) {
	return r.getOne(ctx, "get player profile", qb.Eq("id", id))
}

func (r *PlayerProfileRepository) GetByUserID(ctx context.Context, userID string) (playerprofile.Profile, bool, error) {
	return r.getOne(ctx, "get player profile by user", qb.Eq("user_id", userID))
}

func (r *PlayerProfileRepository) ListByClubName(ctx context.Context, clubName string) ([]playerprofile.Profile, error) {
	query, args, err := qb.Select(playerProfileColumns...).
		From("player_profiles").
		Where(qb.Eq("club", clubName)).
		OrderBy("first_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club members query: %w", err)
	}
	return r.selectProfiles(ctx, "list club members", query, args)
}

func (r *PlayerProfileRepository) Update(ctx context.Context, id string, patch playerprofile.Patch) (playerprofile.Profile, bool, error) {
	query, args, err := updateProfileQuery(id, patch)
	if err != nil {
		return playerprofile.Profile{}, false, fmt.Errorf("build update player profile query: %w", err)
	}

	var row playerProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerprofile.Profile{}, false, nil
		}
		return playerprofile.Profile{}, false, fmt.Errorf("update player profile: %w", err)
	}
	return profileFromRow(row), true, nil
}

func updateProfileQuery(id string, patch playerprofile.Patch) (string, []any, error) {
	builder := qb.Update("player_profiles")
	if patch.FirstName != nil {
		builder = builder.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		builder = builder.Set("last_name", *patch.LastName)
	}
	if patch.Country != nil {
		builder = builder.Set("country", optionalString(*patch.Country))
	}
	if patch.Avatar != nil {
		builder = builder.Set("avatar", optionalString(*patch.Avatar))
	}
	if patch.PrimaryPosition != nil {
		builder = builder.Set("primary_position", optionalString(*patch.PrimaryPosition))
	}
	switch {
	case patch.ClearDateOfBirth:
		builder = builder.Set("date_of_birth", nil)
	case patch.DateOfBirth != nil:
		builder = builder.SetExpr("date_of_birth", "?::date", *optionalDate(patch.DateOfBirth))
	}
	return builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		Suffix("RETURNING " + strings.Join(playerProfileColumns, ", ")).
		ToSQL()
}

func (r *PlayerProfileRepository) getOne(ctx context.Context, op string, cond qb.Condition) (playerprofile.Profile, bool, error) {
	query, args, err := qb.Select(playerProfileColumns...).From("player_profiles").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return playerprofile.Profile{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row playerProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerprofile.Profile{}, false, nil
		}
		return playerprofile.Profile{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return profileFromRow(row), true, nil
}

func (r *PlayerProfileRepository) selectProfiles(ctx context.Context, op, query string, args []any) ([]playerprofile.Profile, error) {
	var rows []playerProfileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]playerprofile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func profileFromRow(row playerProfileTableModel) playerprofile.Profile {
	return playerprofile.Profile{
		ID:              row.ID,
		UserID:          row.UserID.String,
		FirstName:       row.FirstName,
		LastName:        row.LastName,
		DateOfBirth:     nullTimePtr(row.DateOfBirth),
		Country:         row.Country.String,
		City:            row.City.String,
		State:           row.State.String,
		Club:            row.Club.String,
		PrimaryPosition: row.PrimaryPosition.String,
		Avatar:          row.Avatar.String,
		ThumbURL:        row.ThumbURL.String,
		ThumbProfileURL: row.ThumbProfileURL.String,
		ThumbNormalURL:  row.ThumbNormalURL.String,
		ThumbIconURL:    row.ThumbIconURL.String,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
