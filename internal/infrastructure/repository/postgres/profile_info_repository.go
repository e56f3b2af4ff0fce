package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

type ProfileInfoRepository struct {
	db *sqlx.DB
}

func NewProfileInfoRepository(db *sqlx.DB) *ProfileInfoRepository {
	return &ProfileInfoRepository{db: db}
}

func (r *ProfileInfoRepository) ListByType(ctx context.Context, profileType profileinfo.ProfileType) ([]profileinfo.Info, error) {
	query, args, err := qb.Select(qb.Columns(playerInfoTableModel{})...).
		From("player_infos").
		Where(qb.Eq("profile_type", string(profileType))).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player infos query: %w", err)
	}

	var rows []playerInfoTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player infos: %w", err)
	}
	out := make([]profileinfo.Info, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileinfo.Info{
			ID:          row.ID,
			UserID:      row.UserID,
			ProfileType: profileinfo.ProfileType(row.ProfileType),
			FullName:    row.FullName,
			Country:     row.Country.String,
			Position:    row.Position.String,
			Bio:         row.Bio.String,
			PhotoURL:    row.PhotoURL.String,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

func (r *ProfileInfoRepository) TypeForUser(ctx context.Context, userID string) (profileinfo.ProfileType, bool, error) {
	query, args, err := qb.Select("profile_type").
		From("player_infos").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get profile type query: %w", err)
	}

	var kind string
	if err := r.db.GetContext(ctx, &kind, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get profile type: %w", err)
	}
	return profileinfo.ProfileType(kind), true, nil
}
