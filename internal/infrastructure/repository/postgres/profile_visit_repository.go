package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

const profileVisitSource = "profile_visits v LEFT JOIN users u ON u.id = v.visitor_user_id"

var profileVisitDetailedColumns = []string{
	"v.id",
	"v.visited_profile_id",
	"v.visitor_user_id",
	"v.visitor_profile_id",
	"v.visitor_profile_type",
	"v.visited_at",
	"u.name AS visitor_name",
	"u.email AS visitor_email",
	"u.phone AS visitor_phone",
}

type ProfileVisitRepository struct {
	db *sqlx.DB
}

func NewProfileVisitRepository(db *sqlx.DB) *ProfileVisitRepository {
	return &ProfileVisitRepository{db: db}
}

func (r *ProfileVisitRepository) Record(ctx context.Context, v profilevisit.Visit) error {
	query, args, err := qb.InsertModel("profile_visits", profileVisitInsertModel{
		ID:                 v.ID,
		VisitedProfileID:   v.VisitedProfileID,
		VisitorUserID:      v.VisitorUserID,
		VisitorProfileID:   optionalString(v.VisitorProfileID),
		VisitorProfileType: optionalString(v.VisitorProfileType),
		VisitedAt:          v.VisitedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert profile visit query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert profile visit: %w", err)
	}
	return nil
}

func (r *ProfileVisitRepository) ListSince(ctx context.Context, profileID string, since time.Time) ([]profilevisit.Detailed, error) {
	query, args, err := qb.Select(profileVisitDetailedColumns...).
		From(profileVisitSource).
		Where(qb.Eq("v.visited_profile_id", profileID), qb.Expr("v.visited_at >= ?", since)).
		OrderBy("v.visited_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list visits since query: %w", err)
	}
	return r.selectDetailed(ctx, "list visits since", query, args)
}

func (r *ProfileVisitRepository) ListRecent(ctx context.Context, profileID string, limit int) ([]profilevisit.Detailed, error) {
	query, args, err := qb.Select(profileVisitDetailedColumns...).
		From(profileVisitSource).
		Where(qb.Eq("v.visited_profile_id", profileID)).
		OrderBy("v.visited_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent visits query: %w", err)
	}
	return r.selectDetailed(ctx, "list recent visits", query, args)
}

func (r *ProfileVisitRepository) Count(ctx context.Context, profileID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("profile_visits").
		Where(qb.Eq("visited_profile_id", profileID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count visits query: %w", err)
	}
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}

func (r *ProfileVisitRepository) selectDetailed(ctx context.Context, op, query string, args []any) ([]profilevisit.Detailed, error) {
	var rows []profileVisitDetailedRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]profilevisit.Detailed, 0, len(rows))
	for _, row := range rows {
		out = append(out, profilevisit.Detailed{
			Visit: profilevisit.Visit{
				ID:                 row.ID,
				VisitedProfileID:   row.VisitedProfileID,
				VisitorUserID:      row.VisitorUserID,
				VisitorProfileID:   row.VisitorProfileID.String,
				VisitorProfileType: row.VisitorProfileType.String,
				VisitedAt:          row.VisitedAt,
			},
			VisitorName:  row.VisitorName.String,
			VisitorEmail: row.VisitorEmail.String,
			VisitorPhone: row.VisitorPhone.String,
		})
	}
	return out, nil
}
