package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

var clubMembershipColumns = qb.Columns(clubMembershipTableModel{})

type ClubMembershipRepository struct {
	db *sqlx.DB
}

func NewClubMembershipRepository(db *sqlx.DB) *ClubMembershipRepository {
	return &ClubMembershipRepository{db: db}
}

// Join inserts the membership and bumps the club's member count. An existing
// membership is returned unchanged with created=false.
func (r *ClubMembershipRepository) Join(ctx context.Context, m clubmembership.Membership) (clubmembership.Membership, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return clubmembership.Membership{}, false, fmt.Errorf("begin tx join club: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery, insertArgs, err := qb.InsertModel("club_memberships", clubMembershipTableModel{
		ID:       m.ID,
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}, "ON CONFLICT (club_id, user_id) DO NOTHING RETURNING "+strings.Join(clubMembershipColumns, ", "))
	if err != nil {
		return clubmembership.Membership{}, false, fmt.Errorf("build insert membership query: %w", err)
	}

	var row clubMembershipTableModel
	if err := tx.GetContext(ctx, &row, insertQuery, insertArgs...); err != nil {
		if !isNotFound(err) {
			return clubmembership.Membership{}, false, fmt.Errorf("insert membership: %w", err)
		}

		existingQuery, existingArgs, err := qb.Select(clubMembershipColumns...).
			From("club_memberships").
			Where(qb.Eq("club_id", m.ClubID), qb.Eq("user_id", m.UserID)).
			Limit(1).
			ToSQL()
		if err != nil {
			return clubmembership.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
		}
		if err := tx.GetContext(ctx, &row, existingQuery, existingArgs...); err != nil {
			return clubmembership.Membership{}, false, fmt.Errorf("get existing membership: %w", err)
		}
		return membershipFromRow(row), false, nil
	}

	if err := adjustMemberCount(ctx, tx, m.ClubID, "member_count + 1"); err != nil {
		return clubmembership.Membership{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return clubmembership.Membership{}, false, fmt.Errorf("commit tx join club: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func (r *ClubMembershipRepository) Leave(ctx context.Context, clubID, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx leave club: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("club_memberships").
		Where(qb.Eq("club_id", clubID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete membership query: %w", err)
	}
	res, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		return false, fmt.Errorf("delete membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete membership rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := adjustMemberCount(ctx, tx, clubID, "GREATEST(member_count - 1, 0)"); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tx leave club: %w", err)
	}
	return true, nil
}

func adjustMemberCount(ctx context.Context, tx *sqlx.Tx, clubID, expr string) error {
	query, args, err := qb.Update("clubs").SetExpr("member_count", expr).Where(qb.Eq("id", clubID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build adjust member count query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust member count: %w", err)
	}
	return nil
}

func (r *ClubMembershipRepository) ListByClub(ctx context.Context, clubID string) ([]clubmembership.Membership, error) {
	query, args, err := qb.Select(clubMembershipColumns...).
		From("club_memberships").
		Where(qb.Eq("club_id", clubID)).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []clubMembershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	out := make([]clubmembership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func membershipFromRow(row clubMembershipTableModel) clubmembership.Membership {
	return clubmembership.Membership{
		ID:       row.ID,
		ClubID:   row.ClubID,
		UserID:   row.UserID,
		Role:     clubmembership.Role(row.Role),
		JoinedAt: row.JoinedAt,
	}
}
