package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

var matchColumns = qb.Columns(matchTableModel{})

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// CreateCharged locks the owner row, checks the balance, inserts the match
// and takes one credit from non-pro users, all in one transaction.
func (r *MatchRepository) CreateCharged(ctx context.Context, m match.Match) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx create match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("id", "credits", "is_pro").
		From("users").
		Where(qb.Eq("id", m.UserID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build lock user query: %w", err)
	}

	var owner chargeableUserRow
	if err := tx.GetContext(ctx, &owner, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return false, match.ErrUserNotFound
		}
		return false, fmt.Errorf("lock user: %w", err)
	}

	charged, err := user.User{ID: owner.ID, Credits: owner.Credits, IsPro: owner.IsPro}.ChargeForAnalysis()
	if err != nil {
		return false, err
	}

	insertQuery, insertArgs, err := qb.InsertModel("matches", matchInsertModel{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		VideoURL:  m.VideoURL,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		Level:     string(m.Level),
		FocusHint: optionalString(m.FocusHint),
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, "")
	if err != nil {
		return false, fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return false, fmt.Errorf("insert match: %w", err)
	}

	if charged {
		chargeQuery, chargeArgs, err := qb.Update("users").
			SetExpr("credits", "credits - ?", 1).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", owner.ID)).
			ToSQL()
		if err != nil {
			return false, fmt.Errorf("build charge credits query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, chargeQuery, chargeArgs...); err != nil {
			return false, fmt.Errorf("charge credits: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tx create match: %w", err)
	}
	return charged, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByUser(ctx context.Context, userID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by user query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by user: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

// ClaimNextPending flips the oldest PENDING match to PROCESSING. Concurrent
// workers never receive the same row thanks to SKIP LOCKED.
func (r *MatchRepository) ClaimNextPending(ctx context.Context, now time.Time) (match.Match, bool, error) {
	query, args, err := claimNextPendingQuery(now)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build claim match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("claim match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func claimNextPendingQuery(now time.Time) (string, []any, error) {
	return qb.Update("matches").
		Set("status", string(match.StatusProcessing)).
		Set("claimed_at", now).
		Set("updated_at", now).
		Where(qb.Expr(
			"id = (SELECT id FROM matches WHERE status = ? ORDER BY created_at, id LIMIT 1 FOR UPDATE SKIP LOCKED)",
			string(match.StatusPending),
		)).
		Suffix("RETURNING " + strings.Join(matchColumns, ", ")).
		ToSQL()
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, id string, status match.Status) (bool, error) {
	builder := qb.Update("matches").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id))
	if status == match.StatusPending {
		builder = builder.Set("claimed_at", nil)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update match status query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update match status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update match status rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpsertResult keeps one row per match; a missing match surfaces as a
// foreign key violation and reports false.
func (r *MatchRepository) UpsertResult(ctx context.Context, res match.Result) (bool, error) {
	query, args, err := upsertResultQuery(res)
	if err != nil {
		return false, fmt.Errorf("build upsert match result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("upsert match result: %w", err)
	}
	return true, nil
}

func upsertResultQuery(res match.Result) (string, []any, error) {
	return qb.InsertModel("match_results", matchResultInsertModel{
		MatchID:     res.MatchID,
		Payload:     string(res.Payload),
		SubmittedAt: res.SubmittedAt,
		UpdatedAt:   res.UpdatedAt,
	}, `ON CONFLICT (match_id)
DO UPDATE SET
    payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at`)
}

func (r *MatchRepository) GetResult(ctx context.Context, matchID string) (match.Result, bool, error) {
	query, args, err := qb.Select(qb.Columns(matchResultTableModel{})...).
		From("match_results").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Result{}, false, fmt.Errorf("build get match result query: %w", err)
	}

	var row matchResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Result{}, false, nil
		}
		return match.Result{}, false, fmt.Errorf("get match result: %w", err)
	}
	return match.Result{
		MatchID:     row.MatchID,
		Payload:     json.RawMessage(row.Payload),
		SubmittedAt: row.SubmittedAt,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func (r *MatchRepository) RequeueStale(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := requeueStaleQuery(cutoff)
	if err != nil {
		return 0, fmt.Errorf("build requeue stale matches query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("requeue stale matches: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("requeue stale matches rows affected: %w", err)
	}
	return int(affected), nil
}

func requeueStaleQuery(cutoff time.Time) (string, []any, error) {
	return qb.Update("matches").
		Set("status", string(match.StatusPending)).
		Set("claimed_at", nil).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("status", string(match.StatusProcessing)),
			qb.Expr("claimed_at < ?", cutoff),
			qb.Expr("NOT EXISTS (SELECT 1 FROM match_results mr WHERE mr.match_id = matches.id)"),
		).
		ToSQL()
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		VideoURL:  row.VideoURL,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		Level:     match.Level(row.Level),
		FocusHint: row.FocusHint.String,
		Status:    match.Status(row.Status),
		ClaimedAt: nullTimePtr(row.ClaimedAt),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
