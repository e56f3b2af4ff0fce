package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

var clubColumns = qb.Columns(clubTableModel{})

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context, q club.ListQuery) ([]club.Club, error) {
	query, args, err := listClubsQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}
	return r.selectClubs(ctx, "list clubs", query, args)
}

func listClubsQuery(q club.ListQuery) (string, []any, error) {
	builder := qb.Select(clubColumns...).From("clubs").OrderBy("id").Limit(q.Limit)
	if after := strings.TrimSpace(q.AfterID); after != "" {
		builder = builder.Where(qb.Expr("id > ?", after))
	}
	return builder.ToSQL()
}

func (r *ClubRepository) GetByID(ctx context.Context, id string) (club.Club, bool, error) {
	return r.getOne(ctx, "get club", qb.Eq("id", id))
}

func (r *ClubRepository) FindByNameAndCountry(ctx context.Context, name, country string) (club.Club, bool, error) {
	return r.getOne(ctx, "find club by name and country",
		qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name)),
		qb.Expr("LOWER(country) = LOWER(?)", strings.TrimSpace(country)),
	)
}

func (r *ClubRepository) ListWithLegacyID(ctx context.Context, limit int) ([]club.Club, error) {
	query, args, err := qb.Select(clubColumns...).
		From("clubs").
		Where(qb.IsNotNull("legacy_club_id")).
		OrderBy("legacy_club_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list legacy clubs query: %w", err)
	}
	return r.selectClubs(ctx, "list legacy clubs", query, args)
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	var owner *string
	if c.OwnerUserID != "" {
		owner = &c.OwnerUserID
	}
	query, args, err := qb.InsertModel("clubs", clubInsertModel{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Country:         c.Country,
		Description:     optionalString(c.Description),
		LogoURL:         optionalString(c.LogoURL),
		ThumbURL:        optionalString(c.ThumbURL),
		ThumbProfileURL: optionalString(c.ThumbProfileURL),
		ThumbNormalURL:  optionalString(c.ThumbNormalURL),
		ThumbIconURL:    optionalString(c.ThumbIconURL),
		MemberCount:     c.MemberCount,
		ViewCount:       c.ViewCount,
		LegacyClubID:    c.LegacyClubID,
		Status:          string(c.Status),
		OwnerUserID:     owner,
		CreatedAt:       c.CreatedAt,
		ModifiedAt:      c.ModifiedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert club query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert club: %w", err)
	}
	return nil
}

func (r *ClubRepository) Update(ctx context.Context, c club.Club) (bool, error) {
	query, args, err := updateClubQuery(c)
	if err != nil {
		return false, fmt.Errorf("build update club query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update club: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update club rows affected: %w", err)
	}
	return affected > 0, nil
}

func updateClubQuery(c club.Club) (string, []any, error) {
	var owner *string
	if c.OwnerUserID != "" {
		owner = &c.OwnerUserID
	}
	return qb.Update("clubs").
		Set("name", c.Name).
		Set("slug", c.Slug).
		Set("country", c.Country).
		Set("description", optionalString(c.Description)).
		Set("logo_url", optionalString(c.LogoURL)).
		Set("thumb_url", optionalString(c.ThumbURL)).
		Set("thumb_profile_url", optionalString(c.ThumbProfileURL)).
		Set("thumb_normal_url", optionalString(c.ThumbNormalURL)).
		Set("thumb_icon_url", optionalString(c.ThumbIconURL)).
		Set("member_count", c.MemberCount).
		Set("view_count", c.ViewCount).
		Set("legacy_club_id", c.LegacyClubID).
		Set("status", string(c.Status)).
		Set("owner_user_id", owner).
		Set("modified_at", c.ModifiedAt).
		Where(qb.Eq("id", c.ID)).
		ToSQL()
}

func (r *ClubRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("clubs").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete club query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete club: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete club rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *ClubRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (club.Club, bool, error) {
	query, args, err := qb.Select(clubColumns...).From("clubs").Where(conds...).OrderBy("id").Limit(1).ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) selectClubs(ctx context.Context, op, query string, args []any) ([]club.Club, error) {
	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:              row.ID,
		Name:            row.Name,
		Slug:            row.Slug,
		Country:         row.Country,
		Description:     row.Description.String,
		LogoURL:         row.LogoURL.String,
		ThumbURL:        row.ThumbURL.String,
		ThumbProfileURL: row.ThumbProfileURL.String,
		ThumbNormalURL:  row.ThumbNormalURL.String,
		ThumbIconURL:    row.ThumbIconURL.String,
		MemberCount:     row.MemberCount,
		ViewCount:       row.ViewCount,
		LegacyClubID:    nullInt64Ptr(row.LegacyClubID),
		Status:          club.Status(row.Status),
		OwnerUserID:     row.OwnerUserID.String,
		CreatedAt:       row.CreatedAt,
		ModifiedAt:      row.ModifiedAt,
	}
}
