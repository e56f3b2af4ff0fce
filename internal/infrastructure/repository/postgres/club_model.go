package postgres

import (
	"database/sql"
	"time"
)

type clubTableModel struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Slug            string         `db:"slug"`
	Country         string         `db:"country"`
	Description     sql.NullString `db:"description"`
	LogoURL         sql.NullString `db:"logo_url"`
	ThumbURL        sql.NullString `db:"thumb_url"`
	ThumbProfileURL sql.NullString `db:"thumb_profile_url"`
	ThumbNormalURL  sql.NullString `db:"thumb_normal_url"`
	ThumbIconURL    sql.NullString `db:"thumb_icon_url"`
	MemberCount     int            `db:"member_count"`
	ViewCount       int            `db:"view_count"`
	LegacyClubID    sql.NullInt64  `db:"legacy_club_id"`
	Status          string         `db:"status"`
	OwnerUserID     sql.NullString `db:"owner_user_id"`
	CreatedAt       time.Time      `db:"created_at"`
	ModifiedAt      time.Time      `db:"modified_at"`
}

type clubInsertModel struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Slug            string    `db:"slug"`
	Country         string    `db:"country"`
	Description     *string   `db:"description"`
	LogoURL         *string   `db:"logo_url"`
	ThumbURL        *string   `db:"thumb_url"`
	ThumbProfileURL *string   `db:"thumb_profile_url"`
	ThumbNormalURL  *string   `db:"thumb_normal_url"`
	ThumbIconURL    *string   `db:"thumb_icon_url"`
	MemberCount     int       `db:"member_count"`
	ViewCount       int       `db:"view_count"`
	LegacyClubID    *int64    `db:"legacy_club_id"`
	Status          string    `db:"status"`
	OwnerUserID     *string   `db:"owner_user_id"`
	CreatedAt       time.Time `db:"created_at"`
	ModifiedAt      time.Time `db:"modified_at"`
}

type clubMembershipTableModel struct {
	ID       string    `db:"id"`
	ClubID   string    `db:"club_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}
