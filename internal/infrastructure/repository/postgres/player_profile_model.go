package postgres

import (
	"database/sql"
	"time"
)

type playerProfileTableModel struct {
	ID              string         `db:"id"`
	UserID          sql.NullString `db:"user_id"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	DateOfBirth     sql.NullTime   `db:"date_of_birth"`
	Country         sql.NullString `db:"country"`
	City            sql.NullString `db:"city"`
	State           sql.NullString `db:"state"`
	Club            sql.NullString `db:"club"`
	PrimaryPosition sql.NullString `db:"primary_position"`
	Avatar          sql.NullString `db:"avatar"`
	ThumbURL        sql.NullString `db:"thumb_url"`
	ThumbProfileURL sql.NullString `db:"thumb_profile_url"`
	ThumbNormalURL  sql.NullString `db:"thumb_normal_url"`
	ThumbIconURL    sql.NullString `db:"thumb_icon_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type playerInfoTableModel struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	ProfileType string         `db:"profile_type"`
	FullName    string         `db:"full_name"`
	Country     sql.NullString `db:"country"`
	Position    sql.NullString `db:"position"`
	Bio         sql.NullString `db:"bio"`
	PhotoURL    sql.NullString `db:"photo_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

type profileVisitInsertModel struct {
	ID                 string    `db:"id"`
	VisitedProfileID   string    `db:"visited_profile_id"`
	VisitorUserID      string    `db:"visitor_user_id"`
	VisitorProfileID   *string   `db:"visitor_profile_id"`
	VisitorProfileType *string   `db:"visitor_profile_type"`
	VisitedAt          time.Time `db:"visited_at"`
}

type profileVisitDetailedRow struct {
	ID                 string         `db:"id"`
	VisitedProfileID   string         `db:"visited_profile_id"`
	VisitorUserID      string         `db:"visitor_user_id"`
	VisitorProfileID   sql.NullString `db:"visitor_profile_id"`
	VisitorProfileType sql.NullString `db:"visitor_profile_type"`
	VisitedAt          time.Time      `db:"visited_at"`
	VisitorName        sql.NullString `db:"visitor_name"`
	VisitorEmail       sql.NullString `db:"visitor_email"`
	VisitorPhone       sql.NullString `db:"visitor_phone"`
}
