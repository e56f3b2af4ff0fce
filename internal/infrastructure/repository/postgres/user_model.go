package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	Phone          sql.NullString `db:"phone"`
	PhotoURL       sql.NullString `db:"photo_url"`
	LegacyPlayerID sql.NullInt64  `db:"legacy_player_id"`
	Credits        int            `db:"credits"`
	IsPro          bool           `db:"is_pro"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type userInsertModel struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          *string   `db:"phone"`
	PhotoURL       *string   `db:"photo_url"`
	LegacyPlayerID *int64    `db:"legacy_player_id"`
	Credits        int       `db:"credits"`
	IsPro          bool      `db:"is_pro"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
