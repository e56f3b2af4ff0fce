package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Title     string         `db:"title"`
	VideoURL  string         `db:"video_url"`
	HomeTeam  string         `db:"home_team"`
	AwayTeam  string         `db:"away_team"`
	Level     string         `db:"level"`
	FocusHint sql.NullString `db:"focus_hint"`
	Status    string         `db:"status"`
	ClaimedAt sql.NullTime   `db:"claimed_at"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	VideoURL  string    `db:"video_url"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	Level     string    `db:"level"`
	FocusHint *string   `db:"focus_hint"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// chargeableUserRow is the slice of users locked while a match is created.
type chargeableUserRow struct {
	ID      string `db:"id"`
	Credits int    `db:"credits"`
	IsPro   bool   `db:"is_pro"`
}

type matchResultTableModel struct {
	MatchID     string    `db:"match_id"`
	Payload     []byte    `db:"payload"`
	SubmittedAt time.Time `db:"submitted_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type matchResultInsertModel struct {
	MatchID     string    `db:"match_id"`
	Payload     string    `db:"payload"`
	SubmittedAt time.Time `db:"submitted_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
