// Package legacy moves data from the previous platform databases (smo_v1 and
// smo_v2) into the current schema. Every step is safe to re-run.
package legacy

import (
	"context"
	"encoding/json"
	"time"
)

// Club is a row of the old platform's clubs table.
type Club struct {
	GroupID     int64
	UserID      *int64
	Title       string
	Description string
	PhotoID     *int64
	CreatedAt   *time.Time
	ModifiedAt  *time.Time
	MemberCount int
	ViewCount   int
	Country     string
}

// MediaFile is a row of media_files. An empty Type marks the original upload.
type MediaFile struct {
	ParentID    int64
	Type        string
	StoragePath string
	UserID      *int64
}

const (
	mediaThumb        = "thumb"
	mediaThumbProfile = "thumb.profile"
	mediaThumbNormal  = "thumb.normal"
	mediaThumbIcon    = "thumb.icon"
)

// Match is a row of engine4_event_matchs. Raw holds the row as JSON.
type Match struct {
	MatchID       int64
	EventID       string
	UserID        string
	MyTeam        string
	OpponentTeam  string
	MatchDateTime string
	Created       *time.Time
	Modified      *time.Time
	Raw           json.RawMessage
}

// MatchDetail is the first engine4_event_details row of a match.
type MatchDetail struct {
	Winner                 string
	Score                  string
	TeamFormation          string
	OpponentTeamFormation  string
	MyTeam                 string
	OpponentTeam           string
	MyTeamSubstitute       string
	OpponentTeamSubstitute string
	MatchVideo             string
	YoutubeLink            string
	Location               string
	FirstHalfStart         string
	FirstHalfEnd           string
	SecondHalfStart        string
	SecondHalfEnd          string
	Created                *time.Time
	Raw                    json.RawMessage
}

// Event is a row of engine4_event_events.
type Event struct {
	EventID  int64
	Title    string
	Location string
	Raw      json.RawMessage
}

// StagedMatch is one smo_match row.
type StagedMatch struct {
	MatchID                 int64
	EventID                 *int64
	UserID                  *int64
	MyTeam                  string
	OpponentTeam            string
	MatchDateTime           *time.Time
	CompetitionName         string
	Venue                   string
	VideoURL                string
	YoutubeLink             string
	HomeScore               int
	AwayScore               int
	TeamFormation           string
	OpponentFormation       string
	Winner                  string
	Location                string
	FirstHalfStart          string
	FirstHalfEnd            string
	SecondHalfStart         string
	SecondHalfEnd           string
	MyTeamLineup            json.RawMessage
	OpponentTeamLineup      json.RawMessage
	MyTeamSubstitutes       json.RawMessage
	OpponentTeamSubstitutes json.RawMessage
	RawData                 json.RawMessage
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type ClubSource interface {
	// Clubs returns every old club ordered by group id, or just one when groupID is set.
	Clubs(ctx context.Context, groupID *int64) ([]Club, error)
}

type MediaSource interface {
	// GroupThumbs returns the thumb variants attached to the given photo ids.
	GroupThumbs(ctx context.Context, photoIDs []int64) ([]MediaFile, error)
	// GroupMedia returns every stored file attached to a club.
	GroupMedia(ctx context.Context, groupID int64) ([]MediaFile, error)
}

type ClubCounter interface {
	CountClubs(ctx context.Context) (total int, withLegacyID int, err error)
}

type MatchSource interface {
	Matches(ctx context.Context, limit int) ([]Match, error)
	Events(ctx context.Context, ids []int64) (map[int64]Event, error)
	FirstDetail(ctx context.Context, matchID int64) (MatchDetail, bool, error)
}

type MatchSink interface {
	EnsureTable(ctx context.Context) error
	// Insert returns false when the match was staged before.
	Insert(ctx context.Context, m StagedMatch) (bool, error)
}

// MediaChecker confirms a media URL still points at a stored object.
type MediaChecker interface {
	Exists(ctx context.Context, url string) (bool, error)
}
