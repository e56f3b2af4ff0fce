package match

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound = errors.New("user account not found")
	ErrInvalidLevel = errors.New("invalid match level")
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus accepts only the exact upper-case status names.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusProcessing, StatusCompleted:
		return s, true
	default:
		return "", false
	}
}

type Level string

const (
	LevelProfessional     Level = "PROFESSIONAL"
	LevelSemiProfessional Level = "SEMI_PROFESSIONAL"
	LevelAcademicTopTier  Level = "ACADEMIC_TOP_TIER"
	LevelAcademicAmateur  Level = "ACADEMIC_AMATEUR"
	LevelSundayLeague     Level = "SUNDAY_LEAGUE"
)

var Levels = []Level{LevelProfessional, LevelSemiProfessional, LevelAcademicTopTier, LevelAcademicAmateur, LevelSundayLeague}

func ParseLevel(raw string) (Level, error) {
	for _, l := range Levels {
		if string(l) == strings.TrimSpace(raw) {
			return l, nil
		}
	}
	return "", ErrInvalidLevel
}

// Match is a video submitted for AI analysis.
type Match struct {
	ID        string
	UserID    string
	Title     string
	VideoURL  string
	HomeTeam  string
	AwayTeam  string
	Level     Level
	FocusHint string
	Status    Status
	ClaimedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Title(homeTeam, awayTeam string) string {
	return strings.TrimSpace(homeTeam) + " vs " + strings.TrimSpace(awayTeam)
}

// Result is the analysis payload posted back by the worker, one per match.
type Result struct {
	MatchID     string
	Payload     json.RawMessage
	SubmittedAt time.Time
	UpdatedAt   time.Time
}
