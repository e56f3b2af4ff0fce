package statistics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type Subject string

const (
	SubjectPlayer Subject = "player"
	SubjectClub   Subject = "club"
)

// Row is one cached statistics record split into chart-ready sections.
type Row struct {
	CacheType          string
	PlayerID           *int64
	ClubID             *int64
	ActionType         *string
	AttackingSpider    json.RawMessage
	DefensiveSpider    json.RawMessage
	AttackingDonut     json.RawMessage
	DefensiveDonut     json.RawMessage
	AttackingHeatmap   json.RawMessage
	DefensiveHeatmap   json.RawMessage
	GoalpostStatistics json.RawMessage
	SummaryTable       json.RawMessage
}

type Reader interface {
	Fetch(ctx context.Context, subject Subject, id int64) ([]Row, error)
}

// TableNotFoundError means the statistics table exists in none of the probed
// locations. Available lists tables that look like candidates.
type TableNotFoundError struct {
	Table     string
	Tried     []string
	Available []string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("statistics table %q not found (tried %s); available tables: [%s]",
		e.Table, strings.Join(e.Tried, ", "), strings.Join(e.Available, ", "))
}
