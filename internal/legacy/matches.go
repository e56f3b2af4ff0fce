package legacy

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

var scorePattern = regexp.MustCompile(`(\d+)[-/](\d+)`)

var legacyDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type MatchMigrationStats struct {
	Total            int
	Created          int
	SkippedDuplicate int
	SkippedNoDetails int
	SkippedNoVideo   int
	Errors           int
}

// MigrateMatchAnalysis stages smo_v1 matches into smo_match. limit <= 0 copies everything.
func (m *Migrator) MigrateMatchAnalysis(ctx context.Context, limit int) (MatchMigrationStats, error) {
	var stats MatchMigrationStats
	if m.deps.Matches == nil || m.deps.Staging == nil {
		return stats, crerr.New("match migration needs a match source and a staging sink")
	}

	if err := m.deps.Staging.EnsureTable(ctx); err != nil {
		return stats, crerr.Wrap(err, "ensure smo_match table")
	}

	matches, err := m.deps.Matches.Matches(ctx, limit)
	if err != nil {
		return stats, crerr.Wrap(err, "read legacy matches")
	}
	stats.Total = len(matches)
	m.logger.InfoContext(ctx, "legacy matches loaded", "count", stats.Total)
	if stats.Total == 0 {
		return stats, nil
	}

	events, err := m.deps.Matches.Events(ctx, eventIDs(matches))
	if err != nil {
		return stats, crerr.Wrap(err, "read legacy events")
	}

	for _, old := range matches {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		detail, found, err := m.deps.Matches.FirstDetail(ctx, old.MatchID)
		if err != nil {
			stats.Errors++
			m.logger.WarnContext(ctx, "match detail lookup failed", "match_id", old.MatchID, "error", truncate(err.Error(), 80))
			continue
		}
		if !found {
			stats.SkippedNoDetails++
			m.logger.InfoContext(ctx, "match skipped, no details", "match_id", old.MatchID)
			continue
		}

		staged, err := m.stageMatch(old, detail, events)
		if err != nil {
			stats.Errors++
			m.logger.WarnContext(ctx, "match staging failed", "match_id", old.MatchID, "error", truncate(err.Error(), 80))
			continue
		}
		if staged.VideoURL == "" && staged.YoutubeLink == "" {
			stats.SkippedNoVideo++
			m.logger.InfoContext(ctx, "match skipped, no video", "match_id", old.MatchID)
			continue
		}

		inserted, err := m.deps.Staging.Insert(ctx, staged)
		switch {
		case err != nil:
			stats.Errors++
			m.logger.WarnContext(ctx, "match insert failed", "match_id", old.MatchID, "error", truncate(err.Error(), 80))
		case inserted:
			stats.Created++
			m.logger.InfoContext(ctx, "match staged",
				"match_id", old.MatchID,
				"teams", old.MyTeam+" vs "+old.OpponentTeam,
				"score", strconv.Itoa(staged.HomeScore)+"-"+strconv.Itoa(staged.AwayScore),
			)
		default:
			stats.SkippedDuplicate++
		}
	}
	return stats, nil
}

func (m *Migrator) stageMatch(old Match, detail MatchDetail, events map[int64]Event) (StagedMatch, error) {
	now := m.now().UTC()
	staged := StagedMatch{
		MatchID:           old.MatchID,
		MyTeam:            strings.TrimSpace(old.MyTeam),
		OpponentTeam:      strings.TrimSpace(old.OpponentTeam),
		YoutubeLink:       strings.TrimSpace(detail.YoutubeLink),
		TeamFormation:     strings.TrimSpace(detail.TeamFormation),
		OpponentFormation: strings.TrimSpace(detail.OpponentTeamFormation),
		Winner:            strings.TrimSpace(detail.Winner),
		Location:          strings.TrimSpace(detail.Location),
		FirstHalfStart:    strings.TrimSpace(detail.FirstHalfStart),
		FirstHalfEnd:      strings.TrimSpace(detail.FirstHalfEnd),
		SecondHalfStart:   strings.TrimSpace(detail.SecondHalfStart),
		SecondHalfEnd:     strings.TrimSpace(detail.SecondHalfEnd),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if old.Created != nil {
		staged.CreatedAt = *old.Created
	}
	if old.Modified != nil {
		staged.UpdatedAt = *old.Modified
	}
	staged.VideoURL = m.mediaURL(detail.MatchVideo)

	var event *Event
	if eventID, ok := parsePositiveInt(old.EventID); ok {
		staged.EventID = &eventID
		if e, found := events[eventID]; found {
			event = &e
			staged.CompetitionName = strings.TrimSpace(e.Title)
		}
	}
	if userID, ok := parsePositiveInt(old.UserID); ok {
		staged.UserID = &userID
	}

	staged.Venue = staged.Location
	if staged.Venue == "" && event != nil {
		staged.Venue = strings.TrimSpace(event.Location)
	}

	home, away, _ := parseScore(detail.Score)
	staged.HomeScore, staged.AwayScore = home, away

	if date, ok := parseLegacyDate(old.MatchDateTime); ok {
		staged.MatchDateTime = &date
	} else if detail.Created != nil {
		created := detail.Created.UTC()
		staged.MatchDateTime = &created
	}

	var err error
	if staged.MyTeamLineup, err = parseLineup(detail.MyTeam); err != nil {
		return StagedMatch{}, err
	}
	if staged.OpponentTeamLineup, err = parseLineup(detail.OpponentTeam); err != nil {
		return StagedMatch{}, err
	}
	if staged.MyTeamSubstitutes, err = parseLineup(detail.MyTeamSubstitute); err != nil {
		return StagedMatch{}, err
	}
	if staged.OpponentTeamSubstitutes, err = parseLineup(detail.OpponentTeamSubstitute); err != nil {
		return StagedMatch{}, err
	}

	raw := struct {
		OriginalMatchDetail json.RawMessage `json:"originalMatchDetail"`
		OriginalMatch       json.RawMessage `json:"originalMatch"`
		Event               json.RawMessage `json:"event"`
	}{
		OriginalMatchDetail: rawOrNull(detail.Raw),
		OriginalMatch:       rawOrNull(old.Raw),
		Event:               json.RawMessage("null"),
	}
	if event != nil {
		raw.Event = rawOrNull(event.Raw)
	}
	if staged.RawData, err = sonic.Marshal(raw); err != nil {
		return StagedMatch{}, crerr.Wrap(err, "encode raw match data")
	}
	return staged, nil
}

// parseScore reads "3-2" or "3/2". A missing score is 0-0.
func parseScore(raw string) (home, away int, ok bool) {
	m := scorePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, false
	}
	home, errHome := strconv.Atoi(m[1])
	away, errAway := strconv.Atoi(m[2])
	if errHome != nil || errAway != nil {
		return 0, 0, false
	}
	return home, away, true
}

// parseLineup keeps lineup entries that carry both a player name and a
// jersey number. Unparseable input yields an empty lineup.
func parseLineup(raw string) (json.RawMessage, error) {
	var entries []map[string]any
	if strings.TrimSpace(raw) != "" {
		if err := sonic.UnmarshalString(raw, &entries); err != nil {
			entries = nil
		}
	}

	kept := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || !truthy(entry["player_name"]) || !truthy(entry["jersy_number"]) {
			continue
		}
		kept = append(kept, entry)
	}
	out, err := sonic.Marshal(kept)
	if err != nil {
		return nil, crerr.Wrap(err, "encode lineup")
	}
	return out, nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	default:
		return true
	}
}

func parseLegacyDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parsePositiveInt(raw string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func eventIDs(matches []Match) []int64 {
	seen := make(map[int64]struct{}, len(matches))
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		id, ok := parsePositiveInt(m.EventID)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
