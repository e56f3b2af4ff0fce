package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

const smoMatchDDL = `CREATE TABLE IF NOT EXISTS smo_match (
    id                        BIGSERIAL PRIMARY KEY,
    match_id                  BIGINT NOT NULL,
    event_id                  BIGINT,
    user_id                   BIGINT,
    my_team                   VARCHAR(255),
    opponent_team             VARCHAR(255),
    match_date_time           TIMESTAMPTZ,
    competition_name          VARCHAR(255),
    venue                     VARCHAR(255),
    video_url                 TEXT,
    youtube_link              TEXT,
    home_score                INTEGER NOT NULL DEFAULT 0,
    away_score                INTEGER NOT NULL DEFAULT 0,
    team_formation            VARCHAR(50),
    opponent_formation        VARCHAR(50),
    winner                    VARCHAR(255),
    location                  VARCHAR(255),
    first_half_start          VARCHAR(50),
    first_half_end            VARCHAR(50),
    second_half_start         VARCHAR(50),
    second_half_end           VARCHAR(50),
    my_team_lineup            JSONB NOT NULL DEFAULT '[]'::jsonb,
    opponent_team_lineup      JSONB NOT NULL DEFAULT '[]'::jsonb,
    my_team_substitutes       JSONB NOT NULL DEFAULT '[]'::jsonb,
    opponent_team_substitutes JSONB NOT NULL DEFAULT '[]'::jsonb,
    raw_data                  JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT smo_match_match_id_key UNIQUE (match_id)
);
CREATE INDEX IF NOT EXISTS smo_match_event_id_idx ON smo_match (event_id);
CREATE INDEX IF NOT EXISTS smo_match_user_id_idx ON smo_match (user_id);`

const sampleValueMaxLen = 100

// Store reads and writes the legacy tables of whichever database it is bound to.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type oldClubRow struct {
	GroupID     int64         `db:"group_id"`
	UserID      sql.NullInt64 `db:"user_id"`
	Title       string        `db:"club_title"`
	Description string        `db:"description"`
	PhotoID     sql.NullInt64 `db:"photo_id"`
	CreatedAt   sql.NullTime  `db:"creation_date"`
	ModifiedAt  sql.NullTime  `db:"modified_date"`
	MemberCount int           `db:"member_count"`
	ViewCount   int           `db:"view_count"`
	Country     string        `db:"country"`
}

func (s *Store) Clubs(ctx context.Context, groupID *int64) ([]Club, error) {
	query := qb.Select(
		"group_id",
		"user_id",
		"COALESCE(club_title, '') AS club_title",
		"COALESCE(description, '') AS description",
		"photo_id",
		"creation_date",
		"modified_date",
		"COALESCE(member_count, 0) AS member_count",
		"COALESCE(view_count, 0) AS view_count",
		"COALESCE(country, '') AS country",
	).From("clubs").OrderBy("group_id")
	if groupID != nil {
		query = query.Where(qb.Eq("group_id", *groupID))
	}
	sqlQuery, args, err := query.ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build old clubs query")
	}

	var rows []oldClubRow
	if err := s.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, crerr.Wrap(err, "select old clubs")
	}

	out := make([]Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, Club{
			GroupID:     row.GroupID,
			UserID:      nullInt64(row.UserID),
			Title:       row.Title,
			Description: row.Description,
			PhotoID:     nullInt64(row.PhotoID),
			CreatedAt:   nullTime(row.CreatedAt),
			ModifiedAt:  nullTime(row.ModifiedAt),
			MemberCount: row.MemberCount,
			ViewCount:   row.ViewCount,
			Country:     row.Country,
		})
	}
	return out, nil
}

type mediaFileRow struct {
	ParentID    int64         `db:"parent_id"`
	Type        string        `db:"type"`
	StoragePath string        `db:"storage_path"`
	UserID      sql.NullInt64 `db:"user_id"`
}

var mediaFileColumns = []string{"parent_id", "COALESCE(type, '') AS type", "storage_path", "user_id"}

func (s *Store) GroupThumbs(ctx context.Context, photoIDs []int64) ([]MediaFile, error) {
	if len(photoIDs) == 0 {
		return nil, nil
	}
	sqlQuery, args, err := qb.Select(mediaFileColumns...).
		From("media_files").
		Where(
			qb.Expr("parent_id = ANY(?)", pq.Array(photoIDs)),
			qb.Eq("parent_type", "group"),
			qb.In("type", []any{mediaThumb, mediaThumbProfile, mediaThumbNormal, mediaThumbIcon}),
			qb.IsNotNull("storage_path"),
		).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build group thumbs query")
	}
	return s.selectMedia(ctx, sqlQuery, args)
}

func (s *Store) GroupMedia(ctx context.Context, groupID int64) ([]MediaFile, error) {
	sqlQuery, args, err := qb.Select(mediaFileColumns...).
		From("media_files").
		Where(
			qb.Eq("parent_type", "group"),
			qb.Eq("parent_id", groupID),
			qb.IsNotNull("storage_path"),
		).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build group media query")
	}
	return s.selectMedia(ctx, sqlQuery, args)
}

func (s *Store) selectMedia(ctx context.Context, query string, args []any) ([]MediaFile, error) {
	var rows []mediaFileRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select media files")
	}
	out := make([]MediaFile, 0, len(rows))
	for _, row := range rows {
		out = append(out, MediaFile{
			ParentID:    row.ParentID,
			Type:        row.Type,
			StoragePath: row.StoragePath,
			UserID:      nullInt64(row.UserID),
		})
	}
	return out, nil
}

func (s *Store) CountClubs(ctx context.Context) (int, int, error) {
	var row struct {
		Total        int `db:"total"`
		WithLegacyID int `db:"with_legacy_id"`
	}
	query := `SELECT COUNT(*) AS total, COUNT(legacy_club_id) AS with_legacy_id FROM clubs`
	if err := s.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, crerr.Wrap(err, "count clubs")
	}
	return row.Total, row.WithLegacyID, nil
}

type legacyMatchRow struct {
	MatchID       int64        `db:"match_id"`
	EventID       string       `db:"event_id"`
	UserID        string       `db:"user_id"`
	MyTeam        string       `db:"my_team"`
	OpponentTeam  string       `db:"opponent_team"`
	MatchDateTime string       `db:"match_date_time"`
	Created       sql.NullTime `db:"created"`
	Modified      sql.NullTime `db:"modified"`
	Raw           string       `db:"raw"`
}

func (s *Store) Matches(ctx context.Context, limit int) ([]Match, error) {
	query := qb.Select(
		"m.match_id",
		"COALESCE(m.event_id::text, '') AS event_id",
		"COALESCE(m.user_id::text, '') AS user_id",
		"COALESCE(m.my_team::text, '') AS my_team",
		"COALESCE(m.opponent_team::text, '') AS opponent_team",
		"COALESCE(m.match_date_time::text, '') AS match_date_time",
		"m.created",
		"m.modified",
		"row_to_json(m)::text AS raw",
	).From("engine4_event_matchs m").OrderBy("m.match_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	sqlQuery, args, err := query.ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build legacy matches query")
	}

	var rows []legacyMatchRow
	if err := s.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, crerr.Wrap(err, "select legacy matches")
	}
	out := make([]Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, Match{
			MatchID:       row.MatchID,
			EventID:       row.EventID,
			UserID:        row.UserID,
			MyTeam:        row.MyTeam,
			OpponentTeam:  row.OpponentTeam,
			MatchDateTime: row.MatchDateTime,
			Created:       nullTime(row.Created),
			Modified:      nullTime(row.Modified),
			Raw:           []byte(row.Raw),
		})
	}
	return out, nil
}

type legacyEventRow struct {
	EventID  int64  `db:"event_id"`
	Title    string `db:"title"`
	Location string `db:"location"`
	Raw      string `db:"raw"`
}

func (s *Store) Events(ctx context.Context, ids []int64) (map[int64]Event, error) {
	out := make(map[int64]Event, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	sqlQuery, args, err := qb.Select(
		"e.event_id",
		"COALESCE(e.title::text, '') AS title",
		"COALESCE(e.location::text, '') AS location",
		"row_to_json(e)::text AS raw",
	).From("engine4_event_events e").
		Where(qb.Expr("e.event_id = ANY(?)", pq.Array(ids))).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build legacy events query")
	}

	var rows []legacyEventRow
	if err := s.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, crerr.Wrap(err, "select legacy events")
	}
	for _, row := range rows {
		out[row.EventID] = Event{EventID: row.EventID, Title: row.Title, Location: row.Location, Raw: []byte(row.Raw)}
	}
	return out, nil
}

type legacyDetailRow struct {
	Winner                 string       `db:"winner"`
	Score                  string       `db:"score"`
	TeamFormation          string       `db:"team_formation"`
	OpponentTeamFormation  string       `db:"opponent_team_formation"`
	MyTeam                 string       `db:"my_team"`
	OpponentTeam           string       `db:"opponent_team"`
	MyTeamSubstitute       string       `db:"my_team_substitute"`
	OpponentTeamSubstitute string       `db:"opponent_team_substitute"`
	MatchVideo             string       `db:"match_video"`
	YoutubeLink            string       `db:"youtube_link"`
	Location               string       `db:"location"`
	FirstHalfStart         string       `db:"first_half_start"`
	FirstHalfEnd           string       `db:"first_half_end"`
	SecondHalfStart        string       `db:"second_half_start"`
	SecondHalfEnd          string       `db:"second_half_end"`
	Created                sql.NullTime `db:"created"`
	Raw                    string       `db:"raw"`
}

var legacyDetailTextColumns = []string{
	"winner", "score", "team_formation", "opponent_team_formation",
	"my_team", "opponent_team", "my_team_substitute", "opponent_team_substitute",
	"match_video", "youtube_link", "location",
	"first_half_start", "first_half_end", "second_half_start", "second_half_end",
}

func (s *Store) FirstDetail(ctx context.Context, matchID int64) (MatchDetail, bool, error) {
	columns := make([]string, 0, len(legacyDetailTextColumns)+2)
	for _, c := range legacyDetailTextColumns {
		columns = append(columns, fmt.Sprintf("COALESCE(d.%s::text, '') AS %s", c, c))
	}
	columns = append(columns, "d.created", "row_to_json(d)::text AS raw")

	sqlQuery, args, err := qb.Select(columns...).
		From("engine4_event_details d").
		Where(qb.Eq("d.match_id", matchID)).
		OrderBy("d.detail_id").
		Limit(1).
		ToSQL()
	if err != nil {
		return MatchDetail{}, false, crerr.Wrap(err, "build legacy detail query")
	}

	var row legacyDetailRow
	if err := s.db.GetContext(ctx, &row, sqlQuery, args...); err != nil {
		if crerr.Is(err, sql.ErrNoRows) {
			return MatchDetail{}, false, nil
		}
		return MatchDetail{}, false, crerr.Wrap(err, "select legacy detail")
	}
	return MatchDetail{
		Winner:                 row.Winner,
		Score:                  row.Score,
		TeamFormation:          row.TeamFormation,
		OpponentTeamFormation:  row.OpponentTeamFormation,
		MyTeam:                 row.MyTeam,
		OpponentTeam:           row.OpponentTeam,
		MyTeamSubstitute:       row.MyTeamSubstitute,
		OpponentTeamSubstitute: row.OpponentTeamSubstitute,
		MatchVideo:             row.MatchVideo,
		YoutubeLink:            row.YoutubeLink,
		Location:               row.Location,
		FirstHalfStart:         row.FirstHalfStart,
		FirstHalfEnd:           row.FirstHalfEnd,
		SecondHalfStart:        row.SecondHalfStart,
		SecondHalfEnd:          row.SecondHalfEnd,
		Created:                nullTime(row.Created),
		Raw:                    []byte(row.Raw),
	}, true, nil
}

func (s *Store) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, smoMatchDDL); err != nil {
		return crerr.Wrap(err, "create smo_match")
	}
	return nil
}

type stagedMatchRow struct {
	MatchID                 int64      `db:"match_id"`
	EventID                 *int64     `db:"event_id"`
	UserID                  *int64     `db:"user_id"`
	MyTeam                  any        `db:"my_team"`
	OpponentTeam            any        `db:"opponent_team"`
	MatchDateTime           *time.Time `db:"match_date_time"`
	CompetitionName         any        `db:"competition_name"`
	Venue                   any        `db:"venue"`
	VideoURL                any        `db:"video_url"`
	YoutubeLink             any        `db:"youtube_link"`
	HomeScore               int        `db:"home_score"`
	AwayScore               int        `db:"away_score"`
	TeamFormation           any        `db:"team_formation"`
	OpponentFormation       any        `db:"opponent_formation"`
	Winner                  any        `db:"winner"`
	Location                any        `db:"location"`
	FirstHalfStart          any        `db:"first_half_start"`
	FirstHalfEnd            any        `db:"first_half_end"`
	SecondHalfStart         any        `db:"second_half_start"`
	SecondHalfEnd           any        `db:"second_half_end"`
	MyTeamLineup            string     `db:"my_team_lineup"`
	OpponentTeamLineup      string     `db:"opponent_team_lineup"`
	MyTeamSubstitutes       string     `db:"my_team_substitutes"`
	OpponentTeamSubstitutes string     `db:"opponent_team_substitutes"`
	RawData                 string     `db:"raw_data"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`
}

func (s *Store) Insert(ctx context.Context, m StagedMatch) (bool, error) {
	row := stagedMatchRow{
		MatchID:                 m.MatchID,
		EventID:                 m.EventID,
		UserID:                  m.UserID,
		MyTeam:                  nullable(m.MyTeam),
		OpponentTeam:            nullable(m.OpponentTeam),
		MatchDateTime:           m.MatchDateTime,
		CompetitionName:         nullable(m.CompetitionName),
		Venue:                   nullable(m.Venue),
		VideoURL:                nullable(m.VideoURL),
		YoutubeLink:             nullable(m.YoutubeLink),
		HomeScore:               m.HomeScore,
		AwayScore:               m.AwayScore,
		TeamFormation:           nullable(m.TeamFormation),
		OpponentFormation:       nullable(m.OpponentFormation),
		Winner:                  nullable(m.Winner),
		Location:                nullable(m.Location),
		FirstHalfStart:          nullable(m.FirstHalfStart),
		FirstHalfEnd:            nullable(m.FirstHalfEnd),
		SecondHalfStart:         nullable(m.SecondHalfStart),
		SecondHalfEnd:           nullable(m.SecondHalfEnd),
		MyTeamLineup:            jsonText(m.MyTeamLineup, "[]"),
		OpponentTeamLineup:      jsonText(m.OpponentTeamLineup, "[]"),
		MyTeamSubstitutes:       jsonText(m.MyTeamSubstitutes, "[]"),
		OpponentTeamSubstitutes: jsonText(m.OpponentTeamSubstitutes, "[]"),
		RawData:                 jsonText(m.RawData, "{}"),
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
	query, args, err := qb.InsertModel("smo_match", row, "ON CONFLICT (match_id) DO NOTHING")
	if err != nil {
		return false, crerr.Wrap(err, "build smo_match insert")
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, crerr.Wrapf(err, "insert smo_match %d", m.MatchID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, crerr.Wrap(err, "smo_match rows affected")
	}
	return affected > 0, nil
}

func (s *Store) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
    SELECT 1 FROM information_schema.tables
    WHERE table_schema = current_schema() AND table_name = $1
)`
	if err := s.db.GetContext(ctx, &exists, query, table); err != nil {
		return false, crerr.Wrapf(err, "check table %s", table)
	}
	return exists, nil
}

func (s *Store) ConstraintExists(ctx context.Context, table, constraint string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
    SELECT 1 FROM information_schema.table_constraints
    WHERE table_schema = current_schema() AND table_name = $1 AND constraint_name = $2
)`
	if err := s.db.GetContext(ctx, &exists, query, table, constraint); err != nil {
		return false, crerr.Wrapf(err, "check constraint %s", constraint)
	}
	return exists, nil
}

func (s *Store) Exec(ctx context.Context, statement string) error {
	_, err := s.db.ExecContext(ctx, statement)
	return err
}

type columnInfoRow struct {
	Name      string         `db:"column_name"`
	DataType  string         `db:"data_type"`
	MaxLength sql.NullInt64  `db:"character_maximum_length"`
	Nullable  string         `db:"is_nullable"`
	Default   sql.NullString `db:"column_default"`
}

func (s *Store) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	query := `SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
FROM information_schema.columns
WHERE table_schema = 'public' AND table_name = $1
ORDER BY ordinal_position`

	var rows []columnInfoRow
	if err := s.db.SelectContext(ctx, &rows, query, table); err != nil {
		return nil, err
	}
	out := make([]ColumnInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, ColumnInfo{
			Name:      row.Name,
			DataType:  row.DataType,
			MaxLength: nullInt64(row.MaxLength),
			Nullable:  strings.EqualFold(row.Nullable, "YES"),
			Default:   row.Default.String,
		})
	}
	return out, nil
}

func (s *Store) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+qb.QuoteIdent(table)); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) Sample(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", qb.QuoteIdent(table), limit))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]map[string]any, 0, limit)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			row[k] = displayValue(v)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	query := `SELECT kcu.column_name, ccu.table_name AS foreign_table_name, ccu.column_name AS foreign_column_name
FROM information_schema.table_constraints AS tc
JOIN information_schema.key_column_usage AS kcu
  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage AS ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_name = $1`

	var rows []struct {
		Column        string `db:"column_name"`
		ForeignTable  string `db:"foreign_table_name"`
		ForeignColumn string `db:"foreign_column_name"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, table); err != nil {
		return nil, err
	}
	out := make([]ForeignKey, 0, len(rows))
	for _, row := range rows {
		out = append(out, ForeignKey(row))
	}
	return out, nil
}

func displayValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return truncate(string(val), sampleValueMaxLen)
	case string:
		return truncate(val, sampleValueMaxLen)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return val
	}
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func jsonText(raw []byte, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	return string(raw)
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time
	return &out
}
