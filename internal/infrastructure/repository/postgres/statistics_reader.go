package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scouting-platform/internal/domain/statistics"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	qb "github.com/riskibarqy/scouting-platform/internal/platform/querybuilder"
)

// fallbackStatisticsSchemas are probed, in order, after the configured schema.
var fallbackStatisticsSchemas = []string{"public", "smo_v1", "smo", "statistics"}

// statisticsPayloadColumns follow the subject id column in every statistics query.
var statisticsPayloadColumns = []string{
	"action_type",
	"statistics_data->'attacking' AS attacking_spider",
	"statistics_data->'defensive' AS defensive_spider",
	"donut_chart_data->'attacking' AS attacking_donut",
	"donut_chart_data->'defensive' AS defensive_donut",
	"heatmap_data->'attacking' AS attacking_heatmap",
	"heatmap_data->'defensive' AS defensive_heatmap",
	"goalpost_statistics_data AS goalpost_statistics",
	"average_statistics AS summary_table",
}

// statisticsIDColumn is the only subject column a query may reference; older
// tables carry player_id but no club_id.
func statisticsIDColumn(subject statistics.Subject) string {
	if subject == statistics.SubjectClub {
		return "club_id"
	}
	return "player_id"
}

type statisticsRow struct {
	CacheType          string         `db:"cache_type"`
	PlayerID           sql.NullInt64  `db:"player_id"`
	ClubID             sql.NullInt64  `db:"club_id"`
	ActionType         sql.NullString `db:"action_type"`
	AttackingSpider    []byte         `db:"attacking_spider"`
	DefensiveSpider    []byte         `db:"defensive_spider"`
	AttackingDonut     []byte         `db:"attacking_donut"`
	DefensiveDonut     []byte         `db:"defensive_donut"`
	AttackingHeatmap   []byte         `db:"attacking_heatmap"`
	DefensiveHeatmap   []byte         `db:"defensive_heatmap"`
	GoalpostStatistics []byte         `db:"goalpost_statistics"`
	SummaryTable       []byte         `db:"summary_table"`
}

// StatisticsReader reads the pre-computed statistics cache of the legacy
// analytics database. The table may live in one of several schemas depending
// on the deployment, so the first query probes them and remembers the hit.
type StatisticsReader struct {
	db     *sqlx.DB
	schema string
	table  string
	logger *logging.Logger

	mu       sync.RWMutex
	resolved string
}

func NewStatisticsReader(db *sqlx.DB, schema, table string, logger *logging.Logger) *StatisticsReader {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatisticsReader{
		db:     db,
		schema: strings.TrimSpace(schema),
		table:  strings.TrimSpace(table),
		logger: logger,
	}
}

func (r *StatisticsReader) Fetch(ctx context.Context, subject statistics.Subject, id int64) ([]statistics.Row, error) {
	r.mu.RLock()
	resolved := r.resolved
	r.mu.RUnlock()

	candidates := statisticsTableCandidates(r.schema, r.table)
	if resolved != "" {
		candidates = append([]string{resolved}, candidates...)
	}

	tried := make([]string, 0, len(candidates))
	for _, table := range candidates {
		if containsString(tried, table) {
			continue
		}
		tried = append(tried, table)

		rows, err := r.fetchFrom(ctx, table, subject, id)
		if isUndefinedTable(err) {
			r.logger.DebugContext(ctx, "statistics table not found, probing next", "table", table)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", table, err)
		}
		if table != resolved {
			r.mu.Lock()
			r.resolved = table
			r.mu.Unlock()
			r.logger.InfoContext(ctx, "statistics table resolved", "table", table)
		}
		return rows, nil
	}

	available, err := r.availableTables(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "list candidate statistics tables failed", "error", err)
	}
	return nil, &statistics.TableNotFoundError{Table: r.table, Tried: tried, Available: available}
}

func (r *StatisticsReader) fetchFrom(ctx context.Context, table string, subject statistics.Subject, id int64) ([]statistics.Row, error) {
	query, args, err := statisticsQuery(table, subject, id)
	if err != nil {
		return nil, err
	}

	var rows []statisticsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]statistics.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, statisticsFromRow(row))
	}
	return out, nil
}

func statisticsQuery(table string, subject statistics.Subject, id int64) (string, []any, error) {
	idColumn := statisticsIDColumn(subject)
	columns := append([]string{"cache_type", idColumn}, statisticsPayloadColumns...)
	return qb.Select(columns...).
		From(table).
		Where(qb.Eq("cache_type", string(subject)), qb.Eq(idColumn, id)).
		ToSQL()
}

// statisticsTableCandidates lists the configured schema first, then the
// known fallbacks, then the bare table name resolved through search_path.
func statisticsTableCandidates(schema, table string) []string {
	quotedTable := qb.QuoteIdent(table)
	out := make([]string, 0, len(fallbackStatisticsSchemas)+2)
	if schema != "" {
		out = append(out, qb.QuoteIdent(schema)+"."+quotedTable)
	}
	for _, s := range fallbackStatisticsSchemas {
		if s == schema {
			continue
		}
		out = append(out, qb.QuoteIdent(s)+"."+quotedTable)
	}
	return append(out, quotedTable)
}

func (r *StatisticsReader) availableTables(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("table_schema || '.' || table_name").
		From("information_schema.tables").
		Where(qb.Expr("(table_name ILIKE ? OR table_name ILIKE ?)", "%statistic%", "%cache%")).
		OrderBy("table_schema", "table_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tables query: %w", err)
	}
	var tables []string
	if err := r.db.SelectContext(ctx, &tables, query, args...); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func statisticsFromRow(row statisticsRow) statistics.Row {
	out := statistics.Row{
		CacheType:          row.CacheType,
		PlayerID:           nullInt64Ptr(row.PlayerID),
		ClubID:             nullInt64Ptr(row.ClubID),
		AttackingSpider:    row.AttackingSpider,
		DefensiveSpider:    row.DefensiveSpider,
		AttackingDonut:     row.AttackingDonut,
		DefensiveDonut:     row.DefensiveDonut,
		AttackingHeatmap:   row.AttackingHeatmap,
		DefensiveHeatmap:   row.DefensiveHeatmap,
		GoalpostStatistics: row.GoalpostStatistics,
		SummaryTable:       row.SummaryTable,
	}
	if row.ActionType.Valid {
		action := row.ActionType.String
		out.ActionType = &action
	}
	return out
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
