package legacy

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
)

const (
	exploreSampleRows  = 7
	exploreConcurrency = 4
)

// AnalysisTables are the smo_v1 tables that hold match analysis data.
var AnalysisTables = []string{
	"engine4_event_events",
	"engine4_event_matchs",
	"engine4_event_details",
	"engine4_event_photos",
}

type ColumnInfo struct {
	Name      string
	DataType  string
	MaxLength *int64
	Nullable  bool
	Default   string
}

type ForeignKey struct {
	Column        string
	ForeignTable  string
	ForeignColumn string
}

type SchemaInspector interface {
	Columns(ctx context.Context, table string) ([]ColumnInfo, error)
	RowCount(ctx context.Context, table string) (int64, error)
	Sample(ctx context.Context, table string, limit int) ([]map[string]any, error)
	ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error)
}

// TableReport describes one table. Err is set when any probe failed; the
// fields gathered before the failure are kept.
type TableReport struct {
	Table       string
	Columns     []ColumnInfo
	RowCount    int64
	Sample      []map[string]any
	ForeignKeys []ForeignKey
	Err         error
}

// ExploreTables inspects the given tables concurrently and returns the
// reports in the order the tables were given.
func (m *Migrator) ExploreTables(ctx context.Context, tables []string) ([]TableReport, error) {
	if m.deps.Inspector == nil {
		return nil, crerr.New("exploring tables needs a schema inspector")
	}

	p := pool.NewWithResults[TableReport]().WithMaxGoroutines(exploreConcurrency)
	for _, table := range tables {
		table := table
		p.Go(func() TableReport {
			return m.exploreTable(ctx, table)
		})
	}
	reports := p.Wait()

	order := make(map[string]int, len(tables))
	for i, table := range tables {
		order[table] = i
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return order[reports[i].Table] < order[reports[j].Table]
	})
	return reports, nil
}

func (m *Migrator) exploreTable(ctx context.Context, table string) TableReport {
	report := TableReport{Table: table}
	inspector := m.deps.Inspector

	var err error
	if report.Columns, err = inspector.Columns(ctx, table); err != nil {
		report.Err = crerr.Wrapf(err, "columns of %s", table)
		return report
	}
	if report.RowCount, err = inspector.RowCount(ctx, table); err != nil {
		report.Err = crerr.Wrapf(err, "count %s", table)
		return report
	}
	if report.Sample, err = inspector.Sample(ctx, table, exploreSampleRows); err != nil {
		report.Err = crerr.Wrapf(err, "sample %s", table)
		return report
	}
	if report.ForeignKeys, err = inspector.ForeignKeys(ctx, table); err != nil {
		report.Err = crerr.Wrapf(err, "foreign keys of %s", table)
		return report
	}
	m.logger.DebugContext(ctx, "table explored", "table", table, "columns", len(report.Columns), "rows", report.RowCount)
	return report
}
