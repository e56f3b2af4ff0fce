package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/legacy"
)

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]*cobra.Command)
	for _, c := range root.Commands() {
		names[c.Name()] = c
	}
	for _, want := range []string{
		"migrate-clubs",
		"load-club-images",
		"migrate-match-analysis",
		"explore-match-analysis",
		"ensure-profile-visits",
	} {
		require.Contains(t, names, want)
	}

	workers, err := names["load-club-images"].Flags().GetInt("workers")
	require.NoError(t, err)
	require.Equal(t, 4, workers)

	tables, err := names["explore-match-analysis"].Flags().GetStringSlice("table")
	require.NoError(t, err)
	require.Equal(t, legacy.AnalysisTables, tables)
}

func TestRootRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("APP_LOG_LEVEL", "info")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"ensure-profile-visits"})

	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "database url is required")
}

func TestResolveURL(t *testing.T) {
	got, err := resolveURL("", "postgres://u:p@db:5432/smo_dev?sslmode=disable", analysisDatabase)
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@db:5432/smo_v1?sslmode=disable", got)

	got, err = resolveURL(" postgres://other/x ", "postgres://u:p@db:5432/smo_dev", analysisDatabase)
	require.NoError(t, err)
	require.Equal(t, "postgres://other/x", got)

	_, err = resolveURL("", "not-a-url", oldClubsDatabase)
	require.Error(t, err)
}

func TestPrintReports(t *testing.T) {
	length := int64(255)
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	printReports(cmd, []legacy.TableReport{
		{
			Table:    "engine4_event_matchs",
			RowCount: 12,
			Columns: []legacy.ColumnInfo{
				{Name: "match_id", DataType: "integer"},
				{Name: "my_team", DataType: "character varying", MaxLength: &length, Nullable: true},
			},
			ForeignKeys: []legacy.ForeignKey{{Column: "event_id", ForeignTable: "engine4_event_events", ForeignColumn: "event_id"}},
		},
		{Table: "missing", Err: errors.New("relation does not exist")},
	})

	text := out.String()
	require.Contains(t, text, "== engine4_event_matchs ==")
	require.Contains(t, text, "rows: 12")
	require.Contains(t, text, "character varying(255) NULL")
	require.Contains(t, text, "fk event_id -> engine4_event_events.event_id")
	require.Contains(t, text, "error: relation does not exist")
}
