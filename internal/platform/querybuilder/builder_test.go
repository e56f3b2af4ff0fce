package querybuilder

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "status").
		From("matches").
		Where(Eq("status", "PENDING"), IsNull("deleted_at")).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT id, status FROM matches WHERE status = $1 AND deleted_at IS NULL ORDER BY created_at ASC, id ASC LIMIT 1 FOR UPDATE SKIP LOCKED", query)
	require.Equal(t, []any{"PENDING"}, args)
}

func TestSelectBuilder_ContainsAndIn(t *testing.T) {
	query, args, err := Select("*").
		From("player_profiles").
		Where(Contains("first_name", "50%_off"), In("country", []any{"ID", "GB"}), Expr("id > ?", "p1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM player_profiles WHERE first_name ILIKE $1 AND country IN ($2, $3) AND id > $4", query)
	require.Equal(t, []any{`%50\%\_off%`, "ID", "GB", "p1"}, args)
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("clubs").Where(In("id", nil)).ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM clubs WHERE 1=0", query)
	require.Empty(t, args)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("match_results").
		Columns("match_id", "payload").
		Values("m1", `{"events":[]}`).
		Suffix("ON CONFLICT (match_id) DO UPDATE SET payload = EXCLUDED.payload").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO match_results (match_id, payload) VALUES ($1, $2) ON CONFLICT (match_id) DO UPDATE SET payload = EXCLUDED.payload", query)
	require.Len(t, args, 2)

	_, _, err = InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	require.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		SetExpr("credits", "credits - ?", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "UPDATE users SET credits = credits - $1, updated_at = NOW() WHERE id = $2", query)
	require.Equal(t, []any{1, "u1"}, args)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("clubs").Where(Eq("id", "c1")).ToSQL()
	require.NoError(t, err)
	require.Equal(t, "DELETE FROM clubs WHERE id = $1", query)
	require.Equal(t, []any{"c1"}, args)

	_, _, err = DeleteFrom("clubs").ToSQL()
	require.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string         `db:"id"`
		Name    string         `db:"name"`
		Phone   sql.NullString `db:"phone"`
		Skipped string         `db:"-"`
		hidden  string
	}

	query, args, err := InsertModel("users", row{ID: "u1", Name: "Ana", hidden: "x"}, "RETURNING created_at")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO users (id, name, phone) VALUES ($1, $2, $3) RETURNING created_at", query)
	require.Len(t, args, 3)
	require.Equal(t, []string{"id", "name", "phone"}, Columns(&row{}))
}

func TestQuoteIdent(t *testing.T) {
	require.Equal(t, `"smo_v1"`, QuoteIdent("smo_v1"))
	require.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
}
