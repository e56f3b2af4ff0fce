package legacy

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

const profileVisitsTable = "profile_visits"

// SchemaEditor runs DDL against the current database.
type SchemaEditor interface {
	TableExists(ctx context.Context, table string) (bool, error)
	ConstraintExists(ctx context.Context, table, constraint string) (bool, error)
	Exec(ctx context.Context, statement string) error
}

type constraintDDL struct {
	name      string
	statement string
}

var profileVisitsDDL = []string{
	`CREATE TABLE IF NOT EXISTS profile_visits (
    id                   TEXT PRIMARY KEY,
    visited_profile_id   TEXT NOT NULL,
    visitor_user_id      TEXT NOT NULL,
    visitor_profile_id   TEXT,
    visitor_profile_type TEXT,
    visited_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS profile_visits_visited_profile_id_idx ON profile_visits (visited_profile_id, visited_at DESC)`,
	`CREATE INDEX IF NOT EXISTS profile_visits_visitor_user_id_idx ON profile_visits (visitor_user_id)`,
	`CREATE INDEX IF NOT EXISTS profile_visits_visited_at_idx ON profile_visits (visited_at)`,
}

var profileVisitsConstraints = []constraintDDL{
	{"profile_visits_visited_profile_id_fkey", `ALTER TABLE profile_visits ADD CONSTRAINT profile_visits_visited_profile_id_fkey
    FOREIGN KEY (visited_profile_id) REFERENCES player_profiles (id) ON DELETE CASCADE`},
	{"profile_visits_visitor_user_id_fkey", `ALTER TABLE profile_visits ADD CONSTRAINT profile_visits_visitor_user_id_fkey
    FOREIGN KEY (visitor_user_id) REFERENCES users (id) ON DELETE CASCADE`},
	{"profile_visits_visitor_profile_id_fkey", `ALTER TABLE profile_visits ADD CONSTRAINT profile_visits_visitor_profile_id_fkey
    FOREIGN KEY (visitor_profile_id) REFERENCES player_profiles (id) ON DELETE SET NULL`},
}

type ProfileVisitsReport struct {
	TableExisted       bool
	ConstraintsAdded   []string
	ConstraintsPresent []string
}

// EnsureProfileVisits creates the profile_visits table, its indexes and its
// foreign keys when they are missing.
func (m *Migrator) EnsureProfileVisits(ctx context.Context) (ProfileVisitsReport, error) {
	var report ProfileVisitsReport
	schema := m.deps.Schema
	if schema == nil {
		return report, crerr.New("ensuring profile_visits needs a schema editor")
	}

	existed, err := schema.TableExists(ctx, profileVisitsTable)
	if err != nil {
		return report, crerr.Wrap(err, "check profile_visits table")
	}
	report.TableExisted = existed

	for _, statement := range profileVisitsDDL {
		if err := schema.Exec(ctx, statement); err != nil {
			return report, crerr.Wrap(err, "create profile_visits")
		}
	}

	for _, c := range profileVisitsConstraints {
		exists, err := schema.ConstraintExists(ctx, profileVisitsTable, c.name)
		if err != nil {
			return report, crerr.Wrapf(err, "check constraint %s", c.name)
		}
		if exists {
			report.ConstraintsPresent = append(report.ConstraintsPresent, c.name)
			continue
		}
		if err := schema.Exec(ctx, c.statement); err != nil {
			return report, crerr.Wrapf(err, "add constraint %s", c.name)
		}
		report.ConstraintsAdded = append(report.ConstraintsAdded, c.name)
		m.logger.InfoContext(ctx, "profile_visits constraint added", "constraint", c.name)
	}

	if !existed {
		exists, err := schema.TableExists(ctx, profileVisitsTable)
		if err != nil {
			return report, crerr.Wrap(err, "verify profile_visits table")
		}
		if !exists {
			return report, crerr.New("profile_visits table is still missing after creation")
		}
	}
	return report, nil
}
