package legacy

import (
	"strings"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

const unknownCountry = "Unknown"

// Dependencies wires a Migrator. Each command checks only the fields it uses.
type Dependencies struct {
	Clubs  club.Repository
	Users  user.Repository
	IDs    id.Generator
	Logger *logging.Logger
	Now    func() time.Time

	OldClubs  ClubSource
	Media     MediaSource
	Counter   ClubCounter
	Matches   MatchSource
	Staging   MatchSink
	Checker   MediaChecker
	Inspector SchemaInspector
	Schema    SchemaEditor

	// MediaPrefix turns a media_files storage_path into a public URL.
	MediaPrefix string
}

type Migrator struct {
	deps   Dependencies
	logger *logging.Logger
	now    func() time.Time
}

func NewMigrator(deps Dependencies) *Migrator {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	if deps.IDs == nil {
		deps.IDs = id.NewUUIDGenerator()
	}
	return &Migrator{deps: deps, logger: logger, now: now}
}

func (m *Migrator) mediaURL(storagePath string) string {
	storagePath = strings.TrimSpace(storagePath)
	if storagePath == "" {
		return ""
	}
	return m.deps.MediaPrefix + storagePath
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max]
}
