package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/scouting-platform/internal/app"
	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/storage/s3media"
	"github.com/riskibarqy/scouting-platform/internal/legacy"
	"github.com/riskibarqy/scouting-platform/internal/platform/dburl"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

const (
	oldClubsDatabase = "smo_v2"
	analysisDatabase = "smo_v1"
	stagingDatabase  = "smo_v2"
)

type options struct {
	dbURL  string
	cfg    config.LegacyConfig
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: logging.NewConsole(logging.LevelInfo)}

	root := &cobra.Command{
		Use:          "legacy",
		Short:        "Move data from the legacy SMO databases into the scouting platform",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadLegacy()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			opts.logger = logging.NewConsole(cfg.LogLevel)
			if strings.TrimSpace(opts.dbURL) == "" {
				opts.dbURL = cfg.DBURL
			}
			if strings.TrimSpace(opts.dbURL) == "" {
				return fmt.Errorf("database url is required (--db-url or DB_URL)")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.dbURL, "db-url", "", "target Postgres URL (defaults to DB_URL)")

	root.AddCommand(
		newMigrateClubsCmd(opts),
		newLoadClubImagesCmd(opts),
		newMigrateMatchAnalysisCmd(opts),
		newExploreMatchAnalysisCmd(opts),
		newEnsureProfileVisitsCmd(opts),
	)
	return root
}

func newMigrateClubsCmd(opts *options) *cobra.Command {
	var (
		sourceURL string
		clubID    int64
	)
	cmd := &cobra.Command{
		Use:   "migrate-clubs",
		Short: "Copy clubs from the old groups table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			source, err := resolveURL(sourceURL, opts.dbURL, oldClubsDatabase)
			if err != nil {
				return err
			}

			target, err := opts.open(ctx, opts.dbURL)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, target)
			old, err := opts.open(ctx, source)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, old)

			oldStore := legacy.NewStore(old)
			migrator := legacy.NewMigrator(legacy.Dependencies{
				Clubs:       postgres.NewClubRepository(target),
				Logger:      opts.logger,
				OldClubs:    oldStore,
				Media:       oldStore,
				Counter:     legacy.NewStore(target),
				MediaPrefix: opts.cfg.Media.Prefix,
			})

			var groupID *int64
			if clubID > 0 {
				groupID = &clubID
			}
			stats, err := migrator.MigrateClubs(ctx, groupID)
			if err != nil {
				return err
			}
			opts.logger.Info("club migration finished",
				"total", stats.Total,
				"created", stats.Created,
				"skipped_duplicate", stats.SkippedDuplicate,
				"skipped_no_data", stats.SkippedNoData,
				"errors", stats.Errors,
				"clubs_in_database", stats.ClubsInDatabase,
				"clubs_with_legacy_id", stats.ClubsWithLegacyID,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "old clubs database URL (defaults to --db-url on "+oldClubsDatabase+")")
	cmd.Flags().Int64Var(&clubID, "club-id", 0, "migrate a single legacy group id")
	return cmd
}

func newLoadClubImagesCmd(opts *options) *cobra.Command {
	var (
		limit   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "load-club-images",
		Short: "Fill club logos and thumbnails from media_files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := opts.open(ctx, opts.dbURL)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, db)

			deps := legacy.Dependencies{
				Clubs:       postgres.NewClubRepository(db),
				Users:       postgres.NewUserRepository(db),
				Logger:      opts.logger,
				Media:       legacy.NewStore(db),
				MediaPrefix: opts.cfg.Media.Prefix,
			}
			if opts.cfg.Media.VerifyS3 {
				checker, err := s3media.NewChecker(ctx, s3media.Config{
					Bucket:          opts.cfg.Media.Bucket,
					Region:          opts.cfg.Media.Region,
					Endpoint:        opts.cfg.Media.Endpoint,
					AccessKeyID:     opts.cfg.Media.AccessKeyID,
					SecretAccessKey: opts.cfg.Media.SecretAccessKey,
					Prefix:          opts.cfg.Media.Prefix,
				})
				if err != nil {
					return fmt.Errorf("build s3 checker: %w", err)
				}
				deps.Checker = checker
			}

			stats, err := legacy.NewMigrator(deps).LoadClubImages(ctx, legacy.ImageLoadOptions{Limit: limit, Workers: workers})
			if err != nil {
				return err
			}
			opts.logger.Info("club image load finished",
				"total", stats.Total,
				"updated", stats.Updated,
				"owner_updated", stats.OwnerUpdated,
				"skipped_no_club_id", stats.SkippedNoClubID,
				"skipped_no_images", stats.SkippedNoImages,
				"errors", stats.Errors,
				"s3_verified", deps.Checker != nil,
			)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "process at most this many clubs (0 = all)")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent clubs")
	return cmd
}

func newMigrateMatchAnalysisCmd(opts *options) *cobra.Command {
	var (
		limit      int
		sourceURL  string
		stagingURL string
	)
	cmd := &cobra.Command{
		Use:   "migrate-match-analysis",
		Short: "Stage smo_v1 match analysis into smo_match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			source, err := resolveURL(sourceURL, opts.dbURL, analysisDatabase)
			if err != nil {
				return err
			}
			staging, err := resolveURL(stagingURL, opts.dbURL, stagingDatabase)
			if err != nil {
				return err
			}

			sourceDB, err := opts.open(ctx, source)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, sourceDB)
			stagingDB, err := opts.open(ctx, staging)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, stagingDB)

			migrator := legacy.NewMigrator(legacy.Dependencies{
				Logger:  opts.logger,
				Matches: legacy.NewStore(sourceDB),
				Staging: legacy.NewStore(stagingDB),
			})
			stats, err := migrator.MigrateMatchAnalysis(ctx, limit)
			if err != nil {
				return err
			}
			opts.logger.Info("match analysis migration finished",
				"total", stats.Total,
				"created", stats.Created,
				"skipped_duplicate", stats.SkippedDuplicate,
				"skipped_no_details", stats.SkippedNoDetails,
				"skipped_no_video", stats.SkippedNoVideo,
				"errors", stats.Errors,
			)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stage at most this many matches (0 = all)")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "analysis database URL (defaults to --db-url on "+analysisDatabase+")")
	cmd.Flags().StringVar(&stagingURL, "staging-url", "", "staging database URL (defaults to --db-url on "+stagingDatabase+")")
	return cmd
}

func newExploreMatchAnalysisCmd(opts *options) *cobra.Command {
	var (
		sourceURL string
		tables    []string
	)
	cmd := &cobra.Command{
		Use:   "explore-match-analysis",
		Short: "Print columns, counts, samples and foreign keys of the analysis tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			source, err := resolveURL(sourceURL, opts.dbURL, analysisDatabase)
			if err != nil {
				return err
			}
			db, err := opts.open(ctx, source)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, db)

			migrator := legacy.NewMigrator(legacy.Dependencies{
				Logger:    opts.logger,
				Inspector: legacy.NewStore(db),
			})
			reports, err := migrator.ExploreTables(ctx, tables)
			if err != nil {
				return err
			}
			printReports(cmd, reports)
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "analysis database URL (defaults to --db-url on "+analysisDatabase+")")
	cmd.Flags().StringSliceVar(&tables, "table", legacy.AnalysisTables, "tables to inspect")
	return cmd
}

func newEnsureProfileVisitsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-profile-visits",
		Short: "Create the profile_visits table, indexes and foreign keys if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := opts.open(ctx, opts.dbURL)
			if err != nil {
				return err
			}
			defer closeDB(opts.logger, db)

			report, err := legacy.NewMigrator(legacy.Dependencies{
				Logger: opts.logger,
				Schema: legacy.NewStore(db),
			}).EnsureProfileVisits(ctx)
			if err != nil {
				return err
			}
			opts.logger.Info("profile_visits ready",
				"table_existed", report.TableExisted,
				"constraints_added", report.ConstraintsAdded,
				"constraints_present", report.ConstraintsPresent,
			)
			return nil
		},
	}
}

func (o *options) open(ctx context.Context, rawURL string) (*sqlx.DB, error) {
	return app.OpenDB(ctx, rawURL, o.cfg.DBDisablePreparedBinary)
}

// resolveURL prefers an explicit URL and otherwise points base at database.
func resolveURL(explicit, base, database string) (string, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, nil
	}
	return dburl.WithDatabase(base, database)
}

func closeDB(logger *logging.Logger, db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Warn("close database", "error", err)
	}
}

func printReports(cmd *cobra.Command, reports []legacy.TableReport) {
	out := cmd.OutOrStdout()
	for _, r := range reports {
		fmt.Fprintf(out, "== %s ==\n", r.Table)
		if r.Err != nil {
			fmt.Fprintf(out, "error: %v\n", r.Err)
		}
		fmt.Fprintf(out, "rows: %d\n", r.RowCount)
		for _, c := range r.Columns {
			nullable := "NOT NULL"
			if c.Nullable {
				nullable = "NULL"
			}
			length := ""
			if c.MaxLength != nil {
				length = fmt.Sprintf("(%d)", *c.MaxLength)
			}
			fmt.Fprintf(out, "  %-32s %s%s %s", c.Name, c.DataType, length, nullable)
			if c.Default != "" {
				fmt.Fprintf(out, " DEFAULT %s", c.Default)
			}
			fmt.Fprintln(out)
		}
		for _, fk := range r.ForeignKeys {
			fmt.Fprintf(out, "  fk %s -> %s.%s\n", fk.Column, fk.ForeignTable, fk.ForeignColumn)
		}
		for i, row := range r.Sample {
			fmt.Fprintf(out, "  sample %d: %v\n", i+1, row)
		}
		fmt.Fprintln(out)
	}
}
