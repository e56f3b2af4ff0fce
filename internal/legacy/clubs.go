package legacy

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
)

type ClubMigrationStats struct {
	Total             int
	Created           int
	SkippedDuplicate  int
	SkippedNoData     int
	Errors            int
	ClubsInDatabase   int
	ClubsWithLegacyID int
}

// MigrateClubs copies old clubs into the clubs table. A club that already
// exists by name and country is backfilled once with its legacy data.
func (m *Migrator) MigrateClubs(ctx context.Context, groupID *int64) (ClubMigrationStats, error) {
	var stats ClubMigrationStats
	if m.deps.OldClubs == nil || m.deps.Clubs == nil {
		return stats, crerr.New("club migration needs an old club source and a club repository")
	}

	oldClubs, err := m.deps.OldClubs.Clubs(ctx, groupID)
	if err != nil {
		return stats, crerr.Wrap(err, "read old clubs")
	}
	stats.Total = len(oldClubs)
	m.logger.InfoContext(ctx, "old clubs loaded", "count", stats.Total)
	if stats.Total == 0 {
		return stats, nil
	}

	thumbs := m.thumbsByPhoto(ctx, oldClubs)

	for _, old := range oldClubs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		title := strings.TrimSpace(old.Title)
		if title == "" {
			stats.SkippedNoData++
			m.logger.InfoContext(ctx, "club skipped, no title", "group_id", old.GroupID)
			continue
		}
		country := strings.TrimSpace(old.Country)
		if country == "" {
			country = unknownCountry
		}

		var images club.Images
		if old.PhotoID != nil {
			images = thumbs[*old.PhotoID]
		}

		created, err := m.migrateClub(ctx, old, title, country, images)
		switch {
		case err != nil:
			stats.Errors++
			m.logger.WarnContext(ctx, "club migration failed", "group_id", old.GroupID, "error", truncate(err.Error(), 80))
		case created:
			stats.Created++
		default:
			stats.SkippedDuplicate++
			m.logger.InfoContext(ctx, "club already migrated", "group_id", old.GroupID, "name", title)
		}
	}

	if m.deps.Counter != nil {
		total, withLegacy, err := m.deps.Counter.CountClubs(ctx)
		if err != nil {
			return stats, crerr.Wrap(err, "count clubs")
		}
		stats.ClubsInDatabase, stats.ClubsWithLegacyID = total, withLegacy
	}
	return stats, nil
}

func (m *Migrator) migrateClub(ctx context.Context, old Club, title, country string, images club.Images) (bool, error) {
	legacyID := old.GroupID

	existing, found, err := m.deps.Clubs.FindByNameAndCountry(ctx, title, country)
	if err != nil {
		return false, crerr.Wrap(err, "find club")
	}
	if found {
		if existing.LegacyClubID != nil {
			return false, nil
		}

		existing.LegacyClubID = &legacyID
		if desc := strings.TrimSpace(old.Description); desc != "" {
			existing.Description = desc
		}
		existing.MemberCount = old.MemberCount
		existing.ViewCount = old.ViewCount
		if old.ModifiedAt != nil {
			existing.ModifiedAt = *old.ModifiedAt
		}
		existing.ThumbURL = images.ThumbURL
		existing.ThumbProfileURL = images.ThumbProfileURL
		existing.ThumbNormalURL = images.ThumbNormalURL
		existing.ThumbIconURL = images.ThumbIconURL

		if _, err := m.deps.Clubs.Update(ctx, existing); err != nil {
			return false, crerr.Wrap(err, "backfill club")
		}
		m.logger.InfoContext(ctx, "club backfilled", "group_id", legacyID, "club_id", existing.ID)
		return true, nil
	}

	clubID, err := m.deps.IDs.NewID()
	if err != nil {
		return false, crerr.Wrap(err, "generate club id")
	}
	now := m.now().UTC()
	c := club.Club{
		ID:              clubID,
		Name:            title,
		Slug:            club.MakeSlug(title, country),
		Country:         country,
		Description:     strings.TrimSpace(old.Description),
		ThumbURL:        images.ThumbURL,
		ThumbProfileURL: images.ThumbProfileURL,
		ThumbNormalURL:  images.ThumbNormalURL,
		ThumbIconURL:    images.ThumbIconURL,
		MemberCount:     old.MemberCount,
		ViewCount:       old.ViewCount,
		LegacyClubID:    &legacyID,
		Status:          club.StatusUnclaimed,
		CreatedAt:       now,
		ModifiedAt:      now,
	}
	if old.CreatedAt != nil {
		c.CreatedAt = *old.CreatedAt
	}
	if old.ModifiedAt != nil {
		c.ModifiedAt = *old.ModifiedAt
	}
	if err := m.deps.Clubs.Create(ctx, c); err != nil {
		return false, crerr.Wrap(err, "create club")
	}
	m.logger.InfoContext(ctx, "club created", "group_id", legacyID, "club_id", c.ID)
	return true, nil
}

// thumbsByPhoto maps photo id to its thumbnail URLs. A failed lookup only
// costs the thumbnails, so it is logged and ignored.
func (m *Migrator) thumbsByPhoto(ctx context.Context, oldClubs []Club) map[int64]club.Images {
	out := make(map[int64]club.Images)
	if m.deps.Media == nil {
		return out
	}

	photoIDs := make([]int64, 0, len(oldClubs))
	for _, old := range oldClubs {
		if old.PhotoID != nil {
			photoIDs = append(photoIDs, *old.PhotoID)
		}
	}
	if len(photoIDs) == 0 {
		return out
	}

	files, err := m.deps.Media.GroupThumbs(ctx, photoIDs)
	if err != nil {
		m.logger.WarnContext(ctx, "club thumbnails unavailable", "error", err)
		return out
	}
	for _, f := range files {
		images := out[f.ParentID]
		url := m.mediaURL(f.StoragePath)
		switch f.Type {
		case mediaThumb:
			images.ThumbURL = url
		case mediaThumbProfile:
			images.ThumbProfileURL = url
		case mediaThumbNormal:
			images.ThumbNormalURL = url
		case mediaThumbIcon:
			images.ThumbIconURL = url
		}
		out[f.ParentID] = images
	}
	m.logger.InfoContext(ctx, "club thumbnails loaded", "photos", len(photoIDs), "files", len(files))
	return out
}
