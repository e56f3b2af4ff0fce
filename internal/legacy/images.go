package legacy

import (
	"context"
	"sync"
	"sync/atomic"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
)

const defaultImageWorkers = 4

type ImageLoadOptions struct {
	Limit   int
	Workers int
}

type ImageLoadStats struct {
	Total           int
	Updated         int
	OwnerUpdated    int
	SkippedNoClubID int
	SkippedNoImages int
	Errors          int
}

type imageOutcome int

const (
	imageUpdated imageOutcome = iota
	imageSkippedNoClubID
	imageSkippedNoImages
)

// LoadClubImages fills club logo and thumbnail URLs from media_files, and
// assigns an owner to clubs that have none.
func (m *Migrator) LoadClubImages(ctx context.Context, opts ImageLoadOptions) (ImageLoadStats, error) {
	var stats ImageLoadStats
	if m.deps.Clubs == nil || m.deps.Media == nil {
		return stats, crerr.New("image loading needs a club repository and a media source")
	}

	clubs, err := m.deps.Clubs.ListWithLegacyID(ctx, opts.Limit)
	if err != nil {
		return stats, crerr.Wrap(err, "list clubs with legacy id")
	}
	stats.Total = len(clubs)
	m.logger.InfoContext(ctx, "clubs with legacy id loaded", "count", stats.Total)
	if stats.Total == 0 {
		return stats, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultImageWorkers
	}
	if workers > len(clubs) {
		workers = len(clubs)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return stats, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var updated, ownerUpdated, noClubID, noImages, failed atomic.Int32
	runErr := processClubs(clubs, pool.Submit, func(c club.Club) {
		outcome, owner, err := m.loadClubImages(ctx, c)
		if err != nil {
			failed.Add(1)
			m.logger.WarnContext(ctx, "club images failed", "club_id", c.ID, "error", truncate(err.Error(), 80))
			return
		}
		if owner {
			ownerUpdated.Add(1)
		}
		switch outcome {
		case imageUpdated:
			updated.Add(1)
		case imageSkippedNoClubID:
			noClubID.Add(1)
		case imageSkippedNoImages:
			noImages.Add(1)
		}
	})

	stats.Updated = int(updated.Load())
	stats.OwnerUpdated = int(ownerUpdated.Load())
	stats.SkippedNoClubID = int(noClubID.Load())
	stats.SkippedNoImages = int(noImages.Load())
	stats.Errors = int(failed.Load())
	return stats, runErr
}

// processClubs hands each club to submit and returns only after every accepted
// task has finished, including when a later submit fails.
func processClubs(clubs []club.Club, submit func(func()) error, task func(club.Club)) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for _, c := range clubs {
		c := c
		wg.Add(1)
		if err := submit(func() {
			defer wg.Done()
			task(c)
		}); err != nil {
			wg.Done()
			return crerr.Wrap(err, "submit club to worker pool")
		}
	}
	return nil
}

func (m *Migrator) loadClubImages(ctx context.Context, c club.Club) (imageOutcome, bool, error) {
	if c.LegacyClubID == nil {
		return imageSkippedNoClubID, false, nil
	}

	files, err := m.deps.Media.GroupMedia(ctx, *c.LegacyClubID)
	if err != nil {
		return 0, false, crerr.Wrap(err, "read club media")
	}
	if len(files) == 0 {
		m.logger.InfoContext(ctx, "club has no images", "legacy_club_id", *c.LegacyClubID, "name", c.Name)
		return imageSkippedNoImages, false, nil
	}

	ownerAssigned := false
	if c.OwnerUserID == "" && m.deps.Users != nil {
		if legacyUserID, ok := firstMediaUser(files); ok {
			u, found, err := m.deps.Users.GetByLegacyPlayerID(ctx, legacyUserID)
			if err != nil {
				return 0, false, crerr.Wrap(err, "resolve club owner")
			}
			if found {
				c.OwnerUserID = u.ID
				ownerAssigned = true
			}
		}
	}

	for _, f := range files {
		url := m.mediaURL(f.StoragePath)
		if url == "" {
			continue
		}
		if !m.mediaExists(ctx, url) {
			continue
		}
		switch f.Type {
		case "":
			c.LogoURL = url
		case mediaThumbProfile:
			c.ThumbProfileURL = url
		case mediaThumbNormal:
			c.ThumbNormalURL = url
		case mediaThumbIcon:
			c.ThumbIconURL = url
		}
	}

	if _, err := m.deps.Clubs.Update(ctx, c); err != nil {
		return 0, false, crerr.Wrap(err, "update club images")
	}
	m.logger.InfoContext(ctx, "club images loaded",
		"legacy_club_id", *c.LegacyClubID,
		"club_id", c.ID,
		"files", len(files),
		"owner_assigned", ownerAssigned,
	)
	return imageUpdated, ownerAssigned, nil
}

// mediaExists treats a failed check as present; only a confirmed miss drops the URL.
func (m *Migrator) mediaExists(ctx context.Context, url string) bool {
	if m.deps.Checker == nil {
		return true
	}
	ok, err := m.deps.Checker.Exists(ctx, url)
	if err != nil {
		m.logger.WarnContext(ctx, "media check failed", "url", url, "error", err)
		return true
	}
	if !ok {
		m.logger.InfoContext(ctx, "media missing from bucket", "url", url)
	}
	return ok
}

func firstMediaUser(files []MediaFile) (int64, bool) {
	for _, f := range files {
		if f.UserID != nil {
			return *f.UserID, true
		}
	}
	return 0, false
}
