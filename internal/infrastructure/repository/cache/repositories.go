package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	basecache "github.com/riskibarqy/scouting-platform/internal/platform/cache"
)

const clubKeyPrefix = "club:"

// ClubRepository caches club reads. Every write through it, or through the
// paired ClubMembershipRepository, drops all cached club entries.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

var _ club.Repository = (*ClubRepository)(nil)

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context, q club.ListQuery) ([]club.Club, error) {
	key := clubKeyPrefix + "list:" + q.AfterID + ":" + strconv.Itoa(q.Limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, q)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id string) (club.Club, bool, error) {
	key := clubKeyPrefix + "id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}

// FindByNameAndCountry and ListWithLegacyID serve the migration CLI and
// always read through.
func (r *ClubRepository) FindByNameAndCountry(ctx context.Context, name, country string) (club.Club, bool, error) {
	return r.next.FindByNameAndCountry(ctx, name, country)
}

func (r *ClubRepository) ListWithLegacyID(ctx context.Context, limit int) ([]club.Club, error) {
	return r.next.ListWithLegacyID(ctx, limit)
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, clubKeyPrefix)
	return nil
}

func (r *ClubRepository) Update(ctx context.Context, c club.Club) (bool, error) {
	updated, err := r.next.Update(ctx, c)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, clubKeyPrefix)
	return updated, nil
}

func (r *ClubRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, clubKeyPrefix)
	return deleted, nil
}

// ClubMembershipRepository invalidates cached clubs when member counts move.
type ClubMembershipRepository struct {
	next  clubmembership.Repository
	cache *basecache.Store
}

var _ clubmembership.Repository = (*ClubMembershipRepository)(nil)

func NewClubMembershipRepository(next clubmembership.Repository, cache *basecache.Store) *ClubMembershipRepository {
	return &ClubMembershipRepository{next: next, cache: cache}
}

func (r *ClubMembershipRepository) Join(ctx context.Context, m clubmembership.Membership) (clubmembership.Membership, bool, error) {
	out, joined, err := r.next.Join(ctx, m)
	if err != nil {
		return clubmembership.Membership{}, false, err
	}
	if joined {
		r.cache.DeletePrefix(ctx, clubKeyPrefix)
	}
	return out, joined, nil
}

func (r *ClubMembershipRepository) Leave(ctx context.Context, clubID, userID string) (bool, error) {
	left, err := r.next.Leave(ctx, clubID, userID)
	if err != nil {
		return false, err
	}
	if left {
		r.cache.DeletePrefix(ctx, clubKeyPrefix)
	}
	return left, nil
}

func (r *ClubMembershipRepository) ListByClub(ctx context.Context, clubID string) ([]clubmembership.Membership, error) {
	return r.next.ListByClub(ctx, clubID)
}

// ProfileInfoRepository caches the public player and scout directories.
type ProfileInfoRepository struct {
	next  profileinfo.Repository
	cache *basecache.Store
}

var _ profileinfo.Repository = (*ProfileInfoRepository)(nil)

func NewProfileInfoRepository(next profileinfo.Repository, cache *basecache.Store) *ProfileInfoRepository {
	return &ProfileInfoRepository{next: next, cache: cache}
}

func (r *ProfileInfoRepository) ListByType(ctx context.Context, profileType profileinfo.ProfileType) ([]profileinfo.Info, error) {
	key := "profile-info:list:" + strings.ToLower(string(profileType))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByType(ctx, profileType)
		if err != nil {
			return nil, err
		}
		return append([]profileinfo.Info(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]profileinfo.Info)
	return append([]profileinfo.Info(nil), items...), nil
}

// TypeForUser feeds visit recording and reads through so a new card shows up
// on the next visit.
func (r *ProfileInfoRepository) TypeForUser(ctx context.Context, userID string) (profileinfo.ProfileType, bool, error) {
	return r.next.TypeForUser(ctx, userID)
}
