package legacy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
)

const testPrefix = "https://media.example.com/"

var fixedNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

type fakeClubSource struct{ clubs []Club }

func (f fakeClubSource) Clubs(_ context.Context, groupID *int64) ([]Club, error) {
	if groupID == nil {
		return f.clubs, nil
	}
	for _, c := range f.clubs {
		if c.GroupID == *groupID {
			return []Club{c}, nil
		}
	}
	return nil, nil
}

type fakeMedia struct {
	thumbs    []MediaFile
	thumbsErr error
	byGroup   map[int64][]MediaFile
}

func (f fakeMedia) GroupThumbs(context.Context, []int64) ([]MediaFile, error) {
	return f.thumbs, f.thumbsErr
}

func (f fakeMedia) GroupMedia(_ context.Context, groupID int64) ([]MediaFile, error) {
	return f.byGroup[groupID], nil
}

type fakeChecker struct{ missing map[string]bool }

func (f fakeChecker) Exists(_ context.Context, url string) (bool, error) {
	return !f.missing[url], nil
}

func newTestMigrator(deps Dependencies) *Migrator {
	deps.IDs = &id.Sequence{Prefix: "club-new-"}
	deps.Now = func() time.Time { return fixedNow }
	deps.MediaPrefix = testPrefix
	return NewMigrator(deps)
}

func TestMigrateClubs(t *testing.T) {
	clubs := memory.NewClubRepository([]club.Club{
		{ID: "c-1", Name: "Riverside FC", Country: "England", Status: club.StatusUnclaimed, ThumbURL: "https://old/thumb.png"},
		{ID: "c-2", Name: "Old Town", Country: "Unknown", LegacyClubID: int64Ptr(7), Status: club.StatusUnclaimed},
	})
	modified := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	source := fakeClubSource{clubs: []Club{
		{GroupID: 1, Title: " Riverside FC ", Country: "England", PhotoID: int64Ptr(100), Description: "Local side", MemberCount: 12, ModifiedAt: &modified},
		{GroupID: 2, Title: "  "},
		{GroupID: 7, Title: "Old Town", Country: ""},
		{GroupID: 9, Title: "New Club", Country: "Wales", PhotoID: int64Ptr(200), ViewCount: 3},
	}}
	media := fakeMedia{thumbs: []MediaFile{
		{ParentID: 100, Type: mediaThumbNormal, StoragePath: "public/100/normal.png"},
		{ParentID: 200, Type: mediaThumbIcon, StoragePath: "public/200/icon.png"},
	}}

	m := newTestMigrator(Dependencies{Clubs: clubs, OldClubs: source, Media: media})
	stats, err := m.MigrateClubs(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, ClubMigrationStats{Total: 4, Created: 2, SkippedDuplicate: 1, SkippedNoData: 1}, stats)

	backfilled, _, err := clubs.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), *backfilled.LegacyClubID)
	require.Equal(t, "Local side", backfilled.Description)
	require.Equal(t, 12, backfilled.MemberCount)
	require.Equal(t, modified, backfilled.ModifiedAt)
	require.Equal(t, testPrefix+"public/100/normal.png", backfilled.ThumbNormalURL)
	require.Empty(t, backfilled.ThumbURL)

	created, found, err := clubs.GetByID(context.Background(), "club-new-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "New Club", created.Name)
	require.Equal(t, "new-club-wales", created.Slug)
	require.Equal(t, club.StatusUnclaimed, created.Status)
	require.Equal(t, int64(9), *created.LegacyClubID)
	require.Equal(t, testPrefix+"public/200/icon.png", created.ThumbIconURL)
	require.Equal(t, fixedNow, created.CreatedAt)

	again, err := m.MigrateClubs(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, again.Created)
	require.Equal(t, 3, again.SkippedDuplicate)
}

func TestMigrateClubsSurvivesMissingThumbs(t *testing.T) {
	clubs := memory.NewClubRepository(nil)
	source := fakeClubSource{clubs: []Club{{GroupID: 3, Title: "Solo", PhotoID: int64Ptr(1)}}}
	media := fakeMedia{thumbsErr: errors.New(`relation "media_files" does not exist`)}

	m := newTestMigrator(Dependencies{Clubs: clubs, OldClubs: source, Media: media})
	stats, err := m.MigrateClubs(context.Background(), int64Ptr(3))
	require.NoError(t, err)
	require.Equal(t, 1, stats.Created)

	c, found, err := clubs.FindByNameAndCountry(context.Background(), "Solo", unknownCountry)
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, c.PrimaryImageURL())
}

func TestLoadClubImages(t *testing.T) {
	clubs := memory.NewClubRepository([]club.Club{
		{ID: "c-1", Name: "Riverside FC", Country: "England", LegacyClubID: int64Ptr(1)},
		{ID: "c-2", Name: "Harbour", Country: "Scotland", LegacyClubID: int64Ptr(2)},
		{ID: "c-3", Name: "Owned", Country: "Wales", LegacyClubID: int64Ptr(3), OwnerUserID: "user-owner", LogoURL: "https://keep/logo.png"},
		{ID: "c-4", Name: "Modern", Country: "Wales"},
	})
	users := memory.NewUserRepository([]user.User{
		{ID: "user-55", Email: "a@example.com", LegacyPlayerID: int64Ptr(55)},
	})
	media := fakeMedia{byGroup: map[int64][]MediaFile{
		1: {
			{ParentID: 1, Type: "", StoragePath: "g/1/logo.png", UserID: int64Ptr(55)},
			{ParentID: 1, Type: mediaThumbProfile, StoragePath: "g/1/profile.png"},
			{ParentID: 1, Type: mediaThumbIcon, StoragePath: "g/1/icon.png"},
		},
		3: {
			{ParentID: 3, Type: mediaThumbNormal, StoragePath: "g/3/normal.png", UserID: int64Ptr(55)},
		},
	}}
	checker := fakeChecker{missing: map[string]bool{testPrefix + "g/1/profile.png": true}}

	m := newTestMigrator(Dependencies{Clubs: clubs, Users: users, Media: media, Checker: checker})
	stats, err := m.LoadClubImages(context.Background(), ImageLoadOptions{Workers: 2})
	require.NoError(t, err)
	require.Equal(t, ImageLoadStats{Total: 3, Updated: 2, OwnerUpdated: 1, SkippedNoImages: 1}, stats)

	c1, _, _ := clubs.GetByID(context.Background(), "c-1")
	require.Equal(t, testPrefix+"g/1/logo.png", c1.LogoURL)
	require.Empty(t, c1.ThumbProfileURL)
	require.Equal(t, testPrefix+"g/1/icon.png", c1.ThumbIconURL)
	require.Equal(t, "user-55", c1.OwnerUserID)

	c3, _, _ := clubs.GetByID(context.Background(), "c-3")
	require.Equal(t, "user-owner", c3.OwnerUserID)
	require.Equal(t, "https://keep/logo.png", c3.LogoURL)
	require.Equal(t, testPrefix+"g/3/normal.png", c3.ThumbNormalURL)
}

func TestProcessClubsWaitsForAcceptedTasksOnSubmitFailure(t *testing.T) {
	clubs := []club.Club{{ID: "c-1"}, {ID: "c-2"}, {ID: "c-3"}, {ID: "c-4"}}
	poolClosed := errors.New("pool closed")

	var submitted int
	submit := func(task func()) error {
		if submitted == 2 {
			return poolClosed
		}
		submitted++
		go task()
		return nil
	}

	var finished atomic.Int32
	err := processClubs(clubs, submit, func(club.Club) {
		time.Sleep(20 * time.Millisecond)
		finished.Add(1)
	})
	require.ErrorIs(t, err, poolClosed)
	require.Equal(t, int32(2), finished.Load())
}

type fakeMatchSource struct {
	matches []Match
	events  map[int64]Event
	details map[int64]MatchDetail
}

func (f fakeMatchSource) Matches(_ context.Context, limit int) ([]Match, error) {
	if limit > 0 && limit < len(f.matches) {
		return f.matches[:limit], nil
	}
	return f.matches, nil
}

func (f fakeMatchSource) Events(context.Context, []int64) (map[int64]Event, error) {
	return f.events, nil
}

func (f fakeMatchSource) FirstDetail(_ context.Context, matchID int64) (MatchDetail, bool, error) {
	d, ok := f.details[matchID]
	return d, ok, nil
}

type fakeSink struct {
	mu      sync.Mutex
	ensured int
	rows    map[int64]StagedMatch
}

func (f *fakeSink) EnsureTable(context.Context) error {
	f.ensured++
	return nil
}

func (f *fakeSink) Insert(_ context.Context, m StagedMatch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows == nil {
		f.rows = make(map[int64]StagedMatch)
	}
	if _, ok := f.rows[m.MatchID]; ok {
		return false, nil
	}
	f.rows[m.MatchID] = m
	return true, nil
}

func TestMigrateMatchAnalysis(t *testing.T) {
	created := time.Date(2021, 9, 4, 15, 0, 0, 0, time.UTC)
	source := fakeMatchSource{
		matches: []Match{
			{MatchID: 1, EventID: "10", UserID: "77", MyTeam: "Riverside", OpponentTeam: "Harbour", MatchDateTime: "2021-09-04 15:00:00", Raw: []byte(`{"match_id":1}`)},
			{MatchID: 2, EventID: "10"},
			{MatchID: 3, EventID: "0"},
			{MatchID: 4, EventID: "", Created: &created},
		},
		events: map[int64]Event{10: {EventID: 10, Title: "County Cup", Location: "Town Park", Raw: []byte(`{"event_id":10}`)}},
		details: map[int64]MatchDetail{
			1: {
				Score:        "3/2",
				MatchVideo:   "videos/1.mp4",
				MyTeam:       `[{"jersy_number":"9","player_name":"Sam","position":"ST"},{"jersy_number":"","player_name":"Nobody"},{"jersy_number":4}]`,
				OpponentTeam: `not json`,
				Raw:          []byte(`{"detail_id":5}`),
			},
			3: {Score: "2-2"},
			4: {YoutubeLink: "https://youtu.be/abc", Location: "Field 2", Created: &created},
		},
	}
	sink := &fakeSink{}

	m := newTestMigrator(Dependencies{Matches: source, Staging: sink})
	stats, err := m.MigrateMatchAnalysis(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, MatchMigrationStats{Total: 4, Created: 2, SkippedNoDetails: 1, SkippedNoVideo: 1}, stats)
	require.Equal(t, 1, sink.ensured)

	first := sink.rows[1]
	require.Equal(t, 3, first.HomeScore)
	require.Equal(t, 2, first.AwayScore)
	require.Equal(t, testPrefix+"videos/1.mp4", first.VideoURL)
	require.Equal(t, int64(10), *first.EventID)
	require.Equal(t, int64(77), *first.UserID)
	require.Equal(t, "County Cup", first.CompetitionName)
	require.Equal(t, "Town Park", first.Venue)
	require.Equal(t, time.Date(2021, 9, 4, 15, 0, 0, 0, time.UTC), *first.MatchDateTime)
	require.Equal(t, fixedNow, first.CreatedAt)
	require.JSONEq(t, `[{"jersy_number":"9","player_name":"Sam","position":"ST"}]`, string(first.MyTeamLineup))
	require.JSONEq(t, `[]`, string(first.OpponentTeamLineup))

	var raw map[string]any
	require.NoError(t, sonic.Unmarshal(first.RawData, &raw))
	require.Contains(t, raw, "originalMatchDetail")
	require.Contains(t, raw, "originalMatch")
	require.NotNil(t, raw["event"])

	fourth := sink.rows[4]
	require.Nil(t, fourth.EventID)
	require.Equal(t, 0, fourth.HomeScore)
	require.Equal(t, "Field 2", fourth.Venue)
	require.Equal(t, created, *fourth.MatchDateTime)
	require.Equal(t, created, fourth.CreatedAt)

	again, err := m.MigrateMatchAnalysis(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 0, again.Created)
	require.Equal(t, 2, again.SkippedDuplicate)
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		raw        string
		home, away int
		ok         bool
	}{
		{"3-2", 3, 2, true},
		{"0/0", 0, 0, true},
		{"Final: 10 - 1", 0, 0, false},
		{"won 4-1 after extra time", 4, 1, true},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			home, away, ok := parseScore(tc.raw)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.home, home)
			require.Equal(t, tc.away, away)
		})
	}
}

func TestParseLegacyDate(t *testing.T) {
	got, ok := parseLegacyDate("2020-01-02")
	require.True(t, ok)
	require.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), got)

	_, ok = parseLegacyDate("sometime")
	require.False(t, ok)
}
