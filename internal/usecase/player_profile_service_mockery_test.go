package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/memory"
	playerprofilemock "github.com/riskibarqy/scouting-platform/internal/mocks/domain/playerprofile"
	profilevisitmock "github.com/riskibarqy/scouting-platform/internal/mocks/domain/profilevisit"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

func TestPlayerProfileService_ViewSurvivesVisitFailureUsingMockery(t *testing.T) {
	t.Parallel()

	viewed := playerprofile.Profile{ID: "profile-0001", UserID: memory.SeedUserFree, FirstName: "Jamie"}

	profiles := playerprofilemock.NewRepository(t)
	profiles.On("GetByID", mock.Anything, "profile-0001").Return(viewed, true, nil).Once()
	profiles.On("GetByUserID", mock.Anything, memory.SeedUserScout).Return(playerprofile.Profile{}, false, nil).Once()

	visits := profilevisitmock.NewRepository(t)
	visits.On("Record", mock.Anything, mock.MatchedBy(func(v profilevisit.Visit) bool {
		return v.ID == "v-1" &&
			v.VisitedProfileID == "profile-0001" &&
			v.VisitorUserID == memory.SeedUserScout &&
			v.VisitorProfileID == "" &&
			v.VisitorProfileType == string(profileinfo.TypeScout)
	})).
		Return(errors.New("insert profile_visits: deadlock detected")).
		Once()

	service := NewPlayerProfileService(
		profiles,
		memory.NewProfileInfoRepository(memory.SeedProfileInfos()),
		visits,
		&id.Sequence{Prefix: "v-"},
		logging.NewNop(),
	)

	got, err := service.View(context.Background(), "profile-0001", memory.SeedUserScout)
	require.NoError(t, err)
	require.Equal(t, viewed, got)
}

func TestPlayerProfileService_OwnerViewIsNotRecordedUsingMockery(t *testing.T) {
	t.Parallel()

	own := playerprofile.Profile{ID: "profile-0002", UserID: memory.SeedUserPro}

	profiles := playerprofilemock.NewRepository(t)
	profiles.On("GetByID", mock.Anything, "profile-0002").Return(own, true, nil).Once()

	// No expectations: any call to Record fails the test.
	visits := profilevisitmock.NewRepository(t)

	service := NewPlayerProfileService(
		profiles,
		memory.NewProfileInfoRepository(memory.SeedProfileInfos()),
		visits,
		&id.Sequence{Prefix: "v-"},
		logging.NewNop(),
	)

	_, err := service.View(context.Background(), "profile-0002", memory.SeedUserPro)
	require.NoError(t, err)
	visits.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestPlayerProfileService_VisitAnalyticsCountErrorUsingMockery(t *testing.T) {
	t.Parallel()

	profiles := playerprofilemock.NewRepository(t)
	profiles.On("GetByUserID", mock.Anything, memory.SeedUserFree).
		Return(playerprofile.Profile{ID: "profile-0001", UserID: memory.SeedUserFree}, true, nil).
		Once()

	countErr := errors.New("count failed")
	visits := profilevisitmock.NewRepository(t)
	visits.On("ListSince", mock.Anything, "profile-0001", mock.AnythingOfType("time.Time")).Return([]profilevisit.Detailed{}, nil).Once()
	visits.On("ListRecent", mock.Anything, "profile-0001", recentVisitsLimit).Return([]profilevisit.Detailed{}, nil).Once()
	visits.On("Count", mock.Anything, "profile-0001").Return(0, countErr).Once()

	service := NewPlayerProfileService(profiles, memory.NewProfileInfoRepository(nil), visits, &id.Sequence{Prefix: "v-"}, logging.NewNop())

	_, err := service.VisitAnalytics(context.Background(), memory.SeedUserFree)
	require.ErrorIs(t, err, countErr)
}
