package memory

import (
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
)

// Seed data backs STORAGE_DRIVER=memory so the API can be exercised without
// a database.
const (
	SeedUserFree  = "user-free"
	SeedUserPro   = "user-pro"
	SeedUserScout = "user-scout"
	SeedClubID    = "club-0001"
)

var seedEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func SeedUsers() []user.User {
	return []user.User{
		{ID: SeedUserFree, Name: "Jamie Free", Email: "jamie@example.com", Credits: 1, CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		{ID: SeedUserPro, Name: "Pat Pro", Email: "pat@example.com", IsPro: true, CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		{ID: SeedUserScout, Name: "Sam Scout", Email: "sam@example.com", Phone: "+44 7700 900000", CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
	}
}

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: SeedClubID, Name: "Riverside FC", Slug: club.MakeSlug("Riverside FC", "England"), Country: "England", Status: club.StatusUnclaimed, CreatedAt: seedEpoch, ModifiedAt: seedEpoch},
		{ID: "club-0002", Name: "Harbour Athletic", Slug: club.MakeSlug("Harbour Athletic", "Scotland"), Country: "Scotland", Status: club.StatusUnclaimed, CreatedAt: seedEpoch, ModifiedAt: seedEpoch},
		{ID: "club-0003", Name: "Northgate Rovers", Slug: club.MakeSlug("Northgate Rovers", "Wales"), Country: "Wales", Status: club.StatusClaimed, OwnerUserID: SeedUserPro, CreatedAt: seedEpoch, ModifiedAt: seedEpoch},
	}
}

func SeedPlayerProfiles() []playerprofile.Profile {
	dob := time.Date(2004, time.May, 17, 0, 0, 0, 0, time.UTC)
	return []playerprofile.Profile{
		{ID: "profile-0001", UserID: SeedUserFree, FirstName: "Jamie", LastName: "Free", DateOfBirth: &dob, Country: "England", City: "Leeds", Club: "Riverside FC", PrimaryPosition: "Winger", CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		{ID: "profile-0002", UserID: SeedUserPro, FirstName: "Pat", LastName: "Pro", Country: "Scotland", Club: "Riverside FC", PrimaryPosition: "Striker", CreatedAt: seedEpoch.Add(time.Hour), UpdatedAt: seedEpoch},
	}
}

func SeedProfileInfos() []profileinfo.Info {
	return []profileinfo.Info{
		{ID: "info-0001", UserID: SeedUserFree, ProfileType: profileinfo.TypeFootballPlayer, FullName: "Jamie Free", Country: "England", Position: "Winger", CreatedAt: seedEpoch},
		{ID: "info-0002", UserID: SeedUserPro, ProfileType: profileinfo.TypeFootballPlayer, FullName: "Pat Pro", Country: "Scotland", Position: "Striker", CreatedAt: seedEpoch.Add(time.Hour)},
		{ID: "info-0003", UserID: SeedUserScout, ProfileType: profileinfo.TypeScout, FullName: "Sam Scout", Country: "England", CreatedAt: seedEpoch},
	}
}
