package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
)

const (
	DefaultClubPageSize = 4
	MaxClubPageSize     = 100
)

type ClubPage struct {
	Clubs       []club.Club
	HasNextPage bool
	NextCursor  string
	Limit       int
}

type ClubDetails struct {
	Club    club.Club
	Members []playerprofile.Profile
}

type ClubInput struct {
	Name    string
	Country string
	LogoURL string
}

func (in ClubInput) normalize() (ClubInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Country = strings.TrimSpace(in.Country)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	if in.Name == "" {
		return in, newError(ErrInvalidInput, "Club name is required")
	}
	if in.Country == "" {
		return in, newError(ErrInvalidInput, "Country is required")
	}
	return in, nil
}

type ClubService struct {
	clubs       club.Repository
	profiles    playerprofile.Repository
	memberships clubmembership.Repository
	idGen       id.Generator
	now         func() time.Time
}

func NewClubService(
	clubs club.Repository,
	profiles playerprofile.Repository,
	memberships clubmembership.Repository,
	idGen id.Generator,
) *ClubService {
	return &ClubService{
		clubs:       clubs,
		profiles:    profiles,
		memberships: memberships,
		idGen:       idGen,
		now:         time.Now,
	}
}

// ListClubs pages through clubs by id. A non-positive limit falls back to the
// default page size; larger limits are capped.
func (s *ClubService) ListClubs(ctx context.Context, cursor string, limit int) (ClubPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListClubs")
	defer span.End()

	if limit <= 0 {
		limit = DefaultClubPageSize
	}
	if limit > MaxClubPageSize {
		limit = MaxClubPageSize
	}

	clubs, err := s.clubs.List(ctx, club.ListQuery{AfterID: strings.TrimSpace(cursor), Limit: limit + 1})
	if err != nil {
		return ClubPage{}, fmt.Errorf("list clubs: %w", err)
	}

	page := ClubPage{Limit: limit}
	if len(clubs) > limit {
		page.HasNextPage = true
		clubs = clubs[:limit]
	}
	if page.HasNextPage && len(clubs) > 0 {
		page.NextCursor = clubs[len(clubs)-1].ID
	}
	page.Clubs = clubs
	return page, nil
}

func (s *ClubService) GetClub(ctx context.Context, clubID string) (ClubDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetClub")
	defer span.End()

	c, err := s.mustGet(ctx, clubID)
	if err != nil {
		return ClubDetails{}, err
	}
	members, err := s.profiles.ListByClubName(ctx, c.Name)
	if err != nil {
		return ClubDetails{}, fmt.Errorf("list club members: %w", err)
	}
	return ClubDetails{Club: c, Members: members}, nil
}

func (s *ClubService) CreateClub(ctx context.Context, input ClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.CreateClub")
	defer span.End()

	input, err := input.normalize()
	if err != nil {
		return club.Club{}, err
	}
	clubID, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate club id: %w", err)
	}

	now := s.now().UTC()
	c := club.Club{
		ID:         clubID,
		Name:       input.Name,
		Slug:       club.MakeSlug(input.Name, input.Country),
		Country:    input.Country,
		LogoURL:    input.LogoURL,
		Status:     club.StatusUnclaimed,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.clubs.Create(ctx, c); err != nil {
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}
	return c, nil
}

func (s *ClubService) UpdateClub(ctx context.Context, clubID string, input ClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.UpdateClub")
	defer span.End()

	input, err := input.normalize()
	if err != nil {
		return club.Club{}, err
	}
	c, err := s.mustGet(ctx, clubID)
	if err != nil {
		return club.Club{}, err
	}

	c.Name = input.Name
	c.Country = input.Country
	c.Slug = club.MakeSlug(input.Name, input.Country)
	if input.LogoURL != "" {
		c.LogoURL = input.LogoURL
	}
	c.ModifiedAt = s.now().UTC()

	ok, err := s.clubs.Update(ctx, c)
	if err != nil {
		return club.Club{}, fmt.Errorf("update club: %w", err)
	}
	if !ok {
		return club.Club{}, newError(ErrNotFound, "Club not found")
	}
	return c, nil
}

func (s *ClubService) DeleteClub(ctx context.Context, clubID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.DeleteClub")
	defer span.End()

	ok, err := s.clubs.Delete(ctx, strings.TrimSpace(clubID))
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	if !ok {
		return newError(ErrNotFound, "Club not found")
	}
	return nil
}

// JoinClub is idempotent; joined is false when the user was already a member.
func (s *ClubService) JoinClub(ctx context.Context, clubID, userID string) (clubmembership.Membership, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.JoinClub")
	defer span.End()

	c, err := s.mustGet(ctx, clubID)
	if err != nil {
		return clubmembership.Membership{}, false, err
	}
	membershipID, err := s.idGen.NewID()
	if err != nil {
		return clubmembership.Membership{}, false, fmt.Errorf("generate membership id: %w", err)
	}

	role := clubmembership.RoleMember
	if c.OwnerUserID != "" && c.OwnerUserID == userID {
		role = clubmembership.RoleOwner
	}
	m, joined, err := s.memberships.Join(ctx, clubmembership.Membership{
		ID:       membershipID,
		ClubID:   c.ID,
		UserID:   userID,
		Role:     role,
		JoinedAt: s.now().UTC(),
	})
	if err != nil {
		return clubmembership.Membership{}, false, fmt.Errorf("join club: %w", err)
	}
	return m, joined, nil
}

func (s *ClubService) LeaveClub(ctx context.Context, clubID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.LeaveClub")
	defer span.End()

	ok, err := s.memberships.Leave(ctx, strings.TrimSpace(clubID), userID)
	if err != nil {
		return fmt.Errorf("leave club: %w", err)
	}
	if !ok {
		return newError(ErrNotFound, "Membership not found")
	}
	return nil
}

func (s *ClubService) ListMemberships(ctx context.Context, clubID string) ([]clubmembership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListMemberships")
	defer span.End()

	c, err := s.mustGet(ctx, clubID)
	if err != nil {
		return nil, err
	}
	items, err := s.memberships.ListByClub(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return items, nil
}

func (s *ClubService) mustGet(ctx context.Context, clubID string) (club.Club, error) {
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return club.Club{}, newError(ErrInvalidInput, "Club id is required")
	}
	c, ok, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club: %w", err)
	}
	if !ok {
		return club.Club{}, newError(ErrNotFound, "Club not found")
	}
	return c, nil
}
