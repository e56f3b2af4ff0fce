package httpapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
	"github.com/riskibarqy/scouting-platform/internal/domain/statistics"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

type registerUserRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

type clubRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Country string `json:"country" validate:"required,max=100"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

type requestMatchRequest struct {
	VideoURL   string `json:"videoUrl" validate:"required,url"`
	MatchLevel string `json:"matchLevel" validate:"required,oneof=PROFESSIONAL SEMI_PROFESSIONAL ACADEMIC_TOP_TIER ACADEMIC_AMATEUR SUNDAY_LEAGUE"`
	HomeTeam   string `json:"homeTeam" validate:"required,max=200"`
	AwayTeam   string `json:"awayTeam" validate:"required,max=200"`
	FocusHint  string `json:"focusHint" validate:"omitempty,max=1000"`
}

type updateMatchStatusRequest struct {
	Status string `json:"status"`
}

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	Credits   int    `json:"credits"`
	IsPro     bool   `json:"isPro"`
	CreatedAt string `json:"createdAt"`
}

type clubImagesDTO struct {
	LogoURL         *string `json:"logoUrl"`
	ThumbURL        *string `json:"thumbUrl"`
	ThumbProfileURL *string `json:"thumbProfileUrl"`
	ThumbNormalURL  *string `json:"thumbNormalUrl"`
	ThumbIconURL    *string `json:"thumbIconUrl"`
}

type clubListItemDTO struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Country     string        `json:"country"`
	Description *string       `json:"description"`
	MemberCount int           `json:"memberCount"`
	ViewCount   int           `json:"viewCount"`
	ImageURL    *string       `json:"imageUrl"`
	Profile     clubImagesDTO `json:"profile"`
}

type clubDTO struct {
	clubListItemDTO
	Slug        string  `json:"slug"`
	ClubID      *int64  `json:"clubId"`
	Status      string  `json:"status"`
	OwnerUserID *string `json:"ownerUserId"`
	CreatedAt   string  `json:"createdAt"`
	ModifiedAt  string  `json:"modifiedAt"`
}

type clubMemberImagesDTO struct {
	ThumbURL        *string `json:"thumbUrl"`
	ThumbProfileURL *string `json:"thumbProfileUrl"`
	ThumbNormalURL  *string `json:"thumbNormalUrl"`
	ThumbIconURL    *string `json:"thumbIconUrl"`
}

type clubMemberDTO struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Position *string             `json:"position"`
	Location *string             `json:"location"`
	Age      *int                `json:"age"`
	ImageURL *string             `json:"imageUrl"`
	Profile  clubMemberImagesDTO `json:"profile"`
}

type clubDetailDTO struct {
	clubListItemDTO
	ClubID      *int64          `json:"clubId"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	Members     []clubMemberDTO `json:"members"`
	PlayerCount int             `json:"playerCount"`
}

type membershipDTO struct {
	ID       string `json:"id"`
	ClubID   string `json:"clubId"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type playerProfileDTO struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	DateOfBirth     *string `json:"dateOfBirth"`
	Country         *string `json:"country"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	Club            *string `json:"club"`
	PrimaryPosition *string `json:"primaryPosition"`
	Avatar          *string `json:"avatar"`
	ThumbURL        *string `json:"thumbUrl"`
	ThumbProfileURL *string `json:"thumbProfileUrl"`
	ThumbNormalURL  *string `json:"thumbNormalUrl"`
	ThumbIconURL    *string `json:"thumbIconUrl"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type visitorDTO struct {
	UserID      string  `json:"userId"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	ProfileType string  `json:"profileType"`
	VisitedAt   string  `json:"visitedAt"`
}

type visitorGroupDTO struct {
	ProfileType    string       `json:"profileType"`
	Count          int          `json:"count"`
	UniqueVisitors int          `json:"uniqueVisitors"`
	Visitors       []visitorDTO `json:"visitors"`
}

type visitAnalyticsDTO struct {
	TodayStats   []visitorGroupDTO `json:"todayStats"`
	RecentVisits []visitorDTO      `json:"recentVisits"`
	TotalVisits  int               `json:"totalVisits"`
}

type profileInfoDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	ProfileType string  `json:"profileType"`
	FullName    string  `json:"fullName"`
	Country     *string `json:"country"`
	Position    *string `json:"position"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoUrl"`
	CreatedAt   string  `json:"createdAt"`
}

type matchDTO struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	Title      string  `json:"title"`
	VideoURL   string  `json:"videoUrl"`
	HomeTeam   string  `json:"homeTeam"`
	AwayTeam   string  `json:"awayTeam"`
	MatchLevel string  `json:"matchLevel"`
	FocusHint  *string `json:"focusHint"`
	Status     string  `json:"status"`
	ClaimedAt  *string `json:"claimedAt"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type matchSummaryDTO struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type matchResultDTO struct {
	Payload     json.RawMessage `json:"payload"`
	SubmittedAt string          `json:"submittedAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type matchDetailDTO struct {
	matchDTO
	Result *matchResultDTO `json:"result"`
}

type nextMatchDTO struct {
	ID       string `json:"id"`
	VideoURL string `json:"videoUrl"`
}

type statisticsRowDTO struct {
	CacheType          string          `json:"cache_type"`
	PlayerID           *int64          `json:"player_id,omitempty"`
	ClubID             *int64          `json:"club_id,omitempty"`
	ActionType         *string         `json:"action_type"`
	AttackingSpider    json.RawMessage `json:"attacking_spider"`
	DefensiveSpider    json.RawMessage `json:"defensive_spider"`
	AttackingDonut     json.RawMessage `json:"attacking_donut"`
	DefensiveDonut     json.RawMessage `json:"defensive_donut"`
	AttackingHeatmap   json.RawMessage `json:"attacking_heatmap"`
	DefensiveHeatmap   json.RawMessage `json:"defensive_heatmap"`
	GoalpostStatistics json.RawMessage `json:"goalpost_statistics_data"`
	SummaryTable       json.RawMessage `json:"summary_table"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := formatTime(*t)
	return &v
}

func nullable(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// rawOrNull keeps absent JSON columns as an explicit null.
func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		PhotoURL:  u.PhotoURL,
		Credits:   u.Credits,
		IsPro:     u.IsPro,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func clubToListItemDTO(c club.Club) clubListItemDTO {
	return clubListItemDTO{
		ID:          c.ID,
		Name:        c.Name,
		Country:     c.Country,
		Description: nullable(c.Description),
		MemberCount: c.MemberCount,
		ViewCount:   c.ViewCount,
		ImageURL:    nullable(c.PrimaryImageURL()),
		Profile: clubImagesDTO{
			LogoURL:         nullable(c.LogoURL),
			ThumbURL:        nullable(c.ThumbURL),
			ThumbProfileURL: nullable(c.ThumbProfileURL),
			ThumbNormalURL:  nullable(c.ThumbNormalURL),
			ThumbIconURL:    nullable(c.ThumbIconURL),
		},
	}
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		clubListItemDTO: clubToListItemDTO(c),
		Slug:            c.Slug,
		ClubID:          c.LegacyClubID,
		Status:          string(c.Status),
		OwnerUserID:     nullable(c.OwnerUserID),
		CreatedAt:       formatTime(c.CreatedAt),
		ModifiedAt:      formatTime(c.ModifiedAt),
	}
}

func clubDetailToDTO(details usecase.ClubDetails, now time.Time) clubDetailDTO {
	members := make([]clubMemberDTO, 0, len(details.Members))
	for _, p := range details.Members {
		member := clubMemberDTO{
			ID:       p.ID,
			Name:     p.FullName(),
			Position: nullable(p.PrimaryPosition),
			Location: nullable(p.Location()),
			ImageURL: nullable(p.PrimaryImageURL()),
			Profile: clubMemberImagesDTO{
				ThumbURL:        nullable(p.ThumbURL),
				ThumbProfileURL: nullable(p.ThumbProfileURL),
				ThumbNormalURL:  nullable(p.ThumbNormalURL),
				ThumbIconURL:    nullable(p.ThumbIconURL),
			},
		}
		if age, ok := p.AgeAt(now); ok {
			member.Age = &age
		}
		members = append(members, member)
	}

	c := details.Club
	createdAt := c.CreatedAt
	return clubDetailDTO{
		clubListItemDTO: clubToListItemDTO(c),
		ClubID:          c.LegacyClubID,
		Status:          string(c.Status),
		CreatedAt:       playerprofile.FormatDate(&createdAt),
		Members:         members,
		PlayerCount:     len(members),
	}
}

func membershipToDTO(m clubmembership.Membership) membershipDTO {
	return membershipDTO{
		ID:       m.ID,
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: formatTime(m.JoinedAt),
	}
}

func playerProfileToDTO(p playerprofile.Profile) playerProfileDTO {
	return playerProfileDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		DateOfBirth:     nullable(playerprofile.FormatDate(p.DateOfBirth)),
		Country:         nullable(p.Country),
		City:            nullable(p.City),
		State:           nullable(p.State),
		Club:            nullable(p.Club),
		PrimaryPosition: nullable(p.PrimaryPosition),
		Avatar:          nullable(p.Avatar),
		ThumbURL:        nullable(p.ThumbURL),
		ThumbProfileURL: nullable(p.ThumbProfileURL),
		ThumbNormalURL:  nullable(p.ThumbNormalURL),
		ThumbIconURL:    nullable(p.ThumbIconURL),
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func playerProfilesToDTO(items []playerprofile.Profile) []playerProfileDTO {
	out := make([]playerProfileDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerProfileToDTO(p))
	}
	return out
}

func visitorToDTO(v profilevisit.Detailed) visitorDTO {
	profileType := v.VisitorProfileType
	if profileType == "" {
		profileType = "Unknown"
	}
	return visitorDTO{
		UserID:      v.VisitorUserID,
		Name:        nullable(v.VisitorName),
		Email:       nullable(v.VisitorEmail),
		Phone:       nullable(v.VisitorPhone),
		ProfileType: profileType,
		VisitedAt:   formatTime(v.VisitedAt),
	}
}

func visitAnalyticsToDTO(a usecase.VisitAnalytics) visitAnalyticsDTO {
	out := visitAnalyticsDTO{
		TodayStats:   make([]visitorGroupDTO, 0, len(a.TodayStats)),
		RecentVisits: make([]visitorDTO, 0, len(a.RecentVisits)),
		TotalVisits:  a.TotalVisits,
	}
	for _, g := range a.TodayStats {
		group := visitorGroupDTO{
			ProfileType:    g.ProfileType,
			Count:          g.Count,
			UniqueVisitors: g.UniqueVisitors,
			Visitors:       make([]visitorDTO, 0, len(g.Visitors)),
		}
		for _, v := range g.Visitors {
			group.Visitors = append(group.Visitors, visitorToDTO(v))
		}
		out.TodayStats = append(out.TodayStats, group)
	}
	for _, v := range a.RecentVisits {
		out.RecentVisits = append(out.RecentVisits, visitorToDTO(v))
	}
	return out
}

func profileInfosToDTO(items []profileinfo.Info) []profileInfoDTO {
	out := make([]profileInfoDTO, 0, len(items))
	for _, i := range items {
		out = append(out, profileInfoDTO{
			ID:          i.ID,
			UserID:      i.UserID,
			ProfileType: string(i.ProfileType),
			FullName:    i.FullName,
			Country:     nullable(i.Country),
			Position:    nullable(i.Position),
			Bio:         nullable(i.Bio),
			PhotoURL:    nullable(i.PhotoURL),
			CreatedAt:   formatTime(i.CreatedAt),
		})
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		UserID:     m.UserID,
		Title:      m.Title,
		VideoURL:   m.VideoURL,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		MatchLevel: string(m.Level),
		FocusHint:  nullable(m.FocusHint),
		Status:     string(m.Status),
		ClaimedAt:  formatOptionalTime(m.ClaimedAt),
		CreatedAt:  formatTime(m.CreatedAt),
		UpdatedAt:  formatTime(m.UpdatedAt),
	}
}

func matchDetailToDTO(d usecase.MatchDetails) matchDetailDTO {
	out := matchDetailDTO{matchDTO: matchToDTO(d.Match)}
	if d.Result != nil {
		out.Result = &matchResultDTO{
			Payload:     rawOrNull(d.Result.Payload),
			SubmittedAt: formatTime(d.Result.SubmittedAt),
			UpdatedAt:   formatTime(d.Result.UpdatedAt),
		}
	}
	return out
}

func statisticsToDTO(rows []statistics.Row) []statisticsRowDTO {
	out := make([]statisticsRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, statisticsRowDTO{
			CacheType:          r.CacheType,
			PlayerID:           r.PlayerID,
			ClubID:             r.ClubID,
			ActionType:         r.ActionType,
			AttackingSpider:    rawOrNull(r.AttackingSpider),
			DefensiveSpider:    rawOrNull(r.DefensiveSpider),
			AttackingDonut:     rawOrNull(r.AttackingDonut),
			DefensiveDonut:     rawOrNull(r.DefensiveDonut),
			AttackingHeatmap:   rawOrNull(r.AttackingHeatmap),
			DefensiveHeatmap:   rawOrNull(r.DefensiveHeatmap),
			GoalpostStatistics: rawOrNull(r.GoalpostStatistics),
			SummaryTable:       rawOrNull(r.SummaryTable),
		})
	}
	return out
}
