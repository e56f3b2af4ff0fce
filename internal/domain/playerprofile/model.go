package playerprofile

import (
	"strings"
	"time"
)

// Positions lists the on-pitch roles a player may declare.
var Positions = []string{
	"Keeper",
	"Defender",
	"Fullback",
	"Midfielder",
	"Anchor",
	"Playmaker",
	"Winger",
	"Striker",
}

type Profile struct {
	ID              string
	UserID          string
	FirstName       string
	LastName        string
	DateOfBirth     *time.Time
	Country         string
	City            string
	State           string
	Club            string
	PrimaryPosition string
	Avatar          string
	ThumbURL        string
	ThumbProfileURL string
	ThumbNormalURL  string
	ThumbIconURL    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Location joins city, state and country, skipping blanks.
func (p Profile) Location() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.City, p.State, p.Country} {
		if s := strings.TrimSpace(part); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// PrimaryImageURL prefers the larger thumbnails.
func (p Profile) PrimaryImageURL() string {
	for _, candidate := range []string{p.ThumbNormalURL, p.ThumbProfileURL, p.ThumbURL, p.ThumbIconURL} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

// AgeAt returns the age in whole years on day now. It is unknown for a missing
// birth date, a birth year outside [1900, now], or an age outside [0, 150].
func (p Profile) AgeAt(now time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	dob := *p.DateOfBirth
	if dob.Year() < 1900 || dob.Year() > now.Year() {
		return 0, false
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 || age > 150 {
		return 0, false
	}
	return age, true
}

// IsValidPosition matches case-insensitively against Positions.
func IsValidPosition(position string) (string, bool) {
	for _, p := range Positions {
		if strings.EqualFold(p, strings.TrimSpace(position)) {
			return p, true
		}
	}
	return "", false
}

// SearchFilter narrows a profile search. Text fields match case-insensitive
// substrings; DateOfBirth matches the exact day.
type SearchFilter struct {
	FirstName   string
	LastName    string
	Country     string
	DateOfBirth *time.Time
}

func (f SearchFilter) IsEmpty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Country == "" && f.DateOfBirth == nil
}

// Patch is a partial update. Nil fields are left untouched; ClearDateOfBirth
// removes the stored birth date.
type Patch struct {
	FirstName        *string
	LastName         *string
	Country          *string
	Avatar           *string
	PrimaryPosition  *string
	DateOfBirth      *time.Time
	ClearDateOfBirth bool
}

func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Country == nil && p.Avatar == nil &&
		p.PrimaryPosition == nil && p.DateOfBirth == nil && !p.ClearDateOfBirth
}

// Apply returns a copy of profile with the patch applied.
func (p Patch) Apply(profile Profile) Profile {
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.Country != nil {
		profile.Country = *p.Country
	}
	if p.Avatar != nil {
		profile.Avatar = *p.Avatar
	}
	if p.PrimaryPosition != nil {
		profile.PrimaryPosition = *p.PrimaryPosition
	}
	switch {
	case p.ClearDateOfBirth:
		profile.DateOfBirth = nil
	case p.DateOfBirth != nil:
		dob := *p.DateOfBirth
		profile.DateOfBirth = &dob
	}
	return profile
}
