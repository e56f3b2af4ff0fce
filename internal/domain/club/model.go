package club

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

type Status string

const (
	StatusClaimed   Status = "CLAIMED"
	StatusUnclaimed Status = "UNCLAIMED"
)

type Club struct {
	ID              string
	Name            string
	Slug            string
	Country         string
	Description     string
	LogoURL         string
	ThumbURL        string
	ThumbProfileURL string
	ThumbNormalURL  string
	ThumbIconURL    string
	MemberCount     int
	ViewCount       int
	LegacyClubID    *int64
	Status          Status
	OwnerUserID     string
	CreatedAt       time.Time
	ModifiedAt      time.Time
}

// Images groups every image variant of a club.
type Images struct {
	LogoURL         string
	ThumbURL        string
	ThumbProfileURL string
	ThumbNormalURL  string
	ThumbIconURL    string
}

func (c Club) Images() Images {
	return Images{
		LogoURL:         c.LogoURL,
		ThumbURL:        c.ThumbURL,
		ThumbProfileURL: c.ThumbProfileURL,
		ThumbNormalURL:  c.ThumbNormalURL,
		ThumbIconURL:    c.ThumbIconURL,
	}
}

// PrimaryImageURL picks the best available image, preferring the larger
// thumbnails over the raw logo. Empty when the club has no image.
func (c Club) PrimaryImageURL() string {
	for _, candidate := range []string{c.ThumbNormalURL, c.ThumbProfileURL, c.ThumbURL, c.ThumbIconURL, c.LogoURL} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

// MakeSlug derives the URL slug of a club from its name and country.
func MakeSlug(name, country string) string {
	return slug.Make(strings.TrimSpace(name + " " + country))
}
