package playerprofile

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DisplayDateLayout = "02-01-2006"

var (
	ErrInvalidDate = errors.New("invalid date format. Expected DD-MM-YYYY")

	displayDatePattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	fallbackLayouts    = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006/01/02"}
)

// ParseBirthDate accepts DD-MM-YYYY and, failing that, ISO dates. Impossible
// calendar dates such as 31-02-2000 are rejected rather than normalised.
func ParseBirthDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}

	if m := displayDatePattern.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day || int(t.Month()) != month || t.Year() != year {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders t as DD-MM-YYYY; nil renders as "".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
