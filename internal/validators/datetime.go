package validators

import (
	"strings"
	"time"
)

// Calendar dates and times-of-day travel through the API as opaque
// tokens. Normalizing to zero-padded form keeps lexicographic and
// chronological order identical, which the slot ordering relies on.

func NormalizeDate(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func NormalizeTimeOfDay(hm string) (string, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return "", false
	}
	return t.Format("15:04"), true
}

func IsValidDate(date string) bool {
	_, ok := NormalizeDate(date)
	return ok
}

func IsValidTimeOfDay(hm string) bool {
	_, ok := NormalizeTimeOfDay(hm)
	return ok
}
