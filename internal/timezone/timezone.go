package timezone

import "time"

// The shop runs on a single wall clock. Slot dates and times are stored
// as naive tokens; this package only matters for "what day is it now".
const DefaultTimezone = "America/Mexico_City"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today returns the current date as a YYYY-MM-DD token.
func Today() string {
	return Now().Format("2006-01-02")
}
