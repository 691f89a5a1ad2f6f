package dinoblast

import "time"

// DateLayout is the daily challenge date format.
const DateLayout = time.DateOnly

// DailySeed derives the run seed from a challenge date. Everyone playing
// the same date gets the same seed.
func DailySeed(date string) int64 {
	var h int32
	for _, c := range date {
		h = h<<5 - h + int32(c)
	}
	s := int64(h)
	if s < 0 {
		s = -s
	}
	return s
}

// Today returns the current daily challenge date in UTC.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
