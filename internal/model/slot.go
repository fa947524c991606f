package model

// Days lists weekday names in the order the scheduler indexes them.
// Sunday first, matching time.Weekday.
var Days = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// DayIndex returns the weekday index for a day name, or -1 when the name
// is not one of Days.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

type SlotID string

// Slot is a fixed weekday time window with a derived hour capacity.
// Hours is always recomputed from Start/End; End must be after Start
// within the same day (no overnight wraparound).
type Slot struct {
	ID    SlotID  `json:"id"`
	Day   string  `json:"day"`
	Start string  `json:"start"` // HH:mm
	End   string  `json:"end"`   // HH:mm
	Hours float64 `json:"hours"`
}
