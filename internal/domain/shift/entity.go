package shift

import "time"

// Shift is a named work-time pattern. JamMasuk and JamPulang hold the
// time-of-day in "15:04" form; MasukAt/PulangAt anchor them to a calendar day.
type Shift struct {
	ID             string
	Nama           string
	JamMasuk       string
	JamPulang      string
	ToleransiMenit int
	DurasiJamKerja float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MasukAt returns the shift start on the given day, in that day's location.
func (s *Shift) MasukAt(day time.Time) time.Time {
	return atTimeOfDay(day, s.JamMasuk)
}

// PulangAt returns the shift end on the given day. A shift whose end sorts
// before its start crosses midnight and ends the next day.
func (s *Shift) PulangAt(day time.Time) time.Time {
	end := atTimeOfDay(day, s.JamPulang)
	if !end.After(s.MasukAt(day)) {
		end = end.Add(24 * time.Hour)
	}
	return end
}

func atTimeOfDay(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		// Schedules with malformed reference data resolve to midnight
		// rather than failing every classification that touches them.
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
