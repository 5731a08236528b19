package attendance

import (
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
)

// HardLateLimitMinutes is the lateness bound past which a check-in is
// recorded as mangkir and a koreksi becomes mandatory.
const HardLateLimitMinutes = 120

// ForceMangkirMinutes guards against punching hours into the wrong shift.
const ForceMangkirMinutes = 480

// DayInput feeds one (user, date) pair into Classify.
type DayInput struct {
	Date      time.Time
	Now       time.Time
	Effective schedule.EffectiveShift
	Record    *attendance.Absensi

	// OnLeave marks an approved leave request covering Date.
	OnLeave bool
}

// DayClassification is the classified outcome for one day.
type DayClassification struct {
	Status               attendance.DisplayStatus
	CanRequestKoreksi    bool
	RequiresApproval     bool
	LateExceedsTolerance bool
	IsScheduledOff       bool
}

// Classify turns shift, record and time into a display status plus
// correction flags. Today-status, history and monitoring all go through
// this one function so the three views can never disagree.
//
// Decision order, first match wins:
//  1. approved leave covering the date
//  2. scheduled off
//  3. record with a non-correctable raw status, shown verbatim
//  4. lateness at or past the hard limit
//  5. punch presence against whether the shift has ended
func Classify(in DayInput) DayClassification {
	var out DayClassification

	if in.OnLeave {
		out.Status = attendance.DisplayCuti
		return out
	}

	if in.Effective.IsOff() {
		out.Status = attendance.DisplayOff
		out.IsScheduledOff = true
		return out
	}

	rec := in.Record
	sh := in.Effective.Shift

	if rec != nil {
		out.LateExceedsTolerance = rec.MenitTerlambat > sh.ToleransiMenit
	}

	if rec != nil && !rec.StatusHadir.IsCorrectable() {
		out.Status = attendance.DisplayStatus(rec.StatusHadir)
		return out
	}

	if rec != nil && rec.MenitTerlambat >= HardLateLimitMinutes {
		out.Status = attendance.DisplayMangkir
		out.CanRequestKoreksi = ended(in)
		out.RequiresApproval = pastDay(in.Date, in.Now)
		return out
	}

	if futureDay(in.Date, in.Now) {
		out.Status = attendance.DisplayOff
		return out
	}

	hasMasuk := rec != nil && rec.JamMasuk != nil
	hasPulang := rec != nil && rec.JamPulang != nil
	shiftEnded := ended(in)

	switch {
	case !hasMasuk && !hasPulang:
		if shiftEnded {
			out.Status = attendance.DisplayMangkir
		} else {
			out.Status = attendance.DisplayBelumAbsen
		}
	case !hasMasuk:
		if shiftEnded {
			out.Status = attendance.DisplayTidakAbsenMasuk
		} else {
			out.Status = attendance.DisplayBelumAbsen
		}
	case !hasPulang:
		if shiftEnded {
			out.Status = attendance.DisplayTidakAbsenPulang
		} else {
			out.Status = attendance.DisplaySedangBekerja
		}
	default:
		status := rec.StatusHadir
		if status == "" {
			status = attendance.StatusHadirHadir
		}
		out.Status = attendance.DisplayStatus(status)
	}

	missingPunch := !hasMasuk || !hasPulang
	if shiftEnded && (missingPunch || out.Status == attendance.DisplayMangkir) {
		out.CanRequestKoreksi = true
		out.RequiresApproval = pastDay(in.Date, in.Now)
	}
	return out
}

// ended reports whether the effective shift's end has passed, or the date
// lies wholly in the past.
func ended(in DayInput) bool {
	if pastDay(in.Date, in.Now) {
		return true
	}
	if futureDay(in.Date, in.Now) {
		return false
	}
	return in.Now.After(in.Effective.Shift.PulangAt(in.Date))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func pastDay(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}

func futureDay(date, now time.Time) bool {
	return startOfDay(date).After(startOfDay(now))
}

// ClassifyLateness maps lateness minutes onto the raw stored status for a
// fresh check-in. The soft tolerance comes from the shift; the hard limit
// and the force bound are fixed.
func ClassifyLateness(lateMinutes, toleranceMinutes int) (attendance.StatusHadir, bool) {
	switch {
	case lateMinutes > ForceMangkirMinutes:
		return attendance.StatusHadirMangkir, true
	case lateMinutes > HardLateLimitMinutes:
		return attendance.StatusHadirMangkir, true
	case lateMinutes > toleranceMinutes:
		return attendance.StatusHadirTelat, false
	default:
		return attendance.StatusHadirHadir, false
	}
}
