package maternity

import "time"

// Standard obstetric constants: 280 days from LMP to due date, 40 weeks of
// tracked gestation.
const (
	GestationDays = 280
	MaxWeek       = 40
)

const (
	TrimesterFirst  = "First Trimester"
	TrimesterSecond = "Second Trimester"
	TrimesterThird  = "Third Trimester"
)

const week = 7 * 24 * time.Hour

// GestationalWeek derives the current pregnancy week from a profile.
//
// A doctor-provided due date is the authoritative source when present: the
// conception instant is due date minus 280 days and the week count is the
// number of full weeks elapsed since then. Without a due date the count runs
// from the last menstruation date. Results clamp to [0, MaxWeek] so future
// reference dates read as week 0 and overdue pregnancies as week 40. A
// non-pregnant or absent profile is week 0.
func GestationalWeek(p *Profile, now time.Time) int {
	if p == nil || !p.IsPregnant {
		return 0
	}
	if p.DoctorDueDate != nil && !p.DoctorDueDate.IsZero() {
		conception := p.DoctorDueDate.AddDate(0, 0, -GestationDays)
		return clampWeek(int(now.Sub(conception) / week))
	}
	if p.LastMenstruationDate != nil && !p.LastMenstruationDate.IsZero() {
		return clampWeek(int(now.Sub(*p.LastMenstruationDate) / week))
	}
	return 0
}

// Trimester maps a week count to its trimester label. Weeks 0-13 are the
// first trimester, 14-26 the second, 27 onward the third.
func Trimester(weekNum int) string {
	switch {
	case weekNum <= 13:
		return TrimesterFirst
	case weekNum <= 26:
		return TrimesterSecond
	default:
		return TrimesterThird
	}
}

// EstimatedDueDate computes the due date from a last menstruation date using
// the 280-day rule. The profile's doctor due date, when set, wins over this
// estimate.
func EstimatedDueDate(lmp time.Time) time.Time {
	return lmp.AddDate(0, 0, GestationDays)
}

// DueDate returns the profile's effective due date: the doctor-provided one
// when present, otherwise the 280-day estimate from the LMP, otherwise nil.
func DueDate(p *Profile) *time.Time {
	if p == nil || !p.IsPregnant {
		return nil
	}
	if p.DoctorDueDate != nil && !p.DoctorDueDate.IsZero() {
		return p.DoctorDueDate
	}
	if p.LastMenstruationDate != nil && !p.LastMenstruationDate.IsZero() {
		due := EstimatedDueDate(*p.LastMenstruationDate)
		return &due
	}
	return nil
}

func clampWeek(w int) int {
	if w < 0 {
		return 0
	}
	if w > MaxWeek {
		return MaxWeek
	}
	return w
}
