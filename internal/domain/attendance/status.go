package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

const (
	lateAfterHour   = 9
	lateAfterMinute = 30

	// HalfDayHours is the worked-hours threshold below which a day is a half day.
	HalfDayHours = 4.0
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// Attended reports whether the status represents a day with a check-in.
func (s Status) Attended() bool {
	return s.IsValid() && s != StatusAbsent
}

// ClassifyCheckIn returns late when checkIn's time of day is strictly after
// 09:30:00 in its own location, present otherwise.
func ClassifyCheckIn(checkIn time.Time) Status {
	cutoff := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		lateAfterHour, lateAfterMinute, 0, 0, checkIn.Location())
	if checkIn.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// ClassifyCheckOut downgrades current to half-day when fewer than HalfDayHours
// were worked. A late check-in followed by a short day becomes half-day.
func ClassifyCheckOut(current Status, hoursWorked float64) Status {
	if hoursWorked < HalfDayHours {
		return StatusHalfDay
	}
	return current
}
