package appointment

import (
	"time"

	"github.com/cortemaestro/barbershop-api/internal/models"
)

// Schedule is the daily working window. Injected from config instead of
// hardcoded so per-barber or per-day schedules can be layered on later.
type Schedule struct {
	StartHour int
	EndHour   int

	// Minutes between candidate slot starts. 0 means candidates advance
	// by the service duration (back-to-back blocks).
	StepMinutes int
}

func DefaultSchedule() Schedule {
	return Schedule{StartHour: 9, EndHour: 19}
}

type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AvailableSlots partitions the working window of day into candidate
// slots of the service duration and drops every candidate that
// intersects an existing appointment. existing must already be limited
// to the barber and day in question; cancelled bookings are expected to
// be filtered out by the caller. Purely derived, recomputed per call.
func AvailableSlots(
	sched Schedule,
	durationMin int,
	existing []models.Appointment,
	day time.Time,
) []TimeSlot {

	if durationMin <= 0 {
		return []TimeSlot{}
	}

	loc := day.Location()
	windowStart := time.Date(day.Year(), day.Month(), day.Day(), sched.StartHour, 0, 0, 0, loc)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), sched.EndHour, 0, 0, 0, loc)

	duration := time.Duration(durationMin) * time.Minute
	step := duration
	if sched.StepMinutes > 0 {
		step = time.Duration(sched.StepMinutes) * time.Minute
	}

	slots := []TimeSlot{}
	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(step) {
		slotEnd := cur.Add(duration)

		conflict := false
		for _, ap := range existing {
			if Overlaps(cur, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{Start: cur, End: slotEnd})
		}
	}

	return slots
}
