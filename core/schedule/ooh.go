// Package schedule computes the unsociable-hours split for a job.
// Time arithmetic runs on raw minutes-since-midnight offsets; offsets are
// only normalized modulo 24h when formatted for display.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"crewcost/core/types"
)

const (
	// SociableStart is 08:00 in minutes since midnight
	SociableStart = 480

	// SociableEnd is 23:00 in minutes since midnight
	SociableEnd = 1380

	minutesPerDay = 1440
)

// Split is the outcome of the unsociable-hours calculation.
type Split struct {
	// EarlyStartMinutes is time worked before the sociable window
	EarlyStartMinutes int

	// LateFinishMinutes is time worked after the sociable window
	LateFinishMinutes int

	// DepartureMinutes is the raw leave-home offset; may be negative
	DepartureMinutes int

	// FinishMinutes is the raw wrap offset; may exceed one day
	FinishMinutes int

	// Computed is false when the calculator was skipped for missing input
	Computed bool
}

// OutOfHoursMinutes returns the total premium-rate minutes
func (s Split) OutOfHoursMinutes() int {
	return s.EarlyStartMinutes + s.LateFinishMinutes
}

// DepartureClock formats the departure offset as HH:MM
func (s Split) DepartureClock() string {
	if !s.Computed {
		return ""
	}
	return FormatClock(s.DepartureMinutes)
}

// FinishClock formats the finish offset as HH:MM
func (s Split) FinishClock() string {
	if !s.Computed {
		return ""
	}
	return FormatClock(s.FinishMinutes)
}

// JourneyToVenueMinutes returns the travel time between leaving home and
// arriving on site. Normally the one-way drive time; for a vehicle
// collection the driver reaches the venue by public transport, so that leg
// is used instead.
func JourneyToVenueMinutes(job types.JobParameters) int {
	if job.JobType == types.JobCollection && job.IsVehicle() && job.PublicTransport != nil && job.PublicTransport.Minutes > 0 {
		return job.PublicTransport.Minutes
	}
	return job.DriveTimeMinutes
}

// SplitEngagedTime splits a job's engaged time into sociable and premium
// minutes. arrivalTime is an HH:MM clock string; an empty or malformed
// arrival time, or a zero journey time, skips the calculation and reports
// zero for both counts.
func SplitEngagedTime(arrivalTime string, journeyToVenueMinutes, totalEngagedMinutes int) Split {
	arrival, ok := ParseClock(arrivalTime)
	if !ok || journeyToVenueMinutes <= 0 {
		return Split{}
	}

	departure := arrival - journeyToVenueMinutes
	finish := departure + totalEngagedMinutes

	early := SociableStart - departure
	if early < 0 {
		early = 0
	}
	late := finish - SociableEnd
	if late < 0 {
		late = 0
	}

	return Split{
		EarlyStartMinutes: early,
		LateFinishMinutes: late,
		DepartureMinutes:  departure,
		FinishMinutes:     finish,
		Computed:          true,
	}
}

// Resolve produces the split for a job: either the auto calculation from
// the arrival time, or the operator's manual counts. The two variants are
// mutually exclusive and no partial auto state leaks into a manual result.
func Resolve(job types.JobParameters, totalEngagedMinutes int) Split {
	if job.OOH.Manual {
		return Split{
			EarlyStartMinutes: job.OOH.EarlyStartMinutes,
			LateFinishMinutes: job.OOH.LateFinishMinutes,
		}
	}
	return SplitEngagedTime(job.OOH.ArrivalTime, JourneyToVenueMinutes(job), totalEngagedMinutes)
}

// ParseClock parses an HH:MM clock string into minutes since midnight.
func ParseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders a raw minute offset as an HH:MM clock time,
// normalized into one day.
func FormatClock(minutes int) string {
	m := minutes % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
