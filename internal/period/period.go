// Package period computes which period (or CUSTOM cycle) a given instant belongs to.
//
// Every function here is pure: results depend only on the arguments, and all
// calendar boundaries are taken in the location of the reference instant.
package period

import (
	"time"

	"github.com/templui/goaltrack/internal/model"
)

const (
	day = 24 * time.Hour

	// DaysPerMonth approximates a month for CUSTOM cycles measured in months.
	DaysPerMonth = 30.44

	// MaxCycleLength bounds Cycle.Length so a cycle's duration fits in a time.Duration.
	MaxCycleLength = 1000
)

// Cycle describes a CUSTOM frequency. Zero values mean the field is absent.
type Cycle struct {
	Length int
	Unit   model.CycleUnit
	Anchor time.Time
}

// CycleOf extracts the cycle parameters of a goal. The goal's start date is the anchor.
func CycleOf(g *model.Goal) Cycle {
	c := Cycle{Anchor: g.StartDate}
	if g.CycleLength != nil {
		c.Length = *g.CycleLength
	}
	if g.CycleUnit != nil {
		c.Unit = *g.CycleUnit
	}
	return c
}

// Complete reports whether all three cycle parameters are present and usable.
func (c Cycle) Complete() bool {
	return Duration(c) > 0 && !c.Anchor.IsZero()
}

// Duration returns the length of one cycle, or 0 if the length is missing,
// above MaxCycleLength or the unit is unknown.
func Duration(c Cycle) time.Duration {
	if c.Length <= 0 || c.Length > MaxCycleLength {
		return 0
	}
	switch c.Unit {
	case model.CycleUnitDays:
		return time.Duration(c.Length) * day
	case model.CycleUnitWeeks:
		return time.Duration(c.Length) * 7 * day
	case model.CycleUnitMonths:
		return time.Duration(float64(c.Length) * DaysPerMonth * float64(day))
	}
	return 0
}

// Start returns the beginning of the period of freq that contains ref.
//
// For CUSTOM the cycle must be complete; otherwise, and for ONE_TIME or any
// unknown frequency, ref is returned unchanged.
func Start(freq model.Frequency, ref time.Time, c Cycle) time.Time {
	switch freq {
	case model.FrequencyDaily:
		return midnight(ref)
	case model.FrequencyWeekly:
		return midnight(ref.AddDate(0, 0, -int(ref.Weekday())))
	case model.FrequencyMonthly:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	case model.FrequencyAnnual:
		return time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	case model.FrequencyCustom:
		if !c.Complete() {
			return ref
		}
		return midnight(cycleStart(ref, c).In(ref.Location()))
	default:
		return ref
	}
}

// Next projects the boundary of the cycle following the one beginning at start.
func Next(start time.Time, c Cycle) time.Time {
	return start.Add(Duration(c))
}

// Key returns the period a check-in made at now is stored under.
// A ONE_TIME goal has a single period keyed by the day it starts.
func Key(g *model.Goal, now time.Time) time.Time {
	if g.Frequency == model.FrequencyOneTime {
		return midnight(g.StartDate.In(now.Location()))
	}
	return Start(g.Frequency, now, CycleOf(g))
}

func cycleStart(ref time.Time, c Cycle) time.Time {
	d := Duration(c)
	elapsed := ref.Sub(c.Anchor)
	whole := elapsed / d
	// floor, not truncate, when ref precedes the anchor
	if elapsed%d != 0 && elapsed < 0 {
		whole--
	}
	return c.Anchor.Add(whole * d)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
