// Package attention decides whether a goal is due for a check-in.
package attention

import (
	"math"
	"time"

	"github.com/templui/goaltrack/internal/clock"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/period"
)

const (
	// WeeklyFromWeekday is the first weekday a stale weekly goal is flagged on.
	WeeklyFromWeekday = time.Thursday
	// MonthlyFromDay is the first day of the month a stale monthly goal is flagged on.
	MonthlyFromDay = 25
	// CustomFromFraction is how far through a cycle a stale custom goal starts being flagged.
	CustomFromFraction = 0.75
)

// Evaluate reports whether goal needs attention at now, given its most recent
// progress row (nil when none was ever recorded).
func Evaluate(g *model.Goal, latest *model.GoalProgress, now time.Time) bool {
	switch g.Frequency {
	case model.FrequencyDaily:
		return staleSince(latest, period.Start(model.FrequencyDaily, now, period.Cycle{}))

	case model.FrequencyWeekly:
		if now.Weekday() < WeeklyFromWeekday {
			return false
		}
		return staleSince(latest, period.Start(model.FrequencyWeekly, now, period.Cycle{}))

	case model.FrequencyMonthly:
		if now.Day() < MonthlyFromDay {
			return false
		}
		return staleSince(latest, period.Start(model.FrequencyMonthly, now, period.Cycle{}))

	case model.FrequencyAnnual:
		if !g.HasTarget() {
			return false
		}
		return behindPace(g, latest, now)

	case model.FrequencyCustom:
		c := period.CycleOf(g)
		if !c.Complete() {
			return false
		}
		start := period.Start(model.FrequencyCustom, now, c)
		end := period.Next(start, c)
		if fraction(start, end, now) < CustomFromFraction {
			return false
		}
		return staleSince(latest, start)
	}

	return false
}

// behindPace compares the latest value of an annual countable goal with the
// share of its target expected by now. Lapsed goals are never flagged.
func behindPace(g *model.Goal, latest *model.GoalProgress, now time.Time) bool {
	start := g.StartDate
	end := start.AddDate(1, 0, 0)
	if now.After(end) || now.Before(start) {
		return false
	}

	expected := math.Floor(fraction(start, end, now) * *g.TargetValue)

	var value float64
	if latest != nil {
		value = latest.Value
	}
	return value < expected
}

func staleSince(latest *model.GoalProgress, start time.Time) bool {
	return latest == nil || latest.Date.Before(start)
}

func fraction(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	return float64(now.Sub(start)) / float64(total)
}

// Evaluator binds Evaluate to a clock.
type Evaluator struct {
	clock clock.Clock
}

func NewEvaluator(c clock.Clock) *Evaluator {
	return &Evaluator{clock: c}
}

func (e *Evaluator) NeedsAttention(g *model.Goal, latest *model.GoalProgress) bool {
	return Evaluate(g, latest, e.clock.Now())
}

// Filter returns the goals that need attention, using each goal's attached latest progress.
func (e *Evaluator) Filter(goals []*model.Goal) []*model.Goal {
	now := e.clock.Now()
	flagged := []*model.Goal{}
	for _, g := range goals {
		if Evaluate(g, g.LatestProgress(), now) {
			flagged = append(flagged, g)
		}
	}
	return flagged
}
