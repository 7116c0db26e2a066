package attention_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/templui/goaltrack/internal/attention"
	"github.com/templui/goaltrack/internal/clock"
	"github.com/templui/goaltrack/internal/model"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func progress(value float64, date time.Time) *model.GoalProgress {
	return &model.GoalProgress{Value: value, Date: date}
}

func TestDaily(t *testing.T) {
	g := &model.Goal{Frequency: model.FrequencyDaily}

	t.Run("no progress at any hour", func(t *testing.T) {
		for h := 0; h < 24; h++ {
			assert.True(t, attention.Evaluate(g, nil, at(2025, time.March, 12, h)), "hour %d", h)
		}
	})

	t.Run("progress today clears the flag until midnight", func(t *testing.T) {
		latest := progress(1, at(2025, time.March, 12, 7))
		for h := 7; h < 24; h++ {
			assert.False(t, attention.Evaluate(g, latest, at(2025, time.March, 12, h)), "hour %d", h)
		}
		assert.True(t, attention.Evaluate(g, latest, at(2025, time.March, 13, 0)))
	})

	t.Run("yesterday's progress is stale next day", func(t *testing.T) {
		latest := progress(1, at(2025, time.March, 11, 23))
		assert.True(t, attention.Evaluate(g, latest, at(2025, time.March, 12, 1)))
	})
}

func TestWeekly(t *testing.T) {
	g := &model.Goal{Frequency: model.FrequencyWeekly}
	// week of Sunday 2025-03-09
	monday := at(2025, time.March, 10, 9)
	wednesday := at(2025, time.March, 12, 9)
	thursday := at(2025, time.March, 13, 9)
	friday := at(2025, time.March, 14, 9)

	t.Run("monday check-in counts for the sunday week on friday", func(t *testing.T) {
		// Weeks start on Sunday, so Monday's check-in satisfies the whole week.
		assert.False(t, attention.Evaluate(g, progress(1, monday), friday))
	})

	t.Run("progress from last week evaluated friday", func(t *testing.T) {
		assert.True(t, attention.Evaluate(g, progress(1, at(2025, time.March, 7, 9)), friday))
	})

	t.Run("no progress before thursday", func(t *testing.T) {
		assert.False(t, attention.Evaluate(g, nil, wednesday))
		assert.True(t, attention.Evaluate(g, nil, thursday))
	})

	t.Run("saturday with no progress", func(t *testing.T) {
		assert.True(t, attention.Evaluate(g, nil, at(2025, time.March, 15, 22)))
	})
}

func TestWeekly_MondayProgressBeforeWeekStart(t *testing.T) {
	g := &model.Goal{Frequency: model.FrequencyWeekly}
	// Last progress on Monday of the previous week, evaluated Friday (weekday 5)
	latest := progress(1, at(2025, time.March, 3, 9))
	assert.True(t, attention.Evaluate(g, latest, at(2025, time.March, 14, 9)))
}

func TestMonthly(t *testing.T) {
	g := &model.Goal{Frequency: model.FrequencyMonthly}

	assert.False(t, attention.Evaluate(g, nil, at(2025, time.March, 24, 23)))
	assert.True(t, attention.Evaluate(g, nil, at(2025, time.March, 25, 0)))
	assert.True(t, attention.Evaluate(g, progress(1, at(2025, time.February, 27, 0)), at(2025, time.March, 28, 0)))
	assert.False(t, attention.Evaluate(g, progress(1, at(2025, time.March, 1, 0)), at(2025, time.March, 28, 0)))
}

func TestAnnual(t *testing.T) {
	target := 100.0
	g := &model.Goal{
		Frequency:   model.FrequencyAnnual,
		Type:        model.GoalTypeCountable,
		TargetValue: &target,
		StartDate:   at(2025, time.January, 1, 0),
	}
	// 2025 has 365 days; halfway is 2025-07-02 12:00
	half := at(2025, time.July, 2, 12)

	t.Run("behind pace", func(t *testing.T) {
		assert.True(t, attention.Evaluate(g, nil, half))
		assert.True(t, attention.Evaluate(g, progress(49, half), half))
	})

	t.Run("on pace", func(t *testing.T) {
		assert.False(t, attention.Evaluate(g, progress(50, half), half))
		assert.False(t, attention.Evaluate(g, progress(80, half), half))
	})

	t.Run("just started", func(t *testing.T) {
		assert.False(t, attention.Evaluate(g, nil, at(2025, time.January, 2, 0)))
	})

	t.Run("lapsed", func(t *testing.T) {
		assert.False(t, attention.Evaluate(g, nil, at(2026, time.January, 2, 0)))
	})

	t.Run("no target", func(t *testing.T) {
		noTarget := *g
		noTarget.TargetValue = nil
		assert.False(t, attention.Evaluate(&noTarget, nil, half))
	})

	t.Run("yes/no goal", func(t *testing.T) {
		yesNo := *g
		yesNo.Type = model.GoalTypeYesNo
		assert.False(t, attention.Evaluate(&yesNo, nil, half))
	})
}

func TestOneTime(t *testing.T) {
	g := &model.Goal{Frequency: model.FrequencyOneTime, StartDate: at(2025, time.January, 1, 0)}
	assert.False(t, attention.Evaluate(g, nil, at(2025, time.December, 31, 0)))
}

func TestCustom(t *testing.T) {
	length := 2
	unit := model.CycleUnitWeeks
	d := at(2025, time.January, 1, 0)
	g := &model.Goal{
		Frequency:   model.FrequencyCustom,
		CycleLength: &length,
		CycleUnit:   &unit,
		StartDate:   d,
	}

	t.Run("93 percent through with no progress", func(t *testing.T) {
		assert.True(t, attention.Evaluate(g, nil, d.AddDate(0, 0, 13)))
	})

	t.Run("progress before cycle start", func(t *testing.T) {
		latest := progress(1, d.Add(-time.Hour))
		assert.True(t, attention.Evaluate(g, latest, d.AddDate(0, 0, 13)))
	})

	t.Run("progress within cycle", func(t *testing.T) {
		latest := progress(1, d.AddDate(0, 0, 2))
		assert.False(t, attention.Evaluate(g, latest, d.AddDate(0, 0, 13)))
	})

	t.Run("early in cycle", func(t *testing.T) {
		assert.False(t, attention.Evaluate(g, nil, d.AddDate(0, 0, 10)))
		assert.True(t, attention.Evaluate(g, nil, d.AddDate(0, 0, 11)))
	})

	t.Run("next cycle resets", func(t *testing.T) {
		latest := progress(1, d.AddDate(0, 0, 2))
		assert.False(t, attention.Evaluate(g, latest, d.AddDate(0, 0, 15)))
		assert.True(t, attention.Evaluate(g, latest, d.AddDate(0, 0, 26)))
	})

	t.Run("missing cycle unit", func(t *testing.T) {
		broken := *g
		broken.CycleUnit = nil
		assert.False(t, attention.Evaluate(&broken, nil, d.AddDate(0, 0, 13)))
	})
}

func TestEvaluator_Filter(t *testing.T) {
	now := at(2025, time.March, 12, 10)
	e := attention.NewEvaluator(clock.Fixed(now))

	due := &model.Goal{ID: "due", Frequency: model.FrequencyDaily}
	done := &model.Goal{
		ID:        "done",
		Frequency: model.FrequencyDaily,
		Progress:  []*model.GoalProgress{progress(1, at(2025, time.March, 12, 8))},
	}
	oneTime := &model.Goal{ID: "once", Frequency: model.FrequencyOneTime}

	flagged := e.Filter([]*model.Goal{due, done, oneTime})
	if assert.Len(t, flagged, 1) {
		assert.Equal(t, "due", flagged[0].ID)
	}
	assert.True(t, e.NeedsAttention(due, nil))
	assert.False(t, e.NeedsAttention(done, done.LatestProgress()))
}
