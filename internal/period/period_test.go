package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/period"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestStart_CalendarFrequencies(t *testing.T) {
	// Wednesday 2025-03-12 15:30
	ref := date(2025, time.March, 12, 15, 30)

	tests := []struct {
		freq model.Frequency
		want time.Time
	}{
		{model.FrequencyDaily, date(2025, time.March, 12, 0, 0)},
		{model.FrequencyWeekly, date(2025, time.March, 9, 0, 0)},
		{model.FrequencyMonthly, date(2025, time.March, 1, 0, 0)},
		{model.FrequencyAnnual, date(2025, time.January, 1, 0, 0)},
		{model.FrequencyOneTime, ref},
		{model.Frequency("HOURLY"), ref},
	}
	for _, tc := range tests {
		t.Run(string(tc.freq), func(t *testing.T) {
			got := period.Start(tc.freq, ref, period.Cycle{})
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestStart_WeeklyOnSunday(t *testing.T) {
	sunday := date(2025, time.March, 9, 8, 0)
	got := period.Start(model.FrequencyWeekly, sunday, period.Cycle{})
	assert.True(t, date(2025, time.March, 9, 0, 0).Equal(got))
}

func TestStart_WeeklyAcrossMonth(t *testing.T) {
	// Saturday 2025-03-01 belongs to the week starting Sunday 2025-02-23
	got := period.Start(model.FrequencyWeekly, date(2025, time.March, 1, 23, 59), period.Cycle{})
	assert.True(t, date(2025, time.February, 23, 0, 0).Equal(got))
}

func TestStart_UsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2025-03-11 20:00 UTC is already 2025-03-12 06:00 at UTC+10
	ref := date(2025, time.March, 11, 20, 0).In(loc)

	got := period.Start(model.FrequencyDaily, ref, period.Cycle{})
	assert.True(t, time.Date(2025, time.March, 12, 0, 0, 0, 0, loc).Equal(got))
}

func TestStart_Idempotent(t *testing.T) {
	refs := []time.Time{
		date(2024, time.February, 29, 12, 0),
		date(2025, time.January, 1, 0, 0),
		date(2025, time.December, 31, 23, 59),
		date(2025, time.June, 15, 6, 45),
	}
	freqs := []model.Frequency{
		model.FrequencyDaily,
		model.FrequencyWeekly,
		model.FrequencyMonthly,
		model.FrequencyAnnual,
		model.FrequencyOneTime,
	}
	for _, f := range freqs {
		for _, ref := range refs {
			once := period.Start(f, ref, period.Cycle{})
			twice := period.Start(f, once, period.Cycle{})
			assert.True(t, once.Equal(twice), "%s not idempotent at %s", f, ref)
		}
	}
}

func TestStart_Custom(t *testing.T) {
	anchor := date(2025, time.January, 1, 0, 0)

	tests := []struct {
		name string
		c    period.Cycle
		ref  time.Time
		want time.Time
	}{
		{
			name: "first cycle",
			c:    period.Cycle{Length: 3, Unit: model.CycleUnitDays, Anchor: anchor},
			ref:  date(2025, time.January, 2, 10, 0),
			want: anchor,
		},
		{
			name: "third cycle of 3 days",
			c:    period.Cycle{Length: 3, Unit: model.CycleUnitDays, Anchor: anchor},
			ref:  date(2025, time.January, 7, 10, 0),
			want: date(2025, time.January, 7, 0, 0),
		},
		{
			name: "two weeks at day 13",
			c:    period.Cycle{Length: 2, Unit: model.CycleUnitWeeks, Anchor: anchor},
			ref:  date(2025, time.January, 14, 9, 0),
			want: anchor,
		},
		{
			name: "two weeks at day 15",
			c:    period.Cycle{Length: 2, Unit: model.CycleUnitWeeks, Anchor: anchor},
			ref:  date(2025, time.January, 16, 9, 0),
			want: date(2025, time.January, 15, 0, 0),
		},
		{
			name: "one month second cycle",
			c:    period.Cycle{Length: 1, Unit: model.CycleUnitMonths, Anchor: anchor},
			ref:  date(2025, time.February, 5, 0, 0),
			// anchor + 30.44 days = Jan 31 10:33, normalized to midnight
			want: date(2025, time.January, 31, 0, 0),
		},
		{
			name: "before anchor",
			c:    period.Cycle{Length: 7, Unit: model.CycleUnitDays, Anchor: anchor},
			ref:  date(2024, time.December, 30, 12, 0),
			want: date(2024, time.December, 25, 0, 0),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := period.Start(model.FrequencyCustom, tc.ref, tc.c)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestStart_CustomAnchorAligned(t *testing.T) {
	anchor := date(2025, time.January, 1, 0, 0)
	cycles := []period.Cycle{
		{Length: 1, Unit: model.CycleUnitDays, Anchor: anchor},
		{Length: 5, Unit: model.CycleUnitDays, Anchor: anchor},
		{Length: 1, Unit: model.CycleUnitWeeks, Anchor: anchor},
		{Length: 3, Unit: model.CycleUnitWeeks, Anchor: anchor},
	}

	for _, c := range cycles {
		d := period.Duration(c)
		require.Positive(t, d)
		for ref := anchor.Add(-40 * 24 * time.Hour); ref.Before(anchor.AddDate(0, 6, 0)); ref = ref.Add(17 * time.Hour) {
			got := period.Start(model.FrequencyCustom, ref, c)
			assert.False(t, got.After(ref), "start %s after ref %s", got, ref)
			assert.Zero(t, got.Sub(anchor)%d, "start %s not aligned to %s cycle", got, d)
			assert.True(t, ref.Before(period.Next(got, c)), "ref %s beyond cycle end", ref)
		}
	}
}

func TestStart_CustomMonthsNeverAfterRef(t *testing.T) {
	anchor := date(2024, time.March, 3, 0, 0)
	c := period.Cycle{Length: 2, Unit: model.CycleUnitMonths, Anchor: anchor}
	for ref := anchor; ref.Before(anchor.AddDate(3, 0, 0)); ref = ref.Add(29 * time.Hour) {
		got := period.Start(model.FrequencyCustom, ref, c)
		assert.False(t, got.After(ref), "start %s after ref %s", got, ref)
	}
}

func TestStart_CustomIncompleteReturnsRef(t *testing.T) {
	ref := date(2025, time.May, 5, 13, 14)
	anchor := date(2025, time.January, 1, 0, 0)

	cycles := map[string]period.Cycle{
		"no length": {Unit: model.CycleUnitDays, Anchor: anchor},
		"no unit":   {Length: 2, Anchor: anchor},
		"no anchor": {Length: 2, Unit: model.CycleUnitDays},
		"bad unit":  {Length: 2, Unit: model.CycleUnit("years"), Anchor: anchor},
	}
	for name, c := range cycles {
		t.Run(name, func(t *testing.T) {
			assert.True(t, ref.Equal(period.Start(model.FrequencyCustom, ref, c)))
		})
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 48*time.Hour, period.Duration(period.Cycle{Length: 2, Unit: model.CycleUnitDays}))
	assert.Equal(t, 14*24*time.Hour, period.Duration(period.Cycle{Length: 2, Unit: model.CycleUnitWeeks}))
	assert.Equal(t, time.Duration(30.44*float64(24*time.Hour)), period.Duration(period.Cycle{Length: 1, Unit: model.CycleUnitMonths}))
	assert.Zero(t, period.Duration(period.Cycle{Length: 0, Unit: model.CycleUnitDays}))
}

func TestDuration_LengthOutOfRange(t *testing.T) {
	for _, length := range []int{period.MaxCycleLength + 1, 200000, 1 << 48} {
		for _, unit := range []model.CycleUnit{model.CycleUnitDays, model.CycleUnitWeeks, model.CycleUnitMonths} {
			assert.Zero(t, period.Duration(period.Cycle{Length: length, Unit: unit}), "%d %s", length, unit)
		}
	}

	longest := period.Cycle{Length: period.MaxCycleLength, Unit: model.CycleUnitMonths}
	assert.Positive(t, period.Duration(longest))
}

func TestStart_CustomHugeLengthDoesNotPanic(t *testing.T) {
	ref := date(2025, time.March, 12, 15, 30)
	anchor := date(2025, time.January, 1, 0, 0)

	for _, length := range []int{200000, 1 << 48} {
		c := period.Cycle{Length: length, Unit: model.CycleUnitDays, Anchor: anchor}
		assert.False(t, c.Complete())
		require.NotPanics(t, func() {
			assert.True(t, ref.Equal(period.Start(model.FrequencyCustom, ref, c)))
		})
	}

	c := period.Cycle{Length: period.MaxCycleLength, Unit: model.CycleUnitMonths, Anchor: anchor}
	require.True(t, c.Complete())
	start := period.Start(model.FrequencyCustom, ref, c)
	assert.True(t, period.Next(start, c).After(start))
}

func TestKey(t *testing.T) {
	now := date(2025, time.March, 12, 15, 30)

	daily := &model.Goal{Frequency: model.FrequencyDaily, StartDate: date(2025, time.January, 1, 0, 0)}
	assert.True(t, date(2025, time.March, 12, 0, 0).Equal(period.Key(daily, now)))

	oneTime := &model.Goal{Frequency: model.FrequencyOneTime, StartDate: date(2025, time.February, 3, 9, 0)}
	assert.True(t, date(2025, time.February, 3, 0, 0).Equal(period.Key(oneTime, now)))
	assert.True(t, period.Key(oneTime, now).Equal(period.Key(oneTime, now.AddDate(0, 1, 0))))

	length := 10
	unit := model.CycleUnitDays
	custom := &model.Goal{
		Frequency:   model.FrequencyCustom,
		CycleLength: &length,
		CycleUnit:   &unit,
		StartDate:   date(2025, time.March, 1, 0, 0),
	}
	assert.True(t, date(2025, time.March, 11, 0, 0).Equal(period.Key(custom, now)))
}
