package model

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type GoalType string

const (
	GoalTypeCountable GoalType = "COUNTABLE"
	GoalTypeYesNo     GoalType = "YES_NO"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeCountable, GoalTypeYesNo:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyOneTime Frequency = "ONE_TIME"
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyAnnual  Frequency = "ANNUAL"
	FrequencyCustom  Frequency = "CUSTOM"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyAnnual, FrequencyCustom:
		return true
	}
	return false
}

// CycleUnit is the unit of a CUSTOM frequency cycle.
type CycleUnit string

const (
	CycleUnitDays   CycleUnit = "days"
	CycleUnitWeeks  CycleUnit = "weeks"
	CycleUnitMonths CycleUnit = "months"
)

func (u CycleUnit) Valid() bool {
	switch u {
	case CycleUnitDays, CycleUnitWeeks, CycleUnitMonths:
		return true
	}
	return false
}

type Category string

const (
	CategoryHealth    Category = "HEALTH"
	CategoryFinance   Category = "FINANCE"
	CategoryCareer    Category = "CAREER"
	CategoryEducation Category = "EDUCATION"
	CategoryPersonal  Category = "PERSONAL"
	CategorySocial    Category = "SOCIAL"
	CategoryCreative  Category = "CREATIVE"
	CategoryOther     Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHealth, CategoryFinance, CategoryCareer, CategoryEducation,
		CategoryPersonal, CategorySocial, CategoryCreative, CategoryOther:
		return true
	}
	return false
}

// Label returns the display form of the category, e.g. "Health".
func (c Category) Label() string {
	return cases.Title(language.English).String(string(c))
}

type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Name        string     `db:"name" json:"name"`
	Type        GoalType   `db:"type" json:"type"`
	Category    Category   `db:"category" json:"category"`
	Frequency   Frequency  `db:"frequency" json:"frequency"`
	CycleLength *int       `db:"cycle_length" json:"cycleLength,omitempty"`
	CycleUnit   *CycleUnit `db:"cycle_unit" json:"cycleUnit,omitempty"`
	StartDate   time.Time  `db:"start_date" json:"startDate"`
	TargetValue *float64   `db:"target_value" json:"targetValue"`
	IsReverse   bool       `db:"is_reverse" json:"isReverse"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	Progress       []*GoalProgress `db:"-" json:"progress"`
	NeedsAttention bool            `db:"-" json:"needsAttention"`
	CategoryLabel  string          `db:"-" json:"categoryLabel"`
}

// LatestProgress returns the most recent attached progress row, or nil.
func (g *Goal) LatestProgress() *GoalProgress {
	if len(g.Progress) == 0 {
		return nil
	}
	return g.Progress[0]
}

// HasTarget reports whether the goal is countable with a target value set.
func (g *Goal) HasTarget() bool {
	return g.Type == GoalTypeCountable && g.TargetValue != nil
}
