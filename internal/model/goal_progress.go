package model

import (
	"time"
)

// GoalProgress is the recorded value of a goal for one period.
// PeriodStart is the key that keeps a single row per goal per period.
type GoalProgress struct {
	ID          string    `db:"id" json:"id"`
	GoalID      string    `db:"goal_id" json:"goalId"`
	Value       float64   `db:"value" json:"value"`
	Date        time.Time `db:"date" json:"date"`
	PeriodStart time.Time `db:"period_start" json:"periodStart"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
