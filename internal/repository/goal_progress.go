package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltrack/internal/model"
)

type GoalProgressRepository interface {
	Upsert(ctx context.Context, progress *model.GoalProgress) (*model.GoalProgress, error)
	LatestByUser(ctx context.Context, userID string) (map[string]*model.GoalProgress, error)
	ByGoal(ctx context.Context, goalID string) ([]*model.GoalProgress, error)
}

type goalProgressRepository struct {
	db *sqlx.DB
}

func NewGoalProgressRepository(db *sqlx.DB) GoalProgressRepository {
	return &goalProgressRepository{db: db}
}

// Upsert writes the progress row for (goal, period start). An existing row for
// the same period keeps its id and creation time and takes the new value and date.
// The statement is atomic, so concurrent check-ins cannot create two rows.
func (r *goalProgressRepository) Upsert(ctx context.Context, p *model.GoalProgress) (*model.GoalProgress, error) {
	query := `INSERT INTO goal_progress (id, goal_id, value, date, period_start, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (goal_id, period_start) DO UPDATE
	          SET value = excluded.value, date = excluded.date, updated_at = excluded.updated_at
	          RETURNING *`

	saved := &model.GoalProgress{}
	err := r.db.GetContext(ctx, saved, query,
		p.ID,
		p.GoalID,
		p.Value,
		p.Date.UTC(),
		p.PeriodStart.UTC(),
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// LatestByUser returns the most recent progress row of every goal the user
// owns, keyed by goal id. Goals without progress are absent from the map.
func (r *goalProgressRepository) LatestByUser(ctx context.Context, userID string) (map[string]*model.GoalProgress, error) {
	var rows []*model.GoalProgress
	query := `SELECT p.* FROM goal_progress p
	          JOIN goals g ON g.id = p.goal_id
	          WHERE g.user_id = $1
	          AND NOT EXISTS (
	              SELECT 1 FROM goal_progress newer
	              WHERE newer.goal_id = p.goal_id
	              AND (newer.date > p.date OR (newer.date = p.date AND newer.updated_at > p.updated_at))
	          )
	          ORDER BY p.updated_at ASC`

	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]*model.GoalProgress, len(rows))
	for _, p := range rows {
		latest[p.GoalID] = p
	}
	return latest, nil
}

func (r *goalProgressRepository) ByGoal(ctx context.Context, goalID string) ([]*model.GoalProgress, error) {
	entries := []*model.GoalProgress{}
	query := `SELECT * FROM goal_progress WHERE goal_id = $1 ORDER BY date DESC`

	err := r.db.SelectContext(ctx, &entries, query, goalID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
