package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/goaltrack/internal/attention"
	"github.com/templui/goaltrack/internal/clock"
	"github.com/templui/goaltrack/internal/metrics"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/period"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/validation"
)

// CreateGoalInput is the body of a create-goal request.
type CreateGoalInput struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Type        model.GoalType   `json:"type" validate:"required,enum"`
	Category    model.Category   `json:"category" validate:"required,enum"`
	Frequency   model.Frequency  `json:"frequency" validate:"required,enum"`
	CycleLength *int             `json:"cycleLength" validate:"required_if=Frequency CUSTOM,omitempty,gt=0,lte=1000"`
	CycleUnit   *model.CycleUnit `json:"cycleUnit" validate:"required_if=Frequency CUSTOM,omitempty,enum"`
	StartDate   time.Time        `json:"startDate" validate:"required"`
	TargetValue *float64         `json:"targetValue" validate:"omitempty,gte=0"`
	IsReverse   bool             `json:"isReverse"`
	EndDate     *time.Time       `json:"endDate" validate:"omitempty,gtfield=StartDate"`
}

// Dashboard splits a user's goals into all goals and those due for a check-in.
type Dashboard struct {
	Goals          []*model.Goal `json:"goals"`
	NeedsAttention []*model.Goal `json:"needsAttention"`
}

type GoalService struct {
	goals     repository.GoalRepository
	progress  repository.GoalProgressRepository
	clock     clock.Clock
	evaluator *attention.Evaluator
}

func NewGoalService(
	goals repository.GoalRepository,
	progress repository.GoalProgressRepository,
	c clock.Clock,
) *GoalService {
	return &GoalService{
		goals:     goals,
		progress:  progress,
		clock:     c,
		evaluator: attention.NewEvaluator(c),
	}
}

// Goals lists the user's goals, each with its latest progress row attached
// (or an empty list) and its attention flag set.
func (s *GoalService) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	goals, err := s.goals.Goals(ctx, userID)
	if err != nil {
		return nil, storageErr("list goals", err)
	}

	latest, err := s.progress.LatestByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("load latest progress", err)
	}

	for _, g := range goals {
		g.Progress = []*model.GoalProgress{}
		if p, ok := latest[g.ID]; ok {
			g.Progress = append(g.Progress, p)
		}
		g.CategoryLabel = g.Category.Label()
		g.NeedsAttention = s.evaluator.NeedsAttention(g, g.LatestProgress())
	}

	return goals, nil
}

func (s *GoalService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	goals, err := s.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Goals:          goals,
		NeedsAttention: s.evaluator.Filter(goals),
	}, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in CreateGoalInput) (*model.Goal, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	in.Name = strings.TrimSpace(in.Name)

	if fields := validation.Struct(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := s.clock.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Type:        in.Type,
		Category:    in.Category,
		Frequency:   in.Frequency,
		StartDate:   in.StartDate,
		TargetValue: in.TargetValue,
		IsReverse:   in.IsReverse,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Progress:    []*model.GoalProgress{},
	}

	// Cycle fields only mean something for CUSTOM goals, targets only for countable ones.
	if in.Frequency == model.FrequencyCustom {
		goal.CycleLength = in.CycleLength
		goal.CycleUnit = in.CycleUnit
	}
	if in.Type != model.GoalTypeCountable {
		goal.TargetValue = nil
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, storageErr("create goal", err)
	}

	metrics.GoalsCreated.WithLabelValues(string(goal.Frequency)).Inc()
	goal.CategoryLabel = goal.Category.Label()
	goal.NeedsAttention = s.evaluator.NeedsAttention(goal, nil)
	return goal, nil
}

// RecordProgress stores a check-in for the period containing the current time.
// A second check-in in the same period replaces the first one's value and date.
// A zero date means now.
func (s *GoalService) RecordProgress(ctx context.Context, userID, goalID string, value float64, date time.Time) (*model.GoalProgress, error) {
	goal, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if goal.Type == model.GoalTypeYesNo && value != 0 && value != 1 {
		return nil, invalid("value", "must be 0 or 1 for a YES_NO goal")
	}
	if value < 0 {
		return nil, invalid("value", "must be at least 0")
	}

	now := s.clock.Now()
	if date.IsZero() {
		date = now
	}

	saved, err := s.progress.Upsert(ctx, &model.GoalProgress{
		ID:          uuid.New().String(),
		GoalID:      goal.ID,
		Value:       value,
		Date:        date,
		PeriodStart: period.Key(goal, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, storageErr("record progress", err)
	}

	metrics.CheckIns.WithLabelValues(string(goal.Frequency)).Inc()
	return saved, nil
}

// Goal returns one of the user's goals with its full progress history, newest first.
func (s *GoalService) Goal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	history, err := s.progress.ByGoal(ctx, goal.ID)
	if err != nil {
		return nil, storageErr("load progress history", err)
	}

	goal.Progress = history
	goal.CategoryLabel = goal.Category.Label()
	goal.NeedsAttention = s.evaluator.NeedsAttention(goal, goal.LatestProgress())
	return goal, nil
}

// Delete removes the goal and its progress. Only the owner may delete a goal.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	if _, err := s.owned(ctx, userID, goalID); err != nil {
		return err
	}

	err := s.goals.Delete(ctx, userID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return err
	}
	if err != nil {
		return storageErr("delete goal", err)
	}

	metrics.GoalsDeleted.Inc()
	return nil
}

// owned loads the goal and checks it belongs to userID.
func (s *GoalService) owned(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	goal, err := s.goals.ByID(ctx, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, storageErr("load goal", err)
	}

	if goal.UserID != userID {
		return nil, ErrForbidden
	}

	return goal, nil
}
