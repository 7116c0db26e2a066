package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/render"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/validation"
)

type GoalHandler struct {
	goalService   *service.GoalService
	exportService *service.ExportService
	location      *time.Location
}

// NewGoalHandler reads plain dates in requests as midnight in loc.
func NewGoalHandler(goalService *service.GoalService, exportService *service.ExportService, loc *time.Location) *GoalHandler {
	if loc == nil {
		loc = time.Local
	}
	return &GoalHandler{
		goalService:   goalService,
		exportService: exportService,
		location:      loc,
	}
}

type createGoalRequest struct {
	Name        string           `json:"name"`
	Type        model.GoalType   `json:"type"`
	Category    model.Category   `json:"category"`
	Frequency   model.Frequency  `json:"frequency"`
	CycleLength *int             `json:"cycleLength"`
	CycleUnit   *model.CycleUnit `json:"cycleUnit"`
	StartDate   string           `json:"startDate"`
	TargetValue *float64         `json:"targetValue"`
	IsReverse   bool             `json:"isReverse"`
	EndDate     string           `json:"endDate"`
}

type progressRequest struct {
	GoalID string   `json:"goalId"`
	Value  *float64 `json:"value"`
	Date   string   `json:"date"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.Goals(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := service.CreateGoalInput{
		Name:        req.Name,
		Type:        req.Type,
		Category:    req.Category,
		Frequency:   req.Frequency,
		CycleLength: req.CycleLength,
		CycleUnit:   req.CycleUnit,
		TargetValue: req.TargetValue,
		IsReverse:   req.IsReverse,
	}

	var fields []validation.FieldError
	start, err := parseDate(req.StartDate, h.location)
	if err != nil {
		fields = append(fields, validation.FieldError{Field: "startDate", Message: err.Error()})
	}
	in.StartDate = start

	if req.EndDate != "" {
		end, err := parseDate(req.EndDate, h.location)
		if err != nil {
			fields = append(fields, validation.FieldError{Field: "endDate", Message: err.Error()})
		} else {
			in.EndDate = &end
		}
	}

	if len(fields) > 0 {
		writeError(w, r, &service.ValidationError{Fields: fields})
		return
	}

	goal, err := h.goalService.Create(r.Context(), ctxkeys.UserID(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("goal created", "user_id", goal.UserID, "goal_id", goal.ID, "frequency", goal.Frequency)
	render.JSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Detail(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.Goal(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, goal)
}

// RecordProgress serves both POST /app/goals/{id}/progress and POST /app/progress;
// the latter names the goal in the body.
func (h *GoalHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goalID := r.PathValue("id")
	if goalID == "" {
		goalID = req.GoalID
	}
	if goalID == "" {
		writeError(w, r, &service.ValidationError{Fields: []validation.FieldError{{Field: "goalId", Message: "is required"}}})
		return
	}
	if req.Value == nil {
		writeError(w, r, &service.ValidationError{Fields: []validation.FieldError{{Field: "value", Message: "is required"}}})
		return
	}

	date, err := parseDate(req.Date, h.location)
	if err != nil {
		writeError(w, r, &service.ValidationError{Fields: []validation.FieldError{{Field: "date", Message: err.Error()}}})
		return
	}

	progress, err := h.goalService.RecordProgress(r.Context(), ctxkeys.UserID(r.Context()), goalID, *req.Value, date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, progress)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(r.Context(), userID, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("goal deleted", "user_id", userID, "goal_id", goalID)
	render.NoContent(w)
}

func (h *GoalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.goalService.Dashboard(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, dashboard)
}

// Export streams the export document as a download, or archives it and
// returns a presigned link when an archive is configured.
func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	if h.exportService.Archived() {
		archived, err := h.exportService.Archive(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		render.JSON(w, http.StatusCreated, archived)
		return
	}

	doc, err := h.exportService.Build(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=goals-export.json")

	err = json.NewEncoder(w).Encode(doc)
	if err != nil {
		slog.Error("failed to encode export", "error", err, "user_id", userID)
	}
}
