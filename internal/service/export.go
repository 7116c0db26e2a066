package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/goaltrack/internal/metrics"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/storage"
)

// Export is the downloadable copy of a user's goals with their full history.
type Export struct {
	ExportedAt time.Time     `json:"exportedAt"`
	UserID     string        `json:"userId"`
	Goals      []*model.Goal `json:"goals"`
}

// ArchivedExport points at an export stored in the archive.
type ArchivedExport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresIn string    `json:"expiresIn,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ExportService struct {
	goals   *GoalService
	archive storage.Archive
	expiry  time.Duration
}

// NewExportService archives exports when archive is non-nil and streams them otherwise.
func NewExportService(goals *GoalService, archive storage.Archive, expiry time.Duration) *ExportService {
	return &ExportService{goals: goals, archive: archive, expiry: expiry}
}

func (s *ExportService) Archived() bool {
	return s.archive != nil
}

// Build collects every goal of the user with its full progress history.
func (s *ExportService) Build(ctx context.Context, userID string) (*Export, error) {
	doc, err := s.build(ctx, userID)
	if err != nil {
		return nil, err
	}

	metrics.Exports.WithLabelValues("stream").Inc()
	return doc, nil
}

func (s *ExportService) build(ctx context.Context, userID string) (*Export, error) {
	goals, err := s.goals.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, g := range goals {
		full, err := s.goals.Goal(ctx, userID, g.ID)
		if err != nil {
			return nil, err
		}
		goals[i] = full
	}

	return &Export{
		ExportedAt: s.goals.clock.Now(),
		UserID:     userID,
		Goals:      goals,
	}, nil
}

// Archive builds the export, uploads it and returns a presigned download link.
func (s *ExportService) Archive(ctx context.Context, userID string) (*ArchivedExport, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("export archive is not configured")
	}

	doc, err := s.build(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, doc.ExportedAt.UTC().Format("20060102T150405Z"))
	err = s.archive.Save(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, storageErr("archive export", err)
	}

	url, err := s.archive.PresignedURL(ctx, key)
	if err != nil {
		return nil, storageErr("presign export", err)
	}

	slog.Info("export archived", "user_id", userID, "key", key, "goals", len(doc.Goals))
	metrics.Exports.WithLabelValues("archive").Inc()

	archived := &ArchivedExport{Key: key, URL: url, CreatedAt: doc.ExportedAt}
	if s.expiry > 0 {
		archived.ExpiresIn = s.expiry.String()
	}
	return archived, nil
}
