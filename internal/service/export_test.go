package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goaltrack/internal/service"
)

type fakeArchive struct {
	saved       map[string][]byte
	contentType string
	saveErr     error
}

func (a *fakeArchive) Save(_ context.Context, key, contentType string, body io.Reader) error {
	if a.saveErr != nil {
		return a.saveErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if a.saved == nil {
		a.saved = map[string][]byte{}
	}
	a.saved[key] = b
	a.contentType = contentType
	return nil
}

func (a *fakeArchive) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://storage.example.com/" + key + "?signed=1", nil
}

func TestExport_BuildIncludesHistory(t *testing.T) {
	f := newFixture(t, wednesday)
	ctx := context.Background()

	goal, err := f.goals.Create(ctx, f.owner.ID, dailyInput("Water"))
	require.NoError(t, err)
	_, err = f.at(wednesday.AddDate(0, 0, -1)).RecordProgress(ctx, f.owner.ID, goal.ID, 1, time.Time{})
	require.NoError(t, err)
	_, err = f.goals.RecordProgress(ctx, f.owner.ID, goal.ID, 1, time.Time{})
	require.NoError(t, err)

	exports := service.NewExportService(f.goals, nil, 0)
	assert.False(t, exports.Archived())

	doc, err := exports.Build(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, doc.UserID)
	assert.True(t, wednesday.Equal(doc.ExportedAt))
	require.Len(t, doc.Goals, 1)
	assert.Len(t, doc.Goals[0].Progress, 2)

	_, err = exports.Archive(ctx, f.owner.ID)
	assert.Error(t, err)
}

func TestExport_Archive(t *testing.T) {
	f := newFixture(t, wednesday)
	ctx := context.Background()

	_, err := f.goals.Create(ctx, f.owner.ID, dailyInput("Water"))
	require.NoError(t, err)

	archive := &fakeArchive{}
	exports := service.NewExportService(f.goals, archive, time.Hour)
	assert.True(t, exports.Archived())

	archived, err := exports.Archive(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "exports/"+f.owner.ID+"/20250312T090000Z.json", archived.Key)
	assert.Contains(t, archived.URL, archived.Key)
	assert.Equal(t, "1h0m0s", archived.ExpiresIn)
	assert.Equal(t, "application/json", archive.contentType)

	var doc service.Export
	require.NoError(t, json.Unmarshal(archive.saved[archived.Key], &doc))
	require.Len(t, doc.Goals, 1)
	assert.Equal(t, "Water", doc.Goals[0].Name)
}

func TestExport_ArchiveFailure(t *testing.T) {
	f := newFixture(t, wednesday)

	exports := service.NewExportService(f.goals, &fakeArchive{saveErr: errors.New("bucket gone")}, time.Hour)

	_, err := exports.Archive(context.Background(), f.owner.ID)
	var serr *service.StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "archive export", serr.Op)
}
