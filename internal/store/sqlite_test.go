package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testRequest(dest string) model.PlanningRequest {
	return model.PlanningRequest{
		Destination: dest,
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-03",
		Personas:    []model.Persona{model.PersonaFoodie},
	}
}

func TestSQLite_CreateAndGetSession(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateSession(ctx, testRequest("Tokyo"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusPending, created.Status)

	got, err := st.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Tokyo", got.Request.Destination)
	assert.Equal(t, []model.Persona{model.PersonaFoodie}, got.Request.Personas)
	assert.Nil(t, got.Result)
}

func TestSQLite_CreateSession_KeepsProvidedID(t *testing.T) {
	st := newTestSQLiteStore(t)

	req := testRequest("Osaka")
	req.SessionID = "fixed-id"
	created, err := st.CreateSession(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", created.ID)
}

func TestSQLite_GetSession_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetSession(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestSQLite_UpdateSessionStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateSession(ctx, testRequest("Kyoto"))
	require.NoError(t, err)

	require.NoError(t, st.UpdateSessionStatus(ctx, created.ID, model.StatusScrapingComplete))

	got, err := st.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScrapingComplete, got.Status)
	assert.False(t, got.UpdatedAt.Before(created.UpdatedAt))
}

func TestSQLite_UpdateSessionStatus_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateSessionStatus(context.Background(), "missing", model.StatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestSQLite_SetSessionResult(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateSession(ctx, testRequest("Seoul"))
	require.NoError(t, err)

	result := json.RawMessage(`{"total_scraped":12,"status":"completed"}`)
	require.NoError(t, st.SetSessionResult(ctx, created.ID, model.StatusCompleted, result))

	got, err := st.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.JSONEq(t, string(result), string(got.Result))
}

func TestSQLite_ListSessions_FilterAndLimit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateSession(ctx, testRequest("Tokyo"))
	require.NoError(t, err)
	b, err := st.CreateSession(ctx, testRequest("Osaka"))
	require.NoError(t, err)
	_, err = st.CreateSession(ctx, testRequest("Kyoto"))
	require.NoError(t, err)

	require.NoError(t, st.UpdateSessionStatus(ctx, a.ID, model.StatusFailed))
	require.NoError(t, st.UpdateSessionStatus(ctx, b.ID, model.StatusFailed))

	failed, err := st.ListSessions(ctx, SessionFilter{Status: model.StatusFailed})
	require.NoError(t, err)
	assert.Len(t, failed, 2)
	for _, sess := range failed {
		assert.Equal(t, model.StatusFailed, sess.Status)
	}

	limited, err := st.ListSessions(ctx, SessionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := st.ListSessions(ctx, SessionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLite_ListSessions_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	sessions, err := st.ListSessions(context.Background(), SessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
