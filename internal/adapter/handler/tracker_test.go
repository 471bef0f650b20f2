package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reactions/errors"
	"github.com/johnquangdev/meeting-reactions/internal/adapter/repository"
	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/export"
	trackerUsecase "github.com/johnquangdev/meeting-reactions/internal/usecase/tracker"
	"github.com/johnquangdev/meeting-reactions/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-reactions/pkg/validator"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	now := time.Date(2025, 3, 4, 0, 30, 0, 0, time.UTC)
	repo := repository.NewStateRepository(cache.NewMemoryStore())
	svc, err := trackerUsecase.NewTrackerService(repo, entities.DefaultCategories, time.UTC,
		trackerUsecase.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Store.Backend = config.StoreMemory

	e := echo.New()
	e.Validator = pkgvalidator.New()
	NewRouter(cfg, NewTrackerHandler(svc, zap.NewNop(), "UTC")).Setup(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	rec, _ := do(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"memory"`)
}

func TestClock(t *testing.T) {
	e := newTestServer(t)
	rec, env := do(t, e, http.MethodGet, "/v1/clock", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var clock struct {
		Full       string `json:"full"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &clock))
	assert.Equal(t, "2025-03-04 00:30:00", clock.Full)
	assert.Len(t, clock.Categories, len(entities.DefaultCategories))
}

func TestParticipantFlow(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodPost, "/v1/records/reactions", `{"name":"Thumbs Up"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_PARTICIPANT_NOT_SELECTED), env.Code)

	rec, _ = do(t, e, http.MethodPost, "/v1/participants", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/v1/participants", `{"name":"Alice","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, e, http.MethodPost, "/v1/participants", `{"name":"Alice Kim"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Name      string `json:"name"`
		ContactID string `json:"contact_id"`
		Selected  bool   `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Alice Kim", created.Name)
	assert.Equal(t, entities.PlaceholderContactID, created.ContactID)
	assert.True(t, created.Selected)

	rec, env = do(t, e, http.MethodPost, "/v1/participants", `{"name":"Alice Kim"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_ALREADY_EXISTS), env.Code)

	rec, _ = do(t, e, http.MethodPost, "/v1/participants", `{"name":"Bob","email":"bob@corp.io"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = do(t, e, http.MethodPut, "/v1/participants/selected", `{"name":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Selected string `json:"selected"`
		Total    int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, "Bob", list.Selected)
	assert.Equal(t, 2, list.Total)

	rec, _ = do(t, e, http.MethodPut, "/v1/participants/selected", `{"name":"Carol"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var failure struct {
		Details   map[string]string `json:"details"`
		Timestamp string            `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	assert.Equal(t, "Carol", failure.Details["participant"])
	_, err := time.Parse(time.RFC3339, failure.Timestamp)
	assert.NoError(t, err)

	rec, _ = do(t, e, http.MethodDelete, "/v1/participants/Alice%20Kim", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, e, http.MethodDelete, "/v1/participants/Alice%20Kim", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteParticipant_PercentInName(t *testing.T) {
	e := newTestServer(t)

	rec, _ := do(t, e, http.MethodPost, "/v1/participants", `{"name":"AA"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/v1/participants", `{"name":"A%41"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, e, http.MethodDelete, "/v1/participants/A%2541", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"deleted":"A%41"`)

	rec, env = do(t, e, http.MethodGet, "/v1/participants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Participants []struct {
			Name string `json:"name"`
		} `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Participants, 1)
	assert.Equal(t, "AA", list.Participants[0].Name)
}

func TestRecordsAndExports(t *testing.T) {
	e := newTestServer(t)

	rec, _ := do(t, e, http.MethodGet, "/v1/export/spreadsheet", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	do(t, e, http.MethodPost, "/v1/participants", `{"name":"Alice","email":"alice@corp.io"}`)
	rec, env := do(t, e, http.MethodPost, "/v1/records/reactions", `{"name":"Thumbs Up"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var reaction struct {
		Type        string `json:"type"`
		Emoji       string `json:"emoji"`
		Participant string `json:"participant"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reaction))
	assert.Equal(t, "reaction", reaction.Type)
	assert.Equal(t, "👍", reaction.Emoji)
	assert.Equal(t, "Alice", reaction.Participant)

	rec, _ = do(t, e, http.MethodPost, "/v1/records/dividers", `{"meeting_id":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/v1/records/dividers", `{"meeting_id":"Standup"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/v1/records", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Total   int `json:"total"`
		Records []struct {
			Type string `json:"type"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Equal(t, 2, history.Total)
	assert.Equal(t, "meeting-divider", history.Records[0].Type)

	rec, env = do(t, e, http.MethodGet, "/v1/export/pivot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pivot struct {
		Tables []struct {
			MeetingLabel string     `json:"meeting_label"`
			Rows         [][]string `json:"rows"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pivot))
	require.Len(t, pivot.Tables, 1)
	// reactions before the first divider take its label
	assert.Equal(t, "Standup", pivot.Tables[0].MeetingLabel)
	assert.Equal(t, []string{"Standup", "alice@corp.io", "Alice", "00:30:00"}, pivot.Tables[0].Rows[0][:4])

	rec, _ = do(t, e, http.MethodGet, "/v1/export/spreadsheet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "meeting-records-2025-03-04.xlsx")

	rec, _ = do(t, e, http.MethodGet, "/v1/export/pivot?format=xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "meeting-records-2025-03-04.xlsx")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))

	rec, env = do(t, e, http.MethodGet, "/v1/export/pivot?format=csv", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_PAYLOAD), env.Code)

	rec, _ = do(t, e, http.MethodGet, "/v1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "meet-records-2025-03-04.json")
	raw := rec.Body.String()

	rec, _ = do(t, e, http.MethodPost, "/v1/export/archive", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, e, http.MethodDelete, "/v1/records", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, e, http.MethodPost, "/v1/import", raw)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Equal(t, 2, history.Total)

	rec, env = do(t, e, http.MethodPost, "/v1/import", `{"records":[{"type":"meeting-divider","time":"x"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_IMPORT_FAILED), env.Code)
}

func TestTimer(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodGet, "/v1/timer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"running":false`)

	rec, _ = do(t, e, http.MethodPost, "/v1/timer/stop", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(t, e, http.MethodPost, "/v1/timer/start", `{"meeting_id":"Weekly"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"running":true`)

	rec, env = do(t, e, http.MethodPost, "/v1/timer/start", `{"meeting_id":"Weekly"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_TIMER_INVALID_STATE), env.Code)

	rec, env = do(t, e, http.MethodPost, "/v1/timer/stop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"elapsed":"00:00:00"`)
}
