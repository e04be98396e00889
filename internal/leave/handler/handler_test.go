package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgnet/internal/events"
	"orgnet/internal/leave"
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

type stubValidator struct {
	identities map[string]*middleware.Claims
}

func (v stubValidator) ValidateToken(token string) (*middleware.Claims, error) {
	claims, ok := v.identities[token]
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "bad token")
	}
	return claims, nil
}

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pub := events.NewPublisher(events.NewInMemoryStore())
	svc := leave.NewService(leave.NewInMemoryStore(), leave.NewInMemoryHolidayStore(), leave.NewInMemoryAttendanceStore(), pub)
	h := New(svc, logger, stubValidator{identities: map[string]*middleware.Claims{
		"boss":  {Principal: "0xboss", Roles: id.Roles{id.RoleApprover}},
		"alice": {Principal: "0xalice"},
	}})

	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLeaveLifecycle(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/leaves", "alice", map[string]string{
		"start_date": "2099-07-01",
		"end_date":   "2099-07-05",
		"type":       "vacation",
		"reason":     "rest",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	rec = doJSON(t, router, http.MethodGet, "/leaves/pending", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	// A caller without the approver role cannot decide.
	rec = doJSON(t, router, http.MethodPost, "/leaves/1/status", "alice", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/leaves/1/status", "boss", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"approved"`)

	rec = doJSON(t, router, http.MethodPost, "/leaves/1/status", "boss", map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeaveBadDates(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/leaves", "alice", map[string]string{
		"start_date": "July 1st",
		"end_date":   "2099-07-05",
		"type":       "vacation",
		"reason":     "rest",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/leaves", "alice", map[string]string{
		"start_date": "2099-07-05",
		"end_date":   "2099-07-01",
		"type":       "vacation",
		"reason":     "rest",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestHolidaysAndAttendance(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/holidays", "alice",
		map[string]string{"date": "2099-12-25", "description": "Christmas"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/holidays", "boss",
		map[string]string{"date": "2099-12-25", "description": "Christmas"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/holidays", "boss",
		map[string]string{"date": "2099-12-25", "description": "Again"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/holidays", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var holidays []struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &holidays))
	require.Len(t, holidays, 1)
	assert.Equal(t, "2099-12-25", holidays[0].Date)

	rec = doJSON(t, router, http.MethodPost, "/attendance", "alice",
		map[string]string{"date": "2099-06-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/attendance", "alice",
		map[string]string{"date": "2099-06-01"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/me/attendance?from=2099-06-01&to=2099-06-30", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var marks []struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &marks))
	require.Len(t, marks, 1)
}
