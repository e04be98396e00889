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
	"orgnet/internal/payment"
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// stubValidator maps tokens straight to identities so tests can switch
// callers per request.
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

func newTestRouter() (http.Handler, *payment.InMemoryTreasury) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	treasury := payment.NewInMemoryTreasury()
	pub := events.NewPublisher(events.NewInMemoryStore())
	svc := payment.NewService(payment.NewInMemoryStore(), treasury, pub)
	h := New(svc, logger, stubValidator{identities: map[string]*middleware.Claims{
		"boss":  {Principal: "0xboss", Roles: id.Roles{id.RoleApprover}},
		"alice": {Principal: "0xalice"},
	}})

	r := chi.NewRouter()
	h.Register(r)
	return r, treasury
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

func createPayment(t *testing.T, router http.Handler, amount uint64) uint64 {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/payments", "boss", map[string]any{
		"employee_name":    "Alice",
		"employee_address": "0xalice",
		"description":      "june salary",
		"amount":           amount,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func TestCreateForbiddenWithoutApproverRole(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/payments", "alice", map[string]any{
		"employee_name":    "Alice",
		"employee_address": "0xalice",
		"description":      "self raise",
		"amount":           1000,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestProcessHappyPath(t *testing.T) {
	router, treasury := newTestRouter()
	paymentID := createPayment(t, router, 1000)

	rec := doJSON(t, router, http.MethodPost, "/payments/1/process", "boss",
		map[string]any{"attached_value": 1000})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"paid"`)
	assert.EqualValues(t, 1000, treasury.Balance("0xalice"))

	rec = doJSON(t, router, http.MethodGet, "/me/payments", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []struct {
		ID     uint64 `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, paymentID, mine[0].ID)
	assert.Equal(t, "paid", mine[0].Status)
}

func TestProcessInsufficientValue(t *testing.T) {
	router, treasury := newTestRouter()
	createPayment(t, router, 1000)

	rec := doJSON(t, router, http.MethodPost, "/payments/1/process", "boss",
		map[string]any{"attached_value": 999})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_funds")
	assert.Zero(t, treasury.Balance("0xalice"))

	rec = doJSON(t, router, http.MethodGet, "/payments/1", "boss", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unpaid"`)
}

func TestProcessTwiceConflicts(t *testing.T) {
	router, _ := newTestRouter()
	createPayment(t, router, 500)

	rec := doJSON(t, router, http.MethodPost, "/payments/1/process", "boss",
		map[string]any{"attached_value": 500})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/payments/1/process", "boss",
		map[string]any{"attached_value": 500})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_transition")
}

func TestReadsRequireToken(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/payments/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
