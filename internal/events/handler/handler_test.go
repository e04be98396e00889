package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgnet/internal/events"
)

func newTestRouter(t *testing.T, emitted int) http.Handler {
	t.Helper()
	pub := events.NewPublisher(events.NewInMemoryStore())
	for i := 0; i < emitted; i++ {
		_, err := pub.Emit(context.Background(), events.Event{
			Registry:  "certificate",
			Action:    events.ActionCertificateIssued,
			RecordID:  uint64(i + 1),
			Principal: "0xissuer",
		})
		require.NoError(t, err)
	}

	r := chi.NewRouter()
	New(pub, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func listSeqs(t *testing.T, router http.Handler, query string) []uint64 {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events"+query, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var trail []struct {
		Seq uint64 `json:"seq"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trail))
	seqs := make([]uint64, 0, len(trail))
	for _, e := range trail {
		seqs = append(seqs, e.Seq)
	}
	return seqs
}

func TestListAfterCursor(t *testing.T) {
	router := newTestRouter(t, 5)

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, listSeqs(t, router, ""))
	assert.Equal(t, []uint64{3, 4, 5}, listSeqs(t, router, "?after=2"))
	assert.Equal(t, []uint64{3, 4}, listSeqs(t, router, "?after=2&limit=2"))
	assert.Empty(t, listSeqs(t, router, "?after="+strconv.Itoa(99)))
}

func TestListBadParams(t *testing.T) {
	router := newTestRouter(t, 1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?after=minus-one", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
