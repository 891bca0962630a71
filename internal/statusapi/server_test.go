package statusapi_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/resolverd/internal/statusapi"
)

func TestHealth(t *testing.T) {
	s := statusapi.New(":0", slog.New(slog.NewTextHandler(discardWriter{}, nil)),
		func() (int, uint64, uint64) { return 0, 0, 0 },
		func() statusapi.QueryStats { return statusapi.QueryStats{} },
	)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp statusapi.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestStats(t *testing.T) {
	s := statusapi.New(":0", slog.New(slog.NewTextHandler(discardWriter{}, nil)),
		func() (int, uint64, uint64) { return 3, 7, 2 },
		func() statusapi.QueryStats { return statusapi.QueryStats{CacheHits: 7, Forwards: 5} },
	)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp statusapi.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Cache.Entries)
	assert.Equal(t, uint64(7), resp.Cache.Hits)
	assert.Equal(t, uint64(5), resp.Queries.Forwards)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
