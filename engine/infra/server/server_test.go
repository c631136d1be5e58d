package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fretforge/fretforge/engine/configurator"
	"github.com/fretforge/fretforge/engine/core"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	tabs map[string][]core.Row
}

func (s *stubSource) Rows(_ context.Context, tab string) ([]core.Row, error) {
	return s.tabs[tab], nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	source := &stubSource{tabs: map[string][]core.Row{
		"Products": {
			core.NewRow("MB-150", "Maplebrook 150", "Maplebrook", 1000, nil, nil, nil),
		},
		"Options": {
			core.NewRow("MB-150", "Tone Ring", "Brass", 0, "add", "true", 1, nil, nil, nil),
			core.NewRow("MB-150", "Tone Ring", "Bronze", 200, "add", nil, 2, nil, nil, nil),
			core.NewRow("MB-150", "Engraving", "Custom", 75, "add", nil, 1, nil, "Tone Ring", "Bronze"),
		},
	}}
	cfg := config.Default()
	service := configurator.NewService(source, cfg.Sheets, nil)
	return NewServer(cfg, logger.NewForTests(), service)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Run("Should report ok", func(t *testing.T) {
		rec := doRequest(t, newTestServer(t), http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Should return the settled default view", func(t *testing.T) {
		rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/v0/products/MB-150", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var view configurator.View
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Maplebrook 150", view.Title)
		assert.Equal(t, "1000.00", view.Quote.Total)
		assert.Equal(t, "Brass", view.Selection["tonering"])
	})
	t.Run("Should answer 404 problem for an unknown model", func(t *testing.T) {
		rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/v0/products/ZZ-999", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		var problem map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		assert.Equal(t, "product_not_found", problem["code"])
	})
	t.Run("Should echo a request id header", func(t *testing.T) {
		rec := doRequest(t, newTestServer(t), http.MethodGet, "/healthz", "")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestConfigure(t *testing.T) {
	t.Run("Should settle posted choices", func(t *testing.T) {
		body := `{"choices":[{"group":"Tone Ring","option":"Bronze"}]}`
		rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v0/products/MB-150/configure", body)
		require.Equal(t, http.StatusOK, rec.Code)
		var view configurator.View
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Bronze", view.Selection["tonering"])
		assert.Equal(t, "Custom", view.Selection["engraving"])
		assert.Equal(t, "1275.00", view.Quote.Total)
	})
	t.Run("Should reject a malformed body", func(t *testing.T) {
		rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v0/products/MB-150/configure", `{"choices":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var problem map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		assert.Equal(t, "invalid_body", problem["code"])
	})
	t.Run("Should reject choices missing required fields", func(t *testing.T) {
		body := `{"choices":[{"group":"Tone Ring"}]}`
		rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v0/products/MB-150/configure", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQuoteRequest(t *testing.T) {
	t.Run("Should accept and return the projection", func(t *testing.T) {
		body := `{"choices":[{"group":"Tone Ring","option":"Bronze"}]}`
		rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v0/products/MB-150/quote-request", body)
		require.Equal(t, http.StatusAccepted, rec.Code)
		var summary map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, "MB-150", summary["model"])
		assert.Equal(t, "1275.00", summary["total"])
		assert.NotEmpty(t, summary["quote_id"])
	})
}
