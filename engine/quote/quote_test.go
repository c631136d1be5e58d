package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fretforge/fretforge/engine/catalog"
	"github.com/fretforge/fretforge/engine/core"
	"github.com/fretforge/fretforge/engine/pricing"
	"github.com/fretforge/fretforge/engine/resolver"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	products := []core.Row{
		core.NewRow("MB-150", "Maplebrook 150", "Maplebrook", 1000, 800, "Winter Sale", "true"),
	}
	options := []core.Row{
		core.NewRow("MB-150", "Tone Ring", "Brass", 0, "add", "true", 1, nil, nil, nil),
		core.NewRow("MB-150", "Tone Ring", "Bronze", 200, "add", nil, 2, nil, nil, nil),
	}
	c, err := catalog.Build("MB-150", products, options, nil)
	require.NoError(t, err)
	return c
}

func TestProject(t *testing.T) {
	t.Run("Should flatten selection with display names in order", func(t *testing.T) {
		cat := saleCatalog(t)
		eng := resolver.New(cat)
		eng.Select("Tone Ring", "Bronze")
		q := pricing.Compute(cat.Product, eng.Selection(), cat)
		s := Project(cat, eng.Selection(), q)
		require.Len(t, s.Lines, 1)
		assert.Equal(t, "Tone Ring", s.Lines[0].Group)
		assert.Equal(t, "Bronze", s.Lines[0].Option)
		assert.Equal(t, "1200.00", s.Total)
		assert.True(t, s.OnSale)
		assert.Equal(t, "1000.00", s.SaleTotal)
		assert.Equal(t, "Winter Sale", s.SaleLabel)
		assert.NotEmpty(t, s.QuoteID)
	})
	t.Run("Should generate distinct quote ids", func(t *testing.T) {
		cat := saleCatalog(t)
		eng := resolver.New(cat)
		q := pricing.Compute(cat.Product, eng.Selection(), cat)
		a := Project(cat, eng.Selection(), q)
		b := Project(cat, eng.Selection(), q)
		assert.NotEqual(t, a.QuoteID, b.QuoteID)
	})
}

func TestSummary_Render(t *testing.T) {
	t.Run("Should render a readable plain-text body", func(t *testing.T) {
		s := Summary{
			QuoteID:   "q-123",
			Model:     "MB-150",
			Title:     "Maplebrook 150",
			Series:    "Maplebrook",
			Lines:     []Line{{Group: "Tone Ring", Option: "Bronze"}},
			Total:     "1200.00",
			SaleTotal: "1000.00",
			SaleLabel: "Winter Sale",
			OnSale:    true,
		}
		body, err := s.Render()
		require.NoError(t, err)
		assert.Contains(t, body, "Quote q-123")
		assert.Contains(t, body, "Tone Ring: Bronze")
		assert.Contains(t, body, "Total: $1200.00")
		assert.Contains(t, body, "Winter Sale: $1000.00")
	})
	t.Run("Should omit sale lines when not on sale", func(t *testing.T) {
		s := Summary{QuoteID: "q-1", Model: "MB-150", Title: "Maplebrook 150", Total: "1000.00"}
		body, err := s.Render()
		require.NoError(t, err)
		assert.Contains(t, body, "Total: $1000.00")
		assert.NotContains(t, body, "Sale")
	})
}

func TestNotifier_Dispatch(t *testing.T) {
	t.Run("Should post the rendered summary to the webhook", func(t *testing.T) {
		var got notifyPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()
		n := NewNotifier(config.NotifyConfig{
			WebhookURL: srv.URL,
			From:       "shop@example.com",
			Recipient:  "orders@example.com",
			Timeout:    time.Second,
		})
		s := Summary{QuoteID: "q-9", Model: "MB-150", Title: "Maplebrook 150", Total: "1000.00"}
		require.NoError(t, n.Dispatch(context.Background(), s))
		assert.Contains(t, got.Subject, "MB-150")
		assert.Contains(t, got.Body, "Quote q-9")
		assert.Equal(t, "orders@example.com", got.To)
		assert.Equal(t, "q-9", got.Summary.QuoteID)
	})
	t.Run("Should be a no-op without a webhook", func(t *testing.T) {
		n := NewNotifier(config.NotifyConfig{})
		assert.False(t, n.Enabled())
		assert.NoError(t, n.Dispatch(context.Background(), Summary{QuoteID: "q-1"}))
	})
	t.Run("Should surface webhook rejections", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()
		n := NewNotifier(config.NotifyConfig{WebhookURL: srv.URL, Timeout: time.Second})
		err := n.Dispatch(context.Background(), Summary{QuoteID: "q-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}
