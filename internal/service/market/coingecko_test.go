package market

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"Traxor/internal/domain/models"
	"Traxor/pkg/cache"
	"Traxor/pkg/config"
	applogger "Traxor/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetrics struct {
	mu     sync.Mutex
	errors map[string]int
	calls  int
}

func (m *fakeMetrics) RecordSignal(string, string) {}
func (m *fakeMetrics) ObserveUpstream(string, time.Duration) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}
func (m *fakeMetrics) RecordUpstreamError(op, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errors == nil {
		m.errors = map[string]int{}
	}
	m.errors[op+"/"+kind]++
}
func (m *fakeMetrics) ObserveFieldsExtracted(int) {}
func (m *fakeMetrics) RecordProxyRequest(int)     {}

func newTestLookup(t *testing.T, h http.HandlerFunc) (*CoinGecko, *fakeMetrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })

	cfg := config.Default().Market
	cfg.BaseURL = srv.URL
	cfg.Timeout = time.Second

	m := &fakeMetrics{}
	return NewCoinGecko(cfg, mem, m, applogger.Nop()), m
}

func TestQuoteLiveAndCached(t *testing.T) {
	var hits atomic.Int32
	g, m := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = io.WriteString(w, `{"bitcoin":{"usd":110250.5}}`)
	})

	q, err := g.Quote(context.Background(), "btc")
	require.NoError(t, err)
	assert.True(t, q.Live)
	assert.Equal(t, "BTC", q.Symbol)
	assert.Equal(t, "$110,250.50", q.Formatted)

	again, err := g.Quote(context.Background(), "BTC")
	require.NoError(t, err)
	assert.True(t, again.Price.Equal(q.Price))
	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, 1, m.calls)
}

func TestQuoteFallsBackToDefaults(t *testing.T) {
	g, m := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	q, err := g.Quote(context.Background(), "ETH")
	require.NoError(t, err)
	assert.False(t, q.Live)
	assert.True(t, q.Price.Equal(decimal.RequireFromString("2740.4")))
	assert.Equal(t, "$2,740.40", q.Formatted)
	assert.Equal(t, 1, m.errors["price/status"])
}

func TestQuoteMissingPriceIsMalformed(t *testing.T) {
	g, m := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	q, err := g.Quote(context.Background(), "SOL")
	require.NoError(t, err)
	assert.False(t, q.Live)
	assert.Equal(t, "$158.63", q.Formatted)
	assert.Equal(t, 1, m.errors["price/malformed"])
}

func TestQuoteUnknownSymbol(t *testing.T) {
	g, _ := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown symbols must not reach the upstream")
	})

	q, err := g.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, models.ErrPriceUnavailable)
	assert.Equal(t, "NOPE", q.Symbol)
}

func TestQuoteKnownIDWithoutDefault(t *testing.T) {
	g, _ := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.Quote(context.Background(), "DOGE")
	assert.ErrorIs(t, err, models.ErrPriceUnavailable)
}

func TestWarmBatchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	g, _ := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		assert.Equal(t, "bitcoin,solana", r.URL.Query().Get("ids"))
		_, _ = io.WriteString(w, `{"bitcoin":{"usd":100000},"solana":{"usd":150}}`)
	})

	n, err := g.Warm(context.Background(), []string{"BTC", "sol", "UNKNOWN"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	q, err := g.Quote(context.Background(), "SOL")
	require.NoError(t, err)
	assert.True(t, q.Live)
	assert.Equal(t, "$150.00", q.Formatted)
	assert.EqualValues(t, 1, hits.Load())
}
