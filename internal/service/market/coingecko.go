package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	"Traxor/pkg/cache"
	"Traxor/pkg/config"
	xhttp "Traxor/pkg/http"
	applogger "Traxor/pkg/logger"

	"github.com/shopspring/decimal"
)

const opPrice = "price"

// CoinGecko looks prices up on a CoinGecko-compatible /simple/price API.
// Lookups are cached; failures fall back to the default price table.
type CoinGecko struct {
	http    *xhttp.Client
	baseURL string
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

var _ domrepo.PriceLookup = (*CoinGecko)(nil)

func NewCoinGecko(
	cfg config.MarketConfig,
	c cache.Service,
	m domrepo.Metrics,
	l *applogger.Logger,
	opts ...xhttp.ClientOption,
) *CoinGecko {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}, opts...)
	return &CoinGecko{
		http:    xhttp.NewClient(opts...),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cache:   c,
		ttl:     cfg.CacheTTL,
		metrics: m,
		log:     l.With(applogger.String("component", "market")),
		now:     time.Now,
	}
}

type simplePrice map[string]map[string]decimal.Decimal

// Quote returns a live price when it can and a default one otherwise.
// ErrPriceUnavailable means neither exists for symbol.
func (g *CoinGecko) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var q models.Quote
	if err := g.cache.Get(ctx, cacheKey(symbol), &q); err == nil {
		return q, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		g.log.Warn("price cache read failed", applogger.String("symbol", symbol), applogger.Error(err))
	}

	id, ok := CoinIDs[symbol]
	if !ok {
		return g.fallback(symbol)
	}

	prices, err := g.fetch(ctx, id)
	if err == nil {
		if p, ok := prices[id]["usd"]; ok && p.IsPositive() {
			q = models.NewQuote(symbol, p, true, g.now())
			g.store(ctx, q)
			return q, nil
		}
		err = fmt.Errorf("%w: no usd price for %s", models.ErrMalformedResponse, id)
	}

	g.metrics.RecordUpstreamError(opPrice, errorKind(err))
	g.log.Warn("live price lookup failed", applogger.String("symbol", symbol), applogger.Error(err))
	return g.fallback(symbol)
}

// Warm refreshes the cache for symbols with one batched request.
func (g *CoinGecko) Warm(ctx context.Context, symbols []string) (int, error) {
	ids := make([]string, 0, len(symbols))
	byID := make(map[string]string, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if id, ok := CoinIDs[s]; ok {
			ids = append(ids, id)
			byID[id] = s
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	prices, err := g.fetch(ctx, ids...)
	if err != nil {
		g.metrics.RecordUpstreamError(opPrice, errorKind(err))
		return 0, err
	}

	warmed := 0
	now := g.now()
	for id, cur := range prices {
		sym, ok := byID[id]
		p, has := cur["usd"]
		if !ok || !has || !p.IsPositive() {
			continue
		}
		g.store(ctx, models.NewQuote(sym, p, true, now))
		warmed++
	}
	return warmed, nil
}

func (g *CoinGecko) fetch(ctx context.Context, ids ...string) (simplePrice, error) {
	start := time.Now()
	defer func() { g.metrics.ObserveUpstream(opPrice, time.Since(start)) }()

	var out simplePrice
	err := g.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    g.baseURL + "/simple/price",
		QueryParams: map[string][]string{
			"ids":           {strings.Join(ids, ",")},
			"vs_currencies": {"usd"},
		},
		Headers: map[string]string{"Accept": "application/json"},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *CoinGecko) store(ctx context.Context, q models.Quote) {
	if err := g.cache.Set(ctx, cacheKey(q.Symbol), q, g.ttl); err != nil {
		g.log.Warn("price cache write failed", applogger.String("symbol", q.Symbol), applogger.Error(err))
	}
}

func (g *CoinGecko) fallback(symbol string) (models.Quote, error) {
	if p, ok := DefaultPrice(symbol); ok {
		return models.NewQuote(symbol, p, false, g.now()), nil
	}
	return models.Quote{Symbol: symbol}, models.ErrPriceUnavailable
}

func cacheKey(symbol string) string {
	return cache.GenerateKey("price", symbol)
}

func errorKind(err error) string {
	var se *xhttp.StatusError
	switch {
	case errors.As(err, &se):
		return "status"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, models.ErrMalformedResponse):
		return "malformed"
	default:
		return "transport"
	}
}
