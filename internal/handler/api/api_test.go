package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "Traxor/internal/domain/models"
	"Traxor/internal/repository"
	xhttp "Traxor/pkg/http"
	xlogger "Traxor/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMetrics struct{ proxy []int }

func (m *nopMetrics) RecordSignal(string, string)           {}
func (m *nopMetrics) ObserveUpstream(string, time.Duration) {}
func (m *nopMetrics) RecordUpstreamError(string, string)    {}
func (m *nopMetrics) ObserveFieldsExtracted(int)            {}
func (m *nopMetrics) RecordProxyRequest(status int)         { m.proxy = append(m.proxy, status) }

type stubService struct {
	store *repository.MemorySignalStore
	got   string
}

func (s *stubService) Submit(_ context.Context, query string) *models.SignalResponse {
	s.got = query
	return s.store.Save(&models.SignalResponse{ID: uuid.NewString(), Query: query, Asset: "BTC", Mode: models.ModeFallback})
}

type stubResolver struct{}

func (stubResolver) Resolve(q string) string {
	if strings.Contains(strings.ToLower(q), "bitcoin") {
		return "BTC"
	}
	return "SOL"
}

type stubPrices struct{}

func (stubPrices) Quote(_ context.Context, symbol string) (models.Quote, error) {
	if symbol == "BTC" {
		return models.NewQuote("BTC", decimal.NewFromInt(107607), false, time.Now()), nil
	}
	return models.Quote{Symbol: symbol}, models.ErrPriceUnavailable
}

type forwarderFunc func(ctx context.Context, body []byte) (int, []byte, error)

func (f forwarderFunc) Forward(ctx context.Context, body []byte) (int, []byte, error) {
	return f(ctx, body)
}

func newServer(t *testing.T, handlers ...xhttp.Handler) *xhttp.Server {
	t.Helper()
	return xhttp.NewServer(xlogger.Nop(), handlers, xhttp.WithCORS(true, ProxyPath))
}

func do(s *xhttp.Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestSignalsFlow(t *testing.T) {
	store := repository.NewMemorySignalStore(10)
	svc := &stubService{store: store}
	s := newServer(t, NewSignalsEchoHandler(xlogger.Nop(), svc, stubResolver{}, store))

	rec := do(s, http.MethodPost, "/api/signals", `{"query":"  What's the BTC setup?  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "What's the BTC setup?", svc.got)

	var created models.SignalResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Equal(t, "BTC", created.Asset)

	rec = do(s, http.MethodGet, "/api/signals/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodPost, "/api/signals/"+created.ID+"/bookmark", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled models.SignalResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &toggled))
	assert.True(t, toggled.Bookmarked)

	rec = do(s, http.MethodGet, "/api/signals/bookmarked", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list xhttp.ListDataResponse
	list.Rows = &[]models.SignalResponse{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.EqualValues(t, 1, list.Total)

	rec = do(s, http.MethodGet, "/api/signals", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignalsListLimit(t *testing.T) {
	store := repository.NewMemorySignalStore(10)
	svc := &stubService{store: store}
	s := newServer(t, NewSignalsEchoHandler(xlogger.Nop(), svc, stubResolver{}, store))
	for _, q := range []string{"one", "two", "three"} {
		require.Equal(t, http.StatusOK, do(s, http.MethodPost, "/api/signals", `{"query":"`+q+`"}`).Code)
	}

	rec := do(s, http.MethodGet, "/api/signals?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := []models.SignalResponse{}
	list := xhttp.ListDataResponse{Rows: &rows}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.EqualValues(t, 3, list.Total)
	require.Len(t, rows, 2)
	assert.Equal(t, "three", rows[0].Query)
	assert.Equal(t, "two", rows[1].Query)
}

func TestSignalsValidation(t *testing.T) {
	store := repository.NewMemorySignalStore(10)
	s := newServer(t, NewSignalsEchoHandler(xlogger.Nop(), &stubService{store: store}, stubResolver{}, store))

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"   "}`, `{"query":` + `"` + strings.Repeat("a", 501) + `"}`} {
		rec := do(s, http.MethodPost, "/api/signals", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, http.StatusBadRequest, decodeEnvelope(t, rec).Status)
	}

	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/api/signals/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/signals/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/api/signals/"+uuid.NewString()+"/bookmark", "").Code)
}

func TestResolve(t *testing.T) {
	store := repository.NewMemorySignalStore(10)
	s := newServer(t, NewSignalsEchoHandler(xlogger.Nop(), &stubService{store: store}, stubResolver{}, store))

	rec := do(s, http.MethodGet, "/api/resolve?q=tell+me+about+bitcoin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.ResolveResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
	assert.Equal(t, "BTC", res.Asset)
	assert.Equal(t, "tell me about bitcoin", res.Query)

	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/api/resolve", "").Code)
}

func TestPrices(t *testing.T) {
	s := newServer(t, NewPricesEchoHandler(stubPrices{}))

	rec := do(s, http.MethodGet, "/api/prices/btc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var q models.Quote
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &q))
	assert.Equal(t, "$107,607.00", q.Formatted)
	assert.False(t, q.Live)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/prices/NOPE", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/api/prices/b1", "").Code)
}

func TestHealth(t *testing.T) {
	s := newServer(t, NewHealthHandler(models.ModeMock))
	rec := do(s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var h models.HealthResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &h))
	assert.Equal(t, models.HealthResponse{Status: "ok", Mode: "mock"}, h)
}

func TestGlobalPreflight(t *testing.T) {
	store := repository.NewMemorySignalStore(10)
	s := newServer(t, NewSignalsEchoHandler(xlogger.Nop(), &stubService{store: store}, stubResolver{}, store))
	rec := do(s, http.MethodOptions, "/api/signals", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
