package usecase

import (
	"context"
	"errors"
	"time"

	"Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	domsvc "Traxor/internal/domain/service"
	"Traxor/internal/services/signal"
	applogger "Traxor/pkg/logger"

	"github.com/google/uuid"
)

const opChat = "chat"

// SignalOrchestrator runs one query through resolve, price, prompt, complete
// and parse. Every failure ends in a fully populated fallback signal.
type SignalOrchestrator struct {
	resolver  *signal.Resolver
	parser    *signal.Parser
	picker    *signal.SourcePicker
	prices    domrepo.PriceLookup
	completer domrepo.ChatCompleter
	store     domrepo.SignalStore
	publisher domrepo.SignalPublisher
	metrics   domrepo.Metrics
	log       *applogger.Logger

	mode    models.Mode
	timeout time.Duration
	prompt  signal.PromptOptions
	now     func() time.Time
	newID   func() string
}

var _ domsvc.SignalService = (*SignalOrchestrator)(nil)

type OrchestratorOption func(*SignalOrchestrator)

// WithMode labels successful replies; fallbacks are always ModeFallback.
func WithMode(m models.Mode) OrchestratorOption {
	return func(o *SignalOrchestrator) { o.mode = m }
}

func WithUpstreamTimeout(d time.Duration) OrchestratorOption {
	return func(o *SignalOrchestrator) { o.timeout = d }
}

func WithPromptOptions(p signal.PromptOptions) OrchestratorOption {
	return func(o *SignalOrchestrator) { o.prompt = p }
}

func WithPublisher(p domrepo.SignalPublisher) OrchestratorOption {
	return func(o *SignalOrchestrator) { o.publisher = p }
}

func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *SignalOrchestrator) { o.now = now }
}

func WithIDGenerator(gen func() string) OrchestratorOption {
	return func(o *SignalOrchestrator) { o.newID = gen }
}

func NewSignalOrchestrator(
	resolver *signal.Resolver,
	parser *signal.Parser,
	picker *signal.SourcePicker,
	prices domrepo.PriceLookup,
	completer domrepo.ChatCompleter,
	store domrepo.SignalStore,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	opts ...OrchestratorOption,
) *SignalOrchestrator {
	o := &SignalOrchestrator{
		resolver:  resolver,
		parser:    parser,
		picker:    picker,
		prices:    prices,
		completer: completer,
		store:     store,
		metrics:   metrics,
		log:       l.With(applogger.String("component", "orchestrator")),
		mode:      models.ModeLive,
		timeout:   60 * time.Second,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Mode is the label given to non-fallback replies.
func (o *SignalOrchestrator) Mode() models.Mode {
	return o.mode
}

// Resolve exposes the resolver so handlers need not hold their own.
func (o *SignalOrchestrator) Resolve(query string) string {
	return o.resolver.Resolve(query)
}

// Submit never fails. The returned signal has already been stored and
// published.
func (o *SignalOrchestrator) Submit(ctx context.Context, query string) *models.SignalResponse {
	asset := o.resolver.Resolve(query)
	price := o.price(ctx, asset)
	req := signal.BuildPrompt(query, asset, price, o.now(), o.prompt)

	var (
		res  signal.Result
		mode = o.mode
	)
	raw, err := o.complete(ctx, req)
	if err != nil {
		kind := chatErrorKind(err)
		o.metrics.RecordUpstreamError(opChat, kind)
		o.log.Warn("chat completion failed, serving fallback",
			applogger.String("asset", asset),
			applogger.String("kind", kind),
			applogger.Error(err),
		)
		res = o.parser.Parse("", asset, price)
		res.Signal.Sources = o.picker.Rotate()
		mode = models.ModeFallback
	} else {
		res = o.parser.Parse(raw, asset, price)
		res.Signal.Sources = o.picker.Pick(raw)
		o.metrics.ObserveFieldsExtracted(res.Extracted)
	}

	sig := res.Signal
	sig.ID = o.newID()
	sig.Query = query
	sig.Mode = mode

	stored := o.store.Save(sig)
	if o.publisher != nil {
		o.publisher.Publish(stored)
	}
	o.metrics.RecordSignal(stored.Asset, string(mode))
	o.log.Info("signal produced",
		applogger.String("id", stored.ID),
		applogger.String("asset", stored.Asset),
		applogger.String("mode", string(mode)),
		applogger.Int("fields_extracted", res.Extracted),
	)
	return stored
}

// Quote is the best-effort price lookup behind the prices endpoint.
func (o *SignalOrchestrator) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	return o.prices.Quote(ctx, symbol)
}

func (o *SignalOrchestrator) price(ctx context.Context, asset string) string {
	q, err := o.prices.Quote(ctx, asset)
	if err != nil {
		o.log.Debug("no price for asset", applogger.String("asset", asset), applogger.Error(err))
		return ""
	}
	return q.Formatted
}

func (o *SignalOrchestrator) complete(ctx context.Context, req models.ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	raw, err := o.completer.Complete(ctx, req)
	o.metrics.ObserveUpstream(opChat, time.Since(start))
	return raw, err
}

func chatErrorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrNoCredential):
		return "credential"
	case errors.Is(err, models.ErrUpstreamStatus):
		return "status"
	case errors.Is(err, models.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
