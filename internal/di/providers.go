package di

import (
	"context"
	"fmt"
	"time"

	"Traxor/internal/domain/models"
	"Traxor/internal/domain/repository"
	"Traxor/internal/handler/api"
	internalrepo "Traxor/internal/repository"
	"Traxor/internal/service/credential"
	"Traxor/internal/service/feed"
	"Traxor/internal/service/llm"
	"Traxor/internal/service/market"
	"Traxor/internal/service/ratelimit"
	"Traxor/internal/services/signal"
	"Traxor/internal/usecase"
	"Traxor/pkg/cache"
	"Traxor/pkg/config"
	xhttp "Traxor/pkg/http"
	pkgkafka "Traxor/pkg/kafka"
	applogger "Traxor/pkg/logger"
	"Traxor/pkg/metrics"
	"Traxor/pkg/server"
	"Traxor/pkg/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ChatBackend is the completer chosen for llm.mode, plus the label its
// replies carry.
type ChatBackend struct {
	Completer repository.ChatCompleter
	Mode      models.Mode
}

// ProvideRegistry creates the registry every collector registers on.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates the error-log producer, or nil when Kafka is off.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithMetrics(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the app logger. With a producer, aggregated errors are
// shipped to kafka.log_topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Kafka.FlushInterval,
			CountThreshold: cfg.Kafka.FlushThreshold,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideCache creates the price cache for cache.backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis", "layered":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx,
			cache.WithRedisAddr(cfg.Cache.Redis.Addr()),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Backend == "layered" {
			return cache.NewLayeredCache(rc, cfg.Cache.MemoryMaxSize, cfg.Market.CacheTTL), nil
		}
		return rc, nil
	default:
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			cache.WithMemoryDefaultTTL(cfg.Market.CacheTTL),
			cache.WithMemoryCleanup(cfg.Market.CacheTTL),
		), nil
	}
}

func ProvideCredentials(cfg *config.Config) repository.CredentialProvider {
	return credential.NewEnvProvider(cfg.LLM.CredentialEnv)
}

func ProvideLLMClient(cfg *config.Config, creds repository.CredentialProvider) *llm.Client {
	return llm.NewClient(cfg.LLM, creds)
}

// ProvideChatBackend picks the live client or the mock for llm.mode. auto
// means live when a credential is present at startup.
func ProvideChatBackend(cfg *config.Config, creds repository.CredentialProvider, client *llm.Client, l *applogger.Logger) ChatBackend {
	live := cfg.LLM.Mode == "live" ||
		(cfg.LLM.Mode == "auto" && credential.Available(context.Background(), creds))
	if live {
		l.Info("chat backend", applogger.String("mode", string(models.ModeLive)), applogger.String("url", cfg.LLM.BaseURL))
		return ChatBackend{Completer: client, Mode: models.ModeLive}
	}
	l.Warn("chat backend using canned replies",
		applogger.String("mode", string(models.ModeMock)),
		applogger.String("credential_env", cfg.LLM.CredentialEnv),
	)
	return ChatBackend{Completer: llm.NewMockCompleter(), Mode: models.ModeMock}
}

func ProvidePriceLookup(cfg *config.Config, c cache.Service, m *metrics.Recorder, l *applogger.Logger) *market.CoinGecko {
	return market.NewCoinGecko(cfg.Market, c, m, l)
}

func ProvideResolver(cfg *config.Config) *signal.Resolver {
	return signal.NewResolver(cfg.Signal.DefaultSymbol)
}

func ProvideParser(cfg *config.Config, resolver *signal.Resolver) *signal.Parser {
	return signal.NewParser(resolver, signal.WithInsightMinLength(cfg.Signal.InsightMinLength))
}

func ProvideSourcePicker(cfg *config.Config) *signal.SourcePicker {
	return signal.NewSourcePicker(signal.NewRotation(nil), cfg.Signal.SourceCount)
}

func ProvideSignalStore(cfg *config.Config) *internalrepo.MemorySignalStore {
	return internalrepo.NewMemorySignalStore(cfg.Signal.HistoryLimit)
}

func ProvideHub(cfg *config.Config, l *applogger.Logger) *feed.Hub {
	return feed.NewHub(cfg.Feed.BufferSize, l)
}

// ProvideOrchestrator wires the signal use case.
func ProvideOrchestrator(
	cfg *config.Config,
	resolver *signal.Resolver,
	parser *signal.Parser,
	picker *signal.SourcePicker,
	prices *market.CoinGecko,
	backend ChatBackend,
	store *internalrepo.MemorySignalStore,
	hub *feed.Hub,
	m *metrics.Recorder,
	l *applogger.Logger,
) *usecase.SignalOrchestrator {
	opts := []usecase.OrchestratorOption{
		usecase.WithMode(backend.Mode),
		usecase.WithUpstreamTimeout(util.ClampDuration(cfg.LLM.Timeout, 60*time.Second, config.MinUpstreamTimeout, config.MaxUpstreamTimeout)),
		usecase.WithPromptOptions(signal.PromptOptions{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}),
	}
	if cfg.Feed.Enabled {
		opts = append(opts, usecase.WithPublisher(hub))
	}
	return usecase.NewSignalOrchestrator(resolver, parser, picker, prices, backend.Completer, store, m, l, opts...)
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Proxy.RateCapacity, cfg.Proxy.RateRefillPerSec)
}

// ProvideScheduler registers the cache warmer and limiter sweep.
func ProvideScheduler(cfg *config.Config, l *applogger.Logger, prices *market.CoinGecko, limiter *ratelimit.Limiter) (*usecase.Scheduler, error) {
	s := usecase.NewScheduler(l, cfg.Market.Timeout*2)
	if len(cfg.Market.Watchlist) > 0 && cfg.Market.WarmSchedule != "" {
		if err := s.AddJob("warm-prices", cfg.Market.WarmSchedule, usecase.WarmPricesJob(prices, cfg.Market.Watchlist)); err != nil {
			return nil, err
		}
	}
	if err := s.AddJob("sweep-limiter", "@every 5m", usecase.SweepJob(limiter)); err != nil {
		return nil, err
	}
	l.Info("scheduler configured",
		applogger.Int("jobs", s.Len()),
		applogger.Bool("warm_prices", len(cfg.Market.Watchlist) > 0 && cfg.Market.WarmSchedule != ""),
		applogger.Strings("watchlist", cfg.Market.Watchlist),
	)
	return s, nil
}

// ProvideHandlers collects the route groups enabled by config.
func ProvideHandlers(
	cfg *config.Config,
	l *applogger.Logger,
	orch *usecase.SignalOrchestrator,
	store *internalrepo.MemorySignalStore,
	prices *market.CoinGecko,
	client *llm.Client,
	limiter *ratelimit.Limiter,
	hub *feed.Hub,
	m *metrics.Recorder,
	backend ChatBackend,
) []xhttp.Handler {
	handlers := []xhttp.Handler{
		api.NewHealthHandler(backend.Mode),
		api.NewSignalsEchoHandler(l, orch, orch, store),
		api.NewPricesEchoHandler(prices),
	}
	if cfg.Proxy.Enabled {
		handlers = append(handlers, api.NewProxyHandler(l, client, limiter, m, cfg.LLM.CredentialEnv))
	}
	if cfg.Feed.Enabled {
		handlers = append(handlers, api.NewFeedHandler(l, hub))
	}
	return handlers
}

func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, handlers []xhttp.Handler, reg *prometheus.Registry) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, api.ProxyPath),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg, reg))
	}
	return xhttp.NewServer(l, handlers, opts...)
}

// ProvideApp creates the application server. Closers run in dependency
// order: the error collector flushes before its producer goes away.
func ProvideApp(
	l *applogger.Logger,
	httpServer *xhttp.Server,
	scheduler *usecase.Scheduler,
	hub *feed.Hub,
	producer *pkgkafka.Producer,
	c cache.Service,
) *server.App {
	closers := []func() error{
		func() error { l.RemoveCollector(); return nil },
	}
	if producer != nil {
		closers = append(closers, producer.Close)
	}
	closers = append(closers, c.Close)
	return server.New(l, httpServer, []server.Runner{scheduler, hub}, closers...)
}
