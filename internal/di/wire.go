//go:build wireinject
// +build wireinject

package di

import (
	"Traxor/internal/usecase"
	"Traxor/pkg/config"
	"Traxor/pkg/server"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideRegistry,
	ProvideMetrics,
	ProvideKafkaProducer,
	ProvideLogger,
	ProvideCache,
	ProvideCredentials,
)

var signalSet = wire.NewSet(
	ProvideLLMClient,
	ProvideChatBackend,
	ProvidePriceLookup,
	ProvideResolver,
	ProvideParser,
	ProvideSourcePicker,
	ProvideSignalStore,
	ProvideHub,
	ProvideOrchestrator,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		infraSet,
		signalSet,
		ProvideLimiter,
		ProvideScheduler,
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeSignalService wires only what a one-shot query needs.
func InitializeSignalService(cfg *config.Config) (*usecase.SignalOrchestrator, error) {
	wire.Build(infraSet, signalSet)
	return &usecase.SignalOrchestrator{}, nil
}
