//go:build wireinject
// +build wireinject

package di

import (
	"VolaEngine/pkg/config"
	"VolaEngine/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Provider clients
		ProvidePolygonClient,
		ProvideYahooClient,
		ProvideFMPClient,
		ProvideQuoteProviders,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideAnalysisStore,
		ProvideAnalysisPublisher,

		// Use cases
		ProvideQuoteAggregator,
		ProvideVolatilityCalculator,
		ProvideEarningsLookup,
		ProvideSentimentAnalyzer,
		ProvideAnalyzer,

		// HTTP surface
		ProvideQuoteStreamer,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
