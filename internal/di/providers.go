package di

import (
	"context"
	"fmt"
	"time"

	"VolaEngine/internal/domain/repository"
	"VolaEngine/internal/handler/api"
	"VolaEngine/internal/provider/fmp"
	"VolaEngine/internal/provider/polygon"
	"VolaEngine/internal/provider/yahoo"
	internalrepo "VolaEngine/internal/repository"
	"VolaEngine/internal/usecase"
	"VolaEngine/pkg/cache"
	pkgch "VolaEngine/pkg/clickhouse"
	"VolaEngine/pkg/config"
	xhttp "VolaEngine/pkg/http"
	pkgkafka "VolaEngine/pkg/kafka"
	applogger "VolaEngine/pkg/logger"
	"VolaEngine/pkg/metrics"
	"VolaEngine/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the quote cache, or nil when caching is disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(time.Minute), nil
}

// ProvidePolygonClient creates the Polygon quote client.
func ProvidePolygonClient(cfg *config.Config) *polygon.Client {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Polygon.Timeout))
	return polygon.New(cfg.Polygon.APIKey, cfg.Polygon.BaseURL, httpClient)
}

// ProvideYahooClient creates the Yahoo chart client. It doubles as the
// history source for volatility analysis.
func ProvideYahooClient(cfg *config.Config) *yahoo.Client {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Yahoo.Timeout))
	return yahoo.New(cfg.Yahoo.BaseURL, httpClient, cfg.Yahoo.MaxRPS, cfg.Yahoo.MinDelay, cfg.Yahoo.MaxDelay)
}

// ProvideFMPClient creates the Financial Modeling Prep client. It doubles as
// the earnings calendar source.
func ProvideFMPClient(cfg *config.Config) *fmp.Client {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.FMP.Timeout))
	return fmp.New(cfg.FMP.APIKey, cfg.FMP.BaseURL, httpClient)
}

// ProvideQuoteProviders orders the quote sources by the configured priority.
// Unknown names are rejected at config validation, so the switch is total.
func ProvideQuoteProviders(cfg *config.Config, pg *polygon.Client, yh *yahoo.Client, fm *fmp.Client) []repository.QuoteProvider {
	providers := make([]repository.QuoteProvider, 0, len(cfg.Quote.Priority))
	for _, name := range cfg.Quote.Priority {
		switch name {
		case "polygon":
			providers = append(providers, pg)
		case "yahoo":
			providers = append(providers, yh)
		case "fmp":
			providers = append(providers, fm)
		}
	}
	return providers
}

// ProvideQuoteAggregator creates the priority-fallback quote aggregator.
func ProvideQuoteAggregator(
	cfg *config.Config,
	providers []repository.QuoteProvider,
	c cache.Service,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.QuoteAggregator {
	return usecase.NewQuoteAggregator(providers, cfg.Quote.Timeout, c, cfg.Cache.TTL, m, l)
}

// ProvideVolatilityCalculator creates the volatility calculator over Yahoo
// daily bars.
func ProvideVolatilityCalculator(cfg *config.Config, yh *yahoo.Client, l *applogger.Logger) *usecase.VolatilityCalculator {
	return usecase.NewVolatilityCalculator(yh, cfg.Volatility.HistoryDays, cfg.Volatility.MinBars, l)
}

// ProvideEarningsLookup creates the earnings lookup over the FMP calendar.
func ProvideEarningsLookup(fm *fmp.Client, l *applogger.Logger) *usecase.EarningsLookup {
	return usecase.NewEarningsLookup(fm, l)
}

// ProvideSentimentAnalyzer creates the stub sentiment analyzer.
func ProvideSentimentAnalyzer() repository.SentimentAnalyzer {
	return usecase.NewRandomSentiment()
}

// ProvideClickHouseClient creates a ClickHouse client when persistence is
// enabled, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideAnalysisStore creates the ClickHouse-backed store and ensures its
// schema, or returns nil when persistence is disabled.
func ProvideAnalysisStore(chClient *pkgch.Client, cfg *config.Config) (repository.AnalysisStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseAnalysisStore(chClient, cfg.ClickHouse.Table)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stmts := append([]string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database),
	}, store.Schema()...)
	if err := chClient.InitSchema(ctx, stmts); err != nil {
		_ = chClient.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideAnalysisPublisher creates the Kafka-backed event publisher, or nil
// when eventing is disabled.
func ProvideAnalysisPublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAnalysisPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideAnalyzer creates the composite analyzer.
func ProvideAnalyzer(
	quotes *usecase.QuoteAggregator,
	vol *usecase.VolatilityCalculator,
	earnings *usecase.EarningsLookup,
	store repository.AnalysisStore,
	publisher repository.Publisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(quotes, vol, earnings, store, publisher, m, l)
}

// ProvideQuoteStreamer creates the websocket quote streamer.
func ProvideQuoteStreamer(cfg *config.Config, quotes *usecase.QuoteAggregator, l *applogger.Logger) *api.QuoteStreamer {
	return api.NewQuoteStreamer(quotes, cfg.Stream.Interval, l)
}

// ProvideHTTPHandler creates the route handler.
func ProvideHTTPHandler(
	analyzer *usecase.Analyzer,
	quotes *usecase.QuoteAggregator,
	earnings *usecase.EarningsLookup,
	sentiment repository.SentimentAnalyzer,
	streamer *api.QuoteStreamer,
	l *applogger.Logger,
) xhttp.Handler {
	return api.NewAnalysisHandler(analyzer, quotes, earnings, sentiment, streamer, l)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	c cache.Service,
	store repository.AnalysisStore,
	publisher repository.Publisher,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, c, store, publisher, l)
}
