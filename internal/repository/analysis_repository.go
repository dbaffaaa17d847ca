package repository

import (
	"context"
	"fmt"
	"time"

	"VolaEngine/internal/domain/models"
	"VolaEngine/pkg/clickhouse"
	"VolaEngine/pkg/kafka"
)

// ClickHouseAnalysisStore persists completed analyses into a single wide
// table for research queries. Writes are row-at-a-time; the caller treats
// failures as best effort.
type ClickHouseAnalysisStore struct {
	client *clickhouse.Client
	table  string
}

// NewClickHouseAnalysisStore wraps a connected client. table must be a fully
// qualified table name.
func NewClickHouseAnalysisStore(client *clickhouse.Client, table string) *ClickHouseAnalysisStore {
	return &ClickHouseAnalysisStore{client: client, table: table}
}

// Schema returns the idempotent DDL for the analysis table, suitable for
// Client.InitSchema at startup.
func (s *ClickHouseAnalysisStore) Schema() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ticker LowCardinality(String),
			success UInt8,
			current_price Float64,
			price_change Float64,
			price_change_percent Float64,
			market_cap Int64,
			volume Int64,
			avg_volume Int64,
			high Float64,
			low Float64,
			open Float64,
			volatility_30d Float64,
			volatility_rating LowCardinality(String),
			next_earnings String,
			earnings_date String,
			data_source LowCardinality(String),
			created_at DateTime DEFAULT now()
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (ticker, created_at)`, s.table),
	}
}

// Store inserts one analysis row.
func (s *ClickHouseAnalysisStore) Store(ctx context.Context, a *models.AnalysisResponse) error {
	query := fmt.Sprintf(`INSERT INTO %s (
		ticker, success, current_price, price_change, price_change_percent,
		market_cap, volume, avg_volume, high, low, open,
		volatility_30d, volatility_rating, next_earnings, earnings_date, data_source
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)

	success := uint8(0)
	if a.Success {
		success = 1
	}

	_, err := s.client.DB().ExecContext(ctx, query,
		a.Ticker, success, a.CurrentPrice, a.PriceChange, a.PriceChangePercent,
		a.MarketCap, a.Volume, a.AvgVolume, a.High, a.Low, a.Open,
		a.Volatility30D, a.VolatilityRating, a.NextEarnings, a.EarningsDate, a.DataSource,
	)
	if err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}
	return nil
}

// Health pings the underlying connection pool.
func (s *ClickHouseAnalysisStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close releases the connection pool.
func (s *ClickHouseAnalysisStore) Close() error {
	return s.client.Close()
}

// KafkaAnalysisPublisher emits each completed analysis as a JSON event keyed
// by ticker, so per-ticker ordering is preserved across partitions.
type KafkaAnalysisPublisher struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
}

// NewKafkaAnalysisPublisher wraps a producer for the given topic.
func NewKafkaAnalysisPublisher(producer *kafka.Producer, topic string) *KafkaAnalysisPublisher {
	return &KafkaAnalysisPublisher{
		producer: producer,
		topic:    topic,
		timeout:  5 * time.Second,
	}
}

// Publish sends the analysis event.
func (p *KafkaAnalysisPublisher) Publish(ctx context.Context, a *models.AnalysisResponse) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.producer.Publish(ctx, p.topic, []byte(a.Ticker), a)
}

// Close closes the underlying producer.
func (p *KafkaAnalysisPublisher) Close() error {
	return p.producer.Close()
}
