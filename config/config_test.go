package config

import (
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	if cfg.Server.HTTPPort != ":9999" {
		t.Errorf("HTTPPort = %q, want :9999", cfg.Server.HTTPPort)
	}
	if cfg.Postgres.Host != "localhost" {
		t.Errorf("Postgres.Host = %q, want localhost", cfg.Postgres.Host)
	}
	if cfg.JWT.AccessTokenMinutes != 15 {
		t.Errorf("JWT.AccessTokenMinutes = %d, want 15", cfg.JWT.AccessTokenMinutes)
	}
	if cfg.JWT.RefreshTokenHours != 168 {
		t.Errorf("JWT.RefreshTokenHours = %d, want 168", cfg.JWT.RefreshTokenHours)
	}
	if cfg.Kafka.Topic != "export-orders.events" {
		t.Errorf("Kafka.Topic = %q, want export-orders.events", cfg.Kafka.Topic)
	}
	if cfg.Elastic.Enabled {
		t.Error("Elastic.Enabled = true, want false by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":8080")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ELASTICSEARCH_ENABLED", "true")

	cfg := LoadEnv()

	if cfg.Server.HTTPPort != ":8080" {
		t.Errorf("HTTPPort = %q, want :8080", cfg.Server.HTTPPort)
	}
	if cfg.Postgres.MaxOpenConns != 25 {
		t.Errorf("Postgres.MaxOpenConns = %d, want 25", cfg.Postgres.MaxOpenConns)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v, want [k1:9092 k2:9092]", cfg.Kafka.Brokers)
	}
	if !cfg.Elastic.Enabled {
		t.Error("Elastic.Enabled = false, want true")
	}
}

func TestLoadEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "many")
	t.Setenv("ELASTICSEARCH_ENABLED", "yep")

	cfg := LoadEnv()

	if cfg.Postgres.MaxOpenConns != 10 {
		t.Errorf("Postgres.MaxOpenConns = %d, want fallback 10", cfg.Postgres.MaxOpenConns)
	}
	if cfg.Elastic.Enabled {
		t.Error("Elastic.Enabled = true, want fallback false")
	}
}
