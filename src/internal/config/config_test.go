package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHANNEL_KEY", "key")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("QUOTE_CACHE_TTL", "")
	t.Setenv("CONVERSION_PRECISION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.UsesDatabase() {
		t.Fatal("expected in-memory mode without DATABASE_DSN")
	}
	if cfg.QuoteCacheTTL != time.Minute {
		t.Fatalf("expected default ttl 1m, got %s", cfg.QuoteCacheTTL)
	}
	if cfg.ConversionPrecision != 4 {
		t.Fatalf("expected default conversion precision 4, got %d", cfg.ConversionPrecision)
	}
}

func TestLoadRequiresChannelKey(t *testing.T) {
	t.Setenv("CHANNEL_KEY", "")
	t.Setenv("CHANNEL_KEY_HASH", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without channel key")
	}
}

func TestLoadRejectsBadPrecision(t *testing.T) {
	t.Setenv("CHANNEL_KEY", "key")
	t.Setenv("CONVERSION_PRECISION", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero conversion precision")
	}
}

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=localhost;Port=5432;Database=fx;Username=postgres;Password=pw;CommandTimeout=30")
	want := "host=localhost port=5432 dbname=fx user=postgres password=pw statement_timeout=30s sslmode=disable"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	url := "postgres://u:p@localhost/fx?sslmode=require"
	if normalizeConnectionString(url) != url {
		t.Fatal("expected URL DSN to pass through")
	}
}
