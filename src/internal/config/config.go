package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultHTTPAddr = ":8080"
const defaultChannelID = "FxApp"
const defaultQuoteCacheTTL = time.Minute
const defaultConversionPrecision = 4

type Config struct {
	HTTPAddr            string
	DatabaseDSN         string
	MigrationsDir       string
	ChannelID           string
	ChannelKey          string
	ChannelKeyHash      string
	QuoteCacheTTL       time.Duration
	ConversionPrecision int32
	LogLevel            string
	LogFormat           string
}

// UsesDatabase reports whether a postgres DSN was configured. Without one the
// server runs on in-memory quote and account stores.
func (c Config) UsesDatabase() bool {
	return c.DatabaseDSN != ""
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:            envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		MigrationsDir:       envOrDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		ChannelID:           envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:          strings.TrimSpace(os.Getenv("CHANNEL_KEY")),
		ChannelKeyHash:      strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH")),
		QuoteCacheTTL:       defaultQuoteCacheTTL,
		ConversionPrecision: defaultConversionPrecision,
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogFormat:           envOrDefault("LOG_FORMAT", "json"),
	}

	if conn := strings.TrimSpace(os.Getenv("DATABASE_DSN")); conn != "" {
		cfg.DatabaseDSN = normalizeConnectionString(conn)
	}

	if raw := strings.TrimSpace(os.Getenv("QUOTE_CACHE_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse QUOTE_CACHE_TTL: %w", err)
		}
		if ttl < 0 {
			return Config{}, fmt.Errorf("QUOTE_CACHE_TTL must not be negative")
		}
		cfg.QuoteCacheTTL = ttl
	}

	if raw := strings.TrimSpace(os.Getenv("CONVERSION_PRECISION")); raw != "" {
		digits, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("parse CONVERSION_PRECISION: %w", err)
		}
		if digits < 1 {
			return Config{}, fmt.Errorf("CONVERSION_PRECISION must be at least 1")
		}
		cfg.ConversionPrecision = int32(digits)
	}

	if cfg.ChannelKey == "" && cfg.ChannelKeyHash == "" {
		return Config{}, fmt.Errorf("one of CHANNEL_KEY or CHANNEL_KEY_HASH is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
