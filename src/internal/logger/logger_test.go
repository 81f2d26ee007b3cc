package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizePayloadMasksSensitiveKeys(t *testing.T) {
	got, ok := SanitizePayload(map[string]any{
		"channelKey": "secret",
		"nested":     map[string]any{"Authorization": "Basic abc"},
		"amount":     "10.00",
	}).(map[string]any)
	if !ok {
		t.Fatal("expected map payload")
	}

	if got["channelKey"] != "******" {
		t.Fatalf("expected channelKey masked, got %v", got["channelKey"])
	}
	nested := got["nested"].(map[string]any)
	if nested["Authorization"] != "******" {
		t.Fatalf("expected nested authorization masked, got %v", nested["Authorization"])
	}
	if got["amount"] != "10.00" {
		t.Fatalf("expected amount untouched, got %v", got["amount"])
	}
}

func TestInfoAndErrorWriteToInstalledLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := global.Swap(zap.New(core))
	defer global.Store(previous)

	Info("transfer enacted", Fields{"sourceAccountId": "A", "pin": "1234"})
	Error("transfer failed", errors.New("boom"), Fields{"targetAccountId": "B"})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ContextMap()["pin"] != "******" {
		t.Fatalf("expected pin masked, got %v", entries[0].ContextMap()["pin"])
	}
	if entries[1].ContextMap()["error"] != "boom" {
		t.Fatalf("expected error field, got %v", entries[1].ContextMap()["error"])
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("WARN") != zapcore.WarnLevel {
		t.Fatal("expected warn level")
	}
	if parseLevel("nonsense") != zapcore.InfoLevel {
		t.Fatal("expected info fallback")
	}
}
